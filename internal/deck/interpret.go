package deck

import (
	"fmt"
	"strings"

	"github.com/arcanaland/tarotlog/internal/card"
	"github.com/arcanaland/tarotlog/internal/spread"
)

type phrasebook struct {
	header       string // spread name
	cardLine     string // position, position name, card name, orientation
	fallbackPos  string // position number
	positionLine string
	keywordLine  string
	keywordSep   string
	overall      string

	twoCard   string // situation card, its keyword, advice card, its keyword
	twoCardRv string

	threeCard string // past card+kw, present card+kw, future card+kw

	majorHeavy     string
	mostlyReversed string
	allUpright     string
	dominantSuit   string // suit name, domain
	balanced       string
}

var phrases = map[card.Lang]phrasebook{
	card.ZhTW: {
		header:         "【%s】",
		cardLine:       "第%d張・%s：%s（%s）",
		fallbackPos:    "第%d張",
		positionLine:   "位置意義：%s",
		keywordLine:    "關鍵字：%s",
		keywordSep:     "、",
		overall:        "【整體解讀】",
		twoCard:        "目前的情境由「%s」呈現，重點在於%s；面對這個情境，「%s」建議你以%s的態度前進。",
		twoCardRv:      "建議牌為逆位，提醒你先處理內在的阻礙，再採取行動。",
		threeCard:      "過去的「%s」帶來%s的影響，延續到現在的「%s」，顯示目前以%s為主軸；若保持方向，未來的「%s」預示%s的發展。",
		majorHeavy:     "牌陣中大阿爾克那佔了多數，這段時期涉及重要的人生課題，值得認真看待。",
		mostlyReversed: "多數牌為逆位，代表能量受阻或需要向內調整，宜放慢腳步。",
		allUpright:     "所有牌皆為正位，能量流動順暢，是推動計畫的好時機。",
		dominantSuit:   "%s牌最為突出，這次的解讀聚焦在%s。",
		balanced:       "各種能量分布平均，保持開放的心面對各方面的變化。",
	},
	card.En: {
		header:         "[%s]",
		cardLine:       "Card %d · %s: %s (%s)",
		fallbackPos:    "Card %d",
		positionLine:   "Position: %s",
		keywordLine:    "Keywords: %s",
		keywordSep:     ", ",
		overall:        "[Overall Reading]",
		twoCard:        "Your situation is shown by %s, centered on %s; in response, %s advises you to move forward with %s.",
		twoCardRv:      "The advice card is reversed: clear your inner obstacles before acting.",
		threeCard:      "%s in the past brought %s, which carries into %s in the present, centered on %s; on this path, %s points toward %s.",
		majorHeavy:     "Major arcana dominate this spread; it touches important life lessons worth taking seriously.",
		mostlyReversed: "Most cards are reversed, pointing to blocked energy or a need to turn inward; slow down.",
		allUpright:     "Every card is upright; energy flows freely and it is a good time to push plans forward.",
		dominantSuit:   "%s stand out, so this reading focuses on %s.",
		balanced:       "Energies are evenly spread; stay open to change in every area.",
	},
}

func (e *Engine) phrases() phrasebook {
	if p, ok := phrases[e.lang]; ok {
		return p
	}
	return phrases[card.ZhTW]
}

// Interpret synthesizes the reading text for drawn cards: a header naming the
// spread, one section per card and, for multi-card spreads, an overall reading.
func (e *Engine) Interpret(cards []card.DrawnCard) string {
	if len(cards) == 0 {
		return ""
	}
	p := e.phrases()
	framework := spread.For(len(cards))

	var b strings.Builder
	fmt.Fprintf(&b, p.header, framework.Name.In(e.lang))
	b.WriteString("\n\n")

	for i, dc := range cards {
		posName := fmt.Sprintf(p.fallbackPos, dc.Position)
		if i < len(framework.Positions) {
			posName = framework.Positions[i].Name.In(e.lang)
		}
		m := dc.Meaning()

		fmt.Fprintf(&b, p.cardLine, dc.Position, posName, dc.Card.Name.In(e.lang), dc.Orientation(e.lang))
		b.WriteString("\n")
		if dc.PositionMeaning != "" {
			fmt.Fprintf(&b, p.positionLine, dc.PositionMeaning)
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, p.keywordLine, strings.Join(m.Keywords.In(e.lang), p.keywordSep))
		b.WriteString("\n")
		b.WriteString(m.Description.In(e.lang))
		b.WriteString("\n\n")
	}

	if len(cards) > 1 {
		b.WriteString(p.overall)
		b.WriteString("\n")
		b.WriteString(e.overallReading(cards, p))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (e *Engine) overallReading(cards []card.DrawnCard, p phrasebook) string {
	switch len(cards) {
	case 2:
		s := fmt.Sprintf(p.twoCard,
			cards[0].Card.Name.In(e.lang), e.leadKeyword(cards[0]),
			cards[1].Card.Name.In(e.lang), e.leadKeyword(cards[1]))
		if cards[1].IsReversed {
			s += e.sentenceSep() + p.twoCardRv
		}
		return s
	case 3:
		return fmt.Sprintf(p.threeCard,
			cards[0].Card.Name.In(e.lang), e.leadKeyword(cards[0]),
			cards[1].Card.Name.In(e.lang), e.leadKeyword(cards[1]),
			cards[2].Card.Name.In(e.lang), e.leadKeyword(cards[2]))
	default:
		return e.genericOverall(cards, p)
	}
}

func (e *Engine) genericOverall(cards []card.DrawnCard, p phrasebook) string {
	total := float64(len(cards))
	majors, reversed := 0, 0
	suitCounts := make(map[card.Suit]int)
	for _, dc := range cards {
		if dc.Card.IsMajor() {
			majors++
		} else {
			suitCounts[dc.Card.Suit]++
		}
		if dc.IsReversed {
			reversed++
		}
	}

	var parts []string
	if float64(majors)/total > 0.5 {
		parts = append(parts, p.majorHeavy)
	}
	switch {
	case float64(reversed)/total > 0.5:
		parts = append(parts, p.mostlyReversed)
	case reversed == 0:
		parts = append(parts, p.allUpright)
	}

	var dominant card.Suit
	best := 0
	for _, s := range card.MinorSuits {
		if suitCounts[s] > best {
			dominant, best = s, suitCounts[s]
		}
	}
	if best > 0 {
		parts = append(parts, fmt.Sprintf(p.dominantSuit, dominant.Name(e.lang), dominant.Domain(e.lang)))
	}

	if len(parts) == 0 {
		parts = append(parts, p.balanced)
	}
	return strings.Join(parts, e.sentenceSep())
}

// sentenceSep joins sentences; Chinese punctuation carries no trailing space
func (e *Engine) sentenceSep() string {
	if e.lang == card.En {
		return " "
	}
	return ""
}

func (e *Engine) leadKeyword(dc card.DrawnCard) string {
	kw := dc.Keywords(e.lang)
	if len(kw) == 0 {
		return dc.Card.Name.In(e.lang)
	}
	return kw[0]
}
