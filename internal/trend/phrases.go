package trend

import (
	"fmt"
	"strings"

	"github.com/arcanaland/tarotlog/internal/card"
)

type phrasebook struct {
	noData              string
	insufficient        string
	insufficientCompare string
	keywordSep          string
	sentenceSep         string

	aspects map[Aspect]map[Tone]string // top keywords

	summaryDominant string // total, suit name, count, domain
	summaryReversed string // percentage
	reversedHigh    string
	reversedLow     string
	reversedMid     string
	summaryMajor    string // count

	recStart    string
	recSlowDown string
	recMajor    string
	recStreak   string
	recGeneral  string
	recSuit     map[card.Suit]string

	suitUp        string // suit name, delta, domain
	suitDown      string // suit name, delta, domain
	suitStable    string
	reversedRise  string // points
	reversedFall  string // points
	majorIncrease string // count
}

var phrases = map[card.Lang]phrasebook{
	card.ZhTW: {
		noData:              "無資料",
		insufficient:        "資料不足，累積更多每日抽牌後再來看看趨勢。",
		insufficientCompare: "資料不足，無法比較兩段期間。",
		keywordSep:          "、",
		sentenceSep:         "",
		aspects: map[Aspect]map[Tone]string{
			Physical: {
				Positive:   "身體層面能量充沛，近期關鍵字為「%s」，適合維持規律的作息與運動。",
				Cautionary: "身體層面出現疲勞或壓力的訊號，近期關鍵字為「%s」，記得適度休息。",
				Neutral:    "身體層面大致穩定，近期關鍵字為「%s」。",
			},
			Emotional: {
				Positive:   "情緒層面溫暖而平靜，近期關鍵字為「%s」，適合與重要的人分享心情。",
				Cautionary: "情緒層面有些起伏與不安，近期關鍵字為「%s」，試著溫柔地接納自己。",
				Neutral:    "情緒層面沒有明顯的波動，近期關鍵字為「%s」。",
			},
			Spiritual: {
				Positive:   "靈性層面持續成長，近期關鍵字為「%s」，相信自己的直覺。",
				Cautionary: "靈性層面似乎有些迷惘，近期關鍵字為「%s」，給自己安靜沉澱的時間。",
				Neutral:    "靈性層面保持平穩，近期關鍵字為「%s」。",
			},
		},
		summaryDominant: "最近%d次抽牌中，%s出現最多（%d次），焦點落在%s。",
		summaryReversed: "逆位比例為%d%%，",
		reversedHigh:    "阻礙與內在調整是這段時間的主題。",
		reversedLow:     "整體能量流動順暢。",
		reversedMid:     "順逆之間保持平衡。",
		summaryMajor:    "大阿爾克那出現了%d次，代表重要的人生課題正在發生。",
		recStart:        "每天抽一張牌，累積至少一週的紀錄。",
		recSlowDown:     "逆位偏多，放慢腳步，先處理內在的阻礙再行動。",
		recMajor:        "大阿爾克那頻繁出現，花些時間記錄這段期間的重要領悟。",
		recStreak:       "持續每日抽牌，連續的紀錄能讓趨勢更準確。",
		recGeneral:      "保持覺察，留意每天牌面與生活之間的連結。",
		recSuit: map[card.Suit]string{
			card.Major:     "留意生活中的重大轉折，它們正在引導你前進。",
			card.Cups:      "多關注感受與人際關係，給情感一些表達的空間。",
			card.Wands:     "善用目前的熱情與行動力，推動擱置已久的計畫。",
			card.Swords:    "理清思緒，坦誠溝通，避免過度思慮帶來的壓力。",
			card.Pentacles: "照顧好身體與財務，腳踏實地累積成果。",
		},
		suitUp:        "%s比前一段期間多出現了%d次，%s的主題正在升溫。",
		suitDown:      "%s比前一段期間少了%d次，%s的影響逐漸減弱。",
		suitStable:    "各花色的分布與前一段期間相近。",
		reversedRise:  "逆位比例上升了%d個百分點，近期阻礙增加，多留意內在狀態。",
		reversedFall:  "逆位比例下降了%d個百分點，能量比之前更加順暢。",
		majorIncrease: "大阿爾克那多了%d張，重要課題正在浮現。",
	},
	card.En: {
		noData:              "No data",
		insufficient:        "Not enough data yet. Keep drawing daily cards and check back for trends.",
		insufficientCompare: "Not enough data to compare the two periods.",
		keywordSep:          ", ",
		sentenceSep:         " ",
		aspects: map[Aspect]map[Tone]string{
			Physical: {
				Positive:   "Your physical energy is strong; recent keywords are %s. Keep up a steady routine and exercise.",
				Cautionary: "Your body shows signs of fatigue or stress; recent keywords are %s. Make room for rest.",
				Neutral:    "Your physical state is steady; recent keywords are %s.",
			},
			Emotional: {
				Positive:   "Your emotions feel warm and calm; recent keywords are %s. Share your mood with people who matter.",
				Cautionary: "Your emotions carry some unease; recent keywords are %s. Be gentle with yourself.",
				Neutral:    "Your emotions show no strong swings; recent keywords are %s.",
			},
			Spiritual: {
				Positive:   "Your spirit keeps growing; recent keywords are %s. Trust your intuition.",
				Cautionary: "Your spirit seems a little lost; recent keywords are %s. Give yourself quiet time.",
				Neutral:    "Your spiritual life is steady; recent keywords are %s.",
			},
		},
		summaryDominant: "Across your last %d draws, %s appeared most (%d times), pointing to %s.",
		summaryReversed: "%d%% of cards were reversed: ",
		reversedHigh:    "obstacles and inner adjustment are the theme of this period.",
		reversedLow:     "energy is flowing freely.",
		reversedMid:     "upright and reversed are in balance.",
		summaryMajor:    "The major arcana appeared %d times, so important life lessons are unfolding.",
		recStart:        "Draw one card a day and build at least a week of history.",
		recSlowDown:     "Many reversals: slow down and clear inner obstacles before acting.",
		recMajor:        "The major arcana keep appearing; journal the insights of this period.",
		recStreak:       "Keep your daily practice going; unbroken history makes trends more accurate.",
		recGeneral:      "Stay aware of how each day's card connects to your life.",
		recSuit: map[card.Suit]string{
			card.Major:     "Watch for major turning points; they are guiding you forward.",
			card.Cups:      "Pay attention to feelings and relationships and give emotions room to breathe.",
			card.Wands:     "Use your current passion and drive to move stalled plans forward.",
			card.Swords:    "Clear your head and communicate honestly to avoid the stress of overthinking.",
			card.Pentacles: "Look after your body and finances and build results step by step.",
		},
		suitUp:        "%s appeared %d more times than in the previous period; %s is heating up.",
		suitDown:      "%s appeared %d fewer times than in the previous period; the pull of %s is fading.",
		suitStable:    "The suit distribution is close to the previous period.",
		reversedRise:  "Reversals rose by %d points; obstacles are increasing, so watch your inner state.",
		reversedFall:  "Reversals fell by %d points; energy flows more freely than before.",
		majorIncrease: "%d more major arcana appeared; important lessons are surfacing.",
	},
}

func phrasesFor(lang card.Lang) phrasebook {
	if p, ok := phrases[lang]; ok {
		return p
	}
	return phrases[card.ZhTW]
}

func (p phrasebook) aspectSummary(aspect Aspect, tone Tone, keywords []string) string {
	return fmt.Sprintf(p.aspects[aspect][tone], strings.Join(keywords, p.keywordSep))
}

func (p phrasebook) summary(a Analysis, lang card.Lang) string {
	var parts []string
	if a.DominantSuit != "" {
		parts = append(parts, fmt.Sprintf(p.summaryDominant,
			a.Total, a.DominantSuitName, a.SuitDistribution[a.DominantSuit], a.DominantSuit.Domain(lang)))
	}

	reversed := fmt.Sprintf(p.summaryReversed, a.ReversedPercentage)
	switch {
	case a.ReversedPercentage > 50:
		reversed += p.reversedHigh
	case a.ReversedPercentage < 20:
		reversed += p.reversedLow
	default:
		reversed += p.reversedMid
	}
	parts = append(parts, reversed)

	if majorHeavy(a) {
		parts = append(parts, fmt.Sprintf(p.summaryMajor, a.MajorArcanaCount))
	}
	return strings.Join(parts, p.sentenceSep)
}

// majorHeavy is true when at least a third of the window is major arcana
func majorHeavy(a Analysis) bool {
	return a.Total > 0 && a.MajorArcanaCount*3 >= a.Total
}

func (p phrasebook) recommendations(a Analysis) []string {
	var recs []string
	if a.ReversedPercentage > 50 {
		recs = append(recs, p.recSlowDown)
	}
	if a.DominantSuit != "" {
		recs = append(recs, p.recSuit[a.DominantSuit])
	}
	if majorHeavy(a) && a.DominantSuit != card.Major {
		recs = append(recs, p.recMajor)
	}
	if a.CurrentStreak < 3 {
		recs = append(recs, p.recStreak)
	}
	if len(recs) == 0 {
		recs = append(recs, p.recGeneral)
	}
	return recs
}

func (p phrasebook) compareSummary(c Comparison, lang card.Lang) string {
	var parts []string
	switch d := c.SuitChanges[c.LargestChange]; {
	case c.LargestChange == "" || d == 0:
		parts = append(parts, p.suitStable)
	case d > 0:
		parts = append(parts, fmt.Sprintf(p.suitUp, c.LargestChange.Name(lang), d, c.LargestChange.Domain(lang)))
	default:
		parts = append(parts, fmt.Sprintf(p.suitDown, c.LargestChange.Name(lang), -d, c.LargestChange.Domain(lang)))
	}

	switch {
	case c.ReversedDelta >= ReversedShiftThreshold:
		parts = append(parts, fmt.Sprintf(p.reversedRise, c.ReversedDelta))
	case c.ReversedDelta <= -ReversedShiftThreshold:
		parts = append(parts, fmt.Sprintf(p.reversedFall, -c.ReversedDelta))
	}

	if c.MajorArcanaDelta > 0 {
		parts = append(parts, fmt.Sprintf(p.majorIncrease, c.MajorArcanaDelta))
	}
	return strings.Join(parts, p.sentenceSep)
}
