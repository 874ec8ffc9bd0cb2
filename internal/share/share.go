// Package share turns a reading into text fit for posting, honoring the
// user's privacy settings, and hands it to the system clipboard.
package share

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/arcanaland/tarotlog/internal/card"
	"github.com/arcanaland/tarotlog/internal/record"
	"github.com/arcanaland/tarotlog/internal/spread"
)

type labels struct {
	titleNamed     string // display name
	title          string
	date           string
	spread         string
	cardLine       string // index, position name, card name, orientation
	interpretation string
	aspects        [3]string
	tags           string
}

var texts = map[card.Lang]labels{
	card.ZhTW: {
		titleNamed:     "🔮 %s的塔羅占卜",
		title:          "🔮 我的塔羅占卜",
		date:           "日期：%s",
		spread:         "牌陣：%s",
		cardLine:       "%d. %s：%s（%s）",
		interpretation: "解讀：",
		aspects:        [3]string{"身體", "情緒", "靈性"},
		tags:           "#塔羅 #tarotlog",
	},
	card.En: {
		titleNamed:     "🔮 %s's tarot reading",
		title:          "🔮 My tarot reading",
		date:           "Date: %s",
		spread:         "Spread: %s",
		cardLine:       "%d. %s: %s (%s)",
		interpretation: "Interpretation:",
		aspects:        [3]string{"Physical", "Emotional", "Spiritual"},
		tags:           "#tarot #tarotlog",
	},
}

// Compose renders r as shareable text. Date, interpretation and daily aspects
// are included only when privacy allows; cards are always listed.
func Compose(r record.ReadingResult, privacy record.Privacy, lang card.Lang) string {
	l, ok := texts[lang]
	if !ok {
		l = texts[card.ZhTW]
	}
	framework := spread.For(len(r.Cards))

	var lines []string
	if name := strings.TrimSpace(privacy.DisplayName); name != "" {
		lines = append(lines, fmt.Sprintf(l.titleNamed, name))
	} else {
		lines = append(lines, l.title)
	}
	if privacy.IncludeDate && !r.Timestamp.IsZero() {
		lines = append(lines, fmt.Sprintf(l.date, record.DateKey(r.Timestamp)))
	}
	lines = append(lines, fmt.Sprintf(l.spread, framework.Name.In(lang)), "")

	for i, dc := range r.Cards {
		position := ""
		if i < len(framework.Positions) {
			position = framework.Positions[i].Name.In(lang)
		}
		lines = append(lines, fmt.Sprintf(l.cardLine, i+1, position, dc.Card.Name.In(lang), dc.Orientation(lang)))
	}

	if privacy.IncludeAspects && r.Aspects != nil {
		lines = append(lines, "",
			l.aspects[0]+": "+r.Aspects.Physical,
			l.aspects[1]+": "+r.Aspects.Emotional,
			l.aspects[2]+": "+r.Aspects.Spiritual)
	}
	if privacy.IncludeInterpretation && r.Interpretation != "" {
		lines = append(lines, "", l.interpretation, r.Interpretation)
	}

	lines = append(lines, "", l.tags)
	return strings.Join(lines, "\n")
}

// writeAll is swapped out in tests
var writeAll = clipboard.WriteAll

// Copy places text on the system clipboard
func Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not supported on this system")
	}
	if err := writeAll(text); err != nil {
		return fmt.Errorf("error copying to clipboard: %w", err)
	}
	return nil
}
