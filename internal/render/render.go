// Package render prints readings, daily cards and trend reports to a
// terminal.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	colorize "github.com/fatih/color"

	"github.com/arcanaland/tarotlog/internal/card"
	"github.com/arcanaland/tarotlog/internal/record"
	"github.com/arcanaland/tarotlog/internal/spread"
	"github.com/arcanaland/tarotlog/internal/trend"
)

type labels struct {
	card, id, arcana, suit, element, number, keywords, description string
	love, career, health, spiritual                                 string
	upright, reversed                                               string

	spread, date, interpretation string
	aspects                      [3]string
	noReadings, noDaily          string

	days, total, dominant, reversedRate, majors, numerology string
	keywordsTop, streak, longest, weekday, summary, advice  string
	suitChange, elementChange, reversedDelta, majorDelta    string
	current, previous, thisMonth, lastMonth                 string
	insufficient                                            string
	size, wrote, imported, removed                          string
}

var texts = map[card.Lang]labels{
	card.ZhTW: {
		card: "牌名", id: "編號", arcana: "類別", suit: "花色", element: "元素", number: "數字",
		keywords: "關鍵字", description: "牌義",
		love: "感情", career: "事業", health: "健康", spiritual: "靈性",
		upright: "正位", reversed: "逆位",

		spread: "牌陣", date: "日期", interpretation: "解讀",
		aspects:    [3]string{"身體", "情緒", "靈性"},
		noReadings: "尚無占卜紀錄。", noDaily: "尚無每日抽牌紀錄。",

		days: "天數", total: "抽牌次數", dominant: "主導花色", reversedRate: "逆位比例", majors: "大阿爾克那",
		numerology: "生命靈數", keywordsTop: "常見關鍵字", streak: "連續天數", longest: "最長連續",
		weekday: "最常抽牌", summary: "總結", advice: "建議",
		suitChange: "花色變化", elementChange: "元素變化", reversedDelta: "逆位比例變化", majorDelta: "大阿爾克那變化",
		current: "本期", previous: "前期", thisMonth: "本月", lastMonth: "上個月",
		insufficient: "資料不足",
		size:         "大小", wrote: "已寫入", imported: "已匯入", removed: "已清除",
	},
	card.En: {
		card: "Card", id: "ID", arcana: "Arcana", suit: "Suit", element: "Element", number: "Number",
		keywords: "Keywords", description: "Meaning",
		love: "Love", career: "Career", health: "Health", spiritual: "Spiritual",
		upright: "Upright", reversed: "Reversed",

		spread: "Spread", date: "Date", interpretation: "Interpretation",
		aspects:    [3]string{"Physical", "Emotional", "Spiritual"},
		noReadings: "No readings yet.", noDaily: "No daily cards yet.",

		days: "Days", total: "Draws", dominant: "Dominant suit", reversedRate: "Reversed", majors: "Major arcana",
		numerology: "Numerology", keywordsTop: "Top keywords", streak: "Streak", longest: "Longest streak",
		weekday: "Busiest day", summary: "Summary", advice: "Advice",
		suitChange: "Suit changes", elementChange: "Element changes", reversedDelta: "Reversed change", majorDelta: "Major arcana change",
		current: "Current", previous: "Previous", thisMonth: "This month", lastMonth: "Last month",
		insufficient: "Not enough data",
		size:         "Size", wrote: "Wrote", imported: "Imported", removed: "Removed",
	},
}

var weekdayNames = map[card.Lang][7]string{
	card.ZhTW: {"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"},
	card.En:   {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
}

// Printer writes localized, colored output
type Printer struct {
	w     io.Writer
	lang  card.Lang
	width int
	l     labels
}

// NewPrinter returns a printer writing to w, wrapping text at width columns
func NewPrinter(w io.Writer, lang card.Lang, width int) *Printer {
	l, ok := texts[lang]
	if !ok {
		lang, l = card.ZhTW, texts[card.ZhTW]
	}
	if width <= 0 {
		width = DefaultWidth
	}
	return &Printer{w: w, lang: lang, width: width, l: l}
}

func (p *Printer) println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

func (p *Printer) field(label, value string) string {
	return colorize.CyanString("%s", label+": ") + colorize.HiWhiteString("%s", value)
}

func (p *Printer) heading(s string) {
	p.println(colorize.New(colorize.Bold, colorize.FgMagenta).Sprint(s))
}

// wrapped prints text wrapped to the printer width with an indent
func (p *Printer) wrapped(indent, text string) {
	for _, line := range WrapText(text, p.width-Width(indent)) {
		p.println(indent + line)
	}
}

func (p *Printer) orientation(dc card.DrawnCard) string {
	if dc.IsReversed {
		return colorize.RedString("%s", dc.Orientation(p.lang))
	}
	return colorize.GreenString("%s", dc.Orientation(p.lang))
}

func arcanaName(c card.Card, lang card.Lang) string {
	if c.IsMajor() {
		return card.Major.Name(lang)
	}
	if lang == card.En {
		return "Minor Arcana"
	}
	return "小阿爾克那"
}

// Card prints a catalog card with both orientations. A non-empty art is
// placed to the left of the card details.
func (p *Printer) Card(c card.Card, art string) {
	info := []string{
		p.field(p.l.card, c.Name.In(p.lang)),
		p.field(p.l.id, c.ID),
		p.field(p.l.arcana, arcanaName(c, p.lang)),
	}
	if !c.IsMajor() {
		info = append(info, p.field(p.l.suit, c.Suit.Name(p.lang)))
	}
	info = append(info,
		p.field(p.l.element, c.Suit.Element().Name(p.lang)),
		p.field(p.l.number, fmt.Sprint(c.Number)),
	)

	artLines := strings.Split(art, "\n")
	if art == "" {
		artLines = nil
	}
	artWidth := 0
	for _, line := range artLines {
		if w := Width(line); w > artWidth {
			artWidth = w
		}
	}
	textWidth := p.width - artWidth - 6
	if textWidth < 20 {
		textWidth = 20
	}

	for _, o := range []struct {
		label string
		m     card.Meaning
	}{{p.l.upright, c.Meanings.Upright}, {p.l.reversed, c.Meanings.Reversed}} {
		info = append(info, "", colorize.New(colorize.Bold).Sprint(o.label))
		info = append(info, p.field(p.l.keywords, strings.Join(o.m.Keywords.In(p.lang), ", ")))
		info = append(info, WrapText(o.m.Description.In(p.lang), textWidth)...)
		for _, a := range []struct {
			label string
			t     card.Text
		}{
			{p.l.love, o.m.Aspects.Love},
			{p.l.career, o.m.Aspects.Career},
			{p.l.health, o.m.Aspects.Health},
			{p.l.spiritual, o.m.Aspects.Spiritual},
		} {
			if text := a.t.In(p.lang); text != "" {
				info = append(info, WrapText(colorize.CyanString("%s", a.label+": ")+text, textWidth)...)
			}
		}
	}

	p.println()
	rows := max(len(artLines), len(info))
	for i := 0; i < rows; i++ {
		var b strings.Builder
		b.WriteString("  ")
		if len(artLines) > 0 {
			line := ""
			if i < len(artLines) {
				line = artLines[i]
			}
			b.WriteString(PadRight(line, artWidth+4))
		}
		if i < len(info) {
			b.WriteString(info[i])
		}
		p.println(strings.TrimRight(b.String(), " "))
	}
	p.println()
}

// Reading prints every card of a reading followed by its interpretation
func (p *Printer) Reading(r record.ReadingResult) {
	framework := spread.For(len(r.Cards))

	p.heading(framework.Name.In(p.lang))
	p.println(p.field(p.l.date, r.Timestamp.Local().Format("2006-01-02 15:04")), " ", colorize.HiBlackString("%s", r.ID))
	p.println()

	for i, dc := range r.Cards {
		position := dc.PositionMeaning
		if position == "" && i < len(framework.Positions) {
			position = framework.Positions[i].Name.In(p.lang)
		}
		p.println(fmt.Sprintf("  %d. %s  %s (%s)", dc.Position, colorize.YellowString("%s", position),
			colorize.HiWhiteString("%s", dc.Card.Name.In(p.lang)), p.orientation(dc)))
		p.wrapped("     ", strings.Join(dc.Keywords(p.lang), ", "))
	}

	if r.Aspects != nil {
		p.println()
		p.aspects(*r.Aspects)
	}

	p.println()
	p.println(colorize.CyanString("%s", p.l.interpretation+":"))
	for _, para := range strings.Split(r.Interpretation, "\n") {
		p.wrapped("  ", para)
	}
	p.println()
}

func (p *Printer) aspects(a record.DailyAspects) {
	for i, text := range []string{a.Physical, a.Emotional, a.Spiritual} {
		p.println(colorize.CyanString("  " + p.l.aspects[i] + ":"))
		p.wrapped("    ", text)
	}
}

// DailyCard prints a daily draw with its three aspects. A non-empty art is
// printed above the card.
func (p *Printer) DailyCard(rec record.DailyCardRecord, art string) {
	if art != "" {
		p.println(art)
	}
	p.heading(fmt.Sprintf("%s  %s", rec.Date, rec.Card.Card.Name.In(p.lang)))
	p.println(p.field(p.l.suit, rec.Card.Card.Suit.Name(p.lang)), " ", p.orientation(rec.Card))
	p.println(p.field(p.l.keywords, strings.Join(rec.Card.Keywords(p.lang), ", ")))
	p.println()
	p.aspects(rec.Aspects)
	p.println()
}

// ReadingHistory lists readings newest first, one per line
func (p *Printer) ReadingHistory(rs []record.ReadingResult, now time.Time) {
	if len(rs) == 0 {
		p.println(p.l.noReadings)
		return
	}
	for _, r := range rs {
		names := make([]string, 0, len(r.Cards))
		for _, dc := range r.Cards {
			names = append(names, dc.Card.Name.In(p.lang))
		}
		p.println(fmt.Sprintf("%s  %-6s %s  %s",
			colorize.HiBlackString("%s", r.ID[:min(8, len(r.ID))]),
			string(r.Type),
			colorize.YellowString("%s", p.when(r.Timestamp, now)),
			strings.Join(names, p.listSep())))
	}
}

// DailyHistory lists daily cards newest first, one per line
func (p *Printer) DailyHistory(recs []record.DailyCardRecord) {
	if len(recs) == 0 {
		p.println(p.l.noDaily)
		return
	}
	for _, rec := range recs {
		p.println(fmt.Sprintf("%s  %s (%s)  %s", rec.Date,
			colorize.HiWhiteString("%s", rec.Card.Card.Name.In(p.lang)), p.orientation(rec.Card),
			strings.Join(rec.Card.Keywords(p.lang), ", ")))
	}
}

// when formats t relative to now in English and as a date otherwise
func (p *Printer) when(t, now time.Time) string {
	if p.lang == card.En {
		return humanize.RelTime(t, now, "ago", "from now")
	}
	return t.Local().Format("2006-01-02 15:04")
}

func (p *Printer) listSep() string {
	if p.lang == card.En {
		return ", "
	}
	return "、"
}

// Analysis prints a trend analysis
func (p *Printer) Analysis(a trend.Analysis) {
	p.heading(fmt.Sprintf("%s: %d", p.l.days, a.Days))
	if a.Insufficient {
		p.println(colorize.YellowString("%s", p.l.insufficient))
		p.wrapped("  ", a.Summary)
		for _, r := range a.Recommendations {
			p.wrapped("  • ", r)
		}
		return
	}

	p.println(p.field(p.l.total, fmt.Sprint(a.Total)))
	p.println(p.field(p.l.dominant, a.DominantSuitName))
	p.println(p.field(p.l.reversedRate, fmt.Sprintf("%d%%", a.ReversedPercentage)))
	p.println(p.field(p.l.majors, fmt.Sprint(a.MajorArcanaCount)))
	if a.NumerologyMode >= 0 {
		p.println(p.field(p.l.numerology, fmt.Sprint(a.NumerologyMode)))
	}
	p.println(p.field(p.l.keywordsTop, strings.Join(a.TopKeywords, p.listSep())))
	p.println(p.field(p.l.streak, fmt.Sprint(a.CurrentStreak)), " ", p.field(p.l.longest, fmt.Sprint(a.LongestStreak)))
	if a.Weekday.HasData {
		p.println(p.field(p.l.weekday, weekdayNames[p.lang][a.Weekday.MostActive]))
	}

	p.println()
	for _, s := range card.Suits {
		n := a.SuitDistribution[s]
		p.println(fmt.Sprintf("  %s %s %d", PadRight(s.Name(p.lang), 12), bar(n, a.Total, 20), n))
	}

	p.println()
	for i, at := range a.Aspects {
		p.println(colorize.CyanString("  %s (%s):", p.l.aspects[i], at.Tone))
		p.wrapped("    ", at.Summary)
	}

	p.println()
	p.println(colorize.CyanString("%s", p.l.summary+":"))
	p.wrapped("  ", a.Summary)
	p.println(colorize.CyanString("%s", p.l.advice+":"))
	for _, r := range a.Recommendations {
		p.wrapped("  • ", r)
	}
	p.println()
}

func bar(n, total, width int) string {
	if total <= 0 {
		return strings.Repeat("·", width)
	}
	filled := n * width / total
	return colorize.MagentaString("%s", strings.Repeat("█", filled)) + strings.Repeat("·", width-filled)
}

// Comparison prints the difference between two periods
func (p *Printer) Comparison(c trend.Comparison) {
	p.heading(fmt.Sprintf("%s %d / %s %d", p.l.current, c.CurrentDays, p.l.previous, c.PreviousDays))
	if c.Insufficient {
		p.println(colorize.YellowString("%s", p.l.insufficient))
		p.wrapped("  ", c.Summary)
		return
	}

	p.println(colorize.CyanString("%s", p.l.suitChange+":"))
	for _, s := range card.Suits {
		p.println(fmt.Sprintf("  %s %s", PadRight(s.Name(p.lang), 12), signed(c.SuitChanges[s])))
	}
	p.println(colorize.CyanString("%s", p.l.elementChange+":"))
	elements := make([]card.Element, 0, len(c.ElementChanges))
	for e := range c.ElementChanges {
		elements = append(elements, e)
	}
	sort.Slice(elements, func(i, j int) bool { return elementIndex(elements[i]) < elementIndex(elements[j]) })
	for _, e := range elements {
		p.println(fmt.Sprintf("  %s %s", PadRight(e.Name(p.lang), 12), signed(c.ElementChanges[e])))
	}
	p.println(p.field(p.l.reversedDelta, signed(c.ReversedDelta)+"%"))
	p.println(p.field(p.l.majorDelta, signed(c.MajorArcanaDelta)))
	p.println()
	p.wrapped("  ", c.Summary)
	p.println()
}

func elementIndex(e card.Element) int {
	for i, x := range card.Elements {
		if x == e {
			return i
		}
	}
	return len(card.Elements)
}

func signed(n int) string {
	switch {
	case n > 0:
		return colorize.GreenString("+%d", n)
	case n < 0:
		return colorize.RedString("%d", n)
	}
	return "0"
}

// Monthly prints this month against the previous month
func (p *Printer) Monthly(m trend.MonthlyReport) {
	p.heading(p.l.thisMonth)
	p.Analysis(m.Current)
	p.heading(p.l.lastMonth)
	p.Analysis(m.Previous)
	p.Comparison(m.Comparison)
}

// Frameworks lists the spread layouts with their positions
func (p *Printer) Frameworks(fs []spread.Framework) {
	for _, f := range fs {
		p.heading(fmt.Sprintf("%d  %s", f.CardCount(), f.Name.In(p.lang)))
		p.wrapped("   ", f.Description.In(p.lang))
		for i, pos := range f.Positions {
			p.println(fmt.Sprintf("   %d. %s  %s", i+1, colorize.YellowString("%s", pos.Name.In(p.lang)), pos.Description.In(p.lang)))
		}
		p.println()
	}
}

// Wrote reports that n bytes were written to dest
func (p *Printer) Wrote(dest string, n int) {
	p.println(p.field(p.l.wrote, fmt.Sprintf("%s (%s)", dest, humanize.Bytes(uint64(n)))))
}

// Imported reports merged record counts
func (p *Printer) Imported(readings, daily int) {
	p.println(p.field(p.l.imported, fmt.Sprintf("%d / %d", readings, daily)))
}

// Removed reports how many readings a cleanup removed
func (p *Printer) Removed(n int) {
	p.println(p.field(p.l.removed, fmt.Sprint(n)))
}

// Usage reports storage consumed against the quota; a quota of zero means
// unlimited
func (p *Printer) Usage(used, quota int64) {
	value := humanize.Bytes(uint64(used))
	if quota > 0 {
		value += " / " + humanize.Bytes(uint64(quota))
	}
	p.println(p.field(p.l.size, value))
}
