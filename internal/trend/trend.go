// Package trend computes statistics and narratives over daily card history.
// Every function is pure: history goes in newest first, a snapshot comes out,
// and an empty window yields an explicit insufficient-data result.
package trend

import (
	"math"
	"sort"
	"time"

	"github.com/arcanaland/tarotlog/internal/card"
	"github.com/arcanaland/tarotlog/internal/record"
)

// DefaultDays is the analysis window used when none is given
const DefaultDays = 7

// Aspect names one of the three daily elaborations
type Aspect string

const (
	Physical  Aspect = "physical"
	Emotional Aspect = "emotional"
	Spiritual Aspect = "spiritual"
)

// Aspects lists the daily aspects in display order
var Aspects = []Aspect{Physical, Emotional, Spiritual}

// AspectTrend is the narrative for one aspect over a window
type AspectTrend struct {
	Aspect  Aspect `json:"aspect"`
	Tone    Tone   `json:"tone"`
	Summary string `json:"summary"`
}

// WeekdayPattern counts draws and reversals per weekday, indexed by time.Weekday
type WeekdayPattern struct {
	Draws      [7]int       `json:"draws"`
	Reversals  [7]int       `json:"reversals"`
	MostActive time.Weekday `json:"mostActive"`
	HasData    bool         `json:"hasData"`
}

// Analysis is a trend snapshot over the most recent records
type Analysis struct {
	Insufficient bool `json:"insufficient"`
	Days         int  `json:"days"`
	Total        int  `json:"total"`

	SuitDistribution    map[card.Suit]int    `json:"suitDistribution"`
	ElementDistribution map[card.Element]int `json:"elementDistribution"`
	ReversedPercentage  int                  `json:"reversedPercentage"`
	MajorArcanaCount    int                  `json:"majorArcanaCount"`
	DominantSuit        card.Suit            `json:"dominantSuit,omitempty"`
	DominantSuitName    string               `json:"dominantSuitName"`

	NumerologyDistribution map[int]int `json:"numerologyDistribution"`
	NumerologyMode         int         `json:"numerologyMode"` // -1 without data

	TopKeywords   []string       `json:"topKeywords"`
	CurrentStreak int            `json:"currentStreak"`
	LongestStreak int            `json:"longestStreak"`
	Weekday       WeekdayPattern `json:"weekday"`

	Aspects         []AspectTrend `json:"aspects"`
	Summary         string        `json:"summary"`
	Recommendations []string      `json:"recommendations"`
}

// stats are the counts shared by Analyze and Compare
type stats struct {
	total    int
	reversed int
	majors   int
	suits    map[card.Suit]int
	elements map[card.Element]int
}

func count(window []record.DailyCardRecord) stats {
	s := stats{
		total:    len(window),
		suits:    make(map[card.Suit]int, len(card.Suits)),
		elements: make(map[card.Element]int, len(card.Elements)),
	}
	for _, rec := range window {
		c := rec.Card.Card
		s.suits[c.Suit]++
		s.elements[c.Suit.Element()]++
		if c.IsMajor() {
			s.majors++
		}
		if rec.Card.IsReversed {
			s.reversed++
		}
	}
	return s
}

// reversedPercentage is the rounded share of reversed cards, 0 for an empty window
func (s stats) reversedPercentage() int {
	if s.total == 0 {
		return 0
	}
	return int(math.Round(float64(s.reversed) * 100 / float64(s.total)))
}

// dominant returns the most frequent suit; ties go to the earlier suit in card.Suits
func (s stats) dominant() (card.Suit, bool) {
	var best card.Suit
	n := 0
	for _, suit := range card.Suits {
		if s.suits[suit] > n {
			best, n = suit, s.suits[suit]
		}
	}
	return best, n > 0
}

// window returns the first days records of history
func window(history []record.DailyCardRecord, days int) []record.DailyCardRecord {
	if days > len(history) {
		days = len(history)
	}
	if days < 0 {
		days = 0
	}
	return history[:days]
}

// Analyze summarizes the most recent days records of history (newest first).
// Streaks are measured over the whole history, ending at today.
func Analyze(history []record.DailyCardRecord, days int, lang card.Lang, today time.Time) Analysis {
	if days <= 0 {
		days = DefaultDays
	}
	p := phrasesFor(lang)
	recs := window(history, days)
	s := count(recs)

	a := Analysis{
		Days:                   days,
		Total:                  s.total,
		SuitDistribution:       s.suits,
		ElementDistribution:    s.elements,
		ReversedPercentage:     s.reversedPercentage(),
		MajorArcanaCount:       s.majors,
		NumerologyDistribution: numerology(recs),
		CurrentStreak:          CurrentStreak(history, today),
		LongestStreak:          LongestStreak(history),
		Weekday:                weekdayPattern(recs),
	}
	a.NumerologyMode = numerologyMode(a.NumerologyDistribution)

	if s.total == 0 {
		a.Insufficient = true
		a.DominantSuitName = p.noData
		a.TopKeywords = []string{}
		a.Aspects = make([]AspectTrend, 0, len(Aspects))
		for _, aspect := range Aspects {
			a.Aspects = append(a.Aspects, AspectTrend{Aspect: aspect, Tone: Neutral, Summary: p.insufficient})
		}
		a.Summary = p.insufficient
		a.Recommendations = []string{p.recStart}
		return a
	}

	if suit, ok := s.dominant(); ok {
		a.DominantSuit = suit
		a.DominantSuitName = suit.Name(lang)
	}
	a.TopKeywords = topKeywords(recs, lang, 3)
	for _, aspect := range Aspects {
		tone := toneOf(aspect, recs)
		a.Aspects = append(a.Aspects, AspectTrend{
			Aspect:  aspect,
			Tone:    tone,
			Summary: p.aspectSummary(aspect, tone, aspectKeywords(aspect, recs, lang, a.TopKeywords, 3)),
		})
	}
	a.Summary = p.summary(a, lang)
	a.Recommendations = p.recommendations(a)
	return a
}

// topKeywords returns the n most frequent orientation keywords in the window.
// Equal counts keep the order in which keywords were first seen.
func topKeywords(recs []record.DailyCardRecord, lang card.Lang, n int) []string {
	counts := make(map[string]int)
	var order []string
	for _, rec := range recs {
		for _, kw := range rec.Card.Keywords(lang) {
			if counts[kw] == 0 {
				order = append(order, kw)
			}
			counts[kw]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	if order == nil {
		order = []string{}
	}
	return order
}

// NumerologyOf reduces a card number to its digit root; 0 stays 0
func NumerologyOf(number int) int {
	if number <= 0 {
		return 0
	}
	return 1 + (number-1)%9
}

func numerology(recs []record.DailyCardRecord) map[int]int {
	dist := make(map[int]int)
	for _, rec := range recs {
		dist[NumerologyOf(rec.Card.Card.Number)]++
	}
	return dist
}

// numerologyMode returns the most frequent root, the smallest on ties, or -1
func numerologyMode(dist map[int]int) int {
	mode, n := -1, 0
	for root := 0; root <= 9; root++ {
		if dist[root] > n {
			mode, n = root, dist[root]
		}
	}
	return mode
}

func weekdayPattern(recs []record.DailyCardRecord) WeekdayPattern {
	var w WeekdayPattern
	for _, rec := range recs {
		day, err := record.ParseDate(rec.Date, time.UTC)
		if err != nil {
			continue
		}
		wd := day.Weekday()
		w.Draws[wd]++
		if rec.Card.IsReversed {
			w.Reversals[wd]++
		}
		w.HasData = true
	}
	best := 0
	for wd, n := range w.Draws {
		if n > best {
			w.MostActive, best = time.Weekday(wd), n
		}
	}
	return w
}
