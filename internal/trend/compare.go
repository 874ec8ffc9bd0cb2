package trend

import (
	"time"

	"github.com/arcanaland/tarotlog/internal/card"
	"github.com/arcanaland/tarotlog/internal/record"
)

// ReversedShiftThreshold is the reversed-percentage change, in points, that
// earns a comment in a comparison
const ReversedShiftThreshold = 20

// Comparison diffs two adjacent windows of history. Deltas are current minus previous.
type Comparison struct {
	Insufficient bool `json:"insufficient"`
	CurrentDays  int  `json:"currentDays"`
	PreviousDays int  `json:"previousDays"`

	SuitChanges      map[card.Suit]int    `json:"suitChanges"`
	ElementChanges   map[card.Element]int `json:"elementChanges"`
	ReversedDelta    int                  `json:"reversedDelta"`
	MajorArcanaDelta int                  `json:"majorArcanaDelta"`
	LargestChange    card.Suit            `json:"largestChange,omitempty"`

	Summary string `json:"summary"`
}

// Compare diffs the most recent currentDays records against the previousDays
// records before them. History shorter than both windows together yields an
// insufficient-data comparison.
func Compare(history []record.DailyCardRecord, currentDays, previousDays int, lang card.Lang) Comparison {
	p := phrasesFor(lang)
	c := Comparison{
		CurrentDays:    currentDays,
		PreviousDays:   previousDays,
		SuitChanges:    make(map[card.Suit]int),
		ElementChanges: make(map[card.Element]int),
	}
	if currentDays <= 0 || previousDays <= 0 || len(history) < currentDays+previousDays {
		c.Insufficient = true
		c.Summary = p.insufficientCompare
		return c
	}

	cur := count(history[:currentDays])
	prev := count(history[currentDays : currentDays+previousDays])

	for _, s := range card.Suits {
		c.SuitChanges[s] = cur.suits[s] - prev.suits[s]
	}
	for _, e := range card.Elements {
		c.ElementChanges[e] = cur.elements[e] - prev.elements[e]
	}
	c.ReversedDelta = cur.reversedPercentage() - prev.reversedPercentage()
	c.MajorArcanaDelta = cur.majors - prev.majors

	largest := 0
	for _, s := range card.Suits {
		if d := abs(c.SuitChanges[s]); d > largest {
			c.LargestChange, largest = s, d
		}
	}

	c.Summary = p.compareSummary(c, lang)
	return c
}

// MonthlyReport sets the days elapsed this month against the previous month
type MonthlyReport struct {
	CurrentDays  int        `json:"currentDays"`
	PreviousDays int        `json:"previousDays"`
	Current      Analysis   `json:"current"`
	Previous     Analysis   `json:"previous"`
	Comparison   Comparison `json:"comparison"`
}

// Monthly analyzes the current month to date and the length of the previous
// month. The previous window starts after the current one, as in Compare.
func Monthly(history []record.DailyCardRecord, today time.Time, lang card.Lang) MonthlyReport {
	currentDays := today.Day()
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 12, 0, 0, 0, time.UTC)
	lastOfPrevious := firstOfMonth.AddDate(0, 0, -1)
	previousDays := lastOfPrevious.Day()

	return MonthlyReport{
		CurrentDays:  currentDays,
		PreviousDays: previousDays,
		Current:      Analyze(history, currentDays, lang, today),
		Previous:     Analyze(history[len(window(history, currentDays)):], previousDays, lang, lastOfPrevious),
		Comparison:   Compare(history, currentDays, previousDays, lang),
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
