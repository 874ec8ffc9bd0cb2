package trend

import (
	"sort"
	"time"

	"github.com/arcanaland/tarotlog/internal/record"
)

// CurrentStreak counts consecutive days with a record, walking back from
// today and stopping at the first gap. It is 0 when today has no record.
func CurrentStreak(history []record.DailyCardRecord, today time.Time) int {
	dates := make(map[string]bool, len(history))
	for _, rec := range history {
		dates[rec.Date] = true
	}

	// noon in UTC keeps AddDate clear of DST transitions
	day := time.Date(today.Year(), today.Month(), today.Day(), 12, 0, 0, 0, time.UTC)
	n := 0
	for dates[record.DateKey(day)] {
		n++
		day = day.AddDate(0, 0, -1)
	}
	return n
}

// LongestStreak returns the longest run of consecutive dates in history
func LongestStreak(history []record.DailyCardRecord) int {
	days := make([]time.Time, 0, len(history))
	seen := make(map[string]bool, len(history))
	for _, rec := range history {
		if seen[rec.Date] {
			continue
		}
		d, err := record.ParseDate(rec.Date, time.UTC)
		if err != nil {
			continue
		}
		seen[rec.Date] = true
		days = append(days, d)
	}
	if len(days) == 0 {
		return 0
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}
