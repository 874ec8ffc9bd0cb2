// Package record defines the persisted reading and daily-card entities.
package record

import (
	"time"

	"github.com/arcanaland/tarotlog/internal/card"
)

// DateLayout is the calendar-day key format of daily records
const DateLayout = "2006-01-02"

// ReadingType distinguishes free readings from daily draws
type ReadingType string

const (
	Free  ReadingType = "free"
	Daily ReadingType = "daily"
)

// Valid reports whether t is a known reading type
func (t ReadingType) Valid() bool {
	return t == Free || t == Daily
}

// DailyAspects is the three-part elaboration of a daily card
type DailyAspects struct {
	Physical  string `json:"physical"`
	Emotional string `json:"emotional"`
	Spiritual string `json:"spiritual"`
}

// ReadingResult is a completed reading. It is never modified after creation.
type ReadingResult struct {
	ID             string           `json:"id"`
	Timestamp      time.Time        `json:"timestamp"`
	Type           ReadingType      `json:"type"`
	Cards          []card.DrawnCard `json:"cards"`
	Interpretation string           `json:"interpretation"`
	Aspects        *DailyAspects    `json:"aspects,omitempty"`
}

// DailyCardRecord is the single daily draw for one calendar date
type DailyCardRecord struct {
	Date      string         `json:"date"`
	Card      card.DrawnCard `json:"card"`
	Aspects   DailyAspects   `json:"aspects"`
	Timestamp time.Time      `json:"timestamp"`
}

// DateKey formats t as a daily record key in t's own location
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a daily record key in loc
func ParseDate(key string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, key, loc)
}

// Privacy controls what a shared reading reveals
type Privacy struct {
	IncludeDate           bool   `json:"includeDate"`
	IncludeInterpretation bool   `json:"includeInterpretation"`
	IncludeAspects        bool   `json:"includeAspects"`
	DisplayName           string `json:"displayName,omitempty"`
}

// Preferences are the persisted user settings
type Preferences struct {
	Language            card.Lang `json:"language"`
	AllowReversed       bool      `json:"allowReversed"`
	ReversedProbability float64   `json:"reversedProbability"`
	Privacy             Privacy   `json:"privacy"`
}

// DefaultPreferences returns the settings used before the user changes anything
func DefaultPreferences() Preferences {
	return Preferences{
		Language:            card.ZhTW,
		AllowReversed:       true,
		ReversedProbability: 0.3,
		Privacy: Privacy{
			IncludeDate:           true,
			IncludeInterpretation: true,
			IncludeAspects:        true,
		},
	}
}
