package card

import (
	"fmt"
	"strings"
)

// Lang identifies one of the languages carried by the catalog
type Lang string

const (
	ZhTW Lang = "zh-TW"
	En   Lang = "en"
)

// ParseLang accepts the catalog language tags, case-insensitively
func ParseLang(s string) (Lang, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zh-tw", "zh_tw", "zh":
		return ZhTW, nil
	case "en", "en-us", "en_us":
		return En, nil
	default:
		return "", fmt.Errorf("unsupported language: %q", s)
	}
}

// Text is a string carried in both catalog languages
type Text struct {
	ZhTW string `json:"zh-TW"`
	En   string `json:"en"`
}

// In returns the text for lang, falling back to Traditional Chinese
func (t Text) In(lang Lang) string {
	if lang == En && t.En != "" {
		return t.En
	}
	return t.ZhTW
}

// Words is a keyword list carried in both catalog languages
type Words struct {
	ZhTW []string `json:"zh-TW"`
	En   []string `json:"en"`
}

// In returns the keywords for lang, falling back to Traditional Chinese
func (w Words) In(lang Lang) []string {
	if lang == En && len(w.En) > 0 {
		return w.En
	}
	return w.ZhTW
}

// Aspects holds per-domain reading text
type Aspects struct {
	Love      Text `json:"love"`
	Career    Text `json:"career"`
	Health    Text `json:"health"`
	Spiritual Text `json:"spiritual"`
}

// Meaning is one orientation's interpretation of a card
type Meaning struct {
	Keywords    Words   `json:"keywords"`
	Description Text    `json:"description"`
	Aspects     Aspects `json:"aspects"`
}

// Meanings splits a card's interpretation by orientation
type Meanings struct {
	Upright  Meaning `json:"upright"`
	Reversed Meaning `json:"reversed"`
}

// Card represents a tarot card
type Card struct {
	ID       string   `json:"id"`     // Canonical ID (e.g., major_arcana.00, minor_arcana.wands.ace)
	Name     Text     `json:"name"`   // Localized name
	Suit     Suit     `json:"suit"`   // major for the major arcana
	Number   int      `json:"number"` // 0-21 for major arcana, 1-14 (ace..king) for minor
	Image    string   `json:"image"`  // Path relative to the images directory
	Meanings Meanings `json:"meanings"`
}

// IsMajor reports whether the card belongs to the major arcana
func (c Card) IsMajor() bool {
	return c.Suit == Major
}

// Meaning returns the interpretation for the given orientation
func (c Card) Meaning(reversed bool) Meaning {
	if reversed {
		return c.Meanings.Reversed
	}
	return c.Meanings.Upright
}

// DrawnCard is a card placed at a position of a spread
type DrawnCard struct {
	Card            Card   `json:"card"`
	Position        int    `json:"position"` // 1-based
	IsReversed      bool   `json:"isReversed"`
	PositionMeaning string `json:"positionMeaning,omitempty"`
}

// Meaning returns the interpretation matching the drawn orientation
func (d DrawnCard) Meaning() Meaning {
	return d.Card.Meaning(d.IsReversed)
}

// Keywords returns the orientation-appropriate keywords in lang
func (d DrawnCard) Keywords(lang Lang) []string {
	return d.Meaning().Keywords.In(lang)
}

// Orientation returns the localized orientation tag
func (d DrawnCard) Orientation(lang Lang) string {
	if d.IsReversed {
		return orientationNames[1].In(lang)
	}
	return orientationNames[0].In(lang)
}

var orientationNames = [2]Text{
	{ZhTW: "正位", En: "Upright"},
	{ZhTW: "逆位", En: "Reversed"},
}
