// Package catalog loads the static 78-card tarot catalog.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/arcanaland/tarotlog/internal/card"
)

//go:embed data/cards.json
var embedded []byte

var (
	// ErrCardNotFound is returned when a card id is not in the catalog.
	ErrCardNotFound = errors.New("card not found")
	// ErrInvalidCatalog is returned when catalog JSON is well formed but
	// its cards do not fit the suit layout
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// Info describes the catalog file
type Info struct {
	TotalCards  int         `json:"totalCards"`
	MajorArcana int         `json:"majorArcana"`
	MinorArcana int         `json:"minorArcana"`
	Languages   []card.Lang `json:"languages"`
	Version     string      `json:"version"`
}

// File mirrors the on-disk catalog JSON layout
type File struct {
	Info        Info                      `json:"info"`
	MajorArcana []card.Card               `json:"majorArcana"`
	MinorArcana map[card.Suit][]card.Card `json:"minorArcana"`
}

// Catalog is the loaded, read-only card set
type Catalog struct {
	info  Info
	cards []card.Card
	byID  map[string]int
}

// Load returns the catalog compiled into the binary
func Load() (*Catalog, error) {
	return Parse(embedded)
}

// LoadFile reads a custom catalog from path
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading catalog: %w", err)
	}
	return Parse(data)
}

// Embedded returns a copy of the built-in catalog JSON
func Embedded() []byte {
	out := make([]byte, len(embedded))
	copy(out, embedded)
	return out
}

// Parse decodes catalog JSON. Cards are ordered major arcana first, then
// cups, wands, swords and pentacles.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("error parsing catalog: %w", err)
	}

	if err := checkSuits(f); err != nil {
		return nil, err
	}

	c := &Catalog{
		info: f.Info,
		byID: make(map[string]int),
	}
	c.cards = append(c.cards, f.MajorArcana...)
	for _, suit := range card.MinorSuits {
		c.cards = append(c.cards, f.MinorArcana[suit]...)
	}
	if len(c.cards) == 0 {
		return nil, errors.New("error parsing catalog: no cards")
	}

	for i, cd := range c.cards {
		if cd.ID == "" {
			return nil, fmt.Errorf("error parsing catalog: card %d has no id", i)
		}
		if _, dup := c.byID[cd.ID]; dup {
			return nil, fmt.Errorf("error parsing catalog: duplicate card id %s", cd.ID)
		}
		c.byID[cd.ID] = i
	}

	return c, nil
}

// checkSuits rejects unknown suit groups and cards filed under the wrong group
func checkSuits(f File) error {
	for _, cd := range f.MajorArcana {
		if cd.Suit != card.Major {
			return fmt.Errorf("%w: major arcana card %s has suit %q", ErrInvalidCatalog, cd.ID, cd.Suit)
		}
	}
	for group, cards := range f.MinorArcana {
		if !group.Valid() || group == card.Major {
			return fmt.Errorf("%w: unknown minor arcana suit %q", ErrInvalidCatalog, group)
		}
		for _, cd := range cards {
			if cd.Suit != group {
				return fmt.Errorf("%w: card %s is listed under %s but has suit %q", ErrInvalidCatalog, cd.ID, group, cd.Suit)
			}
		}
	}
	return nil
}

// Info returns the catalog header
func (c *Catalog) Info() Info {
	return c.info
}

// Len returns the number of cards
func (c *Catalog) Len() int {
	return len(c.cards)
}

// Cards returns a copy of every card in catalog order
func (c *Catalog) Cards() []card.Card {
	out := make([]card.Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// Card looks a card up by its canonical id
func (c *Catalog) Card(id string) (card.Card, error) {
	i, ok := c.byID[id]
	if !ok {
		return card.Card{}, fmt.Errorf("%w: %s", ErrCardNotFound, id)
	}
	return c.cards[i], nil
}

// BySuit returns the cards of one suit in catalog order
func (c *Catalog) BySuit(s card.Suit) []card.Card {
	var out []card.Card
	for _, cd := range c.cards {
		if cd.Suit == s {
			out = append(out, cd)
		}
	}
	return out
}
