// Package validator checks a catalog JSON file for structural problems
// before it is used as a custom card set.
package validator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arcanaland/tarotlog/internal/card"
	"github.com/arcanaland/tarotlog/internal/catalog"
)

const (
	majorCount = 22
	suitCount  = 14
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether no errors were found
func (r ValidationResults) Valid() bool {
	return len(r.Errors) == 0
}

type Validator struct {
	CatalogPath string
	// ImagesDir, when set, is checked for every card's image file
	ImagesDir string
	Results   ValidationResults

	file catalog.File
}

func NewValidator(catalogPath string) *Validator {
	return &Validator{
		CatalogPath: catalogPath,
		Results:     ValidationResults{},
	}
}

// Validate reads the catalog file and runs every check. The error is only
// set when the file cannot be read or decoded at all.
func (v *Validator) Validate() (ValidationResults, error) {
	data, err := os.ReadFile(v.CatalogPath)
	if err != nil {
		return v.Results, fmt.Errorf("error reading catalog: %w", err)
	}
	return v.ValidateBytes(data)
}

// ValidateBytes runs every check against catalog JSON held in memory
func (v *Validator) ValidateBytes(data []byte) (ValidationResults, error) {
	if err := json.Unmarshal(data, &v.file); err != nil {
		return v.Results, fmt.Errorf("error parsing catalog: %v", err)
	}

	v.validateInfo()
	v.validateMajorArcana()
	v.validateMinorArcana()
	v.validateIDs()
	v.validateText()
	v.validateImages()

	return v.Results, nil
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

func (v *Validator) minorTotal() int {
	total := 0
	for _, cards := range v.file.MinorArcana {
		total += len(cards)
	}
	return total
}

// validateInfo checks the header totals against the card lists
func (v *Validator) validateInfo() {
	info := v.file.Info
	major, minor := len(v.file.MajorArcana), v.minorTotal()

	if info.Version == "" {
		v.warnf("info.version is empty")
	}
	if info.MajorArcana != major {
		v.errorf("info.majorArcana is %d but %d major arcana cards are listed", info.MajorArcana, major)
	}
	if info.MinorArcana != minor {
		v.errorf("info.minorArcana is %d but %d minor arcana cards are listed", info.MinorArcana, minor)
	}
	if info.TotalCards != major+minor {
		v.errorf("info.totalCards is %d but %d cards are listed", info.TotalCards, major+minor)
	}

	langs := map[card.Lang]bool{}
	for _, l := range info.Languages {
		langs[l] = true
	}
	for _, l := range []card.Lang{card.ZhTW, card.En} {
		if !langs[l] {
			v.warnf("info.languages does not list %s", l)
		}
	}
}

// validateMajorArcana checks for all 22 major arcana cards (0-21)
func (v *Validator) validateMajorArcana() {
	if len(v.file.MajorArcana) == 0 {
		v.errorf("majorArcana is empty")
		return
	}

	seen := map[int]bool{}
	for _, c := range v.file.MajorArcana {
		if c.Suit != card.Major {
			v.errorf("card %s is listed under majorArcana but has suit %q", c.ID, c.Suit)
		}
		if c.Number < 0 || c.Number >= majorCount {
			v.errorf("card %s has number %d (major arcana are numbered 0-21)", c.ID, c.Number)
			continue
		}
		seen[c.Number] = true
	}

	missing := []string{}
	for i := 0; i < majorCount; i++ {
		if !seen[i] {
			missing = append(missing, fmt.Sprintf("%02d", i))
		}
	}
	if len(missing) > 0 {
		v.errorf("missing major arcana cards: %s", strings.Join(missing, ", "))
	}
}

// validateMinorArcana checks for all four suits with 14 cards each
func (v *Validator) validateMinorArcana() {
	for key := range v.file.MinorArcana {
		if !key.Valid() || key == card.Major {
			v.errorf("unknown minor arcana suit: %s", key)
		}
	}

	for _, suit := range card.MinorSuits {
		cards, ok := v.file.MinorArcana[suit]
		if !ok {
			v.errorf("missing suit: %s", suit)
			continue
		}

		seen := map[int]bool{}
		for _, c := range cards {
			if c.Suit != suit {
				v.errorf("card %s is listed under %s but has suit %q", c.ID, suit, c.Suit)
			}
			if c.Number < 1 || c.Number > suitCount {
				v.errorf("card %s has number %d (minor arcana are numbered 1-14)", c.ID, c.Number)
				continue
			}
			seen[c.Number] = true
		}

		missing := []string{}
		for i, rank := range card.Ranks {
			if !seen[i+1] {
				missing = append(missing, rank)
			}
		}
		if len(missing) > 0 {
			v.errorf("missing cards in %s suit: %s", suit, strings.Join(missing, ", "))
		}
	}
}

func (v *Validator) eachCard(fn func(c card.Card)) {
	for _, c := range v.file.MajorArcana {
		fn(c)
	}
	for _, suit := range card.MinorSuits {
		for _, c := range v.file.MinorArcana[suit] {
			fn(c)
		}
	}
}

// validateIDs checks that every card has a unique id
func (v *Validator) validateIDs() {
	seen := map[string]bool{}
	v.eachCard(func(c card.Card) {
		switch {
		case c.ID == "":
			v.errorf("a %s card numbered %d has no id", c.Suit, c.Number)
		case seen[c.ID]:
			v.errorf("duplicate card id: %s", c.ID)
		}
		seen[c.ID] = true
	})
}

// validateText checks names and meanings are present in both languages
func (v *Validator) validateText() {
	v.eachCard(func(c card.Card) {
		if c.Name.ZhTW == "" || c.Name.En == "" {
			v.errorf("card %s is missing a name in %s", c.ID, missingLangs(c.Name))
		}

		for _, o := range []struct {
			label string
			m     card.Meaning
		}{{"upright", c.Meanings.Upright}, {"reversed", c.Meanings.Reversed}} {
			if len(o.m.Keywords.ZhTW) == 0 || len(o.m.Keywords.En) == 0 {
				v.errorf("card %s has no %s keywords in %s", c.ID, o.label,
					missingLangs(card.Text{ZhTW: strings.Join(o.m.Keywords.ZhTW, ""), En: strings.Join(o.m.Keywords.En, "")}))
			}
			if o.m.Description.ZhTW == "" || o.m.Description.En == "" {
				v.errorf("card %s has no %s description in %s", c.ID, o.label, missingLangs(o.m.Description))
			}

			var empty []string
			for _, a := range []struct {
				name string
				t    card.Text
			}{
				{"love", o.m.Aspects.Love},
				{"career", o.m.Aspects.Career},
				{"health", o.m.Aspects.Health},
				{"spiritual", o.m.Aspects.Spiritual},
			} {
				if a.t.ZhTW == "" || a.t.En == "" {
					empty = append(empty, a.name)
				}
			}
			if len(empty) > 0 {
				v.warnf("card %s has incomplete %s aspects: %s", c.ID, o.label, strings.Join(empty, ", "))
			}
		}
	})
}

// validateImages checks each card image exists under ImagesDir
func (v *Validator) validateImages() {
	if v.ImagesDir == "" {
		return
	}
	if _, err := os.Stat(v.ImagesDir); os.IsNotExist(err) {
		v.errorf("images directory not found: %s", v.ImagesDir)
		return
	}

	missing := []string{}
	v.eachCard(func(c card.Card) {
		if c.Image == "" {
			v.warnf("card %s has no image", c.ID)
			return
		}
		if _, err := os.Stat(filepath.Join(v.ImagesDir, c.Image)); os.IsNotExist(err) {
			missing = append(missing, c.Image)
		}
	})
	if len(missing) > 0 {
		v.warnf("missing card images in %s: %s", v.ImagesDir, strings.Join(missing, ", "))
	}
}

func missingLangs(t card.Text) string {
	var langs []string
	if t.ZhTW == "" {
		langs = append(langs, string(card.ZhTW))
	}
	if t.En == "" {
		langs = append(langs, string(card.En))
	}
	return strings.Join(langs, ", ")
}
