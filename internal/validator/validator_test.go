package validator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/tarotlog/internal/card"
	"github.com/arcanaland/tarotlog/internal/catalog"
)

func embeddedFile(t *testing.T) catalog.File {
	t.Helper()
	var f catalog.File
	require.NoError(t, json.Unmarshal(catalog.Embedded(), &f))
	return f
}

func validate(t *testing.T, f catalog.File) ValidationResults {
	t.Helper()
	data, err := json.Marshal(f)
	require.NoError(t, err)
	results, err := NewValidator("").ValidateBytes(data)
	require.NoError(t, err)
	return results
}

func hasMessage(msgs []string, substr string) bool {
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func TestEmbeddedCatalogIsValid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, os.WriteFile(path, catalog.Embedded(), 0644))

	results, err := NewValidator(path).Validate()
	require.NoError(t, err)
	assert.True(t, results.Valid(), "errors: %v", results.Errors)
	assert.Empty(t, results.Warnings)
}

func TestValidateUnreadable(t *testing.T) {
	_, err := NewValidator(filepath.Join(t.TempDir(), "missing.json")).Validate()
	assert.Error(t, err)

	_, err = NewValidator("").ValidateBytes([]byte("{not json"))
	assert.Error(t, err)
}

func TestValidateFindsProblems(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *catalog.File)
		message string
		warning bool
	}{
		{
			name:    "info totals",
			mutate:  func(f *catalog.File) { f.Info.TotalCards = 77 },
			message: "info.totalCards is 77",
		},
		{
			name: "missing major card",
			mutate: func(f *catalog.File) {
				f.MajorArcana = f.MajorArcana[:21]
				f.Info.MajorArcana, f.Info.TotalCards = 21, 77
			},
			message: "missing major arcana cards: 21",
		},
		{
			name: "missing suit",
			mutate: func(f *catalog.File) {
				delete(f.MinorArcana, card.Swords)
				f.Info.MinorArcana, f.Info.TotalCards = 42, 64
			},
			message: "missing suit: swords",
		},
		{
			name: "missing rank",
			mutate: func(f *catalog.File) {
				f.MinorArcana[card.Cups] = f.MinorArcana[card.Cups][1:]
				f.Info.MinorArcana, f.Info.TotalCards = 55, 77
			},
			message: "missing cards in cups suit: ace",
		},
		{
			name:    "wrong suit",
			mutate:  func(f *catalog.File) { f.MinorArcana[card.Wands][0].Suit = card.Cups },
			message: "is listed under wands but has suit \"cups\"",
		},
		{
			name:    "duplicate id",
			mutate:  func(f *catalog.File) { f.MajorArcana[1].ID = f.MajorArcana[0].ID },
			message: "duplicate card id: major_arcana.00",
		},
		{
			name:    "missing english name",
			mutate:  func(f *catalog.File) { f.MajorArcana[0].Name.En = "" },
			message: "is missing a name in en",
		},
		{
			name:    "missing reversed description",
			mutate:  func(f *catalog.File) { f.MajorArcana[3].Meanings.Reversed.Description.ZhTW = "" },
			message: "has no reversed description in zh-TW",
		},
		{
			name:    "missing aspects",
			mutate:  func(f *catalog.File) { f.MajorArcana[0].Meanings.Upright.Aspects.Love = card.Text{} },
			message: "incomplete upright aspects: love",
			warning: true,
		},
		{
			name:    "missing language",
			mutate:  func(f *catalog.File) { f.Info.Languages = []card.Lang{card.ZhTW} },
			message: "does not list en",
			warning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := embeddedFile(t)
			tt.mutate(&f)
			results := validate(t, f)
			if tt.warning {
				assert.True(t, results.Valid(), "errors: %v", results.Errors)
				assert.True(t, hasMessage(results.Warnings, tt.message), "warnings: %v", results.Warnings)
				return
			}
			assert.True(t, hasMessage(results.Errors, tt.message), "errors: %v", results.Errors)
		})
	}
}

func TestValidateImages(t *testing.T) {
	dir := t.TempDir()
	f := embeddedFile(t)
	for _, c := range f.MajorArcana {
		path := filepath.Join(dir, c.Image)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("png"), 0644))
	}

	v := NewValidator("")
	v.ImagesDir = dir
	results, err := v.ValidateBytes(catalog.Embedded())
	require.NoError(t, err)
	assert.True(t, results.Valid())
	require.Len(t, results.Warnings, 1)
	assert.Contains(t, results.Warnings[0], "missing card images")
	assert.NotContains(t, results.Warnings[0], f.MajorArcana[0].Image)

	v = NewValidator("")
	v.ImagesDir = filepath.Join(dir, "nope")
	results, err = v.ValidateBytes(catalog.Embedded())
	require.NoError(t, err)
	assert.False(t, results.Valid())
}
