package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/tarotlog/internal/card"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 78, c.Len())
	assert.Equal(t, 78, c.Info().TotalCards)
	assert.Len(t, c.BySuit(card.Major), 22)
	for _, s := range card.MinorSuits {
		assert.Len(t, c.BySuit(s), 14, s)
	}

	fool, err := c.Card("major_arcana.00")
	require.NoError(t, err)
	assert.Equal(t, "愚者", fool.Name.In(card.ZhTW))
	assert.Equal(t, "The Fool", fool.Name.In(card.En))
	assert.NotEmpty(t, fool.Meanings.Upright.Keywords.In(card.En))
	assert.NotEmpty(t, fool.Meanings.Reversed.Description.In(card.ZhTW))

	king, err := c.Card("minor_arcana.pentacles.king")
	require.NoError(t, err)
	assert.Equal(t, card.Pentacles, king.Suit)
	assert.Equal(t, 14, king.Number)
}

func TestEveryCardIsComplete(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	for _, cd := range c.Cards() {
		assert.True(t, cd.Suit.Valid(), cd.ID)
		for _, m := range []card.Meaning{cd.Meanings.Upright, cd.Meanings.Reversed} {
			assert.NotEmpty(t, m.Keywords.ZhTW, cd.ID)
			assert.NotEmpty(t, m.Keywords.En, cd.ID)
			assert.NotEmpty(t, m.Description.ZhTW, cd.ID)
			assert.NotEmpty(t, m.Description.En, cd.ID)
			assert.NotEmpty(t, m.Aspects.Health.ZhTW, cd.ID)
		}
	}
}

func TestCardNotFound(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	_, err = c.Card("major_arcana.99")
	assert.True(t, errors.Is(err, ErrCardNotFound))
}

func TestCardsReturnsCopy(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	cards := c.Cards()
	cards[0].ID = "mutated"

	first, err := c.Card("major_arcana.00")
	require.NoError(t, err)
	assert.Equal(t, "major_arcana.00", first.ID)
}

func TestParseRejectsDuplicates(t *testing.T) {
	data := []byte(`{"majorArcana":[{"id":"a","suit":"major"},{"id":"a","suit":"major"}]}`)
	_, err := Parse(data)
	assert.Error(t, err)

	_, err = Parse([]byte(`{}`))
	assert.Error(t, err)

	_, err = Parse([]byte(`not json`))
	assert.Error(t, err)
}

func TestParseRejectsBadSuits(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown suit", `{"minorArcana":{"cups":[{"id":"c1","suit":"Cups"}]}}`},
		{"wrong group", `{"minorArcana":{"cups":[{"id":"w1","suit":"wands"}]}}`},
		{"unknown group", `{"minorArcana":{"coins":[{"id":"c1","suit":"coins"}]}}`},
		{"major group", `{"minorArcana":{"major":[{"id":"m1","suit":"major"}]}}`},
		{"minor card among majors", `{"majorArcana":[{"id":"m1","suit":"cups"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.True(t, errors.Is(err, ErrInvalidCatalog), "got %v", err)
		})
	}

	c, err := Parse([]byte(`{"minorArcana":{"cups":[{"id":"c1","suit":"cups"}]}}`))
	require.NoError(t, err)
	assert.Len(t, c.BySuit(card.Cups), 1)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, os.WriteFile(path, Embedded(), 0644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 78, c.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
