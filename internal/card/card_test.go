package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLang(t *testing.T) {
	tests := []struct {
		in   string
		want Lang
	}{
		{"zh-TW", ZhTW},
		{"ZH", ZhTW},
		{"en", En},
		{" en-US ", En},
	}
	for _, tt := range tests {
		got, err := ParseLang(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseLang("fr")
	assert.Error(t, err)
}

func TestTextFallsBackToChinese(t *testing.T) {
	txt := Text{ZhTW: "愚者"}
	assert.Equal(t, "愚者", txt.In(En))
	assert.Equal(t, "愚者", txt.In(ZhTW))

	w := Words{ZhTW: []string{"新開始"}}
	assert.Equal(t, []string{"新開始"}, w.In(En))
}

func TestSuitTable(t *testing.T) {
	for _, s := range Suits {
		assert.True(t, s.Valid(), s)
		assert.NotEmpty(t, s.Name(ZhTW))
		assert.NotEmpty(t, s.Name(En))
		assert.NotEmpty(t, s.Domain(En))
	}
	assert.False(t, Suit("coins").Valid())

	assert.Equal(t, Water, Cups.Element())
	assert.Equal(t, Fire, Wands.Element())
	assert.Equal(t, Air, Swords.Element())
	assert.Equal(t, Earth, Pentacles.Element())
	assert.Equal(t, Spirit, Major.Element())
	assert.Len(t, Elements, len(Suits))
	assert.Len(t, Ranks, 14)
}

func TestDrawnCardOrientation(t *testing.T) {
	c := Card{
		ID:   "major_arcana.00",
		Suit: Major,
		Meanings: Meanings{
			Upright:  Meaning{Keywords: Words{ZhTW: []string{"自由"}, En: []string{"freedom"}}},
			Reversed: Meaning{Keywords: Words{ZhTW: []string{"魯莽"}, En: []string{"recklessness"}}},
		},
	}

	up := DrawnCard{Card: c, Position: 1}
	rev := DrawnCard{Card: c, Position: 1, IsReversed: true}

	assert.True(t, c.IsMajor())
	assert.Equal(t, []string{"freedom"}, up.Keywords(En))
	assert.Equal(t, []string{"魯莽"}, rev.Keywords(ZhTW))
	assert.Equal(t, "正位", up.Orientation(ZhTW))
	assert.Equal(t, "Reversed", rev.Orientation(En))
}
