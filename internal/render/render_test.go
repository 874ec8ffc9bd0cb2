package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	colorize "github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/tarotlog/internal/card"
	"github.com/arcanaland/tarotlog/internal/catalog"
	"github.com/arcanaland/tarotlog/internal/record"
	"github.com/arcanaland/tarotlog/internal/spread"
	"github.com/arcanaland/tarotlog/internal/trend"
)

func TestMain(m *testing.M) {
	colorize.NoColor = true
	os.Exit(m.Run())
}

func TestWrapText(t *testing.T) {
	lines := WrapText("the quick brown fox jumps over the lazy dog", 15)
	assert.Equal(t, []string{"the quick brown", "fox jumps over", "the lazy dog"}, lines)

	assert.Equal(t, []string{""}, WrapText("   ", 20))

	// Each CJK rune is two columns wide.
	cjk := WrapText("今天身體的狀態與節制相呼應", 10)
	require.Len(t, cjk, 3)
	assert.Equal(t, "今天身體的", cjk[0])
	for _, line := range cjk {
		assert.LessOrEqual(t, Width(line), 10)
	}
	assert.Equal(t, "今天身體的狀態與節制相呼應", strings.Join(cjk, ""))
}

func TestWidthIgnoresEscapes(t *testing.T) {
	s := "\x1b[31m逆位\x1b[0m"
	assert.Equal(t, "逆位", StripANSI(s))
	assert.Equal(t, 4, Width(s))
	assert.Equal(t, 6, Width(PadRight(s, 6)))
}

func fixture(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load()
	require.NoError(t, err)
	return c
}

func TestCard(t *testing.T) {
	fool, err := fixture(t).Card("major_arcana.00")
	require.NoError(t, err)

	var buf bytes.Buffer
	NewPrinter(&buf, card.En, 100).Card(fool, "")
	out := buf.String()
	assert.Contains(t, out, "Card: The Fool")
	assert.Contains(t, out, "Arcana: Major Arcana")
	assert.NotContains(t, out, "Suit:")
	assert.Contains(t, out, "Upright")
	assert.Contains(t, out, "Reversed")

	buf.Reset()
	NewPrinter(&buf, card.ZhTW, 100).Card(fool, "AB\nCD")
	lines := strings.Split(buf.String(), "\n")
	assert.True(t, strings.HasPrefix(lines[1], "  AB    牌名: 愚者"), lines[1])
}

func TestReading(t *testing.T) {
	c := fixture(t)
	fool, _ := c.Card("major_arcana.00")
	tower, _ := c.Card("major_arcana.16")
	r := record.ReadingResult{
		ID:        "0123456789",
		Timestamp: time.Date(2024, 6, 12, 1, 0, 0, 0, time.UTC),
		Type:      record.Free,
		Cards: []card.DrawnCard{
			{Card: fool, Position: 1, PositionMeaning: "現況"},
			{Card: tower, Position: 2, IsReversed: true, PositionMeaning: "建議"},
		},
		Interpretation: "第一段\n第二段",
	}

	var buf bytes.Buffer
	NewPrinter(&buf, card.ZhTW, 80).Reading(r)
	out := buf.String()
	assert.Contains(t, out, spread.For(2).Name.ZhTW)
	assert.Contains(t, out, "1. 現況  愚者 (正位)")
	assert.Contains(t, out, "2. 建議  高塔 (逆位)")
	assert.Contains(t, out, "  第二段")
	assert.NotContains(t, out, "身體")

	buf.Reset()
	NewPrinter(&buf, card.En, 80).ReadingHistory([]record.ReadingResult{r}, r.Timestamp.Add(3*24*time.Hour))
	assert.Contains(t, buf.String(), "01234567")
	assert.Contains(t, buf.String(), "3 days ago")
	assert.Contains(t, buf.String(), "The Fool, The Tower")
}

func TestDailyCard(t *testing.T) {
	star, err := fixture(t).Card("major_arcana.17")
	require.NoError(t, err)
	rec := record.DailyCardRecord{
		Date:    "2024-06-12",
		Card:    card.DrawnCard{Card: star, Position: 1},
		Aspects: record.DailyAspects{Physical: "body", Emotional: "heart", Spiritual: "soul"},
	}

	var buf bytes.Buffer
	p := NewPrinter(&buf, card.En, 80)
	p.DailyCard(rec, "")
	assert.Contains(t, buf.String(), "2024-06-12  The Star")
	assert.Contains(t, buf.String(), "Physical:")
	assert.Contains(t, buf.String(), "    soul")

	buf.Reset()
	p.DailyHistory(nil)
	assert.Equal(t, "No daily cards yet.\n", buf.String())
}

func TestAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, card.En, 80)

	p.Analysis(trend.Analyze(nil, 7, card.En, time.Now()))
	assert.Contains(t, buf.String(), "Not enough data")

	star, err := fixture(t).Card("major_arcana.17")
	require.NoError(t, err)
	today := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	history := []record.DailyCardRecord{
		{Date: "2024-06-12", Card: card.DrawnCard{Card: star}},
		{Date: "2024-06-11", Card: card.DrawnCard{Card: star, IsReversed: true}},
	}

	buf.Reset()
	p.Analysis(trend.Analyze(history, 7, card.En, today))
	out := buf.String()
	assert.Contains(t, out, "Draws: 2")
	assert.Contains(t, out, "Dominant suit: Major Arcana")
	assert.Contains(t, out, "Reversed: 50%")
	assert.Contains(t, out, "Streak: 2")

	buf.Reset()
	p.Comparison(trend.Compare(history, 1, 1, card.En))
	assert.Contains(t, buf.String(), "Current 1 / Previous 1")

	buf.Reset()
	p.Monthly(trend.Monthly(history, today, card.En))
	assert.Contains(t, buf.String(), "This month")
	assert.Contains(t, buf.String(), "Last month")
}

func TestFrameworks(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, card.ZhTW, 80).Frameworks(spread.All())
	out := buf.String()
	assert.Contains(t, out, "3  "+spread.For(3).Name.ZhTW)
	assert.Contains(t, out, "1. 過去")
}

func TestUsage(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, card.En, 80)
	p.Usage(2048, 5<<20)
	assert.Equal(t, "Size: 2.0 kB / 5.2 MB\n", buf.String())

	buf.Reset()
	p.Wrote("out.json", 1500)
	assert.Equal(t, "Wrote: out.json (1.5 kB)\n", buf.String())
}

func TestCardArt(t *testing.T) {
	imagesDir, cacheDir := t.TempDir(), t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	require.NoError(t, os.MkdirAll(filepath.Join(imagesDir, "major_arcana"), 0755))
	f, err := os.Create(filepath.Join(imagesDir, "major_arcana", "00-fool.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	c := card.Card{ID: "major_arcana.00", Image: "major_arcana/00-fool.png"}
	art, err := CardArt(imagesDir, cacheDir, c)
	require.NoError(t, err)

	lines := strings.Split(art, "\n")
	assert.Len(t, lines, ArtHeight)
	assert.Equal(t, ArtWidth, utf8.RuneCountInString(StripANSI(lines[0])))
	assert.True(t, strings.HasPrefix(lines[0], "\x1b[38;2;"))

	cached, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	again, err := CardArt(imagesDir, cacheDir, c)
	require.NoError(t, err)
	assert.Equal(t, art, again)

	_, err = CardArt(imagesDir, cacheDir, card.Card{ID: "x", Image: "missing.png"})
	assert.Error(t, err)
	_, err = CardArt("", cacheDir, c)
	assert.Error(t, err)
}
