package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/arcanaland/tarotlog/internal/card"
	"github.com/arcanaland/tarotlog/internal/record"
)

var t0 = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func drawn(id string, reversed bool) card.DrawnCard {
	return card.DrawnCard{
		Card:       card.Card{ID: id, Name: card.Text{ZhTW: id, En: id}, Suit: card.Major},
		Position:   1,
		IsReversed: reversed,
	}
}

func reading(id string, at time.Time) record.ReadingResult {
	return record.ReadingResult{
		ID:             id,
		Timestamp:      at,
		Type:           record.Free,
		Cards:          []card.DrawnCard{drawn("major_arcana.00", false)},
		Interpretation: "interpretation " + id,
	}
}

func daily(date string) record.DailyCardRecord {
	return record.DailyCardRecord{
		Date:      date,
		Card:      drawn("major_arcana.01", true),
		Aspects:   record.DailyAspects{Physical: "p", Emotional: "e", Spiritual: "s"},
		Timestamp: t0,
	}
}

func newStore(kv KV) (*Store, *clock) {
	c := &clock{t: t0}
	return NewStore(kv, WithClock(c.now)), c
}

func TestLoadEmpty(t *testing.T) {
	s, _ := newStore(NewMemory())
	d, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, d.Readings)
	assert.NotNil(t, d.Readings)
	assert.Empty(t, d.DailyCards)
	assert.Equal(t, record.DefaultPreferences(), d.Preferences)
}

func TestSaveReadingCapsHistory(t *testing.T) {
	ctx := context.Background()
	s, c := newStore(NewMemory())

	for i := 0; i < MaxReadings+5; i++ {
		require.NoError(t, s.SaveReading(ctx, reading(fmt.Sprintf("r%03d", i), c.now())))
		c.advance(time.Minute)
	}

	readings, err := s.Readings(ctx)
	require.NoError(t, err)
	require.Len(t, readings, MaxReadings)
	assert.Equal(t, "r104", readings[0].ID, "newest first")
	assert.Equal(t, "r005", readings[MaxReadings-1].ID, "oldest evicted")

	r, err := s.Reading(ctx, "r050")
	require.NoError(t, err)
	assert.Equal(t, "interpretation r050", r.Interpretation)

	_, err = s.Reading(ctx, "r000")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSaveDailyCardUpsert(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(NewMemory())

	require.NoError(t, s.SaveDailyCard(ctx, daily("2024-05-01")))
	require.NoError(t, s.SaveDailyCard(ctx, daily("2024-05-03")))
	require.NoError(t, s.SaveDailyCard(ctx, daily("2024-05-02")))

	replacement := daily("2024-05-03")
	replacement.Aspects.Physical = "replaced"
	require.NoError(t, s.SaveDailyCard(ctx, replacement))

	cards, err := s.DailyCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, []string{"2024-05-03", "2024-05-02", "2024-05-01"},
		[]string{cards[0].Date, cards[1].Date, cards[2].Date})
	assert.Equal(t, "replaced", cards[0].Aspects.Physical)

	got, err := s.DailyCard(ctx, "2024-05-02")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-02", got.Date)

	_, err = s.DailyCard(ctx, "2024-04-30")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSaveDailyCardCapsHistory(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(NewMemory())

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < MaxDailyCards+10; i++ {
		require.NoError(t, s.SaveDailyCard(ctx, daily(record.DateKey(day.AddDate(0, 0, i)))))
	}

	cards, err := s.DailyCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, MaxDailyCards)
	assert.Equal(t, record.DateKey(day.AddDate(0, 0, MaxDailyCards+9)), cards[0].Date)
	assert.Equal(t, record.DateKey(day.AddDate(0, 0, 10)), cards[MaxDailyCards-1].Date)
}

func TestRetentionSweep(t *testing.T) {
	ctx := context.Background()
	s, c := newStore(NewMemory())

	require.NoError(t, s.SaveReading(ctx, reading("r1", t0)))

	c.advance(10 * 24 * time.Hour)
	require.NoError(t, s.SaveReading(ctx, reading("r2", c.now())))

	// a sweep ran at day 10, so an old reading saved at day 12 survives until the next one
	c.advance(2 * 24 * time.Hour)
	require.NoError(t, s.SaveReading(ctx, reading("old", t0.Add(-60*24*time.Hour))))
	readings, err := s.Readings(ctx)
	require.NoError(t, err)
	assert.Len(t, readings, 3)

	c.advance(23 * 24 * time.Hour)
	require.NoError(t, s.SaveReading(ctx, reading("r3", c.now())))

	readings, err = s.Readings(ctx)
	require.NoError(t, err)
	var ids []string
	for _, r := range readings {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"r3", "r2"}, ids)

	d, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, d.LastCleanup.Equal(c.now()))
}

func TestCleanupForced(t *testing.T) {
	ctx := context.Background()
	s, c := newStore(NewMemory())

	require.NoError(t, s.SaveReading(ctx, reading("fresh", t0)))
	c.advance(24 * time.Hour)
	require.NoError(t, s.SaveReading(ctx, reading("old", t0.Add(-45*24*time.Hour))))

	removed, err := s.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	readings, err := s.Readings(ctx)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, "fresh", readings[0].ID)
}

// quotaKV rejects the next armed number of writes
type quotaKV struct {
	*Memory
	failures int
}

func (q *quotaKV) Set(ctx context.Context, key string, value []byte) error {
	if q.failures > 0 {
		q.failures--
		return ErrQuotaExceeded
	}
	return q.Memory.Set(ctx, key, value)
}

func TestQuotaThinning(t *testing.T) {
	ctx := context.Background()
	kv := &quotaKV{Memory: NewMemory()}
	core, logs := observer.New(zap.WarnLevel)
	c := &clock{t: t0}
	s := NewStore(kv, WithClock(c.now), WithLogger(zap.New(core)))

	for i := 0; i < 10; i++ {
		require.NoError(t, s.SaveReading(ctx, reading(fmt.Sprintf("r%d", i), c.now())))
		c.advance(time.Minute)
	}

	kv.failures = 1
	require.NoError(t, s.SaveReading(ctx, reading("r10", c.now())))

	readings, err := s.Readings(ctx)
	require.NoError(t, err)
	require.Len(t, readings, 5)
	assert.Equal(t, "r10", readings[0].ID)
	assert.Equal(t, "r6", readings[4].ID)

	thinned := logs.FilterMessage("storage quota exceeded, thinning readings").All()
	require.Len(t, thinned, 1)
	assert.Equal(t, int64(11), thinned[0].ContextMap()["before"])
	assert.Equal(t, int64(5), thinned[0].ContextMap()["after"])

	kv.failures = 2
	err = s.SaveReading(ctx, reading("r11", c.now()))
	assert.True(t, errors.Is(err, ErrQuotaExceeded), "a second quota failure surfaces")
}

func TestQuotaThinningDailyCards(t *testing.T) {
	ctx := context.Background()
	kv := &quotaKV{Memory: NewMemory()}
	core, logs := observer.New(zap.WarnLevel)
	s := NewStore(kv, WithClock((&clock{t: t0}).now), WithLogger(zap.New(core)))

	day := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		require.NoError(t, s.SaveDailyCard(ctx, daily(record.DateKey(day.AddDate(0, 0, i)))))
	}

	kv.failures = 2
	require.NoError(t, s.SaveDailyCard(ctx, daily("2024-04-07")))

	cards, err := s.DailyCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 4)
	assert.Equal(t, "2024-04-07", cards[0].Date)
	assert.Equal(t, "2024-04-04", cards[3].Date)

	thinned := logs.FilterMessage("storage quota exceeded, thinning daily cards").All()
	require.Len(t, thinned, 1)
	assert.Equal(t, int64(7), thinned[0].ContextMap()["before"])
	assert.Equal(t, int64(4), thinned[0].ContextMap()["after"])
}

func TestSaveDailyDraw(t *testing.T) {
	ctx := context.Background()
	kv := &quotaKV{Memory: NewMemory()}
	s, _ := newStore(kv)

	r := reading("daily-1", t0)
	r.Type = record.Daily

	kv.failures = 2
	err := s.SaveDailyDraw(ctx, daily("2024-05-01"), r)
	require.True(t, errors.Is(err, ErrQuotaExceeded))

	d, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, d.DailyCards, "a failed write stores neither record")
	assert.Empty(t, d.Readings)

	require.NoError(t, s.SaveDailyDraw(ctx, daily("2024-05-01"), r))
	d, err = s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, d.DailyCards, 1)
	require.Len(t, d.Readings, 1)
	assert.Equal(t, "daily-1", d.Readings[0].ID)
}

func TestQuotaThinningWithLimit(t *testing.T) {
	ctx := context.Background()
	s, c := newStore(Limit(NewMemory(), 4096))

	for i := 0; i < 40; i++ {
		require.NoError(t, s.SaveReading(ctx, reading(fmt.Sprintf("reading-%02d", i), c.now())))
		c.advance(time.Minute)
	}

	readings, err := s.Readings(ctx)
	require.NoError(t, err)
	assert.Less(t, len(readings), 40)
	assert.Equal(t, "reading-39", readings[0].ID)
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, c := newStore(NewMemory())

	for i := 0; i < 5; i++ {
		require.NoError(t, s.SaveReading(ctx, reading(fmt.Sprintf("r%d", i), c.now())))
		require.NoError(t, s.SaveDailyCard(ctx, daily(record.DateKey(c.now()))))
		c.advance(24 * time.Hour)
	}
	prefs := record.DefaultPreferences()
	prefs.Language = card.En
	prefs.ReversedProbability = 0.5
	prefs.Privacy.DisplayName = "Mira"
	require.NoError(t, s.SetPreferences(ctx, prefs))

	want, err := s.Load(ctx)
	require.NoError(t, err)

	blob, err := s.Export(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Clear(ctx))

	cleared, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, cleared.Readings)

	stats, err := s.Import(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Readings: 5, DailyCards: 5}, stats)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestImportMerges(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(NewMemory())

	require.NoError(t, s.SaveReading(ctx, reading("shared", t0)))
	require.NoError(t, s.SaveDailyCard(ctx, daily("2024-05-01")))

	other, _ := newStore(NewMemory())
	imported := reading("shared", t0.Add(time.Hour))
	imported.Interpretation = "should not replace"
	require.NoError(t, other.SaveReading(ctx, imported))
	require.NoError(t, other.SaveReading(ctx, reading("new", t0.Add(2*time.Hour))))
	conflicting := daily("2024-05-01")
	conflicting.Aspects.Physical = "should not replace"
	require.NoError(t, other.SaveDailyCard(ctx, conflicting))
	require.NoError(t, other.SaveDailyCard(ctx, daily("2024-04-30")))

	blob, err := other.Export(ctx)
	require.NoError(t, err)

	stats, err := s.Import(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Readings: 1, DailyCards: 1}, stats)

	readings, err := s.Readings(ctx)
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, "new", readings[0].ID)
	assert.Equal(t, "interpretation shared", readings[1].Interpretation)

	cards, err := s.DailyCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "p", cards[0].Aspects.Physical)
	assert.Equal(t, "2024-04-30", cards[1].Date)
}

func TestImportRejectsInvalidData(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(NewMemory())
	require.NoError(t, s.SaveReading(ctx, reading("keep", t0)))
	before, err := s.Export(ctx)
	require.NoError(t, err)

	tests := []struct {
		name string
		blob string
	}{
		{"not json", `{readings`},
		{"not an object", `[]`},
		{"missing readings", `{"dailyCards":[]}`},
		{"readings not array", `{"readings":{},"dailyCards":[]}`},
		{"reading without id", `{"readings":[{"type":"free","timestamp":"2024-05-01T00:00:00Z","cards":[{"card":{"id":"x"}}]}],"dailyCards":[]}`},
		{"unknown type", `{"readings":[{"id":"a","type":"weekly","timestamp":"2024-05-01T00:00:00Z","cards":[{"card":{"id":"x"}}]}],"dailyCards":[]}`},
		{"bad date", `{"readings":[],"dailyCards":[{"date":"May 1","card":{"card":{"id":"x"}}}]}`},
		{"daily without card", `{"readings":[],"dailyCards":[{"date":"2024-05-01"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Import(ctx, []byte(tt.blob))
			assert.True(t, errors.Is(err, ErrInvalidImport), "got %v", err)

			after, err := s.Export(ctx)
			require.NoError(t, err)
			assert.JSONEq(t, string(before), string(after), "no partial apply")
		})
	}
}

func TestStoreOverSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	s, _ := newStore(db)
	require.NoError(t, s.SaveReading(ctx, reading("r1", t0)))
	require.NoError(t, s.SaveDailyCard(ctx, daily("2024-05-01")))

	got, err := s.Reading(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, reading("r1", t0).Interpretation, got.Interpretation)
	assert.True(t, got.Timestamp.Equal(t0))
}
