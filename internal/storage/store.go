package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/arcanaland/tarotlog/internal/record"
)

const (
	// RootKey is the key the root record is stored under
	RootKey = "tarot_app_data"

	MaxReadings   = 100
	MaxDailyCards = 90

	CleanupInterval  = 7 * 24 * time.Hour
	ReadingRetention = 30 * 24 * time.Hour
)

// Data is the root record holding all persisted state
type Data struct {
	Readings    []record.ReadingResult   `json:"readings"`
	DailyCards  []record.DailyCardRecord `json:"dailyCards"`
	Preferences record.Preferences       `json:"userPreferences"`
	LastCleanup time.Time                `json:"lastCleanup"`
}

func emptyData() *Data {
	return &Data{
		Readings:    []record.ReadingResult{},
		DailyCards:  []record.DailyCardRecord{},
		Preferences: record.DefaultPreferences(),
	}
}

// ImportStats reports how many records an import added
type ImportStats struct {
	Readings   int
	DailyCards int
}

// Store reads and writes the root record through a KV. Every mutation is a
// load-modify-save cycle under the store's lock.
type Store struct {
	mu  sync.Mutex
	kv  KV
	log *zap.Logger
	now func() time.Time
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithLogger sets the store's logger
func WithLogger(log *zap.Logger) StoreOption {
	return func(s *Store) { s.log = log }
}

// WithClock sets the time source for retention sweeps
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore creates a Store over kv
func NewStore(kv KV, opts ...StoreOption) *Store {
	s := &Store{kv: kv, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// Load returns the root record, or an empty one if nothing is stored yet
func (s *Store) Load(ctx context.Context) (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) (*Data, error) {
	raw, err := s.kv.Get(ctx, RootKey)
	if errors.Is(err, ErrNotFound) {
		return emptyData(), nil
	}
	if err != nil {
		return nil, err
	}

	d := emptyData()
	if err := json.Unmarshal(raw, d); err != nil {
		return nil, fmt.Errorf("error decoding stored data: %w", err)
	}
	if d.Readings == nil {
		d.Readings = []record.ReadingResult{}
	}
	if d.DailyCards == nil {
		d.DailyCards = []record.DailyCardRecord{}
	}
	return d, nil
}

// save runs the retention sweep when due and writes d. On a quota error it
// drops the oldest half of the readings and retries. If that still does not
// fit, the oldest half of the daily cards goes too.
func (s *Store) save(ctx context.Context, d *Data) error {
	if now := s.now(); now.Sub(d.LastCleanup) >= CleanupInterval {
		s.sweep(d, now)
	}

	err := s.write(ctx, d)
	if !errors.Is(err, ErrQuotaExceeded) {
		return err
	}

	before := len(d.Readings)
	d.Readings = d.Readings[:before/2]
	s.log.Warn("storage quota exceeded, thinning readings",
		zap.Int("before", before),
		zap.Int("after", len(d.Readings)))
	err = s.write(ctx, d)
	if !errors.Is(err, ErrQuotaExceeded) || len(d.DailyCards) < 2 {
		return err
	}

	before = len(d.DailyCards)
	d.DailyCards = d.DailyCards[:(before+1)/2]
	s.log.Warn("storage quota exceeded, thinning daily cards",
		zap.Int("before", before),
		zap.Int("after", len(d.DailyCards)))
	return s.write(ctx, d)
}

func (s *Store) write(ctx context.Context, d *Data) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("error encoding data: %w", err)
	}
	return s.kv.Set(ctx, RootKey, raw)
}

// sweep drops readings older than the retention window and stamps the cleanup time
func (s *Store) sweep(d *Data, now time.Time) int {
	cutoff := now.Add(-ReadingRetention)
	kept := d.Readings[:0]
	for _, r := range d.Readings {
		if !r.Timestamp.Before(cutoff) {
			kept = append(kept, r)
		}
	}
	removed := len(d.Readings) - len(kept)
	d.Readings = kept
	d.LastCleanup = now.UTC()

	if removed > 0 {
		s.log.Info("retention sweep removed old readings", zap.Int("removed", removed))
	}
	return removed
}

// update applies fn to the loaded root record and saves the result
func (s *Store) update(ctx context.Context, fn func(*Data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(d); err != nil {
		return err
	}
	return s.save(ctx, d)
}

// SaveReading prepends r to the reading history, evicting the oldest past the cap
func (s *Store) SaveReading(ctx context.Context, r record.ReadingResult) error {
	return s.update(ctx, func(d *Data) error {
		putReading(d, r)
		return nil
	})
}

func putReading(d *Data, r record.ReadingResult) {
	d.Readings = append([]record.ReadingResult{r}, d.Readings...)
	if len(d.Readings) > MaxReadings {
		d.Readings = d.Readings[:MaxReadings]
	}
}

// Readings returns the reading history, newest first
func (s *Store) Readings(ctx context.Context) ([]record.ReadingResult, error) {
	d, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return d.Readings, nil
}

// Reading returns the reading with id
func (s *Store) Reading(ctx context.Context, id string) (record.ReadingResult, error) {
	readings, err := s.Readings(ctx)
	if err != nil {
		return record.ReadingResult{}, err
	}
	for _, r := range readings {
		if r.ID == id {
			return r, nil
		}
	}
	return record.ReadingResult{}, fmt.Errorf("reading %q: %w", id, ErrNotFound)
}

// SaveDailyCard inserts rec, replacing any record with the same date
func (s *Store) SaveDailyCard(ctx context.Context, rec record.DailyCardRecord) error {
	return s.update(ctx, func(d *Data) error {
		putDailyCard(d, rec)
		return nil
	})
}

// SaveDailyDraw stores a daily record together with its reading in a single
// write. Either both are saved or neither is.
func (s *Store) SaveDailyDraw(ctx context.Context, rec record.DailyCardRecord, r record.ReadingResult) error {
	return s.update(ctx, func(d *Data) error {
		putDailyCard(d, rec)
		putReading(d, r)
		return nil
	})
}

func putDailyCard(d *Data, rec record.DailyCardRecord) {
	replaced := false
	for i := range d.DailyCards {
		if d.DailyCards[i].Date == rec.Date {
			d.DailyCards[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		d.DailyCards = append(d.DailyCards, rec)
	}
	sortDaily(d.DailyCards)
	if len(d.DailyCards) > MaxDailyCards {
		d.DailyCards = d.DailyCards[:MaxDailyCards]
	}
}

// DailyCards returns the daily records, newest date first
func (s *Store) DailyCards(ctx context.Context) ([]record.DailyCardRecord, error) {
	d, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return d.DailyCards, nil
}

// DailyCard returns the record for date (YYYY-MM-DD)
func (s *Store) DailyCard(ctx context.Context, date string) (record.DailyCardRecord, error) {
	cards, err := s.DailyCards(ctx)
	if err != nil {
		return record.DailyCardRecord{}, err
	}
	for _, c := range cards {
		if c.Date == date {
			return c, nil
		}
	}
	return record.DailyCardRecord{}, fmt.Errorf("daily card %s: %w", date, ErrNotFound)
}

// Preferences returns the stored user preferences
func (s *Store) Preferences(ctx context.Context) (record.Preferences, error) {
	d, err := s.Load(ctx)
	if err != nil {
		return record.Preferences{}, err
	}
	return d.Preferences, nil
}

// SetPreferences replaces the stored user preferences
func (s *Store) SetPreferences(ctx context.Context, p record.Preferences) error {
	return s.update(ctx, func(d *Data) error {
		d.Preferences = p
		return nil
	})
}

// Cleanup runs the retention sweep now, regardless of when it last ran
func (s *Store) Cleanup(ctx context.Context) (int, error) {
	var removed int
	err := s.update(ctx, func(d *Data) error {
		removed = s.sweep(d, s.now())
		return nil
	})
	return removed, err
}

// Clear removes all persisted state
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(ctx, RootKey); err != nil {
		return err
	}
	s.log.Info("cleared stored data")
	return nil
}

// Export serializes the root record as indented JSON
func (s *Store) Export(ctx context.Context) ([]byte, error) {
	d, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(d, "", "  ")
}

// Import merges an exported blob into the stored state. Readings and daily
// cards are added only when their id or date is not already present, and the
// imported preferences replace the current ones. A blob that fails validation
// is rejected as a whole with ErrInvalidImport.
func (s *Store) Import(ctx context.Context, blob []byte) (ImportStats, error) {
	in, err := decodeImport(blob)
	if err != nil {
		return ImportStats{}, err
	}

	var stats ImportStats
	err = s.update(ctx, func(d *Data) error {
		ids := make(map[string]bool, len(d.Readings))
		for _, r := range d.Readings {
			ids[r.ID] = true
		}
		for _, r := range in.Readings {
			if !ids[r.ID] {
				ids[r.ID] = true
				d.Readings = append(d.Readings, r)
				stats.Readings++
			}
		}

		dates := make(map[string]bool, len(d.DailyCards))
		for _, c := range d.DailyCards {
			dates[c.Date] = true
		}
		for _, c := range in.DailyCards {
			if !dates[c.Date] {
				dates[c.Date] = true
				d.DailyCards = append(d.DailyCards, c)
				stats.DailyCards++
			}
		}

		sort.SliceStable(d.Readings, func(i, j int) bool {
			return d.Readings[i].Timestamp.After(d.Readings[j].Timestamp)
		})
		sortDaily(d.DailyCards)
		if len(d.Readings) > MaxReadings {
			d.Readings = d.Readings[:MaxReadings]
		}
		if len(d.DailyCards) > MaxDailyCards {
			d.DailyCards = d.DailyCards[:MaxDailyCards]
		}

		if in.hasPreferences {
			d.Preferences = in.Preferences
		}
		if in.LastCleanup.After(d.LastCleanup) {
			d.LastCleanup = in.LastCleanup
		}
		return nil
	})
	if err != nil {
		return ImportStats{}, err
	}

	s.log.Info("imported data",
		zap.Int("readings", stats.Readings),
		zap.Int("daily_cards", stats.DailyCards))
	return stats, nil
}

type importData struct {
	Data
	hasPreferences bool
}

func decodeImport(blob []byte) (*importData, error) {
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(blob, &shape); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	for _, field := range []string{"readings", "dailyCards"} {
		raw, ok := shape[field]
		if !ok {
			return nil, fmt.Errorf("%w: missing %s", ErrInvalidImport, field)
		}
		if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '[' {
			return nil, fmt.Errorf("%w: %s is not an array", ErrInvalidImport, field)
		}
	}

	in := &importData{}
	if err := json.Unmarshal(blob, &in.Data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	_, in.hasPreferences = shape["userPreferences"]

	for i, r := range in.Readings {
		switch {
		case r.ID == "":
			return nil, fmt.Errorf("%w: reading %d has no id", ErrInvalidImport, i)
		case !r.Type.Valid():
			return nil, fmt.Errorf("%w: reading %s has unknown type %q", ErrInvalidImport, r.ID, r.Type)
		case r.Timestamp.IsZero():
			return nil, fmt.Errorf("%w: reading %s has no timestamp", ErrInvalidImport, r.ID)
		case len(r.Cards) == 0:
			return nil, fmt.Errorf("%w: reading %s has no cards", ErrInvalidImport, r.ID)
		}
	}
	for i, c := range in.DailyCards {
		if _, err := record.ParseDate(c.Date, time.UTC); err != nil {
			return nil, fmt.Errorf("%w: daily card %d has bad date %q", ErrInvalidImport, i, c.Date)
		}
		if c.Card.Card.ID == "" {
			return nil, fmt.Errorf("%w: daily card %s has no card", ErrInvalidImport, c.Date)
		}
	}
	return in, nil
}

// sortDaily orders records newest date first; date keys sort lexically
func sortDaily(cards []record.DailyCardRecord) {
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Date > cards[j].Date
	})
}
