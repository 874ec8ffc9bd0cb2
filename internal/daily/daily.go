// Package daily implements the once-a-day card draw, its history and the
// trend views built on that history.
package daily

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/arcanaland/tarotlog/internal/card"
	"github.com/arcanaland/tarotlog/internal/deck"
	"github.com/arcanaland/tarotlog/internal/record"
	"github.com/arcanaland/tarotlog/internal/storage"
	"github.com/arcanaland/tarotlog/internal/trend"
)

// DefaultHistoryLimit is the number of records History returns by default
const DefaultHistoryLimit = 30

// ErrUnknownFormat is returned for an unsupported export format
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an export format for daily history
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat validates an export format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (use json or text)", ErrUnknownFormat, s)
	}
}

// Service draws and tracks daily cards. Dates are calendar days in the
// location of the service clock.
type Service struct {
	mu     sync.Mutex
	engine *deck.Engine
	store  *storage.Store
	now    func() time.Time
	log    *zap.Logger
}

// Option configures a Service
type Option func(*Service)

// WithClock sets the time source that decides what "today" is
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the service logger
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) { s.log = log }
}

// NewService creates a daily card service. The engine should not be shared
// with other flows.
func NewService(engine *deck.Engine, store *storage.Store, opts ...Option) *Service {
	s := &Service{engine: engine, store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

func (s *Service) lang() card.Lang {
	return s.engine.Language()
}

// TodayKey returns today's date key
func (s *Service) TodayKey() string {
	return record.DateKey(s.now())
}

// HasTodayCard reports whether today's card has been drawn
func (s *Service) HasTodayCard(ctx context.Context) (bool, error) {
	_, err := s.TodayCard(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// TodayCard returns today's record or storage.ErrNotFound
func (s *Service) TodayCard(ctx context.Context) (record.DailyCardRecord, error) {
	return s.store.DailyCard(ctx, s.TodayKey())
}

// DrawTodayCard returns today's record, drawing and saving it first if this
// is the first draw of the day. It also saves a daily reading so the draw
// shows up in the reading history.
func (s *Service) DrawTodayCard(ctx context.Context) (record.DailyCardRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	date := s.TodayKey()
	existing, err := s.store.DailyCard(ctx, date)
	if err == nil {
		s.log.Debug("daily card already drawn", zap.String("date", date))
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return record.DailyCardRecord{}, err
	}

	prefs, err := s.store.Preferences(ctx)
	if err != nil {
		return record.DailyCardRecord{}, err
	}

	s.engine.ResetUsedCards()
	cards, err := s.engine.DrawCards(deck.DrawOptions{
		CardCount:           1,
		AllowReversed:       prefs.AllowReversed,
		ReversedProbability: prefs.ReversedProbability,
	})
	if err != nil {
		return record.DailyCardRecord{}, fmt.Errorf("error drawing daily card: %w", err)
	}

	now := s.now().UTC()
	aspects := Aspects(cards[0], s.lang())
	rec := record.DailyCardRecord{
		Date:      date,
		Card:      cards[0],
		Aspects:   aspects,
		Timestamp: now,
	}
	reading := s.engine.GenerateReadingResult(cards, record.Daily)
	reading.Timestamp = now
	reading.Aspects = &aspects
	if err := s.store.SaveDailyDraw(ctx, rec, reading); err != nil {
		return record.DailyCardRecord{}, fmt.Errorf("error saving daily card: %w", err)
	}

	s.log.Info("drew daily card",
		zap.String("date", date),
		zap.String("card", rec.Card.Card.ID),
		zap.Bool("reversed", rec.Card.IsReversed))

	// return the stored copy so repeated calls compare equal
	return s.store.DailyCard(ctx, date)
}

// History returns up to limit records, newest first. A non-positive limit
// means DefaultHistoryLimit.
func (s *Service) History(ctx context.Context, limit int) ([]record.DailyCardRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	all, err := s.store.DailyCards(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Streak counts consecutive days with a record, ending today
func (s *Service) Streak(ctx context.Context) (int, error) {
	all, err := s.store.DailyCards(ctx)
	if err != nil {
		return 0, err
	}
	return trend.CurrentStreak(all, s.now()), nil
}

// AnalyzeTrends summarizes the most recent days records
func (s *Service) AnalyzeTrends(ctx context.Context, days int) (trend.Analysis, error) {
	all, err := s.store.DailyCards(ctx)
	if err != nil {
		return trend.Analysis{}, err
	}
	return trend.Analyze(all, days, s.lang(), s.now()), nil
}

// CompareTrendPeriods diffs the most recent currentDays records against the
// previousDays records before them
func (s *Service) CompareTrendPeriods(ctx context.Context, currentDays, previousDays int) (trend.Comparison, error) {
	all, err := s.store.DailyCards(ctx)
	if err != nil {
		return trend.Comparison{}, err
	}
	return trend.Compare(all, currentDays, previousDays, s.lang()), nil
}

// MonthlyTrends compares this month so far with the previous month
func (s *Service) MonthlyTrends(ctx context.Context) (trend.MonthlyReport, error) {
	all, err := s.store.DailyCards(ctx)
	if err != nil {
		return trend.MonthlyReport{}, err
	}
	return trend.Monthly(all, s.now(), s.lang()), nil
}

// ExportHistory serializes the most recent days records, or all of them
// when days is not positive
func (s *Service) ExportHistory(ctx context.Context, format Format, days int) ([]byte, error) {
	all, err := s.store.DailyCards(ctx)
	if err != nil {
		return nil, err
	}
	if days > 0 && len(all) > days {
		all = all[:days]
	}

	switch format {
	case FormatJSON:
		return json.MarshalIndent(all, "", "  ")
	case FormatText:
		return exportText(all, s.lang()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

var textLabels = map[card.Lang][3]string{
	card.ZhTW: {"身體", "情緒", "靈性"},
	card.En:   {"Physical", "Emotional", "Spiritual"},
}

func exportText(recs []record.DailyCardRecord, lang card.Lang) []byte {
	labels, ok := textLabels[lang]
	if !ok {
		labels = textLabels[card.ZhTW]
	}

	var b bytes.Buffer
	for i, rec := range recs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s  %s (%s)\n", rec.Date, rec.Card.Card.Name.In(lang), rec.Card.Orientation(lang))
		fmt.Fprintf(&b, "  %s: %s\n", labels[0], rec.Aspects.Physical)
		fmt.Fprintf(&b, "  %s: %s\n", labels[1], rec.Aspects.Emotional)
		fmt.Fprintf(&b, "  %s: %s\n", labels[2], rec.Aspects.Spiritual)
	}
	return b.Bytes()
}
