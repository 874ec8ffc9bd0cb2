// Package reading runs free-form spreads and keeps their history.
package reading

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/arcanaland/tarotlog/internal/deck"
	"github.com/arcanaland/tarotlog/internal/record"
	"github.com/arcanaland/tarotlog/internal/storage"
)

// Service draws free readings and persists them
type Service struct {
	mu     sync.Mutex
	engine *deck.Engine
	store  *storage.Store
	log    *zap.Logger
}

// NewService creates a reading service. The engine should not be shared with
// other flows.
func NewService(engine *deck.Engine, store *storage.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{engine: engine, store: store, log: log}
}

// Read starts a fresh session, draws a spread and saves the resulting reading
func (s *Service) Read(ctx context.Context, opts deck.DrawOptions) (record.ReadingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.ResetUsedCards()
	cards, err := s.engine.DrawCards(opts)
	if err != nil {
		return record.ReadingResult{}, fmt.Errorf("error drawing cards: %w", err)
	}

	result := s.engine.GenerateReadingResult(cards, record.Free)
	result.Timestamp = result.Timestamp.UTC()
	if err := s.store.SaveReading(ctx, result); err != nil {
		return record.ReadingResult{}, fmt.Errorf("error saving reading: %w", err)
	}

	s.log.Info("saved reading",
		zap.String("id", result.ID),
		zap.Int("cards", len(cards)))
	return result, nil
}

// History returns up to limit readings, newest first. A non-positive limit
// returns all of them.
func (s *Service) History(ctx context.Context, limit int) ([]record.ReadingResult, error) {
	readings, err := s.store.Readings(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(readings) > limit {
		readings = readings[:limit]
	}
	return readings, nil
}

// Get returns the reading with id or storage.ErrNotFound
func (s *Service) Get(ctx context.Context, id string) (record.ReadingResult, error) {
	return s.store.Reading(ctx, id)
}

// Framework exposes the spread the engine uses for cardCount cards
func (s *Service) Framework(cardCount int) string {
	return s.engine.Framework(cardCount).Name.In(s.engine.Language())
}
