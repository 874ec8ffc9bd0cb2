// Package deck implements the drawing engine: shuffling the catalog,
// drawing unique cards per session and synthesizing interpretation text.
package deck

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/arcanaland/tarotlog/internal/card"
	"github.com/arcanaland/tarotlog/internal/record"
	"github.com/arcanaland/tarotlog/internal/spread"
)

// ErrDeckExhausted is returned when fewer unused cards remain in the session
// than a draw asks for. Call ResetUsedCards to start a new session.
var ErrDeckExhausted = errors.New("deck exhausted")

// RNG abstracts random number generation for deterministic testing.
// *rand.Rand from math/rand/v2 satisfies it.
type RNG interface {
	// IntN returns a non-negative random int in [0, n).
	IntN(n int) int
	// Float64 returns a random float in [0.0, 1.0).
	Float64() float64
}

// stdRNG delegates to the auto-seeded math/rand/v2 globals.
type stdRNG struct{}

func (stdRNG) IntN(n int) int   { return rand.IntN(n) }
func (stdRNG) Float64() float64 { return rand.Float64() }

// DrawOptions controls a single draw
type DrawOptions struct {
	CardCount           int
	AllowReversed       bool
	ReversedProbability float64
}

// Engine draws cards from a private copy of the catalog. It tracks the ids
// drawn in the current session and is not safe for concurrent use.
type Engine struct {
	cards []card.Card
	used  map[string]struct{}
	rng   RNG
	lang  card.Lang
	now   func() time.Time
	newID func() string
}

// Option configures an Engine
type Option func(*Engine)

// WithRNG sets the random source used for shuffling and orientation
func WithRNG(r RNG) Option {
	return func(e *Engine) { e.rng = r }
}

// WithLanguage sets the language of position meanings and interpretations
func WithLanguage(lang card.Lang) Option {
	return func(e *Engine) { e.lang = lang }
}

// WithClock sets the time source for reading timestamps
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator sets the reading id generator
func WithIDGenerator(f func() string) Option {
	return func(e *Engine) { e.newID = f }
}

// New creates an engine over a copy of cards
func New(cards []card.Card, opts ...Option) *Engine {
	e := &Engine{
		cards: append([]card.Card(nil), cards...),
		used:  make(map[string]struct{}),
		rng:   stdRNG{},
		lang:  card.ZhTW,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Language returns the engine's output language
func (e *Engine) Language() card.Lang {
	return e.lang
}

// Shuffle performs an in-place Fisher-Yates shuffle of the engine's deck
func (e *Engine) Shuffle() {
	for i := len(e.cards) - 1; i > 0; i-- {
		j := e.rng.IntN(i + 1)
		e.cards[i], e.cards[j] = e.cards[j], e.cards[i]
	}
}

// ResetUsedCards starts a new session, making every card drawable again
func (e *Engine) ResetUsedCards() {
	clear(e.used)
}

// Remaining returns how many cards can still be drawn in this session
func (e *Engine) Remaining() int {
	return len(e.cards) - len(e.used)
}

// DrawCards shuffles the deck and draws opts.CardCount (clamped to [1, 9])
// cards that have not been drawn earlier in the session. Each card is
// reversed with probability opts.ReversedProbability when reversals are
// allowed, and carries the position meaning of the matching spread.
func (e *Engine) DrawCards(opts DrawOptions) ([]card.DrawnCard, error) {
	n := spread.Clamp(opts.CardCount)
	if remaining := e.Remaining(); remaining < n {
		return nil, fmt.Errorf("%w: %d requested, %d remaining", ErrDeckExhausted, n, remaining)
	}

	e.Shuffle()
	framework := spread.For(n)

	drawn := make([]card.DrawnCard, 0, n)
	for _, c := range e.cards {
		if len(drawn) == n {
			break
		}
		if _, seen := e.used[c.ID]; seen {
			continue
		}
		e.used[c.ID] = struct{}{}

		reversed := opts.AllowReversed && e.rng.Float64() < opts.ReversedProbability
		i := len(drawn)
		drawn = append(drawn, card.DrawnCard{
			Card:            c,
			Position:        i + 1,
			IsReversed:      reversed,
			PositionMeaning: framework.Positions[i].Description.In(e.lang),
		})
	}

	return drawn, nil
}

// Framework returns the spread for cardCount, clamped to [1, 9]
func (e *Engine) Framework(cardCount int) spread.Framework {
	return spread.For(cardCount)
}

// GenerateReadingResult wraps drawn cards into a new reading with a fresh id,
// timestamp and synthesized interpretation. The caller persists it.
func (e *Engine) GenerateReadingResult(cards []card.DrawnCard, t record.ReadingType) record.ReadingResult {
	return record.ReadingResult{
		ID:             e.newID(),
		Timestamp:      e.now(),
		Type:           t,
		Cards:          cards,
		Interpretation: e.Interpret(cards),
	}
}
