// Package app wires configuration, storage and the reading services into
// one handle used by the command line.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/arcanaland/tarotlog/internal/catalog"
	"github.com/arcanaland/tarotlog/internal/config"
	"github.com/arcanaland/tarotlog/internal/daily"
	"github.com/arcanaland/tarotlog/internal/deck"
	"github.com/arcanaland/tarotlog/internal/reading"
	"github.com/arcanaland/tarotlog/internal/storage"
)

// SQLiteFile is the database name used by the sqlite backend
const SQLiteFile = "tarotlog.db"

// App holds the long-lived services of one process
type App struct {
	Config   *config.Config
	Log      *zap.Logger
	Catalog  *catalog.Catalog
	Store    *storage.Store
	Readings *reading.Service
	Daily    *daily.Service

	kv     storage.KV
	closer io.Closer
	now    func() time.Time
	rng    deck.RNG
}

// Option configures Open
type Option func(*App)

// WithClock sets the time source for every service
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithRNG sets the random source of both deck engines
func WithRNG(r deck.RNG) Option {
	return func(a *App) { a.rng = r }
}

// WithKV replaces the configured storage backend
func WithKV(kv storage.KV) Option {
	return func(a *App) { a.kv = kv }
}

// Open builds the application from cfg. Close must be called when done.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger, opts ...Option) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{Config: cfg, Log: log, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	a.Catalog = cat

	if a.kv == nil {
		if err := a.openKV(ctx); err != nil {
			return nil, err
		}
	}
	a.Store = storage.NewStore(
		storage.Limit(a.kv, cfg.MaxStorageBytes),
		storage.WithLogger(log.Named("storage")),
		storage.WithClock(a.now),
	)

	if err := a.syncPreferences(ctx); err != nil {
		a.Close()
		return nil, err
	}

	a.Readings = reading.NewService(a.newEngine(), a.Store, log.Named("reading"))
	a.Daily = daily.NewService(a.newEngine(), a.Store,
		daily.WithClock(a.now),
		daily.WithLogger(log.Named("daily")))

	log.Debug("application ready",
		zap.String("backend", cfg.StorageBackend),
		zap.Int("cards", cat.Len()),
		zap.String("language", string(cfg.Lang())))
	return a, nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Load()
	}
	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("error loading catalog %s: %w", cfg.CatalogPath, err)
	}
	return cat, nil
}

func (a *App) openKV(ctx context.Context) error {
	switch a.Config.StorageBackend {
	case config.BackendMemory:
		a.kv = storage.NewMemory()
	case config.BackendSQLite:
		dir := a.Config.DataDirPath()
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating data directory: %w", err)
		}
		db, err := storage.OpenSQLite(ctx, filepath.Join(dir, SQLiteFile))
		if err != nil {
			return err
		}
		a.kv, a.closer = db, db
	default:
		f, err := storage.OpenFile(a.Config.DataDirPath())
		if err != nil {
			return err
		}
		a.kv = f
	}
	return nil
}

// newEngine returns a deck engine over the catalog. Each flow gets its own
// engine so their sessions never share used cards.
func (a *App) newEngine() *deck.Engine {
	opts := []deck.Option{
		deck.WithLanguage(a.Config.Lang()),
		deck.WithClock(a.now),
	}
	if a.rng != nil {
		opts = append(opts, deck.WithRNG(a.rng))
	}
	return deck.New(a.Catalog.Cards(), opts...)
}

// syncPreferences copies the configured draw settings into the stored
// preferences, leaving privacy settings untouched
func (a *App) syncPreferences(ctx context.Context) error {
	prefs, err := a.Store.Preferences(ctx)
	if err != nil {
		return fmt.Errorf("error loading preferences: %w", err)
	}
	want := prefs
	want.Language = a.Config.Lang()
	want.AllowReversed = a.Config.AllowReversed
	want.ReversedProbability = a.Config.ReversedProbability
	if want == prefs {
		return nil
	}
	if err := a.Store.SetPreferences(ctx, want); err != nil {
		return fmt.Errorf("error saving preferences: %w", err)
	}
	return nil
}

// DrawOptions returns the free-reading options for cardCount cards under the
// configured reversal settings
func (a *App) DrawOptions(cardCount int) deck.DrawOptions {
	return deck.DrawOptions{
		CardCount:           cardCount,
		AllowReversed:       a.Config.AllowReversed,
		ReversedProbability: a.Config.ReversedProbability,
	}
}

// Usage returns the bytes the stored data occupies, counted the way the
// storage quota counts them
func (a *App) Usage(ctx context.Context) (int64, error) {
	v, err := a.kv.Get(ctx, storage.RootKey)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return int64(len(storage.RootKey) + len(v)), nil
}

// ArtCacheDir is where generated card art is kept
func (a *App) ArtCacheDir() string {
	return filepath.Join(config.GetCacheDir(), "ansi_cache")
}

// Close releases the storage backend
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}
