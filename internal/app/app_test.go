package app

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/tarotlog/internal/card"
	"github.com/arcanaland/tarotlog/internal/catalog"
	"github.com/arcanaland/tarotlog/internal/config"
	"github.com/arcanaland/tarotlog/internal/storage"
)

var testNow = time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)

func open(t *testing.T, cfg *config.Config, opts ...Option) *App {
	t.Helper()
	opts = append([]Option{
		WithClock(func() time.Time { return testNow }),
		WithRNG(rand.New(rand.NewPCG(1, 2))),
	}, opts...)
	a, err := Open(context.Background(), cfg, nil, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestOpenMemory(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.StorageBackend = config.BackendMemory
	cfg.Language = "en"
	cfg.ReversedProbability = 0.5

	a := open(t, cfg)
	assert.Equal(t, 78, a.Catalog.Len())

	prefs, err := a.Store.Preferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, card.En, prefs.Language)
	assert.Equal(t, 0.5, prefs.ReversedProbability)
	assert.True(t, prefs.Privacy.IncludeDate, "privacy keeps its defaults")

	opts := a.DrawOptions(3)
	assert.Equal(t, 3, opts.CardCount)
	assert.True(t, opts.AllowReversed)

	r, err := a.Readings.Read(ctx, opts)
	require.NoError(t, err)
	assert.Contains(t, r.Interpretation, "Past")

	dc, err := a.Daily.DrawTodayCard(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-12", dc.Date)

	used, err := a.Usage(ctx)
	require.NoError(t, err)
	assert.Greater(t, used, int64(len(storage.RootKey)))
}

func TestOpenPersistentBackends(t *testing.T) {
	for _, backend := range []string{config.BackendFile, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			cfg := config.Default()
			cfg.StorageBackend = backend
			cfg.DataDir = t.TempDir()

			a := open(t, cfg)
			r, err := a.Readings.Read(ctx, a.DrawOptions(1))
			require.NoError(t, err)
			require.NoError(t, a.Close())

			if backend == config.BackendSQLite {
				assert.FileExists(t, filepath.Join(cfg.DataDir, SQLiteFile))
			}

			b := open(t, cfg)
			got, err := b.Readings.Get(ctx, r.ID)
			require.NoError(t, err)
			assert.Equal(t, r.Cards[0].Card.ID, got.Cards[0].Card.ID)
		})
	}
}

func TestOpenQuota(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.MaxStorageBytes = 64

	a := open(t, cfg, WithKV(storage.NewMemory()))
	_, err := a.Readings.Read(ctx, a.DrawOptions(9))
	assert.ErrorIs(t, err, storage.ErrQuotaExceeded)
}

func TestOpenCustomCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, os.WriteFile(path, catalog.Embedded(), 0644))

	cfg := config.Default()
	cfg.StorageBackend = config.BackendMemory
	cfg.CatalogPath = path
	a := open(t, cfg)
	assert.Equal(t, 78, a.Catalog.Len())

	cfg.CatalogPath = filepath.Join(t.TempDir(), "missing.json")
	_, err := Open(context.Background(), cfg, nil)
	assert.Error(t, err)
}
