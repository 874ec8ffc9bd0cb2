package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()

	file, err := OpenFile(t.TempDir())
	require.NoError(t, err)

	db, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return map[string]KV{
		"memory": NewMemory(),
		"file":   file,
		"sqlite": db,
	}
}

func TestKVContract(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get(ctx, "missing")
			assert.True(t, errors.Is(err, ErrNotFound))

			require.NoError(t, kv.Set(ctx, "a", []byte(`{"n":1}`)))
			require.NoError(t, kv.Set(ctx, "b/c", []byte(`[]`)))

			got, err := kv.Get(ctx, "a")
			require.NoError(t, err)
			assert.JSONEq(t, `{"n":1}`, string(got))

			require.NoError(t, kv.Set(ctx, "a", []byte(`{"n":2}`)))
			got, err = kv.Get(ctx, "a")
			require.NoError(t, err)
			assert.JSONEq(t, `{"n":2}`, string(got))

			got, err = kv.Get(ctx, "b/c")
			require.NoError(t, err)
			assert.JSONEq(t, `[]`, string(got))

			require.NoError(t, kv.Remove(ctx, "a"))
			require.NoError(t, kv.Remove(ctx, "a"), "removing a missing key is not an error")
			_, err = kv.Get(ctx, "a")
			assert.True(t, errors.Is(err, ErrNotFound))

			require.NoError(t, kv.Clear(ctx))
			_, err = kv.Get(ctx, "b/c")
			assert.True(t, errors.Is(err, ErrNotFound))
		})
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	value := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", value))
	value[0] = 'x'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestFilePersistsAcrossHandles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := OpenFile(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, RootKey, []byte(`{"readings":[]}`)))

	second, err := OpenFile(dir)
	require.NoError(t, err)
	got, err := second.Get(ctx, RootKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"readings":[]}`, string(got))
}

func TestSQLitePersistsAcrossHandles(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/tarot.db"

	first, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, RootKey, []byte(`{"dailyCards":[]}`)))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, RootKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dailyCards":[]}`, string(got))
}

func TestLimit(t *testing.T) {
	ctx := context.Background()
	l := Limit(NewMemory(), 20)

	require.NoError(t, l.Set(ctx, "k", []byte("0123456789")))
	assert.Equal(t, int64(11), l.Used())

	// replacing a value only counts the difference
	require.NoError(t, l.Set(ctx, "k", []byte("0123456789abcdefghi")))
	assert.Equal(t, int64(20), l.Used())

	err := l.Set(ctx, "j", []byte("x"))
	assert.True(t, errors.Is(err, ErrQuotaExceeded))
	_, err = l.Get(ctx, "j")
	assert.True(t, errors.Is(err, ErrNotFound), "rejected writes must not reach the backend")

	require.NoError(t, l.Remove(ctx, "k"))
	assert.Equal(t, int64(0), l.Used())
	require.NoError(t, l.Set(ctx, "j", []byte("x")))
}

func TestLimitCountsExistingValues(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	require.NoError(t, mem.Set(ctx, "k", []byte("0123456789abcdef")))

	l := Limit(mem, 15)
	// the stored 17 bytes are released when k is overwritten
	require.NoError(t, l.Set(ctx, "k", []byte("01")))
	assert.Equal(t, int64(3), l.Used())

	require.NoError(t, l.Set(ctx, "other", []byte("abcd")))
	assert.Equal(t, int64(12), l.Used())

	err := l.Set(ctx, "x", []byte("0123"))
	assert.True(t, errors.Is(err, ErrQuotaExceeded))
}
