package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Limited wraps a KV with a byte quota over keys and values, the way a
// browser caps local storage. Only keys accessed through it are counted.
type Limited struct {
	next     KV
	maxBytes int64

	mu    sync.Mutex
	sizes map[string]int64
	used  int64
}

// Limit returns kv capped at maxBytes. A non-positive maxBytes disables the cap.
func Limit(kv KV, maxBytes int64) *Limited {
	return &Limited{next: kv, maxBytes: maxBytes, sizes: make(map[string]int64)}
}

// Used returns the bytes currently accounted for
func (l *Limited) Used() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.used
}

// size returns the accounted size of key, loading it from the backend the
// first time the key is seen
func (l *Limited) size(ctx context.Context, key string) (int64, error) {
	if n, ok := l.sizes[key]; ok {
		return n, nil
	}
	v, err := l.next.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		l.sizes[key] = 0
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n := int64(len(key) + len(v))
	l.sizes[key] = n
	l.used += n
	return n, nil
}

func (l *Limited) Get(ctx context.Context, key string) ([]byte, error) {
	return l.next.Get(ctx, key)
}

func (l *Limited) Set(ctx context.Context, key string, value []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	old, err := l.size(ctx, key)
	if err != nil {
		return err
	}
	n := int64(len(key) + len(value))
	if l.maxBytes > 0 && l.used-old+n > l.maxBytes {
		return fmt.Errorf("%w: writing %d bytes to %q with %d of %d in use",
			ErrQuotaExceeded, n, key, l.used, l.maxBytes)
	}
	if err := l.next.Set(ctx, key, value); err != nil {
		return err
	}
	l.used += n - old
	l.sizes[key] = n
	return nil
}

func (l *Limited) Remove(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.next.Remove(ctx, key); err != nil {
		return err
	}
	l.used -= l.sizes[key]
	delete(l.sizes, key)
	return nil
}

func (l *Limited) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.next.Clear(ctx); err != nil {
		return err
	}
	clear(l.sizes)
	l.used = 0
	return nil
}
