package core

// fetch_limiter.go bounds concurrent requests to the CSV source.
//
// With the cache disabled every view load is its own fetch, so a busy page
// can fan out into many simultaneous downloads of the same large file. The
// limiter uses a semaphore: when all slots are occupied, new fetches wait up
// to maxWait and then fail with ErrTooManyFetches, which the service treats
// like any other fetch failure.
//
// WaitForDrain blocks until all active fetches complete, for graceful
// shutdown.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyFetches is returned when all fetch slots are occupied and the
// wait timeout expires.
var ErrTooManyFetches = errors.New("too many concurrent fetches")

// DefaultMaxConcurrentFetches is the default limit for parallel fetches.
const DefaultMaxConcurrentFetches = 4

// DefaultFetchWait is how long to wait for a slot before rejecting.
const DefaultFetchWait = 10 * time.Second

// FetchLimiter controls concurrent source fetches using a semaphore.
type FetchLimiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.RWMutex
	active int
}

// NewFetchLimiter creates a limiter that allows at most maxConcurrent
// simultaneous fetches.
func NewFetchLimiter(maxConcurrent int, maxWait time.Duration) *FetchLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentFetches
	}
	if maxWait <= 0 {
		maxWait = DefaultFetchWait
	}

	return &FetchLimiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// Acquire waits for a fetch slot. The caller must call Release when the
// fetch completes.
func (l *FetchLimiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil

	case <-waitCtx.Done():
		// Distinguish caller cancellation from our own wait timeout.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyFetches
	}
}

// Release releases a previously acquired slot.
func (l *FetchLimiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()

	<-l.semaphore
}

// ActiveCount returns the number of fetches in progress.
func (l *FetchLimiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// MaxConcurrent returns the maximum allowed concurrent fetches.
func (l *FetchLimiter) MaxConcurrent() int {
	return cap(l.semaphore)
}

// WaitForDrain blocks until all active fetches complete or ctx is done.
func (l *FetchLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Wrap returns a Fetcher that holds a slot for the duration of each fetch.
func (l *FetchLimiter) Wrap(next Fetcher) Fetcher {
	return FetcherFunc(func(ctx context.Context, path string) (string, error) {
		if err := l.Acquire(ctx); err != nil {
			if errors.Is(err, ErrTooManyFetches) {
				return "", &FetchError{Path: path, Err: err}
			}
			return "", err
		}
		defer l.Release()
		return next.Fetch(ctx, path)
	})
}
