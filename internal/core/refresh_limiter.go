package core

// refresh_limiter.go bounds concurrent table refreshes.
//
// Refreshes come from the scheduler and from the refresh endpoint. Each one
// reads every source, so the limiter lets at most a few run at once. A caller
// waits up to maxWait for a slot and then fails with ErrRefreshBusy.
// WaitForDrain supports graceful shutdown.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrRefreshBusy is returned when no refresh slot frees up in time.
var ErrRefreshBusy = errors.New("refresh in progress, please try again later")

// DefaultMaxConcurrentRefreshes is the default limit for parallel refreshes.
const DefaultMaxConcurrentRefreshes = 1

// DefaultRefreshWait is how long to wait for a slot before rejecting.
const DefaultRefreshWait = 10 * time.Second

// RefreshLimiter controls concurrent refreshes using a semaphore.
type RefreshLimiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.RWMutex
	active int
}

// NewRefreshLimiter creates a limiter that allows at most maxConcurrent
// simultaneous refreshes.
func NewRefreshLimiter(maxConcurrent int, maxWait time.Duration) *RefreshLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentRefreshes
	}
	if maxWait <= 0 {
		maxWait = DefaultRefreshWait
	}

	return &RefreshLimiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// Acquire waits for a refresh slot.
// The caller must call Release when the refresh completes.
func (l *RefreshLimiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil

	case <-waitCtx.Done():
		// Check if original context was cancelled vs timeout
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrRefreshBusy
	}
}

// Release releases a previously acquired slot.
func (l *RefreshLimiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()

	<-l.semaphore
}

// ActiveCount returns the number of running refreshes.
func (l *RefreshLimiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// Available returns the number of free slots.
func (l *RefreshLimiter) Available() int {
	return cap(l.semaphore) - len(l.semaphore)
}

// WaitForDrain blocks until all running refreshes complete or the context
// is cancelled.
func (l *RefreshLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
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
