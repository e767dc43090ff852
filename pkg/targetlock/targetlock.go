// Package targetlock serializes sfboot invocations per adapter.
package targetlock

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// GlobalKey is the key of NIC-wide invocations.
const GlobalKey = "global"

// Locker hands out one exclusive slot per key.
// The zero value is ready to use.
type Locker struct {
	mu   sync.Mutex
	sems map[string]*semaphore.Weighted
}

// New creates a Locker.
func New() *Locker {
	return &Locker{}
}

func (l *Locker) sem(key string) *semaphore.Weighted {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sems == nil {
		l.sems = make(map[string]*semaphore.Weighted)
	}
	s, ok := l.sems[key]
	if !ok {
		s = semaphore.NewWeighted(1)
		l.sems[key] = s
	}
	return s
}

// Lock blocks until key is free or ctx is done. The returned func releases
// the key and must be called exactly once.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	s := l.sem(key)
	if err := s.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	var once sync.Once
	return func() { once.Do(func() { s.Release(1) }) }, nil
}

// TryLock takes key without blocking.
func (l *Locker) TryLock(key string) (func(), bool) {
	s := l.sem(key)
	if !s.TryAcquire(1) {
		return nil, false
	}
	var once sync.Once
	return func() { once.Do(func() { s.Release(1) }) }, true
}

// Do runs fn while holding key.
func (l *Locker) Do(ctx context.Context, key string, fn func(context.Context) error) error {
	unlock, err := l.Lock(ctx, key)
	if err != nil {
		return err
	}
	defer unlock()
	return fn(ctx)
}
