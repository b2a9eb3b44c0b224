// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package globallock

import (
	"context"
	"errors"
	"sync"
	"time"
)

type memoryLocker struct {
	locks sync.Map
}

var _ Locker = &memoryLocker{}

// NewMemoryLocker returns a locker only valid within the current process
func NewMemoryLocker() Locker {
	return &memoryLocker{}
}

func (l *memoryLocker) Lock(ctx context.Context, key string) (context.Context, ReleaseFunc, error) {
	if l.tryLock(key) {
		return l.acquired(ctx, key)
	}

	ticker := time.NewTicker(time.Millisecond * 100)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx, func() context.Context { return ctx }, ctx.Err()
		case <-ticker.C:
			if l.tryLock(key) {
				return l.acquired(ctx, key)
			}
		}
	}
}

func (l *memoryLocker) TryLock(ctx context.Context, key string) (bool, context.Context, ReleaseFunc, error) {
	if l.tryLock(key) {
		ctx, release, err := l.acquired(ctx, key)
		return true, ctx, release, err
	}
	return false, ctx, func() context.Context { return ctx }, nil
}

func (l *memoryLocker) acquired(parent context.Context, key string) (context.Context, ReleaseFunc, error) {
	ctx, cancel := context.WithCancelCause(parent)
	releaseOnce := sync.Once{}
	return ctx, func() context.Context {
		releaseOnce.Do(func() {
			l.locks.Delete(key)
			cancel(errors.New("lock released"))
		})
		return parent
	}, nil
}

func (l *memoryLocker) tryLock(key string) bool {
	_, loaded := l.locks.LoadOrStore(key, struct{}{})
	return !loaded
}
