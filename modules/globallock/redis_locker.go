// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package globallock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"code.gitea.io/charter/modules/log"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const redisLockKeyPrefix = "charter:globallock:"

// redisLockExpiry is the default expiry of a redis lock,
// the lock is extended while it is held, so it only matters when the holder dies
var redisLockExpiry = 30 * time.Second

type redisLocker struct {
	rs *redsync.Redsync

	mutexM   sync.Map
	closed   atomic.Bool
	extendWg sync.WaitGroup
}

var _ Locker = &redisLocker{}

// NewRedisLocker returns a locker backed by the redis server at connection,
// connection is a redis URL like redis://127.0.0.1:6379/0
func NewRedisLocker(connection string) Locker {
	opts, err := redis.ParseURL(connection)
	if err != nil {
		// the connection string is checked when loading the settings
		log.Fatal("invalid redis connection string %q: %v", connection, err)
	}
	l := &redisLocker{
		rs: redsync.New(goredis.NewPool(redis.NewClient(opts))),
	}

	l.extendWg.Add(1)
	l.startExtend()

	return l
}

func (l *redisLocker) Lock(ctx context.Context, key string) (context.Context, ReleaseFunc, error) {
	return l.lock(ctx, key, 0)
}

func (l *redisLocker) TryLock(ctx context.Context, key string) (bool, context.Context, ReleaseFunc, error) {
	ctx, f, err := l.lock(ctx, key, 1)

	var (
		errTaken     *redsync.ErrTaken
		errNodeTaken *redsync.ErrNodeTaken
	)
	if errors.Is(err, redsync.ErrFailed) || errors.As(err, &errTaken) || errors.As(err, &errNodeTaken) {
		return false, ctx, f, nil
	}
	return err == nil, ctx, f, err
}

// Close closes the locker.
// It will stop extending the locks and refuse to acquire new locks.
// In actual use, it is not necessary to call this function.
// But it's useful in tests to release resources.
// It could take some time since it waits for the extending goroutine to finish.
func (l *redisLocker) Close() error {
	l.closed.Store(true)
	l.extendWg.Wait()
	return nil
}

type redisMutex struct {
	mutex  *redsync.Mutex
	cancel context.CancelCauseFunc
}

func (l *redisLocker) lock(ctx context.Context, key string, tries int) (context.Context, ReleaseFunc, error) {
	if l.closed.Load() {
		return ctx, func() context.Context { return ctx }, errors.New("locker is closed")
	}

	originalCtx := ctx

	options := []redsync.Option{
		redsync.WithExpiry(redisLockExpiry),
	}
	if tries > 0 {
		options = append(options, redsync.WithTries(tries))
	}
	mutex := l.rs.NewMutex(redisLockKeyPrefix+key, options...)
	if err := mutex.LockContext(ctx); err != nil {
		return ctx, func() context.Context { return originalCtx }, err
	}

	ctx, cancel := context.WithCancelCause(ctx)

	l.mutexM.Store(key, &redisMutex{
		mutex:  mutex,
		cancel: cancel,
	})

	releaseOnce := sync.Once{}
	return ctx, func() context.Context {
		releaseOnce.Do(func() {
			l.mutexM.Delete(key)

			// It's safe to ignore the error here,
			// if the lock is not released, it will be released automatically after the lock expires.
			// Do not call mutex.UnlockContext(ctx) here, or it will fail to unlock when ctx has timed out.
			_, _ = mutex.Unlock()
			cancel(errors.New("lock released"))
		})
		return originalCtx
	}, nil
}

func (l *redisLocker) startExtend() {
	if l.closed.Load() {
		l.extendWg.Done()
		return
	}

	toExtend := make([]*redisMutex, 0)
	l.mutexM.Range(func(_, value any) bool {
		m := value.(*redisMutex)

		// Extend the lock if it is not expired.
		// Although the mutex will be removed from the map before it is unlocked,
		// it still can be expired because of a failed extension.
		// If it happens, the cancel function should have been called,
		// so it does not need to be extended anymore.
		if time.Now().After(m.mutex.Until()) {
			return true
		}

		toExtend = append(toExtend, m)
		return true
	})
	for _, v := range toExtend {
		if ok, err := v.mutex.Extend(); !ok {
			v.cancel(fmt.Errorf("extend lock: %w", err))
		}
	}

	time.AfterFunc(redisLockExpiry/2, l.startExtend)
}
