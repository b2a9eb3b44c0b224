// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package globallock

import (
	"context"
	"sync"

	"code.gitea.io/charter/modules/setting"
)

var (
	defaultLocker Locker
	initOnce      sync.Once
)

// DefaultLocker returns the locker configured by setting.GlobalLock
func DefaultLocker() Locker {
	initOnce.Do(func() {
		switch setting.GlobalLock.ServiceType {
		case "redis":
			defaultLocker = NewRedisLocker(setting.GlobalLock.ServiceConnStr)
		default:
			defaultLocker = NewMemoryLocker()
		}
	})
	return defaultLocker
}

// Lock tries to acquire a lock for the given key, it uses the default locker.
// Read the documentation of Locker.Lock for more information about the behavior.
func Lock(ctx context.Context, key string) (context.Context, ReleaseFunc, error) {
	return DefaultLocker().Lock(ctx, key)
}

// TryLock tries to acquire a lock for the given key, it uses the default locker.
// Read the documentation of Locker.TryLock for more information about the behavior.
func TryLock(ctx context.Context, key string) (bool, context.Context, ReleaseFunc, error) {
	return DefaultLocker().TryLock(ctx, key)
}

// LockAndDo tries to acquire a lock for the given key and then calls the given function.
// It uses the default locker, and it will return an error if failed to acquire the lock.
func LockAndDo(ctx context.Context, key string, f func(context.Context) error) error {
	ctx, release, err := Lock(ctx, key)
	if err != nil {
		return err
	}
	defer release()

	return f(ctx)
}
