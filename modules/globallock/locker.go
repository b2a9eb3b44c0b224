// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package globallock

import (
	"context"
)

type Locker interface {
	// Lock tries to acquire a lock for the given key, it blocks until the lock is acquired or the context is canceled.
	//
	// Lock returns a new context which should be used in the following code.
	// The new context will be canceled when the lock is released or lost.
	//
	// Lock returns a release function, it is safe to call it multiple times,
	// even if the lock could not be acquired.
	Lock(ctx context.Context, key string) (context.Context, ReleaseFunc, error)
	// TryLock tries to acquire a lock for the given key, it returns immediately.
	// It follows the same pattern as Lock, but it doesn't block.
	// And if the lock is already held by others, it returns false rather than an error.
	TryLock(ctx context.Context, key string) (bool, context.Context, ReleaseFunc, error)
}

// ReleaseFunc is a function that releases a lock.
// It returns the parent context which was passed to Lock or TryLock.
type ReleaseFunc func() context.Context
