// Copyright 2017 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package test

// MockVariableValue sets a variable to a new value and returns a function to restore it.
// Without a value it only records the current one, so tests can freely change it.
func MockVariableValue[T any](p *T, v ...T) (reset func()) {
	old := *p
	if len(v) > 0 {
		*p = v[0]
	}
	return func() { *p = old }
}
