// Copyright 2022 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTrimSpace(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitTrimSpace("a\nb\nc", "\n"))
	assert.Equal(t, []string{"a", "b"}, SplitTrimSpace("\r\na\n\r\nb\n\n", "\n"))
}

func TestSplitTrim(t *testing.T) {
	assert.Equal(t, []string{"10", "20", "30"}, SplitTrim(" 10, 20 ,30 ", ","))
	assert.Equal(t, []string{"a", "", "b"}, SplitTrim("a,,b", ","))
	assert.Equal(t, []string{""}, SplitTrim("", ","))
}

func TestCut2(t *testing.T) {
	k, v, ok := Cut2(" title = Sales = 2024 ", "=")
	assert.True(t, ok)
	assert.Equal(t, "title", k)
	assert.Equal(t, "Sales = 2024", v)

	k, v, ok = Cut2("novalue", "=")
	assert.False(t, ok)
	assert.Equal(t, "novalue", k)
	assert.Empty(t, v)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-5, 0, 255))
	assert.Equal(t, 255, Clamp(300, 0, 255))
	assert.InDelta(t, 0.5, Clamp(0.5, 0.0, 1.0), 1e-9)
}
