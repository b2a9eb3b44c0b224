// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUseLightColor(t *testing.T) {
	assert.InDelta(t, 1, GetLuminance(255, 255, 255), 1e-9)
	assert.InDelta(t, 0, GetLuminance(0, 0, 0), 1e-9)

	assert.True(t, IsUseLightColor(0, 0, 0))
	assert.True(t, IsUseLightColor(0, 0, 255))
	assert.False(t, IsUseLightColor(255, 255, 255))
	assert.False(t, IsUseLightColor(250, 250, 210))
}
