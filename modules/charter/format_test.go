// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAxisValue(t *testing.T) {
	kases := []struct {
		v        float64
		format   AxisFormat
		unit     string
		decimals int
		expected string
	}{
		{12, FormatNumber, "", 0, "12"},
		{12.346, FormatNumber, "%", 2, "12.35%"},
		{3.7, FormatNumber, "", -1, "4"},
		{3725, FormatTime, "", 0, "01:02:05"},
		{86400 * 365, FormatDate, "", 0, "01/01/1971"},
		{950, FormatMetric, "W", 0, "950W"},
		{1500, FormatMetric, "W", 1, "1.5 kW"},
		{1234.5, FormatCurrency, "", 0, "$1,234.5"},
		{-20, FormatCurrency, "€", 2, "-€20"},
		{1.5, FormatNumber, "", 20000000, "1.5000000000"},
	}
	for _, kase := range kases {
		assert.Equal(t, kase.expected, FormatAxisValue(kase.v, kase.format, kase.unit, kase.decimals), "%v %s", kase.v, kase.format)
	}
}
