// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charter

import (
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

// MaxDecimals bounds the precision of printed values
const MaxDecimals = 10

// FormatAxisValue prints a scale value the way the axis format asks for.
// time and date read v as seconds since the epoch (UTC), currency uses unit as the symbol
// ("$" when empty), the other formats append unit.
func FormatAxisValue(v float64, format AxisFormat, unit string, decimals int) string {
	decimals = min(max(decimals, 0), MaxDecimals)
	switch format {
	case FormatTime:
		return time.Unix(int64(math.Round(v)), 0).UTC().Format(time.TimeOnly)
	case FormatDate:
		return time.Unix(int64(math.Round(v)), 0).UTC().Format("02/01/2006")
	case FormatMetric:
		if math.Abs(v) < 1000 {
			return strconv.FormatFloat(v, 'f', decimals, 64) + unit
		}
		return humanize.SIWithDigits(v, decimals, unit)
	case FormatCurrency:
		symbol := unit
		if symbol == "" {
			symbol = "$"
		}
		if decimals == 0 {
			decimals = 2
		}
		if v < 0 {
			return "-" + symbol + humanize.CommafWithDigits(-v, decimals)
		}
		return symbol + humanize.CommafWithDigits(v, decimals)
	default:
		return strconv.FormatFloat(v, 'f', decimals, 64) + unit
	}
}
