// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package util

// GetLuminance returns the relative luminance of RGB channels in the 0..255 range
func GetLuminance(r, g, b float64) float64 {
	// Reference from: https://www.w3.org/WAI/GL/wiki/Relative_luminance
	return (0.2126*r + 0.7152*g + 0.0722*b) / 255
}

// IsUseLightColor reports whether text drawn on the given background should be light
func IsUseLightColor(r, g, b float64) bool {
	const lightnessThreshold = 0.453
	return GetLuminance(r, g, b) < lightnessThreshold
}
