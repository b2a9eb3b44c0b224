// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"strconv"
	"strings"
)

const escape = "\033"

// ColorAttribute defines a single SGR Code
type ColorAttribute int

// Base ColorAttributes
const (
	Reset ColorAttribute = iota
	Bold
)

// Foreground text colors
const (
	FgBlack ColorAttribute = iota + 30
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Background text colors
const (
	BgBlack ColorAttribute = iota + 40
	BgRed
)

var (
	CanColorStdout = true
	CanColorStderr = true
)

// ColorString converts a list of ColorAttributes to a color string
func ColorString(attrs ...ColorAttribute) string {
	return string(ColorBytes(attrs...))
}

// ColorBytes converts a list of ColorAttributes to a byte array
func ColorBytes(attrs ...ColorAttribute) []byte {
	parts := make([]string, 0, len(attrs))
	for _, a := range attrs {
		parts = append(parts, strconv.Itoa(int(a)))
	}
	return []byte(escape + "[" + strings.Join(parts, ";") + "m")
}

var resetBytes = ColorBytes(Reset)
