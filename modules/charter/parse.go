// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charter

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"code.gitea.io/charter/modules/util"
)

// RawConfig maps option names to the values as the author wrote them
type RawConfig map[string]string

// DataTable holds the data rows of a block, each cell trimmed
type DataTable [][]string

// Block is a charter block split into its flags and its data rows
type Block struct {
	Flags RawConfig
	Rows  []string
}

// ParseBlock splits the body of a charter block. Leading and trailing blank lines are ignored,
// the lines before the first blank line are "key = value" flags, every other non-blank line is a data row.
// Flag lines without "=" are skipped, a repeated key keeps the last value.
func ParseBlock(text string) *Block {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	block := &Block{Flags: RawConfig{}}
	inData := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			inData = true
		case inData:
			block.Rows = append(block.Rows, line)
		default:
			name, value, ok := util.Cut2(line, "=")
			if !ok || name == "" {
				continue
			}
			block.Flags[name] = value
		}
	}
	return block
}

// ParseCSV splits every row on "," and trims the cells. Quoting is not supported.
func ParseCSV(rows []string) DataTable {
	table := make(DataTable, 0, len(rows))
	for _, row := range rows {
		table = append(table, util.SplitTrim(row, ","))
	}
	return table
}

// ParseRGB parses "#rrggbb", "#rgb" or the same without the leading "#".
// In the short form every digit is doubled, so "#0f0" is (0, 255, 0).
func ParseRGB(input string) (Color, error) {
	s := strings.TrimPrefix(input, "#")
	switch len(s) {
	case 6:
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	default:
		return Color{}, util.NewInvalidArgumentErrorf("invalid color %q: want 3 or 6 hex digits", input)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, util.NewInvalidArgumentErrorf("invalid color %q: %v", input, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// ParsePalette reads a palette file: one "R,G,B" line per color, channels 0-255.
// Blank lines are skipped, any other malformed line is an error.
func ParsePalette(r io.Reader) ([]Color, error) {
	var colors []Color
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := util.SplitTrim(line, ",")
		if len(parts) != 3 {
			return nil, util.NewInvalidArgumentErrorf("palette line %d: want R,G,B", lineNum)
		}
		var ch [3]uint8
		for i, p := range parts {
			v, err := strconv.ParseUint(p, 10, 8)
			if err != nil {
				return nil, util.NewInvalidArgumentErrorf("palette line %d: %v", lineNum, err)
			}
			ch[i] = uint8(v)
		}
		colors = append(colors, Color{R: ch[0], G: ch[1], B: ch[2]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(colors) == 0 {
		return nil, util.NewInvalidArgumentErrorf("palette has no colors")
	}
	return colors, nil
}

// parseBool only accepts the exact literals true/1/on and false/0/off
func parseBool(s string) (v, ok bool) {
	switch s {
	case "true", "1", "on":
		return true, true
	case "false", "0", "off":
		return false, true
	}
	return false, false
}

// parseNumber accepts any finite decimal number
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseCount accepts a non-negative number that fits an int32, fractions are truncated
func parseCount(s string) (int, bool) {
	v, ok := parseNumber(s)
	if !ok || v < 0 || v > math.MaxInt32 {
		return 0, false
	}
	return int(v), true
}
