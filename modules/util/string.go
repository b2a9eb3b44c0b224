// Copyright 2022 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package util

import "strings"

// TrimStrings trims the surrounding white space of every item, in place
func TrimStrings(items []string) []string {
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
	return items
}

// SplitTrim splits s by sep and trims every part. Unlike SplitTrimSpace, empty parts are kept,
// so the number of returned items always equals strings.Count(s, sep)+1.
func SplitTrim(s, sep string) []string {
	return TrimStrings(strings.Split(s, sep))
}

// SplitTrimSpace splits the string at given separator and trims leading and trailing space, empty parts are dropped
func SplitTrimSpace(input, sep string) []string {
	input = strings.TrimSpace(input)
	var stringList []string
	for _, s := range strings.Split(input, sep) {
		if s = strings.TrimSpace(s); s != "" {
			stringList = append(stringList, s)
		}
	}
	return stringList
}

// Cut2 splits s around the first sep, the second value is empty if sep is absent
func Cut2(s, sep string) (string, string, bool) {
	before, after, found := strings.Cut(s, sep)
	return strings.TrimSpace(before), strings.TrimSpace(after), found
}
