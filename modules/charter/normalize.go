// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charter

import (
	"slices"

	"code.gitea.io/charter/modules/log"
)

// Normalizer validates RawConfig against the option schema.
// The directories and defaults are fixed at construction so it can be used concurrently.
type Normalizer struct {
	FontDir    string
	PaletteDir string
	Defaults   *Options

	// MaxWidth and MaxHeight cap the canvas, zero means no cap
	MaxWidth  int
	MaxHeight int
}

// NewNormalizer returns a Normalizer using the stock Vera fonts from fontDir as defaults
func NewNormalizer(fontDir, paletteDir string) *Normalizer {
	return &Normalizer{
		FontDir:    fontDir,
		PaletteDir: paletteDir,
		Defaults:   DefaultOptions(fontDir, "Vera.ttf", "VeraBd.ttf"),
	}
}

// Normalize never fails: unknown keys and values that do not validate are dropped and the
// corresponding option keeps its default. Keys are applied in sorted order, so when aliases
// collide the result does not depend on map iteration.
func (n *Normalizer) Normalize(raw RawConfig) *Options {
	defaults := n.Defaults
	if defaults == nil {
		defaults = DefaultOptions(n.FontDir, "Vera.ttf", "VeraBd.ttf")
	}
	opts := defaults.Clone()

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		coerce, ok := schema[key]
		if !ok {
			log.Trace("charter: unknown option %q dropped", key)
			continue
		}
		// coercers only write on success, so a failed key leaves the default untouched
		if !coerce(n, opts, raw[key]) {
			log.Trace("charter: invalid value %q for option %q dropped", raw[key], key)
		}
	}
	return opts
}
