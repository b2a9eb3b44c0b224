// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"path/filepath"

	"code.gitea.io/charter/modules/log"
)

// Charter settings
var Charter = struct {
	FontPath        string
	PalettePath     string
	DefaultFont     string
	DefaultBoldFont string
	MaxWidth        int
	MaxHeight       int
	FontCacheSize   int
	MediaNamespace  string
}{
	DefaultFont:     "Vera.ttf",
	DefaultBoldFont: "VeraBd.ttf",
	MaxWidth:        4096,
	MaxHeight:       4096,
	FontCacheSize:   32,
}

func loadCharterFrom(rootCfg ConfigProvider) {
	mustMapSetting(rootCfg, "charter", &Charter)

	if Charter.FontPath == "" {
		Charter.FontPath = filepath.Join(CustomPath, "charter", "fonts")
	}
	Charter.FontPath = pathFromWork(Charter.FontPath)
	if Charter.PalettePath == "" {
		Charter.PalettePath = filepath.Join(CustomPath, "charter", "palettes")
	}
	Charter.PalettePath = pathFromWork(Charter.PalettePath)

	if Charter.MaxWidth <= 0 {
		log.Warn("Charter.MaxWidth %d is invalid, chart widths are not capped", Charter.MaxWidth)
		Charter.MaxWidth = 0
	}
	if Charter.MaxHeight <= 0 {
		log.Warn("Charter.MaxHeight %d is invalid, chart heights are not capped", Charter.MaxHeight)
		Charter.MaxHeight = 0
	}
	if Charter.FontCacheSize < 1 {
		Charter.FontCacheSize = 1
	}
}
