// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charter

import (
	"context"
	"sync"

	"code.gitea.io/charter/modules/charter"
	"code.gitea.io/charter/modules/charter/ggsurface"
	"code.gitea.io/charter/modules/log"
	"code.gitea.io/charter/modules/setting"
)

var (
	renderer   *charter.Renderer
	rendererMu sync.RWMutex
)

// NewRendererFromSettings builds a renderer from the [charter] settings
func NewRendererFromSettings() *charter.Renderer {
	normalizer := charter.NewNormalizer(setting.Charter.FontPath, setting.Charter.PalettePath)
	normalizer.Defaults = charter.DefaultOptions(setting.Charter.FontPath, setting.Charter.DefaultFont, setting.Charter.DefaultBoldFont)
	normalizer.MaxWidth = setting.Charter.MaxWidth
	normalizer.MaxHeight = setting.Charter.MaxHeight

	fonts := ggsurface.NewFonts(setting.Charter.FontCacheSize)
	return charter.NewRenderer(normalizer, ggsurface.NewFactory(fonts))
}

// Init sets up the chart renderer, settings and storage must have been loaded before
func Init(ctx context.Context) error {
	r := NewRendererFromSettings()
	log.Info("Charter: fonts from %s, palettes from %s", r.Normalizer.FontDir, r.Normalizer.PaletteDir)
	SetRenderer(r)
	return nil
}

// SetRenderer replaces the renderer used by the service
func SetRenderer(r *charter.Renderer) {
	rendererMu.Lock()
	renderer = r
	rendererMu.Unlock()
}

func getRenderer() *charter.Renderer {
	rendererMu.RLock()
	r := renderer
	rendererMu.RUnlock()
	if r == nil {
		// lazily fall back to the settings, e.g. for commands which did not call Init
		r = NewRendererFromSettings()
		SetRenderer(r)
	}
	return r
}
