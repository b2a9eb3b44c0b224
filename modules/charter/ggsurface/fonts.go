// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package ggsurface

import (
	"fmt"
	"os"

	"code.gitea.io/charter/modules/charter"
	"code.gitea.io/charter/modules/log"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// fontDPI matches the resolution the point sizes of charter blocks were designed for
const fontDPI = 96

const (
	fallbackRegularKey = "\x00go-regular"
	fallbackBoldKey    = "\x00go-bold"
)

// Fonts caches parsed font files. Parsed fonts are shared between surfaces,
// faces are not: every call to Face returns a new one.
type Fonts struct {
	cache *lru.Cache[string, *opentype.Font]
}

// NewFonts returns a font cache holding at most size parsed fonts
func NewFonts(size int) *Fonts {
	cache, err := lru.New[string, *opentype.Font](max(size, 2))
	if err != nil {
		// only happens for a non-positive size
		panic(err)
	}
	return &Fonts{cache: cache}
}

// Face returns a face for the font. A file that cannot be read or parsed falls back to the
// Go fonts (bold when requested) and finally to a fixed bitmap face.
func (f *Fonts) Face(want charter.Font) font.Face {
	size := want.Size
	if size <= 0 {
		size = 8
	}
	if want.Path != "" {
		parsed, err := f.load(want.Path, func() ([]byte, error) { return os.ReadFile(want.Path) })
		if err == nil {
			var face font.Face
			if face, err = newFace(parsed, size); err == nil {
				return face
			}
		}
		log.Debug("charter: font %s unusable, falling back to the built-in font: %v", want.Path, err)
	}
	return f.fallback(size, want.Bold)
}

func (f *Fonts) fallback(size float64, bold bool) font.Face {
	key, ttf := fallbackRegularKey, goregular.TTF
	if bold {
		key, ttf = fallbackBoldKey, gobold.TTF
	}
	parsed, err := f.load(key, func() ([]byte, error) { return ttf, nil })
	if err == nil {
		if face, err := newFace(parsed, size); err == nil {
			return face
		}
	}
	return basicfont.Face7x13
}

func (f *Fonts) load(key string, read func() ([]byte, error)) (*opentype.Font, error) {
	if parsed, ok := f.cache.Get(key); ok {
		return parsed, nil
	}
	bs, err := read()
	if err != nil {
		return nil, err
	}
	parsed, err := opentype.Parse(bs)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	f.cache.Add(key, parsed)
	return parsed, nil
}

func newFace(parsed *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     fontDPI,
		Hinting: font.HintingFull,
	})
}
