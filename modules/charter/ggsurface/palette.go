// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package ggsurface

import (
	"image/color"
	"math"
	"os"

	"code.gitea.io/charter/modules/charter"
	"code.gitea.io/charter/modules/util"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
)

// defaultPalette holds the serie colors used when no palette file is loaded
var defaultPalette = []charter.Color{
	{R: 188, G: 224, B: 46},
	{R: 224, G: 100, B: 46},
	{R: 224, G: 214, B: 46},
	{R: 46, G: 151, B: 224},
	{R: 176, G: 46, B: 224},
	{R: 224, G: 46, B: 117},
	{R: 92, G: 224, B: 46},
	{R: 224, G: 176, B: 46},
}

// LoadPalette replaces the serie colors with the ones in the palette file
func (s *Surface) LoadPalette(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	colors, err := charter.ParsePalette(f)
	if err != nil {
		return err
	}
	s.palette = colors
	return nil
}

// serieColor returns the color of the i-th serie. Past the end of the palette the colors
// repeat with the hue rotated and the lightness lowered, so every index still gets its own color.
func (s *Surface) serieColor(i int) charter.Color {
	palette := s.palette
	if len(palette) == 0 {
		palette = defaultPalette
	}
	if i < len(palette) {
		return palette[i]
	}
	base := palette[i%len(palette)]
	cycle := float64(i / len(palette))

	h, c, l := toColorful(base).Hcl()
	h = math.Mod(h+23*cycle, 360)
	l = util.Clamp(l-0.08*cycle, 0.2, 0.95)
	r, g, b := colorful.Hcl(h, c, l).Clamped().RGB255()
	return charter.Color{R: r, G: g, B: b}
}

func toColorful(c charter.Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// nrgba converts c with an opacity given in percent
func nrgba(c charter.Color, alphaPercent float64) color.NRGBA {
	a := util.Clamp(alphaPercent, 0, 100)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(a * 255 / 100))}
}

func opaque(c charter.Color) color.NRGBA {
	return nrgba(c, 100)
}

func shift(c charter.Color, delta int) charter.Color {
	ch := func(v uint8) uint8 { return uint8(util.Clamp(int(v)+delta, 0, 255)) }
	return charter.Color{R: ch(c.R), G: ch(c.G), B: ch(c.B)}
}

// gradient runs from g.Color at y0 to g.Color brightened by g.Shades at y1,
// the middle stop is blended in Lab space so the transition looks even
func gradient(g charter.Gradient, y0, y1 float64) gg.Gradient {
	start := g.Color
	end := shift(g.Color, g.Shades)
	mr, mg, mb := toColorful(start).BlendLab(toColorful(end), 0.5).Clamped().RGB255()

	grad := gg.NewLinearGradient(0, y0, 0, y1)
	grad.AddColorStop(0, opaque(start))
	grad.AddColorStop(0.5, color.NRGBA{R: mr, G: mg, B: mb, A: 255})
	grad.AddColorStop(1, opaque(end))
	return grad
}
