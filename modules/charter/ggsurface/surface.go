// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ggsurface draws charts with github.com/fogleman/gg
package ggsurface

import (
	"image"
	"image/color"
	"io"
	"math"

	"code.gitea.io/charter/modules/charter"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

var (
	textColor   = charter.Color{}
	labelBorder = charter.Color{R: 80, G: 80, B: 80}
	mosaicColor = charter.Color{R: 250, G: 250, B: 250}
)

type rect struct {
	x1, y1, x2, y2 float64
}

func (r rect) width() float64  { return r.x2 - r.x1 }
func (r rect) height() float64 { return r.y2 - r.y1 }

// Surface is a charter.Surface painting onto an in-memory RGBA image
type Surface struct {
	dc      *gg.Context
	fonts   *Fonts
	face    font.Face
	palette []charter.Color
	area    rect
	scale   *scale
	shadow  *charter.Shadow
}

var _ charter.Surface = (*Surface)(nil)

// New returns a blank surface of the given size
func New(width, height int, fonts *Fonts) *Surface {
	width, height = max(width, 0), max(height, 0)
	s := &Surface{
		dc:    gg.NewContext(width, height),
		fonts: fonts,
		area:  rect{0, 0, float64(width), float64(height)},
	}
	s.SetFont(charter.Font{Size: 8})
	return s
}

// NewFactory returns a charter.SurfaceFactory sharing one font cache between all surfaces
func NewFactory(fonts *Fonts) charter.SurfaceFactory {
	return func(width, height int) charter.Surface {
		return New(width, height, fonts)
	}
}

func (s *Surface) width() float64  { return float64(s.dc.Width()) }
func (s *Surface) height() float64 { return float64(s.dc.Height()) }

func (s *Surface) DrawBackground(c charter.Color) {
	s.dc.SetColor(opaque(c))
	s.dc.Clear()
}

func (s *Surface) DrawBackgroundGradient(g charter.Gradient) {
	s.dc.SetFillStyle(gradient(g, 0, s.height()))
	s.dc.DrawRectangle(0, 0, s.width(), s.height())
	s.dc.Fill()
}

func (s *Surface) SetFont(f charter.Font) {
	s.face = s.fonts.Face(f)
	s.dc.SetFontFace(s.face)
}

func (s *Surface) SetGraphArea(x1, y1, x2, y2 int) {
	// keep the area at least one pixel wide and high on tiny canvases
	s.area = rect{float64(x1), float64(y1), math.Max(float64(x2), float64(x1+1)), math.Max(float64(y2), float64(y1+1))}
}

func (s *Surface) DrawGraphArea(c charter.Color, striped bool) {
	a := s.area
	s.dc.SetColor(opaque(c))
	s.dc.DrawRectangle(a.x1, a.y1, a.width(), a.height())
	s.dc.Fill()

	if striped {
		s.dc.Push()
		s.dc.DrawRectangle(a.x1, a.y1, a.width(), a.height())
		s.dc.Clip()
		s.dc.SetColor(opaque(shift(c, -15)))
		s.dc.SetLineWidth(1)
		for x := a.x1 - a.height(); x < a.x2; x += 4 {
			s.dc.DrawLine(x, a.y2, x+a.height(), a.y1)
		}
		s.dc.Stroke()
		s.dc.Pop()
	}

	s.dc.SetColor(opaque(shift(c, -40)))
	s.dc.SetLineWidth(1)
	s.dc.DrawRectangle(a.x1, a.y1, a.width(), a.height())
	s.dc.Stroke()
}

func (s *Surface) DrawGraphAreaGradient(g charter.Gradient) {
	a := s.area
	s.dc.SetFillStyle(gradient(g, a.y1, a.y2))
	s.dc.DrawRectangle(a.x1, a.y1, a.width(), a.height())
	s.dc.Fill()
}

func (s *Surface) DrawTitle(x1, y, x2 int, text string, c charter.Color) {
	s.dc.SetColor(opaque(c))
	s.dc.DrawStringAnchored(text, float64(x1+x2)/2, float64(y), 0.5, 0)
}

func (s *Surface) SetShadow(sh charter.Shadow) {
	s.shadow = &sh
}

func (s *Surface) ClearShadow() {
	s.shadow = nil
}

// withShadow paints the shadow of a shape, the blur is approximated by repeating the shape
// with a growing stroke and a fraction of the shadow opacity each time
func (s *Surface) withShadow(paint func(dx, dy float64, c color.Color, widen float64)) {
	sh := s.shadow
	if sh == nil {
		return
	}
	passes := max(sh.Blur, 0) + 1
	c := nrgba(sh.Color, sh.Alpha/float64(passes))
	for k := passes - 1; k >= 0; k-- {
		paint(float64(sh.DX), float64(sh.DY), c, float64(k))
	}
}

// Render writes the image as PNG
func (s *Surface) Render(path string) error {
	return s.dc.SavePNG(path)
}

// EncodePNG writes the image as PNG to w
func (s *Surface) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}

// Image returns the image drawn so far
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}
