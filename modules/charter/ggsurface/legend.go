// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package ggsurface

import (
	"math"

	"code.gitea.io/charter/modules/charter"
	"code.gitea.io/charter/modules/util"
)

const (
	legendPadding = 5
	legendSwatch  = 10
	legendGap     = 5
)

func serieDescriptions(data *charter.ChartData) []string {
	entries := make([]string, 0, len(data.Series))
	for _, serie := range data.Series {
		entries = append(entries, serie.Description)
	}
	return entries
}

func (s *Surface) legendLineHeight() float64 {
	return math.Max(s.dc.FontHeight(), legendSwatch) + 4
}

func (s *Surface) legendBoxSize(entries []string) (int, int) {
	if len(entries) == 0 {
		return 0, 0
	}
	textWidth := 0.0
	for _, e := range entries {
		w, _ := s.dc.MeasureString(e)
		textWidth = math.Max(textWidth, w)
	}
	w := legendPadding*2 + legendSwatch + legendGap + textWidth
	h := legendPadding*2 + float64(len(entries))*s.legendLineHeight()
	return int(math.Ceil(w)), int(math.Ceil(h))
}

// legendTextColor keeps the entries readable on dark legend backgrounds
func legendTextColor(bg charter.Color) charter.Color {
	if util.IsUseLightColor(float64(bg.R), float64(bg.G), float64(bg.B)) {
		return charter.Color{R: 255, G: 255, B: 255}
	}
	return textColor
}

func (s *Surface) drawLegend(x, y int, entries []string, bg charter.Color) {
	w, h := s.legendBoxSize(entries)
	if w == 0 {
		return
	}
	fx, fy := float64(x), float64(y)

	s.dc.SetColor(opaque(bg))
	s.dc.DrawRoundedRectangle(fx, fy, float64(w), float64(h), 4)
	s.dc.Fill()
	s.dc.SetColor(opaque(shift(bg, -50)))
	s.dc.SetLineWidth(1)
	s.dc.DrawRoundedRectangle(fx, fy, float64(w), float64(h), 4)
	s.dc.Stroke()

	lineHeight := s.legendLineHeight()
	for i, entry := range entries {
		mid := fy + legendPadding + (float64(i)+0.5)*lineHeight
		c := s.serieColor(i)

		s.dc.SetColor(opaque(c))
		s.dc.DrawRectangle(fx+legendPadding, mid-legendSwatch/2, legendSwatch, legendSwatch)
		s.dc.Fill()
		s.dc.SetColor(opaque(shift(c, -40)))
		s.dc.DrawRectangle(fx+legendPadding, mid-legendSwatch/2, legendSwatch, legendSwatch)
		s.dc.Stroke()

		s.dc.SetColor(opaque(legendTextColor(bg)))
		s.dc.DrawStringAnchored(entry, fx+legendPadding+legendSwatch+legendGap, mid, 0, 0.5)
	}
}

func (s *Surface) LegendBoxSize(data *charter.ChartData) (int, int) {
	return s.legendBoxSize(serieDescriptions(data))
}

func (s *Surface) PieLegendBoxSize(data *charter.ChartData) (int, int) {
	return s.legendBoxSize(data.Labels)
}

func (s *Surface) DrawLegend(x, y int, data *charter.ChartData, bg charter.Color) {
	s.drawLegend(x, y, serieDescriptions(data), bg)
}

func (s *Surface) DrawPieLegend(x, y int, data *charter.ChartData, bg charter.Color) {
	s.drawLegend(x, y, data.Labels, bg)
}
