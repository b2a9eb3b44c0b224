// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package ggsurface

import (
	"image/color"
	"math"
	"strconv"

	"code.gitea.io/charter/modules/charter"
)

const (
	pieDepth       = 10
	pie3DFlatness  = 0.5
	pieLabelOffset = 10
)

var pieSeparator = charter.Color{R: 255, G: 255, B: 255}

type slice struct {
	index      int
	value      float64
	start, end float64
}

func (sl slice) mid() float64 {
	return (sl.start + sl.end) / 2
}

// pieSlices turns the first serie into slices clockwise from the top, void and negative
// values count as zero
func pieSlices(data *charter.ChartData) ([]slice, float64) {
	if len(data.Series) == 0 {
		return nil, 0
	}
	values := data.Series[0].Values
	total := 0.0
	for _, v := range values {
		if !math.IsNaN(v) && v > 0 {
			total += v
		}
	}
	if total <= 0 {
		return nil, 0
	}
	slices := make([]slice, 0, len(values))
	angle := -math.Pi / 2
	for i, v := range values {
		if math.IsNaN(v) || v <= 0 {
			continue
		}
		sweep := v / total * 2 * math.Pi
		slices = append(slices, slice{index: i, value: v, start: angle, end: angle + sweep})
		angle += sweep
	}
	return slices, total
}

func pieLabel(data *charter.ChartData, sl slice, total float64, opts charter.PieOptions) string {
	pct := strconv.FormatFloat(sl.value/total*100, 'f', min(max(opts.Decimals, 0), charter.MaxDecimals), 64) + "%"
	name := ""
	if sl.index < len(data.Labels) {
		name = data.Labels[sl.index]
	}
	switch opts.Labels {
	case charter.PiePercentage:
		return pct
	case charter.PieLabels:
		return name
	case charter.PiePercentageLabel:
		return name + " (" + pct + ")"
	}
	return ""
}

func (s *Surface) DrawPie(data *charter.ChartData, opts charter.PieOptions) {
	slices, total := pieSlices(data)
	if len(slices) == 0 || opts.Radius <= 0 {
		return
	}
	cx, cy, r := float64(opts.CX), float64(opts.CY), float64(opts.Radius)

	ry := r
	switch opts.Style {
	case charter.Pie3D:
		ry = r * pie3DFlatness
		s.drawPie3D(slices, cx, cy, r, ry)
	case charter.PieExploded:
		s.drawPieExploded(slices, cx, cy, r, float64(opts.Splice))
	default:
		s.drawPieBasic(slices, cx, cy, r)
	}

	if opts.Labels == charter.PieNoLabel {
		return
	}
	s.dc.SetColor(opaque(textColor))
	for _, sl := range slices {
		text := pieLabel(data, sl, total, opts)
		if text == "" {
			continue
		}
		dist := r + pieLabelOffset
		if opts.Style == charter.PieExploded {
			dist += float64(opts.Splice)
		}
		distY := dist * ry / r
		if opts.Style == charter.Pie3D && math.Sin(sl.mid()) > 0 {
			distY += pieDepth
		}
		lx, ly := cx+math.Cos(sl.mid())*dist, cy+math.Sin(sl.mid())*distY
		ax := 0.0
		if math.Cos(sl.mid()) < 0 {
			ax = 1
		}
		s.dc.DrawStringAnchored(text, lx, ly, ax, 0.5)
	}
}

func (s *Surface) sector(cx, cy, r float64, sl slice) {
	s.dc.MoveTo(cx, cy)
	s.dc.DrawArc(cx, cy, r, sl.start, sl.end)
	s.dc.ClosePath()
}

func (s *Surface) drawPieBasic(slices []slice, cx, cy, r float64) {
	for _, sl := range slices {
		s.dc.SetColor(opaque(s.serieColor(sl.index)))
		s.sector(cx, cy, r, sl)
		s.dc.Fill()
	}
	s.dc.SetColor(opaque(pieSeparator))
	s.dc.SetLineWidth(1)
	for _, sl := range slices {
		s.sector(cx, cy, r, sl)
		s.dc.Stroke()
	}
}

func (s *Surface) drawPieExploded(slices []slice, cx, cy, r, splice float64) {
	for _, sl := range slices {
		ox, oy := cx+math.Cos(sl.mid())*splice, cy+math.Sin(sl.mid())*splice
		s.withShadow(func(dx, dy float64, c color.Color, widen float64) {
			s.dc.SetColor(c)
			s.sector(ox+dx, oy+dy, r+widen/2, sl)
			s.dc.Fill()
		})
	}
	for _, sl := range slices {
		ox, oy := cx+math.Cos(sl.mid())*splice, cy+math.Sin(sl.mid())*splice
		c := s.serieColor(sl.index)
		s.dc.SetColor(opaque(c))
		s.sector(ox, oy, r, sl)
		s.dc.Fill()
		s.dc.SetColor(opaque(shift(c, -30)))
		s.dc.SetLineWidth(1)
		s.sector(ox, oy, r, sl)
		s.dc.Stroke()
	}
}

// drawPie3D draws the pie as a tilted disc: the rim of the front half first, then the top
func (s *Surface) drawPie3D(slices []slice, cx, cy, rx, ry float64) {
	for _, sl := range slices {
		// only the part of a slice facing the viewer has a visible side
		start, end := math.Max(sl.start, 0), math.Min(sl.end, math.Pi)
		if end <= start {
			continue
		}
		s.dc.SetColor(opaque(shift(s.serieColor(sl.index), -40)))
		s.dc.DrawEllipticalArc(cx, cy+pieDepth, rx, ry, start, end)
		s.dc.LineTo(cx+math.Cos(end)*rx, cy+math.Sin(end)*ry)
		s.dc.DrawEllipticalArc(cx, cy, rx, ry, end, start)
		s.dc.ClosePath()
		s.dc.Fill()
	}

	for _, sl := range slices {
		s.dc.SetColor(opaque(s.serieColor(sl.index)))
		s.dc.MoveTo(cx, cy)
		s.dc.DrawEllipticalArc(cx, cy, rx, ry, sl.start, sl.end)
		s.dc.ClosePath()
		s.dc.Fill()
	}
	s.dc.SetColor(opaque(pieSeparator))
	s.dc.SetLineWidth(1)
	for _, sl := range slices {
		s.dc.MoveTo(cx, cy)
		s.dc.DrawEllipticalArc(cx, cy, rx, ry, sl.start, sl.end)
		s.dc.ClosePath()
		s.dc.Stroke()
	}
}
