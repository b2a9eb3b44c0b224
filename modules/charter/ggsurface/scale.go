// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package ggsurface

import (
	"math"
	"strconv"

	"code.gitea.io/charter/modules/charter"

	"github.com/fogleman/gg"
)

// scale maps data coordinates to pixels, DrawScale sets it up for everything drawn afterwards
type scale struct {
	min, max  float64
	step      float64
	divisions int
	points    int
	margin    bool
	decimals  int
	format    charter.AxisFormat
	unit      string
}

// niceStep rounds raw up to 1, 2, 2.5 or 5 times a power of ten
func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if raw <= m*exp {
			return m * exp
		}
	}
	return 10 * exp
}

func newScale(data *charter.ChartData, opts charter.ScaleOptions, areaHeight, fontHeight float64) *scale {
	lo, hi, ok := data.Bounds(opts.Mode == charter.ScaleAddAllStart0)
	if !ok {
		lo, hi = 0, 1
	}
	lo, hi = math.Min(lo, 0), math.Max(hi, 0)
	// stacked sums may still overflow, fall back to the largest range that does not
	if math.IsInf(hi-lo, 0) {
		lo, hi = math.Max(lo, -charter.MaxPlotValue), math.Min(hi, charter.MaxPlotValue)
	}
	if hi == lo {
		hi = lo + 1
	}

	maxDivisions := max(2, int(areaHeight/math.Max(2*fontHeight, 20)))
	step := niceStep((hi - lo) / float64(maxDivisions))
	lo = math.Floor(lo/step) * step
	hi = math.Ceil(hi/step) * step

	return &scale{
		min:       lo,
		max:       hi,
		step:      step,
		divisions: int(math.Round((hi - lo) / step)),
		points:    data.Points(),
		margin:    opts.WithMargin,
		decimals:  opts.Decimals,
		format:    data.YAxisFormat,
		unit:      data.YAxisUnit,
	}
}

// xStep is the distance between two points
func (s *Surface) xStep() float64 {
	sc := s.scale
	if sc.margin {
		return s.area.width() / float64(max(sc.points, 1))
	}
	return s.area.width() / float64(max(sc.points-1, 1))
}

// x returns the horizontal center of point i
func (s *Surface) x(i int) float64 {
	sc := s.scale
	if sc.margin {
		return s.area.x1 + s.xStep()*(float64(i)+0.5)
	}
	if sc.points == 1 {
		return s.area.x1 + s.area.width()/2
	}
	return s.area.x1 + s.xStep()*float64(i)
}

// y returns the vertical position of v, ok is false when v cannot be placed
func (s *Surface) y(v float64) (float64, bool) {
	sc := s.scale
	yy := s.area.y2 - (v-sc.min)/(sc.max-sc.min)*s.area.height()
	return yy, finite(yy)
}

func finite(f ...float64) bool {
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// baseline is the y of the zero line, clamped into the scale
func (s *Surface) baseline() float64 {
	yy, _ := s.y(math.Max(s.scale.min, math.Min(0, s.scale.max)))
	return yy
}

func (s *Surface) ensureScale(data *charter.ChartData) {
	if s.scale == nil {
		s.scale = newScale(data, charter.ScaleOptions{}, s.area.height(), s.dc.FontHeight())
	}
}

func formatXLabel(label string, data *charter.ChartData, decimals int) string {
	if data.XAxisFormat == charter.FormatNumber || data.XAxisFormat == "" {
		return label + data.XAxisUnit
	}
	v, err := strconv.ParseFloat(label, 64)
	if err != nil {
		return label + data.XAxisUnit
	}
	return charter.FormatAxisValue(v, data.XAxisFormat, data.XAxisUnit, decimals)
}

func (s *Surface) DrawScale(data *charter.ChartData, opts charter.ScaleOptions) {
	s.scale = newScale(data, opts, s.area.height(), s.dc.FontHeight())
	sc := s.scale
	a := s.area
	dc := s.dc

	dc.SetColor(opaque(opts.Color))
	dc.SetLineWidth(1)
	dc.DrawLine(a.x1, a.y1, a.x1, a.y2)
	dc.DrawLine(a.x1, a.y2, a.x2, a.y2)
	dc.Stroke()

	yLabelWidth := 0.0
	for d := 0; d <= sc.divisions; d++ {
		v := sc.min + float64(d)*sc.step
		yy, ok := s.y(v)
		if !ok {
			continue
		}
		if opts.Ticks {
			dc.DrawLine(a.x1-5, yy, a.x1, yy)
			dc.Stroke()
		}
		label := charter.FormatAxisValue(v, sc.format, sc.unit, sc.decimals)
		w, _ := dc.MeasureString(label)
		yLabelWidth = math.Max(yLabelWidth, w)
		dc.DrawStringAnchored(label, a.x1-10, yy, 1, 0.5)
	}

	labels := make([]string, len(data.Labels))
	labelWidth := 0.0
	for i, l := range data.Labels {
		labels[i] = formatXLabel(l, data, opts.Decimals)
		w, _ := dc.MeasureString(labels[i])
		labelWidth = math.Max(labelWidth, w)
	}
	every := 1
	if step := s.xStep(); opts.Angle == 0 && step > 0 {
		every = max(1, int(math.Ceil((labelWidth+4)/step)))
	}
	for i, label := range labels {
		xx := s.x(i)
		if opts.Ticks {
			dc.DrawLine(xx, a.y2, xx, a.y2+5)
			dc.Stroke()
		}
		if i%every != 0 {
			continue
		}
		if opts.Angle != 0 {
			dc.Push()
			dc.RotateAbout(gg.Radians(-opts.Angle), xx, a.y2+8)
			dc.DrawStringAnchored(label, xx, a.y2+8, 1, 0.5)
			dc.Pop()
			continue
		}
		dc.DrawStringAnchored(label, xx, a.y2+8, 0.5, 1)
	}

	if data.XAxisName != "" {
		dc.DrawStringAnchored(data.XAxisName, (a.x1+a.x2)/2, a.y2+12+dc.FontHeight(), 0.5, 1)
	}
	if data.YAxisName != "" {
		cx, cy := math.Max(a.x1-yLabelWidth-18, dc.FontHeight()/2), (a.y1+a.y2)/2
		dc.Push()
		dc.RotateAbout(gg.Radians(-90), cx, cy)
		dc.DrawStringAnchored(data.YAxisName, cx, cy, 0.5, 0.5)
		dc.Pop()
	}
}

func (s *Surface) DrawGrid(lineWidth int, mosaic bool, c charter.Color, alpha float64) {
	if s.scale == nil {
		return
	}
	sc := s.scale
	a := s.area
	dc := s.dc

	if mosaic {
		dc.SetColor(nrgba(mosaicColor, alpha))
		for d := 0; d < sc.divisions; d += 2 {
			top, okTop := s.y(sc.min + float64(d+1)*sc.step)
			bottom, okBottom := s.y(sc.min + float64(d)*sc.step)
			if !okTop || !okBottom {
				continue
			}
			dc.DrawRectangle(a.x1+1, top, a.width()-2, bottom-top)
		}
		dc.Fill()
	}

	dash := float64(max(lineWidth, 1))
	dc.SetDash(dash, dash)
	dc.SetLineWidth(1)
	dc.SetColor(opaque(c))
	for d := 1; d < sc.divisions; d++ {
		if yy, ok := s.y(sc.min + float64(d)*sc.step); ok {
			dc.DrawLine(a.x1, yy, a.x2, yy)
		}
	}
	for i := 0; i < sc.points; i++ {
		xx := s.x(i)
		dc.DrawLine(xx, a.y1, xx, a.y2)
	}
	dc.Stroke()
	dc.SetDash()
}

func (s *Surface) DrawThreshold(value float64, c charter.Color, showLabel, showOnRight bool) {
	if s.scale == nil || value < s.scale.min || value > s.scale.max {
		return
	}
	a := s.area
	dc := s.dc
	yy, ok := s.y(value)
	if !ok {
		return
	}

	dc.SetColor(opaque(c))
	dc.SetLineWidth(1)
	dc.SetDash(4, 2)
	dc.DrawLine(a.x1, yy, a.x2, yy)
	dc.Stroke()
	dc.SetDash()

	if !showLabel {
		return
	}
	label := charter.FormatAxisValue(value, s.scale.format, s.scale.unit, s.scale.decimals)
	if showOnRight {
		dc.DrawStringAnchored(label, a.x2+5, yy, 0, 0.5)
	} else {
		dc.DrawStringAnchored(label, a.x1+5, yy-3, 0, 0)
	}
}
