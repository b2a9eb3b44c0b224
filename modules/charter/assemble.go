// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charter

import (
	"code.gitea.io/charter/modules/log"
)

var (
	gridColor      = Color{230, 230, 230}
	thresholdColor = Color{143, 55, 72}
)

const (
	gridLineWidth = 4
	cubicAccuracy = 0.1
	pieSplice     = 10
)

func shadowOf(opts *Options) Shadow {
	return Shadow{DX: 3, DY: 3, Color: opts.ShadowColor, Alpha: 30, Blur: 4}
}

// assembleLineChart draws the line and bar family. Later calls paint over earlier ones,
// so the order of the calls is part of the result.
func assembleLineChart(s Surface, opts *Options, data *ChartData) {
	w, h := opts.Size.Width, opts.Size.Height

	s.DrawBackground(opts.BackgroundColor)
	if opts.BackgroundGradient != nil {
		s.DrawBackgroundGradient(*opts.BackgroundGradient)
	}
	loadPalette(s, opts)

	s.SetFont(opts.FontLegend)
	legendWidth := 0
	if opts.Legend {
		legendWidth, _ = s.LegendBoxSize(data)
	}

	s.SetFont(opts.FontDefault)
	s.SetGraphArea(50, 30, w-legendWidth-40, h-50)
	s.DrawGraphArea(opts.GraphColor, true)
	if opts.GraphGradient != nil {
		s.DrawGraphAreaGradient(*opts.GraphGradient)
	}

	if opts.Legend {
		s.SetFont(opts.FontLegend)
		s.DrawLegend(w-legendWidth-15, 30, data, opts.LegendColor)
		s.SetFont(opts.FontDefault)
	}

	scale := ScaleOptions{
		Mode:       ScaleStart0,
		Color:      opts.ScaleColor,
		Ticks:      opts.Ticks,
		Decimals:   opts.Decimals,
		WithMargin: opts.Type.IsBar(),
	}
	if opts.Type == TypeBarStacked {
		scale.Mode = ScaleAddAllStart0
	}
	s.DrawScale(data, scale)

	if opts.Grid {
		s.DrawGrid(gridLineWidth, true, gridColor, opts.Alpha)
	}

	for _, threshold := range opts.Thresholds {
		v, ok := parseNumber(threshold)
		if !ok {
			log.Trace("charter: skip non-numeric threshold %q", threshold)
			continue
		}
		s.DrawThreshold(v, thresholdColor, true, true)
	}

	if opts.Dots > 0 {
		s.DrawPlotGraph(data, opts.Dots)
	}
	if opts.Shadow && opts.Type.IsLine() {
		s.SetShadow(shadowOf(opts))
	}
	s.DrawSeries(data, seriesStyle(opts))
	s.ClearShadow()

	if len(opts.GraphLabels) > 0 {
		s.SetFont(opts.FontLegend)
		for _, label := range opts.GraphLabels {
			s.SetLabel(data, label.Serie, label.X, label.Text)
		}
	}

	if opts.Title != "" {
		s.SetFont(opts.FontTitle)
		s.DrawTitle(50, 20, w-legendWidth-40, opts.Title, opts.TitleColor)
	}
}

func seriesStyle(opts *Options) SeriesStyle {
	style := SeriesStyle{Alpha: opts.Alpha}
	switch opts.Type {
	case TypeLineFilled:
		style.Kind = SeriesFilledLine
	case TypeCubic:
		style.Kind = SeriesCubic
		style.Accuracy = cubicAccuracy
	case TypeCubicFilled:
		style.Kind = SeriesFilledCubic
		style.Accuracy = cubicAccuracy
	case TypeBar:
		style.Kind = SeriesBar
		style.Shadow = opts.Shadow
		style.ShadowColor = opts.ShadowColor
	case TypeBarStacked:
		style.Kind = SeriesStackedBar
	case TypeBarOverlayed:
		style.Kind = SeriesOverlayBar
	default:
		// TypeLine, and any type the line path falls back for
		style.Kind = SeriesLine
	}
	return style
}

// pieLabelMode derives the slice labels from the two toggles
func pieLabelMode(opts *Options) PieLabelMode {
	switch {
	case opts.PieLabels && opts.PiePercentages:
		return PiePercentageLabel
	case opts.PieLabels:
		return PieLabels
	case opts.PiePercentages:
		return PiePercentage
	}
	return PieNoLabel
}

// assemblePieChart draws the pie family
func assemblePieChart(s Surface, opts *Options, data *ChartData) {
	w, h := opts.Size.Width, opts.Size.Height

	s.DrawBackground(opts.BackgroundColor)
	loadPalette(s, opts)

	s.SetFont(opts.FontLegend)
	legendWidth := 0
	if opts.Legend {
		legendWidth, _ = s.PieLegendBoxSize(data)
	}

	cx, cy := (w-legendWidth-20)/2, h/2
	radius := min(cx, cy) - 40
	if opts.Type == TypePieExploded {
		radius -= 20
	}

	s.SetFont(opts.FontDefault)
	if opts.Legend {
		s.SetFont(opts.FontLegend)
		s.DrawPieLegend(w-legendWidth-15, 30, data, opts.LegendColor)
		s.SetFont(opts.FontDefault)
	}

	pie := PieOptions{CX: cx, CY: cy, Radius: radius, Labels: pieLabelMode(opts)}
	switch opts.Type {
	case TypePie3D:
		pie.Style = Pie3D
		s.DrawPie(data, pie)
	case TypePieExploded:
		pie.Style = PieExploded
		pie.Splice = pieSplice
		pie.Decimals = opts.Decimals
		s.SetShadow(shadowOf(opts))
		s.DrawPie(data, pie)
		s.ClearShadow()
	default:
		pie.Style = PieBasic
		s.DrawPie(data, pie)
	}

	if opts.Title != "" {
		s.SetFont(opts.FontTitle)
		s.DrawTitle(50, 20, w-legendWidth-40, opts.Title, opts.TitleColor)
		s.SetFont(opts.FontLegend)
	}
}

func loadPalette(s Surface, opts *Options) {
	if opts.Palette == "" {
		return
	}
	if err := s.LoadPalette(opts.Palette); err != nil {
		log.Warn("charter: unable to load palette %s: %v", opts.Palette, err)
	}
}
