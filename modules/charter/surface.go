// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charter

// ScaleMode selects how the value range of the scale is computed
type ScaleMode int

const (
	// ScaleStart0 spans 0 and every plotted value
	ScaleStart0 ScaleMode = iota
	// ScaleAddAllStart0 spans 0 and the per-point sums, for stacked bars
	ScaleAddAllStart0
)

// ScaleOptions configures DrawScale
type ScaleOptions struct {
	Mode     ScaleMode
	Color    Color
	Ticks    bool
	Angle    float64
	Decimals int
	// WithMargin keeps half a point of space at both ends of the abscissa, bars need it
	WithMargin bool
}

// SeriesKind is the way DrawSeries plots the data
type SeriesKind int

const (
	SeriesLine SeriesKind = iota
	SeriesFilledLine
	SeriesCubic
	SeriesFilledCubic
	SeriesBar
	SeriesStackedBar
	SeriesOverlayBar
)

// SeriesStyle configures DrawSeries
type SeriesStyle struct {
	Kind SeriesKind
	// Alpha is the fill opacity in percent, used by the filled and bar kinds
	Alpha float64
	// Accuracy is the step between interpolated samples of a cubic curve, as a fraction of a point interval
	Accuracy float64
	// Shadow asks the bar kind to draw a drop shadow in ShadowColor
	Shadow      bool
	ShadowColor Color
}

// Shadow is the drop shadow applied to everything drawn until ClearShadow
type Shadow struct {
	DX, DY int
	Color  Color
	Alpha  float64
	Blur   int
}

// PieStyle is the pie variant DrawPie draws
type PieStyle int

const (
	PieBasic PieStyle = iota
	Pie3D
	PieExploded
)

// PieLabelMode is what is printed next to every slice
type PieLabelMode int

const (
	PieNoLabel PieLabelMode = iota
	PiePercentage
	PieLabels
	PiePercentageLabel
)

// PieOptions configures DrawPie
type PieOptions struct {
	Style    PieStyle
	CX, CY   int
	Radius   int
	Labels   PieLabelMode
	Splice   int
	Decimals int
}

// Surface is the drawing backend the chart assembler talks to.
// A Surface is owned by one render call and is not safe for concurrent use.
type Surface interface {
	DrawBackground(c Color)
	DrawBackgroundGradient(g Gradient)
	// LoadPalette replaces the serie colors with the ones in the palette file
	LoadPalette(path string) error
	SetFont(f Font)

	// LegendBoxSize measures the legend of the series with the current font
	LegendBoxSize(data *ChartData) (width, height int)
	// PieLegendBoxSize measures the legend of the pie slices with the current font
	PieLegendBoxSize(data *ChartData) (width, height int)

	SetGraphArea(x1, y1, x2, y2 int)
	DrawGraphArea(c Color, striped bool)
	DrawGraphAreaGradient(g Gradient)
	DrawLegend(x, y int, data *ChartData, background Color)
	DrawPieLegend(x, y int, data *ChartData, background Color)

	DrawScale(data *ChartData, opts ScaleOptions)
	DrawGrid(lineWidth int, mosaic bool, c Color, alpha float64)
	DrawThreshold(value float64, c Color, showLabel, showOnRight bool)
	DrawPlotGraph(data *ChartData, radius float64)

	SetShadow(s Shadow)
	ClearShadow()

	DrawSeries(data *ChartData, style SeriesStyle)
	SetLabel(data *ChartData, serie int, x, text string)
	// DrawTitle centers text between x1 and x2 with its baseline at y
	DrawTitle(x1, y, x2 int, text string, c Color)
	DrawPie(data *ChartData, opts PieOptions)

	// Render writes the image to path
	Render(path string) error
}

// SurfaceFactory creates an empty Surface of the given canvas size
type SurfaceFactory func(width, height int) Surface
