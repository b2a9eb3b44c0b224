// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package charter turns a charter block (flags plus comma separated data rows)
// into a validated chart configuration and draws it onto a Surface.
package charter

import (
	"fmt"
	"path/filepath"
	"slices"
)

// ChartType is one of the chart variants a block may ask for
type ChartType string

// enumerates all the chart types
const (
	TypeLine         ChartType = "line"
	TypeLineFilled   ChartType = "lineFilled"
	TypeCubic        ChartType = "cubic"
	TypeCubicFilled  ChartType = "cubicFilled"
	TypeBar          ChartType = "bar"
	TypeBarStacked   ChartType = "barStacked"
	TypeBarOverlayed ChartType = "barOverlayed"
	TypePie          ChartType = "pie"
	TypePie3D        ChartType = "pie3d"
	TypePieExploded  ChartType = "pieExploded"
)

var validTypes = []ChartType{
	TypeLine,
	TypeLineFilled,
	TypeCubic,
	TypeCubicFilled,
	TypeBar,
	TypeBarStacked,
	TypeBarOverlayed,
	TypePie,
	TypePie3D,
	TypePieExploded,
}

// IsValid reports whether t is a known chart type
func (t ChartType) IsValid() bool {
	return slices.Contains(validTypes, t)
}

// IsPie reports whether t is drawn by the pie family
func (t ChartType) IsPie() bool {
	return t == TypePie || t == TypePie3D || t == TypePieExploded
}

// IsLine reports whether t is one of the line or cubic variants, the only ones that get a drop shadow
func (t ChartType) IsLine() bool {
	return t == TypeLine || t == TypeLineFilled || t == TypeCubic || t == TypeCubicFilled
}

// IsBar reports whether t is one of the bar variants, which are scaled with margins
func (t ChartType) IsBar() bool {
	return t == TypeBar || t == TypeBarStacked || t == TypeBarOverlayed
}

// Align is the placement of the chart image in the surrounding page
type Align string

const (
	AlignLeft   Align = "left"
	AlignRight  Align = "right"
	AlignCenter Align = "center"
)

// AxisFormat controls how the scale labels of an axis are printed
type AxisFormat string

const (
	FormatNumber   AxisFormat = "number"
	FormatTime     AxisFormat = "time"
	FormatDate     AxisFormat = "date"
	FormatMetric   AxisFormat = "metric"
	FormatCurrency AxisFormat = "currency"
)

var validAxisFormats = []AxisFormat{FormatNumber, FormatTime, FormatDate, FormatMetric, FormatCurrency}

// IsValid reports whether f is a known axis format
func (f AxisFormat) IsValid() bool {
	return slices.Contains(validAxisFormats, f)
}

// Color is an opaque RGB triple
type Color struct {
	R, G, B uint8
}

// Hex returns the color as #rrggbb
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string {
	return c.Hex()
}

// MarshalText encodes the color as #rrggbb
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText accepts everything ParseRGB does
func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseRGB(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Gradient is a vertical fill starting at Color, each channel brightened by Shades towards the end
type Gradient struct {
	Color  Color `json:"color"`
	Shades int   `json:"shades"`
}

// Font is a font file and a point size. Bold selects the fallback face when the file cannot be loaded.
type Font struct {
	Name string  `json:"name"`
	Path string  `json:"-"`
	Size float64 `json:"size"`
	Bold bool    `json:"bold,omitempty"`
}

// Size is the canvas size in pixels
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GraphLabel is a callout attached to one point of a serie
type GraphLabel struct {
	Serie int    `json:"serie"`
	X     string `json:"x"`
	Text  string `json:"text"`
}

// Options is a fully validated chart configuration.
// Every field holds either a value that passed validation or the default.
type Options struct {
	Size  Size      `json:"size"`
	Align Align     `json:"align"`
	Type  ChartType `json:"type"`
	Title string    `json:"title,omitempty"`

	BackgroundColor Color `json:"bgcolor"`
	LegendColor     Color `json:"legendColor"`
	GraphColor      Color `json:"graphColor"`
	TitleColor      Color `json:"titleColor"`
	ScaleColor      Color `json:"scaleColor"`
	ShadowColor     Color `json:"shadowColor"`

	BackgroundGradient *Gradient `json:"bggradient,omitempty"`
	GraphGradient      *Gradient `json:"graphGradient,omitempty"`

	XAxisName   string     `json:"XAxisName,omitempty"`
	YAxisName   string     `json:"YAxisName,omitempty"`
	XAxisFormat AxisFormat `json:"XAxisFormat"`
	YAxisFormat AxisFormat `json:"YAxisFormat"`
	XAxisUnit   string     `json:"XAxisUnit,omitempty"`
	YAxisUnit   string     `json:"YAxisUnit,omitempty"`

	FontTitle   Font `json:"fontTitle"`
	FontDefault Font `json:"fontDefault"`
	FontLegend  Font `json:"fontLegend"`

	LabelSerie    string       `json:"labelSerie,omitempty"`
	LegendEntries []string     `json:"legendEntries,omitempty"`
	GraphLabels   []GraphLabel `json:"graphLabels,omitempty"`

	Dots     float64 `json:"dots"`
	Legend   bool    `json:"legend"`
	Shadow   bool    `json:"shadow"`
	Grid     bool    `json:"grid"`
	Alpha    float64 `json:"alpha"`
	Ticks    bool    `json:"ticks"`
	Decimals int     `json:"decimals"`

	Thresholds []string `json:"thresholds,omitempty"`
	Palette    string   `json:"palette,omitempty"`

	PieLabels      bool `json:"pieLabels"`
	PiePercentages bool `json:"piePercentages"`
}

// Clone returns a deep copy, so a normalized Options never shares state with the defaults it came from
func (o *Options) Clone() *Options {
	c := *o
	if o.BackgroundGradient != nil {
		g := *o.BackgroundGradient
		c.BackgroundGradient = &g
	}
	if o.GraphGradient != nil {
		g := *o.GraphGradient
		c.GraphGradient = &g
	}
	c.LegendEntries = slices.Clone(o.LegendEntries)
	c.GraphLabels = slices.Clone(o.GraphLabels)
	c.Thresholds = slices.Clone(o.Thresholds)
	return &c
}

// DefaultOptions returns the built-in defaults, the regular and bold font files are looked up in fontDir
func DefaultOptions(fontDir, regularFont, boldFont string) *Options {
	return &Options{
		Size:  Size{Width: 600, Height: 300},
		Align: AlignLeft,
		Type:  TypeLine,

		BackgroundColor: Color{250, 250, 250},
		GraphColor:      Color{255, 255, 255},
		LegendColor:     Color{250, 250, 250},
		TitleColor:      Color{0, 0, 0},
		ScaleColor:      Color{150, 150, 150},
		ShadowColor:     Color{200, 200, 200},

		XAxisFormat: FormatNumber,
		YAxisFormat: FormatNumber,

		FontDefault: defaultFont(fontDir, regularFont, 8, false),
		FontLegend:  defaultFont(fontDir, regularFont, 8, false),
		FontTitle:   defaultFont(fontDir, boldFont, 10, true),

		Legend:   true,
		Grid:     true,
		Alpha:    50,
		Dots:     0,
		Shadow:   false,
		Ticks:    true,
		Decimals: 0,

		PieLabels:      false,
		PiePercentages: true,
	}
}

func defaultFont(dir, name string, size float64, bold bool) Font {
	f := Font{Name: name, Size: size, Bold: bold}
	if dir != "" && name != "" {
		f.Path = filepath.Join(dir, name)
	}
	return f
}
