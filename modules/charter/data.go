// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charter

import (
	"math"
	"strconv"

	"code.gitea.io/charter/modules/util"
)

// MaxPlotValue is the largest magnitude drawn, so the distance between any two plotted values stays finite
const MaxPlotValue = 1e300

// Serie is one data row. Cells that are not numbers, or whose magnitude exceeds MaxPlotValue,
// become NaN and are not drawn.
type Serie struct {
	// Number is the 1-based row index, labels and labelSerie refer to it
	Number      int
	Name        string
	Description string
	Values      []float64
}

// ChartData is the plottable form of a DataTable
type ChartData struct {
	Series []Serie
	// Labels holds one abscissa label per point
	Labels []string

	XAxisName, YAxisName     string
	XAxisUnit, YAxisUnit     string
	XAxisFormat, YAxisFormat AxisFormat
}

// NewChartData builds one serie per table row. When opts.LabelSerie names an existing row,
// that row supplies the abscissa labels instead of being plotted.
func NewChartData(opts *Options, table DataTable) (*ChartData, error) {
	if len(table) == 0 {
		return nil, util.NewInvalidArgumentErrorf("empty data table")
	}

	data := &ChartData{
		XAxisName:   opts.XAxisName,
		YAxisName:   opts.YAxisName,
		XAxisUnit:   opts.XAxisUnit,
		YAxisUnit:   opts.YAxisUnit,
		XAxisFormat: opts.XAxisFormat,
		YAxisFormat: opts.YAxisFormat,
	}

	labelRow := 0
	if n, err := strconv.Atoi(opts.LabelSerie); err == nil && n >= 1 && n <= len(table) {
		labelRow = n
	}

	points := 0
	for i, row := range table {
		number := i + 1
		if number == labelRow {
			data.Labels = append([]string(nil), row...)
			continue
		}
		serie := Serie{
			Number:      number,
			Name:        "Serie" + strconv.Itoa(number),
			Description: "Serie" + strconv.Itoa(number),
			Values:      make([]float64, len(row)),
		}
		if i < len(opts.LegendEntries) && opts.LegendEntries[i] != "" {
			serie.Description = opts.LegendEntries[i]
		}
		for j, cell := range row {
			if v, ok := parseNumber(cell); ok && math.Abs(v) <= MaxPlotValue {
				serie.Values[j] = v
			} else {
				serie.Values[j] = math.NaN()
			}
		}
		points = max(points, len(row))
		data.Series = append(data.Series, serie)
	}
	if len(data.Series) == 0 {
		return nil, util.NewInvalidArgumentErrorf("no data series besides the label serie")
	}

	// pad short rows so every serie has a value (maybe void) for every point
	for i := range data.Series {
		for len(data.Series[i].Values) < points {
			data.Series[i].Values = append(data.Series[i].Values, math.NaN())
		}
	}
	for len(data.Labels) < points {
		data.Labels = append(data.Labels, strconv.Itoa(len(data.Labels)))
	}
	return data, nil
}

// Points returns the number of points of every serie
func (d *ChartData) Points() int {
	if len(d.Series) == 0 {
		return 0
	}
	return len(d.Series[0].Values)
}

// SerieByNumber returns the plotted serie with the given 1-based number
func (d *ChartData) SerieByNumber(number int) (*Serie, bool) {
	for i := range d.Series {
		if d.Series[i].Number == number {
			return &d.Series[i], true
		}
	}
	return nil, false
}

// PointIndex finds the point an abscissa value refers to: an exact label match first, then a 0-based index
func (d *ChartData) PointIndex(x string) (int, bool) {
	for i, l := range d.Labels {
		if l == x {
			return i, true
		}
	}
	if i, err := strconv.Atoi(x); err == nil && i >= 0 && i < d.Points() {
		return i, true
	}
	return 0, false
}

// Bounds returns the smallest and largest plotted values, with stacked set the per-point
// sums of positive and negative values are used instead. ok is false when nothing can be plotted.
func (d *ChartData) Bounds(stacked bool) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	if stacked {
		for p := 0; p < d.Points(); p++ {
			pos, neg, seen := 0.0, 0.0, false
			for _, s := range d.Series {
				v := s.Values[p]
				if math.IsNaN(v) {
					continue
				}
				seen = true
				if v >= 0 {
					pos += v
				} else {
					neg += v
				}
			}
			if seen {
				lo, hi = min(lo, neg), max(hi, pos)
			}
		}
	} else {
		for _, s := range d.Series {
			for _, v := range s.Values {
				if !math.IsNaN(v) {
					lo, hi = min(lo, v), max(hi, v)
				}
			}
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 0, false
	}
	return lo, hi, true
}
