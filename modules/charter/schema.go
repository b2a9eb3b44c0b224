// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charter

import (
	"math"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"code.gitea.io/charter/modules/util"
)

// coercer validates one raw value and stores it into opts, it returns false to drop the key
type coercer func(n *Normalizer, opts *Options, value string) bool

var schema = map[string]coercer{
	"size":  coerceSize,
	"align": coerceAlign,
	"type":  coerceType,
	"title": stringField(func(o *Options) *string { return &o.Title }),

	"bgcolor":     colorField(func(o *Options) *Color { return &o.BackgroundColor }),
	"legendColor": colorField(func(o *Options) *Color { return &o.LegendColor }),
	"graphColor":  colorField(func(o *Options) *Color { return &o.GraphColor }),
	"titleColor":  colorField(func(o *Options) *Color { return &o.TitleColor }),
	"scaleColor":  colorField(func(o *Options) *Color { return &o.ScaleColor }),
	"shadowColor": colorField(func(o *Options) *Color { return &o.ShadowColor }),

	"bggradient":    gradientField(func(o *Options) **Gradient { return &o.BackgroundGradient }),
	"graphGradient": gradientField(func(o *Options) **Gradient { return &o.GraphGradient }),

	"XAxisName":   stringField(func(o *Options) *string { return &o.XAxisName }),
	"YAxisName":   stringField(func(o *Options) *string { return &o.YAxisName }),
	"XAxisFormat": axisFormatField(func(o *Options) *AxisFormat { return &o.XAxisFormat }),
	"YAxisFormat": axisFormatField(func(o *Options) *AxisFormat { return &o.YAxisFormat }),
	"XAxisUnit":   stringField(func(o *Options) *string { return &o.XAxisUnit }),
	"YAxisUnit":   stringField(func(o *Options) *string { return &o.YAxisUnit }),

	"fontTitle":   fontField(func(o *Options) *Font { return &o.FontTitle }),
	"fontDefault": fontField(func(o *Options) *Font { return &o.FontDefault }),
	"fontLegend":  fontField(func(o *Options) *Font { return &o.FontLegend }),

	"labelSerie":    stringField(func(o *Options) *string { return &o.LabelSerie }),
	"legendEntries": listField(func(o *Options) *[]string { return &o.LegendEntries }),
	"graphLabels":   coerceGraphLabels,

	"dots":     coerceDots,
	"legend":   boolField(func(o *Options) *bool { return &o.Legend }),
	"shadow":   boolField(func(o *Options) *bool { return &o.Shadow }),
	"grid":     boolField(func(o *Options) *bool { return &o.Grid }),
	"alpha":    coerceAlpha,
	"ticks":    boolField(func(o *Options) *bool { return &o.Ticks }),
	"decimals": coerceDecimals,

	"thresholds": listField(func(o *Options) *[]string { return &o.Thresholds }),
	"palette":    coercePalette,

	"pieLabels":      boolField(func(o *Options) *bool { return &o.PieLabels }),
	"piePercentages": boolField(func(o *Options) *bool { return &o.PiePercentages }),
	// older blocks use the singular form
	"piePercentage": boolField(func(o *Options) *bool { return &o.PiePercentages }),
}

// Keys returns the recognized option names, sorted
func Keys() []string {
	keys := make([]string, 0, len(schema))
	for k := range schema {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func stringField(field func(*Options) *string) coercer {
	return func(_ *Normalizer, o *Options, v string) bool {
		*field(o) = strings.TrimSpace(v)
		return true
	}
}

func listField(field func(*Options) *[]string) coercer {
	return func(_ *Normalizer, o *Options, v string) bool {
		*field(o) = util.SplitTrim(v, ",")
		return true
	}
}

func boolField(field func(*Options) *bool) coercer {
	return func(_ *Normalizer, o *Options, v string) bool {
		b, ok := parseBool(v)
		if ok {
			*field(o) = b
		}
		return ok
	}
}

func colorField(field func(*Options) *Color) coercer {
	return func(_ *Normalizer, o *Options, v string) bool {
		c, err := ParseRGB(v)
		if err != nil {
			return false
		}
		*field(o) = c
		return true
	}
}

func gradientField(field func(*Options) **Gradient) coercer {
	return func(_ *Normalizer, o *Options, v string) bool {
		colorStr, shadesStr, ok := util.Cut2(v, "@")
		if !ok {
			return false
		}
		c, err := ParseRGB(colorStr)
		if err != nil {
			return false
		}
		shades, ok := parseCount(shadesStr)
		if !ok {
			return false
		}
		*field(o) = &Gradient{Color: c, Shades: shades}
		return true
	}
}

func axisFormatField(field func(*Options) *AxisFormat) coercer {
	return func(_ *Normalizer, o *Options, v string) bool {
		f := AxisFormat(v)
		if !f.IsValid() {
			return false
		}
		*field(o) = f
		return true
	}
}

func fontField(field func(*Options) *Font) coercer {
	return func(n *Normalizer, o *Options, v string) bool {
		name, sizeStr, _ := util.Cut2(v, "@")
		path, ok := n.resolve(n.FontDir, name)
		if !ok {
			return false
		}
		f := field(o)
		// a missing or unusable size keeps the size this font had by default
		size := f.Size
		if s, ok := parseNumber(sizeStr); ok && s > 0 {
			size = s
		}
		*f = Font{Name: name, Path: path, Size: size, Bold: f.Bold}
		return true
	}
}

func coerceSize(n *Normalizer, o *Options, v string) bool {
	wStr, hStr, ok := util.Cut2(v, "x")
	if !ok {
		return false
	}
	w, errW := strconv.Atoi(wStr)
	h, errH := strconv.Atoi(hStr)
	if errW != nil || errH != nil || w < 0 || h < 0 {
		return false
	}
	if (n.MaxWidth > 0 && w > n.MaxWidth) || (n.MaxHeight > 0 && h > n.MaxHeight) {
		return false
	}
	o.Size = Size{Width: w, Height: h}
	return true
}

func coerceAlign(_ *Normalizer, o *Options, v string) bool {
	switch a := Align(v); a {
	case AlignLeft, AlignRight, AlignCenter:
		o.Align = a
		return true
	}
	return false
}

func coerceType(_ *Normalizer, o *Options, v string) bool {
	t := ChartType(v)
	if !t.IsValid() {
		return false
	}
	o.Type = t
	return true
}

func coerceAlpha(_ *Normalizer, o *Options, v string) bool {
	a, ok := parseNumber(v)
	if !ok || a < 0 || a > 100 {
		return false
	}
	o.Alpha = a
	return true
}

func coerceDots(_ *Normalizer, o *Options, v string) bool {
	d, ok := parseNumber(v)
	if !ok || d < 0 {
		return false
	}
	o.Dots = d
	return true
}

func coerceDecimals(_ *Normalizer, o *Options, v string) bool {
	d, ok := parseCount(v)
	if !ok {
		return false
	}
	o.Decimals = d
	return true
}

func coercePalette(n *Normalizer, o *Options, v string) bool {
	path, ok := n.resolve(n.PaletteDir, strings.TrimSpace(v)+".txt")
	if !ok {
		return false
	}
	o.Palette = path
	return true
}

// coerceGraphLabels takes "serie|x|text" entries separated by ",", one bad entry drops them all
func coerceGraphLabels(_ *Normalizer, o *Options, v string) bool {
	entries := util.SplitTrim(v, ",")
	labels := make([]GraphLabel, 0, len(entries))
	for _, entry := range entries {
		fields := util.SplitTrim(entry, "|")
		if len(fields) != 3 {
			return false
		}
		n, ok := parseNumber(fields[0])
		if !ok || n < 0 {
			return false
		}
		// rows are numbered from 1, so 0 keeps a fractional or huge index from naming any row
		serie := 0
		if n == math.Trunc(n) && n <= math.MaxInt32 {
			serie = int(n)
		}
		labels = append(labels, GraphLabel{Serie: serie, X: fields[1], Text: fields[2]})
	}
	o.GraphLabels = labels
	return true
}

// resolve maps a bare file name into dir. Names that are empty or carry any path element are refused,
// as are files that do not exist.
func (n *Normalizer) resolve(dir, name string) (string, bool) {
	if dir == "" || name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", false
	}
	path := filepath.Join(dir, name)
	isFile, err := util.IsFile(path)
	if err != nil || !isFile {
		return "", false
	}
	return path, true
}
