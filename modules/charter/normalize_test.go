// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestNormalizer returns a normalizer over temporary directories holding
// Vera.ttf, VeraBd.ttf, DejaVu.ttf and the palette "soft"
func newTestNormalizer(t *testing.T) *Normalizer {
	fontDir := filepath.Join(t.TempDir(), "fonts")
	paletteDir := filepath.Join(t.TempDir(), "palettes")
	require.NoError(t, os.MkdirAll(fontDir, 0o755))
	require.NoError(t, os.MkdirAll(paletteDir, 0o755))
	for _, name := range []string{"Vera.ttf", "VeraBd.ttf", "DejaVu.ttf"} {
		require.NoError(t, os.WriteFile(filepath.Join(fontDir, name), []byte("font"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(paletteDir, "soft.txt"), []byte("1,2,3\n"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(paletteDir, "dir.txt"), 0o755))
	return NewNormalizer(fontDir, paletteDir)
}

func TestNormalizeDefaults(t *testing.T) {
	n := newTestNormalizer(t)
	opts := n.Normalize(RawConfig{})

	assert.Equal(t, Size{600, 300}, opts.Size)
	assert.Equal(t, AlignLeft, opts.Align)
	assert.Equal(t, TypeLine, opts.Type)
	assert.Empty(t, opts.Title)

	assert.Equal(t, filepath.Join(n.FontDir, "Vera.ttf"), opts.FontDefault.Path)
	assert.InDelta(t, 8, opts.FontDefault.Size, 0)
	assert.Equal(t, filepath.Join(n.FontDir, "Vera.ttf"), opts.FontLegend.Path)
	assert.InDelta(t, 8, opts.FontLegend.Size, 0)
	assert.Equal(t, filepath.Join(n.FontDir, "VeraBd.ttf"), opts.FontTitle.Path)
	assert.InDelta(t, 10, opts.FontTitle.Size, 0)
	assert.True(t, opts.FontTitle.Bold)

	assert.True(t, opts.Legend)
	assert.True(t, opts.Grid)
	assert.InDelta(t, 50, opts.Alpha, 0)
	assert.Zero(t, opts.Dots)
	assert.False(t, opts.Shadow)
	assert.True(t, opts.Ticks)
	assert.Zero(t, opts.Decimals)

	assert.Equal(t, Color{250, 250, 250}, opts.BackgroundColor)
	assert.Equal(t, Color{255, 255, 255}, opts.GraphColor)
	assert.Equal(t, Color{250, 250, 250}, opts.LegendColor)
	assert.Equal(t, Color{0, 0, 0}, opts.TitleColor)
	assert.Equal(t, Color{150, 150, 150}, opts.ScaleColor)
	assert.Equal(t, Color{200, 200, 200}, opts.ShadowColor)

	assert.False(t, opts.PieLabels)
	assert.True(t, opts.PiePercentages)
	assert.Equal(t, FormatNumber, opts.XAxisFormat)
	assert.Nil(t, opts.BackgroundGradient)
	assert.Nil(t, opts.GraphGradient)
	assert.Empty(t, opts.Palette)
}

func TestNormalizeBooleans(t *testing.T) {
	n := newTestNormalizer(t)
	keys := map[string]func(*Options) bool{
		"grid":           func(o *Options) bool { return o.Grid },
		"legend":         func(o *Options) bool { return o.Legend },
		"shadow":         func(o *Options) bool { return o.Shadow },
		"ticks":          func(o *Options) bool { return o.Ticks },
		"pieLabels":      func(o *Options) bool { return o.PieLabels },
		"piePercentages": func(o *Options) bool { return o.PiePercentages },
	}
	defaults := n.Normalize(RawConfig{})
	for key, get := range keys {
		for _, lit := range []string{"true", "1", "on"} {
			assert.True(t, get(n.Normalize(RawConfig{key: lit})), "%s=%s", key, lit)
		}
		for _, lit := range []string{"false", "0", "off"} {
			assert.False(t, get(n.Normalize(RawConfig{key: lit})), "%s=%s", key, lit)
		}
		for _, lit := range []string{"yes", "True", ""} {
			assert.Equal(t, get(defaults), get(n.Normalize(RawConfig{key: lit})), "%s=%s", key, lit)
		}
	}
}

func TestNormalizePiePercentageAlias(t *testing.T) {
	n := newTestNormalizer(t)
	assert.False(t, n.Normalize(RawConfig{"piePercentage": "off"}).PiePercentages)
	// the plural form is applied last
	assert.True(t, n.Normalize(RawConfig{"piePercentage": "off", "piePercentages": "on"}).PiePercentages)
}

func TestNormalizeSize(t *testing.T) {
	n := newTestNormalizer(t)
	kases := map[string]Size{
		"800x400":     {800, 400},
		" 800 x 400 ": {800, 400},
		"0x0":         {0, 0},
		"-1x300":      {600, 300},
		"800x-1":      {600, 300},
		"800":         {600, 300},
		"axb":         {600, 300},
		"800x400x2":   {600, 300},
		"":            {600, 300},
	}
	for input, expected := range kases {
		assert.Equal(t, expected, n.Normalize(RawConfig{"size": input}).Size, input)
	}

	n.MaxWidth, n.MaxHeight = 1000, 500
	assert.Equal(t, Size{1000, 500}, n.Normalize(RawConfig{"size": "1000x500"}).Size)
	assert.Equal(t, Size{600, 300}, n.Normalize(RawConfig{"size": "1001x500"}).Size)
	assert.Equal(t, Size{600, 300}, n.Normalize(RawConfig{"size": "1000x501"}).Size)
}

func TestNormalizeType(t *testing.T) {
	n := newTestNormalizer(t)
	for _, typ := range validTypes {
		assert.Equal(t, typ, n.Normalize(RawConfig{"type": string(typ)}).Type)
	}
	assert.Equal(t, TypeLine, n.Normalize(RawConfig{}).Type)
	assert.Equal(t, TypeLine, n.Normalize(RawConfig{"type": "scatter"}).Type)
	assert.Equal(t, TypeLine, n.Normalize(RawConfig{"type": "Bar"}).Type)
}

func TestNormalizeEnums(t *testing.T) {
	n := newTestNormalizer(t)
	assert.Equal(t, AlignCenter, n.Normalize(RawConfig{"align": "center"}).Align)
	assert.Equal(t, AlignRight, n.Normalize(RawConfig{"align": "right"}).Align)
	assert.Equal(t, AlignLeft, n.Normalize(RawConfig{"align": "middle"}).Align)

	opts := n.Normalize(RawConfig{"XAxisFormat": "date", "YAxisFormat": "currency"})
	assert.Equal(t, FormatDate, opts.XAxisFormat)
	assert.Equal(t, FormatCurrency, opts.YAxisFormat)
	assert.Equal(t, FormatNumber, n.Normalize(RawConfig{"YAxisFormat": "percent"}).YAxisFormat)
}

func TestNormalizeNumbers(t *testing.T) {
	n := newTestNormalizer(t)

	assert.InDelta(t, 0, n.Normalize(RawConfig{"alpha": "0"}).Alpha, 0)
	assert.InDelta(t, 100, n.Normalize(RawConfig{"alpha": "100"}).Alpha, 0)
	assert.InDelta(t, 70.5, n.Normalize(RawConfig{"alpha": "70.5"}).Alpha, 0)
	for _, bad := range []string{"-1", "101", "half", "NaN", ""} {
		assert.InDelta(t, 50, n.Normalize(RawConfig{"alpha": bad}).Alpha, 0, bad)
	}

	assert.InDelta(t, 3, n.Normalize(RawConfig{"dots": "3"}).Dots, 0)
	assert.InDelta(t, 0, n.Normalize(RawConfig{"dots": "0"}).Dots, 0)
	assert.InDelta(t, 0, n.Normalize(RawConfig{"dots": "-2"}).Dots, 0)

	assert.Equal(t, 2, n.Normalize(RawConfig{"decimals": "2"}).Decimals)
	assert.Equal(t, 1, n.Normalize(RawConfig{"decimals": "1.7"}).Decimals)
	assert.Equal(t, 0, n.Normalize(RawConfig{"decimals": "-1"}).Decimals)
	assert.Equal(t, 0, n.Normalize(RawConfig{"decimals": "many"}).Decimals)
	assert.Equal(t, 0, n.Normalize(RawConfig{"decimals": "1e19"}).Decimals)
	assert.Equal(t, 0, n.Normalize(RawConfig{"decimals": "3e9"}).Decimals)
}

func TestNormalizeColors(t *testing.T) {
	n := newTestNormalizer(t)
	opts := n.Normalize(RawConfig{
		"bgcolor":     "#000",
		"legendColor": "112233",
		"graphColor":  "#abcdef",
		"titleColor":  "#f00",
		"scaleColor":  "not-a-color",
		"shadowColor": "#12",
	})
	assert.Equal(t, Color{0, 0, 0}, opts.BackgroundColor)
	assert.Equal(t, Color{0x11, 0x22, 0x33}, opts.LegendColor)
	assert.Equal(t, Color{0xab, 0xcd, 0xef}, opts.GraphColor)
	assert.Equal(t, Color{255, 0, 0}, opts.TitleColor)
	assert.Equal(t, Color{150, 150, 150}, opts.ScaleColor)
	assert.Equal(t, Color{200, 200, 200}, opts.ShadowColor)
}

func TestNormalizeGradients(t *testing.T) {
	n := newTestNormalizer(t)
	opts := n.Normalize(RawConfig{"bggradient": "#336699 @ 50", "graphGradient": "#fff@0"})
	require.NotNil(t, opts.BackgroundGradient)
	assert.Equal(t, Gradient{Color: Color{0x33, 0x66, 0x99}, Shades: 50}, *opts.BackgroundGradient)
	require.NotNil(t, opts.GraphGradient)
	assert.Equal(t, Gradient{Color: Color{255, 255, 255}, Shades: 0}, *opts.GraphGradient)

	for _, bad := range []string{"#336699", "#336699@-1", "#336699@x", "nope@10", "@10", "#fff@1e19", "#fff@3e9"} {
		assert.Nil(t, n.Normalize(RawConfig{"bggradient": bad}).BackgroundGradient, bad)
	}
}

func TestNormalizeFonts(t *testing.T) {
	n := newTestNormalizer(t)

	opts := n.Normalize(RawConfig{"fontTitle": "DejaVu.ttf@14", "fontLegend": "DejaVu.ttf"})
	assert.Equal(t, filepath.Join(n.FontDir, "DejaVu.ttf"), opts.FontTitle.Path)
	assert.Equal(t, "DejaVu.ttf", opts.FontTitle.Name)
	assert.InDelta(t, 14, opts.FontTitle.Size, 0)
	assert.True(t, opts.FontTitle.Bold)
	// no size keeps the default size of that font
	assert.Equal(t, filepath.Join(n.FontDir, "DejaVu.ttf"), opts.FontLegend.Path)
	assert.InDelta(t, 8, opts.FontLegend.Size, 0)

	opts = n.Normalize(RawConfig{"fontDefault": "DejaVu.ttf@big"})
	assert.InDelta(t, 8, opts.FontDefault.Size, 0)
	assert.Equal(t, "DejaVu.ttf", opts.FontDefault.Name)

	defaults := n.Normalize(RawConfig{})
	for _, bad := range []string{"Missing.ttf@12", "../fonts/DejaVu.ttf@12", "/etc/passwd@12", "..@12", "@12", "sub\\DejaVu.ttf"} {
		assert.Equal(t, defaults.FontDefault, n.Normalize(RawConfig{"fontDefault": bad}).FontDefault, bad)
	}
}

func TestNormalizePalette(t *testing.T) {
	n := newTestNormalizer(t)
	assert.Equal(t, filepath.Join(n.PaletteDir, "soft.txt"), n.Normalize(RawConfig{"palette": "soft"}).Palette)
	for _, bad := range []string{"missing", "../palettes/soft", "dir", ""} {
		assert.Empty(t, n.Normalize(RawConfig{"palette": bad}).Palette, bad)
	}
}

func TestNormalizeLists(t *testing.T) {
	n := newTestNormalizer(t)
	opts := n.Normalize(RawConfig{
		"legendEntries": " Sales , Costs,",
		"thresholds":    "10, 20.5 ,abc",
	})
	assert.Equal(t, []string{"Sales", "Costs", ""}, opts.LegendEntries)
	assert.Equal(t, []string{"10", "20.5", "abc"}, opts.Thresholds)
}

func TestNormalizeGraphLabels(t *testing.T) {
	n := newTestNormalizer(t)

	opts := n.Normalize(RawConfig{"graphLabels": "1|5|Peak, 2|3|Low"})
	assert.Equal(t, []GraphLabel{
		{Serie: 1, X: "5", Text: "Peak"},
		{Serie: 2, X: "3", Text: "Low"},
	}, opts.GraphLabels)

	assert.Equal(t, []GraphLabel{{Serie: 0, X: "Jan", Text: "Start"}},
		n.Normalize(RawConfig{"graphLabels": " 0 | Jan | Start "}).GraphLabels)

	// fractional indexes are kept but name no row
	assert.Equal(t, []GraphLabel{{Serie: 0, X: "5", Text: "Peak"}, {Serie: 2, X: "3", Text: "Low"}},
		n.Normalize(RawConfig{"graphLabels": "1.5|5|Peak, 2|3|Low"}).GraphLabels)
	assert.Equal(t, []GraphLabel{{Serie: 0, X: "5", Text: "Peak"}},
		n.Normalize(RawConfig{"graphLabels": "1e19|5|Peak"}).GraphLabels)

	for _, bad := range []string{"1|5", "1|5|Peak, 2|3", "1|5|a|b", "-1|5|Peak", "x|5|Peak", ""} {
		assert.Nil(t, n.Normalize(RawConfig{"graphLabels": bad}).GraphLabels, bad)
	}
}

func TestNormalizePassThrough(t *testing.T) {
	n := newTestNormalizer(t)
	opts := n.Normalize(RawConfig{
		"title":      "  Sales  ",
		"XAxisName":  " Month ",
		"YAxisName":  "Revenue",
		"XAxisUnit":  "",
		"YAxisUnit":  "k€",
		"labelSerie": " 1 ",
		"unknown":    "dropped",
	})
	assert.Equal(t, "Sales", opts.Title)
	assert.Equal(t, "Month", opts.XAxisName)
	assert.Equal(t, "Revenue", opts.YAxisName)
	assert.Empty(t, opts.XAxisUnit)
	assert.Equal(t, "k€", opts.YAxisUnit)
	assert.Equal(t, "1", opts.LabelSerie)
}

func TestNormalizeIndependentKeys(t *testing.T) {
	n := newTestNormalizer(t)
	opts := n.Normalize(RawConfig{
		"size":    "-5x10",
		"type":    "bar",
		"bgcolor": "#zzz",
		"alpha":   "20",
	})
	assert.Equal(t, Size{600, 300}, opts.Size)
	assert.Equal(t, TypeBar, opts.Type)
	assert.Equal(t, Color{250, 250, 250}, opts.BackgroundColor)
	assert.InDelta(t, 20, opts.Alpha, 0)
}

func TestNormalizeDoesNotShareDefaults(t *testing.T) {
	n := newTestNormalizer(t)
	n.Defaults.Thresholds = []string{"1"}

	opts := n.Normalize(RawConfig{})
	opts.Thresholds[0] = "2"
	opts.Size.Width = 1

	assert.Equal(t, []string{"1"}, n.Defaults.Thresholds)
	assert.Equal(t, 600, n.Defaults.Size.Width)
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, "graphLabels")
	assert.Contains(t, keys, "piePercentage")
	assert.IsNonDecreasing(t, keys)
	assert.Len(t, keys, 36)
}
