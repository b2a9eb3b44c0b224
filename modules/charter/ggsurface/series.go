// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package ggsurface

import (
	"image/color"
	"math"

	"code.gitea.io/charter/modules/charter"
)

// barWidthRatio is the share of a point interval covered by bars
const barWidthRatio = 0.8

type point struct {
	x, y float64
}

// runs splits a serie into stretches of consecutive non-void points
func (s *Surface) runs(serie *charter.Serie) [][]point {
	var runs [][]point
	var cur []point
	for i, v := range serie.Values {
		yy, ok := s.y(v)
		if !ok {
			if len(cur) > 0 {
				runs = append(runs, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, point{s.x(i), yy})
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	return runs
}

// catmullRom samples a Catmull-Rom spline through pts, accuracy is the sample step as a
// fraction of the distance between two points
func catmullRom(pts []point, accuracy float64) []point {
	if len(pts) < 3 {
		return pts
	}
	if accuracy <= 0 || accuracy > 1 {
		accuracy = 0.1
	}
	steps := int(math.Ceil(1 / accuracy))
	out := make([]point, 0, (len(pts)-1)*steps+1)
	n := len(pts)
	for i := 0; i < n-1; i++ {
		p0, p1, p2, p3 := pts[max(i-1, 0)], pts[i], pts[i+1], pts[min(i+2, n-1)]
		for k := 0; k < steps; k++ {
			t := float64(k) / float64(steps)
			t2, t3 := t*t, t*t*t
			out = append(out, point{
				x: 0.5 * (2*p1.x + (-p0.x+p2.x)*t + (2*p0.x-5*p1.x+4*p2.x-p3.x)*t2 + (-p0.x+3*p1.x-3*p2.x+p3.x)*t3),
				y: 0.5 * (2*p1.y + (-p0.y+p2.y)*t + (2*p0.y-5*p1.y+4*p2.y-p3.y)*t2 + (-p0.y+3*p1.y-3*p2.y+p3.y)*t3),
			})
		}
	}
	return append(out, pts[n-1])
}

func (s *Surface) strokePolyline(pts []point, dx, dy float64, c color.Color, width float64) {
	if len(pts) < 2 {
		return
	}
	s.dc.SetColor(c)
	s.dc.SetLineWidth(width)
	s.dc.MoveTo(pts[0].x+dx, pts[0].y+dy)
	for _, p := range pts[1:] {
		s.dc.LineTo(p.x+dx, p.y+dy)
	}
	s.dc.Stroke()
}

func (s *Surface) fillUnder(pts []point, c color.Color) {
	if len(pts) < 2 {
		return
	}
	base := s.baseline()
	s.dc.SetColor(c)
	s.dc.MoveTo(pts[0].x, base)
	for _, p := range pts {
		s.dc.LineTo(p.x, p.y)
	}
	s.dc.LineTo(pts[len(pts)-1].x, base)
	s.dc.ClosePath()
	s.dc.Fill()
}

func (s *Surface) DrawSeries(data *charter.ChartData, style charter.SeriesStyle) {
	s.ensureScale(data)
	switch style.Kind {
	case charter.SeriesBar:
		s.drawBars(data, style)
	case charter.SeriesStackedBar:
		s.drawStackedBars(data, style)
	case charter.SeriesOverlayBar:
		s.drawOverlayBars(data, style)
	default:
		s.drawLines(data, style)
	}
}

func (s *Surface) drawLines(data *charter.ChartData, style charter.SeriesStyle) {
	cubic := style.Kind == charter.SeriesCubic || style.Kind == charter.SeriesFilledCubic
	filled := style.Kind == charter.SeriesFilledLine || style.Kind == charter.SeriesFilledCubic

	for i := range data.Series {
		c := s.serieColor(i)
		for _, run := range s.runs(&data.Series[i]) {
			if cubic {
				run = catmullRom(run, style.Accuracy)
			}
			if filled {
				s.fillUnder(run, nrgba(c, style.Alpha))
			}
			s.withShadow(func(dx, dy float64, sc color.Color, widen float64) {
				s.strokePolyline(run, dx, dy, sc, 1+widen)
			})
			s.strokePolyline(run, 0, 0, opaque(c), 1)
		}
	}
}

func (s *Surface) drawBar(x, from, to, width float64, c charter.Color, alpha float64, shadow *charter.Color) {
	top, height := math.Min(from, to), math.Abs(to-from)
	if height == 0 || !finite(x, top, height, width) {
		return
	}
	if shadow != nil {
		s.dc.SetColor(opaque(*shadow))
		s.dc.DrawRectangle(x+2, top+2, width, height)
		s.dc.Fill()
	}
	s.dc.SetColor(nrgba(c, alpha))
	s.dc.DrawRectangle(x, top, width, height)
	s.dc.Fill()
	s.dc.SetColor(opaque(c))
	s.dc.SetLineWidth(1)
	s.dc.DrawRectangle(x, top, width, height)
	s.dc.Stroke()
}

func (s *Surface) drawBars(data *charter.ChartData, style charter.SeriesStyle) {
	groupWidth := s.xStep() * barWidthRatio
	barWidth := groupWidth / float64(max(len(data.Series), 1))
	base := s.baseline()
	var shadow *charter.Color
	if style.Shadow {
		shadow = &style.ShadowColor
	}
	for p := 0; p < data.Points(); p++ {
		left := s.x(p) - groupWidth/2
		for i, serie := range data.Series {
			yy, ok := s.y(serie.Values[p])
			if !ok {
				continue
			}
			s.drawBar(left+float64(i)*barWidth, base, yy, barWidth, s.serieColor(i), style.Alpha, shadow)
		}
	}
}

func (s *Surface) drawStackedBars(data *charter.ChartData, style charter.SeriesStyle) {
	barWidth := s.xStep() * barWidthRatio
	for p := 0; p < data.Points(); p++ {
		left := s.x(p) - barWidth/2
		pos, neg := 0.0, 0.0
		for i, serie := range data.Series {
			v := serie.Values[p]
			if math.IsNaN(v) || v == 0 {
				continue
			}
			from := pos
			if v < 0 {
				from = neg
			}
			to := from + v
			yFrom, _ := s.y(from)
			yTo, _ := s.y(to)
			s.drawBar(left, yFrom, yTo, barWidth, s.serieColor(i), style.Alpha, nil)
			if v < 0 {
				neg = to
			} else {
				pos = to
			}
		}
	}
}

func (s *Surface) drawOverlayBars(data *charter.ChartData, style charter.SeriesStyle) {
	barWidth := s.xStep() * barWidthRatio
	base := s.baseline()
	for i, serie := range data.Series {
		for p, v := range serie.Values {
			yy, ok := s.y(v)
			if !ok {
				continue
			}
			s.drawBar(s.x(p)-barWidth/2, base, yy, barWidth, s.serieColor(i), style.Alpha, nil)
		}
	}
}

func (s *Surface) DrawPlotGraph(data *charter.ChartData, radius float64) {
	s.ensureScale(data)
	for i := range data.Series {
		c := s.serieColor(i)
		for p, v := range data.Series[i].Values {
			y, ok := s.y(v)
			x := s.x(p)
			if !ok || !finite(x) {
				continue
			}
			s.dc.SetColor(opaque(c))
			s.dc.DrawCircle(x, y, radius)
			s.dc.Fill()
			if radius >= 2 {
				s.dc.SetColor(color.White)
				s.dc.DrawCircle(x, y, radius/2)
				s.dc.Fill()
			}
		}
	}
}

func (s *Surface) SetLabel(data *charter.ChartData, serie int, x, text string) {
	sr, ok := data.SerieByNumber(serie)
	if !ok {
		return
	}
	p, ok := data.PointIndex(x)
	if !ok || math.IsNaN(sr.Values[p]) {
		return
	}
	s.ensureScale(data)
	px := s.x(p)
	py, ok := s.y(sr.Values[p])
	if !ok {
		return
	}

	w, h := s.dc.MeasureString(text)
	bx, by := px+10, py-h/2-4
	bw, bh := w+8, h+8

	s.dc.SetColor(color.White)
	s.dc.MoveTo(px, py)
	s.dc.LineTo(bx, by+bh/2-4)
	s.dc.LineTo(bx, by+bh/2+4)
	s.dc.ClosePath()
	s.dc.DrawRectangle(bx, by, bw, bh)
	s.dc.Fill()

	s.dc.SetColor(opaque(labelBorder))
	s.dc.SetLineWidth(1)
	s.dc.DrawRectangle(bx, by, bw, bh)
	s.dc.DrawLine(px, py, bx, by+bh/2)
	s.dc.Stroke()

	s.dc.SetColor(opaque(textColor))
	s.dc.DrawStringAnchored(text, bx+4, by+bh/2, 0, 0.5)
}
