// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charter

import (
	"fmt"

	"code.gitea.io/charter/modules/log"
	"code.gitea.io/charter/modules/util"
)

// Renderer ties the normalizer to a drawing backend
type Renderer struct {
	Normalizer *Normalizer
	NewSurface SurfaceFactory
}

// NewRenderer returns a Renderer drawing with newSurface
func NewRenderer(normalizer *Normalizer, newSurface SurfaceFactory) *Renderer {
	return &Renderer{Normalizer: normalizer, NewSurface: newSurface}
}

// Assemble creates a surface of the configured size and issues the draw calls of the chart family
func (r *Renderer) Assemble(opts *Options, data *ChartData) Surface {
	s := r.NewSurface(opts.Size.Width, opts.Size.Height)
	if opts.Type.IsPie() {
		assemblePieChart(s, opts, data)
	} else {
		assembleLineChart(s, opts, data)
	}
	return s
}

// RenderFile draws the table with opts and writes the image to path.
// An empty path or table is an ErrInvalidArgument, nothing is written in that case.
func (r *Renderer) RenderFile(opts *Options, table DataTable, path string) error {
	if path == "" {
		return util.NewInvalidArgumentErrorf("empty destination path")
	}
	data, err := NewChartData(opts, table)
	if err != nil {
		return err
	}
	if err := r.Assemble(opts, data).Render(path); err != nil {
		return fmt.Errorf("render chart to %s: %w", path, err)
	}
	return nil
}

// Render is RenderFile reduced to success or failure, the reason is only logged
func (r *Renderer) Render(opts *Options, table DataTable, path string) bool {
	if err := r.RenderFile(opts, table, path); err != nil {
		log.Debug("charter: render failed: %v", err)
		return false
	}
	return true
}

// RenderBlock normalizes the flags of a parsed block and renders its rows to path.
// The effective options are returned even when rendering fails, callers need them for the markup.
func (r *Renderer) RenderBlock(block *Block, path string) (*Options, error) {
	opts := r.Normalizer.Normalize(block.Flags)
	return opts, r.RenderFile(opts, ParseCSV(block.Rows), path)
}
