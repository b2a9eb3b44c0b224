// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package markup

import (
	"context"
	"errors"
	"html/template"
)

// ErrChartRenderingDisabled is returned when no chart service has been installed
var ErrChartRenderingDisabled = errors.New("chart rendering is not enabled")

// RenderHelper decouples the renderers from the services doing the actual work
type RenderHelper interface {
	// RenderChart renders a charter block stored under namespace and returns the HTML embedding it
	RenderChart(ctx context.Context, namespace, block string) (template.HTML, error)
}

// RenderHelperFuncs is a RenderHelper made of plain functions
type RenderHelperFuncs struct {
	RenderChartFunc func(ctx context.Context, namespace, block string) (template.HTML, error)
}

var _ RenderHelper = (*RenderHelperFuncs)(nil)

func (h *RenderHelperFuncs) RenderChart(ctx context.Context, namespace, block string) (template.HTML, error) {
	if h == nil || h.RenderChartFunc == nil {
		return "", ErrChartRenderingDisabled
	}
	return h.RenderChartFunc(ctx, namespace, block)
}

// DefaultRenderHelper is used by new render contexts, services install theirs with Init
var DefaultRenderHelper RenderHelper = &RenderHelperFuncs{}

// Init sets the render helper used by new render contexts
func Init(helper RenderHelper) {
	DefaultRenderHelper = helper
}
