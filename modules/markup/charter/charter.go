// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package charter renders .charter files, each holding a single chart block
package charter

import (
	"io"

	"code.gitea.io/charter/modules/markup"
)

func init() {
	markup.RegisterRenderer(Renderer{})
}

// Renderer implements markup.Renderer for charter files
type Renderer struct{}

var _ markup.Renderer = (*Renderer)(nil)

// Name implements markup.Renderer
func (Renderer) Name() string {
	return "charter"
}

// Extensions implements markup.Renderer
func (Renderer) Extensions() []string {
	return []string{".charter"}
}

// Render implements markup.Renderer
func (Renderer) Render(ctx *markup.RenderContext, input io.Reader, output io.Writer) error {
	block, err := io.ReadAll(input)
	if err != nil {
		return err
	}
	html, err := ctx.RenderHelper.RenderChart(ctx, ctx.MediaNamespace(), string(block))
	if err != nil {
		return err
	}
	_, err = io.WriteString(output, string(html))
	return err
}
