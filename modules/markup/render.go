// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package markup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"code.gitea.io/charter/modules/setting"
	"code.gitea.io/charter/modules/util"
)

type RenderOptions struct {
	// relative path of the rendered page, used to detect the markup type
	RelativePath string

	// eg: "markdown", "charter"
	// it could be left as empty, and will be detected by file extension in RelativePath
	MarkupType string

	// Namespace is the media namespace charts of this page are stored under
	Namespace string
}

// RenderContext represents a render context
type RenderContext struct {
	ctx context.Context

	RenderHelper  RenderHelper
	RenderOptions RenderOptions
}

func (ctx *RenderContext) Deadline() (deadline time.Time, ok bool) {
	return ctx.ctx.Deadline()
}

func (ctx *RenderContext) Done() <-chan struct{} {
	return ctx.ctx.Done()
}

func (ctx *RenderContext) Err() error {
	return ctx.ctx.Err()
}

func (ctx *RenderContext) Value(key any) any {
	return ctx.ctx.Value(key)
}

var _ context.Context = (*RenderContext)(nil)

func NewRenderContext(ctx context.Context) *RenderContext {
	return &RenderContext{ctx: ctx, RenderHelper: DefaultRenderHelper}
}

func (ctx *RenderContext) WithMarkupType(typ string) *RenderContext {
	ctx.RenderOptions.MarkupType = typ
	return ctx
}

func (ctx *RenderContext) WithRelativePath(path string) *RenderContext {
	ctx.RenderOptions.RelativePath = path
	return ctx
}

func (ctx *RenderContext) WithNamespace(ns string) *RenderContext {
	ctx.RenderOptions.Namespace = ns
	return ctx
}

func (ctx *RenderContext) WithRenderHelper(helper RenderHelper) *RenderContext {
	ctx.RenderHelper = helper
	return ctx
}

// MediaNamespace returns the namespace charts of the page are stored under: the explicit one,
// else the directory of the page with ':' separators, else the configured default
func (ctx *RenderContext) MediaNamespace() string {
	if ctx.RenderOptions.Namespace != "" {
		return ctx.RenderOptions.Namespace
	}
	if dir := util.PathJoinRel(path.Dir(ctx.RenderOptions.RelativePath)); dir != "" && dir != "." {
		return strings.ReplaceAll(dir, "/", ":")
	}
	return setting.Charter.MediaNamespace
}

func (ctx *RenderContext) renderer() (Renderer, error) {
	if ctx.RenderOptions.MarkupType != "" {
		if renderer := GetRendererByType(ctx.RenderOptions.MarkupType); renderer != nil {
			return renderer, nil
		}
		return nil, util.NewInvalidArgumentErrorf("unsupported markup type: %q", ctx.RenderOptions.MarkupType)
	}
	if renderer := GetRendererByFileName(ctx.RenderOptions.RelativePath); renderer != nil {
		return renderer, nil
	}
	return nil, util.NewInvalidArgumentErrorf("unsupported file to render: %q", ctx.RenderOptions.RelativePath)
}

// Render renders markup file to HTML with all specific handling stuff.
// The output is always sanitized.
func Render(ctx *RenderContext, input io.Reader, output io.Writer) error {
	renderer, err := ctx.renderer()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := renderer.Render(ctx, input, &buf); err != nil {
		return fmt.Errorf("render %s: %w", renderer.Name(), err)
	}
	_, err = io.Copy(output, SanitizeReader(&buf))
	return err
}

// RenderString renders markup string to HTML with all specific handling stuff and return string
func RenderString(ctx *RenderContext, content string) (string, error) {
	var buf strings.Builder
	if err := Render(ctx, strings.NewReader(content), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
