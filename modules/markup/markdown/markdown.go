// Copyright 2014 The Gogs Authors. All rights reserved.
// Copyright 2018 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package markdown renders markdown pages with embedded charter blocks
package markdown

import (
	"io"

	"code.gitea.io/charter/modules/markup"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// MarkupName describes markup's name
const MarkupName = "markdown"

func init() {
	markup.RegisterRenderer(Renderer{})
}

// Renderer implements markup.Renderer
type Renderer struct{}

var _ markup.Renderer = (*Renderer)(nil)

// Name implements markup.Renderer
func (Renderer) Name() string {
	return MarkupName
}

// Extensions implements markup.Renderer
func (Renderer) Extensions() []string {
	return []string{".md", ".markdown", ".mdown", ".mkd"}
}

func newConverter(state *renderState) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			meta.Meta,
			&charterExtension{state: state},
		),
		goldmark.WithParserOptions(
			parser.WithAttribute(),
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			// the output is sanitized by markup.Render
			html.WithUnsafe(),
		),
	)
}

// Render implements markup.Renderer.
// A "namespace" key in the front matter overrides the media namespace of the page.
func (Renderer) Render(ctx *markup.RenderContext, input io.Reader, output io.Writer) error {
	src, err := io.ReadAll(input)
	if err != nil {
		return err
	}

	state := &renderState{ctx: ctx}
	converter := newConverter(state)

	pc := parser.NewContext()
	doc := converter.Parser().Parse(text.NewReader(src), parser.WithContext(pc))

	state.namespace = ctx.MediaNamespace()
	if ns, ok := meta.Get(pc)["namespace"].(string); ok && ns != "" {
		state.namespace = ns
	}
	return converter.Renderer().Render(output, src, doc)
}

// RenderString renders a markdown page to sanitized HTML
func RenderString(ctx *markup.RenderContext, content string) (string, error) {
	return markup.RenderString(ctx.WithMarkupType(MarkupName), content)
}
