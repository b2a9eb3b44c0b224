// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package markdown

import (
	"code.gitea.io/charter/modules/log"
	"code.gitea.io/charter/modules/markup"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// renderState is shared by the extension of one render call,
// the namespace is only known once the front matter has been parsed
type renderState struct {
	ctx       *markup.RenderContext
	namespace string
}

// charterBlockRenderer turns charter blocks into chart images
type charterBlockRenderer struct {
	state *renderState
}

func (r *charterBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindCharterBlock, r.renderBlock)
}

func (r *charterBlockRenderer) writeSource(w util.BufWriter, block string) {
	_, _ = w.WriteString(`<pre class="charter-error">`)
	_, _ = w.Write(util.EscapeHTML([]byte(block)))
	_, _ = w.WriteString("</pre>\n")
}

func (r *charterBlockRenderer) renderBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*CharterBlock)
	block := string(n.Text(source))
	if !n.Closed {
		r.writeSource(w, string(charterOpenTag)+block)
		return ast.WalkSkipChildren, nil
	}

	html, err := r.state.ctx.RenderHelper.RenderChart(r.state.ctx, r.state.namespace, block)
	if err != nil {
		log.Warn("charter: unable to render chart block: %v", err)
		r.writeSource(w, block)
		return ast.WalkSkipChildren, nil
	}
	_, _ = w.WriteString(string(html))
	_ = w.WriteByte('\n')
	return ast.WalkSkipChildren, nil
}

// charterExtension adds <charter> blocks to goldmark
type charterExtension struct {
	state *renderState
}

func (e *charterExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(
		// before the HTML block parser, which would take the tag as raw HTML
		util.Prioritized(NewCharterBlockParser(), 550),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&charterBlockRenderer{state: e.state}, 501),
	))
}
