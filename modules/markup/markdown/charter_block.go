// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package markdown

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var (
	charterOpenTag  = []byte("<charter>")
	charterCloseTag = []byte("</charter>")
)

// KindCharterBlock is the NodeKind for a charter block
var KindCharterBlock = ast.NewNodeKind("CharterBlock")

// CharterBlock is a <charter>...</charter> block, its lines hold the block between the tags
type CharterBlock struct {
	ast.BaseBlock
	Closed bool
}

// Kind returns KindCharterBlock
func (n *CharterBlock) Kind() ast.NodeKind {
	return KindCharterBlock
}

// IsRaw returns true as the content is not markdown
func (n *CharterBlock) IsRaw() bool {
	return true
}

// Dump dumps the block to a string
func (n *CharterBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// Text returns the block between the tags
func (n *CharterBlock) Text(source []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(source))
	}
	return buf.Bytes()
}

type charterBlockParser struct{}

// NewCharterBlockParser creates a parser for <charter> blocks
func NewCharterBlockParser() parser.BlockParser {
	return &charterBlockParser{}
}

func (b *charterBlockParser) Trigger() []byte {
	return []byte{'<'}
}

func (b *charterBlockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos == -1 || !bytes.HasPrefix(line[pos:], charterOpenTag) {
		return nil, parser.NoChildren
	}

	node := &CharterBlock{}
	start := pos + len(charterOpenTag)
	rest := line[start:]

	// the whole block may sit on the opening line
	if idx := bytes.Index(rest, charterCloseTag); idx >= 0 {
		node.Lines().Append(text.NewSegment(segment.Start+start, segment.Start+start+idx))
		node.Closed = true
		reader.Advance(segment.Len() - 1)
		return node, parser.NoChildren
	}
	if !util.IsBlank(rest) {
		node.Lines().Append(text.NewSegment(segment.Start+start, segment.Stop))
	}
	reader.Advance(segment.Len() - 1)
	return node, parser.NoChildren
}

func (b *charterBlockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	block := node.(*CharterBlock)
	if block.Closed {
		return parser.Close
	}

	line, segment := reader.PeekLine()
	if idx := bytes.Index(line, charterCloseTag); idx >= 0 {
		if idx > 0 {
			block.Lines().Append(text.NewSegment(segment.Start, segment.Start+idx))
		}
		block.Closed = true
		reader.Advance(segment.Len() - 1)
		return parser.Close
	}

	block.Lines().Append(segment)
	reader.Advance(segment.Len() - 1)
	return parser.Continue | parser.NoChildren
}

func (b *charterBlockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (b *charterBlockParser) CanInterruptParagraph() bool {
	return true
}

func (b *charterBlockParser) CanAcceptIndentedLine() bool {
	return false
}
