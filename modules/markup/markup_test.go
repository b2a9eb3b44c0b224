// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package markup_test

import (
	"context"
	"errors"
	"html/template"
	"strings"
	"testing"

	"code.gitea.io/charter/modules/markup"
	_ "code.gitea.io/charter/modules/markup/charter"
	_ "code.gitea.io/charter/modules/markup/markdown"
	"code.gitea.io/charter/modules/setting"
	"code.gitea.io/charter/modules/test"
	"code.gitea.io/charter/modules/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererRegistry(t *testing.T) {
	assert.Equal(t, "charter", markup.DetectMarkupTypeByFileName("sales.charter"))
	assert.Equal(t, "markdown", markup.DetectMarkupTypeByFileName("wiki/Page.MD"))
	assert.Empty(t, markup.DetectMarkupTypeByFileName("image.png"))
	assert.NotNil(t, markup.GetRendererByType("charter"))
	assert.Contains(t, markup.PreviewableExtensions(), ".charter")
}

func TestRenderCharterFile(t *testing.T) {
	var namespace, block string
	helper := &markup.RenderHelperFuncs{
		RenderChartFunc: func(_ context.Context, ns, b string) (template.HTML, error) {
			namespace, block = ns, b
			return `<img src="/media/a/chart-x.png" alt="x" class="medialeft" onerror="alert(1)"/>`, nil
		},
	}
	ctx := markup.NewRenderContext(context.Background()).WithRelativePath("a/x.charter").WithRenderHelper(helper)
	out, err := markup.RenderString(ctx, "title = x\n\n1,2\n")
	require.NoError(t, err)

	assert.Equal(t, "a", namespace)
	assert.Equal(t, "title = x\n\n1,2\n", block)
	assert.Contains(t, out, `class="medialeft"`)
	assert.NotContains(t, out, "onerror")
}

func TestRenderErrors(t *testing.T) {
	ctx := markup.NewRenderContext(context.Background()).WithRelativePath("x.unknown")
	_, err := markup.RenderString(ctx, "x")
	assert.ErrorIs(t, err, util.ErrInvalidArgument)

	ctx = markup.NewRenderContext(context.Background()).WithMarkupType("asciidoc")
	_, err = markup.RenderString(ctx, "x")
	assert.ErrorIs(t, err, util.ErrInvalidArgument)

	ctx = markup.NewRenderContext(context.Background()).WithRelativePath("x.charter").WithRenderHelper(&markup.RenderHelperFuncs{})
	_, err = markup.RenderString(ctx, "1")
	assert.ErrorIs(t, err, markup.ErrChartRenderingDisabled)

	ctx.WithRenderHelper(&markup.RenderHelperFuncs{
		RenderChartFunc: func(context.Context, string, string) (template.HTML, error) {
			return "", errors.New("boom")
		},
	})
	_, err = markup.RenderString(ctx, "1")
	assert.ErrorContains(t, err, "boom")
}

func TestMediaNamespace(t *testing.T) {
	defer test.MockVariableValue(&setting.Charter.MediaNamespace, "charts")()

	ctx := markup.NewRenderContext(context.Background())
	assert.Equal(t, "charts", ctx.MediaNamespace())
	assert.Equal(t, "charts", ctx.WithRelativePath("page.md").MediaNamespace())
	assert.Equal(t, "wiki:sub", ctx.WithRelativePath("/wiki/sub/page.md").MediaNamespace())
	assert.Equal(t, "explicit", ctx.WithNamespace("explicit").MediaNamespace())
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, `<img src="/m.png" class="mediaright">`, markup.Sanitize(`<img src="/m.png" class="mediaright">`))
	assert.Equal(t, `<img src="/m.png">`, markup.Sanitize(`<img src="/m.png" class="evil">`))
	assert.Equal(t, `<pre class="charter-error">x</pre>`, markup.Sanitize(`<pre class="charter-error">x</pre>`))
	assert.Equal(t, "", strings.TrimSpace(markup.Sanitize(`<script>alert(1)</script>`)))
}
