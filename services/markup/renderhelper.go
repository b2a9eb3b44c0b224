// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package markup

import (
	"code.gitea.io/charter/modules/markup"
	charter_service "code.gitea.io/charter/services/charter"
)

// RenderHelper returns the helper connecting the markup renderers to the chart service
func RenderHelper() *markup.RenderHelperFuncs {
	return &markup.RenderHelperFuncs{
		RenderChartFunc: charter_service.RenderChartHTML,
	}
}

// Init installs the render helper for all new render contexts
func Init() {
	markup.Init(RenderHelper())
}
