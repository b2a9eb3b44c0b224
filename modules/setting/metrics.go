// Copyright 2018 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

// Metrics settings
var Metrics = struct {
	Enabled bool
	Token   string
}{
	Enabled: false,
	Token:   "",
}

func loadMetricsFrom(rootCfg ConfigProvider) {
	mustMapSetting(rootCfg, "metrics", &Metrics)
}
