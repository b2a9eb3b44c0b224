// Copyright 2022 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"time"

	"code.gitea.io/charter/modules/log"
)

// CORSConfig defines CORS settings for the HTTP API
var CORSConfig = struct {
	Enabled          bool
	AllowDomain      []string
	Methods          []string
	MaxAge           time.Duration
	AllowCredentials bool
	Headers          []string
}{
	AllowDomain: []string{"*"},
	Methods:     []string{"GET", "HEAD", "POST"},
	MaxAge:      10 * time.Minute,
	Headers:     []string{"Content-Type", "User-Agent"},
}

func loadCorsFrom(rootCfg ConfigProvider) {
	mustMapSetting(rootCfg, "cors", &CORSConfig)
	if CORSConfig.Enabled {
		log.Info("CORS Service Enabled")
	}
}
