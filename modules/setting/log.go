// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"os"
	"strings"

	"code.gitea.io/charter/modules/log"
)

// Log settings
var Log struct {
	Level    log.Level
	Colorize bool
	Flags    int
	Prefix   string
}

func loadLogFrom(rootCfg ConfigProvider) {
	sec := rootCfg.Section("log")
	Log.Level = log.LevelFromString(sec.Key("LEVEL").MustString(log.INFO.String()))
	Log.Colorize = sec.Key("COLORIZE").MustBool(log.CanColorStderr)
	Log.Flags = log.FlagsFromString(sec.Key("FLAGS").MustString("stdflags"))
	Log.Prefix = sec.Key("PREFIX").MustString("")
}

// InitLoggers replaces the default console logger with one following the [log] section
func InitLoggers() {
	logger := log.NewLogger(os.Stderr, Log.Level, Log.Flags, Log.Colorize)
	if prefix := strings.TrimSpace(Log.Prefix); prefix != "" {
		logger.SetPrefix(prefix + " ")
	}
	log.SetLogger(logger)
}
