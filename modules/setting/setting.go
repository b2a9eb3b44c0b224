// Copyright 2014 The Gogs Authors. All rights reserved.
// Copyright 2017 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"code.gitea.io/charter/modules/log"
)

var (
	// AppVer is the version of the current build, set by the linker
	AppVer string
	// AppPath represents the path to the binary
	AppPath string

	// AppWorkPath is the "working directory" of the application. It maps to the: WORK_PATH in app.ini
	// It defaults to the directory of the binary and can be overridden with the --work-path flag.
	AppWorkPath string
	// CustomPath is the custom directory, fonts and palettes live under it unless configured otherwise
	CustomPath string
	// CustomConf is the absolute path of the app.ini in use
	CustomConf string
	// AppDataPath is the default path for storing data, rendered media goes under it
	AppDataPath string

	// CfgProvider is the loaded configuration, settings are read from it by LoadSettings
	CfgProvider ConfigProvider
	IsWindows   bool
)

func init() {
	IsWindows = runtime.GOOS == "windows"
	if AppVer == "" {
		AppVer = "dev"
	}
}

// InitWorkPathAndCommonConfig resolves the work path, custom path and config file path.
// Empty arguments fall back to the binary directory, "<work>/custom" and "<custom>/conf/app.ini".
func InitWorkPathAndCommonConfig(workPath, customPath, customConf string) {
	if AppPath == "" {
		if exe, err := os.Executable(); err == nil {
			AppPath, _ = filepath.Abs(exe)
		}
	}
	AppWorkPath = workPath
	if AppWorkPath == "" {
		AppWorkPath = filepath.Dir(AppPath)
	}
	AppWorkPath = absFrom(AppWorkPath, "")

	CustomPath = customPath
	if CustomPath == "" {
		CustomPath = filepath.Join(AppWorkPath, "custom")
	}
	CustomPath = absFrom(CustomPath, AppWorkPath)

	CustomConf = customConf
	if CustomConf == "" {
		CustomConf = filepath.Join(CustomPath, "conf", "app.ini")
	}
	CustomConf = absFrom(CustomConf, CustomPath)
}

func absFrom(p, base string) string {
	if p == "" || filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	if base != "" {
		return filepath.Join(base, p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}

// InitCfgProvider loads CustomConf (if it exists) into CfgProvider
func InitCfgProvider(file string) {
	var err error
	if CfgProvider, err = NewConfigProviderFromFile(file); err != nil {
		log.Fatal("Unable to init config provider from %q: %v", file, err)
	}
}

// LoadSettings initializes the settings for normal start up
func LoadSettings() {
	if err := LoadSettingsFrom(CfgProvider); err != nil {
		log.Fatal("Unable to load settings: %v", err)
	}
}

// LoadSettingsFrom reads every section the application knows about from rootCfg
func LoadSettingsFrom(rootCfg ConfigProvider) error {
	if rootCfg == nil {
		return fmt.Errorf("no config provider")
	}
	loadCommonSettingsFrom(rootCfg)
	loadLogFrom(rootCfg)
	loadServerFrom(rootCfg)
	loadCorsFrom(rootCfg)
	loadMetricsFrom(rootCfg)
	loadCharterFrom(rootCfg)
	loadGlobalLockFrom(rootCfg)
	return loadStorageFrom(rootCfg)
}

func loadCommonSettingsFrom(rootCfg ConfigProvider) {
	sec := rootCfg.Section("")
	if AppWorkPath == "" {
		InitWorkPathAndCommonConfig("", "", "")
	}
	if workPath := sec.Key("WORK_PATH").String(); workPath != "" && filepath.IsAbs(workPath) {
		AppWorkPath = workPath
	}
	AppDataPath = rootCfg.Section("server").Key("APP_DATA_PATH").MustString(filepath.Join(AppWorkPath, "data"))
	if !filepath.IsAbs(AppDataPath) {
		AppDataPath = filepath.Join(AppWorkPath, AppDataPath)
	}
}

// pathFromWork makes a relative configured path absolute against AppWorkPath
func pathFromWork(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(AppWorkPath, p)
}
