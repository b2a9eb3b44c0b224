// Copyright 2016 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package routers

import (
	"context"
	"reflect"
	"runtime"

	"code.gitea.io/charter/modules/log"
	"code.gitea.io/charter/modules/setting"
	"code.gitea.io/charter/modules/storage"
	"code.gitea.io/charter/routers/web"
	charter_service "code.gitea.io/charter/services/charter"
	markup_service "code.gitea.io/charter/services/markup"

	"github.com/go-chi/chi/v5"
)

func mustInit(fn func() error) {
	err := fn()
	if err != nil {
		ptr := reflect.ValueOf(fn).Pointer()
		fi := runtime.FuncForPC(ptr)
		log.Fatal("%s failed: %v", fi.Name(), err)
	}
}

func mustInitCtx(ctx context.Context, fn func(ctx context.Context) error) {
	err := fn(ctx)
	if err != nil {
		ptr := reflect.ValueOf(fn).Pointer()
		fi := runtime.FuncForPC(ptr)
		log.Fatal("%s failed: %v", fi.Name(), err)
	}
}

// InitCharter loads the settings and sets up everything charts are rendered with
func InitCharter(ctx context.Context) {
	setting.InitCfgProvider(setting.CustomConf)
	setting.LoadSettings()
	setting.InitLoggers()

	log.Info("AppPath: %s", setting.AppPath)
	log.Info("AppWorkPath: %s", setting.AppWorkPath)
	log.Info("Custom path: %s", setting.CustomPath)
	log.Info("Log path: console")
	log.Info("Configuration file: %s", setting.CustomConf)

	mustInit(storage.Init)
	mustInitCtx(ctx, charter_service.Init)
	markup_service.Init()
}

// GlobalInit initializes everything the web command needs
func GlobalInit(ctx context.Context) {
	InitCharter(ctx)
	log.Info("Charter version: %s", setting.AppVer)
	if setting.Metrics.Enabled {
		log.Info("Metrics are served on /metrics")
	}
}

// NormalRoutes represents non install routes
func NormalRoutes() *chi.Mux {
	return web.Routes()
}
