// Copyright 2017 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package web

import (
	"net/http"
	"strings"

	"code.gitea.io/charter/modules/setting"
	"code.gitea.io/charter/routers/common"
	"code.gitea.io/charter/routers/web/healthcheck"

	"github.com/go-chi/chi/v5"

	// register the markup renderers
	_ "code.gitea.io/charter/modules/markup/charter"
	_ "code.gitea.io/charter/modules/markup/markdown"
)

// Routes returns the HTTP handler of the web command
func Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(common.Middlewares()...)

	r.Get("/api/healthz", healthcheck.Check)
	if setting.Metrics.Enabled {
		r.Get("/metrics", Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(limitRequestBody)
		r.Route("/charter", func(r chi.Router) {
			r.Post("/render", RenderChart)
			r.Post("/media", StoreChart)
			r.Get("/info", ChartInfo)
			r.Post("/info", ChartInfo)
		})
		r.Post("/markup", RenderMarkup)
	})

	mediaPrefix := "/" + strings.Trim(setting.MediaURLPrefix, "/")
	r.Get(mediaPrefix+"/*", ServeMedia)
	r.Head(mediaPrefix+"/*", ServeMedia)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})
	return r
}

func limitRequestBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if setting.MaxRequestBodySize > 0 {
			req.Body = http.MaxBytesReader(w, req.Body, setting.MaxRequestBodySize)
		}
		next.ServeHTTP(w, req)
	})
}
