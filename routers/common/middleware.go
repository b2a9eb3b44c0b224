// Copyright 2021 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package common

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"code.gitea.io/charter/modules/log"
	"code.gitea.io/charter/modules/setting"

	"github.com/chi-middleware/proxy"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Middlewares returns common middlewares
func Middlewares() []func(http.Handler) http.Handler {
	handlers := []func(http.Handler) http.Handler{
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
				// First of all escape the URL RawPath to ensure that all routing is done using a correctly escaped URL
				req.URL.RawPath = req.URL.EscapedPath()
				next.ServeHTTP(resp, req)
			})
		},
	}

	if setting.ReverseProxyLimit > 0 {
		opt := proxy.NewForwardedHeadersOptions().
			WithForwardLimit(setting.ReverseProxyLimit).
			ClearTrustedProxies()
		for _, n := range setting.ReverseProxyTrustedProxies {
			if !strings.Contains(n, "/") {
				opt.AddTrustedProxy(n)
			} else {
				opt.AddTrustedNetwork(n)
			}
		}
		handlers = append(handlers, proxy.ForwardedHeaders(opt))
	}

	handlers = append(handlers, middleware.StripSlashes, RequestLogger())

	if setting.CORSConfig.Enabled {
		handlers = append(handlers, cors.Handler(cors.Options{
			AllowedOrigins:   setting.CORSConfig.AllowDomain,
			AllowedMethods:   setting.CORSConfig.Methods,
			AllowedHeaders:   setting.CORSConfig.Headers,
			AllowCredentials: setting.CORSConfig.AllowCredentials,
			MaxAge:           int(setting.CORSConfig.MaxAge.Seconds()),
		}))
	}

	handlers = append(handlers, func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					combinedErr := fmt.Sprintf("PANIC: %v\n%s", err, log.Stack(2))
					log.Error("%v", combinedErr)
					http.Error(resp, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(resp, req)
		})
	})
	return handlers
}

// RequestLogger logs every completed request, failed ones at a higher level
func RequestLogger() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
			start := time.Now()
			if log.IsTrace() {
				log.Trace("router: started   %s %s for %s", req.Method, req.RequestURI, req.RemoteAddr)
			}
			ww := middleware.NewWrapResponseWriter(resp, req.ProtoMajor)
			next.ServeHTTP(ww, req)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := log.INFO
			if status >= http.StatusInternalServerError {
				level = log.WARN
			}
			log.Log(0, level, "router: completed %s %s for %s, %d %s in %v",
				req.Method, req.RequestURI, req.RemoteAddr,
				status, http.StatusText(status), time.Since(start))
		})
	}
}
