// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package web

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"code.gitea.io/charter/modules/json"
	"code.gitea.io/charter/modules/log"
	"code.gitea.io/charter/modules/setting"
	charter_service "code.gitea.io/charter/services/charter"
)

// apiError is the body of every failed API response
type apiError struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error("Marshal JSON response: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiError{Message: message})
}

// readBody reads the whole request body, it writes the error response itself and returns false on failure
func readBody(w http.ResponseWriter, req *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body is larger than "+strconv.FormatInt(maxErr.Limit, 10)+" bytes")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "unable to read request body")
		return nil, false
	}
	return body, true
}

func withRenderTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if setting.RenderTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, setting.RenderTimeout)
}

// RenderChart renders the chart block in the request body and responds with the PNG
func RenderChart(w http.ResponseWriter, req *http.Request) {
	body, ok := readBody(w, req)
	if !ok {
		return
	}
	ctx, cancel := withRenderTimeout(req.Context())
	defer cancel()

	type result struct {
		png bytes.Buffer
		err error
	}
	done := make(chan *result, 1)
	go func() {
		res := &result{}
		_, res.err = charter_service.RenderPNG(string(body), &res.png)
		done <- res
	}()

	select {
	case <-ctx.Done():
		log.Warn("Charter: render request aborted: %v", ctx.Err())
		writeError(w, http.StatusServiceUnavailable, "rendering did not finish in time")
	case res := <-done:
		if res.err != nil {
			log.Debug("Charter: render request failed: %v", res.err)
			writeError(w, http.StatusUnprocessableEntity, res.err.Error())
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(res.png.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = res.png.WriteTo(w)
	}
}

// StoreChart renders the chart block in the request body into the media storage.
// The namespace is taken from the "namespace" query parameter.
func StoreChart(w http.ResponseWriter, req *http.Request) {
	body, ok := readBody(w, req)
	if !ok {
		return
	}
	ctx, cancel := withRenderTimeout(req.Context())
	defer cancel()

	chart, err := charter_service.RenderBlock(ctx, req.URL.Query().Get("namespace"), string(body))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			writeError(w, http.StatusServiceUnavailable, "rendering did not finish in time")
			return
		}
		log.Debug("Charter: store request failed: %v", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, chart)
}

// ChartInfo responds with the media id and the effective options of a chart block, which is
// read from the "block" query parameter or the request body
func ChartInfo(w http.ResponseWriter, req *http.Request) {
	text := req.URL.Query().Get("block")
	if text == "" && req.Method == http.MethodPost {
		body, ok := readBody(w, req)
		if !ok {
			return
		}
		text = string(body)
	}
	if text == "" {
		writeError(w, http.StatusBadRequest, "no chart block given")
		return
	}
	writeJSON(w, http.StatusOK, charter_service.Info(req.URL.Query().Get("namespace"), text))
}
