// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package web

import (
	"errors"
	"net/http"

	"code.gitea.io/charter/modules/json"
	"code.gitea.io/charter/modules/log"
	"code.gitea.io/charter/modules/markup"
	"code.gitea.io/charter/modules/util"
)

// MarkupOption is the body of a markup render request
type MarkupOption struct {
	// Text to render
	Text string `json:"text"`
	// Mode is the markup type, it is detected from FilePath when empty
	Mode string `json:"mode"`
	// FilePath is the path of the page, its directory is the default media namespace
	FilePath string `json:"file_path"`
	// Namespace overrides the media namespace of the charts on the page
	Namespace string `json:"namespace"`
}

// RenderMarkup renders a document with its chart blocks and responds with the sanitized HTML
func RenderMarkup(w http.ResponseWriter, req *http.Request) {
	body, ok := readBody(w, req)
	if !ok {
		return
	}
	var form MarkupOption
	if err := json.Unmarshal(body, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	mode := form.Mode
	if mode == "" && form.FilePath == "" {
		mode = "markdown"
	}
	ctx, cancel := withRenderTimeout(req.Context())
	defer cancel()

	rctx := markup.NewRenderContext(ctx).
		WithMarkupType(mode).
		WithRelativePath(form.FilePath).
		WithNamespace(form.Namespace)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	out, err := markup.RenderString(rctx, form.Text)
	if err != nil {
		if errors.Is(err, util.ErrInvalidArgument) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		log.Error("RenderMarkup: %v", err)
		writeError(w, http.StatusInternalServerError, "unable to render document")
		return
	}
	_, _ = w.Write([]byte(out))
}
