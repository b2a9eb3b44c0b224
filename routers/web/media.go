// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package web

import (
	"errors"
	"net/http"
	"os"
	"path"

	"code.gitea.io/charter/modules/log"
	"code.gitea.io/charter/modules/storage"
	"code.gitea.io/charter/modules/util"

	"github.com/go-chi/chi/v5"
)

// ServeMedia serves a rendered chart from the media storage
func ServeMedia(w http.ResponseWriter, req *http.Request) {
	p := util.PathJoinRel(chi.URLParam(req, "*"))
	if p == "" {
		http.NotFound(w, req)
		return
	}

	// If we have a signed url (S3, object storage), redirect to this directly.
	if u, err := storage.ServeDirectURL(storage.Media, p, path.Base(p)); err == nil && u != nil {
		http.Redirect(w, req, u.String(), http.StatusTemporaryRedirect)
		return
	}

	fr, err := storage.Media.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			http.NotFound(w, req)
			return
		}
		log.Error("Open media %q: %v", p, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer fr.Close()

	fi, err := fr.Stat()
	if err != nil {
		log.Error("Stat media %q: %v", p, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if fi.IsDir() {
		http.NotFound(w, req)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeContent(w, req, path.Base(p), fi.ModTime(), fr)
}
