// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package healthcheck

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"code.gitea.io/charter/modules/json"
	"code.gitea.io/charter/modules/setting"
	"code.gitea.io/charter/modules/storage"
	"code.gitea.io/charter/modules/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doCheck(t *testing.T) (*httptest.ResponseRecorder, response) {
	resp := httptest.NewRecorder()
	Check(resp, httptest.NewRequest(http.MethodGet, "/api/healthz", nil))
	var rsp response
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &rsp))
	return resp, rsp
}

func TestCheck(t *testing.T) {
	defer test.MockVariableValue(&setting.Charter)()
	media, err := storage.NewStorage(setting.LocalStorageType, &setting.Storage{Path: t.TempDir()})
	require.NoError(t, err)
	defer test.MockVariableValue(&storage.Media, media)()

	setting.Charter.FontPath = t.TempDir()
	resp, rsp := doCheck(t)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, pass, rsp.Status)
	assert.Equal(t, pass, rsp.Checks["storage:media"][0].Status)

	setting.Charter.FontPath = filepath.Join(t.TempDir(), "missing")
	resp, rsp = doCheck(t)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, warn, rsp.Status)
	assert.Equal(t, warn, rsp.Checks["charter:fonts"][0].Status)
}

func TestCheckStorageFailure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "media")
	media, err := storage.NewStorage(setting.LocalStorageType, &setting.Storage{Path: dir})
	require.NoError(t, err)
	defer test.MockVariableValue(&storage.Media, media)()
	defer test.MockVariableValue(&setting.Charter)()
	setting.Charter.FontPath = t.TempDir()

	// a plain file where the storage directory should be makes every save fail
	require.NoError(t, os.RemoveAll(dir))
	require.NoError(t, os.WriteFile(dir, []byte("x"), 0o644))

	resp, rsp := doCheck(t)
	assert.Equal(t, http.StatusFailedDependency, resp.Code)
	assert.Equal(t, fail, rsp.Status)
	assert.NotEmpty(t, rsp.Checks["storage:media"][0].Output)
}
