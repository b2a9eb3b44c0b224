// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package web

import (
	"context"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"code.gitea.io/charter/modules/json"
	"code.gitea.io/charter/modules/setting"
	"code.gitea.io/charter/modules/storage"
	"code.gitea.io/charter/modules/test"
	charter_service "code.gitea.io/charter/services/charter"
	markup_service "code.gitea.io/charter/services/markup"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTest(t *testing.T) http.Handler {
	t.Cleanup(test.MockVariableValue(&setting.AppDataPath, t.TempDir()))
	t.Cleanup(test.MockVariableValue(&setting.MediaURLPrefix, "/media/"))
	t.Cleanup(test.MockVariableValue(&setting.MaxRequestBodySize, int64(1<<20)))
	t.Cleanup(test.MockVariableValue(&setting.RenderTimeout, 0))
	t.Cleanup(test.MockVariableValue(&setting.ReverseProxyLimit, 0))
	t.Cleanup(test.MockVariableValue(&setting.Metrics))
	t.Cleanup(test.MockVariableValue(&setting.CORSConfig))
	t.Cleanup(test.MockVariableValue(&setting.Charter))
	setting.Charter.FontPath = t.TempDir()
	setting.Charter.PalettePath = t.TempDir()

	media, err := storage.NewStorage(setting.LocalStorageType, &setting.Storage{Path: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(test.MockVariableValue(&storage.Media, media))

	t.Cleanup(func() { charter_service.SetRenderer(nil) })
	require.NoError(t, charter_service.Init(context.Background()))
	markup_service.Init()
	return Routes()
}

func doRequest(h http.Handler, method, url, body string) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(method, url, strings.NewReader(body)))
	return resp
}

const salesBlock = "title = Sales\ntype = bar\nsize = 200x100\n\nQ1,Q2,Q3\n10,20,30\n"

func TestRenderChart(t *testing.T) {
	h := setupTest(t)

	resp := doRequest(h, http.MethodPost, "/api/v1/charter/render", salesBlock)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "image/png", resp.Header().Get("Content-Type"))
	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())

	// nothing is stored by a plain render
	_, err = storage.Media.Stat("chart-sales.png")
	assert.Error(t, err)
}

func TestRenderChartBodyTooLarge(t *testing.T) {
	h := setupTest(t)
	setting.MaxRequestBodySize = 8

	resp := doRequest(h, http.MethodPost, "/api/v1/charter/render", salesBlock)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
}

func TestStoreAndServeChart(t *testing.T) {
	h := setupTest(t)

	resp := doRequest(h, http.MethodPost, "/api/v1/charter/media?namespace=wiki:reports", salesBlock)
	require.Equal(t, http.StatusCreated, resp.Code)
	var chart struct {
		MediaID string `json:"media_id"`
		URL     string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &chart))
	assert.Equal(t, "wiki:reports:chart-sales.png", chart.MediaID)
	assert.Equal(t, "/media/wiki/reports/chart-sales.png", chart.URL)

	resp = doRequest(h, http.MethodGet, chart.URL, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "image/png", resp.Header().Get("Content-Type"))
	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())

	resp = doRequest(h, http.MethodGet, "/media/wiki/reports/chart-missing.png", "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	resp = doRequest(h, http.MethodGet, "/media/wiki", "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestChartInfo(t *testing.T) {
	h := setupTest(t)

	resp := doRequest(h, http.MethodPost, "/api/v1/charter/info?namespace=wiki", salesBlock)
	require.Equal(t, http.StatusOK, resp.Code)
	var info map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &info))
	assert.Equal(t, "wiki:chart-sales.png", info["media_id"])
	options, ok := info["options"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "bar", options["type"])
	assert.Equal(t, "Sales", options["title"])

	resp = doRequest(h, http.MethodGet, "/api/v1/charter/info?block="+"title%20%3D%20Sales%0A%0A1", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"media_id":"chart-sales.png"`)

	resp = doRequest(h, http.MethodGet, "/api/v1/charter/info", "")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRenderMarkup(t *testing.T) {
	h := setupTest(t)

	body, err := json.Marshal(MarkupOption{
		Text:     "# Report\n\n<charter>\n" + salesBlock + "</charter>\n\nDone.\n",
		FilePath: "wiki/sales.md",
	})
	require.NoError(t, err)
	resp := doRequest(h, http.MethodPost, "/api/v1/markup", string(body))
	require.Equal(t, http.StatusOK, resp.Code)
	out := resp.Body.String()
	assert.Contains(t, out, `src="/media/wiki/chart-sales.png"`)
	assert.Contains(t, out, "Done.")

	_, err = storage.Media.Stat("wiki/chart-sales.png")
	require.NoError(t, err)

	body, err = json.Marshal(MarkupOption{Text: "x", Mode: "asciidoc"})
	require.NoError(t, err)
	resp = doRequest(h, http.MethodPost, "/api/v1/markup", string(body))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	resp = doRequest(h, http.MethodPost, "/api/v1/markup", "{")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestMetricsToken(t *testing.T) {
	defer test.MockVariableValue(&setting.Metrics)()
	setting.Metrics.Enabled = true
	setting.Metrics.Token = "secret"
	h := setupTest(t)

	resp := doRequest(h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Authorization", "Bearer secret")
	resp = httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "go_goroutines")
}

func TestMetricsDisabled(t *testing.T) {
	h := setupTest(t)
	resp := doRequest(h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHealthz(t *testing.T) {
	h := setupTest(t)
	resp := doRequest(h, http.MethodGet, "/api/healthz", "")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"storage:media"`)
}
