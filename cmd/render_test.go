// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"code.gitea.io/charter/modules/log"
	"code.gitea.io/charter/modules/setting"
	"code.gitea.io/charter/modules/storage"
	"code.gitea.io/charter/modules/test"
	charter_service "code.gitea.io/charter/services/charter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const salesBlock = "title = Sales\ntype = bar\nsize = 120x80\n\n10,20,30\n"

// mockCommandGlobals restores everything the commands initialize
func mockCommandGlobals(t *testing.T) {
	t.Cleanup(test.MockVariableValue(&setting.AppWorkPath))
	t.Cleanup(test.MockVariableValue(&setting.CustomPath))
	t.Cleanup(test.MockVariableValue(&setting.CustomConf))
	t.Cleanup(test.MockVariableValue(&setting.AppDataPath))
	t.Cleanup(test.MockVariableValue(&setting.CfgProvider))
	t.Cleanup(test.MockVariableValue(&setting.Charter))
	t.Cleanup(test.MockVariableValue(&setting.MediaStorage))
	t.Cleanup(test.MockVariableValue(&setting.Log))
	t.Cleanup(test.MockVariableValue(&storage.Media))
	logger := log.GetLogger()
	t.Cleanup(func() { log.SetLogger(logger) })
	t.Cleanup(func() { charter_service.SetRenderer(nil) })
}

func writeFile(t *testing.T, name, content string) string {
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestRenderCommand(t *testing.T) {
	mockCommandGlobals(t)
	workPath, outDir := t.TempDir(), t.TempDir()
	blockFile := writeFile(t, "sales.chart.txt", salesBlock)
	otherFile := writeFile(t, "other.txt", "type = pie\n\n1,2,3\n")

	r, err := runTestApp(NewMainApp(AppVersion{}), "./charter", "render", "-w", workPath, "-o", outDir, "-j", "2", blockFile, otherFile)
	require.NoError(t, err, r.Stderr)
	assert.Contains(t, r.Stdout, filepath.Join(outDir, "sales.chart.png"))
	assert.Contains(t, r.Stdout, filepath.Join(outDir, "other.png"))

	f, err := os.Open(filepath.Join(outDir, "sales.chart.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestRenderCommandStore(t *testing.T) {
	mockCommandGlobals(t)
	workPath := t.TempDir()
	blockFile := writeFile(t, "sales.txt", salesBlock)

	r, err := runTestApp(NewMainApp(AppVersion{}), "./charter", "render", "-w", workPath, "--store", "-n", "wiki", blockFile)
	require.NoError(t, err, r.Stderr)
	assert.Contains(t, r.Stdout, "/media/wiki/chart-sales.png")
	assert.FileExists(t, filepath.Join(workPath, "data", "media", "wiki", "chart-sales.png"))
}

func TestRenderCommandDocument(t *testing.T) {
	mockCommandGlobals(t)
	workPath, outDir := t.TempDir(), t.TempDir()
	doc := writeFile(t, "report.md", "# Report\n\n<charter>\n"+salesBlock+"</charter>\n")

	r, err := runTestApp(NewMainApp(AppVersion{}), "./charter", "render", "-w", workPath, "-o", outDir, "-n", "wiki", doc)
	require.NoError(t, err, r.Stderr)

	html, err := os.ReadFile(filepath.Join(outDir, "report.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1")
	assert.Contains(t, string(html), `src="/media/wiki/chart-sales.png"`)
	assert.FileExists(t, filepath.Join(workPath, "data", "media", "wiki", "chart-sales.png"))
}

func TestRenderCommandErrors(t *testing.T) {
	mockCommandGlobals(t)

	r, err := runTestApp(NewMainApp(AppVersion{}), "./charter", "render", "-w", t.TempDir())
	assert.Error(t, err)
	assert.Equal(t, 1, r.ExitCode)
	assert.Equal(t, "Command error: no files to render\n", r.Stderr)

	r, err = runTestApp(NewMainApp(AppVersion{}), "./charter", "render", "-w", t.TempDir(), "-o", t.TempDir(), filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
	assert.Equal(t, 1, r.ExitCode)
}

func TestRenderCommandRemovesFailedOutput(t *testing.T) {
	mockCommandGlobals(t)
	outDir := t.TempDir()
	emptyFile := writeFile(t, "empty.txt", "title = Nothing\n\n")

	r, err := runTestApp(NewMainApp(AppVersion{}), "./charter", "render", "-w", t.TempDir(), "-o", outDir, emptyFile)
	assert.Error(t, err)
	assert.Equal(t, 1, r.ExitCode)
	assert.NoFileExists(t, filepath.Join(outDir, "empty.png"))
}

func TestWriteOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	_, err := writeOutput(path, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return errors.New("render failed")
	})
	assert.EqualError(t, err, "render failed")
	assert.NoFileExists(t, path)

	size, err := writeOutput(path, func(w io.Writer) error {
		_, err := w.Write([]byte("chart"))
		return err
	})
	require.NoError(t, err)
	assert.EqualValues(t, 5, size)
	assert.FileExists(t, path)
}

func TestInfoCommand(t *testing.T) {
	mockCommandGlobals(t)
	blockFile := writeFile(t, "sales.txt", salesBlock)

	r, err := runTestApp(NewMainApp(AppVersion{}), "./charter", "info", "-w", t.TempDir(), "-n", "wiki", blockFile)
	require.NoError(t, err, r.Stderr)
	assert.Contains(t, r.Stdout, `"media_id": "wiki:chart-sales.png"`)
	assert.Contains(t, r.Stdout, `"type": "bar"`)
}
