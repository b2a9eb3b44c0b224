// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"code.gitea.io/charter/modules/log"
	"code.gitea.io/charter/modules/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	defer test.MockVariableValue(&AppWorkPath, "/srv/charter")()
	defer test.MockVariableValue(&CustomPath, "/srv/charter/custom")()
	defer test.MockVariableValue(&Charter)()
	defer test.MockVariableValue(&Metrics)()
	defer test.MockVariableValue(&Log)()

	cfg, err := NewConfigProviderFromData("")
	require.NoError(t, err)
	require.NoError(t, LoadSettingsFrom(cfg))

	assert.Equal(t, "/srv/charter/custom/charter/fonts", Charter.FontPath)
	assert.Equal(t, "/srv/charter/custom/charter/palettes", Charter.PalettePath)
	assert.Equal(t, "Vera.ttf", Charter.DefaultFont)
	assert.Equal(t, "VeraBd.ttf", Charter.DefaultBoldFont)
	assert.Equal(t, "/srv/charter/data", AppDataPath)

	assert.Equal(t, LocalStorageType, MediaStorage.Type)
	assert.Equal(t, "/srv/charter/data/media", MediaStorage.Path)

	assert.Equal(t, "memory", GlobalLock.ServiceType)
	assert.Equal(t, "0.0.0.0", HTTPAddr)
	assert.Equal(t, "3000", HTTPPort)
	assert.Equal(t, "/media/", MediaURLPrefix)
	assert.Equal(t, 30*time.Second, RenderTimeout)
	assert.Equal(t, log.INFO, Log.Level)
	assert.False(t, Metrics.Enabled)
}

func TestLoadSettingsFromData(t *testing.T) {
	defer test.MockVariableValue(&AppWorkPath, "/srv/charter")()
	defer test.MockVariableValue(&CustomPath, "/srv/charter/custom")()
	defer test.MockVariableValue(&Charter)()
	defer test.MockVariableValue(&Metrics)()
	defer test.MockVariableValue(&Log)()

	cfg, err := NewConfigProviderFromData(`
[server]
HTTP_PORT = 8080
MEDIA_URL_PREFIX = /_media

[charter]
FONT_PATH = fonts
PALETTE_PATH = /usr/share/charter/palettes
DEFAULT_FONT = DejaVuSans.ttf
MAX_WIDTH = 1200
MAX_HEIGHT = 800

[log]
LEVEL = debug

[metrics]
ENABLED = true

[storage]
STORAGE_TYPE = minio
MINIO_BUCKET = charts
MINIO_BASE_PATH = wiki
`)
	require.NoError(t, err)
	require.NoError(t, LoadSettingsFrom(cfg))

	assert.Equal(t, "/srv/charter/fonts", Charter.FontPath)
	assert.Equal(t, "/usr/share/charter/palettes", Charter.PalettePath)
	assert.Equal(t, "DejaVuSans.ttf", Charter.DefaultFont)
	assert.Equal(t, 1200, Charter.MaxWidth)
	assert.Equal(t, 800, Charter.MaxHeight)
	assert.Equal(t, "8080", HTTPPort)
	assert.Equal(t, "/_media/", MediaURLPrefix)
	assert.Equal(t, "0.0.0.0:8080", ListenAddr())
	assert.Equal(t, log.DEBUG, Log.Level)
	assert.True(t, Metrics.Enabled)

	assert.Equal(t, MinioStorageType, MediaStorage.Type)
	assert.Equal(t, "charts", MediaStorage.MinioConfig.Bucket)
	assert.Equal(t, "wiki/", MediaStorage.MinioConfig.BasePath)
	assert.Equal(t, "localhost:9000", MediaStorage.MinioConfig.Endpoint)
}

func TestStorageOverrideSection(t *testing.T) {
	defer test.MockVariableValue(&AppWorkPath, "/srv/charter")()
	defer test.MockVariableValue(&AppDataPath, "/srv/charter/data")()

	cfg, err := NewConfigProviderFromData(`
[storage]
STORAGE_TYPE = minio

[storage.media]
STORAGE_TYPE = local
PATH = charts
`)
	require.NoError(t, err)
	s, err := getStorage(cfg, "media")
	require.NoError(t, err)
	assert.Equal(t, LocalStorageType, s.Type)
	assert.Equal(t, "/srv/charter/charts", s.Path)

	cfg, err = NewConfigProviderFromData(`
[storage]
STORAGE_TYPE = ftp
`)
	require.NoError(t, err)
	_, err = getStorage(cfg, "media")
	assert.Error(t, err)
}

func TestConfigProviderFromFile(t *testing.T) {
	dir := t.TempDir()

	// a missing file gives an empty provider
	missing := filepath.Join(dir, "conf", "app.ini")
	cfg, err := NewConfigProviderFromFile(missing)
	require.NoError(t, err)
	assert.Empty(t, cfg.Section("charter").Keys())

	cfg.Section("charter").Key("MAX_WIDTH").SetValue("640")
	require.NoError(t, cfg.Save())

	bs, err := os.ReadFile(missing)
	require.NoError(t, err)
	assert.Contains(t, string(bs), "MAX_WIDTH = 640")

	cfg, err = NewConfigProviderFromFile(missing)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Section("charter").Key("MAX_WIDTH").MustInt())

	cfg, err = NewConfigProviderFromData("")
	require.NoError(t, err)
	assert.Error(t, cfg.Save())
}

func TestConfigSectionKey(t *testing.T) {
	cfg, err := NewConfigProviderFromData(`
[sec]
a = 1
[sec.sub]
b = 2
`)
	require.NoError(t, err)
	sub := cfg.Section("sec.sub")
	assert.Nil(t, ConfigSectionKey(sub, "a"))
	assert.Equal(t, "2", ConfigSectionKeyString(sub, "b"))
	assert.Equal(t, "x", ConfigSectionKeyString(sub, "c", "x"))
}

func TestLoadCorsAndProxy(t *testing.T) {
	defer test.MockVariableValue(&AppWorkPath, "/srv/charter")()
	defer test.MockVariableValue(&CORSConfig)()
	defer test.MockVariableValue(&ReverseProxyTrustedProxies)()
	defer test.MockVariableValue(&Charter)()
	defer test.MockVariableValue(&Log)()

	cfg, err := NewConfigProviderFromData(`
[server]
REVERSE_PROXY_LIMIT = 2
REVERSE_PROXY_TRUSTED_PROXIES = 10.0.0.0/8, 192.168.1.1

[cors]
ENABLED = true
ALLOW_DOMAIN = https://wiki.example.com,https://docs.example.com
MAX_AGE = 1h
`)
	require.NoError(t, err)
	require.NoError(t, LoadSettingsFrom(cfg))

	assert.True(t, CORSConfig.Enabled)
	assert.Equal(t, []string{"https://wiki.example.com", "https://docs.example.com"}, CORSConfig.AllowDomain)
	assert.Equal(t, []string{"GET", "HEAD", "POST"}, CORSConfig.Methods)
	assert.Equal(t, time.Hour, CORSConfig.MaxAge)
	assert.Equal(t, 2, ReverseProxyLimit)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, ReverseProxyTrustedProxies)
}
