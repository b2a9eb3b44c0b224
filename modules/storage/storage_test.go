// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package storage

import (
	"bytes"
	"io"
	"testing"

	"code.gitea.io/charter/modules/setting"
	"code.gitea.io/charter/modules/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStorageIterator(t *testing.T, typStr Type, cfg *setting.Storage) {
	l, err := NewStorage(typStr, cfg)
	require.NoError(t, err)

	testFiles := []string{
		"a/1.png",
		"a/b/1.png",
		"ab/1.png",
		"b/1.png",
		"b/2.png",
		"b/3.png",
		"b/x 4.png",
	}
	for _, p := range testFiles {
		_, err = l.Save(p, bytes.NewBufferString(p), int64(len(p)))
		require.NoError(t, err)
	}

	expectedList := map[string][]string{
		"a":           {"a/1.png", "a/b/1.png"},
		"b":           {"b/1.png", "b/2.png", "b/3.png", "b/x 4.png"},
		"":            testFiles,
		"/":           testFiles,
		"a/b/../../a": {"a/1.png", "a/b/1.png"},
	}
	for dir, expected := range expectedList {
		count := 0
		err = l.IterateObjects(dir, func(path string, f Object) error {
			assert.Contains(t, expected, path)
			count++
			return nil
		})
		require.NoError(t, err)
		assert.Len(t, expected, count)
	}

	require.NoError(t, Clean(l))
	count := 0
	require.NoError(t, l.IterateObjects("", func(path string, f Object) error {
		count++
		return nil
	}))
	assert.Zero(t, count)
}

func TestLocalStorage(t *testing.T) {
	l, err := NewStorage(setting.LocalStorageType, &setting.Storage{Path: t.TempDir()})
	require.NoError(t, err)

	n, err := l.Save("wiki/chart-sales.png", bytes.NewReader([]byte("png")), 3)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	fi, err := l.Stat("wiki/chart-sales.png")
	require.NoError(t, err)
	assert.EqualValues(t, 3, fi.Size())

	// paths can not escape the storage directory
	f, err := l.Open("../../wiki/chart-sales.png")
	require.NoError(t, err)
	bs, err := io.ReadAll(f)
	require.NoError(t, f.Close())
	require.NoError(t, err)
	assert.Equal(t, "png", string(bs))

	_, err = l.URL("wiki/chart-sales.png", "chart-sales.png")
	assert.ErrorIs(t, err, ErrURLNotSupported)

	require.NoError(t, SaveFrom(l, "wiki/other.png", func(w io.Writer) error {
		_, err := w.Write([]byte("other"))
		return err
	}))
	fi, err = l.Stat("wiki/other.png")
	require.NoError(t, err)
	assert.EqualValues(t, 5, fi.Size())

	require.NoError(t, l.Delete("wiki/chart-sales.png"))
	_, err = l.Stat("wiki/chart-sales.png")
	assert.Error(t, err)
	// deleting a missing object is not an error
	assert.NoError(t, l.Delete("wiki/chart-sales.png"))
}

func TestLocalStorageIterator(t *testing.T) {
	testStorageIterator(t, setting.LocalStorageType, &setting.Storage{Path: t.TempDir()})
}

func TestLocalStorageRelativePath(t *testing.T) {
	_, err := NewStorage(setting.LocalStorageType, &setting.Storage{Path: "relative/media"})
	assert.Error(t, err)
}

func TestNewStorageUnsupported(t *testing.T) {
	_, err := NewStorage("ftp", &setting.Storage{})
	assert.Error(t, err)
}

func TestInitMedia(t *testing.T) {
	defer test.MockVariableValue(&setting.MediaStorage, &setting.Storage{Type: setting.LocalStorageType, Path: t.TempDir()})()
	defer test.MockVariableValue(&Media)()

	require.NoError(t, Init())
	_, ok := Media.(*LocalStorage)
	assert.True(t, ok)
}

func TestUninitializedStorage(t *testing.T) {
	var s ObjectStorage = discardStorage("not ready")
	_, err := s.Save("a", bytes.NewReader(nil), 0)
	assert.EqualError(t, err, "not ready")
	_, err = ServeDirectURL(s, "a", "a")
	assert.Error(t, err)
}
