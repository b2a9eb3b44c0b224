// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package storage

import (
	"os"
	"testing"

	"code.gitea.io/charter/modules/setting"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
)

func TestMinioStorageIterator(t *testing.T) {
	if os.Getenv("CI") == "" {
		t.Skip("minioStorage not present outside of CI")
		return
	}
	testStorageIterator(t, setting.MinioStorageType, &setting.Storage{
		MinioConfig: setting.MinioStorageConfig{
			Endpoint:        "127.0.0.1:9000",
			AccessKeyID:     "123456",
			SecretAccessKey: "12345678",
			Bucket:          "charter",
			Location:        "us-east-1",
		},
	})
}

func TestMinioStoragePath(t *testing.T) {
	m := &MinioStorage{basePath: ""}
	assert.Equal(t, "", m.buildMinioPath("/"))
	assert.Equal(t, "", m.buildMinioPath("."))
	assert.Equal(t, "a", m.buildMinioPath("/a"))
	assert.Equal(t, "a/b", m.buildMinioPath("/a/b/"))
	assert.Equal(t, "", m.buildMinioDirPrefix(""))
	assert.Equal(t, "a/", m.buildMinioDirPrefix("/a/"))

	m = &MinioStorage{basePath: "/"}
	assert.Equal(t, "", m.buildMinioPath("/"))
	assert.Equal(t, "a", m.buildMinioPath("/a"))

	m = &MinioStorage{basePath: "/media"}
	assert.Equal(t, "media", m.buildMinioPath(""))
	assert.Equal(t, "media/a", m.buildMinioPath("/a"))
	assert.Equal(t, "media/wiki/chart.png", m.buildMinioPath("wiki/chart.png"))
	assert.Equal(t, "media/", m.buildMinioDirPrefix(""))
	assert.Equal(t, "media/a/", m.buildMinioDirPrefix("/a/"))
}

func TestConvertMinioErr(t *testing.T) {
	assert.Nil(t, convertMinioErr(nil))
	assert.ErrorIs(t, convertMinioErr(minio.ErrorResponse{Code: "NoSuchKey"}), os.ErrNotExist)
	assert.ErrorIs(t, convertMinioErr(minio.ErrorResponse{Code: "AccessDenied"}), os.ErrPermission)
	assert.Equal(t, os.ErrClosed, convertMinioErr(os.ErrClosed))
}
