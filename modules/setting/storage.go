// Copyright 2020 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"fmt"
	"path/filepath"
	"strings"
)

// StorageType is a type of Storage
type StorageType string

const (
	// LocalStorageType is the type descriptor for local storage
	LocalStorageType StorageType = "local"
	// MinioStorageType is the type descriptor for minio storage
	MinioStorageType StorageType = "minio"
)

var storageTypes = []StorageType{
	LocalStorageType,
	MinioStorageType,
}

// IsValidStorageType returns true if the given storage type is valid
func IsValidStorageType(storageType StorageType) bool {
	for _, t := range storageTypes {
		if t == storageType {
			return true
		}
	}
	return false
}

// MinioStorageConfig represents the configuration for a minio storage
type MinioStorageConfig struct {
	Endpoint           string `ini:"MINIO_ENDPOINT" json:",omitempty"`
	AccessKeyID        string `ini:"MINIO_ACCESS_KEY_ID" json:"-"`
	SecretAccessKey    string `ini:"MINIO_SECRET_ACCESS_KEY" json:"-"`
	Bucket             string `ini:"MINIO_BUCKET" json:",omitempty"`
	Location           string `ini:"MINIO_LOCATION" json:",omitempty"`
	BasePath           string `ini:"MINIO_BASE_PATH" json:",omitempty"`
	UseSSL             bool   `ini:"MINIO_USE_SSL"`
	InsecureSkipVerify bool   `ini:"MINIO_INSECURE_SKIP_VERIFY"`
	ServeDirect        bool   `ini:"SERVE_DIRECT"`
}

// Storage represents configuration of storages
type Storage struct {
	Type        StorageType        // local or minio
	Path        string             `json:",omitempty"` // for local type
	MinioConfig MinioStorageConfig // for minio type
}

// MediaStorage is where rendered charts are kept
var MediaStorage *Storage

func loadStorageFrom(rootCfg ConfigProvider) (err error) {
	MediaStorage, err = getStorage(rootCfg, "media")
	return err
}

func getStorage(rootCfg ConfigProvider, name string) (*Storage, error) {
	sec := rootCfg.Section("storage")
	if override, err := rootCfg.GetSection("storage." + name); err == nil {
		sec = override
	}

	storage := Storage{
		Type: StorageType(strings.ToLower(ConfigSectionKeyString(sec, "STORAGE_TYPE", string(LocalStorageType)))),
	}
	if !IsValidStorageType(storage.Type) {
		return nil, fmt.Errorf("invalid storage type %q", storage.Type)
	}

	switch storage.Type {
	case LocalStorageType:
		storage.Path = ConfigSectionKeyString(sec, "PATH", filepath.Join(AppDataPath, name))
		if !filepath.IsAbs(storage.Path) {
			storage.Path = filepath.Join(AppWorkPath, storage.Path)
		}
	case MinioStorageType:
		storage.MinioConfig = MinioStorageConfig{
			Endpoint: "localhost:9000",
			Bucket:   "charter",
			Location: "us-east-1",
			BasePath: name + "/",
		}
		if err := sec.MapTo(&storage.MinioConfig); err != nil {
			return nil, fmt.Errorf("map minio config failed: %v", err)
		}
		if storage.MinioConfig.BasePath != "" && !strings.HasSuffix(storage.MinioConfig.BasePath, "/") {
			storage.MinioConfig.BasePath += "/"
		}
	}
	return &storage, nil
}
