// Copyright 2022 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build windows

package util

import (
	"os"
)

// ApplyUmask is a no-op on windows, the file permissions are managed by ACLs
func ApplyUmask(f string, newMode os.FileMode) error {
	return nil
}
