// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build windows

package log

import (
	"os"

	"github.com/mattn/go-isatty"
)

func init() {
	// legacy windows consoles do not understand SGR sequences, only cygwin/msys terminals do
	CanColorStdout = isatty.IsCygwinTerminal(os.Stdout.Fd())
	CanColorStderr = isatty.IsCygwinTerminal(os.Stderr.Fd())
}
