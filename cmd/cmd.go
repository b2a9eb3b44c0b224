// Copyright 2018 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd provides subcommands to the charter binary - such as "web" or "render".
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"code.gitea.io/charter/modules/log"

	"github.com/urfave/cli/v2"
)

// PrepareConsoleLoggerLevel sets the console logger level, "--quiet" and "--verbose" flags of a command adjust it
func PrepareConsoleLoggerLevel(defaultLevel log.Level) func(*cli.Context) error {
	return func(c *cli.Context) error {
		level := defaultLevel
		if c.Bool("quiet") {
			level = log.FATAL
		}
		if c.Bool("debug") || c.Bool("verbose") {
			level = log.TRACE
		}
		log.SetConsoleLogger(level, log.CanColorStderr)
		return nil
	}
}

func installSignals() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		// install notify
		signalChannel := make(chan os.Signal, 1)

		signal.Notify(
			signalChannel,
			syscall.SIGINT,
			syscall.SIGTERM,
		)
		select {
		case <-signalChannel:
		case <-ctx.Done():
		}
		cancel()
		signal.Reset()
	}()

	return ctx, cancel
}
