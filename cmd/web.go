// Copyright 2014 The Gogs Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"code.gitea.io/charter/modules/log"
	"code.gitea.io/charter/modules/setting"
	"code.gitea.io/charter/routers"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

// CmdWeb represents the available web sub-command.
var CmdWeb = &cli.Command{
	Name:  "web",
	Usage: "Start the charter web server",
	Description: `The charter web server renders chart blocks and documents over HTTP and
serves the rendered charts from the media storage.`,
	Action: runWeb,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "Temporary port number to prevent conflict",
		},
		&cli.StringFlag{
			Name:  "listen",
			Usage: "Temporary listen address, overrides HTTP_ADDR",
		},
	},
}

func runWeb(ctx *cli.Context) error {
	managerCtx, cancel := installSignals()
	defer cancel()

	routers.GlobalInit(managerCtx)

	// Set the port number from the command line
	if ctx.IsSet("port") {
		setting.HTTPPort = ctx.String("port")
	}
	if ctx.IsSet("listen") {
		setting.HTTPAddr = ctx.String("listen")
	}

	srv := &http.Server{
		Addr:              setting.ListenAddr(),
		Handler:           routers.NormalRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(managerCtx)
	g.Go(func() error {
		log.Info("Listen: http://%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down the web server")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelShutdown()
		return srv.Shutdown(shutdownCtx)
	})
	err := g.Wait()
	log.Info("Web server stopped")
	return err
}
