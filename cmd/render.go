// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"code.gitea.io/charter/modules/json"
	"code.gitea.io/charter/modules/log"
	"code.gitea.io/charter/modules/markup"
	"code.gitea.io/charter/modules/util"
	"code.gitea.io/charter/routers"
	charter_service "code.gitea.io/charter/services/charter"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	// register the markup renderers
	_ "code.gitea.io/charter/modules/markup/charter"
	_ "code.gitea.io/charter/modules/markup/markdown"
)

// CmdRender represents the available render sub-command.
var CmdRender = &cli.Command{
	Name:      "render",
	Usage:     "Render chart block files to PNG images",
	ArgsUsage: "<file>...",
	Description: `Each file holds one chart block, options first and the CSV data after an empty line.
Documents with a markup extension (like .md) are rendered to HTML, their charts are stored in the media storage.`,
	Action: runRender,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Value:   ".",
			Usage:   "Directory the images and documents are written to",
		},
		&cli.StringFlag{
			Name:    "namespace",
			Aliases: []string{"n"},
			Usage:   "Media namespace of the charts, defaults to the configured one",
		},
		&cli.BoolFlag{
			Name:  "store",
			Usage: "Store chart blocks in the media storage instead of writing them to the output directory",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Value:   runtime.NumCPU(),
			Usage:   "Number of files rendered at the same time",
		},
	},
}

// CmdInfo represents the available info sub-command.
var CmdInfo = &cli.Command{
	Name:      "info",
	Usage:     "Show the media id and the effective options of chart block files",
	ArgsUsage: "<file>...",
	Action:    runInfo,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "namespace",
			Aliases: []string{"n"},
			Usage:   "Media namespace of the charts",
		},
	},
}

type renderJob struct {
	outDir    string
	namespace string
	store     bool

	mu  sync.Mutex
	out io.Writer
}

func (j *renderJob) report(format string, args ...any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	_, _ = fmt.Fprintf(j.out, format+"\n", args...)
}

func (j *renderJob) renderFile(ctx context.Context, file string) error {
	content, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))

	if markupType := markup.DetectMarkupTypeByFileName(file); markupType != "" && markupType != "charter" {
		out := filepath.Join(j.outDir, base+".html")
		rctx := markup.NewRenderContext(ctx).
			WithMarkupType(markupType).
			WithRelativePath(filepath.Base(file)).
			WithNamespace(j.namespace)
		if _, err := writeOutput(out, func(w io.Writer) error {
			return markup.Render(rctx, strings.NewReader(string(content)), w)
		}); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		j.report("%s -> %s", file, out)
		return nil
	}

	if j.store {
		chart, err := charter_service.RenderBlock(ctx, j.namespace, string(content))
		if err != nil {
			return err
		}
		j.report("%s -> %s", file, chart.URL)
		return nil
	}

	out := filepath.Join(j.outDir, base+".png")
	size, err := writeOutput(out, func(w io.Writer) error {
		_, err := charter_service.RenderPNG(string(content), w)
		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	j.report("%s -> %s (%s)", file, out, humanize.IBytes(uint64(size)))
	return nil
}

// writeOutput creates path and fills it with write, the file is removed again when anything fails
func writeOutput(path string, write func(io.Writer) error) (size int64, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rmErr := util.Remove(path); rmErr != nil {
				log.Error("Unable to remove %s: %v", path, rmErr)
			}
		}
	}()
	if err = write(f); err != nil {
		_ = f.Close()
		return 0, err
	}
	if fi, statErr := f.Stat(); statErr == nil {
		size = fi.Size()
	}
	return size, f.Close()
}

func runRender(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("no files to render")
	}
	ctx, cancel := installSignals()
	defer cancel()

	routers.InitCharter(ctx)

	job := &renderJob{
		outDir:    c.String("output"),
		namespace: c.String("namespace"),
		store:     c.Bool("store"),
		out:       c.App.Writer,
	}
	if !job.store {
		if err := os.MkdirAll(job.outDir, os.ModePerm); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.Int("jobs"), 1))
	for _, file := range c.Args().Slice() {
		file := file
		g.Go(func() error {
			if err := job.renderFile(gctx, file); err != nil {
				log.Error("Render %s: %v", file, err)
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

func runInfo(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("no files given")
	}
	ctx, cancel := installSignals()
	defer cancel()

	routers.InitCharter(ctx)

	infos := make([]*charter_service.Chart, 0, c.NArg())
	for _, file := range c.Args().Slice() {
		content, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		infos = append(infos, charter_service.Info(c.String("namespace"), string(content)))
	}
	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(data))
	return err
}
