// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charter

import (
	"context"
	"errors"
	"fmt"
	"html"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	"code.gitea.io/charter/modules/charter"
	"code.gitea.io/charter/modules/globallock"
	"code.gitea.io/charter/modules/log"
	"code.gitea.io/charter/modules/setting"
	"code.gitea.io/charter/modules/storage"
	"code.gitea.io/charter/modules/util"
)

// Chart is a chart block rendered into the media storage
type Chart struct {
	MediaID string           `json:"media_id"`
	URL     string           `json:"url"`
	Options *charter.Options `json:"options"`
}

// HTML returns the <img> tag embedding the chart
func (c *Chart) HTML() template.HTML {
	return template.HTML(fmt.Sprintf(`<img src="%s" alt="%s" width="%d" height="%d" class="media%s" />`,
		html.EscapeString(c.URL),
		html.EscapeString(c.Options.Title),
		c.Options.Size.Width,
		c.Options.Size.Height,
		c.Options.Align,
	))
}

func tempDir() (string, error) {
	dir := filepath.Join(setting.AppDataPath, "tmp", "charter")
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}
	return dir, nil
}

// RenderBlock renders the block text into the media storage under namespace.
// The media id is locked while rendering, so concurrent renders of the same chart do not
// interleave. The effective options are returned even when rendering fails.
func RenderBlock(ctx context.Context, namespace, text string) (*Chart, error) {
	block := charter.ParseBlock(text)
	mediaID := MediaID(namespace, block, text)
	chart := &Chart{MediaID: mediaID, URL: MediaURL(mediaID)}
	mediaPath := MediaPath(mediaID)

	start := time.Now()
	err := globallock.LockAndDo(ctx, "charter_media_"+mediaPath, func(ctx context.Context) error {
		dir, err := tempDir()
		if err != nil {
			return err
		}
		tmp, err := os.CreateTemp(dir, "chart-*.png")
		if err != nil {
			return err
		}
		tmpPath := tmp.Name()
		_ = tmp.Close()
		defer func() {
			_ = util.Remove(tmpPath)
		}()

		chart.Options, err = getRenderer().RenderBlock(block, tmpPath)
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		return saveMedia(mediaPath, tmpPath)
	})
	if chart.Options == nil {
		chart.Options = getRenderer().Normalizer.Normalize(block.Flags)
	}
	observeRender(string(chart.Options.Type), err, time.Since(start).Seconds())
	if err != nil {
		return chart, fmt.Errorf("render chart %s: %w", mediaID, err)
	}
	log.Debug("Charter: rendered %s", mediaID)
	return chart, nil
}

func saveMedia(mediaPath, localPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}
	_, err = storage.Media.Save(mediaPath, f, fi.Size())
	return err
}

// RenderChartHTML renders a block and returns the HTML embedding it, it serves as the markup chart hook
func RenderChartHTML(ctx context.Context, namespace, text string) (template.HTML, error) {
	chart, err := RenderBlock(ctx, namespace, text)
	if err != nil {
		return "", err
	}
	return chart.HTML(), nil
}

type pngEncoder interface {
	EncodePNG(w io.Writer) error
}

var errNoPNGEncoder = errors.New("surface can not encode PNG")

// RenderPNG renders the block text and writes the PNG to w without storing it
func RenderPNG(text string, w io.Writer) (*charter.Options, error) {
	block := charter.ParseBlock(text)
	r := getRenderer()
	opts := r.Normalizer.Normalize(block.Flags)

	start := time.Now()
	err := func() error {
		data, err := charter.NewChartData(opts, charter.ParseCSV(block.Rows))
		if err != nil {
			return err
		}
		enc, ok := r.Assemble(opts, data).(pngEncoder)
		if !ok {
			return errNoPNGEncoder
		}
		return enc.EncodePNG(w)
	}()
	observeRender(string(opts.Type), err, time.Since(start).Seconds())
	return opts, err
}

// Info returns the media id and the effective options of a block without rendering it
func Info(namespace, text string) *Chart {
	block := charter.ParseBlock(text)
	mediaID := MediaID(namespace, block, text)
	return &Chart{
		MediaID: mediaID,
		URL:     MediaURL(mediaID),
		Options: getRenderer().Normalizer.Normalize(block.Flags),
	}
}
