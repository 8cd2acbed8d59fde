// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
	_ "github.com/gogpu/gg/gpu" // GPU accelerator
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"
	"github.com/spf13/cobra"

	"github.com/gogpu/heatmap"
	"github.com/gogpu/heatmap/integration/input"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open an interactive heatmap window",
	Long: `Open a window and accumulate heat where you click.

Keys: R clears all heat, D toggles background dimming, L toggles cluster
labels.`,
	Args: cobra.NoArgs,
	RunE: runView,
}

// imageResult carries an asynchronous background load to the draw loop.
type imageResult struct {
	req heatmap.ImageRequest
	img image.Image
	err error
}

func runView(cmd *cobra.Command, _ []string) error {
	cfg, err := global.load(cmd.Flags())
	if err != nil {
		return err
	}
	// The window does not follow the map, so images fit the initial size.
	opts, err := cfg.WindowOptions()
	if err != nil {
		return err
	}
	m := heatmap.New(cfg.Width, cfg.Height, opts...)

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle("heatmap").
		WithSize(m.Width(), m.Height()).
		WithContinuousRender(false))

	var (
		canvas  *ggcanvas.Canvas
		surface *heatmap.ContextSurface
		anim    *gogpu.AnimationToken
		images  = make(chan imageResult, 1)
	)

	// Frames are drawn while an animation token is held.
	wake := func() {
		if anim == nil {
			anim = app.StartAnimation()
		}
	}

	if cfg.Background != "" {
		req := m.BeginImage()
		go func(path string) {
			img, err := heatmap.LoadImageFile(path)
			images <- imageResult{req: req, img: img, err: err}
		}(cfg.Background)
	}

	input.Bind(app.EventSource(), m, input.OnChange(func(ev input.Event) {
		if ev.Action == input.ActionClick && ev.Accepted {
			heatmap.Logger().Info("click", "x", ev.X, "y", ev.Y, "total", m.ClickCount())
		}
		wake()
	}))

	app.OnDraw(func(dc *gogpu.Context) {
		select {
		case r := <-images:
			if m.FinishImage(r.req, r.img, r.err) && r.err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", r.err)
			}
		default:
		}

		w, h := dc.Width(), dc.Height()
		if w <= 0 || h <= 0 {
			return
		}
		if canvas == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			if canvas, err = ggcanvas.New(provider, w, h); err != nil {
				heatmap.Logger().Error("canvas", "err", err)
				return
			}
		}
		if cw, ch := canvas.Size(); cw != w || ch != h {
			if err := canvas.Resize(w, h); err != nil {
				heatmap.Logger().Warn("canvas resize", "err", err)
			}
		}

		if err := canvas.Draw(func(cc *gg.Context) {
			if surface == nil {
				surface = heatmap.NewContextSurface(cc)
			} else {
				surface.SetContext(cc)
			}
			m.Render(surface)
		}); err != nil {
			heatmap.Logger().Warn("draw", "err", err)
		}

		sw, sh := dc.SurfaceSize()
		if err := canvas.RenderDirect(dc.SurfaceView(), sw, sh); err != nil {
			heatmap.Logger().Warn("present", "err", err)
		}

		switch pending := m.ImageState() == heatmap.ImagePending; {
		case pending:
			wake()
		case anim != nil:
			anim.Stop()
			anim = nil
		}
	})

	app.OnClose(func() {
		if anim != nil {
			anim.Stop()
		}
		if surface != nil {
			_ = surface.Close()
		}
		gg.CloseAccelerator()
	})

	heatmap.Logger().Debug("view", "size", fmt.Sprintf("%dx%d", m.Width(), m.Height()))
	return app.Run()
}
