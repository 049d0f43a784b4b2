// Package desktop shows a viewer in an SDL window.
package desktop

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/frustumview/internal/engine/input"
	"github.com/Faultbox/frustumview/internal/engine/loop"
	"github.com/Faultbox/frustumview/internal/engine/window"
	"github.com/Faultbox/frustumview/internal/logger"
	"github.com/Faultbox/frustumview/internal/viewer"
)

// waitTimeoutMs bounds how long the event pump blocks so ctx is noticed.
const waitTimeoutMs = 250

// Run opens a window showing every view of v and runs until the window closes,
// escape or q is pressed, or ctx ends.
//
// A loop goroutine requests a frame each interval; the calling goroutine
// pumps events, draws and presents. The loop pauses while the window is
// hidden and when space is pressed; the title shows a user pause.
// ctrl+s writes a snapshot, ctrl+shift+s asks where to save a montage.
func Run(ctx context.Context, v *viewer.Viewer) error {
	log := logger.Named("desktop")
	cfg := v.Config()
	views := v.Views()

	for i, img := range v.Images() {
		if img == nil {
			return fmt.Errorf("viewport %d has no raster to present", i)
		}
	}

	sizes := make([][2]int, len(views))
	for i := range views {
		w, h := cfg.ViewportSize(i)
		sizes[i] = [2]int{w, h}
	}
	layout := window.Row(sizes, cfg.Window.Margin)
	width, height := layout.Bounds(cfg.Window.Margin)

	win, err := window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      width,
		Height:     height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()
	win.SetLayout(layout)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lp := loop.New(cfg.Render.Interval)
	loopErr := make(chan error, 1)
	go func() {
		loopErr <- lp.Run(ctx, win.RequestFrame)
	}()

	saveAs := make(chan string, 1)
	frames := make([]*image.RGBA, len(views))
	paused := false

	log.Info("starting render loop", zap.Duration("interval", lp.Interval()))

	for {
		select {
		case <-ctx.Done():
			return <-loopErr
		case err := <-loopErr:
			return err
		case path := <-saveAs:
			if err := v.SaveMontage(path); err != nil {
				log.Error("save failed", zap.Error(err))
			}
		default:
		}

		for _, e := range win.WaitEvents(waitTimeoutMs) {
			switch e.Type {
			case input.EventQuit:
				cancel()
			case input.EventHidden:
				lp.Pause()
			case input.EventShown:
				if !paused {
					lp.Resume()
				}
			case input.EventFrame:
				v.RenderFrame()
				for i, img := range v.Images() {
					frames[i] = img
				}
				if err := win.Present(frames); err != nil {
					return fmt.Errorf("render error: %w", err)
				}
			case input.EventKeyDown:
				if e.Key == "space" {
					paused = !paused
					if paused {
						lp.Pause()
					} else {
						lp.Resume()
					}
					win.SetTitle(title(cfg.Window.Title, paused))
					continue
				}
				if handleKey(v, log, e, cancel, saveAs) {
					continue
				}
				v.Handle(e)
			default:
				v.Handle(e)
			}
		}
	}
}

func title(base string, paused bool) string {
	if paused {
		return base + " (paused)"
	}
	return base
}

// handleKey runs window-level shortcuts and reports whether e was consumed.
func handleKey(v *viewer.Viewer, log *zap.Logger, e input.Event, quit func(), saveAs chan<- string) bool {
	switch {
	case e.Key == "escape" || e.Key == "q":
		quit()
	case e.Key == "s" && e.Mods.Ctrl && e.Mods.Shift:
		go askSavePath(saveAs, log)
	case e.Key == "s" && e.Mods.Ctrl:
		if _, err := v.Snapshot(); err != nil {
			log.Error("snapshot failed", zap.Error(err))
		}
	default:
		return false
	}
	return true
}

// askSavePath shows a native save dialog and queues the chosen path.
func askSavePath(out chan<- string, log *zap.Logger) {
	filename, err := dialog.File().
		Filter("PNG image", "png").
		Filter("BMP image", "bmp").
		Title("Save views").
		Save()
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			log.Error("file dialog failed", zap.Error(err))
		}
		return
	}

	select {
	case out <- filename:
	default:
		log.Warn("save already pending, dropping", zap.String("path", filename))
	}
}
