// Package viewer draws a scene through several cameras and lets one of them be
// steered with pointer input.
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/frustumview/internal/config"
	"github.com/Faultbox/frustumview/internal/engine/camera"
	"github.com/Faultbox/frustumview/internal/engine/canvas"
	"github.com/Faultbox/frustumview/internal/engine/debug"
	"github.com/Faultbox/frustumview/internal/engine/input"
	"github.com/Faultbox/frustumview/internal/engine/renderer"
	"github.com/Faultbox/frustumview/internal/engine/scene"
	"github.com/Faultbox/frustumview/internal/logger"
	"github.com/Faultbox/frustumview/pkg/math"
)

// Highlight outlines the picked object.
var Highlight = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// highlightPadding keeps the outline off the object's own edges.
const highlightPadding = 0.05

// SurfaceFactory creates the drawing surface of viewport i.
type SurfaceFactory func(i, width, height int) renderer.Surface

// View is one camera and the renderer drawing through it.
type View struct {
	Title       string
	Camera      *camera.Camera
	Renderer    *renderer.Renderer
	Interactive bool

	home config.CameraConfig
}

// Viewer owns the scene and every view of it.
type Viewer struct {
	cfg          *config.Config
	scene        *scene.Scene
	views        []*View
	active       int
	session      *input.Session
	selected     scene.WorldObject
	frustumColor color.Color
	capture      *debug.ScreenshotCapture
	frames       uint64
	log          *zap.Logger
}

// CanvasSurfaces returns a factory of in-memory raster canvases filled with bg.
func CanvasSurfaces(bg color.Color) SurfaceFactory {
	return func(_, width, height int) renderer.Surface {
		return canvas.New(width, height, bg)
	}
}

// New builds the scene, cameras and renderers described by cfg. A nil
// newSurface draws into raster canvases with the configured background.
func New(cfg *config.Config, newSurface SurfaceFactory) (*Viewer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if newSurface == nil {
		bg, err := canvas.ParseColor(cfg.Window.Background)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		newSurface = CanvasSurfaces(bg)
	}

	v := &Viewer{
		cfg:          cfg,
		active:       cfg.Interactive(),
		frustumColor: canvas.MustParseColor(cfg.Render.FrustumColor),
		log:          logger.Named("viewer"),
	}

	var err error
	if v.scene, err = BuildScene(cfg); err != nil {
		return nil, err
	}

	capture, err := debug.NewScreenshotCapture(cfg.Output.Dir, cfg.Output.Prefix, cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	v.capture = capture

	opts := renderer.Options{
		OffsetX:     cfg.Render.OffsetX,
		OffsetY:     cfg.Render.OffsetY,
		PointRadius: cfg.Render.PointRadius,
	}
	for i, vc := range cfg.Viewports {
		cam, err := BuildCamera(vc.Camera)
		if err != nil {
			return nil, fmt.Errorf("viewport %d (%s): %w", i, vc.Title, err)
		}
		w, h := cfg.ViewportSize(i)
		v.views = append(v.views, &View{
			Title:       vc.Title,
			Camera:      cam,
			Renderer:    renderer.New(vc.Title, newSurface(i, w, h), opts),
			Interactive: vc.Interactive,
			home:        vc.Camera,
		})
	}

	if v.active >= 0 {
		w, h := cfg.ViewportSize(v.active)
		scales := input.Scales{
			Pan:            cfg.Interaction.PanScale,
			Zoom:           cfg.Interaction.ZoomScale,
			TrackballDepth: cfg.Interaction.TrackballDepth,
		}
		v.session = input.NewSession(v.views[v.active].Camera, float64(w), float64(h), scales)
	}

	v.log.Info("viewer ready",
		zap.Int("viewports", len(v.views)),
		zap.Int("objects", v.scene.Len()),
		zap.Int("interactive", v.active),
	)
	return v, nil
}

// Config returns the configuration the viewer was built from.
func (v *Viewer) Config() *config.Config { return v.cfg }

// Scene returns the drawn scene.
func (v *Viewer) Scene() *scene.Scene { return v.scene }

// Views returns the views in configuration order.
func (v *Viewer) Views() []*View { return v.views }

// Session returns the input session of the interactive view, or nil.
func (v *Viewer) Session() *input.Session { return v.session }

// Active returns the index of the interactive view, or -1.
func (v *Viewer) Active() int { return v.active }

// Frames returns the number of frames rendered.
func (v *Viewer) Frames() uint64 { return v.frames }

// Selected returns the picked object, or nil.
func (v *Viewer) Selected() scene.WorldObject { return v.selected }

// RenderFrame redraws every view: axis gizmos at the origin, the scene, the
// interactive camera's frustum in the other views, then the selection outline.
func (v *Viewer) RenderFrame() {
	for i, view := range v.views {
		r, cam := view.Renderer, view.Camera

		r.Clear()
		if v.cfg.Render.ShowGizmos {
			r.DrawGizmos(cam, math.Origin())
		}
		r.DrawScene(cam, v.scene)
		if v.cfg.Render.ShowFrustums && v.active >= 0 && i != v.active {
			r.DrawFrustum(cam, v.views[v.active].Camera, v.frustumColor)
		}
		if b, ok := v.selected.(scene.Bounded); ok {
			debug.DrawBounds(r, cam, b.Bounds(), Highlight, highlightPadding)
		}
	}
	v.frames++
}

// Handle applies an input event. Pointer events on the interactive view steer
// its camera; a press on any other view picks the object under the pointer.
// A drag ends on release wherever the pointer is.
// "r" resets the interactive camera. It reports whether a redraw is needed.
func (v *Viewer) Handle(e input.Event) bool {
	switch e.Type {
	case input.EventPointerDown, input.EventPointerUp, input.EventPointerMove:
		// A release anywhere ends a drag begun on the interactive view.
		if e.Type == input.EventPointerUp && v.session != nil && v.session.Dragging() {
			return v.session.Handle(e)
		}
		if e.Viewport < 0 || e.Viewport >= len(v.views) {
			return false
		}
		if e.Viewport == v.active {
			return v.session.Handle(e)
		}
		if e.Type == input.EventPointerDown {
			v.Pick(e.Viewport, e.X, e.Y)
			return true
		}
	case input.EventKeyDown:
		if e.Key == "r" && !e.Mods.Ctrl {
			return v.Reset()
		}
		if v.session != nil {
			v.session.Handle(e)
		}
	case input.EventKeyUp:
		if v.session != nil {
			v.session.Handle(e)
		}
	}
	return false
}

// Reset returns the interactive camera to its configured position and drops
// its trackball rotation.
func (v *Viewer) Reset() bool {
	if v.active < 0 {
		return false
	}
	view := v.views[v.active]
	view.Camera.ResetRotation()
	view.Camera.SetPosition(point(view.home.Eye))
	v.log.Debug("camera reset", zap.String("viewport", view.Title))
	return true
}

// Pick selects the nearest object under pixel (x, y) of view i. A miss clears
// the selection. Views that cannot be unprojected select nothing.
func (v *Viewer) Pick(i int, x, y float64) (scene.WorldObject, bool) {
	view := v.views[i]
	ray, ok := view.Renderer.ScreenRay(view.Camera, x, y)
	if !ok {
		v.log.Debug("pick unsupported", zap.String("viewport", view.Title), zap.Stringer("projection", view.Camera.Mode()))
		return nil, false
	}

	obj, dist, hit := v.scene.Pick(ray)
	if !hit {
		v.selected = nil
		return nil, false
	}
	v.selected = obj
	v.log.Info("picked", zap.String("object", obj.Name()), zap.Float64("distance", dist))
	return obj, true
}

// ClearSelection drops the picked object.
func (v *Viewer) ClearSelection() { v.selected = nil }

// Images returns the raster of every view. Views drawn on surfaces without a
// raster yield nil.
func (v *Viewer) Images() []*image.RGBA {
	imgs := make([]*image.RGBA, len(v.views))
	for i, view := range v.views {
		if s, ok := view.Renderer.Surface().(interface{ Image() *image.RGBA }); ok {
			imgs[i] = s.Image()
		}
	}
	return imgs
}

// Montage places every rasterized view side by side, separated by the window
// margin.
func (v *Viewer) Montage() *image.RGBA {
	var imgs []*image.RGBA
	for _, img := range v.Images() {
		if img != nil {
			imgs = append(imgs, img)
		}
	}
	return debug.Montage(imgs, v.cfg.Window.Margin)
}

// Snapshot writes one image per view plus a montage into the output
// directory and returns the written paths.
func (v *Viewer) Snapshot() ([]string, error) {
	var paths []string
	for i, img := range v.Images() {
		if img == nil {
			return paths, fmt.Errorf("snapshot: viewport %d has no raster", i)
		}
		path, err := v.capture.Capture(v.views[i].Title, img)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	path, err := v.capture.Capture("all", v.Montage())
	if err != nil {
		return paths, err
	}
	paths = append(paths, path)

	v.log.Info("snapshot saved", zap.Strings("files", paths), zap.String("dir", filepath.Clean(v.capture.OutputDir())))
	return paths, nil
}

// SaveMontage writes the montage to path. The format follows the extension.
func (v *Viewer) SaveMontage(path string) error {
	if err := debug.WriteImage(path, v.Montage()); err != nil {
		return fmt.Errorf("save montage: %w", err)
	}
	v.log.Info("montage saved", zap.String("path", path))
	return nil
}
