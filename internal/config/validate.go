package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/frustumview/internal/engine/camera"
	"github.com/Faultbox/frustumview/internal/engine/canvas"
	"github.com/Faultbox/frustumview/internal/engine/debug"
	"github.com/Faultbox/frustumview/internal/logger"
	"github.com/Faultbox/frustumview/pkg/math"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// basisEpsilon is the smallest |dir x up| of unit vectors that still yields a
// camera basis.
const basisEpsilon = 1e-9

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate reports every problem found, combined into one error.
func (c *Config) Validate() error {
	var err error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		err = multierr.Append(err, invalid("window size %dx%d", c.Window.Width, c.Window.Height))
	}
	if _, cerr := canvas.ParseColor(c.Window.Background); cerr != nil {
		err = multierr.Append(err, invalid("window.background: %v", cerr))
	}

	if c.Render.Interval <= 0 {
		err = multierr.Append(err, invalid("render.interval must be positive, got %v", c.Render.Interval))
	}
	switch c.Render.Fill {
	case FillAsConfigured, FillSolid, FillWireframe:
	default:
		err = multierr.Append(err, invalid("render.fill %q", c.Render.Fill))
	}
	if c.Render.ShowFrustums {
		if _, cerr := canvas.ParseColor(c.Render.FrustumColor); cerr != nil {
			err = multierr.Append(err, invalid("render.frustum_color: %v", cerr))
		}
	}

	if c.Interaction.PanScale <= 0 || c.Interaction.ZoomScale <= 0 || c.Interaction.TrackballDepth <= 0 {
		err = multierr.Append(err, invalid("interaction scales must be positive"))
	}

	if len(c.Viewports) == 0 {
		err = multierr.Append(err, invalid("no viewports"))
	}
	interactive := 0
	for i, v := range c.Viewports {
		if v.Interactive {
			interactive++
		}
		if v.Width < 0 || v.Height < 0 {
			err = multierr.Append(err, invalid("viewport %d (%s): negative size", i, v.Title))
		}
		err = multierr.Append(err, v.Camera.validate(fmt.Sprintf("viewport %d (%s)", i, v.Title)))
	}
	if interactive > 1 {
		err = multierr.Append(err, invalid("%d interactive viewports, at most one allowed", interactive))
	}

	for i, o := range c.Scene.Objects {
		if o.Type != ObjectCube {
			err = multierr.Append(err, invalid("object %d: unknown type %q", i, o.Type))
		}
		if o.Edge <= 0 {
			err = multierr.Append(err, invalid("object %d: edge must be positive, got %v", i, o.Edge))
		}
		if _, cerr := canvas.ParseColor(o.Color); cerr != nil {
			err = multierr.Append(err, invalid("object %d: %v", i, cerr))
		}
	}

	if _, serr := debug.NewScreenshotCapture(c.Output.Dir, c.Output.Prefix, c.Output.Format); serr != nil {
		err = multierr.Append(err, invalid("output: %v", serr))
	}
	if _, lerr := logger.ParseLevel(c.Logging.Level); lerr != nil {
		err = multierr.Append(err, invalid("logging: %v", lerr))
	}

	return err
}

func (cc CameraConfig) validate(where string) error {
	var err error

	mode, perr := camera.ParseProjection(cc.Projection)
	if perr != nil {
		err = multierr.Append(err, invalid("%s: %v", where, perr))
	}
	if cc.Near >= 0 || cc.Far >= cc.Near {
		err = multierr.Append(err, invalid("%s: need far < near < 0, got near %v far %v", where, cc.Near, cc.Far))
	}
	if cc.FovX <= 0 || cc.FovX >= 180 {
		err = multierr.Append(err, invalid("%s: fov_x %v out of (0, 180)", where, cc.FovX))
	}
	if cc.Aspect <= 0 {
		err = multierr.Append(err, invalid("%s: aspect must be positive, got %v", where, cc.Aspect))
	} else if fovY := cc.FovX / cc.Aspect; cc.FovX > 0 && (fovY <= 0 || fovY >= 180) {
		err = multierr.Append(err, invalid("%s: fov_x / aspect = %v out of (0, 180)", where, fovY))
	}

	dir := math.V3(cc.Center[0]-cc.Eye[0], cc.Center[1]-cc.Eye[1], cc.Center[2]-cc.Eye[2])
	up := math.V3(cc.Up[0], cc.Up[1], cc.Up[2])
	switch {
	case dir.Norm() == 0:
		err = multierr.Append(err, invalid("%s: eye and center coincide", where))
	case up.Norm() == 0:
		err = multierr.Append(err, invalid("%s: up must be non-zero", where))
	case dir.Normalize().Cross(up.Normalize()).Norm() < basisEpsilon:
		err = multierr.Append(err, invalid("%s: up is parallel to the view direction", where))
	}
	if perr == nil && mode == camera.Parallel && cc.Eye[2] == 0 {
		err = multierr.Append(err, invalid("%s: parallel projection needs eye z != 0", where))
	}
	return err
}
