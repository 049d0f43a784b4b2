package viewer

import (
	"fmt"

	"github.com/Faultbox/frustumview/internal/config"
	"github.com/Faultbox/frustumview/internal/engine/camera"
	"github.com/Faultbox/frustumview/internal/engine/canvas"
	"github.com/Faultbox/frustumview/internal/engine/scene"
	"github.com/Faultbox/frustumview/pkg/math"
)

func point(v config.Vec3) math.Point3D    { return math.Pt(v[0], v[1], v[2]) }
func vector(v config.Vec3) math.Vector3D { return math.V3(v[0], v[1], v[2]) }

// BuildCamera creates a camera from its configuration.
func BuildCamera(cc config.CameraConfig) (*camera.Camera, error) {
	mode, err := camera.ParseProjection(cc.Projection)
	if err != nil {
		return nil, fmt.Errorf("build camera: %w", err)
	}
	cam, err := camera.New(point(cc.Eye), point(cc.Center), vector(cc.Up), mode)
	if err != nil {
		return nil, fmt.Errorf("build camera: %w", err)
	}
	cam.SetNearFar(cc.Near, cc.Far)
	cam.SetFovXWithAspect(cc.FovX, cc.Aspect)
	return cam, nil
}

// BuildScene creates the configured objects in paint order, applying the
// render fill override and cube line width.
func BuildScene(cfg *config.Config) (*scene.Scene, error) {
	s := scene.New()
	for i, o := range cfg.Scene.Objects {
		if o.Type != config.ObjectCube {
			return nil, fmt.Errorf("object %d: unknown type %q", i, o.Type)
		}
		c, err := canvas.ParseColor(o.Color)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}

		fill := o.Fill
		switch cfg.Render.Fill {
		case config.FillSolid:
			fill = true
		case config.FillWireframe:
			fill = false
		}

		cube := scene.NewCube(point(o.Position), vector(o.Rotation), o.Edge, c, fill)
		cube.SetLineWidth(cfg.Render.LineWidth)
		if o.Name != "" {
			cube.SetName(o.Name)
		}
		s.Add(cube)
	}
	return s, nil
}
