// Package config handles viewer configuration loading and management.
package config

import "time"

// Config holds all viewer settings.
type Config struct {
	Window      WindowConfig      `yaml:"window"`
	Render      RenderConfig      `yaml:"render"`
	Interaction InteractionConfig `yaml:"interaction"`
	Viewports   []ViewportConfig  `yaml:"viewports"`
	Scene       SceneConfig       `yaml:"scene"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// WindowConfig holds display settings shared by all viewports.
type WindowConfig struct {
	Title string `yaml:"title"`
	// Width and Height are the default viewport size in pixels.
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
	Margin     int    `yaml:"margin"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// Fill overrides how cubes are drawn.
const (
	FillAsConfigured = ""
	FillSolid        = "solid"
	FillWireframe    = "wireframe"
)

// RenderConfig holds per-frame drawing settings.
type RenderConfig struct {
	Interval     time.Duration `yaml:"interval"`
	LineWidth    float64       `yaml:"line_width"`
	PointRadius  float64       `yaml:"point_radius"`
	OffsetX      float64       `yaml:"offset_x"`
	OffsetY      float64       `yaml:"offset_y"`
	Fill         string        `yaml:"fill"`
	ShowGizmos   bool          `yaml:"show_gizmos"`
	ShowFrustums bool          `yaml:"show_frustums"`
	FrustumColor string        `yaml:"frustum_color"`
}

// InteractionConfig holds drag sensitivity.
type InteractionConfig struct {
	PanScale       float64 `yaml:"pan_scale"`
	ZoomScale      float64 `yaml:"zoom_scale"`
	TrackballDepth float64 `yaml:"trackball_depth"`
}

// Vec3 is an x, y, z triple.
type Vec3 [3]float64

// CameraConfig describes one camera.
type CameraConfig struct {
	Eye        Vec3    `yaml:"eye,flow"`
	Center     Vec3    `yaml:"center,flow"`
	Up         Vec3    `yaml:"up,flow"`
	Projection string  `yaml:"projection"`
	Near       float64 `yaml:"near"`
	Far        float64 `yaml:"far"`
	FovX       float64 `yaml:"fov_x"`
	Aspect     float64 `yaml:"aspect"`
}

// ViewportConfig describes one view of the scene.
type ViewportConfig struct {
	Title string `yaml:"title"`
	// Interactive viewports receive pointer input. At most one is allowed.
	Interactive bool `yaml:"interactive"`
	// Width and Height override the window defaults when positive.
	Width  int          `yaml:"width,omitempty"`
	Height int          `yaml:"height,omitempty"`
	Camera CameraConfig `yaml:"camera"`
}

// Object types.
const ObjectCube = "cube"

// ObjectConfig describes one scene object.
type ObjectConfig struct {
	Type     string  `yaml:"type"`
	Name     string  `yaml:"name,omitempty"`
	Position Vec3    `yaml:"position,flow"`
	Rotation Vec3    `yaml:"rotation,flow"`
	Edge     float64 `yaml:"edge"`
	Color    string  `yaml:"color"`
	Fill     bool    `yaml:"fill"`
}

// SceneConfig lists the objects in paint order.
type SceneConfig struct {
	Objects []ObjectConfig `yaml:"objects"`
}

// OutputConfig holds screenshot settings.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Format string `yaml:"format"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ViewportSize returns the effective pixel size of viewport i.
func (c *Config) ViewportSize(i int) (int, int) {
	v := c.Viewports[i]
	w, h := c.Window.Width, c.Window.Height
	if v.Width > 0 {
		w = v.Width
	}
	if v.Height > 0 {
		h = v.Height
	}
	return w, h
}

// Interactive returns the index of the interactive viewport, or -1.
func (c *Config) Interactive() int {
	for i, v := range c.Viewports {
		if v.Interactive {
			return i
		}
	}
	return -1
}

func defaultCamera(eye, up Vec3) CameraConfig {
	return CameraConfig{
		Eye:        eye,
		Center:     Vec3{0, 0, 0},
		Up:         up,
		Projection: "perspective",
		Near:       -1,
		Far:        -10,
		FovX:       90,
		Aspect:     1,
	}
}

func cube(pos, rot Vec3, edge float64, color string) ObjectConfig {
	return ObjectConfig{Type: ObjectCube, Position: pos, Rotation: rot, Edge: edge, Color: color, Fill: true}
}

// Default returns a Config with three orthogonal views of six cubes.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "frustumview",
			Width:      500,
			Height:     500,
			Background: "white",
			Margin:     10,
			Fullscreen: false,
			VSync:      true,
		},
		Render: RenderConfig{
			Interval:     100 * time.Millisecond,
			LineWidth:    3,
			PointRadius:  1,
			Fill:         FillAsConfigured,
			ShowGizmos:   true,
			ShowFrustums: true,
			FrustumColor: "orange",
		},
		Interaction: InteractionConfig{
			PanScale:       100,
			ZoomScale:      100,
			TrackballDepth: 3,
		},
		Viewports: []ViewportConfig{
			{Title: "Front", Interactive: true, Camera: defaultCamera(Vec3{0, 0, 4}, Vec3{0, 1, 0})},
			{Title: "Top", Camera: defaultCamera(Vec3{0, 4, 0}, Vec3{0, 0, -1})},
			{Title: "Right", Camera: defaultCamera(Vec3{4, 0, 0}, Vec3{0, 1, 0})},
		},
		Scene: SceneConfig{
			Objects: []ObjectConfig{
				cube(Vec3{1, 0, -2}, Vec3{}, 1, "green"),
				cube(Vec3{-1, 0, -2}, Vec3{}, 1, "blue"),
				cube(Vec3{1, -1, -1}, Vec3{}, 2, "black"),
				cube(Vec3{0.5, -0.5, -0.5}, Vec3{}, 1, "red"),
				cube(Vec3{0, 3, 0}, Vec3{}, 2, "red"),
				cube(Vec3{0, 1, 0}, Vec3{45, 0, 0}, 1, "red"),
			},
		},
		Output: OutputConfig{
			Dir:    "screenshots",
			Prefix: "frustumview",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
