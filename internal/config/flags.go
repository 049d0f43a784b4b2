package config

import (
	"errors"
	"time"

	"github.com/spf13/pflag"
)

// Flags holds command-line overrides.
type Flags struct {
	Config    string
	Debug     bool
	Width     int
	Height    int
	Interval  time.Duration
	Solid     bool
	Wireframe bool
}

// BindFlags registers the override flags on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.Width, "width", 0, "Viewport width")
	fs.IntVar(&f.Height, "height", 0, "Viewport height")
	fs.DurationVar(&f.Interval, "interval", 0, "Frame interval, e.g. 100ms")
	fs.BoolVar(&f.Solid, "solid", false, "Draw every cube filled")
	fs.BoolVar(&f.Wireframe, "wireframe", false, "Draw every cube as a wireframe")
	return f
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) error {
	if f.Solid && f.Wireframe {
		return errors.New("--solid and --wireframe are mutually exclusive")
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Width > 0 {
		cfg.Window.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Window.Height = f.Height
	}
	if f.Interval > 0 {
		cfg.Render.Interval = f.Interval
	}
	if f.Solid {
		cfg.Render.Fill = FillSolid
	}
	if f.Wireframe {
		cfg.Render.Fill = FillWireframe
	}
	return nil
}
