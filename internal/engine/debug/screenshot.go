package debug

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
)

// Supported screenshot formats.
const (
	FormatPNG = "png"
	FormatBMP = "bmp"
)

// ScreenshotCapture writes viewport images to timestamped files.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	format    string
	now       func() time.Time
}

// NewScreenshotCapture creates a capture handler. An empty format means PNG.
func NewScreenshotCapture(outputDir, prefix, format string) (*ScreenshotCapture, error) {
	if format == "" {
		format = FormatPNG
	}
	if format != FormatPNG && format != FormatBMP {
		return nil, fmt.Errorf("screenshot: unsupported format %q", format)
	}
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    format,
		now:       time.Now,
	}, nil
}

// OutputDir returns the output directory.
func (sc *ScreenshotCapture) OutputDir() string {
	return sc.outputDir
}

// GenerateFilename returns prefix_name_timestamp.ext inside the output
// directory without saving anything. name is lower-cased; empty names are
// left out.
func (sc *ScreenshotCapture) GenerateFilename(name string) string {
	parts := []string{sc.prefix}
	if name != "" {
		parts = append(parts, strings.ToLower(strings.ReplaceAll(name, " ", "-")))
	}
	parts = append(parts, sc.now().Format("2006-01-02_15-04-05.000"))

	filename := strings.Join(parts, "_") + "." + sc.format
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}

// Capture saves img under a generated name and returns the path.
func (sc *ScreenshotCapture) Capture(name string, img image.Image) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.GenerateFilename(name)
	if err := WriteImage(filename, img); err != nil {
		return "", err
	}
	return filename, nil
}

// WriteImage encodes img by the extension of path: .bmp writes BMP, anything
// else PNG.
func WriteImage(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), "."+FormatBMP) {
		err = bmp.Encode(file, img)
	} else {
		err = png.Encode(file, img)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return file.Close()
}

// Montage places images left to right on one canvas, separated by gap pixels.
// The background is transparent.
func Montage(images []*image.RGBA, gap int) *image.RGBA {
	width, height := 0, 0
	for i, img := range images {
		if i > 0 {
			width += gap
		}
		width += img.Bounds().Dx()
		height = max(height, img.Bounds().Dy())
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	x := 0
	for _, img := range images {
		b := img.Bounds()
		draw.Draw(out, image.Rect(x, 0, x+b.Dx(), b.Dy()), img, b.Min, draw.Src)
		x += b.Dx() + gap
	}
	return out
}
