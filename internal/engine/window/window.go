// Package window shows viewport canvases in an SDL2 window and translates SDL
// events into input events.
package window

import (
	"fmt"
	"image"
	"runtime"
	"strings"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/frustumview/internal/engine/input"
	"github.com/Faultbox/frustumview/internal/logger"
)

func init() {
	// SDL video calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window wraps an SDL2 window and its 2D renderer.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	renderer  *sdl.Renderer
	textures  []*sdl.Texture
	layout    Layout
	frame     uint32
	log       *zap.Logger
}

// New creates the window.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
		log:    logger.Named("window"),
	}

	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	flags := uint32(sdl.WINDOW_SHOWN)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	rflags := uint32(sdl.RENDERER_ACCELERATED)
	if cfg.VSync {
		rflags |= sdl.RENDERER_PRESENTVSYNC
	}
	w.renderer, err = sdl.CreateRenderer(w.sdlWindow, -1, rflags)
	if err != nil {
		w.log.Warn("accelerated renderer unavailable, using software", zap.Error(err))
		w.renderer, err = sdl.CreateRenderer(w.sdlWindow, -1, sdl.RENDERER_SOFTWARE)
	}
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateRenderer failed: %w", err)
	}

	w.frame = sdl.RegisterEvents(1)

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Info("closing window")

	for _, t := range w.textures {
		_ = t.Destroy()
	}
	w.textures = nil
	if w.renderer != nil {
		_ = w.renderer.Destroy()
	}
	if w.sdlWindow != nil {
		_ = w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// SetLayout places the viewports used by Present and WaitEvents.
func (w *Window) SetLayout(l Layout) {
	w.layout = l
}

// Layout returns the current viewport placement.
func (w *Window) Layout() Layout {
	return w.layout
}

// Present copies one image per viewport into the window and shows it.
// frames[i] is drawn into w.Layout()[i].
func (w *Window) Present(frames []*image.RGBA) error {
	if len(frames) != len(w.layout) {
		return fmt.Errorf("present: %d frames for %d viewports", len(frames), len(w.layout))
	}

	if err := w.renderer.SetDrawColor(0x20, 0x20, 0x20, 0xff); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	if err := w.renderer.Clear(); err != nil {
		return fmt.Errorf("present: %w", err)
	}

	for i, img := range frames {
		tex, err := w.texture(i, img.Bounds().Dx(), img.Bounds().Dy())
		if err != nil {
			return err
		}
		if err := upload(tex, img); err != nil {
			return err
		}
		r := w.layout[i]
		dst := sdl.Rect{X: int32(r.X), Y: int32(r.Y), W: int32(r.W), H: int32(r.H)}
		if err := w.renderer.Copy(tex, nil, &dst); err != nil {
			return fmt.Errorf("present viewport %d: %w", i, err)
		}
	}

	w.renderer.Present()
	return nil
}

// texture returns a streaming texture of the given size for slot i.
func (w *Window) texture(i, width, height int) (*sdl.Texture, error) {
	for len(w.textures) <= i {
		w.textures = append(w.textures, nil)
	}
	if t := w.textures[i]; t != nil {
		_, _, tw, th, err := t.Query()
		if err == nil && int(tw) == width && int(th) == height {
			return t, nil
		}
		_ = t.Destroy()
	}

	// ABGR8888 is R, G, B, A in memory on little-endian hosts, as in image.RGBA.
	t, err := w.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888), sdl.TEXTUREACCESS_STREAMING, int32(width), int32(height))
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}
	w.textures[i] = t
	return t, nil
}

func upload(tex *sdl.Texture, img *image.RGBA) error {
	pixels, pitch, err := tex.Lock(nil)
	if err != nil {
		return fmt.Errorf("lock texture: %w", err)
	}
	defer tex.Unlock()

	rowSize := img.Bounds().Dx() * 4
	for y := 0; y < img.Bounds().Dy(); y++ {
		copy(pixels[y*pitch:y*pitch+rowSize], img.Pix[y*img.Stride:y*img.Stride+rowSize])
	}
	return nil
}

// RequestFrame queues an EventFrame. It is safe to call from any goroutine.
func (w *Window) RequestFrame() error {
	if _, err := sdl.PushEvent(&sdl.UserEvent{Type: w.frame}); err != nil {
		return fmt.Errorf("request frame: %w", err)
	}
	return nil
}

// WaitEvents blocks up to timeoutMs for an event, then drains the queue.
// Pointer coordinates are made local to the viewport under the pointer.
func (w *Window) WaitEvents(timeoutMs int) []input.Event {
	event := sdl.WaitEventTimeout(timeoutMs)
	if event == nil {
		return nil
	}
	events := w.translate(nil, event)
	for event = sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		events = w.translate(events, event)
	}
	return events
}

func (w *Window) translate(events []input.Event, event sdl.Event) []input.Event {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		events = append(events, input.Event{Type: input.EventQuit})

	case *sdl.UserEvent:
		if e.Type == w.frame {
			events = append(events, input.Event{Type: input.EventFrame})
		}

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_MINIMIZED, sdl.WINDOWEVENT_HIDDEN:
			events = append(events, input.Event{Type: input.EventHidden})
		case sdl.WINDOWEVENT_RESTORED, sdl.WINDOWEVENT_SHOWN:
			events = append(events, input.Event{Type: input.EventShown})
		}

	case *sdl.KeyboardEvent:
		ev := input.Event{
			Type: input.EventKeyUp,
			Key:  strings.ToLower(sdl.GetKeyName(e.Keysym.Sym)),
			Mods: modifiers(uint32(e.Keysym.Mod)),
		}
		if e.Type == sdl.KEYDOWN {
			ev.Type = input.EventKeyDown
		}
		events = append(events, ev)

	case *sdl.MouseMotionEvent:
		events = append(events, w.pointer(input.EventPointerMove, e.X, e.Y))

	case *sdl.MouseButtonEvent:
		typ := input.EventPointerUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			typ = input.EventPointerDown
		}
		events = append(events, w.pointer(typ, e.X, e.Y))
	}
	return events
}

func (w *Window) pointer(typ input.EventType, x, y int32) input.Event {
	idx, lx, ly := w.layout.Locate(float64(x), float64(y))
	return input.Event{
		Type:     typ,
		X:        lx,
		Y:        ly,
		Viewport: idx,
		Mods:     modifiers(uint32(sdl.GetModState())),
	}
}

func modifiers(state uint32) input.Modifiers {
	return input.Modifiers{
		Shift: state&uint32(sdl.KMOD_SHIFT) != 0,
		Alt:   state&uint32(sdl.KMOD_ALT) != 0,
		Ctrl:  state&uint32(sdl.KMOD_CTRL) != 0,
	}
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
