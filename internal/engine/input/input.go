// Package input turns pointer and key events into camera motion.
//
// Events are toolkit-neutral: the SDL window and the terminal viewer both
// translate their native events into Event values and feed them to a Session.
package input

import (
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/frustumview/internal/engine/camera"
	"github.com/Faultbox/frustumview/internal/logger"
	"github.com/Faultbox/frustumview/pkg/math"
)

// EventType identifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventPointerDown
	EventPointerUp
	EventPointerMove
	EventKeyDown
	EventKeyUp
	// EventHidden and EventShown report visibility changes of the output.
	EventHidden
	EventShown
	// EventFrame asks the receiver to draw the next frame.
	EventFrame
)

// Modifiers is the state of the modifier keys.
type Modifiers struct {
	Shift, Alt, Ctrl bool
}

// Event is a processed input event.
type Event struct {
	Type EventType
	// X and Y are pointer coordinates local to Viewport, +y down.
	X, Y     float64
	Viewport int
	// Key is a lower-case key name such as "r", "left" or "escape".
	Key  string
	Mods Modifiers
}

// Mode is what a drag does to the camera.
type Mode int

const (
	ModeTranslate Mode = iota
	ModeRotate
	ModeZoom
)

func (m Mode) String() string {
	switch m {
	case ModeTranslate:
		return "translate"
	case ModeRotate:
		return "rotate"
	case ModeZoom:
		return "zoom"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Mode selects the drag mode: shift or ctrl without alt rotates, alt without
// shift zooms, anything else translates.
func (m Modifiers) Mode() Mode {
	switch {
	case (m.Shift || m.Ctrl) && !m.Alt:
		return ModeRotate
	case !m.Shift && m.Alt:
		return ModeZoom
	default:
		return ModeTranslate
	}
}

// Scales tune how far the camera moves per pixel of drag.
type Scales struct {
	// Pan is the number of pixels per world unit of translation.
	Pan float64
	// Zoom is the number of pixels per world unit of dolly.
	Zoom float64
	// TrackballDepth multiplies size/eye.z to get the trackball sphere depth.
	TrackballDepth float64
}

// DefaultScales returns the stock drag scales.
func DefaultScales() Scales {
	return Scales{Pan: 100, Zoom: 100, TrackballDepth: 3}
}

// minArc is the smallest trackball chord that produces a rotation.
const minArc = 0.001

// Session holds the interaction state for one interactive camera: the drag
// origin, the modifier keys and the size of the viewport being dragged in.
type Session struct {
	cam           *camera.Camera
	width, height float64
	scales        Scales

	mods     Modifiers
	dragging bool
	// last drag position, centred with +y up.
	x0, y0 float64

	log *zap.Logger
}

// NewSession creates a session driving cam in a width x height viewport.
func NewSession(cam *camera.Camera, width, height float64, scales Scales) *Session {
	return &Session{
		cam:    cam,
		width:  width,
		height: height,
		scales: scales,
		log:    logger.Named("input"),
	}
}

// Camera returns the driven camera.
func (s *Session) Camera() *camera.Camera { return s.cam }

// Modifiers returns the current modifier state.
func (s *Session) Modifiers() Modifiers { return s.mods }

// Mode returns the drag mode for the current modifiers.
func (s *Session) Mode() Mode { return s.mods.Mode() }

// Dragging reports whether a pointer button is held.
func (s *Session) Dragging() bool { return s.dragging }

// SetSize updates the viewport size.
func (s *Session) SetSize(width, height float64) {
	s.width, s.height = width, height
}

// Handle applies one event. It reports whether the camera changed.
func (s *Session) Handle(e Event) bool {
	switch e.Type {
	case EventPointerDown:
		s.mods = e.Mods
		s.PointerDown(e.X, e.Y)
	case EventPointerUp:
		s.mods = e.Mods
		s.PointerUp()
	case EventPointerMove:
		s.mods = e.Mods
		return s.PointerMove(e.X, e.Y)
	case EventKeyDown, EventKeyUp:
		s.mods = e.Mods
		s.trackModifier(e.Key, e.Type == EventKeyDown)
	}
	return false
}

// trackModifier follows modifier keys reported as keys rather than as flags.
func (s *Session) trackModifier(key string, down bool) {
	switch key {
	case "shift", "left shift", "right shift":
		s.mods.Shift = down
	case "alt", "left alt", "right alt":
		s.mods.Alt = down
	case "ctrl", "control", "left ctrl", "right ctrl":
		s.mods.Ctrl = down
	}
}

// centred converts viewport pixels to coordinates around the viewport centre
// with +y up.
func (s *Session) centred(x, y float64) (float64, float64) {
	return x - s.width/2, s.height/2 - y
}

// PointerDown starts a drag at viewport pixel (x, y).
func (s *Session) PointerDown(x, y float64) {
	s.dragging = true
	s.x0, s.y0 = s.centred(x, y)
}

// PointerUp ends the drag.
func (s *Session) PointerUp() {
	s.dragging = false
	s.x0, s.y0 = 0, 0
}

// PointerMove continues a drag. Each move applies the delta since the previous
// one. It reports whether the camera changed.
func (s *Session) PointerMove(x, y float64) bool {
	if !s.dragging {
		return false
	}

	x1, y1 := s.centred(x, y)
	changed := s.Drag(s.mods.Mode(), s.x0, s.y0, x1, y1)
	s.x0, s.y0 = x1, y1
	return changed
}

// Drag applies a drag from (x0, y0) to (x1, y1) in centred coordinates.
func (s *Session) Drag(mode Mode, x0, y0, x1, y1 float64) bool {
	switch mode {
	case ModeRotate:
		return s.Rotate(x0, y0, x1, y1)
	case ModeZoom:
		s.Zoom(y1 - y0)
		return true
	default:
		s.Translate(x1-x0, y1-y0)
		return true
	}
}

// Rotate applies a trackball rotation for a drag between two centred points.
// The sphere depth is derived from eye.z, which is only a good focal distance
// for cameras looking roughly along the z axis. Nothing happens when eye.z is
// zero or the drag is too short to define an axis.
func (s *Session) Rotate(x0, y0, x1, y1 float64) bool {
	camZ := s.cam.Eye().Z
	if camZ == 0 {
		s.log.Debug("trackball skipped: eye on z = 0 plane")
		return false
	}

	v0 := math.V3(x0, y0, s.width/camZ*s.scales.TrackballDepth).Normalize()
	v1 := math.V3(x1, y1, s.height/camZ*s.scales.TrackballDepth).Normalize()
	if v0.Sub(v1).Norm() <= minArc {
		return false
	}

	axis := v0.Cross(v1)
	if axis.Norm() == 0 {
		// Antiparallel vectors.
		return false
	}

	angle := gomath.Acos(gomath.Max(-1, gomath.Min(1, v0.Dot(v1))))
	s.cam.RotateBy(math.RotateAxis(axis.Normalize(), angle))
	return true
}

// Translate pans the camera against the drag direction.
func (s *Session) Translate(dx, dy float64) {
	s.cam.TranslateVec(math.V3(dx/s.scales.Pan, dy/s.scales.Pan, 0).Neg())
}

// Zoom dollies the camera along -z by dy pixels.
func (s *Session) Zoom(dy float64) {
	s.cam.TranslateVec(math.V3(0, 0, -dy/s.scales.Zoom))
}
