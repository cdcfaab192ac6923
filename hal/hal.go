package hal

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

// ErrExit is returned by an app step to end the host loop cleanly.
var ErrExit = errors.New("exit requested")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
)

// KeyEvent is a keyboard event. Text input arrives as press-only events with
// Code KeyUnknown and Rune set.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// TouchEvent is a touch (or primary mouse button) press or release at a
// framebuffer pixel.
type TouchEvent struct {
	ID    int
	X, Y  int
	Press bool
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Touch provides touch events.
type Touch interface {
	Events() <-chan TouchEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Touch() Touch
}

// Time is the host clock. In headless mode it is simulated and advances by
// exactly one tick period per step.
type Time interface {
	Now() time.Time
}

// HAL provides the only contact point between the app and the outside world.
type HAL interface {
	Logger() *zap.Logger
	Display() Display
	Input() Input
	Time() Time
}
