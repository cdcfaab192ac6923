package hal

import (
	"go.uber.org/zap"
)

// Config describes the host display.
type Config struct {
	Width  int
	Height int
	Scale  int // window pixels per framebuffer pixel
	Title  string

	Log *zap.Logger
}

type hostHAL struct {
	log   *zap.Logger
	fb    *hostFramebuffer
	kbd   *hostKeyboard
	touch *hostTouch
	t     *hostTime
}

// New returns a host HAL implementation.
func New(cfg Config) HAL {
	return newHost(cfg)
}

func newHost(cfg Config) *hostHAL {
	if cfg.Width <= 0 {
		cfg.Width = 320
	}
	if cfg.Height <= 0 {
		cfg.Height = 240
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &hostHAL{
		log:   log,
		fb:    newHostFramebuffer(cfg.Width, cfg.Height),
		kbd:   newHostKeyboard(),
		touch: newHostTouch(),
		t:     newHostTime(),
	}
}

func (h *hostHAL) Logger() *zap.Logger { return h.log }
func (h *hostHAL) Display() Display    { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input        { return hostInput{kbd: h.kbd, touch: h.touch} }
func (h *hostHAL) Time() Time          { return h.t }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd   *hostKeyboard
	touch *hostTouch
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Touch() Touch       { return in.touch }

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) emit(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

type hostTouch struct {
	ch chan TouchEvent
}

func newHostTouch() *hostTouch {
	return &hostTouch{ch: make(chan TouchEvent, 16)}
}

func (t *hostTouch) Events() <-chan TouchEvent { return t.ch }

func (t *hostTouch) emit(ev TouchEvent) {
	select {
	case t.ch <- ev:
	default:
	}
}
