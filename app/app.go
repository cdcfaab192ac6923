// Package app wires the host HAL to the AR session and the boxes demo.
package app

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"geobox/argon/geo"
	"geobox/argon/session"
	"geobox/argon/tasks/boxes"
	"geobox/hal"
	"geobox/internal/buildinfo"
	"geobox/internal/config"
)

const (
	turnStep = 5 * math.Pi / 180
	walkStep = 5.0 // metres
)

type system struct {
	h    hal.HAL
	log  *zap.Logger
	sess *session.Session
	loc  *session.SimulatedGeolocator
	task *boxes.Task
}

// New builds the demo with the default config and returns its step function.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, config.Default())
}

// NewWithConfig builds the demo and returns its step function. Each step drains
// pending input and advances the session to the host clock.
func NewWithConfig(h hal.HAL, cfg config.Config) func() error {
	s := newSystem(h, cfg)
	return guard(h, s.step)
}

func newSystem(h hal.HAL, cfg config.Config) *system {
	log := h.Logger()
	if log == nil {
		log = zap.NewNop()
	}

	var fb hal.Framebuffer
	if d := h.Display(); d != nil {
		fb = d.Framebuffer()
	}
	w, hgt := cfg.Window.Width, cfg.Window.Height
	if fb != nil {
		w, hgt = fb.Width(), fb.Height()
	}

	sess := session.New(session.Config{
		MaxAccuracy:      cfg.Geolocation.MaxAccuracy,
		RecenterDistance: cfg.Origin.RecenterDistance,
		FOVY:             mgl64.DegToRad(cfg.View.FOVYDeg),
		Near:             cfg.View.Near,
		Far:              cfg.View.Far,
		IPD:              cfg.View.IPD,
		Stereo:           cfg.View.Stereo,
		Width:            w,
		Height:           hgt,
	}, log)

	g := cfg.Geolocation
	loc := session.NewSimulatedGeolocator(session.SimulatedConfig{
		Start:           geo.Geodetic{Latitude: g.Latitude, Longitude: g.Longitude, Height: g.Height},
		FixAfter:        g.FixAfter,
		AccurateAfter:   g.AccurateAfter,
		InitialAccuracy: g.InitialAccuracy,
		Accuracy:        g.Accuracy,
	})
	sess.SubscribeGeolocation(loc)

	b := cfg.Scene.Bounds
	task := boxes.New(sess, fb, boxes.Config{
		Boxes: cfg.Scene.Boxes,
		Seed:  cfg.Scene.Seed,
		Min:   mgl64.Vec3(b.Min),
		Max:   mgl64.Vec3(b.Max),
	}, log)

	log.Info("geobox started", append(buildinfo.Fields(),
		zap.Int("width", w),
		zap.Int("height", hgt),
		zap.Bool("stereo", cfg.View.Stereo),
		zap.Stringer("start", loc.Position()),
	)...)

	return &system{h: h, log: log, sess: sess, loc: loc, task: task}
}

// step handles all pending key events, then all pending touch events, then
// advances the session. The host reports both devices once per tick with no
// ordering between them, so a key and a touch arriving in the same tick are
// handled key first.
func (s *system) step() error {
	if err := s.drainKeys(); err != nil {
		return err
	}
	s.drainTouches()
	s.sess.Step(s.h.Time().Now())
	return nil
}

func (s *system) drainKeys() error {
	in := s.h.Input()
	if in == nil || in.Keyboard() == nil {
		return nil
	}
	ch := in.Keyboard().Events()
	for {
		select {
		case ev := <-ch:
			if err := s.handleKey(ev); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (s *system) drainTouches() {
	in := s.h.Input()
	if in == nil || in.Touch() == nil {
		return
	}
	ch := in.Touch().Events()
	for {
		select {
		case ev := <-ch:
			s.handleTouch(ev)
		default:
			return
		}
	}
}

func (s *system) handleKey(ev hal.KeyEvent) error {
	if ev.Code == hal.KeySpace {
		pick := boxes.InputEvent{Kind: boxes.InputKey, Key: boxes.PickKey}
		if ev.Press {
			s.task.InteractionStart(pick)
		} else {
			s.task.InteractionEnd(pick)
		}
		return nil
	}
	if !ev.Press {
		return nil
	}

	switch ev.Code {
	case hal.KeyEscape:
		return hal.ErrExit
	case hal.KeyLeft:
		s.sess.Turn(-turnStep, 0)
	case hal.KeyRight:
		s.sess.Turn(turnStep, 0)
	case hal.KeyUp:
		s.sess.Turn(0, turnStep)
	case hal.KeyDown:
		s.sess.Turn(0, -turnStep)
	case hal.KeyUnknown:
		return s.handleRune(ev.Rune)
	}
	return nil
}

func (s *system) handleRune(r rune) error {
	switch r {
	case 'q':
		return hal.ErrExit
	case 'w':
		s.loc.Walk(s.sess.Heading(), walkStep)
	case 's':
		s.loc.Walk(s.sess.Heading(), -walkStep)
	case 'm':
		s.task.ToggleWireframe()
	case 'v':
		s.sess.SetStereo(!s.sess.Stereo())
		s.log.Info("view mode", zap.Bool("stereo", s.sess.Stereo()))
	}
	return nil
}

func (s *system) handleTouch(ev hal.TouchEvent) {
	in := boxes.InputEvent{
		Kind:     boxes.InputTouch,
		X:        ev.X,
		Y:        ev.Y,
		Consumed: s.task.HUDContains(ev.X, ev.Y),
	}
	if ev.Press {
		s.task.InteractionStart(in)
	} else {
		s.task.InteractionEnd(in)
	}
}
