// Package session is the AR host: it tracks the device pose and local coordinate
// origin, exposes subviews for rendering, and fires update/render callbacks once
// per frame in strict order.
package session

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"geobox/argon/frame"
	"geobox/argon/geo"
)

// PoseStatus reports whether a pose query could be answered.
type PoseStatus uint8

const (
	PoseUnknown PoseStatus = iota
	PoseKnown
)

func (s PoseStatus) String() string {
	if s == PoseKnown {
		return "known"
	}
	return "unknown"
}

// EntityPose is the result of a pose query.
type EntityPose struct {
	frame.Pose
	Status PoseStatus
}

func (p EntityPose) Known() bool { return p.Status == PoseKnown }

// Viewport is a pixel rectangle with the origin at the top-left.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// Subview is one eye (stereo) or the single view (mono).
type Subview struct {
	Index      int
	Pose       frame.Pose // in the default frame
	Projection mgl64.Mat4
	Viewport   Viewport
}

// FrameState is passed to update and render listeners.
type FrameState struct {
	Index uint64
	Time  time.Time
}

// Config controls the session.
type Config struct {
	// MaxAccuracy is the worst geolocation accuracy (metres) at which the local origin
	// is anchored to the FIXED frame.
	MaxAccuracy float64
	// RecenterDistance moves the local origin when the device strays this far (metres).
	RecenterDistance float64

	FOVY   float64 // radians
	Near   float64
	Far    float64
	IPD    float64 // metres
	Stereo bool
	Width  int
	Height int
}

// Session is single-threaded: Step, input handling and all queries must run on the
// same goroutine.
type Session struct {
	log *zap.Logger
	cfg Config

	locator Geolocator

	origin *frame.Entity
	user   *frame.Entity

	originGeo  geo.Geodetic
	haveOrigin bool

	heading float64
	pitch   float64

	now   time.Time
	index uint64

	viewport Viewport
	stereo   bool

	onUpdate []func(FrameState)
	onRender []func(FrameState)
	onOrigin []func()
}

func New(cfg Config, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.FOVY <= 0 {
		cfg.FOVY = mgl64.DegToRad(60)
	}
	if cfg.Near <= 0 {
		cfg.Near = 0.1
	}
	if cfg.Far <= cfg.Near {
		cfg.Far = 10000
	}
	if cfg.MaxAccuracy <= 0 {
		cfg.MaxAccuracy = 50
	}
	if cfg.RecenterDistance <= 0 {
		cfg.RecenterDistance = 5000
	}
	return &Session{
		log:      log.Named("session"),
		cfg:      cfg,
		origin:   frame.NewEntity("localOriginEastUpSouth"),
		user:     frame.NewEntity("user"),
		viewport: Viewport{Width: cfg.Width, Height: cfg.Height},
		stereo:   cfg.Stereo,
	}
}

// SubscribeGeolocation sets the source of device geolocation.
func (s *Session) SubscribeGeolocation(g Geolocator) { s.locator = g }

func (s *Session) User() *frame.Entity        { return s.user }
func (s *Session) LocalOrigin() *frame.Entity { return s.origin }
func (s *Session) Time() time.Time            { return s.now }

// DefaultFrame is the local East-Up-South frame used for rendering.
func (s *Session) DefaultFrame() frame.Frame { return frame.Of(s.origin) }

// OriginAnchored reports whether the local origin is currently tied to FIXED.
func (s *Session) OriginAnchored() bool { return s.origin.Defined() }

// EntityPose returns e's pose in the default frame.
func (s *Session) EntityPose(e *frame.Entity) EntityPose {
	return s.EntityPoseIn(e, s.DefaultFrame())
}

// EntityPoseIn returns e's pose in f.
func (s *Session) EntityPoseIn(e *frame.Entity, f frame.Frame) EntityPose {
	p, err := frame.PoseIn(e, f)
	if err != nil {
		return EntityPose{Pose: frame.Identity()}
	}
	return EntityPose{Pose: p, Status: PoseKnown}
}

func (s *Session) OnUpdate(fn func(FrameState))  { s.onUpdate = append(s.onUpdate, fn) }
func (s *Session) OnRender(fn func(FrameState))  { s.onRender = append(s.onRender, fn) }
func (s *Session) OnLocalOriginChange(fn func()) { s.onOrigin = append(s.onOrigin, fn) }

// Orient sets the device heading (radians clockwise from north) and pitch (radians, up positive).
func (s *Session) Orient(heading, pitch float64) {
	s.heading = heading
	s.pitch = mgl64.Clamp(pitch, -mgl64.DegToRad(85), mgl64.DegToRad(85))
}

// Turn adjusts heading and pitch.
func (s *Session) Turn(dHeading, dPitch float64) { s.Orient(s.heading+dHeading, s.pitch+dPitch) }

// Heading returns the device heading in radians clockwise from north.
func (s *Session) Heading() float64 { return s.heading }

func (s *Session) SetViewport(w, h int) { s.viewport = Viewport{Width: w, Height: h} }
func (s *Session) Viewport() Viewport   { return s.viewport }
func (s *Session) SetStereo(on bool)    { s.stereo = on }
func (s *Session) Stereo() bool         { return s.stereo }

// Step advances the session to now: it refreshes the device and origin, then fires
// update listeners followed by render listeners.
func (s *Session) Step(now time.Time) {
	s.now = now
	s.refresh(now)

	st := FrameState{Index: s.index, Time: now}
	s.index++
	for _, fn := range s.onUpdate {
		fn(st)
	}
	for _, fn := range s.onRender {
		fn(st)
	}
}

func (s *Session) refresh(now time.Time) {
	var (
		r  Reading
		ok bool
	)
	if s.locator != nil {
		r, ok = s.locator.Reading(now)
	}
	if !ok {
		s.user.Clear()
		return
	}

	recentered := false
	switch {
	case !s.haveOrigin:
		s.originGeo = r.Position
		s.haveOrigin = true
		s.log.Info("local origin placed", zap.Stringer("at", r.Position))
	case geo.Distance(s.originGeo, r.Position) > s.cfg.RecenterDistance:
		s.originGeo = r.Position
		recentered = true
	}

	originPose := eusPose(s.originGeo)
	if r.Accuracy <= s.cfg.MaxAccuracy {
		if !s.origin.Defined() {
			s.log.Info("local origin anchored", zap.Float64("accuracy", r.Accuracy))
		}
		s.origin.SetPose(frame.Fixed, originPose)
	} else if s.origin.Defined() {
		s.log.Info("local origin floating", zap.Float64("accuracy", r.Accuracy))
		s.origin.Clear()
	}

	device := eusPose(r.Position)
	device.Orientation = device.Orientation.Mul(s.deviceRotation()).Normalize()
	s.user.SetPose(frame.Of(s.origin), originPose.Inverse().Mul(device))

	if recentered {
		s.log.Info("local origin changed", zap.Stringer("at", s.originGeo))
		for _, fn := range s.onOrigin {
			fn()
		}
	}
}

// deviceRotation is the device orientation relative to the EUS basis at its position.
func (s *Session) deviceRotation() mgl64.Quat {
	yaw := mgl64.QuatRotate(-s.heading, mgl64.Vec3{0, 1, 0})
	pitch := mgl64.QuatRotate(s.pitch, mgl64.Vec3{1, 0, 0})
	return yaw.Mul(pitch)
}

func eusPose(g geo.Geodetic) frame.Pose {
	return frame.NewPose(g.ECEF(), g.EastUpSouthRotation())
}

// Subviews returns the views to render this frame: one in mono, two side by side in stereo.
func (s *Session) Subviews() []Subview {
	pose := s.EntityPose(s.user).Pose
	vp := s.viewport

	if !s.stereo {
		return []Subview{{
			Index:      0,
			Pose:       pose,
			Projection: s.projection(vp),
			Viewport:   vp,
		}}
	}

	half := vp.Width / 2
	eyes := [2]float64{-s.cfg.IPD / 2, s.cfg.IPD / 2}
	out := make([]Subview, 0, 2)
	for i, dx := range eyes {
		eyeVP := Viewport{X: vp.X + i*half, Y: vp.Y, Width: half, Height: vp.Height}
		out = append(out, Subview{
			Index:      i,
			Pose:       pose.Mul(frame.NewPose(mgl64.Vec3{dx, 0, 0}, mgl64.QuatIdent())),
			Projection: s.projection(eyeVP),
			Viewport:   eyeVP,
		})
	}
	return out
}

func (s *Session) projection(vp Viewport) mgl64.Mat4 {
	aspect := 1.0
	if vp.Height > 0 {
		aspect = float64(vp.Width) / float64(vp.Height)
	}
	return mgl64.Perspective(s.cfg.FOVY, aspect, s.cfg.Near, s.cfg.Far)
}
