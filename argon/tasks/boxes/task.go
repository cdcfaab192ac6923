// Package boxes is the draggable boxes demo: a group of boxes anchored to a
// geospatial origin near the user, one of which can be carried with the device
// and dropped back into the world.
package boxes

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"geobox/argon/celestial"
	"geobox/argon/frame"
	"geobox/argon/quarkgl"
	"geobox/argon/session"
	"geobox/hal"
)

// Config controls the spawned scene.
type Config struct {
	Boxes int
	Seed  int64
	// Min and Max bound box positions relative to the box group anchor.
	Min, Max mgl64.Vec3
}

// Task owns the scene, the selection state and the per-frame callbacks.
// It is driven by a session.Session and must be used from the session's goroutine.
type Task struct {
	log  *zap.Logger
	sess *session.Session
	fb   hal.Framebuffer

	scene   *quarkgl.Scene
	r       *quarkgl.Renderer
	rc      *quarkgl.Raycaster
	world   *quarkgl.Node
	carried *quarkgl.Node
	rig     *celestial.Rig
	geom    *quarkgl.Geometry

	// sceneAnchor is the shared origin of the box group.
	sceneAnchor  *frame.Entity
	initialized  bool
	initAttempts int

	boxes  []*Box
	byNode map[*quarkgl.Node]*Box

	held      *Box
	highlight Highlighter

	hud hudState
}

// New builds the scene and registers the task's update, render and origin-change
// callbacks on sess. fb may be nil to run without rendering.
func New(sess *session.Session, fb hal.Framebuffer, cfg Config, log *zap.Logger) *Task {
	if log == nil {
		log = zap.NewNop()
	}
	t := &Task{
		log:         log.Named("boxes"),
		sess:        sess,
		fb:          fb,
		scene:       quarkgl.CreateScene(),
		rc:          quarkgl.NewRaycaster(),
		world:       quarkgl.NewNode("boxScene"),
		carried:     quarkgl.NewNode("userLocation"),
		rig:         celestial.NewRig(),
		geom:        quarkgl.NewBoxGeometry(1, 1, 1),
		sceneAnchor: frame.NewEntity("box scene"),
		byNode:      make(map[*quarkgl.Node]*Box),
	}
	t.scene.Add(t.world)
	t.scene.Add(t.carried)
	t.scene.Light = t.rig.Light()

	if fb != nil {
		t.r = quarkgl.NewRenderer(fb.Width(), fb.Height(), true)
		t.r.ClearColor = quarkgl.RGB(0x05, 0x08, 0x12)
		t.r.SetRenderMode(quarkgl.RenderSolidFlat)
	}

	t.spawn(cfg)
	t.log.Info("scene ready", zap.Int("boxes", len(t.boxes)))

	sess.OnUpdate(t.Update)
	sess.OnRender(t.Render)
	sess.OnLocalOriginChange(t.OriginChanged)
	return t
}

// Held returns the carried box, or nil when idle.
func (t *Task) Held() *Box { return t.held }

// Boxes returns every box in spawn order.
func (t *Task) Boxes() []*Box { return t.boxes }

// Initialized reports whether the box group has been anchored to FIXED.
func (t *Task) Initialized() bool { return t.initialized }

// InitAttempts counts ticks on which anchoring the box group was attempted.
func (t *Task) InitAttempts() int { return t.initAttempts }

// SceneAnchor is the entity all box anchors are expressed relative to.
func (t *Task) SceneAnchor() *frame.Entity { return t.sceneAnchor }

// WorldGroup holds boxes resting in the environment.
func (t *Task) WorldGroup() *quarkgl.Node { return t.world }

// CarriedGroup follows the device and holds the carried box.
func (t *Task) CarriedGroup() *quarkgl.Node { return t.carried }

// Scene returns the rendered scene.
func (t *Task) Scene() *quarkgl.Scene { return t.scene }

// Highlighted returns the box currently highlighted, or nil.
func (t *Task) Highlighted() *Box { return t.highlight.Current() }

// ToggleWireframe switches between flat shading and wireframe.
func (t *Task) ToggleWireframe() {
	if t.r == nil {
		return
	}
	if t.r.Mode == quarkgl.RenderWireframe {
		t.r.SetRenderMode(quarkgl.RenderSolidFlat)
	} else {
		t.r.SetRenderMode(quarkgl.RenderWireframe)
	}
}

// RenderMode returns the current rasterization mode.
func (t *Task) RenderMode() quarkgl.RenderMode {
	if t.r == nil {
		return quarkgl.RenderSolidFlat
	}
	return t.r.Mode
}
