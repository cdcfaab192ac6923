package boxes

import (
	"go.uber.org/zap"

	"geobox/argon/frame"
	"geobox/argon/quarkgl"
)

// InputKind classifies an input event.
type InputKind uint8

const (
	InputOther InputKind = iota
	InputKey
	InputTouch
)

// InputEvent is a touch or key event delivered to InteractionStart/End.
type InputEvent struct {
	Kind InputKind
	Key  rune // InputKey only
	X, Y int  // InputTouch only, framebuffer pixels

	// Consumed is set when an earlier handler (the HUD) already used the event.
	Consumed bool
}

// PickKey is the key that picks and drops.
const PickKey = ' '

func isInteraction(ev InputEvent) bool {
	if ev.Consumed {
		return false
	}
	switch ev.Kind {
	case InputTouch:
		return true
	case InputKey:
		return ev.Key == PickKey
	}
	return false
}

// InteractionStart picks up the box nearest along the view centre ray. It reports
// whether a box was picked. It is a no-op while a box is already held, when nothing
// is hit, or when the box cannot be expressed relative to the device.
func (t *Task) InteractionStart(ev InputEvent) bool {
	if !isInteraction(ev) || t.held != nil {
		return false
	}
	b := Nearest(t.castFromCentre(), t.byNode)
	if b == nil {
		return false
	}

	c, err := frame.Convert(b.Anchor, frame.Of(t.sess.User()))
	if err != nil {
		t.log.Debug("pick: convert to device frame", zap.Stringer("box", b), zap.Error(err))
		return false
	}
	b.Anchor.Apply(c)
	copyPose(b.Node, c.Pose)
	t.carried.Add(b.Node)
	t.held = b
	t.log.Info("picked", zap.Stringer("box", b))
	return true
}

// InteractionEnd drops the held box back into the world group at its current
// real-world pose. It reports whether a box was dropped. If the pose cannot be
// expressed relative to the box group anchor the box stays held.
func (t *Task) InteractionEnd(ev InputEvent) bool {
	if !isInteraction(ev) || t.held == nil {
		return false
	}
	b := t.held

	c, err := frame.Convert(b.Anchor, frame.Of(t.sceneAnchor))
	if err != nil {
		t.log.Debug("drop: convert to scene frame", zap.Stringer("box", b), zap.Error(err))
		return false
	}
	b.Anchor.Apply(c)
	copyPose(b.Node, c.Pose)
	t.world.Add(b.Node)
	t.held = nil
	t.log.Info("dropped", zap.Stringer("box", b), zap.Stringer("pose", c.Pose))
	return true
}

// castFromCentre intersects the view centre ray from the device with the boxes
// in the world group, nearest first.
func (t *Task) castFromCentre() []quarkgl.Intersection {
	dev := t.sess.EntityPose(t.sess.User())
	if !dev.Known() {
		return nil
	}
	vp := t.sess.Viewport()
	aspect := float32(1)
	if vp.Height > 0 {
		aspect = float32(vp.Width) / float32(vp.Height)
	}
	cam := quarkgl.Camera{
		Position: toVec3(dev.Position),
		Rotation: toQuat(dev.Orientation),
		FOVYRad:  1,
		Near:     0.1,
		Far:      1e4,
	}

	t.scene.Root.UpdateMatrixWorld()
	t.rc.SetFromCamera(quarkgl.Vec2{}, cam, aspect)
	return t.rc.IntersectNodes(t.worldBoxes())
}
