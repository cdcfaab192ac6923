package boxes

import (
	"go.uber.org/zap"

	"geobox/argon/frame"
	"geobox/argon/session"
)

// Update runs once per tick before Render. Nothing happens until the device pose
// is known. The box group anchor is placed at the device the first time it can be
// tied to FIXED and is then re-read every tick, because the local frame it is
// drawn in can re-centre.
func (t *Task) Update(st session.FrameState) {
	dev := t.sess.EntityPose(t.sess.User())
	if !dev.Known() {
		return
	}

	if t.rig.Update(st.Time, t.sess.DefaultFrame()) {
		t.scene.Light = t.rig.Light()
	}
	copyPose(t.carried, dev.Pose)

	if !t.initialized {
		t.initSceneAnchor(dev.Pose)
	} else {
		t.refreshWorld()
	}

	t.updateHighlight()

	if t.held != nil {
		p, err := frame.PoseIn(t.held.Anchor, frame.Of(t.sess.User()))
		if err == nil {
			copyPose(t.held.Node, p)
		}
	}
}

func (t *Task) initSceneAnchor(device frame.Pose) {
	t.initAttempts++
	t.sceneAnchor.SetPose(t.sess.DefaultFrame(), device)
	c, err := frame.Convert(t.sceneAnchor, frame.Fixed)
	if err != nil {
		t.sceneAnchor.Clear()
		t.log.Debug("box group anchor pending", zap.Int("attempt", t.initAttempts), zap.Error(err))
		return
	}
	t.sceneAnchor.Apply(c)
	t.initialized = true
	t.refreshWorld()
	t.log.Info("box group anchored", zap.Int("attempts", t.initAttempts), zap.Stringer("fixed", c.Pose))
}

// refreshWorld copies the box group anchor's local-frame pose onto the world group.
func (t *Task) refreshWorld() {
	p := t.sess.EntityPose(t.sceneAnchor)
	if !p.Known() {
		return
	}
	copyPose(t.world, p.Pose)
}

// OriginChanged refreshes the world group after the local origin moves. The
// carried group is relative to the device and needs no update.
func (t *Task) OriginChanged() {
	if !t.initialized {
		return
	}
	t.refreshWorld()
	t.log.Info("local origin changed, box group refreshed", zap.Stringer("world", nodePose(t.world)))
}
