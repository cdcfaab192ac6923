package boxes

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"geobox/argon/frame"
	"geobox/argon/quarkgl"
	"geobox/argon/session"
)

// compassLabel is a direction word drawn at a fixed offset from the user.
type compassLabel struct {
	text   string
	offset mgl64.Vec3 // local East-Up-South metres
}

var compassLabels = []compassLabel{
	{"North", mgl64.Vec3{0, 0, -100}},
	{"South", mgl64.Vec3{0, 0, 100}},
	{"East", mgl64.Vec3{100, 0, 0}},
	{"West", mgl64.Vec3{-100, 0, 0}},
	{"Up", mgl64.Vec3{0, 100, 0}},
	{"Down", mgl64.Vec3{0, -100, 0}},
}

var labelColor = color.RGBA{R: 0x55, G: 0x88, B: 0xFF, A: 0xFF}

// Render draws every subview into its viewport of the framebuffer, then the HUD in
// mono mode, and presents the frame.
func (t *Task) Render(st session.FrameState) {
	t.hud.tick(st)
	if t.fb == nil || t.r == nil {
		return
	}

	target := &quarkgl.RGB565Target{
		Buf:    t.fb.Buffer(),
		Stride: t.fb.StrideBytes(),
		W:      t.fb.Width(),
		H:      t.fb.Height(),
	}

	views := t.sess.Subviews()
	mono := len(views) == 1
	dev := t.sess.EntityPose(t.sess.User())

	for _, sv := range views {
		t.scene.Camera = cameraAt(sv.Pose, sv.Projection)
		vp := &quarkgl.Viewport{
			Parent: target,
			X:      sv.Viewport.X,
			Y:      sv.Viewport.Y,
			W:      sv.Viewport.Width,
			H:      sv.Viewport.Height,
		}
		t.r.Render(vp, t.scene)

		if dev.Known() {
			t.drawLabels(vp, dev.Pose)
		}
		if mono {
			t.drawHUD(target)
		}
	}

	_ = t.fb.Present()
}

func (t *Task) drawLabels(vp *quarkgl.Viewport, user frame.Pose) {
	w, h := vp.Size()
	for _, l := range compassLabels {
		p := toVec3(user.Position.Add(l.offset))
		x, y, ok := quarkgl.Project(t.scene.Camera, p, w, h)
		if !ok {
			continue
		}
		drawTextCentered(vp, x, y, l.text, labelColor)
	}
}
