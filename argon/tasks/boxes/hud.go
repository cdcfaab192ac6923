package boxes

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"geobox/argon/quarkgl"
	"geobox/argon/session"
	"geobox/internal/buildinfo"
)

var hudFont tinyfont.Fonter = &proggy.TinySZ8pt7b

var (
	hudBackground = quarkgl.RGB(0x10, 0x18, 0x24)
	hudTitle      = color.RGBA{R: 0xE0, G: 0xE8, B: 0xFF, A: 0xFF}
	hudText       = color.RGBA{R: 0x90, G: 0xA0, B: 0xB8, A: 0xFF}
)

const (
	hudMargin    = 4
	hudPadding   = 3
	hudMaxWidth  = 200
	hudLineCount = 5
)

// hudState tracks frame statistics.
type hudState struct {
	frame uint64
	last  time.Time
	fps   float64
}

func (h *hudState) tick(st session.FrameState) {
	if !h.last.IsZero() {
		if dt := st.Time.Sub(h.last).Seconds(); dt > 0 {
			inst := 1 / dt
			if h.fps == 0 {
				h.fps = inst
			} else {
				h.fps += (inst - h.fps) * 0.1
			}
		}
	}
	h.last = st.Time
	h.frame = st.Index + 1
}

// HUDPanel returns the description panel rectangle in framebuffer pixels. It is
// empty in stereo mode, where the HUD is hidden.
func (t *Task) HUDPanel() image.Rectangle {
	if t.fb == nil || t.sess.Stereo() {
		return image.Rectangle{}
	}
	lh := int(hudFont.GetYAdvance())
	w := t.fb.Width() - 2*hudMargin
	if w > hudMaxWidth {
		w = hudMaxWidth
	}
	h := hudLineCount*lh + 2*hudPadding
	return image.Rect(hudMargin, hudMargin, hudMargin+w, hudMargin+h)
}

// HUDContains reports whether the pixel lies on the HUD panel.
func (t *Task) HUDContains(x, y int) bool {
	return image.Pt(x, y).In(t.HUDPanel())
}

func (t *Task) hudLines() [hudLineCount]string {
	var state string
	switch {
	case !t.sess.EntityPose(t.sess.User()).Known():
		state = "waiting for device pose"
	case !t.initialized:
		state = fmt.Sprintf("anchoring boxes (try %d)", t.initAttempts)
	case t.held != nil:
		state = "holding " + t.held.String()
	case t.highlight.Current() != nil:
		state = "pointing at " + t.highlight.Current().String()
	default:
		state = "look around"
	}

	origin := "origin floating"
	if t.sess.OriginAnchored() {
		origin = "origin anchored"
	}
	return [hudLineCount]string{
		"geobox " + buildinfo.Short(),
		"space/touch: pick, release: drop",
		state,
		origin,
		fmt.Sprintf("frame %d  %.0f fps", t.hud.frame, t.hud.fps),
	}
}

func (t *Task) drawHUD(target quarkgl.Target) {
	r := t.HUDPanel()
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			target.SetPixel(x, y, hudBackground)
		}
	}

	clip := &quarkgl.Viewport{Parent: target, X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}
	lh := int(hudFont.GetYAdvance())
	for i, s := range t.hudLines() {
		c := hudText
		if i == 0 {
			c = hudTitle
		}
		drawText(clip, hudPadding, hudPadding+i*lh, s, c)
	}
}

// drawText draws s with its top-left corner at x, y.
func drawText(dst quarkgl.Target, x, y int, s string, c color.RGBA) {
	d := &targetDisplayer{t: dst}
	tinyfont.WriteLine(d, hudFont, int16(x), int16(y)+int16(hudFont.GetYAdvance())-2, s, c)
}

// drawTextCentered draws s centred on x, y.
func drawTextCentered(dst quarkgl.Target, x, y int, s string, c color.RGBA) {
	_, w := tinyfont.LineWidth(hudFont, s)
	lh := int(hudFont.GetYAdvance())
	drawText(dst, x-int(w)/2, y-lh/2, s, c)
}

// targetDisplayer adapts a quarkgl target to tinyfont.
type targetDisplayer struct {
	t quarkgl.Target
}

var _ drivers.Displayer = (*targetDisplayer)(nil)

func (d *targetDisplayer) Size() (x, y int16) {
	w, h := d.t.Size()
	return int16(w), int16(h)
}

func (d *targetDisplayer) SetPixel(x, y int16, c color.RGBA) {
	d.t.SetPixel(int(x), int(y), quarkgl.RGB(c.R, c.G, c.B))
}

func (d *targetDisplayer) Display() error { return nil }
