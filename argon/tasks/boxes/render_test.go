package boxes

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geobox/argon/quarkgl"
)

type presenter interface {
	Presented() uint64
}

func (h *harness) pixel(x, y int) uint16 {
	off := y*h.fb.StrideBytes() + x*2
	buf := h.fb.Buffer()
	return uint16(buf[off]) | uint16(buf[off+1])<<8
}

func renderReady(t *testing.T) (*harness, *Box) {
	t.Helper()
	h := newHarness(t, harnessOpts{sim: accurate(), render: true})
	h.step()
	require.True(t, h.task.Initialized())
	b := h.boxAhead(5)
	h.step()
	return h, b
}

func TestRenderMono(t *testing.T) {
	h, _ := renderReady(t)
	clear := quarkgl.RGB565(h.task.r.ClearColor)

	assert.NotEqual(t, clear, h.pixel(160, 120), "box at the view centre")
	assert.Equal(t, quarkgl.RGB565(hudBackground), h.pixel(5, 5))
	assert.Equal(t, clear, h.pixel(310, 230))

	p, ok := h.fb.(presenter)
	require.True(t, ok)
	assert.EqualValues(t, 2, p.Presented())

	panel := h.task.HUDPanel()
	assert.False(t, panel.Empty())
	assert.True(t, h.task.HUDContains(10, 10))
	assert.False(t, h.task.HUDContains(160, 120))
}

func TestRenderStereo(t *testing.T) {
	h, _ := renderReady(t)
	h.sess.SetStereo(true)
	h.step()
	clear := quarkgl.RGB565(h.task.r.ClearColor)

	assert.NotEqual(t, clear, h.pixel(80, 120), "left eye")
	assert.NotEqual(t, clear, h.pixel(240, 120), "right eye")
	assert.Equal(t, clear, h.pixel(5, 5), "no HUD in stereo")
	assert.True(t, h.task.HUDPanel().Empty())
	assert.False(t, h.task.HUDContains(10, 10))
}

func TestRenderWithoutFramebuffer(t *testing.T) {
	h := ready(t)
	h.boxAhead(5)
	h.step()

	assert.True(t, h.task.HUDPanel().Empty())
	assert.Equal(t, quarkgl.RenderSolidFlat, h.task.RenderMode())
	h.task.ToggleWireframe()
	assert.Equal(t, quarkgl.RenderSolidFlat, h.task.RenderMode())
}

func TestToggleWireframe(t *testing.T) {
	h, _ := renderReady(t)
	require.Equal(t, quarkgl.RenderSolidFlat, h.task.RenderMode())

	h.task.ToggleWireframe()
	assert.Equal(t, quarkgl.RenderWireframe, h.task.RenderMode())
	h.step()
	h.task.ToggleWireframe()
	assert.Equal(t, quarkgl.RenderSolidFlat, h.task.RenderMode())
}

func TestHUDLines(t *testing.T) {
	h := newHarness(t, harnessOpts{sim: accurate()})
	assert.Equal(t, "waiting for device pose", h.task.hudLines()[2])

	h.step()
	b := h.boxAhead(5)
	h.step()
	lines := h.task.hudLines()
	assert.Equal(t, "pointing at "+b.String(), lines[2])
	assert.Equal(t, "origin anchored", lines[3])
	assert.Contains(t, lines[4], "frame 2")

	require.True(t, h.task.InteractionStart(space()))
	assert.Equal(t, "holding "+b.String(), h.task.hudLines()[2])
}

func TestHighlightFollowsViewCentre(t *testing.T) {
	h := ready(t)
	b := h.boxAhead(5)
	h.step()
	assert.Equal(t, b, h.task.Highlighted())
	assert.Equal(t, HighlightColor, b.Color())

	h.sess.Turn(math.Pi, 0)
	h.step()
	assert.Nil(t, h.task.Highlighted())
	assert.Equal(t, grey, b.Color())

	h.sess.Turn(math.Pi, 0)
	h.step()
	assert.Equal(t, b, h.task.Highlighted())
}

func TestHighlightMovesBetweenBoxes(t *testing.T) {
	h := ready(t)
	ahead := h.boxAhead(5)
	east := h.task.AddBox(frameAt(mgl64.Vec3{5, 0.05, 0.1}), mgl64.Vec3{1, 1, 1}, quarkgl.Hex(0x2040c0))
	h.step()
	require.Equal(t, ahead, h.task.Highlighted())

	h.sess.Orient(math.Pi/2, 0)
	h.step()
	assert.Equal(t, east, h.task.Highlighted())
	assert.Equal(t, grey, ahead.Color())
	assert.Equal(t, HighlightColor, east.Color())
}

func TestHighlightFrozenWhileHolding(t *testing.T) {
	h := ready(t)
	b := h.boxAhead(5)
	h.step()
	require.True(t, h.task.InteractionStart(space()))

	h.sess.Turn(math.Pi, 0)
	h.step()
	assert.Equal(t, b, h.task.Highlighted())
}
