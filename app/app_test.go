package app

import (
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"geobox/argon/frame"
	"geobox/argon/geo"
	"geobox/argon/quarkgl"
	"geobox/hal"
	"geobox/internal/config"
)

type fakeKeyboard chan hal.KeyEvent

func (k fakeKeyboard) Events() <-chan hal.KeyEvent { return k }

type fakeTouch chan hal.TouchEvent

func (t fakeTouch) Events() <-chan hal.TouchEvent { return t }

// fakeHAL uses the host framebuffer and replaces input, clock and logger.
type fakeHAL struct {
	hal.HAL
	log     *zap.Logger
	keys    fakeKeyboard
	touches fakeTouch
	now     time.Time
}

func newFakeHAL(t *testing.T) *fakeHAL {
	return &fakeHAL{
		HAL:     hal.New(hal.Config{Width: 320, Height: 240}),
		log:     zaptest.NewLogger(t),
		keys:    make(fakeKeyboard, 16),
		touches: make(fakeTouch, 16),
		now:     time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeHAL) Logger() *zap.Logger    { return f.log }
func (f *fakeHAL) Input() hal.Input       { return f }
func (f *fakeHAL) Keyboard() hal.Keyboard { return f.keys }
func (f *fakeHAL) Touch() hal.Touch       { return f.touches }
func (f *fakeHAL) Time() hal.Time         { return f }
func (f *fakeHAL) Now() time.Time         { return f.now }

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Scene.Boxes = 0
	cfg.Geolocation.FixAfter = 0
	cfg.Geolocation.AccurateAfter = 0
	cfg.Geolocation.InitialAccuracy = cfg.Geolocation.Accuracy
	return cfg
}

type fixture struct {
	h    *fakeHAL
	sys  *system
	step func() error
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	h := newFakeHAL(t)
	sys := newSystem(h, testConfig())
	f := &fixture{h: h, sys: sys, step: guard(h, sys.step)}
	f.tick(t)
	require.True(t, sys.task.Initialized())
	return f
}

func (f *fixture) tick(t *testing.T) {
	t.Helper()
	f.h.now = f.h.now.Add(time.Second / 60)
	require.NoError(t, f.step())
}

func (f *fixture) addBoxAhead() {
	f.sys.task.AddBox(frame.NewPose(mgl64.Vec3{0.1, 0.05, -5}, mgl64.QuatIdent()), mgl64.Vec3{1, 1, 1}, quarkgl.Hex(0x808080))
}

func TestQuitKeys(t *testing.T) {
	for _, ev := range []hal.KeyEvent{
		{Rune: 'q', Press: true},
		{Code: hal.KeyEscape, Press: true},
	} {
		f := newFixture(t)
		f.h.keys <- ev
		err := f.step()
		assert.True(t, errors.Is(err, hal.ErrExit), "%+v: %v", ev, err)
	}
}

func TestSpacePicksAndDrops(t *testing.T) {
	f := newFixture(t)
	f.addBoxAhead()
	f.tick(t)

	f.h.keys <- hal.KeyEvent{Code: hal.KeySpace, Press: true}
	f.tick(t)
	require.NotNil(t, f.sys.task.Held())

	f.h.keys <- hal.KeyEvent{Code: hal.KeySpace, Press: false}
	f.tick(t)
	assert.Nil(t, f.sys.task.Held())
}

func TestTouchOnHUDIsConsumed(t *testing.T) {
	f := newFixture(t)
	f.addBoxAhead()
	f.tick(t)

	f.h.touches <- hal.TouchEvent{ID: 0, X: 10, Y: 10, Press: true}
	f.tick(t)
	assert.Nil(t, f.sys.task.Held())

	f.h.touches <- hal.TouchEvent{ID: 1, X: 160, Y: 120, Press: true}
	f.tick(t)
	require.NotNil(t, f.sys.task.Held())

	f.h.touches <- hal.TouchEvent{ID: 1, X: 160, Y: 120, Press: false}
	f.tick(t)
	assert.Nil(t, f.sys.task.Held())
}

func TestKeysHandledBeforeTouchesInOneStep(t *testing.T) {
	f := newFixture(t)
	f.addBoxAhead()
	f.tick(t)

	f.h.touches <- hal.TouchEvent{ID: 1, X: 160, Y: 120, Press: true}
	f.tick(t)
	require.NotNil(t, f.sys.task.Held())

	// The space press lands while the touch still holds the box, so only the
	// touch release takes effect.
	f.h.touches <- hal.TouchEvent{ID: 1, X: 160, Y: 120, Press: false}
	f.h.keys <- hal.KeyEvent{Code: hal.KeySpace, Press: true}
	f.tick(t)
	assert.Nil(t, f.sys.task.Held())

	f.h.keys <- hal.KeyEvent{Code: hal.KeySpace, Press: true}
	f.h.touches <- hal.TouchEvent{ID: 2, X: 160, Y: 120, Press: false}
	f.tick(t)
	assert.Nil(t, f.sys.task.Held())
}

func TestArrowKeysTurn(t *testing.T) {
	f := newFixture(t)
	f.h.keys <- hal.KeyEvent{Code: hal.KeyRight, Press: true}
	f.h.keys <- hal.KeyEvent{Code: hal.KeyRight, Press: true}
	f.h.keys <- hal.KeyEvent{Code: hal.KeyLeft, Press: true}
	f.h.keys <- hal.KeyEvent{Code: hal.KeyLeft, Press: false}
	f.tick(t)
	assert.InDelta(t, turnStep, f.sys.sess.Heading(), 1e-12)
}

func TestWalkKeys(t *testing.T) {
	f := newFixture(t)
	start := f.sys.loc.Position()

	f.h.keys <- hal.KeyEvent{Rune: 'w', Press: true}
	f.tick(t)
	assert.InDelta(t, walkStep, geo.Distance(start, f.sys.loc.Position()), 0.05)
	assert.Greater(t, f.sys.loc.Position().Latitude, start.Latitude)

	f.h.keys <- hal.KeyEvent{Rune: 's', Press: true}
	f.h.keys <- hal.KeyEvent{Rune: 's', Press: true}
	f.tick(t)
	assert.Less(t, f.sys.loc.Position().Latitude, start.Latitude)
}

func TestToggleKeys(t *testing.T) {
	f := newFixture(t)

	f.h.keys <- hal.KeyEvent{Rune: 'm', Press: true}
	f.h.keys <- hal.KeyEvent{Rune: 'v', Press: true}
	f.tick(t)
	assert.Equal(t, quarkgl.RenderWireframe, f.sys.task.RenderMode())
	assert.True(t, f.sys.sess.Stereo())
	assert.True(t, f.sys.task.HUDPanel().Empty())
}

func TestNewRunsDefaultScene(t *testing.T) {
	h := newFakeHAL(t)
	step := New(h)
	for i := 0; i < 120; i++ {
		h.now = h.now.Add(time.Second / 30)
		require.NoError(t, step())
	}
	h.keys <- hal.KeyEvent{Code: hal.KeyRight, Press: true}
	h.now = h.now.Add(time.Second / 30)
	require.NoError(t, step())
	p, ok := h.Display().Framebuffer().(interface{ Presented() uint64 })
	require.True(t, ok)
	assert.EqualValues(t, 121, p.Presented())
}

func TestGuardRecoversPanic(t *testing.T) {
	h := newFakeHAL(t)
	step := guard(h, func() error { panic("boom") })

	err := step()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPanic))
	assert.Contains(t, err.Error(), "boom")

	fb := h.Display().Framebuffer()
	p, ok := fb.(interface{ Presented() uint64 })
	require.True(t, ok)
	assert.EqualValues(t, 1, p.Presented())

	white, ink := 0, 0
	buf := fb.Buffer()
	for i := 0; i+1 < len(buf); i += 2 {
		if buf[i] == 0xff && buf[i+1] == 0xff {
			white++
		} else {
			ink++
		}
	}
	assert.Greater(t, white, ink)
	assert.Positive(t, ink)
}

func TestGuardPassesErrors(t *testing.T) {
	h := newFakeHAL(t)
	want := errors.New("step failed")
	assert.Same(t, want, guard(h, func() error { return want })())
	assert.NoError(t, guard(h, func() error { return nil })())
}

func TestTakeRunes(t *testing.T) {
	p, r := takeRunes("héllo", 2)
	assert.Equal(t, "hé", p)
	assert.Equal(t, "llo", r)

	p, r = takeRunes("ab", 5)
	assert.Equal(t, "ab", p)
	assert.Empty(t, r)
}
