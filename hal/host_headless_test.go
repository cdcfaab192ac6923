package hal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRunHeadlessStopsAfterTicks(t *testing.T) {
	start := time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC)
	var seen []time.Time
	var fb Framebuffer

	err := RunHeadless(context.Background(), Config{Width: 16, Height: 8}, HeadlessConfig{Hz: 1000, Ticks: 5, Start: start}, func(h HAL) func() error {
		fb = h.Display().Framebuffer()
		return func() error {
			seen = append(seen, h.Time().Now())
			return fb.Present()
		}
	})
	require.NoError(t, err)
	require.Len(t, seen, 5)
	for i, ts := range seen {
		assert.Equal(t, start.Add(time.Duration(i+1)*time.Millisecond), ts)
	}
	assert.Equal(t, 16, fb.Width())
	assert.Equal(t, 8, fb.Height())
	assert.Equal(t, uint64(5), fb.(*hostFramebuffer).Presented())
}

func TestRunHeadlessExit(t *testing.T) {
	n := 0
	err := RunHeadless(context.Background(), Config{}, HeadlessConfig{Hz: 1000}, func(HAL) func() error {
		return func() error {
			n++
			if n == 3 {
				return ErrExit
			}
			return nil
		}
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRunHeadlessStepError(t *testing.T) {
	boom := errors.New("boom")
	err := RunHeadless(context.Background(), Config{}, HeadlessConfig{Hz: 1000}, func(HAL) func() error {
		return func() error { return boom }
	})
	assert.ErrorIs(t, err, boom)
}

func TestRunHeadlessCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	err := RunHeadless(ctx, Config{}, HeadlessConfig{Hz: 1000}, func(HAL) func() error {
		return func() error {
			cancel()
			return nil
		}
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFramebufferClearAndCopy(t *testing.T) {
	fb := newHostFramebuffer(2, 2)
	fb.ClearRGB(0xff, 0x00, 0xff)

	dst := make([]byte, 2*2*4)
	fb.copyRGBA(dst)
	for i := 0; i < len(dst); i += 4 {
		assert.Equal(t, []byte{0xff, 0x00, 0xff, 0xff}, dst[i:i+4])
	}
}

func TestHostHALDefaults(t *testing.T) {
	h := New(Config{})
	fb := h.Display().Framebuffer()
	assert.Equal(t, 320, fb.Width())
	assert.Equal(t, 240, fb.Height())
	assert.Equal(t, PixelFormatRGB565, fb.Format())
	assert.Equal(t, 640, fb.StrideBytes())
	assert.NotNil(t, h.Logger())
	assert.NotNil(t, h.Input().Keyboard().Events())
	assert.NotNil(t, h.Input().Touch().Events())
}
