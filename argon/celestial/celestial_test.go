package celestial

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geobox/argon/frame"
	"geobox/argon/geo"
)

var greenwich = geo.Geodetic{Latitude: 51.4779, Longitude: 0}

func originAt(g geo.Geodetic) *frame.Entity {
	return frame.NewEntityAt("origin", frame.Fixed, frame.NewPose(g.ECEF(), g.EastUpSouthRotation()))
}

func elevationDeg(dir mgl64.Vec3) float64 {
	return mgl64.RadToDeg(math.Asin(dir.Y()))
}

func TestSunAtSolsticeNoon(t *testing.T) {
	r := NewRig()
	noon := time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC)
	require.True(t, r.Update(noon, frame.Of(originAt(greenwich))))
	require.True(t, r.Resolved())

	assert.True(t, r.Sun.Up)
	assert.InDelta(t, 90-51.4779+23.44, elevationDeg(r.Sun.Direction), 1.5)
	// Due south at local noon.
	assert.Greater(t, r.Sun.Direction.Z(), 0.0)
	assert.InDelta(t, 0, r.Sun.Direction.X(), 0.05)

	l := r.Light()
	require.Len(t, l.Directional, 2)
	assert.True(t, l.Directional[0].Enabled)
	assert.Less(t, l.Directional[0].Dir.Y, float32(0))
}

func TestSunBelowHorizonAtMidnight(t *testing.T) {
	r := NewRig()
	midnight := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)
	require.True(t, r.Update(midnight, frame.Of(originAt(greenwich))))

	assert.False(t, r.Sun.Up)
	assert.False(t, r.Light().Directional[0].Enabled)
}

func TestMoonDeclinationBounded(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		_, dec := MoonEquatorial(start.Add(time.Duration(i) * 12 * time.Hour))
		assert.LessOrEqual(t, math.Abs(mgl64.RadToDeg(dec)), 29.0)
	}
}

func TestUnresolvedFrameKeepsState(t *testing.T) {
	r := NewRig()
	before := *r

	floating := frame.NewEntity("floating")
	assert.False(t, r.Update(time.Now(), frame.Of(floating)))
	assert.Equal(t, before, *r)
	assert.False(t, r.Resolved())
}

func TestFixedFrameUsesECEF(t *testing.T) {
	r := NewRig()
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	require.True(t, r.Update(now, frame.Fixed))

	ra, dec := SunEquatorial(now)
	want := ECEFDirection(now, ra, dec)
	assert.InDelta(t, 0, r.Sun.Direction.Sub(want).Len(), 1e-9)
	assert.Equal(t, want.Y() > 0, r.Sun.Up)
}
