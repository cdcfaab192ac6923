package geo

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestECEFEquator(t *testing.T) {
	p := Geodetic{Latitude: 0, Longitude: 0}.ECEF()
	assert.InDelta(t, SemiMajorAxis, p.X(), 1e-6)
	assert.InDelta(t, 0, p.Y(), 1e-6)
	assert.InDelta(t, 0, p.Z(), 1e-6)

	p = Geodetic{Latitude: 0, Longitude: 90, Height: 100}.ECEF()
	assert.InDelta(t, 0, p.X(), 1e-6)
	assert.InDelta(t, SemiMajorAxis+100, p.Y(), 1e-6)
}

func TestECEFPole(t *testing.T) {
	p := Geodetic{Latitude: 90}.ECEF()
	// Polar radius of WGS84.
	assert.InDelta(t, 6356752.314245, p.Z(), 1e-3)
}

func TestEastUpSouthOrthonormal(t *testing.T) {
	g := Geodetic{Latitude: 33.7756, Longitude: -84.3963, Height: 300}
	e, u, s := g.EastUpSouth()

	assert.InDelta(t, 1, e.Len(), 1e-12)
	assert.InDelta(t, 1, u.Len(), 1e-12)
	assert.InDelta(t, 1, s.Len(), 1e-12)
	assert.InDelta(t, 0, e.Dot(u), 1e-12)
	assert.InDelta(t, 0, e.Dot(s), 1e-12)
	assert.InDelta(t, 0, u.Dot(s), 1e-12)

	// Right-handed: east x up = south.
	assert.InDelta(t, 0, e.Cross(u).Sub(s).Len(), 1e-12)
}

func TestEastUpSouthRotation(t *testing.T) {
	g := Geodetic{Latitude: 48.8584, Longitude: 2.2945}
	e, u, s := g.EastUpSouth()
	q := g.EastUpSouthRotation()

	assert.InDelta(t, 0, q.Rotate(mgl64.Vec3{1, 0, 0}).Sub(e).Len(), 1e-9)
	assert.InDelta(t, 0, q.Rotate(mgl64.Vec3{0, 1, 0}).Sub(u).Len(), 1e-9)
	assert.InDelta(t, 0, q.Rotate(mgl64.Vec3{0, 0, 1}).Sub(s).Len(), 1e-9)
}

func TestOffsetDistance(t *testing.T) {
	start := Geodetic{Latitude: 40.0, Longitude: -75.0}
	for _, heading := range []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2} {
		moved := Offset(start, heading, 1000)
		require.InDelta(t, 1000, Distance(start, moved), 5, "heading %v", heading)
	}

	north := Offset(start, 0, 1000)
	assert.Greater(t, north.Latitude, start.Latitude)
	east := Offset(start, math.Pi/2, 1000)
	assert.Greater(t, east.Longitude, start.Longitude)
}
