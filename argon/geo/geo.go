// Package geo converts between WGS84 geodetic coordinates and the earth-centred,
// earth-fixed (ECEF) frame, and builds local tangent-plane bases.
package geo

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// WGS84 ellipsoid.
const (
	SemiMajorAxis = 6378137.0
	Flattening    = 1 / 298.257223563

	eccSq = Flattening * (2 - Flattening)
)

// Geodetic is a position on the WGS84 ellipsoid. Angles are in degrees, height in metres.
type Geodetic struct {
	Latitude  float64
	Longitude float64
	Height    float64
}

func (g Geodetic) String() string {
	return fmt.Sprintf("(%.6f, %.6f, %.1fm)", g.Latitude, g.Longitude, g.Height)
}

// ECEF returns the earth-centred, earth-fixed position of g in metres.
func (g Geodetic) ECEF() mgl64.Vec3 {
	lat := mgl64.DegToRad(g.Latitude)
	lon := mgl64.DegToRad(g.Longitude)
	sinLat, cosLat := math.Sincos(lat)
	sinLon, cosLon := math.Sincos(lon)

	n := SemiMajorAxis / math.Sqrt(1-eccSq*sinLat*sinLat)
	return mgl64.Vec3{
		(n + g.Height) * cosLat * cosLon,
		(n + g.Height) * cosLat * sinLon,
		(n*(1-eccSq) + g.Height) * sinLat,
	}
}

// EastUpSouth returns the three axes of the local tangent frame at g, expressed in ECEF.
//
// The frame matches the usual graphics convention: +X east, +Y up, +Z south.
func (g Geodetic) EastUpSouth() (east, up, south mgl64.Vec3) {
	lat := mgl64.DegToRad(g.Latitude)
	lon := mgl64.DegToRad(g.Longitude)
	sinLat, cosLat := math.Sincos(lat)
	sinLon, cosLon := math.Sincos(lon)

	east = mgl64.Vec3{-sinLon, cosLon, 0}
	up = mgl64.Vec3{cosLat * cosLon, cosLat * sinLon, sinLat}
	north := mgl64.Vec3{-sinLat * cosLon, -sinLat * sinLon, cosLat}
	return east, up, north.Mul(-1)
}

// EastUpSouthRotation returns the rotation taking local EUS vectors into ECEF.
func (g Geodetic) EastUpSouthRotation() mgl64.Quat {
	e, u, s := g.EastUpSouth()
	return mgl64.Mat4ToQuat(mgl64.Mat3FromCols(e, u, s).Mat4()).Normalize()
}

// Distance returns the straight-line (chord) distance between a and b in metres.
func Distance(a, b Geodetic) float64 {
	return a.ECEF().Sub(b.ECEF()).Len()
}

// Offset moves g by the given distance along a heading measured clockwise from north,
// using a spherical approximation. Height is preserved.
func Offset(g Geodetic, headingRad, meters float64) Geodetic {
	const r = SemiMajorAxis
	d := meters / r
	lat1 := mgl64.DegToRad(g.Latitude)
	lon1 := mgl64.DegToRad(g.Longitude)

	sinLat1, cosLat1 := math.Sincos(lat1)
	sinD, cosD := math.Sincos(d)
	sinH, cosH := math.Sincos(headingRad)

	lat2 := math.Asin(sinLat1*cosD + cosLat1*sinD*cosH)
	lon2 := lon1 + math.Atan2(sinH*sinD*cosLat1, cosD-sinLat1*math.Sin(lat2))
	lon2 = math.Mod(lon2+3*math.Pi, 2*math.Pi) - math.Pi

	return Geodetic{
		Latitude:  mgl64.RadToDeg(lat2),
		Longitude: mgl64.RadToDeg(lon2),
		Height:    g.Height,
	}
}
