// Package celestial positions sun and moon lights from low-precision ephemerides.
//
// Directions are accurate to roughly a degree, which is plenty for shading.
package celestial

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"geobox/argon/frame"
	"geobox/argon/quarkgl"
)

// j2000 is 2000-01-01 12:00 TT, approximated as UTC.
var j2000 = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

// daysSinceJ2000 returns fractional days elapsed since the J2000 epoch.
func daysSinceJ2000(t time.Time) float64 {
	return t.Sub(j2000).Hours() / 24
}

// gmst returns Greenwich mean sidereal time in radians.
func gmst(d float64) float64 {
	deg := math.Mod(280.46061837+360.98564736629*d, 360)
	return mgl64.DegToRad(deg)
}

func obliquity(d float64) float64 {
	return mgl64.DegToRad(23.439 - 0.0000004*d)
}

// SunEquatorial returns the sun's right ascension and declination in radians.
func SunEquatorial(t time.Time) (ra, dec float64) {
	d := daysSinceJ2000(t)
	l := mgl64.DegToRad(280.460 + 0.9856474*d)
	g := mgl64.DegToRad(357.528 + 0.9856003*d)
	lambda := l + mgl64.DegToRad(1.915)*math.Sin(g) + mgl64.DegToRad(0.020)*math.Sin(2*g)
	return eclipticToEquatorial(lambda, 0, obliquity(d))
}

// MoonEquatorial returns the moon's right ascension and declination in radians.
func MoonEquatorial(t time.Time) (ra, dec float64) {
	d := daysSinceJ2000(t)
	l := mgl64.DegToRad(218.316 + 13.176396*d)
	m := mgl64.DegToRad(134.963 + 13.064993*d)
	f := mgl64.DegToRad(93.272 + 13.229350*d)
	lambda := l + mgl64.DegToRad(6.289)*math.Sin(m)
	beta := mgl64.DegToRad(5.128) * math.Sin(f)
	return eclipticToEquatorial(lambda, beta, obliquity(d))
}

func eclipticToEquatorial(lambda, beta, eps float64) (ra, dec float64) {
	sinL, cosL := math.Sincos(lambda)
	sinB, cosB := math.Sincos(beta)
	sinE, cosE := math.Sincos(eps)
	ra = math.Atan2(sinL*cosE-sinB/cosB*sinE, cosL)
	dec = math.Asin(sinB*cosE + cosB*sinE*sinL)
	return ra, dec
}

// ECEFDirection returns the unit vector from the earth's centre towards a body at
// (ra, dec) at time t, in the earth-fixed frame.
func ECEFDirection(t time.Time, ra, dec float64) mgl64.Vec3 {
	lon := ra - gmst(daysSinceJ2000(t))
	sinD, cosD := math.Sincos(dec)
	sinL, cosL := math.Sincos(lon)
	return mgl64.Vec3{cosD * cosL, cosD * sinL, sinD}
}

// Body is one light source of the rig.
type Body struct {
	Name      string
	Color     quarkgl.Color
	Intensity float32

	// Direction points from the observer towards the body in the local frame.
	Direction mgl64.Vec3
	// Up reports whether the body is above the horizon.
	Up bool
}

// Rig holds a sun light, a moon light and an ambient term.
type Rig struct {
	Sun     Body
	Moon    Body
	Ambient quarkgl.Color

	resolved bool
}

// NewRig returns a rig lit from overhead until its first successful Update.
func NewRig() *Rig {
	overhead := mgl64.Vec3{1, 1, 1}.Normalize()
	return &Rig{
		Sun: Body{
			Name:      "sun",
			Color:     quarkgl.Hex(0xffffff),
			Intensity: 0.8,
			Direction: overhead,
			Up:        true,
		},
		Moon: Body{
			Name:      "moon",
			Color:     quarkgl.Hex(0x99aacc),
			Intensity: 0.25,
		},
		Ambient: quarkgl.Hex(0x404040),
	}
}

// Resolved reports whether the rig has been positioned from real ephemerides.
func (r *Rig) Resolved() bool { return r.resolved }

// Update positions the bodies for time now as seen from the origin of f, whose +Y
// axis is local up. It returns false and leaves the rig unchanged when f cannot be
// resolved into the FIXED frame.
func (r *Rig) Update(now time.Time, f frame.Frame) bool {
	toLocal := mgl64.QuatIdent()
	if !f.IsFixed() {
		p, err := frame.PoseIn(f.Entity(), frame.Fixed)
		if err != nil {
			return false
		}
		toLocal = p.Orientation.Inverse()
	}

	ra, dec := SunEquatorial(now)
	r.Sun.place(toLocal.Rotate(ECEFDirection(now, ra, dec)))
	ra, dec = MoonEquatorial(now)
	r.Moon.place(toLocal.Rotate(ECEFDirection(now, ra, dec)))
	r.resolved = true
	return true
}

func (b *Body) place(dir mgl64.Vec3) {
	b.Direction = dir.Normalize()
	b.Up = b.Direction.Y() > 0
}

// Light returns the rig as renderer lighting.
func (r *Rig) Light() quarkgl.Light {
	return quarkgl.Light{
		Mode:        quarkgl.LightAmbientDirectional,
		Ambient:     r.Ambient,
		Directional: []quarkgl.DirectionalLight{r.Sun.light(), r.Moon.light()},
	}
}

func (b Body) light() quarkgl.DirectionalLight {
	d := b.Direction.Mul(-1)
	return quarkgl.DirectionalLight{
		Enabled:   b.Up,
		Dir:       quarkgl.V3(float32(d.X()), float32(d.Y()), float32(d.Z())),
		Color:     b.Color,
		Intensity: b.Intensity,
	}
}
