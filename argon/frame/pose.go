package frame

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Pose is a rigid transform: a position and an orientation.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// Identity returns the pose at the origin with no rotation.
func Identity() Pose {
	return Pose{Orientation: mgl64.QuatIdent()}
}

// NewPose returns a pose with a normalized orientation.
func NewPose(pos mgl64.Vec3, q mgl64.Quat) Pose {
	return Pose{Position: pos, Orientation: q.Normalize()}
}

// Mul composes p with child, where child is expressed relative to p.
// The result is child expressed in p's parent frame.
func (p Pose) Mul(child Pose) Pose {
	return Pose{
		Position:    p.Position.Add(p.Orientation.Rotate(child.Position)),
		Orientation: p.Orientation.Mul(child.Orientation).Normalize(),
	}
}

// Inverse returns the pose that undoes p.
func (p Pose) Inverse() Pose {
	inv := p.Orientation.Inverse()
	return Pose{
		Position:    inv.Rotate(p.Position).Mul(-1),
		Orientation: inv,
	}
}

// Apply transforms a point from p's local space into its parent space.
func (p Pose) Apply(v mgl64.Vec3) mgl64.Vec3 {
	return p.Position.Add(p.Orientation.Rotate(v))
}

// ApproxEqual reports whether the positions are within eps metres of each other and
// the unit orientations differ by at most eps per component. q and -q are equal.
func (p Pose) ApproxEqual(o Pose, eps float64) bool {
	if p.Position.Sub(o.Position).Len() > eps {
		return false
	}
	q1, q2 := p.Orientation.Normalize(), o.Orientation.Normalize()
	if q1.Dot(q2) < 0 {
		q2 = q2.Scale(-1)
	}
	return q1.Sub(q2).Len() <= eps
}

func (p Pose) String() string {
	v := p.Orientation.V
	return fmt.Sprintf("pos=(%.3f, %.3f, %.3f) quat=(%.4f, %.4f, %.4f, %.4f)",
		p.Position.X(), p.Position.Y(), p.Position.Z(), v.X(), v.Y(), v.Z(), p.Orientation.W)
}
