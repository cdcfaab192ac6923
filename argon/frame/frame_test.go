package frame

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func yaw(rad float64) mgl64.Quat { return mgl64.QuatRotate(rad, mgl64.Vec3{0, 1, 0}) }

func TestPoseInverse(t *testing.T) {
	p := NewPose(mgl64.Vec3{1, 2, 3}, yaw(0.7).Mul(mgl64.QuatRotate(0.3, mgl64.Vec3{1, 0, 0})))
	assert.True(t, p.Mul(p.Inverse()).ApproxEqual(Identity(), eps))
	assert.True(t, p.Inverse().Mul(p).ApproxEqual(Identity(), eps))
}

func TestPoseApproxEqual(t *testing.T) {
	q := yaw(0.7)
	ecef := NewPose(mgl64.Vec3{6378137, 0, 0}, q)

	tests := []struct {
		name string
		a, b Pose
		eps  float64
		want bool
	}{
		{"noise at the origin", Identity(), NewPose(mgl64.Vec3{0, 0, -2.2e-16}, mgl64.QuatIdent()), eps, true},
		{"exact at earth radius", ecef, ecef, 1e-6, true},
		{"millimetres at earth radius", ecef, NewPose(mgl64.Vec3{6378137.0005, 0, 0}, q), 1e-3, true},
		{"metres at earth radius", ecef, NewPose(mgl64.Vec3{6378142, 0, 0}, q), 1e-6, false},
		{"negated quaternion", NewPose(mgl64.Vec3{}, q), Pose{Orientation: q.Scale(-1)}, eps, true},
		{"small rotation", NewPose(mgl64.Vec3{}, q), NewPose(mgl64.Vec3{}, yaw(0.7+1e-3)), 1e-6, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.ApproxEqual(tt.b, tt.eps))
			assert.Equal(t, tt.want, tt.b.ApproxEqual(tt.a, tt.eps))
		})
	}
}

func TestPoseApply(t *testing.T) {
	p := NewPose(mgl64.Vec3{10, 0, 0}, yaw(math.Pi/2))
	got := p.Apply(mgl64.Vec3{0, 0, -1})
	// Rotating -Z by +90 degrees about Y gives -X.
	assert.InDelta(t, 0, got.Sub(mgl64.Vec3{9, 0, 0}).Len(), eps, "got %v", got)
}

func TestPoseInChain(t *testing.T) {
	origin := NewEntityAt("origin", Fixed, NewPose(mgl64.Vec3{100, 0, 0}, yaw(math.Pi/2)))
	child := NewEntityAt("child", Of(origin), NewPose(mgl64.Vec3{0, 0, -5}, mgl64.QuatIdent()))

	inFixed, err := PoseIn(child, Fixed)
	require.NoError(t, err)
	assert.InDelta(t, 0, inFixed.Position.Sub(mgl64.Vec3{95, 0, 0}).Len(), eps, "got %v", inFixed)

	inOrigin, err := PoseIn(child, Of(origin))
	require.NoError(t, err)
	v, _ := child.Value()
	assert.True(t, inOrigin.ApproxEqual(v, eps))
}

func TestConvertRoundTrip(t *testing.T) {
	origin := NewEntityAt("origin", Fixed, NewPose(mgl64.Vec3{6378137, 0, 0}, yaw(0.2)))
	scene := NewEntityAt("scene", Fixed, NewPose(mgl64.Vec3{6378140, 1, 2}, yaw(1.1)))
	device := NewEntityAt("device", Of(origin), NewPose(mgl64.Vec3{3, 1.6, -4}, yaw(-0.4)))
	box := NewEntityAt("box", Of(scene), NewPose(mgl64.Vec3{-7, 3, 12}, yaw(2.5)))
	before, _ := box.Value()

	toDevice, err := Convert(box, Of(device))
	require.NoError(t, err)
	box.Apply(toDevice)
	assert.Equal(t, device, box.Frame().Entity())

	back, err := Convert(box, Of(scene))
	require.NoError(t, err)
	box.Apply(back)

	after, _ := box.Value()
	assert.True(t, after.ApproxEqual(before, 1e-6), "before %v after %v", before, after)
}

func TestConvertIsPure(t *testing.T) {
	scene := NewEntityAt("scene", Fixed, Identity())
	box := NewEntityAt("box", Of(scene), NewPose(mgl64.Vec3{1, 2, 3}, mgl64.QuatIdent()))

	_, err := Convert(box, Fixed)
	require.NoError(t, err)
	assert.Equal(t, scene, box.Frame().Entity())
}

func TestConvertFloatingRoot(t *testing.T) {
	// An undefined local origin floats: poses relative to it resolve among themselves
	// but cannot reach FIXED.
	origin := NewEntity("origin")
	device := NewEntityAt("device", Of(origin), NewPose(mgl64.Vec3{0, 1.6, 0}, mgl64.QuatIdent()))

	p, err := PoseIn(device, Of(origin))
	require.NoError(t, err)
	assert.InDelta(t, 1.6, p.Position.Y(), eps)

	_, err = Convert(device, Fixed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConversion))

	var ce *ConversionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "device", ce.Entity)
	assert.Equal(t, "FIXED", ce.Target)
}

func TestConvertUndefinedEntity(t *testing.T) {
	e := NewEntity("nowhere")
	_, err := Convert(e, Fixed)
	assert.ErrorIs(t, err, ErrConversion)
}

func TestConvertSelf(t *testing.T) {
	e := NewEntityAt("e", Fixed, Identity())
	_, err := Convert(e, Of(e))
	assert.ErrorIs(t, err, ErrConversion)
}

func TestResolveCycle(t *testing.T) {
	a := NewEntity("a")
	b := NewEntityAt("b", Of(a), Identity())
	a.SetPose(Of(b), Identity())

	_, err := PoseIn(a, Fixed)
	assert.ErrorIs(t, err, ErrConversion)
}

func TestEntityClear(t *testing.T) {
	e := NewEntityAt("e", Fixed, Identity())
	require.True(t, e.Defined())
	e.Clear()
	assert.False(t, e.Defined())
	assert.True(t, e.Frame().IsFixed())
	assert.NotEqual(t, NewEntity("x").ID, NewEntity("x").ID)
}
