package boxes

import (
	"github.com/go-gl/mathgl/mgl64"

	"geobox/argon/frame"
	"geobox/argon/quarkgl"
)

// copyPose mirrors p onto the node's local transform. Scale is left alone.
func copyPose(n *quarkgl.Node, p frame.Pose) {
	n.Position = toVec3(p.Position)
	n.Rotation = toQuat(p.Orientation)
}

// nodePose returns the node's local position and rotation as a pose.
func nodePose(n *quarkgl.Node) frame.Pose {
	q := n.Rotation
	return frame.NewPose(
		mgl64.Vec3{float64(n.Position.X), float64(n.Position.Y), float64(n.Position.Z)},
		mgl64.Quat{W: float64(q.W), V: mgl64.Vec3{float64(q.X), float64(q.Y), float64(q.Z)}},
	)
}

func toVec3(v mgl64.Vec3) quarkgl.Vec3 {
	return quarkgl.V3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

func toQuat(q mgl64.Quat) quarkgl.Quat {
	return quarkgl.Quat{X: float32(q.V.X()), Y: float32(q.V.Y()), Z: float32(q.V.Z()), W: float32(q.W)}
}

// toMat4 converts a column-major mgl64 matrix.
func toMat4(m mgl64.Mat4) quarkgl.Mat4 {
	var out quarkgl.Mat4
	for i := range m {
		out[i] = float32(m[i])
	}
	return out
}

func cameraAt(p frame.Pose, proj mgl64.Mat4) quarkgl.Camera {
	return quarkgl.Camera{
		Position:   toVec3(p.Position),
		Rotation:   toQuat(p.Orientation),
		Projection: toMat4(proj),
	}
}
