package quarkgl

// Material is a minimal surface description.
type Material struct {
	Color Color
}

// LightMode defines minimal lighting options.
type LightMode uint8

const (
	LightOff LightMode = iota
	LightAmbientDirectional
)

// DirectionalLight is a light at infinity.
type DirectionalLight struct {
	Enabled   bool
	Dir       Vec3 // direction the light travels, *towards* the scene
	Color     Color
	Intensity Scalar // 0..1
}

// Light is the scene lighting: an ambient term plus any number of directional lights.
type Light struct {
	Mode        LightMode
	Ambient     Color
	Directional []DirectionalLight
}

// Camera describes the viewing transform by pose and projection.
type Camera struct {
	Position Vec3
	Rotation Quat

	// Projection, when non-zero, is used as is (host-supplied frustum).
	// Otherwise a perspective projection is built from FOVYRad, Near and Far.
	Projection Mat4

	FOVYRad Scalar
	Near    Scalar
	Far     Scalar
}

// View returns the camera view matrix (inverse of the camera pose).
func (c Camera) View() Mat4 {
	q := c.Rotation
	if q == (Quat{}) {
		q = QuatIdentity()
	}
	inv := Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
	m := inv.Mat4()
	t := inv.Rotate(c.Position).Mul(-1)
	m[12] = t.X
	m[13] = t.Y
	m[14] = t.Z
	return m
}

// ProjectionMatrix returns the projection for a target aspect.
func (c Camera) ProjectionMatrix(aspect Scalar) Mat4 {
	if c.Projection != (Mat4{}) {
		return c.Projection
	}
	fov := c.FOVYRad
	if fov == 0 {
		fov = Scalar(1.0)
	}
	return Mat4Perspective(fov, aspect, c.Near, c.Far)
}

// Vertex is a mesh vertex.
type Vertex struct {
	Pos Vec3
}

// Geometry is a shareable triangle list.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint16
}

// Mesh pairs a geometry with a material.
type Mesh struct {
	Geometry *Geometry
	Material Material
}

// Scene is a node graph plus camera and lights.
type Scene struct {
	Camera Camera
	Light  Light
	Root   *Node
}

// CreateScene returns an empty scene with a default camera and light.
func CreateScene() *Scene {
	return &Scene{
		Camera: Camera{
			Position: V3(0, 0, 3),
			Rotation: QuatIdentity(),
			FOVYRad:  Scalar(1.0),
			Near:     Scalar(0.05),
			Far:      Scalar(100),
		},
		Light: Light{
			Mode:    LightAmbientDirectional,
			Ambient: Hex(0x404040),
			Directional: []DirectionalLight{{
				Enabled:   true,
				Dir:       Normalize(V3(-1, -1, -1)),
				Color:     Hex(0xFFFFFF),
				Intensity: Scalar(0.75),
			}},
		},
		Root: NewNode("scene"),
	}
}

// Add attaches n to the scene root.
func (s *Scene) Add(n *Node) {
	if s == nil || n == nil {
		return
	}
	s.Root.Add(n)
}
