package quarkgl

import (
	"cmp"
	"slices"
)

// Ray is a half-line with a unit direction.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t Scalar) Vec3 { return r.Origin.Add(r.Dir.Mul(t)) }

// Intersection is a ray hit against a node's mesh.
type Intersection struct {
	Distance Scalar
	Point    Vec3
	Node     *Node
}

// Raycaster picks nodes along a ray. World matrices must be current
// (Node.UpdateMatrixWorld) before intersecting.
type Raycaster struct {
	Ray  Ray
	Near Scalar
	Far  Scalar
}

func NewRaycaster() *Raycaster {
	return &Raycaster{Far: 1e9}
}

// SetFromCamera aims the ray from the camera through ndc ((0,0) is the view centre).
func (rc *Raycaster) SetFromCamera(ndc Vec2, cam Camera, aspect Scalar) {
	rc.Ray.Origin = cam.Position

	rot := cam.Rotation
	if rot == (Quat{}) {
		rot = QuatIdentity()
	}
	fallback := Normalize(rot.Rotate(V3(0, 0, -1)))

	vp := Mat4Mul(cam.ProjectionMatrix(aspect), cam.View())
	inv, ok := Mat4Invert(vp)
	if !ok {
		rc.Ray.Dir = fallback
		return
	}
	p := Mat4MulPoint(inv, V3(ndc.X, ndc.Y, 0.5))
	dir := Normalize(p.Sub(cam.Position))
	if dir == (Vec3{}) {
		dir = fallback
	}
	rc.Ray.Dir = dir
}

// IntersectNodes tests the ray against each node's mesh and returns one hit per node,
// nearest first. Nodes without a mesh are skipped.
func (rc *Raycaster) IntersectNodes(nodes []*Node) []Intersection {
	var hits []Intersection
	for _, n := range nodes {
		if n == nil || n.Mesh == nil || n.Mesh.Geometry == nil {
			continue
		}
		if d, ok := rc.intersectMesh(n.world, n.Mesh.Geometry); ok {
			hits = append(hits, Intersection{Distance: d, Point: rc.Ray.At(d), Node: n})
		}
	}
	slices.SortStableFunc(hits, func(a, b Intersection) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return hits
}

func (rc *Raycaster) intersectMesh(model Mat4, g *Geometry) (Scalar, bool) {
	best := rc.Far
	hit := false
	for i := 0; i+2 < len(g.Indices); i += 3 {
		i0, i1, i2 := int(g.Indices[i]), int(g.Indices[i+1]), int(g.Indices[i+2])
		if i0 >= len(g.Vertices) || i1 >= len(g.Vertices) || i2 >= len(g.Vertices) {
			continue
		}
		a := Mat4MulPoint(model, g.Vertices[i0].Pos)
		b := Mat4MulPoint(model, g.Vertices[i1].Pos)
		c := Mat4MulPoint(model, g.Vertices[i2].Pos)
		t, ok := intersectTriangle(rc.Ray, a, b, c)
		if !ok || t < rc.Near || t > best {
			continue
		}
		best = t
		hit = true
	}
	return best, hit
}

// intersectTriangle is a two-sided Möller–Trumbore test. Barycentric bounds are
// widened by edgeEps so a ray through a shared edge hits at least one triangle.
func intersectTriangle(r Ray, a, b, c Vec3) (Scalar, bool) {
	const (
		eps     = 1e-7
		edgeEps = 1e-5
	)
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := Cross(r.Dir, e2)
	det := Dot(e1, p)
	if det > -eps && det < eps {
		return 0, false
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := Dot(s, p) * inv
	if u < -edgeEps || u > 1+edgeEps {
		return 0, false
	}
	q := Cross(s, e1)
	v := Dot(r.Dir, q) * inv
	if v < -edgeEps || u+v > 1+edgeEps {
		return 0, false
	}
	t := Dot(e2, q) * inv
	if t <= 0 {
		return 0, false
	}
	return t, true
}
