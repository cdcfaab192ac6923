package quarkgl

// NewBoxGeometry returns a box centred on the origin with the given extents.
// Faces wind counter-clockwise when seen from outside.
func NewBoxGeometry(w, h, d Scalar) *Geometry {
	x, y, z := w/2, h/2, d/2
	corners := [8]Vec3{
		V3(-x, -y, -z), V3(x, -y, -z), V3(x, y, -z), V3(-x, y, -z),
		V3(-x, -y, z), V3(x, -y, z), V3(x, y, z), V3(-x, y, z),
	}
	g := &Geometry{Vertices: make([]Vertex, len(corners))}
	for i, c := range corners {
		g.Vertices[i] = Vertex{Pos: c}
	}
	g.Indices = []uint16{
		4, 5, 6, 4, 6, 7, // +z
		1, 0, 3, 1, 3, 2, // -z
		5, 1, 2, 5, 2, 6, // +x
		0, 4, 7, 0, 7, 3, // -x
		7, 6, 2, 7, 2, 3, // +y
		0, 1, 5, 0, 5, 4, // -y
	}
	return g
}
