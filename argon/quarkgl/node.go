package quarkgl

// Node is a scene graph transform node. A node belongs to at most one parent;
// adding it to another parent detaches it first.
type Node struct {
	Name string

	Position Vec3
	Rotation Quat
	Scale    Vec3
	Visible  bool

	Mesh *Mesh

	parent   *Node
	children []*Node
	world    Mat4
}

func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: QuatIdentity(),
		Scale:    V3(1, 1, 1),
		Visible:  true,
		world:    Mat4Identity(),
	}
}

// NewMeshNode returns a node carrying a mesh.
func NewMeshNode(name string, g *Geometry, m Material) *Node {
	n := NewNode(name)
	n.Mesh = &Mesh{Geometry: g, Material: m}
	return n
}

func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Children() []*Node { return n.children }

// Add attaches c as a child of n, detaching it from its current parent.
func (n *Node) Add(c *Node) {
	if c == nil || c == n {
		return
	}
	if c.parent != nil {
		c.parent.Remove(c)
	}
	c.parent = n
	n.children = append(n.children, c)
}

// Remove detaches c from n. It reports whether c was a child of n.
func (n *Node) Remove(c *Node) bool {
	for i, ch := range n.children {
		if ch != c {
			continue
		}
		copy(n.children[i:], n.children[i+1:])
		n.children[len(n.children)-1] = nil
		n.children = n.children[:len(n.children)-1]
		c.parent = nil
		return true
	}
	return false
}

// LocalMatrix returns the node transform relative to its parent.
func (n *Node) LocalMatrix() Mat4 {
	return Mat4FromTRS(n.Position, n.Rotation, n.Scale)
}

// WorldMatrix returns the transform computed by the last UpdateMatrixWorld.
func (n *Node) WorldMatrix() Mat4 { return n.world }

// UpdateMatrixWorld recomputes world matrices of n and its descendants.
func (n *Node) UpdateMatrixWorld() {
	if n.parent != nil {
		n.world = Mat4Mul(n.parent.world, n.LocalMatrix())
	} else {
		n.world = n.LocalMatrix()
	}
	for _, c := range n.children {
		c.UpdateMatrixWorld()
	}
}

// Traverse calls fn for n and every visible descendant, depth first.
func (n *Node) Traverse(fn func(*Node)) {
	if !n.Visible {
		return
	}
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}
