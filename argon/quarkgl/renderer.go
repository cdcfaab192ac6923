package quarkgl

// Renderer is a fixed-pipeline software renderer.
//
// Create it once and reuse it to avoid allocations.
type Renderer struct {
	Mode       RenderMode
	Depth      bool
	ClearColor Color

	depthBuf []float32
}

// NewRenderer creates a renderer for a given maximum target size.
//
// If enableDepth is true, a depth buffer of size w*h is allocated.
func NewRenderer(w, h int, enableDepth bool) *Renderer {
	r := &Renderer{
		Mode:       RenderSolidFlat,
		Depth:      enableDepth,
		ClearColor: RGB(0, 0, 0),
	}
	if enableDepth && w > 0 && h > 0 {
		r.depthBuf = make([]float32, w*h)
	}
	return r
}

func (r *Renderer) SetRenderMode(m RenderMode) { r.Mode = m }

func (r *Renderer) EnableDepth(on bool, w, h int) {
	r.Depth = on
	if !on {
		r.depthBuf = nil
		return
	}
	if w <= 0 || h <= 0 {
		r.depthBuf = nil
		return
	}
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
}

func (r *Renderer) clearDepth() {
	for i := range r.depthBuf {
		r.depthBuf[i] = 1e9
	}
}

// Render renders a scene into the target. To render one view of several into a
// shared framebuffer, pass a Viewport.
func (r *Renderer) Render(t Target, s *Scene) {
	if r == nil || t == nil || s == nil || s.Root == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.Clear(r.ClearColor)

	if r.Depth {
		r.EnableDepth(true, w, h)
		r.clearDepth()
	}

	aspect := Scalar(w) / Scalar(h)
	view := s.Camera.View()
	proj := s.Camera.ProjectionMatrix(aspect)
	viewProj := Mat4Mul(proj, view)

	s.Root.UpdateMatrixWorld()
	s.Root.Traverse(func(n *Node) {
		if n.Mesh == nil || n.Mesh.Geometry == nil {
			return
		}
		r.renderMesh(t, w, h, viewProj, n.world, n.Mesh, s.Light)
	})
}

func (r *Renderer) renderMesh(t Target, w, h int, viewProj, model Mat4, m *Mesh, light Light) {
	g := m.Geometry
	if len(g.Vertices) == 0 || len(g.Indices) < 3 {
		return
	}

	for i := 0; i+2 < len(g.Indices); i += 3 {
		i0 := int(g.Indices[i+0])
		i1 := int(g.Indices[i+1])
		i2 := int(g.Indices[i+2])
		if i0 >= len(g.Vertices) || i1 >= len(g.Vertices) || i2 >= len(g.Vertices) {
			continue
		}

		w0 := Mat4MulPoint(model, g.Vertices[i0].Pos)
		w1 := Mat4MulPoint(model, g.Vertices[i1].Pos)
		w2 := Mat4MulPoint(model, g.Vertices[i2].Pos)

		p0 := Mat4MulV4(viewProj, Vec4{X: w0.X, Y: w0.Y, Z: w0.Z, W: 1})
		p1 := Mat4MulV4(viewProj, Vec4{X: w1.X, Y: w1.Y, Z: w1.Z, W: 1})
		p2 := Mat4MulV4(viewProj, Vec4{X: w2.X, Y: w2.Y, Z: w2.Z, W: 1})

		// Trivial clip: drop triangles touching or behind the eye plane.
		if p0.W < minClipW || p1.W < minClipW || p2.W < minClipW {
			continue
		}

		ndc0 := clipToNDC(p0)
		ndc1 := clipToNDC(p1)
		ndc2 := clipToNDC(p2)
		if outsideFrustum(ndc0, ndc1, ndc2) {
			continue
		}

		x0, y0 := ndcToScreen(ndc0, w, h)
		x1, y1 := ndcToScreen(ndc1, w, h)
		x2, y2 := ndcToScreen(ndc2, w, h)

		c := m.Material.Color
		if light.Mode == LightAmbientDirectional {
			c = shade(c, light, triangleNormal(w0, w1, w2))
		}

		switch r.Mode {
		case RenderWireframe:
			r.drawLine(t, x0, y0, x1, y1, c)
			r.drawLine(t, x1, y1, x2, y2, c)
			r.drawLine(t, x2, y2, x0, y0, c)
		default:
			r.fillTriangleFlat(t, w, h, x0, y0, ndc0.Z, x1, y1, ndc1.Z, x2, y2, ndc2.Z, c)
		}
	}
}

const minClipW = 1e-3

type ndcPoint struct {
	X, Y, Z float32
}

func clipToNDC(p Vec4) ndcPoint {
	invW := 1.0 / p.W
	return ndcPoint{X: p.X * invW, Y: p.Y * invW, Z: p.Z * invW}
}

func outsideFrustum(a, b, c ndcPoint) bool {
	switch {
	case a.X < -1 && b.X < -1 && c.X < -1, a.X > 1 && b.X > 1 && c.X > 1:
		return true
	case a.Y < -1 && b.Y < -1 && c.Y < -1, a.Y > 1 && b.Y > 1 && c.Y > 1:
		return true
	case a.Z > 1 && b.Z > 1 && c.Z > 1:
		return true
	}
	return false
}

func ndcToScreen(p ndcPoint, w, h int) (x, y int) {
	sx := (p.X*0.5 + 0.5) * float32(w-1)
	sy := (1 - (p.Y*0.5 + 0.5)) * float32(h-1)
	return int(sx + 0.5), int(sy + 0.5)
}

// Project maps a world point to pixel coordinates in a w x h target.
// ok is false when the point is behind the camera or outside the depth range.
func Project(cam Camera, p Vec3, w, h int) (x, y int, ok bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	vp := Mat4Mul(cam.ProjectionMatrix(Scalar(w)/Scalar(h)), cam.View())
	c := Mat4MulV4(vp, Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
	if c.W < minClipW {
		return 0, 0, false
	}
	n := clipToNDC(c)
	if n.Z < -1 || n.Z > 1 {
		return 0, 0, false
	}
	x, y = ndcToScreen(n, w, h)
	return x, y, true
}

func triangleNormal(a, b, c Vec3) Vec3 {
	return Normalize(Cross(b.Sub(a), c.Sub(a)))
}

// shade lights a base color with the ambient term plus every enabled directional light.
func shade(base Color, l Light, n Vec3) Color {
	rr := Scalar(l.Ambient.R) / 255
	gg := Scalar(l.Ambient.G) / 255
	bb := Scalar(l.Ambient.B) / 255
	for _, d := range l.Directional {
		if !d.Enabled {
			continue
		}
		ld := Normalize(d.Dir)
		if ld == (Vec3{}) {
			continue
		}
		k := Dot(n, ld.Mul(-1))
		if k <= 0 {
			continue
		}
		k *= Clamp01(d.Intensity)
		rr += k * Scalar(d.Color.R) / 255
		gg += k * Scalar(d.Color.G) / 255
		bb += k * Scalar(d.Color.B) / 255
	}
	return Color{
		R: uint8(Clamp01(rr) * Scalar(base.R)),
		G: uint8(Clamp01(gg) * Scalar(base.G)),
		B: uint8(Clamp01(bb) * Scalar(base.B)),
		A: base.A,
	}
}

func (r *Renderer) depthTest(w int, x, y int, z float32) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	if x < 0 || y < 0 || x >= w {
		return false
	}
	idx := y*w + x
	if idx < 0 || idx >= len(r.depthBuf) {
		return false
	}
	// NDC z is typically in [-1,1]. Map to [0,1].
	d := (z*0.5 + 0.5)
	if d < 0 {
		d = 0
	}
	if d > 1 {
		d = 1
	}
	if d >= r.depthBuf[idx] {
		return false
	}
	r.depthBuf[idx] = d
	return true
}

func (r *Renderer) drawLine(t Target, x0, y0, x1, y1 int, c Color) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		t.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (r *Renderer) fillTriangleFlat(t Target, w, h int, x0, y0 int, z0 float32, x1, y1 int, z1 float32, x2, y2 int, z2 float32, c Color) {
	minX, maxX := min3(x0, x1, x2), max3(x0, x1, x2)
	minY, maxY := min3(y0, y1, y2), max3(y0, y1, y2)
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= w {
		maxX = w - 1
	}
	if maxY >= h {
		maxY = h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	area := edgeFn(x0, y0, x1, y1, x2, y2)
	if area == 0 {
		return
	}
	// Accept either winding: boxes are closed, and the depth test resolves overlap.
	if area < 0 {
		x1, y1, z1, x2, y2, z2 = x2, y2, z2, x1, y1, z1
		area = -area
	}
	invArea := 1.0 / float32(area)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(x1, y1, x2, y2, x, y)
			w1 := edgeFn(x2, y2, x0, y0, x, y)
			w2 := edgeFn(x0, y0, x1, y1, x, y)
			if (w0 | w1 | w2) < 0 {
				continue
			}
			a0 := float32(w0) * invArea
			a1 := float32(w1) * invArea
			a2 := float32(w2) * invArea
			z := a0*z0 + a1*z1 + a2*z2
			if !r.depthTest(w, x, y, z) {
				continue
			}
			t.SetPixel(x, y, c)
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min3(a, b, c int) int {
	if a > b {
		a = b
	}
	if a > c {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if a < b {
		a = b
	}
	if a < c {
		a = c
	}
	return a
}
