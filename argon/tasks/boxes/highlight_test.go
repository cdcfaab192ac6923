package boxes

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"geobox/argon/frame"
	"geobox/argon/quarkgl"
)

func frameAt(p mgl64.Vec3) frame.Pose { return frame.NewPose(p, mgl64.QuatIdent()) }

func testBox(i int, c quarkgl.Color) *Box {
	n := quarkgl.NewMeshNode("b", quarkgl.NewBoxGeometry(1, 1, 1), quarkgl.Material{Color: c})
	return &Box{Index: i, Node: n, Anchor: frame.NewEntity("b")}
}

func TestNearest(t *testing.T) {
	a := testBox(0, grey)
	b := testBox(1, grey)
	stray := quarkgl.NewNode("stray")
	byNode := map[*quarkgl.Node]*Box{a.Node: a, b.Node: b}

	assert.Nil(t, Nearest(nil, byNode))
	assert.Equal(t, b, Nearest([]quarkgl.Intersection{{Distance: 1, Node: b.Node}, {Distance: 2, Node: a.Node}}, byNode))
	assert.Equal(t, a, Nearest([]quarkgl.Intersection{{Distance: 1, Node: stray}, {Distance: 2, Node: a.Node}}, byNode))
	assert.Nil(t, Nearest([]quarkgl.Intersection{{Distance: 1, Node: stray}}, byNode))
}

func TestHighlighter(t *testing.T) {
	red := quarkgl.Hex(0xff0000)
	blue := quarkgl.Hex(0x0000ff)
	a := testBox(0, red)
	b := testBox(1, blue)
	var h Highlighter

	h.Restore()
	assert.Nil(t, h.Current())

	h.Apply(a)
	assert.Equal(t, a, h.Current())
	assert.Equal(t, HighlightColor, a.Color())

	h.Apply(a)
	h.Apply(b)
	assert.Equal(t, red, a.Color())
	assert.Equal(t, HighlightColor, b.Color())

	h.Apply(nil)
	assert.Nil(t, h.Current())
	assert.Equal(t, blue, b.Color())
}

func TestBoxString(t *testing.T) {
	var none *Box
	assert.Equal(t, "<none>", none.String())
	assert.Equal(t, "b", testBox(0, grey).String())
}
