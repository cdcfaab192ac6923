package boxes

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"geobox/argon/frame"
	"geobox/argon/quarkgl"
)

// Box is a pickable box and the anchor that keeps its real-world pose.
type Box struct {
	Index  int
	Node   *quarkgl.Node
	Anchor *frame.Entity
}

func (b *Box) String() string {
	if b == nil {
		return "<none>"
	}
	return b.Node.Name
}

// Color returns the box's current material color.
func (b *Box) Color() quarkgl.Color { return b.Node.Mesh.Material.Color }

func (b *Box) setColor(c quarkgl.Color) { b.Node.Mesh.Material.Color = c }

// spawn places cfg.Boxes boxes with random pose, scale and color inside cfg's bounds.
func (t *Task) spawn(cfg Config) {
	if cfg.Boxes <= 0 {
		return
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	between := func(lo, hi float64) float64 { return lo + rng.Float64()*(hi-lo) }

	for i := 0; i < cfg.Boxes; i++ {
		pos := mgl64.Vec3{
			between(cfg.Min.X(), cfg.Max.X()),
			between(cfg.Min.Y(), cfg.Max.Y()),
			between(cfg.Min.Z(), cfg.Max.Z()),
		}
		rot := mgl64.AnglesToQuat(
			rng.Float64()*2*math.Pi,
			rng.Float64()*2*math.Pi,
			rng.Float64()*2*math.Pi,
			mgl64.XYZ,
		)
		scale := mgl64.Vec3{between(1, 4), between(1, 4), between(1, 4)}
		color := quarkgl.Hex(rng.Uint32() & 0xffffff)
		t.AddBox(frame.NewPose(pos, rot), scale, color)
	}
}

// AddBox adds a box to the world group at pose p relative to the box group anchor.
func (t *Task) AddBox(p frame.Pose, scale mgl64.Vec3, color quarkgl.Color) *Box {
	i := len(t.boxes)
	name := fmt.Sprintf("box %d", i)

	n := quarkgl.NewMeshNode(name, t.geom, quarkgl.Material{Color: color})
	n.Scale = toVec3(scale)
	copyPose(n, p)

	b := &Box{
		Index:  i,
		Node:   n,
		Anchor: frame.NewEntityAt(name, frame.Of(t.sceneAnchor), p),
	}
	t.world.Add(n)
	t.boxes = append(t.boxes, b)
	t.byNode[n] = b
	return b
}

// worldBoxes returns the nodes of boxes resting in the world group.
func (t *Task) worldBoxes() []*quarkgl.Node {
	out := make([]*quarkgl.Node, 0, len(t.boxes))
	for _, b := range t.boxes {
		if b.Node.Parent() == t.world {
			out = append(out, b.Node)
		}
	}
	return out
}
