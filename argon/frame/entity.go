// Package frame models geospatial anchors and the reference frames their poses are
// expressed in.
//
// An Entity carries an optional pose relative to a Frame: either the earth-centred
// FIXED frame or another entity. An entity without a value is undefined; used as a
// frame it is a floating root, so poses can still be related to it but not to FIXED.
// Conversions are pure: Convert computes a new representation and Entity.Apply
// installs it.
package frame

import (
	"github.com/google/uuid"
)

// Frame selects the coordinate basis a pose is expressed in.
// The zero value is Fixed.
type Frame struct {
	entity *Entity
}

// Fixed is the earth-centred, earth-fixed frame.
var Fixed = Frame{}

// Of returns the frame attached to e.
func Of(e *Entity) Frame {
	return Frame{entity: e}
}

func (f Frame) IsFixed() bool   { return f.entity == nil }
func (f Frame) Entity() *Entity { return f.entity }

func (f Frame) String() string {
	if f.entity == nil {
		return "FIXED"
	}
	return f.entity.Name
}

// Entity is a pose keeper locatable in several reference frames.
type Entity struct {
	ID   uuid.UUID
	Name string

	frame   Frame
	pose    Pose
	defined bool
}

// NewEntity returns an undefined entity.
func NewEntity(name string) *Entity {
	return &Entity{ID: uuid.New(), Name: name}
}

// NewEntityAt returns an entity with pose p relative to f.
func NewEntityAt(name string, f Frame, p Pose) *Entity {
	e := NewEntity(name)
	e.SetPose(f, p)
	return e
}

// SetPose sets the entity's value relative to f.
func (e *Entity) SetPose(f Frame, p Pose) {
	e.frame = f
	e.pose = NewPose(p.Position, p.Orientation)
	e.defined = true
}

// Clear removes the entity's value.
func (e *Entity) Clear() {
	e.frame = Fixed
	e.pose = Pose{}
	e.defined = false
}

// Defined reports whether the entity has a value.
func (e *Entity) Defined() bool { return e.defined }

// Frame returns the frame the entity's value is expressed in.
func (e *Entity) Frame() Frame { return e.frame }

// Value returns the raw pose relative to Frame.
func (e *Entity) Value() (Pose, bool) {
	return e.pose, e.defined
}

// Apply installs a conversion result computed by Convert.
func (e *Entity) Apply(c Converted) {
	e.SetPose(c.Frame, c.Pose)
}

func (e *Entity) String() string {
	if e == nil {
		return "<nil>"
	}
	return e.Name
}
