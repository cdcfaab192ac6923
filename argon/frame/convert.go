package frame

import (
	"errors"
	"fmt"
)

// ErrConversion is returned when an entity cannot be expressed in the requested frame,
// for example because the chain reaches a local origin that is not yet geolocated.
var ErrConversion = errors.New("reference frame conversion failed")

// maxDepth bounds frame chains so that a cycle cannot hang resolution.
const maxDepth = 32

// ConversionError describes a failed conversion.
type ConversionError struct {
	Entity string
	Target string
	Reason string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s: %s", ErrConversion, e.Entity, e.Target, e.Reason)
}

func (e *ConversionError) Is(target error) bool { return target == ErrConversion }

// Converted is an entity pose re-expressed in a new frame.
type Converted struct {
	Frame Frame
	Pose  Pose
}

// PoseIn returns the pose of e expressed in f. It does not modify e.
func PoseIn(e *Entity, f Frame) (Pose, error) {
	if e == nil || !e.defined {
		return Pose{}, &ConversionError{Entity: e.String(), Target: f.String(), Reason: "entity has no pose"}
	}
	if e.frame == f {
		return e.pose, nil
	}
	rootE, pe, err := resolve(e)
	if err != nil {
		return Pose{}, &ConversionError{Entity: e.Name, Target: f.String(), Reason: err.Error()}
	}
	rootF, pf, err := resolveFrame(f)
	if err != nil {
		return Pose{}, &ConversionError{Entity: e.Name, Target: f.String(), Reason: err.Error()}
	}
	if rootE != rootF {
		return Pose{}, &ConversionError{
			Entity: e.Name,
			Target: f.String(),
			Reason: fmt.Sprintf("no common root (%s vs %s)", rootName(rootE), rootName(rootF)),
		}
	}
	return pf.Inverse().Mul(pe), nil
}

// Convert computes the representation of e relative to f.
// Install the result with Entity.Apply.
func Convert(e *Entity, f Frame) (Converted, error) {
	if f.entity == e && e != nil {
		return Converted{}, &ConversionError{Entity: e.Name, Target: f.String(), Reason: "entity cannot be its own frame"}
	}
	p, err := PoseIn(e, f)
	if err != nil {
		return Converted{}, err
	}
	return Converted{Frame: f, Pose: p}, nil
}

func resolveFrame(f Frame) (*Entity, Pose, error) {
	if f.IsFixed() {
		return nil, Identity(), nil
	}
	return resolve(f.entity)
}

// resolve walks e's frame chain and returns the root it ends at (nil for FIXED, or
// an undefined entity acting as a floating root) and e's pose relative to that root.
func resolve(e *Entity) (*Entity, Pose, error) {
	acc := Identity()
	cur := e
	for depth := 0; depth < maxDepth; depth++ {
		if !cur.defined {
			return cur, acc, nil
		}
		acc = cur.pose.Mul(acc)
		if cur.frame.IsFixed() {
			return nil, acc, nil
		}
		cur = cur.frame.entity
	}
	return nil, Pose{}, fmt.Errorf("frame chain deeper than %d", maxDepth)
}

func rootName(e *Entity) string {
	if e == nil {
		return "FIXED"
	}
	return e.Name
}
