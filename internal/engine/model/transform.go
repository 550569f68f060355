package model

import (
	"github.com/Faultbox/objmodel/pkg/math"
)

// Transform is a model's placement in the world.
// Rotation holds Euler angles in degrees, applied X, then Y, then Z.
type Transform struct {
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3
}

// DefaultTransform returns a transform at the origin with no rotation and unit scale.
func DefaultTransform() Transform {
	return Transform{Scale: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// NewTransform builds a transform from position, rotation (degrees) and scale.
func NewTransform(position, rotation, scale math.Vec3) Transform {
	return Transform{Position: position, Rotation: rotation, Scale: scale}
}

// Matrix returns Position * Rotation * Scale.
func (t Transform) Matrix() math.Mat4 {
	m := math.Translate(t.Position.X, t.Position.Y, t.Position.Z)
	m = m.Mul(math.RotateZ(math.Radians(t.Rotation.Z)))
	m = m.Mul(math.RotateY(math.Radians(t.Rotation.Y)))
	m = m.Mul(math.RotateX(math.Radians(t.Rotation.X)))
	return m.Mul(math.Scale(t.Scale.X, t.Scale.Y, t.Scale.Z))
}
