// Package model loads OBJ meshes with an optional diffuse texture into
// re-centered, read-only models.
package model

import (
	"github.com/Faultbox/objmodel/pkg/math"
)

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Size returns the per-axis extents (Max - Min).
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Center(b.Max)
}
