package model

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Faultbox/objmodel/internal/engine/texture"
	"github.com/Faultbox/objmodel/pkg/formats"
	"github.com/Faultbox/objmodel/pkg/math"
)

// ErrIndexOutOfRange is returned by the indexed accessors.
var ErrIndexOutOfRange = errors.New("index out of range")

// Model is a loaded mesh plus an optional diffuse texture.
//
// Vertex positions are stored relative to the center of their bounding box.
// The geometry never changes after loading, so a Model may be read from
// several goroutines at once. Release is not safe to call concurrently with
// readers of Texture.
type Model struct {
	transform Transform

	verts     []math.Vec3
	texCoords []math.Vec2
	normals   []math.Vec3
	faces     []formats.Face

	boundsSize math.Vec3 // extents of the original positions
	center     math.Vec3 // offset subtracted from every vertex
	bounds     Bounds    // box of the re-centered positions

	texture *texture.Texture
}

// NumVerts returns the number of vertex positions.
func (m *Model) NumVerts() int { return len(m.verts) }

// NumFaces returns the number of triangles.
func (m *Model) NumFaces() int { return len(m.faces) }

// NumTexCoords returns the number of texture coordinates.
func (m *Model) NumTexCoords() int { return len(m.texCoords) }

// NumNormals returns the number of normals.
func (m *Model) NumNormals() int { return len(m.normals) }

// Vert returns the re-centered vertex position at index.
func (m *Model) Vert(index int) (math.Vec3, error) {
	return at("vertex", m.verts, index)
}

// TexCoord returns the texture coordinate at index.
func (m *Model) TexCoord(index int) (math.Vec2, error) {
	return at("texcoord", m.texCoords, index)
}

// Normal returns the normal at index.
func (m *Model) Normal(index int) (math.Vec3, error) {
	return at("normal", m.normals, index)
}

// Face returns the triangle at index. Corner indices are 0-based.
func (m *Model) Face(index int) (formats.Face, error) {
	return at("face", m.faces, index)
}

func at[T any](attr string, s []T, index int) (T, error) {
	if index < 0 || index >= len(s) {
		var zero T
		return zero, fmt.Errorf("%w: %s %d (have %d)", ErrIndexOutOfRange, attr, index, len(s))
	}
	return s[index], nil
}

// BoundsSize returns the width, height and depth of the mesh.
// It is zero for a mesh without vertices.
func (m *Model) BoundsSize() math.Vec3 { return m.boundsSize }

// Center returns the bounding-box center of the original positions,
// i.e. the offset that was subtracted from every vertex.
func (m *Model) Center() math.Vec3 { return m.center }

// Bounds returns the bounding box of the re-centered positions.
func (m *Model) Bounds() Bounds { return m.bounds }

// Transform returns the model's world transform.
func (m *Model) Transform() Transform { return m.transform }

// ModelMatrix returns the world matrix of the model's transform.
func (m *Model) ModelMatrix() math.Mat4 { return m.transform.Matrix() }

// Texture returns the owned diffuse texture, or nil when the model has none.
// The texture remains owned by the model; Clone it to keep an independent copy.
func (m *Model) Texture() *texture.Texture { return m.texture }

// HasTexture reports whether the model holds a decoded texture.
// Released is nil-safe, so an absent texture reports false.
func (m *Model) HasTexture() bool { return !m.texture.Released() }

// Clone returns a deep copy of the model. The copy gets its own attribute
// arrays and its own texture pixel buffer; an absent texture stays absent.
func (m *Model) Clone() *Model {
	return &Model{
		transform:  m.transform,
		verts:      slices.Clone(m.verts),
		texCoords:  slices.Clone(m.texCoords),
		normals:    slices.Clone(m.normals),
		faces:      slices.Clone(m.faces),
		boundsSize: m.boundsSize,
		center:     m.center,
		bounds:     m.bounds,
		texture:    m.texture.Clone(),
	}
}

// Release frees the texture. Geometry stays readable. Calling Release more
// than once is a no-op.
func (m *Model) Release() {
	m.texture.Release()
	m.texture = nil
}
