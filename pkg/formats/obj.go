// Package formats provides parsers for mesh file formats.
//
// OBJ is the Wavefront text format, restricted to triangle meshes.
package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	gomath "math"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/objmodel/pkg/math"
)

// OBJ format errors.
var (
	ErrMalformedRecord = errors.New("malformed OBJ record")
	ErrDanglingIndex   = errors.New("dangling OBJ face index")
	ErrRead            = errors.New("reading OBJ")
)

// maxOBJLine is the longest line the scanner accepts.
const maxOBJLine = 1 << 20

// OBJ record tags.
const (
	tagVertex   = "v"
	tagTexCoord = "vt"
	tagNormal   = "vn"
	tagFace     = "f"
)

// Corner holds the 0-based attribute indices of one face corner.
type Corner struct {
	Vertex   int
	TexCoord int
	Normal   int
}

// Face is a triangle: three corners, each indexing the OBJ attribute arrays.
type Face [3]Corner

// OBJ represents a parsed OBJ mesh. All face indices are 0-based.
type OBJ struct {
	Vertices  []math.Vec3
	TexCoords []math.Vec2
	Normals   []math.Vec3
	Faces     []Face
}

// recordKind identifies the result of parsing one line.
type recordKind int

const (
	recordSkip recordKind = iota
	recordVertex
	recordTexCoord
	recordNormal
	recordFace
)

// record is a single parsed OBJ line. Only the field matching kind is set.
type record struct {
	kind recordKind
	vec3 math.Vec3
	vec2 math.Vec2
	face Face
}

// ParseOBJ parses OBJ text from r.
// Blank lines and unknown tags (comments, groups, materials, ...) are skipped.
// A recognized record with missing or non-numeric fields fails the whole parse.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxOBJLine)

	lineNo := 0
	for scanner.Scan() {
		lineNo++

		rec, err := parseRecord(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		switch rec.kind {
		case recordVertex:
			obj.Vertices = append(obj.Vertices, rec.vec3)
		case recordTexCoord:
			obj.TexCoords = append(obj.TexCoords, rec.vec2)
		case recordNormal:
			obj.Normals = append(obj.Normals, rec.vec3)
		case recordFace:
			obj.Faces = append(obj.Faces, rec.face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	return obj, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ file: %w", err)
	}
	defer f.Close()

	return ParseOBJ(f)
}

// parseRecord parses a single line. The first whitespace-delimited token is
// the tag; fields beyond the ones a tag needs are ignored.
func parseRecord(line string) (record, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return record{kind: recordSkip}, nil
	}

	tag, args := fields[0], fields[1:]
	switch tag {
	case tagVertex, tagNormal:
		v, err := parseFloats(tag, args, 3)
		if err != nil {
			return record{}, err
		}
		kind := recordVertex
		if tag == tagNormal {
			kind = recordNormal
		}
		return record{kind: kind, vec3: math.Vec3{X: v[0], Y: v[1], Z: v[2]}}, nil

	case tagTexCoord:
		v, err := parseFloats(tag, args, 2)
		if err != nil {
			return record{}, err
		}
		return record{kind: recordTexCoord, vec2: math.Vec2{X: v[0], Y: v[1]}}, nil

	case tagFace:
		face, err := parseFace(args)
		if err != nil {
			return record{}, err
		}
		return record{kind: recordFace, face: face}, nil
	}

	return record{kind: recordSkip}, nil
}

// parseFloats parses the first n fields as finite float32 values.
func parseFloats(tag string, args []string, n int) ([3]float32, error) {
	var out [3]float32
	if len(args) < n {
		return out, fmt.Errorf("%w: %q needs %d fields, got %d", ErrMalformedRecord, tag, n, len(args))
	}
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return out, fmt.Errorf("%w: %q field %d: %q is not a number", ErrMalformedRecord, tag, i+1, args[i])
		}
		if gomath.IsNaN(f) || gomath.IsInf(f, 0) {
			return out, fmt.Errorf("%w: %q field %d: %q is not finite", ErrMalformedRecord, tag, i+1, args[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseFace parses three "v/vt/vn" corner groups and converts the 1-based
// file indices to 0-based.
func parseFace(args []string) (Face, error) {
	var face Face
	if len(args) < 3 {
		return face, fmt.Errorf("%w: face needs 3 corners, got %d", ErrMalformedRecord, len(args))
	}

	for i := 0; i < 3; i++ {
		parts := strings.Split(args[i], "/")
		if len(parts) != 3 {
			return face, fmt.Errorf("%w: face corner %d: %q is not v/vt/vn", ErrMalformedRecord, i+1, args[i])
		}

		var idx [3]int
		for j, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil {
				return face, fmt.Errorf("%w: face corner %d: %q is not an index", ErrMalformedRecord, i+1, p)
			}
			idx[j] = n - 1
		}
		face[i] = Corner{Vertex: idx[0], TexCoord: idx[1], Normal: idx[2]}
	}

	return face, nil
}

// Validate checks that every face corner indexes an existing vertex,
// texture coordinate and normal.
func (o *OBJ) Validate() error {
	for fi, face := range o.Faces {
		for ci, c := range face {
			if err := checkIndex("vertex", c.Vertex, len(o.Vertices)); err != nil {
				return fmt.Errorf("face %d corner %d: %w", fi, ci, err)
			}
			if err := checkIndex("texcoord", c.TexCoord, len(o.TexCoords)); err != nil {
				return fmt.Errorf("face %d corner %d: %w", fi, ci, err)
			}
			if err := checkIndex("normal", c.Normal, len(o.Normals)); err != nil {
				return fmt.Errorf("face %d corner %d: %w", fi, ci, err)
			}
		}
	}
	return nil
}

func checkIndex(attr string, idx, n int) error {
	if idx < 0 || idx >= n {
		// report the index the way it appears in the file
		return fmt.Errorf("%w: %s %d (have %d)", ErrDanglingIndex, attr, idx+1, n)
	}
	return nil
}

// Bounds returns the component-wise minimum and maximum of all vertex
// positions. ok is false when the mesh has no vertices.
func (o *OBJ) Bounds() (lo, hi math.Vec3, ok bool) {
	if len(o.Vertices) == 0 {
		return math.Vec3{}, math.Vec3{}, false
	}

	lo, hi = o.Vertices[0], o.Vertices[0]
	for _, v := range o.Vertices[1:] {
		lo = lo.Min(v)
		hi = hi.Max(v)
	}
	return lo, hi, true
}
