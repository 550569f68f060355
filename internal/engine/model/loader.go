package model

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/objmodel/internal/config"
	"github.com/Faultbox/objmodel/internal/engine/texture"
	"github.com/Faultbox/objmodel/internal/logger"
	"github.com/Faultbox/objmodel/pkg/formats"
	"github.com/Faultbox/objmodel/pkg/math"
)

// Loader builds Models from mesh and texture files.
type Loader struct {
	cfg config.ModelConfig
	log *zap.Logger
}

// NewLoader creates a loader. A nil log discards diagnostics.
func NewLoader(cfg config.ModelConfig, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{cfg: cfg, log: log}
}

// Load loads a model with the default transform and default settings.
func Load(meshPath, texturePath string) (*Model, error) {
	return LoadWithTransform(meshPath, texturePath, DefaultTransform())
}

// LoadWithTransform loads a model placed at t, with default settings.
func LoadWithTransform(meshPath, texturePath string, t Transform) (*Model, error) {
	return NewLoader(config.Default().Model, logger.Named("model")).Load(meshPath, texturePath, t)
}

// Load reads the mesh at meshPath and the texture at texturePath.
//
// A mesh file that cannot be opened or read is not an error: the model comes back
// empty and a warning is logged. A malformed record or a face index that
// points past its array fails the load. An empty texturePath means no
// texture; a texture that fails to decode fails the load unless the loader
// is configured with StrictTexture=false.
func (l *Loader) Load(meshPath, texturePath string, t Transform) (*Model, error) {
	m := &Model{transform: t}

	if err := l.loadMesh(m, meshPath); err != nil {
		return nil, err
	}
	if err := l.loadTexture(m, texturePath); err != nil {
		return nil, err
	}

	return m, nil
}

func (l *Loader) loadMesh(m *Model, path string) error {
	f, err := os.Open(path)
	if err != nil {
		l.log.Warn("can't open mesh", zap.String("path", path), zap.Error(err))
		return nil
	}
	defer f.Close()

	obj, err := formats.ParseOBJ(f)
	if errors.Is(err, formats.ErrRead) {
		// Same as a mesh that can't be opened: empty model, no error
		l.log.Warn("can't read mesh", zap.String("path", path), zap.Error(err))
		return nil
	}
	if err != nil {
		return fmt.Errorf("model: parse %s: %w", path, err)
	}
	if err := obj.Validate(); err != nil {
		return fmt.Errorf("model: %s: %w", path, err)
	}

	m.verts = obj.Vertices
	m.texCoords = obj.TexCoords
	m.normals = obj.Normals
	m.faces = obj.Faces

	// No vertices: extents and center stay zero
	if lo, hi, ok := obj.Bounds(); ok {
		m.boundsSize = hi.Sub(lo)
		m.center = lo.Center(hi)
		m.bounds = centerMesh(m.verts, Bounds{Min: lo, Max: hi}, m.center)
	}

	l.log.Info("mesh loaded",
		zap.String("path", path),
		zap.Int("verts", len(m.verts)),
		zap.Int("faces", len(m.faces)),
		zap.Stringer("boundsCenter", m.center),
		zap.Stringer("boundsSize", m.boundsSize),
	)
	return nil
}

// centerMesh subtracts center from every vertex in place and returns the
// bounds moved by the same offset.
func centerMesh(verts []math.Vec3, bounds Bounds, center math.Vec3) Bounds {
	for i := range verts {
		verts[i] = verts[i].Sub(center)
	}
	return Bounds{Min: bounds.Min.Sub(center), Max: bounds.Max.Sub(center)}
}

func (l *Loader) loadTexture(m *Model, path string) error {
	tex, err := texture.Load(path)
	if err != nil {
		if l.cfg.StrictTexture {
			return fmt.Errorf("model: %w", err)
		}
		l.log.Warn("texture not loaded", zap.String("path", path), zap.Error(err))
		return nil
	}

	m.texture = tex
	if tex != nil {
		l.log.Debug("texture loaded",
			zap.String("path", path),
			zap.Int("width", tex.Width()),
			zap.Int("height", tex.Height()),
		)
	}
	return nil
}
