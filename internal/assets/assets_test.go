package assets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/objmodel/internal/config"
	"github.com/Faultbox/objmodel/internal/engine/model"
	"github.com/Faultbox/objmodel/pkg/formats"
)

const triangleOBJ = "v -1 -1 0\nv 1 -1 0\nv 0 1 0\nvt 0 0\nvn 0 0 1\nf 1/1/1 2/1/1 3/1/1\n"

func setup(t *testing.T) (mesh, tex string, mgr *Manager) {
	t.Helper()
	dir := t.TempDir()

	mesh = filepath.Join(dir, "tri.obj")
	if err := os.WriteFile(mesh, []byte(triangleOBJ), 0644); err != nil {
		t.Fatalf("failed to write mesh: %v", err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatalf("bmp.Encode failed: %v", err)
	}
	tex = filepath.Join(dir, "diffuse.bmp")
	if err := os.WriteFile(tex, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write texture: %v", err)
	}

	loader := model.NewLoader(config.Default().Model, nil)
	return mesh, tex, NewManager(loader, nil)
}

func TestManager_GetCaches(t *testing.T) {
	mesh, tex, mgr := setup(t)
	defer mgr.Close()

	a, err := mgr.Get(mesh, tex)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	b, err := mgr.Get(mesh, tex)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	hits, misses := mgr.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d and %d", hits, misses)
	}

	if a == b || a.Texture() == b.Texture() {
		t.Fatal("Get returned shared models")
	}
	if a.NumFaces() != 1 || b.NumFaces() != 1 {
		t.Error("cached copy lost its faces")
	}
}

func TestManager_CopiesAreIndependent(t *testing.T) {
	mesh, tex, mgr := setup(t)
	defer mgr.Close()

	a, err := mgr.Get(mesh, tex)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	a.Texture().Image().SetNRGBA(0, 0, color.NRGBA{A: 255})
	a.Release()

	b, err := mgr.Get(mesh, tex)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !b.HasTexture() {
		t.Fatal("releasing a copy released the cached texture")
	}
	if got := b.Texture().At(0, 0); got != (color.NRGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Errorf("mutating a copy changed the cache: %v", got)
	}
}

func TestManager_Invalidate(t *testing.T) {
	mesh, tex, mgr := setup(t)
	defer mgr.Close()

	if _, err := mgr.Get(mesh, tex); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if _, err := mgr.Get(mesh, ""); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if n := mgr.Invalidate(tex); n != 1 {
		t.Errorf("expected 1 entry dropped for texture path, got %d", n)
	}
	if n := mgr.Invalidate(mesh); n != 1 {
		t.Errorf("expected 1 entry dropped for mesh path, got %d", n)
	}
	if n := mgr.Invalidate(mesh); n != 0 {
		t.Errorf("expected nothing left to drop, got %d", n)
	}

	// reload picks up the new file contents
	if err := os.WriteFile(mesh, []byte("v 0 0 0\nv 4 0 0\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite mesh: %v", err)
	}
	m, err := mgr.Get(mesh, "")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if m.NumVerts() != 2 || m.NumFaces() != 0 {
		t.Errorf("expected reloaded mesh with 2 verts, got %d verts %d faces", m.NumVerts(), m.NumFaces())
	}
}

func TestManager_LoadErrorNotCached(t *testing.T) {
	_, _, mgr := setup(t)
	defer mgr.Close()

	bad := filepath.Join(t.TempDir(), "bad.obj")
	if err := os.WriteFile(bad, []byte("f 1/1\n"), 0644); err != nil {
		t.Fatalf("failed to write mesh: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := mgr.Get(bad, ""); !errors.Is(err, formats.ErrMalformedRecord) {
			t.Fatalf("expected ErrMalformedRecord, got %v", err)
		}
	}
	if _, misses := mgr.Stats(); misses != 2 {
		t.Errorf("expected failed loads to stay uncached, got %d misses", misses)
	}
}

func TestManager_Concurrent(t *testing.T) {
	mesh, tex, mgr := setup(t)
	defer mgr.Close()

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := mgr.Get(mesh, tex)
			if err != nil {
				errs <- err
				return
			}
			if i%4 == 0 {
				mgr.Invalidate(mesh)
			}
			m.Release()
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Get failed: %v", err)
	}
}

func TestCache_Clear(t *testing.T) {
	mesh, _, mgr := setup(t)

	m, err := mgr.Get(mesh, "")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if mgr.cache.Len() != 1 {
		t.Errorf("expected 1 cached model, got %d", mgr.cache.Len())
	}

	mgr.Close()
	if mgr.cache.Len() != 0 {
		t.Errorf("expected empty cache after Close, got %d", mgr.cache.Len())
	}
	if hits, misses := mgr.Stats(); hits != 0 || misses != 0 {
		t.Errorf("expected stats reset, got %d/%d", hits, misses)
	}
	if m.NumVerts() != 3 {
		t.Error("closing the manager affected a handed-out copy")
	}
}
