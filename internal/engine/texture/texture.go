// Package texture loads diffuse textures into owned NRGBA pixel buffers.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned for file extensions with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported texture format")

type decodeFunc func(io.Reader) (image.Image, error)

// decoders maps a lower-case file extension to its decoder.
// Dispatch is by extension because the TGA format has no magic number.
var decoders = map[string]decodeFunc{
	".bmp":  bmp.Decode,
	".tga":  tga.Decode,
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".gif":  gif.Decode,
	".webp": webp.Decode,
}

// Texture is a decoded texture image. It owns its pixel buffer exclusively;
// use Clone to obtain an independent copy.
type Texture struct {
	Path   string
	Format string // extension without the dot, e.g. "bmp"
	img    *image.NRGBA
}

// Load reads and decodes the texture at path.
// An empty path means "no texture" and returns (nil, nil).
func Load(path string) (*Texture, error) {
	if path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}

	return Decode(bytes.NewReader(raw), path)
}

// Decode decodes a texture from r. name selects the decoder by extension.
func Decode(r io.Reader, name string) (*Texture, error) {
	ext := strings.ToLower(filepath.Ext(name))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}

	img, err := decode(r)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", name, err)
	}

	return &Texture{
		Path:   name,
		Format: strings.TrimPrefix(ext, "."),
		img:    toNRGBA(img),
	}, nil
}

// SupportedExtensions returns the extensions Load can decode.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(decoders))
	for ext := range decoders {
		exts = append(exts, ext)
	}
	return exts
}

// toNRGBA converts any image to an NRGBA image anchored at the origin.
// The result never shares pixel memory with src.
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Image returns the pixel buffer, or nil once released.
func (t *Texture) Image() *image.NRGBA {
	if t == nil {
		return nil
	}
	return t.img
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int {
	if t.Image() == nil {
		return 0
	}
	return t.img.Rect.Dx()
}

// Height returns the texture height in pixels.
func (t *Texture) Height() int {
	if t.Image() == nil {
		return 0
	}
	return t.img.Rect.Dy()
}

// At returns the pixel at (x, y). Out-of-range coordinates yield the zero color.
func (t *Texture) At(x, y int) color.NRGBA {
	if t.Image() == nil {
		return color.NRGBA{}
	}
	return t.img.NRGBAAt(x, y)
}

// Clone returns a deep copy with its own pixel buffer. Cloning nil returns nil.
func (t *Texture) Clone() *Texture {
	if t == nil {
		return nil
	}

	c := &Texture{Path: t.Path, Format: t.Format}
	if t.img != nil {
		c.img = &image.NRGBA{
			Pix:    append([]uint8(nil), t.img.Pix...),
			Stride: t.img.Stride,
			Rect:   t.img.Rect,
		}
	}
	return c
}

// Release drops the pixel buffer. It is safe to call more than once and on nil.
func (t *Texture) Release() {
	if t == nil {
		return
	}
	t.img = nil
}

// Released reports whether the pixel buffer has been dropped.
// A nil texture reports true.
func (t *Texture) Released() bool {
	return t == nil || t.img == nil
}
