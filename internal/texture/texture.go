// Package texture loads image assets and holds them as shareable
// texture handles.
package texture

import "image"

// ColorSpace tags how a texture's colour values are encoded.
type ColorSpace int

const (
	// Linear texels are used as-is by the shader.
	Linear ColorSpace = iota
	// SRGB texels are decoded to linear before shading.
	SRGB
)

func (c ColorSpace) String() string {
	switch c {
	case SRGB:
		return "srgb"
	default:
		return "linear"
	}
}

// Texture is a handle that materials share. The image may arrive after
// the handle has been bound; an empty texture samples as white.
type Texture struct {
	Image      *image.NRGBA
	ColorSpace ColorSpace
	// Version increases every time Image is replaced.
	Version int
}

// New returns an empty texture in the given colour space.
func New(cs ColorSpace) *Texture {
	return &Texture{ColorSpace: cs}
}

// Set replaces the image.
func (t *Texture) Set(img *image.NRGBA) {
	t.Image = img
	t.Version++
}

// Ready reports whether the texture holds image data.
func (t *Texture) Ready() bool {
	return t != nil && t.Image != nil && t.Image.Rect.Dx() > 0 && t.Image.Rect.Dy() > 0
}
