package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// Container header sizes.
const (
	ozjHeader = 24 // OZJ: 24-byte header + JPEG data
	oztHeader = 4  // OZT: 4-byte header + TGA data
)

// decoders picks the codec by extension. image.Decode cannot be used:
// the tga package registers with an empty magic string and would claim
// every input.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".ozj":  jpeg.Decode,
	".png":  png.Decode,
	".tga":  tga.Decode,
	".ozt":  tga.Decode,
	".bmp":  bmp.Decode,
	".webp": webp.Decode,
}

// Load reads an image file and returns it as NRGBA.
// OZJ and OZT containers are unwrapped; JPEG, PNG, TGA, BMP and WebP
// files are decoded directly.
func Load(path string) (*image.NRGBA, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("texture: unknown extension: %q", ext)
	}

	imgData := raw
	switch ext {
	case ".ozj":
		if len(raw) <= ozjHeader {
			return nil, fmt.Errorf("texture: OZJ too short: %s", path)
		}
		imgData = raw[ozjHeader:]
	case ".ozt":
		if len(raw) <= oztHeader {
			return nil, fmt.Errorf("texture: OZT too short: %s", path)
		}
		imgData = raw[oztHeader:]
	}

	img, err := decode(bytes.NewReader(imgData))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}

	return toNRGBA(img), nil
}

// toNRGBA converts any image to NRGBA with its origin at (0, 0).
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	switch src.(type) {
	case *image.YCbCr, *image.Gray:
		// Opaque sources: draw, then force alpha.
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		for i := 3; i < len(dst.Pix); i += 4 {
			dst.Pix[i] = 255
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				i := dst.PixOffset(x-b.Min.X, y-b.Min.Y)
				dst.Pix[i] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = c.A
			}
		}
	}
	return dst
}
