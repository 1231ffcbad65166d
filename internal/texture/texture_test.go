package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func checker() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			c := color.NRGBA{R: 255, A: 255}
			if (x+y)%2 == 1 {
				c = color.NRGBA{B: 255, A: 128}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestLoadPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, checker()); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "statue.png")
	writeFile(t, path, buf.Bytes())

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Rect.Dx() != 4 || img.Rect.Dy() != 2 {
		t.Fatalf("size = %v; want 4x2", img.Rect)
	}
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{B: 255, A: 128}) {
		t.Fatalf("pixel(1,0) = %v; want translucent blue", got)
	}
}

func TestLoadOZJIsOpaque(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, checker(), nil); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "statue.ozj")
	writeFile(t, path, append(make([]byte, ozjHeader), buf.Bytes()...))

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 {
			t.Fatalf("alpha at byte %d = %d; want 255", i, img.Pix[i])
		}
	}
}

func TestLoadFormats(t *testing.T) {
	encode := func(fn func(*bytes.Buffer) error) []byte {
		var buf bytes.Buffer
		if err := fn(&buf); err != nil {
			t.Fatal(err)
		}
		return buf.Bytes()
	}
	jpg := encode(func(b *bytes.Buffer) error { return jpeg.Encode(b, checker(), nil) })
	pngData := encode(func(b *bytes.Buffer) error { return png.Encode(b, checker()) })
	tgaData := encode(func(b *bytes.Buffer) error { return tga.Encode(b, checker()) })
	bmpData := encode(func(b *bytes.Buffer) error { return bmp.Encode(b, checker()) })

	tcs := []struct {
		name  string
		data  []byte
		exact bool
	}{
		{"statue.jpg", jpg, false},
		{"statue.JPEG", jpg, false},
		{"statue.ozj", append(make([]byte, ozjHeader), jpg...), false},
		{"statue.png", pngData, true},
		{"statue.tga", tgaData, true},
		{"statue.ozt", append(make([]byte, oztHeader), tgaData...), true},
		{"statue.bmp", bmpData, false},
	}
	dir := t.TempDir()
	for _, tc := range tcs {
		path := filepath.Join(dir, tc.name)
		writeFile(t, path, tc.data)
		img, err := Load(path)
		if err != nil {
			t.Errorf("%s: %v", tc.name, err)
			continue
		}
		if img.Rect != image.Rect(0, 0, 4, 2) {
			t.Errorf("%s: bounds = %v", tc.name, img.Rect)
			continue
		}
		if tc.exact && img.NRGBAAt(1, 0) != (color.NRGBA{B: 255, A: 128}) {
			t.Errorf("%s: pixel(1,0) = %v", tc.name, img.NRGBAAt(1, 0))
		}
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	short := filepath.Join(dir, "short.ozt")
	writeFile(t, short, []byte{1, 2})
	unknown := filepath.Join(dir, "statue.gif")
	writeFile(t, unknown, []byte("GIF89a"))
	garbage := filepath.Join(dir, "garbage.png")
	writeFile(t, garbage, []byte("not a png"))

	for _, p := range []string{short, unknown, garbage, filepath.Join(dir, "missing.png")} {
		if _, err := Load(p); err == nil {
			t.Errorf("Load(%s) succeeded", filepath.Base(p))
		}
	}
}

func TestTextureSet(t *testing.T) {
	tex := New(SRGB)
	if tex.Ready() {
		t.Fatal("new texture reports ready")
	}
	tex.Set(checker())
	if !tex.Ready() || tex.Version != 1 {
		t.Fatalf("after Set: ready=%v version=%d", tex.Ready(), tex.Version)
	}
	if tex.ColorSpace.String() != "srgb" {
		t.Fatalf("colour space = %v", tex.ColorSpace)
	}
	var nilTex *Texture
	if nilTex.Ready() {
		t.Fatal("nil texture reports ready")
	}
}
