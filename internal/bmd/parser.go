package bmd

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"statue-viewer/internal/crypto"
)

// maxMeshes bounds the mesh count so a garbled header fails fast.
const maxMeshes = 100

// ErrNoKey is returned when a v15 asset is decoded without a key source.
var ErrNoKey = errors.New("bmd: v15 asset needs a decoder key")

// KeySource supplies the LEA key for v15 assets. It is only called
// when such an asset is met.
type KeySource func() ([crypto.LEAKeySize]byte, error)

// Parse reads and decodes the BMD file at path.
func Parse(path string, key KeySource) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bmd: read %s: %w", path, err)
	}
	m, err := Decode(raw, key)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return m, nil
}

// Decode decodes a BMD container held in memory.
// Supports versions 10 (plain), 12 (XOR) and 15 (LEA-256 ECB).
func Decode(raw []byte, key KeySource) (*Model, error) {
	if len(raw) < 4 || string(raw[:3]) != "BMD" {
		return nil, errors.New("bmd: invalid header")
	}

	version := raw[3]
	var data []byte

	switch version {
	case VersionLEA, VersionXOR:
		if len(raw) < 8 {
			return nil, fmt.Errorf("bmd: truncated v%d header", version)
		}
		size := binary.LittleEndian.Uint32(raw[4:8])
		if 8+int(size) > len(raw) {
			return nil, fmt.Errorf("bmd: truncated v%d data", version)
		}
		body := raw[8 : 8+size]
		if version == VersionXOR {
			data = crypto.DecryptXOR(body)
			break
		}
		if key == nil {
			return nil, ErrNoKey
		}
		k, err := key()
		if err != nil {
			return nil, fmt.Errorf("bmd: decoder key: %w", err)
		}
		if data, err = crypto.DecryptLEA(body, k); err != nil {
			return nil, fmt.Errorf("bmd: %w", err)
		}
	default:
		data = raw[4:]
	}

	r := &reader{data: data}
	m, err := r.parse()
	if err != nil {
		return nil, err
	}
	m.Version = version
	return m, nil
}

type reader struct {
	data  []byte
	off   int
	short bool // a read ran past the end of data
}

func (r *reader) take(n int) []byte {
	if n < 0 || r.off+n > len(r.data) {
		r.off = len(r.data)
		r.short = true
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

// readStr reads a fixed-size, NUL-terminated Windows-1252 field.
func (r *reader) readStr(n int) string {
	s := r.take(n)
	if i := bytes.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(s)
	if err != nil {
		return string(s)
	}
	return string(decoded)
}

func (r *reader) readI16() int16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return int16(binary.LittleEndian.Uint16(b))
}

func (r *reader) readU16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *reader) readF32() float32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func (r *reader) readByte() byte {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *reader) readVec3() [3]float32 {
	return [3]float32{r.readF32(), r.readF32(), r.readF32()}
}

func (r *reader) parse() (*Model, error) {
	m := &Model{Name: r.readStr(32)}
	meshCount := int(r.readU16())
	boneCount := int(r.readU16())
	actionCount := int(r.readU16())

	if meshCount > maxMeshes {
		return nil, fmt.Errorf("bmd: invalid mesh count %d", meshCount)
	}

	m.Meshes = make([]Mesh, 0, meshCount)
	for i := 0; i < meshCount; i++ {
		nv := int(r.readI16())
		nn := int(r.readI16())
		ntc := int(r.readI16())
		nt := int(r.readI16())
		_ = r.readI16() // texture index
		if nv < 0 || nn < 0 || ntc < 0 || nt < 0 {
			return nil, fmt.Errorf("bmd: mesh %d: negative element count", i)
		}

		// node:i16 pad:i16 xyz:f32
		verts := make([][3]float32, nv)
		nodes := make([]int16, nv)
		for j := range verts {
			nodes[j] = r.readI16()
			_ = r.readI16()
			verts[j] = r.readVec3()
		}

		// node:i16 pad:i16 xyz:f32 bind:i16 pad:i16
		normals := make([][3]float32, nn)
		for j := range normals {
			_ = r.readI16()
			_ = r.readI16()
			normals[j] = r.readVec3()
			_ = r.readI16()
			_ = r.readI16()
		}

		uvs := make([][2]float32, ntc)
		for j := range uvs {
			uvs[j] = [2]float32{r.readF32(), r.readF32()}
		}

		// 64 bytes per triangle, indices at 2, 10 and 18.
		tris := make([]Triangle, nt)
		for j := range tris {
			b := r.take(triangleSize)
			if b == nil {
				break
			}
			t := Triangle{Polygon: int(b[0])}
			for k := 0; k < 4; k++ {
				t.VI[k] = int16(binary.LittleEndian.Uint16(b[2+k*2:]))
				t.NI[k] = int16(binary.LittleEndian.Uint16(b[10+k*2:]))
				t.TI[k] = int16(binary.LittleEndian.Uint16(b[18+k*2:]))
			}
			tris[j] = t
		}

		texPath := strings.ReplaceAll(r.readStr(32), "\\", "/")

		m.Meshes = append(m.Meshes, Mesh{
			Verts:   verts,
			Nodes:   nodes,
			Normals: normals,
			UVs:     uvs,
			Tris:    tris,
			TexPath: texPath,
		})
	}

	actionKeys := make([]int, actionCount)
	for a := range actionKeys {
		numKeys := int(r.readI16())
		if numKeys < 0 {
			return nil, fmt.Errorf("bmd: action %d: negative key count %d", a, numKeys)
		}
		if r.readByte() > 0 { // locked positions follow
			r.take(numKeys * 12)
		}
		actionKeys[a] = numKeys
	}

	m.Bones = make([]Bone, 0, boneCount)
	for b := 0; b < boneCount; b++ {
		if r.readByte() > 0 {
			m.Bones = append(m.Bones, Bone{Parent: -1, IsDummy: true})
			continue
		}

		bone := Bone{Name: r.readStr(32), Parent: int(r.readI16())}
		for a, numKeys := range actionKeys {
			for k := 0; k < numKeys; k++ {
				p := r.readVec3()
				if a == 0 && k == 0 {
					bone.BindPosition = [3]float64{float64(p[0]), float64(p[1]), float64(p[2])}
				}
			}
			for k := 0; k < numKeys; k++ {
				q := r.readVec3()
				if a == 0 && k == 0 {
					bone.BindRotation = [3]float64{float64(q[0]), float64(q[1]), float64(q[2])}
				}
			}
		}
		m.Bones = append(m.Bones, bone)
	}

	if r.short {
		return nil, errors.New("bmd: truncated model data")
	}
	return m, nil
}
