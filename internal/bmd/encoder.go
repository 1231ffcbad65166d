package bmd

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"statue-viewer/internal/crypto"
)

const triangleSize = 64

// Encode serializes m as a v10 or v12 container. Only the bind pose is
// written: bones get a single action with one key.
func Encode(m *Model, version byte) ([]byte, error) {
	if version != VersionPlain && version != VersionXOR {
		return nil, fmt.Errorf("bmd: cannot encode version %d", version)
	}
	if len(m.Meshes) > maxMeshes {
		return nil, fmt.Errorf("bmd: too many meshes (%d)", len(m.Meshes))
	}

	var w writer
	w.str(m.Name, 32)
	w.u16(uint16(len(m.Meshes)))
	w.u16(uint16(len(m.Bones)))
	actions := 0
	if len(m.Bones) > 0 {
		actions = 1
	}
	w.u16(uint16(actions))

	for _, mesh := range m.Meshes {
		w.u16(uint16(len(mesh.Verts)))
		w.u16(uint16(len(mesh.Normals)))
		w.u16(uint16(len(mesh.UVs)))
		w.u16(uint16(len(mesh.Tris)))
		w.u16(0)

		for i, v := range mesh.Verts {
			var node int16
			if i < len(mesh.Nodes) {
				node = mesh.Nodes[i]
			}
			w.u16(uint16(node))
			w.u16(0)
			w.vec3(v)
		}
		for _, n := range mesh.Normals {
			w.u16(0)
			w.u16(0)
			w.vec3(n)
			w.u16(0)
			w.u16(0)
		}
		for _, uv := range mesh.UVs {
			w.f32(uv[0])
			w.f32(uv[1])
		}
		for _, t := range mesh.Tris {
			var b [triangleSize]byte
			b[0] = byte(t.Polygon)
			for k := 0; k < 4; k++ {
				binary.LittleEndian.PutUint16(b[2+k*2:], uint16(t.VI[k]))
				binary.LittleEndian.PutUint16(b[10+k*2:], uint16(t.NI[k]))
				binary.LittleEndian.PutUint16(b[18+k*2:], uint16(t.TI[k]))
			}
			w.buf.Write(b[:])
		}
		w.str(strings.ReplaceAll(mesh.TexPath, "/", "\\"), 32)
	}

	if actions == 1 {
		w.u16(1)
		w.buf.WriteByte(0)
	}

	for _, b := range m.Bones {
		if b.IsDummy {
			w.buf.WriteByte(1)
			continue
		}
		w.buf.WriteByte(0)
		w.str(b.Name, 32)
		w.u16(uint16(int16(b.Parent)))
		p, r := b.BindPosition, b.BindRotation
		w.vec3([3]float32{float32(p[0]), float32(p[1]), float32(p[2])})
		w.vec3([3]float32{float32(r[0]), float32(r[1]), float32(r[2])})
	}

	body := w.buf.Bytes()
	out := []byte{'B', 'M', 'D', version}
	if version == VersionXOR {
		out = binary.LittleEndian.AppendUint32(out, uint32(len(body)))
		body = crypto.EncryptXOR(body)
	}
	return append(out, body...), nil
}

type writer struct {
	buf bytes.Buffer
}

func (w *writer) u16(v uint16) {
	w.buf.Write(binary.LittleEndian.AppendUint16(nil, v))
}

func (w *writer) f32(v float32) {
	w.buf.Write(binary.LittleEndian.AppendUint32(nil, math.Float32bits(v)))
}

func (w *writer) vec3(v [3]float32) {
	w.f32(v[0])
	w.f32(v[1])
	w.f32(v[2])
}

// str writes s as a fixed-size, NUL-padded Windows-1252 field.
// Characters outside the code page are replaced.
func (w *writer) str(s string, n int) {
	enc, err := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()).String(s)
	if err != nil {
		enc = s
	}
	b := make([]byte, n)
	copy(b[:n-1], enc)
	w.buf.Write(b)
}
