package crypto

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// LEAKeySize is the key length of LEA-256 in bytes.
const LEAKeySize = 32

// leaDelta holds the LEA key schedule constants.
var leaDelta = [8]uint32{
	0xc3efe9db, 0x44626b02, 0x79e27c8a, 0x78df30ec,
	0x715ea49e, 0xc785da0a, 0xe04ef22a, 0xe5c40957,
}

// leaRoundKeys expands a 256-bit key into 32 rounds of six words each.
func leaRoundKeys(key [LEAKeySize]byte) [192]uint32 {
	var t [8]uint32
	for i := range t {
		t[i] = binary.LittleEndian.Uint32(key[i*4:])
	}

	var rk [192]uint32
	shifts := [6]int{1, 3, 6, 11, 13, 17}

	for i := uint32(0); i < 32; i++ {
		d := leaDelta[i&7]
		s := (i * 6) & 7

		for j := uint32(0); j < 6; j++ {
			k := (s + j) & 7
			t[k] = bits.RotateLeft32(t[k]+bits.RotateLeft32(d, int(i+j)), shifts[j])
			rk[i*6+j] = t[k]
		}
	}
	return rk
}

// DecryptLEA decrypts data in 16-byte blocks using LEA-256 in ECB mode.
func DecryptLEA(data []byte, key [LEAKeySize]byte) ([]byte, error) {
	if len(data)%16 != 0 {
		return nil, fmt.Errorf("crypto: lea input length %d is not a multiple of 16", len(data))
	}

	rk := leaRoundKeys(key)
	out := make([]byte, len(data))

	for off := 0; off < len(data); off += 16 {
		s0 := binary.LittleEndian.Uint32(data[off:])
		s1 := binary.LittleEndian.Uint32(data[off+4:])
		s2 := binary.LittleEndian.Uint32(data[off+8:])
		s3 := binary.LittleEndian.Uint32(data[off+12:])

		for r := 31; r >= 0; r-- {
			k := rk[r*6 : r*6+6]
			n0 := s3
			n1 := (bits.RotateLeft32(s0, -9) - (n0 ^ k[0])) ^ k[1]
			n2 := (bits.RotateLeft32(s1, 5) - (n1 ^ k[2])) ^ k[3]
			n3 := (bits.RotateLeft32(s2, 3) - (n2 ^ k[4])) ^ k[5]
			s0, s1, s2, s3 = n0, n1, n2, n3
		}

		binary.LittleEndian.PutUint32(out[off:], s0)
		binary.LittleEndian.PutUint32(out[off+4:], s1)
		binary.LittleEndian.PutUint32(out[off+8:], s2)
		binary.LittleEndian.PutUint32(out[off+12:], s3)
	}
	return out, nil
}
