package crypto

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"math/bits"
	"os"
	"path/filepath"
	"testing"
)

func TestXORRoundTrip(t *testing.T) {
	plain := []byte("BMD payload with more than sixteen bytes\x00\x01\xff")
	enc := EncryptXOR(plain)
	if bytes.Equal(enc, plain) {
		t.Fatal("EncryptXOR returned plaintext")
	}
	if got := DecryptXOR(enc); !bytes.Equal(got, plain) {
		t.Fatalf("DecryptXOR(EncryptXOR(p)) = %x; want %x", got, plain)
	}
}

func TestXORFirstByte(t *testing.T) {
	// out[0] = (0 ^ key[0]) - 0x5E
	got := DecryptXOR([]byte{0})
	if want := XORKey[0] - 0x5E; got[0] != want {
		t.Fatalf("DecryptXOR([0]) = %#x; want %#x", got[0], want)
	}
}

// encryptLEA is the forward cipher, used only to check DecryptLEA.
func encryptLEA(data []byte, key [LEAKeySize]byte) []byte {
	rk := leaRoundKeys(key)
	out := make([]byte, len(data))
	for off := 0; off < len(data); off += 16 {
		s0 := binary.LittleEndian.Uint32(data[off:])
		s1 := binary.LittleEndian.Uint32(data[off+4:])
		s2 := binary.LittleEndian.Uint32(data[off+8:])
		s3 := binary.LittleEndian.Uint32(data[off+12:])
		for r := 0; r < 32; r++ {
			k := rk[r*6 : r*6+6]
			n0 := bits.RotateLeft32((s0^k[0])+(s1^k[1]), 9)
			n1 := bits.RotateLeft32((s1^k[2])+(s2^k[3]), -5)
			n2 := bits.RotateLeft32((s2^k[4])+(s3^k[5]), -3)
			s0, s1, s2, s3 = n0, n1, n2, s0
		}
		binary.LittleEndian.PutUint32(out[off:], s0)
		binary.LittleEndian.PutUint32(out[off+4:], s1)
		binary.LittleEndian.PutUint32(out[off+8:], s2)
		binary.LittleEndian.PutUint32(out[off+12:], s3)
	}
	return out
}

func testKey() [LEAKeySize]byte {
	var key [LEAKeySize]byte
	for i := range key {
		key[i] = byte(i*7 + 3)
	}
	return key
}

func TestLEARoundTrip(t *testing.T) {
	key := testKey()
	plain := bytes.Repeat([]byte("0123456789abcdef"), 3)

	enc := encryptLEA(plain, key)
	if bytes.Equal(enc, plain) {
		t.Fatal("encryptLEA returned plaintext")
	}
	got, err := DecryptLEA(enc, key)
	if err != nil {
		t.Fatalf("DecryptLEA: %v", err)
	}
	if !bytes.Equal(got, plain) {
		t.Fatalf("DecryptLEA = %x; want %x", got, plain)
	}
}

func TestLEARejectsPartialBlock(t *testing.T) {
	if _, err := DecryptLEA(make([]byte, 17), testKey()); err == nil {
		t.Fatal("DecryptLEA accepted a 17-byte input")
	}
}

func TestLoadKey(t *testing.T) {
	dir := t.TempDir()
	key := testKey()

	rawPath := filepath.Join(dir, "raw.key")
	if err := os.WriteFile(rawPath, key[:], 0o644); err != nil {
		t.Fatal(err)
	}
	hexPath := filepath.Join(dir, "hex.key")
	if err := os.WriteFile(hexPath, []byte(hex.EncodeToString(key[:])+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	badPath := filepath.Join(dir, "bad.key")
	if err := os.WriteFile(badPath, []byte("short"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{rawPath, hexPath} {
		got, err := LoadKey(p)
		if err != nil {
			t.Fatalf("LoadKey(%s): %v", p, err)
		}
		if got != key {
			t.Fatalf("LoadKey(%s) = %x; want %x", p, got, key)
		}
	}
	if _, err := LoadKey(badPath); err == nil {
		t.Fatal("LoadKey accepted a short key file")
	}
	if _, err := LoadKey(filepath.Join(dir, "missing.key")); err == nil {
		t.Fatal("LoadKey accepted a missing file")
	}
}
