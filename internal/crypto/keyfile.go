package crypto

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
)

// LoadKey reads an LEA-256 key from path. The file holds either the
// 32 raw key bytes or their hex encoding (surrounding whitespace ignored).
func LoadKey(path string) ([LEAKeySize]byte, error) {
	var key [LEAKeySize]byte

	raw, err := os.ReadFile(path)
	if err != nil {
		return key, fmt.Errorf("crypto: read key %s: %w", path, err)
	}

	if len(raw) == LEAKeySize {
		copy(key[:], raw)
		return key, nil
	}

	text := bytes.TrimSpace(raw)
	if len(text) != hex.EncodedLen(LEAKeySize) {
		return key, fmt.Errorf("crypto: key %s: want %d raw or %d hex bytes, got %d",
			path, LEAKeySize, hex.EncodedLen(LEAKeySize), len(raw))
	}
	if _, err := hex.Decode(key[:], text); err != nil {
		return key, fmt.Errorf("crypto: key %s: %w", path, err)
	}
	return key, nil
}
