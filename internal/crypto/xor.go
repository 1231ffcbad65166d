package crypto

// XORKey is the 16-byte key of the chained XOR cipher used by v12 mesh assets.
var XORKey = [16]byte{
	0xD1, 0x73, 0x52, 0xF6, 0xD2, 0x9A, 0xCB, 0x27,
	0x3E, 0xAF, 0x59, 0x31, 0x37, 0xB3, 0xE7, 0xA2,
}

// xorChainSeed is the chain value before the first byte.
const xorChainSeed = 0x5E

// DecryptXOR decrypts v12 mesh data. For each byte:
//
//	out[i] = ((data[i] ^ XORKey[i&15]) - chain) & 0xFF
//	chain  = (data[i] + 0x3D) & 0xFF
func DecryptXOR(data []byte) []byte {
	out := make([]byte, len(data))
	chain := byte(xorChainSeed)

	for i, b := range data {
		out[i] = (b ^ XORKey[i&15]) - chain
		chain = b + 0x3D
	}
	return out
}

// EncryptXOR is the inverse of DecryptXOR.
func EncryptXOR(data []byte) []byte {
	out := make([]byte, len(data))
	chain := byte(xorChainSeed)

	for i, b := range data {
		out[i] = (b + chain) ^ XORKey[i&15]
		chain = out[i] + 0x3D
	}
	return out
}
