// Package addr implements the 64-bit hyper-tree address used as the
// domain separator for Fa. The bit layout is fixed: level in [0,4),
// subtree in [4,59), leaf in [59,64).
package addr

import "github.com/nomasters/sphincs256/internal/bytesutil"

// Size is the byte width of an encoded address.
const Size = 8

// Address identifies a node's position in the hyper-tree: which
// layer, which subtree within that layer, and which leaf within that
// subtree.
type Address struct {
	Level   uint8
	Subtree uint64
	Leaf    uint8
}

// Encode packs a into an 8-byte little-endian 64-bit integer:
// level | (subtree << 4) | (leaf << 59).
func Encode(a Address) []byte {
	t := uint64(a.Level) | (a.Subtree << 4) | (uint64(a.Leaf) << 59)
	out := make([]byte, Size)
	bytesutil.PutUint64LE(out, t)
	return out
}

// Decode is the inverse of Encode.
func Decode(b []byte) Address {
	t := bytesutil.Uint64LE(b)
	return Address{
		Level:   uint8(t & 0xf),
		Subtree: (t >> 4) & ((1 << 55) - 1),
		Leaf:    uint8(t >> 59),
	}
}
