package sphincs256

import (
	"github.com/nomasters/sphincs256/internal/hash"
	"github.com/nomasters/sphincs256/internal/tree"
)

// maskedMix builds the tree.Mix the hyper-tree's L-trees and subtree
// hash-trees share: H(x^Q[2i], y^Q[2i+1]) at layer i, reading the mask
// pair straight out of q at byte offset 2*i*hash.Size.
func maskedMix(q []byte) tree.Mix[[]byte] {
	return func(l, r []byte, level int) []byte {
		var buf [2 * hash.Size]byte
		copy(buf[:hash.Size], l)
		copy(buf[hash.Size:], r)
		out := make([]byte, hash.Size)
		off := 2 * level * hash.Size
		hash.Hash2NNMask(out, buf[:], q[off:off+2*hash.Size])
		return out
	}
}
