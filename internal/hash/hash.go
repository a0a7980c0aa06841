// Package hash binds the ChaCha permutation and BLAKE digests into the
// protocol-level hash roles F, H, G, Hmsg, Fa and Frand used throughout
// WOTS+, HORST and the SPHINCS hyper-tree.
package hash

import (
	"github.com/dchest/blake256"
	"github.com/dchest/blake512"

	"github.com/nomasters/sphincs256/internal/bytesutil"
	"github.com/nomasters/sphincs256/internal/chacha"
)

// Size is n/8: the byte width of every hash value in the scheme.
const Size = 32

// expandConstant is the 32-byte ASCII constant C appended to a message
// block before it is run through the ChaCha permutation in F and H.
var expandConstant = []byte("expand 32-byte to 64-byte state!")

// F implements F(m) = first 32 bytes of perm(m || C), for a 32-byte m.
// Permute includes the ChaCha feed-forward (the permuted state is
// added to the original word-wise), so F and H are not the bare
// 16-word permutation in isolation.
func F(out, m []byte) {
	var block [64]byte
	copy(block[:32], m)
	copy(block[32:], expandConstant)
	permuted := chacha.PermuteBytes(block[:], chacha.DefaultRounds)
	copy(out, permuted[:Size])
}

// H implements H(m1,m2) = first 32 bytes of
// perm(perm(m1 || C) XOR (m2 || 0^32)), for 32-byte m1, m2.
func H(out, m1, m2 []byte) {
	var block [64]byte
	copy(block[:32], m1)
	copy(block[32:], expandConstant)
	inner := chacha.PermuteBytes(block[:], chacha.DefaultRounds)

	var xored [64]byte
	_ = bytesutil.XOR(xored[:32], inner[:32], m2) // lengths are fixed at 32 here, so XOR cannot fail
	copy(xored[32:], inner[32:])

	outer := chacha.PermuteBytes(xored[:], chacha.DefaultRounds)
	copy(out, outer[:Size])
}

// Hash2NNMask computes H(in[:n]^mask[:n], in[n:2n]^mask[n:2n]) and
// writes the n-byte result into out. in and mask must each be 2*Size
// bytes: a concatenated (left, right) node pair and its per-level
// (Q[2i], Q[2i+1]) mask pair. This is the form every tree-hashing call
// site in the module (HORST's tree and the hyper-tree's L-trees and
// subtrees) uses H in.
func Hash2NNMask(out, in, mask []byte) {
	var masked [2 * Size]byte
	_ = bytesutil.XOR(masked[:], in[:2*Size], mask[:2*Size]) // lengths are fixed at 2*Size here, so XOR cannot fail
	H(out, masked[:Size], masked[Size:])
}

// G fills out (of any length) with the ChaCha keystream seeded by key,
// zero nonce, zero counter — the PRG used to expand a seed into WOTS+
// or HORST secret-key material.
func G(out, seed []byte) {
	var key [32]byte
	copy(key[:], seed)
	state, err := chacha.New(key[:], make([]byte, 8), chacha.DefaultRounds)
	if err != nil {
		// seed is always Size==32 bytes by construction at every call
		// site; a mismatch here is a programming error, not user input.
		panic(err)
	}
	copy(out, state.Keystream(len(out)))
}

// Varlen hashes an arbitrary-length input with BLAKE-256 and copies
// (truncating or zero-extending) the digest into out.
func Varlen(out, in []byte) {
	sum := blake256.Sum256(in)
	n := copy(out, sum[:])
	for i := n; i < len(out); i++ {
		out[i] = 0
	}
}

// Fa derives a per-address seed: BLAKE-256(key || addr), the per-node
// seed-derivation hash used to turn a hyper-tree address into a WOTS+
// or HORST secret seed.
func Fa(out, key, addr []byte) {
	buf := make([]byte, len(key)+len(addr))
	copy(buf, key)
	copy(buf[len(key):], addr)
	Varlen(out, buf)
}

// Hmsg computes the 512-bit message digest D = BLAKE-512(r || m).
func Hmsg(out, r, m []byte) {
	h := blake512.New()
	h.Write(r)
	h.Write(m)
	sum := h.Sum(nil)
	copy(out, sum)
}

// Frand computes the randomizer R = BLAKE-512(k || m), split by the
// caller into R1 (the Hmsg seed) and R2 (the leaf-index source).
func Frand(out, m, k []byte) {
	h := blake512.New()
	h.Write(k)
	h.Write(m)
	sum := h.Sum(nil)
	copy(out, sum)
}
