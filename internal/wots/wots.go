// Package wots implements the WOTS+ one-time signature: chain
// evaluation over F, base-w message decomposition, the Winternitz
// checksum, and keygen/sign/verify.
package wots

import (
	"github.com/nomasters/sphincs256/internal/bytesutil"
	"github.com/nomasters/sphincs256/internal/errs"
	"github.com/nomasters/sphincs256/internal/hash"
)

// nBits is the fixed hash width in bits; only the Winternitz parameter
// w varies across parameter sets.
const nBits = hash.Size * 8

// Params holds the derived WOTS+ dimensions for a Winternitz parameter
// w. Build one with New.
type Params struct {
	W  int
	l1 int
	l2 int
}

// New validates w (must be a power of two, at least 2, whose log2(w)
// divides evenly into the 8-bit byte boundary) and derives
// L1, L2 and L from it.
func New(w int) (Params, error) {
	if w < 2 || w&(w-1) != 0 {
		return Params{}, errs.Errorf(errs.InvalidParameter, "wots: w=%d must be a power of two", w)
	}
	logW := bitLen(w) - 1
	if 8%logW != 0 {
		return Params{}, errs.Errorf(errs.InvalidParameter, "wots: log2(w)=%d must divide 8", logW)
	}
	l1 := (nBits + logW - 1) / logW
	l1w1 := l1 * (w - 1)
	l2 := floorLog2DivK(l1w1, logW) + 1
	return Params{W: w, l1: l1, l2: l2}, nil
}

func bitLen(x int) int {
	n := 0
	for x > 0 {
		n++
		x >>= 1
	}
	return n
}

func floorLog2DivK(x, k int) int {
	m := 0
	for (1 << uint((m+1)*k)) <= x {
		m++
	}
	return m
}

// L1 is the number of base-w chains needed to encode the message.
func (p Params) L1() int { return p.l1 }

// L2 is the number of base-w chains needed to encode the checksum.
func (p Params) L2() int { return p.l2 }

// L is the total number of WOTS+ chains, L1+L2.
func (p Params) L() int { return p.l1 + p.l2 }

// SeedBytes is the size of the seed consumed by Keygen/Sign.
func (p Params) SeedBytes() int { return hash.Size }

// SigBytes is the size of a WOTS+ signature (and of a public key).
func (p Params) SigBytes() int { return p.L() * hash.Size }

// MaskBytes is the size of the mask pool WOTS+ consumes: w-1 masks of
// hash.Size bytes each, shared with higher hyper-tree levels via the
// prefix of the global mask array Q.
func (p Params) MaskBytes() int { return (p.W - 1) * hash.Size }

// expandSeed derives the L secret-key elements from seed via G.
func (p Params) expandSeed(seed []byte) [][]byte {
	buf := make([]byte, p.L()*hash.Size)
	hash.G(buf, seed)
	return bytesutil.Chunk(buf, hash.Size)
}

// chainLengths decomposes m into the L base-w digits B[0..L) used to
// select each chain's evaluation length: B[0:L1] are the little-endian
// base-w digits of the message integer, B[L1:L] are the base-w digits
// of the Winternitz checksum.
func (p Params) chainLengths(m []byte) []int {
	logW := bitLen(p.W) - 1
	digitsPerByte := 8 / logW

	b := make([]int, 0, p.L())
	for _, byt := range m {
		v := int(byt)
		for k := 0; k < digitsPerByte; k++ {
			b = append(b, v&(p.W-1))
			v >>= logW
		}
	}
	b = b[:p.l1]

	csum := 0
	for _, d := range b {
		csum += p.W - 1 - d
	}
	for i := 0; i < p.l2; i++ {
		b = append(b, csum&(p.W-1))
		csum >>= logW
	}
	return b
}

// chain applies F, masked per step by masks[j], to x for steps j in
// [start, start+steps).
func chain(x []byte, start, steps int, masks []byte) []byte {
	cur := append([]byte(nil), x...)
	buf := make([]byte, hash.Size)
	for j := start; j < start+steps; j++ {
		maskOff := j * hash.Size
		_ = bytesutil.XOR(buf, cur, masks[maskOff:maskOff+hash.Size])
		hash.F(cur, buf)
	}
	return cur
}

// Keygen runs every chain to its end (w-1 steps) and returns the L
// public-key elements.
func (p Params) Keygen(seed, masks []byte) [][]byte {
	sk := p.expandSeed(seed)
	pk := make([][]byte, p.L())
	for i := 0; i < p.L(); i++ {
		pk[i] = chain(sk[i], 0, p.W-1, masks)
	}
	return pk
}

// Sign advances each chain i only to B[i] steps, where B is the
// base-w-plus-checksum decomposition of m (which must be hash.Size
// bytes).
func (p Params) Sign(m, seed, masks []byte) [][]byte {
	sk := p.expandSeed(seed)
	b := p.chainLengths(m)
	sig := make([][]byte, p.L())
	for i := 0; i < p.L(); i++ {
		sig[i] = chain(sk[i], 0, b[i], masks)
	}
	return sig
}

// Verify completes each signature chain element the remaining
// (w-1-B[i]) steps, reproducing the public key iff sig was produced by
// Sign(m, seed, masks) for the same seed.
func (p Params) Verify(m []byte, sig [][]byte, masks []byte) [][]byte {
	b := p.chainLengths(m)
	pk := make([][]byte, p.L())
	for i := 0; i < p.L(); i++ {
		pk[i] = chain(sig[i], b[i], p.W-1-b[i], masks)
	}
	return pk
}
