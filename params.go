package sphincs256

import (
	"github.com/nomasters/sphincs256/internal/errs"
	"github.com/nomasters/sphincs256/internal/hash"
	"github.com/nomasters/sphincs256/internal/horst"
	"github.com/nomasters/sphincs256/internal/wots"
)

// Params is a SPHINCS parameter set: the hash width n, the message-hash
// width m, the hyper-tree height h split across d levels, the WOTS+
// Winternitz parameter w, and the HORST dimensions tau and k. SPHINCS256
// is the only parameter set this package optimizes for; others are
// accepted so long as they pass Validate (spec's non-default parameter
// sets are a consistency check, not a performance target).
type Params struct {
	N   int
	M   int
	H   int
	D   int
	W   int
	Tau int
	K   int
}

// SPHINCS256 is the default parameter set this scheme is named for.
var SPHINCS256 = Params{N: 256, M: 512, H: 60, D: 12, W: 16, Tau: 16, K: 32}

// Validate checks the shape invariants this package requires: n is the
// fixed hash width this module's F/H/G are built around, h divides
// evenly by d, and the WOTS+/HORST sub-parameters are internally
// consistent.
func (p Params) Validate() error {
	if p.N != hash.Size*8 {
		return errs.Errorf(errs.InvalidParameter, "sphincs256: n=%d must equal %d", p.N, hash.Size*8)
	}
	if p.D <= 0 || p.H%p.D != 0 {
		return errs.Errorf(errs.InvalidParameter, "sphincs256: h=%d must be divisible by d=%d", p.H, p.D)
	}
	if p.SubH() > 5 {
		return errs.Errorf(errs.InvalidParameter, "sphincs256: h/d=%d exceeds the 5-bit leaf field ([59,64)) of the address encoding", p.SubH())
	}
	if _, err := p.wots(); err != nil {
		return err
	}
	if _, err := p.horst(); err != nil {
		return err
	}
	return nil
}

// SubH is the height of each hyper-tree subtree, h/d.
func (p Params) SubH() int { return p.H / p.D }

func (p Params) wots() (wots.Params, error) { return wots.New(p.W) }

func (p Params) horst() (horst.Params, error) { return horst.New(p.Tau, p.K, p.M) }

// logL is ceil(log2(ell)), the number of L-tree reduction levels — also
// the offset (in mask pairs) separating the L-tree's own mask usage
// from the subtree hash-tree's.
func (p Params) logL() int {
	wp, err := p.wots()
	if err != nil {
		panic(err)
	}
	n, l := 0, 1
	for l < wp.L() {
		l <<= 1
		n++
	}
	return n
}

// qtreeOffset is the byte offset into Q where the subtree/hyper-tree
// hash-tree mask pairs begin.
func (p Params) qtreeOffset() int { return 2 * p.logL() * hash.Size }

// MaskCount is p, the number of n/8-byte masks Q must hold: the max of
// the WOTS+ chain pool, the L-tree-plus-subtree-hash-tree pool, and the
// HORST tree pool.
func (p Params) MaskCount() int {
	a := p.W - 1
	b := 2 * (p.H + p.logL())
	c := 2 * p.Tau
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

// PublicKeySize is the serialized size of a PublicKey.
func (p Params) PublicKeySize() int { return hash.Size + p.MaskCount()*hash.Size }

// PrivateKeySize is the serialized size of a PrivateKey.
func (p Params) PrivateKeySize() int { return 2*hash.Size + p.MaskCount()*hash.Size }

// SignatureSize is the serialized size of a Signature.
func (p Params) SignatureSize() int {
	hp, err := p.horst()
	if err != nil {
		panic(err)
	}
	wp, err := p.wots()
	if err != nil {
		panic(err)
	}
	idxBytes := (p.H + 7) / 8
	return idxBytes + hash.Size + hp.SigBytes() + p.D*(wp.SigBytes()+p.SubH()*hash.Size)
}
