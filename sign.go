package sphincs256

import (
	"github.com/nomasters/sphincs256/internal/addr"
	"github.com/nomasters/sphincs256/internal/bytesutil"
	"github.com/nomasters/sphincs256/internal/hash"
	"github.com/nomasters/sphincs256/internal/tree"
)

// SignDetached produces a detached SPHINCS signature over message
// under sk: randomize with Frand, hash with Hmsg, sign the digest with
// HORST at a leaf index derived from the randomizer, then certify the
// HORST public key up the hyper-tree with one WOTS+ signature and
// authenticated subtree root per level.
func SignDetached(sk PrivateKey, message []byte) ([]byte, error) {
	p := sk.Params
	if err := p.Validate(); err != nil {
		return nil, err
	}
	q := flattenQ(sk.Q)
	wp, err := p.wots()
	if err != nil {
		return nil, err
	}
	hp, err := p.horst()
	if err != nil {
		return nil, err
	}
	subh := p.SubH()
	qtree := q[p.qtreeOffset():]
	mixT := maskedMix(qtree)

	r := make([]byte, p.M/8)
	hash.Frand(r, message, sk.SK2)
	r1 := r[:hash.Size]
	r2 := r[hash.Size:]

	d := make([]byte, p.M/8)
	hash.Hmsg(d, r1, message)

	i := bytesutil.TopBitsBE(r2, p.H)
	leafMask := uint64(1)<<uint(subh) - 1

	a := addr.Address{Level: uint8(p.D), Subtree: i >> uint(subh), Leaf: uint8(i & leafMask)}

	seedH := make([]byte, hash.Size)
	hash.Fa(seedH, sk.SK1, addr.Encode(a))
	sigHorst, pkHorst := hp.Sign(d, seedH, q)

	out := make([]byte, 0, p.SignatureSize())
	idxBytes := make([]byte, (p.H+7)/8)
	bytesutil.PutUint64LE(idxBytes, i)
	out = append(out, idxBytes...)
	out = append(out, r1...)
	out = append(out, sigHorst...)

	pk := pkHorst
	for level := 0; level < p.D; level++ {
		a.Level = uint8(level)

		seedW := make([]byte, hash.Size)
		hash.Fa(seedW, sk.SK1, addr.Encode(a))
		sigW := wp.Sign(pk, seedW, q)
		for _, e := range sigW {
			out = append(out, e...)
		}

		leaves := keygenSubtreeLeaves(a.Level, a.Subtree, sk.SK1, q, wp, subh)
		layers := tree.HashTree(mixT, leaves)
		path := tree.AuthPath(layers, int(a.Leaf))
		for _, e := range path {
			out = append(out, e...)
		}
		pk = layers.Root()

		a.Leaf = uint8(a.Subtree & leafMask)
		a.Subtree >>= uint(subh)
	}

	bytesutil.Zero(sigHorst) // sigHorst's sk elements are secret; it is copied into out above
	return out, nil
}

// Sign returns the signature concatenated with the message
// (sig || message), the combined envelope Open expects.
func Sign(sk PrivateKey, message []byte) ([]byte, error) {
	sig, err := SignDetached(sk, message)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(sig)+len(message))
	out = append(out, sig...)
	out = append(out, message...)
	return out, nil
}
