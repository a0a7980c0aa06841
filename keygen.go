package sphincs256

import (
	"crypto/rand"
	"io"

	"github.com/nomasters/sphincs256/internal/addr"
	"github.com/nomasters/sphincs256/internal/hash"
	"github.com/nomasters/sphincs256/internal/parallel"
	"github.com/nomasters/sphincs256/internal/tree"
	"github.com/nomasters/sphincs256/internal/wots"
)

// wotsLeaf computes root(l_tree(H', wots.keygen(Fa(a,sk1), q))) for a
// single hyper-tree address: the WOTS+ public key at that address,
// compressed by an L-tree into one leaf.
func wotsLeaf(a addr.Address, sk1, q []byte, wp wots.Params) []byte {
	seed := make([]byte, hash.Size)
	hash.Fa(seed, sk1, addr.Encode(a))
	pk := wp.Keygen(seed, q)
	return tree.LTree(maskedMix(q), pk).Root()
}

// keygenSubtreeLeaves computes the 2^subh wotsLeaf values for one
// hyper-tree subtree rooted at (level, subtree), in parallel: each
// leaf is independent, deterministic work.
func keygenSubtreeLeaves(level uint8, subtree uint64, sk1, q []byte, wp wots.Params, subh int) [][]byte {
	n := 1 << uint(subh)
	leaves := make([][]byte, n)
	parallel.Fill(n, func(i int) {
		a := addr.Address{Level: level, Subtree: subtree, Leaf: uint8(i)}
		leaves[i] = wotsLeaf(a, sk1, q, wp)
	})
	return leaves
}

// keygenPub derives PK1: the root of the full hash tree over the
// 2^(h/d) top-level WOTS+ leaves at hyper-tree level d-1.
func keygenPub(p Params, sk1, q []byte) ([]byte, error) {
	wp, err := p.wots()
	if err != nil {
		return nil, err
	}
	leaves := keygenSubtreeLeaves(uint8(p.D-1), 0, sk1, q, wp, p.SubH())
	qtree := q[p.qtreeOffset():]
	return tree.HashTree(maskedMix(qtree), leaves).Root(), nil
}

// GenerateKey draws SK1, SK2 and the mask pool Q from rand (use
// crypto/rand.Reader in production) and derives the corresponding
// public key.
func GenerateKey(rnd io.Reader, p Params) (PublicKey, PrivateKey, error) {
	if err := p.Validate(); err != nil {
		return PublicKey{}, PrivateKey{}, err
	}

	sk1 := make([]byte, hash.Size)
	sk2 := make([]byte, hash.Size)
	if _, err := io.ReadFull(rnd, sk1); err != nil {
		return PublicKey{}, PrivateKey{}, err
	}
	if _, err := io.ReadFull(rnd, sk2); err != nil {
		return PublicKey{}, PrivateKey{}, err
	}

	q := make([][]byte, p.MaskCount())
	for i := range q {
		q[i] = make([]byte, hash.Size)
		if _, err := io.ReadFull(rnd, q[i]); err != nil {
			return PublicKey{}, PrivateKey{}, err
		}
	}

	pk1, err := keygenPub(p, sk1, flattenQ(q))
	if err != nil {
		return PublicKey{}, PrivateKey{}, err
	}

	return PublicKey{Params: p, PK1: pk1, Q: q}, PrivateKey{Params: p, SK1: sk1, SK2: sk2, Q: q}, nil
}

// GenerateKeyDefault is a convenience wrapper calling GenerateKey with
// crypto/rand.Reader and the SPHINCS256 parameter set.
func GenerateKeyDefault() (PublicKey, PrivateKey, error) {
	return GenerateKey(rand.Reader, SPHINCS256)
}
