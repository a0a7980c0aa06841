// Package horst implements the HORST few-time signature: a hash tree
// over 2^tau F-hashed secret elements, pruned so that only the 2^x
// nodes at depth tau-x are published in full instead of a complete
// authentication path per revealed index, with x chosen to minimize
// the resulting signature size.
//
// The published layer is selected by dividing the revealed index by
// 2^(tau-x); some descriptions of this optimization use 2^(tau-x+1),
// which is off by one level.
package horst

import (
	"crypto/subtle"

	"github.com/nomasters/sphincs256/internal/bytesutil"
	"github.com/nomasters/sphincs256/internal/errs"
	"github.com/nomasters/sphincs256/internal/hash"
	"github.com/nomasters/sphincs256/internal/parallel"
	"github.com/nomasters/sphincs256/internal/tree"
)

// Params holds a HORST instance's dimensions.
type Params struct {
	Tau int
	K   int
	X   int // depth of the published pruned layer below the root: tau-X
}

// New validates k*tau == m and computes the optimal pruning depth x,
// the value in [0,tau) maximizing k*x - 2^x (ties broken toward the
// smallest x).
func New(tau, k, m int) (Params, error) {
	if k*tau != m {
		return Params{}, errs.Errorf(errs.InvalidParameter, "horst: k*tau (%d*%d) != m (%d)", k, tau, m)
	}
	best, bestScore := 0, k*0-1
	for x := 0; x < tau; x++ {
		score := k*x - (1 << uint(x))
		if score > bestScore {
			bestScore = score
			best = x
		}
	}
	return Params{Tau: tau, K: k, X: best}, nil
}

// T is the number of HORST secret-key elements, 2^tau.
func (p Params) T() int { return 1 << uint(p.Tau) }

// SeedBytes is the size of the seed consumed by Keygen/Sign.
func (p Params) SeedBytes() int { return hash.Size }

// authLen is the truncated authentication-path length per revealed index.
func (p Params) authLen() int { return p.Tau - p.X }

// SigBytes is the size of a HORST signature: k * (sk element + auth
// path of authLen nodes), followed by the 2^x published nodes.
func (p Params) SigBytes() int {
	return p.K*(hash.Size+p.authLen()*hash.Size) + (1<<uint(p.X))*hash.Size
}

// MaskBytes is the size of the mask pool HORST consumes: 2*tau masks
// of hash.Size bytes, one pair per tree layer.
func (p Params) MaskBytes() int { return 2 * p.Tau * hash.Size }

func mixWithMasks(masks []byte) tree.Mix[[]byte] {
	return func(l, r []byte, level int) []byte {
		var buf [2 * hash.Size]byte
		copy(buf[:hash.Size], l)
		copy(buf[hash.Size:], r)
		out := make([]byte, hash.Size)
		off := 2 * level * hash.Size
		hash.Hash2NNMask(out, buf[:], masks[off:off+2*hash.Size])
		return out
	}
}

func offsetMix(mix tree.Mix[[]byte], base int) tree.Mix[[]byte] {
	return func(l, r []byte, level int) []byte { return mix(l, r, base+level) }
}

// MessageIndices chunks a message digest into p.K little-endian
// p.Tau/8-byte pieces, each read as an index in [0, 2^tau).
func (p Params) MessageIndices(d []byte) []int {
	chunkLen := p.Tau / 8
	chunks := bytesutil.Chunk(d, chunkLen)
	idx := make([]int, 0, len(chunks))
	for _, c := range chunks {
		idx = append(idx, int(bytesutil.Uint64LE(c)))
	}
	return idx
}

func (p Params) buildTree(seed, masks []byte) (tree.Layers[[]byte], [][]byte) {
	skBuf := make([]byte, p.T()*hash.Size)
	hash.G(skBuf, seed)
	sk := bytesutil.Chunk(skBuf, hash.Size)

	leaves := make([][]byte, p.T())
	parallel.Fill(p.T(), func(i int) {
		leaf := make([]byte, hash.Size)
		hash.F(leaf, sk[i])
		leaves[i] = leaf
	})

	mix := mixWithMasks(masks)
	return tree.HashTree(mix, leaves), sk
}

// Keygen returns the HORST public key: the root of the hash tree over
// the F-hashed secret elements.
func (p Params) Keygen(seed, masks []byte) []byte {
	t, _ := p.buildTree(seed, masks)
	return t.Root()
}

// Sign signs a message digest D (p.K*p.Tau/8 bytes). It returns the
// signature bytes and the HORST public key (the tree root), which the
// caller (the SPHINCS hyper-tree) signs with WOTS+ in turn.
func (p Params) Sign(d, seed, masks []byte) (sig, pk []byte) {
	layers, sk := p.buildTree(seed, masks)
	pk = layers.Root()

	idxs := p.MessageIndices(d)
	al := p.authLen()
	out := make([]byte, 0, p.SigBytes())
	for _, idx := range idxs {
		out = append(out, sk[idx]...)
		path := tree.AuthPath(layers, idx)[:al]
		for _, node := range path {
			out = append(out, node...)
		}
	}
	prunedLayer := layers[al]
	for _, node := range prunedLayer {
		out = append(out, node...)
	}
	return out, pk
}

// Verify checks a HORST signature against a message digest D and
// returns the derived public key and true, or (nil, false) if any of
// the k claimed subtree roots disagree with the published pruned
// layer.
func (p Params) Verify(d, sig, masks []byte) ([]byte, bool) {
	if len(sig) != p.SigBytes() {
		return nil, false
	}
	idxs := p.MessageIndices(d)
	al := p.authLen()
	mix := mixWithMasks(masks)

	elemSize := hash.Size + al*hash.Size
	prunedOff := p.K * elemSize
	prunedCount := 1 << uint(p.X)
	pruned := bytesutil.Chunk(sig[prunedOff:prunedOff+prunedCount*hash.Size], hash.Size)

	for j, idx := range idxs {
		off := j * elemSize
		skElem := sig[off : off+hash.Size]
		path := bytesutil.Chunk(sig[off+hash.Size:off+elemSize], hash.Size)

		leaf := make([]byte, hash.Size)
		hash.F(leaf, skElem)

		r := tree.ConstructRoot(mix, path, leaf, idx)
		want := pruned[idx>>uint(al)]
		if subtle.ConstantTimeCompare(r, want) != 1 {
			return nil, false
		}
	}

	topMix := offsetMix(mix, al)
	topTree := tree.HashTree(topMix, pruned)
	return topTree.Root(), true
}
