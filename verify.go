package sphincs256

import (
	"crypto/subtle"

	"github.com/nomasters/sphincs256/internal/bytesutil"
	"github.com/nomasters/sphincs256/internal/hash"
	"github.com/nomasters/sphincs256/internal/tree"
)

// Verify checks a detached signature sig over message against pk:
// recover D and the HORST public key, then walk the hyper-tree
// re-deriving a root at each level from the claimed WOTS+ signature and
// subtree path, accepting iff the final root equals PK1.
func Verify(pk PublicKey, message, sig []byte) bool {
	p := pk.Params
	if err := p.Validate(); err != nil {
		return false
	}
	if len(sig) != p.SignatureSize() {
		return false
	}
	wp, err := p.wots()
	if err != nil {
		return false
	}
	hp, err := p.horst()
	if err != nil {
		return false
	}
	subh := p.SubH()
	q := flattenQ(pk.Q)
	qtree := q[p.qtreeOffset():]
	mixL := maskedMix(q)
	mixT := maskedMix(qtree)

	off := 0
	idxBytes := (p.H + 7) / 8
	i := bytesutil.Uint64LE(sig[off : off+idxBytes])
	off += idxBytes
	r1 := sig[off : off+hash.Size]
	off += hash.Size

	horstSigLen := hp.SigBytes()
	sigHorst := sig[off : off+horstSigLen]
	off += horstSigLen

	d := make([]byte, p.M/8)
	hash.Hmsg(d, r1, message)

	horstPk, ok := hp.Verify(d, sigHorst, q)
	if !ok {
		return false
	}

	wotsSigLen := wp.SigBytes()
	pathLen := subh * hash.Size
	leafMask := uint64(1)<<uint(subh) - 1

	cur := horstPk
	for level := 0; level < p.D; level++ {
		if off+wotsSigLen+pathLen > len(sig) {
			return false
		}
		sigW := bytesutil.Chunk(sig[off:off+wotsSigLen], hash.Size)
		off += wotsSigLen
		path := bytesutil.Chunk(sig[off:off+pathLen], hash.Size)
		off += pathLen

		pkWots := wp.Verify(cur, sigW, q)
		leaf := tree.LTree(mixL, pkWots).Root()
		idx := int(i & leafMask)
		cur = tree.ConstructRoot(mixT, path, leaf, idx)
		i >>= uint(subh)
	}

	return subtle.ConstantTimeCompare(cur, pk.PK1) == 1
}

// Open verifies a combined sig||message envelope (as produced by Sign)
// and, on success, returns the message with ok=true. On failure it
// returns (nil, false).
func Open(pk PublicKey, signedMessage []byte) ([]byte, bool) {
	sigLen := pk.Params.SignatureSize()
	if len(signedMessage) < sigLen {
		return nil, false
	}
	sig := signedMessage[:sigLen]
	message := signedMessage[sigLen:]
	if !Verify(pk, message, sig) {
		return nil, false
	}
	return message, true
}
