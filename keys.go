package sphincs256

import (
	"github.com/nomasters/sphincs256/internal/bytesutil"
	"github.com/nomasters/sphincs256/internal/errs"
	"github.com/nomasters/sphincs256/internal/hash"
)

// PrivateKey is SK1 || SK2 || Q.
type PrivateKey struct {
	Params Params
	SK1    []byte
	SK2    []byte
	Q      [][]byte
}

// PublicKey is PK1 || Q.
type PublicKey struct {
	Params Params
	PK1    []byte
	Q      [][]byte
}

// Bytes serializes sk as SK1 (n/8) || SK2 (n/8) || Q (p * n/8).
func (sk PrivateKey) Bytes() []byte {
	out := make([]byte, 0, sk.Params.PrivateKeySize())
	out = append(out, sk.SK1...)
	out = append(out, sk.SK2...)
	for _, m := range sk.Q {
		out = append(out, m...)
	}
	return out
}

// Bytes serializes pk as PK1 (n/8) || Q (p * n/8).
func (pk PublicKey) Bytes() []byte {
	out := make([]byte, 0, pk.Params.PublicKeySize())
	out = append(out, pk.PK1...)
	for _, m := range pk.Q {
		out = append(out, m...)
	}
	return out
}

// ParsePrivateKey unpacks a serialized private key for the given
// parameter set. It returns a MalformedInput error if b is the wrong
// length.
func ParsePrivateKey(p Params, b []byte) (PrivateKey, error) {
	if len(b) != p.PrivateKeySize() {
		return PrivateKey{}, errs.Errorf(errs.MalformedInput, "sphincs256: private key is %d bytes, want %d", len(b), p.PrivateKeySize())
	}
	sk1 := b[:hash.Size]
	sk2 := b[hash.Size : 2*hash.Size]
	q := bytesutil.Chunk(b[2*hash.Size:], hash.Size)
	return PrivateKey{Params: p, SK1: sk1, SK2: sk2, Q: q}, nil
}

// ParsePublicKey unpacks a serialized public key for the given
// parameter set. It returns a MalformedInput error if b is the wrong
// length.
func ParsePublicKey(p Params, b []byte) (PublicKey, error) {
	if len(b) != p.PublicKeySize() {
		return PublicKey{}, errs.Errorf(errs.MalformedInput, "sphincs256: public key is %d bytes, want %d", len(b), p.PublicKeySize())
	}
	pk1 := b[:hash.Size]
	q := bytesutil.Chunk(b[hash.Size:], hash.Size)
	return PublicKey{Params: p, PK1: pk1, Q: q}, nil
}

// flattenQ concatenates the mask slices into one contiguous buffer, the
// form every internal package's mask-pool parameter expects.
func flattenQ(q [][]byte) []byte {
	out := make([]byte, 0, len(q)*hash.Size)
	for _, m := range q {
		out = append(out, m...)
	}
	return out
}
