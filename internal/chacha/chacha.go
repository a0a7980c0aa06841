// Package chacha implements the ChaCha permutation and the keystream
// generator built on top of it, exactly as used by SPHINCS-256's F, H
// and G hash roles. It is hand-written rather than built on
// golang.org/x/crypto/chacha20: that package implements the RFC 7539
// stream cipher, which fixes a 96-bit nonce and a 32-bit block counter
// and never exposes the bare 16-word permutation SPHINCS needs for F
// and H.
package chacha

import (
	"encoding/binary"

	"github.com/nomasters/sphincs256/internal/errs"
)

// DefaultRounds is the round count SPHINCS-256 uses throughout.
const DefaultRounds = 12

var (
	errOddRounds = errs.Errorf(errs.InvalidParameter, "chacha: rounds must be even")
	errKeyLen    = errs.Errorf(errs.InvalidParameter, "chacha: key must be 32 bytes")
	errNonceLen  = errs.Errorf(errs.InvalidParameter, "chacha: nonce must be 8 bytes")
)

var sigma = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574} // "expand 32-byte k"

// State is the 16 little-endian 32-bit word ChaCha state: 4 constant
// words, 8 key words, 2 counter words, 2 nonce words.
type State struct {
	words  [16]uint32
	rounds int
}

// New builds a ChaCha state from a 32-byte key and an 8-byte nonce.
// rounds must be even; SPHINCS-256 always uses DefaultRounds.
func New(key, nonce []byte, rounds int) (*State, error) {
	if rounds&1 != 0 {
		return nil, errOddRounds
	}
	if len(key) != 32 {
		return nil, errKeyLen
	}
	if len(nonce) != 8 {
		return nil, errNonceLen
	}
	s := &State{rounds: rounds}
	copy(s.words[0:4], sigma[:])
	for i := 0; i < 8; i++ {
		s.words[4+i] = binary.LittleEndian.Uint32(key[4*i : 4*i+4])
	}
	s.words[12] = 0
	s.words[13] = 0
	s.words[14] = binary.LittleEndian.Uint32(nonce[0:4])
	s.words[15] = binary.LittleEndian.Uint32(nonce[4:8])
	return s, nil
}

func rotl32(x uint32, n uint) uint32 {
	return (x << n) | (x >> (32 - n))
}

func quarterRound(x *[16]uint32, a, b, c, d int) {
	x[a] += x[b]
	x[d] = rotl32(x[d]^x[a], 16)
	x[c] += x[d]
	x[b] = rotl32(x[b]^x[c], 12)
	x[a] += x[b]
	x[d] = rotl32(x[d]^x[a], 8)
	x[c] += x[d]
	x[b] = rotl32(x[b]^x[c], 7)
}

// Permute runs rounds/2 double-rounds of ChaCha over a 16-word state
// in place, then adds the original input word-wise modulo 2^32 — the
// standard ChaCha block function. It is exported for internal/hash's
// F and H, which apply the bare permutation (not the keystream) to
// 64-byte blocks.
func Permute(state *[16]uint32, rounds int) {
	orig := *state
	x := *state
	for i := 0; i < rounds; i += 2 {
		quarterRound(&x, 0, 4, 8, 12)
		quarterRound(&x, 1, 5, 9, 13)
		quarterRound(&x, 2, 6, 10, 14)
		quarterRound(&x, 3, 7, 11, 15)

		quarterRound(&x, 0, 5, 10, 15)
		quarterRound(&x, 1, 6, 11, 12)
		quarterRound(&x, 2, 7, 8, 13)
		quarterRound(&x, 3, 4, 9, 14)
	}
	for i := range x {
		x[i] += orig[i]
	}
	*state = x
}

// PermuteBytes applies Permute to a 64-byte block, viewed as 16
// little-endian 32-bit words, and returns the permuted 64 bytes.
func PermuteBytes(block []byte, rounds int) []byte {
	var words [16]uint32
	for i := 0; i < 16; i++ {
		words[i] = binary.LittleEndian.Uint32(block[4*i : 4*i+4])
	}
	Permute(&words, rounds)
	out := make([]byte, 64)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(out[4*i:4*i+4], words[i])
	}
	return out
}

// Keystream produces the first n bytes of the keystream starting at
// the state's current counter, incrementing the counter (with carry
// into the high counter word) once per 64-byte block produced.
func (s *State) Keystream(n int) []byte {
	out := make([]byte, 0, n)
	for len(out) < n {
		var words [16]uint32
		copy(words[:], s.words[:])
		Permute(&words, s.rounds)
		block := make([]byte, 64)
		for i := 0; i < 16; i++ {
			binary.LittleEndian.PutUint32(block[4*i:4*i+4], words[i])
		}
		out = append(out, block...)

		s.words[12]++
		if s.words[12] == 0 {
			s.words[13]++
		}
	}
	return out[:n]
}
