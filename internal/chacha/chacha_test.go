package chacha

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestPermuteIdentity checks that permuting the all-zero state with
// zero rounds is the identity (the added original state equals the
// permuted state).
func TestPermuteIdentity(t *testing.T) {
	var state [16]uint32
	want := state
	Permute(&state, 0)
	require.Equal(t, want, state)
}

// TestQuarterRoundVector checks the quarter round against the
// published RFC 8439 section 2.1.1 test vector.
func TestQuarterRoundVector(t *testing.T) {
	x := [16]uint32{
		0x11111111, 0x01020304, 0x9b8d6f43, 0x01234567,
	}
	quarterRound(&x, 0, 1, 2, 3)

	want := [4]uint32{0xea2a92f4, 0xcb1cf8ce, 0x4581472e, 0x5881c4bb}
	require.Equal(t, want, [4]uint32{x[0], x[1], x[2], x[3]})
}

// TestPermuteOneBit exercises the permutation on a state with a
// single set bit, checking it is deterministic and alters the state.
func TestPermuteOneBit(t *testing.T) {
	var a, b [16]uint32
	a[0] = 1
	b[0] = 1
	Permute(&a, DefaultRounds)
	Permute(&b, DefaultRounds)
	require.Equal(t, a, b, "ChaCha permutation must be a deterministic function of its input")
	require.NotEqual(t, [16]uint32{1}, a, "12 rounds of ChaCha must not be the identity")
}

func TestKeystreamLengthAndDeterminism(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	nonce := make([]byte, 8)

	s1, err := New(key, nonce, DefaultRounds)
	require.NoError(t, err)
	s2, err := New(key, nonce, DefaultRounds)
	require.NoError(t, err)

	ks1 := s1.Keystream(100)
	ks2 := s2.Keystream(100)
	require.Len(t, ks1, 100)
	require.Equal(t, ks1, ks2)
}

func TestKeystreamCounterCarry(t *testing.T) {
	key := make([]byte, 32)
	nonce := make([]byte, 8)
	s, err := New(key, nonce, DefaultRounds)
	require.NoError(t, err)
	s.words[12] = 0xFFFFFFFF

	first := s.Keystream(64)
	require.NotNil(t, first)
	require.Equal(t, uint32(0), s.words[12])
	require.Equal(t, uint32(1), s.words[13])
}

func TestNewValidation(t *testing.T) {
	_, err := New(make([]byte, 32), make([]byte, 8), 11)
	require.Error(t, err)
	_, err = New(make([]byte, 16), make([]byte, 8), 12)
	require.Error(t, err)
	_, err = New(make([]byte, 32), make([]byte, 4), 12)
	require.Error(t, err)
}
