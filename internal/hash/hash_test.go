package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFDeterministic(t *testing.T) {
	m := make([]byte, Size)
	for i := range m {
		m[i] = byte(i)
	}
	var out1, out2 [Size]byte
	F(out1[:], m)
	F(out2[:], m)
	require.Equal(t, out1, out2)
	require.NotEqual(t, m, out1[:], "F must not be the identity")
}

func TestHDeterministicAndSensitive(t *testing.T) {
	m1 := make([]byte, Size)
	m2 := make([]byte, Size)
	for i := range m1 {
		m1[i] = byte(i)
		m2[i] = byte(255 - i)
	}
	var out1, out2 [Size]byte
	H(out1[:], m1, m2)
	H(out2[:], m1, m2)
	require.Equal(t, out1, out2)

	m2Flipped := make([]byte, Size)
	copy(m2Flipped, m2)
	m2Flipped[0] ^= 1
	var out3 [Size]byte
	H(out3[:], m1, m2Flipped)
	require.NotEqual(t, out1, out3)
}

func TestGLength(t *testing.T) {
	seed := make([]byte, Size)
	out := make([]byte, 137)
	G(out, seed)
	require.Len(t, out, 137)

	out2 := make([]byte, 137)
	G(out2, seed)
	require.Equal(t, out, out2)
}

func TestFaDeterministic(t *testing.T) {
	key := make([]byte, Size)
	addr := make([]byte, 8)
	var out1, out2 [Size]byte
	Fa(out1[:], key, addr)
	Fa(out2[:], key, addr)
	require.Equal(t, out1, out2)
}

func TestHmsgAndFrandLengths(t *testing.T) {
	r := make([]byte, Size)
	m := []byte("message")
	k := make([]byte, Size)

	d := make([]byte, 64)
	Hmsg(d, r, m)
	require.NotEqual(t, make([]byte, 64), d)

	rnd := make([]byte, 64)
	Frand(rnd, m, k)
	require.NotEqual(t, make([]byte, 64), rnd)
}
