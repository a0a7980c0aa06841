package horst

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fill(n int, b byte) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b + byte(i)
	}
	return out
}

// TestMessageIndicesAllOnes checks that 64 bytes of 0x01 with tau=16
// decodes to 32 copies of 257.
func TestMessageIndicesAllOnes(t *testing.T) {
	p := Params{Tau: 16, K: 32}
	d := make([]byte, 64)
	for i := range d {
		d[i] = 0x01
	}
	idx := p.MessageIndices(d)
	require.Len(t, idx, 32)
	for _, v := range idx {
		require.Equal(t, 257, v)
	}
}

// TestMessageIndicesRange checks that bytes(range(64)) with tau=16
// decodes to 256, 770, 1284, ... stepping by 514.
func TestMessageIndicesRange(t *testing.T) {
	p := Params{Tau: 16, K: 32}
	d := make([]byte, 64)
	for i := range d {
		d[i] = byte(i)
	}
	idx := p.MessageIndices(d)
	require.Len(t, idx, 32)
	require.Equal(t, 256, idx[0])
	for i := 1; i < len(idx); i++ {
		require.Equal(t, idx[i-1]+514, idx[i])
	}
	require.Equal(t, 16190, idx[len(idx)-1])
}

// TestNewChoosesOptimalX sanity-checks the x-optimization against the
// default SPHINCS-256 parameters (tau=16, k=32): x=5 and x=6 tie at
// the maximum of k*x - 2^x over x in [0,16) (both score 128), and the
// tie goes to the smaller x, 5.
func TestNewChoosesOptimalX(t *testing.T) {
	p, err := New(16, 32, 512)
	require.NoError(t, err)
	best, bestScore := 0, -1
	for x := 0; x < 16; x++ {
		score := 32*x - (1 << uint(x))
		if score > bestScore {
			bestScore = score
			best = x
		}
	}
	require.Equal(t, best, p.X)
}

func TestNewRejectsInconsistentDimensions(t *testing.T) {
	_, err := New(16, 32, 400)
	require.Error(t, err)
}

// TestRoundTrip is spec's universal HORST property: verify(M,
// sign(M, seed, masks), masks) == keygen(seed, masks).
func TestRoundTrip(t *testing.T) {
	// A small tau keeps the 2^tau-leaf tree test-sized.
	p, err := New(8, 64, 512)
	require.NoError(t, err)

	seed := fill(p.SeedBytes(), 0x10)
	masks := fill(p.MaskBytes(), 0x20)
	d := fill(64, 0x30)

	pk := p.Keygen(seed, masks)
	sig, signPk := p.Sign(d, seed, masks)
	require.Equal(t, pk, signPk)

	got, ok := p.Verify(d, sig, masks)
	require.True(t, ok)
	require.Equal(t, pk, got)
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	p, err := New(8, 64, 512)
	require.NoError(t, err)

	seed := fill(p.SeedBytes(), 0x11)
	masks := fill(p.MaskBytes(), 0x21)
	d := fill(64, 0x31)

	sig, _ := p.Sign(d, seed, masks)
	tampered := append([]byte(nil), sig...)
	tampered[0] ^= 0xff

	_, ok := p.Verify(d, tampered, masks)
	require.False(t, ok)
}

func TestSigBytesMatchesLayout(t *testing.T) {
	p, err := New(8, 64, 512)
	require.NoError(t, err)

	seed := fill(p.SeedBytes(), 0x12)
	masks := fill(p.MaskBytes(), 0x22)
	d := fill(64, 0x32)

	sig, _ := p.Sign(d, seed, masks)
	require.Len(t, sig, p.SigBytes())
}
