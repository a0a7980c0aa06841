package wots

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nomasters/sphincs256/internal/hash"
)

func fill(n int, b byte) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b + byte(i)
	}
	return out
}

// TestRoundTrip checks that verifying a correctly-produced signature
// reproduces the public key exactly.
func TestRoundTrip(t *testing.T) {
	p, err := New(16)
	require.NoError(t, err)
	require.Equal(t, 67, p.L())

	seed := fill(p.SeedBytes(), 0x11)
	masks := fill(p.MaskBytes(), 0x22)
	m := fill(hash.Size, 0x33)

	pk := p.Keygen(seed, masks)
	sig := p.Sign(m, seed, masks)
	got := p.Verify(m, sig, masks)
	require.Equal(t, pk, got)
}

// TestRoundTripRejectsTamperedMessage checks that verifying against a
// different message does not reproduce the original public key.
func TestRoundTripRejectsTamperedMessage(t *testing.T) {
	p, err := New(16)
	require.NoError(t, err)

	seed := fill(p.SeedBytes(), 0x44)
	masks := fill(p.MaskBytes(), 0x55)
	m := fill(hash.Size, 0x66)
	m2 := fill(hash.Size, 0x67)

	pk := p.Keygen(seed, masks)
	sig := p.Sign(m, seed, masks)
	got := p.Verify(m2, sig, masks)
	require.NotEqual(t, pk, got)
}

// TestReducedParameterW4 checks the dimensions and round-trip of a
// small Winternitz parameter (w=4), useful for fast test suites.
func TestReducedParameterW4(t *testing.T) {
	p, err := New(4)
	require.NoError(t, err)
	require.Equal(t, 128, p.L1())
	require.Equal(t, 5, p.L2())
	require.Equal(t, 133, p.L())

	seed := fill(p.SeedBytes(), 0x01)
	masks := fill(p.MaskBytes(), 0x02)
	m := fill(hash.Size, 0x03)

	pk := p.Keygen(seed, masks)
	sig := p.Sign(m, seed, masks)
	require.Equal(t, pk, p.Verify(m, sig, masks))
}

func TestNewRejectsNonPowerOfTwo(t *testing.T) {
	_, err := New(3)
	require.Error(t, err)
}

func TestNewRejectsNonDividingLogW(t *testing.T) {
	// log2(32) = 5, which does not divide 8.
	_, err := New(32)
	require.Error(t, err)
}

func TestChainLengthsWithinRange(t *testing.T) {
	p, err := New(16)
	require.NoError(t, err)
	m := fill(hash.Size, 0xAB)
	b := p.chainLengths(m)
	require.Len(t, b, p.L())
	for _, d := range b {
		require.GreaterOrEqual(t, d, 0)
		require.Less(t, d, p.W)
	}
}
