// Package bytesutil provides the small byte-level primitives shared by
// the hash, tree, wots and horst packages: fixed-width XOR, chunking,
// and the little/big-endian integer codecs used throughout the
// hyper-tree address encoding and message-index extraction.
package bytesutil

import "github.com/nomasters/sphincs256/internal/errs"

// XOR writes a[i]^b[i] into dst for all i. a and b must have equal
// length; dst may alias a or b.
func XOR(dst, a, b []byte) error {
	if len(a) != len(b) {
		return errs.Errorf(errs.InvalidParameter, "bytesutil: XOR length mismatch: %d != %d", len(a), len(b))
	}
	for i := range a {
		dst[i] = a[i] ^ b[i]
	}
	return nil
}

// Chunk splits b into contiguous slices of size n, the last one short
// if len(b) is not a multiple of n. The returned slices alias b.
func Chunk(b []byte, n int) [][]byte {
	chunks := make([][]byte, 0, (len(b)+n-1)/n)
	for len(b) > 0 {
		if len(b) < n {
			chunks = append(chunks, b)
			break
		}
		chunks = append(chunks, b[:n])
		b = b[n:]
	}
	return chunks
}

// PutUint64LE writes the low len(out) bytes of x into out, little-endian.
func PutUint64LE(out []byte, x uint64) {
	for i := range out {
		out[i] = byte(x >> (8 * uint(i)))
	}
}

// Uint64LE interprets in as a little-endian integer.
func Uint64LE(in []byte) uint64 {
	var x uint64
	for i := len(in) - 1; i >= 0; i-- {
		x = (x << 8) | uint64(in[i])
	}
	return x
}

// PutUint64BE writes the low len(out) bytes of x into out, big-endian.
func PutUint64BE(out []byte, x uint64) {
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = byte(x)
		x >>= 8
	}
}

// Uint64BE interprets in as a big-endian integer.
func Uint64BE(in []byte) uint64 {
	var x uint64
	for i := 0; i < len(in); i++ {
		x = (x << 8) | uint64(in[i])
	}
	return x
}

// TopBitsBE extracts the top `bits` bits of in, read as a big-endian
// integer, and returns them right-justified in a uint64. This is the
// big-endian-parse-then-right-shift step used to turn the randomizer
// R2 into the h-bit hyper-tree leaf index i (spec: i = BE(R2) >>
// (n-h)); bits must be at most 64.
func TopBitsBE(in []byte, bits int) uint64 {
	var x uint64
	remaining := bits
	for _, b := range in {
		if remaining <= 0 {
			break
		}
		if remaining >= 8 {
			x = (x << 8) | uint64(b)
			remaining -= 8
		} else {
			x = (x << uint(remaining)) | uint64(b>>(8-uint(remaining)))
			remaining = 0
		}
	}
	return x
}

// Zero overwrites b with zero bytes. Used to clear scratch copies of
// secret-key material before the buffer is released, per the
// SPHINCS-256 resource-model requirement that secrets not outlive their
// use. Not a constant-time-erasure guarantee against a sufficiently
// motivated compiler; it's best-effort.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
