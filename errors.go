package sphincs256

import "github.com/nomasters/sphincs256/internal/errs"

// Kind classifies the typed errors the core can return. Shape
// violations (malformed parameters, wrong-sized keys) surface through
// these. Signature rejection is a plain false return, never an error;
// this includes a signature of the wrong size, which Verify and Open
// reject with false rather than a MalformedInput error.
type Kind = errs.Kind

const (
	InvalidParameter = errs.InvalidParameter
	MalformedInput   = errs.MalformedInput
)

// Error is the typed error returned for shape violations.
type Error = errs.Error
