// Package syntax parses the concrete regular-expression syntax into algebra
// terms. The accepted grammar is a superset of common POSIX syntax: union,
// concatenation, quantifiers (* + ? {n} {n,} {,m} {n,m}), grouping,
// lookaround, comments, character sets with ranges and classes, and the
// usual escape forms.
//
// The parser is the only component that knows the concrete syntax; it
// produces canonical terms and everything downstream (matching, DFA
// construction, generation) is independent of it.
package syntax

import (
	"errors"
	"fmt"
)

// Sentinel errors for the caller-recoverable failure kinds.
var (
	// ErrInvalidRepeat indicates a repeat count of zero ({0}) or a reversed
	// repeat range ({3,1}).
	ErrInvalidRepeat = errors.New("invalid repeat count")

	// ErrInvalidCharRange indicates a character range whose start exceeds
	// its end, such as [z-a].
	ErrInvalidCharRange = errors.New("invalid character range")
)

// ParseError reports a syntax failure with its position in the pattern.
type ParseError struct {
	Pattern string
	Pos     int
	Reason  string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax: parsing %q at offset %d: %s", e.Pattern, e.Pos, e.Reason)
}

// Unwrap returns the underlying sentinel error, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}
