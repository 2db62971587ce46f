// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "fmt"

// ErrorKind identifies one of the index's distinct failure modes (spec.md
// §7). It follows the teacher's own blockchain.ErrorKind/RuleError split:
// a stable, comparable sentinel plus a wrapper carrying a human-readable
// description, so callers can both errors.Is against the kind and print a
// useful message.
type ErrorKind string

// Error satisfies the error interface directly on ErrorKind, allowing
// errors.Is(err, ErrOrphan) to succeed whether err is the bare ErrorKind
// or a RuleError wrapping it.
func (e ErrorKind) Error() string {
	return string(e)
}

const (
	// ErrBadGenesis is returned by connect when the index is empty and
	// the first node's hash does not equal the configured genesis hash.
	ErrBadGenesis = ErrorKind("blockchain: first block does not match configured genesis hash")

	// ErrOrphan is returned by connect when a non-empty index is given a
	// node whose parent hash is not already present.
	ErrOrphan = ErrorKind("blockchain: parent block not found in index")

	// ErrAlreadyKnown is returned by connect when a node's hash is
	// already present in the index (spec.md §9 open question: the source
	// silently overwrites and leaks; this implementation rejects and
	// leaves state unchanged instead).
	ErrAlreadyKnown = ErrorKind("blockchain: block hash already present in index")

	// ErrWorkOverflow is returned if accumulating a node's work would
	// require more than the fixed-width accumulator can represent. In
	// practice this cannot happen with legal nBits values over any
	// realistic chain length, but connect checks for it rather than
	// silently wrapping.
	ErrWorkOverflow = ErrorKind("blockchain: cumulative work overflowed the 256-bit accumulator")
)

// RuleError wraps an ErrorKind with a contextual description, the same
// shape as the teacher's blockchain.RuleError.
type RuleError struct {
	ErrorCode   ErrorKind
	Description string
}

// Error implements the error interface.
func (e RuleError) Error() string {
	return e.Description
}

// Is allows errors.Is(err, ErrOrphan) (etc.) to match a RuleError wrapping
// that kind.
func (e RuleError) Is(target error) bool {
	kind, ok := target.(ErrorKind)
	if !ok {
		return false
	}
	return e.ErrorCode == kind
}

func ruleError(kind ErrorKind, format string, args ...interface{}) RuleError {
	return RuleError{ErrorCode: kind, Description: fmt.Sprintf("%s: %s", kind, fmt.Sprintf(format, args...))}
}
