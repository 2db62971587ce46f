// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"crypto/sha256"
	"io"
)

// HashB calculates the hash of the given byte slice and returns it as a
// byte slice.
func HashB(b []byte) []byte {
	hash := sha256.Sum256(b)
	return hash[:]
}

// HashH calculates the hash of the given byte slice and returns it as a
// Hash.
func HashH(b []byte) Hash {
	return Hash(sha256.Sum256(b))
}

// DoubleHashB calculates sha256(sha256(b)) and returns the resulting bytes
// as a byte slice.
//
// This is the "sha256d" function referenced throughout the index: the
// canonical block-hash function. The core treats its input as a pure
// collaborator; this is its sole implementation.
func DoubleHashB(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}

// DoubleHashH calculates sha256(sha256(b)) and returns the resulting bytes
// as a Hash.
func DoubleHashH(b []byte) Hash {
	first := sha256.Sum256(b)
	return Hash(sha256.Sum256(first[:]))
}

// DoubleHashRaw calculates sha256(sha256(w)) for a writer function that
// streams the preimage directly into the hash state, avoiding an
// intermediate allocation for the serialized bytes. Used by callers that
// already have a streaming Serialize method, such as block headers.
func DoubleHashRaw(f func(w io.Writer) error) Hash {
	first := sha256.New()
	// sha256.digest.Write never returns an error.
	_ = f(first)
	second := sha256.Sum256(first.Sum(nil))
	return Hash(second)
}
