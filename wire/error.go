// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"errors"
	"fmt"
)

// ErrTruncated is returned by any decoder in this package when the input
// has fewer bytes remaining than the value being decoded requires.
// Decoders never partially populate their out-parameter before returning
// it: either the whole field decodes or none of it is written.
var ErrTruncated = errors.New("wire: truncated input")

// newReadError wraps an underlying I/O error (including io.EOF/
// io.ErrUnexpectedEOF from a short io.ReadFull) as ErrTruncated, tagged
// with which field was being decoded.
func newReadError(field string, cause error) error {
	return fmt.Errorf("wire: %s: %w: %v", field, ErrTruncated, cause)
}
