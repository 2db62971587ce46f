// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import "encoding/hex"

// decodeHexString decodes a hex literal used to build one of this
// package's fixed genesis blocks.
func decodeHexString(s string) ([]byte, error) {
	return hex.DecodeString(s)
}
