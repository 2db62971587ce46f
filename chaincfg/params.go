// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"github.com/blkdaemon/blkdb/chainhash"
	"github.com/blkdaemon/blkdb/wire"
)

// Params identifies the handful of values an Index needs to validate and
// bootstrap a particular network: its wire-level magic, its genesis
// block, and the genesis difficulty from which work accumulation starts.
// It is a deliberately thin subset of the teacher's own (much larger)
// Params struct, trimmed to spec.md's scope (plain PoW accumulation, no
// stake voting, no address encoding, no subsidy schedule).
type Params struct {
	// Name is the network's human-readable identifier, e.g. "mainnet".
	Name string

	// Net is the four-byte magic every message on this network is
	// prefixed with (spec.md §4.3).
	Net [4]byte

	// DefaultPort is the TCP port nodes on this network listen on by
	// default. The index itself never dials anything — spec.md's P2P
	// transport Non-goal — but a cmd/ binary wiring this package into a
	// future network layer will want it.
	DefaultPort string

	// GenesisBlock is the network's first block.
	GenesisBlock wire.Block

	// GenesisHash is sha256d(GenesisBlock.Header), pre-computed here the
	// same way the teacher's params do, so constructing an Index never
	// needs to re-hash the genesis header.
	GenesisHash chainhash.Hash

	// PowLimitBits is the compact-form nBits of the easiest allowed
	// target on this network; new networks' genesis blocks set their
	// Bits field to this value.
	PowLimitBits uint32
}
