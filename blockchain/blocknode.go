// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/blkdaemon/blkdb/chainhash"
	"github.com/blkdaemon/blkdb/wire"
	"github.com/decred/dcrd/math/uint256"
)

// BlockInfo is a single node in the index's header tree: spec.md §3's
// per-header index entry. It is created once by the journal replayer or
// an external ingester, inserted into an Index exactly once, and must
// never be mutated after that — callers holding a returned *BlockInfo
// (e.g. the best-chain tip) may treat it as a read-only borrow valid for
// the lifetime of the Index.
//
// The teacher's own blockchain package models this identical concept as
// blockNode with a newBlockNode constructor and an index.AddNode
// accessor (blockchain/blockindex_test.go); BlockInfo is the same shape
// under spec.md's public name.
type BlockInfo struct {
	// Hash is this node's self-hash and the map key this node is stored
	// under. NewBlockInfo sets it to sha256d(Header), and journal.Read
	// checks a replayed record's stored hash against the recomputed one;
	// Index.connect does not recompute it.
	Hash chainhash.Hash

	// Header is the full decoded block. For a headers-only index, Vtx
	// may be empty.
	Header wire.Block

	// Work is the cumulative proof-of-work from genesis through this
	// node, inclusive.
	Work uint256.Uint256

	// Height is this node's distance from genesis; genesis is 0.
	// Unconnected (not-yet-inserted) nodes carry -1.
	Height int32

	// Parent is this node's back-pointer. It is nil iff this node is
	// genesis. Unlike the block map, which owns every node, Parent is a
	// non-owning reference into that same map — there is exactly one
	// owner (Index.blocks) and the tree is acyclic by construction, so no
	// reference-counting or weak-pointer machinery is needed in Go.
	Parent *BlockInfo

	// NFile/NPos optionally locate this node's raw block bytes in an
	// external flat file, mirroring picocoin's n_file/n_pos. The index
	// itself never interprets them; -1 means "unset".
	NFile int32
	NPos  int64
}

// newBlockInfo returns a freshly constructed, not-yet-connected node:
// height/file/pos are all -1 and work is zero, matching spec.md §4.4 and
// the teacher's bi_new-equivalent defaults (ported from
// original_source/lib/blkdb.c's bi_new).
func newBlockInfo(header wire.Block) *BlockInfo {
	return &BlockInfo{
		Header: header,
		Height: -1,
		NFile:  -1,
		NPos:   -1,
	}
}

// ancestorAt walks Parent links back from n until it reaches the node at
// the given height, or nil if n's chain is shorter than that height. It
// is the workhorse behind locator generation and is also handy for tests
// that want to assert a particular ancestor.
func (n *BlockInfo) ancestorAt(height int32) *BlockInfo {
	if n == nil || height < 0 || height > n.Height {
		return nil
	}
	node := n
	for node != nil && node.Height > height {
		node = node.Parent
	}
	if node != nil && node.Height != height {
		return nil
	}
	return node
}
