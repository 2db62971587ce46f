// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockchain implements the in-memory directed tree of block
// headers (C4/C5 of spec.md): BlockInfo nodes linked by hashPrevBlock
// back-pointers, the best-chain pointer chosen by cumulative
// proof-of-work, and the reorg-delta computation performed each time a
// new header is connected.
package blockchain

import (
	"github.com/blkdaemon/blkdb/blockchain/standalone"
	"github.com/blkdaemon/blkdb/chainhash"
	"github.com/blkdaemon/blkdb/wire"
	"github.com/decred/slog"
)

// log is the package-level logger, disabled by default. Callers wire a
// real backend with UseLogger, mirroring every package in the dcrd family
// that logs (blockchain.UseLogger, wire.UseLogger, ...).
var log = slog.Disabled

// UseLogger sets the logger used by this package. It must be called
// before any Index method if log output is wanted; the zero value is a
// safe, silent no-op logger.
func UseLogger(logger slog.Logger) {
	log = logger
}

// Index is the in-memory directed tree of observed headers plus the
// best-chain pointer over it: spec.md §3's "Index state". It is single-
// threaded per instance (spec.md §5) — callers needing concurrent access
// must serialize their own calls.
type Index struct {
	// block0 is the immutable genesis hash supplied at construction.
	block0 chainhash.Hash

	// netMagic tags journal records written for this index (spec.md §4.6
	// / §6). The Index itself never frames a record; Add only APPENDS
	// one when a Journal is attached (see AttachJournal).
	netMagic [4]byte

	// blocks owns every node ever successfully connected, keyed by a
	// value copy of its hash (spec.md §9 open question: never key by a
	// pointer into the node's own field).
	blocks map[chainhash.Hash]*BlockInfo

	// bestChain is the tip of the chain of maximum cumulative work; nil
	// only in the empty-index state.
	bestChain *BlockInfo

	// appender is set by AttachJournal to give Add a place
	// to write a durability record before mutating in-memory state. It is
	// an interface rather than a *journal.Journal import to avoid a
	// blockchain<->journal import cycle (journal imports blockchain for
	// BlockInfo/Index already).
	appender RecordAppender
}

// RecordAppender is the durability collaborator Index.Add writes to
// before mutating in-memory state (spec.md §4.5 step 1). journal.Journal
// implements it.
type RecordAppender interface {
	AppendRecord(hash chainhash.Hash, block wire.Block) error
}

// NewIndex creates an empty index for the network identified by magic
// with genesis hash genesisHash. No journal is attached; use
// Index.AttachJournal for that. This is spec.md §4.5's init.
func NewIndex(magic [4]byte, genesisHash chainhash.Hash) *Index {
	return &Index{
		block0:   genesisHash,
		netMagic: magic,
		blocks:   make(map[chainhash.Hash]*BlockInfo),
	}
}

// AttachJournal wires a durability collaborator into the index so
// subsequent Add calls persist a record before connecting. It is separate
// from NewIndex so a fresh in-memory index (e.g. one being populated by
// journal.Read during replay) can be built without an appender, then have
// one attached afterward for live use.
func (idx *Index) AttachJournal(a RecordAppender) {
	idx.appender = a
}

// GenesisHash returns the immutable genesis hash this index was
// constructed with.
func (idx *Index) GenesisHash() chainhash.Hash {
	return idx.block0
}

// NetMagic returns the network magic this index was constructed with.
func (idx *Index) NetMagic() [4]byte {
	return idx.netMagic
}

// Len returns the number of nodes currently in the index.
func (idx *Index) Len() int {
	return len(idx.blocks)
}

// BestChain returns the current best-chain tip, or nil if the index is
// empty.
func (idx *Index) BestChain() *BlockInfo {
	return idx.bestChain
}

// Lookup returns the node for hash, or nil if it is not present.
func (idx *Index) Lookup(hash chainhash.Hash) *BlockInfo {
	return idx.blocks[hash]
}

// ReorgDelta is the result of connecting a new node that supplants the
// previous best-chain tip: the number of blocks disconnected walking
// backward from the old tip to the lowest common ancestor, and the number
// connected walking forward from that ancestor to the new tip. Per
// spec.md §4.5, the engine does not materialize either block-hash list —
// OldBest/NewBest give callers enough to walk Parent links themselves if
// they want the full lists.
type ReorgDelta struct {
	Disconnected int32
	Connected    int32
	OldBest      *BlockInfo
	NewBest      *BlockInfo
}

// Add is the hot path (spec.md §4.5): if a journal is attached, it
// appends a durability record first, then calls connect. A journal write
// failure leaves in-memory state untouched and returns the write error
// directly — no RuleError wrapping, since it isn't a rule violation, it's
// an I/O failure. The journal record (if any) is retained even if
// connect subsequently fails; a later journal.Read rejects that record the
// same way and stops replaying at it.
func (idx *Index) Add(node *BlockInfo) (*ReorgDelta, error) {
	if idx.appender != nil {
		if err := idx.appender.AppendRecord(node.Hash, node.Header); err != nil {
			return nil, err
		}
	}

	return idx.connect(node)
}

// connect implements spec.md §4.5's connect operation.
func (idx *Index) connect(node *BlockInfo) (*ReorgDelta, error) {
	if _, exists := idx.blocks[node.Hash]; exists {
		return nil, ruleError(ErrAlreadyKnown, "block %s already present in index", node.Hash)
	}

	w := standalone.CalcWork(node.Header.Header.Bits)

	switch len(idx.blocks) {
	case 0:
		// Empty-index case (spec.md §4.5). Handled as its own explicit
		// branch rather than the source's implicit (and bug-prone)
		// dereference of a nil best-chain pointer in the general-case
		// branch — see spec.md §9's open question about this.
		if node.Hash != idx.block0 {
			return nil, ruleError(ErrBadGenesis, "block %s does not match configured genesis %s",
				node.Hash, idx.block0)
		}
		node.Height = 0
		node.Work = w
		node.Parent = nil

	default:
		prev, ok := idx.blocks[node.Header.Header.HashPrevBlock]
		if !ok {
			return nil, ruleError(ErrOrphan, "parent %s of block %s not found in index",
				node.Header.Header.HashPrevBlock, node.Hash)
		}
		node.Parent = prev
		node.Height = prev.Height + 1

		work := prev.Work
		work.Add(&w)
		if work.Cmp(&prev.Work) < 0 {
			// Unsigned addition that comes back smaller than either
			// operand wrapped around the 256-bit accumulator.
			return nil, ruleError(ErrWorkOverflow, "cumulative work at block %s overflowed the 256-bit accumulator",
				node.Hash)
		}
		node.Work = work
	}

	idx.blocks[node.Hash] = node

	var delta *ReorgDelta
	if idx.bestChain == nil || node.Work.Cmp(&idx.bestChain.Work) > 0 {
		delta = idx.reorgDelta(idx.bestChain, node)
		idx.bestChain = node

		if delta.Disconnected > 0 {
			log.Infof("REORG: disconnecting %d block(s), connecting %d block(s), new best %s at height %d",
				delta.Disconnected, delta.Connected, node.Hash, node.Height)
		}
	}

	return delta, nil
}

// reorgDelta computes the (disconnected, connected) pair spec.md §4.5
// describes: walk the taller side back to equal height, then walk both
// sides back together until they meet, without ever materializing either
// path. Grounded directly on original_source/lib/blkdb.c's blkdb_connect
// reorg-analysis block, which performs exactly these three phases.
func (idx *Index) reorgDelta(oldBest, newBest *BlockInfo) *ReorgDelta {
	delta := &ReorgDelta{OldBest: oldBest, NewBest: newBest}

	newNode := newBest
	oldNode := oldBest

	if oldNode == nil {
		// Empty-to-first transition: every ancestor of newBest up to and
		// including newBest itself is "connected". This is the explicit
		// branch spec.md §4.5 step 1 calls for, replacing the source's
		// accidental nil-deref hazard in the general path.
		for newNode != nil {
			newNode = newNode.Parent
			delta.Connected++
		}
		return delta
	}

	// Phase 1: likely case, new tip has greater height than old tip.
	for newNode != nil && newNode.Height > oldNode.Height {
		newNode = newNode.Parent
		delta.Connected++
	}

	// Phase 2: unlikely case, old tip has greater height than new tip.
	for oldNode != nil && oldNode.Height > newNode.Height {
		oldNode = oldNode.Parent
		delta.Disconnected++
	}

	// Phase 3: same height, still on different branches — walk both back
	// together until they meet at the lowest common ancestor.
	for oldNode != nil && newNode != nil && oldNode != newNode {
		oldNode = oldNode.Parent
		delta.Disconnected++

		newNode = newNode.Parent
		delta.Connected++
	}

	return delta
}

// Locator produces a P2P block locator starting at fromTip: the first ten
// entries step back one block at a time, after which the stride doubles on
// every entry (heights H..H-9, then H-11, H-15, H-23, ...), per spec.md §4.5. block0 is appended unconditionally, even if that
// means it appears twice (fromTip == genesis).
func (idx *Index) Locator(fromTip *BlockInfo) []chainhash.Hash {
	var hashes []chainhash.Hash

	step := int32(1)
	node := fromTip
	for node != nil {
		hashes = append(hashes, node.Hash)

		if len(hashes) >= 10 {
			step *= 2
		}
		node = node.ancestorAt(node.Height - step)
	}

	hashes = append(hashes, idx.block0)
	return hashes
}

// NewBlockInfo constructs a not-yet-connected node from a decoded block,
// computing and stamping its self-hash. It is the normal way an external
// ingester or the journal replayer builds a node to pass to Add.
func NewBlockInfo(block wire.Block) *BlockInfo {
	bi := newBlockInfo(block)
	bi.Hash = block.BlockHash()
	return bi
}
