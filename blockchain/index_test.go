// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"errors"
	"testing"

	"github.com/blkdaemon/blkdb/chainhash"
	"github.com/blkdaemon/blkdb/wire"
)

var testMagic = [4]byte{0xf9, 0xbe, 0xb4, 0xd9}

// header builds a BlockHeader with the given prev hash and a bits value
// that keeps CalcWork simple (0x1d00ffff, bitcoin mainnet's genesis
// difficulty) unless overridden.
func header(prev chainhash.Hash, bits uint32, nonce uint32) wire.BlockHeader {
	return wire.BlockHeader{
		Version:       1,
		HashPrevBlock: prev,
		Bits:          bits,
		Nonce:         nonce,
	}
}

func blockInfo(h wire.BlockHeader) *BlockInfo {
	blk := wire.Block{Header: h}
	return NewBlockInfo(blk)
}

const defaultBits = 0x1d00ffff

func TestEmptyPlusGenesis(t *testing.T) {
	genesisHdr := header(chainhash.Hash{}, defaultBits, 0)
	genesis := blockInfo(genesisHdr)

	idx := NewIndex(testMagic, genesis.Hash)

	delta, err := idx.Add(genesis)
	if err != nil {
		t.Fatalf("Add(genesis): %v", err)
	}
	if delta.Disconnected != 0 || delta.Connected != 1 {
		t.Fatalf("delta = %+v, want {0 1}", delta)
	}
	if idx.BestChain().Hash != genesis.Hash {
		t.Fatalf("best chain = %v, want genesis", idx.BestChain().Hash)
	}
	if idx.BestChain().Height != 0 {
		t.Fatalf("genesis height = %d, want 0", idx.BestChain().Height)
	}
}

func TestLinearExtension(t *testing.T) {
	genesis := blockInfo(header(chainhash.Hash{}, defaultBits, 0))
	idx := NewIndex(testMagic, genesis.Hash)
	if _, err := idx.Add(genesis); err != nil {
		t.Fatal(err)
	}

	b1 := blockInfo(header(genesis.Hash, defaultBits, 1))
	delta, err := idx.Add(b1)
	if err != nil {
		t.Fatalf("Add(b1): %v", err)
	}
	if delta.Disconnected != 0 || delta.Connected != 1 {
		t.Fatalf("delta = %+v, want {0 1}", delta)
	}
	if idx.BestChain().Hash != b1.Hash {
		t.Fatal("best chain did not advance to b1")
	}
	if idx.BestChain().Height != 1 {
		t.Fatalf("b1 height = %d, want 1", idx.BestChain().Height)
	}
}

func TestForkOfEqualWorkDoesNotSupplant(t *testing.T) {
	genesis := blockInfo(header(chainhash.Hash{}, defaultBits, 0))
	idx := NewIndex(testMagic, genesis.Hash)
	if _, err := idx.Add(genesis); err != nil {
		t.Fatal(err)
	}

	b1 := blockInfo(header(genesis.Hash, defaultBits, 1))
	if _, err := idx.Add(b1); err != nil {
		t.Fatal(err)
	}

	// Same bits as b1, so identical work; a different nonce gives it a
	// different hash so it is a genuine sibling fork, not a duplicate.
	b1Prime := blockInfo(header(genesis.Hash, defaultBits, 2))
	delta, err := idx.Add(b1Prime)
	if err != nil {
		t.Fatalf("Add(b1'): %v", err)
	}
	if delta != nil {
		t.Fatalf("equal-work sibling must not produce a reorg delta, got %+v", delta)
	}
	if idx.BestChain().Hash != b1.Hash {
		t.Fatalf("best chain must remain b1 under the strict tie-break, got %v", idx.BestChain().Hash)
	}
	if idx.Len() != 3 {
		t.Fatalf("index should contain 3 nodes, has %d", idx.Len())
	}
}

func TestForkOvertakes(t *testing.T) {
	genesis := blockInfo(header(chainhash.Hash{}, defaultBits, 0))
	idx := NewIndex(testMagic, genesis.Hash)
	if _, err := idx.Add(genesis); err != nil {
		t.Fatal(err)
	}

	b1 := blockInfo(header(genesis.Hash, defaultBits, 1))
	if _, err := idx.Add(b1); err != nil {
		t.Fatal(err)
	}

	b1Prime := blockInfo(header(genesis.Hash, defaultBits, 2))
	if _, err := idx.Add(b1Prime); err != nil {
		t.Fatal(err)
	}

	b2Prime := blockInfo(header(b1Prime.Hash, defaultBits, 3))
	delta, err := idx.Add(b2Prime)
	if err != nil {
		t.Fatalf("Add(b2'): %v", err)
	}
	if delta.Disconnected != 1 || delta.Connected != 2 {
		t.Fatalf("delta = %+v, want {1 2}", delta)
	}
	if idx.BestChain().Hash != b2Prime.Hash {
		t.Fatalf("best chain = %v, want b2'", idx.BestChain().Hash)
	}
}

func TestOrphanRejected(t *testing.T) {
	genesis := blockInfo(header(chainhash.Hash{}, defaultBits, 0))
	idx := NewIndex(testMagic, genesis.Hash)
	if _, err := idx.Add(genesis); err != nil {
		t.Fatal(err)
	}

	unknown := chainhash.Hash{0xff}
	orphan := blockInfo(header(unknown, defaultBits, 99))

	before := idx.Len()
	beforeBest := idx.BestChain().Hash

	_, err := idx.Add(orphan)
	if !errors.Is(err, ErrOrphan) {
		t.Fatalf("expected ErrOrphan, got %v", err)
	}
	if idx.Len() != before {
		t.Fatalf("index size changed on orphan rejection: %d -> %d", before, idx.Len())
	}
	if idx.BestChain().Hash != beforeBest {
		t.Fatal("best chain changed on orphan rejection")
	}
}

func TestBadGenesisRejected(t *testing.T) {
	realGenesis := blockInfo(header(chainhash.Hash{}, defaultBits, 0))
	idx := NewIndex(testMagic, realGenesis.Hash)

	wrong := blockInfo(header(chainhash.Hash{}, defaultBits, 77))
	_, err := idx.Add(wrong)
	if !errors.Is(err, ErrBadGenesis) {
		t.Fatalf("expected ErrBadGenesis, got %v", err)
	}
	if idx.Len() != 0 {
		t.Fatal("index must remain empty after a rejected genesis")
	}
}

func TestDuplicateInsertRejected(t *testing.T) {
	genesis := blockInfo(header(chainhash.Hash{}, defaultBits, 0))
	idx := NewIndex(testMagic, genesis.Hash)
	if _, err := idx.Add(genesis); err != nil {
		t.Fatal(err)
	}

	dup := blockInfo(header(chainhash.Hash{}, defaultBits, 0))
	_, err := idx.Add(dup)
	if !errors.Is(err, ErrAlreadyKnown) {
		t.Fatalf("expected ErrAlreadyKnown, got %v", err)
	}
	if idx.Len() != 1 {
		t.Fatalf("duplicate insert must not grow the index, size = %d", idx.Len())
	}
}

func TestHeightMonotonicity(t *testing.T) {
	genesis := blockInfo(header(chainhash.Hash{}, defaultBits, 0))
	idx := NewIndex(testMagic, genesis.Hash)
	if _, err := idx.Add(genesis); err != nil {
		t.Fatal(err)
	}

	prevHash := genesis.Hash
	for i := uint32(1); i <= 5; i++ {
		b := blockInfo(header(prevHash, defaultBits, i))
		if _, err := idx.Add(b); err != nil {
			t.Fatal(err)
		}
		prevHash = b.Hash
	}

	for _, n := range idx.blocks {
		if n.Parent == nil {
			continue
		}
		if n.Height != n.Parent.Height+1 {
			t.Errorf("node %v height %d != parent height %d + 1", n.Hash, n.Height, n.Parent.Height)
		}
	}
}

func TestBestChainMaximality(t *testing.T) {
	genesis := blockInfo(header(chainhash.Hash{}, defaultBits, 0))
	idx := NewIndex(testMagic, genesis.Hash)
	if _, err := idx.Add(genesis); err != nil {
		t.Fatal(err)
	}

	prevHash := genesis.Hash
	for i := uint32(1); i <= 5; i++ {
		b := blockInfo(header(prevHash, defaultBits, i))
		if _, err := idx.Add(b); err != nil {
			t.Fatal(err)
		}
		prevHash = b.Hash
	}

	best := idx.BestChain()
	for _, n := range idx.blocks {
		if n.Work.Cmp(&best.Work) > 0 {
			t.Fatalf("node %v has greater work than best chain", n.Hash)
		}
	}
}

func TestLocatorShape(t *testing.T) {
	genesis := blockInfo(header(chainhash.Hash{}, defaultBits, 0))
	idx := NewIndex(testMagic, genesis.Hash)
	if _, err := idx.Add(genesis); err != nil {
		t.Fatal(err)
	}

	const height = 12
	prevHash := genesis.Hash
	nodes := make([]*BlockInfo, 0, height+1)
	nodes = append(nodes, genesis)
	for i := uint32(1); i <= height; i++ {
		b := blockInfo(header(prevHash, defaultBits, i))
		if _, err := idx.Add(b); err != nil {
			t.Fatal(err)
		}
		nodes = append(nodes, b)
		prevHash = b.Hash
	}

	loc := idx.Locator(idx.BestChain())

	// Heights 12,11,...,3 (ten entries, step 1), then the stride doubles to
	// 2, landing the 11th entry on height 1. The stride then doubles to 4;
	// stepping back by 4 from height 1 has no node (height -3), so the walk
	// ends there. block0 is then appended unconditionally, duplicating no
	// prior entry.
	wantHeights := []int{12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 1}
	if len(loc) != len(wantHeights)+1 {
		t.Fatalf("locator has %d entries, want %d", len(loc), len(wantHeights)+1)
	}
	for i, h := range wantHeights {
		if loc[i] != nodes[h].Hash {
			t.Errorf("locator[%d] = %v, want height %d hash %v", i, loc[i], h, nodes[h].Hash)
		}
	}
	if loc[len(loc)-1] != idx.GenesisHash() {
		t.Fatalf("locator must end with block0")
	}
}

func TestLocatorFromGenesisAppearsTwice(t *testing.T) {
	genesis := blockInfo(header(chainhash.Hash{}, defaultBits, 0))
	idx := NewIndex(testMagic, genesis.Hash)
	if _, err := idx.Add(genesis); err != nil {
		t.Fatal(err)
	}

	loc := idx.Locator(genesis)
	if len(loc) != 2 {
		t.Fatalf("locator from genesis should have 2 entries (itself + block0), got %d", len(loc))
	}
	if loc[0] != genesis.Hash || loc[1] != genesis.Hash {
		t.Fatalf("expected genesis hash twice, got %v", loc)
	}
}
