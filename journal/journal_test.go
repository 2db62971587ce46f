// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package journal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blkdaemon/blkdb/blockchain"
	"github.com/blkdaemon/blkdb/chainhash"
	"github.com/blkdaemon/blkdb/wire"
)

var testMagic = [4]byte{0xf9, 0xbe, 0xb4, 0xd9}

const defaultBits = 0x1d00ffff

func header(prev chainhash.Hash, nonce uint32) wire.BlockHeader {
	return wire.BlockHeader{
		Version:       1,
		HashPrevBlock: prev,
		Bits:          defaultBits,
		Nonce:         nonce,
	}
}

func block(prev chainhash.Hash, nonce uint32) wire.Block {
	return wire.Block{Header: header(prev, nonce)}
}

// buildChain appends n blocks on top of genesis (itself included) to idx,
// journaling every one of them, and returns the blocks in order.
func buildChain(t *testing.T, idx *blockchain.Index, j *Journal, genesis wire.Block, n int) []wire.Block {
	t.Helper()
	idx.AttachJournal(j)

	genesisNode := blockchain.NewBlockInfo(genesis)
	if _, err := idx.Add(genesisNode); err != nil {
		t.Fatalf("add genesis: %v", err)
	}

	blocks := []wire.Block{genesis}
	prev := genesisNode.Hash
	for i := 0; i < n; i++ {
		b := block(prev, uint32(i+1))
		node := blockchain.NewBlockInfo(b)
		if _, err := idx.Add(node); err != nil {
			t.Fatalf("add block %d: %v", i, err)
		}
		blocks = append(blocks, b)
		prev = node.Hash
	}
	return blocks
}

func TestAppendAndReplayRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.dat")

	genesis := block(chainhash.Hash{}, 0)
	genesisHash := blockchain.NewBlockInfo(genesis).Hash

	idx := blockchain.NewIndex(testMagic, genesisHash)
	j, err := Open(path, testMagic, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	wantBlocks := buildChain(t, idx, j, genesis, 10)
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	replayIdx := blockchain.NewIndex(testMagic, genesisHash)
	j2, err := Read(path, testMagic, false, replayIdx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	defer j2.Close()

	if replayIdx.Len() != len(wantBlocks) {
		t.Fatalf("replayed index has %d nodes, want %d", replayIdx.Len(), len(wantBlocks))
	}
	wantTip := blockchain.NewBlockInfo(wantBlocks[len(wantBlocks)-1]).Hash
	if replayIdx.BestChain().Hash != wantTip {
		t.Fatalf("replayed best chain = %v, want %v", replayIdx.BestChain().Hash, wantTip)
	}
	if replayIdx.BestChain().Height != int32(len(wantBlocks)-1) {
		t.Fatalf("replayed tip height = %d, want %d", replayIdx.BestChain().Height, len(wantBlocks)-1)
	}
}

func TestReplayIdempotentAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.dat")

	genesis := block(chainhash.Hash{}, 0)
	genesisHash := blockchain.NewBlockInfo(genesis).Hash

	idx := blockchain.NewIndex(testMagic, genesisHash)
	j, err := Open(path, testMagic, false)
	if err != nil {
		t.Fatal(err)
	}
	buildChain(t, idx, j, genesis, 3)
	j.Close()

	// Replay twice from the same file; both should produce an index with
	// identical shape (spec.md §8's "journal replay idempotence").
	idxA := blockchain.NewIndex(testMagic, genesisHash)
	jA, err := Read(path, testMagic, false, idxA)
	if err != nil {
		t.Fatal(err)
	}
	jA.Close()

	idxB := blockchain.NewIndex(testMagic, genesisHash)
	jB, err := Read(path, testMagic, false, idxB)
	if err != nil {
		t.Fatal(err)
	}
	jB.Close()

	if idxA.Len() != idxB.Len() {
		t.Fatalf("replay A has %d nodes, replay B has %d", idxA.Len(), idxB.Len())
	}
	if idxA.BestChain().Hash != idxB.BestChain().Hash {
		t.Fatal("two replays of the same journal produced different best chains")
	}
}

func TestReplayDetectsTornTail(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.dat")

	genesis := block(chainhash.Hash{}, 0)
	genesisHash := blockchain.NewBlockInfo(genesis).Hash

	idx := blockchain.NewIndex(testMagic, genesisHash)
	j, err := Open(path, testMagic, false)
	if err != nil {
		t.Fatal(err)
	}
	buildChain(t, idx, j, genesis, 2)
	j.Close()

	// Truncate the file mid-record to simulate a crash during the last
	// write (spec.md §7's "truncated tail" scenario).
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Truncate(path, info.Size()-3); err != nil {
		t.Fatal(err)
	}

	replayIdx := blockchain.NewIndex(testMagic, genesisHash)
	j2, err := Read(path, testMagic, false, replayIdx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	defer j2.Close()

	// The first two records (genesis + block 1) replayed cleanly; only the
	// torn final record is dropped.
	if replayIdx.Len() != 2 {
		t.Fatalf("replayed index has %d nodes after torn tail, want 2", replayIdx.Len())
	}

	after, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if after.Size() != j2.LastCleanOffset() {
		t.Fatalf("file was not truncated to the last clean offset: size=%d, lastClean=%d",
			after.Size(), j2.LastCleanOffset())
	}
}

func TestAppendRecordRejectsHashMismatchOnReplay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.dat")

	genesis := block(chainhash.Hash{}, 0)
	genesisHash := blockchain.NewBlockInfo(genesis).Hash

	j, err := Open(path, testMagic, false)
	if err != nil {
		t.Fatal(err)
	}

	// Write a record whose stored hash doesn't match the header's real
	// hash, simulating bit-rot or a deliberately corrupted file.
	badHash := chainhash.Hash{0xde, 0xad, 0xbe, 0xef}
	if err := j.AppendRecord(badHash, genesis); err != nil {
		t.Fatal(err)
	}
	j.Close()

	idx := blockchain.NewIndex(testMagic, genesisHash)
	_, err = Read(path, testMagic, false, idx)
	if err == nil {
		t.Fatal("expected a hash-mismatch error, got nil")
	}
}

func TestSyncOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.dat")

	genesis := block(chainhash.Hash{}, 0)
	genesisHash := blockchain.NewBlockInfo(genesis).Hash

	idx := blockchain.NewIndex(testMagic, genesisHash)
	j, err := Open(path, testMagic, true)
	if err != nil {
		t.Fatal(err)
	}
	defer j.Close()

	buildChain(t, idx, j, genesis, 1)
	if idx.Len() != 2 {
		t.Fatalf("index has %d nodes, want 2", idx.Len())
	}
}
