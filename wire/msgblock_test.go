// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"

	"github.com/blkdaemon/blkdb/chainhash"
	"github.com/davecgh/go-spew/spew"
)

func sampleBlock() *Block {
	return &Block{
		Header: BlockHeader{
			Version:        1,
			HashPrevBlock:  chainhash.Hash{},
			HashMerkleRoot: chainhash.Hash{0xaa},
			Time:           1231006505,
			Bits:           0x1d00ffff,
			Nonce:          2083236893,
		},
		Vtx: []*MsgTx{sampleTx()},
	}
}

// TestBlockSerializeRoundTrip mirrors the teacher's byte-exact genesis
// comparison test style (chaincfg/genesis_test.go), swapping
// reflect.DeepEqual's caller-facing message for spew.Sdump on mismatch.
func TestBlockSerializeRoundTrip(t *testing.T) {
	want := sampleBlock()

	var buf bytes.Buffer
	if err := want.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	got := new(Block)
	if err := got.Deserialize(&buf); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	if got.BlockHash() != want.BlockHash() {
		t.Fatalf("block hash mismatch - got %v, want %v",
			spew.Sdump(got.BlockHash()), spew.Sdump(want.BlockHash()))
	}
	if len(got.Vtx) != len(want.Vtx) {
		t.Fatalf("vtx length mismatch - got %v, want %v",
			spew.Sdump(got.Vtx), spew.Sdump(want.Vtx))
	}
}

func TestBlockHashIs80ByteHeaderOnly(t *testing.T) {
	blk := sampleBlock()

	var headerOnly bytes.Buffer
	_ = writeBlockHeader(&headerOnly, &blk.Header)
	if headerOnly.Len() != MaxBlockHeaderPayload {
		t.Fatalf("serialized header is %d bytes, want %d", headerOnly.Len(), MaxBlockHeaderPayload)
	}

	want := chainhash.DoubleHashH(headerOnly.Bytes())
	if blk.BlockHash() != want {
		t.Fatalf("BlockHash does not match sha256d of the 80-byte header")
	}
}

func TestBlockHeaderCacheInvalidatedBySetters(t *testing.T) {
	h := BlockHeader{Bits: 0x1d00ffff}
	first := h.BlockHash()

	h.SetBits(0x1d00fffe)
	second := h.BlockHash()

	if first == second {
		t.Fatal("cached hash was not invalidated by SetBits")
	}
}
