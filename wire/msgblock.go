// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/blkdaemon/blkdb/chainhash"
)

// maxTxPerBlock bounds the vtx varint length prefix the same way
// maxTxInPerMessage/maxTxOutPerMessage do for a transaction's own lists.
const maxTxPerBlock = 1000000

// Block is a full block: a BlockHeader plus its transaction list. Per
// spec.md §3, a headers-only index may populate Vtx as an empty slice —
// the codec never requires it to be non-empty.
type Block struct {
	Header BlockHeader
	Vtx    []*MsgTx
}

// Deserialize decodes r into blk, the long-term-storage format used by the
// journal (identical, at this protocol version, to the wire encoding).
func (blk *Block) Deserialize(r io.Reader) error {
	// Decode into a fresh header so a failure leaves blk untouched and a
	// successful decode never keeps a previously cached hash.
	var header BlockHeader
	if err := readBlockHeader(r, &header); err != nil {
		return err
	}

	txCount, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if txCount > maxTxPerBlock {
		return newReadError("Block.Vtx", ErrTruncated)
	}

	txs := make([]MsgTx, txCount)
	vtx := make([]*MsgTx, txCount)
	for i := range vtx {
		tx := &txs[i]
		if err := tx.BtcDecode(r); err != nil {
			return err
		}
		vtx[i] = tx
	}
	blk.Header = header
	blk.Vtx = vtx
	return nil
}

// Serialize encodes blk into w.
func (blk *Block) Serialize(w io.Writer) error {
	if err := writeBlockHeader(w, &blk.Header); err != nil {
		return err
	}

	if err := WriteVarInt(w, uint64(len(blk.Vtx))); err != nil {
		return err
	}
	for _, tx := range blk.Vtx {
		if err := tx.BtcEncode(w); err != nil {
			return err
		}
	}
	return nil
}

// BlockHash returns the header's cached hash; a Block's identity is
// entirely its header's hash, per spec.md §3.
func (blk *Block) BlockHash() chainhash.Hash {
	return blk.Header.BlockHash()
}
