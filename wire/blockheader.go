// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"

	"github.com/blkdaemon/blkdb/chainhash"
)

// MaxBlockHeaderPayload is the number of bytes in a serialized block
// header: Version 4 + HashPrevBlock 32 + HashMerkleRoot 32 + Time 4 +
// Bits 4 + Nonce 4 = 80.
const MaxBlockHeaderPayload = 4 + (chainhash.HashSize * 2) + 4 + 4 + 4

// BlockHeader holds the six fields a block's canonical hash is computed
// over. Per spec.md §4.2, the hash is sha256d of exactly these 80 bytes,
// lazily computed and cached; any field setter that mutates the header
// must invalidate the cache.
type BlockHeader struct {
	Version        int32
	HashPrevBlock  chainhash.Hash
	HashMerkleRoot chainhash.Hash
	Time           uint32
	Bits           uint32
	Nonce          uint32

	// sha256 caches BlockHash's result. It is the zero Hash until first
	// computed, and is cleared by any mutating setter below.
	sha256     chainhash.Hash
	sha256Done bool
}

// SetVersion sets Version and invalidates the cached hash.
func (h *BlockHeader) SetVersion(v int32) {
	h.Version = v
	h.sha256Done = false
}

// SetHashPrevBlock sets HashPrevBlock and invalidates the cached hash.
func (h *BlockHeader) SetHashPrevBlock(prev chainhash.Hash) {
	h.HashPrevBlock = prev
	h.sha256Done = false
}

// SetBits sets Bits and invalidates the cached hash.
func (h *BlockHeader) SetBits(bits uint32) {
	h.Bits = bits
	h.sha256Done = false
}

// SetNonce sets Nonce and invalidates the cached hash.
func (h *BlockHeader) SetNonce(nonce uint32) {
	h.Nonce = nonce
	h.sha256Done = false
}

// BlockHash returns the double-sha256 hash of the serialized header,
// computing and caching it on first call. The cache is correct as long as
// callers mutate fields only through the Set* methods above.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	if h.sha256Done {
		return h.sha256
	}

	buf := bytes.NewBuffer(make([]byte, 0, MaxBlockHeaderPayload))
	// writeBlockHeader cannot fail against a bytes.Buffer.
	_ = writeBlockHeader(buf, h)
	h.sha256 = chainhash.DoubleHashH(buf.Bytes())
	h.sha256Done = true
	return h.sha256
}

func readBlockHeader(r io.Reader, h *BlockHeader) error {
	return readElements(r, &h.Version, &h.HashPrevBlock, &h.HashMerkleRoot,
		&h.Time, &h.Bits, &h.Nonce)
}

func writeBlockHeader(w io.Writer, h *BlockHeader) error {
	return writeElements(w, h.Version, h.HashPrevBlock, h.HashMerkleRoot,
		h.Time, h.Bits, h.Nonce)
}
