// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"
	"math"

	"github.com/blkdaemon/blkdb/chainhash"
)

// CoinbaseOutpointIndex is the outpoint index a coinbase input carries in
// place of a real previous-output index.
const CoinbaseOutpointIndex = math.MaxUint32

// maxTxInPerMessage/maxTxOutPerMessage bound the vin/vout varint length
// prefix so a corrupt or adversarial record cannot drive an unbounded
// allocation. They are generous relative to anything a legal block will
// ever carry.
const (
	maxTxInPerMessage  = 1000000
	maxTxOutPerMessage = 1000000

	// maxScriptSize bounds an individual scriptSig/scriptPubKey varstr.
	// Scripts are opaque to this package (script interpretation is out of
	// scope); the bound exists purely to keep a corrupt length prefix from
	// allocating gigabytes.
	maxScriptSize = 16 * 1024 * 1024
)

// OutPoint identifies a previous transaction output being spent. Per
// spec.md §3, n == 0xFFFFFFFF together with an all-zero hash denotes a
// coinbase input; the core never interprets this, only preserves it.
type OutPoint struct {
	Hash chainhash.Hash
	N    uint32
}

// IsCoinbase reports whether op denotes the coinbase pseudo-outpoint.
func (op *OutPoint) IsCoinbase() bool {
	return op.N == CoinbaseOutpointIndex && op.Hash.IsZero()
}

func readOutPoint(r io.Reader, op *OutPoint) error {
	var out OutPoint
	if err := readElements(r, &out.Hash, &out.N); err != nil {
		return err
	}
	*op = out
	return nil
}

func writeOutPoint(w io.Writer, op *OutPoint) error {
	return writeElements(w, op.Hash, op.N)
}

// TxIn defines a transaction input.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Sequence         uint32
}

func readTxIn(r io.Reader, ti *TxIn) error {
	var in TxIn
	if err := readOutPoint(r, &in.PreviousOutPoint); err != nil {
		return err
	}

	sigScript, err := ReadVarBytes(r, maxScriptSize, "TxIn.SignatureScript")
	if err != nil {
		return err
	}
	in.SignatureScript = sigScript

	if err := readElement(r, &in.Sequence); err != nil {
		return err
	}
	*ti = in
	return nil
}

func writeTxIn(w io.Writer, ti *TxIn) error {
	if err := writeOutPoint(w, &ti.PreviousOutPoint); err != nil {
		return err
	}
	if err := WriteVarBytes(w, ti.SignatureScript); err != nil {
		return err
	}
	return writeElement(w, ti.Sequence)
}

// TxOut defines a transaction output.
type TxOut struct {
	Value    int64
	PkScript []byte
}

func readTxOut(r io.Reader, to *TxOut) error {
	var value int64
	if err := readElement(r, &value); err != nil {
		return err
	}

	pkScript, err := ReadVarBytes(r, maxScriptSize, "TxOut.PkScript")
	if err != nil {
		return err
	}
	to.Value = value
	to.PkScript = pkScript
	return nil
}

func writeTxOut(w io.Writer, to *TxOut) error {
	if err := writeElement(w, to.Value); err != nil {
		return err
	}
	return WriteVarBytes(w, to.PkScript)
}

// MsgTx is a Bitcoin transaction. Per spec.md §3, the codec permits an
// empty TxIn list even though a well-formed transaction is conventionally
// non-empty.
type MsgTx struct {
	Version  uint32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

// BtcDecode decodes r into tx.
func (tx *MsgTx) BtcDecode(r io.Reader) error {
	var version uint32
	if err := readElement(r, &version); err != nil {
		return err
	}

	txInCount, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if txInCount > maxTxInPerMessage {
		return newReadError("MsgTx.TxIn", ErrTruncated)
	}
	txIns := make([]TxIn, txInCount)
	txInList := make([]*TxIn, txInCount)
	for i := range txInList {
		ti := &txIns[i]
		if err := readTxIn(r, ti); err != nil {
			return err
		}
		txInList[i] = ti
	}

	txOutCount, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if txOutCount > maxTxOutPerMessage {
		return newReadError("MsgTx.TxOut", ErrTruncated)
	}
	txOuts := make([]TxOut, txOutCount)
	txOutList := make([]*TxOut, txOutCount)
	for i := range txOutList {
		to := &txOuts[i]
		if err := readTxOut(r, to); err != nil {
			return err
		}
		txOutList[i] = to
	}

	var lockTime uint32
	if err := readElement(r, &lockTime); err != nil {
		return err
	}

	tx.Version = version
	tx.TxIn = txInList
	tx.TxOut = txOutList
	tx.LockTime = lockTime
	return nil
}

// BtcEncode encodes tx into w.
func (tx *MsgTx) BtcEncode(w io.Writer) error {
	if err := writeElement(w, tx.Version); err != nil {
		return err
	}

	if err := WriteVarInt(w, uint64(len(tx.TxIn))); err != nil {
		return err
	}
	for _, ti := range tx.TxIn {
		if err := writeTxIn(w, ti); err != nil {
			return err
		}
	}

	if err := WriteVarInt(w, uint64(len(tx.TxOut))); err != nil {
		return err
	}
	for _, to := range tx.TxOut {
		if err := writeTxOut(w, to); err != nil {
			return err
		}
	}

	return writeElement(w, tx.LockTime)
}

// TxHash returns the double-SHA256 hash of tx's serialized form, the same
// transaction-identity convention the core's block-header hashing uses.
// A block's merkle root is built from these per-transaction hashes; for a
// single-transaction block (such as a genesis block) the merkle root is
// simply this value.
func (tx *MsgTx) TxHash() chainhash.Hash {
	var buf bytes.Buffer
	// BtcEncode against a bytes.Buffer cannot fail.
	_ = tx.BtcEncode(&buf)
	return chainhash.DoubleHashH(buf.Bytes())
}
