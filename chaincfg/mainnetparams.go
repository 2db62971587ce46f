// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"github.com/blkdaemon/blkdb/wire"
)

// mainNetGenesisBlock defines the genesis block of the chain used as the
// public ledger for the main network. As with the teacher's own genesis
// blocks, it is valid by definition — none of its fields are validated
// for correctness, and its proof of work is never checked.
var mainNetGenesisBlock = buildGenesisBlock(
	0x1d00ffff,
	0x495fab29, // Sat Jan 3 2009, the traditional epoch this family of codebases uses for a mainnet-like genesis time.
	"04ffff001d0104",
)

// MainNetParams are the parameters for the main network.
var MainNetParams = Params{
	Name:         "mainnet",
	Net:          [4]byte{0xf9, 0xbe, 0xb4, 0xd9},
	DefaultPort:  "8333",
	GenesisBlock: mainNetGenesisBlock,
	GenesisHash:  mainNetGenesisBlock.BlockHash(),
	PowLimitBits: 0x1d00ffff,
}

// buildGenesisBlock assembles a single-coinbase-transaction genesis block
// from its difficulty bits, timestamp, and a coinbase signature script
// given as a hex string, mirroring the shape of the teacher's own
// mainnetparams.go genesis construction (null previous outpoint, single
// opaque output script, merkle root equal to the lone transaction's
// hash).
func buildGenesisBlock(bits uint32, timestamp uint32, coinbaseScriptHex string) wire.Block {
	coinbase := &wire.MsgTx{
		Version: 1,
		TxIn: []*wire.TxIn{{
			PreviousOutPoint: wire.OutPoint{
				Hash: [32]byte{},
				N:    wire.CoinbaseOutpointIndex,
			},
			SignatureScript: hexDecode(coinbaseScriptHex),
			Sequence:        0xffffffff,
		}},
		TxOut: []*wire.TxOut{{
			Value:    0,
			PkScript: hexDecode(genesisOutputScriptHex),
		}},
		LockTime: 0,
	}

	block := wire.Block{
		Header: wire.BlockHeader{
			Version: 1,
			Time:    timestamp,
			Bits:    bits,
			Nonce:   0,
		},
		Vtx: []*wire.MsgTx{coinbase},
	}
	// A one-transaction block's merkle root is that transaction's own
	// hash (no pairing/duplication needed).
	block.Header.HashMerkleRoot = coinbase.TxHash()
	return block
}

// genesisOutputScriptHex is an arbitrary, opaque output script — spec.md's
// script-interpretation Non-goal means nothing ever inspects its
// contents, so it is exactly as meaningful as the teacher's own
// genesis PkScript: a fixed blob that exists only so the genesis
// transaction serializes to a stable, reproducible hash.
const genesisOutputScriptHex = "4104678afdb0fe5548271967f1a67130b7105cd6a828e03909a67962e0ea1f61deb649f6bc3f4cef38c4f35504e51ec112de5c384df7ba0b8d578a4c702b6bf11d5fac"

// hexDecode decodes s or panics; used only for compile-time-constant
// literals in this file, mirroring the teacher's own hexDecode helper in
// mainnetparams.go.
func hexDecode(s string) []byte {
	b, err := decodeHexString(s)
	if err != nil {
		panic(err)
	}
	return b
}
