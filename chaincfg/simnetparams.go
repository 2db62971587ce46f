// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

// simNetGenesisBlock is simnet's genesis block. Simnet's defining trait,
// per the teacher's own simnetparams.go, is a trivially low difficulty so
// a local test harness can extend the chain without doing real work; this
// package has no PoW-validation component to exercise that against, but
// the easier bits value is kept for fidelity since a future component
// could.
var simNetGenesisBlock = buildGenesisBlock(
	0x207fffff,
	0x4d4da902,
	"04ffff7f2002000000",
)

// SimNetParams are the parameters for the simulation test network.
var SimNetParams = Params{
	Name:         "simnet",
	Net:          [4]byte{0x12, 0x14, 0x1c, 0x16},
	DefaultPort:  "18555",
	GenesisBlock: simNetGenesisBlock,
	GenesisHash:  simNetGenesisBlock.BlockHash(),
	PowLimitBits: 0x207fffff,
}
