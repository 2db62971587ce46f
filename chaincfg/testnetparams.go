// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

// testNetGenesisBlock is testnet's genesis block: same shape as mainnet's
// but tagged with a different magic and timestamp, with the same genesis
// difficulty (0x1d00ffff), the
// same relationship the teacher's own testnetparams.go bears to
// mainnetparams.go.
var testNetGenesisBlock = buildGenesisBlock(
	0x1d00ffff,
	0x4d4da897,
	"04ffff001d0104",
)

// TestNetParams are the parameters for the test network (version 3).
var TestNetParams = Params{
	Name:         "testnet",
	Net:          [4]byte{0x0b, 0x11, 0x09, 0x07},
	DefaultPort:  "18333",
	GenesisBlock: testNetGenesisBlock,
	GenesisHash:  testNetGenesisBlock.BlockHash(),
	PowLimitBits: 0x1d00ffff,
}
