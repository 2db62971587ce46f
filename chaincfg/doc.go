// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines the small set of per-network parameters the
// index needs: a network's magic, its genesis block, and its genesis
// difficulty. Everything a full node additionally needs — difficulty
// retargeting windows, stake voting, subsidy schedules, address-encoding
// magics — is out of scope per spec.md's Non-goals and is not modeled
// here.
//
// A (typically global) var in a main package is assigned the address of
// one of the standard Params vars for use as the application's active
// network, the same pattern the teacher's chaincfg package uses:
//
//	var chainParams = &chaincfg.MainNetParams
package chaincfg
