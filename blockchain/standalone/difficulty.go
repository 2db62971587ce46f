// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package standalone implements the compact "nBits" difficulty encoding
// used throughout the index: decompressing it to a target or to the
// per-block work it implies, and compressing a target back down. It has
// no dependency on the index itself, matching the teacher's own
// standalone package (blockchain/standalone), which the rest of
// blockchain imports rather than the other way around.
package standalone

import (
	"math/big"

	"github.com/blkdaemon/blkdb/chainhash"
	"github.com/decred/dcrd/math/uint256"
)

var (
	// bigOne is 1 represented as a big.Int. Defined once to avoid the
	// allocation overhead of creating it on every CalcWork call.
	bigOne = big.NewInt(1)

	// oneLsh256 is 1 shifted left 256 bits, i.e. 2^256. Used to calculate
	// the signed 256-bit work value per a given target.
	oneLsh256 = new(big.Int).Lsh(bigOne, 256)
)

// CompactToBig converts a compact representation of a target difficulty,
// as found in a block header's nBits field, to a big.Int target. The
// representation is a base-256 floating point number analogous to IEEE
// 754: the high byte is a base-256 exponent, and the remaining three
// bytes are the mantissa, with bit 0x00800000 of the mantissa reserved as
// a sign bit.
//
// This is the only place in the index that needs to care about that
// encoding; everything downstream operates on the decompressed target or
// the work it implies.
func CompactToBig(compact uint32) *big.Int {
	mantissa := compact & 0x007fffff
	isNegative := compact&0x00800000 != 0
	exponent := uint(compact >> 24)

	var bn *big.Int
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		bn = big.NewInt(int64(mantissa))
	} else {
		bn = big.NewInt(int64(mantissa))
		bn.Lsh(bn, 8*(exponent-3))
	}

	if isNegative {
		bn = bn.Neg(bn)
	}
	return bn
}

// BigToCompact converts a whole number target difficulty to a compact
// representation using the same encoding CompactToBig decodes. This is
// the inverse operation; the core never calls it on the hot path (nBits
// legality is explicitly out of scope) but it is the natural companion
// function and is exercised by round-trip tests.
func BigToCompact(n *big.Int) uint32 {
	if n.Sign() == 0 {
		return 0
	}

	var mantissa uint32
	exponent := uint(len(n.Bytes()))
	if exponent <= 3 {
		mantissa = uint32(n.Bits()[0])
		mantissa <<= 8 * (3 - exponent)
	} else {
		tn := new(big.Int).Set(n)
		mantissa = uint32(tn.Rsh(tn, 8*(exponent-3)).Bits()[0])
	}

	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	compact := uint32(exponent<<24) | mantissa
	if n.Sign() < 0 {
		compact |= 0x00800000
	}
	return compact
}

// DiffBitsToUint256 decompresses the compact difficulty encoding directly
// to a fixed-width Uint256 target, avoiding a big.Int allocation on the
// hot ingest path. It panics if compact decodes to a negative or
// larger-than-256-bit value; nBits legality validation is out of
// scope for this package (spec.md §1), so callers that accept headers
// from an untrusted source are expected to have screened nBits upstream,
// exactly as the teacher's blockchain package assumes of bits arriving in
// a connected header.
func DiffBitsToUint256(compact uint32) uint256.Uint256 {
	target := CompactToBig(compact)
	if target.Sign() < 0 {
		panic("standalone: negative target")
	}
	if target.BitLen() > 256 {
		panic("standalone: target overflows 256 bits")
	}

	var u uint256.Uint256
	buf := make([]byte, 32)
	target.FillBytes(buf)
	// target.FillBytes is big-endian; Uint256 stores its bytes
	// little-endian, so reverse it in place before loading.
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	u.SetBytesLE(buf)
	return u
}

// Uint256ToDiffBits is the inverse of DiffBitsToUint256: it compresses a
// fixed-width target back down to the compact nBits encoding.
func Uint256ToDiffBits(n uint256.Uint256) uint32 {
	buf := make([]byte, 32)
	n.PutBytesLE(buf)
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return BigToCompact(new(big.Int).SetBytes(buf))
}

// CalcWork calculates a work value from difficulty bits. Per spec.md's
// GLOSSARY, the work a single block contributes is 2^256 / (target+1):
// the smaller the target (the harder the difficulty), the larger the
// work value, so summing it across a chain gives a monotonic measure of
// accumulated proof-of-work regardless of difficulty retargets along the
// way.
//
// The calculation is performed in math/big (division has no fast path in
// the fixed-width accumulator) and the result is converted to a Uint256
// for cheap accumulation and comparison thereafter — the same split the
// teacher's difficulty.go makes between big.Int target arithmetic and a
// fixed-width cumulative work sum.
func CalcWork(bits uint32) uint256.Uint256 {
	target := CompactToBig(bits)
	if target.Sign() <= 0 {
		return uint256.Uint256{}
	}

	// work = 2^256 / (target + 1)
	denominator := new(big.Int).Add(target, bigOne)
	work := new(big.Int).Div(oneLsh256, denominator)

	buf := make([]byte, 32)
	// work is guaranteed < 2^256 by construction (division by a positive
	// denominator >= 1), but FillBytes panics if it doesn't fit, which we
	// want: it would indicate a logic error above, not bad input.
	work.FillBytes(buf)
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}

	var u uint256.Uint256
	u.SetBytesLE(buf)
	return u
}

// HashToUint256 reinterprets a hash's bytes as a little-endian Uint256,
// the representation needed to compare a candidate block hash against a
// decompressed target.
func HashToUint256(hash chainhash.Hash) uint256.Uint256 {
	var u uint256.Uint256
	u.SetBytesLE(hash[:])
	return u
}
