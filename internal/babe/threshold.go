package babe

import (
	"math/big"

	"github.com/eigerco/mulberry/internal/crypto"
)

var two128 = new(big.Int).Lsh(big.NewInt(1), 128)

// PrimaryThreshold computes the 128-bit fixed-point threshold a primary VRF
// output must stay strictly below for the claim to win the slot:
//
//	T = floor(2^128 * c_num * weight / (c_denom * totalWeight))
//
// capped at 2^128 - 1. The arithmetic is exact big-integer rational with
// floor rounding; no floating point is involved anywhere, since any two
// nodes disagreeing on rounding would fork the chain. An authority with
// weight w out of total W wins a slot with probability c * w/W.
func PrimaryThreshold(c Ratio, weight, totalWeight uint64) *big.Int {
	if weight == 0 || totalWeight == 0 || c.Denominator == 0 {
		return new(big.Int)
	}

	num := new(big.Int).Mul(
		new(big.Int).SetUint64(c.Numerator),
		new(big.Int).SetUint64(weight),
	)
	num.Mul(num, two128)

	den := new(big.Int).Mul(
		new(big.Int).SetUint64(c.Denominator),
		new(big.Int).SetUint64(totalWeight),
	)

	threshold := num.Div(num, den)

	ceiling := new(big.Int).Sub(two128, big.NewInt(1))
	if threshold.Cmp(ceiling) > 0 {
		return ceiling
	}
	return threshold
}

// OutputBelowThreshold reads the first 16 bytes of the VRF output as a
// little-endian 128-bit integer and reports whether it is strictly below the
// threshold.
func OutputBelowThreshold(output crypto.VRFOutput, threshold *big.Int) bool {
	// big.Int wants big-endian bytes.
	var be [16]byte
	for i := 0; i < 16; i++ {
		be[i] = output[15-i]
	}
	value := new(big.Int).SetBytes(be[:])
	return value.Cmp(threshold) < 0
}
