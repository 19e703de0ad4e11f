package babe

import "github.com/eigerco/mulberry/internal/crypto"

// RandomnessState holds the three live randomness values. Current governs
// slot-claim math in the active epoch and was accumulated entirely two epochs
// earlier; Next activates at the coming boundary; Accumulator is the running
// digest collecting this epoch's VRF outputs, destined for the epoch after
// next. The two-epoch lag is the unbiasability guarantee: the last author to
// contribute in an epoch cannot steer randomness that epoch already uses.
type RandomnessState struct {
	Current     crypto.Hash
	Next        crypto.Hash
	Accumulator crypto.Hash
}

// Accumulate folds a VRF output into the running digest for the in-progress
// epoch. Accumulation order follows block order, which is itself consensus
// determined, so the digest is deterministic given the finalised chain.
func (r *RandomnessState) Accumulate(output crypto.VRFOutput) {
	r.Accumulator = crypto.HashConcat(r.Accumulator[:], output[:])
}

// Rotated performs the boundary rotation: Next is promoted into Current, the
// digest that just finished accumulating becomes Next, and a fresh
// accumulator is seeded from that digest. An epoch with zero VRF outputs
// therefore finishes with the hash of the previous digest and empty input,
// never an undefined value.
func (r RandomnessState) Rotated() RandomnessState {
	return RandomnessState{
		Current:     r.Next,
		Next:        r.Accumulator,
		Accumulator: crypto.HashData(r.Accumulator[:]),
	}
}
