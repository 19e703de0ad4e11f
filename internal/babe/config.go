package babe

import "fmt"

// Ratio is the probability threshold c = numerator/denominator controlling
// what fraction of slots is claimable through the primary VRF lottery.
type Ratio struct {
	Numerator   uint64
	Denominator uint64
}

// EpochConfig is the epoch configuration. Set at genesis; replacements are
// staged and applied only at the next epoch boundary, never retroactively.
type EpochConfig struct {
	// SlotDuration is the slot length in milliseconds.
	SlotDuration uint64
	// EpochLength is the number of slots per epoch.
	EpochLength uint64
	// C is the primary slot claim probability threshold.
	C Ratio
}

// Validate rejects malformed configurations at staging time so that
// activation at the boundary can never fail.
func (c EpochConfig) Validate() error {
	if c.SlotDuration == 0 {
		return fmt.Errorf("%w: zero slot duration", ErrEpochConfigConflict)
	}
	if c.EpochLength == 0 {
		return fmt.Errorf("%w: zero epoch length", ErrEpochConfigConflict)
	}
	if c.C.Denominator == 0 {
		return fmt.Errorf("%w: zero threshold denominator", ErrEpochConfigConflict)
	}
	if c.C.Numerator > c.C.Denominator {
		return fmt.Errorf("%w: threshold ratio above one", ErrEpochConfigConflict)
	}
	return nil
}
