// Package statetransition drives the consensus core through one
// deterministic state transition per block: slot validation, epoch boundary
// handling, slot-claim verification and randomness accumulation. There is no
// internal concurrency and no wall-clock access; the only time input is the
// consensus-agreed oracle timestamp carried by the block.
package statetransition

import (
	"fmt"

	"github.com/eigerco/mulberry/internal/babe"
	"github.com/eigerco/mulberry/internal/slottime"
	"github.com/eigerco/mulberry/internal/state"
	"github.com/eigerco/mulberry/pkg/log"
)

// BlockInput is what the core consumes from an incoming block: the oracle
// timestamp, the declared slot and the slot claim.
type BlockInput struct {
	Timestamp slottime.Timestamp
	Slot      slottime.Slot
	Claim     *babe.SlotClaim
}

// ApplyBlock executes the per-block state transition. On success the state
// is advanced and the claim author's authority index returned. On any error
// the state is left untouched: the whole transition is computed on a clone
// and committed only after the block fully validates.
func ApplyBlock(st *state.State, input BlockInput) (uint32, error) {
	if input.Claim == nil {
		return 0, babe.ErrMissingClaim
	}
	if input.Claim.Slot != input.Slot {
		return 0, fmt.Errorf("%w: claim slot %d does not match block slot %d",
			babe.ErrInvalidSlot, input.Claim.Slot, input.Slot)
	}

	if err := CheckSlot(st, input.Timestamp, input.Slot); err != nil {
		return 0, err
	}

	next := st.Clone()
	if err := OnEpochChange(next, input.Slot); err != nil {
		return 0, err
	}

	index, err := babe.VerifyClaim(*input.Claim, next.EpochData())
	if err != nil {
		return 0, err
	}

	// Plain secondary claims carry no VRF output, so there is nothing to
	// fold into the accumulator.
	if input.Claim.Kind != babe.Secondary {
		if err := next.AccumulateRandomness(next.EpochIndex, input.Claim.VRFOutput); err != nil {
			return 0, err
		}
	}

	slot := input.Slot
	next.LatestSlot = &slot
	*st = *next
	return index, nil
}

// CheckSlot validates a block's declared slot: it must match the slot
// derived from the oracle timestamp and must be strictly greater than the
// slot of the previously accepted block. Sharing or regressing a slot on one
// branch is never legal; skipping slots is.
func CheckSlot(st *state.State, ts slottime.Timestamp, declared slottime.Slot) error {
	computed := slottime.SlotFromTimestamp(ts, st.Config.SlotDuration)
	if computed != declared {
		return fmt.Errorf("%w: declared slot %d, timestamp %d maps to slot %d",
			babe.ErrInvalidSlot, declared, ts, computed)
	}
	if st.LatestSlot != nil && declared <= *st.LatestSlot {
		return fmt.Errorf("%w: slot %d not after latest slot %d",
			babe.ErrInvalidSlot, declared, *st.LatestSlot)
	}
	if st.LatestSlot == nil && declared < st.GenesisSlot {
		return fmt.Errorf("%w: slot %d precedes genesis slot %d",
			babe.ErrInvalidSlot, declared, st.GenesisSlot)
	}
	return nil
}

// OnEpochChange advances the state across every epoch boundary the new slot
// has crossed, one boundary at a time. Randomness derivation is defined per
// boundary, so when block production stalls for longer than an epoch the
// registry must not jump: each skipped epoch is finalised in order. At each
// boundary the staged authority set is promoted, any staged configuration
// change applied, the randomness rotated and the epoch index incremented.
func OnEpochChange(st *state.State, newSlot slottime.Slot) error {
	for newSlot >= st.EpochStart+slottime.Slot(st.Config.EpochLength) {
		if len(st.NextAuthorities) == 0 {
			return babe.ErrEmptyAuthoritySet
		}

		// The ending epoch's length positions the boundary; the staged
		// config, if any, only governs the epoch being entered.
		st.EpochStart += slottime.Slot(st.Config.EpochLength)
		st.CurrentAuthorities = st.NextAuthorities.Clone()
		if st.PendingConfig != nil {
			st.Config = *st.PendingConfig
			st.PendingConfig = nil
		}
		st.Randomness = st.Randomness.Rotated()
		st.EpochIndex++

		log.Consensus.Info().
			Uint64("epoch", uint64(st.EpochIndex)).
			Uint64("start_slot", uint64(st.EpochStart)).
			Str("randomness", st.Randomness.Current.String()).
			Int("authorities", len(st.CurrentAuthorities)).
			Msg("epoch boundary crossed")
	}
	return nil
}
