// Package state holds the consensus state owned by the block-production
// core: epoch index and boundaries, the double-buffered authority sets, the
// randomness values and the active and staged epoch configuration. All
// mutation happens inside the per-block state transition; external
// collaborators may only stage future values.
package state

import (
	"errors"
	"fmt"

	"github.com/eigerco/mulberry/internal/babe"
	"github.com/eigerco/mulberry/internal/crypto"
	"github.com/eigerco/mulberry/internal/slottime"
)

var (
	// ErrEpochOutOfRange is returned by StartSlotOf for epochs whose start
	// slot cannot be derived from the recorded boundaries.
	ErrEpochOutOfRange = errors.New("epoch out of range")
)

// State is the full consensus state, reconstructed from chain history on
// restart and advanced once per block.
type State struct {
	// GenesisSlot is the slot the chain started at, fixed at genesis.
	GenesisSlot slottime.Slot
	// EpochIndex identifies the active epoch.
	EpochIndex slottime.Epoch
	// EpochStart is the first slot of the active epoch.
	EpochStart slottime.Slot
	// LatestSlot is the slot of the most recently accepted block, used for
	// the strict monotonicity check. Nil until the first block is accepted.
	LatestSlot *slottime.Slot

	// CurrentAuthorities governs slot claims in the active epoch.
	CurrentAuthorities babe.AuthoritySet
	// NextAuthorities is staged for promotion at the next boundary. The
	// authority-set provider may replace it at any time; it is applied only
	// at the boundary.
	NextAuthorities babe.AuthoritySet

	// Randomness holds the active value, the next epoch's value and the
	// in-progress accumulator.
	Randomness babe.RandomnessState

	// Config is the active epoch configuration.
	Config babe.EpochConfig
	// PendingConfig is a staged replacement, applied at the next boundary.
	PendingConfig *babe.EpochConfig
}

// NewGenesisState builds the initial state. The genesis authority set seeds
// both live copies; randomness starts at zero and is real from epoch 2 on.
func NewGenesisState(genesisSlot slottime.Slot, authorities babe.AuthoritySet, config babe.EpochConfig) (*State, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if len(authorities) == 0 {
		return nil, babe.ErrEmptyAuthoritySet
	}
	return &State{
		GenesisSlot:        genesisSlot,
		EpochStart:         genesisSlot,
		CurrentAuthorities: authorities.Clone(),
		NextAuthorities:    authorities.Clone(),
		Config:             config,
	}, nil
}

// CurrentEpochIndex returns the active epoch index.
func (s *State) CurrentEpochIndex() slottime.Epoch {
	return s.EpochIndex
}

// CurrentRandomness returns the randomness governing the active epoch.
func (s *State) CurrentRandomness() crypto.Hash {
	return s.Randomness.Current
}

// Authorities returns the authority set governing the active epoch.
func (s *State) Authorities() babe.AuthoritySet {
	return s.CurrentAuthorities.Clone()
}

// StartSlotOf computes the first slot of the given epoch from the recorded
// boundary of the active epoch and the epoch lengths in effect. Epochs after
// the next boundary account for a staged configuration change. Past epochs
// are derived with the active length, which is exact as long as no past
// change altered it.
func (s *State) StartSlotOf(epoch slottime.Epoch) (slottime.Slot, error) {
	switch {
	case epoch == s.EpochIndex:
		return s.EpochStart, nil

	case epoch > s.EpochIndex:
		// The active epoch still runs at the active length; epochs beyond the
		// next boundary run at the staged length if one is pending.
		nextStart := s.EpochStart + slottime.Slot(s.Config.EpochLength)
		if epoch == s.EpochIndex+1 {
			return nextStart, nil
		}
		futureLength := s.Config.EpochLength
		if s.PendingConfig != nil {
			futureLength = s.PendingConfig.EpochLength
		}
		return nextStart + slottime.Slot(uint64(epoch-s.EpochIndex-1)*futureLength), nil

	default:
		back := uint64(s.EpochIndex-epoch) * s.Config.EpochLength
		if slottime.Slot(back) > s.EpochStart-s.GenesisSlot {
			return 0, fmt.Errorf("%w: epoch %d precedes genesis", ErrEpochOutOfRange, epoch)
		}
		return s.EpochStart - slottime.Slot(back), nil
	}
}

// SetNextAuthorities replaces the staged authority set. This is the only
// write the external authority-set provider has; the active set is never
// touched directly.
func (s *State) SetNextAuthorities(authorities babe.AuthoritySet) error {
	if len(authorities) == 0 {
		return babe.ErrEmptyAuthoritySet
	}
	s.NextAuthorities = authorities.Clone()
	return nil
}

// StageConfig stages an epoch configuration replacement for the next
// boundary. Malformed configurations are rejected here so activation never
// fails.
func (s *State) StageConfig(config babe.EpochConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	cfg := config
	s.PendingConfig = &cfg
	return nil
}

// AccumulateRandomness folds a verified VRF output into the accumulator for
// the given epoch, which must be the active one.
func (s *State) AccumulateRandomness(epoch slottime.Epoch, output crypto.VRFOutput) error {
	if epoch != s.EpochIndex {
		return fmt.Errorf("%w: epoch %d, accumulating for %d", babe.ErrWrongEpoch, epoch, s.EpochIndex)
	}
	s.Randomness.Accumulate(output)
	return nil
}

// EpochData snapshots the active epoch for claim verification.
func (s *State) EpochData() babe.EpochData {
	return babe.EpochData{
		Index:       s.EpochIndex,
		Randomness:  s.Randomness.Current,
		Authorities: s.CurrentAuthorities,
		Config:      s.Config,
	}
}

// Clone returns a deep copy. The per-block transition works on a clone and
// commits it only after the block fully validates, so a rejected block never
// leaves partial mutations behind.
func (s *State) Clone() *State {
	clone := *s
	clone.CurrentAuthorities = s.CurrentAuthorities.Clone()
	clone.NextAuthorities = s.NextAuthorities.Clone()
	if s.PendingConfig != nil {
		cfg := *s.PendingConfig
		clone.PendingConfig = &cfg
	}
	if s.LatestSlot != nil {
		slot := *s.LatestSlot
		clone.LatestSlot = &slot
	}
	return &clone
}
