package babe

import "errors"

var (
	// ErrInvalidSlot is returned when a block declares a slot that does not
	// match the oracle timestamp, or that does not strictly increase over the
	// previous block's slot. The block is rejected, not retried.
	ErrInvalidSlot = errors.New("invalid slot")

	// ErrEmptyAuthoritySet is returned when an epoch boundary would promote
	// an empty authority set. This is a fatal misconfiguration: the chain
	// could not produce further blocks, so it is never silently skipped.
	ErrEmptyAuthoritySet = errors.New("empty authority set")

	// ErrBadProof is returned when cryptographic verification of a slot
	// claim fails, including a primary VRF output at or above the claim
	// threshold.
	ErrBadProof = errors.New("bad claim proof")

	// ErrWrongAuthor is returned when a secondary claim's author is not the
	// authority selected for the slot.
	ErrWrongAuthor = errors.New("wrong secondary slot author")

	// ErrUnknownAuthority is returned when the claimed key is not in the
	// current authority set.
	ErrUnknownAuthority = errors.New("unknown authority")

	// ErrEpochConfigConflict is returned when a staged epoch configuration
	// is malformed. Staging is rejected so that activation never fails.
	ErrEpochConfigConflict = errors.New("conflicting epoch config")

	// ErrMissingClaim is returned when a block carries no slot claim.
	ErrMissingClaim = errors.New("missing slot claim")

	// ErrWrongEpoch is returned when a VRF output is submitted for an epoch
	// other than the one currently accumulating.
	ErrWrongEpoch = errors.New("vrf output for wrong epoch")
)
