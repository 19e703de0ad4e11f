package babe

import (
	"github.com/eigerco/mulberry/internal/crypto"
	"github.com/eigerco/mulberry/internal/slottime"
)

// ClaimKind distinguishes the three slot-claim mechanisms.
type ClaimKind byte

const (
	// Primary is a VRF-lottery win: the output of a proof over the claim
	// transcript is below the author's weighted threshold.
	Primary ClaimKind = iota
	// Secondary is the deterministic fallback author, no proof attached.
	Secondary
	// SecondaryVRF is the fallback author carrying a VRF proof over the same
	// transcript as Primary, so the claim still feeds the randomness
	// accumulator. Preferred over plain Secondary.
	SecondaryVRF
)

func (k ClaimKind) String() string {
	switch k {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	case SecondaryVRF:
		return "secondary-vrf"
	default:
		return "unknown"
	}
}

// SlotClaim is the per-block evidence authorising an author to produce the
// block at a slot. It is created once per produced block, consumed
// immediately by the verifier and not persisted beyond the block it
// authorises.
type SlotClaim struct {
	Author crypto.VRFPublicKey
	Slot   slottime.Slot
	Kind   ClaimKind
	// VRFOutput and VRFProof are zero for plain Secondary claims.
	VRFOutput crypto.VRFOutput
	VRFProof  crypto.VRFProof
}

// EpochData is the read-only snapshot of epoch state a claim is verified
// against.
type EpochData struct {
	Index       slottime.Epoch
	Randomness  crypto.Hash
	Authorities AuthoritySet
	Config      EpochConfig
}
