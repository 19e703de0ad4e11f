package babe

import (
	"fmt"

	"github.com/eigerco/mulberry/internal/crypto/vrf"
	"github.com/eigerco/mulberry/internal/slottime"
)

// ClaimSlot attempts to claim a slot with the given secret key. It returns a
// Primary claim when the key's VRF output over the claim transcript falls
// below its weighted threshold, otherwise a SecondaryVRF claim when the key
// is the slot's deterministically selected fallback author. A nil claim with
// nil error means the key is not entitled to the slot.
func ClaimSlot(secret vrf.SecretKey, slot slottime.Slot, epoch EpochData) (*SlotClaim, error) {
	author, err := secret.Public()
	if err != nil {
		return nil, fmt.Errorf("derive public key: %w", err)
	}

	index, ok := epoch.Authorities.Index(author)
	if !ok {
		return nil, ErrUnknownAuthority
	}

	transcript := ClaimTranscript(epoch.Randomness, slot, epoch.Index)
	output, proof, err := secret.Prove(transcript)
	if err != nil {
		return nil, fmt.Errorf("evaluate vrf: %w", err)
	}

	claim := &SlotClaim{
		Author:    author,
		Slot:      slot,
		VRFOutput: output,
		VRFProof:  proof,
	}

	threshold := PrimaryThreshold(epoch.Config.C, epoch.Authorities[index].Weight, epoch.Authorities.TotalWeight())
	if OutputBelowThreshold(output, threshold) {
		claim.Kind = Primary
		return claim, nil
	}

	if index == SecondaryAuthorIndex(epoch.Randomness, slot, len(epoch.Authorities)) {
		claim.Kind = SecondaryVRF
		return claim, nil
	}

	return nil, nil
}
