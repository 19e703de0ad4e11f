package babe

import (
	"fmt"

	"github.com/eigerco/mulberry/internal/crypto/vrf"
)

// VerifyClaim checks a slot claim against the epoch's randomness, authority
// set and configuration. On success it returns the author's index into the
// authority set. Verification is idempotent and has no side effects; the
// caller is responsible for folding the VRF output into the randomness
// accumulator separately.
func VerifyClaim(claim SlotClaim, epoch EpochData) (uint32, error) {
	index, ok := epoch.Authorities.Index(claim.Author)
	if !ok {
		return 0, ErrUnknownAuthority
	}

	switch claim.Kind {
	case Primary:
		if err := verifyClaimProof(claim, epoch); err != nil {
			return 0, err
		}
		threshold := PrimaryThreshold(epoch.Config.C, epoch.Authorities[index].Weight, epoch.Authorities.TotalWeight())
		if !OutputBelowThreshold(claim.VRFOutput, threshold) {
			return 0, fmt.Errorf("%w: vrf output above primary threshold", ErrBadProof)
		}
		return index, nil

	case Secondary:
		if index != SecondaryAuthorIndex(epoch.Randomness, claim.Slot, len(epoch.Authorities)) {
			return 0, ErrWrongAuthor
		}
		return index, nil

	case SecondaryVRF:
		if index != SecondaryAuthorIndex(epoch.Randomness, claim.Slot, len(epoch.Authorities)) {
			return 0, ErrWrongAuthor
		}
		if err := verifyClaimProof(claim, epoch); err != nil {
			return 0, err
		}
		return index, nil

	default:
		return 0, fmt.Errorf("%w: unknown claim kind %d", ErrBadProof, claim.Kind)
	}
}

// verifyClaimProof checks the VRF proof over the claim transcript and that
// the claimed output matches the proof.
func verifyClaimProof(claim SlotClaim, epoch EpochData) error {
	transcript := ClaimTranscript(epoch.Randomness, claim.Slot, epoch.Index)
	output, err := vrf.Verify(claim.Author, transcript, claim.VRFProof)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadProof, err)
	}
	if output != claim.VRFOutput {
		return fmt.Errorf("%w: vrf output does not match proof", ErrBadProof)
	}
	return nil
}
