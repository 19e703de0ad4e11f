package babe

import (
	"math/big"

	"github.com/eigerco/mulberry/internal/crypto"
	"github.com/eigerco/mulberry/internal/slottime"
)

const (
	// SlotClaimContext separates slot-claim VRF transcripts from any other
	// use of the same keys.
	SlotClaimContext = "mulberry_slot_claim"
	// SecondaryAuthorContext separates the secondary author-selection hash.
	SecondaryAuthorContext = "mulberry_secondary_author"
)

// ClaimTranscript builds the VRF input for a slot claim from the epoch's
// active randomness, the slot number and the epoch index. Both primary and
// SecondaryVRF claims sign this transcript.
func ClaimTranscript(randomness crypto.Hash, slot slottime.Slot, epoch slottime.Epoch) []byte {
	transcript := make([]byte, 0, len(SlotClaimContext)+crypto.HashSize+16)
	transcript = append(transcript, SlotClaimContext...)
	transcript = append(transcript, randomness[:]...)
	transcript = append(transcript, slot.Bytes()...)
	transcript = append(transcript, epoch.Bytes()...)
	return transcript
}

// SecondaryAuthorIndex deterministically selects the authority entitled to
// the secondary claim for a slot: hash(randomness, slot) interpreted as an
// integer, reduced modulo the authority count. This guarantees every slot
// has some legitimate author even when no VRF winner exists.
func SecondaryAuthorIndex(randomness crypto.Hash, slot slottime.Slot, authorityCount int) uint32 {
	if authorityCount == 0 {
		return 0
	}
	digest := crypto.HashConcat([]byte(SecondaryAuthorContext), randomness[:], slot.Bytes())
	index := new(big.Int).SetBytes(digest[:])
	index.Mod(index, big.NewInt(int64(authorityCount)))
	return uint32(index.Uint64())
}
