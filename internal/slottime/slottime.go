// Package slottime defines the time units of the consensus protocol. A slot
// is the atomic unit of consensus time, derived from the externally agreed
// timestamp; an epoch is a fixed-length window of consecutive slots. Epoch
// length and slot duration are chain configuration, so all arithmetic here is
// parameterised rather than constant.
package slottime

import "encoding/binary"

// Timestamp is the consensus-agreed wall-clock time in milliseconds, supplied
// by the time oracle once per block. The core never reads the wall clock
// itself.
type Timestamp uint64

// Slot is a monotonically non-decreasing consensus time unit.
type Slot uint64

// Epoch identifies an epoch. Starts at 0 and increments by exactly one at
// every epoch boundary.
type Epoch uint64

// SlotFromTimestamp maps the oracle timestamp onto a slot number given the
// slot duration in milliseconds.
func SlotFromTimestamp(ts Timestamp, slotDurationMillis uint64) Slot {
	if slotDurationMillis == 0 {
		return 0
	}
	return Slot(uint64(ts) / slotDurationMillis)
}

// Bytes returns the slot number as little-endian bytes for use in VRF
// transcripts and author-selection hashes.
func (s Slot) Bytes() []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(s))
	return b
}

// Bytes returns the epoch index as little-endian bytes.
func (e Epoch) Bytes() []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(e))
	return b
}
