package slottime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlotFromTimestamp(t *testing.T) {
	tests := []struct {
		name         string
		ts           Timestamp
		slotDuration uint64
		want         Slot
	}{
		{"zero timestamp", 0, 6000, 0},
		{"just before second slot", 5999, 6000, 0},
		{"exactly second slot", 6000, 6000, 1},
		{"mid slot", 21000, 6000, 3},
		{"one millisecond slots", 42, 1, 42},
		{"zero duration yields zero", 12345, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SlotFromTimestamp(tt.ts, tt.slotDuration))
		})
	}
}

func TestSlotBytesLittleEndian(t *testing.T) {
	b := Slot(0x0102030405060708).Bytes()
	require.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, b)
}

func TestEpochBytesLittleEndian(t *testing.T) {
	b := Epoch(1).Bytes()
	require.Equal(t, []byte{0x01, 0, 0, 0, 0, 0, 0, 0}, b)
}
