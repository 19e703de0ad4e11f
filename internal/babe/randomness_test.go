package babe

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eigerco/mulberry/internal/crypto"
)

func TestAccumulateIsRunningDigest(t *testing.T) {
	var r RandomnessState
	out1 := crypto.VRFOutput{1, 2, 3}
	out2 := crypto.VRFOutput{4, 5, 6}

	r.Accumulate(out1)
	want := crypto.HashConcat(make([]byte, crypto.HashSize), out1[:])
	require.Equal(t, want, r.Accumulator)

	r.Accumulate(out2)
	want = crypto.HashConcat(want[:], out2[:])
	require.Equal(t, want, r.Accumulator)
}

func TestAccumulateOrderMatters(t *testing.T) {
	out1 := crypto.VRFOutput{1}
	out2 := crypto.VRFOutput{2}

	var a, b RandomnessState
	a.Accumulate(out1)
	a.Accumulate(out2)
	b.Accumulate(out2)
	b.Accumulate(out1)

	require.NotEqual(t, a.Accumulator, b.Accumulator)
}

func TestRotated(t *testing.T) {
	r := RandomnessState{
		Current:     crypto.Hash{1},
		Next:        crypto.Hash{2},
		Accumulator: crypto.Hash{3},
	}

	rotated := r.Rotated()
	require.Equal(t, crypto.Hash{2}, rotated.Current)
	require.Equal(t, crypto.Hash{3}, rotated.Next)
	acc := crypto.Hash{3}
	require.Equal(t, crypto.HashData(acc[:]), rotated.Accumulator)
}

func TestRotatedEmptyEpoch(t *testing.T) {
	// An epoch with zero VRF outputs still yields a defined digest: the hash
	// of the previous digest with empty input.
	r := RandomnessState{
		Next:        crypto.Hash{7},
		Accumulator: crypto.Hash{9},
	}

	afterEmpty := r.Rotated().Rotated()
	require.Equal(t, crypto.Hash{9}, afterEmpty.Current)
	endedDigest := crypto.Hash{9}
	require.Equal(t, crypto.HashData(endedDigest[:]), afterEmpty.Next)
}

func TestTwoEpochLag(t *testing.T) {
	// Whatever accumulates now becomes the active randomness two rotations
	// later.
	var r RandomnessState
	r.Accumulate(crypto.VRFOutput{42})
	accumulated := r.Accumulator

	r = r.Rotated()
	require.NotEqual(t, accumulated, r.Current)
	r = r.Rotated()
	require.Equal(t, accumulated, r.Current)
}
