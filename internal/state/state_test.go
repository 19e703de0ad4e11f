package state

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eigerco/mulberry/internal/babe"
	"github.com/eigerco/mulberry/internal/crypto"
	"github.com/eigerco/mulberry/internal/slottime"
	"github.com/eigerco/mulberry/internal/testutils"
)

func testAuthorities(t *testing.T, n int) babe.AuthoritySet {
	t.Helper()
	as := make(babe.AuthoritySet, n)
	for i := range as {
		as[i] = babe.Authority{Key: testutils.RandomVRFPublicKey(t), Weight: 1}
	}
	return as
}

func testConfig() babe.EpochConfig {
	return babe.EpochConfig{
		SlotDuration: 1000,
		EpochLength:  10,
		C:            babe.Ratio{Numerator: 1, Denominator: 1},
	}
}

func TestNewGenesisState(t *testing.T) {
	authorities := testAuthorities(t, 2)
	st, err := NewGenesisState(100, authorities, testConfig())
	require.NoError(t, err)

	require.Equal(t, slottime.Epoch(0), st.CurrentEpochIndex())
	require.Equal(t, slottime.Slot(100), st.EpochStart)
	require.Equal(t, authorities, st.CurrentAuthorities)
	require.Equal(t, authorities, st.NextAuthorities)
	require.Equal(t, crypto.Hash{}, st.CurrentRandomness())
	require.Nil(t, st.LatestSlot)
}

func TestNewGenesisStateRejectsEmptyAuthorities(t *testing.T) {
	_, err := NewGenesisState(0, nil, testConfig())
	require.ErrorIs(t, err, babe.ErrEmptyAuthoritySet)
}

func TestNewGenesisStateRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.EpochLength = 0
	_, err := NewGenesisState(0, testAuthorities(t, 1), cfg)
	require.ErrorIs(t, err, babe.ErrEpochConfigConflict)
}

func TestStartSlotOf(t *testing.T) {
	st, err := NewGenesisState(100, testAuthorities(t, 1), testConfig())
	require.NoError(t, err)

	tests := []struct {
		epoch slottime.Epoch
		want  slottime.Slot
	}{
		{0, 100},
		{1, 110},
		{5, 150},
	}
	for _, tt := range tests {
		got, err := st.StartSlotOf(tt.epoch)
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}
}

func TestStartSlotOfWithStagedLengthChange(t *testing.T) {
	st, err := NewGenesisState(100, testAuthorities(t, 1), testConfig())
	require.NoError(t, err)

	staged := testConfig()
	staged.EpochLength = 20
	require.NoError(t, st.StageConfig(staged))

	// The active epoch still runs 10 slots; epochs after the next boundary
	// run 20.
	next, err := st.StartSlotOf(1)
	require.NoError(t, err)
	require.Equal(t, slottime.Slot(110), next)

	later, err := st.StartSlotOf(3)
	require.NoError(t, err)
	require.Equal(t, slottime.Slot(150), later)
}

func TestStartSlotOfPastEpochs(t *testing.T) {
	st, err := NewGenesisState(100, testAuthorities(t, 1), testConfig())
	require.NoError(t, err)
	st.EpochIndex = 3
	st.EpochStart = 130

	got, err := st.StartSlotOf(0)
	require.NoError(t, err)
	require.Equal(t, slottime.Slot(100), got)

	// A past epoch that would land before genesis is unanswerable.
	st.GenesisSlot = 125
	_, err = st.StartSlotOf(0)
	require.ErrorIs(t, err, ErrEpochOutOfRange)
}

func TestSetNextAuthorities(t *testing.T) {
	st, err := NewGenesisState(0, testAuthorities(t, 1), testConfig())
	require.NoError(t, err)
	current := st.CurrentAuthorities.Clone()

	replacement := testAuthorities(t, 3)
	require.NoError(t, st.SetNextAuthorities(replacement))
	require.Equal(t, replacement, st.NextAuthorities)
	// The active set is never touched by the provider.
	require.Equal(t, current, st.CurrentAuthorities)

	require.ErrorIs(t, st.SetNextAuthorities(nil), babe.ErrEmptyAuthoritySet)
}

func TestStageConfigRejectsConflict(t *testing.T) {
	st, err := NewGenesisState(0, testAuthorities(t, 1), testConfig())
	require.NoError(t, err)

	bad := testConfig()
	bad.C = babe.Ratio{Numerator: 2, Denominator: 1}
	require.ErrorIs(t, st.StageConfig(bad), babe.ErrEpochConfigConflict)
	require.Nil(t, st.PendingConfig)
}

func TestAccumulateRandomnessWrongEpoch(t *testing.T) {
	st, err := NewGenesisState(0, testAuthorities(t, 1), testConfig())
	require.NoError(t, err)

	require.ErrorIs(t, st.AccumulateRandomness(5, testutils.RandomVRFOutput(t)), babe.ErrWrongEpoch)
	require.NoError(t, st.AccumulateRandomness(0, testutils.RandomVRFOutput(t)))
}

func TestCloneIsDeep(t *testing.T) {
	st, err := NewGenesisState(0, testAuthorities(t, 2), testConfig())
	require.NoError(t, err)
	staged := testConfig()
	require.NoError(t, st.StageConfig(staged))
	slot := slottime.Slot(9)
	st.LatestSlot = &slot

	clone := st.Clone()
	clone.CurrentAuthorities[0].Weight = 42
	clone.PendingConfig.EpochLength = 99
	*clone.LatestSlot = 77

	require.Equal(t, uint64(1), st.CurrentAuthorities[0].Weight)
	require.Equal(t, uint64(10), st.PendingConfig.EpochLength)
	require.Equal(t, slottime.Slot(9), *st.LatestSlot)
}
