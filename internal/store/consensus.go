package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/eigerco/mulberry/internal/crypto"
	"github.com/eigerco/mulberry/internal/slottime"
	"github.com/eigerco/mulberry/internal/state"
	"github.com/eigerco/mulberry/pkg/db"
	"github.com/eigerco/mulberry/pkg/db/pebble"
)

var (
	ErrStateNotFound      = errors.New("consensus state not found")
	ErrRandomnessNotFound = errors.New("epoch randomness not found")
	ErrConsensusClosed    = errors.New("consensus store is closed")
)

const (
	prefixState byte = iota + 1
	prefixEpochRandomness
)

var stateKey = []byte{prefixState}

// Consensus persists the consensus state and the per-epoch randomness
// history in a key-value store, so a restarted node resumes from the exact
// state the last accepted block left behind.
type Consensus struct {
	db     db.KVStore
	closed atomic.Bool
}

// NewConsensus creates a consensus store on top of a KVStore.
func NewConsensus(db db.KVStore) *Consensus {
	return &Consensus{db: db}
}

// PutState stores the state together with the active epoch's randomness,
// atomically. The randomness history backs the outbound query surface for
// downstream consumers of verifiable randomness.
func (c *Consensus) PutState(s *state.State) error {
	if c.closed.Load() {
		return ErrConsensusClosed
	}

	encoded, err := s.Bytes()
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	batch := c.db.NewBatch()
	defer batch.Close()

	if err := batch.Put(stateKey, encoded); err != nil {
		return fmt.Errorf("store state: %w", err)
	}

	randomness := s.CurrentRandomness()
	if err := batch.Put(epochRandomnessKey(s.EpochIndex), randomness[:]); err != nil {
		return fmt.Errorf("store epoch randomness: %w", err)
	}

	if err := batch.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// State loads the persisted consensus state.
func (c *Consensus) State() (*state.State, error) {
	if c.closed.Load() {
		return nil, ErrConsensusClosed
	}

	encoded, err := c.db.Get(stateKey)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("get state: %w", err)
	}
	return state.FromBytes(encoded)
}

// EpochRandomness returns the randomness that was active during the given
// epoch, if the epoch has been seen.
func (c *Consensus) EpochRandomness(epoch slottime.Epoch) (crypto.Hash, error) {
	if c.closed.Load() {
		return crypto.Hash{}, ErrConsensusClosed
	}

	value, err := c.db.Get(epochRandomnessKey(epoch))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return crypto.Hash{}, ErrRandomnessNotFound
		}
		return crypto.Hash{}, fmt.Errorf("get epoch randomness: %w", err)
	}

	var h crypto.Hash
	copy(h[:], value)
	return h, nil
}

// RandomnessHistory returns the recorded (epoch, randomness) pairs in epoch
// order.
func (c *Consensus) RandomnessHistory() (map[slottime.Epoch]crypto.Hash, error) {
	if c.closed.Load() {
		return nil, ErrConsensusClosed
	}

	iter, err := c.db.NewIterator([]byte{prefixEpochRandomness}, []byte{prefixEpochRandomness + 1})
	if err != nil {
		return nil, fmt.Errorf("create iterator: %w", err)
	}
	defer iter.Close()

	history := make(map[slottime.Epoch]crypto.Hash)
	for iter.Next() {
		key := iter.Key()
		if len(key) != 9 {
			continue
		}
		value, err := iter.Value()
		if err != nil {
			return nil, fmt.Errorf("iterator value: %w", err)
		}
		var h crypto.Hash
		copy(h[:], value)
		history[slottime.Epoch(binary.BigEndian.Uint64(key[1:]))] = h
	}
	return history, nil
}

// Close marks the store closed. The underlying KVStore is owned by the
// caller and closed separately.
func (c *Consensus) Close() error {
	c.closed.Store(true)
	return nil
}

// Big-endian epoch so iteration order matches epoch order.
func epochRandomnessKey(epoch slottime.Epoch) []byte {
	key := make([]byte, 9)
	key[0] = prefixEpochRandomness
	binary.BigEndian.PutUint64(key[1:], uint64(epoch))
	return key
}
