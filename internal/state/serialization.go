package state

import (
	"fmt"

	"github.com/ChainSafe/gossamer/pkg/scale"
)

// Bytes SCALE-encodes the state for persistence.
func (s *State) Bytes() ([]byte, error) {
	encoded, err := scale.Marshal(*s)
	if err != nil {
		return nil, fmt.Errorf("scale encode state: %w", err)
	}
	return encoded, nil
}

// FromBytes decodes a SCALE-encoded state.
func FromBytes(data []byte) (*State, error) {
	s := &State{}
	if err := scale.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("scale decode state: %w", err)
	}
	return s, nil
}
