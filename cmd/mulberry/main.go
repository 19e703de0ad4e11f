package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/eigerco/mulberry/internal/babe"
	"github.com/eigerco/mulberry/internal/crypto"
	"github.com/eigerco/mulberry/internal/slottime"
	"github.com/eigerco/mulberry/internal/state"
	"github.com/eigerco/mulberry/internal/store"
	"github.com/eigerco/mulberry/pkg/db/pebble"
	"github.com/eigerco/mulberry/pkg/log"
)

type genesisAuthority struct {
	Key    string `json:"key"`
	Weight uint64 `json:"weight"`
}

type genesisSpec struct {
	GenesisSlot  uint64             `json:"genesis_slot"`
	SlotDuration uint64             `json:"slot_duration_ms"`
	EpochLength  uint64             `json:"epoch_length"`
	CNumerator   uint64             `json:"c_numerator"`
	CDenominator uint64             `json:"c_denominator"`
	Authorities  []genesisAuthority `json:"authorities"`
}

func loadGenesis(path string) (*state.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read genesis file: %w", err)
	}

	var spec genesisSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse genesis file: %w", err)
	}

	authorities := make(babe.AuthoritySet, 0, len(spec.Authorities))
	for _, a := range spec.Authorities {
		raw, err := hex.DecodeString(a.Key)
		if err != nil || len(raw) != crypto.PublicKeySize {
			return nil, fmt.Errorf("invalid authority key %q", a.Key)
		}
		var key crypto.VRFPublicKey
		copy(key[:], raw)
		authorities = append(authorities, babe.Authority{Key: key, Weight: a.Weight})
	}

	return state.NewGenesisState(
		slottime.Slot(spec.GenesisSlot),
		authorities,
		babe.EpochConfig{
			SlotDuration: spec.SlotDuration,
			EpochLength:  spec.EpochLength,
			C:            babe.Ratio{Numerator: spec.CNumerator, Denominator: spec.CDenominator},
		},
	)
}

func run() error {
	dataDir := flag.String("datadir", "data", "directory for the consensus database")
	genesisPath := flag.String("genesis", "genesis.json", "path to the genesis spec")
	logLevel := flag.String("loglevel", "info", "log level: trace|debug|info|warn|error")
	flag.Parse()

	level, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	log.Init(log.Options{LogLevel: level, Type: log.ConsoleLogger})

	kv, err := pebble.NewKVStore(*dataDir)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer kv.Close()

	consensus := store.NewConsensus(kv)
	defer consensus.Close()

	st, err := consensus.State()
	switch {
	case errors.Is(err, store.ErrStateNotFound):
		st, err = loadGenesis(*genesisPath)
		if err != nil {
			return err
		}
		if err := consensus.PutState(st); err != nil {
			return fmt.Errorf("persist genesis state: %w", err)
		}
		log.Root.Info().Msg("initialised consensus state from genesis")
	case err != nil:
		return fmt.Errorf("load state: %w", err)
	}

	log.Root.Info().
		Uint64("epoch", uint64(st.CurrentEpochIndex())).
		Uint64("epoch_start", uint64(st.EpochStart)).
		Str("randomness", st.CurrentRandomness().String()).
		Int("authorities", len(st.Authorities())).
		Msg("consensus state loaded")
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
