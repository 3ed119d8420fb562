// Package rng provides the deterministic seed plumbing that keys every
// game's pseudo-random source. A game constructed with the same seed and
// fed the same command log always produces the same sequence of rolls,
// shuffles, and other randomized decisions (spec invariant I1/I6).
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
)

// RollMode controls whether a client-supplied seed may be honored.
type RollMode int

const (
	// RollModeLive is the default: every roll affects real game state and a
	// client-supplied seed is only honored if the caller opts in.
	RollModeLive RollMode = iota
	// RollModeRehearsal previews an outcome without committing it; client
	// seeds are always honored so a UI can preview "what if I rolled X".
	RollModeRehearsal
)

const maxSeedInt64 = int64(^uint64(0) >> 1)

// ErrSeedOutOfRange reports that a requested seed does not fit in int64.
var ErrSeedOutOfRange = errors.New("seed must fit in int64")

// NewSeed generates a random, non-negative seed using crypto/rand. This is
// the default seed source for Game construction when the caller does not
// supply one explicitly.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	seed := binary.LittleEndian.Uint64(b[:]) & uint64(^uint64(0)>>1)
	return int64(seed), nil
}

// Request describes a caller's seed preference for one randomized decision
// inside an action's execute function (e.g. "roll these dice").
type Request struct {
	RollMode RollMode
	Seed     *uint64
}

// Resolve determines the seed and roll mode that should drive one
// randomized decision. allowClientSeed gates whether a caller-supplied seed
// is honored for the given roll mode; seedFunc supplies the server-generated
// fallback (normally NewSeed).
func Resolve(req Request, seedFunc func() (int64, error), allowClientSeed func(RollMode) bool) (seed int64, clientProvided bool, mode RollMode, err error) {
	mode = req.RollMode

	if req.Seed != nil {
		if *req.Seed > uint64(maxSeedInt64) {
			return 0, false, mode, ErrSeedOutOfRange
		}
		if allowClientSeed != nil && allowClientSeed(mode) {
			return int64(*req.Seed), true, mode, nil
		}
	}

	generated, err := seedFunc()
	if err != nil {
		return 0, false, mode, err
	}
	return generated, false, mode, nil
}
