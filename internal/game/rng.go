// internal/game/rng.go
//
// Injectable randomness for the engine. Gameplay draws are intentionally
// unseeded in production; tests substitute a scripted implementation.

package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// RNG is the randomness source the engine draws from. *math/rand.Rand
// satisfies it directly.
type RNG interface {
	Intn(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// newRNG returns a math/rand generator seeded from crypto/rand.
func newRNG() *rand.Rand {
	var b [8]byte
	_, _ = crand.Read(b[:])
	return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(b[:]))))
}
