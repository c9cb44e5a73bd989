package battleship

import (
	"math/rand"
	"time"
)

// Random is the source of randomness for ship population and the AI.
// *rand.Rand satisfies it; tests pass a seeded one.
type Random interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

func NewRandom(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func NewTimeSeededRandom() *rand.Rand {
	return NewRandom(time.Now().UnixNano())
}
