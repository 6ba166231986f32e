package service

import (
	"math/rand/v2"
	"sync"
	"time"
)

// RandomPicker selects random indexes for the fun and game commands.
// It is safe for concurrent use.
type RandomPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomPicker creates a picker seeded with the current time.
func NewRandomPicker() *RandomPicker {
	return &RandomPicker{
		rng: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
}

// IntN returns a random int in [0, n).
func (p *RandomPicker) IntN(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}

// pick returns a random element of items, or "" when there are none.
func (b *TgBotServices) pick(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[b.random.IntN(len(items))]
}
