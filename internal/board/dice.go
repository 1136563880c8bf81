package board

import "math/rand"

// Roller rolls count dice with the given number of sides.
type Roller interface {
	Roll(count, sides int) []int
}

// RandRoller rolls with a caller supplied source so seeded games replay the same.
type RandRoller struct {
	rng *rand.Rand
}

func NewRandRoller(rng *rand.Rand) *RandRoller {
	return &RandRoller{rng: rng}
}

func (r *RandRoller) Roll(count, sides int) []int {
	if count <= 0 || sides <= 0 {
		return nil
	}
	results := make([]int, count)
	for i := range results {
		results[i] = r.rng.Intn(sides) + 1
	}
	return results
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
