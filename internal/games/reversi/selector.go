package reversi

import (
	"fmt"
	"math/rand"
)

// MoveSelector picks a computer move. Implementations must return one of
// b.ValidMoves(side), or false when there is none.
type MoveSelector interface {
	SelectMove(b *Board, side Disk) (Coordinate, bool)
}

// Strategy names accepted by SelectorByName.
const (
	StrategyRandom = "random"
	StrategyGreedy = "greedy"
	StrategyFirst  = "first"
)

// RandomSelector picks uniformly among the legal moves.
// It owns its RNG and is not safe for concurrent use.
type RandomSelector struct {
	rng *rand.Rand
}

// NewRandomSelector creates a RandomSelector seeded for reproducible play.
func NewRandomSelector(seed int64) *RandomSelector {
	return &RandomSelector{rng: rand.New(rand.NewSource(seed))}
}

// SelectMove implements MoveSelector.
func (s *RandomSelector) SelectMove(b *Board, side Disk) (Coordinate, bool) {
	moves := b.ValidMoves(side)
	if len(moves) == 0 {
		return Coordinate{}, false
	}
	return moves[s.rng.Intn(len(moves))], true
}

// GreedySelector picks the move that flips the most disks.
// Ties go to the earliest move in row-major order.
type GreedySelector struct{}

// SelectMove implements MoveSelector.
func (GreedySelector) SelectMove(b *Board, side Disk) (Coordinate, bool) {
	best, bestFlips := Coordinate{}, 0
	for _, c := range b.ValidMoves(side) {
		if n := len(b.FlippedDiskCoordinatesByPlacing(side, c)); n > bestFlips {
			best, bestFlips = c, n
		}
	}
	return best, bestFlips > 0
}

// FirstSelector always picks the first legal move in row-major order.
type FirstSelector struct{}

// SelectMove implements MoveSelector.
func (FirstSelector) SelectMove(b *Board, side Disk) (Coordinate, bool) {
	moves := b.ValidMoves(side)
	if len(moves) == 0 {
		return Coordinate{}, false
	}
	return moves[0], true
}

// SelectorByName builds a selector from its strategy name.
// The seed is only used by the random strategy.
func SelectorByName(name string, seed int64) (MoveSelector, error) {
	switch name {
	case StrategyRandom, "":
		return NewRandomSelector(seed), nil
	case StrategyGreedy:
		return GreedySelector{}, nil
	case StrategyFirst:
		return FirstSelector{}, nil
	}
	return nil, fmt.Errorf("reversi: unknown strategy %q", name)
}
