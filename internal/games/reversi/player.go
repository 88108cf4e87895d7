package reversi

import (
	"fmt"
	"strings"
)

// PlayerType selects who controls a side.
// The numeric values are the digits used by the save format.
type PlayerType int

const (
	Manual   PlayerType = 0
	Computer PlayerType = 1
)

// String returns a human-readable name for the player type.
func (p PlayerType) String() string {
	switch p {
	case Manual:
		return "manual"
	case Computer:
		return "computer"
	default:
		return "unknown"
	}
}

// Toggled returns the other player type.
func (p PlayerType) Toggled() PlayerType {
	if p == Computer {
		return Manual
	}
	return Computer
}

// ParsePlayerType accepts manual|human|0 and computer|cpu|1.
func ParsePlayerType(s string) (PlayerType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "manual", "human", "0":
		return Manual, nil
	case "computer", "cpu", "1":
		return Computer, nil
	}
	return Manual, fmt.Errorf("reversi: unknown player type %q", s)
}
