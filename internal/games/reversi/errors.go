package reversi

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalPlacement is returned for a placement on an occupied cell or
	// one that captures nothing. The game is left untouched.
	ErrIllegalPlacement = errors.New("reversi: illegal placement")

	// ErrGameOver is returned when a placement is attempted after the game ended.
	ErrGameOver = errors.New("reversi: game is over")

	// ErrParse matches every *ParseError.
	ErrParse = errors.New("reversi: malformed game state")

	// ErrIO wraps failures of the underlying reader or writer.
	ErrIO = errors.New("reversi: io failure")
)

// ParseError describes where a saved game failed strict validation.
// Line and Column are 1-based; Column is 0 when the whole line is at fault.
type ParseError struct {
	Line   int
	Column int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("reversi: malformed game state at line %d, column %d: %s", e.Line, e.Column, e.Reason)
	}
	if e.Line > 0 {
		return fmt.Sprintf("reversi: malformed game state at line %d: %s", e.Line, e.Reason)
	}
	return "reversi: malformed game state: " + e.Reason
}

// Is lets errors.Is(err, ErrParse) match any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func ioError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrIO, op, err)
}
