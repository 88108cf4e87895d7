package reversi

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinate identifies a cell on the board.
// X is the column and Y is the row, both zero-based from the top-left corner.
type Coordinate struct {
	X int
	Y int
}

// C is a convenience constructor for Coordinate.
func C(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// Add returns a new Coordinate offset by (dx, dy).
func (c Coordinate) Add(dx, dy int) Coordinate {
	return Coordinate{X: c.X + dx, Y: c.Y + dy}
}

// String returns a string representation of the coordinate.
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Notation returns the coordinate in board notation, e.g. "c4" for (2,3).
// Out-of-range coordinates fall back to String.
func (c Coordinate) Notation() string {
	if c.X < 0 || c.X >= Width || c.Y < 0 || c.Y >= Height {
		return c.String()
	}
	return fmt.Sprintf("%c%d", 'a'+c.X, c.Y+1)
}

// ParseCoordinate parses either board notation ("c4") or a numeric
// "x,y" pair ("2,3"). Both forms are validated against the board size.
func ParseCoordinate(s string) (Coordinate, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	if x, y, ok := strings.Cut(s, ","); ok {
		cx, errX := strconv.Atoi(strings.TrimSpace(x))
		cy, errY := strconv.Atoi(strings.TrimSpace(y))
		if errX != nil || errY != nil {
			return Coordinate{}, fmt.Errorf("reversi: invalid coordinate %q", s)
		}
		c := C(cx, cy)
		if !inBounds(c) {
			return Coordinate{}, fmt.Errorf("reversi: coordinate %s out of range", c)
		}
		return c, nil
	}

	if len(s) != 2 || s[0] < 'a' || s[0] >= 'a'+Width || s[1] < '1' || s[1] >= '1'+Height {
		return Coordinate{}, fmt.Errorf("reversi: invalid coordinate %q", s)
	}
	return C(int(s[0]-'a'), int(s[1]-'1')), nil
}
