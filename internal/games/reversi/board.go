package reversi

import "strings"

// Board dimensions. They never change after construction.
const (
	Width  = 8
	Height = 8
)

// directions lists the eight compass steps: N, NE, E, SE, S, SW, W, NW.
var directions = [8][2]int{
	{0, -1},
	{1, -1},
	{1, 0},
	{1, 1},
	{0, 1},
	{-1, 1},
	{-1, 0},
	{-1, -1},
}

// square is one cell of the grid. The zero value is empty.
type square struct {
	disk     Disk
	occupied bool
}

// Board is the 8x8 Reversi grid.
// Cells are stored in row-major order: index = y*Width + x.
// A Board has no internal locking; callers serialize access.
type Board struct {
	cells [Width * Height]square
}

// NewBoard creates a board in the standard starting position.
func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// Reset clears every cell and places the four starting disks:
// Light at (3,3) and (4,4), Dark at (4,3) and (3,4).
func (b *Board) Reset() {
	b.cells = [Width * Height]square{}

	lo, hi := Width/2-1, Width/2
	b.SetDisk(C(lo, lo), Light)
	b.SetDisk(C(hi, hi), Light)
	b.SetDisk(C(hi, lo), Dark)
	b.SetDisk(C(lo, hi), Dark)
}

func inBounds(c Coordinate) bool {
	return c.X >= 0 && c.X < Width && c.Y >= 0 && c.Y < Height
}

// InBounds returns true if the coordinate lies on the board.
func (b *Board) InBounds(c Coordinate) bool {
	return inBounds(c)
}

func (b *Board) index(c Coordinate) int {
	return c.Y*Width + c.X
}

// DiskAt returns the disk at c. The bool is false for an empty cell and for
// coordinates outside the board.
func (b *Board) DiskAt(c Coordinate) (Disk, bool) {
	if !inBounds(c) {
		return Dark, false
	}
	sq := b.cells[b.index(c)]
	return sq.disk, sq.occupied
}

// SetDisk places d at c. Out-of-range coordinates are ignored.
func (b *Board) SetDisk(c Coordinate, d Disk) {
	if inBounds(c) {
		b.cells[b.index(c)] = square{disk: d, occupied: true}
	}
}

// ClearDisk empties the cell at c. Out-of-range coordinates are ignored.
func (b *Board) ClearDisk(c Coordinate) {
	if inBounds(c) {
		b.cells[b.index(c)] = square{}
	}
}

// SetDisks assigns d to every listed coordinate.
// Used to apply a placement together with its captures.
func (b *Board) SetDisks(d Disk, coords ...Coordinate) {
	for _, c := range coords {
		b.SetDisk(c, d)
	}
}

// CountDisks returns the number of cells holding side.
func (b *Board) CountDisks(side Disk) int {
	count := 0
	for _, sq := range b.cells {
		if sq.occupied && sq.disk == side {
			count++
		}
	}
	return count
}

// SideWithMoreDisks returns the side with strictly more disks.
// The bool is false on a tie, including an empty board.
func (b *Board) SideWithMoreDisks() (Disk, bool) {
	dark := b.CountDisks(Dark)
	light := b.CountDisks(Light)
	switch {
	case dark > light:
		return Dark, true
	case light > dark:
		return Light, true
	default:
		return Dark, false
	}
}

// FlippedDiskCoordinatesByPlacing returns the opposing disks that placing d at
// c would capture, grouped by direction in N, NE, E, SE, S, SW, W, NW order.
// It returns nil when c is occupied or off the board. An empty result means
// the placement captures nothing and is therefore illegal.
func (b *Board) FlippedDiskCoordinatesByPlacing(d Disk, c Coordinate) []Coordinate {
	if !inBounds(c) {
		return nil
	}
	if _, occupied := b.DiskAt(c); occupied {
		return nil
	}

	var flipped []Coordinate
	for _, dir := range directions {
		var run []Coordinate
		pos := c
	walk:
		for {
			pos = pos.Add(dir[0], dir[1])
			disk, occupied := b.DiskAt(pos)
			switch {
			case !occupied:
				// Empty cell or board edge: nothing captured this way.
				break walk
			case disk == d:
				flipped = append(flipped, run...)
				break walk
			default:
				run = append(run, pos)
			}
		}
	}
	return flipped
}

// CanPlaceDisk returns true if placing d at c captures at least one disk.
func (b *Board) CanPlaceDisk(d Disk, c Coordinate) bool {
	return len(b.FlippedDiskCoordinatesByPlacing(d, c)) > 0
}

// ValidMoves returns every legal placement for side in row-major order
// (top to bottom, left to right).
func (b *Board) ValidMoves(side Disk) []Coordinate {
	var moves []Coordinate
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if c := C(x, y); b.CanPlaceDisk(side, c) {
				moves = append(moves, c)
			}
		}
	}
	return moves
}

// HasValidMove returns true if side has at least one legal placement.
func (b *Board) HasValidMove(side Disk) bool {
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if b.CanPlaceDisk(side, C(x, y)) {
				return true
			}
		}
	}
	return false
}

// IsFull returns true if no cell is empty.
func (b *Board) IsFull() bool {
	for _, sq := range b.cells {
		if !sq.occupied {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	clone := *b
	return &clone
}

// Equal returns true if both boards hold the same disks in the same cells.
func (b *Board) Equal(other *Board) bool {
	return b.cells == other.cells
}

// String renders the board as 8 rows of x (dark), o (light) and - (empty).
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)
	for y := 0; y < Height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < Width; x++ {
			sb.WriteByte(symbolFor(b.DiskAt(C(x, y))))
		}
	}
	return sb.String()
}
