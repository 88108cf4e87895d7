// Package reversi implements the Reversi (Othello) rules: the 8x8 board,
// legal-move enumeration, flip resolution, turn advancement and the plain-text
// save format. Everything here is pure logic; platform layers drive it.
package reversi

// Disk is one of the two sides of a Reversi piece.
type Disk int

const (
	Dark Disk = iota
	Light
)

// Sides returns both disks in save-format order (dark first).
func Sides() []Disk {
	return []Disk{Dark, Light}
}

// Flipped returns the opposite side.
func (d Disk) Flipped() Disk {
	if d == Dark {
		return Light
	}
	return Dark
}

// Flip turns the disk over in place.
func (d *Disk) Flip() {
	*d = d.Flipped()
}

// String returns a human-readable name for the disk.
func (d Disk) String() string {
	switch d {
	case Dark:
		return "dark"
	case Light:
		return "light"
	default:
		return "unknown"
	}
}

// Title returns the capitalised side name used in status messages.
func (d Disk) Title() string {
	switch d {
	case Dark:
		return "Dark"
	case Light:
		return "Light"
	default:
		return "Unknown"
	}
}

// ParseDisk accepts "dark"/"x" and "light"/"o".
func ParseDisk(s string) (Disk, bool) {
	switch s {
	case "dark", "Dark", "x", "black":
		return Dark, true
	case "light", "Light", "o", "white":
		return Light, true
	}
	return Dark, false
}
