package reversi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Save format symbols.
const (
	symbolDark  = 'x'
	symbolLight = 'o'
	symbolNone  = '-'
)

// headerLen is the length of the first line: turn symbol plus two player digits.
const headerLen = 3

func symbolFor(d Disk, ok bool) byte {
	if !ok {
		return symbolNone
	}
	if d == Dark {
		return symbolDark
	}
	return symbolLight
}

// Marshal encodes the game in the plain-text save format:
//
//	<turn><dark player><light player>
//	8 rows of 8 symbols
//
// The turn is x (dark), o (light) or - once the game is over. Player digits are
// 0 (manual) and 1 (computer). Cells are x, o or - (empty). Every line ends
// with a newline.
func Marshal(g *Game) []byte {
	var buf bytes.Buffer
	buf.Grow(headerLen + 1 + (Width+1)*Height)

	buf.WriteByte(symbolFor(g.turn, !g.over))
	for _, side := range Sides() {
		buf.WriteByte(byte('0' + g.players[side]))
	}
	buf.WriteByte('\n')

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			buf.WriteByte(symbolFor(g.board.DiskAt(C(x, y))))
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Unmarshal decodes the save format strictly. Any deviation in line count,
// row width, symbol alphabet or player digits yields a *ParseError and no
// game. A single trailing newline and per-line carriage returns are accepted.
func Unmarshal(data []byte) (*Game, error) {
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil, &ParseError{Reason: "empty input"}
	}

	lines := strings.Split(text, "\n")
	if len(lines) != 1+Height {
		return nil, &ParseError{Reason: fmt.Sprintf("expected %d lines, got %d", 1+Height, len(lines))}
	}
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}

	g := &Game{board: &Board{}}
	if err := g.parseHeader(lines[0]); err != nil {
		return nil, err
	}
	for y, line := range lines[1:] {
		if err := g.board.parseRow(y, line); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Game) parseHeader(line string) error {
	if len(line) != headerLen {
		return &ParseError{Line: 1, Reason: fmt.Sprintf("header must be %d characters, got %d", headerLen, len(line))}
	}

	switch line[0] {
	case symbolDark:
		g.turn = Dark
	case symbolLight:
		g.turn = Light
	case symbolNone:
		g.turn = Dark
		g.over = true
	default:
		return &ParseError{Line: 1, Column: 1, Reason: fmt.Sprintf("invalid turn symbol %q", line[0])}
	}

	for i, side := range Sides() {
		switch digit := line[1+i]; digit {
		case '0':
			g.players[side] = Manual
		case '1':
			g.players[side] = Computer
		default:
			return &ParseError{Line: 1, Column: 2 + i, Reason: fmt.Sprintf("invalid %s player digit %q", side, digit)}
		}
	}
	return nil
}

func (b *Board) parseRow(y int, line string) error {
	lineNo := y + 2
	if len(line) != Width {
		return &ParseError{Line: lineNo, Reason: fmt.Sprintf("row must be %d characters, got %d", Width, len(line))}
	}
	for x := 0; x < Width; x++ {
		c := C(x, y)
		switch line[x] {
		case symbolDark:
			b.SetDisk(c, Dark)
		case symbolLight:
			b.SetDisk(c, Light)
		case symbolNone:
			b.ClearDisk(c)
		default:
			return &ParseError{Line: lineNo, Column: x + 1, Reason: fmt.Sprintf("invalid cell symbol %q", line[x])}
		}
	}
	return nil
}

// Write encodes g to w. Writer failures are wrapped with ErrIO.
func Write(w io.Writer, g *Game) error {
	if _, err := w.Write(Marshal(g)); err != nil {
		return ioError("write", err)
	}
	return nil
}

// Read decodes a game from r. Reader failures are wrapped with ErrIO;
// malformed content yields a *ParseError.
func Read(r io.Reader) (*Game, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ioError("read", err)
	}
	return Unmarshal(data)
}

// SaveFile writes g to path atomically through a temporary file in the same
// directory. Missing parent directories are created.
func SaveFile(path string, g *Game) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ioError("create directory", err)
	}

	tmp, err := os.CreateTemp(dir, ".reversi-*")
	if err != nil {
		return ioError("create temp file", err)
	}
	tmpName := tmp.Name()

	if err := Write(tmp, g); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return ioError("close", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return ioError("rename", err)
	}
	return nil
}

// LoadFile reads a saved game from path.
func LoadFile(path string) (*Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError("open", err)
	}
	defer f.Close()
	return Read(f)
}

// LoadOrNew restores the game saved at path. A missing file gives a new game.
// A malformed file also gives a new game, returned together with the parse
// error so the caller can report it. Any other failure returns a nil game.
func LoadOrNew(path string) (g *Game, restored bool, err error) {
	g, err = LoadFile(path)
	switch {
	case err == nil:
		return g, true, nil
	case errors.Is(err, fs.ErrNotExist):
		return NewGame(), false, nil
	case errors.Is(err, ErrParse):
		return NewGame(), false, err
	default:
		return nil, false, err
	}
}
