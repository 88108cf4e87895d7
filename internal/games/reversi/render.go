package reversi

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/tui-reversi/internal/core"
)

// Layout constants for the terminal board.
const (
	cellW      = 3  // characters per board column
	labelW     = 4  // row label gutter
	panelGap   = 4  // space between board and side panel
	panelW     = 26 // side panel width
	minScreenW = labelW + Width*cellW + panelGap + panelW
	minScreenH = Height + 6
)

const (
	runeDark  = '●'
	runeLight = '○'
	runeEmpty = '·'
	runeHint  = '+'
)

func diskRune(d Disk) rune {
	if d == Dark {
		return runeDark
	}
	return runeLight
}

func diskColor(d Disk) core.Color {
	if d == Dark {
		return core.ColorCyan
	}
	return core.ColorBrightWhite
}

// Render draws the board, side panel and controls.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small", core.ColorRed)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("need %dx%d", minScreenW, minScreenH), core.ColorGray)
		return
	}

	area := dst.Bounds().Centered(minScreenW, minScreenH)
	dst.DrawTextCentered(area.Y, "R E V E R S I", core.ColorBrightYellow)

	boardX, boardY := area.X, area.Y+2
	s.renderBoard(dst, boardX, boardY)
	s.renderPanel(dst, boardX+labelW+Width*cellW+panelGap, boardY)

	controls := "Arrows: Move  Enter: Place  1/2: CPU  R: New  ^S: Save  Q: Quit"
	dst.DrawTextCentered(dst.Height()-1, controls, core.ColorGray)
}

func (s *Session) renderBoard(dst *core.Screen, ox, oy int) {
	for x := 0; x < Width; x++ {
		dst.SetColor(ox+labelW+x*cellW+1, oy, rune('a'+x), core.ColorGray)
	}

	showHints := !s.game.IsOver() && !s.game.IsComputerTurn()
	var hints []Coordinate
	if showHints {
		hints = s.game.ValidMoves()
	}

	for y := 0; y < Height; y++ {
		row := oy + 1 + y
		dst.DrawTextColor(ox+1, row, fmt.Sprintf("%d", y+1), core.ColorGray)

		for x := 0; x < Width; x++ {
			c := C(x, y)
			cx := ox + labelW + x*cellW + 1

			switch d, ok := s.game.Board().DiskAt(c); {
			case ok:
				color := diskColor(d)
				if slices.Contains(s.highlight, c) {
					color = core.ColorYellow
				}
				if s.lastMove != nil && s.lastMove.Coordinate == c {
					color = core.ColorBrightCyan
				}
				dst.SetColor(cx, row, diskRune(d), color)
			case slices.Contains(hints, c):
				dst.SetColor(cx, row, runeHint, core.ColorGreen)
			default:
				dst.SetColor(cx, row, runeEmpty, core.ColorGray)
			}

			if c == s.cursor && !s.game.IsOver() {
				dst.SetColor(cx-1, row, '[', core.ColorBrightYellow)
				dst.SetColor(cx+1, row, ']', core.ColorBrightYellow)
			}
		}
	}
}

func (s *Session) renderPanel(dst *core.Screen, px, py int) {
	b := s.game.Board()
	for i, side := range Sides() {
		color := diskColor(side)
		marker := "  "
		if !s.game.IsOver() && s.game.Turn() == side {
			marker = "> "
		}
		line := fmt.Sprintf("%s%c %-5s %2d  %s", marker, diskRune(side), side.Title(), b.CountDisks(side), s.game.Player(side))
		dst.DrawTextColor(px, py+1+i, line, color)
	}

	status := s.game.Status()
	dst.DrawTextColor(px, py+4, status, core.ColorBrightWhite)

	if s.message != "" && s.message != status {
		dst.DrawTextColor(px, py+5, s.message, core.ColorYellow)
	}
	if s.pending != nil {
		dst.DrawTextColor(px, py+6, fmt.Sprintf("%s is thinking...", s.pending.side.Title()), core.ColorMagenta)
	}
	if s.lastMove != nil {
		dst.DrawTextColor(px, py+7, fmt.Sprintf("Last: %s %s (+%d)", s.lastMove.Disk.Title(), s.lastMove.Coordinate.Notation(), len(s.lastMove.Flipped)), core.ColorGray)
	}
	if s.paused {
		dst.DrawTextColor(px, py+8, "PAUSED - P to resume", core.ColorBrightYellow)
	}
}
