// Package multiplayer hosts Reversi matches for remote clients.
// A Coordinator owns every match, serialises moves, plays computer-controlled
// sides after a delay and wakes long-polling clients on each change.
package multiplayer

import (
	"errors"
	"time"

	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
)

// MatchID uniquely identifies a hosted match. It is a UUID string.
type MatchID string

var (
	// ErrNotFound is returned for an unknown match ID.
	ErrNotFound = errors.New("multiplayer: match not found")

	// ErrNotYourTurn is returned when a side moves out of turn.
	ErrNotYourTurn = errors.New("multiplayer: not your turn")

	// ErrComputerSide is returned when a client moves for a computer-controlled side.
	ErrComputerSide = errors.New("multiplayer: side is computer-controlled")
)

// MatchView is a consistent snapshot of a match. Game is a private copy.
type MatchView struct {
	ID        MatchID
	Version   uint64
	Game      *reversi.Game
	Thinking  bool // a computer move is scheduled
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ResultSaver persists finished matches.
// This allows the coordinator to save results without depending on the storage package.
type ResultSaver interface {
	SaveMatchResult(result MatchResultData) error
}

// MatchResultData contains match result data for persistence.
type MatchResultData struct {
	MatchID  MatchID
	Result   reversi.Result
	Strategy string
	Duration time.Duration
}
