package http

import (
	"strings"
	"time"

	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
	"github.com/vovakirdan/tui-reversi/internal/multiplayer"
)

// Request types

type CreateMatchRequest struct {
	Dark  string `json:"dark" validate:"omitempty,oneof=manual computer"`  // default: manual
	Light string `json:"light" validate:"omitempty,oneof=manual computer"` // default: manual
}

type MoveRequest struct {
	Side string `json:"side" validate:"required,oneof=dark light"`
	X    *int   `json:"x" validate:"required,min=0,max=7"`
	Y    *int   `json:"y" validate:"required,min=0,max=7"`
}

type PlayersRequest struct {
	Side   string `json:"side" validate:"required,oneof=dark light"`
	Player string `json:"player" validate:"required,oneof=manual computer"`
}

// Response types

type MatchResponse struct {
	ID         string         `json:"id"`
	Version    uint64         `json:"version"`
	Turn       string         `json:"turn,omitempty"` // "dark" or "light", empty once over
	Over       bool           `json:"over"`
	Winner     string         `json:"winner,omitempty"` // "dark", "light" or "tie"
	Status     string         `json:"status"`
	Players    PlayersInfo    `json:"players"`
	Counts     CountsInfo     `json:"counts"`
	Board      []string       `json:"board"` // 8 rows of x, o and -
	ValidMoves []CoordinateJS `json:"validMoves"`
	Thinking   bool           `json:"thinking"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

type PlayersInfo struct {
	Dark  string `json:"dark"`
	Light string `json:"light"`
}

type CountsInfo struct {
	Dark  int `json:"dark"`
	Light int `json:"light"`
}

type CoordinateJS struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Notation string `json:"notation"`
}

type MoveResponse struct {
	Match MatchResponse `json:"match"`
	Move  MoveInfo      `json:"move"`
}

type MoveInfo struct {
	Side    string         `json:"side"`
	At      CoordinateJS   `json:"at"`
	Flipped []CoordinateJS `json:"flipped"`
	Result  string         `json:"result"` // "change", "pass" or "game_over"
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// Error codes
const (
	ErrNotFound          = "NOT_FOUND"
	ErrInvalidRequest    = "INVALID_REQUEST"
	ErrIllegalPlacement  = "ILLEGAL_PLACEMENT"
	ErrGameOver          = "GAME_OVER"
	ErrNotYourTurn       = "NOT_YOUR_TURN"
	ErrComputerSide      = "COMPUTER_SIDE"
	ErrParseError        = "PARSE_ERROR"
	ErrInvalidContent    = "INVALID_CONTENT_TYPE"
	ErrRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrInternalError     = "INTERNAL_ERROR"
)

// Helper functions

func coordinateJS(c reversi.Coordinate) CoordinateJS {
	return CoordinateJS{X: c.X, Y: c.Y, Notation: c.Notation()}
}

func coordinatesJS(cs []reversi.Coordinate) []CoordinateJS {
	out := make([]CoordinateJS, 0, len(cs))
	for _, c := range cs {
		out = append(out, coordinateJS(c))
	}
	return out
}

func buildMatchResponse(v multiplayer.MatchView) MatchResponse {
	g := v.Game
	rows := strings.Split(string(reversi.Marshal(g)), "\n")

	resp := MatchResponse{
		ID:      string(v.ID),
		Version: v.Version,
		Over:    g.IsOver(),
		Status:  g.Status(),
		Players: PlayersInfo{
			Dark:  g.Player(reversi.Dark).String(),
			Light: g.Player(reversi.Light).String(),
		},
		Counts: CountsInfo{
			Dark:  g.Board().CountDisks(reversi.Dark),
			Light: g.Board().CountDisks(reversi.Light),
		},
		Board:      rows[1 : 1+reversi.Height],
		ValidMoves: coordinatesJS(g.ValidMoves()),
		Thinking:   v.Thinking,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
	if g.IsOver() {
		resp.Winner = reversi.ResultOf(g).WinnerName()
	} else {
		resp.Turn = g.Turn().String()
	}
	return resp
}

func buildMoveInfo(m reversi.Move) MoveInfo {
	return MoveInfo{
		Side:    m.Disk.String(),
		At:      coordinateJS(m.Coordinate),
		Flipped: coordinatesJS(m.Flipped),
		Result:  m.Result.String(),
	}
}
