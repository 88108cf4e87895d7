package reversi

import (
	"fmt"
	"sync"
	"time"

	"github.com/vovakirdan/tui-reversi/internal/core"
	"github.com/vovakirdan/tui-reversi/internal/registry"
)

// Mode selects which sides start out computer-controlled.
type Mode string

const (
	ModeHuman Mode = "reversi"       // both sides manual
	ModeCPU   Mode = "reversi_cpu"   // human dark vs computer light
	ModeWatch Mode = "reversi_watch" // computer vs computer
)

// Settings tune every Session created afterwards.
type Settings struct {
	ComputerDelay time.Duration // Pause before a computer move
	FlipHighlight time.Duration // How long captured disks stay highlighted
	Strategy      string        // Computer strategy name, see SelectorByName
	SavePath      string        // Save target, written after every change; empty disables saving
}

// DefaultSettings mirrors the embedded reversi.yaml.
func DefaultSettings() Settings {
	return Settings{
		ComputerDelay: 2 * time.Second,
		FlipHighlight: 400 * time.Millisecond,
		Strategy:      StrategyRandom,
	}
}

// Package-level configuration consumed by new sessions
var (
	configMu       sync.Mutex
	settings       = DefaultSettings()
	nextGame       *Game
	playerOverride *[2]PlayerType
)

// Configure replaces the settings used by sessions created afterwards.
func Configure(s Settings) {
	configMu.Lock()
	defer configMu.Unlock()
	settings = s
}

// LoadNext makes the next Session.Reset start from g instead of a new game.
func LoadNext(g *Game) {
	configMu.Lock()
	defer configMu.Unlock()
	nextGame = g
}

// SetPlayers overrides the mode's player types for the next Session.Reset.
func SetPlayers(dark, light PlayerType) {
	configMu.Lock()
	defer configMu.Unlock()
	playerOverride = &[2]PlayerType{dark, light}
}

func takeConfig() (Settings, *Game, *[2]PlayerType) {
	configMu.Lock()
	defer configMu.Unlock()
	g, players := nextGame, playerOverride
	nextGame, playerOverride = nil, nil
	return settings, g, players
}

func init() {
	registry.Register(string(ModeHuman), func() registry.Game {
		return NewSession(ModeHuman)
	})
	registry.Register(string(ModeCPU), func() registry.Game {
		return NewSession(ModeCPU)
	})
	registry.Register(string(ModeWatch), func() registry.Game {
		return NewSession(ModeWatch)
	})
}

// pendingMove is a computer move waiting for its delay to pass.
type pendingMove struct {
	side      Disk
	fireAt    uint64
	canceller *Canceller
}

// Session drives a Game from platform input: cursor, placement, computer
// turns after a delay, and status messages. It implements registry.Game.
type Session struct {
	mode     Mode
	settings Settings
	game     *Game
	selector MoveSelector
	tickRate int
	tick     uint64

	cursor  Coordinate
	pending *pendingMove

	highlight      []Coordinate
	highlightUntil uint64
	lastMove       *Move

	message string
	paused  bool

	result      *Result
	resultTaken bool

	screenW int
	screenH int
}

// NewSession creates a session for the given mode.
func NewSession(mode Mode) *Session {
	s := &Session{mode: mode}
	s.game = NewGameWithPlayers(s.modePlayers())
	return s
}

// ID returns the game identifier.
func (s *Session) ID() string {
	return string(s.mode)
}

// Title returns the display name.
func (s *Session) Title() string {
	switch s.mode {
	case ModeCPU:
		return "Reversi (vs Computer)"
	case ModeWatch:
		return "Reversi (Computer vs Computer)"
	default:
		return "Reversi"
	}
}

func (s *Session) modePlayers() (PlayerType, PlayerType) {
	switch s.mode {
	case ModeCPU:
		return Manual, Computer
	case ModeWatch:
		return Computer, Computer
	default:
		return Manual, Manual
	}
}

// Reset starts a new game, or the one queued with LoadNext.
func (s *Session) Reset(cfg core.RuntimeConfig) {
	st, loaded, players := takeConfig()

	s.cancelPending()
	s.settings = st
	s.tickRate = cfg.TickRate
	if s.tickRate <= 0 {
		s.tickRate = core.DefaultConfig().TickRate
	}
	s.screenW = cfg.ScreenW
	s.screenH = cfg.ScreenH
	s.tick = 0

	selector, err := SelectorByName(st.Strategy, cfg.Seed)
	if err != nil {
		selector = NewRandomSelector(cfg.Seed)
	}
	s.selector = selector

	wasOver := loaded != nil && loaded.IsOver()
	if loaded != nil {
		s.game = loaded
	} else {
		dark, light := s.modePlayers()
		if s.game != nil {
			// Restarts keep whatever the players toggled during the last game.
			dark, light = s.game.Player(Dark), s.game.Player(Light)
		}
		s.game = NewGameWithPlayers(dark, light)
	}
	if players != nil {
		s.game.SetPlayer(Dark, players[Dark])
		s.game.SetPlayer(Light, players[Light])
	}

	s.cursor = C(Width/2-1, Height/2-1)
	s.highlight = nil
	s.lastMove = nil
	s.message = ""
	s.paused = false
	s.result = nil
	s.resultTaken = false

	switch s.game.Settle() {
	case TurnPassed:
		s.message = fmt.Sprintf("%s passes", s.game.Turn().Flipped().Title())
	case TurnGameOver:
		s.finish()
		s.resultTaken = wasOver
	}
}

// Step advances the session by one tick.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	s.tick++

	if in.Has(core.ActionRestart) {
		s.restart()
		return core.StepResult{State: s.State()}
	}

	if in.Has(core.ActionPause) && !s.game.IsOver() {
		s.paused = !s.paused
	}
	if s.paused {
		return core.StepResult{State: s.State()}
	}

	if in.Has(core.ActionSave) {
		s.save()
	}
	if in.Has(core.ActionToggleDark) {
		s.TogglePlayer(Dark)
	}
	if in.Has(core.ActionToggleLight) {
		s.TogglePlayer(Light)
	}

	s.moveCursor(in)

	if in.Has(core.ActionConfirm) && !s.game.IsOver() && !s.game.IsComputerTurn() {
		s.placeAt(s.cursor)
	}

	s.stepComputer()

	if s.highlight != nil && s.tick >= s.highlightUntil {
		s.highlight = nil
	}

	return core.StepResult{State: s.State()}
}

func (s *Session) moveCursor(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		s.cursor.Y--
	case in.Has(core.ActionDown):
		s.cursor.Y++
	case in.Has(core.ActionLeft):
		s.cursor.X--
	case in.Has(core.ActionRight):
		s.cursor.X++
	}
	s.cursor.X = core.Clamp(s.cursor.X, 0, Width-1)
	s.cursor.Y = core.Clamp(s.cursor.Y, 0, Height-1)
}

// stepComputer arms a delayed move when the computer is to play and fires it
// once the delay has elapsed.
func (s *Session) stepComputer() {
	if !s.game.IsComputerTurn() {
		s.cancelPending()
		return
	}

	side := s.game.Turn()
	if s.pending == nil || s.pending.side != side || s.pending.canceller.IsCancelled() {
		s.pending = &pendingMove{
			side:      side,
			fireAt:    s.tick + s.delayTicks(),
			canceller: NewCanceller(nil),
		}
	}
	if s.tick < s.pending.fireAt {
		return
	}

	s.pending = nil
	if c, ok := s.selector.SelectMove(s.game.Board(), side); ok {
		s.placeAt(c)
	}
}

func (s *Session) delayTicks() uint64 {
	ticks := s.settings.ComputerDelay * time.Duration(s.tickRate) / time.Second
	if ticks < 0 {
		return 0
	}
	return uint64(ticks)
}

func (s *Session) cancelPending() {
	if s.pending != nil {
		s.pending.canceller.Cancel()
		s.pending = nil
	}
}

func (s *Session) placeAt(c Coordinate) {
	move, err := s.game.Place(c)
	if err != nil {
		s.message = fmt.Sprintf("Cannot place at %s", c.Notation())
		return
	}

	s.lastMove = &move
	s.highlight = move.Flipped
	s.highlightUntil = s.tick + uint64(s.settings.FlipHighlight*time.Duration(s.tickRate)/time.Second)
	s.message = ""

	switch move.Result {
	case TurnPassed:
		s.message = fmt.Sprintf("%s passes", move.Disk.Flipped().Title())
	case TurnGameOver:
		s.finish()
	}
	s.autosave()
}

func (s *Session) finish() {
	s.cancelPending()
	r := ResultOf(s.game)
	s.result = &r
	s.message = s.game.Status()
}

func (s *Session) restart() {
	s.cancelPending()
	s.game.Reset()
	s.cursor = C(Width/2-1, Height/2-1)
	s.highlight = nil
	s.lastMove = nil
	s.message = "New game"
	s.paused = false
	s.result = nil
	s.resultTaken = false
	s.autosave()
}

func (s *Session) save() {
	if s.settings.SavePath == "" {
		s.message = "No save path configured"
		return
	}
	if err := SaveFile(s.settings.SavePath, s.game); err != nil {
		s.message = fmt.Sprintf("Save failed: %v", err)
		return
	}
	s.message = "Saved"
}

// autosave writes the game to SavePath after a change. Only failures touch
// the status line.
func (s *Session) autosave() {
	if s.settings.SavePath == "" {
		return
	}
	if err := SaveFile(s.settings.SavePath, s.game); err != nil {
		s.message = fmt.Sprintf("Save failed: %v", err)
	}
}

// TogglePlayer switches side between manual and computer. Switching away from
// computer cancels that side's pending move.
func (s *Session) TogglePlayer(side Disk) {
	p := s.game.Player(side).Toggled()
	s.game.SetPlayer(side, p)
	if s.pending != nil && s.pending.side == side && p == Manual {
		s.cancelPending()
	}
	s.autosave()
}

// TakeResult returns the result of a finished game exactly once.
func (s *Session) TakeResult() (Result, bool) {
	if s.result == nil || s.resultTaken {
		return Result{}, false
	}
	s.resultTaken = true
	return *s.result, true
}

// Strategy returns the configured computer strategy name.
func (s *Session) Strategy() string {
	if s.settings.Strategy == "" {
		return StrategyRandom
	}
	return s.settings.Strategy
}

// Game returns the underlying game.
func (s *Session) Game() *Game {
	return s.game
}

// State returns the current game state.
func (s *Session) State() core.GameState {
	status := s.game.Status()
	if s.message != "" {
		status = s.message
	}
	return core.GameState{
		GameOver: s.game.IsOver(),
		Paused:   s.paused,
		Status:   status,
	}
}
