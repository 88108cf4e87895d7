package multiplayer

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
)

// DefaultWaitTimeout bounds a single long-poll.
const DefaultWaitTimeout = 25 * time.Second

// CoordinatorConfig configures a Coordinator.
type CoordinatorConfig struct {
	ComputerDelay time.Duration // Pause before a computer side moves
	Strategy      string        // Computer strategy, see reversi.SelectorByName
	WaitTimeout   time.Duration // Upper bound for Wait; 0 means DefaultWaitTimeout
	Seed          int64         // Seed for random selectors; 0 uses the clock
}

// DefaultCoordinatorConfig returns the default coordinator configuration.
func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		ComputerDelay: 2 * time.Second,
		Strategy:      reversi.StrategyRandom,
		WaitTimeout:   DefaultWaitTimeout,
	}
}

// Coordinator manages hosted matches. It is safe for concurrent use.
type Coordinator struct {
	config      CoordinatorConfig
	logger      *log.Logger
	resultSaver ResultSaver // Optional, can be nil

	mu      sync.Mutex
	matches map[MatchID]*hostedMatch
	seq     int64
}

// NewCoordinator creates a coordinator. A nil logger discards output.
func NewCoordinator(cfg CoordinatorConfig, logger *log.Logger) (*Coordinator, error) {
	if _, err := reversi.SelectorByName(cfg.Strategy, 0); err != nil {
		return nil, err
	}
	if cfg.WaitTimeout <= 0 {
		cfg.WaitTimeout = DefaultWaitTimeout
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Coordinator{
		config:  cfg,
		logger:  logger,
		matches: make(map[MatchID]*hostedMatch),
	}, nil
}

// SetResultSaver sets the optional match result saver.
func (c *Coordinator) SetResultSaver(saver ResultSaver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resultSaver = saver
}

// Create starts a new match in the opening position.
func (c *Coordinator) Create(dark, light reversi.PlayerType) (MatchView, error) {
	return c.Import(reversi.NewGameWithPlayers(dark, light))
}

// Import hosts an existing game, e.g. one decoded from the save format.
// A side to move without legal moves is passed immediately.
func (c *Coordinator) Import(g *reversi.Game) (MatchView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	selector, err := reversi.SelectorByName(c.config.Strategy, c.config.Seed+c.seq)
	if err != nil {
		return MatchView{}, err
	}

	g = g.Clone()
	finished := g.IsOver()
	g.Settle()

	m := newHostedMatch(MatchID(uuid.NewString()), g, selector)
	m.reported = finished
	c.matches[m.id] = m
	c.logger.Info("match created", "id", m.id, "dark", g.Player(reversi.Dark), "light", g.Player(reversi.Light))

	c.afterChange(m)
	return m.view(), nil
}

// Get returns a snapshot of the match.
func (c *Coordinator) Get(id MatchID) (MatchView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.matches[id]
	if !ok {
		return MatchView{}, ErrNotFound
	}
	return m.view(), nil
}

// Export encodes the match in the plain-text save format.
func (c *Coordinator) Export(id MatchID) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.matches[id]
	if !ok {
		return nil, ErrNotFound
	}
	return reversi.Marshal(m.game), nil
}

// Place plays a manual move for side.
func (c *Coordinator) Place(id MatchID, side reversi.Disk, at reversi.Coordinate) (MatchView, reversi.Move, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.matches[id]
	if !ok {
		return MatchView{}, reversi.Move{}, ErrNotFound
	}
	if m.game.IsOver() {
		return m.view(), reversi.Move{}, reversi.ErrGameOver
	}
	if m.game.Turn() != side {
		return m.view(), reversi.Move{}, ErrNotYourTurn
	}
	if m.game.Player(side) == reversi.Computer {
		return m.view(), reversi.Move{}, ErrComputerSide
	}

	move, err := m.game.Place(at)
	if err != nil {
		return m.view(), reversi.Move{}, err
	}
	c.logger.Debug("move placed", "id", id, "side", side, "at", at.Notation(), "flipped", len(move.Flipped))

	m.bump()
	c.afterChange(m)
	return m.view(), move, nil
}

// SetPlayer changes who controls side. Handing a side back to a person
// cancels its scheduled computer move.
func (c *Coordinator) SetPlayer(id MatchID, side reversi.Disk, p reversi.PlayerType) (MatchView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.matches[id]
	if !ok {
		return MatchView{}, ErrNotFound
	}
	if m.game.Player(side) == p {
		return m.view(), nil
	}

	m.game.SetPlayer(side, p)
	if p == reversi.Manual {
		m.cancelPending(side)
	}
	c.logger.Info("player changed", "id", id, "side", side, "player", p)

	m.bump()
	c.afterChange(m)
	return m.view(), nil
}

// Delete removes the match and cancels its scheduled moves.
// Clients blocked in Wait are released.
func (c *Coordinator) Delete(id MatchID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.matches[id]
	if !ok {
		return ErrNotFound
	}
	m.cancelAll()
	close(m.changed)
	delete(c.matches, id)
	c.logger.Info("match deleted", "id", id)
	return nil
}

// Wait blocks until the match version exceeds version, the context ends or
// the wait timeout elapses, then returns the current snapshot.
// A match deleted while waiting yields ErrNotFound.
func (c *Coordinator) Wait(ctx context.Context, id MatchID, version uint64) (MatchView, error) {
	timer := time.NewTimer(c.config.WaitTimeout)
	defer timer.Stop()

	for {
		c.mu.Lock()
		m, ok := c.matches[id]
		if !ok {
			c.mu.Unlock()
			return MatchView{}, ErrNotFound
		}
		if m.version > version {
			v := m.view()
			c.mu.Unlock()
			return v, nil
		}
		changed := m.changed
		c.mu.Unlock()

		select {
		case <-changed:
		case <-timer.C:
			return c.Get(id)
		case <-ctx.Done():
			return MatchView{}, ctx.Err()
		}
	}
}

// Count returns the number of hosted matches.
func (c *Coordinator) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.matches)
}

// Close cancels every scheduled computer move.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.matches {
		m.cancelAll()
	}
}

// afterChange reports finished matches and schedules computer turns.
// Must be called with c.mu held.
func (c *Coordinator) afterChange(m *hostedMatch) {
	if m.game.IsOver() {
		m.cancelAll()
		c.reportResult(m)
		return
	}
	c.scheduleComputer(m)
}

// scheduleComputer arms a delayed move when a computer side is to move.
// Must be called with c.mu held.
func (c *Coordinator) scheduleComputer(m *hostedMatch) {
	side := m.game.Turn()
	if !m.game.IsComputerTurnFor(side) || m.pending[side] != nil {
		return
	}

	var timer *time.Timer
	canceller := reversi.NewCanceller(func() {
		if timer != nil {
			timer.Stop()
		}
	})
	m.pending[side] = canceller
	timer = time.AfterFunc(c.config.ComputerDelay, func() {
		c.playComputer(m.id, side, canceller)
	})
}

func (c *Coordinator) playComputer(id MatchID, side reversi.Disk, canceller *reversi.Canceller) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if canceller.IsCancelled() {
		return
	}
	m, ok := c.matches[id]
	if !ok || m.pending[side] != canceller {
		return
	}
	m.pending[side] = nil

	if !m.game.IsComputerTurnFor(side) {
		return
	}
	at, ok := m.selector.SelectMove(m.game.Board(), side)
	if !ok {
		return
	}
	move, err := m.game.Place(at)
	if err != nil {
		c.logger.Error("computer move rejected", "id", id, "side", side, "at", at.Notation(), "err", err)
		return
	}
	c.logger.Debug("computer moved", "id", id, "side", side, "at", at.Notation(), "flipped", len(move.Flipped))

	m.bump()
	c.afterChange(m)
}

// reportResult hands a finished match to the result saver once.
// Must be called with c.mu held.
func (c *Coordinator) reportResult(m *hostedMatch) {
	if m.reported {
		return
	}
	m.reported = true

	result := reversi.ResultOf(m.game)
	c.logger.Info("match finished", "id", m.id, "winner", result.WinnerName(),
		"dark", result.DarkCount, "light", result.LightCount)

	if c.resultSaver == nil {
		return
	}
	data := MatchResultData{
		MatchID:  m.id,
		Result:   result,
		Strategy: c.config.Strategy,
		Duration: time.Since(m.createdAt),
	}
	saver, logger := c.resultSaver, c.logger
	// Best effort save, don't block on error
	go func() {
		if err := saver.SaveMatchResult(data); err != nil {
			logger.Error("failed to save match result", "id", data.MatchID, "err", err)
		}
	}()
}
