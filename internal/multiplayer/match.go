package multiplayer

import (
	"time"

	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
)

// hostedMatch is the coordinator's record of one match.
// All fields are guarded by Coordinator.mu.
type hostedMatch struct {
	id       MatchID
	game     *reversi.Game
	selector reversi.MoveSelector
	version  uint64

	// pending holds the scheduled computer move per side.
	pending [2]*reversi.Canceller

	// changed is closed and replaced whenever version is bumped.
	changed chan struct{}

	createdAt time.Time
	updatedAt time.Time
	reported  bool
}

func newHostedMatch(id MatchID, g *reversi.Game, sel reversi.MoveSelector) *hostedMatch {
	now := time.Now()
	return &hostedMatch{
		id:        id,
		game:      g,
		selector:  sel,
		changed:   make(chan struct{}),
		createdAt: now,
		updatedAt: now,
	}
}

// bump records a state change and wakes waiters.
func (m *hostedMatch) bump() {
	m.version++
	m.updatedAt = time.Now()
	close(m.changed)
	m.changed = make(chan struct{})
}

func (m *hostedMatch) cancelPending(side reversi.Disk) {
	if c := m.pending[side]; c != nil {
		c.Cancel()
		m.pending[side] = nil
	}
}

func (m *hostedMatch) cancelAll() {
	for _, side := range reversi.Sides() {
		m.cancelPending(side)
	}
}

func (m *hostedMatch) thinking() bool {
	return m.pending[reversi.Dark] != nil || m.pending[reversi.Light] != nil
}

func (m *hostedMatch) view() MatchView {
	return MatchView{
		ID:        m.id,
		Version:   m.version,
		Game:      m.game.Clone(),
		Thinking:  m.thinking(),
		CreatedAt: m.createdAt,
		UpdatedAt: m.updatedAt,
	}
}
