package reversi

// Snapshot captures the session state for tests and debugging.
type Snapshot struct {
	Tick        uint64
	Turn        Disk
	Over        bool
	DarkCount   int
	LightCount  int
	Cursor      Coordinate
	Pending     bool
	PendingSide Disk
	Paused      bool
	Message     string
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:       s.tick,
		Turn:       s.game.Turn(),
		Over:       s.game.IsOver(),
		DarkCount:  s.game.Board().CountDisks(Dark),
		LightCount: s.game.Board().CountDisks(Light),
		Cursor:     s.cursor,
		Paused:     s.paused,
		Message:    s.message,
	}
	if s.pending != nil {
		snap.Pending = true
		snap.PendingSide = s.pending.side
	}
	return snap
}
