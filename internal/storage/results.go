package storage

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
	"github.com/vovakirdan/tui-reversi/internal/multiplayer"
)

// Result sources.
const (
	SourceTUI  = "tui"
	SourceAuto = "auto"
	SourceAPI  = "api"
	SourceREPL = "repl"
)

// ResultEntry represents a finished game.
type ResultEntry struct {
	ID          int64
	Source      string
	DarkPlayer  string
	LightPlayer string
	DarkCount   int
	LightCount  int
	Winner      string // "dark", "light" or "tie"
	Strategy    string // Computer strategy, empty when no side was computer
	CreatedAt   time.Time
}

// NewResultEntry converts an engine result for storage.
func NewResultEntry(source, strategy string, r reversi.Result) ResultEntry {
	if r.DarkPlayer != reversi.Computer && r.LightPlayer != reversi.Computer {
		strategy = ""
	}
	return ResultEntry{
		Source:      source,
		DarkPlayer:  r.DarkPlayer.String(),
		LightPlayer: r.LightPlayer.String(),
		DarkCount:   r.DarkCount,
		LightCount:  r.LightCount,
		Winner:      r.WinnerName(),
		Strategy:    strategy,
	}
}

// SaveResult records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r ResultEntry) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO results
		 (source, dark_player, light_player, dark_count, light_count, winner, strategy)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Source, r.DarkPlayer, r.LightPlayer, r.DarkCount, r.LightCount, r.Winner, r.Strategy,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentResults retrieves the most recent results, newest first.
func (s *Store) RecentResults(limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, source, dark_player, light_player, dark_count, light_count, winner, strategy, created_at
		 FROM results
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var e ResultEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Source, &e.DarkPlayer, &e.LightPlayer,
			&e.DarkCount, &e.LightCount, &e.Winner, &e.Strategy, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ResultStats aggregates results for one source and strategy.
type ResultStats struct {
	Source     string
	Strategy   string
	Games      int
	DarkWins   int
	LightWins  int
	Ties       int
	AvgDark    float64
	AvgLight   float64
	LastPlayed time.Time
}

// Stats aggregates all results grouped by source and strategy.
func (s *Store) Stats() ([]ResultStats, error) {
	rows, err := s.db.Query(
		`SELECT source, strategy, COUNT(*),
		        SUM(CASE WHEN winner = 'dark' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN winner = 'light' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN winner = 'tie' THEN 1 ELSE 0 END),
		        AVG(dark_count), AVG(light_count), MAX(created_at)
		 FROM results
		 GROUP BY source, strategy
		 ORDER BY source, strategy`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get result stats: %w", err)
	}
	defer rows.Close()

	var stats []ResultStats
	for rows.Next() {
		var st ResultStats
		var lastPlayed any
		if err := rows.Scan(&st.Source, &st.Strategy, &st.Games, &st.DarkWins, &st.LightWins,
			&st.Ties, &st.AvgDark, &st.AvgLight, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// SaveMatchResult implements multiplayer.ResultSaver.
func (s *Store) SaveMatchResult(data multiplayer.MatchResultData) error {
	_, err := s.SaveResult(NewResultEntry(SourceAPI, data.Strategy, data.Result))
	return err
}

// Ensure Store implements ResultSaver
var _ multiplayer.ResultSaver = (*Store)(nil)
