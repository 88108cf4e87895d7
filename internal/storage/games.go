package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
)

// SavedGame is a stored game in the plain-text save format.
type SavedGame struct {
	ID        string
	Name      string
	State     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaveGame stores g under a new UUID.
func (s *Store) SaveGame(name string, g *reversi.Game) (SavedGame, error) {
	if name == "" {
		name = "untitled"
	}
	saved := SavedGame{
		ID:    uuid.NewString(),
		Name:  name,
		State: string(reversi.Marshal(g)),
	}

	_, err := s.db.Exec(
		"INSERT INTO saved_games (id, name, state) VALUES (?, ?, ?)",
		saved.ID, saved.Name, saved.State,
	)
	if err != nil {
		return SavedGame{}, fmt.Errorf("storage: cannot save game: %w", err)
	}

	return s.savedGame(saved.ID)
}

// UpdateGame replaces the state of an existing saved game.
func (s *Store) UpdateGame(id string, g *reversi.Game) error {
	res, err := s.db.Exec(
		"UPDATE saved_games SET state = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		string(reversi.Marshal(g)), id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update game: %w", err)
	}
	return expectOneRow(res)
}

// LoadGame decodes a saved game. A corrupted state column is reported with
// an error matching reversi.ErrParse.
func (s *Store) LoadGame(id string) (*reversi.Game, SavedGame, error) {
	saved, err := s.savedGame(id)
	if err != nil {
		return nil, SavedGame{}, err
	}

	g, err := reversi.Unmarshal([]byte(saved.State))
	if err != nil {
		return nil, saved, fmt.Errorf("storage: saved game %s: %w", id, err)
	}
	return g, saved, nil
}

// ListGames returns the most recently updated saved games.
func (s *Store) ListGames(limit int) ([]SavedGame, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, name, state, created_at, updated_at
		 FROM saved_games
		 ORDER BY updated_at DESC, created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saved games: %w", err)
	}
	defer rows.Close()

	var games []SavedGame
	for rows.Next() {
		var g SavedGame
		var createdAt, updatedAt any
		if err := rows.Scan(&g.ID, &g.Name, &g.State, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		g.CreatedAt = parseTime(createdAt)
		g.UpdatedAt = parseTime(updatedAt)
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return games, nil
}

// DeleteGame removes a saved game.
func (s *Store) DeleteGame(id string) error {
	res, err := s.db.Exec("DELETE FROM saved_games WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete game: %w", err)
	}
	return expectOneRow(res)
}

func (s *Store) savedGame(id string) (SavedGame, error) {
	var g SavedGame
	var createdAt, updatedAt any

	err := s.db.QueryRow(
		`SELECT id, name, state, created_at, updated_at
		 FROM saved_games
		 WHERE id = ?`,
		id,
	).Scan(&g.ID, &g.Name, &g.State, &createdAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return SavedGame{}, fmt.Errorf("%w: saved game %s", ErrNotFound, id)
	}
	if err != nil {
		return SavedGame{}, fmt.Errorf("storage: cannot query saved game: %w", err)
	}

	g.CreatedAt = parseTime(createdAt)
	g.UpdatedAt = parseTime(updatedAt)
	return g, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
