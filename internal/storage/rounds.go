package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// Round is a stored round outcome.
type Round struct {
	ID          int64
	GameID      string
	Mode        string
	Difficulty  string // Empty for solo rounds
	HumanLines  int
	CPULines    int
	HumanHealth int
	CPUHealth   int
	Winner      string // Empty for solo rounds
	Ticks       int
	CreatedAt   time.Time
}

// SaveRound implements tetris.RoundRecorder.
func (s *Store) SaveRound(r tetris.RoundResult) error {
	_, err := s.db.Exec(
		`INSERT INTO rounds
		 (game_id, mode, difficulty, human_lines, cpu_lines, human_health, cpu_health, winner, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID,
		r.Mode,
		nullString(r.Difficulty),
		r.HumanLines,
		r.CPULines,
		r.HumanHealth,
		r.CPUHealth,
		nullString(string(r.Winner)),
		r.Ticks,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save round: %w", err)
	}
	return nil
}

// Ensure Store implements RoundRecorder
var _ tetris.RoundRecorder = (*Store)(nil)

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// RecentRounds retrieves the most recent rounds, newest first. An empty
// gameID returns rounds of every game.
func (s *Store) RecentRounds(gameID string, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, mode, difficulty, human_lines, cpu_lines,
		        human_health, cpu_health, winner, ticks, created_at
		 FROM rounds
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		var r Round
		var difficulty, winner sql.NullString
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.GameID,
			&r.Mode,
			&difficulty,
			&r.HumanLines,
			&r.CPULines,
			&r.HumanHealth,
			&r.CPUHealth,
			&winner,
			&r.Ticks,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan round: %w", err)
		}
		r.Difficulty = difficulty.String
		r.Winner = winner.String
		r.CreatedAt = parseTime(createdAt)
		rounds = append(rounds, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return rounds, nil
}

// RoundStats summarises vs rounds for one game.
type RoundStats struct {
	GameID string
	Rounds int
	Wins   int
	Losses int
	Draws  int
}

// GetRoundStats counts wins, losses and draws of the human player.
func (s *Store) GetRoundStats(gameID string) (*RoundStats, error) {
	stats := &RoundStats{GameID: gameID}
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(winner = ?), 0),
		        COALESCE(SUM(winner = ?), 0),
		        COALESCE(SUM(winner = ?), 0)
		 FROM rounds WHERE game_id = ?`,
		string(tetris.WinnerHuman),
		string(tetris.WinnerComputer),
		string(tetris.WinnerDraw),
		gameID,
	).Scan(&stats.Rounds, &stats.Wins, &stats.Losses, &stats.Draws)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get round stats: %w", err)
	}
	return stats, nil
}
