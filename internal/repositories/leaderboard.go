package repositories

import (
	"context"
	"log/slog"
	"time"

	"github.com/jkantola/smalltalk/internal/db"
	"github.com/jkantola/smalltalk/internal/errors"
	"github.com/jkantola/smalltalk/internal/models"
)

// LeaderboardRepository stores scored sessions. Entries are append-only and
// always read back sorted descending by score.
type LeaderboardRepository struct {
	dbs    *db.Database
	logger *slog.Logger
}

func NewLeaderboardRepository(dbs *db.Database, logger *slog.Logger) *LeaderboardRepository {
	return &LeaderboardRepository{
		dbs:    dbs,
		logger: logger.With("source", "LeaderboardRepository"),
	}
}

// Add appends a new entry. A zero Date is filled with the current time.
func (r *LeaderboardRepository) Add(ctx context.Context, entry models.LeaderboardEntry) error {
	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}
	stmt := `INSERT INTO leaderboard (name, score, persona_name, date) VALUES (?, ?, ?, ?)`
	if _, err := r.dbs.ReadWrite.ExecContext(ctx, stmt,
		entry.Name, entry.Score, entry.PersonaName, entry.Date,
	); err != nil {
		return errors.Wrap(err, "insert leaderboard entry", slog.String("name", entry.Name))
	}
	return nil
}

// List returns up to limit entries sorted descending by score, oldest first
// within a tied score.
func (r *LeaderboardRepository) List(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	stmt := `SELECT id, name, score, persona_name, date FROM leaderboard ORDER BY score DESC, date ASC LIMIT ?`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &entries, stmt, limit); err != nil {
		return nil, errors.Wrap(err, "select leaderboard")
	}
	return entries, nil
}
