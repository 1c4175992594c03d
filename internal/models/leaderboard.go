package models

import "time"

// LeaderboardEntry is an append-only scored session record.
type LeaderboardEntry struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Score       int       `db:"score"`
	PersonaName string    `db:"persona_name"`
	Date        time.Time `db:"date"`
}
