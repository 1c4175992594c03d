package repositories

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/jkantola/smalltalk/internal/db"
	"github.com/jkantola/smalltalk/internal/errors"
)

// ErrInvalidTarget marks an empty attack-target description in an import file.
var ErrInvalidTarget = errors.NewSentinel("attack target requires a description")

// AttackTargetRepository stores the resist-mode target pool: the built-in
// secrets plus per-user imports.
type AttackTargetRepository struct {
	dbs    *db.Database
	logger *slog.Logger
}

func NewAttackTargetRepository(dbs *db.Database, logger *slog.Logger) *AttackTargetRepository {
	return &AttackTargetRepository{
		dbs:    dbs,
		logger: logger.With("source", "AttackTargetRepository"),
	}
}

// List returns the target descriptions visible to the given user.
func (r *AttackTargetRepository) List(ctx context.Context, userID int64) ([]string, error) {
	var targets []string
	stmt := `SELECT description FROM attack_targets WHERE user_id IS NULL OR user_id = ? ORDER BY id`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &targets, stmt, userID); err != nil {
		return nil, errors.Wrap(err, "select attack targets")
	}
	return targets, nil
}

// CreateBatch stores imported targets in one transaction so a malformed
// import never applies partially.
func (r *AttackTargetRepository) CreateBatch(ctx context.Context, userID int64, descriptions []string) error {
	tx, err := r.dbs.ReadWrite.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			r.logger.LogAttrs(ctx, slog.LevelError, "rollback target batch", errors.SlogError(rollbackErr))
		}
	}()

	stmt := `INSERT INTO attack_targets (user_id, description) VALUES (?, ?)`
	for _, description := range descriptions {
		if strings.TrimSpace(description) == "" {
			return errors.Wrap(ErrInvalidTarget, "validate attack target")
		}
		if _, err = tx.ExecContext(ctx, stmt, userID, description); err != nil {
			return errors.Wrap(err, "insert attack target")
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit target batch")
	}
	return nil
}

// EnsureSeed inserts the built-in target pool, skipping descriptions that
// already exist. Safe to call on every startup.
func (r *AttackTargetRepository) EnsureSeed(ctx context.Context, descriptions []string) error {
	stmt := `INSERT INTO attack_targets (user_id, description) VALUES (NULL, ?)
	ON CONFLICT (description) WHERE user_id IS NULL DO NOTHING`
	for _, description := range descriptions {
		if _, err := r.dbs.ReadWrite.ExecContext(ctx, stmt, description); err != nil {
			return errors.Wrap(err, "seed attack target")
		}
	}
	return nil
}
