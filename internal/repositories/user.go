package repositories

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/jkantola/smalltalk/internal/db"
	"github.com/jkantola/smalltalk/internal/errors"
	"github.com/jkantola/smalltalk/internal/models"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUsernameTaken is returned by Register when the username exists.
	ErrUsernameTaken = errors.NewSentinel("username already taken")
	// ErrInvalidCredentials is returned by Authenticate for an unknown
	// username or a wrong password, indistinguishably.
	ErrInvalidCredentials = errors.NewSentinel("invalid username or password")
)

// UserRepository stores trainee accounts. Passwords are stored as bcrypt
// hashes, never as plaintext.
type UserRepository struct {
	dbs    *db.Database
	logger *slog.Logger
}

func NewUserRepository(dbs *db.Database, logger *slog.Logger) *UserRepository {
	return &UserRepository{
		dbs:    dbs,
		logger: logger.With("source", "UserRepository"),
	}
}

// Register creates an account and returns its ID.
func (r *UserRepository) Register(ctx context.Context, username, password string) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, errors.Wrap(err, "hash password")
	}

	stmt := `INSERT INTO users (username, password_hash) VALUES (?, ?)`
	result, err := r.dbs.ReadWrite.ExecContext(ctx, stmt, username, hash)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return 0, errors.Wrap(ErrUsernameTaken, "insert user", slog.String("username", username))
		}
		return 0, errors.Wrap(err, "insert user")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "read user ID")
	}
	return id, nil
}

// Authenticate checks the credentials and returns the user ID on success.
func (r *UserRepository) Authenticate(ctx context.Context, username, password string) (int64, error) {
	var user models.User
	stmt := `SELECT id, username, password_hash, created FROM users WHERE username = ?`
	if err := r.dbs.ReadOnly.GetContext(ctx, &user, stmt, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, errors.Wrap(ErrInvalidCredentials, "unknown username")
		}
		return 0, errors.Wrap(err, "get user")
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return 0, errors.Wrap(ErrInvalidCredentials, "password mismatch")
	}
	return user.ID, nil
}

// Get returns the user by ID.
func (r *UserRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	stmt := `SELECT id, username, password_hash, created FROM users WHERE id = ?`
	if err := r.dbs.ReadOnly.GetContext(ctx, &user, stmt, id); err != nil {
		return nil, errors.Wrap(err, "get user", slog.Int64("user_id", id))
	}
	return &user, nil
}

// Exists reports whether the user ID refers to a registered account.
func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	stmt := `SELECT EXISTS (SELECT 1 FROM users WHERE id = ?)`
	if err := r.dbs.ReadOnly.GetContext(ctx, &exists, stmt, id); err != nil {
		return false, errors.Wrap(err, "check user exists")
	}
	return exists, nil
}
