package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jkantola/smalltalk/internal/db"
	"github.com/jkantola/smalltalk/internal/errors"
	"github.com/jkantola/smalltalk/internal/models"
	"github.com/jmoiron/sqlx"
)

// ErrInvalidPersona marks a persona record that is missing the required name
// or role fields, e.g. in a malformed import file.
var ErrInvalidPersona = errors.NewSentinel("persona requires name and role")

// PersonaRepository stores the persona registry: the built-in roster plus
// per-user custom personas.
type PersonaRepository struct {
	dbs    *db.Database
	logger *slog.Logger
}

func NewPersonaRepository(dbs *db.Database, logger *slog.Logger) *PersonaRepository {
	return &PersonaRepository{
		dbs:    dbs,
		logger: logger.With("source", "PersonaRepository"),
	}
}

type personaRow struct {
	ID                   string        `db:"id"`
	UserID               sql.NullInt64 `db:"user_id"`
	Name                 string        `db:"name"`
	Role                 string        `db:"role"`
	VoiceName            string        `db:"voice_name"`
	Psychology           string        `db:"psychology"`
	Strengths            string        `db:"strengths"`
	Weaknesses           string        `db:"weaknesses"`
	TargetInfo           string        `db:"target_info"`
	ConversationStarters string        `db:"conversation_starters"`
}

func (row personaRow) toModel() (models.Persona, error) {
	persona := models.Persona{
		ID:         row.ID,
		Name:       row.Name,
		Role:       row.Role,
		VoiceName:  row.VoiceName,
		Psychology: row.Psychology,
		Strengths:  row.Strengths,
		Weaknesses: row.Weaknesses,
	}
	if err := json.Unmarshal([]byte(row.TargetInfo), &persona.TargetInfo); err != nil {
		return persona, errors.Wrap(err, "unmarshal target info", slog.String("persona_id", row.ID))
	}
	if err := json.Unmarshal([]byte(row.ConversationStarters), &persona.ConversationStarters); err != nil {
		return persona, errors.Wrap(err, "unmarshal conversation starters", slog.String("persona_id", row.ID))
	}
	return persona, nil
}

const personaColumns = `id, user_id, name, role, voice_name, psychology, strengths, weaknesses,
	target_info, conversation_starters`

// List returns the personas visible to the given user: the built-in roster
// plus the user's own submissions, in insertion order.
func (r *PersonaRepository) List(ctx context.Context, userID int64) ([]models.Persona, error) {
	var rows []personaRow
	stmt := `SELECT ` + personaColumns + ` FROM personas WHERE user_id IS NULL OR user_id = ? ORDER BY rowid`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &rows, stmt, userID); err != nil {
		return nil, errors.Wrap(err, "select personas")
	}

	personas := make([]models.Persona, 0, len(rows))
	for _, row := range rows {
		persona, err := row.toModel()
		if err != nil {
			// A corrupt row degrades to absence instead of blocking the list.
			r.logger.LogAttrs(ctx, slog.LevelWarn, "skipping unreadable persona", errors.SlogError(err))
			continue
		}
		personas = append(personas, persona)
	}
	return personas, nil
}

// Get returns a single persona if it is visible to the given user.
func (r *PersonaRepository) Get(ctx context.Context, id string, userID int64) (*models.Persona, error) {
	var row personaRow
	stmt := `SELECT ` + personaColumns + ` FROM personas WHERE id = ? AND (user_id IS NULL OR user_id = ?)`
	if err := r.dbs.ReadOnly.GetContext(ctx, &row, stmt, id, userID); err != nil {
		return nil, errors.Wrap(err, "get persona", slog.String("persona_id", id))
	}
	persona, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &persona, nil
}

// Create stores a user-submitted persona. A missing ID is assigned from the
// persona name plus a random suffix.
func (r *PersonaRepository) Create(ctx context.Context, userID int64, persona models.Persona) error {
	return r.CreateBatch(ctx, userID, []models.Persona{persona})
}

// CreateBatch stores several personas in one transaction so a malformed
// import never applies partially.
func (r *PersonaRepository) CreateBatch(ctx context.Context, userID int64, personas []models.Persona) error {
	tx, err := r.dbs.ReadWrite.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			r.logger.LogAttrs(ctx, slog.LevelError, "rollback persona batch", errors.SlogError(rollbackErr))
		}
	}()

	for _, persona := range personas {
		if strings.TrimSpace(persona.Name) == "" || strings.TrimSpace(persona.Role) == "" {
			return errors.Wrap(ErrInvalidPersona, "validate persona", slog.String("persona_id", persona.ID))
		}
		if persona.ID == "" {
			persona.ID = generatePersonaID(persona.Name)
		}
		if err = insertPersona(ctx, tx, userID, persona); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit persona batch")
	}
	return nil
}

// EnsureSeed inserts the built-in roster, skipping personas that already
// exist. Safe to call on every startup.
func (r *PersonaRepository) EnsureSeed(ctx context.Context, personas []models.Persona) error {
	stmt := `INSERT INTO personas (` + personaColumns + `)
	VALUES (?, NULL, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO NOTHING`
	for _, persona := range personas {
		targetInfo, starters, err := marshalLists(persona)
		if err != nil {
			return err
		}
		if _, err = r.dbs.ReadWrite.ExecContext(ctx, stmt,
			persona.ID, persona.Name, persona.Role, persona.VoiceName,
			persona.Psychology, persona.Strengths, persona.Weaknesses,
			targetInfo, starters,
		); err != nil {
			return errors.Wrap(err, "seed persona", slog.String("persona_id", persona.ID))
		}
	}
	return nil
}

func insertPersona(ctx context.Context, tx *sqlx.Tx, userID int64, persona models.Persona) error {
	targetInfo, starters, err := marshalLists(persona)
	if err != nil {
		return err
	}
	stmt := `INSERT INTO personas (` + personaColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err = tx.ExecContext(ctx, stmt,
		persona.ID, userID, persona.Name, persona.Role, persona.VoiceName,
		persona.Psychology, persona.Strengths, persona.Weaknesses,
		targetInfo, starters,
	); err != nil {
		return errors.Wrap(err, "insert persona", slog.String("persona_id", persona.ID))
	}
	return nil
}

func marshalLists(persona models.Persona) (string, string, error) {
	targetInfo, err := json.Marshal(orEmpty(persona.TargetInfo))
	if err != nil {
		return "", "", errors.Wrap(err, "marshal target info")
	}
	starters, err := json.Marshal(orEmpty(persona.ConversationStarters))
	if err != nil {
		return "", "", errors.Wrap(err, "marshal conversation starters")
	}
	return string(targetInfo), string(starters), nil
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func generatePersonaID(name string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(name), "-"))
	return slug + "-" + uuid.NewString()[:8]
}
