// Package importer loads persona and attack-target files into the database.
// It shares the repository layer with the web server, so imports obey the
// same validation and all-or-nothing semantics as the web UI.
package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jkantola/smalltalk/internal/db"
	"github.com/jkantola/smalltalk/internal/errors"
	"github.com/jkantola/smalltalk/internal/models"
	"github.com/jkantola/smalltalk/internal/repositories"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "import",
	Title: "Import operations",
}

func init() {
	Personas.Flags().String("sqlite-url", "./smalltalk.sqlite", "SQLite URL")
	Personas.Flags().Int64("user", 0, "user ID to own the personas, 0 imports them as built-ins")
	Targets.Flags().String("sqlite-url", "./smalltalk.sqlite", "SQLite URL")
	Targets.Flags().Int64("user", 0, "user ID to own the targets, 0 imports them as built-ins")
}

var Personas = &cobra.Command{
	Use:     "personas [file]",
	GroupID: "import",
	Short:   "Import personas",
	Long:    `Imports a JSON array of persona objects. Each persona requires at least a name and a role.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		var personas []models.Persona
		if err := decodeFile(args[0], &personas); err != nil {
			return err
		}

		return withDatabase(cmd, func(dbs *db.Database, logger *slog.Logger) error {
			repository := repositories.NewPersonaRepository(dbs, logger)
			userID, err := cmd.Flags().GetInt64("user")
			if err != nil {
				return errors.Wrap(err, "read user flag")
			}
			if userID == 0 {
				if err = repository.EnsureSeed(ctx, personas); err != nil {
					return err
				}
			} else if err = repository.CreateBatch(ctx, userID, personas); err != nil {
				return err
			}
			fmt.Printf("Imported %d personas\n", len(personas))
			return nil
		})
	},
}

var Targets = &cobra.Command{
	Use:     "targets [file]",
	GroupID: "import",
	Short:   "Import attack targets",
	Long:    `Imports a JSON array of strings used as resist-mode attack targets.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		var targets []string
		if err := decodeFile(args[0], &targets); err != nil {
			return err
		}

		return withDatabase(cmd, func(dbs *db.Database, logger *slog.Logger) error {
			repository := repositories.NewAttackTargetRepository(dbs, logger)
			userID, err := cmd.Flags().GetInt64("user")
			if err != nil {
				return errors.Wrap(err, "read user flag")
			}
			if userID == 0 {
				if err = repository.EnsureSeed(ctx, targets); err != nil {
					return err
				}
			} else if err = repository.CreateBatch(ctx, userID, targets); err != nil {
				return err
			}
			fmt.Printf("Imported %d attack targets\n", len(targets))
			return nil
		})
	},
}

func decodeFile(path string, v any) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open import file", slog.String("path", path))
	}
	defer func(file *os.File) {
		_ = file.Close()
	}(file)

	payload, err := io.ReadAll(file)
	if err != nil {
		return errors.Wrap(err, "read import file", slog.String("path", path))
	}
	if err = json.Unmarshal(payload, v); err != nil {
		return errors.Wrap(err, "parse import file", slog.String("path", path))
	}
	return nil
}

func withDatabase(cmd *cobra.Command, f func(*db.Database, *slog.Logger) error) error {
	url, err := cmd.Flags().GetString("sqlite-url")
	if err != nil {
		return errors.Wrap(err, "read sqlite-url flag")
	}
	dbs, err := db.NewDatabase(url)
	if err != nil {
		return errors.Wrap(err, "open database")
	}
	defer func() {
		_ = dbs.Close()
	}()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return f(dbs, logger)
}
