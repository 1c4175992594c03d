package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/jkantola/smalltalk/internal/ai"
	"github.com/jkantola/smalltalk/internal/db"
	"github.com/jkantola/smalltalk/internal/envstruct"
	"github.com/jkantola/smalltalk/internal/errors"
	"github.com/jkantola/smalltalk/internal/logging"
	"github.com/jkantola/smalltalk/internal/pprofserver"
	"github.com/jkantola/smalltalk/internal/random"
	"github.com/jkantola/smalltalk/internal/repositories"
	"github.com/jkantola/smalltalk/internal/seed"
	"github.com/jkantola/smalltalk/internal/session"
	"github.com/joho/godotenv"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	sessions       *session.Manager
	synthesizer    ai.Synthesizer
	users          *repositories.UserRepository
	personas       *repositories.PersonaRepository
	targets        *repositories.AttackTargetRepository
	leaderboard    *repositories.LeaderboardRepository
}

type config struct {
	// Addr is the address the server listens on, e.g. "localhost:4000".
	// Use port 0 to let the OS pick a free port.
	Addr string `env:"SMALLTALK_ADDR" envDefault:"localhost:4000"`
	// SQLiteURL is the path to the SQLite database file or ":memory:".
	SQLiteURL string `env:"SMALLTALK_SQLITE_URL" envDefault:"./smalltalk.sqlite"`
	// PprofAddr enables the localhost pprof listener when non-empty.
	PprofAddr string `env:"SMALLTALK_PPROF_ADDR" envDefault:""`
	// GeminiAPIKey authenticates to the Gemini API. When empty the server
	// runs against a deterministic offline gateway.
	GeminiAPIKey string `env:"GEMINI_API_KEY" envDefault:""`
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}))
	logger := slog.New(loggerHandler)

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server failed", errors.SlogError(err))
		os.Exit(1)
	}
}

// run wires the application together and starts the server. It is the testable
// entrypoint, handler tests boot the whole binary through it.
func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	// The .env file is optional, deployments configure the environment directly.
	_ = godotenv.Load()

	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "parse config")
	}

	if cfg.PprofAddr != "" {
		pprofserver.Launch(cfg.PprofAddr, logger)
	}

	dbs, err := db.NewDatabase(cfg.SQLiteURL)
	if err != nil {
		return errors.Wrap(err, "open database")
	}
	defer func() {
		if closeErr := dbs.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "close database", errors.SlogError(closeErr))
		}
	}()
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db", slog.String("url", cfg.SQLiteURL))

	users := repositories.NewUserRepository(dbs, logger)
	personas := repositories.NewPersonaRepository(dbs, logger)
	targets := repositories.NewAttackTargetRepository(dbs, logger)
	leaderboard := repositories.NewLeaderboardRepository(dbs, logger)

	if err = personas.EnsureSeed(ctx, seed.Personas()); err != nil {
		return errors.Wrap(err, "seed personas")
	}
	if err = targets.EnsureSeed(ctx, seed.AttackTargets()); err != nil {
		return errors.Wrap(err, "seed attack targets")
	}

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite.DB, 24*time.Hour)
	sessionManager.Lifetime = 12 * time.Hour

	var (
		completer   ai.Completer
		synthesizer ai.Synthesizer
	)
	if cfg.GeminiAPIKey == "" {
		logger.LogAttrs(ctx, slog.LevelWarn, "GEMINI_API_KEY not set, using offline gateway")
		offline := ai.NewOfflineClient()
		completer, synthesizer = offline, offline
	} else {
		gemini, clientErr := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if clientErr != nil {
			return errors.Wrap(clientErr, "create gemini client")
		}
		completer, synthesizer = gemini, gemini
	}

	advisor := ai.NewService(completer, logger)

	app := application{
		logger:         logger,
		sessionManager: sessionManager,
		sessions:       session.NewManager(advisor, random.NewSource(), logger),
		synthesizer:    synthesizer,
		users:          users,
		personas:       personas,
		targets:        targets,
		leaderboard:    leaderboard,
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}
