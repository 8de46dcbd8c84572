package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/student-registration/internal/config"
	"github.com/aanand-mishra/student-registration/internal/registration"
	"github.com/aanand-mishra/student-registration/internal/storage"
	"github.com/aanand-mishra/student-registration/internal/storage/postgres"
	"github.com/aanand-mishra/student-registration/internal/storage/sqlite"
)

const version = "1.0.0"

// app holds what bootstrap builds for the command that runs.
type app struct {
	configPath string

	cfg     *config.Config
	log     *slog.Logger
	logFile *os.File
	store   storage.Storage
	service *registration.Service
}

// Execute runs the command line and releases everything bootstrap opened.
// A non-nil error means the process should exit non-zero; it has not been
// printed yet.
func Execute(ctx context.Context) error {
	a := &app{}
	defer a.close()

	return newRootCmd(a).ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "student-registration",
		Short: "Register students into a local database",
		Long: `student-registration collects a student's name, roll number, course and
email, validates them, and stores them in a single students table.

Without a subcommand it opens the interactive form.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.bootstrap(cmd.Context(), isInteractive(cmd))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runForm()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to the configuration YAML file (or CONFIG_PATH)")

	root.AddCommand(
		newFormCmd(a),
		newRegisterCmd(a),
		newListCmd(a),
	)

	return root
}

// isInteractive reports whether cmd draws on the terminal, in which case
// logs must not be written to it.
func isInteractive(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "form"
}

// bootstrap loads configuration, builds the logger, opens the store and
// ensures the schema. Any failure here is fatal.
func (a *app) bootstrap(ctx context.Context, interactive bool) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	out, err := a.logOutput(interactive)
	if err != nil {
		return err
	}
	a.log = setupLogger(cfg.Env, out)

	a.log.Info("starting student-registration",
		slog.String("env", cfg.Env),
		slog.String("version", version),
		slog.String("driver", cfg.Storage.Driver))

	store, err := openStore(ctx, cfg)
	if err != nil {
		a.log.Error("failed to initialise storage", slog.String("error", err.Error()))
		return fmt.Errorf("failed to initialise storage: %w", err)
	}
	a.store = store

	if err := store.EnsureSchema(ctx); err != nil {
		a.log.Error("failed to initialise schema", slog.String("error", err.Error()))
		return fmt.Errorf("failed to initialise database: %w", err)
	}

	a.log.Info("storage initialised")

	a.service = registration.New(store, a.log)
	return nil
}

// logOutput picks where logs go: the configured file, else stderr for
// one-shot commands and nowhere for the interactive form.
func (a *app) logOutput(interactive bool) (io.Writer, error) {
	if a.cfg.LogFile != "" {
		f, err := os.OpenFile(a.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		a.logFile = f
		return f, nil
	}
	if interactive {
		return io.Discard, nil
	}
	return os.Stderr, nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		p, err := postgres.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		s, err := sqlite.New(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string, w io.Writer) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(w, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
