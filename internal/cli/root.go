// Package cli wires the course planner commands together with cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/JonMunkholm/courseplanner/internal/audit"
	"github.com/JonMunkholm/courseplanner/internal/catalog"
	"github.com/JonMunkholm/courseplanner/internal/config"
	"github.com/JonMunkholm/courseplanner/internal/session"
	"github.com/JonMunkholm/courseplanner/internal/shell"
	"github.com/spf13/cobra"
)

// Version is set via -ldflags at build time.
var Version = "dev"

var errNoFile = errors.New("no catalog file: use --file or set CATALOG_FILE")

// app carries configuration and flag values shared by all commands.
type app struct {
	cfg    *config.Config
	loader catalog.Loader
	file   string
}

// NewRootCmd builds the command tree for cfg.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	a := &app{
		cfg:    cfg,
		loader: catalog.Loader{MaxLineSize: cfg.Catalog.MaxLineSize},
	}

	root := &cobra.Command{
		Use:   "courseplanner",
		Short: "Browse a course catalog and its prerequisites",
		Long: `courseplanner loads a comma-delimited course catalog
(ID,Title[,Prerequisite...] per line) and lets you list every course
or look one up with its prerequisites.

Without a subcommand it starts the interactive menu.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runInteractive,
	}

	root.PersistentFlags().StringVarP(&a.file, "file", "f", "", "course catalog file (default $CATALOG_FILE)")

	root.AddCommand(a.newListCmd())
	root.AddCommand(a.newShowCmd())
	root.AddCommand(a.newServeCmd())
	return root
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context, cfg *config.Config) error {
	return NewRootCmd(cfg).ExecuteContext(ctx)
}

// runInteractive runs the numbered menu. --file preloads a catalog; the
// CATALOG_FILE default is not applied here so the menu starts unloaded.
func (a *app) runInteractive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rec, closeRec := openRecorder(ctx, a.cfg.Database)
	defer closeRec()

	sh := shell.New(cmd.InOrStdin(), cmd.OutOrStdout(), a.newSession(rec))
	if a.file != "" {
		sh.Preload(a.file)
	}
	return sh.Run(ctx)
}

// newSession returns a session that loads with the configured line limit.
func (a *app) newSession(rec audit.Recorder) *session.Session {
	return session.New(
		session.WithRecorder(rec),
		session.WithLoader(a.loader.Load),
	)
}

// catalogFile returns the --file flag or the configured default.
func (a *app) catalogFile() (string, error) {
	if a.file != "" {
		return a.file, nil
	}
	if a.cfg.Catalog.File != "" {
		return a.cfg.Catalog.File, nil
	}
	return "", errNoFile
}

// loadCatalog loads the catalog for a non-interactive command, recording
// the attempt to rec.
func (a *app) loadCatalog(cmd *cobra.Command, rec audit.Recorder) (*catalog.Catalog, string, error) {
	path, err := a.catalogFile()
	if err != nil {
		return nil, "", err
	}

	cat, err := a.newSession(rec).Load(cmd.Context(), path)
	if err != nil {
		return nil, path, err
	}
	reportSkipped(cmd.ErrOrStderr(), cat)
	return cat, path, nil
}

func reportSkipped(w io.Writer, cat *catalog.Catalog) {
	if skipped := cat.Stats().Skipped; skipped > 0 {
		fmt.Fprintf(w, "Skipped %d malformed line(s).\n", skipped)
	}
}

// openRecorder returns the Postgres recorder when a database is configured.
// A database that cannot be reached only costs the load history, so the
// failure is logged and a no-op recorder is used instead.
func openRecorder(ctx context.Context, db config.DatabaseConfig) (audit.Recorder, func()) {
	if !db.AuditEnabled() {
		return audit.NopRecorder{}, func() {}
	}

	connectCtx := ctx
	if db.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, db.ConnectTimeout)
		defer cancel()
	}

	pool, err := audit.Connect(connectCtx, audit.PoolConfig{
		URL:      db.URL,
		MaxConns: db.MaxConns,
		MinConns: db.MinConns,
	})
	if err != nil {
		slog.Warn("load history disabled", "error", err)
		return audit.NopRecorder{}, func() {}
	}

	rec := audit.NewPgRecorder(pool)
	if err := rec.EnsureSchema(connectCtx); err != nil {
		slog.Warn("load history disabled", "error", err)
		pool.Close()
		return audit.NopRecorder{}, func() {}
	}

	slog.Info("recording load history to database")
	return rec, pool.Close
}
