package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/JonMunkholm/courseplanner/internal/audit"
	"github.com/JonMunkholm/courseplanner/internal/config"
	"github.com/JonMunkholm/courseplanner/internal/web"
	"github.com/spf13/cobra"
)

func (a *app) newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog read-only over HTTP",
		Long: `Load the catalog once and serve it as HTML pages and a JSON API
until interrupted. Edits to the file are not picked up; restart to reload.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srvCfg := a.cfg.Server
			if addr != "" {
				if err := applyAddr(&srvCfg, addr); err != nil {
					return err
				}
			}
			return a.runServe(cmd, srvCfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address host:port (default $SERVER_HOST:$SERVER_PORT)")
	return cmd
}

func (a *app) runServe(cmd *cobra.Command, srvCfg config.ServerConfig) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	history := audit.NewMemoryRecorder(a.cfg.Catalog.History)
	rec, closeRec := openRecorder(ctx, a.cfg.Database)
	defer closeRec()

	cat, path, err := a.loadCatalog(cmd, audit.Multi{history, rec})
	if err != nil {
		return err
	}

	server := web.NewServer(cat, path, history, srvCfg)
	fmt.Fprintf(cmd.OutOrStdout(), "Serving %d courses from %s on http://%s\n", cat.Len(), path, server.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), srvCfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// applyAddr overrides the host and port of cfg with addr.
func applyAddr(cfg *config.ServerConfig, addr string) error {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid --addr %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("invalid --addr %q: bad port", addr)
	}
	cfg.Host = host
	cfg.Port = port
	return nil
}
