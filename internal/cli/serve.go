package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/karandeol-26/VeriCura/internal/app"
	"github.com/karandeol-26/VeriCura/internal/logging"
	"github.com/karandeol-26/VeriCura/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd(build AppBuilder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API the extension popup talks to",
		Long: `Serve starts the session API: open a session on a URL or a page agent,
scan, analyze, highlight and render reports. Interactive API documentation
is served at /swagger/index.html.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, err := cmd.Flags().GetString("addr")
			if err != nil {
				return err
			}
			return withApplication(cmd, build, func(ctx context.Context, a *app.Application) error {
				s, err := server.NewServer(server.Config{ListenAddr: addr, App: a, Logger: a.Logger})
				if err != nil {
					return err
				}
				return listenUntilSignal(ctx, s.HTTPServer(), a.Logger)
			})
		},
	}
	cmd.Flags().StringP("addr", "a", "", "Listen address (default: server_addr from the config)")
	return cmd
}

// listenUntilSignal serves srv until ctx ends or the process is interrupted.
func listenUntilSignal(ctx context.Context, srv *http.Server, logger logging.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", logging.Field{Key: "addr", Value: srv.Addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down", logging.Field{Key: "addr", Value: srv.Addr})
	return srv.Shutdown(shutdownCtx)
}
