package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vitalvas/apidocs/middleware"
)

const shutdownTimeout = 10 * time.Second

func (a *app) serveCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the documentation over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, h, err := a.load()
			if err != nil {
				return err
			}
			if listen == "" {
				listen = cfg.Listen
			}

			// Build eagerly so configuration problems surface at startup.
			if _, err := h.Definition(); err != nil {
				return err
			}

			mux := http.NewServeMux()
			h.Attach(mux)

			srv := &http.Server{
				Addr: listen,
				Handler: middleware.Chain(mux,
					middleware.RequestID(),
					middleware.AccessLog(a.logger),
					middleware.Recovery(a.logger),
					middleware.Gzip(),
				),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("serving api documentation",
					slog.String("listen", listen),
					slog.String("mount_path", h.MountPath()))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			a.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Listen address (overrides the configuration)")
	return cmd
}
