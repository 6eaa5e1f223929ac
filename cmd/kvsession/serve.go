package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/aretw0/kvsession/pkg/adapters/http"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the session store over HTTP",
		Long:  `Starts an HTTP server with GET/PUT/DELETE /sessions/{id}, POST /sessions/{id}/touch, /healthz and /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := httpAdapter.NewHandler(a.store,
				httpAdapter.WithLogger(a.logger),
				httpAdapter.WithMetrics(a.registry),
			)

			srv := &http.Server{
				Addr:              a.cfg.Listen,
				Handler:           handler,
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			serverErrors := make(chan error, 1)
			go func() {
				a.logger.Info("Starting session server", "addr", srv.Addr, "prefix", a.cfg.Prefix)
				serverErrors <- srv.ListenAndServe()
			}()

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err

			case <-ctx.Done():
				a.logger.Info("Shutting down session server")

				// Give outstanding requests a deadline for completion.
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				if err := srv.Shutdown(shutdownCtx); err != nil {
					a.logger.Warn("Graceful shutdown did not complete", "err", err)
					return srv.Close()
				}
				return nil
			}
		},
	}
	cmd.Flags().String("listen", "", "Address to listen on (default from config, :8080)")
	return cmd
}
