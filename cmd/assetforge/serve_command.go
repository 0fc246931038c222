package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/setanarut/assetforge"
	"github.com/setanarut/assetforge/internal/api"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pipeline over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if bind == "" {
				bind = cfg.Server.Bind
			}

			wm, err := cfg.Watermarker()
			if err != nil {
				if !errors.Is(err, assetforge.ErrAssetLoad) {
					return err
				}
				logger.Warn("watermark route disabled", "path", cfg.Watermark.Path, "error", err)
				wm = nil
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			listener, err := net.Listen("tcp", bind)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", bind, err)
			}
			srv := &http.Server{
				Handler:           api.NewRouter(cfg, logger, wm),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Serve(listener)
			}()
			logger.Info("listening", "component", "server", "addr", listener.Addr().String())

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-runCtx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			logger.Info("shutting down", "component", "server")
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Override server.bind")
	return cmd
}
