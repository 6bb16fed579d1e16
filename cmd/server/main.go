package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	router "github.com/dkeye/Party/internal/adapters/http"
	"github.com/dkeye/Party/internal/app"
	"github.com/dkeye/Party/internal/app/orch"
	"github.com/dkeye/Party/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "party-server",
		Short:         "Relay server for party game rooms: one host device, many player controllers",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd)
			if err != nil {
				log.Error().Err(err).Msg("server failed")
			}
			return err
		},
	}

	f := cmd.Flags()
	f.String("mode", "release", "gin mode: release, debug or test")
	f.String("host", "", "listen host, empty for all interfaces")
	f.Int("port", 8080, "listen port")
	f.String("log-level", "info", "log level")
	f.Bool("strict-roles", false, "drop messages sent by a role they are not meant for")
	f.String("backpressure", "drop", "what to do with a slow member: drop or kick")

	return cmd
}

func run(cmd *cobra.Command) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && lvl != zerolog.NoLevel {
		zerolog.SetGlobalLevel(lvl)
	}

	action, err := app.ParseBackpressure(cfg.Backpressure)
	if err != nil {
		return err
	}
	o := orch.New(app.SimplePolicy{Action: action}, cfg.StrictRoles)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.SetupRouter(ctx, cfg, o),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Party server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
	return nil
}
