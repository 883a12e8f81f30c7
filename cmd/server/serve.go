package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jlym/postboard/go/internal/config"
	"github.com/jlym/postboard/go/internal/httpapi"
	"github.com/jlym/postboard/go/internal/logging"
	"github.com/jlym/postboard/go/internal/memory"
	"github.com/jlym/postboard/go/internal/util"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	v := viper.New()
	var configFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "YAML config file")
	cobra.CheckErr(config.BindFlags(v, cmd.Flags()))
	return cmd
}

func serve(parentCtx context.Context, cfg *config.Config, logOutput io.Writer) error {
	logger, err := logging.New(logOutput, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	seed, err := loadSeed(cfg)
	if err != nil {
		return err
	}
	memServer, err := memory.NewMemServer(seed)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           httpapi.NewHandler(memServer, logger, util.NewRealClock()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("server running", slog.String("url", "http://localhost"+cfg.Addr()))
	for _, line := range httpapi.Endpoints() {
		logger.Info("endpoint", slog.String("route", line))
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrapf(err, "listening failed, addr=\"%s\"", cfg.Addr())
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return errors.Wrap(srv.Shutdown(shutdownCtx), "shutting down server failed")
}

func loadSeed(cfg *config.Config) (*memory.Seed, error) {
	if cfg.NoSeed {
		return nil, nil
	}
	if cfg.SeedFile == "" {
		return memory.DefaultSeed(), nil
	}
	return memory.LoadSeedFile(cfg.SeedFile)
}
