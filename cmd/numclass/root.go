package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sanverite/number-classifier/internal/api"
	"github.com/sanverite/number-classifier/internal/buildinfo"
	"github.com/sanverite/number-classifier/internal/config"
	"github.com/sanverite/number-classifier/internal/logging"
	"github.com/sanverite/number-classifier/internal/trivia"
)

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "numclass",
		Short:        "Classify integers over HTTP",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := logging.New(logging.Config{
				Level:       cfg.Log.Level,
				Development: cfg.Log.Development,
			})
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, logger)
		},
	}

	d := config.Default()
	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "optional config file")
	f.String("listen", d.Listen, "HTTP listen address")
	f.Duration("shutdown-timeout", d.ShutdownTimeout, "graceful shutdown timeout")
	f.String("log-level", d.Log.Level, "log level (debug, info, warn, error)")
	f.Bool("log-development", d.Log.Development, "console log encoding")
	f.String("trivia-url", d.Trivia.BaseURL, "fun-fact provider base URL")
	f.Duration("trivia-timeout", d.Trivia.Timeout, "bound on each fun-fact request")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}

// run serves until ctx is cancelled or the listener fails.
func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	facts, err := trivia.NewClient(trivia.Config{
		BaseURL:  cfg.Trivia.BaseURL,
		Category: cfg.Trivia.Category,
		Timeout:  cfg.Trivia.Timeout,
		Fallback: cfg.Trivia.Fallback,
	}, trivia.WithLogger(logger))
	if err != nil {
		return err
	}

	srv := api.NewServer(facts, api.ServerOptions{
		Addr:            cfg.Listen,
		WriteTimeout:    max(10*time.Second, cfg.Trivia.Timeout+2*time.Second),
		ShutdownTimeout: cfg.ShutdownTimeout,
		Logger:          logger,
		CORS: api.CORSPolicy{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AllowedMethods: cfg.CORS.AllowedMethods,
			AllowedHeaders: cfg.CORS.AllowedHeaders,
			MaxAge:         10 * time.Minute,
		},
	})

	logger.Info("numclass: starting",
		zap.String("version", buildinfo.Version),
		zap.String("addr", srv.Addr()),
		zap.String("trivia_url", cfg.Trivia.BaseURL),
		zap.Duration("trivia_timeout", cfg.Trivia.Timeout))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.ListenAndServe)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("numclass: shutting down")
		if err := srv.Stop(context.Background()); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("numclass: stopped")
	return nil
}
