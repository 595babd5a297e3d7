package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quizforge/quizforge/internal/config"
	"github.com/quizforge/quizforge/internal/observability"
	"github.com/quizforge/quizforge/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the quiz-generation API: job submission and polling, document
upload presigning, synchronous extraction, and agent invocation.

Configuration comes from defaults, an optional --config file, and
QUIZFORGE_-prefixed environment variables, e.g.:

  QUIZFORGE_STORE_BUCKET=my-jobs-bucket QUIZFORGE_AGENT_MODE=mock quizforge serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	logger, err := observability.Init(observability.LoggingConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return err
	}
	defer observability.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := buildRuntime(ctx, cfg, logger)
	if err != nil {
		return err
	}

	srv := server.New(cfg.Server.Host, cfg.Server.Port, server.Options{
		Jobs:         rt.jobs,
		Presigner:    rt.presigner,
		Extractor:    rt.extractor,
		Invoker:      rt.invoker,
		MockMode:     rt.mockMode,
		Logger:       logger,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		RateLimit:    cfg.Server.RateLimit,
		RateBurst:    cfg.Server.RateBurst,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown did not complete cleanly", zap.Error(err))
		return err
	}
	return nil
}
