package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quizforge/quizforge/internal/config"
	"github.com/quizforge/quizforge/internal/observability"
	"github.com/quizforge/quizforge/pkg/dispatch"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Process a single job and exit",
	Long: `Process one submitted job to its terminal state. This is the entry
point an external dispatcher invokes; the serve command's inline
dispatcher runs the same processing in-process instead.

The job id comes from --job-id or from a worker message on --message,
e.g. '{"type":"worker","jobId":"job-..."}'.`,
	RunE: runWorker,
}

var (
	workerJobID   string
	workerMessage string
)

func init() {
	rootCmd.AddCommand(workerCmd)

	workerCmd.Flags().StringVar(&workerJobID, "job-id", "", "Job id to process")
	workerCmd.Flags().StringVar(&workerMessage, "message", "", "Worker message JSON")
}

func runWorker(cmd *cobra.Command, args []string) error {
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

	jobID, err := resolveWorkerJobID(workerJobID, workerMessage)
	if err != nil {
		return err
	}

	rt, err := buildRuntime(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("processing job", zap.String("job_id", jobID))
	return rt.jobs.Process(cmd.Context(), jobID)
}

// resolveWorkerJobID extracts the job id from the flag or a dispatch message.
func resolveWorkerJobID(flagID, message string) (string, error) {
	if flagID != "" {
		return flagID, nil
	}
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("either --job-id or --message is required")
	}

	var msg dispatch.WorkerMessage
	if err := json.Unmarshal([]byte(message), &msg); err != nil {
		return "", fmt.Errorf("parse worker message: %w", err)
	}
	if msg.Type != dispatch.TypeWorker {
		return "", fmt.Errorf("unsupported message type: %q", msg.Type)
	}
	if msg.JobID == "" {
		return "", fmt.Errorf("worker message is missing jobId")
	}
	return msg.JobID, nil
}
