package dispatch

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ProcessFunc runs the worker for one job id.
type ProcessFunc func(ctx context.Context, jobID string) error

// Inline runs the worker in a goroutine within the serving process. It is
// the dispatcher for single-process deployments and tests.
//
// The goroutine gets a fresh context: the worker must outlive the HTTP
// request whose handler dispatched it.
type Inline struct {
	process ProcessFunc
	timeout time.Duration
	logger  *zap.Logger
}

var _ Dispatcher = (*Inline)(nil)

// DefaultProcessTimeout bounds a single inline worker run.
const DefaultProcessTimeout = 5 * time.Minute

func NewInline(process ProcessFunc, timeout time.Duration, logger *zap.Logger) *Inline {
	if timeout <= 0 {
		timeout = DefaultProcessTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inline{process: process, timeout: timeout, logger: logger}
}

// Dispatch starts processing and returns immediately. Worker failures are
// logged, not returned: by the time they happen the submission response has
// already been sent, and the failure is visible in the job record.
func (d *Inline) Dispatch(ctx context.Context, jobID string) error {
	go func() {
		runCtx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.process(runCtx, jobID); err != nil {
			d.logger.Error("worker run failed",
				zap.String("job_id", jobID),
				zap.Error(err))
		}
	}()
	return nil
}
