// Package jobs implements the job lifecycle: submission, asynchronous
// processing, and status lookup.
//
// Cross-invocation state lives entirely in the job store. Submission writes
// a PENDING record and fires a worker dispatch; processing rewrites the
// record into exactly one terminal state; status lookup is a plain read.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/quizforge/quizforge/pkg/agent"
	"github.com/quizforge/quizforge/pkg/dispatch"
	"github.com/quizforge/quizforge/pkg/job"
	"github.com/quizforge/quizforge/pkg/jobstore"
)

// ErrStoreNotConfigured indicates an operation needing persistence ran on a
// deployment without a jobs bucket.
var ErrStoreNotConfigured = errors.New("jobs bucket is not set")

// Service coordinates the job lifecycle around the store, the invocation
// adapter, and the worker dispatcher. All collaborators are read-only
// handles constructed once per process.
type Service struct {
	store      jobstore.Store
	invoker    agent.Invoker
	dispatcher dispatch.Dispatcher
	logger     *zap.Logger

	now func() time.Time
}

// New builds a Service. Store may be nil on a misconfigured deployment;
// operations needing it fail with ErrStoreNotConfigured.
func New(store jobstore.Store, invoker agent.Invoker, dispatcher dispatch.Dispatcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:      store,
		invoker:    invoker,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// Submit validates the body, persists a PENDING record, and triggers
// asynchronous processing. It returns the created record; the caller only
// surfaces its id and status.
func (s *Service) Submit(ctx context.Context, body map[string]any) (*job.Record, error) {
	kind, err := job.Classify(body)
	if err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, ErrStoreNotConfigured
	}

	record := &job.Record{
		JobID:     job.NewID(job.JobIDPrefix),
		Status:    job.StatusPending,
		CreatedAt: s.now().UnixMilli(),
		Payload:   body,
	}

	if err := s.store.Put(ctx, record); err != nil {
		return nil, fmt.Errorf("persist job record: %w", err)
	}

	if err := s.dispatcher.Dispatch(ctx, record.JobID); err != nil {
		return nil, fmt.Errorf("dispatch worker: %w", err)
	}

	s.logger.Info("job submitted",
		zap.String("job_id", record.JobID),
		zap.String("kind", string(kind)))

	return record, nil
}

// Process runs the worker for one job id: read the record, invoke the
// adapter, and persist exactly one terminal state. Adapter failures become a
// FAILED record, never an error of the internal call itself. There are no
// retries; re-processing requires a new job.
func (s *Service) Process(ctx context.Context, jobID string) error {
	if jobID == "" {
		return errors.New("jobId is required")
	}
	if s.store == nil {
		return ErrStoreNotConfigured
	}

	record, err := s.store.Get(ctx, jobID)
	if err != nil {
		// The dispatch can outrun read-after-write in pathological cases.
		// Fall back to a PENDING stub rather than dropping the run; the
		// terminal write below is last-write-wins either way.
		s.logger.Warn("job record not readable, using pending stub",
			zap.String("job_id", jobID),
			zap.Error(err))
		record = &job.Record{JobID: jobID, Status: job.StatusPending}
	}

	if record.Status.Terminal() {
		s.logger.Info("job already terminal, skipping",
			zap.String("job_id", jobID),
			zap.String("status", string(record.Status)))
		return nil
	}

	payload := record.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	sessionID, _ := payload["session_id"].(string)

	result, invokeErr := s.invoker.Invoke(ctx, payload, sessionID)
	finishedAt := s.now().UnixMilli()
	if invokeErr != nil {
		record.Fail(finishedAt, invokeErr)
		s.logger.Error("job failed",
			zap.String("job_id", jobID),
			zap.Error(invokeErr))
	} else {
		record.Succeed(finishedAt, result)
		s.logger.Info("job succeeded", zap.String("job_id", jobID))
	}

	if err := s.store.Put(ctx, record); err != nil {
		return fmt.Errorf("persist terminal job record: %w", err)
	}
	return nil
}

// Status returns the current record for a job id. Read-only and idempotent.
func (s *Service) Status(ctx context.Context, jobID string) (*job.Record, error) {
	if jobID == "" {
		return nil, errors.New("jobId is required")
	}
	if s.store == nil {
		return nil, ErrStoreNotConfigured
	}
	return s.store.Get(ctx, jobID)
}
