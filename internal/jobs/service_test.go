package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quizforge/quizforge/pkg/agent"
	"github.com/quizforge/quizforge/pkg/job"
	"github.com/quizforge/quizforge/pkg/jobstore"
)

// recordingDispatcher captures dispatched job ids without processing them.
type recordingDispatcher struct {
	jobIDs []string
	err    error
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, jobID string) error {
	if d.err != nil {
		return d.err
	}
	d.jobIDs = append(d.jobIDs, jobID)
	return nil
}

type failingInvoker struct {
	err error
}

func (f failingInvoker) Invoke(ctx context.Context, payload map[string]any, sessionID string) (map[string]any, error) {
	return nil, f.err
}

func newTestService(store jobstore.Store, invoker agent.Invoker, dispatcher *recordingDispatcher) *Service {
	if dispatcher == nil {
		dispatcher = &recordingDispatcher{}
	}
	svc := New(store, invoker, dispatcher, zap.NewNop())
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()
	store := jobstore.NewMemStore()
	dispatcher := &recordingDispatcher{}
	svc := newTestService(store, agent.Mock{}, dispatcher)

	record, err := svc.Submit(ctx, map[string]any{"prompt": "hello"})
	require.NoError(t, err)

	assert.Equal(t, job.StatusPending, record.Status)
	assert.NotEmpty(t, record.JobID)
	assert.Equal(t, int64(1700000000000), record.CreatedAt)

	// The PENDING record is persisted before dispatch.
	stored, err := store.Get(ctx, record.JobID)
	require.NoError(t, err)
	assert.Equal(t, job.StatusPending, stored.Status)

	require.Len(t, dispatcher.jobIDs, 1)
	assert.Equal(t, record.JobID, dispatcher.jobIDs[0])
}

func TestService_SubmitInvalidPayload(t *testing.T) {
	svc := newTestService(jobstore.NewMemStore(), agent.Mock{}, nil)

	_, err := svc.Submit(context.Background(), map[string]any{"prompt": "   "})
	require.ErrorIs(t, err, job.ErrInvalidPayload)
}

func TestService_SubmitWithoutStore(t *testing.T) {
	svc := newTestService(nil, agent.Mock{}, nil)

	_, err := svc.Submit(context.Background(), map[string]any{"prompt": "hello"})
	require.ErrorIs(t, err, ErrStoreNotConfigured)
}

func TestService_SubmitDispatchFailure(t *testing.T) {
	dispatcher := &recordingDispatcher{err: errors.New("queue full")}
	svc := newTestService(jobstore.NewMemStore(), agent.Mock{}, dispatcher)

	_, err := svc.Submit(context.Background(), map[string]any{"prompt": "hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dispatch worker")
}

func TestService_ProcessSucceeds(t *testing.T) {
	ctx := context.Background()
	store := jobstore.NewMemStore()
	svc := newTestService(store, agent.Mock{}, nil)

	record, err := svc.Submit(ctx, map[string]any{"prompt": "hello"})
	require.NoError(t, err)

	require.NoError(t, svc.Process(ctx, record.JobID))

	got, err := store.Get(ctx, record.JobID)
	require.NoError(t, err)
	assert.Equal(t, job.StatusSucceeded, got.Status)
	require.NotNil(t, got.FinishedAt)
	assert.Equal(t, map[string]any{"result": "[MOCK] Echo: hello"}, got.Result)
	assert.Empty(t, got.Error)
}

func TestService_ProcessRecordsFailure(t *testing.T) {
	ctx := context.Background()
	store := jobstore.NewMemStore()
	svc := newTestService(store, failingInvoker{err: errors.New("runtime unreachable")}, nil)

	record, err := svc.Submit(ctx, map[string]any{"prompt": "hello"})
	require.NoError(t, err)

	// The invoker failure lands in the record, not in Process's return.
	require.NoError(t, svc.Process(ctx, record.JobID))

	got, err := store.Get(ctx, record.JobID)
	require.NoError(t, err)
	assert.Equal(t, job.StatusFailed, got.Status)
	assert.Contains(t, got.Error, "runtime unreachable")
	assert.Nil(t, got.Result)
}

func TestService_ProcessSkipsTerminalRecord(t *testing.T) {
	ctx := context.Background()
	store := jobstore.NewMemStore()

	finished := int64(1699999999999)
	require.NoError(t, store.Put(ctx, &job.Record{
		JobID:      "job-done",
		Status:     job.StatusSucceeded,
		CreatedAt:  1699999999000,
		FinishedAt: &finished,
		Result:     map[string]any{"result": "original"},
	}))

	svc := newTestService(store, failingInvoker{err: errors.New("should not be called")}, nil)
	require.NoError(t, svc.Process(ctx, "job-done"))

	got, err := store.Get(ctx, "job-done")
	require.NoError(t, err)
	assert.Equal(t, job.StatusSucceeded, got.Status)
	assert.Equal(t, map[string]any{"result": "original"}, got.Result)
}

func TestService_ProcessMissingRecordUsesStub(t *testing.T) {
	ctx := context.Background()
	store := jobstore.NewMemStore()
	svc := newTestService(store, agent.Mock{}, nil)

	// No submission happened; the worker still runs and writes a terminal
	// record for the id it was handed.
	require.NoError(t, svc.Process(ctx, "job-ghost"))

	got, err := store.Get(ctx, "job-ghost")
	require.NoError(t, err)
	assert.Equal(t, job.StatusSucceeded, got.Status)
	assert.Equal(t, map[string]any{"result": "[MOCK] Echo: "}, got.Result)
}

func TestService_ProcessRequiresJobID(t *testing.T) {
	svc := newTestService(jobstore.NewMemStore(), agent.Mock{}, nil)
	require.Error(t, svc.Process(context.Background(), ""))
}

func TestService_Status(t *testing.T) {
	ctx := context.Background()
	store := jobstore.NewMemStore()
	svc := newTestService(store, agent.Mock{}, nil)

	record, err := svc.Submit(ctx, map[string]any{"prompt": "hello"})
	require.NoError(t, err)

	got, err := svc.Status(ctx, record.JobID)
	require.NoError(t, err)
	assert.Equal(t, record.JobID, got.JobID)

	_, err = svc.Status(ctx, "job-missing")
	assert.True(t, jobstore.IsNotFound(err))

	_, err = svc.Status(ctx, "")
	assert.Error(t, err)
}
