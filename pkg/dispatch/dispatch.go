// Package dispatch triggers asynchronous processing of a submitted job.
//
// Submission and processing are decoupled through a fire-and-forget dispatch:
// the submitter enqueues a worker invocation keyed by job id and returns
// without waiting for the result. Delivery is best-effort; a client observes
// progress only by polling the job record.
package dispatch

import "context"

// WorkerMessage is the payload carried by a worker invocation.
type WorkerMessage struct {
	Type  string `json:"type"`
	JobID string `json:"jobId"`
}

// TypeWorker marks a worker invocation message.
const TypeWorker = "worker"

// NewWorkerMessage builds the dispatch payload for a job id.
func NewWorkerMessage(jobID string) WorkerMessage {
	return WorkerMessage{Type: TypeWorker, JobID: jobID}
}

// Dispatcher enqueues a processing run for a job id.
type Dispatcher interface {
	Dispatch(ctx context.Context, jobID string) error
}
