// Package job defines the persistent job document and the request
// classification rules for quiz-generation submissions.
package job

// Status is the lifecycle state of a submitted job.
//
// NOTE: These values are persisted in the job document and are part of the
// stable on-store contract.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusSucceeded Status = "SUCCEEDED"
	StatusFailed    Status = "FAILED"
)

// Terminal reports whether s is an absorbing state. A job never transitions
// out of SUCCEEDED or FAILED; re-processing requires a new submission.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Record is the persistent job document, keyed by JobID in the job store.
//
// The schema is designed for backward-compatible extension (additive fields).
// Timestamps are milliseconds since epoch, matching what polling clients
// render directly. Exactly one of Result/Error is set once Status is
// terminal; neither is set while PENDING.
type Record struct {
	JobID     string `json:"jobId"`
	Status    Status `json:"status"`
	CreatedAt int64  `json:"createdAt"`

	FinishedAt *int64         `json:"finishedAt,omitempty"`
	Payload    map[string]any `json:"payload,omitempty"`
	Result     map[string]any `json:"result,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// Succeed transitions the record to SUCCEEDED at the given time.
func (r *Record) Succeed(finishedAt int64, result map[string]any) {
	r.Status = StatusSucceeded
	r.FinishedAt = &finishedAt
	r.Result = result
	r.Error = ""
}

// Fail transitions the record to FAILED at the given time.
func (r *Record) Fail(finishedAt int64, cause error) {
	r.Status = StatusFailed
	r.FinishedAt = &finishedAt
	r.Result = nil
	r.Error = cause.Error()
}
