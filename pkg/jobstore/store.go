// Package jobstore persists job documents in durable key-value storage
// addressed by job id.
//
// The contract is intentionally minimal: full-document put and get, no
// partial updates, no locking. Callers read-modify-write whole records and
// the underlying store resolves concurrent writers per key as last-write-wins.
package jobstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/quizforge/quizforge/pkg/job"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates no record exists for the requested job id. It is
	// distinct from transport failures: an unreachable store never reports
	// not-found.
	ErrNotFound = errors.New("job not found")

	// ErrUnavailable indicates the backing service could not be reached.
	ErrUnavailable = errors.New("job store unavailable")
)

// Store is the durable persistence boundary for job records.
type Store interface {
	// Put persists the full record, overwriting any existing value for its
	// job id.
	Put(ctx context.Context, record *job.Record) error

	// Get returns the current record for the id, or an error satisfying
	// errors.Is(err, ErrNotFound) when none exists.
	Get(ctx context.Context, jobID string) (*job.Record, error)
}

// StoreError wraps store failures with operation context.
type StoreError struct {
	Op     string
	Bucket string
	Key    string
	Err    error
}

func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("jobstore %s: %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	return fmt.Sprintf("jobstore %s: %s: %v", e.Op, e.Bucket, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
