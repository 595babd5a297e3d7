package jobstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/quizforge/quizforge/pkg/job"
)

// MemStore is an in-memory Store used by tests and local development.
//
// Records are deep-copied through JSON on both Put and Get so callers cannot
// mutate stored state through shared maps, matching the isolation a real
// object store provides.
type MemStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{records: make(map[string][]byte)}
}

func (m *MemStore) Put(ctx context.Context, record *job.Record) error {
	if record == nil || record.JobID == "" {
		return &StoreError{Op: "Put", Bucket: "memory", Err: errors.New("jobId is required")}
	}
	b, err := json.Marshal(record)
	if err != nil {
		return &StoreError{Op: "Put", Bucket: "memory", Key: record.JobID, Err: err}
	}
	m.mu.Lock()
	m.records[record.JobID] = b
	m.mu.Unlock()
	return nil
}

func (m *MemStore) Get(ctx context.Context, jobID string) (*job.Record, error) {
	m.mu.RLock()
	b, ok := m.records[jobID]
	m.mu.RUnlock()
	if !ok {
		return nil, &StoreError{Op: "Get", Bucket: "memory", Key: jobID, Err: ErrNotFound}
	}
	var record job.Record
	if err := json.Unmarshal(b, &record); err != nil {
		return nil, &StoreError{Op: "Get", Bucket: "memory", Key: jobID, Err: err}
	}
	return &record, nil
}

// Len reports the number of stored records.
func (m *MemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
