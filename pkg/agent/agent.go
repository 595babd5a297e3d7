// Package agent is the boundary component translating an internal payload
// into an external agent-runtime call and back.
package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/quizforge/quizforge/pkg/job"
)

// Invoker sends a payload to the agent runtime and returns its response as a
// map. Implementations must propagate transport failures rather than swallow
// them: the caller records them into the job's terminal state.
type Invoker interface {
	Invoke(ctx context.Context, payload map[string]any, sessionID string) (map[string]any, error)
}

// ErrNotConfigured indicates live invocation was requested without an agent
// runtime reference.
var ErrNotConfigured = errors.New("agent runtime ARN is not set")

// InvokeError wraps agent-runtime failures with the session that hit them.
type InvokeError struct {
	SessionID string
	Err       error
}

func (e *InvokeError) Error() string {
	return fmt.Sprintf("agent invoke (session %s): %v", e.SessionID, e.Err)
}

func (e *InvokeError) Unwrap() error {
	return e.Err
}

// ResolveSessionID picks the session identifier for an invocation: the
// explicit argument wins, then a session_id string inside the payload, then
// a freshly generated id satisfying the runtime's length constraint.
func ResolveSessionID(payload map[string]any, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if sid, ok := payload["session_id"].(string); ok && sid != "" {
		return sid
	}
	return job.NewID(job.SessionIDPrefix)
}
