package agent

import (
	"context"
	"fmt"
)

// Mock is a deterministic local invoker used for integration testing without
// live dependencies. It echoes the submission back instead of calling the
// agent runtime.
type Mock struct{}

var _ Invoker = Mock{}

// Invoke returns {"result": "[MOCK] Echo: <prompt or s3_uri>"}.
func (Mock) Invoke(ctx context.Context, payload map[string]any, sessionID string) (map[string]any, error) {
	return map[string]any{"result": fmt.Sprintf("[MOCK] Echo: %s", EchoSource(payload))}, nil
}

// EchoSource picks the value echoed by mock invocations: the prompt when
// present, else the structured source reference.
func EchoSource(payload map[string]any) string {
	if p, ok := payload["prompt"].(string); ok && p != "" {
		return p
	}
	if uri, ok := payload["s3_uri"].(string); ok {
		return uri
	}
	return ""
}
