package agent

import (
	"context"
	"encoding/json"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcore"
)

// RuntimeConfig configures the live agent-runtime client.
type RuntimeConfig struct {
	// RuntimeARN identifies the agent runtime to invoke (required).
	RuntimeARN string

	// Qualifier optionally pins a runtime version. Empty means the runtime's
	// default qualifier.
	Qualifier string
}

// Runtime invokes an AWS Bedrock AgentCore runtime.
type Runtime struct {
	client *bedrockagentcore.Client
	cfg    RuntimeConfig
}

var _ Invoker = (*Runtime)(nil)

// NewRuntime creates a live invoker. A missing runtime ARN is a
// configuration error here, before any invocation is attempted.
func NewRuntime(awsCfg aws.Config, cfg RuntimeConfig) (*Runtime, error) {
	if cfg.RuntimeARN == "" {
		return nil, ErrNotConfigured
	}
	return &Runtime{
		client: bedrockagentcore.NewFromConfig(awsCfg),
		cfg:    cfg,
	}, nil
}

// Invoke sends the JSON-encoded payload to the runtime under the resolved
// session id and normalizes the response into a map.
//
// The response stream is read fully and JSON-decoded. A body that fails to
// decode, or decodes to a non-object value, is wrapped as {"result": <value>}
// so callers always receive a dictionary-shaped result.
func (r *Runtime) Invoke(ctx context.Context, payload map[string]any, sessionID string) (map[string]any, error) {
	sessionID = ResolveSessionID(payload, sessionID)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &InvokeError{SessionID: sessionID, Err: err}
	}

	input := &bedrockagentcore.InvokeAgentRuntimeInput{
		AgentRuntimeArn:  aws.String(r.cfg.RuntimeARN),
		RuntimeSessionId: aws.String(sessionID),
		Payload:          body,
	}
	if r.cfg.Qualifier != "" {
		input.Qualifier = aws.String(r.cfg.Qualifier)
	}

	out, err := r.client.InvokeAgentRuntime(ctx, input)
	if err != nil {
		return nil, &InvokeError{SessionID: sessionID, Err: err}
	}
	defer func() {
		if out.Response != nil {
			_ = out.Response.Close()
		}
	}()

	var raw []byte
	if out.Response != nil {
		raw, err = io.ReadAll(out.Response)
		if err != nil {
			return nil, &InvokeError{SessionID: sessionID, Err: err}
		}
	}

	return NormalizeResponse(raw), nil
}

// NormalizeResponse shapes a raw runtime response body into a map.
func NormalizeResponse(raw []byte) map[string]any {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return map[string]any{"result": string(raw)}
	}
	if m, ok := decoded.(map[string]any); ok {
		return m
	}
	return map[string]any{"result": decoded}
}
