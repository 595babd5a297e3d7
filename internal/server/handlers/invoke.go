package handlers

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/quizforge/quizforge/pkg/agent"
	"github.com/quizforge/quizforge/pkg/job"
)

// InvokeHandlers serves the synchronous agent-invocation path: the same
// payload contract as job submission, but the caller waits for the result.
type InvokeHandlers struct {
	Invoker agent.Invoker
	Mock    bool
	Logger  *zap.Logger
}

// Invoke handles POST /invoke.
func (h *InvokeHandlers) Invoke(w http.ResponseWriter, r *http.Request) {
	body := DecodeBody(r)

	kind, err := job.Classify(body)
	if err != nil {
		WriteFlatError(w, http.StatusBadRequest, "invalid payload",
			map[string]any{"usage": job.UsageExample()})
		return
	}

	if h.Mock {
		WriteJSON(w, http.StatusOK, mockInvokeResult(kind, body))
		return
	}

	if h.Invoker == nil {
		WriteFlatError(w, http.StatusInternalServerError, agent.ErrNotConfigured.Error(), nil)
		return
	}

	sessionID, _ := body["session_id"].(string)
	result, err := h.Invoker.Invoke(r.Context(), body, sessionID)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("agent invocation failed", zap.Error(err))
		}
		WriteFlatError(w, http.StatusBadGateway, fmt.Sprintf("agent invoke failed: %v", err), nil)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

func mockInvokeResult(kind job.Kind, body map[string]any) map[string]any {
	if kind == job.KindPrompt {
		return map[string]any{"result": fmt.Sprintf("[MOCK] Echo: %s", body["prompt"])}
	}
	return map[string]any{
		"result": fmt.Sprintf("[MOCK] structured accepted for %v", body["s3_uri"]),
		"echo":   body,
	}
}
