package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/quizforge/quizforge/internal/jobs"
	"github.com/quizforge/quizforge/pkg/job"
	"github.com/quizforge/quizforge/pkg/jobstore"
)

// JobHandlers serves the asynchronous job surface: submission, and status
// polling by job id.
//
// Error bodies on this surface keep the flat {"error": ...} shape that
// polling clients already parse.
type JobHandlers struct {
	Svc    *jobs.Service
	Logger *zap.Logger
}

// Submit handles POST /jobs: validate, persist PENDING, dispatch the worker,
// and return 202 with the job id. Failures are never retried here.
func (h *JobHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	body := DecodeBody(r)

	record, err := h.Svc.Submit(r.Context(), body)
	if err != nil {
		switch {
		case errors.Is(err, job.ErrInvalidPayload):
			WriteFlatError(w, http.StatusBadRequest, "invalid payload",
				map[string]any{"usage": job.UsageExample()})
		case errors.Is(err, jobs.ErrStoreNotConfigured):
			WriteFlatError(w, http.StatusInternalServerError, jobs.ErrStoreNotConfigured.Error(), nil)
		default:
			h.logger().Error("job submission failed", zap.Error(err))
			WriteFlatError(w, http.StatusInternalServerError, err.Error(), nil)
		}
		return
	}

	WriteJSON(w, http.StatusAccepted, map[string]any{
		"jobId":  record.JobID,
		"status": record.Status,
	})
}

// Status handles GET /jobs?jobId=<id> and GET /jobs/{id}: return the full
// current record. Read-only and idempotent.
func (h *JobHandlers) Status(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Query().Get("jobId")
	if jobID == "" {
		jobID = chi.URLParam(r, "id")
	}
	if jobID == "" {
		WriteFlatError(w, http.StatusBadRequest, "jobId is required", nil)
		return
	}

	record, err := h.Svc.Status(r.Context(), jobID)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrStoreNotConfigured):
			WriteFlatError(w, http.StatusInternalServerError, jobs.ErrStoreNotConfigured.Error(), nil)
		case jobstore.IsNotFound(err):
			WriteFlatError(w, http.StatusNotFound, "job not found", nil)
		default:
			h.logger().Error("job status lookup failed",
				zap.String("job_id", jobID),
				zap.Error(err))
			WriteFlatError(w, http.StatusInternalServerError, err.Error(), nil)
		}
		return
	}

	WriteJSON(w, http.StatusOK, record)
}

func (h *JobHandlers) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}
