package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/quizforge/quizforge/internal/errors"
	"github.com/quizforge/quizforge/pkg/extract"
)

// ExtractHandlers serves the synchronous extraction + quiz-generation path.
type ExtractHandlers struct {
	Extractor *extract.Extractor
	Logger    *zap.Logger
}

// Run handles POST /extract: fetch the stored document, extract its text
// with the multimodal model, and generate a quiz.
func (h *ExtractHandlers) Run(w http.ResponseWriter, r *http.Request) {
	var req extract.Request
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Bucket == "" || req.Key == "" {
		apperrors.RespondWithError(w, r, apperrors.Validation("bucket and key are required"))
		return
	}

	result, err := h.Extractor.Run(r.Context(), req)
	if err != nil {
		if errors.Is(err, extract.ErrModelNotConfigured) {
			apperrors.RespondWithError(w, r, apperrors.Configuration(err.Error()))
			return
		}
		if h.Logger != nil {
			h.Logger.Error("extraction failed",
				zap.String("bucket", req.Bucket),
				zap.String("key", req.Key),
				zap.Error(err))
		}
		apperrors.RespondWithError(w, r, apperrors.Upstream(err))
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
