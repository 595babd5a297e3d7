package handlers

import (
	"errors"
	"net/http"

	apperrors "github.com/quizforge/quizforge/internal/errors"
	"github.com/quizforge/quizforge/pkg/presign"
)

// UploadHandlers serves presigned document-upload URLs.
type UploadHandlers struct {
	Presigner *presign.Presigner
}

type uploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

// Create handles POST /uploads: issue a presigned PUT grant for a fresh
// upload key.
func (h *UploadHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	grant, err := h.Presigner.UploadURL(r.Context(), req.Filename, req.ContentType)
	if err != nil {
		switch {
		case errors.Is(err, presign.ErrBucketNotConfigured):
			apperrors.RespondWithError(w, r, apperrors.Configuration(err.Error()))
		case errors.Is(err, presign.ErrFilenameRequired):
			apperrors.RespondWithError(w, r, apperrors.Validation(err.Error()))
		default:
			apperrors.RespondWithError(w, r, apperrors.Internal(err))
		}
		return
	}

	WriteJSON(w, http.StatusOK, grant)
}
