package job

import (
	"errors"
	"strings"
)

// Kind classifies an accepted submission body.
type Kind string

const (
	// KindPrompt is a free-text prompt submission.
	KindPrompt Kind = "prompt"

	// KindStructured is a document-quiz request carrying a source reference
	// plus generation parameters.
	KindStructured Kind = "structured"
)

// ErrInvalidPayload indicates the body is neither a usable prompt nor a
// complete structured request.
var ErrInvalidPayload = errors.New("invalid payload")

// StructuredFields are the keys a structured request must carry. Presence is
// all that is checked: field values are deliberately not type- or
// range-validated here, so malformed values surface as processing failures
// rather than being rejected up front.
var StructuredFields = []string{"s3_uri", "target", "difficulty", "num_questions"}

// Classify decides whether body is an acceptable submission and which shape
// it takes. A non-empty prompt string (after trimming) wins over the
// structured form.
func Classify(body map[string]any) (Kind, error) {
	if p, ok := body["prompt"].(string); ok && strings.TrimSpace(p) != "" {
		return KindPrompt, nil
	}
	for _, f := range StructuredFields {
		if _, ok := body[f]; !ok {
			return "", ErrInvalidPayload
		}
	}
	return KindStructured, nil
}

// UsageExample documents both accepted request shapes. It is returned with
// rejection responses so callers can self-correct.
func UsageExample() map[string]any {
	return map[string]any{
		"prompt": map[string]any{"prompt": "any text"},
		"structured": map[string]any{
			"s3_uri":        "s3://bucket/key",
			"target":        "high school",
			"difficulty":    "normal",
			"num_questions": 5,
		},
	}
}
