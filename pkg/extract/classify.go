package extract

import "strings"

// DocKind is the detected document type driving content-block construction.
type DocKind string

const (
	DocPDF  DocKind = "pdf"
	DocPNG  DocKind = "png"
	DocJPEG DocKind = "jpeg"
)

// ClassifyDocument detects the document type from the object key extension,
// falling back to the stored content type. Anything unrecognized is treated
// as JPEG, which matches the upload surface (images and PDFs only).
func ClassifyDocument(key, contentType string) DocKind {
	lower := strings.ToLower(key)
	ct := strings.ToLower(contentType)

	switch {
	case strings.HasSuffix(lower, ".pdf") || strings.Contains(ct, "pdf"):
		return DocPDF
	case strings.HasSuffix(lower, ".png") || strings.Contains(ct, "png"):
		return DocPNG
	default:
		return DocJPEG
	}
}
