// Package extract turns a stored image or PDF into extracted text and a
// generated quiz.
//
// The flow is two model calls: a multimodal extraction pass over the raw
// document bytes, then quiz generation over the extracted text. Quiz
// generation prefers the agent runtime when the request carries structured
// parameters and an agent is configured; otherwise it falls back to a local
// model call.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/quizforge/quizforge/pkg/agent"
)

// ErrModelNotConfigured indicates extraction was requested without a model id.
var ErrModelNotConfigured = errors.New("extraction model id is not set")

const (
	extractInstruction = "Extract the main body text from the following image/document exactly, preserving paragraphs."

	extractMaxTokens   = int32(1800)
	extractTemperature = float32(0.0)

	quizMaxTokens   = int32(1500)
	quizTemperature = float32(0.2)

	// PreviewLen bounds the extracted-text preview returned to clients.
	PreviewLen = 400
)

// Request identifies the stored document and optional quiz parameters.
type Request struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`

	Target       string `json:"target,omitempty"`
	Difficulty   string `json:"difficulty,omitempty"`
	NumQuestions *int   `json:"num_questions,omitempty"`
}

// Structured reports whether the request carries the full set of quiz
// generation parameters.
func (r *Request) Structured() bool {
	return r.Target != "" && r.Difficulty != "" && r.NumQuestions != nil
}

// Result is the extraction + quiz outcome.
type Result struct {
	ExtractedPreview string `json:"extractedPreview,omitempty"`
	Extracted        string `json:"extracted,omitempty"`
	Note             string `json:"note,omitempty"`
	Quiz             any    `json:"quiz,omitempty"`
	Source           string `json:"source,omitempty"`
}

// Extractor runs the extraction and quiz-generation flow.
type Extractor struct {
	s3Client *s3.Client
	brClient *bedrockruntime.Client
	invoker  agent.Invoker
	modelID  string
	logger   *zap.Logger
}

// New builds an Extractor. invoker may be nil when no agent runtime is
// configured; quiz generation then always uses the local model.
func New(s3Client *s3.Client, brClient *bedrockruntime.Client, invoker agent.Invoker, modelID string, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		s3Client: s3Client,
		brClient: brClient,
		invoker:  invoker,
		modelID:  modelID,
		logger:   logger,
	}
}

// Run fetches the document, extracts its text, and generates a quiz.
func (e *Extractor) Run(ctx context.Context, req Request) (*Result, error) {
	if e.modelID == "" {
		return nil, ErrModelNotConfigured
	}

	doc, err := e.fetch(ctx, req.Bucket, req.Key)
	if err != nil {
		return nil, err
	}

	extracted, err := e.extractText(ctx, req.Key, doc)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}
	if extracted == "" {
		// Not an error: the document may be a blank page or beyond the
		// model's ability. The client decides what to do next.
		return &Result{
			Extracted: "",
			Note:      "text extraction produced no content (check image quality or model settings)",
		}, nil
	}

	if req.Structured() && e.invoker != nil {
		if res, err := e.quizViaAgent(ctx, req); err == nil {
			res.ExtractedPreview = preview(extracted)
			return res, nil
		} else {
			e.logger.Warn("agent quiz generation failed, falling back to local model",
				zap.String("key", req.Key),
				zap.Error(err))
		}
	}

	quiz, err := e.quizViaModel(ctx, extracted)
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}

	return &Result{
		ExtractedPreview: preview(extracted),
		Quiz:             quiz,
	}, nil
}

type document struct {
	bytes       []byte
	contentType string
}

func (e *Extractor) fetch(ctx context.Context, bucket, key string) (*document, error) {
	head, err := e.s3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("head document: %w", err)
	}

	obj, err := e.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	defer func() { _ = obj.Body.Close() }()

	raw, err := io.ReadAll(obj.Body)
	if err != nil {
		return nil, fmt.Errorf("read document body: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("document body is empty")
	}

	return &document{bytes: raw, contentType: aws.ToString(head.ContentType)}, nil
}

// extractText runs the multimodal extraction pass.
func (e *Extractor) extractText(ctx context.Context, key string, doc *document) (string, error) {
	content := []brtypes.ContentBlock{
		&brtypes.ContentBlockMemberText{Value: extractInstruction},
		buildDocumentBlock(key, doc),
	}

	out, err := e.brClient.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(e.modelID),
		Messages: []brtypes.Message{{
			Role:    brtypes.ConversationRoleUser,
			Content: content,
		}},
		InferenceConfig: &brtypes.InferenceConfiguration{
			MaxTokens:   aws.Int32(extractMaxTokens),
			Temperature: aws.Float32(extractTemperature),
		},
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(collectText(out.Output)), nil
}

// quizViaAgent forwards the structured request to the agent runtime.
func (e *Extractor) quizViaAgent(ctx context.Context, req Request) (*Result, error) {
	payload := map[string]any{
		"s3_uri":        fmt.Sprintf("s3://%s/%s", req.Bucket, req.Key),
		"target":        req.Target,
		"difficulty":    req.Difficulty,
		"num_questions": *req.NumQuestions,
	}
	quiz, err := e.invoker.Invoke(ctx, payload, "")
	if err != nil {
		return nil, err
	}
	return &Result{Quiz: quiz, Source: "agentcore"}, nil
}

// quizViaModel generates the quiz locally from the extracted text.
func (e *Extractor) quizViaModel(ctx context.Context, extracted string) (any, error) {
	out, err := e.brClient.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(e.modelID),
		Messages: []brtypes.Message{{
			Role: brtypes.ConversationRoleUser,
			Content: []brtypes.ContentBlock{
				&brtypes.ContentBlockMemberText{Value: QuizPrompt(extracted)},
			},
		}},
		InferenceConfig: &brtypes.InferenceConfiguration{
			MaxTokens:   aws.Int32(quizMaxTokens),
			Temperature: aws.Float32(quizTemperature),
		},
	})
	if err != nil {
		return nil, err
	}

	return SafeJSON(strings.TrimSpace(collectText(out.Output))), nil
}

// buildDocumentBlock picks the content-block shape by file type: PDFs travel
// as document blocks, images as image blocks.
func buildDocumentBlock(key string, doc *document) brtypes.ContentBlock {
	kind := ClassifyDocument(key, doc.contentType)
	if kind == DocPDF {
		return &brtypes.ContentBlockMemberDocument{Value: brtypes.DocumentBlock{
			Format: brtypes.DocumentFormatPdf,
			Name:   aws.String(path.Base(key)),
			Source: &brtypes.DocumentSourceMemberBytes{Value: doc.bytes},
		}}
	}

	format := brtypes.ImageFormatJpeg
	if kind == DocPNG {
		format = brtypes.ImageFormatPng
	}
	return &brtypes.ContentBlockMemberImage{Value: brtypes.ImageBlock{
		Format: format,
		Source: &brtypes.ImageSourceMemberBytes{Value: doc.bytes},
	}}
}

// collectText concatenates the text blocks of a Converse response.
func collectText(output brtypes.ConverseOutput) string {
	msg, ok := output.(*brtypes.ConverseOutputMemberMessage)
	if !ok {
		return ""
	}
	var sb strings.Builder
	for _, block := range msg.Value.Content {
		if text, ok := block.(*brtypes.ContentBlockMemberText); ok {
			sb.WriteString(text.Value)
		}
	}
	return sb.String()
}

// SafeJSON decodes s as JSON, returning the raw string when it is not valid
// JSON. Model output is not guaranteed to be parseable.
func SafeJSON(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}

func preview(s string) string {
	runes := []rune(s)
	if len(runes) <= PreviewLen {
		return s
	}
	return string(runes[:PreviewLen])
}
