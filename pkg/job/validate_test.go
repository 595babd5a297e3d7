package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		body     map[string]any
		wantKind Kind
		wantErr  bool
	}{
		{
			name:     "prompt",
			body:     map[string]any{"prompt": "hello"},
			wantKind: KindPrompt,
		},
		{
			name:     "prompt with surrounding whitespace",
			body:     map[string]any{"prompt": "  hello  "},
			wantKind: KindPrompt,
		},
		{
			name:    "whitespace-only prompt",
			body:    map[string]any{"prompt": "   "},
			wantErr: true,
		},
		{
			name:    "prompt of wrong type",
			body:    map[string]any{"prompt": 42},
			wantErr: true,
		},
		{
			name: "structured",
			body: map[string]any{
				"s3_uri":        "s3://bucket/key",
				"target":        "high school",
				"difficulty":    "normal",
				"num_questions": 5,
			},
			wantKind: KindStructured,
		},
		{
			name: "structured with odd value types is still accepted",
			body: map[string]any{
				"s3_uri":        12,
				"target":        nil,
				"difficulty":    []string{"x"},
				"num_questions": "five",
			},
			wantKind: KindStructured,
		},
		{
			name: "structured missing one field",
			body: map[string]any{
				"s3_uri":     "s3://bucket/key",
				"target":     "high school",
				"difficulty": "normal",
			},
			wantErr: true,
		},
		{
			name: "prompt wins over structured",
			body: map[string]any{
				"prompt":        "hello",
				"s3_uri":        "s3://bucket/key",
				"target":        "x",
				"difficulty":    "y",
				"num_questions": 1,
			},
			wantKind: KindPrompt,
		},
		{
			name:    "empty body",
			body:    map[string]any{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := Classify(tt.body)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPayload)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestUsageExample(t *testing.T) {
	usage := UsageExample()

	require.Contains(t, usage, "prompt")
	require.Contains(t, usage, "structured")

	structured, ok := usage["structured"].(map[string]any)
	require.True(t, ok)
	for _, field := range StructuredFields {
		assert.Contains(t, structured, field)
	}
}
