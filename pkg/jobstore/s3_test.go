package jobstore

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge/pkg/job"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid minimal",
			cfg:  Config{Bucket: "jobs"},
		},
		{
			name:    "missing bucket",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name:    "access key without secret",
			cfg:     Config{Bucket: "jobs", AccessKeyID: "AKID"},
			wantErr: true,
		},
		{
			name:    "secret without access key",
			cfg:     Config{Bucket: "jobs", SecretAccessKey: "secret"},
			wantErr: true,
		},
		{
			name: "explicit credentials pair",
			cfg:  Config{Bucket: "jobs", AccessKeyID: "AKID", SecretAccessKey: "secret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				var cfgErr *ConfigError
				require.ErrorAs(t, err, &cfgErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestS3Store_KeyLayout(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{"default prefix", "", "jobs/job-1.json"},
		{"custom prefix", "state/", "state/job-1.json"},
		{"prefix without trailing slash", "state", "state/job-1.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := New(context.Background(), Config{Bucket: "b", Prefix: tt.prefix, Region: "us-east-1"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, store.Key("job-1"))
		})
	}
}

func TestS3Store_WrapError(t *testing.T) {
	store := &S3Store{bucket: "jobs-bucket"}

	tests := []struct {
		name         string
		err          error
		wantNotFound bool
		wantUnavail  bool
	}{
		{
			name:         "NoSuchKey API error",
			err:          &smithy.GenericAPIError{Code: "NoSuchKey", Message: "missing"},
			wantNotFound: true,
		},
		{
			name:         "NotFound API error",
			err:          &smithy.GenericAPIError{Code: "NotFound", Message: "missing"},
			wantNotFound: true,
		},
		{
			name:        "ServiceUnavailable API error",
			err:         &smithy.GenericAPIError{Code: "ServiceUnavailable", Message: "down"},
			wantUnavail: true,
		},
		{
			name:        "throttled API error",
			err:         &smithy.GenericAPIError{Code: "SlowDown", Message: "throttle"},
			wantUnavail: true,
		},
		{
			name: "plain transport error stays unclassified",
			err:  errors.New("dial tcp: connection refused"),
		},
		{
			name:         "message fallback 404",
			err:          errors.New("https response error StatusCode: 404"),
			wantNotFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := store.wrapError("Get", "jobs/x.json", tt.err)

			var storeErr *StoreError
			require.ErrorAs(t, wrapped, &storeErr)
			assert.Equal(t, "jobs-bucket", storeErr.Bucket)

			assert.Equal(t, tt.wantNotFound, IsNotFound(wrapped))
			assert.Equal(t, tt.wantUnavail, errors.Is(wrapped, ErrUnavailable))
		})
	}
}

func TestS3Store_PutValidation(t *testing.T) {
	store, err := New(context.Background(), Config{Bucket: "b", Region: "us-east-1"})
	require.NoError(t, err)

	assert.Error(t, store.Put(context.Background(), nil))
	assert.Error(t, store.Put(context.Background(), &job.Record{}))
}
