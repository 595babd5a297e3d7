package jobstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/quizforge/quizforge/pkg/job"
)

// S3Store persists job records as JSON objects at <prefix><jobId>.json.
//
// S3 gives last-write-wins per key natively, which is the whole consistency
// contract: concurrent writers to the same job id are not merged.
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

var _ Store = (*S3Store)(nil)

// New creates an S3-backed job store.
//
// The store uses AWS SDK v2's default credential chain unless explicit
// credentials are provided in the config.
func New(ctx context.Context, cfg Config) (*S3Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return &S3Store{
		client: client,
		bucket: cfg.Bucket,
		prefix: prefix,
	}, nil
}

// NewClient builds a configured S3 client. It is shared by the job store,
// the presigner, and the document fetcher so they all resolve credentials
// and endpoints the same way. Bucket is not required here; each consumer
// checks its own bucket configuration.
func NewClient(ctx context.Context, cfg Config) (*s3.Client, error) {
	awsCfg, err := LoadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, &StoreError{Op: "NewClient", Bucket: cfg.Bucket, Err: err}
	}

	s3Opts := []func(*s3.Options){
		func(o *s3.Options) {
			if cfg.ForcePathStyle {
				o.UsePathStyle = true
			}
		},
	}
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	return s3.NewFromConfig(awsCfg, s3Opts...), nil
}

// LoadAWSConfig builds the AWS configuration with appropriate credentials.
// The agent runtime, dispatcher, and extractor clients reuse it so every
// AWS client in the process resolves identity identically.
func LoadAWSConfig(ctx context.Context, cfg Config) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error

	// Only apply explicit region if the caller set one. Let the SDK resolve
	// from env/profile first.
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		staticCreds := credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"", // session token (empty for long-term credentials)
		)
		opts = append(opts, awsconfig.WithCredentialsProvider(staticCreds))
	}

	return awsconfig.LoadDefaultConfig(ctx, opts...)
}

// Key returns the object key for a job id.
func (s *S3Store) Key(jobID string) string {
	return s.prefix + jobID + ".json"
}

// Put persists the full record, overwriting any existing object for its key.
func (s *S3Store) Put(ctx context.Context, record *job.Record) error {
	if record == nil {
		return &StoreError{Op: "Put", Bucket: s.bucket, Err: errors.New("job record is nil")}
	}
	jobID := strings.TrimSpace(record.JobID)
	if jobID == "" {
		return &StoreError{Op: "Put", Bucket: s.bucket, Err: errors.New("jobId is required")}
	}

	b, err := json.Marshal(record)
	if err != nil {
		return &StoreError{Op: "Put", Bucket: s.bucket, Key: s.Key(jobID), Err: err}
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.Key(jobID)),
		Body:        bytes.NewReader(b),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return s.wrapError("Put", s.Key(jobID), err)
	}
	return nil
}

// Get returns the current record for the id.
func (s *S3Store) Get(ctx context.Context, jobID string) (*job.Record, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, &StoreError{Op: "Get", Bucket: s.bucket, Err: errors.New("jobId is required")}
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.Key(jobID)),
	})
	if err != nil {
		return nil, s.wrapError("Get", s.Key(jobID), err)
	}
	defer func() { _ = out.Body.Close() }()

	raw, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, s.wrapError("Get", s.Key(jobID), err)
	}

	var record job.Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, &StoreError{Op: "Get", Bucket: s.bucket, Key: s.Key(jobID), Err: err}
	}
	return &record, nil
}

// wrapError converts S3 errors to store errors with appropriate sentinels.
func (s *S3Store) wrapError(op, key string, err error) error {
	wrapped := &StoreError{Op: op, Bucket: s.bucket, Key: key, Err: err}

	// Check for specific S3 error types first
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
		wrapped.Err = ErrNotFound
		return wrapped
	}

	// Check smithy API errors for error codes
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			wrapped.Err = ErrNotFound
		case "ServiceUnavailable", "InternalError", "SlowDown":
			wrapped.Err = ErrUnavailable
		}
		return wrapped
	}

	// Fallback: check error message for common cases
	msg := err.Error()
	switch {
	case strings.Contains(msg, "NoSuchKey") || strings.Contains(msg, "NotFound") || strings.Contains(msg, "404"):
		wrapped.Err = ErrNotFound
	case strings.Contains(msg, "ServiceUnavailable") || strings.Contains(msg, "503"):
		wrapped.Err = ErrUnavailable
	}
	return wrapped
}
