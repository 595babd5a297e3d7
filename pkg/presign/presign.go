// Package presign issues presigned S3 PUT URLs so clients upload documents
// directly to object storage without routing bytes through the service.
package presign

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultExpiry bounds presigned URL validity when none is configured.
const DefaultExpiry = 15 * time.Minute

// UploadPrefix is the key prefix for client uploads.
const UploadPrefix = "uploads/"

// ErrBucketNotConfigured indicates presigning was requested without an
// upload bucket.
var ErrBucketNotConfigured = errors.New("upload bucket is not set")

// ErrFilenameRequired indicates the request carried no filename.
var ErrFilenameRequired = errors.New("filename is required")

// Upload is a presigned upload grant.
type Upload struct {
	URL    string `json:"url"`
	Key    string `json:"key"`
	Bucket string `json:"bucket"`
}

// Presigner issues upload grants against a fixed bucket.
type Presigner struct {
	presign *s3.PresignClient
	bucket  string
	expiry  time.Duration

	now func() time.Time
}

// New builds a Presigner from a configured S3 client.
func New(client *s3.Client, bucket string, expiry time.Duration) *Presigner {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Presigner{
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		expiry:  expiry,
		now:     time.Now,
	}
}

// UploadURL returns a presigned PUT grant for a fresh upload key derived
// from the client's filename.
func (p *Presigner) UploadURL(ctx context.Context, filename, contentType string) (*Upload, error) {
	if p.bucket == "" {
		return nil, ErrBucketNotConfigured
	}
	if filename == "" {
		return nil, ErrFilenameRequired
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := UploadKey(p.now().UnixMilli(), filename)

	req, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	return &Upload{URL: req.URL, Key: key, Bucket: p.bucket}, nil
}

var unsafeChars = regexp.MustCompile(`[^\w.\-]`)

// UploadKey composes the object key for an upload: a millisecond timestamp
// plus the sanitized client filename under the uploads prefix.
func UploadKey(millis int64, filename string) string {
	return fmt.Sprintf("%s%d_%s", UploadPrefix, millis, SanitizeFilename(filename))
}

// SanitizeFilename replaces everything outside [A-Za-z0-9_.-] with "_".
func SanitizeFilename(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}
