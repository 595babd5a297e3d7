package presign

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOfflineClient() *s3.Client {
	cfg := aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKID", "SECRET", ""),
	}
	return s3.NewFromConfig(cfg)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"my file.pdf", "my_file.pdf"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{"résumé.pdf", "r_sum_.pdf"},
		{"a-b_c.1.png", "a-b_c.1.png"},
		{"spaces  and\ttabs", "spaces__and_tabs"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestUploadKey(t *testing.T) {
	key := UploadKey(1700000000000, "my report.pdf")
	assert.Equal(t, "uploads/1700000000000_my_report.pdf", key)
	assert.True(t, strings.HasPrefix(key, UploadPrefix))
}

func TestUploadURL(t *testing.T) {
	p := New(newOfflineClient(), "uploads-bucket", time.Minute)
	p.now = func() time.Time { return time.UnixMilli(1700000000000) }

	grant, err := p.UploadURL(context.Background(), "my report.pdf", "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, "uploads-bucket", grant.Bucket)
	assert.Equal(t, "uploads/1700000000000_my_report.pdf", grant.Key)

	u, err := url.Parse(grant.URL)
	require.NoError(t, err)
	assert.Contains(t, u.Host, "uploads-bucket")
	assert.Contains(t, u.RawQuery, "X-Amz-Signature")
	assert.Contains(t, u.RawQuery, "X-Amz-Expires=60")
}

func TestUploadURL_DefaultContentType(t *testing.T) {
	p := New(newOfflineClient(), "uploads-bucket", 0)

	grant, err := p.UploadURL(context.Background(), "blob.bin", "")
	require.NoError(t, err)
	assert.NotEmpty(t, grant.URL)
}

func TestUploadURL_Errors(t *testing.T) {
	t.Run("missing bucket", func(t *testing.T) {
		p := New(newOfflineClient(), "", time.Minute)
		_, err := p.UploadURL(context.Background(), "f.pdf", "")
		require.ErrorIs(t, err, ErrBucketNotConfigured)
	})

	t.Run("missing filename", func(t *testing.T) {
		p := New(newOfflineClient(), "uploads-bucket", time.Minute)
		_, err := p.UploadURL(context.Background(), "", "")
		require.ErrorIs(t, err, ErrFilenameRequired)
	})
}

func TestNew_DefaultExpiry(t *testing.T) {
	p := New(newOfflineClient(), "b", 0)
	assert.Equal(t, DefaultExpiry, p.expiry)

	p = New(newOfflineClient(), "b", -time.Second)
	assert.Equal(t, DefaultExpiry, p.expiry)
}
