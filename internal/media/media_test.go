package media

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	now := time.Unix(0, 42)
	tests := map[string]string{
		"mug.png":             "42-mug.png",
		"../../etc/passwd":    "42-passwd",
		`C:\Users\me\mug.png`: "42-mug.png",
		"blue mug.jpg":        "42-blue_mug.jpg",
		"":                    "42-upload",
		"dir/":                "42-dir",
	}
	for in, want := range tests {
		assert.Equal(t, want, objectName(in, now), in)
	}
}

func TestLocalStore_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocalStore(dir, "/uploads")
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "mug.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"), url)
	assert.True(t, strings.HasSuffix(url, "-mug.png"), url)

	b, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(b))
}

func TestLocalStore_CanceledContext(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Save(ctx, "mug.png", "", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func TestLocalStore_PartialWriteRemoved(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "/uploads")
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "mug.png", "", failingReader{})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

type fakeS3 struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_Save(t *testing.T) {
	fake := &fakeS3{}
	s := newS3Store(fake, S3Options{Bucket: "shop-images", Region: "eu-west-1"})

	url, err := s.Save(context.Background(), "mug.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	require.NotNil(t, fake.input)
	assert.Equal(t, "shop-images", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "image/png", aws.ToString(fake.input.ContentType))
	assert.Equal(t, "png-bytes", fake.body)

	key := aws.ToString(fake.input.Key)
	assert.True(t, strings.HasPrefix(key, "products/"), key)
	assert.Equal(t, "https://shop-images.s3.eu-west-1.amazonaws.com/"+key, url)
}

func TestS3Store_CustomEndpoint(t *testing.T) {
	fake := &fakeS3{}
	s := newS3Store(fake, S3Options{Bucket: "images", Endpoint: "http://minio:9000/"})

	url, err := s.Save(context.Background(), "mug.png", "", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Nil(t, fake.input.ContentType)
	assert.Equal(t, "http://minio:9000/images/"+aws.ToString(fake.input.Key), url)
}

func TestS3Store_UploadFailure(t *testing.T) {
	fake := &fakeS3{err: errors.New("access denied")}
	s := newS3Store(fake, S3Options{Bucket: "images", Region: "us-east-1"})

	_, err := s.Save(context.Background(), "mug.png", "", strings.NewReader("x"))
	assert.ErrorContains(t, err, "access denied")
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Options{Region: "us-east-1"})
	assert.Error(t, err)
}
