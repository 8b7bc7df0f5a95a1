package media

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options configures an S3Store.
type S3Options struct {
	Bucket    string // Bucket name
	Region    string // AWS region
	Endpoint  string // optional, for MinIO and other S3-compatible backends
	AccessKey string // Static access key, optional
	SecretKey string // Static secret key
}

// putObjectAPI is the slice of the S3 client the store uses.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads images to an S3 bucket.
type S3Store struct {
	client  putObjectAPI // S3 client
	bucket  string       // Target bucket
	baseURL string       // Public URL prefix of the bucket
}

// NewS3Store builds an S3 client from opts.
func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...) // Load AWS config
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true // MinIO wants path-style URLs
		}
	})
	return newS3Store(client, opts), nil
}

func newS3Store(client putObjectAPI, opts S3Options) *S3Store {
	base := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
	if opts.Endpoint != "" {
		base = strings.TrimRight(opts.Endpoint, "/") + "/" + opts.Bucket
	}
	return &S3Store{client: client, bucket: opts.Bucket, baseURL: base}
}

// Save uploads r under a unique key and returns its object URL.
func (s *S3Store) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	key := "products/" + objectName(filename, time.Now()) // Object key
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil { // Upload the object
		return "", fmt.Errorf("upload image: %w", err)
	}
	return s.baseURL + "/" + key, nil
}
