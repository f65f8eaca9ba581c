// Package storage provides the S3-backed blob store for uploaded media.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Options configures the S3 client. Endpoint is optional and overrides the
// AWS endpoint for S3-compatible stores.
type Options struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// S3Store uploads and deletes blobs in a single bucket and hands out
// public object URLs.
type S3Store struct {
	client *s3.Client
	opts   Options
}

// New builds an S3 client from static credentials.
func New(ctx context.Context, opts Options) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{client: client, opts: opts}, nil
}

// objectKey builds a collision-free key under the elite-cards prefix.
func objectKey(scope, filename string) string {
	return fmt.Sprintf("elite-cards/%s/%s-%d-%s", scope, uuid.New(), time.Now().UnixMilli(), filename)
}

// Upload stores the blob and returns its public URL.
func (s *S3Store) Upload(ctx context.Context, scope, filename, contentType string, body io.Reader) (string, error) {
	key := objectKey(scope, filename)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.opts.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}
	return s.objectURL(key), nil
}

// DeleteByURL removes the object referenced by a previously returned URL.
// An empty URL is a no-op so callers can pass the old reference unconditionally.
func (s *S3Store) DeleteByURL(ctx context.Context, objectURL string) error {
	if objectURL == "" {
		return nil
	}
	key, err := s.keyFromURL(objectURL)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Store) objectURL(key string) string {
	if s.opts.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.opts.Endpoint, "/"), s.opts.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.opts.Bucket, s.opts.Region, key)
}

func (s *S3Store) keyFromURL(objectURL string) (string, error) {
	u, err := url.Parse(objectURL)
	if err != nil {
		return "", fmt.Errorf("malformed object url: %w", err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	// Path-style URLs carry the bucket as the first segment.
	key = strings.TrimPrefix(key, s.opts.Bucket+"/")
	if key == "" {
		return "", fmt.Errorf("object url has no key: %s", objectURL)
	}
	return key, nil
}
