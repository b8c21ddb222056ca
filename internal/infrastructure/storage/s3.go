// Package storage archives generated documents in S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sangkips/backoffice-api/internal/config"
	"go.uber.org/zap"
)

// PutObjectAPI is the subset of the S3 client used for uploads.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Storage uploads objects and reports the URL they are served from.
type S3Storage struct {
	client  PutObjectAPI
	bucket  string
	baseURL string
	logger  *zap.Logger
}

// NewS3Storage builds a client for AWS S3 or any compatible endpoint
// (Cloudflare R2, MinIO). A custom endpoint switches to path-style addressing.
func NewS3Storage(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3StorageWithClient(client, cfg, logger), nil
}

// NewS3StorageWithClient wires an existing client.
func NewS3StorageWithClient(client PutObjectAPI, cfg config.StorageConfig, logger *zap.Logger) *S3Storage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &S3Storage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL(cfg),
		logger:  logger,
	}
}

// baseURL prefers the configured public URL, then the endpoint in path style,
// then the bucket's virtual-hosted AWS address.
func baseURL(cfg config.StorageConfig) string {
	switch {
	case cfg.PublicURL != "":
		return strings.TrimRight(cfg.PublicURL, "/")
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

// Put uploads body under key and returns its URL.
func (s *S3Storage) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	key = strings.TrimLeft(key, "/")
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	s.logger.Info("object uploaded", zap.String("bucket", s.bucket), zap.String("key", key), zap.Int("bytes", len(body)))
	return s.URL(key), nil
}

// URL returns the address an object is served from, escaping each path segment.
func (s *S3Storage) URL(key string) string {
	segments := strings.Split(strings.TrimLeft(key, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.baseURL + "/" + strings.Join(segments, "/")
}
