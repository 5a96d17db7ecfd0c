package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrDisabled is returned when no bucket is configured
var ErrDisabled = errors.New("object storage is not configured")

// ObjectStorage is the collaborator interface for the book/cover bucket.
// The backend treats uploads as an already-working external service.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Remove(ctx context.Context, keys ...string) error
}

// S3Storage stores objects in an S3 bucket
type S3Storage struct {
	client  *s3.Client
	bucket  string
	region  string
	enabled bool
}

// NewS3Storage creates an S3-backed object store. With an empty bucket name
// the store is disabled and every upload fails with ErrDisabled; callers
// surface that as a server misconfiguration, not a client error.
func NewS3Storage(ctx context.Context, region, bucket string) (*S3Storage, error) {
	if bucket == "" {
		log.Println("Object storage disabled: STORAGE_BUCKET not configured")
		return &S3Storage{enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Storage{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		region:  region,
		enabled: true,
	}, nil
}

// Upload stores an object and returns its public URL
func (s *S3Storage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if !s.enabled {
		return "", ErrDisabled
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// Remove deletes objects, used to clean up after a failed multi-file upload
func (s *S3Storage) Remove(ctx context.Context, keys ...string) error {
	if !s.enabled {
		return ErrDisabled
	}

	for _, key := range keys {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}
	return nil
}
