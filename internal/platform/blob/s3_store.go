// Package blob uploads list images to S3 compatible object storage.
package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/supplier-ledger/internal/config"
)

// Store uploads bytes and returns a URL, or "" when the upload failed
type Store interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) string
}

// Disabled never uploads
type Disabled struct{}

func (Disabled) Upload(context.Context, string, []byte, string) string {
	return ""
}

// ObjectAPI is the subset of the S3 client the store uses
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// Presigner issues time-limited GET urls
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Store implements Store on S3, MinIO or any S3 compatible endpoint
type S3Store struct {
	client        ObjectAPI
	presigner     Presigner
	bucket        string
	publicBaseURL string
	presignExpiry time.Duration
	logger        *slog.Logger
}

// NewS3Store builds a client from static credentials. An empty endpoint means AWS itself.
func NewS3Store(ctx context.Context, logger *slog.Logger, cfg *config.BlobConfig) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("blob bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return newS3Store(client, s3.NewPresignClient(client), logger, cfg), nil
}

func newS3Store(client ObjectAPI, presigner Presigner, logger *slog.Logger, cfg *config.BlobConfig) *S3Store {
	expiry := cfg.PresignExpiry
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &S3Store{
		client:        client,
		presigner:     presigner,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		presignExpiry: expiry,
		logger:        logger,
	}
}

// EnsureBucket creates the bucket when it does not exist yet
func (s *S3Store) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating blob bucket", "bucket", s.bucket)
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Upload puts data under key. Failures are logged and reported as "".
func (s *S3Store) Upload(ctx context.Context, key string, data []byte, contentType string) string {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		s.logger.Warn("Failed to upload blob", "key", key, "error", err)
		return ""
	}

	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + strings.TrimLeft(key, "/")
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.presignExpiry))
	if err != nil {
		s.logger.Warn("Failed to presign blob url", "key", key, "error", err)
		return ""
	}
	return req.URL
}
