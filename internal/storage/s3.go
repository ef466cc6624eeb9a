package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/sphenegem/gem-inventory-api/internal/config"
)

// S3API is the part of *s3.Client the store needs.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type S3Store struct {
	client     S3API
	presigner  Presigner
	bucket     string
	presignTTL time.Duration
}

// NewS3Store loads AWS configuration from the environment, preferring the
// static keys in conf when they are set.
func NewS3Store(ctx context.Context, conf *config.StorageConfig) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(conf.S3Region),
	}
	if conf.S3AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.S3AccessKeyID, conf.S3SecretKey, ""),
		))
	}

	awsConf, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("awsconfig.LoadDefaultConfig -> %w", err)
	}

	client := s3.NewFromConfig(awsConf, func(o *s3.Options) {
		if conf.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.S3Endpoint)
		}
		o.UsePathStyle = conf.S3UsePathStyle
	})

	return NewS3StoreWithClient(client, s3.NewPresignClient(client), conf.S3Bucket, conf.PresignTTL), nil
}

func NewS3StoreWithClient(client S3API, presigner Presigner, bucket string, presignTTL time.Duration) *S3Store {
	return &S3Store{
		client:     client,
		presigner:  presigner,
		bucket:     bucket,
		presignTTL: presignTTL,
	}
}

func (s *S3Store) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s.client.PutObject -> %w", err)
	}

	return nil
}

func (s *S3Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, ErrObjectNotFound
		}

		return nil, fmt.Errorf("s.client.GetObject -> %w", err)
	}

	return out.Body, nil
}

// URL returns a presigned GET link valid for the configured lifetime.
func (s *S3Store) URL(ctx context.Context, key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(o *s3.PresignOptions) {
		o.Expires = s.presignTTL
	})
	if err != nil {
		return "", fmt.Errorf("s.presigner.PresignGetObject -> %w", err)
	}

	return req.URL, nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s.client.DeleteObject -> %w", err)
	}

	return nil
}
