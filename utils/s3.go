package utils

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/raushankrgupta/virtual-closet/config"
	"go.uber.org/zap"
)

// PresignExpiry is how long a presigned image URL stays valid
const PresignExpiry = 1 * time.Hour

// ImageStore uploads wardrobe images and hands out temporary URLs for them
type ImageStore interface {
	Presigner
	Upload(ctx context.Context, file io.Reader, objectKey string, contentType string) (string, error)
}

// S3ImageStore stores images in the configured S3 bucket
type S3ImageStore struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// NewS3ImageStore initializes the S3 client from the default AWS credential chain
func NewS3ImageStore(ctx context.Context) (*S3ImageStore, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(appConfig.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %w", err)
	}

	client := s3.NewFromConfig(cfg)
	zap.L().Info("S3 client initialized", zap.String("bucket", appConfig.AWSBucketName))
	return &S3ImageStore{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  appConfig.AWSBucketName,
	}, nil
}

// Upload uploads a file to S3 and returns the object key
func (s *S3ImageStore) Upload(ctx context.Context, file io.Reader, objectKey string, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return objectKey, nil
}

// PresignedURL generates a presigned GET URL for an object key
func (s *S3ImageStore) PresignedURL(ctx context.Context, objectKey string) (string, error) {
	request, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return "", fmt.Errorf("failed to sign request: %w", err)
	}

	return request.URL, nil
}
