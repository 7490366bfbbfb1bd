package artifact

import (
	"bytes"
	"context"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pulseboard/pulseboard/internal/config"
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/logger"
)

type s3Store struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	keyPrefix string
	expiry    time.Duration
	log       *logger.Logger
}

// NewS3Store creates an S3-backed artifact store. Static credentials from
// the configuration take precedence over the default AWS credential chain.
func NewS3Store(cfg *config.Configuration, log *logger.Logger) (Store, error) {
	s3cfg := cfg.Artifact.S3

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(s3cfg.Region),
	}
	if s3cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s3cfg.AccessKeyID, s3cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load AWS configuration").
			Mark(ierr.ErrInternal)
	}

	client := s3.NewFromConfig(awsCfg)

	return &s3Store{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    s3cfg.Bucket,
		keyPrefix: s3cfg.KeyPrefix,
		expiry:    s3cfg.PresignExpiry,
		log:       log,
	}, nil
}

func (s *s3Store) objectKey(key string) string {
	if s.keyPrefix == "" {
		return key
	}
	return path.Join(s.keyPrefix, key)
}

func (s *s3Store) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to upload artifact to S3").
			WithReportableDetails(map[string]interface{}{
				"bucket": s.bucket,
				"key":    key,
			}).
			Mark(ierr.ErrHTTPClient)
	}
	s.log.Debugw("uploaded artifact", "bucket", s.bucket, "key", key, "bytes", len(data))
	return nil
}

func (s *s3Store) DownloadURL(ctx context.Context, key string) (string, error) {
	result, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to generate presigned URL").
			Mark(ierr.ErrHTTPClient)
	}
	return result.URL, nil
}

func (s *s3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete artifact from S3").
			Mark(ierr.ErrHTTPClient)
	}
	return nil
}
