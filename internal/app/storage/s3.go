package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"emclicker/internal/pkg/logx"
)

// s3Store uploads avatars to an S3-compatible bucket. The returned URL is
// either the configured public base URL plus the key, or the path-style
// endpoint URL when no public base is set.
type s3Store struct {
	cfg      Config
	client   *s3.Client
	uploader *manager.Uploader
}

// newS3Store initializes the S3 client using a custom configuration that
// supports S3-compatible endpoints.
func newS3Store(cfg Config) (*s3Store, error) {
	sdkCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID,
			cfg.S3SecretAccessKey,
			"",
		)),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		logx.Error(err, "Failed to load AWS SDK config")
		return nil, errors.New("failed to initialize S3 client configuration")
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})

	return &s3Store{
		cfg:      cfg,
		client:   client,
		uploader: manager.NewUploader(client),
	}, nil
}

// Put uploads the blob under the given key.
func (s *s3Store) Put(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      &s.cfg.S3BucketName,
		Key:         &key,
		Body:        body,
		ContentType: &contentType,
	})

	if err != nil {
		logx.Error(err, "S3 upload failed", "key", key)
		return "", errors.New("failed to upload file to S3")
	}

	if base := strings.TrimSuffix(s.cfg.S3PublicBaseURL, "/"); base != "" {
		return fmt.Sprintf("%s/%s", base, key), nil
	}

	endpoint := strings.TrimSuffix(s.cfg.S3Endpoint, "/")
	return fmt.Sprintf("%s/%s/%s", endpoint, s.cfg.S3BucketName, key), nil
}
