package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"leadcapture/internal/domain"
)

// Config holds settings for the S3-backed artifact store.
type Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// PublicURLBase, when set, is used to build the returned reference;
	// otherwise the standard virtual-hosted S3 URL is used.
	PublicURLBase string
}

// NewArtifactStore returns an ArtifactStore backed by S3 when a bucket is
// configured, or a no-op store otherwise.
func NewArtifactStore(cfg Config, logger *slog.Logger) domain.ArtifactStore {
	if cfg.Bucket == "" {
		logger.Warn("no artifact bucket configured, using noop store")
		return &noopStore{}
	}
	awsCfg := aws.Config{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	}
	return &s3Store{
		client:        s3.NewFromConfig(awsCfg),
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		publicURLBase: strings.TrimSuffix(cfg.PublicURLBase, "/"),
	}
}

type s3Store struct {
	client        *s3.Client
	bucket        string
	region        string
	publicURLBase string
}

func (s *s3Store) Store(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store artifact %s: %w", key, err)
	}
	if s.publicURLBase != "" {
		return s.publicURLBase + "/" + key, nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

type noopStore struct{}

func (n *noopStore) Store(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	return "", fmt.Errorf("artifact storage not configured")
}
