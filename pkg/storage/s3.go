package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Provider represents the S3-compatible storage provider
type Provider string

const (
	ProviderAWS    Provider = "aws"
	ProviderWasabi Provider = "wasabi"
)

// WasabiEndpoints maps regions to Wasabi endpoints
var WasabiEndpoints = map[string]string{
	"us-east-1":      "s3.us-east-1.wasabisys.com",
	"us-east-2":      "s3.us-east-2.wasabisys.com",
	"us-west-1":      "s3.us-west-1.wasabisys.com",
	"eu-central-1":   "s3.eu-central-1.wasabisys.com",
	"eu-west-1":      "s3.eu-west-1.wasabisys.com",
	"eu-west-2":      "s3.eu-west-2.wasabisys.com",
	"ap-northeast-1": "s3.ap-northeast-1.wasabisys.com",
	"ap-northeast-2": "s3.ap-northeast-2.wasabisys.com",
	"ap-southeast-1": "s3.ap-southeast-1.wasabisys.com",
	"ap-southeast-2": "s3.ap-southeast-2.wasabisys.com",
}

// ClientConfig holds configuration for S3-compatible storage
type ClientConfig struct {
	Provider        Provider
	AccessKeyID     string
	SecretAccessKey string
	Region          string

	// Wasabi-specific settings
	WasabiEndpoint string // e.g., "s3.ap-southeast-1.wasabisys.com"
}

// NewClientConfigFromEnv creates storage config from environment variables
func NewClientConfigFromEnv() ClientConfig {
	provider := ProviderAWS
	if os.Getenv("S3_PROVIDER") == "wasabi" {
		provider = ProviderWasabi
	}

	cfg := ClientConfig{
		Provider:        provider,
		AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		Region:          os.Getenv("S3_REGION"),
	}

	if provider == ProviderWasabi {
		if endpoint := os.Getenv("WASABI_ENDPOINT"); endpoint != "" {
			cfg.WasabiEndpoint = endpoint
		} else if endpoint, ok := WasabiEndpoints[cfg.Region]; ok {
			cfg.WasabiEndpoint = endpoint
		} else {
			cfg.WasabiEndpoint = "s3.ap-southeast-1.wasabisys.com"
		}
	}

	return cfg
}

// Store wraps an S3 client with the bucket-oriented operations the
// application needs: upload a blob, derive its public URL.
type Store struct {
	client *s3.Client
	cfg    ClientConfig
}

// NewStore creates a storage client. Supports both AWS S3 and Wasabi.
func NewStore(ctx context.Context, cfg ClientConfig) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *s3.Client
	switch cfg.Provider {
	case ProviderWasabi:
		// Wasabi requires a custom endpoint and path-style addressing
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String("https://" + cfg.WasabiEndpoint)
			o.UsePathStyle = true
		})
	default:
		client = s3.NewFromConfig(awsCfg)
	}

	return &Store{client: client, cfg: cfg}, nil
}

// Upload writes data under key in the given bucket and returns its public URL.
func (s *Store) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("max-age=3600"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s/%s: %w", bucket, key, err)
	}
	return s.PublicURL(bucket, key), nil
}

// PublicURL returns the public retrieval URL for an object. Buckets used for
// resumes and avatars are public-read.
func (s *Store) PublicURL(bucket, key string) string {
	if s.cfg.Provider == ProviderWasabi {
		return fmt.Sprintf("https://%s/%s/%s", s.cfg.WasabiEndpoint, bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, s.cfg.Region, key)
}

// CheckBucket verifies the bucket is reachable with the configured credentials.
func (s *Store) CheckBucket(ctx context.Context, bucket string) error {
	_, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(bucket),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return fmt.Errorf("failed to access bucket %s: %w", bucket, err)
	}
	return nil
}
