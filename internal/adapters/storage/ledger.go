// internal/adapters/storage/ledger.go
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/stockline/stockline-be/internal/core/domain"
	"github.com/stockline/stockline-be/internal/core/ports"
)

// S3Ledger persists accounting ledger records (move-out losses, replacement
// adjustments) as JSON documents in an S3 bucket. One object per record,
// keyed by kind and month, so finance exports can pull a period with a
// single prefix listing.
type S3Ledger struct {
	client     *s3.Client
	uploader   *manager.Uploader
	downloader *manager.Downloader
	bucket     string
	region     string
	prefix     string
	logger     *slog.Logger
}

// S3Config holds S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // For MinIO/LocalStack
	UsePathStyle    bool   // For MinIO/LocalStack
}

// Statically assert that *S3Ledger implements the LedgerSink interface.
var _ ports.LedgerSink = (*S3Ledger)(nil)

// NewS3Ledger creates a new S3-backed ledger sink
func NewS3Ledger(ctx context.Context, cfg *S3Config, logger *slog.Logger) (*S3Ledger, error) {
	awsCfg, err := buildAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.EndpointResolver = s3.EndpointResolverFromURL(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	ledger := &S3Ledger{
		client:     client,
		uploader:   manager.NewUploader(client),
		downloader: manager.NewDownloader(client),
		bucket:     cfg.Bucket,
		region:     cfg.Region,
		prefix:     strings.Trim(cfg.Prefix, "/"),
		logger:     logger.With(slog.String("storage", "s3_ledger")),
	}

	if err := ledger.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket: %w", err)
	}

	logger.Info("S3 ledger initialized",
		slog.String("bucket", cfg.Bucket),
		slog.String("prefix", ledger.prefix))

	return ledger, nil
}

// buildAWSConfig builds AWS configuration
func buildAWSConfig(ctx context.Context, cfg *S3Config) (aws.Config, error) {
	// Use custom credentials if provided
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		return config.LoadDefaultConfig(ctx,
			config.WithRegion(cfg.Region),
			config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretAccessKey,
					"",
				),
			),
		)
	}

	// Otherwise use default credential chain
	return config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
}

// ensureBucket ensures the bucket exists
func (s *S3Ledger) ensureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})

	if err != nil {
		_, createErr := s.client.CreateBucket(ctx, &s3.CreateBucketInput{
			Bucket: aws.String(s.bucket),
			CreateBucketConfiguration: &types.CreateBucketConfiguration{
				LocationConstraint: types.BucketLocationConstraint(s.region),
			},
		})

		if createErr != nil {
			return fmt.Errorf("bucket %s does not exist and could not be created: %w", s.bucket, createErr)
		}

		s.logger.Info("created S3 bucket", slog.String("bucket", s.bucket))
	}

	return nil
}

// recordKey builds the object key for a ledger record:
// <prefix>/<kind>/<yyyy>/<mm>/<record-id>.json
func (s *S3Ledger) recordKey(record *domain.LedgerRecord) string {
	parts := []string{
		string(record.Kind),
		record.CreatedAt.UTC().Format("2006"),
		record.CreatedAt.UTC().Format("01"),
		record.ID.String() + ".json",
	}
	if s.prefix != "" {
		parts = append([]string{s.prefix}, parts...)
	}
	return strings.Join(parts, "/")
}

// Publish writes the ledger record to the bucket. Record ids are unique, so
// a retried publish overwrites the same object and stays idempotent.
func (s *S3Ledger) Publish(ctx context.Context, record *domain.LedgerRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger record: %w", err)
	}

	key := s.recordKey(record)
	result, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"published-at": time.Now().UTC().Format(time.RFC3339),
			"record-kind":  string(record.Kind),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish ledger record: %w", err)
	}

	s.logger.InfoContext(ctx, "ledger record published",
		slog.String("key", key),
		slog.String("kind", string(record.Kind)),
		slog.String("total", record.Total.String()),
		slog.String("location", result.Location))

	return nil
}

// Fetch downloads and decodes a previously published record by key.
func (s *S3Ledger) Fetch(ctx context.Context, key string) (*domain.LedgerRecord, error) {
	buf := manager.NewWriteAtBuffer([]byte{})

	_, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download ledger record: %w", err)
	}

	var record domain.LedgerRecord
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		return nil, fmt.Errorf("failed to decode ledger record: %w", err)
	}

	return &record, nil
}

// ListMonth lists the object keys published for a kind within one month.
func (s *S3Ledger) ListMonth(ctx context.Context, kind domain.LedgerRecordKind, year int, month time.Month) ([]string, error) {
	prefix := fmt.Sprintf("%s/%04d/%02d/", string(kind), year, month)
	if s.prefix != "" {
		prefix = s.prefix + "/" + prefix
	}

	var keys []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list ledger records: %w", err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, *obj.Key)
		}
	}

	s.logger.DebugContext(ctx, "listed ledger records",
		slog.String("prefix", prefix),
		slog.Int("count", len(keys)))

	return keys, nil
}
