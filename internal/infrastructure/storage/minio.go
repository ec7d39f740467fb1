package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/meetcost-team/meetcost/internal/domain/entities"
	"github.com/meetcost-team/meetcost/internal/usecase/tracker"
	"github.com/meetcost-team/meetcost/pkg/config"
)

// MinIOClient wraps MinIO operations
type MinIOClient struct {
	client *minio.Client
	bucket string
}

// NewMinIOClient creates a new MinIO client and ensures the bucket exists
func NewMinIOClient(cfg *config.StorageConfig) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client: minioClient,
		bucket: cfg.BucketName,
	}

	ctx := context.Background()
	if err := client.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return client, nil
}

// ensureBucket ensures the archive bucket exists
func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// UploadFile uploads a file to MinIO
func (m *MinIOClient) UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}

	return nil
}

// GetFileURL gets a presigned URL for accessing an archived object
func (m *MinIOClient) GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url.String(), nil
}

// ListFiles lists all objects in the bucket under a prefix
func (m *MinIOClient) ListFiles(ctx context.Context, prefix string) ([]string, error) {
	var files []string

	objectCh := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}
		files = append(files, object.Key)
	}

	return files, nil
}

// costArchiveRecord is the JSON document written per finalized meeting
type costArchiveRecord struct {
	MeetingID  string                     `json:"meeting_id"`
	ArchivedAt time.Time                  `json:"archived_at"`
	Cost       *entities.MeetingCost      `json:"cost"`
	Analytics  *entities.MeetingAnalytics `json:"analytics,omitempty"`
}

var _ tracker.CostArchiver = (*MinIOClient)(nil)

// ArchiveCost writes an immutable JSON audit record for a reconciled meeting.
// Objects are keyed by organization and meeting date so retention sweeps can
// work on prefixes.
func (m *MinIOClient) ArchiveCost(ctx context.Context, cost *entities.MeetingCost, analytics *entities.MeetingAnalytics) error {
	record := costArchiveRecord{
		MeetingID:  cost.MeetingID.String(),
		ArchivedAt: time.Now().UTC(),
		Cost:       cost,
		Analytics:  analytics,
	}

	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cost archive: %w", err)
	}

	objectName := fmt.Sprintf("costs/unscoped/%s.json", cost.MeetingID.String())
	if analytics != nil {
		objectName = fmt.Sprintf("costs/%s/%s/%s.json",
			analytics.OrganizationID.String(),
			analytics.MeetingDate.Format("2006/01"),
			cost.MeetingID.String(),
		)
	}

	reader := bytes.NewReader(payload)
	return m.UploadFile(ctx, objectName, reader, int64(len(payload)), "application/json")
}
