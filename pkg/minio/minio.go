package minio

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
)

// UploadFile uploads an object and returns its metadata.
func (m *implMinIO) UploadFile(ctx context.Context, req *UploadRequest) (*FileInfo, error) {
	if req.BucketName == "" || req.ObjectName == "" {
		return nil, fmt.Errorf("minio: bucket and object names are required")
	}

	opts := minio.PutObjectOptions{ContentType: req.ContentType}
	if req.Metadata != nil {
		opts.UserMetadata = req.Metadata
	}

	info, err := m.minioClient.PutObject(ctx, req.BucketName, req.ObjectName, req.Reader, req.Size, opts)
	if err != nil {
		return nil, fmt.Errorf("minio: failed to upload object: %w", err)
	}

	return &FileInfo{
		BucketName:   req.BucketName,
		ObjectName:   req.ObjectName,
		Size:         info.Size,
		ETag:         info.ETag,
		LastModified: time.Now(),
	}, nil
}

// GetPresignedDownloadURL generates a time-limited download URL.
func (m *implMinIO) GetPresignedDownloadURL(ctx context.Context, req *PresignedURLRequest) (*PresignedURLResponse, error) {
	if req.BucketName == "" || req.ObjectName == "" {
		return nil, fmt.Errorf("minio: bucket and object names are required")
	}
	expiry := req.Expiry
	if expiry <= 0 {
		expiry = 30 * time.Minute
	}

	url, err := m.minioClient.PresignedGetObject(ctx, req.BucketName, req.ObjectName, expiry, nil)
	if err != nil {
		return nil, fmt.Errorf("minio: failed to presign download URL: %w", err)
	}

	return &PresignedURLResponse{
		URL:       url.String(),
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}

// EnsureBucket creates the bucket if it does not exist yet.
func (m *implMinIO) EnsureBucket(ctx context.Context, bucketName string) error {
	exists, err := m.minioClient.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("minio: failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.minioClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: m.region}); err != nil {
		return fmt.Errorf("minio: failed to create bucket: %w", err)
	}
	return nil
}

// HealthCheck verifies the storage endpoint is reachable.
func (m *implMinIO) HealthCheck(ctx context.Context) error {
	if _, err := m.minioClient.ListBuckets(ctx); err != nil {
		return fmt.Errorf("minio: health check failed: %w", err)
	}
	return nil
}
