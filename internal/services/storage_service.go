package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const imageBucket = "store-images"

// StorageService hosts the billboard and product images the admin forms
// upload, returning URLs the entity rows reference.
type StorageService interface {
	UploadStoreImage(ctx context.Context, storeID uuid.UUID, filename string, reader io.Reader, size int64) (string, error)
	PresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error)
	DeleteImage(ctx context.Context, objectKey string) error
	Ping(ctx context.Context) error
}

type minioStorage struct {
	client *minio.Client
}

func NewMinioStorage(endpoint, accessKey, secretKey string, useSSL bool) (StorageService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioStorage{client: client}, nil
}

// UploadStoreImage stores the file under a store-scoped key and returns
// that key. Buckets are created lazily on first upload.
func (m *minioStorage) UploadStoreImage(ctx context.Context, storeID uuid.UUID, filename string, reader io.Reader, size int64) (string, error) {
	if err := m.ensureBucket(ctx); err != nil {
		return "", fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	objectKey := fmt.Sprintf("%s/%s%s", storeID.String(), uuid.New().String(), filepath.Ext(filename))
	_, err := m.client.PutObject(ctx, imageBucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: "image/jpeg",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image to storage: %w", err)
	}
	return objectKey, nil
}

func (m *minioStorage) PresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, imageBucket, objectKey, expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (m *minioStorage) DeleteImage(ctx context.Context, objectKey string) error {
	return m.client.RemoveObject(ctx, imageBucket, objectKey, minio.RemoveObjectOptions{})
}

func (m *minioStorage) Ping(ctx context.Context) error {
	_, err := m.client.BucketExists(ctx, imageBucket)
	return err
}

func (m *minioStorage) ensureBucket(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, imageBucket)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, imageBucket, minio.MakeBucketOptions{})
	}
	return nil
}
