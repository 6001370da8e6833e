package miniostore

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/amellouk/souq/internal/domain"
)

// Storage pushes photo objects into an S3-compatible bucket. The object ID
// is the object key inside the bucket.
type Storage struct {
	client   *minio.Client
	bucket   string
	endpoint string
}

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func New(cfg Config) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("miniostore: %w", err)
	}
	return &Storage{client: client, bucket: cfg.Bucket, endpoint: cfg.Endpoint}, nil
}

func (s *Storage) Upload(ctx context.Context, name string, r io.Reader, size int64) (domain.StoredObject, error) {
	info, err := s.client.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{})
	if err != nil {
		return domain.StoredObject{}, fmt.Errorf("miniostore: put %s: %w", name, err)
	}
	url := fmt.Sprintf("http://%s/%s/%s", s.endpoint, s.bucket, info.Key)
	return domain.StoredObject{URL: url, ID: info.Key}, nil
}

// Delete is a no-op for objects that are already gone; RemoveObject does
// not fail on missing keys.
func (s *Storage) Delete(ctx context.Context, id string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, id, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("miniostore: remove %s: %w", id, err)
	}
	return nil
}
