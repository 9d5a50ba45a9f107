package assets

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Secure    bool
}

// MinioStore supprime les objets d'un bucket S3-compatible.
type MinioStore struct {
	client *minio.Client
	bucket string
}

func NewMinioStore(cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return &MinioStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *MinioStore) Delete(ctx context.Context, ref string) error {
	key := objectKey(ref)
	if key == "" {
		return fmt.Errorf("empty asset reference")
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s/%s: %w", s.bucket, key, err)
	}
	return nil
}

// objectKey accepte "images/a.png", "/images/a.png" ou "\images\a.png" (chemins Windows historiques).
func objectKey(ref string) string {
	ref = strings.ReplaceAll(strings.TrimSpace(ref), `\`, "/")
	return strings.TrimLeft(ref, "/")
}
