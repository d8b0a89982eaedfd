package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"musicmanager/config"
	"musicmanager/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MediaStore holds uploaded audio and cover images in a MinIO bucket
// and hands back durable URLs, replacing the hosted media service the
// frontend used to talk to directly.
type MediaStore struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

// NewMediaStore initializes the MinIO client and ensures the bucket
// exists.
func NewMediaStore(cfg *config.Config) (*MediaStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{Region: cfg.MinioRegion}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("created media bucket", logger.String("bucket", cfg.MinioBucket))
	}

	return &MediaStore{
		client:        client,
		bucket:        cfg.MinioBucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// ObjectName derives a collision-safe object name from an uploaded
// filename. Audio goes under media/audio, images under media/covers.
func (m *MediaStore) ObjectName(filename, contentType string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, base)

	prefix := "media/audio"
	if strings.HasPrefix(contentType, "image/") {
		prefix = "media/covers"
	}
	return fmt.Sprintf("%s/%s-%s%s", prefix, base, uuid.NewString(), ext)
}

// Upload stores an object and returns its durable URL. Nothing is
// persisted when the upload fails, so a failed call never leaves a
// partial URL behind.
func (m *MediaStore) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := m.client.PutObject(ctx, m.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", objectName, err)
	}
	return m.publicBaseURL + "/static/" + objectName, nil
}

// Object opens a stored object for serving.
func (m *MediaStore) Object(ctx context.Context, objectName string) (*minio.Object, error) {
	return m.client.GetObject(ctx, m.bucket, objectName, minio.GetObjectOptions{})
}

// ContentTypeOf guesses the content type of a stored object from its
// extension, for the serving route.
func ContentTypeOf(objectName string) string {
	switch strings.ToLower(filepath.Ext(objectName)) {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	case ".m4a":
		return "audio/mp4"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
