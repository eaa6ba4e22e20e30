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
	"go.uber.org/zap"

	"github.com/NICOL-XPDK/weba-backend/internal/config"
	"github.com/NICOL-XPDK/weba-backend/internal/models"
)

// MinioStore persists submissions in a MinIO bucket, one pretty-printed JSON
// object per record.
type MinioStore struct {
	client *minio.Client
	bucket string
	log    *zap.SugaredLogger
}

// NewMinioStore builds the client and ensures the bucket exists with private
// access. Callers fall back to the disabled store when this fails.
func NewMinioStore(cfg *config.Config, log *zap.SugaredLogger) (*MinioStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage client: %w", err)
	}

	store := &MinioStore{
		client: client,
		bucket: cfg.MinioBucket,
		log:    log,
	}

	if err := store.ensureBucket(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return store, nil
}

func (s *MinioStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("error checking if bucket exists: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("error creating bucket: %w", err)
		}
		s.log.Infof("Created bucket: %s", s.bucket)
	}
	return nil
}

// Put writes the submission under <id>.json with content-type
// application/json. No retry on failure.
func (s *MinioStore) Put(ctx context.Context, sub *models.Submission) (string, error) {
	key := ObjectKey(sub.ID)

	data, err := json.MarshalIndent(sub, "", "  ")
	if err != nil {
		return key, fmt.Errorf("failed to serialize submission %s: %w", sub.ID, err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return key, fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	s.log.Infof("Saved submission to storage: %s (size: %d bytes)", key, len(data))
	return key, nil
}

// List walks the bucket in storage-native order and stops once limit records
// have parsed. The subset is then sorted newest first. Enumeration order is
// not guaranteed to be insertion order, so this is the first limit enumerable
// records, not necessarily the true most recent limit records.
func (s *MinioStore) List(ctx context.Context, limit int) ([]models.Submission, error) {
	if limit <= 0 {
		return []models.Submission{}, nil
	}

	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	subs := make([]models.Submission, 0, limit)

	for info := range s.client.ListObjects(listCtx, s.bucket, minio.ListObjectsOptions{}) {
		if info.Err != nil {
			return nil, fmt.Errorf("error listing bucket %s: %w", s.bucket, info.Err)
		}

		sub, err := s.fetch(listCtx, info.Key, info.LastModified)
		if err != nil {
			// Unparseable or unreadable objects are skipped, not counted
			s.log.Warnf("Skipping object %s: %v", info.Key, err)
			continue
		}
		subs = append(subs, *sub)

		if len(subs) >= limit {
			break
		}
	}

	sortByTimestampDesc(subs)
	if len(subs) > limit {
		subs = subs[:limit]
	}
	return subs, nil
}

func (s *MinioStore) fetch(ctx context.Context, key string, lastModified time.Time) (*models.Submission, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}

	sub, err := decodeSubmission(data)
	if err != nil {
		return nil, err
	}
	sub.BlobName = key
	sub.LastModified = lastModified.UTC().Format(time.RFC3339)
	return sub, nil
}

func (s *MinioStore) Configured() bool {
	return true
}
