// Package gcs provides a submission store backed by Google Cloud Storage.
package gcs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"

	"github.com/arcanedigitalshield/siteapi/internal/contact"
)

// Config captures the parameters required to reach the GCS bucket.
type Config struct {
	Bucket string
	Object string
	// Project is only needed to create the bucket when it does not
	// exist yet.
	Project string
}

// Store keeps the submission collection as a single JSON object in a
// GCS bucket. The client is constructed once at process start and
// injected; authentication rides on Application Default Credentials.
type Store struct {
	client  *storage.Client
	bucket  string
	object  string
	project string
}

// New creates a GCS-backed submission store.
func New(client *storage.Client, cfg Config) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("storage client is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}
	if cfg.Object == "" {
		return nil, fmt.Errorf("object name is required")
	}
	return &Store{
		client:  client,
		bucket:  cfg.Bucket,
		object:  cfg.Object,
		project: cfg.Project,
	}, nil
}

// ReadSubmissions downloads and decodes the collection document. A
// missing bucket or object is an empty collection, not an error.
func (s *Store) ReadSubmissions(ctx context.Context) ([]contact.Submission, error) {
	rc, err := s.client.Bucket(s.bucket).Object(s.object).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return []contact.Submission{}, nil
		}
		return nil, fmt.Errorf("open gs://%s/%s: %w", s.bucket, s.object, err)
	}
	data, err := io.ReadAll(rc)
	closeErr := rc.Close()
	if err != nil {
		return nil, fmt.Errorf("download gs://%s/%s: %w", s.bucket, s.object, err)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("close reader for gs://%s/%s: %w", s.bucket, s.object, closeErr)
	}

	var submissions []contact.Submission
	if err := json.Unmarshal(data, &submissions); err != nil {
		return nil, fmt.Errorf("decode gs://%s/%s: %w", s.bucket, s.object, err)
	}
	if submissions == nil {
		submissions = []contact.Submission{}
	}
	return submissions, nil
}

// WriteSubmissions replaces the collection document, creating the
// bucket first if it does not exist.
func (s *Store) WriteSubmissions(ctx context.Context, submissions []contact.Submission) error {
	if err := s.ensureBucket(ctx); err != nil {
		return err
	}

	data, err := json.MarshalIndent(submissions, "", "  ")
	if err != nil {
		return fmt.Errorf("encode submissions: %w", err)
	}

	writer := s.client.Bucket(s.bucket).Object(s.object).NewWriter(ctx)
	writer.ContentType = "application/json"
	writer.CacheControl = "no-cache"
	if _, err := writer.Write(data); err != nil {
		closeErr := writer.Close()
		if closeErr != nil {
			return fmt.Errorf("write gs://%s/%s: %w (close writer: %v)", s.bucket, s.object, err, closeErr)
		}
		return fmt.Errorf("write gs://%s/%s: %w", s.bucket, s.object, err)
	}
	// Close finalizes the upload; until then nothing is durable.
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close writer for gs://%s/%s: %w", s.bucket, s.object, err)
	}
	return nil
}

func (s *Store) ensureBucket(ctx context.Context) error {
	bkt := s.client.Bucket(s.bucket)
	_, err := bkt.Attrs(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrBucketNotExist) {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	attrs := &storage.BucketAttrs{
		Location:     "us-central1",
		StorageClass: "STANDARD",
	}
	if err := bkt.Create(ctx, s.project, attrs); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	return nil
}
