// Package fallback orchestrates a remote submission store with a local
// fallback so a successful write is always durable in at least one
// backend.
package fallback

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/arcanedigitalshield/siteapi/internal/contact"
)

// Store mediates between a remote backend and a local backend. Remote
// errors never reach the caller on reads; on writes they only surface
// when the local fallback also fails.
type Store struct {
	remote contact.Store
	local  contact.Store
	logger *zap.Logger
}

// New constructs the orchestrating store. Both backends are required;
// callers that are not remote-eligible should use the local store
// directly instead.
func New(remote, local contact.Store, logger *zap.Logger) (*Store, error) {
	if remote == nil || local == nil {
		return nil, fmt.Errorf("remote and local stores are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{remote: remote, local: local, logger: logger}, nil
}

// ReadSubmissions reads from the remote backend, falling back to local
// on any remote error.
func (s *Store) ReadSubmissions(ctx context.Context) ([]contact.Submission, error) {
	submissions, err := s.remote.ReadSubmissions(ctx)
	if err == nil {
		return submissions, nil
	}
	s.logger.Warn("remote read failed, falling back to local store", zap.Error(err))
	return s.local.ReadSubmissions(ctx)
}

// WriteSubmissions writes to the remote backend first. On success the
// collection is mirrored to the local store best-effort; a mirror
// failure is logged and swallowed. On remote failure the local write is
// authoritative, and only a local failure on that path fails the call.
func (s *Store) WriteSubmissions(ctx context.Context, submissions []contact.Submission) error {
	remoteErr := s.remote.WriteSubmissions(ctx, submissions)
	if remoteErr == nil {
		if mirrorErr := s.local.WriteSubmissions(ctx, submissions); mirrorErr != nil {
			s.logger.Warn("local mirror write failed", zap.Error(mirrorErr))
		}
		return nil
	}

	s.logger.Warn("remote write failed, falling back to local store", zap.Error(remoteErr))
	if localErr := s.local.WriteSubmissions(ctx, submissions); localErr != nil {
		return fmt.Errorf("remote write failed (%v); local fallback failed: %w", remoteErr, localErr)
	}
	return nil
}
