// Package local implements a submission store backed by a JSON file on
// the local filesystem.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arcanedigitalshield/siteapi/internal/contact"
)

// Config captures the parameters for the local file store.
type Config struct {
	// Dir is the directory holding the submissions document.
	Dir string `mapstructure:"dir" yaml:"dir"`
	// FileName names the document inside Dir.
	FileName string `mapstructure:"file_name" yaml:"file_name"`
}

// Store reads and writes the submission collection as a single JSON file.
type Store struct {
	path string
	dir  string
}

// New creates a local file-backed submission store. The directory is
// created on first write, not here, so a read-only deployment can still
// construct the store and read an existing document.
func New(cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, fmt.Errorf("directory is required")
	}
	if strings.TrimSpace(cfg.FileName) == "" {
		return nil, fmt.Errorf("file name is required")
	}
	return &Store{
		path: filepath.Join(cfg.Dir, cfg.FileName),
		dir:  cfg.Dir,
	}, nil
}

// ReadSubmissions loads the collection. A missing file or directory is
// an empty collection, not an error.
func (s *Store) ReadSubmissions(_ context.Context) ([]contact.Submission, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []contact.Submission{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	var submissions []contact.Submission
	if err := json.Unmarshal(data, &submissions); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if submissions == nil {
		submissions = []contact.Submission{}
	}
	return submissions, nil
}

// WriteSubmissions replaces the collection document wholesale.
func (s *Store) WriteSubmissions(_ context.Context, submissions []contact.Submission) error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	data, err := json.MarshalIndent(submissions, "", "  ")
	if err != nil {
		return fmt.Errorf("encode submissions: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
