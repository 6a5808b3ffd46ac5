// Package local_test tests the local file submission store.
package local_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanedigitalshield/siteapi/internal/contact"
	"github.com/arcanedigitalshield/siteapi/internal/storage/local"
)

func TestNew(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		store, err := local.New(local.Config{Dir: t.TempDir(), FileName: "subs.json"})
		require.NoError(t, err)
		assert.NotNil(t, store)
	})

	t.Run("MissingDir", func(t *testing.T) {
		_, err := local.New(local.Config{FileName: "subs.json"})
		assert.Error(t, err)
	})

	t.Run("MissingFileName", func(t *testing.T) {
		_, err := local.New(local.Config{Dir: t.TempDir()})
		assert.Error(t, err)
	})
}

func TestReadSubmissions(t *testing.T) {
	t.Run("MissingFileIsEmptyCollection", func(t *testing.T) {
		store, err := local.New(local.Config{Dir: filepath.Join(t.TempDir(), "absent"), FileName: "subs.json"})
		require.NoError(t, err)

		subs, err := store.ReadSubmissions(context.Background())
		require.NoError(t, err)
		assert.Empty(t, subs)
	})

	t.Run("CorruptDocument", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "subs.json"), []byte("{not json"), 0o600))
		store, err := local.New(local.Config{Dir: dir, FileName: "subs.json"})
		require.NoError(t, err)

		_, err = store.ReadSubmissions(context.Background())
		assert.Error(t, err)
	})
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	store, err := local.New(local.Config{Dir: dir, FileName: "subs.json"})
	require.NoError(t, err)

	want := []contact.Submission{
		{
			ID:          "1717243200000-abc123def",
			Name:        "Jane Doe",
			Email:       "jane@example.com",
			Message:     "Need a quote",
			SubmittedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}
	require.NoError(t, store.WriteSubmissions(context.Background(), want))

	got, err := store.ReadSubmissions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
