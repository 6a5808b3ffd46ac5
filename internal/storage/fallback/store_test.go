// Package fallback_test tests the remote/local fallback orchestration.
package fallback_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arcanedigitalshield/siteapi/internal/contact"
	"github.com/arcanedigitalshield/siteapi/internal/storage/fallback"
	"github.com/arcanedigitalshield/siteapi/internal/storage/memory"
)

// brokenStore fails every operation with a fixed error.
type brokenStore struct {
	err error
}

func (b *brokenStore) ReadSubmissions(context.Context) ([]contact.Submission, error) {
	return nil, b.err
}

func (b *brokenStore) WriteSubmissions(context.Context, []contact.Submission) error {
	return b.err
}

func sample(id string) contact.Submission {
	return contact.Submission{ID: id, Name: "Jane Doe", Email: "jane@example.com", Message: "Need a quote"}
}

func TestNewRequiresBothBackends(t *testing.T) {
	t.Parallel()

	_, err := fallback.New(nil, memory.New(), zap.NewNop())
	assert.Error(t, err)
	_, err = fallback.New(memory.New(), nil, zap.NewNop())
	assert.Error(t, err)
}

func TestReadPrefersRemote(t *testing.T) {
	t.Parallel()

	remote := memory.New()
	local := memory.New()
	require.NoError(t, remote.WriteSubmissions(context.Background(), []contact.Submission{sample("remote-1")}))
	require.NoError(t, local.WriteSubmissions(context.Background(), []contact.Submission{sample("local-1")}))

	store, err := fallback.New(remote, local, zap.NewNop())
	require.NoError(t, err)

	subs, err := store.ReadSubmissions(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "remote-1", subs[0].ID)
}

func TestReadFallsBackOnRemoteError(t *testing.T) {
	t.Parallel()

	local := memory.New()
	require.NoError(t, local.WriteSubmissions(context.Background(), []contact.Submission{sample("local-1")}))

	store, err := fallback.New(&brokenStore{err: errors.New("connection refused")}, local, zap.NewNop())
	require.NoError(t, err)

	subs, err := store.ReadSubmissions(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "local-1", subs[0].ID)
}

func TestWriteMirrorsToLocal(t *testing.T) {
	t.Parallel()

	remote := memory.New()
	local := memory.New()
	store, err := fallback.New(remote, local, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, store.WriteSubmissions(context.Background(), []contact.Submission{sample("s1")}))

	remoteSubs, err := remote.ReadSubmissions(context.Background())
	require.NoError(t, err)
	localSubs, err := local.ReadSubmissions(context.Background())
	require.NoError(t, err)
	assert.Len(t, remoteSubs, 1)
	assert.Len(t, localSubs, 1)
}

func TestWriteSurvivesMirrorFailure(t *testing.T) {
	t.Parallel()

	remote := memory.New()
	writeOnlyBroken := &brokenStore{err: errors.New("disk full")}
	store, err := fallback.New(remote, writeOnlyBroken, zap.NewNop())
	require.NoError(t, err)

	err = store.WriteSubmissions(context.Background(), []contact.Submission{sample("s1")})
	assert.NoError(t, err)

	remoteSubs, err := remote.ReadSubmissions(context.Background())
	require.NoError(t, err)
	assert.Len(t, remoteSubs, 1)
}

func TestWriteFallsBackOnRemoteFailure(t *testing.T) {
	t.Parallel()

	local := memory.New()
	store, err := fallback.New(&brokenStore{err: errors.New("permission denied")}, local, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, store.WriteSubmissions(context.Background(), []contact.Submission{sample("s1")}))

	localSubs, err := local.ReadSubmissions(context.Background())
	require.NoError(t, err)
	require.Len(t, localSubs, 1)
	assert.Equal(t, "s1", localSubs[0].ID)
}

func TestWriteFailsWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	store, err := fallback.New(
		&brokenStore{err: errors.New("remote down")},
		&brokenStore{err: errors.New("local down")},
		zap.NewNop(),
	)
	require.NoError(t, err)

	err = store.WriteSubmissions(context.Background(), []contact.Submission{sample("s1")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "local fallback failed")
}
