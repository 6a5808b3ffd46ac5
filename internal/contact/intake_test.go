package contact_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arcanedigitalshield/siteapi/internal/contact"
	"github.com/arcanedigitalshield/siteapi/internal/storage/memory"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

type seqIDGen struct {
	n int
}

func (g *seqIDGen) NewID(now time.Time) string {
	g.n++
	return fmt.Sprintf("%d-id%04d", now.UnixMilli(), g.n)
}

type brokenStore struct {
	readErr  error
	writeErr error
}

func (b *brokenStore) ReadSubmissions(context.Context) ([]contact.Submission, error) {
	if b.readErr != nil {
		return nil, b.readErr
	}
	return []contact.Submission{}, nil
}

func (b *brokenStore) WriteSubmissions(context.Context, []contact.Submission) error {
	return b.writeErr
}

func newIntake(store contact.Store, max int) *contact.Intake {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return contact.NewIntake(store, &seqIDGen{}, clock, max, zap.NewNop())
}

func TestSubmitValidInput(t *testing.T) {
	t.Parallel()

	store := memory.New()
	intake := newIntake(store, 0)

	sub, err := intake.Submit(context.Background(), contact.IntakeRequest{
		Name:    "  Jane Doe  ",
		Email:   " jane@example.com ",
		Company: " Acme ",
		Message: " Need a quote ",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
	assert.False(t, sub.Read)

	subs, err := store.ReadSubmissions(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "Jane Doe", subs[0].Name)
	assert.Equal(t, "jane@example.com", subs[0].Email)
	assert.Equal(t, "Acme", subs[0].Company)
	assert.Equal(t, "", subs[0].Phone)
	assert.Equal(t, "Need a quote", subs[0].Message)
}

func TestSubmitValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  contact.IntakeRequest
	}{
		{"MissingName", contact.IntakeRequest{Email: "jane@example.com", Message: "x"}},
		{"MissingEmail", contact.IntakeRequest{Name: "Jane", Message: "x"}},
		{"MissingMessage", contact.IntakeRequest{Name: "Jane", Email: "jane@example.com"}},
		{"WhitespaceName", contact.IntakeRequest{Name: "   ", Email: "jane@example.com", Message: "x"}},
		{"MalformedEmail", contact.IntakeRequest{Name: "Jane", Email: "not-an-email", Message: "x"}},
		{"EmailMissingTLD", contact.IntakeRequest{Name: "Jane", Email: "jane@example", Message: "x"}},
		{"EmailWithSpace", contact.IntakeRequest{Name: "Jane", Email: "jane doe@example.com", Message: "x"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := memory.New()
			intake := newIntake(store, 0)

			_, err := intake.Submit(context.Background(), tt.req)
			var verr *contact.ValidationError
			require.ErrorAs(t, err, &verr)

			// A rejected payload must not touch storage.
			subs, readErr := store.ReadSubmissions(context.Background())
			require.NoError(t, readErr)
			assert.Empty(t, subs)
		})
	}
}

func TestSubmitRetentionCap(t *testing.T) {
	t.Parallel()

	const maxSubs = 25
	store := memory.New()
	intake := newIntake(store, maxSubs)

	var lastID string
	for i := 0; i < maxSubs+10; i++ {
		sub, err := intake.Submit(context.Background(), contact.IntakeRequest{
			Name:    "Jane Doe",
			Email:   "jane@example.com",
			Message: fmt.Sprintf("message %d", i),
		})
		require.NoError(t, err)
		lastID = sub.ID
	}

	subs, err := store.ReadSubmissions(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, maxSubs)
	// Most-recent-first: the newest submission leads, the oldest were evicted.
	assert.Equal(t, lastID, subs[0].ID)
	assert.Equal(t, "message 34", subs[0].Message)
	assert.Equal(t, "message 10", subs[maxSubs-1].Message)
}

func TestSubmitStorageFailure(t *testing.T) {
	t.Parallel()

	t.Run("ReadFails", func(t *testing.T) {
		intake := newIntake(&brokenStore{readErr: errors.New("backend down")}, 0)
		_, err := intake.Submit(context.Background(), contact.IntakeRequest{
			Name: "Jane", Email: "jane@example.com", Message: "x",
		})
		assert.ErrorIs(t, err, contact.ErrStorageUnavailable)
	})

	t.Run("WriteFails", func(t *testing.T) {
		intake := newIntake(&brokenStore{writeErr: errors.New("backend down")}, 0)
		_, err := intake.Submit(context.Background(), contact.IntakeRequest{
			Name: "Jane", Email: "jane@example.com", Message: "x",
		})
		assert.ErrorIs(t, err, contact.ErrStorageUnavailable)
	})
}
