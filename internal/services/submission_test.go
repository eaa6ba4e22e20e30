package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NICOL-XPDK/weba-backend/internal/models"
	"github.com/NICOL-XPDK/weba-backend/internal/storage"
)

// fakeStore is an in-memory Store for testing
type fakeStore struct {
	mu         sync.Mutex
	subs       []models.Submission
	putErr     error
	listErr    error
	configured bool
}

func (f *fakeStore) Put(_ context.Context, sub *models.Submission) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, *sub)
	return storage.ObjectKey(sub.ID), nil
}

func (f *fakeStore) List(_ context.Context, limit int) ([]models.Submission, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Submission, 0, limit)
	for _, sub := range f.subs {
		if len(out) >= limit {
			break
		}
		out = append(out, sub)
	}
	return out, nil
}

func (f *fakeStore) Configured() bool {
	return f.configured
}

func newTestService(store *fakeStore) *SubmissionService {
	return NewSubmissionService(store, zap.NewNop().Sugar())
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   SubmitInput
		wantMsg string
	}{
		{
			name:    "missing name",
			input:   SubmitInput{Email: "a@b.com", Message: "hello there"},
			wantMsg: "Name is required",
		},
		{
			name:    "whitespace name",
			input:   SubmitInput{Name: "   ", Email: "a@b.com", Message: "hello there"},
			wantMsg: "Name is required",
		},
		{
			name:    "missing email",
			input:   SubmitInput{Name: "Jamie", Message: "hello there"},
			wantMsg: "Email is required",
		},
		{
			name:    "missing message",
			input:   SubmitInput{Name: "Jamie", Email: "a@b.com"},
			wantMsg: "Message is required",
		},
		{
			name:    "whitespace message",
			input:   SubmitInput{Name: "Jamie", Email: "a@b.com", Message: " \t\n"},
			wantMsg: "Message is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{configured: true}
			svc := newTestService(store)

			resp, err := svc.Submit(context.Background(), tt.input)
			require.Error(t, err)
			assert.Nil(t, resp)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantMsg, ve.Message)

			// Nothing reaches storage on a validation failure
			assert.Empty(t, store.subs)
		})
	}
}

func TestSubmitBuildsRecord(t *testing.T) {
	store := &fakeStore{configured: true}
	svc := newTestService(store)

	resp, err := svc.Submit(context.Background(), SubmitInput{
		Name:      "  Jamie Doe ",
		Email:     "  A@B.COM ",
		Message:   " The form looks great ",
		UserAgent: "curl/8.0",
		IP:        "203.0.113.10",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.SubmissionID)

	require.Len(t, store.subs, 1)
	sub := store.subs[0]
	assert.Equal(t, resp.SubmissionID, sub.ID)
	assert.True(t, strings.HasPrefix(sub.ID, "submission-"))
	assert.Equal(t, "Jamie Doe", sub.Name)
	assert.Equal(t, "a@b.com", sub.Email)
	assert.Equal(t, "The form looks great", sub.Message)
	assert.Equal(t, "feedback", sub.Category)
	assert.Equal(t, "curl/8.0", sub.UserAgent)
	assert.Equal(t, "203.0.113.10", sub.IP)

	ts, err := time.Parse(time.RFC3339, sub.Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), ts, 5*time.Second)
}

func TestSubmitKeepsProvidedCategory(t *testing.T) {
	store := &fakeStore{configured: true}
	svc := newTestService(store)

	_, err := svc.Submit(context.Background(), SubmitInput{
		Name:     "Jamie",
		Email:    "a@b.com",
		Category: "bug",
		Message:  "button does nothing",
	})
	require.NoError(t, err)

	require.Len(t, store.subs, 1)
	assert.Equal(t, "bug", store.subs[0].Category)
}

func TestSubmitStorageFailureStillReturnsID(t *testing.T) {
	store := &fakeStore{configured: true, putErr: errors.New("connection reset")}
	svc := newTestService(store)

	resp, err := svc.Submit(context.Background(), SubmitInput{
		Name:    "Jamie",
		Email:   "a@b.com",
		Message: "hello there",
	})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Failed to store submission", resp.Message)
	// ID was generated before the storage call
	assert.NotEmpty(t, resp.SubmissionID)
}

func TestListDefaultsLimit(t *testing.T) {
	store := &fakeStore{configured: true}
	for i := 0; i < 15; i++ {
		store.subs = append(store.subs, models.Submission{ID: storage.NewSubmissionID()})
	}
	svc := newTestService(store)

	subs, err := svc.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, subs, DefaultListLimit)

	subs, err = svc.List(context.Background(), -3)
	require.NoError(t, err)
	assert.Len(t, subs, DefaultListLimit)
}

func TestListPropagatesStoreError(t *testing.T) {
	store := &fakeStore{configured: true, listErr: errors.New("bucket gone")}
	svc := newTestService(store)

	_, err := svc.List(context.Background(), 5)
	assert.Error(t, err)
}

func TestStorageConfigured(t *testing.T) {
	assert.True(t, newTestService(&fakeStore{configured: true}).StorageConfigured())
	assert.False(t, newTestService(&fakeStore{}).StorageConfigured())
}
