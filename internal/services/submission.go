package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/NICOL-XPDK/weba-backend/internal/models"
	"github.com/NICOL-XPDK/weba-backend/internal/storage"
)

// DefaultListLimit is used when no limit query parameter is supplied.
const DefaultListLimit = 10

// DefaultCategory is applied when a submission omits its category.
const DefaultCategory = "feedback"

// SubmitInput carries the form fields plus request context captured by the
// HTTP layer.
type SubmitInput struct {
	Name      string
	Email     string
	Category  string
	Message   string
	UserAgent string
	IP        string
}

// ValidationError reports a missing required field. The message is safe to
// return to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// SubmissionService validates incoming feedback, builds submission records
// and delegates persistence to the storage layer.
type SubmissionService struct {
	store storage.Store
	log   *zap.SugaredLogger
}

func NewSubmissionService(store storage.Store, log *zap.SugaredLogger) *SubmissionService {
	return &SubmissionService{store: store, log: log}
}

// Submit validates the input and persists a new submission. A non-nil error
// is always a *ValidationError and means nothing was stored. Otherwise the
// returned envelope carries the generated submission ID even when the
// storage write failed; callers must inspect Success.
func (s *SubmissionService) Submit(ctx context.Context, in SubmitInput) (*models.SubmitResponse, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	message := strings.TrimSpace(in.Message)

	if name == "" {
		return nil, &ValidationError{Message: "Name is required"}
	}
	if email == "" {
		return nil, &ValidationError{Message: "Email is required"}
	}
	if message == "" {
		return nil, &ValidationError{Message: "Message is required"}
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = DefaultCategory
	}

	sub := &models.Submission{
		ID:        storage.NewSubmissionID(),
		Name:      name,
		Email:     email,
		Category:  category,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		UserAgent: in.UserAgent,
		IP:        in.IP,
	}

	if _, err := s.store.Put(ctx, sub); err != nil {
		s.log.Errorf("Failed to store submission %s: %v", sub.ID, err)
		return &models.SubmitResponse{
			Success:      false,
			Message:      "Failed to store submission",
			SubmissionID: sub.ID,
		}, nil
	}

	return &models.SubmitResponse{
		Success:      true,
		Message:      "Feedback submitted successfully. Thank you!",
		SubmissionID: sub.ID,
	}, nil
}

// List returns up to limit recent submissions, newest first among the subset
// the store examined. A non-positive limit falls back to DefaultListLimit.
func (s *SubmissionService) List(ctx context.Context, limit int) ([]models.Submission, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.store.List(ctx, limit)
}

// StorageConfigured reports whether a real storage backend is attached.
func (s *SubmissionService) StorageConfigured() bool {
	return s.store.Configured()
}
