package storage

import (
	"context"

	"go.uber.org/zap"

	"github.com/NICOL-XPDK/weba-backend/internal/models"
)

// DisabledStore is the degraded local mode used when no storage credential is
// configured. Writes are accepted but not durably stored; reads return an
// empty set.
type DisabledStore struct {
	log *zap.SugaredLogger
}

func NewDisabledStore(log *zap.SugaredLogger) *DisabledStore {
	return &DisabledStore{log: log}
}

func (s *DisabledStore) Put(_ context.Context, sub *models.Submission) (string, error) {
	key := ObjectKey(sub.ID)
	s.log.Warnf("Storage not configured, submission %s accepted but not persisted", sub.ID)
	return key, nil
}

func (s *DisabledStore) List(_ context.Context, _ int) ([]models.Submission, error) {
	return []models.Submission{}, nil
}

func (s *DisabledStore) Configured() bool {
	return false
}
