// Package storage persists feedback submissions as JSON objects in a blob
// container. Two implementations exist: a MinIO-backed store used when
// credentials are configured, and a disabled store for degraded local mode.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/NICOL-XPDK/weba-backend/internal/models"
)

// Store is the submission storage contract. Implementations are safe for
// concurrent use by multiple in-flight requests.
type Store interface {
	// Put persists one submission under a key derived from its ID and
	// returns that key. A single failed attempt is reported as failure;
	// there are no retries.
	Put(ctx context.Context, sub *models.Submission) (string, error)

	// List enumerates stored objects in storage-native order, parsing up to
	// limit records, then returns that subset sorted by submission timestamp
	// descending. Objects that fail to parse as JSON are skipped.
	List(ctx context.Context, limit int) ([]models.Submission, error)

	// Configured reports whether a real storage backend is attached.
	Configured() bool
}

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewSubmissionID generates a fresh submission ID from the creation time and
// a short random token, e.g. "submission-1756640000000-k3f9a01xz". Collisions
// are avoided by construction.
func NewSubmissionID() string {
	return fmt.Sprintf("submission-%d-%s", time.Now().UnixMilli(), randomToken(9))
}

// ObjectKey derives the storage key for a submission ID.
func ObjectKey(id string) string {
	return id + ".json"
}

func randomToken(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// Fallback to nanoseconds if random fails
		return fmt.Sprintf("%d", time.Now().UnixNano())[:n]
	}
	for i, b := range buf {
		buf[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(buf)
}

// decodeSubmission parses one stored object body. A parse failure means the
// object is skipped by List, not counted against the limit.
func decodeSubmission(data []byte) (*models.Submission, error) {
	var sub models.Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, fmt.Errorf("failed to parse stored object: %w", err)
	}
	return &sub, nil
}

// sortByTimestampDesc orders submissions newest first. Timestamps are RFC3339
// UTC strings, so lexical comparison matches chronological order.
func sortByTimestampDesc(subs []models.Submission) {
	sort.Slice(subs, func(i, j int) bool {
		return subs[i].Timestamp > subs[j].Timestamp
	})
}
