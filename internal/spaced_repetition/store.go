package spaced_repetition

import (
	"context"

	"github.com/example/vocabdrill/pkg/models"
)

// ItemStore is the durable mapping from study-item id to StudyItem. Update is
// a keyed single-record write: two callers updating different items never
// overwrite each other's records.
type ItemStore interface {
	Insert(ctx context.Context, item *models.StudyItem) error
	GetByID(ctx context.Context, id string) (*models.StudyItem, error)
	GetAll(ctx context.Context) ([]models.StudyItem, error)
	Update(ctx context.Context, item *models.StudyItem) error
	// Delete is idempotent: deleting a missing id is a no-op.
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// SessionStore is the append-only review session history.
type SessionStore interface {
	Append(ctx context.Context, session *models.ReviewSession) error
	// GetAll returns sessions in insertion order.
	GetAll(ctx context.Context) ([]models.ReviewSession, error)
	DeleteAll(ctx context.Context) error
}

// CacheStore holds the single persisted statistics cache record.
type CacheStore interface {
	// Get returns nil with no error when no record is cached.
	Get(ctx context.Context) (*models.StatsCacheRecord, error)
	Put(ctx context.Context, record *models.StatsCacheRecord) error
	Clear(ctx context.Context) error
}
