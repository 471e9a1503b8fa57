package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/vocabdrill/pkg/models"
)

// The cache table holds exactly one record under this key
const statsCacheKey = "stats"

// StatsCacheRepository persists the single statistics cache record
type StatsCacheRepository struct {
	db *sqlx.DB
}

// NewStatsCacheRepository creates a new repository instance
func NewStatsCacheRepository(db *sqlx.DB) *StatsCacheRepository {
	return &StatsCacheRepository{db: db}
}

// Get returns the cached record, or nil when nothing is cached
func (r *StatsCacheRepository) Get(ctx context.Context) (*models.StatsCacheRecord, error) {
	var payload string
	query := r.db.Rebind("SELECT payload FROM stats_cache WHERE cache_key = ?")
	err := r.db.GetContext(ctx, &payload, query, statsCacheKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stats cache: %w", err)
	}

	var record models.StatsCacheRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		// A corrupt cache record is the same as no cache
		return nil, nil
	}
	return &record, nil
}

// Put stores the record, replacing any previous one
func (r *StatsCacheRepository) Put(ctx context.Context, record *models.StatsCacheRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode stats cache: %w", err)
	}
	query := r.db.Rebind(`
		INSERT INTO stats_cache (cache_key, payload) VALUES (?, ?)
		ON CONFLICT (cache_key) DO UPDATE SET payload = excluded.payload
	`)
	if _, err := r.db.ExecContext(ctx, query, statsCacheKey, string(payload)); err != nil {
		return fmt.Errorf("failed to put stats cache: %w", err)
	}
	return nil
}

// Clear drops the cached record. Clearing an empty cache is a no-op.
func (r *StatsCacheRepository) Clear(ctx context.Context) error {
	query := r.db.Rebind("DELETE FROM stats_cache WHERE cache_key = ?")
	if _, err := r.db.ExecContext(ctx, query, statsCacheKey); err != nil {
		return fmt.Errorf("failed to clear stats cache: %w", err)
	}
	return nil
}
