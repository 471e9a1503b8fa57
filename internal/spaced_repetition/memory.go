package spaced_repetition

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/vocabdrill/pkg/models"
)

// In-memory store implementations. They back tests and persistence-free runs;
// each instance is fully independent, so two schedulers never share state.

// MemoryItemStore is an in-memory ItemStore.
type MemoryItemStore struct {
	mu    sync.Mutex
	order []string
	items map[string]models.StudyItem
}

// NewMemoryItemStore creates an empty in-memory item store.
func NewMemoryItemStore() *MemoryItemStore {
	return &MemoryItemStore{items: make(map[string]models.StudyItem)}
}

func (s *MemoryItemStore) Insert(ctx context.Context, item *models.StudyItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[item.ID]; exists {
		return fmt.Errorf("study item %s already exists", item.ID)
	}
	s.items[item.ID] = *item
	s.order = append(s.order, item.ID)
	return nil
}

func (s *MemoryItemStore) GetByID(ctx context.Context, id string) (*models.StudyItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return &item, nil
}

func (s *MemoryItemStore) GetAll(ctx context.Context) ([]models.StudyItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]models.StudyItem, 0, len(s.order))
	for _, id := range s.order {
		all = append(all, s.items[id])
	}
	return all, nil
}

func (s *MemoryItemStore) Update(ctx context.Context, item *models.StudyItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, item.ID)
	}
	s.items[item.ID] = *item
	return nil
}

func (s *MemoryItemStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return nil
	}
	delete(s.items, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryItemStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]models.StudyItem)
	s.order = nil
	return nil
}

// MemorySessionStore is an in-memory append-only SessionStore.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions []models.ReviewSession
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (s *MemorySessionStore) Append(ctx context.Context, session *models.ReviewSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	copied.Results = append([]models.ReviewResult(nil), session.Results...)
	s.sessions = append(s.sessions, copied)
	return nil
}

func (s *MemorySessionStore) GetAll(ctx context.Context) ([]models.ReviewSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ReviewSession(nil), s.sessions...), nil
}

func (s *MemorySessionStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = nil
	return nil
}

// MemoryCacheStore is an in-memory CacheStore.
type MemoryCacheStore struct {
	mu     sync.Mutex
	record *models.StatsCacheRecord
}

// NewMemoryCacheStore creates an empty in-memory cache store.
func NewMemoryCacheStore() *MemoryCacheStore {
	return &MemoryCacheStore{}
}

func (s *MemoryCacheStore) Get(ctx context.Context) (*models.StatsCacheRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.record == nil {
		return nil, nil
	}
	record := *s.record
	return &record, nil
}

func (s *MemoryCacheStore) Put(ctx context.Context, record *models.StatsCacheRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *record
	s.record = &copied
	return nil
}

func (s *MemoryCacheStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = nil
	return nil
}
