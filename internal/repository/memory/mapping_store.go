package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pkitazos/url-shortener/internal/domain"
)

// Store is an in-process MappingStore backed by two maps under one mutex.
// Holding a single lock across the double existence check and the writes
// gives Insert the same atomic either-column uniqueness the database
// constraints provide in the PostgreSQL store.
type Store struct {
	mu     sync.RWMutex
	nextID uint
	byURL  map[string]*domain.Mapping
	byCode map[string]*domain.Mapping
}

// New creates an empty in-memory mapping store
func New() *Store {
	return &Store{
		byURL:  make(map[string]*domain.Mapping),
		byCode: make(map[string]*domain.Mapping),
	}
}

func (s *Store) Insert(ctx context.Context, m *domain.Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byURL[m.LongURL]; ok {
		return domain.ErrConflict
	}
	if _, ok := s.byCode[m.ShortCode]; ok {
		return domain.ErrConflict
	}

	s.nextID++
	stored := &domain.Mapping{
		ID:        s.nextID,
		ShortCode: m.ShortCode,
		LongURL:   m.LongURL,
		CreatedAt: time.Now(),
	}
	s.byURL[stored.LongURL] = stored
	s.byCode[stored.ShortCode] = stored

	m.ID = stored.ID
	m.CreatedAt = stored.CreatedAt
	return nil
}

func (s *Store) FindByLongURL(ctx context.Context, longURL string) (*domain.Mapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.byURL[longURL]
	if !ok {
		return nil, domain.ErrMappingNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *Store) FindByShortCode(ctx context.Context, shortCode string) (*domain.Mapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.byCode[shortCode]
	if !ok {
		return nil, domain.ErrMappingNotFound
	}
	cp := *m
	return &cp, nil
}

// Len reports the number of persisted mappings
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byCode)
}
