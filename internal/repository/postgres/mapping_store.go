package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pkitazos/url-shortener/internal/domain"
	"github.com/pkitazos/url-shortener/internal/repository"
)

// mappingStore implements repository.MappingStore on PostgreSQL.
// Uniqueness on both columns comes from the unique indexes declared on
// domain.Mapping; gorm must be opened with TranslateError so constraint
// violations surface as gorm.ErrDuplicatedKey.
type mappingStore struct {
	db *gorm.DB
}

// NewMappingStore creates a PostgreSQL-backed mapping store
func NewMappingStore(db *gorm.DB) repository.MappingStore {
	return &mappingStore{db: db}
}

// Insert persists a new mapping in a single statement. The database decides
// races: a duplicate on either column comes back as domain.ErrConflict and
// the caller re-checks or retries with a fresh code.
func (s *mappingStore) Insert(ctx context.Context, m *domain.Mapping) error {
	result := s.db.WithContext(ctx).Create(m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrConflict
		}
		return domain.NewStoreError(result.Error)
	}
	return nil
}

// FindByLongURL looks up an existing mapping by its long URL
func (s *mappingStore) FindByLongURL(ctx context.Context, longURL string) (*domain.Mapping, error) {
	var m domain.Mapping

	result := s.db.WithContext(ctx).
		Where("long_url = ?", longURL).
		First(&m)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMappingNotFound
		}
		return nil, domain.NewStoreError(result.Error)
	}

	return &m, nil
}

// FindByShortCode looks up an existing mapping by its short code
func (s *mappingStore) FindByShortCode(ctx context.Context, shortCode string) (*domain.Mapping, error) {
	var m domain.Mapping

	result := s.db.WithContext(ctx).
		Where("short_code = ?", shortCode).
		First(&m)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMappingNotFound
		}
		return nil, domain.NewStoreError(result.Error)
	}

	return &m, nil
}
