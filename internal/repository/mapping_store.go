package repository

import (
	"context"

	"github.com/pkitazos/url-shortener/internal/domain"
)

// MappingStore is the persistence contract for the bidirectional
// long URL <-> short code index. Implementations must enforce uniqueness on
// both columns themselves: a race between two concurrent inserts of the same
// long URL or the same short code is resolved by exactly one insert
// succeeding, with the loser observing ErrConflict.
type MappingStore interface {
	// Insert atomically persists a new mapping. Returns domain.ErrConflict
	// when either the long URL or the short code is already taken.
	Insert(ctx context.Context, m *domain.Mapping) error

	// FindByLongURL returns the existing mapping for a long URL, or
	// domain.ErrMappingNotFound on miss. A miss is a normal negative
	// result, not a store failure.
	FindByLongURL(ctx context.Context, longURL string) (*domain.Mapping, error)

	// FindByShortCode returns the mapping for a short code, or
	// domain.ErrMappingNotFound on miss.
	FindByShortCode(ctx context.Context, shortCode string) (*domain.Mapping, error)
}
