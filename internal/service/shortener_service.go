package service

import (
	"context"

	"github.com/pkitazos/url-shortener/internal/domain"
)

// ShortenerService is the core contract: three stateless operations against
// the mapping store. Redirect and Expand share one lookup semantics; the
// split exists for the presentation layer (301 versus inspection JSON).
type ShortenerService interface {
	// Shorten returns the short code for a long URL, creating a mapping on
	// first use and reusing the existing one on every call after that
	Shorten(ctx context.Context, longURL string) (*domain.ShortenResponse, error)

	// Redirect resolves a short code to its long URL for redirection
	Redirect(ctx context.Context, shortCode string) (string, error)

	// Expand resolves a short code to its long URL for inspection
	Expand(ctx context.Context, shortCode string) (string, error)
}
