package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkitazos/url-shortener/internal/cache"
	"github.com/pkitazos/url-shortener/internal/config"
	"github.com/pkitazos/url-shortener/internal/domain"
	"github.com/pkitazos/url-shortener/internal/metrics"
	"github.com/pkitazos/url-shortener/internal/repository"
	"github.com/pkitazos/url-shortener/internal/shortener"
	"github.com/pkitazos/url-shortener/pkg/logger"
	"github.com/pkitazos/url-shortener/pkg/validator"
)

// shortenerService implements the ShortenerService interface. It holds no
// mutable state of its own; everything shared lives behind the store's
// unique constraints, so instances can be replicated without coordination.
type shortenerService struct {
	store     repository.MappingStore
	cache     cache.Cache // nil means run store-only
	cfg       *config.Config
	logger    *logger.Logger
	generator *shortener.CodeGenerator
}

// NewShortenerService creates a new shortening service with dependencies injected
func NewShortenerService(
	store repository.MappingStore,
	cache cache.Cache,
	cfg *config.Config,
	logger *logger.Logger,
) ShortenerService {
	return &shortenerService{
		store:     store,
		cache:     cache,
		cfg:       cfg,
		logger:    logger,
		generator: shortener.NewCodeGenerator(cfg.ShortCodeLength),
	}
}

// Shorten maps a long URL to its short code, creating the mapping on first
// use. Conflicts reported by the store are resolved here and never leak:
// a lost same-URL race yields the winner's code, a code collision triggers
// regeneration up to MaxGenerateAttempts.
func (s *shortenerService) Shorten(ctx context.Context, rawURL string) (*domain.ShortenResponse, error) {
	if err := validator.ValidateURL(rawURL); err != nil {
		s.logger.Warn("rejected long URL", "url", rawURL, "error", err)
		return nil, domain.NewValidationError(domain.ErrInvalidURL, err.Error())
	}

	longURL := validator.NormalizeURL(rawURL)

	// Fast path: this URL was shortened recently
	if s.cache != nil {
		code, err := s.cache.Get(ctx, urlKey(longURL))
		switch {
		case err != nil:
			metrics.CacheErrorsTotal.Inc()
			s.logger.Warn("cache read failed", "long_url", longURL, "error", err)
		case code != "":
			metrics.CacheHitsTotal.Inc()
			metrics.ShortenReusedTotal.Inc()
			return s.buildResponse(code, longURL), nil
		default:
			metrics.CacheMissesTotal.Inc()
		}
	}

	existing, err := s.store.FindByLongURL(ctx, longURL)
	switch {
	case err == nil:
		s.cacheMapping(ctx, existing)
		metrics.ShortenReusedTotal.Inc()
		return s.buildResponse(existing.ShortCode, existing.LongURL), nil
	case errors.Is(err, domain.ErrMappingNotFound):
		// first time we see this URL
	default:
		return nil, err
	}

	for attempt := 1; attempt <= s.cfg.MaxGenerateAttempts; attempt++ {
		code, err := s.generator.Generate()
		if err != nil {
			return nil, domain.NewInternalError(err)
		}

		m := &domain.Mapping{ShortCode: code, LongURL: longURL}
		err = s.store.Insert(ctx, m)
		if err == nil {
			metrics.MappingsCreatedTotal.Inc()
			s.cacheMapping(ctx, m)
			s.logger.Info("mapping created", "short_code", code, "long_url", longURL)
			return s.buildResponse(code, longURL), nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}

		// The insert lost on one of the two unique columns. If the long URL
		// is now present, another caller won the race and its code is
		// authoritative; otherwise our generated code collided and we draw
		// a fresh one.
		winner, ferr := s.store.FindByLongURL(ctx, longURL)
		if ferr == nil {
			metrics.InsertRacesLostTotal.Inc()
			s.cacheMapping(ctx, winner)
			s.logger.Info("lost insert race, reusing winner's code",
				"short_code", winner.ShortCode, "long_url", longURL)
			return s.buildResponse(winner.ShortCode, winner.LongURL), nil
		}
		if !errors.Is(ferr, domain.ErrMappingNotFound) {
			return nil, ferr
		}

		metrics.CodeCollisionsTotal.Inc()
		s.logger.Warn("short code collision, regenerating",
			"short_code", code, "attempt", attempt)
	}

	// Repeated collisions point at an undersized code space or a degenerate
	// random source, not at anything the caller can fix.
	s.logger.Error("gave up allocating a short code",
		"attempts", s.cfg.MaxGenerateAttempts, "code_length", s.generator.Length())
	return nil, domain.NewInternalError(
		fmt.Errorf("%w after %d attempts", domain.ErrCodeSpaceExhausted, s.cfg.MaxGenerateAttempts))
}

// Redirect resolves a short code for the redirecting caller
func (s *shortenerService) Redirect(ctx context.Context, shortCode string) (string, error) {
	return s.resolve(ctx, shortCode, "redirect")
}

// Expand resolves a short code for inspection. Identical contract to
// Redirect; only the caller's intent differs.
func (s *shortenerService) Expand(ctx context.Context, shortCode string) (string, error) {
	return s.resolve(ctx, shortCode, "expand")
}

// resolve is the shared lookup path, cache-aside over FindByShortCode
func (s *shortenerService) resolve(ctx context.Context, shortCode, intent string) (string, error) {
	if err := validator.ValidateShortCode(shortCode); err != nil {
		return "", domain.NewValidationError(domain.ErrInvalidShortCode, err.Error())
	}

	if s.cache != nil {
		longURL, err := s.cache.Get(ctx, codeKey(shortCode))
		switch {
		case err != nil:
			metrics.CacheErrorsTotal.Inc()
			s.logger.Warn("cache read failed", "short_code", shortCode, "error", err)
		case longURL != "":
			metrics.CacheHitsTotal.Inc()
			metrics.LookupsTotal.WithLabelValues(intent).Inc()
			return longURL, nil
		default:
			metrics.CacheMissesTotal.Inc()
		}
	}

	m, err := s.store.FindByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, domain.ErrMappingNotFound) {
			s.logger.Info("unknown short code", "short_code", shortCode, "intent", intent)
			return "", domain.NewNotFoundError(shortCode)
		}
		return "", err
	}

	s.cacheMapping(ctx, m)
	metrics.LookupsTotal.WithLabelValues(intent).Inc()
	return m.LongURL, nil
}

// cacheMapping warms both directions of the lookaside cache. Cache failures
// are logged and swallowed; the store remains authoritative.
func (s *shortenerService) cacheMapping(ctx context.Context, m *domain.Mapping) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, codeKey(m.ShortCode), m.LongURL, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("failed to cache mapping", "short_code", m.ShortCode, "error", err)
		return
	}
	if err := s.cache.Set(ctx, urlKey(m.LongURL), m.ShortCode, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("failed to cache mapping", "short_code", m.ShortCode, "error", err)
	}
}

// buildResponse constructs the API response with the full short URL
func (s *shortenerService) buildResponse(shortCode, longURL string) *domain.ShortenResponse {
	return &domain.ShortenResponse{
		ShortCode: shortCode,
		ShortURL:  fmt.Sprintf("%s/%s", s.cfg.BaseURL, shortCode),
		LongURL:   longURL,
	}
}

func codeKey(shortCode string) string {
	return "code:" + shortCode
}

func urlKey(longURL string) string {
	return "url:" + longURL
}
