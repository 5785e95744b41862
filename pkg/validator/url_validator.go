package validator

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	// shortCodeRegex matches the base62 alphabet codes are drawn from
	shortCodeRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

	// allowedSchemes lists permitted URL schemes
	allowedSchemes = map[string]bool{
		"http":  true,
		"https": true,
		"ftp":   true,
	}
)

// ValidateURL checks that a string is syntactically a URL with at least a
// scheme and a host. Stricter policy (scheme allow-list, length cap) is
// applied here as well; the core contract only requires scheme + host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL cannot be empty"}
	}

	if len(rawURL) > 2048 {
		return &ValidationError{Field: "url", Message: "URL too long (max 2048 characters)"}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: "Invalid URL structure"}
	}

	if !allowedSchemes[strings.ToLower(parsed.Scheme)] {
		return &ValidationError{Field: "url", Message: "Unsupported URL scheme"}
	}

	if parsed.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must contain a host"}
	}

	return nil
}

// maxShortCodeLength is the largest code any generator configuration can
// issue. Lookup validation caps here rather than at the currently configured
// length, so codes issued under an older, longer configuration still resolve
// and unknown-but-well-formed codes fall through to a store miss.
const maxShortCodeLength = 12

// ValidateShortCode checks that a short code is non-empty and drawn from the
// base62 alphabet. Whether the code exists is the store's question, not a
// validation one.
func ValidateShortCode(code string) error {
	if code == "" {
		return &ValidationError{Field: "short_code", Message: "Short code cannot be empty"}
	}
	if len(code) > maxShortCodeLength || !shortCodeRegex.MatchString(code) {
		return &ValidationError{Field: "short_code", Message: "Malformed short code"}
	}
	return nil
}

// NormalizeURL standardizes the canonical form a long URL is stored under,
// so syntactic variants of the same address share one mapping.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	// Scheme and host are case-insensitive; path is not
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Path = strings.TrimSuffix(parsed.Path, "/")

	return parsed.String()
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
