package domain

import (
	"time"
)

// Mapping is the sole persisted entity: a bijective pair between a long URL
// and its short code. Both columns carry unique indexes so the database, not
// application logic, arbitrates concurrent inserts.
type Mapping struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	ShortCode string    `gorm:"uniqueIndex;not null;size:12" json:"short_code"`
	LongURL   string    `gorm:"uniqueIndex;not null;size:2048" json:"long_url"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Mapping) TableName() string {
	return "mappings"
}

// ShortenRequest is the request payload for creating a short code
type ShortenRequest struct {
	URL string `json:"url" binding:"required"`
}

// ShortenResponse is returned after a successful (or idempotent) shorten
type ShortenResponse struct {
	ShortCode string `json:"short_code"`
	ShortURL  string `json:"short_url"` // BASE_URL/<short_code>
	LongURL   string `json:"long_url"`
}

// ExpandResponse carries a resolved mapping for inspection (no redirect)
type ExpandResponse struct {
	ShortCode string `json:"short_code"`
	LongURL   string `json:"long_url"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}
