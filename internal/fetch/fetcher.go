// Package fetch handles retrieval of upstream HTML pages.
package fetch

import (
	"context"
	"time"
)

// Page represents fetched page data.
type Page struct {
	URL         string
	HTML        string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

// Fetcher abstracts page fetching strategies.
type Fetcher interface {
	// Fetch retrieves page content from a URL.
	Fetch(ctx context.Context, url string) (Page, error)

	// Close releases any resources (browser instances, etc.).
	Close() error

	// Type returns "static" or "dynamic".
	Type() string
}

// Config holds common fetcher configuration.
type Config struct {
	UserAgent string
	Timeout   time.Duration
	// RequestsPerSecond caps outbound requests. Zero means unlimited.
	RequestsPerSecond float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent:         "sd-motion-generator/1.0",
		Timeout:           30 * time.Second,
		RequestsPerSecond: 1,
	}
}
