package config

import "time"

const (
	// MaxRetries caps client retries per request.
	// Beyond this a failing upstream just holds the request open.
	MaxRetries = 10

	// MaxConcurrency caps parallel upstream fetches.
	// The Notion API allows roughly three requests per second per integration.
	MaxConcurrency = 64

	// MaxTreeDepth caps block nesting accepted from configuration.
	MaxTreeDepth = 128

	// MinCacheTTL keeps caches from expiring faster than the API can refill them.
	MinCacheTTL = time.Second

	// MaxPostKeyLength bounds id and slug path parameters.
	MaxPostKeyLength = 200

	// MaxFilterLength bounds category and tag query parameters.
	MaxFilterLength = 100
)
