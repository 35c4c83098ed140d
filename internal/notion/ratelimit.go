package notion

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrorType classifies a failed API response
type ErrorType string

const (
	ErrorTypeRateLimit   ErrorType = "rate_limit"
	ErrorTypeServerError ErrorType = "server_error"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// RateLimitInfo is what the response headers say about throttling
type RateLimitInfo struct {
	StatusCode        int
	IsRateLimited     bool
	RemainingRequests *int
	ResetTime         *time.Time
	RetryAfter        time.Duration
	ErrorType         ErrorType
}

// ParseRateLimit reads the x-ratelimit-* and Retry-After headers of a response.
func ParseRateLimit(status int, h http.Header) RateLimitInfo {
	info := RateLimitInfo{StatusCode: status}

	if v := h.Get("X-Ratelimit-Remaining"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			info.RemainingRequests = &n
		}
	}
	if v := h.Get("X-Ratelimit-Reset"); v != "" {
		if secs, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			t := time.Unix(secs, 0).UTC()
			info.ResetTime = &t
		}
	}
	info.RetryAfter = parseRetryAfter(h.Get("Retry-After"))

	switch {
	case status == http.StatusTooManyRequests:
		info.IsRateLimited = true
		info.ErrorType = ErrorTypeRateLimit
	case status >= 500:
		info.ErrorType = ErrorTypeServerError
	default:
		info.ErrorType = ErrorTypeUnknown
	}
	return info
}

// Retry-After is either delta-seconds or an HTTP date.
func parseRetryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// Retryable reports whether the status is worth another attempt
func (i RateLimitInfo) Retryable() bool {
	return i.IsRateLimited || i.ErrorType == ErrorTypeServerError
}

func (i RateLimitInfo) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "status=%d type=%s", i.StatusCode, i.ErrorType)
	if i.RemainingRequests != nil {
		fmt.Fprintf(&b, " remaining=%d", *i.RemainingRequests)
	}
	if i.ResetTime != nil {
		fmt.Fprintf(&b, " reset=%s", i.ResetTime.Format(time.RFC3339))
	}
	if i.RetryAfter > 0 {
		fmt.Fprintf(&b, " retry_after=%s", i.RetryAfter)
	}
	return b.String()
}
