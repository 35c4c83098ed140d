package notion

import (
	"fmt"
	"strings"
	"time"
)

// BackoffMode enumerates supported backoff strategies for retries.
type BackoffMode string

const (
	BackoffFixed       BackoffMode = "fixed"
	BackoffLinear      BackoffMode = "linear"
	BackoffExponential BackoffMode = "exponential"
)

// ParseBackoffMode converts user input (case-insensitive) into a mode, returning "" for unknown.
func ParseBackoffMode(raw string) BackoffMode {
	switch m := BackoffMode(strings.ToLower(strings.TrimSpace(raw))); m {
	case BackoffFixed, BackoffLinear, BackoffExponential:
		return m
	}
	return ""
}

// Policy encapsulates retry/backoff settings for transient API failures.
type Policy struct {
	Mode       BackoffMode
	Initial    time.Duration // base delay
	Max        time.Duration // cap for growth
	MaxRetries int           // retries after the first failure
}

// DefaultPolicy is exponential, 500ms initial, 8s cap, 3 retries.
func DefaultPolicy() Policy {
	return Policy{Mode: BackoffExponential, Initial: 500 * time.Millisecond, Max: 8 * time.Second, MaxRetries: 3}
}

// NewPolicy builds a policy; zero or invalid values fall back to defaults.
func NewPolicy(mode BackoffMode, initial, maxDelay time.Duration, maxRetries int) Policy {
	p := DefaultPolicy()
	if maxRetries >= 0 {
		p.MaxRetries = maxRetries
	}
	if initial > 0 {
		p.Initial = initial
	}
	if maxDelay > 0 {
		p.Max = maxDelay
	}
	if m := ParseBackoffMode(string(mode)); m != "" {
		p.Mode = m
	}
	if p.Initial > p.Max {
		p.Initial = p.Max
	}
	return p
}

// Delay returns the wait before retry n (1-based).
func (p Policy) Delay(retry int) time.Duration {
	if retry <= 0 {
		return 0
	}
	var d time.Duration
	switch p.Mode {
	case BackoffFixed:
		d = p.Initial
	case BackoffLinear:
		d = time.Duration(retry) * p.Initial
	default:
		// guard the shift against overflow on long retry chains
		if retry > 30 {
			return p.Max
		}
		d = p.Initial * (1 << (retry - 1))
	}
	if d > p.Max {
		return p.Max
	}
	return d
}

// Validate ensures the policy can be applied
func (p Policy) Validate() error {
	if p.Initial <= 0 {
		return fmt.Errorf("initial delay must be >0")
	}
	if p.Max <= 0 {
		return fmt.Errorf("max delay must be >0")
	}
	if p.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	return nil
}
