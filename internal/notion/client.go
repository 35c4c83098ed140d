package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/youngkeol/notion-blog/internal/domain"
	"github.com/youngkeol/notion-blog/internal/domain/models/content"
	contentSvc "github.com/youngkeol/notion-blog/internal/domain/services/content"
	"github.com/youngkeol/notion-blog/internal/logfields"
	"github.com/youngkeol/notion-blog/internal/metrics"
)

const (
	DefaultBaseURL = "https://api.notion.com"
	DefaultVersion = "2022-06-28"
	maxPageSize    = 100
	maxErrorBody   = 64 << 10
)

// Operation names used in logs, metrics and UpstreamError.Op
const (
	OpQueryCollection = "query_collection"
	OpGetProperties   = "get_properties"
	OpGetChildren     = "get_children"
	OpGetActor        = "get_actor"
)

// Config configures the API client
type Config struct {
	BaseURL   string
	Token     string
	Version   string
	RateLimit float64 // requests per second, 0 disables throttling
	Burst     int
	Retry     Policy
	PageSize  int
}

// APIError is a non-2xx response from the API
type APIError struct {
	Status    int
	Code      string
	Message   string
	RateLimit RateLimitInfo
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("notion api %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("notion api %d: %s", e.Status, e.Message)
}

// Client is a ContentClient over the Notion REST API.
// It owns pagination, throttling and retries.
type Client struct {
	cfg      Config
	http     *http.Client
	limiter  *rate.Limiter
	logger   *slog.Logger
	recorder metrics.Recorder
	sleep    func(ctx context.Context, d time.Duration) error
}

var _ contentSvc.ContentClient = (*Client)(nil)

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRecorder reports call durations
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Client) { c.recorder = metrics.OrNoop(r) }
}

// withSleep replaces backoff waiting in tests
func withSleep(fn func(context.Context, time.Duration) error) Option {
	return func(c *Client) { c.sleep = fn }
}

// NewClient creates a client; empty config fields take defaults.
func NewClient(cfg Config, logger *slog.Logger, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	if cfg.PageSize <= 0 || cfg.PageSize > maxPageSize {
		cfg.PageSize = maxPageSize
	}
	if cfg.Retry.Validate() != nil {
		cfg.Retry = DefaultPolicy()
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = max(1, int(cfg.RateLimit))
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	c := &Client{
		cfg:      cfg,
		http:     &http.Client{Timeout: 30 * time.Second},
		limiter:  limiter,
		logger:   logger,
		recorder: metrics.NoopRecorder{},
		sleep:    sleepCtx,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// QueryCollection lists every entry of a database, following cursors until has_more is false.
func (c *Client) QueryCollection(ctx context.Context, collectionID string) ([]content.CollectionEntry, error) {
	id := content.NormalizeID(collectionID)
	var entries []content.CollectionEntry
	cursor := ""
	for {
		var page listResponse[wireObject]
		req := queryRequest{StartCursor: cursor, PageSize: c.cfg.PageSize}
		if err := c.call(ctx, OpQueryCollection, id, http.MethodPost, "/v1/databases/"+url.PathEscape(id)+"/query", req, &page); err != nil {
			return nil, err
		}
		for _, o := range page.Results {
			entries = append(entries, decodeEntry(o))
		}
		if !page.HasMore || page.NextCursor == nil || *page.NextCursor == "" {
			break
		}
		cursor = *page.NextCursor
	}
	if entries == nil {
		entries = []content.CollectionEntry{}
	}
	return entries, nil
}

// GetProperties retrieves a page and decodes its properties.
func (c *Client) GetProperties(ctx context.Context, id string) (*content.PageProperties, error) {
	id = content.NormalizeID(id)
	var page wirePage
	if err := c.call(ctx, OpGetProperties, id, http.MethodGet, "/v1/pages/"+url.PathEscape(id), nil, &page); err != nil {
		return nil, err
	}
	return decodePage(page), nil
}

// GetChildren lists every immediate child of a block, following cursors.
func (c *Client) GetChildren(ctx context.Context, blockID string) ([]content.Block, error) {
	id := content.NormalizeID(blockID)
	var blocks []content.Block
	cursor := ""
	for {
		q := url.Values{}
		q.Set("page_size", fmt.Sprint(c.cfg.PageSize))
		if cursor != "" {
			q.Set("start_cursor", cursor)
		}
		var page listResponse[wireBlock]
		path := "/v1/blocks/" + url.PathEscape(id) + "/children?" + q.Encode()
		if err := c.call(ctx, OpGetChildren, id, http.MethodGet, path, nil, &page); err != nil {
			return nil, err
		}
		for _, w := range page.Results {
			if w.Archived || w.InTrash {
				continue
			}
			blocks = append(blocks, decodeBlock(w, id))
		}
		if !page.HasMore || page.NextCursor == nil || *page.NextCursor == "" {
			break
		}
		cursor = *page.NextCursor
	}
	return blocks, nil
}

// GetActor retrieves a user or bot
func (c *Client) GetActor(ctx context.Context, actorID string) (*content.Actor, error) {
	id := content.NormalizeID(actorID)
	var u wireUser
	if err := c.call(ctx, OpGetActor, id, http.MethodGet, "/v1/users/"+url.PathEscape(id), nil, &u); err != nil {
		return nil, err
	}
	return decodeUser(u), nil
}

// call runs one logical request with throttling and retries, and maps the final error.
func (c *Client) call(ctx context.Context, op, id, method, path string, body, out any) error {
	start := time.Now()
	err := c.do(ctx, op, method, path, body, out)
	c.recorder.ObserveUpstreamCall(op, time.Since(start), err == nil)
	if err != nil {
		return c.mapError(op, id, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	for retry := 0; ; retry++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
		req.Header.Set("Notion-Version", c.cfg.Version)
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
			return nil
		}

		apiErr := readAPIError(resp)
		if !apiErr.RateLimit.Retryable() || retry >= c.cfg.Retry.MaxRetries {
			return apiErr
		}

		wait := max(c.cfg.Retry.Delay(retry+1), apiErr.RateLimit.RetryAfter)
		c.logger.Warn("retrying notion request",
			logfields.Op(op),
			slog.Int("retry", retry+1),
			slog.String("rate_limit", apiErr.RateLimit.String()),
			logfields.Duration(wait),
		)
		if err := c.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func readAPIError(resp *http.Response) *APIError {
	defer resp.Body.Close()
	apiErr := &APIError{
		Status:    resp.StatusCode,
		RateLimit: ParseRateLimit(resp.StatusCode, resp.Header),
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var er errorResponse
	if json.Unmarshal(data, &er) == nil && er.Message != "" {
		apiErr.Code = er.Code
		apiErr.Message = er.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
	}
	return apiErr
}

// mapError translates a failed call: 404 becomes NotFound; transport, auth, rate limit
// and server failures become UpstreamError; other client errors pass through.
func (c *Client) mapError(op, id string, err error) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s %s: %w", op, id, err)
		}
		return &domain.UpstreamError{Op: op, ID: id, Cause: err}
	}

	switch {
	case apiErr.Status == http.StatusNotFound:
		return fmt.Errorf("%w: %w", &domain.NotFoundError{Message: fmt.Sprintf("%s %s not found", op, id)}, apiErr)
	case apiErr.Status == http.StatusUnauthorized,
		apiErr.Status == http.StatusForbidden,
		apiErr.RateLimit.Retryable():
		return &domain.UpstreamError{Op: op, ID: id, Cause: apiErr}
	default:
		return fmt.Errorf("%s %s: %w", op, id, apiErr)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
