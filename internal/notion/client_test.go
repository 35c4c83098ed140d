package notion

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youngkeol/notion-blog/internal/domain"
	"github.com/youngkeol/notion-blog/internal/domain/models/content"
)

const (
	pageID   = "11111111-1111-1111-1111-111111111111"
	blockA   = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	blockB   = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
	dbID     = "dddddddd-dddd-dddd-dddd-dddddddddddd"
	userID   = "99999999-9999-9999-9999-999999999999"
	testTime = "2024-03-01T10:00:00.000Z"
)

type sleepRecorder struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.mu.Lock()
	s.waits = append(s.waits, d)
	s.mu.Unlock()
	return nil
}

func newTestClient(t *testing.T, h http.Handler, opts ...Option) (*Client, *sleepRecorder) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	sr := &sleepRecorder{}
	opts = append([]Option{WithHTTPClient(srv.Client()), withSleep(sr.sleep)}, opts...)
	c := NewClient(Config{
		BaseURL: srv.URL,
		Token:   "secret",
		Retry:   NewPolicy(BackoffExponential, 100*time.Millisecond, time.Second, 2),
	}, slog.New(slog.NewTextHandler(io.Discard, nil)), opts...)
	return c, sr
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_GetChildrenPaginates(t *testing.T) {
	var calls int
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/v1/blocks/"+pageID+"/children", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, DefaultVersion, r.Header.Get("Notion-Version"))

		if r.URL.Query().Get("start_cursor") == "" {
			writeJSON(w, http.StatusOK, map[string]any{
				"object":      "list",
				"has_more":    true,
				"next_cursor": "c2",
				"results": []any{map[string]any{
					"object": "block", "id": blockA, "type": "paragraph", "created_time": testTime,
					"has_children": true,
					"paragraph": map[string]any{"rich_text": []any{map[string]any{
						"type": "text", "plain_text": "hello", "href": nil,
						"annotations": map[string]any{"bold": true, "color": "default"},
					}}},
				}},
			})
			return
		}
		assert.Equal(t, "c2", r.URL.Query().Get("start_cursor"))
		writeJSON(w, http.StatusOK, map[string]any{
			"object":   "list",
			"has_more": false,
			"results": []any{
				map[string]any{"object": "block", "id": blockB, "type": "synced_block", "created_time": testTime},
				map[string]any{"object": "block", "id": "cccccccc-cccc-cccc-cccc-cccccccccccc", "type": "paragraph", "archived": true},
			},
		})
	})
	c, _ := newTestClient(t, h)

	blocks, err := c.GetChildren(context.Background(), "11111111111111111111111111111111")
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, 2, calls)

	assert.Equal(t, blockA, blocks[0].ID)
	assert.Equal(t, pageID, blocks[0].ParentID)
	assert.Equal(t, content.BlockParagraph, blocks[0].Type)
	assert.True(t, blocks[0].HasChildren)
	assert.Equal(t, "hello", blocks[0].PlainText())
	assert.True(t, blocks[0].RichText[0].Annotations.Bold)

	assert.Equal(t, content.BlockUnsupported, blocks[1].Type)
	assert.Equal(t, "synced_block", blocks[1].RawType)
}

func TestClient_QueryCollection(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/databases/"+dbID+"/query", r.URL.Path)
		var body queryRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, maxPageSize, body.PageSize)

		writeJSON(w, http.StatusOK, map[string]any{
			"object": "list",
			"results": []any{
				map[string]any{"object": "page", "id": pageID, "created_time": testTime},
				map[string]any{"object": "database", "id": dbID, "created_time": testTime},
			},
		})
	})
	c, _ := newTestClient(t, h)

	entries, err := c.QueryCollection(context.Background(), dbID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, content.EntryPage, entries[0].Kind)
	assert.Equal(t, content.EntryDatabase, entries[1].Kind)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), entries[0].CreatedTime.UTC())
}

func TestClient_QueryCollectionEmpty(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"object": "list", "results": []any{}})
	})
	c, _ := newTestClient(t, h)

	entries, err := c.QueryCollection(context.Background(), dbID)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestClient_GetActor(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/users/"+userID, r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"object": "user", "id": userID, "type": "person", "name": "Gori", "avatar_url": "https://a/b.png",
		})
	})
	c, _ := newTestClient(t, h)

	a, err := c.GetActor(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, &content.Actor{ID: userID, Name: "Gori", AvatarURL: "https://a/b.png"}, a)
}

func TestClient_RetriesRateLimit(t *testing.T) {
	var calls int
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "3")
			writeJSON(w, http.StatusTooManyRequests, map[string]any{"object": "error", "status": 429, "code": "rate_limited", "message": "slow down"})
			return
		}
		if calls == 2 {
			writeJSON(w, http.StatusBadGateway, map[string]any{"object": "error", "status": 502, "message": "bad gateway"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"object": "page", "id": pageID, "created_time": testTime, "properties": map[string]any{}})
	})
	c, sr := newTestClient(t, h)

	props, err := c.GetProperties(context.Background(), pageID)
	require.NoError(t, err)
	assert.Equal(t, pageID, props.ID)
	assert.Equal(t, 3, calls)
	// Retry-After wins over the first backoff step, then the second step applies
	assert.Equal(t, []time.Duration{3 * time.Second, 200 * time.Millisecond}, sr.waits)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		wantCalls    int
		wantNotFound bool
		wantUpstream bool
	}{
		{"not found", http.StatusNotFound, 1, true, false},
		{"unauthorized", http.StatusUnauthorized, 1, false, true},
		{"forbidden", http.StatusForbidden, 1, false, true},
		{"server error after retries", http.StatusInternalServerError, 3, false, true},
		{"rate limited after retries", http.StatusTooManyRequests, 3, false, true},
		{"bad request", http.StatusBadRequest, 1, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int
			h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				writeJSON(w, tt.status, map[string]any{"object": "error", "status": tt.status, "code": "x", "message": "nope"})
			})
			c, _ := newTestClient(t, h)

			_, err := c.GetProperties(context.Background(), pageID)
			require.Error(t, err)
			assert.Equal(t, tt.wantCalls, calls)
			assert.Equal(t, tt.wantNotFound, errors.Is(err, domain.ErrNotFound))
			assert.Equal(t, tt.wantUpstream, errors.Is(err, domain.ErrUpstreamUnavailable))

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, "nope", apiErr.Message)

			if tt.wantUpstream {
				var up *domain.UpstreamError
				require.ErrorAs(t, err, &up)
				assert.Equal(t, OpGetProperties, up.Op)
				assert.Equal(t, pageID, up.ID)
			}
		})
	}
}

func TestClient_TransportErrorIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewClient(Config{BaseURL: srv.URL}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := c.GetChildren(context.Background(), blockA)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
