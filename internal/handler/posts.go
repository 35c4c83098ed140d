package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/youngkeol/notion-blog/internal/config"
	contentSvc "github.com/youngkeol/notion-blog/internal/domain/services/content"
	"github.com/youngkeol/notion-blog/internal/httputil"
	"github.com/youngkeol/notion-blog/internal/logfields"
)

// PostHandler handles HTTP requests for posts
type PostHandler struct {
	posts      contentSvc.PostService
	categories contentSvc.CategoryService
	maxAge     time.Duration
	logger     *slog.Logger
}

// NewPostHandler creates a new post handler
func NewPostHandler(posts contentSvc.PostService, categories contentSvc.CategoryService, maxAge time.Duration, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		posts:      posts,
		categories: categories,
		maxAge:     maxAge,
		logger:     logger,
	}
}

// ListPosts returns the post index, optionally filtered by category and tag
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	tag := r.URL.Query().Get("tag")
	if err := checkLength("category", category, config.MaxFilterLength); err != nil {
		handleError(w, err)
		return
	}
	if err := checkLength("tag", tag, config.MaxFilterLength); err != nil {
		handleError(w, err)
		return
	}

	posts, err := h.categories.Filter(r.Context(), category, tag)
	if err != nil {
		h.logger.Error("list posts failed", logfields.Error(err))
		handleError(w, err)
		return
	}

	httputil.SetCacheControl(w, h.maxAge)
	httputil.RespondJSON(w, http.StatusOK, posts)
}

// GetPost returns a rendered post by id or slug
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	key, ok := h.postKey(w, r)
	if !ok {
		return
	}

	post, err := h.posts.GetPost(r.Context(), key)
	if err != nil {
		h.logFailure("get post failed", key, err)
		handleError(w, err)
		return
	}

	httputil.SetCacheControl(w, h.maxAge)
	httputil.RespondJSON(w, http.StatusOK, post)
}

// GetTree returns the raw block tree of a post
func (h *PostHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	key, ok := h.postKey(w, r)
	if !ok {
		return
	}

	tree, err := h.posts.GetTree(r.Context(), key)
	if err != nil {
		h.logFailure("get tree failed", key, err)
		handleError(w, err)
		return
	}

	httputil.SetCacheControl(w, h.maxAge)
	httputil.RespondJSON(w, http.StatusOK, tree)
}

// Render returns the post body as json, html or markdown (default json)
func (h *PostHandler) Render(w http.ResponseWriter, r *http.Request) {
	key, ok := h.postKey(w, r)
	if !ok {
		return
	}

	format := contentSvc.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = contentSvc.FormatJSON
	}

	body, err := h.posts.RenderBody(r.Context(), key, format)
	if err != nil {
		h.logFailure("render post failed", key, err)
		handleError(w, err)
		return
	}

	httputil.SetCacheControl(w, h.maxAge)
	httputil.RespondText(w, http.StatusOK, contentType(format), body)
}

// postKey reads and checks the {id} path value
func (h *PostHandler) postKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	key := r.PathValue("id")
	if key == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Post ID is required")
		return "", false
	}
	if err := checkLength("id", key, config.MaxPostKeyLength); err != nil {
		handleError(w, err)
		return "", false
	}
	return key, true
}

// logFailure logs server-side failures; client errors stay at debug
func (h *PostHandler) logFailure(msg, key string, err error) {
	if status := statusOf(err); status < http.StatusInternalServerError {
		h.logger.Debug(msg, logfields.DocumentID(key), logfields.Error(err))
		return
	}
	h.logger.Error(msg, logfields.DocumentID(key), logfields.Error(err))
}

func contentType(f contentSvc.Format) string {
	switch f {
	case contentSvc.FormatHTML:
		return "text/html; charset=utf-8"
	case contentSvc.FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "application/json"
	}
}
