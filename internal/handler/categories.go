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

// CategoryHandler serves category counts
type CategoryHandler struct {
	categories contentSvc.CategoryService
	maxAge     time.Duration
	logger     *slog.Logger
}

func NewCategoryHandler(categories contentSvc.CategoryService, maxAge time.Duration, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, maxAge: maxAge, logger: logger}
}

// ListCategories returns post counts per category, optionally limited to a tag
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tag")
	if err := checkLength("tag", tag, config.MaxFilterLength); err != nil {
		handleError(w, err)
		return
	}

	counts, err := h.categories.Categories(r.Context(), tag)
	if err != nil {
		h.logger.Error("list categories failed", logfields.Error(err))
		handleError(w, err)
		return
	}

	httputil.SetCacheControl(w, h.maxAge)
	httputil.RespondJSON(w, http.StatusOK, counts)
}
