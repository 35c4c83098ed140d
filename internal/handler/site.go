package handler

import (
	"net/http"

	"github.com/youngkeol/notion-blog/internal/config"
	"github.com/youngkeol/notion-blog/internal/httputil"
)

// SiteHandler serves the public site configuration
type SiteHandler struct {
	site *config.Site
}

func NewSiteHandler(site *config.Site) *SiteHandler {
	return &SiteHandler{site: site}
}

func (h *SiteHandler) GetSite(w http.ResponseWriter, r *http.Request) {
	httputil.SetCacheControl(w, h.site.MaxAge())
	httputil.RespondJSON(w, http.StatusOK, h.site)
}

// HealthCheck reports liveness without touching the content source
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
