package handler

import "net/http"

// Handlers groups the HTTP handlers mounted by the server
type Handlers struct {
	Posts      *PostHandler
	Categories *CategoryHandler
	Site       *SiteHandler
}

// Register mounts the read-only API routes on mux
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", HealthCheck)
	mux.HandleFunc("GET /api/site", h.Site.GetSite)
	mux.HandleFunc("GET /api/categories", h.Categories.ListCategories)
	mux.HandleFunc("GET /api/posts", h.Posts.ListPosts)
	mux.HandleFunc("GET /api/posts/{id}", h.Posts.GetPost)
	mux.HandleFunc("GET /api/posts/{id}/tree", h.Posts.GetTree)
	mux.HandleFunc("GET /api/posts/{id}/render", h.Posts.Render)
}
