package content

import (
	"context"

	"github.com/youngkeol/notion-blog/internal/domain/models/content"
	"github.com/youngkeol/notion-blog/internal/domain/models/render"
)

// IndexService produces the cached post list
type IndexService interface {
	// GetIndex returns every document of the collection, newest first.
	// Documents whose properties cannot be fetched are left out.
	GetIndex(ctx context.Context) (content.DocumentIndex, error)
}

// TreeService materializes document trees
type TreeService interface {
	// GetTree returns the full block tree of a document.
	// Subtrees whose children could not be fetched are left unexpanded.
	GetTree(ctx context.Context, documentID string) (*content.DocumentTree, error)
}

// ActorResolver fills in actor references of a property set
type ActorResolver interface {
	// Resolve returns props with every resolvable actor reference filled in.
	// Failed lookups keep the unresolved reference.
	Resolve(ctx context.Context, props content.Properties) content.Properties
}

// CategoryService counts posts per category
type CategoryService interface {
	// Categories returns post counts per category, including the "all" bucket.
	// A non-empty tag restricts counting to posts carrying that tag.
	Categories(ctx context.Context, tag string) ([]CategoryCount, error)

	// Filter returns the posts matching a category and/or tag; empty values match all
	Filter(ctx context.Context, category, tag string) (content.DocumentIndex, error)
}

// CategoryCount is one entry of the category selector
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Format selects a rendered body representation
type Format string

const (
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// PostService resolves and renders single posts
type PostService interface {
	// GetPost loads a post by id or slug and renders it
	GetPost(ctx context.Context, idOrSlug string) (*Post, error)

	// GetTree loads the raw document tree of a post by id or slug
	GetTree(ctx context.Context, idOrSlug string) (*content.DocumentTree, error)

	// RenderBody renders a post body in the requested format
	RenderBody(ctx context.Context, idOrSlug string, format Format) (string, error)
}

// Post is a rendered document with its summary
type Post struct {
	Summary        content.DocumentSummary `json:"summary"`
	Body           *render.Node            `json:"body"`
	WordCount      int                     `json:"word_count"`
	ReadingMinutes int                     `json:"reading_minutes"`
	Degraded       bool                    `json:"degraded"` // some subtrees could not be fetched
}
