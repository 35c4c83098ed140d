package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/youngkeol/notion-blog/internal/domain"
	"github.com/youngkeol/notion-blog/internal/domain/models/content"
	contentSvc "github.com/youngkeol/notion-blog/internal/domain/services/content"
	"github.com/youngkeol/notion-blog/internal/logfields"
	renderSvc "github.com/youngkeol/notion-blog/internal/service/render"
)

// DefaultSlugProperty names the property posts are addressed by
const DefaultSlugProperty = "slug"

// PostConfig tunes post resolution and statistics
type PostConfig struct {
	SlugProperty   string
	WordsPerMinute int
}

// postService implements the PostService interface
type postService struct {
	index     contentSvc.IndexService
	trees     contentSvc.TreeService
	renderer  *renderSvc.Renderer
	sanitizer *renderSvc.Sanitizer
	markdown  *renderSvc.MarkdownExporter
	analyzer  *renderSvc.Analyzer
	cfg       PostConfig
	logger    *slog.Logger
}

// NewPostService creates a new post service
func NewPostService(
	index contentSvc.IndexService,
	trees contentSvc.TreeService,
	renderer *renderSvc.Renderer,
	cfg PostConfig,
	logger *slog.Logger,
) contentSvc.PostService {
	if cfg.SlugProperty == "" {
		cfg.SlugProperty = DefaultSlugProperty
	}
	sanitizer := renderSvc.NewSanitizer()
	return &postService{
		index:     index,
		trees:     trees,
		renderer:  renderer,
		sanitizer: sanitizer,
		markdown:  renderSvc.NewMarkdownExporter(sanitizer),
		analyzer:  renderSvc.NewAnalyzer(cfg.WordsPerMinute),
		cfg:       cfg,
		logger:    logger,
	}
}

// renderedPost carries every representation produced for one request
type renderedPost struct {
	post     *contentSvc.Post
	html     string
	markdown string
}

// GetPost loads a post by id or slug and renders it
func (s *postService) GetPost(ctx context.Context, idOrSlug string) (*contentSvc.Post, error) {
	r, err := s.render(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	return r.post, nil
}

// GetTree loads the raw document tree of an indexed post
func (s *postService) GetTree(ctx context.Context, idOrSlug string) (*content.DocumentTree, error) {
	summary, err := s.resolve(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	return s.trees.GetTree(ctx, summary.ID)
}

// RenderBody renders a post body in the requested format
func (s *postService) RenderBody(ctx context.Context, idOrSlug string, format contentSvc.Format) (string, error) {
	switch format {
	case contentSvc.FormatJSON, contentSvc.FormatHTML, contentSvc.FormatMarkdown:
	default:
		return "", &domain.ValidationError{Message: fmt.Sprintf("unknown format %q", format)}
	}

	r, err := s.render(ctx, idOrSlug)
	if err != nil {
		return "", err
	}
	switch format {
	case contentSvc.FormatHTML:
		return r.html, nil
	case contentSvc.FormatMarkdown:
		return r.markdown, nil
	default:
		body, err := json.Marshal(r.post.Body)
		if err != nil {
			return "", fmt.Errorf("encode body: %w", err)
		}
		return string(body), nil
	}
}

// resolve finds an indexed post by id, or by slug when the key is not an id.
// Pages outside the collection are never served.
func (s *postService) resolve(ctx context.Context, idOrSlug string) (content.DocumentSummary, error) {
	if idOrSlug == "" {
		return content.DocumentSummary{}, &domain.ValidationError{Message: "post id or slug is required"}
	}
	index, err := s.index.GetIndex(ctx)
	if err != nil {
		return content.DocumentSummary{}, fmt.Errorf("load index: %w", err)
	}

	if content.IsID(idOrSlug) {
		if d, ok := index.Find(content.NormalizeID(idOrSlug)); ok {
			return d, nil
		}
	}
	if d, ok := index.FindBy(s.cfg.SlugProperty, idOrSlug); ok {
		return d, nil
	}
	return content.DocumentSummary{}, &domain.NotFoundError{Message: fmt.Sprintf("post %q not found", idOrSlug)}
}

func (s *postService) render(ctx context.Context, idOrSlug string) (*renderedPost, error) {
	summary, err := s.resolve(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	tree, err := s.trees.GetTree(ctx, summary.ID)
	if err != nil {
		return nil, err
	}

	degraded := len(tree.Unexpanded()) > 0
	body, err := s.renderer.RenderDocument(tree)
	switch {
	case errors.Is(err, domain.ErrDepthExceeded):
		s.logger.Warn("post rendered partially", logfields.DocumentID(summary.ID), logfields.Error(err))
		degraded = true
	case err != nil:
		return nil, fmt.Errorf("render post %s: %w", summary.ID, err)
	}

	raw, err := renderSvc.HTML(body)
	if err != nil {
		return nil, err
	}
	html, err := s.sanitizer.Sanitize(raw)
	if err != nil {
		return nil, err
	}
	markdown, err := s.markdown.Convert(html)
	if err != nil {
		return nil, err
	}
	words := s.analyzer.CountWords(markdown)

	if degraded {
		s.logger.Debug("serving degraded post", logfields.DocumentID(summary.ID))
	}
	return &renderedPost{
		post: &contentSvc.Post{
			Summary:        summary,
			Body:           body,
			WordCount:      words,
			ReadingMinutes: s.analyzer.ReadingMinutes(words),
			Degraded:       degraded,
		},
		html:     html,
		markdown: markdown,
	}, nil
}
