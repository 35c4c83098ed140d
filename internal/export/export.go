// Package export writes every indexed post to a directory as static files.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/youngkeol/notion-blog/internal/domain/models/content"
	contentSvc "github.com/youngkeol/notion-blog/internal/domain/services/content"
	"github.com/youngkeol/notion-blog/internal/logfields"
)

// Result summarizes a run
type Result struct {
	Written []string // file paths, in index order
	Failed  []string // post ids that could not be rendered or written
}

// Exporter renders posts through a PostService
type Exporter struct {
	index        contentSvc.IndexService
	posts        contentSvc.PostService
	slugProperty string
	logger       *slog.Logger
}

func New(index contentSvc.IndexService, posts contentSvc.PostService, slugProperty string, logger *slog.Logger) *Exporter {
	return &Exporter{index: index, posts: posts, slugProperty: slugProperty, logger: logger}
}

// Run writes one file per post into dir. A failed post is logged and skipped;
// only an unreadable index or unusable directory aborts the run.
func (e *Exporter) Run(ctx context.Context, dir string, format contentSvc.Format) (*Result, error) {
	ext, err := extension(format)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	idx, err := e.index.GetIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("load index: %w", err)
	}

	res := &Result{}
	seen := make(map[string]bool, len(idx))
	for _, post := range idx {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		name := FileName(post, e.slugProperty)
		if seen[name] {
			name = FileName(content.DocumentSummary{ID: post.ID}, "")
		}
		seen[name] = true
		path := filepath.Join(dir, name+ext)

		body, err := e.posts.RenderBody(ctx, post.ID, format)
		if err == nil {
			err = os.WriteFile(path, []byte(body), 0o644)
		}
		if err != nil {
			e.logger.Warn("export post failed", logfields.DocumentID(post.ID), logfields.Error(err))
			res.Failed = append(res.Failed, post.ID)
			continue
		}
		e.logger.Debug("post exported", logfields.DocumentID(post.ID), "path", path)
		res.Written = append(res.Written, path)
	}
	return res, nil
}

// FileName is the post slug made filesystem-safe, or the undashed id when no usable slug exists
func FileName(post content.DocumentSummary, slugProperty string) string {
	slug := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, strings.TrimSpace(post.Text(slugProperty)))
	slug = strings.Trim(slug, ". ")
	if slug == "" {
		return strings.ReplaceAll(post.ID, "-", "")
	}
	return slug
}

func extension(f contentSvc.Format) (string, error) {
	switch f {
	case contentSvc.FormatMarkdown:
		return ".md", nil
	case contentSvc.FormatHTML:
		return ".html", nil
	case contentSvc.FormatJSON:
		return ".json", nil
	}
	return "", fmt.Errorf("unknown format %q", f)
}
