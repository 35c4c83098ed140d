package export

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youngkeol/notion-blog/internal/domain"
	"github.com/youngkeol/notion-blog/internal/domain/models/content"
	contentSvc "github.com/youngkeol/notion-blog/internal/domain/services/content"
)

type stubIndex struct {
	idx content.DocumentIndex
	err error
}

func (s stubIndex) GetIndex(context.Context) (content.DocumentIndex, error) { return s.idx, s.err }

type stubPosts struct {
	fail map[string]bool
}

func (s stubPosts) GetPost(context.Context, string) (*contentSvc.Post, error) { return nil, nil }

func (s stubPosts) GetTree(context.Context, string) (*content.DocumentTree, error) {
	return nil, nil
}

func (s stubPosts) RenderBody(_ context.Context, id string, format contentSvc.Format) (string, error) {
	if s.fail[id] {
		return "", &domain.UpstreamError{Op: "get_children", ID: id, Cause: errors.New("503")}
	}
	return string(format) + ":" + id, nil
}

func summary(id, slug string) content.DocumentSummary {
	props := content.Properties{}
	if slug != "" {
		props["slug"] = content.RichTextValue{Text: slug}
	}
	return content.DocumentSummary{ID: id, Properties: props}
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		post content.DocumentSummary
		want string
	}{
		{"slug", summary("a-b", "hello-world"), "hello-world"},
		{"no slug uses undashed id", summary("1111-2222", ""), "11112222"},
		{"separators replaced", summary("x", "a/b\\c"), "a-b-c"},
		{"dot slug falls back", summary("x-1", ".."), "x1"},
		{"blank slug falls back", summary("x-2", "   "), "x2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.post, "slug"))
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	idx := content.DocumentIndex{
		summary("p-1", "first"),
		summary("p-2", ""),
		summary("p-3", "broken"),
		summary("p-4", "first"),
	}
	exp := New(stubIndex{idx: idx}, stubPosts{fail: map[string]bool{"p-3": true}}, "slug", discard())

	res, err := exp.Run(context.Background(), dir, contentSvc.FormatMarkdown)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "first.md"),
		filepath.Join(dir, "p2.md"),
		filepath.Join(dir, "p4.md"),
	}, res.Written)
	assert.Equal(t, []string{"p-3"}, res.Failed)

	data, err := os.ReadFile(filepath.Join(dir, "first.md"))
	require.NoError(t, err)
	assert.Equal(t, "markdown:p-1", string(data))
	_, err = os.Stat(filepath.Join(dir, "broken.md"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_Errors(t *testing.T) {
	t.Run("unknown format", func(t *testing.T) {
		_, err := New(stubIndex{}, stubPosts{}, "slug", discard()).Run(context.Background(), t.TempDir(), "pdf")
		assert.Error(t, err)
	})

	t.Run("index failure", func(t *testing.T) {
		upstream := &domain.UpstreamError{Op: "query_collection", Cause: errors.New("timeout")}
		_, err := New(stubIndex{err: upstream}, stubPosts{}, "slug", discard()).Run(context.Background(), t.TempDir(), contentSvc.FormatHTML)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res, err := New(stubIndex{idx: content.DocumentIndex{summary("p", "")}}, stubPosts{}, "slug", discard()).Run(ctx, t.TempDir(), contentSvc.FormatHTML)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, res.Written)
	})
}
