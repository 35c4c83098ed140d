package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youngkeol/notion-blog/internal/domain/models/content"
	contentSvc "github.com/youngkeol/notion-blog/internal/domain/services/content"
)

type stubIndex struct {
	index content.DocumentIndex
	err   error
}

func (s stubIndex) GetIndex(context.Context) (content.DocumentIndex, error) {
	return s.index, s.err
}

func post(id, category string, tags ...string) content.DocumentSummary {
	props := content.Properties{
		"title": content.TitleValue{Text: id},
		"slug":  content.RichTextValue{Text: "slug-" + id},
		"tags":  content.MultiSelectValue{Names: tags},
	}
	if category != "" {
		props["category"] = content.SelectValue{Name: category}
	}
	return content.DocumentSummary{ID: id, CreatedTime: day0, Properties: props}
}

func newTestCategoryService(idx content.DocumentIndex) contentSvc.CategoryService {
	return NewCategoryService(stubIndex{index: idx}, CategoryConfig{CategoryProperty: "category", TagProperty: "tags"})
}

func TestCategoryService_Categories(t *testing.T) {
	idx := content.DocumentIndex{
		post("p1", "Go", "web"),
		post("p2", "Rust"),
		post("p3", "Go", "cli"),
		post("p4", ""),
	}

	tests := []struct {
		name string
		tag  string
		want []contentSvc.CategoryCount
	}{
		{
			name: "all posts",
			want: []contentSvc.CategoryCount{{Name: DefaultAllCategory, Count: 4}, {Name: "Go", Count: 2}, {Name: "Rust", Count: 1}},
		},
		{
			name: "restricted by tag",
			tag:  "cli",
			want: []contentSvc.CategoryCount{{Name: DefaultAllCategory, Count: 1}, {Name: "Go", Count: 1}},
		},
		{
			name: "unknown tag",
			tag:  "nope",
			want: []contentSvc.CategoryCount{{Name: DefaultAllCategory, Count: 0}},
		},
	}

	svc := newTestCategoryService(idx)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Categories(context.Background(), tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryService_Filter(t *testing.T) {
	idx := content.DocumentIndex{
		post("p1", "Go", "web"),
		post("p2", "Rust", "web"),
		post("p3", "Go", "cli"),
	}

	tests := []struct {
		name     string
		category string
		tag      string
		want     []string
	}{
		{"no filter", "", "", []string{"p1", "p2", "p3"}},
		{"all label", DefaultAllCategory, "", []string{"p1", "p2", "p3"}},
		{"category", "Go", "", []string{"p1", "p3"}},
		{"tag", "", "web", []string{"p1", "p2"}},
		{"category and tag", "Go", "web", []string{"p1"}},
		{"no match", "Zig", "", []string{}},
	}

	svc := newTestCategoryService(idx)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Filter(context.Background(), tt.category, tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, indexIDs(got))
		})
	}
}

func TestCategoryService_IndexError(t *testing.T) {
	svc := NewCategoryService(stubIndex{err: errBoom}, CategoryConfig{})

	_, err := svc.Categories(context.Background(), "")

	assert.ErrorIs(t, err, errBoom)
}
