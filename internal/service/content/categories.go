package content

import (
	"context"

	"github.com/youngkeol/notion-blog/internal/domain/models/content"
	contentSvc "github.com/youngkeol/notion-blog/internal/domain/services/content"
)

// DefaultAllCategory labels the bucket counting every post
const DefaultAllCategory = "📂 All"

// CategoryConfig names the properties used for grouping
type CategoryConfig struct {
	CategoryProperty string
	TagProperty      string
	AllLabel         string
}

// categoryService implements the CategoryService interface
type categoryService struct {
	index contentSvc.IndexService
	cfg   CategoryConfig
}

// NewCategoryService creates a new category service
func NewCategoryService(index contentSvc.IndexService, cfg CategoryConfig) contentSvc.CategoryService {
	if cfg.AllLabel == "" {
		cfg.AllLabel = DefaultAllCategory
	}
	return &categoryService{index: index, cfg: cfg}
}

// Categories counts posts per category value in index order of first appearance.
// The "all" bucket comes first and counts every matching post.
func (s *categoryService) Categories(ctx context.Context, tag string) ([]contentSvc.CategoryCount, error) {
	posts, err := s.Filter(ctx, "", tag)
	if err != nil {
		return nil, err
	}

	counts := []contentSvc.CategoryCount{{Name: s.cfg.AllLabel, Count: len(posts)}}
	pos := make(map[string]int)
	for _, p := range posts {
		for _, c := range p.Strings(s.cfg.CategoryProperty) {
			if c == s.cfg.AllLabel {
				continue
			}
			i, ok := pos[c]
			if !ok {
				i = len(counts)
				pos[c] = i
				counts = append(counts, contentSvc.CategoryCount{Name: c})
			}
			counts[i].Count++
		}
	}
	return counts, nil
}

// Filter keeps posts in the category and carrying the tag. The "all" label and
// empty values match everything.
func (s *categoryService) Filter(ctx context.Context, category, tag string) (content.DocumentIndex, error) {
	index, err := s.index.GetIndex(ctx)
	if err != nil {
		return nil, err
	}
	if category == s.cfg.AllLabel {
		category = ""
	}
	if category == "" && tag == "" {
		return index, nil
	}

	out := make(content.DocumentIndex, 0, len(index))
	for _, d := range index {
		if category != "" && !d.HasString(s.cfg.CategoryProperty, category) {
			continue
		}
		if tag != "" && !d.HasString(s.cfg.TagProperty, tag) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}
