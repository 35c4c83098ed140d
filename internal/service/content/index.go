package content

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/youngkeol/notion-blog/internal/cache"
	"github.com/youngkeol/notion-blog/internal/domain/models/content"
	contentSvc "github.com/youngkeol/notion-blog/internal/domain/services/content"
	"github.com/youngkeol/notion-blog/internal/logfields"
	"github.com/youngkeol/notion-blog/internal/metrics"
)

// DefaultIndexConcurrency bounds concurrent property fetches
const DefaultIndexConcurrency = 8

const indexKey = "index"

// IndexConfig identifies the collection and how to order it
type IndexConfig struct {
	CollectionID string
	DateProperty string
	Concurrency  int
}

// indexService implements the IndexService interface
type indexService struct {
	client   contentSvc.ContentClient
	actors   contentSvc.ActorResolver
	cache    *cache.TTLCache[string, content.DocumentIndex]
	cfg      IndexConfig
	logger   *slog.Logger
	recorder metrics.Recorder
}

// NewIndexService creates a new index service
func NewIndexService(
	client contentSvc.ContentClient,
	actors contentSvc.ActorResolver,
	indexCache *cache.TTLCache[string, content.DocumentIndex],
	cfg IndexConfig,
	logger *slog.Logger,
	recorder metrics.Recorder,
) contentSvc.IndexService {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultIndexConcurrency
	}
	return &indexService{
		client:   client,
		actors:   actors,
		cache:    indexCache,
		cfg:      cfg,
		logger:   logger,
		recorder: metrics.OrNoop(recorder),
	}
}

// GetIndex returns the cached index or rebuilds it
func (s *indexService) GetIndex(ctx context.Context) (content.DocumentIndex, error) {
	return s.cache.GetOrLoad(ctx, indexKey, s.load)
}

func (s *indexService) load(ctx context.Context) (content.DocumentIndex, error) {
	start := time.Now()

	entries, err := s.client.QueryCollection(ctx, s.cfg.CollectionID)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}

	pages := make([]content.CollectionEntry, 0, len(entries))
	for _, e := range entries {
		if e.Kind == content.EntryPage {
			pages = append(pages, e)
		}
	}

	// Each goroutine owns one slot; completion order does not matter
	results := make([]*content.DocumentSummary, len(pages))
	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)
	for i, entry := range pages {
		g.Go(func() error {
			props, err := s.client.GetProperties(ctx, entry.ID)
			if err != nil {
				s.recorder.IncPartialFailure(metrics.PartialIndexItem)
				s.logger.Warn("failed to fetch document properties, dropping from index",
					logfields.DocumentID(entry.ID),
					logfields.Error(err),
				)
				return nil
			}
			props.Properties = s.actors.Resolve(ctx, props.Properties)
			summary := content.NewDocumentSummary(entry, props)
			results[i] = &summary
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	index := make(content.DocumentIndex, 0, len(results))
	for _, r := range results {
		if r != nil {
			index = append(index, *r)
		}
	}
	sortIndex(index, s.cfg.DateProperty)

	s.logger.Info("document index loaded",
		logfields.Count(len(index)),
		slog.Int("dropped", len(pages)-len(index)),
		logfields.Duration(time.Since(start)),
	)
	return index, nil
}

// sortIndex orders newest first; equal dates keep their input order
func sortIndex(index content.DocumentIndex, dateProperty string) {
	sort.SliceStable(index, func(i, j int) bool {
		return index[i].EffectiveDate(dateProperty).After(index[j].EffectiveDate(dateProperty))
	})
}
