package content

import (
	"fmt"
	"log/slog"

	"github.com/youngkeol/notion-blog/internal/cache"
	"github.com/youngkeol/notion-blog/internal/config"
	"github.com/youngkeol/notion-blog/internal/domain/models/content"
	contentSvc "github.com/youngkeol/notion-blog/internal/domain/services/content"
	"github.com/youngkeol/notion-blog/internal/metrics"
	renderSvc "github.com/youngkeol/notion-blog/internal/service/render"
)

// Cache names as reported to metrics
const (
	IndexCacheName = "index"
	TreeCacheName  = "tree"
	ActorCacheName = "actor"
)

// Services holds all content services
type Services struct {
	Index      contentSvc.IndexService
	Trees      contentSvc.TreeService
	Actors     contentSvc.ActorResolver
	Categories contentSvc.CategoryService
	Posts      contentSvc.PostService
}

// SetupServices builds the caches and services over client
func SetupServices(
	client contentSvc.ContentClient,
	cfg *config.Config,
	site *config.Site,
	logger *slog.Logger,
	recorder metrics.Recorder,
	cacheOpts ...cache.Option,
) (*Services, error) {
	mode, err := ParseTraversalMode(cfg.TraversalMode)
	if err != nil {
		return nil, fmt.Errorf("traversal: %w", err)
	}

	opts := append([]cache.Option{cache.WithRecorder(recorder)}, cacheOpts...)
	indexCache := cache.New[string, content.DocumentIndex](IndexCacheName, cfg.IndexCacheTTL, opts...)
	treeCache := cache.New[string, *content.DocumentTree](TreeCacheName, cfg.TreeCacheTTL, opts...)
	actorCache := cache.New[string, content.Actor](ActorCacheName, cfg.ActorCacheTTL, opts...)

	actors := NewActorResolver(client, actorCache, logger, recorder)
	index := NewIndexService(client, actors, indexCache, IndexConfig{
		CollectionID: cfg.NotionPageID,
		DateProperty: site.Properties.Date,
		Concurrency:  cfg.IndexConcurrency,
	}, logger, recorder)
	trees := NewTreeService(client, actors, treeCache, TreeConfig{
		MaxDepth:  cfg.MaxTreeDepth,
		Traversal: NewTraversal(mode, cfg.TraversalConcurrency),
	}, logger, recorder)

	renderer := renderSvc.NewRenderer(logger,
		renderSvc.WithLayout(renderSvc.Layout{
			ContentWidth: site.Layout.ContentWidth,
			ColumnGutter: site.Layout.ColumnGutter,
		}),
		renderSvc.WithMaxDepth(cfg.MaxTreeDepth),
		renderSvc.WithRecorder(recorder),
	)

	logger.Info("content services initialized",
		"collection", cfg.NotionPageID,
		"traversal", string(mode),
		"max_depth", cfg.MaxTreeDepth,
	)

	return &Services{
		Index:  index,
		Trees:  trees,
		Actors: actors,
		Categories: NewCategoryService(index, CategoryConfig{
			CategoryProperty: site.Properties.Category,
			TagProperty:      site.Properties.Tags,
			AllLabel:         site.AllLabel,
		}),
		Posts: NewPostService(index, trees, renderer, PostConfig{
			SlugProperty: site.Properties.Slug,
		}, logger),
	}, nil
}
