package content

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/youngkeol/notion-blog/internal/cache"
	"github.com/youngkeol/notion-blog/internal/domain/models/content"
	contentSvc "github.com/youngkeol/notion-blog/internal/domain/services/content"
	"github.com/youngkeol/notion-blog/internal/logfields"
	"github.com/youngkeol/notion-blog/internal/metrics"
)

// DefaultMaxTreeDepth bounds materialization on malformed upstream data
const DefaultMaxTreeDepth = 32

// TreeConfig tunes materialization
type TreeConfig struct {
	MaxDepth  int
	Traversal Traversal
}

// treeService implements the TreeService interface
type treeService struct {
	client    contentSvc.ContentClient
	actors    contentSvc.ActorResolver
	cache     *cache.TTLCache[string, *content.DocumentTree]
	traversal Traversal
	maxDepth  int
	logger    *slog.Logger
	recorder  metrics.Recorder
}

// NewTreeService creates a new tree service
func NewTreeService(
	client contentSvc.ContentClient,
	actors contentSvc.ActorResolver,
	treeCache *cache.TTLCache[string, *content.DocumentTree],
	cfg TreeConfig,
	logger *slog.Logger,
	recorder metrics.Recorder,
) contentSvc.TreeService {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxTreeDepth
	}
	if cfg.Traversal == nil {
		cfg.Traversal = NewTraversal(TraversalSequential, 1)
	}
	return &treeService{
		client:    client,
		actors:    actors,
		cache:     treeCache,
		traversal: cfg.Traversal,
		maxDepth:  cfg.MaxDepth,
		logger:    logger,
		recorder:  metrics.OrNoop(recorder),
	}
}

// GetTree returns the cached tree for documentID or materializes it
func (s *treeService) GetTree(ctx context.Context, documentID string) (*content.DocumentTree, error) {
	id := content.NormalizeID(documentID)
	return s.cache.GetOrLoad(ctx, id, func(ctx context.Context) (*content.DocumentTree, error) {
		return s.materialize(ctx, id)
	})
}

func (s *treeService) materialize(ctx context.Context, id string) (*content.DocumentTree, error) {
	start := time.Now()

	var (
		props    *content.PageProperties
		children []content.Block
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		props, err = s.client.GetProperties(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		children, err = s.client.GetChildren(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("materialize document %s: %w", id, err)
	}

	childIDs := make([]string, len(children))
	for i, c := range children {
		childIDs[i] = c.ID
	}
	root := content.Block{
		ID:          id,
		Type:        content.BlockPage,
		HasChildren: len(children) > 0,
		CreatedTime: props.CreatedTime,
		Content:     childIDs,
	}

	m := &materializer{
		documentID: id,
		fetch:      s.client.GetChildren,
		maxDepth:   s.maxDepth,
		blocks:     content.BlockMap{id: root},
		seq:        1,
		logger:     s.logger,
		recorder:   s.recorder,
	}
	s.traversal.Walk(ctx, children, m)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolved := s.actors.Resolve(ctx, props.Properties)
	page := content.NewDocumentSummary(
		content.CollectionEntry{ID: id, Kind: content.EntryPage, CreatedTime: props.CreatedTime},
		&content.PageProperties{ID: id, CreatedTime: props.CreatedTime, Properties: resolved},
	)

	elapsed := time.Since(start)
	s.recorder.ObserveMaterialize(elapsed, len(m.blocks))
	s.logger.Debug("materialized document tree",
		logfields.DocumentID(id),
		logfields.Count(len(m.blocks)),
		slog.Int("failed_subtrees", m.failed),
		logfields.Duration(elapsed),
	)

	return &content.DocumentTree{Page: page, RootID: id, Blocks: m.blocks}, nil
}

// materializer is the Visitor that fills a BlockMap during one walk.
// Ordinal records insertion order; ids already present are ignored.
type materializer struct {
	documentID string
	fetch      func(ctx context.Context, blockID string) ([]content.Block, error)
	maxDepth   int
	logger     *slog.Logger
	recorder   metrics.Recorder

	mu     sync.Mutex
	blocks content.BlockMap
	seq    int
	failed int
}

func (m *materializer) Record(b content.Block, depth int) bool {
	m.mu.Lock()
	if _, seen := m.blocks[b.ID]; seen {
		m.mu.Unlock()
		m.logger.Warn("block already recorded, skipping",
			logfields.DocumentID(m.documentID),
			logfields.BlockID(b.ID),
		)
		return false
	}
	b.Ordinal = m.seq
	m.seq++
	m.blocks[b.ID] = b
	m.mu.Unlock()

	if !b.HasChildren {
		return false
	}
	if depth >= m.maxDepth {
		m.fail()
		m.recorder.IncPartialFailure(metrics.PartialDepth)
		m.logger.Warn("block tree depth limit reached, subtree left unexpanded",
			logfields.DocumentID(m.documentID),
			logfields.BlockID(b.ID),
			logfields.Depth(depth),
		)
		return false
	}
	return true
}

func (m *materializer) Expand(ctx context.Context, b content.Block, depth int) []content.Block {
	kids, err := m.fetch(ctx, b.ID)
	if err != nil {
		m.fail()
		m.recorder.IncPartialFailure(metrics.PartialSubtree)
		m.logger.Warn("failed to fetch child blocks, subtree left unexpanded",
			logfields.DocumentID(m.documentID),
			logfields.BlockID(b.ID),
			logfields.Depth(depth),
			logfields.Error(err),
		)
		return nil
	}
	return kids
}

func (m *materializer) fail() {
	m.mu.Lock()
	m.failed++
	m.mu.Unlock()
}
