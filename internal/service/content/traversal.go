package content

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/youngkeol/notion-blog/internal/domain/models/content"
)

// TraversalMode selects how a document's block tree is walked
type TraversalMode string

const (
	// TraversalSequential fetches one subtree at a time, depth-first.
	// Latency is one round trip per expandable block.
	TraversalSequential TraversalMode = "sequential"

	// TraversalParallel records each sibling list in order, then fetches
	// the siblings' children concurrently up to a per-walk limit.
	TraversalParallel TraversalMode = "parallel"
)

// ParseTraversalMode accepts "sequential" or "parallel", case-insensitive
func ParseTraversalMode(s string) (TraversalMode, error) {
	switch m := TraversalMode(strings.ToLower(strings.TrimSpace(s))); m {
	case TraversalSequential, TraversalParallel:
		return m, nil
	case "":
		return TraversalSequential, nil
	}
	return "", fmt.Errorf("unknown traversal mode %q", s)
}

// Visitor receives the blocks of a walk.
// Implementations must be safe for concurrent use when the walk is parallel.
type Visitor interface {
	// Record stores b and reports whether its children should be fetched
	Record(b content.Block, depth int) bool

	// Expand fetches the children of b; a nil result ends the branch
	Expand(ctx context.Context, b content.Block, depth int) []content.Block
}

// Traversal walks a block tree starting from the root's children (depth 1)
type Traversal interface {
	Walk(ctx context.Context, children []content.Block, v Visitor)
}

// NewTraversal returns the traversal for mode. concurrency bounds parallel fetches.
func NewTraversal(mode TraversalMode, concurrency int) Traversal {
	if mode == TraversalParallel {
		if concurrency < 1 {
			concurrency = 1
		}
		return parallelTraversal{limit: int64(concurrency)}
	}
	return sequentialTraversal{}
}

type sequentialTraversal struct{}

func (t sequentialTraversal) Walk(ctx context.Context, children []content.Block, v Visitor) {
	t.walk(ctx, children, v, 1)
}

func (t sequentialTraversal) walk(ctx context.Context, blocks []content.Block, v Visitor, depth int) {
	for _, b := range blocks {
		if !v.Record(b, depth) {
			continue
		}
		if ctx.Err() != nil {
			continue
		}
		if kids := v.Expand(ctx, b, depth); len(kids) > 0 {
			t.walk(ctx, kids, v, depth+1)
		}
	}
}

type parallelTraversal struct {
	limit int64
}

func (t parallelTraversal) Walk(ctx context.Context, children []content.Block, v Visitor) {
	sem := semaphore.NewWeighted(t.limit)
	t.walk(ctx, sem, children, v, 1)
}

func (t parallelTraversal) walk(ctx context.Context, sem *semaphore.Weighted, blocks []content.Block, v Visitor, depth int) {
	var expand []content.Block
	for _, b := range blocks {
		if v.Record(b, depth) {
			expand = append(expand, b)
		}
	}

	var wg sync.WaitGroup
	for _, b := range expand {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// hold a slot only for the fetch so nested levels cannot starve
			if err := sem.Acquire(ctx, 1); err != nil {
				return
			}
			kids := v.Expand(ctx, b, depth)
			sem.Release(1)
			if len(kids) > 0 {
				t.walk(ctx, sem, kids, v, depth+1)
			}
		}()
	}
	wg.Wait()
}
