package content

import (
	"context"

	"github.com/youngkeol/notion-blog/internal/domain/models/content"
)

// ContentClient is the remote content API.
// Pagination, authentication and retries are the implementation's concern;
// each call returns the complete result for its argument.
type ContentClient interface {
	// QueryCollection lists every entry of a collection (database)
	QueryCollection(ctx context.Context, collectionID string) ([]content.CollectionEntry, error)

	// GetProperties retrieves a page's typed properties.
	// Actor references come back unresolved.
	GetProperties(ctx context.Context, id string) (*content.PageProperties, error)

	// GetChildren lists the immediate children of a block or page
	GetChildren(ctx context.Context, blockID string) ([]content.Block, error)

	// GetActor resolves a person or bot
	GetActor(ctx context.Context, actorID string) (*content.Actor, error)
}
