package content

import (
	"context"
	"log/slog"

	"github.com/youngkeol/notion-blog/internal/cache"
	"github.com/youngkeol/notion-blog/internal/domain/models/content"
	contentSvc "github.com/youngkeol/notion-blog/internal/domain/services/content"
	"github.com/youngkeol/notion-blog/internal/logfields"
	"github.com/youngkeol/notion-blog/internal/metrics"
)

// actorResolver implements the ActorResolver interface
type actorResolver struct {
	client   contentSvc.ContentClient
	cache    *cache.TTLCache[string, content.Actor]
	logger   *slog.Logger
	recorder metrics.Recorder
}

// NewActorResolver creates a resolver backed by its own actor cache
func NewActorResolver(
	client contentSvc.ContentClient,
	actorCache *cache.TTLCache[string, content.Actor],
	logger *slog.Logger,
	recorder metrics.Recorder,
) contentSvc.ActorResolver {
	return &actorResolver{
		client:   client,
		cache:    actorCache,
		logger:   logger,
		recorder: metrics.OrNoop(recorder),
	}
}

// Resolve looks up every unresolved actor once. Lookups that fail keep the bare reference.
func (r *actorResolver) Resolve(ctx context.Context, props content.Properties) content.Properties {
	ids := props.ActorIDs()
	if len(ids) == 0 {
		return props
	}

	resolved := make(map[string]content.Actor, len(ids))
	for _, id := range ids {
		actor, err := r.cache.GetOrLoad(ctx, id, func(ctx context.Context) (content.Actor, error) {
			a, err := r.client.GetActor(ctx, id)
			if err != nil {
				return content.Actor{}, err
			}
			return *a, nil
		})
		if err != nil {
			r.recorder.IncPartialFailure(metrics.PartialActor)
			r.logger.Warn("failed to resolve actor, keeping reference",
				logfields.ActorID(id),
				logfields.Error(err),
			)
			continue
		}
		resolved[id] = actor
	}
	return props.WithActors(resolved)
}
