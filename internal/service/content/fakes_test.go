package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/youngkeol/notion-blog/internal/cache"
	"github.com/youngkeol/notion-blog/internal/domain"
	"github.com/youngkeol/notion-blog/internal/domain/models/content"
)

var (
	errBoom = errors.New("boom")
	day0    = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeClient serves fixed collection data and counts calls per op and id
type fakeClient struct {
	mu       sync.Mutex
	entries  []content.CollectionEntry
	queryErr error
	props    map[string]*content.PageProperties
	propErr  map[string]error
	children map[string][]content.Block
	childErr map[string]error
	actors   map[string]*content.Actor
	calls    map[string]int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		props:    map[string]*content.PageProperties{},
		propErr:  map[string]error{},
		children: map[string][]content.Block{},
		childErr: map[string]error{},
		actors:   map[string]*content.Actor{},
		calls:    map[string]int{},
	}
}

func (f *fakeClient) count(op, id string) {
	f.mu.Lock()
	f.calls[op+":"+id]++
	f.mu.Unlock()
}

func (f *fakeClient) Calls(op, id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op+":"+id]
}

func (f *fakeClient) QueryCollection(_ context.Context, collectionID string) ([]content.CollectionEntry, error) {
	f.count("query", collectionID)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return append([]content.CollectionEntry(nil), f.entries...), nil
}

func (f *fakeClient) GetProperties(_ context.Context, id string) (*content.PageProperties, error) {
	f.count("props", id)
	if err := f.propErr[id]; err != nil {
		return nil, err
	}
	p, ok := f.props[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("page %s not found", id)}
	}
	cp := *p
	return &cp, nil
}

func (f *fakeClient) GetChildren(_ context.Context, blockID string) ([]content.Block, error) {
	f.count("children", blockID)
	if err := f.childErr[blockID]; err != nil {
		return nil, err
	}
	return append([]content.Block(nil), f.children[blockID]...), nil
}

func (f *fakeClient) GetActor(_ context.Context, actorID string) (*content.Actor, error) {
	f.count("actor", actorID)
	a, ok := f.actors[actorID]
	if !ok {
		return nil, &domain.UpstreamError{Op: "get_actor", ID: actorID, Cause: errBoom}
	}
	cp := *a
	return &cp, nil
}

// addPage registers a collection page with a title and optional date property
func (f *fakeClient) addPage(id string, created time.Time, date *time.Time, extra content.Properties) {
	props := content.Properties{"title": content.TitleValue{Text: "Post " + id}}
	if date != nil {
		props["date"] = content.DateValue{Start: date}
	}
	for k, v := range extra {
		props[k] = v
	}
	f.entries = append(f.entries, content.CollectionEntry{ID: id, Kind: content.EntryPage, CreatedTime: created})
	f.props[id] = &content.PageProperties{ID: id, CreatedTime: created, Properties: props}
}

// addChildren registers the child list of parent; ids ending in "+" report children
func (f *fakeClient) addChildren(parent string, ids ...string) {
	for i, id := range ids {
		has := false
		if n := len(id); n > 0 && id[n-1] == '+' {
			id, has = id[:n-1], true
		}
		f.children[parent] = append(f.children[parent], content.Block{
			ID:          id,
			Type:        content.BlockParagraph,
			ParentID:    parent,
			HasChildren: has,
			CreatedTime: day0.Add(time.Duration(i) * time.Minute),
			RichText:    []content.RichTextRun{{PlainText: id}},
		})
	}
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newActorResolver(client *fakeClient) *actorResolver {
	return NewActorResolver(client, cache.New[string, content.Actor]("actors", time.Hour), testLogger(), nil).(*actorResolver)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

type partialRecorder struct {
	mu   sync.Mutex
	kind map[string]int
}

func newPartialRecorder() *partialRecorder {
	return &partialRecorder{kind: map[string]int{}}
}

func (r *partialRecorder) IncCacheResult(string, bool)                     {}
func (r *partialRecorder) ObserveUpstreamCall(string, time.Duration, bool) {}
func (r *partialRecorder) ObserveMaterialize(time.Duration, int)           {}
func (r *partialRecorder) IncUnsupportedBlock(string)                      {}

func (r *partialRecorder) IncPartialFailure(kind string) {
	r.mu.Lock()
	r.kind[kind]++
	r.mu.Unlock()
}

func (r *partialRecorder) Count(kind string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.kind[kind]
}
