package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

type countingRecorder struct {
	hits, misses atomic.Int32
}

func (r *countingRecorder) IncCacheResult(_ string, hit bool) {
	if hit {
		r.hits.Add(1)
	} else {
		r.misses.Add(1)
	}
}
func (r *countingRecorder) ObserveUpstreamCall(string, time.Duration, bool) {}
func (r *countingRecorder) IncPartialFailure(string)                        {}
func (r *countingRecorder) ObserveMaterialize(time.Duration, int)           {}
func (r *countingRecorder) IncUnsupportedBlock(string)                      {}

func TestTTLCache_GetSet(t *testing.T) {
	tests := []struct {
		name    string
		advance time.Duration
		wantHit bool
	}{
		{"immediately after set", 0, true},
		{"just before ttl", time.Minute - time.Nanosecond, true},
		{"exactly at ttl", time.Minute, false},
		{"after ttl", 2 * time.Minute, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			c := New[string, int]("test", time.Minute, WithClock(clock.Now))
			c.Set("a", 1)
			clock.Advance(tt.advance)

			v, ok := c.Get("a")
			assert.Equal(t, tt.wantHit, ok)
			if tt.wantHit {
				assert.Equal(t, 1, v)
			} else {
				assert.Zero(t, v)
				assert.Equal(t, 0, c.Len(), "stale entry should be dropped on access")
			}
		})
	}
}

func TestTTLCache_SetReplaces(t *testing.T) {
	clock := newFakeClock()
	c := New[string, string]("test", time.Minute, WithClock(clock.Now))
	c.Set("k", "old")
	clock.Advance(50 * time.Second)
	c.Set("k", "new")
	clock.Advance(50 * time.Second)

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "new", v)

	c.Delete("k")
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestTTLCache_GetOrLoad(t *testing.T) {
	clock := newFakeClock()
	rec := &countingRecorder{}
	c := New[string, int]("test", time.Minute, WithClock(clock.Now), WithRecorder(rec))
	ctx := context.Background()

	var calls int
	load := func(context.Context) (int, error) {
		calls++
		return calls * 10, nil
	}

	v, err := c.GetOrLoad(ctx, "k", load)
	require.NoError(t, err)
	assert.Equal(t, 10, v)

	v, err = c.GetOrLoad(ctx, "k", load)
	require.NoError(t, err)
	assert.Equal(t, 10, v, "second call should hit")
	assert.Equal(t, 1, calls)

	clock.Advance(time.Minute)
	v, err = c.GetOrLoad(ctx, "k", load)
	require.NoError(t, err)
	assert.Equal(t, 20, v, "expired entry should trigger a refetch")
	assert.Equal(t, 2, calls)

	assert.Equal(t, int32(1), rec.hits.Load())
	assert.Equal(t, int32(2), rec.misses.Load())
}

func TestTTLCache_GetOrLoadErrorNotCached(t *testing.T) {
	c := New[string, int]("test", time.Minute)
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := c.GetOrLoad(ctx, "k", func(context.Context) (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())

	v, err := c.GetOrLoad(ctx, "k", func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestTTLCache_GetOrLoadCollapsesConcurrentLoads(t *testing.T) {
	c := New[string, int]("test", time.Minute)
	ctx := context.Background()

	var calls atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}

	const callers = 10
	var wg sync.WaitGroup
	results := make([]int, callers)
	started := make(chan struct{}, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			started <- struct{}{}
			v, err := c.GetOrLoad(ctx, "k", load)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	for i := 0; i < callers; i++ {
		<-started
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, v := range results {
		assert.Equal(t, 42, v)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestTTLCache_GetOrLoadContextCanceled(t *testing.T) {
	c := New[string, int]("test", time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	block := make(chan struct{})
	defer close(block)

	done := make(chan error, 1)
	go func() {
		_, err := c.GetOrLoad(ctx, "k", func(context.Context) (int, error) {
			<-block
			return 1, nil
		})
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("GetOrLoad did not return after cancel")
	}
}
