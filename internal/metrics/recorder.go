package metrics

import "time"

// Partial failure kinds
const (
	PartialIndexItem   = "index_item"
	PartialSubtree     = "subtree"
	PartialDepth       = "depth"
	PartialActor       = "actor"
	PartialRenderDepth = "render_depth"
)

// Recorder defines observability hooks for the content pipeline.
// NoopRecorder is the default when metrics are not configured.
type Recorder interface {
	IncCacheResult(cache string, hit bool)
	ObserveUpstreamCall(op string, d time.Duration, success bool)
	IncPartialFailure(kind string)
	ObserveMaterialize(d time.Duration, blocks int)
	IncUnsupportedBlock(blockType string)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) IncCacheResult(string, bool) {}
func (NoopRecorder) ObserveUpstreamCall(string, time.Duration, bool) {}
func (NoopRecorder) IncPartialFailure(string) {}
func (NoopRecorder) ObserveMaterialize(time.Duration, int) {}
func (NoopRecorder) IncUnsupportedBlock(string) {}

// OrNoop returns r, or a NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failed"
}
