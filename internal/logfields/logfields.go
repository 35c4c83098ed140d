// Package logfields holds the canonical slog attribute keys used across services.
package logfields

import (
	"log/slog"
	"time"
)

const (
	KeyDocumentID = "document_id"
	KeyBlockID    = "block_id"
	KeyActorID    = "actor_id"
	KeyCache      = "cache"
	KeyOp         = "op"
	KeyDuration   = "duration_ms"
	KeyError      = "error"
	KeyRequestID  = "request_id"
	KeyDepth      = "depth"
	KeyCount      = "count"
)

func DocumentID(id string) slog.Attr { return slog.String(KeyDocumentID, id) }
func BlockID(id string) slog.Attr    { return slog.String(KeyBlockID, id) }
func ActorID(id string) slog.Attr    { return slog.String(KeyActorID, id) }
func Cache(name string) slog.Attr    { return slog.String(KeyCache, name) }
func Op(op string) slog.Attr         { return slog.String(KeyOp, op) }
func RequestID(id string) slog.Attr  { return slog.String(KeyRequestID, id) }
func Depth(d int) slog.Attr          { return slog.Int(KeyDepth, d) }
func Count(n int) slog.Attr          { return slog.Int(KeyCount, n) }

// Duration logs d in milliseconds
func Duration(d time.Duration) slog.Attr {
	return slog.Int64(KeyDuration, d.Milliseconds())
}

// Error logs err under the canonical key; nil errors log as empty.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
