package logfields

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHelperKeyNames(t *testing.T) {
	tests := []struct {
		name string
		attr slog.Attr
		key  string
		want string
	}{
		{"DocumentID", DocumentID("d1"), KeyDocumentID, "d1"},
		{"BlockID", BlockID("b1"), KeyBlockID, "b1"},
		{"ActorID", ActorID("u1"), KeyActorID, "u1"},
		{"Cache", Cache("tree"), KeyCache, "tree"},
		{"Op", Op("get_children"), KeyOp, "get_children"},
		{"RequestID", RequestID("rid"), KeyRequestID, "rid"},
		{"Depth", Depth(3), KeyDepth, "3"},
		{"Count", Count(7), KeyCount, "7"},
		{"Duration", Duration(1500 * time.Millisecond), KeyDuration, "1500"},
		{"Error", Error(errors.New("boom")), KeyError, "boom"},
		{"NilError", Error(nil), KeyError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.want, tt.attr.Value.String())
		})
	}
}
