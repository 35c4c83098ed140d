package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlighterLanguage(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"Python", "python"},
		{"python", "python"},
		{"Erlang", "plaintext"},
		{"", "plaintext"},
		{"C++", "cpp"},
		{"C#", "csharp"},
		{"Shell", "bash"},
		{"Objective-C", "objectivec"},
		{"WebAssembly", "wasm"},
		{"HTML", "markup"},
		{"Plain Text", "plaintext"},
		{" go ", "go"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, HighlighterLanguage(tt.tag))
		})
	}
}

func TestIsDiagram(t *testing.T) {
	assert.True(t, IsDiagram("mermaid"))
	assert.True(t, IsDiagram("Mermaid"))
	assert.False(t, IsDiagram("markdown"))
	assert.False(t, IsDiagram(""))
}

func TestColumnWidth(t *testing.T) {
	half := 0.5
	over := 1.5
	neg := -0.2

	tests := []struct {
		name    string
		ratio   *float64
		columns int
		want    float64
	}{
		{"half of two columns", &half, 2, (708 - 32) * 0.5},
		{"default ratio is full", nil, 2, 708 - 32},
		{"single column has no gutter", &half, 1, 354},
		{"ratio above one clamped", &over, 2, 708 - 32},
		{"negative ratio clamped", &neg, 2, 0},
		{"zero columns treated as one", nil, 0, 708},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := DefaultLayout()
			assert.InDelta(t, tt.want, ColumnWidth(tt.ratio, l.ContentWidth, l.ColumnGutter, tt.columns), 1e-9)
		})
	}
}
