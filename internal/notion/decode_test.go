package notion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youngkeol/notion-blog/internal/domain/models/content"
)

const pageFixture = `{
  "object": "page",
  "id": "11111111111111111111111111111111",
  "created_time": "2024-03-01T10:00:00.000Z",
  "properties": {
    "title":    {"type": "title", "title": [{"plain_text": "Hello"}, {"plain_text": " ignored"}]},
    "summary":  {"type": "rich_text", "rich_text": []},
    "date":     {"type": "date", "date": {"start": "2024-02-10", "end": null}},
    "category": {"type": "select", "select": {"name": "Go"}},
    "status":   {"type": "select", "select": null},
    "tags":     {"type": "multi_select", "multi_select": [{"name": "a"}, {"name": "b"}]},
    "draft":    {"type": "checkbox", "checkbox": true},
    "views":    {"type": "number", "number": 12},
    "link":     {"type": "url", "url": "https://example.com"},
    "thumb":    {"type": "files", "files": [{"type": "external", "external": {"url": "https://img/x.png"}}]},
    "author":   {"type": "created_by", "created_by": {"object": "user", "id": "99999999-9999-9999-9999-999999999999"}},
    "people":   {"type": "people", "people": [{"object": "user", "id": "u1"}, {"object": "user", "id": "u2"}]},
    "edited":   {"type": "last_edited_time", "last_edited_time": "2024-03-02T00:00:00.000Z"},
    "formula":  {"type": "formula", "formula": {"type": "string", "string": "x"}}
  }
}`

func TestDecodePage(t *testing.T) {
	var wp wirePage
	require.NoError(t, json.Unmarshal([]byte(pageFixture), &wp))
	p := decodePage(wp)

	assert.Equal(t, "11111111-1111-1111-1111-111111111111", p.ID)
	props := p.Properties

	tests := []struct {
		name string
		want content.PropertyValue
	}{
		{"title", content.TitleValue{Text: "Hello"}},
		{"summary", content.RichTextValue{}},
		{"category", content.SelectValue{Name: "Go"}},
		{"status", content.SelectValue{}},
		{"tags", content.MultiSelectValue{Names: []string{"a", "b"}}},
		{"draft", content.CheckboxValue{Checked: true}},
		{"link", content.ScalarValue{ScalarKind: content.KindURL, Value: "https://example.com"}},
		{"thumb", content.FileValue{URL: "https://img/x.png"}},
		{"author", content.ActorValue{ActorKind: content.KindCreatedBy, Actor: content.Actor{ID: "99999999-9999-9999-9999-999999999999"}}},
		{"people", content.PeopleValue{People: []content.Actor{{ID: "u1"}, {ID: "u2"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, props[tt.name])
		})
	}

	date, ok := props["date"].(content.DateValue)
	require.True(t, ok)
	require.NotNil(t, date.Start)
	assert.Equal(t, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), *date.Start)
	assert.Nil(t, date.End)

	views, ok := props["views"].(content.NumberValue)
	require.True(t, ok)
	require.NotNil(t, views.Number)
	assert.Equal(t, 12.0, *views.Number)

	edited, ok := props["edited"].(content.TimestampValue)
	require.True(t, ok)
	assert.Equal(t, content.KindLastEditedTime, edited.Kind())

	formula, ok := props["formula"].(content.UnsupportedValue)
	require.True(t, ok)
	assert.Equal(t, "formula", formula.Type)
	assert.Contains(t, string(formula.Raw), `"formula"`)
}

func TestDecodeBlock(t *testing.T) {
	ratio := 0.25
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, b content.Block)
	}{
		{
			name:  "code",
			input: `{"id":"b1","type":"code","code":{"language":"Python","rich_text":[{"plain_text":"print(1)"}],"caption":[{"plain_text":"cap"}]}}`,
			check: func(t *testing.T, b content.Block) {
				assert.Equal(t, content.BlockCode, b.Type)
				assert.Equal(t, "Python", b.Language)
				assert.Equal(t, "print(1)", b.PlainText())
				assert.Equal(t, "cap", content.JoinPlainText(b.Caption))
			},
		},
		{
			name:  "to_do",
			input: `{"id":"b1","type":"to_do","to_do":{"checked":true,"rich_text":[{"plain_text":"done"}]}}`,
			check: func(t *testing.T, b content.Block) {
				assert.True(t, b.Checked)
				assert.Equal(t, "done", b.PlainText())
			},
		},
		{
			name:  "callout emoji",
			input: `{"id":"b1","type":"callout","callout":{"icon":{"type":"emoji","emoji":"💡"},"color":"gray_background","rich_text":[]}}`,
			check: func(t *testing.T, b content.Block) {
				assert.Equal(t, "💡", b.Icon)
				assert.Equal(t, "gray_background", b.Color)
			},
		},
		{
			name:  "image hosted file",
			input: `{"id":"b1","type":"image","image":{"type":"file","file":{"url":"https://s3/x.png"}}}`,
			check: func(t *testing.T, b content.Block) {
				assert.Equal(t, "https://s3/x.png", b.URL)
			},
		},
		{
			name:  "column ratio",
			input: `{"id":"b1","type":"column","column":{"width_ratio":0.25}}`,
			check: func(t *testing.T, b content.Block) {
				assert.Equal(t, &ratio, b.WidthRatio)
			},
		},
		{
			name:  "table",
			input: `{"id":"b1","type":"table","has_children":true,"table":{"table_width":3,"has_column_header":true}}`,
			check: func(t *testing.T, b content.Block) {
				require.NotNil(t, b.Table)
				assert.Equal(t, 3, b.Table.Width)
				assert.True(t, b.Table.HasColumnHeader)
				assert.False(t, b.Table.HasRowHeader)
			},
		},
		{
			name:  "table row",
			input: `{"id":"b1","type":"table_row","table_row":{"cells":[[{"plain_text":"a"}],[],[{"plain_text":"c"}]]}}`,
			check: func(t *testing.T, b content.Block) {
				require.Len(t, b.Cells, 3)
				assert.Equal(t, "a", content.JoinPlainText(b.Cells[0]))
				assert.Empty(t, b.Cells[1])
			},
		},
		{
			name:  "unknown type",
			input: `{"id":"b1","type":"child_database","child_database":{"title":"x"}}`,
			check: func(t *testing.T, b content.Block) {
				assert.Equal(t, content.BlockUnsupported, b.Type)
				assert.Equal(t, "child_database", b.RawType)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w wireBlock
			require.NoError(t, json.Unmarshal([]byte(tt.input), &w))
			b := decodeBlock(w, "parent")
			assert.Equal(t, "parent", b.ParentID)
			tt.check(t, b)
		})
	}
}
