package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youngkeol/notion-blog/internal/domain/models/content"
)

var created = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func blk(id string, typ content.BlockType, parent string, ordinal int, mods ...func(*content.Block)) content.Block {
	b := content.Block{
		ID:          id,
		Type:        typ,
		ParentID:    parent,
		CreatedTime: created,
		Ordinal:     ordinal,
		RichText:    []content.RichTextRun{{PlainText: id}},
	}
	for _, m := range mods {
		m(&b)
	}
	return b
}

func blockMap(blocks ...content.Block) content.BlockMap {
	m := make(content.BlockMap, len(blocks))
	for _, b := range blocks {
		m[b.ID] = b
	}
	return m
}

func TestGroupSiblings(t *testing.T) {
	blocks := blockMap(
		blk("b1", content.BlockBulletedListItem, "root", 1),
		blk("b2", content.BlockBulletedListItem, "root", 2),
		blk("n1", content.BlockNumberedListItem, "root", 3),
		blk("b3", content.BlockBulletedListItem, "root", 4),
		blk("p1", content.BlockParagraph, "root", 5),
		blk("n2", content.BlockNumberedListItem, "root", 6),
		blk("n3", content.BlockNumberedListItem, "root", 7),
	)

	tests := []struct {
		name string
		ids  []string
		want [][]string // member ids, single blocks as one-element groups prefixed with "="
	}{
		{
			name: "variant change closes group",
			ids:  []string{"b1", "b2", "n1", "b3"},
			want: [][]string{{"b1", "b2"}, {"n1"}, {"b3"}},
		},
		{
			name: "non-list block closes group",
			ids:  []string{"n1", "p1", "n2", "n3"},
			want: [][]string{{"n1"}, {"=p1"}, {"n2", "n3"}},
		},
		{
			name: "unknown ids skipped",
			ids:  []string{"b1", "missing", "b2"},
			want: [][]string{{"b1", "b2"}},
		},
		{
			name: "empty",
			ids:  nil,
			want: [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := GroupSiblings(tt.ids, blocks)
			got := [][]string{}
			for _, g := range groups {
				if g.Block != nil {
					require.Nil(t, g.List)
					got = append(got, []string{"=" + g.Block.ID})
					continue
				}
				got = append(got, IDs(g.List.Members))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGroupSiblings_Variants(t *testing.T) {
	blocks := blockMap(
		blk("b1", content.BlockBulletedListItem, "root", 1),
		blk("b2", content.BlockBulletedListItem, "root", 2),
		blk("n1", content.BlockNumberedListItem, "root", 3),
		blk("b3", content.BlockBulletedListItem, "root", 4),
	)

	groups := GroupSiblings([]string{"b1", "b2", "n1", "b3"}, blocks)

	require.Len(t, groups, 3)
	assert.Equal(t, content.BlockBulletedListItem, groups[0].List.Variant)
	assert.Len(t, groups[0].List.Members, 2)
	assert.Equal(t, content.BlockNumberedListItem, groups[1].List.Variant)
	assert.Len(t, groups[1].List.Members, 1)
	assert.Equal(t, content.BlockBulletedListItem, groups[2].List.Variant)
	assert.Len(t, groups[2].List.Members, 1)
}

func TestGroupSiblings_RoundTrip(t *testing.T) {
	blocks := blockMap(
		blk("h", content.BlockHeading1, "root", 1),
		blk("b1", content.BlockBulletedListItem, "root", 2),
		blk("b2", content.BlockBulletedListItem, "root", 3),
		blk("n1", content.BlockNumberedListItem, "root", 4),
		blk("p", content.BlockParagraph, "root", 5),
		blk("b3", content.BlockBulletedListItem, "root", 6),
	)
	ids := []string{"h", "b1", "b2", "n1", "p", "b3"}

	first := GroupSiblings(ids, blocks)
	flat := Flatten(first)
	second := GroupSiblings(flat, blocks)

	assert.Equal(t, ids, flat)
	assert.Equal(t, first, second)
}

func TestFindChildren(t *testing.T) {
	later := created.Add(time.Minute)
	blocks := blockMap(
		blk("root", content.BlockPage, "", 0),
		blk("c", content.BlockParagraph, "root", 3),
		blk("a", content.BlockParagraph, "root", 1),
		blk("late", content.BlockParagraph, "root", 0, func(b *content.Block) { b.CreatedTime = later }),
		blk("b", content.BlockParagraph, "root", 2),
		blk("nested", content.BlockParagraph, "a", 4),
	)

	got := FindChildren("root", blocks)

	assert.Equal(t, []string{"a", "b", "c", "late"}, IDs(got))
	assert.Empty(t, FindChildren("b", blocks))
	assert.Equal(t, []string{"nested"}, IDs(FindChildren("a", blocks)))
}
