package render

import (
	"sort"

	"github.com/youngkeol/notion-blog/internal/domain/models/content"
)

// ListGroup is a run of consecutive siblings of one list item variant
type ListGroup struct {
	Variant content.BlockType
	Members []content.Block
}

// Group is either a single block or a list group; exactly one field is set
type Group struct {
	Block *content.Block
	List  *ListGroup
}

// GroupSiblings walks ordered sibling ids once, coalescing consecutive list items of
// the same variant. A different variant or a non-list block closes the open group.
// Ids missing from blocks are skipped.
func GroupSiblings(ids []string, blocks content.BlockMap) []Group {
	groups := make([]Group, 0, len(ids))
	var open *ListGroup
	for _, id := range ids {
		b, ok := blocks[id]
		if !ok {
			continue
		}
		if !b.Type.IsListItem() {
			open = nil
			groups = append(groups, Group{Block: &b})
			continue
		}
		if open != nil && open.Variant == b.Type {
			open.Members = append(open.Members, b)
			continue
		}
		open = &ListGroup{Variant: b.Type, Members: []content.Block{b}}
		groups = append(groups, Group{List: open})
	}
	return groups
}

// GroupBlocks is GroupSiblings over already resolved blocks
func GroupBlocks(siblings []content.Block, blocks content.BlockMap) []Group {
	return GroupSiblings(IDs(siblings), blocks)
}

// Flatten restores the sibling id sequence from groups
func Flatten(groups []Group) []string {
	var ids []string
	for _, g := range groups {
		switch {
		case g.Block != nil:
			ids = append(ids, g.Block.ID)
		case g.List != nil:
			for _, m := range g.List.Members {
				ids = append(ids, m.ID)
			}
		}
	}
	return ids
}

// FindChildren scans every block for those whose parent is parentID, ordered by
// creation time. Equal timestamps, common at minute granularity, fall back to Ordinal.
func FindChildren(parentID string, blocks content.BlockMap) []content.Block {
	var children []content.Block
	for _, b := range blocks {
		if b.ParentID == parentID && b.ID != parentID {
			children = append(children, b)
		}
	}
	sort.SliceStable(children, func(i, j int) bool {
		ci, cj := children[i].CreatedTime, children[j].CreatedTime
		if !ci.Equal(cj) {
			return ci.Before(cj)
		}
		return children[i].Ordinal < children[j].Ordinal
	})
	return children
}

// IDs lists block ids in order
func IDs(blocks []content.Block) []string {
	ids := make([]string, len(blocks))
	for i, b := range blocks {
		ids[i] = b.ID
	}
	return ids
}
