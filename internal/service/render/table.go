package render

import (
	"github.com/youngkeol/notion-blog/internal/domain/models/content"
	"github.com/youngkeol/notion-blog/internal/domain/models/render"
)

// TableRows returns the table's row blocks in creation order
func TableRows(tableID string, blocks content.BlockMap) []content.Block {
	children := FindChildren(tableID, blocks)
	rows := children[:0:0]
	for _, c := range children {
		if c.Type == content.BlockTableRow {
			rows = append(rows, c)
		}
	}
	return rows
}

// ColumnCount is the widest row's cell count. The declared table width is a floor.
func ColumnCount(table content.Block, rows []content.Block) int {
	n := 0
	if table.Table != nil {
		n = table.Table.Width
	}
	for _, r := range rows {
		n = max(n, len(r.Cells))
	}
	return n
}

func tableNode(table content.Block, rows []content.Block) *render.Node {
	cols := ColumnCount(table, rows)
	node := &render.Node{Kind: render.KindTable, ID: table.ID, ColumnCount: cols}
	if table.Table != nil {
		node.HasColumnHeader = table.Table.HasColumnHeader
		node.HasRowHeader = table.Table.HasRowHeader
	}
	for _, r := range rows {
		node.Children = append(node.Children, rowNode(r, cols))
	}
	return node
}

// rowNode pads the row with empty cells up to cols
func rowNode(r content.Block, cols int) render.Node {
	row := render.Node{Kind: render.KindTableRow, ID: r.ID, Children: make([]render.Node, cols)}
	for i := range cols {
		cell := render.Node{Kind: render.KindTableCell}
		if i < len(r.Cells) {
			cell.Inlines = ComposeRuns(r.Cells[i], false)
		}
		row.Children[i] = cell
	}
	return row
}
