package content

import "time"

// BlockType enumerates the block shapes the renderer understands
type BlockType string

const (
	BlockPage             BlockType = "page" // synthetic root of a document tree
	BlockParagraph        BlockType = "paragraph"
	BlockHeading1         BlockType = "heading_1"
	BlockHeading2         BlockType = "heading_2"
	BlockHeading3         BlockType = "heading_3"
	BlockBulletedListItem BlockType = "bulleted_list_item"
	BlockNumberedListItem BlockType = "numbered_list_item"
	BlockToDo             BlockType = "to_do"
	BlockToggle           BlockType = "toggle"
	BlockCode             BlockType = "code"
	BlockQuote            BlockType = "quote"
	BlockCallout          BlockType = "callout"
	BlockImage            BlockType = "image"
	BlockVideo            BlockType = "video"
	BlockDivider          BlockType = "divider"
	BlockBookmark         BlockType = "bookmark"
	BlockEquation         BlockType = "equation"
	BlockColumnList       BlockType = "column_list"
	BlockColumn           BlockType = "column"
	BlockTable            BlockType = "table"
	BlockTableRow         BlockType = "table_row"
	BlockUnsupported      BlockType = "unsupported"
)

var knownBlockTypes = map[BlockType]struct{}{
	BlockParagraph: {}, BlockHeading1: {}, BlockHeading2: {}, BlockHeading3: {},
	BlockBulletedListItem: {}, BlockNumberedListItem: {}, BlockToDo: {}, BlockToggle: {},
	BlockCode: {}, BlockQuote: {}, BlockCallout: {}, BlockImage: {}, BlockVideo: {},
	BlockDivider: {}, BlockBookmark: {}, BlockEquation: {}, BlockColumnList: {},
	BlockColumn: {}, BlockTable: {}, BlockTableRow: {},
}

// ParseBlockType maps an upstream type name onto the enumeration.
// Anything unknown becomes BlockUnsupported.
func ParseBlockType(name string) BlockType {
	t := BlockType(name)
	if _, ok := knownBlockTypes[t]; ok {
		return t
	}
	return BlockUnsupported
}

// IsListItem reports whether t is one of the two list item variants
func (t BlockType) IsListItem() bool {
	return t == BlockBulletedListItem || t == BlockNumberedListItem
}

// Annotations are the independent style flags of a rich text run
type Annotations struct {
	Bold          bool   `json:"bold,omitempty"`
	Italic        bool   `json:"italic,omitempty"`
	Strikethrough bool   `json:"strikethrough,omitempty"`
	Underline     bool   `json:"underline,omitempty"`
	Code          bool   `json:"code,omitempty"`
	Color         string `json:"color,omitempty"`
}

// RichTextRun is one annotated text segment
type RichTextRun struct {
	PlainText   string      `json:"plain_text"`
	Href        string      `json:"href,omitempty"`
	Annotations Annotations `json:"annotations"`
}

// TableInfo is the payload of a table block
type TableInfo struct {
	Width           int  `json:"table_width"`
	HasColumnHeader bool `json:"has_column_header"`
	HasRowHeader    bool `json:"has_row_header"`
}

// Block is one node of a document's content tree.
// ParentID is a lookup key into the BlockMap, not an ownership pointer.
type Block struct {
	ID          string    `json:"id"`
	Type        BlockType `json:"type"`
	ParentID    string    `json:"parent_id,omitempty"`
	HasChildren bool      `json:"has_children"`
	CreatedTime time.Time `json:"created_time"`
	Ordinal     int       `json:"ordinal"`

	// Content lists the ordered child ids of the synthetic page root
	Content []string `json:"content,omitempty"`

	RichText   []RichTextRun   `json:"rich_text,omitempty"`
	Color      string          `json:"color,omitempty"`
	Checked    bool            `json:"checked,omitempty"`
	Language   string          `json:"language,omitempty"`
	URL        string          `json:"url,omitempty"`
	Caption    []RichTextRun   `json:"caption,omitempty"`
	Expression string          `json:"expression,omitempty"`
	Icon       string          `json:"icon,omitempty"`
	WidthRatio *float64        `json:"width_ratio,omitempty"`
	Table      *TableInfo      `json:"table,omitempty"`
	Cells      [][]RichTextRun `json:"cells,omitempty"`

	// RawType keeps the upstream type name of unsupported blocks
	RawType string `json:"raw_type,omitempty"`
}

// PlainText concatenates the plain text of the block's rich text runs
func (b Block) PlainText() string {
	return JoinPlainText(b.RichText)
}

// JoinPlainText concatenates run text without styling
func JoinPlainText(runs []RichTextRun) string {
	if len(runs) == 1 {
		return runs[0].PlainText
	}
	n := 0
	for _, r := range runs {
		n += len(r.PlainText)
	}
	buf := make([]byte, 0, n)
	for _, r := range runs {
		buf = append(buf, r.PlainText...)
	}
	return string(buf)
}

// BlockMap is the flat, id-addressed form of a document tree
type BlockMap map[string]Block

// DocumentTree is a materialized document: its page properties and every fetched block
type DocumentTree struct {
	Page   DocumentSummary `json:"page"`
	RootID string          `json:"root_id"`
	Blocks BlockMap        `json:"blocks"`
}

// Root returns the synthetic page block
func (t *DocumentTree) Root() (Block, bool) {
	b, ok := t.Blocks[t.RootID]
	return b, ok
}

// Unexpanded lists blocks that report children but have none in the map.
// A non-empty result means the tree was materialized in a degraded state.
func (t *DocumentTree) Unexpanded() []string {
	parents := make(map[string]struct{}, len(t.Blocks))
	for _, b := range t.Blocks {
		if b.ParentID != "" {
			parents[b.ParentID] = struct{}{}
		}
	}
	var ids []string
	for id, b := range t.Blocks {
		if !b.HasChildren || id == t.RootID {
			continue
		}
		if _, ok := parents[id]; !ok {
			ids = append(ids, id)
		}
	}
	return ids
}
