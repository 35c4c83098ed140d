package render

// Kind identifies the shape of an output node
type Kind string

// Block-level kinds
const (
	KindDocument   Kind = "document"
	KindParagraph  Kind = "paragraph"
	KindHeading    Kind = "heading"
	KindList       Kind = "list"
	KindListItem   Kind = "list_item"
	KindToDo       Kind = "to_do"
	KindToggle     Kind = "toggle"
	KindCode       Kind = "code"
	KindDiagram    Kind = "diagram"
	KindQuote      Kind = "quote"
	KindCallout    Kind = "callout"
	KindImage      Kind = "image"
	KindVideo      Kind = "video"
	KindDivider    Kind = "divider"
	KindBookmark   Kind = "bookmark"
	KindEquation   Kind = "equation"
	KindColumnList Kind = "column_list"
	KindColumn     Kind = "column"
	KindTable      Kind = "table"
	KindTableRow   Kind = "table_row"
	KindTableCell  Kind = "table_cell"
)

// Inline kinds produced by rich text composition
const (
	KindText          Kind = "text"
	KindBold          Kind = "bold"
	KindItalic        Kind = "italic"
	KindStrikethrough Kind = "strikethrough"
	KindUnderline     Kind = "underline"
	KindInlineCode    Kind = "code_inline"
	KindColor         Kind = "color"
	KindLink          Kind = "link"
)

// List variants
const (
	VariantBulleted = "bulleted"
	VariantNumbered = "numbered"
)

// Node is one typed visual node.
// Inlines hold composed rich text, Children hold nested block nodes.
type Node struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id,omitempty"`
	Text string `json:"text,omitempty"`

	Level    int    `json:"level,omitempty"`
	Variant  string `json:"variant,omitempty"`
	Checked  *bool  `json:"checked,omitempty"`
	Language string `json:"language,omitempty"`
	Href     string `json:"href,omitempty"`
	Target   string `json:"target,omitempty"`
	Color    string `json:"color,omitempty"`
	Icon     string `json:"icon,omitempty"`
	Src      string `json:"src,omitempty"`

	Width           float64 `json:"width,omitempty"`
	ColumnCount     int     `json:"column_count,omitempty"`
	HasColumnHeader bool    `json:"has_column_header,omitempty"`
	HasRowHeader    bool    `json:"has_row_header,omitempty"`

	Inlines  []Node `json:"inlines,omitempty"`
	Caption  []Node `json:"caption,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// Walk visits n and its descendants depth-first (inlines, caption, then children).
// Returning false from fn stops descent into that node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for i := range n.Inlines {
		n.Inlines[i].Walk(fn)
	}
	for i := range n.Caption {
		n.Caption[i].Walk(fn)
	}
	for i := range n.Children {
		n.Children[i].Walk(fn)
	}
}
