package notion

import "encoding/json"

// Wire types for the subset of the Notion REST API the client reads.

type listResponse[T any] struct {
	Object     string  `json:"object"`
	Results    []T     `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

type queryRequest struct {
	StartCursor string `json:"start_cursor,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
}

type errorResponse struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type wireUser struct {
	Object    string `json:"object"`
	ID        string `json:"id"`
	Type      string `json:"type"` // person, bot
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type wireParent struct {
	Type       string `json:"type"`
	PageID     string `json:"page_id,omitempty"`
	DatabaseID string `json:"database_id,omitempty"`
	BlockID    string `json:"block_id,omitempty"`
}

// wireObject is a database query result: a page or a child database
type wireObject struct {
	Object      string `json:"object"`
	ID          string `json:"id"`
	CreatedTime string `json:"created_time"`
}

type wirePage struct {
	Object         string                  `json:"object"`
	ID             string                  `json:"id"`
	CreatedTime    string                  `json:"created_time"`
	LastEditedTime string                  `json:"last_edited_time"`
	Parent         wireParent              `json:"parent"`
	URL            string                  `json:"url"`
	Properties     map[string]wireProperty `json:"properties"`
}

type wireProperty struct {
	ID   string `json:"id"`
	Type string `json:"type"`

	Title          []wireRichText  `json:"title,omitempty"`
	RichText       []wireRichText  `json:"rich_text,omitempty"`
	Date           *wireDate       `json:"date,omitempty"`
	Select         *wireOption     `json:"select,omitempty"`
	MultiSelect    []wireOption    `json:"multi_select,omitempty"`
	Checkbox       *bool           `json:"checkbox,omitempty"`
	Number         *float64        `json:"number,omitempty"`
	URL            *string         `json:"url,omitempty"`
	Email          *string         `json:"email,omitempty"`
	PhoneNumber    *string         `json:"phone_number,omitempty"`
	Files          []wireFile      `json:"files,omitempty"`
	CreatedTime    string          `json:"created_time,omitempty"`
	LastEditedTime string          `json:"last_edited_time,omitempty"`
	CreatedBy      *wireUser       `json:"created_by,omitempty"`
	LastEditedBy   *wireUser       `json:"last_edited_by,omitempty"`
	People         []wireUser      `json:"people,omitempty"`
	Raw            json.RawMessage `json:"-"`
}

// UnmarshalJSON keeps the raw payload for property types without a typed mapping.
func (p *wireProperty) UnmarshalJSON(data []byte) error {
	type alias wireProperty
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = wireProperty(a)
	p.Raw = append(json.RawMessage(nil), data...)
	return nil
}

type wireDate struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

type wireOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type wireFile struct {
	Type string `json:"type"` // file, external
	Name string `json:"name,omitempty"`
	File *struct {
		URL        string `json:"url"`
		ExpiryTime string `json:"expiry_time,omitempty"`
	} `json:"file,omitempty"`
	External *struct {
		URL string `json:"url"`
	} `json:"external,omitempty"`
	Caption []wireRichText `json:"caption,omitempty"`
}

func (f *wireFile) url() string {
	if f == nil {
		return ""
	}
	switch {
	case f.External != nil:
		return f.External.URL
	case f.File != nil:
		return f.File.URL
	}
	return ""
}

type wireRichText struct {
	Type        string          `json:"type"`
	PlainText   string          `json:"plain_text"`
	Href        *string         `json:"href"`
	Annotations wireAnnotations `json:"annotations"`
}

type wireAnnotations struct {
	Bold          bool   `json:"bold"`
	Italic        bool   `json:"italic"`
	Strikethrough bool   `json:"strikethrough"`
	Underline     bool   `json:"underline"`
	Code          bool   `json:"code"`
	Color         string `json:"color"`
}

type wireIcon struct {
	Type     string `json:"type"`
	Emoji    string `json:"emoji,omitempty"`
	External *struct {
		URL string `json:"url"`
	} `json:"external,omitempty"`
	File *struct {
		URL string `json:"url"`
	} `json:"file,omitempty"`
}

type wireText struct {
	RichText []wireRichText `json:"rich_text"`
	Color    string         `json:"color"`
}

type wireToDo struct {
	RichText []wireRichText `json:"rich_text"`
	Checked  bool           `json:"checked"`
	Color    string         `json:"color"`
}

type wireCode struct {
	RichText []wireRichText `json:"rich_text"`
	Caption  []wireRichText `json:"caption"`
	Language string         `json:"language"`
}

type wireCallout struct {
	RichText []wireRichText `json:"rich_text"`
	Icon     *wireIcon      `json:"icon,omitempty"`
	Color    string         `json:"color"`
}

type wireBookmark struct {
	URL     string         `json:"url"`
	Caption []wireRichText `json:"caption,omitempty"`
}

type wireEquation struct {
	Expression string `json:"expression"`
}

type wireColumn struct {
	WidthRatio *float64 `json:"width_ratio,omitempty"`
}

type wireTable struct {
	TableWidth      int  `json:"table_width"`
	HasColumnHeader bool `json:"has_column_header"`
	HasRowHeader    bool `json:"has_row_header"`
}

type wireTableRow struct {
	Cells [][]wireRichText `json:"cells"`
}

type wireBlock struct {
	Object      string     `json:"object"`
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	CreatedTime string     `json:"created_time"`
	HasChildren bool       `json:"has_children"`
	Archived    bool       `json:"archived"`
	InTrash     bool       `json:"in_trash"`
	Parent      wireParent `json:"parent"`

	Paragraph        *wireText     `json:"paragraph,omitempty"`
	Heading1         *wireText     `json:"heading_1,omitempty"`
	Heading2         *wireText     `json:"heading_2,omitempty"`
	Heading3         *wireText     `json:"heading_3,omitempty"`
	BulletedListItem *wireText     `json:"bulleted_list_item,omitempty"`
	NumberedListItem *wireText     `json:"numbered_list_item,omitempty"`
	ToDo             *wireToDo     `json:"to_do,omitempty"`
	Toggle           *wireText     `json:"toggle,omitempty"`
	Code             *wireCode     `json:"code,omitempty"`
	Quote            *wireText     `json:"quote,omitempty"`
	Callout          *wireCallout  `json:"callout,omitempty"`
	Image            *wireFile     `json:"image,omitempty"`
	Video            *wireFile     `json:"video,omitempty"`
	Bookmark         *wireBookmark `json:"bookmark,omitempty"`
	Equation         *wireEquation `json:"equation,omitempty"`
	Divider          *struct{}     `json:"divider,omitempty"`
	ColumnList       *struct{}     `json:"column_list,omitempty"`
	Column           *wireColumn   `json:"column,omitempty"`
	Table            *wireTable    `json:"table,omitempty"`
	TableRow         *wireTableRow `json:"table_row,omitempty"`
}
