package notion

import (
	"time"

	"github.com/youngkeol/notion-blog/internal/domain/models/content"
)

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t
	}
	return time.Time{}
}

func parseTimePtr(s string) *time.Time {
	t := parseTime(s)
	if t.IsZero() {
		return nil
	}
	return &t
}

func decodeEntry(o wireObject) content.CollectionEntry {
	kind := content.EntryOther
	switch o.Object {
	case "page":
		kind = content.EntryPage
	case "database":
		kind = content.EntryDatabase
	}
	return content.CollectionEntry{
		ID:          content.NormalizeID(o.ID),
		Kind:        kind,
		CreatedTime: parseTime(o.CreatedTime),
	}
}

func decodePage(p wirePage) *content.PageProperties {
	props := make(content.Properties, len(p.Properties))
	for name, wp := range p.Properties {
		props[name] = decodeProperty(wp)
	}
	return &content.PageProperties{
		ID:          content.NormalizeID(p.ID),
		CreatedTime: parseTime(p.CreatedTime),
		Properties:  props,
	}
}

// decodeProperty maps one typed property. Only the first run of title and rich text is kept,
// matching how the blog reads them.
func decodeProperty(p wireProperty) content.PropertyValue {
	switch content.PropertyKind(p.Type) {
	case content.KindTitle:
		return content.TitleValue{Text: firstPlainText(p.Title)}
	case content.KindRichText:
		return content.RichTextValue{Text: firstPlainText(p.RichText)}
	case content.KindDate:
		if p.Date == nil {
			return content.DateValue{}
		}
		return content.DateValue{Start: parseTimePtr(p.Date.Start), End: parseTimePtr(p.Date.End)}
	case content.KindSelect:
		if p.Select == nil {
			return content.SelectValue{}
		}
		return content.SelectValue{Name: p.Select.Name}
	case content.KindMultiSelect:
		names := make([]string, 0, len(p.MultiSelect))
		for _, o := range p.MultiSelect {
			names = append(names, o.Name)
		}
		return content.MultiSelectValue{Names: names}
	case content.KindCheckbox:
		return content.CheckboxValue{Checked: p.Checkbox != nil && *p.Checkbox}
	case content.KindNumber:
		return content.NumberValue{Number: p.Number}
	case content.KindURL:
		return content.ScalarValue{ScalarKind: content.KindURL, Value: deref(p.URL)}
	case content.KindEmail:
		return content.ScalarValue{ScalarKind: content.KindEmail, Value: deref(p.Email)}
	case content.KindPhoneNumber:
		return content.ScalarValue{ScalarKind: content.KindPhoneNumber, Value: deref(p.PhoneNumber)}
	case content.KindFiles:
		if len(p.Files) == 0 {
			return content.FileValue{}
		}
		return content.FileValue{URL: p.Files[0].url()}
	case content.KindCreatedTime:
		return content.TimestampValue{TimeKind: content.KindCreatedTime, Time: parseTime(p.CreatedTime)}
	case content.KindLastEditedTime:
		return content.TimestampValue{TimeKind: content.KindLastEditedTime, Time: parseTime(p.LastEditedTime)}
	case content.KindCreatedBy:
		return content.ActorValue{ActorKind: content.KindCreatedBy, Actor: decodeActorRef(p.CreatedBy)}
	case content.KindLastEditedBy:
		return content.ActorValue{ActorKind: content.KindLastEditedBy, Actor: decodeActorRef(p.LastEditedBy)}
	case content.KindPeople:
		people := make([]content.Actor, 0, len(p.People))
		for i := range p.People {
			people = append(people, decodeActorRef(&p.People[i]))
		}
		return content.PeopleValue{People: people}
	}
	return content.UnsupportedValue{Type: p.Type, Raw: p.Raw}
}

// decodeActorRef keeps only the id: property payloads carry partial user objects.
func decodeActorRef(u *wireUser) content.Actor {
	if u == nil {
		return content.Actor{}
	}
	return content.Actor{ID: u.ID}
}

func decodeUser(u wireUser) *content.Actor {
	return &content.Actor{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL}
}

func decodeBlock(w wireBlock, parentID string) content.Block {
	b := content.Block{
		ID:          content.NormalizeID(w.ID),
		Type:        content.ParseBlockType(w.Type),
		ParentID:    parentID,
		HasChildren: w.HasChildren,
		CreatedTime: parseTime(w.CreatedTime),
	}
	setText := func(t *wireText) {
		if t == nil {
			return
		}
		b.RichText = decodeRuns(t.RichText)
		b.Color = t.Color
	}

	switch b.Type {
	case content.BlockParagraph:
		setText(w.Paragraph)
	case content.BlockHeading1:
		setText(w.Heading1)
	case content.BlockHeading2:
		setText(w.Heading2)
	case content.BlockHeading3:
		setText(w.Heading3)
	case content.BlockBulletedListItem:
		setText(w.BulletedListItem)
	case content.BlockNumberedListItem:
		setText(w.NumberedListItem)
	case content.BlockToggle:
		setText(w.Toggle)
	case content.BlockQuote:
		setText(w.Quote)
	case content.BlockToDo:
		if w.ToDo != nil {
			b.RichText = decodeRuns(w.ToDo.RichText)
			b.Checked = w.ToDo.Checked
			b.Color = w.ToDo.Color
		}
	case content.BlockCode:
		if w.Code != nil {
			b.RichText = decodeRuns(w.Code.RichText)
			b.Caption = decodeRuns(w.Code.Caption)
			b.Language = w.Code.Language
		}
	case content.BlockCallout:
		if w.Callout != nil {
			b.RichText = decodeRuns(w.Callout.RichText)
			b.Color = w.Callout.Color
			b.Icon = decodeIcon(w.Callout.Icon)
		}
	case content.BlockImage:
		if w.Image != nil {
			b.URL = w.Image.url()
			b.Caption = decodeRuns(w.Image.Caption)
		}
	case content.BlockVideo:
		if w.Video != nil {
			b.URL = w.Video.url()
			b.Caption = decodeRuns(w.Video.Caption)
		}
	case content.BlockBookmark:
		if w.Bookmark != nil {
			b.URL = w.Bookmark.URL
			b.Caption = decodeRuns(w.Bookmark.Caption)
		}
	case content.BlockEquation:
		if w.Equation != nil {
			b.Expression = w.Equation.Expression
		}
	case content.BlockColumn:
		if w.Column != nil && w.Column.WidthRatio != nil {
			r := *w.Column.WidthRatio
			b.WidthRatio = &r
		}
	case content.BlockTable:
		if w.Table != nil {
			b.Table = &content.TableInfo{
				Width:           w.Table.TableWidth,
				HasColumnHeader: w.Table.HasColumnHeader,
				HasRowHeader:    w.Table.HasRowHeader,
			}
		}
	case content.BlockTableRow:
		if w.TableRow != nil {
			b.Cells = make([][]content.RichTextRun, len(w.TableRow.Cells))
			for i, cell := range w.TableRow.Cells {
				b.Cells[i] = decodeRuns(cell)
			}
		}
	case content.BlockUnsupported:
		b.RawType = w.Type
	}
	return b
}

func decodeRuns(runs []wireRichText) []content.RichTextRun {
	if len(runs) == 0 {
		return nil
	}
	out := make([]content.RichTextRun, len(runs))
	for i, r := range runs {
		out[i] = content.RichTextRun{
			PlainText: r.PlainText,
			Href:      deref(r.Href),
			Annotations: content.Annotations{
				Bold:          r.Annotations.Bold,
				Italic:        r.Annotations.Italic,
				Strikethrough: r.Annotations.Strikethrough,
				Underline:     r.Annotations.Underline,
				Code:          r.Annotations.Code,
				Color:         r.Annotations.Color,
			},
		}
	}
	return out
}

func decodeIcon(i *wireIcon) string {
	if i == nil {
		return ""
	}
	switch {
	case i.Emoji != "":
		return i.Emoji
	case i.External != nil:
		return i.External.URL
	case i.File != nil:
		return i.File.URL
	}
	return ""
}

func firstPlainText(runs []wireRichText) string {
	if len(runs) == 0 {
		return ""
	}
	return runs[0].PlainText
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
