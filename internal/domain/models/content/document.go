package content

import (
	"strings"
	"time"
)

// EntryKind distinguishes documents from other collection entries
type EntryKind string

const (
	EntryPage     EntryKind = "page"
	EntryDatabase EntryKind = "database"
	EntryOther    EntryKind = "other"
)

// CollectionEntry is one row returned by a collection query
type CollectionEntry struct {
	ID          string    `json:"id"`
	Kind        EntryKind `json:"kind"`
	CreatedTime time.Time `json:"created_time"`
}

// PageProperties is the typed property set of a single page
type PageProperties struct {
	ID          string     `json:"id"`
	CreatedTime time.Time  `json:"created_time"`
	Properties  Properties `json:"properties"`
}

// Actor is a resolved person or bot reference
type Actor struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// DocumentSummary is one entry of the post list
type DocumentSummary struct {
	ID          string     `json:"id"`
	CreatedTime time.Time  `json:"created_time"`
	URL         string     `json:"url"`
	Properties  Properties `json:"properties"`
}

// NewDocumentSummary builds a summary from fetched page properties.
// createdTime from the collection entry wins when the page omits it.
func NewDocumentSummary(entry CollectionEntry, props *PageProperties) DocumentSummary {
	created := props.CreatedTime
	if created.IsZero() {
		created = entry.CreatedTime
	}
	return DocumentSummary{
		ID:          entry.ID,
		CreatedTime: created,
		URL:         PageURL(entry.ID),
		Properties:  props.Properties,
	}
}

// EffectiveDate is the start of the named date property, or CreatedTime.
func (d DocumentSummary) EffectiveDate(dateProperty string) time.Time {
	if v, ok := d.Properties[dateProperty].(DateValue); ok && v.Start != nil && !v.Start.IsZero() {
		return *v.Start
	}
	return d.CreatedTime
}

// Text returns the plain text of a title, rich text, select or scalar property.
func (d DocumentSummary) Text(name string) string {
	switch v := d.Properties[name].(type) {
	case TitleValue:
		return v.Text
	case RichTextValue:
		return v.Text
	case SelectValue:
		return v.Name
	case ScalarValue:
		return v.Value
	case FileValue:
		return v.URL
	}
	return ""
}

// Strings returns the values of a multi-select property, or the single value of a select.
func (d DocumentSummary) Strings(name string) []string {
	switch v := d.Properties[name].(type) {
	case MultiSelectValue:
		return v.Names
	case SelectValue:
		if v.Name != "" {
			return []string{v.Name}
		}
	}
	return nil
}

// HasString reports whether a select or multi-select property contains value.
func (d DocumentSummary) HasString(name, value string) bool {
	for _, s := range d.Strings(name) {
		if s == value {
			return true
		}
	}
	return false
}

// DocumentIndex is ordered by effective date, newest first
type DocumentIndex []DocumentSummary

// Find returns the summary with the given id.
func (idx DocumentIndex) Find(id string) (DocumentSummary, bool) {
	for _, d := range idx {
		if d.ID == id {
			return d, true
		}
	}
	return DocumentSummary{}, false
}

// FindBy returns the first summary whose text property equals value.
func (idx DocumentIndex) FindBy(property, value string) (DocumentSummary, bool) {
	for _, d := range idx {
		if d.Text(property) == value {
			return d, true
		}
	}
	return DocumentSummary{}, false
}

// PageURL maps a page id to its public notion.so address
func PageURL(id string) string {
	return "https://www.notion.so/" + strings.ReplaceAll(id, "-", "")
}
