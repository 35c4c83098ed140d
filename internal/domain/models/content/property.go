package content

import (
	"encoding/json"
	"time"
)

// PropertyKind tags a property value with its upstream schema type
type PropertyKind string

const (
	KindTitle          PropertyKind = "title"
	KindRichText       PropertyKind = "rich_text"
	KindDate           PropertyKind = "date"
	KindSelect         PropertyKind = "select"
	KindMultiSelect    PropertyKind = "multi_select"
	KindCheckbox       PropertyKind = "checkbox"
	KindNumber         PropertyKind = "number"
	KindURL            PropertyKind = "url"
	KindEmail          PropertyKind = "email"
	KindPhoneNumber    PropertyKind = "phone_number"
	KindFiles          PropertyKind = "files"
	KindCreatedTime    PropertyKind = "created_time"
	KindLastEditedTime PropertyKind = "last_edited_time"
	KindCreatedBy      PropertyKind = "created_by"
	KindLastEditedBy   PropertyKind = "last_edited_by"
	KindPeople         PropertyKind = "people"
	KindUnsupported    PropertyKind = "unsupported"
)

// PropertyValue is a closed set of typed property values.
// Only the variants declared in this package implement it.
type PropertyValue interface {
	Kind() PropertyKind
	isPropertyValue()
}

// Properties maps property names, as defined by the remote schema, to values
type Properties map[string]PropertyValue

type (
	TitleValue struct {
		Text string `json:"text"`
	}

	RichTextValue struct {
		Text string `json:"text"`
	}

	// DateValue holds a date or date range; End is nil for single dates
	DateValue struct {
		Start *time.Time `json:"start_date,omitempty"`
		End   *time.Time `json:"end_date,omitempty"`
	}

	SelectValue struct {
		Name string `json:"name"`
	}

	MultiSelectValue struct {
		Names []string `json:"names"`
	}

	CheckboxValue struct {
		Checked bool `json:"checked"`
	}

	NumberValue struct {
		Number *float64 `json:"number"`
	}

	// ScalarValue covers url, email and phone_number; ScalarKind says which
	ScalarValue struct {
		ScalarKind PropertyKind `json:"-"`
		Value      string       `json:"value"`
	}

	// FileValue keeps the first file of a files property
	FileValue struct {
		URL string `json:"url,omitempty"`
	}

	// TimestampValue covers created_time and last_edited_time
	TimestampValue struct {
		TimeKind PropertyKind `json:"-"`
		Time     time.Time    `json:"time"`
	}

	// ActorValue covers created_by and last_edited_by.
	// Resolved is false when only the id is known.
	ActorValue struct {
		ActorKind PropertyKind `json:"-"`
		Actor     Actor        `json:"actor"`
		Resolved  bool         `json:"resolved"`
	}

	PeopleValue struct {
		People   []Actor `json:"people"`
		Resolved bool    `json:"resolved"`
	}

	// UnsupportedValue keeps the raw payload of a schema type with no mapping
	UnsupportedValue struct {
		Type string          `json:"type"`
		Raw  json.RawMessage `json:"raw,omitempty"`
	}
)

func (TitleValue) Kind() PropertyKind       { return KindTitle }
func (RichTextValue) Kind() PropertyKind    { return KindRichText }
func (DateValue) Kind() PropertyKind        { return KindDate }
func (SelectValue) Kind() PropertyKind      { return KindSelect }
func (MultiSelectValue) Kind() PropertyKind { return KindMultiSelect }
func (CheckboxValue) Kind() PropertyKind    { return KindCheckbox }
func (NumberValue) Kind() PropertyKind      { return KindNumber }
func (v ScalarValue) Kind() PropertyKind    { return v.ScalarKind }
func (FileValue) Kind() PropertyKind        { return KindFiles }
func (v TimestampValue) Kind() PropertyKind { return v.TimeKind }
func (v ActorValue) Kind() PropertyKind     { return v.ActorKind }
func (PeopleValue) Kind() PropertyKind      { return KindPeople }
func (UnsupportedValue) Kind() PropertyKind { return KindUnsupported }

func (TitleValue) isPropertyValue()       {}
func (RichTextValue) isPropertyValue()    {}
func (DateValue) isPropertyValue()        {}
func (SelectValue) isPropertyValue()      {}
func (MultiSelectValue) isPropertyValue() {}
func (CheckboxValue) isPropertyValue()    {}
func (NumberValue) isPropertyValue()      {}
func (ScalarValue) isPropertyValue()      {}
func (FileValue) isPropertyValue()        {}
func (TimestampValue) isPropertyValue()   {}
func (ActorValue) isPropertyValue()       {}
func (PeopleValue) isPropertyValue()      {}
func (UnsupportedValue) isPropertyValue() {}

type taggedProperty struct {
	Type  PropertyKind  `json:"type"`
	Value PropertyValue `json:"value"`
}

// MarshalJSON emits each value tagged with its kind
func (p Properties) MarshalJSON() ([]byte, error) {
	out := make(map[string]taggedProperty, len(p))
	for name, v := range p {
		if v == nil {
			continue
		}
		out[name] = taggedProperty{Type: v.Kind(), Value: v}
	}
	return json.Marshal(out)
}

// ActorIDs lists the ids of unresolved actor references without duplicates.
func (p Properties) ActorIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, v := range p {
		switch pv := v.(type) {
		case ActorValue:
			if !pv.Resolved {
				add(pv.Actor.ID)
			}
		case PeopleValue:
			if !pv.Resolved {
				for _, a := range pv.People {
					add(a.ID)
				}
			}
		}
	}
	return ids
}

// WithActors returns a copy where actor references found in resolved are filled in.
// References missing from resolved stay as they were.
func (p Properties) WithActors(resolved map[string]Actor) Properties {
	out := make(Properties, len(p))
	for name, v := range p {
		switch pv := v.(type) {
		case ActorValue:
			if a, ok := resolved[pv.Actor.ID]; ok {
				pv.Actor = a
				pv.Resolved = true
			}
			out[name] = pv
		case PeopleValue:
			people := make([]Actor, len(pv.People))
			all := true
			for i, a := range pv.People {
				if r, ok := resolved[a.ID]; ok {
					people[i] = r
				} else {
					people[i] = a
					all = false
				}
			}
			out[name] = PeopleValue{People: people, Resolved: all}
		default:
			out[name] = v
		}
	}
	return out
}
