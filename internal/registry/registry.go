// Package registry holds the named field and attachment definitions shared by
// every message. It is filled once at startup and only read afterwards, so
// lookups need no locking.
package registry

import (
	"fmt"

	"slack-notifier/internal/domain/model"
	"slack-notifier/internal/kvlist"
)

const (
	KindField      = "field"
	KindAttachment = "attachment"
)

var attachmentKeys = []string{
	"name",
	"fallback",
	"color",
	"pretext",
	"author_name",
	"author_link",
	"author_icon",
	"title",
	"title_link",
	"text",
	"fields",
	"image_url",
	"thumb_url",
}

// Registry stores definitions in declaration order with a first-wins name index.
type Registry struct {
	fields      []*model.Field
	fieldIndex  map[string]*model.Field
	attachments []*model.Attachment
	attachIndex map[string]*model.Attachment
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		fieldIndex:  make(map[string]*model.Field),
		attachIndex: make(map[string]*model.Attachment),
	}
}

// Populate defines all fields and then all attachments.
// Fields must come first because attachments resolve their field lists at definition time.
func (r *Registry) Populate(fieldDefs, attachmentDefs []string) error {
	for _, raw := range fieldDefs {
		if _, err := r.DefineField(raw); err != nil {
			return err
		}
	}
	for _, raw := range attachmentDefs {
		if _, err := r.DefineAttachment(raw); err != nil {
			return err
		}
	}
	return nil
}

// DefineField parses a field definition and appends it to the registry.
func (r *Registry) DefineField(raw string) (*model.Field, error) {
	kv, err := kvlist.Parse(raw, "name", "title", "value", "short")
	if err != nil {
		return nil, fmt.Errorf("parse field definition: %w", err)
	}

	for _, key := range []string{"name", "title", "value"} {
		if kv[key] == "" {
			return nil, &MissingKeyError{Kind: KindField, Key: key}
		}
	}

	f := &model.Field{
		Name:  kv["name"],
		Title: kv["title"],
		Value: kv["value"],
		Short: kv["short"] != "",
	}

	r.fields = append(r.fields, f)
	if _, exists := r.fieldIndex[f.Name]; !exists {
		r.fieldIndex[f.Name] = f
	}
	return f, nil
}

// DefineAttachment parses an attachment definition, links its fields and appends it.
func (r *Registry) DefineAttachment(raw string) (*model.Attachment, error) {
	kv, err := kvlist.Parse(raw, attachmentKeys...)
	if err != nil {
		return nil, fmt.Errorf("parse attachment definition: %w", err)
	}

	if kv["name"] == "" {
		return nil, &MissingKeyError{Kind: KindAttachment, Key: "name"}
	}

	a := &model.Attachment{
		Name:       kv["name"],
		Fallback:   kv["fallback"],
		Color:      kv["color"],
		Pretext:    kv["pretext"],
		AuthorName: kv["author_name"],
		AuthorLink: kv["author_link"],
		AuthorIcon: kv["author_icon"],
		Title:      kv["title"],
		TitleLink:  kv["title_link"],
		Text:       kv["text"],
		ImageURL:   kv["image_url"],
		ThumbURL:   kv["thumb_url"],
	}

	if list, ok := kv["fields"]; ok {
		fields, err := Resolve(list, KindField, r.FindField)
		if err != nil {
			return nil, fmt.Errorf("attachment %q: %w", a.Name, err)
		}
		a.Fields = fields
	}

	r.attachments = append(r.attachments, a)
	if _, exists := r.attachIndex[a.Name]; !exists {
		r.attachIndex[a.Name] = a
	}
	return a, nil
}

// FindField returns the first field defined under name.
func (r *Registry) FindField(name string) (*model.Field, bool) {
	f, ok := r.fieldIndex[name]
	return f, ok
}

// FindAttachment returns the first attachment defined under name.
func (r *Registry) FindAttachment(name string) (*model.Attachment, bool) {
	a, ok := r.attachIndex[name]
	return a, ok
}

// Fields returns the defined fields in declaration order.
func (r *Registry) Fields() []*model.Field {
	return append([]*model.Field(nil), r.fields...)
}

// Attachments returns the defined attachments in declaration order.
func (r *Registry) Attachments() []*model.Attachment {
	return append([]*model.Attachment(nil), r.attachments...)
}
