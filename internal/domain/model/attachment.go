package model

// Attachment is a rich message block referenced by name from message configurations.
// Like Field, it is immutable once defined and shared between every message using it.
type Attachment struct {
	Name string

	Fallback string
	Color    string
	Pretext  string

	AuthorName string
	AuthorLink string
	AuthorIcon string

	Title     string
	TitleLink string
	Text      string

	ImageURL string
	ThumbURL string

	// Fields keeps the declaration order of the `fields` list.
	Fields []*Field
}
