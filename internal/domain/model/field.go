package model

// Field is a titled value rendered inside an attachment.
// Fields are owned by the registry and shared by pointer; they must not be
// modified after definition.
type Field struct {
	Name  string
	Title string
	Value string
	Short bool
}
