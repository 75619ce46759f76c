package note

import (
	"fmt"

	"github.com/kailas-cloud/notedex/internal/domain"
)

// FieldKind tags the field variant. A switch over the kind is the intended
// way to render a field; there is no behavior hierarchy behind it.
type FieldKind string

const (
	// FieldTitle is the note title. Always present at index 0, possibly empty.
	FieldTitle FieldKind = "title"
	// FieldText is a freeform text block.
	FieldText FieldKind = "text"
	// FieldDate is a date value stored as text.
	FieldDate FieldKind = "date"
	// FieldSignature is a signature block.
	FieldSignature FieldKind = "signature"
)

// ParseFieldKind validates a field kind string.
func ParseFieldKind(s string) (FieldKind, error) {
	switch FieldKind(s) {
	case FieldTitle, FieldText, FieldDate, FieldSignature:
		return FieldKind(s), nil
	default:
		return "", fmt.Errorf("unknown field kind %q: %w", s, domain.ErrInvalidNote)
	}
}

// Field is one typed entry in a note's ordered field list. Each variant
// carries only a label and a content; the core treats both as opaque.
type Field struct {
	kind    FieldKind
	label   string
	content string
}

// NewField creates a field of the given kind.
func NewField(kind FieldKind, label, content string) Field {
	return Field{kind: kind, label: label, content: content}
}

// Kind returns the field variant tag.
func (f Field) Kind() FieldKind { return f.kind }

// Label returns the field label.
func (f Field) Label() string { return f.label }

// Content returns the field content.
func (f Field) Content() string { return f.content }
