package note

import (
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/notedex/internal/domain"
)

// Kind classifies a note.
type Kind string

const (
	// KindContent is a regular content note.
	KindContent Kind = "content"
	// KindChat is a chat-style note.
	KindChat Kind = "chat"
	// KindTemplate is a reusable template note.
	KindTemplate Kind = "template"
)

// ParseKind validates a note kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindContent, KindChat, KindTemplate:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown note kind %q: %w", s, domain.ErrInvalidNote)
	}
}

// Note is the note aggregate. The vector is computed once at creation and
// deliberately not refreshed on update; an edited note keeps ranking by its
// pre-edit content.
type Note struct {
	id          string
	workspaceID string
	authorID    string
	kind        Kind
	tags        []string
	fields      []Field
	vector      []float32
	createdAt   time.Time
	updatedAt   time.Time
}

// New validates and creates a Note. The field list is normalized so that the
// title field sits at index 0: a missing title is inserted empty, a second
// title is rejected.
func New(
	id, workspaceID, authorID string, kind Kind,
	tags []string, fields []Field, now time.Time,
) (Note, error) {
	if id == "" {
		return Note{}, fmt.Errorf("note ID is required: %w", domain.ErrInvalidNote)
	}
	if workspaceID == "" {
		return Note{}, fmt.Errorf("workspace ID is required: %w", domain.ErrInvalidNote)
	}
	if authorID == "" {
		return Note{}, fmt.Errorf("author ID is required: %w", domain.ErrInvalidNote)
	}
	if _, err := ParseKind(string(kind)); err != nil {
		return Note{}, err
	}
	normalized, err := normalizeFields(fields)
	if err != nil {
		return Note{}, err
	}
	return Note{
		id:          id,
		workspaceID: workspaceID,
		authorID:    authorID,
		kind:        kind,
		tags:        dedupeTags(tags),
		fields:      normalized,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct creates a Note without validation (storage hydration).
func Reconstruct(
	id, workspaceID, authorID string, kind Kind,
	tags []string, fields []Field, vector []float32,
	createdAt, updatedAt time.Time,
) Note {
	return Note{
		id:          id,
		workspaceID: workspaceID,
		authorID:    authorID,
		kind:        kind,
		tags:        tags,
		fields:      fields,
		vector:      vector,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the note identifier.
func (n *Note) ID() string { return n.id }

// WorkspaceID returns the owning workspace.
func (n *Note) WorkspaceID() string { return n.workspaceID }

// AuthorID returns the creating user.
func (n *Note) AuthorID() string { return n.authorID }

// Kind returns the note kind.
func (n *Note) Kind() Kind { return n.kind }

// Tags returns the note tags.
func (n *Note) Tags() []string { return n.tags }

// Fields returns the ordered field list. Index 0 is always the title.
func (n *Note) Fields() []Field { return n.fields }

// Title returns the title field content.
func (n *Note) Title() string {
	if len(n.fields) == 0 {
		return ""
	}
	return n.fields[0].Content()
}

// Vector returns the embedding vector. Empty if embedding was skipped or failed.
func (n *Note) Vector() []float32 { return n.vector }

// CreatedAt returns the creation timestamp.
func (n *Note) CreatedAt() time.Time { return n.createdAt }

// UpdatedAt returns the last update timestamp.
func (n *Note) UpdatedAt() time.Time { return n.updatedAt }

// SetVector sets the embedding vector in place.
func (n *Note) SetVector(v []float32) { n.vector = v }

// WithFields returns a copy with a replaced, re-normalized field list and a
// bumped update timestamp. The vector is intentionally left untouched.
func (n *Note) WithFields(fields []Field, now time.Time) (Note, error) {
	normalized, err := normalizeFields(fields)
	if err != nil {
		return Note{}, err
	}
	out := *n
	out.fields = normalized
	out.updatedAt = now
	return out, nil
}

// CloneInto returns a copy of the note placed into another workspace: fresh
// id, author set to the copying user, same fields, same vector, fresh
// timestamps. The copy carries no ownership link to the original.
func (n *Note) CloneInto(id, workspaceID, authorID string, now time.Time) Note {
	fields := make([]Field, len(n.fields))
	copy(fields, n.fields)
	tags := make([]string, len(n.tags))
	copy(tags, n.tags)
	vector := make([]float32, len(n.vector))
	copy(vector, n.vector)
	return Note{
		id:          id,
		workspaceID: workspaceID,
		authorID:    authorID,
		kind:        n.kind,
		tags:        tags,
		fields:      fields,
		vector:      vector,
		createdAt:   now,
		updatedAt:   now,
	}
}

// HasAnyTag reports whether the note carries at least one of the given tags.
// An empty filter matches everything.
func (n *Note) HasAnyTag(tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, want := range tags {
		for _, have := range n.tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// EmbeddingText concatenates every labeled or non-empty field into the text
// the note's vector is computed from.
func (n *Note) EmbeddingText() string {
	var b strings.Builder
	for _, f := range n.fields {
		if f.Label() == "" && f.Content() == "" {
			continue
		}
		b.WriteString("field label: ")
		b.WriteString(f.Label())
		b.WriteString(" field content: ")
		b.WriteString(f.Content())
		b.WriteString(" ")
	}
	return strings.TrimSpace(b.String())
}

// normalizeFields enforces the title invariant: exactly one title field,
// always at index 0, inserted empty when absent.
func normalizeFields(fields []Field) ([]Field, error) {
	titles := 0
	for _, f := range fields {
		if f.Kind() == FieldTitle {
			titles++
		}
	}
	if titles > 1 {
		return nil, fmt.Errorf("note has %d title fields, want exactly one: %w", titles, domain.ErrInvalidNote)
	}

	out := make([]Field, 0, len(fields)+1)
	if titles == 0 {
		out = append(out, NewField(FieldTitle, "", ""))
		out = append(out, fields...)
		return out, nil
	}

	for _, f := range fields {
		if f.Kind() == FieldTitle {
			out = append(out, f)
		}
	}
	for _, f := range fields {
		if f.Kind() != FieldTitle {
			out = append(out, f)
		}
	}
	return out, nil
}

func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
