package note

import (
	"encoding/json"
	"fmt"
	"time"

	domnote "github.com/kailas-cloud/notedex/internal/domain/note"
)

// noteDoc is the JSON storage shape. Field names double as FT index paths.
type noteDoc struct {
	ID          string     `json:"id"`
	WorkspaceID string     `json:"workspace_id"`
	AuthorID    string     `json:"author_id"`
	Kind        string     `json:"kind"`
	Tags        []string   `json:"tags"`
	Fields      []fieldDoc `json:"fields"`
	Vector      []float32  `json:"vector"`
	CreatedAt   int64      `json:"created_at"`
	UpdatedAt   int64      `json:"updated_at"`
}

type fieldDoc struct {
	Kind    string `json:"kind"`
	Label   string `json:"label"`
	Content string `json:"content"`
}

func buildJSONDoc(n *domnote.Note) noteDoc {
	fields := make([]fieldDoc, len(n.Fields()))
	for i, f := range n.Fields() {
		fields[i] = fieldDoc{
			Kind:    string(f.Kind()),
			Label:   f.Label(),
			Content: f.Content(),
		}
	}
	tags := n.Tags()
	if tags == nil {
		tags = []string{}
	}
	vector := n.Vector()
	if vector == nil {
		vector = []float32{}
	}
	return noteDoc{
		ID:          n.ID(),
		WorkspaceID: n.WorkspaceID(),
		AuthorID:    n.AuthorID(),
		Kind:        string(n.Kind()),
		Tags:        tags,
		Fields:      fields,
		Vector:      vector,
		CreatedAt:   n.CreatedAt().UnixMilli(),
		UpdatedAt:   n.UpdatedAt().UnixMilli(),
	}
}

func (d *noteDoc) toDomain() domnote.Note {
	fields := make([]domnote.Field, len(d.Fields))
	for i, f := range d.Fields {
		fields[i] = domnote.NewField(domnote.FieldKind(f.Kind), f.Label, f.Content)
	}
	return domnote.Reconstruct(
		d.ID,
		d.WorkspaceID,
		d.AuthorID,
		domnote.Kind(d.Kind),
		d.Tags,
		fields,
		d.Vector,
		time.UnixMilli(d.CreatedAt),
		time.UnixMilli(d.UpdatedAt),
	)
}

// parseJSONGetResult unwraps the JSONPath array that JSON.GET $ returns.
func parseJSONGetResult(raw []byte) (domnote.Note, error) {
	var docs []noteDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return domnote.Note{}, fmt.Errorf("unmarshal note: %w", err)
	}
	if len(docs) == 0 {
		return domnote.Note{}, fmt.Errorf("empty note document")
	}
	return docs[0].toDomain(), nil
}
