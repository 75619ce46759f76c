package notedex

import (
	"context"
	"time"

	domnote "github.com/kailas-cloud/notedex/internal/domain/note"
	domws "github.com/kailas-cloud/notedex/internal/domain/workspace"
)

// Notifier delivers push notifications for workspace events.
type Notifier interface {
	Notify(ctx context.Context, userID, title, body string, data map[string]string) error
}

// WorkspaceInfo is the public view of a workspace.
type WorkspaceInfo struct {
	ID               string
	Name             string
	OwnerID          string
	Personal         bool
	Members          []string
	Banned           []string
	LatestActivityAt time.Time
	CreatedAt        time.Time
}

// Field is one typed entry in a note's ordered field list.
// Kind is one of "title", "text", "date", "signature".
type Field struct {
	Kind    string
	Label   string
	Content string
}

// NoteCreate describes a note to create.
// Kind is one of "content", "chat", "template".
type NoteCreate struct {
	Kind   string
	Tags   []string
	Fields []Field
}

// NoteInfo is the public view of a note.
type NoteInfo struct {
	ID          string
	WorkspaceID string
	AuthorID    string
	Kind        string
	Tags        []string
	Fields      []Field
	HasVector   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Query describes a retrieval request. An empty Text keeps recency order;
// a non-empty Text reranks candidates by semantic similarity.
type Query struct {
	Text  string
	Kind  string
	Tags  []string
	Limit int
}

// SearchHit is one ranked search result.
type SearchHit struct {
	Note  NoteInfo
	Score float64
}

func fromInternalWorkspace(w *domws.Workspace) WorkspaceInfo {
	return WorkspaceInfo{
		ID:               w.ID(),
		Name:             w.Name(),
		OwnerID:          w.OwnerID(),
		Personal:         w.IsPersonal(),
		Members:          w.Members(),
		Banned:           w.BannedMembers(),
		LatestActivityAt: w.LatestActivity(),
		CreatedAt:        w.CreatedAt(),
	}
}

func fromInternalNote(n *domnote.Note) NoteInfo {
	fields := make([]Field, len(n.Fields()))
	for i, f := range n.Fields() {
		fields[i] = Field{
			Kind:    string(f.Kind()),
			Label:   f.Label(),
			Content: f.Content(),
		}
	}
	return NoteInfo{
		ID:          n.ID(),
		WorkspaceID: n.WorkspaceID(),
		AuthorID:    n.AuthorID(),
		Kind:        string(n.Kind()),
		Tags:        n.Tags(),
		Fields:      fields,
		HasVector:   len(n.Vector()) > 0,
		CreatedAt:   n.CreatedAt(),
		UpdatedAt:   n.UpdatedAt(),
	}
}

func toInternalFields(fields []Field) ([]domnote.Field, error) {
	out := make([]domnote.Field, len(fields))
	for i, f := range fields {
		kind, err := domnote.ParseFieldKind(f.Kind)
		if err != nil {
			return nil, err
		}
		out[i] = domnote.NewField(kind, f.Label, f.Content)
	}
	return out, nil
}
