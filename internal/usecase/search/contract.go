package search

import (
	"context"

	"github.com/kailas-cloud/notedex/internal/domain"
	domnote "github.com/kailas-cloud/notedex/internal/domain/note"
	domws "github.com/kailas-cloud/notedex/internal/domain/workspace"
)

// NoteRepository lists structurally filtered notes, newest first.
type NoteRepository interface {
	ListFiltered(
		ctx context.Context, workspaceID string, kind domnote.Kind,
		tags []string, limit int,
	) ([]domnote.Note, error)
}

// WorkspaceReader loads workspaces for permission checks.
type WorkspaceReader interface {
	Get(ctx context.Context, id string) (domws.Workspace, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
