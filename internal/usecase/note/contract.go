package note

import (
	"context"
	"time"

	"github.com/kailas-cloud/notedex/internal/domain"
	domnote "github.com/kailas-cloud/notedex/internal/domain/note"
	domws "github.com/kailas-cloud/notedex/internal/domain/workspace"
)

// Repository defines the storage contract for note operations.
type Repository interface {
	Put(ctx context.Context, n *domnote.Note) error
	Get(ctx context.Context, id string) (domnote.Note, error)
	Delete(ctx context.Context, id string) error
}

// WorkspaceReader loads workspaces for permission checks and records note
// activity on them.
type WorkspaceReader interface {
	Get(ctx context.Context, id string) (domws.Workspace, error)
	TouchActivity(ctx context.Context, workspaceID string, at time.Time) error
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
