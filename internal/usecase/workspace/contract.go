package workspace

import (
	"context"

	domws "github.com/kailas-cloud/notedex/internal/domain/workspace"
)

// Repository defines the storage contract for workspace operations.
type Repository interface {
	Create(ctx context.Context, w *domws.Workspace) error
	Get(ctx context.Context, id string) (domws.Workspace, error)
	AddMember(ctx context.Context, workspaceID, userID string) error
	RemoveMember(ctx context.Context, workspaceID, userID string) error
	BanMember(ctx context.Context, workspaceID, userID string) error
	Delete(ctx context.Context, id string) error
}

// NoteStore is the per-workspace note surface the service needs: counting for
// reads, cascade delete ahead of the record delete.
type NoteStore interface {
	CountByWorkspace(ctx context.Context, workspaceID string) (int, error)
	DeleteByWorkspace(ctx context.Context, workspaceID string) error
}

// Notifier delivers best-effort push notifications. Failures are logged, never
// surfaced to the caller.
type Notifier interface {
	Notify(ctx context.Context, userID, title, body string, data map[string]string) error
}
