package search

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/notedex/internal/domain"
	domnote "github.com/kailas-cloud/notedex/internal/domain/note"
	domws "github.com/kailas-cloud/notedex/internal/domain/workspace"
)

// mockNotes implements NoteRepository for tests.
type mockNotes struct {
	listFn func(
		ctx context.Context, workspaceID string, kind domnote.Kind,
		tags []string, limit int,
	) ([]domnote.Note, error)
}

func (m *mockNotes) ListFiltered(
	ctx context.Context, workspaceID string, kind domnote.Kind, tags []string, limit int,
) ([]domnote.Note, error) {
	if m.listFn != nil {
		return m.listFn(ctx, workspaceID, kind, tags, limit)
	}
	return nil, nil
}

// mockWorkspaces implements WorkspaceReader for tests.
type mockWorkspaces struct {
	getFn func(ctx context.Context, id string) (domws.Workspace, error)
}

func (m *mockWorkspaces) Get(ctx context.Context, id string) (domws.Workspace, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domws.Workspace{}, domain.ErrWorkspaceNotFound
}

// mockEmbedder implements Embedder for tests.
type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	calls  int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	return m.result, m.err
}

func newTestService(t *testing.T) (*Service, *mockNotes, *mockWorkspaces, *mockEmbedder) {
	t.Helper()
	mn := &mockNotes{}
	mw := &mockWorkspaces{}
	me := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1, 0}}}
	svc := New(mn, mw, me)
	return svc, mn, mw, me
}

func readableWorkspace(t *testing.T) domws.Workspace {
	t.Helper()
	at := time.UnixMilli(1700000000000)
	return domws.Reconstruct(
		"ws-1", "team", "owner-1",
		[]string{"owner-1", "member-1"}, []string{"banned-1"},
		false, at, at,
	)
}

func vectorNote(t *testing.T, id string, vec []float32, createdAt int64) domnote.Note {
	t.Helper()
	fields := []domnote.Field{domnote.NewField(domnote.FieldTitle, "title", id)}
	at := time.UnixMilli(createdAt)
	return domnote.Reconstruct(
		id, "ws-1", "member-1", domnote.KindContent,
		nil, fields, vec, at, at,
	)
}
