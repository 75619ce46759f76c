package note

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/notedex/internal/domain"
	domnote "github.com/kailas-cloud/notedex/internal/domain/note"
	domws "github.com/kailas-cloud/notedex/internal/domain/workspace"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	putFn    func(ctx context.Context, n *domnote.Note) error
	getFn    func(ctx context.Context, id string) (domnote.Note, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockRepo) Put(ctx context.Context, n *domnote.Note) error {
	if m.putFn != nil {
		return m.putFn(ctx, n)
	}
	return nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (domnote.Note, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domnote.Note{}, domain.ErrNoteNotFound
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockWorkspaces implements WorkspaceReader for tests.
type mockWorkspaces struct {
	getFn   func(ctx context.Context, id string) (domws.Workspace, error)
	touchFn func(ctx context.Context, workspaceID string, at time.Time) error
}

func (m *mockWorkspaces) Get(ctx context.Context, id string) (domws.Workspace, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domws.Workspace{}, domain.ErrWorkspaceNotFound
}

func (m *mockWorkspaces) TouchActivity(ctx context.Context, workspaceID string, at time.Time) error {
	if m.touchFn != nil {
		return m.touchFn(ctx, workspaceID, at)
	}
	return nil
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

func newTestService(t *testing.T) (*Service, *mockRepo, *mockWorkspaces, *mockEmbedder) {
	t.Helper()
	mr := &mockRepo{}
	mw := &mockWorkspaces{}
	me := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}}
	svc := New(mr, mw, me, zap.NewNop())
	return svc, mr, mw, me
}

func sharedWorkspace(t *testing.T, id string) domws.Workspace {
	t.Helper()
	at := time.UnixMilli(1700000000000)
	return domws.Reconstruct(
		id, "team", "owner-1",
		[]string{"owner-1", "member-1"}, []string{"banned-1"},
		false, at, at,
	)
}

func storedNote(t *testing.T) domnote.Note {
	t.Helper()
	fields := []domnote.Field{
		domnote.NewField(domnote.FieldTitle, "title", "standup notes"),
		domnote.NewField(domnote.FieldText, "body", "discussed the release"),
	}
	at := time.UnixMilli(1700000000000)
	return domnote.Reconstruct(
		"note-1", "ws-1", "member-1", domnote.KindContent,
		[]string{"work"}, fields, []float32{0.5, 0.6}, at, at,
	)
}
