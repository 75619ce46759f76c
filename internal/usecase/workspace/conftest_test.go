package workspace

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	domws "github.com/kailas-cloud/notedex/internal/domain/workspace"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	createFn       func(ctx context.Context, w *domws.Workspace) error
	getFn          func(ctx context.Context, id string) (domws.Workspace, error)
	addMemberFn    func(ctx context.Context, workspaceID, userID string) error
	removeMemberFn func(ctx context.Context, workspaceID, userID string) error
	banMemberFn    func(ctx context.Context, workspaceID, userID string) error
	deleteFn       func(ctx context.Context, id string) error
}

func (m *mockRepo) Create(ctx context.Context, w *domws.Workspace) error {
	if m.createFn != nil {
		return m.createFn(ctx, w)
	}
	return nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (domws.Workspace, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domws.Workspace{}, nil
}

func (m *mockRepo) AddMember(ctx context.Context, workspaceID, userID string) error {
	if m.addMemberFn != nil {
		return m.addMemberFn(ctx, workspaceID, userID)
	}
	return nil
}

func (m *mockRepo) RemoveMember(ctx context.Context, workspaceID, userID string) error {
	if m.removeMemberFn != nil {
		return m.removeMemberFn(ctx, workspaceID, userID)
	}
	return nil
}

func (m *mockRepo) BanMember(ctx context.Context, workspaceID, userID string) error {
	if m.banMemberFn != nil {
		return m.banMemberFn(ctx, workspaceID, userID)
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockNoteStore implements NoteStore for tests.
type mockNoteStore struct {
	countByWorkspaceFn  func(ctx context.Context, workspaceID string) (int, error)
	deleteByWorkspaceFn func(ctx context.Context, workspaceID string) error
}

func (m *mockNoteStore) CountByWorkspace(ctx context.Context, workspaceID string) (int, error) {
	if m.countByWorkspaceFn != nil {
		return m.countByWorkspaceFn(ctx, workspaceID)
	}
	return 0, nil
}

func (m *mockNoteStore) DeleteByWorkspace(ctx context.Context, workspaceID string) error {
	if m.deleteByWorkspaceFn != nil {
		return m.deleteByWorkspaceFn(ctx, workspaceID)
	}
	return nil
}

// mockNotifier implements Notifier for tests.
type mockNotifier struct {
	notifyFn func(ctx context.Context, userID, title, body string, data map[string]string) error
}

func (m *mockNotifier) Notify(
	ctx context.Context, userID, title, body string, data map[string]string,
) error {
	if m.notifyFn != nil {
		return m.notifyFn(ctx, userID, title, body, data)
	}
	return nil
}

func newTestService(t *testing.T) (*Service, *mockRepo, *mockNoteStore, *mockNotifier) {
	t.Helper()
	mr := &mockRepo{}
	mc := &mockNoteStore{}
	mn := &mockNotifier{}
	svc := New(mr, mc, mn, zap.NewNop())
	return svc, mr, mc, mn
}

func sharedWorkspace(t *testing.T) domws.Workspace {
	t.Helper()
	at := time.UnixMilli(1700000000000)
	return domws.Reconstruct(
		"ws-1", "team", "owner-1",
		[]string{"owner-1", "member-1"}, []string{"banned-1"},
		false, at, at,
	)
}

func personalWorkspace(t *testing.T) domws.Workspace {
	t.Helper()
	at := time.UnixMilli(1700000000000)
	return domws.Reconstruct(
		"personal-owner-1", "personal", "owner-1",
		[]string{"owner-1"}, nil,
		true, at, at,
	)
}
