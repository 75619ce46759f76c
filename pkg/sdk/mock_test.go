package notedex

import (
	"context"
	"time"

	domnote "github.com/kailas-cloud/notedex/internal/domain/note"
	domws "github.com/kailas-cloud/notedex/internal/domain/workspace"
	searchuc "github.com/kailas-cloud/notedex/internal/usecase/search"
)

type mockWorkspaceUC struct {
	createFn   func(ctx context.Context, ownerID, name string) (domws.Workspace, error)
	personalFn func(ctx context.Context, userID string) (domws.Workspace, error)
	getFn      func(ctx context.Context, userID, workspaceID string) (domws.Workspace, error)
	countFn    func(ctx context.Context, userID, workspaceID string) (int, error)
	statusFn   func(ctx context.Context, userID, workspaceID string) (domws.Status, error)
	inviteFn   func(ctx context.Context, userID, workspaceID, targetID string) error
	banFn      func(ctx context.Context, userID, workspaceID, targetID string) error
	leaveFn    func(ctx context.Context, userID, workspaceID string) error
	deleteFn   func(ctx context.Context, userID, workspaceID string) error
}

func (m *mockWorkspaceUC) Create(ctx context.Context, ownerID, name string) (domws.Workspace, error) {
	return m.createFn(ctx, ownerID, name)
}

func (m *mockWorkspaceUC) EnsurePersonal(ctx context.Context, userID string) (domws.Workspace, error) {
	return m.personalFn(ctx, userID)
}

func (m *mockWorkspaceUC) Get(ctx context.Context, userID, workspaceID string) (domws.Workspace, error) {
	return m.getFn(ctx, userID, workspaceID)
}

func (m *mockWorkspaceUC) NoteCount(ctx context.Context, userID, workspaceID string) (int, error) {
	return m.countFn(ctx, userID, workspaceID)
}

func (m *mockWorkspaceUC) MembershipStatus(ctx context.Context, userID, workspaceID string) (domws.Status, error) {
	return m.statusFn(ctx, userID, workspaceID)
}

func (m *mockWorkspaceUC) Invite(ctx context.Context, userID, workspaceID, targetID string) error {
	return m.inviteFn(ctx, userID, workspaceID, targetID)
}

func (m *mockWorkspaceUC) Ban(ctx context.Context, userID, workspaceID, targetID string) error {
	return m.banFn(ctx, userID, workspaceID, targetID)
}

func (m *mockWorkspaceUC) Leave(ctx context.Context, userID, workspaceID string) error {
	return m.leaveFn(ctx, userID, workspaceID)
}

func (m *mockWorkspaceUC) Delete(ctx context.Context, userID, workspaceID string) error {
	return m.deleteFn(ctx, userID, workspaceID)
}

type mockNoteUC struct {
	createFn func(
		ctx context.Context, userID, workspaceID string,
		kind domnote.Kind, tags []string, fields []domnote.Field,
	) (domnote.Note, error)
	getFn    func(ctx context.Context, userID, noteID string) (domnote.Note, error)
	updateFn func(ctx context.Context, userID, noteID string, fields []domnote.Field) (domnote.Note, error)
	deleteFn func(ctx context.Context, userID, noteID string) error
	copyFn   func(ctx context.Context, userID, noteID, targetWorkspaceID string) (domnote.Note, error)
}

func (m *mockNoteUC) Create(
	ctx context.Context, userID, workspaceID string,
	kind domnote.Kind, tags []string, fields []domnote.Field,
) (domnote.Note, error) {
	return m.createFn(ctx, userID, workspaceID, kind, tags, fields)
}

func (m *mockNoteUC) Get(ctx context.Context, userID, noteID string) (domnote.Note, error) {
	return m.getFn(ctx, userID, noteID)
}

func (m *mockNoteUC) Update(
	ctx context.Context, userID, noteID string, fields []domnote.Field,
) (domnote.Note, error) {
	return m.updateFn(ctx, userID, noteID, fields)
}

func (m *mockNoteUC) Delete(ctx context.Context, userID, noteID string) error {
	return m.deleteFn(ctx, userID, noteID)
}

func (m *mockNoteUC) Copy(
	ctx context.Context, userID, noteID, targetWorkspaceID string,
) (domnote.Note, error) {
	return m.copyFn(ctx, userID, noteID, targetWorkspaceID)
}

type mockSearchUC struct {
	searchFn func(ctx context.Context, userID string, req *searchuc.Request) ([]searchuc.Result, error)
}

func (m *mockSearchUC) Search(
	ctx context.Context, userID string, req *searchuc.Request,
) ([]searchuc.Result, error) {
	return m.searchFn(ctx, userID, req)
}

var testTime = time.UnixMilli(1700000000000)

func testInternalWorkspace() domws.Workspace {
	return domws.Reconstruct(
		"ws-1", "team", "owner-1",
		[]string{"owner-1", "member-1"}, []string{"banned-1"},
		false, testTime, testTime,
	)
}

func testInternalNote() domnote.Note {
	return domnote.Reconstruct(
		"note-1", "ws-1", "user-1", domnote.KindContent,
		[]string{"work"},
		[]domnote.Field{
			domnote.NewField(domnote.FieldTitle, "", "standup"),
			domnote.NewField(domnote.FieldText, "summary", "shipped the thing"),
		},
		[]float32{0.1, 0.2},
		testTime, testTime,
	)
}
