package notedex

import (
	"context"
	"fmt"

	domnote "github.com/kailas-cloud/notedex/internal/domain/note"
)

// NoteService manages notes. Every method takes the acting user first.
type NoteService struct {
	svc noteUseCase
}

// Create makes a new note in a workspace the user may post to. The note is
// vectorized once at creation; a failed embedding stores it without a vector.
func (s *NoteService) Create(
	ctx context.Context, userID, workspaceID string, req NoteCreate,
) (NoteInfo, error) {
	kind, err := domnote.ParseKind(req.Kind)
	if err != nil {
		return NoteInfo{}, fmt.Errorf("create note: %w", err)
	}
	fields, err := toInternalFields(req.Fields)
	if err != nil {
		return NoteInfo{}, fmt.Errorf("create note: %w", err)
	}

	n, err := s.svc.Create(ctx, userID, workspaceID, kind, req.Tags, fields)
	if err != nil {
		return NoteInfo{}, fmt.Errorf("create note: %w", err)
	}
	return fromInternalNote(&n), nil
}

// Get returns a note the user may read.
func (s *NoteService) Get(ctx context.Context, userID, noteID string) (NoteInfo, error) {
	n, err := s.svc.Get(ctx, userID, noteID)
	if err != nil {
		return NoteInfo{}, fmt.Errorf("get note: %w", err)
	}
	return fromInternalNote(&n), nil
}

// Update replaces a note's fields. Author only. The vector keeps its
// creation-time value.
func (s *NoteService) Update(
	ctx context.Context, userID, noteID string, fields []Field,
) (NoteInfo, error) {
	internal, err := toInternalFields(fields)
	if err != nil {
		return NoteInfo{}, fmt.Errorf("update note: %w", err)
	}

	n, err := s.svc.Update(ctx, userID, noteID, internal)
	if err != nil {
		return NoteInfo{}, fmt.Errorf("update note: %w", err)
	}
	return fromInternalNote(&n), nil
}

// Delete removes a note. Author only.
func (s *NoteService) Delete(ctx context.Context, userID, noteID string) error {
	if err := s.svc.Delete(ctx, userID, noteID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

// Copy duplicates a note into another workspace, carrying the original
// vector. No embedding call is made.
func (s *NoteService) Copy(
	ctx context.Context, userID, noteID, targetWorkspaceID string,
) (NoteInfo, error) {
	n, err := s.svc.Copy(ctx, userID, noteID, targetWorkspaceID)
	if err != nil {
		return NoteInfo{}, fmt.Errorf("copy note: %w", err)
	}
	return fromInternalNote(&n), nil
}
