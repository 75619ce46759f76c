package notedex

import (
	"context"
	"fmt"
)

// WorkspaceService manages workspaces and their membership rosters. Every
// method takes the acting user first; permission checks run against that
// identity.
type WorkspaceService struct {
	svc workspaceUseCase
}

// Create makes a new shared workspace owned by ownerID.
func (s *WorkspaceService) Create(ctx context.Context, ownerID, name string) (WorkspaceInfo, error) {
	w, err := s.svc.Create(ctx, ownerID, name)
	if err != nil {
		return WorkspaceInfo{}, fmt.Errorf("create workspace: %w", err)
	}
	return fromInternalWorkspace(&w), nil
}

// Personal returns the user's personal workspace, creating it on first access.
func (s *WorkspaceService) Personal(ctx context.Context, userID string) (WorkspaceInfo, error) {
	w, err := s.svc.EnsurePersonal(ctx, userID)
	if err != nil {
		return WorkspaceInfo{}, fmt.Errorf("personal workspace: %w", err)
	}
	return fromInternalWorkspace(&w), nil
}

// Get returns a workspace the user may read.
func (s *WorkspaceService) Get(ctx context.Context, userID, workspaceID string) (WorkspaceInfo, error) {
	w, err := s.svc.Get(ctx, userID, workspaceID)
	if err != nil {
		return WorkspaceInfo{}, fmt.Errorf("get workspace: %w", err)
	}
	return fromInternalWorkspace(&w), nil
}

// NoteCount returns the number of notes in a workspace the user may read.
func (s *WorkspaceService) NoteCount(ctx context.Context, userID, workspaceID string) (int, error) {
	n, err := s.svc.NoteCount(ctx, userID, workspaceID)
	if err != nil {
		return 0, fmt.Errorf("note count: %w", err)
	}
	return n, nil
}

// Status returns the user's relationship to a workspace:
// "owner", "member", "banned", or "not_member".
func (s *WorkspaceService) Status(ctx context.Context, userID, workspaceID string) (string, error) {
	status, err := s.svc.MembershipStatus(ctx, userID, workspaceID)
	if err != nil {
		return "", fmt.Errorf("membership status: %w", err)
	}
	return string(status), nil
}

// Invite adds targetID to the workspace roster on behalf of userID.
func (s *WorkspaceService) Invite(ctx context.Context, userID, workspaceID, targetID string) error {
	if err := s.svc.Invite(ctx, userID, workspaceID, targetID); err != nil {
		return fmt.Errorf("invite: %w", err)
	}
	return nil
}

// Ban moves targetID from members to banned. Bans are permanent.
func (s *WorkspaceService) Ban(ctx context.Context, userID, workspaceID, targetID string) error {
	if err := s.svc.Ban(ctx, userID, workspaceID, targetID); err != nil {
		return fmt.Errorf("ban: %w", err)
	}
	return nil
}

// Leave removes userID from the workspace roster. Owners delete instead.
func (s *WorkspaceService) Leave(ctx context.Context, userID, workspaceID string) error {
	if err := s.svc.Leave(ctx, userID, workspaceID); err != nil {
		return fmt.Errorf("leave: %w", err)
	}
	return nil
}

// Delete removes a workspace and all notes in it. Owner only.
func (s *WorkspaceService) Delete(ctx context.Context, userID, workspaceID string) error {
	if err := s.svc.Delete(ctx, userID, workspaceID); err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}
	return nil
}
