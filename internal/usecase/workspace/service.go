package workspace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/notedex/internal/domain"
	domws "github.com/kailas-cloud/notedex/internal/domain/workspace"
)

// Service handles workspace lifecycle and membership.
type Service struct {
	repo     Repository
	notes    NoteStore
	notifier Notifier
	logger   *zap.Logger
}

// New creates a workspace service.
func New(repo Repository, notes NoteStore, notifier Notifier, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		notes:    notes,
		notifier: notifier,
		logger:   logger,
	}
}

// Create makes a new shared workspace owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID, name string) (domws.Workspace, error) {
	w, err := domws.New(uuid.NewString(), name, ownerID, time.Now())
	if err != nil {
		return domws.Workspace{}, err
	}
	if err := s.repo.Create(ctx, &w); err != nil {
		return domws.Workspace{}, fmt.Errorf("create workspace: %w", err)
	}
	return w, nil
}

// EnsurePersonal returns the user's personal workspace, creating it on first
// access. The ID is derived from the user so repeated calls converge on one
// workspace without a lookup table.
func (s *Service) EnsurePersonal(ctx context.Context, userID string) (domws.Workspace, error) {
	id := personalID(userID)

	w, err := s.repo.Get(ctx, id)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, domain.ErrWorkspaceNotFound) {
		return domws.Workspace{}, fmt.Errorf("get personal workspace: %w", err)
	}

	w, err = domws.NewPersonal(id, userID, time.Now())
	if err != nil {
		return domws.Workspace{}, err
	}
	if err := s.repo.Create(ctx, &w); err != nil {
		return domws.Workspace{}, fmt.Errorf("create personal workspace: %w", err)
	}
	return w, nil
}

// Get returns a workspace the user may read.
func (s *Service) Get(ctx context.Context, userID, workspaceID string) (domws.Workspace, error) {
	w, err := s.repo.Get(ctx, workspaceID)
	if err != nil {
		return domws.Workspace{}, fmt.Errorf("get workspace: %w", err)
	}
	if !w.CanRead(userID) {
		return domws.Workspace{}, domain.ErrAccessDenied
	}
	return w, nil
}

// NoteCount returns the number of notes in a workspace the user may read.
func (s *Service) NoteCount(ctx context.Context, userID, workspaceID string) (int, error) {
	w, err := s.repo.Get(ctx, workspaceID)
	if err != nil {
		return 0, fmt.Errorf("get workspace: %w", err)
	}
	if !w.CanRead(userID) {
		return 0, domain.ErrAccessDenied
	}
	n, err := s.notes.CountByWorkspace(ctx, workspaceID)
	if err != nil {
		return 0, fmt.Errorf("count notes in %s: %w", workspaceID, err)
	}
	return n, nil
}

// MembershipStatus returns the user's relationship to a workspace. Any
// authenticated user may ask about their own status; the answer never leaks
// the roster.
func (s *Service) MembershipStatus(ctx context.Context, userID, workspaceID string) (domws.Status, error) {
	w, err := s.repo.Get(ctx, workspaceID)
	if err != nil {
		return "", fmt.Errorf("get workspace: %w", err)
	}
	return w.MembershipStatus(userID), nil
}

// Invite adds targetID to the workspace roster on behalf of userID. The
// invited user gets a best-effort push notification.
func (s *Service) Invite(ctx context.Context, userID, workspaceID, targetID string) error {
	w, err := s.repo.Get(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("get workspace: %w", err)
	}
	if err := w.CanInvite(userID, targetID); err != nil {
		return err
	}
	if err := s.repo.AddMember(ctx, workspaceID, targetID); err != nil {
		return fmt.Errorf("add member: %w", err)
	}

	s.notify(ctx, targetID, "Workspace invitation",
		fmt.Sprintf("You were added to %q", w.Name()),
		map[string]string{"workspace_id": workspaceID, "invited_by": userID},
	)
	return nil
}

// Ban moves targetID from members to banned. Bans are absorbing: a banned
// user cannot be re-invited and there is no unban operation.
func (s *Service) Ban(ctx context.Context, userID, workspaceID, targetID string) error {
	w, err := s.repo.Get(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("get workspace: %w", err)
	}
	if err := w.CanBan(userID, targetID); err != nil {
		return err
	}
	if err := s.repo.BanMember(ctx, workspaceID, targetID); err != nil {
		return fmt.Errorf("ban member: %w", err)
	}
	return nil
}

// Leave removes userID from the workspace roster.
func (s *Service) Leave(ctx context.Context, userID, workspaceID string) error {
	w, err := s.repo.Get(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("get workspace: %w", err)
	}
	if err := w.CanLeave(userID); err != nil {
		return err
	}
	if err := s.repo.RemoveMember(ctx, workspaceID, userID); err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	return nil
}

// Delete removes a workspace and everything in it. Notes go first, the
// workspace record last, so an interrupted delete is re-runnable.
func (s *Service) Delete(ctx context.Context, userID, workspaceID string) error {
	w, err := s.repo.Get(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("get workspace: %w", err)
	}
	if err := w.CanDelete(userID); err != nil {
		return err
	}

	if err := s.notes.DeleteByWorkspace(ctx, workspaceID); err != nil {
		return fmt.Errorf("cascade notes: %w", err)
	}
	if err := s.repo.Delete(ctx, workspaceID); err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}
	return nil
}

func (s *Service) notify(ctx context.Context, userID, title, body string, data map[string]string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, userID, title, body, data); err != nil {
		s.logger.Warn("Failed to send notification",
			zap.String("user_id", userID),
			zap.String("title", title),
			zap.Error(err),
		)
	}
}

func personalID(userID string) string {
	return "personal-" + userID
}
