package note

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/notedex/internal/domain"
	domnote "github.com/kailas-cloud/notedex/internal/domain/note"
	domws "github.com/kailas-cloud/notedex/internal/domain/workspace"
)

// Service handles note CRUD with creation-time vectorization.
type Service struct {
	repo       Repository
	workspaces WorkspaceReader
	embedder   Embedder
	logger     *zap.Logger
}

// New creates a note service.
func New(repo Repository, workspaces WorkspaceReader, embedder Embedder, logger *zap.Logger) *Service {
	return &Service{
		repo:       repo,
		workspaces: workspaces,
		embedder:   embedder,
		logger:     logger,
	}
}

// Create makes a new note in a workspace the user may post to. The embedding
// is computed once here; a failed embedding degrades the note to an empty
// vector instead of failing the write.
func (s *Service) Create(
	ctx context.Context, userID, workspaceID string,
	kind domnote.Kind, tags []string, fields []domnote.Field,
) (domnote.Note, error) {
	w, err := s.workspaces.Get(ctx, workspaceID)
	if err != nil {
		return domnote.Note{}, fmt.Errorf("get workspace: %w", err)
	}
	if !w.CanPost(userID) {
		return domnote.Note{}, domain.ErrAccessDenied
	}

	now := time.Now()
	n, err := domnote.New(uuid.NewString(), workspaceID, userID, kind, tags, fields, now)
	if err != nil {
		return domnote.Note{}, err
	}

	s.vectorize(ctx, &n)

	if err := s.repo.Put(ctx, &n); err != nil {
		return domnote.Note{}, fmt.Errorf("store note: %w", err)
	}
	s.touch(ctx, workspaceID, now)

	return n, nil
}

// Get returns a note the user may read.
func (s *Service) Get(ctx context.Context, userID, noteID string) (domnote.Note, error) {
	n, err := s.repo.Get(ctx, noteID)
	if err != nil {
		return domnote.Note{}, fmt.Errorf("get note: %w", err)
	}
	if _, err := s.readableWorkspace(ctx, userID, n.WorkspaceID()); err != nil {
		return domnote.Note{}, err
	}
	return n, nil
}

// Update replaces a note's fields. Author only. The vector keeps its
// creation-time value; edited notes rank by their original content.
func (s *Service) Update(
	ctx context.Context, userID, noteID string, fields []domnote.Field,
) (domnote.Note, error) {
	n, err := s.repo.Get(ctx, noteID)
	if err != nil {
		return domnote.Note{}, fmt.Errorf("get note: %w", err)
	}
	if n.AuthorID() != userID {
		return domnote.Note{}, domain.ErrAccessDenied
	}

	now := time.Now()
	updated, err := n.WithFields(fields, now)
	if err != nil {
		return domnote.Note{}, err
	}
	if err := s.repo.Put(ctx, &updated); err != nil {
		return domnote.Note{}, fmt.Errorf("store note: %w", err)
	}
	s.touch(ctx, n.WorkspaceID(), now)

	return updated, nil
}

// Delete removes a note. Author only.
func (s *Service) Delete(ctx context.Context, userID, noteID string) error {
	n, err := s.repo.Get(ctx, noteID)
	if err != nil {
		return fmt.Errorf("get note: %w", err)
	}
	if n.AuthorID() != userID {
		return domain.ErrAccessDenied
	}
	if err := s.repo.Delete(ctx, noteID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

// Copy duplicates a note into another workspace. The user must be able to
// read the source and post to the target. The copy keeps the original vector,
// so it needs no embedding call and stays searchable even if the provider is
// down.
func (s *Service) Copy(
	ctx context.Context, userID, noteID, targetWorkspaceID string,
) (domnote.Note, error) {
	n, err := s.repo.Get(ctx, noteID)
	if err != nil {
		return domnote.Note{}, fmt.Errorf("get note: %w", err)
	}
	if _, err := s.readableWorkspace(ctx, userID, n.WorkspaceID()); err != nil {
		return domnote.Note{}, err
	}

	target, err := s.workspaces.Get(ctx, targetWorkspaceID)
	if err != nil {
		return domnote.Note{}, fmt.Errorf("get target workspace: %w", err)
	}
	if !target.CanPost(userID) {
		return domnote.Note{}, domain.ErrAccessDenied
	}

	now := time.Now()
	clone := n.CloneInto(uuid.NewString(), targetWorkspaceID, userID, now)
	if err := s.repo.Put(ctx, &clone); err != nil {
		return domnote.Note{}, fmt.Errorf("store copied note: %w", err)
	}
	s.touch(ctx, targetWorkspaceID, now)

	return clone, nil
}

func (s *Service) readableWorkspace(
	ctx context.Context, userID, workspaceID string,
) (domws.Workspace, error) {
	w, err := s.workspaces.Get(ctx, workspaceID)
	if err != nil {
		return domws.Workspace{}, fmt.Errorf("get workspace: %w", err)
	}
	if !w.CanRead(userID) {
		return domws.Workspace{}, domain.ErrAccessDenied
	}
	return w, nil
}

// vectorize computes the note vector in place. Best effort.
func (s *Service) vectorize(ctx context.Context, n *domnote.Note) {
	text := n.EmbeddingText()
	if text == "" {
		return
	}
	result, err := s.embedder.Embed(ctx, text)
	if err != nil {
		s.logger.Warn("Failed to vectorize note, storing without vector",
			zap.String("note_id", n.ID()),
			zap.Error(err),
		)
		return
	}
	n.SetVector(result.Embedding)
}

// touch records note activity on the workspace. Best effort.
func (s *Service) touch(ctx context.Context, workspaceID string, at time.Time) {
	if err := s.workspaces.TouchActivity(ctx, workspaceID, at); err != nil {
		s.logger.Warn("Failed to touch workspace activity",
			zap.String("workspace_id", workspaceID),
			zap.Error(err),
		)
	}
}
