package notedex

import "github.com/kailas-cloud/notedex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrWorkspaceNotFound    = domain.ErrWorkspaceNotFound
	ErrNoteNotFound         = domain.ErrNoteNotFound
	ErrAccessDenied         = domain.ErrAccessDenied
	ErrAlreadyMember        = domain.ErrAlreadyMember
	ErrBanned               = domain.ErrBanned
	ErrNotAMember           = domain.ErrNotAMember
	ErrOwnerCannotLeave     = domain.ErrOwnerCannotLeave
	ErrPersonalWorkspace    = domain.ErrPersonalWorkspace
	ErrCannotBanOwner       = domain.ErrCannotBanOwner
	ErrEmbeddingUnavailable = domain.ErrEmbeddingUnavailable
	ErrInvalidNote          = domain.ErrInvalidNote
	ErrInvalidWorkspace     = domain.ErrInvalidWorkspace
)
