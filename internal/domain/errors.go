package domain

import "errors"

var (
	// ErrWorkspaceNotFound signals a missing workspace.
	ErrWorkspaceNotFound = errors.New("workspace not found")
	// ErrNoteNotFound signals a missing note.
	ErrNoteNotFound = errors.New("note not found")
	// ErrAccessDenied signals the caller is not allowed to perform the action.
	ErrAccessDenied = errors.New("access denied")

	// ErrAlreadyMember signals an invite target that already belongs to the workspace.
	ErrAlreadyMember = errors.New("already a member")
	// ErrBanned signals an invite target that was banned. Bans are permanent.
	ErrBanned = errors.New("user is banned")
	// ErrNotAMember signals an operation on a user outside the workspace roster.
	ErrNotAMember = errors.New("not a member")
	// ErrOwnerCannotLeave signals the owner tried to leave instead of deleting.
	ErrOwnerCannotLeave = errors.New("owner cannot leave workspace")
	// ErrPersonalWorkspace signals a membership mutation on a personal workspace.
	ErrPersonalWorkspace = errors.New("personal workspace cannot be mutated")
	// ErrCannotBanOwner signals a ban attempt against the workspace owner.
	ErrCannotBanOwner = errors.New("cannot ban workspace owner")

	// ErrEmbeddingUnavailable signals a query-time embedding provider failure.
	// Search fails outright instead of silently falling back to recency order.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")
	// ErrInvalidNote signals a structurally invalid note.
	ErrInvalidNote = errors.New("invalid note")
	// ErrInvalidWorkspace signals a structurally invalid workspace.
	ErrInvalidWorkspace = errors.New("invalid workspace")
)
