package workspace

import "github.com/kailas-cloud/notedex/internal/domain"

// Status is the relationship of a user to a workspace.
type Status string

const (
	// StatusOwner means the user owns the workspace. Permanent, assigned at creation.
	StatusOwner Status = "owner"
	// StatusMember means the user belongs to the roster.
	StatusMember Status = "member"
	// StatusBanned means the user was banned. Absorbing: no re-invite, no unban.
	StatusBanned Status = "banned"
	// StatusNotMember means no relationship.
	StatusNotMember Status = "not_member"
)

// MembershipStatus computes the user's status. Deterministic, side-effect free.
// Precedence is fixed: owner supersedes banned supersedes member.
func (w *Workspace) MembershipStatus(userID string) Status {
	switch {
	case userID == w.ownerID:
		return StatusOwner
	case w.IsBanned(userID):
		return StatusBanned
	case w.HasMember(userID):
		return StatusMember
	default:
		return StatusNotMember
	}
}

// CanRead reports whether userID may read notes in the workspace.
func (w *Workspace) CanRead(userID string) bool {
	s := w.MembershipStatus(userID)
	return s == StatusOwner || s == StatusMember
}

// CanPost reports whether userID may create notes in the workspace.
func (w *Workspace) CanPost(userID string) bool {
	return w.CanRead(userID)
}

// CanInvite validates an invite of targetID issued by userID. Any current
// member may invite. Violations return distinct sentinels so callers can
// render "already a member" vs "banned" differently.
func (w *Workspace) CanInvite(userID, targetID string) error {
	if !w.CanRead(userID) {
		return domain.ErrAccessDenied
	}
	if w.personal {
		return domain.ErrPersonalWorkspace
	}
	if w.IsBanned(targetID) {
		return domain.ErrBanned
	}
	if w.HasMember(targetID) {
		return domain.ErrAlreadyMember
	}
	return nil
}

// CanBan validates a ban of targetID issued by userID. Owner only.
func (w *Workspace) CanBan(userID, targetID string) error {
	if userID != w.ownerID {
		return domain.ErrAccessDenied
	}
	if w.personal {
		return domain.ErrPersonalWorkspace
	}
	if targetID == w.ownerID {
		return domain.ErrCannotBanOwner
	}
	return nil
}

// CanLeave validates userID leaving the workspace. Owners delete, not leave.
func (w *Workspace) CanLeave(userID string) error {
	if w.personal {
		return domain.ErrPersonalWorkspace
	}
	if userID == w.ownerID {
		return domain.ErrOwnerCannotLeave
	}
	if w.MembershipStatus(userID) != StatusMember {
		return domain.ErrNotAMember
	}
	return nil
}

// CanDelete validates userID deleting the whole workspace. Owner only.
func (w *Workspace) CanDelete(userID string) error {
	if userID != w.ownerID {
		return domain.ErrAccessDenied
	}
	if w.personal {
		return domain.ErrPersonalWorkspace
	}
	return nil
}
