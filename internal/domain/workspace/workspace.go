package workspace

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/notedex/internal/domain"
)

// Workspace is the workspace aggregate: a note container plus its membership
// roster. Member and banned sets are snapshots of the store-side Redis sets;
// all mutation goes through the repository as single atomic set operations.
type Workspace struct {
	id             string
	name           string
	ownerID        string
	members        map[string]struct{}
	banned         map[string]struct{}
	personal       bool
	latestActivity time.Time
	createdAt      time.Time
}

// New validates and creates a shared workspace owned by ownerID.
// The owner is always the first member.
func New(id, name, ownerID string, now time.Time) (Workspace, error) {
	if id == "" {
		return Workspace{}, fmt.Errorf("workspace ID is required: %w", domain.ErrInvalidWorkspace)
	}
	if ownerID == "" {
		return Workspace{}, fmt.Errorf("owner ID is required: %w", domain.ErrInvalidWorkspace)
	}
	if name == "" {
		return Workspace{}, fmt.Errorf("workspace name is required: %w", domain.ErrInvalidWorkspace)
	}
	return Workspace{
		id:             id,
		name:           name,
		ownerID:        ownerID,
		members:        map[string]struct{}{ownerID: {}},
		banned:         map[string]struct{}{},
		latestActivity: now,
		createdAt:      now,
	}, nil
}

// NewPersonal creates the implicit per-user workspace. Its roster is frozen
// to {owner} forever: no invite, leave, ban, or delete applies to it.
func NewPersonal(id, ownerID string, now time.Time) (Workspace, error) {
	w, err := New(id, "personal", ownerID, now)
	if err != nil {
		return Workspace{}, err
	}
	w.personal = true
	return w, nil
}

// Reconstruct creates a Workspace without validation (storage hydration).
func Reconstruct(
	id, name, ownerID string, members, banned []string,
	personal bool, latestActivity, createdAt time.Time,
) Workspace {
	ms := make(map[string]struct{}, len(members))
	for _, m := range members {
		ms[m] = struct{}{}
	}
	bs := make(map[string]struct{}, len(banned))
	for _, b := range banned {
		bs[b] = struct{}{}
	}
	return Workspace{
		id:             id,
		name:           name,
		ownerID:        ownerID,
		members:        ms,
		banned:         bs,
		personal:       personal,
		latestActivity: latestActivity,
		createdAt:      createdAt,
	}
}

// ID returns the workspace identifier.
func (w *Workspace) ID() string { return w.id }

// Name returns the workspace display name.
func (w *Workspace) Name() string { return w.name }

// OwnerID returns the owning user. Exactly one owner, immutable after creation.
func (w *Workspace) OwnerID() string { return w.ownerID }

// IsPersonal reports whether this is a per-user personal workspace.
func (w *Workspace) IsPersonal() bool { return w.personal }

// LatestActivity returns the last note-activity timestamp.
func (w *Workspace) LatestActivity() time.Time { return w.latestActivity }

// CreatedAt returns the creation timestamp.
func (w *Workspace) CreatedAt() time.Time { return w.createdAt }

// Members returns the member user IDs (unordered).
func (w *Workspace) Members() []string {
	out := make([]string, 0, len(w.members))
	for m := range w.members {
		out = append(out, m)
	}
	return out
}

// BannedMembers returns the banned user IDs (unordered).
func (w *Workspace) BannedMembers() []string {
	out := make([]string, 0, len(w.banned))
	for b := range w.banned {
		out = append(out, b)
	}
	return out
}

// HasMember reports membership, owner included.
func (w *Workspace) HasMember(userID string) bool {
	_, ok := w.members[userID]
	return ok
}

// IsBanned reports whether userID is on the ban list.
func (w *Workspace) IsBanned(userID string) bool {
	_, ok := w.banned[userID]
	return ok
}
