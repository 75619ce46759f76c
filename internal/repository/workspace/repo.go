package workspace

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/notedex/internal/domain"
	domws "github.com/kailas-cloud/notedex/internal/domain/workspace"
)

// store is the consumer interface for workspaces (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	DelMulti(ctx context.Context, keys []string) error
	Exists(ctx context.Context, key string) (bool, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMove(ctx context.Context, src, dst, member string) (bool, error)
	SMembers(ctx context.Context, key string) ([]string, error)
}

// Repo implements usecase/workspace.Repository.
//
// A workspace is one hash (record fields) plus two Redis sets (members,
// banned). Every roster mutation is a single atomic set command, so
// concurrent invites and bans on the same workspace cannot lose updates.
type Repo struct {
	store store
}

// New creates a workspace repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create persists a new workspace and seeds the member set with the owner.
func (r *Repo) Create(ctx context.Context, w *domws.Workspace) error {
	key := wsKey(w.ID())
	if err := r.store.HSet(ctx, key, buildHashFields(w)); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	if err := r.store.SAdd(ctx, membersKey(w.ID()), w.OwnerID()); err != nil {
		return fmt.Errorf("seed members %s: %w", w.ID(), err)
	}
	return nil
}

// Get returns a workspace with its full roster snapshot.
func (r *Repo) Get(ctx context.Context, id string) (domws.Workspace, error) {
	fields, err := r.store.HGetAll(ctx, wsKey(id))
	if err != nil {
		return domws.Workspace{}, fmt.Errorf("hgetall %s: %w", id, err)
	}
	if len(fields) == 0 {
		return domws.Workspace{}, domain.ErrWorkspaceNotFound
	}

	members, err := r.store.SMembers(ctx, membersKey(id))
	if err != nil {
		return domws.Workspace{}, fmt.Errorf("smembers %s: %w", id, err)
	}
	banned, err := r.store.SMembers(ctx, bannedKey(id))
	if err != nil {
		return domws.Workspace{}, fmt.Errorf("smembers banned %s: %w", id, err)
	}

	return parseHashFields(id, fields, members, banned), nil
}

// AddMember adds userID to the member set (single atomic SADD).
func (r *Repo) AddMember(ctx context.Context, workspaceID, userID string) error {
	if err := r.store.SAdd(ctx, membersKey(workspaceID), userID); err != nil {
		return fmt.Errorf("add member %s to %s: %w", userID, workspaceID, err)
	}
	return nil
}

// RemoveMember removes userID from the member set (single atomic SREM).
func (r *Repo) RemoveMember(ctx context.Context, workspaceID, userID string) error {
	if err := r.store.SRem(ctx, membersKey(workspaceID), userID); err != nil {
		return fmt.Errorf("remove member %s from %s: %w", userID, workspaceID, err)
	}
	return nil
}

// BanMember moves userID from members to banned. SMOVE handles the common
// member case atomically; a target outside the roster is added to the ban
// list directly. Repeated bans are idempotent set adds.
func (r *Repo) BanMember(ctx context.Context, workspaceID, userID string) error {
	moved, err := r.store.SMove(ctx, membersKey(workspaceID), bannedKey(workspaceID), userID)
	if err != nil {
		return fmt.Errorf("ban member %s in %s: %w", userID, workspaceID, err)
	}
	if !moved {
		if err := r.store.SAdd(ctx, bannedKey(workspaceID), userID); err != nil {
			return fmt.Errorf("ban non-member %s in %s: %w", userID, workspaceID, err)
		}
	}
	return nil
}

// TouchActivity updates the latest-activity timestamp.
func (r *Repo) TouchActivity(ctx context.Context, workspaceID string, at time.Time) error {
	key := wsKey(workspaceID)
	fields := map[string]string{fieldLatestActivity: formatTime(at)}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("touch activity %s: %w", workspaceID, err)
	}
	return nil
}

// Delete removes the workspace record first and the roster sets last. A crash
// in between leaves orphaned roster keys behind a 404, never a readable
// workspace whose owner is missing from its member set.
func (r *Repo) Delete(ctx context.Context, id string) error {
	exists, err := r.store.Exists(ctx, wsKey(id))
	if err != nil {
		return fmt.Errorf("check exists %s: %w", id, err)
	}
	if !exists {
		return domain.ErrWorkspaceNotFound
	}

	if err := r.store.Del(ctx, wsKey(id)); err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	if err := r.store.DelMulti(ctx, []string{membersKey(id), bannedKey(id)}); err != nil {
		return fmt.Errorf("delete roster %s: %w", id, err)
	}
	return nil
}

func wsKey(id string) string {
	return domain.KeyPrefix + "ws:" + id
}

func membersKey(id string) string {
	return wsKey(id) + ":members"
}

func bannedKey(id string) string {
	return wsKey(id) + ":banned"
}
