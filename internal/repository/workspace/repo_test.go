package workspace

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/notedex/internal/domain"
)

// --- Create ---

func TestCreate_SeedsOwnerMembership(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()
	w := testWorkspace(t)

	ms.hsetFn = func(_ context.Context, key string, fields map[string]string) error {
		if key != "notedex:ws:ws-1" {
			t.Errorf("unexpected key: %s", key)
		}
		if fields[fieldOwnerID] != "owner-1" {
			t.Errorf("expected owner_id owner-1, got %s", fields[fieldOwnerID])
		}
		if fields[fieldPersonal] != "0" {
			t.Errorf("expected personal=0, got %s", fields[fieldPersonal])
		}
		return nil
	}
	ms.saddFn = func(_ context.Context, key string, members ...string) error {
		if key != "notedex:ws:ws-1:members" {
			t.Errorf("unexpected members key: %s", key)
		}
		if len(members) != 1 || members[0] != "owner-1" {
			t.Errorf("expected owner seeded, got %v", members)
		}
		return nil
	}

	if err := repo.Create(ctx, &w); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// --- Get ---

func TestGet_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.hgetAllFn = func(_ context.Context, key string) (map[string]string, error) {
		if key != "notedex:ws:ws-1" {
			t.Errorf("unexpected key: %s", key)
		}
		return map[string]string{
			fieldName:           "team",
			fieldOwnerID:        "owner-1",
			fieldPersonal:       "0",
			fieldCreatedAt:      "1700000000000",
			fieldLatestActivity: "1700000001000",
		}, nil
	}
	ms.smembersFn = func(_ context.Context, key string) ([]string, error) {
		switch key {
		case "notedex:ws:ws-1:members":
			return []string{"owner-1", "member-1"}, nil
		case "notedex:ws:ws-1:banned":
			return []string{"banned-1"}, nil
		default:
			t.Errorf("unexpected roster key: %s", key)
			return nil, nil
		}
	}

	w, err := repo.Get(ctx, "ws-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Name() != "team" || w.OwnerID() != "owner-1" {
		t.Fatalf("unexpected workspace: %s owned by %s", w.Name(), w.OwnerID())
	}
	if !w.HasMember("member-1") {
		t.Fatal("expected member-1 in roster")
	}
	if !w.IsBanned("banned-1") {
		t.Fatal("expected banned-1 in ban list")
	}
	if w.LatestActivity().UnixMilli() != 1700000001000 {
		t.Fatalf("unexpected latest activity: %v", w.LatestActivity())
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.hgetAllFn = func(_ context.Context, _ string) (map[string]string, error) {
		return map[string]string{}, nil
	}

	_, err := repo.Get(ctx, "missing")
	if !errors.Is(err, domain.ErrWorkspaceNotFound) {
		t.Fatalf("expected ErrWorkspaceNotFound, got %v", err)
	}
}

// --- BanMember ---

func TestBanMember_MovesMember(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.smoveFn = func(_ context.Context, src, dst, member string) (bool, error) {
		if src != "notedex:ws:ws-1:members" || dst != "notedex:ws:ws-1:banned" {
			t.Errorf("unexpected SMOVE keys: %s -> %s", src, dst)
		}
		if member != "user-2" {
			t.Errorf("unexpected member: %s", member)
		}
		return true, nil
	}
	ms.saddFn = func(_ context.Context, _ string, _ ...string) error {
		t.Fatal("no SADD expected when SMOVE succeeds")
		return nil
	}

	if err := repo.BanMember(ctx, "ws-1", "user-2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBanMember_NonMemberAddedToBanList(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.smoveFn = func(_ context.Context, _, _, _ string) (bool, error) {
		return false, nil
	}
	added := false
	ms.saddFn = func(_ context.Context, key string, members ...string) error {
		if key != "notedex:ws:ws-1:banned" {
			t.Errorf("unexpected SADD key: %s", key)
		}
		added = true
		return nil
	}

	if err := repo.BanMember(ctx, "ws-1", "stranger"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !added {
		t.Fatal("expected non-member to be added to ban list")
	}
}

// --- TouchActivity ---

func TestTouchActivity(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()
	at := time.UnixMilli(1700000002000)

	ms.hsetFn = func(_ context.Context, key string, fields map[string]string) error {
		if key != "notedex:ws:ws-1" {
			t.Errorf("unexpected key: %s", key)
		}
		if fields[fieldLatestActivity] != "1700000002000" {
			t.Errorf("unexpected latest_activity: %s", fields[fieldLatestActivity])
		}
		if len(fields) != 1 {
			t.Errorf("touch must update only latest_activity, got %v", fields)
		}
		return nil
	}

	if err := repo.TouchActivity(ctx, "ws-1", at); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// --- Delete ---

func TestDelete_RecordRemovedFirst(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.existsFn = func(_ context.Context, _ string) (bool, error) { return true, nil }

	// Record before rosters: a crash in between must leave a 404, never a
	// workspace hydrated with an empty member set.
	var order []string
	ms.delFn = func(_ context.Context, key string) error {
		order = append(order, "record")
		if key != "notedex:ws:ws-1" {
			t.Errorf("unexpected record key: %s", key)
		}
		return nil
	}
	ms.delMultiFn = func(_ context.Context, keys []string) error {
		order = append(order, "roster")
		if len(keys) != 2 {
			t.Errorf("expected both roster sets, got %v", keys)
		}
		return nil
	}

	if err := repo.Delete(ctx, "ws-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != "record" || order[1] != "roster" {
		t.Fatalf("expected record before roster, got %v", order)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.existsFn = func(_ context.Context, _ string) (bool, error) { return false, nil }

	err := repo.Delete(ctx, "ws-1")
	if !errors.Is(err, domain.ErrWorkspaceNotFound) {
		t.Fatalf("expected ErrWorkspaceNotFound, got %v", err)
	}
}
