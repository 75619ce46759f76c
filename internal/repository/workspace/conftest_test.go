package workspace

import (
	"context"
	"testing"
	"time"

	domws "github.com/kailas-cloud/notedex/internal/domain/workspace"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn     func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn  func(ctx context.Context, key string) (map[string]string, error)
	delFn      func(ctx context.Context, key string) error
	delMultiFn func(ctx context.Context, keys []string) error
	existsFn   func(ctx context.Context, key string) (bool, error)
	saddFn     func(ctx context.Context, key string, members ...string) error
	sremFn     func(ctx context.Context, key string, members ...string) error
	smoveFn    func(ctx context.Context, src, dst, member string) (bool, error)
	smembersFn func(ctx context.Context, key string) ([]string, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) DelMulti(ctx context.Context, keys []string) error {
	if m.delMultiFn != nil {
		return m.delMultiFn(ctx, keys)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) SAdd(ctx context.Context, key string, members ...string) error {
	if m.saddFn != nil {
		return m.saddFn(ctx, key, members...)
	}
	return nil
}

func (m *mockStore) SRem(ctx context.Context, key string, members ...string) error {
	if m.sremFn != nil {
		return m.sremFn(ctx, key, members...)
	}
	return nil
}

func (m *mockStore) SMove(ctx context.Context, src, dst, member string) (bool, error) {
	if m.smoveFn != nil {
		return m.smoveFn(ctx, src, dst, member)
	}
	return false, nil
}

func (m *mockStore) SMembers(ctx context.Context, key string) ([]string, error) {
	if m.smembersFn != nil {
		return m.smembersFn(ctx, key)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms)
	return repo, ms
}

func testWorkspace(t *testing.T) domws.Workspace {
	t.Helper()
	at := time.UnixMilli(1700000000000)
	return domws.Reconstruct(
		"ws-1", "team", "owner-1",
		[]string{"owner-1", "member-1"}, []string{"banned-1"},
		false, at, at,
	)
}
