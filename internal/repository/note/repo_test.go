package note

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/notedex/internal/db"
	"github.com/kailas-cloud/notedex/internal/domain"
	domnote "github.com/kailas-cloud/notedex/internal/domain/note"
)

// --- Put ---

func TestPut_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()
	n := testNote(t)

	ms.jsonSetFn = func(_ context.Context, key, path string, data []byte) error {
		if key != "notedex:note:note-1" {
			t.Errorf("unexpected key: %s", key)
		}
		if path != "$" {
			t.Errorf("unexpected path: %s", path)
		}
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if doc["workspace_id"] != "ws-1" {
			t.Errorf("expected workspace_id ws-1, got %v", doc["workspace_id"])
		}
		if doc["kind"] != "content" {
			t.Errorf("expected kind content, got %v", doc["kind"])
		}
		return nil
	}

	if err := repo.Put(ctx, &n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPut_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()
	n := testNote(t)

	ms.jsonSetFn = func(_ context.Context, _, _ string, _ []byte) error {
		return errors.New("OOM")
	}

	if err := repo.Put(ctx, &n); err == nil {
		t.Fatal("expected error on JSON.SET failure")
	}
}

// --- Get ---

func TestGet_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	doc := `[{"id":"note-1","workspace_id":"ws-1","author_id":"user-1","kind":"content",` +
		`"tags":["work"],"fields":[{"kind":"title","label":"title","content":"standup notes"}],` +
		`"vector":[0.1,0.2],"created_at":1700000000000,"updated_at":1700000000000}]`
	ms.jsonGetFn = func(_ context.Context, key string, _ ...string) ([]byte, error) {
		if key != "notedex:note:note-1" {
			t.Errorf("unexpected key: %s", key)
		}
		return []byte(doc), nil
	}

	n, err := repo.Get(ctx, "note-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.ID() != "note-1" {
		t.Fatalf("expected ID note-1, got %s", n.ID())
	}
	if n.Title() != "standup notes" {
		t.Fatalf("expected title 'standup notes', got %q", n.Title())
	}
	if len(n.Vector()) != 2 {
		t.Fatalf("expected 2-dim vector, got %d", len(n.Vector()))
	}
	if n.CreatedAt().UnixMilli() != 1700000000000 {
		t.Fatalf("unexpected created_at: %v", n.CreatedAt())
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.jsonGetFn = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return nil, db.ErrKeyNotFound
	}

	_, err := repo.Get(ctx, "nonexistent")
	if !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

// --- Delete ---

func TestDelete_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.existsFn = func(_ context.Context, key string) (bool, error) {
		return key == "notedex:note:note-1", nil
	}
	deleted := false
	ms.delFn = func(_ context.Context, _ string) error {
		deleted = true
		return nil
	}

	if err := repo.Delete(ctx, "note-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Fatal("expected DEL to be issued")
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.existsFn = func(_ context.Context, _ string) (bool, error) { return false, nil }

	err := repo.Delete(ctx, "note-1")
	if !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

// --- ListFiltered ---

func TestListFiltered_QueryAndOrder(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.searchListFn = func(_ context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		if q.IndexName != "notedex:note:idx" {
			t.Errorf("unexpected index: %s", q.IndexName)
		}
		if !strings.Contains(q.Query, "@workspace_id:{ws\\-1}") {
			t.Errorf("query missing workspace filter: %s", q.Query)
		}
		if !strings.Contains(q.Query, "@kind:{content}") {
			t.Errorf("query missing kind filter: %s", q.Query)
		}
		if !strings.Contains(q.Query, "@tags:{work|home}") {
			t.Errorf("query missing tag filter: %s", q.Query)
		}
		if q.SortBy != "created_at" || !q.SortDesc {
			t.Errorf("expected created_at DESC sort, got %s desc=%v", q.SortBy, q.SortDesc)
		}
		return &db.SearchResult{
			Total: 2,
			Entries: []db.SearchEntry{
				{Key: "notedex:note:n2", Fields: map[string]string{
					"$": `{"id":"n2","workspace_id":"ws-1","kind":"content","created_at":2000}`,
				}},
				{Key: "notedex:note:n1", Fields: map[string]string{
					"$": `{"id":"n1","workspace_id":"ws-1","kind":"content","created_at":1000}`,
				}},
			},
		}, nil
	}

	notes, err := repo.ListFiltered(ctx, "ws-1", domnote.KindContent, []string{"work", "home"}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	if notes[0].ID() != "n2" || notes[1].ID() != "n1" {
		t.Fatalf("expected newest-first order, got %s then %s", notes[0].ID(), notes[1].ID())
	}
}

func TestListFiltered_NoTags(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.searchListFn = func(_ context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		if strings.Contains(q.Query, "@tags") {
			t.Errorf("empty tag filter must not constrain the query: %s", q.Query)
		}
		return &db.SearchResult{}, nil
	}

	notes, err := repo.ListFiltered(ctx, "ws-1", domnote.KindChat, nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 0 {
		t.Fatalf("expected no notes, got %d", len(notes))
	}
}

func TestListFiltered_NoKind(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.searchListFn = func(_ context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		if strings.Contains(q.Query, "@kind") {
			t.Errorf("omitted kind must not constrain the query: %s", q.Query)
		}
		if q.Query != "@workspace_id:{ws\\-1}" {
			t.Errorf("expected workspace-only query, got: %s", q.Query)
		}
		return &db.SearchResult{}, nil
	}

	if _, err := repo.ListFiltered(ctx, "ws-1", "", nil, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// --- DeleteByWorkspace ---

func TestDeleteByWorkspace_Pages(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	calls := 0
	ms.searchListFn = func(_ context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		calls++
		if calls == 1 {
			return &db.SearchResult{
				Total: 2,
				Entries: []db.SearchEntry{
					{Key: "notedex:note:n1"},
					{Key: "notedex:note:n2"},
				},
			}, nil
		}
		return &db.SearchResult{}, nil
	}

	var deleted []string
	ms.delMultiFn = func(_ context.Context, keys []string) error {
		deleted = append(deleted, keys...)
		return nil
	}

	if err := repo.DeleteByWorkspace(ctx, "ws-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deleted) != 2 {
		t.Fatalf("expected 2 deleted keys, got %v", deleted)
	}
	if calls != 2 {
		t.Fatalf("expected 2 search pages, got %d", calls)
	}
}

func TestDeleteByWorkspace_Empty(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.searchListFn = func(_ context.Context, _ *db.ListQuery) (*db.SearchResult, error) {
		return &db.SearchResult{}, nil
	}
	ms.delMultiFn = func(_ context.Context, _ []string) error {
		t.Fatal("no delete expected for empty workspace")
		return nil
	}

	if err := repo.DeleteByWorkspace(ctx, "ws-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// --- CountByWorkspace ---

func TestCountByWorkspace(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.searchCountFn = func(_ context.Context, index, query string) (int, error) {
		if index != "notedex:note:idx" {
			t.Errorf("unexpected index: %s", index)
		}
		if query != "@workspace_id:{ws\\-1}" {
			t.Errorf("unexpected query: %s", query)
		}
		return 3, nil
	}

	n, err := repo.CountByWorkspace(ctx, "ws-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 notes, got %d", n)
	}
}

// --- EnsureIndex ---

func TestEnsureIndex_AlreadyExists(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.createIndexFn = func(_ context.Context, _ *db.IndexDefinition) error {
		return db.ErrIndexExists
	}

	if err := repo.EnsureIndex(ctx); err != nil {
		t.Fatalf("existing index must not be an error: %v", err)
	}
}

func TestEnsureIndex_Creates(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.createIndexFn = func(_ context.Context, def *db.IndexDefinition) error {
		if def.Name != "notedex:note:idx" {
			t.Errorf("unexpected index name: %s", def.Name)
		}
		return nil
	}

	if err := repo.EnsureIndex(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
