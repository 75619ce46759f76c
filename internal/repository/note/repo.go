package note

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/notedex/internal/db"
	"github.com/kailas-cloud/notedex/internal/domain"
	domnote "github.com/kailas-cloud/notedex/internal/domain/note"
)

// cascadePageSize bounds each delete-by-workspace page.
const cascadePageSize = 256

// store is the consumer interface for notes (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	DelMulti(ctx context.Context, keys []string) error
	Exists(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// Repo implements the note storage contracts of the note and search services.
// Notes are JSON documents under one FT index; structural filtering and the
// created_at DESC ordering happen server-side in FT.SEARCH.
type Repo struct {
	store store
}

// New creates a note repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// EnsureIndex creates the note FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def := IndexDefinition()
	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create note index: %w", err)
	}
	return nil
}

// Put stores a note document.
func (r *Repo) Put(ctx context.Context, n *domnote.Note) error {
	data, err := json.Marshal(buildJSONDoc(n))
	if err != nil {
		return fmt.Errorf("marshal note: %w", err)
	}
	key := noteKey(n.ID())
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}

// Get returns a note by ID.
func (r *Repo) Get(ctx context.Context, id string) (domnote.Note, error) {
	raw, err := r.store.JSONGet(ctx, noteKey(id), "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domnote.Note{}, domain.ErrNoteNotFound
		}
		return domnote.Note{}, fmt.Errorf("json.get %s: %w", id, err)
	}
	return parseJSONGetResult(raw)
}

// Delete removes a note.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := noteKey(id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrNoteNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// ListFiltered returns up to limit notes matching workspace, kind, and tag
// overlap, ordered by created_at descending.
func (r *Repo) ListFiltered(
	ctx context.Context, workspaceID string, kind domnote.Kind, tags []string, limit int,
) ([]domnote.Note, error) {
	if limit <= 0 {
		limit = cascadePageSize
	}

	result, err := r.store.SearchList(ctx, &db.ListQuery{
		IndexName:    indexName(),
		Query:        buildFilterQuery(workspaceID, kind, tags),
		SortBy:       "created_at",
		SortDesc:     true,
		Offset:       0,
		Limit:        limit,
		ReturnFields: []string{"$"},
	})
	if err != nil {
		return nil, fmt.Errorf("search notes in %s: %w", workspaceID, err)
	}
	if result == nil || result.Total == 0 {
		return nil, nil
	}

	notes := make([]domnote.Note, 0, len(result.Entries))
	for _, entry := range result.Entries {
		jsonStr := entry.Fields["$"]
		if jsonStr == "" {
			continue
		}
		var doc noteDoc
		if err := json.Unmarshal([]byte(jsonStr), &doc); err != nil {
			continue
		}
		notes = append(notes, doc.toDomain())
	}
	return notes, nil
}

// CountByWorkspace returns the number of notes in a workspace.
func (r *Repo) CountByWorkspace(ctx context.Context, workspaceID string) (int, error) {
	n, err := r.store.SearchCount(ctx, indexName(), workspaceQuery(workspaceID))
	if err != nil {
		return 0, fmt.Errorf("count notes in %s: %w", workspaceID, err)
	}
	return n, nil
}

// DeleteByWorkspace removes every note of a workspace, page by page. Callers
// delete the workspace record only after this returns, so an interrupted
// cascade leaves orphaned notes rather than a dangling workspace reference.
func (r *Repo) DeleteByWorkspace(ctx context.Context, workspaceID string) error {
	for {
		result, err := r.store.SearchList(ctx, &db.ListQuery{
			IndexName:    indexName(),
			Query:        workspaceQuery(workspaceID),
			Offset:       0,
			Limit:        cascadePageSize,
			ReturnFields: []string{"$.id"},
		})
		if err != nil {
			return fmt.Errorf("list notes for cascade %s: %w", workspaceID, err)
		}
		if result == nil || len(result.Entries) == 0 {
			return nil
		}

		keys := make([]string, 0, len(result.Entries))
		for _, entry := range result.Entries {
			keys = append(keys, entry.Key)
		}
		if err := r.store.DelMulti(ctx, keys); err != nil {
			return fmt.Errorf("cascade delete %s: %w", workspaceID, err)
		}
	}
}

func noteKey(id string) string {
	return domain.KeyPrefix + "note:" + id
}

func indexName() string {
	return domain.KeyPrefix + "note:idx"
}

// IndexDefinition describes the note FT index: structural filter fields plus
// the created_at sort key.
func IndexDefinition() *db.IndexDefinition {
	return db.NewIndex(indexName()).
		OnJSON().
		Prefix(domain.KeyPrefix + "note:").
		Tag("$.workspace_id", "workspace_id").
		Tag("$.author_id", "author_id").
		Tag("$.kind", "kind").
		Tag("$.tags[*]", "tags").
		NumericSortable("$.created_at", "created_at").
		MustBuild()
}

func workspaceQuery(workspaceID string) string {
	return "@workspace_id:{" + escapeTag(workspaceID) + "}"
}

// buildFilterQuery translates the structural filter into an FT.SEARCH query:
// workspace AND kind AND (tag1 OR tag2 OR ...). Kind is optional; an empty
// kind must not emit a clause, RediSearch rejects an empty tag group.
func buildFilterQuery(workspaceID string, kind domnote.Kind, tags []string) string {
	var parts []string
	parts = append(parts, workspaceQuery(workspaceID))
	if kind != "" {
		parts = append(parts, "@kind:{"+escapeTag(string(kind))+"}")
	}

	if len(tags) > 0 {
		escaped := make([]string, 0, len(tags))
		for _, t := range tags {
			if t == "" {
				continue
			}
			escaped = append(escaped, escapeTag(t))
		}
		if len(escaped) > 0 {
			parts = append(parts, "@tags:{"+strings.Join(escaped, "|")+"}")
		}
	}

	return strings.Join(parts, " ")
}

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	" ", "\\ ",
)

func escapeTag(s string) string {
	return tagEscaper.Replace(s)
}
