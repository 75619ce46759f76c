package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/kailas-cloud/notedex/internal/domain"
	domnote "github.com/kailas-cloud/notedex/internal/domain/note"
	"github.com/kailas-cloud/notedex/internal/domain/vector"
)

// Result is one ranked note. Score is cosine similarity in [-1, 1] for
// semantic queries and 0 for structural-only queries.
type Result struct {
	Note  domnote.Note
	Score float64
}

// Request describes one retrieval call.
type Request struct {
	WorkspaceID string
	Kind        domnote.Kind
	Tags        []string
	Query       string
	Limit       int
}

// Service handles membership-gated note retrieval: a structural filter over
// workspace, kind, and tags, optionally reranked by semantic similarity.
type Service struct {
	repo       NoteRepository
	workspaces WorkspaceReader
	embed      Embedder

	defaultLimit  int
	maxLimit      int
	maxCandidates int
}

// New creates a search service.
func New(repo NoteRepository, workspaces WorkspaceReader, embed Embedder) *Service {
	return &Service{
		repo:          repo,
		workspaces:    workspaces,
		embed:         embed,
		defaultLimit:  20,
		maxLimit:      100,
		maxCandidates: 256,
	}
}

// Search runs a retrieval request for userID. An empty query keeps the
// structural recency order; a non-empty query is embedded and the candidates
// are reranked by cosine similarity. A failed query embedding fails the whole
// search: silently returning recency order for a semantic query would be a
// wrong answer, not a degraded one.
func (s *Service) Search(ctx context.Context, userID string, req *Request) ([]Result, error) {
	w, err := s.workspaces.Get(ctx, req.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	if !w.CanRead(userID) {
		return nil, domain.ErrAccessDenied
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	candidateLimit := limit
	if req.Query != "" {
		candidateLimit = s.maxCandidates
	}

	notes, err := s.repo.ListFiltered(ctx, req.WorkspaceID, req.Kind, req.Tags, candidateLimit)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	if req.Query == "" {
		results := make([]Result, len(notes))
		for i, n := range notes {
			results[i] = Result{Note: n}
		}
		return results, nil
	}

	embResult, err := s.embed.Embed(ctx, req.Query)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w: %w", domain.ErrEmbeddingUnavailable, err)
	}

	results := make([]Result, len(notes))
	for i, n := range notes {
		results[i] = Result{
			Note:  n,
			Score: vector.Cosine(embResult.Embedding, n.Vector()),
		}
	}

	// Stable keeps the recency order for equal scores, which also pushes all
	// vectorless notes (score -1) to the tail in a deterministic order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
