package notedex

import (
	"context"
	"fmt"

	domnote "github.com/kailas-cloud/notedex/internal/domain/note"
	searchuc "github.com/kailas-cloud/notedex/internal/usecase/search"
)

// SearchService runs membership-gated retrieval over a workspace's notes.
type SearchService struct {
	svc searchUseCase
}

// Search lists notes matching the structural filter, reranked by semantic
// similarity when q.Text is non-empty.
func (s *SearchService) Search(
	ctx context.Context, userID, workspaceID string, q Query,
) ([]SearchHit, error) {
	var kind domnote.Kind
	if q.Kind != "" {
		parsed, err := domnote.ParseKind(q.Kind)
		if err != nil {
			return nil, fmt.Errorf("search: %w", err)
		}
		kind = parsed
	}

	results, err := s.svc.Search(ctx, userID, &searchuc.Request{
		WorkspaceID: workspaceID,
		Kind:        kind,
		Tags:        q.Tags,
		Query:       q.Text,
		Limit:       q.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	hits := make([]SearchHit, len(results))
	for i := range results {
		hits[i] = SearchHit{
			Note:  fromInternalNote(&results[i].Note),
			Score: results[i].Score,
		}
	}
	return hits, nil
}
