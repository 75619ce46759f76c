package chi

import (
	"fmt"
	"time"

	domnote "github.com/kailas-cloud/notedex/internal/domain/note"
	domws "github.com/kailas-cloud/notedex/internal/domain/workspace"
	searchuc "github.com/kailas-cloud/notedex/internal/usecase/search"
)

// errorCode is the machine-readable error discriminator in error responses.
type errorCode string

const (
	codeBadRequest           errorCode = "bad_request"
	codeUnauthorized         errorCode = "unauthorized"
	codeValidationFailed     errorCode = "validation_failed"
	codeWorkspaceNotFound    errorCode = "workspace_not_found"
	codeNoteNotFound         errorCode = "note_not_found"
	codeAccessDenied         errorCode = "access_denied"
	codeBanned               errorCode = "banned"
	codeAlreadyMember        errorCode = "already_member"
	codeNotAMember           errorCode = "not_a_member"
	codeOwnerCannotLeave     errorCode = "owner_cannot_leave"
	codeCannotBanOwner       errorCode = "cannot_ban_owner"
	codePersonalWorkspace    errorCode = "personal_workspace"
	codeEmbeddingUnavailable errorCode = "embedding_unavailable"
	codeInternalError        errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type createWorkspaceRequest struct {
	Name string `json:"name"`
}

type memberRequest struct {
	UserID string `json:"user_id"`
}

type workspaceResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	OwnerID          string    `json:"owner_id"`
	Personal         bool      `json:"personal"`
	Members          []string  `json:"members"`
	Banned           []string  `json:"banned"`
	NoteCount        int       `json:"note_count"`
	LatestActivityAt time.Time `json:"latest_activity_at"`
	CreatedAt        time.Time `json:"created_at"`
}

type membershipResponse struct {
	WorkspaceID string `json:"workspace_id"`
	Status      string `json:"status"`
}

type fieldDTO struct {
	Kind    string `json:"kind"`
	Label   string `json:"label,omitempty"`
	Content string `json:"content"`
}

type createNoteRequest struct {
	Kind   string     `json:"kind"`
	Tags   []string   `json:"tags,omitempty"`
	Fields []fieldDTO `json:"fields"`
}

type updateNoteRequest struct {
	Fields []fieldDTO `json:"fields"`
}

type copyNoteRequest struct {
	WorkspaceID string `json:"workspace_id"`
}

type noteResponse struct {
	ID          string     `json:"id"`
	WorkspaceID string     `json:"workspace_id"`
	AuthorID    string     `json:"author_id"`
	Kind        string     `json:"kind"`
	Tags        []string   `json:"tags"`
	Fields      []fieldDTO `json:"fields"`
	HasVector   bool       `json:"has_vector"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type searchRequest struct {
	Query string   `json:"query,omitempty"`
	Kind  string   `json:"kind,omitempty"`
	Tags  []string `json:"tags,omitempty"`
	Limit int      `json:"limit,omitempty"`
}

type searchResultItem struct {
	Note  noteResponse `json:"note"`
	Score float64      `json:"score"`
}

type searchResponse struct {
	Items []searchResultItem `json:"items"`
	Total int                `json:"total"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func workspaceToDTO(w *domws.Workspace, noteCount int) workspaceResponse {
	return workspaceResponse{
		ID:               w.ID(),
		Name:             w.Name(),
		OwnerID:          w.OwnerID(),
		Personal:         w.IsPersonal(),
		Members:          w.Members(),
		Banned:           w.BannedMembers(),
		NoteCount:        noteCount,
		LatestActivityAt: w.LatestActivity().UTC(),
		CreatedAt:        w.CreatedAt().UTC(),
	}
}

func noteToDTO(n *domnote.Note) noteResponse {
	fields := make([]fieldDTO, len(n.Fields()))
	for i, f := range n.Fields() {
		fields[i] = fieldDTO{
			Kind:    string(f.Kind()),
			Label:   f.Label(),
			Content: f.Content(),
		}
	}
	tags := n.Tags()
	if tags == nil {
		tags = []string{}
	}
	return noteResponse{
		ID:          n.ID(),
		WorkspaceID: n.WorkspaceID(),
		AuthorID:    n.AuthorID(),
		Kind:        string(n.Kind()),
		Tags:        tags,
		Fields:      fields,
		HasVector:   len(n.Vector()) > 0,
		CreatedAt:   n.CreatedAt().UTC(),
		UpdatedAt:   n.UpdatedAt().UTC(),
	}
}

func fieldsFromDTO(dtos []fieldDTO) ([]domnote.Field, error) {
	fields := make([]domnote.Field, len(dtos))
	for i, d := range dtos {
		kind, err := domnote.ParseFieldKind(d.Kind)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		fields[i] = domnote.NewField(kind, d.Label, d.Content)
	}
	return fields, nil
}

func searchResultsToDTO(results []searchuc.Result) searchResponse {
	items := make([]searchResultItem, len(results))
	for i := range results {
		items[i] = searchResultItem{
			Note:  noteToDTO(&results[i].Note),
			Score: results[i].Score,
		}
	}
	return searchResponse{Items: items, Total: len(items)}
}
