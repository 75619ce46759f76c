package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/notedex/internal/domain"
	domnote "github.com/kailas-cloud/notedex/internal/domain/note"
	"github.com/kailas-cloud/notedex/internal/metrics"
	healthuc "github.com/kailas-cloud/notedex/internal/usecase/health"
	noteuc "github.com/kailas-cloud/notedex/internal/usecase/note"
	searchuc "github.com/kailas-cloud/notedex/internal/usecase/search"
	workspaceuc "github.com/kailas-cloud/notedex/internal/usecase/workspace"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server is the HTTP API surface over the workspace, note, and search usecases.
type Server struct {
	workspaces    *workspaceuc.Service
	notes         *noteuc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	workspaces *workspaceuc.Service,
	notes *noteuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		workspaces: workspaces,
		notes:      notes,
		search:     search,
		health:     health,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrWorkspaceNotFound, http.StatusNotFound, codeWorkspaceNotFound),
		sentinelHandler(domain.ErrNoteNotFound, http.StatusNotFound, codeNoteNotFound),
		sentinelHandler(domain.ErrAccessDenied, http.StatusForbidden, codeAccessDenied),
		sentinelHandler(domain.ErrBanned, http.StatusForbidden, codeBanned),
		sentinelHandler(domain.ErrAlreadyMember, http.StatusConflict, codeAlreadyMember),
		sentinelHandler(domain.ErrNotAMember, http.StatusBadRequest, codeNotAMember),
		sentinelHandler(domain.ErrOwnerCannotLeave, http.StatusBadRequest, codeOwnerCannotLeave),
		sentinelHandler(domain.ErrCannotBanOwner, http.StatusBadRequest, codeCannotBanOwner),
		sentinelHandler(domain.ErrPersonalWorkspace, http.StatusBadRequest, codePersonalWorkspace),
		sentinelHandler(domain.ErrInvalidWorkspace, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidNote, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrEmbeddingUnavailable, http.StatusBadGateway, codeEmbeddingUnavailable),
	}
	return s
}

// Routes registers all API routes on a fresh chi router. Middleware (auth,
// metrics, logging, recovery) is wired by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/workspaces", func(r chi.Router) {
			r.Post("/", s.CreateWorkspace)
			r.Get("/personal", s.GetPersonalWorkspace)
			r.Route("/{workspaceID}", func(r chi.Router) {
				r.Get("/", s.GetWorkspace)
				r.Delete("/", s.DeleteWorkspace)
				r.Get("/membership", s.GetMembership)
				r.Post("/invite", s.InviteMember)
				r.Post("/ban", s.BanMember)
				r.Post("/leave", s.LeaveWorkspace)
				r.Post("/search", s.SearchNotes)
				r.Post("/notes", s.CreateNote)
			})
		})
		r.Route("/notes/{noteID}", func(r chi.Router) {
			r.Get("/", s.GetNote)
			r.Put("/", s.UpdateNote)
			r.Delete("/", s.DeleteNote)
			r.Post("/copy", s.CopyNote)
		})
	})

	return r
}

// CreateWorkspace handles POST /v1/workspaces.
func (s *Server) CreateWorkspace(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req createWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ws, err := s.workspaces.Create(r.Context(), userID, req.Name)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, workspaceToDTO(&ws, 0))
}

// GetPersonalWorkspace handles GET /v1/workspaces/personal.
func (s *Server) GetPersonalWorkspace(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	ws, err := s.workspaces.EnsurePersonal(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	count, err := s.workspaces.NoteCount(r.Context(), userID, ws.ID())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, workspaceToDTO(&ws, count))
}

// GetWorkspace handles GET /v1/workspaces/{workspaceID}.
func (s *Server) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	ws, err := s.workspaces.Get(r.Context(), userID, chi.URLParam(r, "workspaceID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	count, err := s.workspaces.NoteCount(r.Context(), userID, ws.ID())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, workspaceToDTO(&ws, count))
}

// DeleteWorkspace handles DELETE /v1/workspaces/{workspaceID}.
func (s *Server) DeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	if err := s.workspaces.Delete(r.Context(), userID, chi.URLParam(r, "workspaceID")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetMembership handles GET /v1/workspaces/{workspaceID}/membership.
func (s *Server) GetMembership(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	workspaceID := chi.URLParam(r, "workspaceID")
	status, err := s.workspaces.MembershipStatus(r.Context(), userID, workspaceID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, membershipResponse{
		WorkspaceID: workspaceID,
		Status:      string(status),
	})
}

// InviteMember handles POST /v1/workspaces/{workspaceID}/invite.
func (s *Server) InviteMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "user_id is required")
		return
	}

	if err := s.workspaces.Invite(r.Context(), userID, chi.URLParam(r, "workspaceID"), req.UserID); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// BanMember handles POST /v1/workspaces/{workspaceID}/ban.
func (s *Server) BanMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "user_id is required")
		return
	}

	if err := s.workspaces.Ban(r.Context(), userID, chi.URLParam(r, "workspaceID"), req.UserID); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// LeaveWorkspace handles POST /v1/workspaces/{workspaceID}/leave.
func (s *Server) LeaveWorkspace(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	if err := s.workspaces.Leave(r.Context(), userID, chi.URLParam(r, "workspaceID")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateNote handles POST /v1/workspaces/{workspaceID}/notes.
func (s *Server) CreateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	kind, err := domnote.ParseKind(req.Kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}
	fields, err := fieldsFromDTO(req.Fields)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	n, err := s.notes.Create(r.Context(), userID, chi.URLParam(r, "workspaceID"), kind, req.Tags, fields)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, noteToDTO(&n))
}

// GetNote handles GET /v1/notes/{noteID}.
func (s *Server) GetNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	n, err := s.notes.Get(r.Context(), userID, chi.URLParam(r, "noteID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, noteToDTO(&n))
}

// UpdateNote handles PUT /v1/notes/{noteID}.
func (s *Server) UpdateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	fields, err := fieldsFromDTO(req.Fields)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	n, err := s.notes.Update(r.Context(), userID, chi.URLParam(r, "noteID"), fields)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, noteToDTO(&n))
}

// DeleteNote handles DELETE /v1/notes/{noteID}.
func (s *Server) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	if err := s.notes.Delete(r.Context(), userID, chi.URLParam(r, "noteID")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CopyNote handles POST /v1/notes/{noteID}/copy.
func (s *Server) CopyNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req copyNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.WorkspaceID == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "workspace_id is required")
		return
	}

	n, err := s.notes.Copy(r.Context(), userID, chi.URLParam(r, "noteID"), req.WorkspaceID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, noteToDTO(&n))
}

// SearchNotes handles POST /v1/workspaces/{workspaceID}/search.
func (s *Server) SearchNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var kind domnote.Kind
	if req.Kind != "" {
		parsed, err := domnote.ParseKind(req.Kind)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
			return
		}
		kind = parsed
	}

	mode := "structural"
	if req.Query != "" {
		mode = "semantic"
	}

	results, err := s.search.Search(r.Context(), userID, &searchuc.Request{
		WorkspaceID: chi.URLParam(r, "workspaceID"),
		Kind:        kind,
		Tags:        req.Tags,
		Query:       req.Query,
		Limit:       req.Limit,
	})
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(mode, "error").Inc()
		s.handleDomainError(w, err)
		return
	}

	metrics.SearchRequestsTotal.WithLabelValues(mode, "ok").Inc()
	writeJSON(w, http.StatusOK, searchResultsToDTO(results))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// requireUser extracts the authenticated user from the request context.
// The auth middleware guarantees it for /v1 routes; a miss means the route
// was mounted without auth and is answered with 401.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required")
		return "", false
	}
	return userID, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrWorkspaceNotFound,
		domain.ErrNoteNotFound,
		domain.ErrAccessDenied,
		domain.ErrBanned,
		domain.ErrAlreadyMember,
		domain.ErrNotAMember,
		domain.ErrOwnerCannotLeave,
		domain.ErrCannotBanOwner,
		domain.ErrPersonalWorkspace,
		domain.ErrInvalidWorkspace,
		domain.ErrInvalidNote,
		domain.ErrEmbeddingUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
