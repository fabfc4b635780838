// Package api provides the HTTP JSON API for the wedding planner.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mmynk/weddingplan/internal/auth"
	"github.com/mmynk/weddingplan/internal/invite"
	"github.com/mmynk/weddingplan/internal/middleware"
	"github.com/mmynk/weddingplan/internal/service"
	"github.com/mmynk/weddingplan/internal/storage"
)

// Server provides the HTTP API. All project, checklist and budget routes
// require a valid session token; the acting member is taken from it and
// passed to the services explicitly.
type Server struct {
	authSvc      *service.AuthService
	projectSvc   *service.ProjectService
	checklistSvc *service.ChecklistService
	budgetSvc    *service.BudgetService
	jwtManager   *auth.JWTManager
	mux          *http.ServeMux
}

// NewServer creates a Server, registers all routes, and returns it.
func NewServer(
	authSvc *service.AuthService,
	projectSvc *service.ProjectService,
	checklistSvc *service.ChecklistService,
	budgetSvc *service.BudgetService,
	jwtManager *auth.JWTManager,
) *Server {
	s := &Server{
		authSvc:      authSvc,
		projectSvc:   projectSvc,
		checklistSvc: checklistSvc,
		budgetSvc:    budgetSvc,
		jwtManager:   jwtManager,
		mux:          http.NewServeMux(),
	}
	s.routes()
	return s
}

// Handler returns the http.Handler that can be passed to http.Server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ---------------------------------------------------------------------------
// Routes
// ---------------------------------------------------------------------------

func (s *Server) routes() {
	// Auth
	s.mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	s.mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	// Projects and membership
	s.protect("GET /api/project", s.handleGetOwnProject)
	s.protect("POST /api/projects", s.handleCreateProject)
	s.protect("GET /api/projects/{id}", s.handleGetProject)
	s.protect("PUT /api/projects/{id}", s.handleUpdateProject)
	s.protect("GET /api/projects/{id}/members", s.handleListMembers)
	s.protect("DELETE /api/projects/{id}/members/{memberID}", s.handleRemoveMember)
	s.protect("GET /api/projects/{id}/invite", s.handleInviteCode)
	s.protect("POST /api/join", s.handleJoin)
	s.protect("GET /api/projects/{id}/next-to-marry", s.handleNextToMarry)

	// Checklist
	s.protect("GET /api/projects/{id}/phases", s.handleListPhases)
	s.protect("POST /api/projects/{id}/phases", s.handleCreatePhase)
	s.protect("POST /api/projects/{id}/phases/seed", s.handleSeedTimeline)
	s.protect("PUT /api/phases/{id}", s.handleUpdatePhase)
	s.protect("DELETE /api/phases/{id}", s.handleDeletePhase)
	s.protect("POST /api/phases/{id}/tasks", s.handleCreateTask)
	s.protect("GET /api/tasks/{id}", s.handleGetTask)
	s.protect("PUT /api/tasks/{id}", s.handleUpdateTask)
	s.protect("DELETE /api/tasks/{id}", s.handleDeleteTask)
	s.protect("PUT /api/tasks/{id}/completed", s.handleSetTaskCompleted)
	s.protect("POST /api/tasks/{id}/assignees", s.handleAssignMember)
	s.protect("DELETE /api/tasks/{id}/assignees/{memberID}", s.handleUnassignMember)
	s.protect("GET /api/tasks/{id}/available-assignees", s.handleAvailableAssignees)
	s.protect("GET /api/projects/{id}/progress", s.handleProgress)

	// Budget
	s.protect("GET /api/projects/{id}/groups", s.handleListGroups)
	s.protect("POST /api/projects/{id}/groups", s.handleCreateGroup)
	s.protect("POST /api/projects/{id}/groups/seed", s.handleSeedBudget)
	s.protect("PUT /api/groups/{id}", s.handleUpdateGroup)
	s.protect("DELETE /api/groups/{id}", s.handleDeleteGroup)
	s.protect("POST /api/groups/{id}/activities", s.handleCreateActivity)
	s.protect("PUT /api/activities/{id}", s.handleUpdateActivity)
	s.protect("DELETE /api/activities/{id}", s.handleDeleteActivity)
	s.protect("GET /api/projects/{id}/budget", s.handleBudgetTotals)

	s.mux.HandleFunc("GET /healthz", s.handleHealth)
}

// protect registers a route behind the session-token check.
func (s *Server) protect(pattern string, handler http.HandlerFunc) {
	s.mux.Handle(pattern, middleware.RequireAuth(s.jwtManager, handler))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---------------------------------------------------------------------------
// JSON helpers
// ---------------------------------------------------------------------------

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// decodeJSON reads the request body into dst and returns an error message
// on failure. The caller should return immediately when ok == false.
func (s *Server) decodeJSON(r *http.Request, dst any) (ok bool, errMsg string) {
	if r.Body == nil {
		return false, "request body is empty"
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return false, fmt.Sprintf("invalid JSON: %v", err)
	}
	return true, ""
}

// respondServiceError maps service-layer errors onto HTTP statuses.
func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyField),
		errors.Is(err, service.ErrNegativeAmount),
		errors.Is(err, service.ErrEndBeforeStart),
		errors.Is(err, service.ErrPhaseOverlap),
		errors.Is(err, service.ErrInvalidPayer),
		errors.Is(err, invite.ErrInvalidCode),
		errors.Is(err, auth.ErrWeakPassword):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		s.respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotMember),
		errors.Is(err, service.ErrNotProjectOwner),
		errors.Is(err, service.ErrRemoveCreator):
		s.respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, auth.ErrEmailExists),
		errors.Is(err, service.ErrProjectExists),
		errors.Is(err, service.ErrAlreadyMember):
		s.respondError(w, http.StatusConflict, err.Error())
	default:
		slog.Error("unhandled service error", "error", err)
		s.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// actor returns the authenticated member ID for a protected request.
func actor(r *http.Request) string {
	return middleware.GetMemberID(r.Context())
}
