package api

import (
	"net/http"
	"time"

	"github.com/mmynk/weddingplan/internal/service"
	"github.com/mmynk/weddingplan/internal/storage"
)

type phaseRequest struct {
	Name    string `json:"name"`
	StartAt int64  `json:"start_at"`
	EndAt   int64  `json:"end_at"`
}

type createTaskRequest struct {
	Name        string   `json:"name"`
	Note        string   `json:"note"`
	AssigneeIDs []string `json:"assignee_ids"`
}

type updateTaskRequest struct {
	Name *string `json:"name"`
	Note *string `json:"note"`
}

func (s *Server) handleListPhases(w http.ResponseWriter, r *http.Request) {
	phases, err := s.checklistSvc.ListPhases(r.Context(), actor(r), r.PathValue("id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, phases)
}

func (s *Server) handleCreatePhase(w http.ResponseWriter, r *http.Request) {
	var req phaseRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	phase, err := s.checklistSvc.CreatePhase(r.Context(), actor(r), r.PathValue("id"), req.Name, req.StartAt, req.EndAt)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, phase)
}

func (s *Server) handleSeedTimeline(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartAt int64 `json:"start_at"`
	}
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	start := time.Unix(req.StartAt, 0).UTC()
	if req.StartAt == 0 {
		start = time.Now().UTC()
	}

	inserted, err := s.checklistSvc.SeedTimeline(r.Context(), actor(r), r.PathValue("id"), start)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]bool{"inserted": inserted})
}

func (s *Server) handleUpdatePhase(w http.ResponseWriter, r *http.Request) {
	var req phaseRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	err := s.checklistSvc.UpdatePhase(r.Context(), actor(r), r.PathValue("id"), req.Name, req.StartAt, req.EndAt)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleDeletePhase(w http.ResponseWriter, r *http.Request) {
	if err := s.checklistSvc.DeletePhase(r.Context(), actor(r), r.PathValue("id")); err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	task, err := s.checklistSvc.CreateTask(r.Context(), actor(r), r.PathValue("id"), service.CreateTaskRequest{
		Name:        req.Name,
		Note:        req.Note,
		AssigneeIDs: req.AssigneeIDs,
	})
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, task)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.checklistSvc.GetTask(r.Context(), actor(r), r.PathValue("id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	err := s.checklistSvc.UpdateTask(r.Context(), actor(r), r.PathValue("id"), storage.TaskUpdate{
		Name: req.Name,
		Note: req.Note,
	})
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.checklistSvc.DeleteTask(r.Context(), actor(r), r.PathValue("id")); err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleSetTaskCompleted(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Completed bool `json:"completed"`
	}
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	changed, err := s.checklistSvc.SetTaskCompleted(r.Context(), actor(r), r.PathValue("id"), req.Completed)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]bool{"changed": changed})
}

func (s *Server) handleAssignMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberID string `json:"member_id"`
	}
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	if err := s.checklistSvc.AssignMember(r.Context(), actor(r), r.PathValue("id"), req.MemberID); err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleUnassignMember(w http.ResponseWriter, r *http.Request) {
	err := s.checklistSvc.UnassignMember(r.Context(), actor(r), r.PathValue("id"), r.PathValue("memberID"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleAvailableAssignees(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.checklistSvc.AvailableAssignees(r.Context(), actor(r), r.PathValue("id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, profiles)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := s.checklistSvc.Progress(r.Context(), actor(r), r.PathValue("id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"completed": progress.Completed,
		"total":     progress.Total,
		"percent":   progress.Percent(),
	})
}
