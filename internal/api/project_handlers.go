package api

import (
	"net/http"

	"github.com/mmynk/weddingplan/internal/service"
	"github.com/mmynk/weddingplan/internal/storage"
)

type createProjectRequest struct {
	BrideName   string `json:"bride_name"`
	GroomName   string `json:"groom_name"`
	WeddingDate int64  `json:"wedding_date"`
	TotalBudget int64  `json:"total_budget"`
}

type updateProjectRequest struct {
	BrideName   *string `json:"bride_name"`
	GroomName   *string `json:"groom_name"`
	WeddingDate *int64  `json:"wedding_date"`
	TotalBudget *int64  `json:"total_budget"`
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	project, err := s.projectSvc.CreateProject(r.Context(), actor(r), service.CreateProjectRequest{
		BrideName:   req.BrideName,
		GroomName:   req.GroomName,
		WeddingDate: req.WeddingDate,
		TotalBudget: req.TotalBudget,
	})
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, project)
}

func (s *Server) handleGetOwnProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.projectSvc.GetOwnProject(r.Context(), actor(r))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, project)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.projectSvc.GetProject(r.Context(), actor(r), r.PathValue("id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, project)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req updateProjectRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	err := s.projectSvc.UpdateProject(r.Context(), actor(r), r.PathValue("id"), storage.ProjectUpdate{
		BrideName:   req.BrideName,
		GroomName:   req.GroomName,
		WeddingDate: req.WeddingDate,
		TotalBudget: req.TotalBudget,
	})
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.projectSvc.Members(r.Context(), actor(r), r.PathValue("id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, members)
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	err := s.projectSvc.RemoveMember(r.Context(), actor(r), r.PathValue("id"), r.PathValue("memberID"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleInviteCode(w http.ResponseWriter, r *http.Request) {
	code, err := s.projectSvc.InviteCode(r.Context(), actor(r), r.PathValue("id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"code": code})
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	project, err := s.projectSvc.JoinByCode(r.Context(), actor(r), req.Code)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, project)
}

func (s *Server) handleNextToMarry(w http.ResponseWriter, r *http.Request) {
	name, err := s.projectSvc.NextToMarry(r.Context(), actor(r), r.PathValue("id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"name": name})
}
