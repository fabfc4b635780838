package api

import (
	"net/http"

	"github.com/mmynk/weddingplan/internal/models"
	"github.com/mmynk/weddingplan/internal/service"
	"github.com/mmynk/weddingplan/internal/storage"
)

type groupRequest struct {
	Name string `json:"name"`
}

type createActivityRequest struct {
	Name           string `json:"name"`
	Note           string `json:"note"`
	ExpectedBudget int64  `json:"expected_budget"`
	ActualBudget   int64  `json:"actual_budget"`
	Payer          string `json:"payer"`
}

type updateActivityRequest struct {
	Name           *string `json:"name"`
	Note           *string `json:"note"`
	ExpectedBudget *int64  `json:"expected_budget"`
	ActualBudget   *int64  `json:"actual_budget"`
	Payer          *string `json:"payer"`
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.budgetSvc.ListGroups(r.Context(), actor(r), r.PathValue("id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, groups)
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	group, err := s.budgetSvc.CreateGroup(r.Context(), actor(r), r.PathValue("id"), req.Name)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, group)
}

func (s *Server) handleSeedBudget(w http.ResponseWriter, r *http.Request) {
	inserted, err := s.budgetSvc.SeedBudget(r.Context(), actor(r), r.PathValue("id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]bool{"inserted": inserted})
}

func (s *Server) handleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	if err := s.budgetSvc.UpdateGroup(r.Context(), actor(r), r.PathValue("id"), req.Name); err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.budgetSvc.DeleteGroup(r.Context(), actor(r), r.PathValue("id")); err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	var req createActivityRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	activity, err := s.budgetSvc.CreateActivity(r.Context(), actor(r), r.PathValue("id"), service.CreateActivityRequest{
		Name:           req.Name,
		Note:           req.Note,
		ExpectedBudget: req.ExpectedBudget,
		ActualBudget:   req.ActualBudget,
		Payer:          models.Payer(req.Payer),
	})
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, activity)
}

func (s *Server) handleUpdateActivity(w http.ResponseWriter, r *http.Request) {
	var req updateActivityRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	upd := storage.ActivityUpdate{
		Name:           req.Name,
		Note:           req.Note,
		ExpectedBudget: req.ExpectedBudget,
		ActualBudget:   req.ActualBudget,
	}
	if req.Payer != nil {
		payer := models.Payer(*req.Payer)
		upd.Payer = &payer
	}

	if err := s.budgetSvc.UpdateActivity(r.Context(), actor(r), r.PathValue("id"), upd); err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	if err := s.budgetSvc.DeleteActivity(r.Context(), actor(r), r.PathValue("id")); err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleBudgetTotals(w http.ResponseWriter, r *http.Request) {
	summary, err := s.budgetSvc.Totals(r.Context(), actor(r), r.PathValue("id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, summary)
}
