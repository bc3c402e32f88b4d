// internal/api/handlers.go

package api

import (
	"encoding/json"
	"io"
	"net/http"

	"loan-wizard/internal/common/errors"
	"loan-wizard/internal/models"
	"loan-wizard/internal/wizard"
)

type stepResponse struct {
	Step        string              `json:"step"`
	Route       string              `json:"route,omitempty"`
	Draft       models.Draft        `json:"draft"`
	Summary     []wizard.SummaryRow `json:"summary,omitempty"`
	CanFinalize bool                `json:"canFinalize,omitempty"`
	Submitted   bool                `json:"submitted,omitempty"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// handleIndex sends visitors without a step address to the first step.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/wizard/"+wizard.StepPersonal.Route(), http.StatusSeeOther)
}

func (s *Server) handleGetStep(w http.ResponseWriter, r *http.Request) {
	route := r.PathValue("step")
	step := wizard.StepFromRoute(route)

	// unknown step addresses restart at the first step
	if step.Route() != route {
		http.Redirect(w, r, "/wizard/"+step.Route(), http.StatusSeeOther)
		return
	}

	if err := s.seq.Goto(r.Context(), step); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeStep(w, http.StatusOK)
}

func (s *Server) handlePostStep(w http.ResponseWriter, r *http.Request) {
	step := wizard.StepFromRoute(r.PathValue("step"))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read body"})
		return
	}

	if err := s.seq.Goto(r.Context(), step); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.seq.Submit(r.Context(), body); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeStep(w, http.StatusOK)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeStep(w http.ResponseWriter, status int) {
	current := s.seq.Current()
	resp := stepResponse{
		Step:      current.Name(),
		Route:     current.Route(),
		Draft:     s.seq.Draft(),
		Submitted: current == wizard.StepSubmitted,
	}
	if current == wizard.StepReview {
		resp.Summary = wizard.Summarize(resp.Draft)
		resp.CanFinalize = s.seq.CanFinalize()
	}
	s.writeJSON(w, status, resp)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	if fieldErrs, ok := errors.AsFieldErrors(err); ok {
		s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation failed",
			Fields: fieldErrs.ByField(),
		})
		return
	}

	if se, ok := errors.AsStandardError(err); ok {
		status := http.StatusInternalServerError
		switch se.Code {
		case errors.ErrCodeNotConfirmed:
			status = http.StatusConflict
		case errors.ErrCodeInsufficientCapacity, errors.ErrCodeBusinessRuleViolation:
			status = http.StatusUnprocessableEntity
		case errors.ErrCodeInvalidFormat:
			status = http.StatusBadRequest
		case errors.ErrCodeArchiveFailed, errors.ErrCodeStorageFailed:
			status = http.StatusInternalServerError
		}
		s.writeJSON(w, status, errorResponse{
			Error: se.Message,
			Code:  string(se.Code),
		})
		return
	}

	s.log.Error("unhandled error", map[string]interface{}{"error": err.Error()})
	s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("failed to encode response", map[string]interface{}{"error": err.Error()})
	}
}
