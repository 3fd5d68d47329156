package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/constructsafe/constructsafe/pkg/domain/model"
	"github.com/constructsafe/constructsafe/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
)

type riskResponse struct {
	ID             int64     `json:"id"`
	ProjectID      int64     `json:"project_id"`
	Category       string    `json:"category"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Probability    float64   `json:"probability"`
	Impact         float64   `json:"impact"`
	RiskScore      float64   `json:"risk_score"`
	Priority       string    `json:"priority"`
	MitigationPlan string    `json:"mitigation_plan"`
	Status         string    `json:"status"`
	SourceText     string    `json:"source_text,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func toRiskResponse(risk *model.Risk) riskResponse {
	return riskResponse{
		ID:             risk.ID,
		ProjectID:      risk.ProjectID,
		Category:       risk.Category,
		Title:          risk.Title,
		Description:    risk.Description,
		Probability:    risk.Probability,
		Impact:         risk.Impact,
		RiskScore:      risk.RiskScore,
		Priority:       risk.Priority.String(),
		MitigationPlan: risk.MitigationPlan,
		Status:         risk.Status.String(),
		SourceText:     risk.SourceText,
		CreatedAt:      risk.CreatedAt,
	}
}

func (s *Server) listRisks(w http.ResponseWriter, r *http.Request) {
	var projectID *int64
	if raw := r.URL.Query().Get("project_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondError(w, r, goerr.Wrap(usecase.ErrInvalidInput, "invalid project_id query parameter", goerr.V("value", raw)))
			return
		}
		projectID = &id
	}

	risks, err := s.uc.ListRisks(r.Context(), projectID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp := struct {
		Risks []riskResponse `json:"risks"`
	}{
		Risks: make([]riskResponse, len(risks)),
	}
	for i, risk := range risks {
		resp.Risks[i] = toRiskResponse(risk)
	}

	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) getRisk(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "riskID")
	if err != nil {
		respondError(w, r, err)
		return
	}

	risk, err := s.uc.GetRisk(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toRiskResponse(risk))
}

func (s *Server) updateRiskStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "riskID")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	risk, err := s.uc.UpdateRiskStatus(r.Context(), id, req.Status)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toRiskResponse(risk))
}
