package http

import (
	"net/http"

	"github.com/constructsafe/constructsafe/pkg/domain/model"
)

type detectedRiskResponse struct {
	Category      string   `json:"category"`
	KeywordsFound []string `json:"keywords_found"`
	Probability   float64  `json:"probability"`
	Impact        float64  `json:"impact"`
	RiskScore     float64  `json:"risk_score"`
	Priority      string   `json:"priority"`
	Mitigation    string   `json:"mitigation"`
}

type analysisResponse struct {
	ID                 string                 `json:"id"`
	ProjectID          int64                  `json:"project_id"`
	TotalRisksDetected int                    `json:"total_risks_detected"`
	OverallRiskScore   float64                `json:"overall_risk_score"`
	OverallRiskLevel   string                 `json:"overall_risk_level"`
	DetectedRisks      []detectedRiskResponse `json:"detected_risks"`
}

func toAnalysisResponse(a *model.Analysis) analysisResponse {
	resp := analysisResponse{
		ID:                 a.ID,
		ProjectID:          a.ProjectID,
		TotalRisksDetected: a.TotalRisksDetected,
		OverallRiskScore:   a.OverallRiskScore,
		OverallRiskLevel:   a.OverallRiskLevel.String(),
		DetectedRisks:      make([]detectedRiskResponse, len(a.DetectedRisks)),
	}
	for i, d := range a.DetectedRisks {
		resp.DetectedRisks[i] = detectedRiskResponse{
			Category:      d.Category.Display(),
			KeywordsFound: d.KeywordsFound,
			Probability:   d.Probability,
			Impact:        d.Impact,
			RiskScore:     d.RiskScore,
			Priority:      d.Priority.String(),
			Mitigation:    d.Mitigation,
		}
	}
	return resp
}

func (s *Server) analyzeText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID int64  `json:"project_id"`
		Text      string `json:"text"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	analysis, err := s.uc.Analyze(r.Context(), req.ProjectID, req.Text)
	if err != nil {
		// Detection may have completed even when persistence failed, but
		// the external contract is all-or-nothing: report the failure.
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toAnalysisResponse(analysis))
}
