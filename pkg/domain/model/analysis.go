package model

import (
	"github.com/constructsafe/constructsafe/pkg/domain/types"
)

// DetectedRisk is the per-category outcome of one analysis. Mitigation is
// copied from the rule table at analysis time, so later table edits do not
// retroactively change results derived from it.
type DetectedRisk struct {
	Category      types.CategoryID `json:"category"`
	KeywordsFound []string         `json:"keywords_found"`
	Probability   float64          `json:"probability"`
	Impact        float64          `json:"impact"`
	RiskScore     float64          `json:"risk_score"`
	Priority      types.Priority   `json:"priority"`
	Mitigation    string           `json:"mitigation"`
}

// Analysis is the full outcome of one analysis call. DetectedRisks is
// ordered by rule table iteration order.
type Analysis struct {
	ID                 string          `json:"id,omitempty"`
	ProjectID          int64           `json:"project_id,omitempty"`
	TotalRisksDetected int             `json:"total_risks_detected"`
	OverallRiskScore   float64         `json:"overall_risk_score"`
	OverallRiskLevel   types.RiskLevel `json:"overall_risk_level"`
	DetectedRisks      []DetectedRisk  `json:"detected_risks"`
}
