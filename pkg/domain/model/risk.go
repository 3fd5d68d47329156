package model

import (
	"time"

	"github.com/constructsafe/constructsafe/pkg/domain/types"
)

// Risk is a persisted finding produced by one text analysis for one
// category. Everything except Status is immutable once stored.
type Risk struct {
	ID             int64
	ProjectID      int64
	Category       string // uppercased category name for display
	Title          string
	Description    string
	Probability    float64
	Impact         float64
	RiskScore      float64
	Priority       types.Priority
	MitigationPlan string
	Status         types.RiskStatus
	SourceText     string
	CreatedAt      time.Time
}
