package detect

import (
	"github.com/constructsafe/constructsafe/pkg/domain/model"
	"github.com/constructsafe/constructsafe/pkg/domain/types"
)

// Overall verdict thresholds. These deliberately differ from the
// per-category priority thresholds in scorer.go; the two systems are
// independent and must not be unified.
const (
	overallHighThreshold   = 0.6
	overallMediumThreshold = 0.3
)

// Aggregator combines per-category detections into an overall verdict
type Aggregator struct{}

// NewAggregator creates a new aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate returns the mean risk score over all detections and the
// overall risk level. Zero detections yield a score of 0 and a LOW
// level, not an error.
func (a *Aggregator) Aggregate(risks []model.DetectedRisk) (float64, types.RiskLevel) {
	if len(risks) == 0 {
		return 0, types.RiskLevelLow
	}

	var sum float64
	for _, r := range risks {
		sum += r.RiskScore
	}
	score := sum / float64(len(risks))

	return score, RiskLevelFor(score)
}

// RiskLevelFor buckets an overall score into a risk level
func RiskLevelFor(score float64) types.RiskLevel {
	switch {
	case score > overallHighThreshold:
		return types.RiskLevelHigh
	case score > overallMediumThreshold:
		return types.RiskLevelMedium
	default:
		return types.RiskLevelLow
	}
}
