package detect

import (
	"github.com/constructsafe/constructsafe/pkg/domain/model"
	"github.com/constructsafe/constructsafe/pkg/domain/types"
)

// Fixed scoring policy. These constants are behavioral contract, not
// tunables: probability saturates at 0.9 so keyword count alone never
// claims near-certainty, and the priority thresholds are exclusive on
// the lower side of each bucket (exactly 0.5 is MEDIUM, exactly 0.2 is
// LOW).
const (
	probabilityPerHit = 0.15
	probabilityCap    = 0.9

	priorityHighThreshold   = 0.5
	priorityMediumThreshold = 0.2
)

// Scorer converts keyword matches into scored risk detections
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes probability, impact, risk score and priority for one
// category match. The match must have at least one keyword.
func (s *Scorer) Score(m Match) model.DetectedRisk {
	probability := float64(len(m.Keywords)) * probabilityPerHit
	if probability > probabilityCap {
		probability = probabilityCap
	}

	impact := m.Rule.Impact
	riskScore := probability * impact

	keywords := make([]string, len(m.Keywords))
	copy(keywords, m.Keywords)

	return model.DetectedRisk{
		Category:      m.Rule.ID,
		KeywordsFound: keywords,
		Probability:   probability,
		Impact:        impact,
		RiskScore:     riskScore,
		Priority:      PriorityFor(riskScore),
		Mitigation:    m.Rule.Mitigation,
	}
}

// PriorityFor buckets a per-category risk score into a priority
func PriorityFor(riskScore float64) types.Priority {
	switch {
	case riskScore > priorityHighThreshold:
		return types.PriorityHigh
	case riskScore > priorityMediumThreshold:
		return types.PriorityMedium
	default:
		return types.PriorityLow
	}
}
