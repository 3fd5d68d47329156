// Package detect implements the risk detection and scoring engine: it
// scans free-form text for category keyword evidence, scores each
// category hit, and aggregates an overall verdict. The engine is
// stateless and performs no I/O; it is a pure function of the text and
// the rule table it was built with.
package detect

import (
	"github.com/constructsafe/constructsafe/pkg/domain/model"
)

// Engine runs the scan → score → aggregate pipeline
type Engine struct {
	scanner    *Scanner
	scorer     *Scorer
	aggregator *Aggregator
}

// New creates an engine over the given rule table
func New(rules *model.RuleTable) *Engine {
	return &Engine{
		scanner:    NewScanner(rules),
		scorer:     NewScorer(),
		aggregator: NewAggregator(),
	}
}

// Analyze runs the full pipeline over one text. It never fails: empty or
// keyword-free text is a normal zero-result case. The returned analysis
// carries no ID or project binding; the caller owns those.
func (e *Engine) Analyze(text string) *model.Analysis {
	matches := e.scanner.Scan(text)

	detected := make([]model.DetectedRisk, 0, len(matches))
	for _, m := range matches {
		detected = append(detected, e.scorer.Score(m))
	}

	score, level := e.aggregator.Aggregate(detected)

	return &model.Analysis{
		TotalRisksDetected: len(detected),
		OverallRiskScore:   score,
		OverallRiskLevel:   level,
		DetectedRisks:      detected,
	}
}
