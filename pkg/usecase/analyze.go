package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/constructsafe/constructsafe/pkg/domain/model"
	"github.com/constructsafe/constructsafe/pkg/domain/types"
	"github.com/constructsafe/constructsafe/pkg/utils/logging"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// sourceTextLimit caps the text excerpt stored on each risk record
const sourceTextLimit = 100

// Analyze scans the text for risk evidence, scores it, and persists one
// risk record per detected category against the project.
//
// The detection stages never fail on valid input; only persistence can.
// When saving fails, Analyze returns the fully computed analysis
// together with the error, so callers can tell "detection succeeded,
// persistence failed" apart from "detection itself failed". The project
// reference is checked by the store at save time; an analysis with zero
// detections never touches the store.
func (uc *UseCases) Analyze(ctx context.Context, projectID int64, text string) (*model.Analysis, error) {
	if projectID <= 0 {
		return nil, goerr.Wrap(ErrInvalidInput, "project ID must be positive", goerr.V(ProjectIDKey, projectID))
	}

	analysis := uc.engine.Analyze(text)
	analysis.ID = uuid.NewString()
	analysis.ProjectID = projectID

	logging.From(ctx).Info("text analyzed",
		"analysis_id", analysis.ID,
		"project_id", projectID,
		"total_risks", analysis.TotalRisksDetected,
		"overall_level", analysis.OverallRiskLevel,
	)

	if len(analysis.DetectedRisks) == 0 {
		return analysis, nil
	}

	risks := make([]*model.Risk, 0, len(analysis.DetectedRisks))
	for _, d := range analysis.DetectedRisks {
		risks = append(risks, &model.Risk{
			Category:       d.Category.Display(),
			Title:          fmt.Sprintf("%s risk detected", d.Category.Display()),
			Description:    "Found keywords: " + strings.Join(d.KeywordsFound, ", "),
			Probability:    d.Probability,
			Impact:         d.Impact,
			RiskScore:      d.RiskScore,
			Priority:       d.Priority,
			MitigationPlan: d.Mitigation,
			Status:         types.RiskStatusIdentified,
			SourceText:     truncateSource(text),
		})
	}

	if _, err := uc.repo.Risk().BatchCreate(ctx, projectID, risks); err != nil {
		return analysis, goerr.Wrap(err, "failed to persist detected risks",
			goerr.V("analysis_id", analysis.ID),
			goerr.V(ProjectIDKey, projectID))
	}

	return analysis, nil
}

func truncateSource(text string) string {
	runes := []rune(text)
	if len(runes) <= sourceTextLimit {
		return text
	}
	return string(runes[:sourceTextLimit]) + "..."
}
