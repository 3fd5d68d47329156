package usecase

import (
	"context"

	"github.com/constructsafe/constructsafe/pkg/domain/interfaces"
	"github.com/constructsafe/constructsafe/pkg/domain/model"
	"github.com/constructsafe/constructsafe/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ListRisks returns risk records ordered by risk score descending,
// optionally filtered to one project.
func (uc *UseCases) ListRisks(ctx context.Context, projectID *int64) ([]*model.Risk, error) {
	var opts []interfaces.ListRiskOption
	if projectID != nil {
		opts = append(opts, interfaces.WithProjectID(*projectID))
	}

	risks, err := uc.repo.Risk().List(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list risks")
	}

	return risks, nil
}

func (uc *UseCases) GetRisk(ctx context.Context, id int64) (*model.Risk, error) {
	risk, err := uc.repo.Risk().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V(RiskIDKey, id))
	}

	return risk, nil
}

// UpdateRiskStatus overwrites the status of one risk record, leaving all
// other fields untouched.
func (uc *UseCases) UpdateRiskStatus(ctx context.Context, id int64, status string) (*model.Risk, error) {
	parsed, err := types.ParseRiskStatus(status)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid risk status", goerr.V("status", status))
	}

	updated, err := uc.repo.Risk().UpdateStatus(ctx, id, parsed)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update risk status", goerr.V(RiskIDKey, id))
	}

	return updated, nil
}
