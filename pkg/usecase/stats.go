package usecase

import (
	"context"

	"github.com/constructsafe/constructsafe/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Stats is the dashboard/health summary
type Stats struct {
	ProjectCount       int64
	ActiveProjectCount int64
	RiskCount          int64
}

func (uc *UseCases) Stats(ctx context.Context) (*Stats, error) {
	projectCount, err := uc.repo.Project().Count(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to count projects")
	}

	riskCount, err := uc.repo.Risk().Count(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to count risks")
	}

	projects, err := uc.repo.Project().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list projects")
	}
	var active int64
	for _, p := range projects {
		if p.Status == types.ProjectStatusActive {
			active++
		}
	}

	return &Stats{
		ProjectCount:       projectCount,
		ActiveProjectCount: active,
		RiskCount:          riskCount,
	}, nil
}
