package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/constructsafe/constructsafe/pkg/domain/model"
	"github.com/constructsafe/constructsafe/pkg/domain/types"
	"github.com/constructsafe/constructsafe/pkg/repository/memory"
	"github.com/constructsafe/constructsafe/pkg/usecase"
)

func TestRiskUseCase(t *testing.T) {
	seed := func(t *testing.T) (*usecase.UseCases, int64) {
		t.Helper()

		repo := memory.New()
		uc := usecase.New(repo, nil)
		ctx := context.Background()

		project, err := uc.CreateProject(ctx, "Harbor Bridge", "")
		gt.NoError(t, err).Required()

		_, err = uc.Analyze(ctx, project.ID, "accident on site and a cost overrun")
		gt.NoError(t, err).Required()

		return uc, project.ID
	}

	t.Run("list orders by score descending", func(t *testing.T) {
		uc, projectID := seed(t)
		ctx := context.Background()

		risks, err := uc.ListRisks(ctx, &projectID)
		gt.NoError(t, err).Required()
		gt.Array(t, risks).Length(2).Required()

		if risks[0].RiskScore < risks[1].RiskScore {
			t.Errorf("expected descending order, got %v before %v", risks[0].RiskScore, risks[1].RiskScore)
		}
	})

	t.Run("list filter excludes other projects", func(t *testing.T) {
		uc, _ := seed(t)
		ctx := context.Background()

		other, err := uc.CreateProject(ctx, "Depot", "")
		gt.NoError(t, err).Required()

		risks, err := uc.ListRisks(ctx, &other.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, risks).Length(0)
	})

	t.Run("update status changes only status", func(t *testing.T) {
		uc, projectID := seed(t)
		ctx := context.Background()

		risks, err := uc.ListRisks(ctx, &projectID)
		gt.NoError(t, err).Required()
		gt.Array(t, risks).Length(2).Required()
		before := risks[0]

		updated, err := uc.UpdateRiskStatus(ctx, before.ID, "mitigating")
		gt.NoError(t, err).Required()

		gt.Value(t, updated.Status).Equal(types.RiskStatusMitigating)
		gt.Value(t, updated.ID).Equal(before.ID)
		gt.Value(t, updated.Category).Equal(before.Category)
		gt.Value(t, updated.RiskScore).Equal(before.RiskScore)
		gt.Value(t, updated.Description).Equal(before.Description)
		if !updated.CreatedAt.Equal(before.CreatedAt) {
			t.Errorf("expected CreatedAt preserved, got %v != %v", updated.CreatedAt, before.CreatedAt)
		}
	})

	t.Run("update status of missing risk fails", func(t *testing.T) {
		uc, _ := seed(t)
		ctx := context.Background()

		_, err := uc.UpdateRiskStatus(ctx, 9999, "closed")
		if !errors.Is(err, model.ErrRiskNotFound) {
			t.Errorf("expected ErrRiskNotFound, got %v", err)
		}
	})

	t.Run("invalid status string is rejected", func(t *testing.T) {
		uc, projectID := seed(t)
		ctx := context.Background()

		risks, err := uc.ListRisks(ctx, &projectID)
		gt.NoError(t, err).Required()
		gt.Array(t, risks).Length(2).Required()

		_, err = uc.UpdateRiskStatus(ctx, risks[0].ID, "resolved")
		if !errors.Is(err, usecase.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("get risk by ID", func(t *testing.T) {
		uc, projectID := seed(t)
		ctx := context.Background()

		risks, err := uc.ListRisks(ctx, &projectID)
		gt.NoError(t, err).Required()
		gt.Array(t, risks).Length(2).Required()

		got, err := uc.GetRisk(ctx, risks[0].ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(risks[0].ID)
		gt.Value(t, got.Category).Equal(risks[0].Category)
	})
}
