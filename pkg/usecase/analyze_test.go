package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/constructsafe/constructsafe/pkg/domain/model"
	"github.com/constructsafe/constructsafe/pkg/domain/types"
	"github.com/constructsafe/constructsafe/pkg/repository/memory"
	"github.com/constructsafe/constructsafe/pkg/usecase"
)

func TestAnalyze(t *testing.T) {
	t.Run("persists one risk record per detected category", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, nil)
		ctx := context.Background()

		project, err := uc.CreateProject(ctx, "Harbor Bridge", "Bridge refurbishment")
		gt.NoError(t, err).Required()

		text := "The project is behind schedule and over budget"
		analysis, err := uc.Analyze(ctx, project.ID, text)
		gt.NoError(t, err).Required()

		gt.Value(t, analysis.ProjectID).Equal(project.ID)
		gt.Value(t, analysis.TotalRisksDetected).Equal(2)
		if analysis.ID == "" {
			t.Error("expected non-empty analysis ID")
		}

		risks, err := uc.ListRisks(ctx, &project.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, risks).Length(2).Required()

		// Ordered by risk score descending: cost (0.105) before schedule (0.075).
		cost := risks[0]
		gt.Value(t, cost.Category).Equal("COST")
		gt.Value(t, cost.Title).Equal("COST risk detected")
		gt.Value(t, cost.Description).Equal("Found keywords: over budget")
		gt.Value(t, cost.Status).Equal(types.RiskStatusIdentified)
		gt.Value(t, cost.SourceText).Equal(text)
		if cost.MitigationPlan == "" {
			t.Error("expected mitigation plan to be set")
		}

		schedule := risks[1]
		gt.Value(t, schedule.Category).Equal("SCHEDULE")
		gt.Value(t, schedule.Description).Equal("Found keywords: behind schedule")
	})

	t.Run("zero detections persist nothing", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, nil)
		ctx := context.Background()

		project, err := uc.CreateProject(ctx, "Depot", "")
		gt.NoError(t, err).Required()

		analysis, err := uc.Analyze(ctx, project.ID, "Concrete pour went as planned")
		gt.NoError(t, err).Required()
		gt.Value(t, analysis.TotalRisksDetected).Equal(0)
		gt.Value(t, analysis.OverallRiskLevel).Equal(types.RiskLevelLow)

		risks, err := uc.ListRisks(ctx, nil)
		gt.NoError(t, err).Required()
		gt.Array(t, risks).Length(0)
	})

	t.Run("analyzing the same text twice stores both sets", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, nil)
		ctx := context.Background()

		project, err := uc.CreateProject(ctx, "Harbor Bridge", "")
		gt.NoError(t, err).Required()

		text := "The project is behind schedule and over budget"
		_, err = uc.Analyze(ctx, project.ID, text)
		gt.NoError(t, err).Required()
		_, err = uc.Analyze(ctx, project.ID, text)
		gt.NoError(t, err).Required()

		// No cross-call dedup: each analysis stores its own records.
		risks, err := uc.ListRisks(ctx, &project.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, risks).Length(4).Required()

		perCategory := map[string]int{}
		for _, risk := range risks {
			perCategory[risk.Category]++
		}
		gt.Number(t, perCategory["COST"]).Equal(2)
		gt.Number(t, perCategory["SCHEDULE"]).Equal(2)
	})

	t.Run("missing project returns computed analysis with error", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, nil)
		ctx := context.Background()

		analysis, err := uc.Analyze(ctx, 999, "delay and rework reported on site")
		if err == nil {
			t.Fatal("expected error for missing project")
		}
		if !errors.Is(err, model.ErrProjectNotFound) {
			t.Errorf("expected ErrProjectNotFound, got %v", err)
		}

		// Detection succeeded even though persistence failed.
		if analysis == nil {
			t.Fatal("expected analysis despite persistence failure")
		}
		gt.Value(t, analysis.TotalRisksDetected).Equal(2)

		// Nothing was written.
		risks, listErr := uc.ListRisks(ctx, nil)
		gt.NoError(t, listErr).Required()
		gt.Array(t, risks).Length(0)
	})

	t.Run("non-positive project ID is rejected", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, nil)
		ctx := context.Background()

		_, err := uc.Analyze(ctx, 0, "delay")
		if !errors.Is(err, usecase.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("long source text is truncated", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, nil)
		ctx := context.Background()

		project, err := uc.CreateProject(ctx, "Tower", "")
		gt.NoError(t, err).Required()

		text := "delay " + strings.Repeat("x", 200)
		_, err = uc.Analyze(ctx, project.ID, text)
		gt.NoError(t, err).Required()

		risks, err := uc.ListRisks(ctx, &project.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, risks).Length(1).Required()

		stored := risks[0].SourceText
		if !strings.HasSuffix(stored, "...") {
			t.Errorf("expected truncated source text to end with ellipsis, got %q", stored)
		}
		gt.Number(t, len([]rune(stored))).Equal(103)
	})

	t.Run("custom rule table drives detection", func(t *testing.T) {
		table, err := model.NewRuleTable([]model.CategoryRule{
			{
				ID:         "weather",
				Name:       "Weather",
				Keywords:   []string{"storm", "flood"},
				Impact:     0.6,
				Mitigation: "monitor the forecast and secure loose materials",
			},
		})
		gt.NoError(t, err).Required()

		repo := memory.New()
		uc := usecase.New(repo, table)
		ctx := context.Background()

		project, err := uc.CreateProject(ctx, "Quay Wall", "")
		gt.NoError(t, err).Required()

		analysis, err := uc.Analyze(ctx, project.ID, "storm warning issued; delay expected")
		gt.NoError(t, err).Required()

		// "delay" belongs to the default table, not this one.
		gt.Value(t, analysis.TotalRisksDetected).Equal(1)
		gt.Value(t, analysis.DetectedRisks[0].Category).Equal(types.CategoryID("weather"))
	})
}
