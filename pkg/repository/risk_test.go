package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/constructsafe/constructsafe/pkg/domain/interfaces"
	"github.com/constructsafe/constructsafe/pkg/domain/model"
	"github.com/constructsafe/constructsafe/pkg/domain/types"
	"github.com/constructsafe/constructsafe/pkg/repository/memory"
)

func mustCreateProject(t *testing.T, repo interfaces.Repository, name string) *model.Project {
	t.Helper()

	project, err := repo.Project().Create(context.Background(), &model.Project{Name: name})
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return project
}

func runRiskRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("BatchCreate assigns contiguous IDs in order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		project := mustCreateProject(t, repo, "Harbor Bridge")

		created, err := repo.Risk().BatchCreate(ctx, project.ID, []*model.Risk{
			{Category: "SAFETY", Title: "SAFETY risk detected", RiskScore: 0.42},
			{Category: "COST", Title: "COST risk detected", RiskScore: 0.105},
		})
		if err != nil {
			t.Fatalf("failed to batch create risks: %v", err)
		}
		if len(created) != 2 {
			t.Fatalf("expected 2 risks, got %d", len(created))
		}

		if created[1].ID != created[0].ID+1 {
			t.Errorf("expected contiguous IDs, got %d then %d", created[0].ID, created[1].ID)
		}
		for _, risk := range created {
			if risk.ProjectID != project.ID {
				t.Errorf("expected projectID=%d, got %d", project.ID, risk.ProjectID)
			}
			if risk.Status != types.RiskStatusIdentified {
				t.Errorf("expected status=Identified, got %s", risk.Status)
			}
			if risk.CreatedAt.IsZero() {
				t.Error("expected non-zero CreatedAt")
			}
		}
	})

	t.Run("BatchCreate for missing project writes nothing", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Risk().BatchCreate(ctx, 99999, []*model.Risk{
			{Category: "SAFETY", Title: "SAFETY risk detected"},
		})
		if err == nil {
			t.Fatal("expected error for missing project")
		}
		if !errors.Is(err, model.ErrProjectNotFound) {
			t.Errorf("expected ErrProjectNotFound, got %v", err)
		}

		count, err := repo.Risk().Count(ctx)
		if err != nil {
			t.Fatalf("failed to count risks: %v", err)
		}
		if count != 0 {
			t.Errorf("expected no risks written, got %d", count)
		}
	})

	t.Run("Get returns ErrRiskNotFound for missing ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Risk().Get(ctx, 99999)
		if !errors.Is(err, model.ErrRiskNotFound) {
			t.Errorf("expected ErrRiskNotFound, got %v", err)
		}
	})

	t.Run("List orders by score descending with insertion-order ties", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		project := mustCreateProject(t, repo, "Harbor Bridge")

		_, err := repo.Risk().BatchCreate(ctx, project.ID, []*model.Risk{
			{Category: "SCHEDULE", RiskScore: 0.075},
			{Category: "COST", RiskScore: 0.105},
			{Category: "SAFETY", RiskScore: 0.105},
			{Category: "QUALITY", RiskScore: 0.42},
		})
		if err != nil {
			t.Fatalf("failed to batch create risks: %v", err)
		}

		risks, err := repo.Risk().List(ctx)
		if err != nil {
			t.Fatalf("failed to list risks: %v", err)
		}
		if len(risks) != 4 {
			t.Fatalf("expected 4 risks, got %d", len(risks))
		}

		wantOrder := []string{"QUALITY", "COST", "SAFETY", "SCHEDULE"}
		for i, want := range wantOrder {
			if risks[i].Category != want {
				t.Errorf("position %d: expected %s, got %s", i, want, risks[i].Category)
			}
		}
	})

	t.Run("List returns identical order on repeated reads", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		project := mustCreateProject(t, repo, "Harbor Bridge")

		// Tied scores exercise the id tie-break, which must hold across reads.
		if _, err := repo.Risk().BatchCreate(ctx, project.ID, []*model.Risk{
			{Category: "SCHEDULE", RiskScore: 0.105},
			{Category: "COST", RiskScore: 0.105},
			{Category: "SAFETY", RiskScore: 0.105},
			{Category: "QUALITY", RiskScore: 0.42},
		}); err != nil {
			t.Fatalf("failed to batch create risks: %v", err)
		}

		first, err := repo.Risk().List(ctx)
		if err != nil {
			t.Fatalf("failed to list risks: %v", err)
		}
		second, err := repo.Risk().List(ctx)
		if err != nil {
			t.Fatalf("failed to list risks again: %v", err)
		}

		if len(first) != len(second) {
			t.Fatalf("expected same length, got %d and %d", len(first), len(second))
		}
		for i := range first {
			if first[i].ID != second[i].ID {
				t.Errorf("position %d: expected ID=%d on re-read, got %d", i, first[i].ID, second[i].ID)
			}
		}
	})

	t.Run("List filters by project", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		projectA := mustCreateProject(t, repo, "Harbor Bridge")
		projectB := mustCreateProject(t, repo, "Metro Line 3")

		if _, err := repo.Risk().BatchCreate(ctx, projectA.ID, []*model.Risk{
			{Category: "SAFETY", RiskScore: 0.42},
		}); err != nil {
			t.Fatalf("failed to batch create risks for project A: %v", err)
		}
		if _, err := repo.Risk().BatchCreate(ctx, projectB.ID, []*model.Risk{
			{Category: "COST", RiskScore: 0.105},
			{Category: "QUALITY", RiskScore: 0.075},
		}); err != nil {
			t.Fatalf("failed to batch create risks for project B: %v", err)
		}

		risks, err := repo.Risk().List(ctx, interfaces.WithProjectID(projectB.ID))
		if err != nil {
			t.Fatalf("failed to list risks: %v", err)
		}
		if len(risks) != 2 {
			t.Fatalf("expected 2 risks, got %d", len(risks))
		}
		for _, risk := range risks {
			if risk.ProjectID != projectB.ID {
				t.Errorf("expected projectID=%d, got %d", projectB.ID, risk.ProjectID)
			}
		}

		all, err := repo.Risk().List(ctx)
		if err != nil {
			t.Fatalf("failed to list all risks: %v", err)
		}
		if len(all) != 3 {
			t.Errorf("expected 3 risks in total, got %d", len(all))
		}
	})

	t.Run("UpdateStatus overwrites only the status", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		project := mustCreateProject(t, repo, "Harbor Bridge")

		created, err := repo.Risk().BatchCreate(ctx, project.ID, []*model.Risk{
			{
				Category:       "SAFETY",
				Title:          "SAFETY risk detected",
				Description:    "Found keywords: accident",
				Probability:    0.15,
				Impact:         0.7,
				RiskScore:      0.105,
				Priority:       types.PriorityLow,
				MitigationPlan: "Conduct an immediate site safety inspection",
				SourceText:     "accident on site",
			},
		})
		if err != nil {
			t.Fatalf("failed to batch create risks: %v", err)
		}

		updated, err := repo.Risk().UpdateStatus(ctx, created[0].ID, types.RiskStatusMitigating)
		if err != nil {
			t.Fatalf("failed to update status: %v", err)
		}

		if updated.Status != types.RiskStatusMitigating {
			t.Errorf("expected status=Mitigating, got %s", updated.Status)
		}
		if updated.Category != created[0].Category {
			t.Errorf("expected category preserved, got %s", updated.Category)
		}
		if updated.Description != created[0].Description {
			t.Errorf("expected description preserved, got %s", updated.Description)
		}
		if updated.RiskScore != created[0].RiskScore {
			t.Errorf("expected risk score preserved, got %v", updated.RiskScore)
		}
		if updated.SourceText != created[0].SourceText {
			t.Errorf("expected source text preserved, got %s", updated.SourceText)
		}
		if !updated.CreatedAt.Equal(created[0].CreatedAt) {
			t.Errorf("expected CreatedAt preserved, got %v != %v", updated.CreatedAt, created[0].CreatedAt)
		}
	})

	t.Run("UpdateStatus returns ErrRiskNotFound for missing ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Risk().UpdateStatus(ctx, 99999, types.RiskStatusClosed)
		if !errors.Is(err, model.ErrRiskNotFound) {
			t.Errorf("expected ErrRiskNotFound, got %v", err)
		}
	})

	t.Run("Count reflects batch writes", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		project := mustCreateProject(t, repo, "Harbor Bridge")

		if _, err := repo.Risk().BatchCreate(ctx, project.ID, []*model.Risk{
			{Category: "SAFETY"},
			{Category: "COST"},
			{Category: "QUALITY"},
		}); err != nil {
			t.Fatalf("failed to batch create risks: %v", err)
		}

		count, err := repo.Risk().Count(ctx)
		if err != nil {
			t.Fatalf("failed to count risks: %v", err)
		}
		if count != 3 {
			t.Errorf("expected count=3, got %d", count)
		}
	})
}

func TestMemoryRiskRepository(t *testing.T) {
	runRiskRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreRiskRepository(t *testing.T) {
	runRiskRepositoryTest(t, newFirestoreRepository)
}
