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

func TestProjectUseCase(t *testing.T) {
	t.Run("create project starts in planning", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, nil)
		ctx := context.Background()

		created, err := uc.CreateProject(ctx, "Metro Line 3", "Tunnel section B")
		gt.NoError(t, err).Required()

		gt.Number(t, created.ID).NotEqual(0)
		gt.Value(t, created.Name).Equal("Metro Line 3")
		gt.Value(t, created.Status).Equal(types.ProjectStatusPlanning)
		if created.CreatedAt.IsZero() {
			t.Error("expected non-zero CreatedAt")
		}
	})

	t.Run("create project without name fails", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, nil)
		ctx := context.Background()

		_, err := uc.CreateProject(ctx, "", "no name")
		if !errors.Is(err, usecase.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("get missing project fails", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, nil)
		ctx := context.Background()

		_, err := uc.GetProject(ctx, 42)
		if !errors.Is(err, model.ErrProjectNotFound) {
			t.Errorf("expected ErrProjectNotFound, got %v", err)
		}
	})

	t.Run("list returns projects in creation order", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, nil)
		ctx := context.Background()

		first, err := uc.CreateProject(ctx, "First", "")
		gt.NoError(t, err).Required()
		second, err := uc.CreateProject(ctx, "Second", "")
		gt.NoError(t, err).Required()

		projects, err := uc.ListProjects(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, projects).Length(2).Required()
		gt.Value(t, projects[0].ID).Equal(first.ID)
		gt.Value(t, projects[1].ID).Equal(second.ID)
	})

	t.Run("update project status", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, nil)
		ctx := context.Background()

		created, err := uc.CreateProject(ctx, "Depot", "")
		gt.NoError(t, err).Required()

		updated, err := uc.UpdateProjectStatus(ctx, created.ID, "active")
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Status).Equal(types.ProjectStatusActive)
		if !updated.CreatedAt.Equal(created.CreatedAt) {
			t.Errorf("expected CreatedAt preserved, got %v != %v", updated.CreatedAt, created.CreatedAt)
		}
	})

	t.Run("invalid project status is rejected", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, nil)
		ctx := context.Background()

		created, err := uc.CreateProject(ctx, "Depot", "")
		gt.NoError(t, err).Required()

		_, err = uc.UpdateProjectStatus(ctx, created.ID, "archived")
		if !errors.Is(err, usecase.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}
