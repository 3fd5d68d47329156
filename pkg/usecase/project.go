package usecase

import (
	"context"

	"github.com/constructsafe/constructsafe/pkg/domain/model"
	"github.com/constructsafe/constructsafe/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

func (uc *UseCases) CreateProject(ctx context.Context, name, description string) (*model.Project, error) {
	if name == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "project name is required")
	}

	project := &model.Project{
		Name:        name,
		Description: description,
		Status:      types.ProjectStatusPlanning,
	}

	created, err := uc.repo.Project().Create(ctx, project)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create project")
	}

	return created, nil
}

func (uc *UseCases) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	project, err := uc.repo.Project().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get project", goerr.V(ProjectIDKey, id))
	}

	return project, nil
}

func (uc *UseCases) ListProjects(ctx context.Context) ([]*model.Project, error) {
	projects, err := uc.repo.Project().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list projects")
	}

	return projects, nil
}

// UpdateProjectStatus transitions a project to the given status. Project
// status is owned by external collaborators, not the detection engine.
func (uc *UseCases) UpdateProjectStatus(ctx context.Context, id int64, status string) (*model.Project, error) {
	parsed, err := types.ParseProjectStatus(status)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid project status", goerr.V("status", status))
	}

	project, err := uc.repo.Project().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get project", goerr.V(ProjectIDKey, id))
	}

	project.Status = parsed
	updated, err := uc.repo.Project().Update(ctx, project)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update project", goerr.V(ProjectIDKey, id))
	}

	return updated, nil
}
