package interfaces

import (
	"context"

	"github.com/constructsafe/constructsafe/pkg/domain/model"
)

// ProjectRepository defines the interface for Project data access
type ProjectRepository interface {
	// Create creates a new project with auto-generated ID
	Create(ctx context.Context, p *model.Project) (*model.Project, error)

	// Get retrieves a project by ID
	Get(ctx context.Context, id int64) (*model.Project, error)

	// List retrieves all projects ordered by ID
	List(ctx context.Context) ([]*model.Project, error)

	// Update updates an existing project, preserving CreatedAt
	Update(ctx context.Context, p *model.Project) (*model.Project, error)

	// Count returns the number of projects
	Count(ctx context.Context) (int64, error)
}
