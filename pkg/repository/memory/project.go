package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/constructsafe/constructsafe/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type projectRepository struct {
	mu       sync.RWMutex
	projects map[int64]*model.Project
	nextID   int64
}

func newProjectRepository() *projectRepository {
	return &projectRepository{
		projects: make(map[int64]*model.Project),
		nextID:   1,
	}
}

func copyProject(p *model.Project) *model.Project {
	copied := *p
	return &copied
}

func (r *projectRepository) Create(ctx context.Context, p *model.Project) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := &model.Project{
		ID:          r.nextID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status.Normalize(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.nextID++

	r.projects[created.ID] = created
	return copyProject(created), nil
}

func (r *projectRepository) Get(ctx context.Context, id int64) (*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.projects[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrProjectNotFound, "project not found", goerr.V("id", id))
	}

	return copyProject(p), nil
}

func (r *projectRepository) List(ctx context.Context) ([]*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	projects := make([]*model.Project, 0, len(r.projects))
	for _, p := range r.projects {
		projects = append(projects, copyProject(p))
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].ID < projects[j].ID
	})

	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, p *model.Project) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.projects[p.ID]
	if !exists {
		return nil, goerr.Wrap(model.ErrProjectNotFound, "project not found", goerr.V("id", p.ID))
	}

	updated := &model.Project{
		ID:          existing.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status.Normalize(),
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}

	r.projects[updated.ID] = updated
	return copyProject(updated), nil
}

func (r *projectRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.projects)), nil
}

// exists reports whether a project is present without copying it
func (r *projectRepository) exists(id int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.projects[id]
	return ok
}
