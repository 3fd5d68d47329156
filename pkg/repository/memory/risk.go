package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/constructsafe/constructsafe/pkg/domain/interfaces"
	"github.com/constructsafe/constructsafe/pkg/domain/model"
	"github.com/constructsafe/constructsafe/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type riskRepository struct {
	mu       sync.RWMutex
	risks    map[int64]*model.Risk
	nextID   int64
	projects *projectRepository
}

func newRiskRepository(projects *projectRepository) *riskRepository {
	return &riskRepository{
		risks:    make(map[int64]*model.Risk),
		nextID:   1,
		projects: projects,
	}
}

func copyRisk(risk *model.Risk) *model.Risk {
	copied := *risk
	return &copied
}

func (r *riskRepository) BatchCreate(ctx context.Context, projectID int64, risks []*model.Risk) ([]*model.Risk, error) {
	if !r.projects.exists(projectID) {
		return nil, goerr.Wrap(model.ErrProjectNotFound, "cannot save risks for missing project", goerr.V("projectID", projectID))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := make([]*model.Risk, 0, len(risks))
	for _, risk := range risks {
		rec := copyRisk(risk)
		rec.ID = r.nextID
		rec.ProjectID = projectID
		rec.Status = risk.Status.Normalize()
		rec.CreatedAt = now
		r.nextID++

		r.risks[rec.ID] = rec
		created = append(created, copyRisk(rec))
	}

	return created, nil
}

func (r *riskRepository) Get(ctx context.Context, id int64) (*model.Risk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	risk, exists := r.risks[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrRiskNotFound, "risk not found", goerr.V("id", id))
	}

	return copyRisk(risk), nil
}

func (r *riskRepository) List(ctx context.Context, opts ...interfaces.ListRiskOption) ([]*model.Risk, error) {
	cfg := interfaces.BuildListRiskConfig(opts...)

	r.mu.RLock()
	defer r.mu.RUnlock()

	risks := make([]*model.Risk, 0, len(r.risks))
	for _, risk := range r.risks {
		if cfg.ProjectID() != nil && risk.ProjectID != *cfg.ProjectID() {
			continue
		}
		risks = append(risks, copyRisk(risk))
	}

	// Sort by ID first so the stable score sort breaks ties by
	// insertion order.
	sort.Slice(risks, func(i, j int) bool {
		return risks[i].ID < risks[j].ID
	})
	sort.SliceStable(risks, func(i, j int) bool {
		return risks[i].RiskScore > risks[j].RiskScore
	})

	return risks, nil
}

func (r *riskRepository) UpdateStatus(ctx context.Context, id int64, status types.RiskStatus) (*model.Risk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.risks[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrRiskNotFound, "risk not found", goerr.V("id", id))
	}

	updated := copyRisk(existing)
	updated.Status = status
	r.risks[id] = updated

	return copyRisk(updated), nil
}

func (r *riskRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.risks)), nil
}
