package interfaces

import (
	"context"

	"github.com/constructsafe/constructsafe/pkg/domain/model"
	"github.com/constructsafe/constructsafe/pkg/domain/types"
)

// RiskRepository defines the interface for Risk data access
type RiskRepository interface {
	// BatchCreate persists all given risks against the project as a
	// single transactional unit: either every record is written or none
	// is. IDs are assigned contiguously in slice order. It fails with
	// model.ErrProjectNotFound before writing anything when the project
	// does not exist.
	BatchCreate(ctx context.Context, projectID int64, risks []*model.Risk) ([]*model.Risk, error)

	// Get retrieves a risk by ID
	Get(ctx context.Context, id int64) (*model.Risk, error)

	// List retrieves risks ordered by risk score descending. Ties are
	// broken by insertion order. Use WithProjectID to filter.
	List(ctx context.Context, opts ...ListRiskOption) ([]*model.Risk, error)

	// UpdateStatus overwrites only the status of an existing risk
	UpdateStatus(ctx context.Context, id int64, status types.RiskStatus) (*model.Risk, error)

	// Count returns the number of risk records
	Count(ctx context.Context) (int64, error)
}
