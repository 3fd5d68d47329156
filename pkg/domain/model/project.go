package model

import (
	"time"

	"github.com/constructsafe/constructsafe/pkg/domain/types"
)

// Project represents a construction project that risks are recorded against
type Project struct {
	ID          int64
	Name        string
	Description string
	Status      types.ProjectStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
