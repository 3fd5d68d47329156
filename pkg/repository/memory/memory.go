// Package memory provides an in-memory repository backend for
// development and tests.
package memory

import (
	"github.com/constructsafe/constructsafe/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	project *projectRepository
	risk    *riskRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	projectRepo := newProjectRepository()
	riskRepo := newRiskRepository(projectRepo)

	return &Memory{
		project: projectRepo,
		risk:    riskRepo,
	}
}

func (m *Memory) Project() interfaces.ProjectRepository {
	return m.project
}

func (m *Memory) Risk() interfaces.RiskRepository {
	return m.risk
}

func (m *Memory) Close() error {
	return nil
}
