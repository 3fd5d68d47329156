// Package usecase orchestrates the detection engine and the repository:
// input validation, running the pure pipeline, and persisting results.
package usecase

import (
	"github.com/constructsafe/constructsafe/pkg/domain/interfaces"
	"github.com/constructsafe/constructsafe/pkg/domain/model"
	"github.com/constructsafe/constructsafe/pkg/service/detect"
)

type UseCases struct {
	repo   interfaces.Repository
	rules  *model.RuleTable
	engine *detect.Engine
}

// New creates the use case layer over a repository and a rule table. The
// rule table is fixed for the process lifetime; passing nil selects the
// built-in default table.
func New(repo interfaces.Repository, rules *model.RuleTable) *UseCases {
	if rules == nil {
		rules = model.DefaultRuleTable()
	}
	return &UseCases{
		repo:   repo,
		rules:  rules,
		engine: detect.New(rules),
	}
}

// Rules returns the rule table the engine runs with
func (uc *UseCases) Rules() *model.RuleTable {
	return uc.rules
}
