package model

import (
	"strings"

	"github.com/constructsafe/constructsafe/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// CategoryRule maps one risk category to its detection keywords, fixed
// impact weight and mitigation recommendation.
type CategoryRule struct {
	ID         types.CategoryID
	Name       string
	Keywords   []string
	Impact     float64
	Mitigation string
}

// Validate checks if the CategoryRule is valid
func (r *CategoryRule) Validate() error {
	if err := r.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid category ID")
	}
	if r.Name == "" {
		return goerr.New("category name is required", goerr.V("id", r.ID))
	}
	if len(r.Keywords) == 0 {
		return goerr.New("category requires at least one keyword", goerr.V("id", r.ID))
	}
	for _, kw := range r.Keywords {
		if kw == "" {
			return goerr.New("category keyword cannot be empty", goerr.V("id", r.ID))
		}
	}
	if r.Impact <= 0 || r.Impact > 1 {
		return goerr.New("category impact must be in (0, 1]", goerr.V("id", r.ID), goerr.V("impact", r.Impact))
	}
	if r.Mitigation == "" {
		return goerr.New("category mitigation is required", goerr.V("id", r.ID))
	}
	return nil
}

// RuleTable is the process-wide static category rule configuration. It is
// built once at startup and passed explicitly into the detection engine;
// it has no mutation operations. Iteration order is declaration order,
// which fixes the tie-break order for all ordering-sensitive consumers.
type RuleTable struct {
	rules []CategoryRule
	index map[types.CategoryID]int
}

// NewRuleTable builds a RuleTable from the given rules. Category IDs must
// be unique; keyword sets may overlap across categories. Keywords are
// lowercased and deduplicated in first-occurrence order: matching is
// case-insensitive and a keyword either matches or not, so case variants
// and repeats must not change scoring.
func NewRuleTable(rules []CategoryRule) (*RuleTable, error) {
	index := make(map[types.CategoryID]int, len(rules))
	copied := make([]CategoryRule, len(rules))

	for i, rule := range rules {
		if err := rule.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid category rule")
		}
		if _, exists := index[rule.ID]; exists {
			return nil, goerr.New("duplicate category ID", goerr.V("id", rule.ID))
		}

		copied[i] = rule
		copied[i].Keywords = normalizeKeywords(rule.Keywords)
		index[rule.ID] = i
	}

	return &RuleTable{rules: copied, index: index}, nil
}

func normalizeKeywords(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		lowered := strings.ToLower(kw)
		if _, ok := seen[lowered]; ok {
			continue
		}
		seen[lowered] = struct{}{}
		normalized = append(normalized, lowered)
	}
	return normalized
}

// Lookup returns the rule for the given category
func (t *RuleTable) Lookup(id types.CategoryID) (CategoryRule, bool) {
	i, ok := t.index[id]
	if !ok {
		return CategoryRule{}, false
	}
	return t.rules[i], true
}

// Categories returns all category IDs in declaration order
func (t *RuleTable) Categories() []types.CategoryID {
	ids := make([]types.CategoryID, len(t.rules))
	for i, rule := range t.rules {
		ids[i] = rule.ID
	}
	return ids
}

// Rules returns all rules in declaration order
func (t *RuleTable) Rules() []CategoryRule {
	rules := make([]CategoryRule, len(t.rules))
	copy(rules, t.rules)
	return rules
}

// Len returns the number of configured categories
func (t *RuleTable) Len() int {
	return len(t.rules)
}

// DefaultRuleTable returns the built-in construction risk rule table.
// Safety and cost carry the higher 0.7 impact weight; schedule and
// quality carry 0.5.
func DefaultRuleTable() *RuleTable {
	table, err := NewRuleTable([]CategoryRule{
		{
			ID:         "schedule",
			Name:       "Schedule",
			Keywords:   []string{"delay", "behind schedule", "late", "postpone", "extension"},
			Impact:     0.5,
			Mitigation: "Review the project timeline and resequence critical-path activities to recover float.",
		},
		{
			ID:         "cost",
			Name:       "Cost",
			Keywords:   []string{"over budget", "cost overrun", "expensive", "price increase", "additional cost"},
			Impact:     0.7,
			Mitigation: "Audit affected budget line items and update the cost forecast with the project controller.",
		},
		{
			ID:         "safety",
			Name:       "Safety",
			Keywords:   []string{"accident", "injury", "unsafe", "hazard", "danger", "violation"},
			Impact:     0.7,
			Mitigation: "Conduct an immediate site safety inspection and hold a toolbox talk before work resumes.",
		},
		{
			ID:         "quality",
			Name:       "Quality",
			Keywords:   []string{"defect", "poor quality", "rework", "failure", "issue", "problem"},
			Impact:     0.5,
			Mitigation: "Schedule a quality inspection and agree rework acceptance criteria with the site engineer.",
		},
	})
	if err != nil {
		// The built-in table is validated by tests; a failure here is a
		// programming error.
		panic(err)
	}
	return table
}
