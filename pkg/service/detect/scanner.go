package detect

import (
	"strings"

	"github.com/constructsafe/constructsafe/pkg/domain/model"
)

// Match holds the keywords of one category found within an analyzed text.
// Keywords keeps the rule's keyword-list order.
type Match struct {
	Rule     model.CategoryRule
	Keywords []string
}

// Scanner finds category keywords in free-form text. Matching is
// case-insensitive substring containment with no tokenization, so
// "delay" also matches inside "delays". That is the intended contract,
// not an accuracy bug to fix here.
type Scanner struct {
	rules *model.RuleTable
}

// NewScanner creates a scanner over the given rule table
func NewScanner(rules *model.RuleTable) *Scanner {
	return &Scanner{rules: rules}
}

// Scan returns one Match per category with at least one keyword hit, in
// rule table iteration order. Categories without hits are dropped.
// Empty text yields no matches.
func (s *Scanner) Scan(text string) []Match {
	lowered := strings.ToLower(text)

	var matches []Match
	for _, rule := range s.rules.Rules() {
		var found []string
		for _, keyword := range rule.Keywords {
			if strings.Contains(lowered, keyword) {
				found = append(found, keyword)
			}
		}

		if len(found) > 0 {
			matches = append(matches, Match{Rule: rule, Keywords: found})
		}
	}

	return matches
}
