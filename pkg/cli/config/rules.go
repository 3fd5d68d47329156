package config

import (
	"os"

	"github.com/constructsafe/constructsafe/pkg/domain/model"
	"github.com/constructsafe/constructsafe/pkg/domain/types"
	"github.com/constructsafe/constructsafe/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Rules holds CLI flags for the category rule table
type Rules struct {
	path string
}

// Flags returns CLI flags for rule table configuration
func (r *Rules) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "rules",
			Usage:       "Path to category rules TOML file (omit for the built-in table)",
			Sources:     cli.EnvVars("CONSTRUCTSAFE_RULES"),
			Destination: &r.path,
		},
	}
}

// Path returns the configured rules file path
func (r *Rules) Path() string {
	return r.path
}

// Configure returns the rule table: the file at --rules when given,
// otherwise the built-in default table.
func (r *Rules) Configure() (*model.RuleTable, error) {
	if r.path == "" {
		logging.Default().Info("Using built-in category rule table")
		return model.DefaultRuleTable(), nil
	}

	table, err := LoadRuleTable(r.path)
	if err != nil {
		return nil, err
	}

	logging.Default().Info("Loaded category rule table",
		"path", r.path,
		"categories", table.Len(),
	)
	return table, nil
}

// ruleCategory is one [[category]] entry in the rules TOML file
type ruleCategory struct {
	ID         string   `toml:"id"`
	Name       string   `toml:"name"`
	Keywords   []string `toml:"keywords"`
	Impact     float64  `toml:"impact"`
	Mitigation string   `toml:"mitigation"`
}

type rulesFile struct {
	Categories []ruleCategory `toml:"category"`
}

// LoadRuleTable loads and validates a category rule table from a TOML file
func LoadRuleTable(path string) (*model.RuleTable, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "rules file not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read rules file", goerr.V(ConfigPathKey, path))
	}

	var file rulesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse rules TOML", goerr.V(ConfigPathKey, path), goerr.V("cause", err.Error()))
	}

	if len(file.Categories) == 0 {
		return nil, goerr.Wrap(ErrInvalidConfig, "rules file defines no categories", goerr.V(ConfigPathKey, path))
	}

	rules := make([]model.CategoryRule, len(file.Categories))
	for i, cat := range file.Categories {
		rules[i] = model.CategoryRule{
			ID:         types.CategoryID(cat.ID),
			Name:       cat.Name,
			Keywords:   cat.Keywords,
			Impact:     cat.Impact,
			Mitigation: cat.Mitigation,
		}
	}

	table, err := model.NewRuleTable(rules)
	if err != nil {
		return nil, goerr.Wrap(err, "rules validation failed", goerr.V(ConfigPathKey, path))
	}

	return table, nil
}
