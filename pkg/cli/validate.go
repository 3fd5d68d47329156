package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"

	"github.com/constructsafe/constructsafe/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var rulesPath string

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a category rules TOML file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "rules",
				Usage:       "Path to category rules TOML file",
				Required:    true,
				Sources:     cli.EnvVars("CONSTRUCTSAFE_RULES"),
				Destination: &rulesPath,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			table, err := config.LoadRuleTable(rulesPath)
			if err != nil {
				color.New(color.FgRed, color.Bold).Fprintf(os.Stdout, "FAIL ")
				fmt.Printf("%s\n", rulesPath)
				return goerr.Wrap(err, "rules validation failed")
			}

			color.New(color.FgGreen, color.Bold).Fprintf(os.Stdout, "OK ")
			fmt.Printf("%s (%d categories)\n", rulesPath, table.Len())
			for _, rule := range table.Rules() {
				fmt.Printf("  %-12s %d keywords, impact %.2f\n", rule.ID, len(rule.Keywords), rule.Impact)
			}
			return nil
		},
	}
}
