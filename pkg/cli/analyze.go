package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"

	"github.com/constructsafe/constructsafe/pkg/cli/config"
	"github.com/constructsafe/constructsafe/pkg/domain/model"
	"github.com/constructsafe/constructsafe/pkg/domain/types"
	"github.com/constructsafe/constructsafe/pkg/service/detect"
	"github.com/urfave/cli/v3"
)

// cmdAnalyze runs the detection engine once over a text file (or stdin)
// and prints the verdict. Nothing is persisted; it is a dry-run tool for
// tuning rule tables.
func cmdAnalyze() *cli.Command {
	var rulesCfg config.Rules
	var format string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Usage:       "Output format (text or json)",
			Value:       "text",
			Destination: &format,
		},
	}
	flags = append(flags, rulesCfg.Flags()...)

	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"a"},
		Usage:     "Analyze a text file (or stdin) without persisting results",
		ArgsUsage: "[file]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			rules, err := rulesCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load rule table")
			}

			text, err := readInput(c.Args().First())
			if err != nil {
				return err
			}

			engine := detect.New(rules)
			analysis := engine.Analyze(text)

			switch format {
			case "text":
				printAnalysis(os.Stdout, analysis)
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(analysis); err != nil {
					return goerr.Wrap(err, "failed to encode analysis")
				}
			default:
				return goerr.New("invalid output format", goerr.V("format", format))
			}
			return nil
		},
	}
}

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", goerr.Wrap(err, "failed to read stdin")
		}
		return string(data), nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read input file", goerr.V("path", path))
	}
	return string(data), nil
}

func printAnalysis(w io.Writer, analysis *model.Analysis) {
	fmt.Fprintf(w, "Overall: %s (score %.3f, %d categories)\n",
		colorForLevel(analysis.OverallRiskLevel).Sprint(analysis.OverallRiskLevel),
		analysis.OverallRiskScore,
		analysis.TotalRisksDetected,
	)

	for _, d := range analysis.DetectedRisks {
		fmt.Fprintf(w, "  %-10s %s  p=%.2f i=%.2f score=%.3f\n",
			d.Category.Display(),
			colorForPriority(d.Priority).Sprint(d.Priority),
			d.Probability,
			d.Impact,
			d.RiskScore,
		)
		fmt.Fprintf(w, "             keywords: %v\n", d.KeywordsFound)
		fmt.Fprintf(w, "             mitigation: %s\n", d.Mitigation)
	}
}

func colorForLevel(level types.RiskLevel) *color.Color {
	switch level {
	case types.RiskLevelHigh:
		return color.New(color.FgRed, color.Bold)
	case types.RiskLevelMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func colorForPriority(priority types.Priority) *color.Color {
	switch priority {
	case types.PriorityHigh:
		return color.New(color.FgRed, color.Bold)
	case types.PriorityMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}
