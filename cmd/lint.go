package cmd

import (
	"fmt"
	"os"

	"recon-engine/core/logger"
	"recon-engine/core/rules"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// docsPath receives a Markdown summary of the linted rule set; "-" means stdout.
var docsPath string

// lintCmd checks a rule set without loading data.
var lintCmd = &cobra.Command{
	Use:   "lint <rules>",
	Short: "Check a rule set for unknown check types and malformed parameters",
	Long: `Checks a rule set without loading data.
With --docs, also writes a Markdown table of the rules to a file, or to stdout for "-".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := logger.New(&logger.Config{Level: "info", Format: "console"})
		if err != nil {
			return err
		}
		defer l.Sync()

		set, err := rules.Load(args[0])
		if err != nil {
			return err
		}
		if docsPath != "" {
			if err := writeDocs(set, docsPath); err != nil {
				return err
			}
			l.Info("Rule documentation written", zap.String("path", docsPath))
		}

		problems := rules.Lint(set)
		for _, p := range problems {
			l.Warn("Problem", zap.String("section", p.Section), zap.String("rule", p.RuleID), zap.String("message", p.Message))
		}
		if len(problems) > 0 {
			return fmt.Errorf("%d problems found in %s", len(problems), args[0])
		}
		l.Info("Rule set is valid",
			zap.Int("reconciliation_rules", len(set.Reconciliation)),
			zap.Int("validation_rules", len(set.Validation)),
		)
		return nil
	},
}

func writeDocs(set *rules.RuleSet, path string) error {
	doc := set.Documentation()
	if path == "-" {
		_, err := fmt.Fprint(os.Stdout, doc)
		return err
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("failed to write documentation: %w", err)
	}
	return nil
}

func init() {
	lintCmd.Flags().StringVar(&docsPath, "docs", "", `write rule documentation to this file ("-" for stdout)`)
	RootCmd.AddCommand(lintCmd)
}
