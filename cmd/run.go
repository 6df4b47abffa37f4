package cmd

import (
	"encoding/json"
	"os"

	"recon-engine/core/reconcile"
	"recon-engine/core/report"
	"recon-engine/core/result"
	"recon-engine/core/rules"
	"recon-engine/core/validate"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the run command
	runProject string
	runOutput  string
	runPublish bool
	runHistory bool
	runJSON    bool
)

// runCmd runs both engines and writes the report.
var runCmd = &cobra.Command{
	Use:   "run <rules>",
	Short: "Run reconciliation and validation and write the report",
	Long: `Loads the rule set file (YAML or JSON), loads every data source it names, runs the
reconciliation and validation rules and writes the run report to the output directory.

Examples:
  # Write the report to ./output
  run rules/month_end.yaml

  # Publish the report to the storage bucket and record the run
  run rules/month_end.yaml --publish --history

  # Print the report instead of writing a file
  run rules/month_end.yaml --output "" --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		defer env.close()

		runCfg := env.cfg.Run
		flags := cmd.Flags()
		if flags.Changed("project") {
			runCfg.Project = runProject
		}
		if flags.Changed("output") {
			runCfg.OutputDir = runOutput
		}
		if flags.Changed("publish") {
			runCfg.Publish = runPublish
		}
		if flags.Changed("history") {
			runCfg.History = runHistory
		}

		set, err := loadRuleSet(env, args[0])
		if err != nil {
			return err
		}
		if flags.Changed("project") {
			set.Project = runProject
		}

		ctx := cmd.Context()
		env.connect(ctx, set, runCfg)
		svc, err := env.service(ctx, runCfg, nil)
		if err != nil {
			return err
		}

		exec, err := svc.Execute(ctx, set)
		if err != nil {
			return err
		}

		printReconciliation(env.logger, exec.Report.Reconciliation)
		printValidation(env.logger, exec.Report.Validation)
		env.logger.Info("Run complete",
			zap.String("report_id", exec.Report.ID),
			zap.Float64("match_rate", exec.Report.Overview.MatchRate),
			zap.Float64("pass_rate", exec.Report.Overview.PassRate),
			zap.String("path", exec.Path),
			zap.String("key", exec.Key),
		)

		if runJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(exec.Report)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runProject, "project", "", "project name used in the report name")
	runCmd.Flags().StringVar(&runOutput, "output", "", "report directory (empty disables the file)")
	runCmd.Flags().BoolVar(&runPublish, "publish", false, "upload the report to the storage bucket")
	runCmd.Flags().BoolVar(&runHistory, "history", false, "record the run in the database")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "print the report to stdout")

	RootCmd.AddCommand(runCmd)
}

// loadRuleSet loads the file at path and logs lint problems as warnings.
func loadRuleSet(env *environment, path string) (*rules.RuleSet, error) {
	set, err := rules.Load(path)
	if err != nil {
		return nil, err
	}
	for _, p := range rules.Lint(set) {
		env.logger.Warn("Rule set problem", zap.String("problem", p.String()))
	}
	env.logger.Info("Rule set loaded",
		zap.String("project", set.Project),
		zap.Int("sources", len(set.Sources)),
		zap.Int("reconciliation_rules", len(set.Reconciliation)),
		zap.Int("validation_rules", len(set.Validation)),
	)
	return set, nil
}

// maxShown caps the findings printed per engine.
const maxShown = 10

func printReconciliation(l *zap.Logger, s *reconcile.Summary) {
	if s == nil {
		return
	}
	l.Info("Reconciliation summary",
		zap.Int("total_source1", s.TotalRecordsSource1),
		zap.Int("total_source2", s.TotalRecordsSource2),
		zap.Int("matched", s.MatchedRecords),
		zap.Int("unmatched_source1", s.UnmatchedSource1),
		zap.Int("unmatched_source2", s.UnmatchedSource2),
		zap.Int("value_discrepancies", s.ValueDiscrepancies),
		zap.Int("rules_passed", s.RulesPassed),
		zap.Int("rules_failed", s.RulesFailed),
		zap.Float64("match_rate", report.MatchRate(s)),
	)
	shown := 0
	for _, r := range s.Results {
		if r.Status == result.Pass {
			continue
		}
		if shown == maxShown {
			l.Info("Additional findings not shown")
			break
		}
		shown++
		l.Info("Finding",
			zap.String("rule", r.RuleID),
			zap.String("key", r.RecordKey),
			zap.String("status", string(r.Status)),
			zap.String("details", r.Details),
		)
	}
}

func printValidation(l *zap.Logger, s *validate.Summary) {
	if s == nil {
		return
	}
	l.Info("Validation summary",
		zap.Int("total_records", s.TotalRecords),
		zap.Int("records_passed", s.RecordsPassed),
		zap.Int("records_with_errors", s.RecordsWithErrors),
		zap.Int("records_with_warnings", s.RecordsWithWarnings),
		zap.Int("rules_passed", s.RulesPassed),
		zap.Int("rules_failed", s.RulesFailed),
		zap.Float64("pass_rate", report.PassRate(s)),
	)
	shown := 0
	for _, r := range s.Results {
		if r.Status == result.Pass {
			continue
		}
		if shown == maxShown {
			l.Info("Additional findings not shown")
			break
		}
		shown++
		l.Info("Finding",
			zap.String("rule", r.RuleID),
			zap.String("key", r.RecordKey),
			zap.String("column", r.Column),
			zap.String("status", string(r.Status)),
			zap.String("details", r.Details),
		)
	}
}
