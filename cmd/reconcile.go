package cmd

import (
	"encoding/json"
	"os"

	"recon-engine/core/report"

	"github.com/spf13/cobra"
)

// sectionJSON prints the summary of the engine a section command ran.
var sectionJSON bool

// reconcileCmd runs only the reconciliation rules of a rule set.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile <rules>",
	Short: "Run the reconciliation rules of a rule set",
	Long:  `Loads the rule set and its data sources, runs the reconciliation rules and prints the summary. No report is written.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSection(cmd, args[0], true)
	},
}

// validateCmd runs only the validation rules of a rule set.
var validateCmd = &cobra.Command{
	Use:   "validate <rules>",
	Short: "Run the validation rules of a rule set",
	Long:  `Loads the rule set and its data sources, runs the validation rules and prints the summary. No report is written.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSection(cmd, args[0], false)
	},
}

func init() {
	for _, c := range []*cobra.Command{reconcileCmd, validateCmd} {
		c.Flags().BoolVar(&sectionJSON, "json", false, "print the summary with every result to stdout")
		RootCmd.AddCommand(c)
	}
}

func runSection(cmd *cobra.Command, path string, reconciliation bool) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.close()

	set, err := loadRuleSet(env, path)
	if err != nil {
		return err
	}
	if reconciliation {
		set.Validation = nil
	} else {
		set.Reconciliation = nil
	}

	ctx := cmd.Context()
	runCfg := report.Config{Project: env.cfg.Run.Project}
	env.connect(ctx, set, runCfg)
	svc, err := env.service(ctx, runCfg, nil)
	if err != nil {
		return err
	}
	exec, err := svc.Execute(ctx, set)
	if err != nil {
		return err
	}

	var summary any
	if reconciliation {
		printReconciliation(env.logger, exec.Report.Reconciliation)
		summary = exec.Report.Reconciliation
	} else {
		printValidation(env.logger, exec.Report.Validation)
		summary = exec.Report.Validation
	}

	if sectionJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	return nil
}
