package cmd

import (
	"fmt"

	"recon-engine/core/database"
	"recon-engine/core/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// inspectTables lists database tables to describe next to the rule set sources.
	inspectTables []string
	// profileColumns logs a column profile for every loaded source.
	profileColumns bool
)

// sourcesCmd loads every source of a rule set and reports its shape.
var sourcesCmd = &cobra.Command{
	Use:   "sources <rules>",
	Short: "Load the data sources of a rule set and list their columns",
	Long: `Loads every data source the rule set names and prints its record count and columns.
With --profile, also logs per-column statistics (nulls, distinct values, numeric ranges,
lengths) to help choose checks and thresholds. With --table, also describes database tables.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		defer env.close()

		set, err := loadRuleSet(env, args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		env.connect(ctx, set, report.Config{})
		ld := env.loader()
		for _, spec := range set.Sources {
			ds, err := ld.Load(ctx, spec)
			if err != nil {
				env.logger.Error("Source failed", zap.String("source", spec.Name), zap.Error(err))
				continue
			}
			env.logger.Info("Source",
				zap.String("source", spec.Name),
				zap.Int("records", ds.Len()),
				zap.Strings("columns", ds.Columns),
			)
			if !profileColumns {
				continue
			}
			for _, column := range ds.Columns {
				p, err := ds.Profile(column)
				if err != nil {
					return err
				}
				env.logger.Info("Column profile", zap.String("source", spec.Name), zap.Any("profile", p))
			}
		}

		if len(inspectTables) == 0 {
			return nil
		}
		env.connectDatabase()
		if env.db == nil {
			return fmt.Errorf("table inspection needs a database connection")
		}
		for _, table := range inspectTables {
			columns, err := database.GetTableColumns(env.db, table)
			if err != nil {
				return err
			}
			for _, c := range columns {
				env.logger.Info("Table column",
					zap.String("table", table),
					zap.String("column", c.Field),
					zap.String("type", c.Type),
					zap.String("null", c.Null),
					zap.String("key", c.Key),
				)
			}
		}
		return nil
	},
}

func init() {
	sourcesCmd.Flags().StringSliceVar(&inspectTables, "table", nil, "database table to describe (repeatable)")
	sourcesCmd.Flags().BoolVar(&profileColumns, "profile", false, "log a statistical profile of every column")
	RootCmd.AddCommand(sourcesCmd)
}
