// Package reconcile compares two tabular datasets against a declarative rule list.
//
// Each Rule names two data sources, the key columns that line their records up and a
// check type:
//
//   - key_match: every distinct key must exist on both sides
//   - value_equals: joined values must agree within a tolerance
//   - fuzzy_match: joined text must reach a similarity threshold
//   - aggregate_sum, aggregate_avg: column totals or means must agree within a tolerance
//   - aggregate_count: both sides must hold the same number of rows
//
// # Evaluation Model
//
// Evaluate is a pure function of a rule and a dataset.Resolver. It returns an Outcome:
// the Results the rule produced plus a Delta describing how the run Summary changes.
// Engine.Run walks the active rules in order and folds each Outcome into a fresh Summary,
// so a rule with a configuration problem, an unknown check type or a failure during
// evaluation still leaves exactly one Result in the audit trail without stopping the run.
//
// # Usage
//
//	eng := reconcile.NewEngine(dataset.NewHintResolver(reg), reconcile.WithLogger(events))
//	summary := eng.Run(rules)
//	fmt.Println(summary.RulesPassed, summary.RulesFailed)
package reconcile
