package reconcile

import (
	"fmt"

	"recon-engine/core/dataset"
	"recon-engine/core/logger"
	"recon-engine/core/result"
)

// Engine runs reconciliation rules against the datasets its resolver knows.
// An Engine keeps no state between runs.
type Engine struct {
	resolver dataset.Resolver
	log      logger.Func
	mappings *MappingTable
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes engine events to fn.
func WithLogger(fn logger.Func) Option {
	return func(e *Engine) {
		e.log = logger.Or(fn)
	}
}

// WithMappings completes rules that leave a source-2 column blank.
func WithMappings(t *MappingTable) Option {
	return func(e *Engine) {
		e.mappings = t
	}
}

// NewEngine creates an engine resolving data source references through resolver.
func NewEngine(resolver dataset.Resolver, opts ...Option) *Engine {
	e := &Engine{resolver: resolver, log: logger.Nop}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run evaluates every active rule in order and returns the accumulated summary.
func (e *Engine) Run(rules []Rule) *Summary {
	e.log(logger.LevelInfo, "Engine", fmt.Sprintf("Starting reconciliation with %d rules", len(rules)))

	summary := NewSummary()
	for _, rule := range rules {
		if !rule.IsActive() {
			e.log(logger.LevelInfo, "Engine", fmt.Sprintf("Skipping inactive rule: %s", rule.ID))
			continue
		}
		summary.Apply(e.Evaluate(rule))
	}

	e.log(logger.LevelInfo, "Engine", fmt.Sprintf("Reconciliation complete: %d passed, %d failed",
		summary.RulesPassed, summary.RulesFailed))
	return summary
}

// Evaluate runs one rule. Failures inside the check become a single ERROR result.
func (e *Engine) Evaluate(rule Rule) (out Outcome) {
	rule = e.mappings.Complete(rule.Normalized())
	e.log(logger.LevelInfo, "RuleEngine", fmt.Sprintf("Executing rule %s: %s", rule.ID, rule.Name))

	defer func() {
		if r := recover(); r != nil {
			out = e.executionError(rule, fmt.Errorf("%v", r))
		}
	}()

	out, err := Evaluate(rule, e.resolver)
	if err != nil {
		return e.executionError(rule, err)
	}
	if !rule.CheckType.IsKnown() {
		e.log(logger.LevelWarning, "RuleEngine", fmt.Sprintf("Unknown check type: %s", rule.CheckType))
	}
	return out
}

func (e *Engine) executionError(rule Rule, err error) Outcome {
	e.log(logger.LevelError, "RuleEngine", fmt.Sprintf("Error executing rule %s: %v", rule.ID, err))
	return Outcome{Results: []Result{
		notApplicable(rule, result.Error, result.SeverityError, fmt.Sprintf("Execution error: %v", err)),
	}}
}

// Evaluate runs one rule against the resolver's datasets without any engine.
// A returned error means evaluation broke down and no outcome exists.
func Evaluate(rule Rule, resolver dataset.Resolver) (Outcome, error) {
	rule = rule.Normalized()
	switch rule.CheckType {
	case KeyMatch:
		return checkKeyMatch(rule, resolver), nil
	case ValueEquals:
		return checkValueEquals(rule, resolver), nil
	case FuzzyMatch:
		return checkFuzzyMatch(rule, resolver), nil
	case AggregateSum:
		return checkAggregate(rule, resolver, aggregateSum)
	case AggregateAvg:
		return checkAggregate(rule, resolver, aggregateAvg)
	case AggregateCount:
		return checkAggregateCount(rule, resolver), nil
	default:
		return Outcome{
			Results: []Result{notApplicable(rule, result.Skip, result.SeverityWarning,
				fmt.Sprintf("Unknown check type: %s", rule.CheckType))},
			Delta: Delta{Executed: true},
		}, nil
	}
}
