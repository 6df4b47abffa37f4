package validate

import (
	"fmt"
	"strings"

	"recon-engine/core/dataset"
	"recon-engine/core/logger"
	"recon-engine/core/result"
)

// firster is satisfied by resolvers that know their first registered dataset.
type firster interface {
	First() (*dataset.Dataset, bool)
}

// Engine runs validation rules against the datasets its resolver knows.
type Engine struct {
	resolver dataset.Resolver
	log      logger.Func
	total    *int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes engine events to fn.
func WithLogger(fn logger.Func) Option {
	return func(e *Engine) {
		e.log = logger.Or(fn)
	}
}

// WithTotalRecords fixes total_records instead of taking the validated dataset's length.
func WithTotalRecords(n int) Option {
	return func(e *Engine) {
		e.total = &n
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
	e.log(logger.LevelInfo, "Engine", fmt.Sprintf("Starting validation with %d rules", len(rules)))

	summary := NewSummary(e.totalRecords(rules))
	for _, rule := range rules {
		if !rule.IsActive() {
			e.log(logger.LevelInfo, "Engine", fmt.Sprintf("Skipping inactive rule: %s", rule.ID))
			continue
		}
		summary.Apply(e.Evaluate(rule))
	}
	summary.Finish()

	e.log(logger.LevelInfo, "Engine", fmt.Sprintf("Validation complete: %d passed, %d failed",
		summary.RulesPassed, summary.RulesFailed))
	return summary
}

// Evaluate runs one rule. Failures inside the check become a single ERROR result.
func (e *Engine) Evaluate(rule Rule) (out Outcome) {
	rule = rule.Normalized()
	e.log(logger.LevelInfo, "ValidationEngine", fmt.Sprintf("Executing rule %s: %s", rule.ID, rule.Name))

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
		e.log(logger.LevelWarning, "ValidationEngine", fmt.Sprintf("Unknown check type: %s", rule.CheckType))
	}
	return out
}

func (e *Engine) executionError(rule Rule, err error) Outcome {
	e.log(logger.LevelError, "ValidationEngine", fmt.Sprintf("Error executing rule %s: %v", rule.ID, err))
	return Outcome{Results: []Result{
		notApplicable(rule, result.Error, result.SeverityError, fmt.Sprintf("Execution error: %v", err)),
	}}
}

// totalRecords is the length of the dataset the first active rule checks. Without
// such a rule it falls back to the first registered dataset.
func (e *Engine) totalRecords(rules []Rule) int {
	if e.total != nil {
		return *e.total
	}
	for _, rule := range rules {
		if !rule.IsActive() {
			continue
		}
		if ds, ok := e.resolver.Resolve(strings.TrimSpace(rule.DataSource)); ok {
			return ds.Len()
		}
	}
	if f, ok := e.resolver.(firster); ok {
		if ds, ok := f.First(); ok {
			return ds.Len()
		}
	}
	return 0
}
