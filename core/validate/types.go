package validate

import (
	"strings"

	"recon-engine/core/result"
)

// Rule is one validation rule as authored in a rule sheet.
type Rule struct {
	ID         string `json:"rule_id" yaml:"rule_id"`
	Name       string `json:"rule_name" yaml:"rule_name"`
	Active     *bool  `json:"active,omitempty" yaml:"active,omitempty"`
	DataSource string `json:"data_source" yaml:"data_source"`
	Column     string `json:"column" yaml:"column"`
	CheckType  Kind   `json:"check_type" yaml:"check_type"`
	Parameter1 Param  `json:"parameter_1,omitempty" yaml:"parameter_1,omitempty"`
	Parameter2 Param  `json:"parameter_2,omitempty" yaml:"parameter_2,omitempty"`
	Severity   string `json:"severity,omitempty" yaml:"severity,omitempty"`

	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// NaturalLanguage is free text a Translator may turn into the structured fields above.
	NaturalLanguage string `json:"natural_language_rule,omitempty" yaml:"natural_language_rule,omitempty"`
}

// IsActive reports whether the rule should run. An unset flag means active.
func (r Rule) IsActive() bool {
	return r.Active == nil || *r.Active
}

// Normalized returns a copy with trimmed names and a lower-cased check kind.
func (r Rule) Normalized() Rule {
	r.ID = strings.TrimSpace(r.ID)
	if r.ID == "" {
		r.ID = "UNKNOWN"
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		r.Name = "Unnamed Rule"
	}
	r.DataSource = strings.TrimSpace(r.DataSource)
	r.Column = strings.TrimSpace(r.Column)
	r.CheckType = Kind(strings.ToLower(strings.TrimSpace(string(r.CheckType))))
	return r
}

// SeverityLevel returns the normalized severity. Blank means ERROR.
func (r Rule) SeverityLevel() result.Severity {
	return result.ParseSeverity(r.Severity)
}

// Result is one finding of a validation rule.
type Result struct {
	RuleID    string          `json:"rule_id"`
	RuleName  string          `json:"rule_name"`
	RecordKey string          `json:"record_key"`
	Column    string          `json:"column"`
	Value     string          `json:"value"`
	Expected  string          `json:"expected"`
	Status    result.Status   `json:"status"`
	Severity  result.Severity `json:"severity"`
	Details   string          `json:"details"`
}

// Delta describes how one rule evaluation changes the Summary.
type Delta struct {
	Executed bool
	Passed   bool
	Failed   bool
	// Errors and Warnings count FAIL results by rule severity.
	Errors   int
	Warnings int
}

// Outcome is the product of evaluating one rule.
type Outcome struct {
	Results []Result
	Delta   Delta
}

// Summary accumulates one validation run.
type Summary struct {
	TotalRecords        int      `json:"total_records"`
	RecordsPassed       int      `json:"records_passed"`
	RecordsWithErrors   int      `json:"records_with_errors"`
	RecordsWithWarnings int      `json:"records_with_warnings"`
	RulesExecuted       int      `json:"rules_executed"`
	RulesPassed         int      `json:"rules_passed"`
	RulesFailed         int      `json:"rules_failed"`
	Results             []Result `json:"results"`
}

// NewSummary returns an empty summary over totalRecords records.
func NewSummary(totalRecords int) *Summary {
	return &Summary{TotalRecords: totalRecords, Results: []Result{}}
}

// Apply folds one outcome into the summary.
func (s *Summary) Apply(o Outcome) {
	s.Results = append(s.Results, o.Results...)
	d := o.Delta
	if d.Executed {
		s.RulesExecuted++
	}
	if d.Passed {
		s.RulesPassed++
	}
	if d.Failed {
		s.RulesFailed++
	}
	s.RecordsWithErrors += d.Errors
	s.RecordsWithWarnings += d.Warnings
}

// Finish computes records_passed from the distinct record keys of FAIL results.
func (s *Summary) Finish() {
	failed := make(map[string]struct{})
	for _, r := range s.Results {
		if r.Status == result.Fail {
			failed[r.RecordKey] = struct{}{}
		}
	}
	s.RecordsPassed = s.TotalRecords - len(failed)
}
