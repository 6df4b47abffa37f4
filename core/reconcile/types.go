package reconcile

import (
	"strings"

	"recon-engine/core/compare"
	"recon-engine/core/result"
)

// CheckType selects how a rule compares its two sources.
type CheckType string

const (
	KeyMatch       CheckType = "key_match"
	ValueEquals    CheckType = "value_equals"
	FuzzyMatch     CheckType = "fuzzy_match"
	AggregateSum   CheckType = "aggregate_sum"
	AggregateCount CheckType = "aggregate_count"
	AggregateAvg   CheckType = "aggregate_avg"
)

// CheckTypes lists every check type the engine evaluates.
var CheckTypes = []CheckType{KeyMatch, ValueEquals, FuzzyMatch, AggregateSum, AggregateCount, AggregateAvg}

// IsKnown reports whether the engine evaluates this check type.
func (c CheckType) IsKnown() bool {
	for _, k := range CheckTypes {
		if c == k {
			return true
		}
	}
	return false
}

// Rule is one reconciliation rule as authored in a rule sheet.
type Rule struct {
	ID             string                `json:"rule_id" yaml:"rule_id"`
	Name           string                `json:"rule_name" yaml:"rule_name"`
	Active         *bool                 `json:"active,omitempty" yaml:"active,omitempty"`
	Source1        string                `json:"source1" yaml:"source1"`
	Source2        string                `json:"source2" yaml:"source2"`
	KeyColumn1     string                `json:"key_column_s1" yaml:"key_column_s1"`
	KeyColumn2     string                `json:"key_column_s2" yaml:"key_column_s2"`
	CheckType      CheckType             `json:"check_type" yaml:"check_type"`
	CompareColumn1 string                `json:"compare_column_s1,omitempty" yaml:"compare_column_s1,omitempty"`
	CompareColumn2 string                `json:"compare_column_s2,omitempty" yaml:"compare_column_s2,omitempty"`
	Tolerance      *float64              `json:"tolerance,omitempty" yaml:"tolerance,omitempty"`
	ToleranceType  compare.ToleranceType `json:"tolerance_type,omitempty" yaml:"tolerance_type,omitempty"`

	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// NaturalLanguage is free text a Translator may turn into the structured fields above.
	NaturalLanguage string `json:"natural_language_rule,omitempty" yaml:"natural_language_rule,omitempty"`
}

// IsActive reports whether the rule should run. An unset flag means active.
func (r Rule) IsActive() bool {
	return r.Active == nil || *r.Active
}

// Normalized returns a copy with trimmed references and lower-cased type names.
func (r Rule) Normalized() Rule {
	r.ID = strings.TrimSpace(r.ID)
	if r.ID == "" {
		r.ID = "UNKNOWN"
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		r.Name = "Unnamed Rule"
	}
	r.Source1 = strings.TrimSpace(r.Source1)
	r.Source2 = strings.TrimSpace(r.Source2)
	r.KeyColumn1 = strings.TrimSpace(r.KeyColumn1)
	r.KeyColumn2 = strings.TrimSpace(r.KeyColumn2)
	r.CompareColumn1 = strings.TrimSpace(r.CompareColumn1)
	r.CompareColumn2 = strings.TrimSpace(r.CompareColumn2)
	r.CheckType = CheckType(strings.ToLower(strings.TrimSpace(string(r.CheckType))))
	r.ToleranceType = compare.ToleranceType(strings.ToLower(strings.TrimSpace(string(r.ToleranceType))))
	return r
}

// Result is one finding of a reconciliation rule.
type Result struct {
	RuleID       string          `json:"rule_id"`
	RuleName     string          `json:"rule_name"`
	RecordKey    string          `json:"record_key"`
	Source1Value string          `json:"source1_value"`
	Source2Value string          `json:"source2_value"`
	Difference   string          `json:"difference"`
	Status       result.Status   `json:"status"`
	Severity     result.Severity `json:"severity"`
	Details      string          `json:"details"`
}

// KeyStats are the key coverage counters set by key_match.
type KeyStats struct {
	TotalSource1 int `json:"total_source1"`
	TotalSource2 int `json:"total_source2"`
	Matched      int `json:"matched"`
	Unmatched1   int `json:"unmatched_source1"`
	Unmatched2   int `json:"unmatched_source2"`
}

// Delta describes how one rule evaluation changes the Summary.
type Delta struct {
	// Executed is false only when evaluation itself broke down.
	Executed bool
	Passed   bool
	Failed   bool
	// ValueDiscrepancies counts value_equals mismatches.
	ValueDiscrepancies int
	// Keys, when set, replaces the summary's key coverage counters.
	Keys *KeyStats
}

// Outcome is the product of evaluating one rule.
type Outcome struct {
	Results []Result
	Delta   Delta
}

// Summary accumulates one reconciliation run.
type Summary struct {
	TotalRecordsSource1 int      `json:"total_records_source1"`
	TotalRecordsSource2 int      `json:"total_records_source2"`
	MatchedRecords      int      `json:"matched_records"`
	UnmatchedSource1    int      `json:"unmatched_source1"`
	UnmatchedSource2    int      `json:"unmatched_source2"`
	ValueDiscrepancies  int      `json:"value_discrepancies"`
	RulesExecuted       int      `json:"rules_executed"`
	RulesPassed         int      `json:"rules_passed"`
	RulesFailed         int      `json:"rules_failed"`
	Results             []Result `json:"results"`
}

// NewSummary returns an empty summary.
func NewSummary() *Summary {
	return &Summary{Results: []Result{}}
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
	s.ValueDiscrepancies += d.ValueDiscrepancies
	if d.Keys != nil {
		s.TotalRecordsSource1 = d.Keys.TotalSource1
		s.TotalRecordsSource2 = d.Keys.TotalSource2
		s.MatchedRecords = d.Keys.Matched
		s.UnmatchedSource1 = d.Keys.Unmatched1
		s.UnmatchedSource2 = d.Keys.Unmatched2
	}
}

// CountStatus returns how many results carry status.
func (s *Summary) CountStatus(status result.Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}
