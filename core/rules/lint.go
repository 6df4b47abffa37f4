package rules

import (
	"fmt"
	"strings"

	"recon-engine/core/compare"
	"recon-engine/core/reconcile"
	"recon-engine/core/result"
	"recon-engine/core/validate"
)

// Problem is one issue found in a rule set.
type Problem struct {
	RuleID  string `json:"rule_id,omitempty"`
	Section string `json:"section"`
	Message string `json:"message"`
}

func (p Problem) String() string {
	if p.RuleID == "" {
		return fmt.Sprintf("%s: %s", p.Section, p.Message)
	}
	return fmt.Sprintf("%s %s: %s", p.Section, p.RuleID, p.Message)
}

var toleranceTypes = []compare.ToleranceType{
	compare.Percentage, compare.Absolute, compare.Days, compare.SimilarityScore,
}

// Lint checks a rule set without loading any data. Inactive rules are checked too.
func Lint(s *RuleSet) []Problem {
	var problems []Problem
	add := func(section, id, format string, args ...any) {
		problems = append(problems, Problem{RuleID: id, Section: section, Message: fmt.Sprintf(format, args...)})
	}

	names := make(map[string]bool, len(s.Sources))
	for _, spec := range s.Sources {
		if err := spec.Validate(); err != nil {
			add("sources", "", "%v", err)
		}
		if names[spec.Name] {
			add("sources", "", "duplicate source name %s", spec.Name)
		}
		names[spec.Name] = true
	}

	seen := make(map[string]bool)
	for _, rule := range s.Reconciliation {
		r := rule.Normalized()
		if seen[r.ID] {
			add("reconciliation", r.ID, "duplicate rule id")
		}
		seen[r.ID] = true
		if !r.CheckType.IsKnown() {
			add("reconciliation", r.ID, "unknown check type %q", r.CheckType)
		}
		if r.ToleranceType != "" && !knownTolerance(r.ToleranceType) {
			add("reconciliation", r.ID, "unknown tolerance type %q", r.ToleranceType)
		}
		if r.KeyColumn1 == "" && needsKey(r.CheckType) {
			add("reconciliation", r.ID, "key_column_s1 is required")
		}
	}

	seen = make(map[string]bool)
	for _, rule := range s.Validation {
		r := rule.Normalized()
		if seen[r.ID] {
			add("validation", r.ID, "duplicate rule id")
		}
		seen[r.ID] = true
		if r.Column == "" {
			add("validation", r.ID, "column is required")
		}
		if _, err := validate.ParseCheck(r.CheckType, r.Parameter1, r.Parameter2); err != nil {
			add("validation", r.ID, "%v", err)
		}
		if sev := strings.ToUpper(strings.TrimSpace(r.Severity)); sev != "" && result.ParseSeverity(sev) != result.Severity(sev) {
			add("validation", r.ID, "unknown severity %q", r.Severity)
		}
	}
	return problems
}

func knownTolerance(t compare.ToleranceType) bool {
	for _, k := range toleranceTypes {
		if t == k {
			return true
		}
	}
	return false
}

func needsKey(c reconcile.CheckType) bool {
	switch c {
	case reconcile.KeyMatch, reconcile.ValueEquals, reconcile.FuzzyMatch:
		return true
	default:
		return false
	}
}
