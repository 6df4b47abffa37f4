package rules

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"recon-engine/core/compare"
	"recon-engine/core/logger"
	"recon-engine/core/reconcile"
	"recon-engine/core/validate"
)

// RuleKind says which rule schema a translation targets.
type RuleKind string

const (
	KindReconciliation RuleKind = "reconciliation"
	KindValidation     RuleKind = "validation"
)

// Fields are structured rule fields keyed by their rule sheet names (check_type,
// parameter_1, ...).
type Fields map[string]string

// Translator turns a natural language rule into structured fields.
type Translator interface {
	Translate(ctx context.Context, kind RuleKind, text string) (Fields, error)
}

// FillReconciliation copies fields onto blank structured fields of r.
func FillReconciliation(r reconcile.Rule, f Fields) reconcile.Rule {
	fill(&r.Name, f["rule_name"])
	fill(&r.Source1, f["source1"])
	fill(&r.Source2, f["source2"])
	fill(&r.KeyColumn1, f["key_column_s1"])
	fill(&r.KeyColumn2, f["key_column_s2"])
	fill(&r.CompareColumn1, f["compare_column_s1"])
	fill(&r.CompareColumn2, f["compare_column_s2"])
	fill(&r.Description, f["description"])
	if strings.TrimSpace(string(r.CheckType)) == "" {
		r.CheckType = reconcile.CheckType(strings.TrimSpace(f["check_type"]))
	}
	if strings.TrimSpace(string(r.ToleranceType)) == "" {
		r.ToleranceType = compare.ToleranceType(strings.TrimSpace(f["tolerance_type"]))
	}
	if r.Tolerance == nil {
		if t, err := strconv.ParseFloat(strings.TrimSpace(f["tolerance"]), 64); err == nil {
			r.Tolerance = &t
		}
	}
	return r
}

// FillValidation copies fields onto blank structured fields of r.
func FillValidation(r validate.Rule, f Fields) validate.Rule {
	fill(&r.Name, f["rule_name"])
	fill(&r.DataSource, f["data_source"])
	fill(&r.Column, f["column"])
	fill(&r.Severity, f["severity"])
	fill(&r.Description, f["description"])
	if strings.TrimSpace(string(r.CheckType)) == "" {
		r.CheckType = validate.Kind(strings.TrimSpace(f["check_type"]))
	}
	if r.Parameter1.IsBlank() {
		r.Parameter1 = validate.Param(f["parameter_1"])
	}
	if r.Parameter2.IsBlank() {
		r.Parameter2 = validate.Param(f["parameter_2"])
	}
	return r
}

func fill(dst *string, v string) {
	if strings.TrimSpace(*dst) == "" || strings.EqualFold(strings.TrimSpace(*dst), "nan") {
		*dst = strings.TrimSpace(v)
	}
}

// Translate fills every rule that carries natural language text. A failed
// translation is logged and leaves the rule unchanged.
func Translate(ctx context.Context, s *RuleSet, tr Translator, log logger.Func) {
	log = logger.Or(log)
	for i, r := range s.Reconciliation {
		if f, ok := translateOne(ctx, tr, KindReconciliation, r.NaturalLanguage, log); ok {
			s.Reconciliation[i] = FillReconciliation(r, f)
		}
	}
	for i, r := range s.Validation {
		if f, ok := translateOne(ctx, tr, KindValidation, r.NaturalLanguage, log); ok {
			s.Validation[i] = FillValidation(r, f)
		}
	}
}

func translateOne(ctx context.Context, tr Translator, kind RuleKind, text string, log logger.Func) (Fields, bool) {
	text = strings.TrimSpace(text)
	if text == "" || strings.EqualFold(text, "nan") {
		return nil, false
	}
	log(logger.LevelInfo, "Translator", fmt.Sprintf("Processing NL rule: %s...", truncate(text, 50)))
	f, err := tr.Translate(ctx, kind, text)
	if err != nil {
		log(logger.LevelError, "Translator", fmt.Sprintf("Error in rule parsing: %v", err))
		return nil, false
	}
	log(logger.LevelInfo, "Translator", "Successfully parsed NL rule")
	return f, true
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
