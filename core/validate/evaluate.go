package validate

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"recon-engine/core/dataset"
	"recon-engine/core/result"
	"recon-engine/core/utils"
)

// keyColumns are tried in order to identify a record in findings.
var keyColumns = []string{"record_id", "id", "transaction_id", "key"}

const maxShownLength = 50

type finding struct {
	row     int
	value   string
	details string
}

// Evaluate runs one rule against the resolver's datasets without any engine.
// A returned error means evaluation broke down and no outcome exists.
func Evaluate(rule Rule, resolver dataset.Resolver) (Outcome, error) {
	rule = rule.Normalized()
	if !rule.CheckType.IsKnown() {
		return Outcome{
			Results: []Result{notApplicable(rule, result.Skip, result.SeverityWarning,
				fmt.Sprintf("Unknown check type: %s", rule.CheckType))},
			Delta: Delta{Executed: true},
		}, nil
	}

	ds, ok := resolver.Resolve(rule.DataSource)
	if !ok {
		return configError(rule, "Data source not found"), nil
	}
	if !ds.HasColumn(rule.Column) {
		return configError(rule, fmt.Sprintf("Column '%s' not found in data source. Available: %s",
			rule.Column, result.QuoteList(ds.Columns))), nil
	}

	check, err := ParseCheck(rule.CheckType, rule.Parameter1, rule.Parameter2)
	switch {
	case errors.Is(err, ErrInvalidPattern):
		return configError(rule, "Invalid regex: "+cause(err, ErrInvalidPattern)), nil
	case errors.Is(err, ErrInvalidExpression):
		return configError(rule, "Invalid expression: "+cause(err, ErrInvalidExpression)), nil
	case err != nil:
		return Outcome{}, err
	}

	findings, err := inspect(check, ds, rule.Column)
	if err != nil {
		return Outcome{}, err
	}
	return verdict(rule, check, ds, findings), nil
}

func inspect(check Check, ds *dataset.Dataset, column string) ([]finding, error) {
	if _, ok := check.(Unique); ok {
		return duplicates(ds, column), nil
	}
	var out []finding
	for i, rec := range ds.Records {
		f, err := violation(check, column, rec[column], rec)
		if err != nil {
			return nil, err
		}
		if f != nil {
			f.row = i
			out = append(out, *f)
		}
	}
	return out, nil
}

// violation returns a finding when v violates c, or nil when it satisfies it.
func violation(c Check, column string, v dataset.Value, row dataset.Record) (*finding, error) {
	shown := dataset.Display(v)
	null := dataset.IsNull(v)
	fail := func(format string, args ...any) (*finding, error) {
		return &finding{value: shown, details: fmt.Sprintf(format, args...)}, nil
	}

	switch c := c.(type) {
	case NotNull:
		if null {
			return fail("Value is null/None in column '%s'", column)
		}
	case NotEmpty:
		if null || strings.TrimSpace(shown) == "" {
			return fail("Value is empty in column '%s'", column)
		}
	case GreaterThan:
		if null {
			return nil, nil
		}
		f, ok := dataset.Float(v)
		if !ok {
			return fail("Value '%s' is not numeric", shown)
		}
		if f <= c.Threshold {
			return fail("Value %s is not greater than %s", shown, num(c.Threshold))
		}
	case LessThan:
		if null {
			return nil, nil
		}
		f, ok := dataset.Float(v)
		if !ok {
			return fail("Value '%s' is not numeric", shown)
		}
		if f >= c.Threshold {
			return fail("Value %s is not less than %s", shown, num(c.Threshold))
		}
	case Between:
		if null {
			return nil, nil
		}
		f, ok := dataset.Float(v)
		if !ok {
			return fail("Value '%s' is not numeric", shown)
		}
		if f < c.Min || f > c.Max {
			return fail("Value %s is not between %s and %s", shown, num(c.Min), num(c.Max))
		}
	case Equals:
		if null || strings.TrimSpace(shown) != strings.TrimSpace(c.Expected) {
			return fail("Value '%s' does not equal '%s'", shown, c.Expected)
		}
	case NotEquals:
		if !null && strings.TrimSpace(shown) == strings.TrimSpace(c.Forbidden) {
			return fail("Value '%s' equals forbidden value '%s'", shown, c.Forbidden)
		}
	case InList:
		if !null && !contains(c.Values, strings.TrimSpace(shown)) {
			return fail("Value '%s' is not in valid list", shown)
		}
	case NotInList:
		if !null && contains(c.Values, strings.TrimSpace(shown)) {
			return fail("Value '%s' is in forbidden list", shown)
		}
	case RegexMatch:
		if null {
			return nil, nil
		}
		ok, err := c.Match(shown)
		if err != nil {
			return nil, err
		}
		if !ok {
			return fail("Value '%s' does not match pattern", shown)
		}
	case IsDate:
		if null {
			return nil, nil
		}
		if _, err := time.Parse(c.layout, shown); err != nil {
			return fail("Value '%s' is not a valid date", shown)
		}
	case IsNumeric:
		if null {
			return nil, nil
		}
		if _, ok := dataset.Float(v); !ok {
			return fail("Value '%s' is not numeric", shown)
		}
	case IsInteger:
		if null {
			return nil, nil
		}
		f, ok := dataset.Float(v)
		if !ok || math.IsInf(f, 0) || f != math.Trunc(f) {
			return fail("Value '%s' is not an integer", shown)
		}
	case MinLength:
		if n := utf8.RuneCountInString(shown); !null && n < c.N {
			return fail("Value length %d is less than %d", n, c.N)
		}
	case MaxLength:
		if n := utf8.RuneCountInString(shown); !null && n > c.N {
			return &finding{
				value:   truncate(shown, maxShownLength) + "...",
				details: fmt.Sprintf("Value length %d exceeds %d", n, c.N),
			}, nil
		}
	case StartsWith:
		if !null && !strings.HasPrefix(shown, c.Prefix) {
			return fail("Value does not start with '%s'", c.Prefix)
		}
	case EndsWith:
		if !null && !strings.HasSuffix(shown, c.Suffix) {
			return fail("Value does not end with '%s'", c.Suffix)
		}
	case Contains:
		if !null && !strings.Contains(shown, c.Substring) {
			return fail("Value does not contain '%s'", c.Substring)
		}
	case Expression:
		holds, err := c.Holds(v, map[string]any(row))
		if err != nil {
			return fail("Expression error on value '%s': %v", shown, err)
		}
		if !holds {
			return fail("Value '%s' does not satisfy expression", shown)
		}
	case Unique:
		return nil, errors.New("unique is evaluated per column")
	default:
		return nil, fmt.Errorf("unhandled check %T", c)
	}
	return nil, nil
}

// duplicates reports every occurrence of a value that appears more than once.
// Nulls compare equal to each other.
func duplicates(ds *dataset.Dataset, column string) []finding {
	counts := make(map[string]int, ds.Len())
	for _, rec := range ds.Records {
		counts[dataset.Display(rec[column])]++
	}
	var out []finding
	for i, rec := range ds.Records {
		shown := dataset.Display(rec[column])
		if counts[shown] > 1 {
			out = append(out, finding{row: i, value: shown,
				details: fmt.Sprintf("Duplicate value '%s' found", shown)})
		}
	}
	return out
}

// Expected describes the condition a check demands, as shown in findings.
func Expected(c Check) string {
	switch c := c.(type) {
	case NotNull:
		return "NOT NULL"
	case NotEmpty:
		return "NOT EMPTY"
	case GreaterThan:
		return "> " + num(c.Threshold)
	case LessThan:
		return "< " + num(c.Threshold)
	case Between:
		return fmt.Sprintf("[%s, %s]", num(c.Min), num(c.Max))
	case Equals:
		return c.Expected
	case NotEquals:
		return fmt.Sprintf("NOT '%s'", c.Forbidden)
	case InList:
		return "One of: " + result.QuoteList(c.Values)
	case NotInList:
		return "Not one of: " + result.QuoteList(c.Values)
	case RegexMatch:
		return "Match pattern: " + c.Pattern
	case IsDate:
		return fmt.Sprintf("Valid date (%s)", c.Format)
	case IsNumeric:
		return "Numeric value"
	case IsInteger:
		return "Integer value"
	case Unique:
		return "Unique value"
	case MinLength:
		return fmt.Sprintf("Min length: %d", c.N)
	case MaxLength:
		return fmt.Sprintf("Max length: %d", c.N)
	case StartsWith:
		return "Starts with: " + c.Prefix
	case EndsWith:
		return "Ends with: " + c.Suffix
	case Contains:
		return "Contains: " + c.Substring
	case Expression:
		return "Satisfies: " + c.Source
	default:
		return result.NotApplicable
	}
}

func verdict(rule Rule, check Check, ds *dataset.Dataset, findings []finding) Outcome {
	if len(findings) == 0 {
		return Outcome{
			Results: []Result{{
				RuleID:    rule.ID,
				RuleName:  rule.Name,
				RecordKey: result.AllRecords,
				Column:    rule.Column,
				Value:     fmt.Sprintf("%d values", ds.Len()),
				Expected:  "Valid",
				Status:    result.Pass,
				Severity:  result.SeverityInfo,
				Details:   fmt.Sprintf("All %d records passed validation", ds.Len()),
			}},
			Delta: Delta{Executed: true, Passed: true},
		}
	}

	severity := rule.SeverityLevel()
	expected := Expected(check)
	results := make([]Result, 0, len(findings))
	for _, f := range findings {
		results = append(results, Result{
			RuleID:    rule.ID,
			RuleName:  rule.Name,
			RecordKey: recordKey(ds, f.row),
			Column:    rule.Column,
			Value:     f.value,
			Expected:  expected,
			Status:    result.Fail,
			Severity:  severity,
			Details:   f.details,
		})
	}

	delta := Delta{Executed: true, Failed: true}
	if severity == result.SeverityError {
		delta.Errors = len(results)
	} else {
		delta.Warnings = len(results)
	}
	return Outcome{Results: results, Delta: delta}
}

func recordKey(ds *dataset.Dataset, row int) string {
	for _, col := range keyColumns {
		if ds.HasColumn(col) {
			return dataset.Display(ds.Records[row][col])
		}
	}
	return fmt.Sprintf("Row_%d", row+1)
}

func notApplicable(rule Rule, status result.Status, severity result.Severity, details string) Result {
	return Result{
		RuleID:    rule.ID,
		RuleName:  rule.Name,
		RecordKey: result.NotApplicable,
		Column:    result.NotApplicable,
		Value:     result.NotApplicable,
		Expected:  result.NotApplicable,
		Status:    status,
		Severity:  severity,
		Details:   details,
	}
}

func configError(rule Rule, details string) Outcome {
	return Outcome{
		Results: []Result{notApplicable(rule, result.Error, result.SeverityError, details)},
		Delta:   Delta{Executed: true},
	}
}

func cause(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}

func num(f float64) string {
	return utils.FormatFloat(f)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
