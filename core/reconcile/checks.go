package reconcile

import (
	"fmt"
	"sort"
	"strings"

	"recon-engine/core/compare"
	"recon-engine/core/dataset"
	"recon-engine/core/result"
)

const defaultFuzzyThreshold = 80.0

func notApplicable(rule Rule, status result.Status, severity result.Severity, details string) Result {
	return Result{
		RuleID:       rule.ID,
		RuleName:     rule.Name,
		RecordKey:    result.NotApplicable,
		Source1Value: result.NotApplicable,
		Source2Value: result.NotApplicable,
		Difference:   result.NotApplicable,
		Status:       status,
		Severity:     severity,
		Details:      details,
	}
}

// configError is a misconfigured rule: executed, neither passed nor failed.
func configError(rule Rule, details string) Outcome {
	return Outcome{
		Results: []Result{notApplicable(rule, result.Error, result.SeverityError, details)},
		Delta:   Delta{Executed: true},
	}
}

// verdict closes a per-record rule: no findings means one synthesized PASS result.
func verdict(results []Result, pass Result) ([]Result, Delta) {
	if len(results) == 0 {
		return []Result{pass}, Delta{Executed: true, Passed: true}
	}
	return results, Delta{Executed: true, Failed: true}
}

func resolvePair(rule Rule, resolver dataset.Resolver) (*dataset.Dataset, *dataset.Dataset, bool) {
	ds1, ok1 := resolver.Resolve(rule.Source1)
	ds2, ok2 := resolver.Resolve(rule.Source2)
	if !ok1 || !ok2 {
		return nil, nil, false
	}
	return ds1, ds2, true
}

// requireColumns returns the details of the first missing column, or "".
func requireColumns(ds1, ds2 *dataset.Dataset, label string, col1, col2 string) string {
	if !ds1.HasColumn(col1) {
		return fmt.Sprintf("%s '%s' not found in Source 1. Available: %s", label, col1, result.QuoteList(ds1.Columns))
	}
	if !ds2.HasColumn(col2) {
		return fmt.Sprintf("%s '%s' not found in Source 2. Available: %s", label, col2, result.QuoteList(ds2.Columns))
	}
	return ""
}

func checkKeyMatch(rule Rule, resolver dataset.Resolver) Outcome {
	ds1, ds2, ok := resolvePair(rule, resolver)
	if !ok {
		return configError(rule, "Could not find one or both data sources")
	}
	if msg := requireColumns(ds1, ds2, "Key column", rule.KeyColumn1, rule.KeyColumn2); msg != "" {
		return configError(rule, msg)
	}

	keys1 := keySet(ds1, rule.KeyColumn1)
	keys2 := keySet(ds2, rule.KeyColumn2)

	var only1, only2 []string
	matched := 0
	for k := range keys1 {
		if _, ok := keys2[k]; ok {
			matched++
		} else {
			only1 = append(only1, k)
		}
	}
	for k := range keys2 {
		if _, ok := keys1[k]; !ok {
			only2 = append(only2, k)
		}
	}
	sort.Strings(only1)
	sort.Strings(only2)

	results := make([]Result, 0, len(only1)+len(only2))
	for _, k := range only1 {
		results = append(results, Result{
			RuleID: rule.ID, RuleName: rule.Name, RecordKey: k,
			Source1Value: "EXISTS", Source2Value: "MISSING", Difference: "Missing in Source 2",
			Status: result.Fail, Severity: result.SeverityError,
			Details: fmt.Sprintf("Record with key '%s' exists in Source 1 but not in Source 2", k),
		})
	}
	for _, k := range only2 {
		results = append(results, Result{
			RuleID: rule.ID, RuleName: rule.Name, RecordKey: k,
			Source1Value: "MISSING", Source2Value: "EXISTS", Difference: "Missing in Source 1",
			Status: result.Fail, Severity: result.SeverityError,
			Details: fmt.Sprintf("Record with key '%s' exists in Source 2 but not in Source 1", k),
		})
	}

	results, delta := verdict(results, Result{
		RuleID: rule.ID, RuleName: rule.Name, RecordKey: result.AllRecords,
		Source1Value: fmt.Sprint(len(keys1)), Source2Value: fmt.Sprint(len(keys2)), Difference: "0",
		Status: result.Pass, Severity: result.SeverityInfo,
		Details: fmt.Sprintf("All %d keys matched between sources", matched),
	})
	delta.Keys = &KeyStats{
		TotalSource1: ds1.Len(),
		TotalSource2: ds2.Len(),
		Matched:      matched,
		Unmatched1:   len(only1),
		Unmatched2:   len(only2),
	}
	return Outcome{Results: results, Delta: delta}
}

// NullKey is how a missing key cell renders in record keys. Nulls share it, so they
// match each other, and a literal "nan" key matches them too.
const NullKey = "nan"

// keyText renders a key cell for joins and record keys.
func keyText(v dataset.Value) string {
	if dataset.IsNull(v) {
		return NullKey
	}
	return dataset.Text(v)
}

func keySet(ds *dataset.Dataset, column string) map[string]struct{} {
	set := make(map[string]struct{}, ds.Len())
	for _, rec := range ds.Records {
		set[keyText(rec[column])] = struct{}{}
	}
	return set
}

// joined is one inner-join row.
type joined struct {
	key    string
	v1, v2 dataset.Value
}

// innerJoin pairs rows with equal keys: source-1 order first, then source-2 order,
// so duplicate keys yield every combination.
func innerJoin(ds1 *dataset.Dataset, key1, col1 string, ds2 *dataset.Dataset, key2, col2 string) []joined {
	index := make(map[string][]dataset.Value, ds2.Len())
	for _, rec := range ds2.Records {
		k := keyText(rec[key2])
		index[k] = append(index[k], rec[col2])
	}

	var rows []joined
	for _, rec := range ds1.Records {
		k := keyText(rec[key1])
		for _, v2 := range index[k] {
			rows = append(rows, joined{key: k, v1: rec[col1], v2: v2})
		}
	}
	return rows
}

// prepareJoin resolves sources and the four columns shared by value_equals and fuzzy_match.
func prepareJoin(rule Rule, resolver dataset.Resolver) ([]joined, *Outcome) {
	ds1, ds2, ok := resolvePair(rule, resolver)
	if !ok {
		out := configError(rule, "Could not find one or both data sources")
		return nil, &out
	}
	if msg := requireColumns(ds1, ds2, "Key column", rule.KeyColumn1, rule.KeyColumn2); msg != "" {
		out := configError(rule, msg)
		return nil, &out
	}
	if msg := requireColumns(ds1, ds2, "Compare column", rule.CompareColumn1, rule.CompareColumn2); msg != "" {
		out := configError(rule, msg)
		return nil, &out
	}
	return innerJoin(ds1, rule.KeyColumn1, rule.CompareColumn1, ds2, rule.KeyColumn2, rule.CompareColumn2), nil
}

func checkValueEquals(rule Rule, resolver dataset.Resolver) Outcome {
	rows, failed := prepareJoin(rule, resolver)
	if failed != nil {
		return *failed
	}

	tol := compare.Tolerance{Amount: rule.Tolerance, Type: rule.ToleranceType}
	var results []Result
	for _, row := range rows {
		match, diff := compare.Compare(row.v1, row.v2, tol)
		if match {
			continue
		}
		v1, v2 := dataset.Display(row.v1), dataset.Display(row.v2)
		results = append(results, Result{
			RuleID: rule.ID, RuleName: rule.Name, RecordKey: row.key,
			Source1Value: v1, Source2Value: v2, Difference: diff.String(),
			Status: result.Fail, Severity: result.SeverityError,
			Details: fmt.Sprintf("Value mismatch for %s/%s: %s vs %s", rule.CompareColumn1, rule.CompareColumn2, v1, v2),
		})
	}

	discrepancies := len(results)
	results, delta := verdict(results, Result{
		RuleID: rule.ID, RuleName: rule.Name, RecordKey: result.AllRecords,
		Source1Value: fmt.Sprintf("%d values", len(rows)), Source2Value: fmt.Sprintf("%d values", len(rows)),
		Difference: "0", Status: result.Pass, Severity: result.SeverityInfo,
		Details: fmt.Sprintf("All %d values matched within tolerance", len(rows)),
	})
	delta.ValueDiscrepancies = discrepancies
	return Outcome{Results: results, Delta: delta}
}

func checkFuzzyMatch(rule Rule, resolver dataset.Resolver) Outcome {
	rows, failed := prepareJoin(rule, resolver)
	if failed != nil {
		return *failed
	}

	threshold := defaultFuzzyThreshold
	if rule.Tolerance != nil {
		threshold = *rule.Tolerance
	}
	threshold /= 100

	var results []Result
	for _, row := range rows {
		a := strings.ToLower(dataset.Text(row.v1))
		b := strings.ToLower(dataset.Text(row.v2))
		score := compare.Similarity(a, b)
		if score >= threshold {
			continue
		}
		results = append(results, Result{
			RuleID: rule.ID, RuleName: rule.Name, RecordKey: row.key,
			Source1Value: dataset.Display(row.v1), Source2Value: dataset.Display(row.v2),
			Difference: fmt.Sprintf("%.1f%%", score*100),
			Status:     result.Fail, Severity: result.SeverityWarning,
			Details: fmt.Sprintf("Fuzzy match below threshold (%.1f%% < %.0f%%)", score*100, threshold*100),
		})
	}

	results, delta := verdict(results, Result{
		RuleID: rule.ID, RuleName: rule.Name, RecordKey: result.AllRecords,
		Source1Value: fmt.Sprintf("%d values", len(rows)), Source2Value: fmt.Sprintf("%d values", len(rows)),
		Difference: result.NotApplicable, Status: result.Pass, Severity: result.SeverityInfo,
		Details: fmt.Sprintf("All %d text values matched within similarity threshold", len(rows)),
	})
	return Outcome{Results: results, Delta: delta}
}

func checkAggregateCount(rule Rule, resolver dataset.Resolver) Outcome {
	ds1, ds2, ok := resolvePair(rule, resolver)
	if !ok {
		return configError(rule, "Could not find one or both data sources")
	}

	count1, count2 := ds1.Len(), ds2.Len()
	diff := count1 - count2
	status, severity := result.Pass, result.SeverityInfo
	delta := Delta{Executed: true, Passed: true}
	if diff != 0 {
		status, severity = result.Fail, result.SeverityWarning
		delta = Delta{Executed: true, Failed: true}
	}

	return Outcome{
		Results: []Result{{
			RuleID: rule.ID, RuleName: rule.Name, RecordKey: "AGGREGATE_COUNT",
			Source1Value: fmt.Sprint(count1), Source2Value: fmt.Sprint(count2), Difference: fmt.Sprint(diff),
			Status: status, Severity: severity,
			Details: fmt.Sprintf("Record count: Source1=%d, Source2=%d, Difference=%d", count1, count2, diff),
		}},
		Delta: delta,
	}
}
