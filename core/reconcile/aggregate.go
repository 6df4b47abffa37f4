package reconcile

import (
	"fmt"

	"recon-engine/core/compare"
	"recon-engine/core/dataset"
	"recon-engine/core/result"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amounts = message.NewPrinter(language.English)

type aggregator struct {
	recordKey string
	label     string
	reduce    func(ds *dataset.Dataset, column string) (dataset.Value, error)
}

var (
	aggregateSum = aggregator{recordKey: "AGGREGATE_SUM", label: "Sum", reduce: columnSum}
	aggregateAvg = aggregator{recordKey: "AGGREGATE_AVG", label: "Average", reduce: columnMean}
)

func numericCells(ds *dataset.Dataset, column string) ([]float64, error) {
	var out []float64
	for i, rec := range ds.Records {
		v := rec[column]
		if dataset.IsNull(v) {
			continue
		}
		f, ok := dataset.Float(v)
		if !ok {
			return nil, fmt.Errorf("column '%s' row %d holds non-numeric value '%s'", column, i+1, dataset.Text(v))
		}
		out = append(out, f)
	}
	return out, nil
}

func columnSum(ds *dataset.Dataset, column string) (dataset.Value, error) {
	cells, err := numericCells(ds, column)
	if err != nil {
		return nil, err
	}
	total := 0.0
	for _, f := range cells {
		total += f
	}
	return total, nil
}

// columnMean is null for a column with no numeric cells.
func columnMean(ds *dataset.Dataset, column string) (dataset.Value, error) {
	cells, err := numericCells(ds, column)
	if err != nil || len(cells) == 0 {
		return nil, err
	}
	total := 0.0
	for _, f := range cells {
		total += f
	}
	return total / float64(len(cells)), nil
}

// formatAmount renders an aggregate with thousands separators and two decimals.
func formatAmount(v dataset.Value) string {
	f, ok := dataset.Float(v)
	if !ok {
		return "nan"
	}
	return amounts.Sprintf("%.2f", f)
}

func checkAggregate(rule Rule, resolver dataset.Resolver, agg aggregator) (Outcome, error) {
	ds1, ds2, ok := resolvePair(rule, resolver)
	if !ok {
		return configError(rule, "Could not find one or both data sources"), nil
	}
	if msg := requireColumns(ds1, ds2, "Column", rule.CompareColumn1, rule.CompareColumn2); msg != "" {
		return configError(rule, msg), nil
	}

	v1, err := agg.reduce(ds1, rule.CompareColumn1)
	if err != nil {
		return Outcome{}, err
	}
	v2, err := agg.reduce(ds2, rule.CompareColumn2)
	if err != nil {
		return Outcome{}, err
	}

	tol := compare.Tolerance{Amount: rule.Tolerance, Type: rule.ToleranceType}
	if tol.Amount == nil {
		zero := 0.0
		tol.Amount = &zero
	}
	if tol.Type == "" {
		tol.Type = compare.Percentage
	}

	match, diff := compare.Compare(v1, v2, tol)
	status, severity := result.Pass, result.SeverityInfo
	delta := Delta{Executed: true, Passed: true}
	if !match {
		status, severity = result.Fail, result.SeverityError
		delta = Delta{Executed: true, Failed: true}
	}

	difference := diff.Mismatch
	if diff.IsNumeric() {
		difference = formatAmount(diff.Amount)
	}
	s1, s2 := formatAmount(v1), formatAmount(v2)

	return Outcome{
		Results: []Result{{
			RuleID: rule.ID, RuleName: rule.Name, RecordKey: agg.recordKey,
			Source1Value: s1, Source2Value: s2, Difference: difference,
			Status: status, Severity: severity,
			Details: fmt.Sprintf("%s comparison: %s=%s vs %s=%s", agg.label,
				rule.CompareColumn1, s1, rule.CompareColumn2, s2),
		}},
		Delta: delta,
	}, nil
}
