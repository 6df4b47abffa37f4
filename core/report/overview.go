package report

import (
	"fmt"
	"strconv"
	"time"

	"recon-engine/core/reconcile"
	"recon-engine/core/result"
	"recon-engine/core/validate"
)

// Rate thresholds, in percent.
const (
	PassThreshold    = 95.0
	WarningThreshold = 90.0
)

// Metric is one row of the overview.
type Metric struct {
	Name    string        `json:"metric"`
	Value   string        `json:"value"`
	Status  result.Status `json:"status,omitempty"`
	Details string        `json:"details,omitempty"`
}

// Overview holds the headline numbers of a run.
type Overview struct {
	RulesExecuted int           `json:"rules_executed"`
	MatchRate     float64       `json:"match_rate"`
	MatchStatus   result.Status `json:"match_status"`
	PassRate      float64       `json:"pass_rate"`
	PassStatus    result.Status `json:"pass_status"`
	Metrics       []Metric      `json:"metrics"`
}

// Grade maps a percentage onto PASS, WARNING or FAIL.
func Grade(rate float64) result.Status {
	switch {
	case rate >= PassThreshold:
		return result.Pass
	case rate >= WarningThreshold:
		return result.Warning
	default:
		return result.Fail
	}
}

// MatchRate is matched records over source-1 records, in percent. No records gives 0.
func MatchRate(s *reconcile.Summary) float64 {
	if s == nil || s.TotalRecordsSource1 == 0 {
		return 0
	}
	return float64(s.MatchedRecords) / float64(s.TotalRecordsSource1) * 100
}

// PassRate is passed records over validated records, in percent. No records gives 0.
func PassRate(s *validate.Summary) float64 {
	if s == nil || s.TotalRecords == 0 {
		return 0
	}
	return float64(s.RecordsPassed) / float64(s.TotalRecords) * 100
}

// NewOverview computes the overview. Either summary may be nil when its engine did not run.
func NewOverview(at time.Time, recon *reconcile.Summary, valid *validate.Summary) Overview {
	r := recon
	if r == nil {
		r = reconcile.NewSummary()
	}
	v := valid
	if v == nil {
		v = validate.NewSummary(0)
	}

	o := Overview{
		RulesExecuted: r.RulesExecuted + v.RulesExecuted,
		MatchRate:     MatchRate(recon),
		PassRate:      PassRate(valid),
	}
	o.MatchStatus = Grade(o.MatchRate)
	o.PassStatus = Grade(o.PassRate)

	// counts grade PASS only when their engine ran and found nothing
	zeroIs := func(ran bool, n int, otherwise result.Status) result.Status {
		if ran && n == 0 {
			return result.Pass
		}
		return otherwise
	}
	ranRecon, ranValid := recon != nil, valid != nil
	matched := zeroIs(ranRecon, r.UnmatchedSource1, result.Fail)

	o.Metrics = []Metric{
		{Name: "Execution Timestamp", Value: at.Format("2006-01-02 15:04:05"), Status: "COMPLETE"},
		{Name: "Total Rules Executed", Value: strconv.Itoa(o.RulesExecuted)},
		{Name: "Reconciliation Rules", Value: strconv.Itoa(r.RulesExecuted)},
		{Name: "Validation Rules", Value: strconv.Itoa(v.RulesExecuted)},
		{Name: "Total Records (Source 1)", Value: strconv.Itoa(r.TotalRecordsSource1)},
		{Name: "Total Records (Source 2)", Value: strconv.Itoa(r.TotalRecordsSource2)},
		{Name: "Matched Records", Value: strconv.Itoa(r.MatchedRecords), Status: matched},
		{Name: "Unmatched in Source 1", Value: strconv.Itoa(r.UnmatchedSource1), Status: matched},
		{Name: "Unmatched in Source 2", Value: strconv.Itoa(r.UnmatchedSource2), Status: zeroIs(ranRecon, r.UnmatchedSource2, result.Fail)},
		{Name: "Value Discrepancies", Value: strconv.Itoa(r.ValueDiscrepancies), Status: zeroIs(ranRecon, r.ValueDiscrepancies, result.Fail)},
		{Name: "Match Rate (%)", Value: fmt.Sprintf("%.2f%%", o.MatchRate), Status: o.MatchStatus},
		{Name: "Total Records Validated", Value: strconv.Itoa(v.TotalRecords)},
		{Name: "Records Passed", Value: strconv.Itoa(v.RecordsPassed)},
		{Name: "Records with Errors", Value: strconv.Itoa(v.RecordsWithErrors), Status: zeroIs(ranValid, v.RecordsWithErrors, result.Fail)},
		{Name: "Records with Warnings", Value: strconv.Itoa(v.RecordsWithWarnings), Status: zeroIs(ranValid, v.RecordsWithWarnings, result.Warning)},
		{Name: "Pass Rate (%)", Value: fmt.Sprintf("%.2f%%", o.PassRate), Status: o.PassStatus},
	}
	return o
}
