// Package result defines the status and severity vocabulary shared by both engines.
package result

import "strings"

// Status is the outcome of one Result.
type Status string

const (
	Pass    Status = "PASS"
	Fail    Status = "FAIL"
	Warning Status = "WARNING"
	Error   Status = "ERROR"
	Skip    Status = "SKIP"
)

// Severity grades a Result.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
)

// Sentinel record keys and values.
const (
	// AllRecords keys a whole-dataset PASS result.
	AllRecords = "ALL"
	// NotApplicable fills fields of ERROR and SKIP results.
	NotApplicable = "N/A"
	// Null is how a missing value is displayed.
	Null = "NULL"
)

// ParseSeverity normalizes a configured severity. Blank or unknown values mean ERROR.
func ParseSeverity(s string) Severity {
	switch Severity(strings.ToUpper(strings.TrimSpace(s))) {
	case SeverityWarning:
		return SeverityWarning
	case SeverityInfo:
		return SeverityInfo
	default:
		return SeverityError
	}
}

// QuoteList renders names as a bracketed, single-quoted list: ['a', 'b'].
func QuoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + s + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
