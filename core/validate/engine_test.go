package validate

import (
	"testing"

	"recon-engine/core/dataset"
	"recon-engine/core/logger"
	"recon-engine/core/result"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func customers() *dataset.Registry {
	reg := dataset.NewRegistry()
	reg.Register("customers", dataset.FromRows("customers",
		[]string{"id", "email", "score", "code", "status"}, [][]any{
			{1, "a@example.com", -5, "A", "open"},
			{2, nil, 50, "B", "open"},
			{3, "c@example.com", 150, "A", "closed"},
			{4, "d@example.com", 70, "C", "open"},
		}))
	return reg
}

func columnOnly(name string, values ...any) dataset.Resolver {
	rows := make([][]any, len(values))
	for i, v := range values {
		rows[i] = []any{v}
	}
	reg := dataset.NewRegistry()
	reg.Register("data", dataset.FromRows("data", []string{name}, rows))
	return dataset.NewHintResolver(reg)
}

func rule(kind Kind, column string, p1, p2 Param) Rule {
	return Rule{
		ID: "V1", Name: "Test rule", DataSource: "customers.csv",
		Column: column, CheckType: kind, Parameter1: p1, Parameter2: p2,
	}
}

func failures(out Outcome) []Result {
	var fails []Result
	for _, r := range out.Results {
		if r.Status == result.Fail {
			fails = append(fails, r)
		}
	}
	return fails
}

func TestBetweenFailsOutOfRange(t *testing.T) {
	out, err := Evaluate(rule(KindBetween, "v", "0", "100"), columnOnly("v", -5, 50, 150))
	require.NoError(t, err)

	require.Len(t, out.Results, 2)
	for _, r := range out.Results {
		assert.Equal(t, result.Fail, r.Status)
		assert.Equal(t, "[0.0, 100.0]", r.Expected)
	}
	assert.Equal(t, "-5", out.Results[0].Value)
	assert.Equal(t, "Row_1", out.Results[0].RecordKey)
	assert.Equal(t, "Value -5 is not between 0.0 and 100.0", out.Results[0].Details)
	assert.Equal(t, "Row_3", out.Results[1].RecordKey)
	assert.Equal(t, Delta{Executed: true, Failed: true, Errors: 2}, out.Delta)
}

func TestUniqueFailsEveryOccurrence(t *testing.T) {
	out, err := Evaluate(rule(KindUnique, "v", "", ""), columnOnly("v", "A", "B", "A", "C"))
	require.NoError(t, err)

	require.Len(t, out.Results, 2)
	assert.Equal(t, "Row_1", out.Results[0].RecordKey)
	assert.Equal(t, "Row_3", out.Results[1].RecordKey)
	assert.Equal(t, "Duplicate value 'A' found", out.Results[0].Details)
	assert.Equal(t, "Unique value", out.Results[0].Expected)
}

func TestUniqueGroupsNulls(t *testing.T) {
	out, err := Evaluate(rule(KindUnique, "v", "", ""), columnOnly("v", nil, "x", nil))
	require.NoError(t, err)
	fails := failures(out)
	require.Len(t, fails, 2)
	assert.Equal(t, "NULL", fails[0].Value)
}

func TestPassResult(t *testing.T) {
	out, err := Evaluate(rule(KindNotNull, "id", "", ""), dataset.NewHintResolver(customers()))
	require.NoError(t, err)

	require.Len(t, out.Results, 1)
	r := out.Results[0]
	assert.Equal(t, result.Pass, r.Status)
	assert.Equal(t, result.SeverityInfo, r.Severity)
	assert.Equal(t, result.AllRecords, r.RecordKey)
	assert.Equal(t, "4 values", r.Value)
	assert.Equal(t, "Valid", r.Expected)
	assert.Equal(t, "All 4 records passed validation", r.Details)
	assert.Equal(t, Delta{Executed: true, Passed: true}, out.Delta)
}

func TestRecordFindings(t *testing.T) {
	tests := []struct {
		name     string
		rule     Rule
		values   []any
		keys     []string
		value    string
		expected string
		details  string
	}{
		{"NotNull", rule(KindNotNull, "v", "", ""), []any{"x", nil},
			[]string{"Row_2"}, "NULL", "NOT NULL", "Value is null/None in column 'v'"},
		{"NotEmptyBlank", rule(KindNotEmpty, "v", "", ""), []any{"  ", "x"},
			[]string{"Row_1"}, "  ", "NOT EMPTY", "Value is empty in column 'v'"},
		{"GreaterThanNonNumeric", rule(KindGreater, "v", "10", ""), []any{"abc", "20"},
			[]string{"Row_1"}, "abc", "> 10.0", "Value 'abc' is not numeric"},
		{"GreaterThanBoundary", rule(KindGreater, "v", "10", ""), []any{10, 11, nil},
			[]string{"Row_1"}, "10", "> 10.0", "Value 10 is not greater than 10.0"},
		{"LessThan", rule(KindLess, "v", "1.5", ""), []any{1.5, 1.0},
			[]string{"Row_1"}, "1.5", "< 1.5", "Value 1.5 is not less than 1.5"},
		{"EqualsTrimmed", rule(KindEquals, "v", "USD", ""), []any{" USD ", "EUR", nil},
			[]string{"Row_2", "Row_3"}, "EUR", "USD", "Value 'EUR' does not equal 'USD'"},
		{"NotEquals", rule(KindNotEquals, "v", "N/A", ""), []any{"N/A", "ok", nil},
			[]string{"Row_1"}, "N/A", "NOT 'N/A'", "Value 'N/A' equals forbidden value 'N/A'"},
		{"InList", rule(KindInList, "v", "A, B", ""), []any{"A", "C", nil},
			[]string{"Row_2"}, "C", "One of: ['A', 'B']", "Value 'C' is not in valid list"},
		{"NotInList", rule(KindNotInList, "v", "X,Y", ""), []any{"Y", "Z"},
			[]string{"Row_1"}, "Y", "Not one of: ['X', 'Y']", "Value 'Y' is in forbidden list"},
		{"RegexFromStart", rule(KindRegex, "v", `[A-Z]{3}\d+`, ""), []any{"ABC123x", "xABC1", nil},
			[]string{"Row_2"}, "xABC1", `Match pattern: [A-Z]{3}\d+`, "Value 'xABC1' does not match pattern"},
		{"IsDateDefault", rule(KindIsDate, "v", "", ""), []any{"2024-01-15", "2024-13-01"},
			[]string{"Row_2"}, "2024-13-01", "Valid date (%Y-%m-%d)", "Value '2024-13-01' is not a valid date"},
		{"IsDateNamed", rule(KindIsDate, "v", "MM/DD/YYYY", ""), []any{"1/5/2024", "15/01/2024"},
			[]string{"Row_2"}, "15/01/2024", "Valid date (MM/DD/YYYY)", "Value '15/01/2024' is not a valid date"},
		{"IsNumeric", rule(KindIsNumeric, "v", "", ""), []any{"12.5", "twelve", nil},
			[]string{"Row_2"}, "twelve", "Numeric value", "Value 'twelve' is not numeric"},
		{"IsInteger", rule(KindIsInteger, "v", "", ""), []any{"12", 12.0, "12.5"},
			[]string{"Row_3"}, "12.5", "Integer value", "Value '12.5' is not an integer"},
		{"MinLength", rule(KindMinLength, "v", "3", ""), []any{"ab", "abc"},
			[]string{"Row_1"}, "ab", "Min length: 3", "Value length 2 is less than 3"},
		{"StartsWith", rule(KindStartsWith, "v", "INV-", ""), []any{"INV-1", "PO-2"},
			[]string{"Row_2"}, "PO-2", "Starts with: INV-", "Value does not start with 'INV-'"},
		{"EndsWith", rule(KindEndsWith, "v", ".com", ""), []any{"a.org", "b.com"},
			[]string{"Row_1"}, "a.org", "Ends with: .com", "Value does not end with '.com'"},
		{"Contains", rule(KindContains, "v", "@", ""), []any{"a@b", "ab"},
			[]string{"Row_2"}, "ab", "Contains: @", "Value does not contain '@'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Evaluate(tt.rule, columnOnly("v", tt.values...))
			require.NoError(t, err)

			fails := failures(out)
			require.Len(t, fails, len(tt.keys))
			for i, key := range tt.keys {
				assert.Equal(t, key, fails[i].RecordKey)
			}
			assert.Equal(t, tt.value, fails[0].Value)
			assert.Equal(t, tt.expected, fails[0].Expected)
			assert.Equal(t, tt.details, fails[0].Details)
			assert.Equal(t, result.SeverityError, fails[0].Severity)
		})
	}
}

func TestMaxLengthTruncatesShownValue(t *testing.T) {
	long := "abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyz"
	out, err := Evaluate(rule(KindMaxLength, "v", "10", ""), columnOnly("v", long))
	require.NoError(t, err)

	require.Len(t, out.Results, 1)
	assert.Equal(t, long[:50]+"...", out.Results[0].Value)
	assert.Equal(t, "Max length: 10", out.Results[0].Expected)
	assert.Equal(t, "Value length 52 exceeds 10", out.Results[0].Details)
}

func TestRecordKeyPrefersIdentifierColumn(t *testing.T) {
	out, err := Evaluate(rule(KindNotNull, "email", "", ""), dataset.NewHintResolver(customers()))
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "2", out.Results[0].RecordKey)
}

func TestExpression(t *testing.T) {
	r := rule(KindExpression, "score", `value > 0 && row.status == "open"`, "")
	out, err := Evaluate(r, dataset.NewHintResolver(customers()))
	require.NoError(t, err)

	fails := failures(out)
	require.Len(t, fails, 2)
	assert.Equal(t, "1", fails[0].RecordKey)
	assert.Equal(t, "3", fails[1].RecordKey)
	assert.Equal(t, "Value '150' does not satisfy expression", fails[1].Details)
	assert.Equal(t, `Satisfies: value > 0 && row.status == "open"`, fails[1].Expected)
}

func TestConfigurationErrors(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		details string
	}{
		{"MissingSource", Rule{ID: "V1", DataSource: "vendors", Column: "id", CheckType: KindNotNull},
			"Data source not found"},
		{"MissingColumn", rule(KindNotNull, "phone", "", ""),
			"Column 'phone' not found in data source. Available: ['id', 'email', 'score', 'code', 'status']"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Evaluate(tt.rule, dataset.NewHintResolver(customers()))
			require.NoError(t, err)
			require.Len(t, out.Results, 1)
			assert.Equal(t, result.Error, out.Results[0].Status)
			assert.Equal(t, result.NotApplicable, out.Results[0].RecordKey)
			assert.Equal(t, tt.details, out.Results[0].Details)
			assert.Equal(t, Delta{Executed: true}, out.Delta)
		})
	}
}

func TestInvalidRegexIsSingleError(t *testing.T) {
	out, err := Evaluate(rule(KindRegex, "code", "[a-", ""), dataset.NewHintResolver(customers()))
	require.NoError(t, err)

	require.Len(t, out.Results, 1)
	assert.Equal(t, result.Error, out.Results[0].Status)
	assert.Contains(t, out.Results[0].Details, "Invalid regex: ")
	assert.Equal(t, Delta{Executed: true}, out.Delta)
}

func TestInvalidExpressionIsSingleError(t *testing.T) {
	out, err := Evaluate(rule(KindExpression, "code", "value >", ""), dataset.NewHintResolver(customers()))
	require.NoError(t, err)

	require.Len(t, out.Results, 1)
	assert.Contains(t, out.Results[0].Details, "Invalid expression: ")
}

func TestUnknownKindSkips(t *testing.T) {
	out, err := Evaluate(rule("is_palindrome", "code", "", ""), dataset.NewHintResolver(customers()))
	require.NoError(t, err)

	require.Len(t, out.Results, 1)
	assert.Equal(t, result.Skip, out.Results[0].Status)
	assert.Equal(t, result.SeverityWarning, out.Results[0].Severity)
	assert.Equal(t, "Unknown check type: is_palindrome", out.Results[0].Details)
	assert.Equal(t, Delta{Executed: true}, out.Delta)
}

func TestMalformedParameterIsExecutionError(t *testing.T) {
	engine := NewEngine(dataset.NewHintResolver(customers()))
	out := engine.Evaluate(rule(KindGreater, "score", "ten", ""))

	require.Len(t, out.Results, 1)
	assert.Equal(t, result.Error, out.Results[0].Status)
	assert.Equal(t, "Execution error: could not convert string to float: 'ten'", out.Results[0].Details)
	assert.False(t, out.Delta.Executed)
}

func TestRunSummary(t *testing.T) {
	journal := logger.NewJournal()
	engine := NewEngine(dataset.NewHintResolver(customers()), WithLogger(journal.Log))

	rules := []Rule{
		{ID: "V1", Name: "Email present", DataSource: "customers", Column: "email", CheckType: KindNotNull},
		{ID: "V2", Name: "Score range", DataSource: "customers", Column: "score",
			CheckType: KindBetween, Parameter1: "0", Parameter2: "100"},
		{ID: "V3", Name: "Known code", DataSource: "customers", Column: "code",
			CheckType: KindInList, Parameter1: "A,B", Severity: "warning"},
		{ID: "V4", Name: "Ids present", DataSource: "customers", Column: "id", CheckType: KindNotNull},
		{ID: "V5", Name: "Disabled", DataSource: "customers", Column: "id", CheckType: KindUnique,
			Active: ptr(false)},
	}
	summary := engine.Run(rules)

	assert.Equal(t, 4, summary.TotalRecords)
	assert.Equal(t, 4, summary.RulesExecuted)
	assert.Equal(t, 1, summary.RulesPassed)
	assert.Equal(t, 3, summary.RulesFailed)
	assert.Equal(t, 3, summary.RecordsWithErrors)
	assert.Equal(t, 1, summary.RecordsWithWarnings)
	// failing keys are 1, 2, 3 and 4
	assert.Equal(t, 0, summary.RecordsPassed)
	assert.Len(t, summary.Results, 5)

	entries := journal.Entries()
	require.NotEmpty(t, entries)
	assert.Equal(t, "Starting validation with 5 rules", entries[0].Message)
	assert.Equal(t, "Validation complete: 1 passed, 3 failed", entries[len(entries)-1].Message)
}

func TestRecordsPassedCountsDistinctKeys(t *testing.T) {
	engine := NewEngine(dataset.NewHintResolver(customers()))
	summary := engine.Run([]Rule{
		{ID: "V1", DataSource: "customers", Column: "score", CheckType: KindGreater, Parameter1: "0"},
		{ID: "V2", DataSource: "customers", Column: "score", CheckType: KindLess, Parameter1: "0"},
	})

	// row 1 fails V1, rows 2 to 4 fail V2
	assert.Equal(t, 4, summary.RecordsWithErrors)
	assert.Equal(t, 0, summary.RecordsPassed)

	// row 1 fails twice but is one record
	summary = engine.Run([]Rule{
		{ID: "V1", DataSource: "customers", Column: "score", CheckType: KindGreater, Parameter1: "0"},
		{ID: "V3", DataSource: "customers", Column: "score", CheckType: KindGreater, Parameter1: "0"},
	})
	assert.Equal(t, 2, summary.RecordsWithErrors)
	assert.Equal(t, 3, summary.RecordsPassed)
}

func TestAllInactive(t *testing.T) {
	engine := NewEngine(dataset.NewHintResolver(customers()), WithTotalRecords(10))
	summary := engine.Run([]Rule{
		{ID: "V1", DataSource: "customers", Column: "id", CheckType: KindNotNull, Active: ptr(false)},
	})

	assert.Empty(t, summary.Results)
	assert.Equal(t, 0, summary.RulesExecuted)
	assert.Equal(t, 10, summary.TotalRecords)
	assert.Equal(t, 10, summary.RecordsPassed)
}

func TestTotalRecordsFollowsValidatedDataset(t *testing.T) {
	rows := make([][]any, 10)
	for i := range rows {
		rows[i] = []any{i + 1, nil}
	}
	reg := dataset.NewRegistry()
	reg.Register("source1", dataset.FromRows("source1", []string{"id", "amount"}, [][]any{{1, 10}, {2, 20}}))
	reg.Register("validation_data", dataset.FromRows("validation_data", []string{"id", "amount"}, rows))

	engine := NewEngine(dataset.NewHintResolver(reg))
	summary := engine.Run([]Rule{
		{ID: "V1", DataSource: "validation_data", Column: "amount", CheckType: KindNotNull},
	})

	assert.Equal(t, 10, summary.TotalRecords)
	assert.Equal(t, 10, summary.RecordsWithErrors)
	assert.Equal(t, 0, summary.RecordsPassed)
}
