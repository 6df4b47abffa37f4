package dataset

import (
	"math"
	"time"

	"recon-engine/core/utils"
)

// Value is a single cell: nil, int64, float64, bool or string.
type Value = any

// Record maps column names to values.
type Record map[string]Value

// Dataset is an immutable, ordered collection of records with a uniform column set.
type Dataset struct {
	// Name is the canonical name the dataset was loaded under.
	Name string `json:"name"`
	// Columns lists column names in source order.
	Columns []string `json:"columns"`
	// Records holds the rows in source order.
	Records []Record `json:"records"`
}

// New creates a dataset from already normalized records.
func New(name string, columns []string, records []Record) *Dataset {
	return &Dataset{Name: name, Columns: columns, Records: records}
}

// FromRows builds a dataset from positional rows, normalizing every cell.
// Rows shorter than the header are padded with nulls.
func FromRows(name string, columns []string, rows [][]any) *Dataset {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := make(Record, len(columns))
		for i, col := range columns {
			var v any
			if i < len(row) {
				v = row[i]
			}
			rec[col] = Normalize(v)
		}
		records = append(records, rec)
	}
	return New(name, columns, records)
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// HasColumn reports whether the dataset carries the named column.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Column returns the values of one column in record order.
func (d *Dataset) Column(name string) []Value {
	values := make([]Value, len(d.Records))
	for i, rec := range d.Records {
		values[i] = rec[name]
	}
	return values
}

// Normalize converts driver and decoder output into the dataset value set.
func Normalize(v any) Value {
	switch t := v.(type) {
	case nil:
		return nil
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case int64:
		return t
	case uint:
		return int64(t)
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return int64(t)
	case float32:
		return float64(t)
	case float64:
		if math.IsNaN(t) {
			return nil
		}
		return t
	case bool, string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format("2006-01-02 15:04:05")
	default:
		return utils.ToString(t)
	}
}

// IsNull reports whether a value is missing. NaN counts as missing.
func IsNull(v Value) bool {
	switch t := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(t)
	default:
		return false
	}
}

// Text renders a value the way reports and key comparisons see it.
func Text(v Value) string {
	if IsNull(v) {
		return ""
	}
	return utils.ToString(v)
}

// Display renders a value for report cells, showing nulls as NULL.
func Display(v Value) string {
	if IsNull(v) {
		return "NULL"
	}
	return utils.ToString(v)
}

// Float coerces a value to a number. Nulls never coerce.
func Float(v Value) (float64, bool) {
	if IsNull(v) {
		return 0, false
	}
	return utils.ToFloat(v)
}
