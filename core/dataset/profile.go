package dataset

import (
	"fmt"
	"math"
	"slices"
	"unicode/utf8"
)

// Profile summarizes one column for rule authors choosing checks and thresholds.
// Numeric fields are set for numeric columns, length fields for the others.
type Profile struct {
	Column            string   `json:"column_name"`
	Type              string   `json:"dtype"`
	Total             int      `json:"total_count"`
	Nulls             int      `json:"null_count"`
	NullPercentage    float64  `json:"null_percentage"`
	Unique            int      `json:"unique_count"`
	UniquePercentage  float64  `json:"unique_percentage"`
	Numeric           bool     `json:"is_numeric"`
	Min               *float64 `json:"min,omitempty"`
	Max               *float64 `json:"max,omitempty"`
	Mean              *float64 `json:"mean,omitempty"`
	Median            *float64 `json:"median,omitempty"`
	Std               *float64 `json:"std,omitempty"`
	HasNegatives      bool     `json:"has_negatives,omitempty"`
	AppearsPercentage *bool    `json:"appears_percentage,omitempty"`
	MinLength         *int     `json:"min_length,omitempty"`
	MaxLength         *int     `json:"max_length,omitempty"`
	AvgLength         *float64 `json:"avg_length,omitempty"`
	Samples           []string `json:"sample_values,omitempty"`
	HasEmptyStrings   bool     `json:"has_empty_strings,omitempty"`
}

const sampleSize = 5

// Profile computes the profile of column.
func (d *Dataset) Profile(column string) (Profile, error) {
	if !d.HasColumn(column) {
		return Profile{}, fmt.Errorf("column '%s' not found in %s", column, d.Name)
	}

	values := d.Column(column)
	p := Profile{Column: column, Type: columnType(values), Total: len(values)}

	var present []Value
	distinct := make(map[string]struct{})
	for _, v := range values {
		if IsNull(v) {
			p.Nulls++
			continue
		}
		present = append(present, v)
		distinct[Text(v)] = struct{}{}
	}
	p.Unique = len(distinct)
	p.NullPercentage = percentage(p.Nulls, p.Total)
	p.UniquePercentage = percentage(p.Unique, p.Total)

	p.Numeric = p.Type != "object"
	if p.Numeric {
		profileNumbers(&p, present)
	} else {
		profileText(&p, present)
	}
	return p, nil
}

// columnType names the column the way a data-frame reader types it: int64, float64,
// bool or object. A column without values reads as float64.
func columnType(values []Value) string {
	ints, floats, bools, others := 0, 0, 0, 0
	for _, v := range values {
		switch v.(type) {
		case nil:
		case int64:
			ints++
		case float64:
			floats++
		case bool:
			bools++
		default:
			others++
		}
	}
	switch {
	case others > 0 || (bools > 0 && ints+floats > 0):
		return "object"
	case bools > 0:
		return "bool"
	case ints > 0 && floats == 0 && ints == len(values):
		return "int64"
	default:
		return "float64"
	}
}

func profileNumbers(p *Profile, present []Value) {
	if len(present) == 0 {
		return
	}
	nums := make([]float64, 0, len(present))
	sum := 0.0
	for _, v := range present {
		f, _ := Float(v)
		nums = append(nums, f)
		sum += f
		if f < 0 {
			p.HasNegatives = true
		}
	}
	slices.Sort(nums)

	lo, hi := nums[0], nums[len(nums)-1]
	mean := sum / float64(len(nums))
	p.Min, p.Max, p.Mean = &lo, &hi, &mean

	mid := len(nums) / 2
	median := nums[mid]
	if len(nums)%2 == 0 {
		median = (nums[mid-1] + nums[mid]) / 2
	}
	p.Median = &median

	// sample standard deviation, undefined for a single value
	if len(nums) > 1 {
		sq := 0.0
		for _, f := range nums {
			sq += (f - mean) * (f - mean)
		}
		std := math.Sqrt(sq / float64(len(nums)-1))
		p.Std = &std
	}

	appears := lo >= 0 && hi <= 100
	p.AppearsPercentage = &appears
}

func profileText(p *Profile, present []Value) {
	if len(present) == 0 {
		return
	}
	minLen, maxLen, total := math.MaxInt, 0, 0
	for _, v := range present {
		s := Text(v)
		n := utf8.RuneCountInString(s)
		minLen, maxLen, total = min(minLen, n), max(maxLen, n), total+n
		if s == "" {
			p.HasEmptyStrings = true
		}
		if len(p.Samples) < sampleSize {
			p.Samples = append(p.Samples, s)
		}
	}
	avg := round2(float64(total) / float64(len(present)))
	p.MinLength, p.MaxLength, p.AvgLength = &minLen, &maxLen, &avg
}

func percentage(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(n) / float64(total) * 100)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
