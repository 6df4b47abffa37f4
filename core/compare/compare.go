package compare

import (
	"math"
	"strings"

	"recon-engine/core/dataset"
	"recon-engine/core/utils"
)

// ToleranceType is the unit a tolerance is expressed in.
type ToleranceType string

const (
	// Percentage is relative to the first value.
	Percentage ToleranceType = "percentage"
	// Absolute is a plain magnitude.
	Absolute ToleranceType = "absolute"
	// Days is a magnitude over values already expressed as day counts.
	Days ToleranceType = "days"
	// SimilarityScore is a 0-100 threshold used by fuzzy matching.
	SimilarityScore ToleranceType = "similarity_score"
)

// Sentinel differences reported when no numeric difference exists.
const (
	NullMismatch   = "NULL mismatch"
	StringMismatch = "String mismatch"
)

// Tolerance bounds how far two values may drift and still match.
type Tolerance struct {
	// Amount is nil when no tolerance was given.
	Amount *float64
	// Type selects how Amount is applied.
	Type ToleranceType
}

// Exact returns the zero tolerance: values must be equal.
func Exact() Tolerance {
	return Tolerance{}
}

// Within builds a tolerance of amount in the given unit.
func Within(amount float64, typ ToleranceType) Tolerance {
	return Tolerance{Amount: &amount, Type: typ}
}

// IsSet reports whether both an amount and a unit were supplied.
func (t Tolerance) IsSet() bool {
	return t.Amount != nil && t.Type != ""
}

// Difference is either a numeric distance or a mismatch sentinel.
type Difference struct {
	Amount   float64 `json:"amount"`
	Mismatch string  `json:"mismatch,omitempty"`
}

// IsNumeric reports whether the difference carries a distance.
func (d Difference) IsNumeric() bool {
	return d.Mismatch == ""
}

func (d Difference) String() string {
	if d.Mismatch != "" {
		return d.Mismatch
	}
	return utils.FormatFloat(d.Amount)
}

// Compare reports whether v1 and v2 match under tol, along with their difference.
//
// Two nulls match. A single null never matches. Values that both coerce to numbers are
// compared by |v1-v2|; a percentage tolerance is relative to |v1| and degenerates to
// exact equality when v1 is zero. An unknown or incomplete tolerance means exact
// equality. When either side is not numeric the trimmed texts are compared instead.
func Compare(v1, v2 dataset.Value, tol Tolerance) (bool, Difference) {
	null1, null2 := dataset.IsNull(v1), dataset.IsNull(v2)
	if null1 && null2 {
		return true, Difference{}
	}
	if null1 || null2 {
		return false, Difference{Mismatch: NullMismatch}
	}

	num1, ok1 := dataset.Float(v1)
	num2, ok2 := dataset.Float(v2)
	if !ok1 || !ok2 {
		if strings.TrimSpace(dataset.Text(v1)) == strings.TrimSpace(dataset.Text(v2)) {
			return true, Difference{}
		}
		return false, Difference{Mismatch: StringMismatch}
	}

	diff := math.Abs(num1 - num2)
	if tol.IsSet() {
		amount := *tol.Amount
		switch tol.Type {
		case Percentage:
			if num1 != 0 {
				return diff/math.Abs(num1)*100 <= amount, Difference{Amount: diff}
			}
			return diff == 0, Difference{Amount: diff}
		case Absolute, Days:
			return diff <= amount, Difference{Amount: diff}
		}
	}
	return num1 == num2, Difference{Amount: diff}
}
