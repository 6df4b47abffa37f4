package compare

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name      string
		v1, v2    any
		tol       Tolerance
		wantMatch bool
		wantDiff  Difference
	}{
		{"BothNull", nil, nil, Within(1, Absolute), true, Difference{}},
		{"FirstNull", nil, int64(5), Exact(), false, Difference{Mismatch: NullMismatch}},
		{"SecondNull", "x", nil, Exact(), false, Difference{Mismatch: NullMismatch}},
		{"ExactEqual", int64(5), 5.0, Exact(), true, Difference{}},
		{"ExactDiffer", 5.0, 5.5, Exact(), false, Difference{Amount: 0.5}},
		{"NumericStrings", " 10 ", "10.0", Exact(), true, Difference{}},
		{"AbsoluteWithin", int64(0), 0.005, Within(0.01, Absolute), true, Difference{Amount: 0.005}},
		{"AbsoluteOutside", int64(0), 0.5, Within(0.01, Absolute), false, Difference{Amount: 0.5}},
		{"PercentageWithin", 100.0, 101.0, Within(1, Percentage), true, Difference{Amount: 1}},
		{"PercentageBaseIsFirst", 101.0, 100.0, Within(1, Percentage), true, Difference{Amount: 1}},
		{"PercentageOutside", 100.0, 110.0, Within(1, Percentage), false, Difference{Amount: 10}},
		{"PercentageZeroBaseEqual", 0.0, 0.0, Within(5, Percentage), true, Difference{}},
		{"PercentageZeroBaseDiffer", 0.0, 0.1, Within(5, Percentage), false, Difference{Amount: 0.1}},
		{"Days", int64(10), int64(12), Within(2, Days), true, Difference{Amount: 2}},
		{"UnknownTypeIsExact", 1.0, 1.5, Within(50, SimilarityScore), false, Difference{Amount: 0.5}},
		{"TypeWithoutAmount", 1.0, 1.5, Tolerance{Type: Absolute}, false, Difference{Amount: 0.5}},
		{"StringEqualTrimmed", " abc", "abc ", Exact(), true, Difference{}},
		{"StringDiffer", "abc", "abd", Within(100, Absolute), false, Difference{Mismatch: StringMismatch}},
		{"MixedStringNumber", "abc", int64(1), Exact(), false, Difference{Mismatch: StringMismatch}},
		{"Bools", true, int64(1), Exact(), true, Difference{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, diff := Compare(tt.v1, tt.v2, tt.tol)
			assert.Equal(t, tt.wantMatch, match)
			assert.Equal(t, tt.wantDiff.Mismatch, diff.Mismatch)
			assert.InDelta(t, tt.wantDiff.Amount, diff.Amount, 1e-9)
		})
	}
}

func TestCompare_AbsoluteIsSymmetric(t *testing.T) {
	pairs := [][2]float64{{1, 2}, {100, 100.5}, {-3, 3}, {0, 0.01}}
	tol := Within(0.5, Absolute)
	for _, p := range pairs {
		m1, d1 := Compare(p[0], p[1], tol)
		m2, d2 := Compare(p[1], p[0], tol)
		assert.Equal(t, m1, m2)
		assert.Equal(t, d1, d2)
	}
}

func TestCompare_PercentageIsNotSymmetric(t *testing.T) {
	tol := Within(10, Percentage)
	m1, _ := Compare(100.0, 110.0, tol)
	m2, _ := Compare(110.0, 100.0, tol)
	assert.True(t, m1)
	assert.True(t, m2)

	tol = Within(9.5, Percentage)
	m1, _ = Compare(100.0, 110.0, tol)
	m2, _ = Compare(110.0, 100.0, tol)
	assert.False(t, m1)
	assert.True(t, m2)
}

func TestDifference_String(t *testing.T) {
	assert.Equal(t, "5.0", Difference{Amount: 5}.String())
	assert.Equal(t, NullMismatch, Difference{Mismatch: NullMismatch}.String())
	assert.True(t, Difference{}.IsNumeric())
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"Identical", "robert smith", "robert smith", 1},
		{"BothEmpty", "", "", 1},
		{"OneEmpty", "abc", "", 0},
		{"Disjoint", "abc", "xyz", 0},
		{"Shifted", "abcd", "bcde", 0.75},
		{"NameTypo", "robert smith", "robert smyth", 22.0 / 24.0},
		{"Unicode", "josé", "jose", 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilarity_Deterministic(t *testing.T) {
	a, b := "Acme Corporation Ltd", "ACME Corp. Limited"
	assert.Equal(t, Similarity(a, b), Similarity(a, b))
}

func TestSimilarity_PopularElementsInLongInput(t *testing.T) {
	a := "x" + strings.Repeat("a", 10)
	b := strings.Repeat("a", 200)
	assert.Equal(t, 0.0, Similarity(a, b))

	short := strings.Repeat("a", 150)
	assert.InDelta(t, 20.0/161.0, Similarity(a, short), 1e-9)
}
