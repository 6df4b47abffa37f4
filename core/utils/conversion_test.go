package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFloat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"Int64", int64(42), 42, true},
		{"Float", 1.5, 1.5, true},
		{"PaddedString", "  3.25 ", 3.25, true},
		{"Exponent", "1e3", 1000, true},
		{"True", true, 1, true},
		{"False", false, 0, true},
		{"Blank", "   ", 0, false},
		{"Text", "abc", 0, false},
		{"Nil", nil, 0, false},
		{"Bytes", []byte("7"), 7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"Nil", nil, ""},
		{"Int64", int64(1001), "1001"},
		{"IntegralFloat", 100.0, "100.0"},
		{"Fraction", 0.1, "0.1"},
		{"Small", 0.00001, "1e-05"},
		{"Large", 1e16, "1e+16"},
		{"NaN", math.NaN(), "nan"},
		{"Bool", true, "True"},
		{"String", "abc", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToString(tt.in))
		})
	}
}

func TestToInt(t *testing.T) {
	assert.Equal(t, 5, ToInt("5.0"))
	assert.Equal(t, 12, ToInt(int64(12)))
	assert.Equal(t, 3, ToInt(3.9))
	assert.Equal(t, 0, ToInt("x"))
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool(" yes "))
	assert.True(t, ToBool(1))
	assert.False(t, ToBool("false"))
	assert.False(t, ToBool(nil))
}
