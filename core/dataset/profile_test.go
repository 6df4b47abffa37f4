package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileNumeric(t *testing.T) {
	ds := FromRows("ledger", []string{"amount"}, [][]any{{10}, {-2}, {nil}, {30}, {10}})

	p, err := ds.Profile("amount")
	require.NoError(t, err)

	assert.Equal(t, "float64", p.Type)
	assert.True(t, p.Numeric)
	assert.Equal(t, 5, p.Total)
	assert.Equal(t, 1, p.Nulls)
	assert.Equal(t, 20.0, p.NullPercentage)
	assert.Equal(t, 3, p.Unique)
	assert.Equal(t, 60.0, p.UniquePercentage)
	assert.Equal(t, -2.0, *p.Min)
	assert.Equal(t, 30.0, *p.Max)
	assert.Equal(t, 12.0, *p.Mean)
	assert.Equal(t, 10.0, *p.Median)
	assert.InDelta(t, 13.2665, *p.Std, 1e-4)
	assert.True(t, p.HasNegatives)
	assert.False(t, *p.AppearsPercentage)
	assert.Nil(t, p.MinLength)
}

func TestProfileIntegerColumn(t *testing.T) {
	ds := FromRows("ledger", []string{"id"}, [][]any{{1}, {2}})

	p, err := ds.Profile("id")
	require.NoError(t, err)
	assert.Equal(t, "int64", p.Type)
	assert.Equal(t, 1.5, *p.Median)
	assert.True(t, *p.AppearsPercentage)
}

func TestProfileText(t *testing.T) {
	ds := FromRows("people", []string{"name"}, [][]any{
		{"Ann"}, {"Bo"}, {""}, {nil}, {"Zoë"}, {"Cy"}, {"Ann"},
	})

	p, err := ds.Profile("name")
	require.NoError(t, err)

	assert.Equal(t, "object", p.Type)
	assert.False(t, p.Numeric)
	assert.Equal(t, 5, p.Unique)
	assert.Equal(t, 0, *p.MinLength)
	assert.Equal(t, 3, *p.MaxLength)
	assert.Equal(t, 2.17, *p.AvgLength)
	assert.Equal(t, []string{"Ann", "Bo", "", "Zoë", "Cy"}, p.Samples)
	assert.True(t, p.HasEmptyStrings)
	assert.Nil(t, p.Mean)
}

func TestProfileEmptyAndMissing(t *testing.T) {
	ds := FromRows("empty", []string{"v"}, [][]any{{nil}, {nil}})

	p, err := ds.Profile("v")
	require.NoError(t, err)
	assert.Equal(t, "float64", p.Type)
	assert.Equal(t, 100.0, p.NullPercentage)
	assert.Nil(t, p.Min)
	assert.Nil(t, p.AppearsPercentage)

	_, err = ds.Profile("nope")
	assert.EqualError(t, err, "column 'nope' not found in empty")
}
