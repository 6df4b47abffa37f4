package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"ERROR", SeverityError},
		{" warning ", SeverityWarning},
		{"Info", SeverityInfo},
		{"", SeverityError},
		{"critical", SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSeverity(tt.in))
		})
	}
}

func TestQuoteList(t *testing.T) {
	assert.Equal(t, "['a', 'b']", QuoteList([]string{"a", "b"}))
	assert.Equal(t, "[]", QuoteList(nil))
}
