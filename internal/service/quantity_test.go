package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"whole number", "2", "2", true},
		{"decimal", "1.5", "1.5", true},
		{"fraction", "1/2", "0.5", true},
		{"three quarters", "3/4", "0.75", true},
		{"padded", "  2 ", "2", true},
		{"fraction with spaces", "1 / 2", "0.5", true},
		{"zero", "0", "0", true},
		{"not a number", "abc", "", false},
		{"division by zero", "1/0", "", false},
		{"double slash", "1/2/3", "", false},
		{"empty", "", "", false},
		{"only whitespace", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseQuantity(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
					"got %s, want %s", got, tt.want)
			}
		})
	}
}
