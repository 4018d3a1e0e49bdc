package service

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseQuantity converts a dictated quantity string ("2", "1.5", "1/2") into
// a decimal. The second return value is false when the string holds no usable
// number; callers skip the item rather than failing the request.
func ParseQuantity(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, false
	}

	if d, err := decimal.NewFromString(raw); err == nil {
		return d, true
	}

	parts := strings.Split(raw, "/")
	if len(parts) != 2 {
		return decimal.Zero, false
	}
	num, err := decimal.NewFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return decimal.Zero, false
	}
	den, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil || den.IsZero() {
		return decimal.Zero, false
	}

	return num.Div(den), true
}
