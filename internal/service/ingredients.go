package service

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mise-app/backend/internal/model"
)

// IngredientTotal is the aggregated amount of one ingredient across the whole
// cookbook, bucketed per unit.
type IngredientTotal struct {
	Name  string
	Units map[string]decimal.Decimal
}

// AggregateIngredients sums line-item quantities across all recipes. Names
// and units are trimmed and lowercased; a missing unit counts as "count".
// Items without a name or quantity, and quantities that do not parse, are
// skipped without aborting the report. A literal zero quantity is kept.
// Output is sorted alphabetically by ingredient name.
func AggregateIngredients(recipes []model.Recipe) []IngredientTotal {
	totals := make(map[string]map[string]decimal.Decimal)

	for _, recipe := range recipes {
		for _, item := range recipe.Items {
			name := strings.ToLower(strings.TrimSpace(item.ItemName))
			raw := strings.TrimSpace(string(item.Quantity))
			if name == "" || raw == "" {
				continue
			}
			amount, ok := ParseQuantity(raw)
			if !ok {
				continue
			}
			unit := strings.ToLower(strings.TrimSpace(item.Unit))
			if unit == "" {
				unit = "count"
			}
			if totals[name] == nil {
				totals[name] = make(map[string]decimal.Decimal)
			}
			totals[name][unit] = totals[name][unit].Add(amount)
		}
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	report := make([]IngredientTotal, 0, len(names))
	for _, name := range names {
		report = append(report, IngredientTotal{Name: name, Units: totals[name]})
	}
	return report
}
