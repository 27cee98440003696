package postgres

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amounts travel as text in both directions so NUMERIC precision never passes through float64.
func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to parse amount %q: %w", raw, err)
	}

	return amount, nil
}
