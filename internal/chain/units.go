package chain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// ToBaseUnits scales a decimal string by 10^decimals. Amounts with more
// fractional digits than the token supports are rejected.
func ToBaseUnits(amount string, decimals uint8) (*big.Int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return DecimalToBaseUnits(d, decimals)
}

// DecimalToBaseUnits is ToBaseUnits for an already parsed value.
func DecimalToBaseUnits(d decimal.Decimal, decimals uint8) (*big.Int, error) {
	scaled := d.Shift(int32(decimals))
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, fmt.Errorf("amount %s has more than %d decimal places", d.String(), decimals)
	}
	return scaled.BigInt(), nil
}

// FromBaseUnits renders a base-unit integer as a decimal string.
func FromBaseUnits(v *big.Int, decimals uint8) string {
	if v == nil {
		return "0"
	}
	return decimal.NewFromBigInt(v, -int32(decimals)).String()
}
