package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a decimal value kept exactly as the user typed it. Stored records
// written by older clients sometimes carry plain JSON numbers, so decoding
// accepts both forms.
type Amount string

// UnmarshalJSON accepts a JSON string, a JSON number or null.
func (a *Amount) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("amount must be a string or number: %w", err)
	}
	*a = Amount(n.String())
	return nil
}

// String returns the raw text.
func (a Amount) String() string {
	return string(a)
}

// Empty reports whether no value was entered.
func (a Amount) Empty() bool {
	return strings.TrimSpace(string(a)) == ""
}

// Decimal parses the amount.
func (a Amount) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(string(a)))
}

// Float returns the amount as a float64, or 0 when it does not parse.
func (a Amount) Float() float64 {
	d, err := a.Decimal()
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}
