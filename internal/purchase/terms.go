package purchase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rovshanmuradov/launchpad/internal/discovery"
	"github.com/rovshanmuradov/launchpad/internal/domain"
)

var (
	ErrNoPrice         = errors.New("sale has no price")
	ErrInvalidQuantity = errors.New("quantity must be a positive number")
)

// Terms are the buy limits and price that apply to a sale. Whitelisted
// sales use the whitelist terms.
type Terms struct {
	Min          decimal.Decimal
	Max          decimal.Decimal
	Unbounded    bool
	Price        decimal.Decimal
	PaymentToken string
	Whitelisted  bool
}

// amountOr parses a stored amount, falling back when it is empty or not a number.
func amountOr(a domain.Amount, fallback decimal.Decimal) (decimal.Decimal, bool) {
	d, err := a.Decimal()
	if err != nil || d.IsZero() {
		return fallback, false
	}
	return d, true
}

// TermsFor derives the purchase terms of a listing.
func TermsFor(l discovery.Listing) (Terms, error) {
	launch := l.Launch
	t := Terms{PaymentToken: launch.PaymentCurrency}

	minBuy, maxBuy, price := launch.MinBuy, launch.MaxBuy, launch.SalePrice
	if launch.HasWhitelist && launch.Whitelist != nil {
		t.Whitelisted = true
		minBuy, maxBuy, price = launch.Whitelist.MinBuy, launch.Whitelist.MaxBuy, launch.Whitelist.SalePrice
	}

	t.Min, _ = amountOr(minBuy, decimal.Zero)
	var bounded bool
	t.Max, bounded = amountOr(maxBuy, decimal.Zero)
	t.Unbounded = !bounded

	p, ok := amountOr(price, decimal.Zero)
	if !ok {
		return t, ErrNoPrice
	}
	t.Price = p
	return t, nil
}

// ParseQuantity reads a token quantity typed by the user.
func ParseQuantity(qty string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(qty))
	if err != nil || !d.IsPositive() {
		return decimal.Zero, ErrInvalidQuantity
	}
	return d, nil
}

// Check validates qty against the buy limits.
func (t Terms) Check(qty string) error {
	q, err := ParseQuantity(qty)
	if err != nil {
		return err
	}
	if q.LessThan(t.Min) {
		return &LimitError{Bound: "Minimum", Limit: t.Min}
	}
	if !t.Unbounded && q.GreaterThan(t.Max) {
		return &LimitError{Bound: "Maximum", Limit: t.Max}
	}
	return nil
}

// LimitError is a quantity outside the sale's buy limits.
type LimitError struct {
	Bound string
	Limit decimal.Decimal
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s buy is %s", e.Bound, e.Limit.String())
}

// Cost is the amount of payment currency qty tokens cost.
func (t Terms) Cost(qty string) (decimal.Decimal, error) {
	q, err := ParseQuantity(qty)
	if err != nil {
		return decimal.Zero, err
	}
	return q.Mul(t.Price), nil
}

// MaxLabel renders the upper limit for display.
func (t Terms) MaxLabel() string {
	if t.Unbounded {
		return "∞"
	}
	return t.Max.String()
}
