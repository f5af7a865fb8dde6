package transfer

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/rovshanmuradov/launchpad/internal/chain"
)

var (
	ErrLastRecipient    = errors.New("at least one recipient is required")
	ErrUnknownRecipient = errors.New("unknown recipient")
)

// Recipient is one row of a batch transfer.
type Recipient struct {
	ID      string
	Address string
	Amount  string
}

// Batch is an ordered list of recipients. It always holds at least one row.
type Batch struct {
	recipients []Recipient
}

// NewBatch returns a batch with a single empty recipient.
func NewBatch() *Batch {
	b := &Batch{}
	b.Add()
	return b
}

// Add appends an empty recipient.
func (b *Batch) Add() Recipient {
	r := Recipient{ID: uuid.New().String()}
	b.recipients = append(b.recipients, r)
	return r
}

func (b *Batch) index(id string) int {
	for i, r := range b.recipients {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Remove deletes a recipient unless it is the only one left.
func (b *Batch) Remove(id string) error {
	if len(b.recipients) <= 1 {
		return ErrLastRecipient
	}
	i := b.index(id)
	if i < 0 {
		return ErrUnknownRecipient
	}
	b.recipients = append(b.recipients[:i], b.recipients[i+1:]...)
	return nil
}

// Update replaces the address and amount of a recipient.
func (b *Batch) Update(id, address, amount string) error {
	i := b.index(id)
	if i < 0 {
		return ErrUnknownRecipient
	}
	b.recipients[i].Address = address
	b.recipients[i].Amount = amount
	return nil
}

// Recipients returns a copy of the rows.
func (b *Batch) Recipients() []Recipient {
	return append([]Recipient(nil), b.recipients...)
}

func (b *Batch) Len() int {
	return len(b.recipients)
}

// Total sums the amounts in base units. Empty or malformed amounts are skipped.
func (b *Batch) Total(decimals uint8) *big.Int {
	total := new(big.Int)
	for _, r := range b.recipients {
		if strings.TrimSpace(r.Amount) == "" {
			continue
		}
		v, err := chain.ToBaseUnits(r.Amount, decimals)
		if err != nil {
			continue
		}
		total.Add(total, v)
	}
	return total
}

// Validate checks every row and returns the contract arguments.
func (b *Batch) Validate(decimals uint8) ([]common.Address, []*big.Int, error) {
	addresses := make([]common.Address, 0, len(b.recipients))
	amounts := make([]*big.Int, 0, len(b.recipients))

	for i, r := range b.recipients {
		if !common.IsHexAddress(strings.TrimSpace(r.Address)) {
			return nil, nil, fmt.Errorf("recipient %d: invalid address %q", i+1, r.Address)
		}
		v, err := chain.ToBaseUnits(r.Amount, decimals)
		if err != nil {
			return nil, nil, fmt.Errorf("recipient %d: %w", i+1, err)
		}
		if v.Sign() <= 0 {
			return nil, nil, fmt.Errorf("recipient %d: amount must be positive", i+1)
		}
		addresses = append(addresses, common.HexToAddress(strings.TrimSpace(r.Address)))
		amounts = append(amounts, v)
	}
	return addresses, amounts, nil
}
