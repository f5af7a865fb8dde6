package purchase

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rovshanmuradov/launchpad/internal/chain"
	"github.com/rovshanmuradov/launchpad/internal/chain/chaintest"
	"github.com/rovshanmuradov/launchpad/internal/discovery"
	"github.com/rovshanmuradov/launchpad/internal/docstore"
	"github.com/rovshanmuradov/launchpad/internal/domain"
	"github.com/rovshanmuradov/launchpad/internal/presale"
)

const (
	seller = "0x00000000000000000000000000000000000000B2"
	buyer  = "0x1111111111111111111111111111111111111111"
	other  = "0x2222222222222222222222222222222222222222"
)

func TestTermsFor(t *testing.T) {
	public := discovery.Listing{Launch: domain.Launch{
		PaymentCurrency: "Eth Sepolia",
		SalePrice:       "0.01",
		MinBuy:          "10",
		MaxBuy:          "",
	}}
	terms, err := TermsFor(public)
	require.NoError(t, err)
	assert.False(t, terms.Whitelisted)
	assert.True(t, terms.Unbounded)
	assert.Equal(t, "∞", terms.MaxLabel())
	assert.True(t, decimal.RequireFromString("10").Equal(terms.Min))

	private := discovery.Listing{Launch: domain.Launch{
		HasWhitelist: true,
		SalePrice:    "0.01",
		Whitelist:    &domain.Whitelist{MinBuy: "1", MaxBuy: "5", SalePrice: "0.005"},
	}}
	terms, err = TermsFor(private)
	require.NoError(t, err)
	assert.True(t, terms.Whitelisted)
	assert.True(t, decimal.RequireFromString("0.005").Equal(terms.Price))
	assert.Equal(t, "5", terms.MaxLabel())

	_, err = TermsFor(discovery.Listing{Launch: domain.Launch{MinBuy: "1"}})
	assert.ErrorIs(t, err, ErrNoPrice)
}

func TestTermsCheck(t *testing.T) {
	terms := Terms{
		Min:   decimal.RequireFromString("2"),
		Max:   decimal.RequireFromString("5"),
		Price: decimal.RequireFromString("0.1"),
	}

	tests := []struct {
		qty     string
		wantErr string
	}{
		{"2", ""},
		{"5", ""},
		{"3.5", ""},
		{"1", "Minimum buy is 2"},
		{"6", "Maximum buy is 5"},
		{"abc", ErrInvalidQuantity.Error()},
		{"0", ErrInvalidQuantity.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.qty, func(t *testing.T) {
			err := terms.Check(tt.qty)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}

	cost, err := terms.Cost("3")
	require.NoError(t, err)
	assert.Equal(t, "0.3", cost.String())
}

func setup(t *testing.T, sub *chaintest.Submitter) (*Service, docstore.Store) {
	t.Helper()
	store := docstore.NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, docstore.LaunchesPath(seller)+"/sale1", domain.Launch{
		TokenName:       "Launch Token",
		TokenSymbol:     "LT",
		TokenAddress:    "0x00000000000000000000000000000000000000A1",
		PaymentCurrency: "Eth Sepolia",
		SalePrice:       "0.01",
		MinBuy:          "1",
		MaxBuy:          "100",
		Softcap:         "5",
		Hardcap:         "10",
		PublicStartDate: "01/03/2025 10:00 AM",
		PublicEndDate:   "30/03/2025 10:00 AM",
	}))
	require.NoError(t, store.Write(ctx, docstore.LaunchesPath(seller)+"/private", domain.Launch{
		HasWhitelist:    true,
		Whitelist:       &domain.Whitelist{SalePrice: "0.005", Addresses: []string{other}},
		PublicStartDate: "01/03/2025 10:00 AM",
		PublicEndDate:   "30/03/2025 10:00 AM",
	}))

	now := time.Date(2025, 3, 8, 12, 0, 0, 0, presale.IST)
	sales := discovery.NewService(store, presale.IST, zaptest.NewLogger(t)).
		WithClock(func() time.Time { return now })

	svc := NewService(sales, store, sub, nil, zaptest.NewLogger(t))
	svc.now = func() time.Time { return now }
	return svc, store
}

func TestBuy(t *testing.T) {
	sub := &chaintest.Submitter{}
	svc, _ := setup(t, sub)
	ctx := context.Background()

	record, err := svc.Buy(ctx, "sale1", buyer, "25")
	require.NoError(t, err)
	assert.Equal(t, domain.Amount("0.25"), record.AmountPaid)
	assert.Equal(t, "Eth Sepolia", record.PaymentToken)
	assert.Equal(t, 5.0, record.Softcap)
	assert.Equal(t, 10.0, record.Hardcap)
	assert.False(t, record.WhitelistEnabled)

	calls := sub.Submitted()
	require.Len(t, calls, 1)
	assert.Nil(t, calls[0].Contract)
	assert.Equal(t, common.HexToAddress(seller), calls[0].To)
	assert.Equal(t, 0, calls[0].Value.Cmp(big.NewInt(250_000_000_000_000_000)))

	history, err := svc.History(ctx, seller)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, docstore.WalletKey(seller), history[0].SaleOwner)
	assert.Equal(t, record.TransactionHash, history[0].TransactionHash)
	assert.Equal(t, "sale1", history[0].SaleID)
}

func TestBuyRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("below minimum", func(t *testing.T) {
		sub := &chaintest.Submitter{}
		svc, _ := setup(t, sub)
		_, err := svc.Buy(ctx, "sale1", buyer, "0.5")
		assert.EqualError(t, err, "Minimum buy is 1")
		assert.Empty(t, sub.Submitted())
	})

	t.Run("not whitelisted", func(t *testing.T) {
		sub := &chaintest.Submitter{}
		svc, _ := setup(t, sub)
		_, err := svc.Buy(ctx, "private", buyer, "1")
		assert.ErrorIs(t, err, discovery.ErrNotWhitelisted)
	})

	t.Run("unknown sale", func(t *testing.T) {
		svc, _ := setup(t, &chaintest.Submitter{})
		_, err := svc.Buy(ctx, "nope", buyer, "1")
		assert.ErrorIs(t, err, discovery.ErrNotFound)
	})

	t.Run("payment reverted writes nothing", func(t *testing.T) {
		svc, _ := setup(t, &chaintest.Submitter{WaitErr: chain.ErrReverted})
		_, err := svc.Buy(ctx, "sale1", buyer, "2")
		require.Error(t, err)
		assert.True(t, errors.Is(err, chain.ErrReverted))

		history, err := svc.History(ctx, seller)
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}

func TestHistoryOrder(t *testing.T) {
	svc, store := setup(t, &chaintest.Submitter{})
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, docstore.HistoryPath(seller), map[string]interface{}{
		"a": map[string]interface{}{"saleId": "s", "timestamp": 10, "softcap": 1},
		"b": map[string]interface{}{"saleId": "s", "timestamp": 30},
		"c": map[string]interface{}{"saleId": "s", "timestamp": 20},
	}))

	history, err := svc.History(ctx, seller)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{history[0].ID, history[1].ID, history[2].ID})
}
