package purchase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/launchpad/internal/chain"
	"github.com/rovshanmuradov/launchpad/internal/discovery"
	"github.com/rovshanmuradov/launchpad/internal/docstore"
	"github.com/rovshanmuradov/launchpad/internal/domain"
	"github.com/rovshanmuradov/launchpad/internal/events"
	"github.com/rovshanmuradov/launchpad/internal/metrics"
	"github.com/rovshanmuradov/launchpad/internal/wallet"
)

// PaymentDecimals is the precision of the native payment currency.
const PaymentDecimals = 18

var ErrInvalidOwner = errors.New("sale owner is not a valid address")

// Sales resolves a sale id to a listing the buyer may see.
type Sales interface {
	Detail(ctx context.Context, id, wallet string) (discovery.Listing, error)
}

// Service pays for presale purchases and records them in the seller's history.
type Service struct {
	sales     Sales
	store     docstore.Store
	submitter chain.Submitter
	bus       *events.Bus
	now       func() time.Time
	logger    *zap.Logger
}

// NewService creates a purchase service.
func NewService(sales Sales, store docstore.Store, submitter chain.Submitter, bus *events.Bus, logger *zap.Logger) *Service {
	return &Service{
		sales:     sales,
		store:     store,
		submitter: submitter,
		bus:       bus,
		now:       time.Now,
		logger:    logger.Named("purchase"),
	}
}

// Quote returns the listing and its terms for the purchase screen.
func (s *Service) Quote(ctx context.Context, id, buyer string) (discovery.Listing, Terms, error) {
	l, err := s.sales.Detail(ctx, id, buyer)
	if err != nil {
		return discovery.Listing{}, Terms{}, err
	}
	terms, err := TermsFor(l)
	return l, terms, err
}

// Buy pays qty tokens' cost to the sale creator and records the purchase.
// Nothing is written unless the payment transaction confirms.
func (s *Service) Buy(ctx context.Context, id, buyer, qty string) (*domain.HistoryRecord, error) {
	if buyer == "" {
		return nil, wallet.ErrWalletNotConnected
	}

	l, terms, err := s.Quote(ctx, id, buyer)
	if err != nil {
		return nil, err
	}
	if err := terms.Check(qty); err != nil {
		return nil, err
	}
	if !common.IsHexAddress(l.CreatedBy) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOwner, l.CreatedBy)
	}

	cost, err := terms.Cost(qty)
	if err != nil {
		return nil, err
	}
	value, err := chain.DecimalToBaseUnits(cost, PaymentDecimals)
	if err != nil {
		return nil, fmt.Errorf("invalid payment amount: %w", err)
	}

	var receipt *chain.Receipt
	err = metrics.MeasureTransaction(metrics.KindPurchase, func() error {
		pending, err := s.submitter.Submit(ctx, chain.Call{
			To:    common.HexToAddress(l.CreatedBy),
			Value: value,
		})
		if err != nil {
			return err
		}
		receipt, err = pending.Wait(ctx)
		return err
	})
	if err != nil {
		metrics.PurchaseRecorded("failed")
		s.logger.Error("Purchase payment failed",
			zap.String("sale_id", id),
			zap.String("buyer", buyer),
			zap.Error(err))
		return nil, fmt.Errorf("payment failed: %w", err)
	}

	launch := l.Launch
	record := &domain.HistoryRecord{
		BuyerAddress:      buyer,
		TokenName:         launch.TokenName,
		TokenSymbol:       launch.TokenSymbol,
		TokenAddress:      launch.TokenAddress,
		QuantityPurchased: domain.Amount(qty),
		AmountPaid:        domain.Amount(cost.String()),
		PaymentToken:      launch.PaymentCurrency,
		SaleID:            id,
		WhitelistEnabled:  launch.HasWhitelist,
		Softcap:           launch.Softcap.Float(),
		Hardcap:           launch.Hardcap.Float(),
		Timestamp:         s.now().UnixMilli(),
		TransactionHash:   receipt.TxHash.Hex(),
	}

	if _, err := s.store.Push(ctx, docstore.HistoryPath(l.CreatedBy), record); err != nil {
		metrics.PurchaseRecorded("unrecorded")
		s.logger.Error("Purchase paid but not recorded",
			zap.String("sale_id", id),
			zap.String("tx_hash", record.TransactionHash),
			zap.Error(err))
		return record, fmt.Errorf("payment %s sent but history not saved: %w", record.TransactionHash, err)
	}

	metrics.PurchaseRecorded("success")
	s.logger.Info("Purchase recorded",
		zap.String("sale_id", id),
		zap.String("buyer", buyer),
		zap.String("quantity", qty),
		zap.String("amount", record.AmountPaid.String()),
		zap.String("tx_hash", record.TransactionHash))

	if s.bus != nil {
		ev := events.PurchaseCompletedEvent{
			BaseEvent: events.Stamp(events.PurchaseCompleted),
			SaleID:    id,
			Buyer:     buyer,
			Quantity:  qty,
			Amount:    record.AmountPaid.String(),
			TxHash:    record.TransactionHash,
		}
		if err := s.bus.Publish(ev); err != nil {
			s.logger.Warn("Failed to publish purchase event", zap.Error(err))
		}
	}
	return record, nil
}

// Sale is a history record with the namespace it was read from.
type Sale struct {
	ID        string
	SaleOwner string
	domain.HistoryRecord
}

// History returns the purchases made in wallet's sales, newest first.
func (s *Service) History(ctx context.Context, owner string) ([]Sale, error) {
	if owner == "" {
		return nil, wallet.ErrWalletNotConnected
	}

	var stored map[string]domain.HistoryRecord
	ok, err := docstore.ReadInto(ctx, s.store, docstore.HistoryPath(owner), &stored)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if !ok {
		return nil, nil
	}

	out := make([]Sale, 0, len(stored))
	for id, rec := range stored {
		out = append(out, Sale{ID: id, SaleOwner: docstore.WalletKey(owner), HistoryRecord: rec})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp > out[j].Timestamp
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
