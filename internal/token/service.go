package token

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/launchpad/internal/chain"
	"github.com/rovshanmuradov/launchpad/internal/docstore"
	"github.com/rovshanmuradov/launchpad/internal/domain"
	"github.com/rovshanmuradov/launchpad/internal/events"
	"github.com/rovshanmuradov/launchpad/internal/metrics"
	"github.com/rovshanmuradov/launchpad/internal/wallet"
)

// Decimals of every token the factory deploys.
const Decimals = 18

// NetworkName is recorded on every deployed token.
const NetworkName = "Ethereum Sepolia"

var (
	ErrWrongNetwork        = errors.New("please switch to Sepolia network")
	ErrMissingFields       = errors.New("please fill all fields")
	ErrInvalidSupply       = errors.New("please enter a valid whole number for supply")
	ErrTokenAddressMissing = errors.New("token deployed but could not retrieve address from logs")
)

var supplyPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// Service deploys tokens through the factory and lists a wallet's tokens.
type Service struct {
	store     docstore.Store
	adapter   wallet.Adapter
	submitter chain.Submitter
	factory   *chain.Contract
	chainID   string
	bus       *events.Bus
	now       func() time.Time
	logger    *zap.Logger
}

// NewService creates a token service. Deployment is only allowed while the
// wallet is on wallet.TokenChainID.
func NewService(store docstore.Store, adapter wallet.Adapter, submitter chain.Submitter, factory *chain.Contract, bus *events.Bus, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		adapter:   adapter,
		submitter: submitter,
		factory:   factory,
		chainID:   wallet.TokenChainID,
		bus:       bus,
		now:       time.Now,
		logger:    logger.Named("token"),
	}
}

// ParseSupply validates a human supply and scales it to base units.
func ParseSupply(supply string) (decimal.Decimal, error) {
	if !supplyPattern.MatchString(supply) {
		return decimal.Zero, ErrInvalidSupply
	}
	d, err := decimal.NewFromString(supply)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, ErrInvalidSupply
	}
	return d, nil
}

// Create deploys a token owned by owner and records it under the owner's namespace.
func (s *Service) Create(ctx context.Context, owner, name, symbol, supply string) (*domain.TokenRecord, error) {
	name, symbol, supply = strings.TrimSpace(name), strings.TrimSpace(symbol), strings.TrimSpace(supply)
	if name == "" || symbol == "" || supply == "" {
		return nil, ErrMissingFields
	}
	if owner == "" {
		return nil, wallet.ErrWalletNotConnected
	}

	chainID, err := s.adapter.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read chain id: %w", err)
	}
	if !strings.EqualFold(chainID, s.chainID) {
		return nil, ErrWrongNetwork
	}

	amount, err := ParseSupply(supply)
	if err != nil {
		return nil, err
	}
	initialSupply, err := chain.DecimalToBaseUnits(amount, Decimals)
	if err != nil {
		return nil, ErrInvalidSupply
	}

	var receipt *chain.Receipt
	err = metrics.MeasureTransaction(metrics.KindCreateToken, func() error {
		pending, err := s.submitter.Submit(ctx, chain.Call{
			Contract: s.factory,
			Method:   "createToken",
			Args:     []interface{}{name, symbol, initialSupply},
		})
		if err != nil {
			return err
		}
		s.logger.Info("Token deployment sent",
			zap.String("symbol", symbol),
			zap.String("tx_hash", pending.Hash().Hex()))

		receipt, err = pending.Wait(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error deploying token: %w", err)
	}

	ev, ok := receipt.Event("TokenCreated")
	if !ok {
		return nil, ErrTokenAddressMissing
	}
	tokenAddress, ok := ev.Fields["tokenAddress"].(common.Address)
	if !ok {
		return nil, ErrTokenAddressMissing
	}

	record := &domain.TokenRecord{
		TokenName:    name,
		TokenSymbol:  symbol,
		TotalSupply:  domain.Amount(supply),
		TokenAddress: tokenAddress.Hex(),
		Network:      NetworkName,
		Timestamp:    s.now().UnixMilli(),
	}
	if err := s.store.Write(ctx, docstore.UserTokenPath(owner, record.TokenAddress), record); err != nil {
		return nil, fmt.Errorf("token %s deployed but not saved: %w", record.TokenAddress, err)
	}

	s.logger.Info("Token deployed",
		zap.String("owner", owner),
		zap.String("token", record.TokenAddress),
		zap.String("symbol", symbol),
		zap.String("supply", supply),
		zap.String("tx_hash", receipt.TxHash.Hex()))

	if s.bus != nil {
		created := events.TokenCreatedEvent{
			BaseEvent:    events.Stamp(events.TokenCreated),
			Owner:        owner,
			TokenAddress: record.TokenAddress,
			Symbol:       symbol,
			TxHash:       receipt.TxHash.Hex(),
		}
		if err := s.bus.Publish(created); err != nil {
			s.logger.Warn("Failed to publish token event", zap.Error(err))
		}
	}
	return record, nil
}

// List returns the tokens deployed by wallet, newest first.
func (s *Service) List(ctx context.Context, owner string) ([]domain.TokenRecord, error) {
	if owner == "" {
		return nil, nil
	}

	var stored map[string]domain.TokenRecord
	ok, err := docstore.ReadInto(ctx, s.store, docstore.UserTokensPath(owner), &stored)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokens: %w", err)
	}
	if !ok {
		return nil, nil
	}

	tokens := make([]domain.TokenRecord, 0, len(stored))
	for key, t := range stored {
		if t.TokenAddress == "" {
			t.TokenAddress = key
		}
		tokens = append(tokens, t)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if tokens[i].Timestamp != tokens[j].Timestamp {
			return tokens[i].Timestamp > tokens[j].Timestamp
		}
		return tokens[i].TokenAddress < tokens[j].TokenAddress
	})
	return tokens, nil
}
