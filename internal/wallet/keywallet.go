package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/launchpad/internal/chain"
	"github.com/rovshanmuradov/launchpad/internal/events"
)

// DialFunc opens an RPC backend for a chain.
type DialFunc func(ctx context.Context, rpcURL string) (chain.Backend, error)

// DialEthClient dials a JSON-RPC endpoint with ethclient.
func DialEthClient(ctx context.Context, rpcURL string) (chain.Backend, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// KeyWallet is an Adapter backed by a local secp256k1 key. Only the
// initial network is known until AddChain is called for another one.
type KeyWallet struct {
	mu        sync.RWMutex
	key       *ecdsa.PrivateKey
	address   common.Address
	connected bool
	known     map[string]Network
	backends  map[string]chain.Backend
	active    Network
	dial      DialFunc
	bus       *events.Bus
	logger    *zap.Logger
}

// NewKeyWallet loads a hex private key (with or without 0x).
func NewKeyWallet(privateKeyHex string, initial Network, dial DialFunc, bus *events.Bus, logger *zap.Logger) (*KeyWallet, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode private key: %w", err)
	}
	if dial == nil {
		dial = DialEthClient
	}

	return &KeyWallet{
		key:      key,
		address:  crypto.PubkeyToAddress(key.PublicKey),
		known:    map[string]Network{strings.ToLower(initial.ChainID): initial},
		backends: make(map[string]chain.Backend),
		active:   initial,
		dial:     dial,
		bus:      bus,
		logger:   logger.Named("wallet"),
	}, nil
}

// Accounts returns the wallet address once connected.
func (w *KeyWallet) Accounts(_ context.Context) ([]string, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.connected {
		return []string{}, nil
	}
	return []string{w.address.Hex()}, nil
}

// RequestAccounts connects the wallet.
func (w *KeyWallet) RequestAccounts(ctx context.Context) ([]string, error) {
	w.mu.Lock()
	changed := !w.connected
	w.connected = true
	w.mu.Unlock()

	accounts := []string{w.address.Hex()}
	if changed {
		w.logger.Info("Wallet connected", zap.String("address", w.address.Hex()))
		w.publish(ctx, events.NewAccountsChanged(accounts))
	}
	return accounts, nil
}

// Disconnect hides the account until RequestAccounts is called again.
func (w *KeyWallet) Disconnect(ctx context.Context) {
	w.mu.Lock()
	changed := w.connected
	w.connected = false
	w.mu.Unlock()

	if changed {
		w.logger.Info("Wallet disconnected")
		w.publish(ctx, events.NewAccountsChanged([]string{}))
	}
}

// ChainID returns the active chain id.
func (w *KeyWallet) ChainID(_ context.Context) (string, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.active.ChainID, nil
}

// ActiveNetwork returns the network the wallet is on.
func (w *KeyWallet) ActiveNetwork() Network {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.active
}

// SwitchChain activates a previously known chain.
func (w *KeyWallet) SwitchChain(ctx context.Context, chainID string) error {
	w.mu.Lock()
	network, ok := w.known[strings.ToLower(chainID)]
	if !ok {
		w.mu.Unlock()
		return &RPCError{Code: CodeChainUnrecognized, Message: fmt.Sprintf("Unrecognized chain ID %q", chainID)}
	}
	changed := !strings.EqualFold(w.active.ChainID, network.ChainID)
	w.active = network
	w.mu.Unlock()

	if changed {
		w.logger.Info("Switched network",
			zap.String("network", network.Name),
			zap.String("chain_id", network.ChainID))
		w.publish(ctx, events.NewChainChanged(network.ChainID))
	}
	return nil
}

// AddChain dials the network's RPC and makes the chain switchable.
func (w *KeyWallet) AddChain(ctx context.Context, network Network) error {
	if _, err := network.ChainIDBig(); err != nil {
		return err
	}
	if network.RPCURL() == "" {
		return fmt.Errorf("network %s has no rpc url", network.Name)
	}

	backend, err := w.dial(ctx, network.RPCURL())
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", network.RPCURL(), err)
	}

	w.mu.Lock()
	id := strings.ToLower(network.ChainID)
	w.known[id] = network
	w.backends[id] = backend
	w.mu.Unlock()

	w.logger.Info("Network added",
		zap.String("network", network.Name),
		zap.String("rpc", network.RPCURL()))
	return nil
}

// OnAccountsChanged relays account changes to fn.
func (w *KeyWallet) OnAccountsChanged(fn func(accounts []string)) func() {
	if w.bus == nil {
		return func() {}
	}
	sub := w.bus.SubscribeFunc(events.AccountsChanged, func(_ context.Context, e events.Event) error {
		if ev, ok := e.(events.AccountsChangedEvent); ok {
			fn(ev.Accounts)
		}
		return nil
	})
	return sub.Unsubscribe
}

// OnChainChanged relays chain switches to fn.
func (w *KeyWallet) OnChainChanged(fn func(chainID string)) func() {
	if w.bus == nil {
		return func() {}
	}
	sub := w.bus.SubscribeFunc(events.ChainChanged, func(_ context.Context, e events.Event) error {
		if ev, ok := e.(events.ChainChangedEvent); ok {
			fn(ev.ChainID)
		}
		return nil
	})
	return sub.Unsubscribe
}

// Address implements chain.Account.
func (w *KeyWallet) Address() common.Address {
	return w.address
}

// ChainIDBig implements chain.Account.
func (w *KeyWallet) ChainIDBig() *big.Int {
	id, err := w.ActiveNetwork().ChainIDBig()
	if err != nil {
		return big.NewInt(0)
	}
	return id
}

// Backend returns the RPC client of the active chain, dialing it on first use.
func (w *KeyWallet) Backend() (chain.Backend, error) {
	w.mu.RLock()
	connected := w.connected
	network := w.active
	backend, ok := w.backends[strings.ToLower(network.ChainID)]
	w.mu.RUnlock()

	if !connected {
		return nil, ErrWalletNotConnected
	}
	if ok {
		return backend, nil
	}

	backend, err := w.dial(context.Background(), network.RPCURL())
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", network.RPCURL(), err)
	}

	w.mu.Lock()
	w.backends[strings.ToLower(network.ChainID)] = backend
	w.mu.Unlock()
	return backend, nil
}

// SignTx implements chain.Account.
func (w *KeyWallet) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), w.key)
}

// Close releases every dialed RPC client.
func (w *KeyWallet) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for id, backend := range w.backends {
		if c, ok := backend.(interface{ Close() }); ok {
			c.Close()
		}
		delete(w.backends, id)
	}
}

func (w *KeyWallet) publish(ctx context.Context, event events.Event) {
	if w.bus == nil {
		return
	}
	if err := w.bus.PublishSync(ctx, event); err != nil {
		w.logger.Warn("Wallet listener failed",
			zap.String("event_type", string(event.Type())),
			zap.Error(err))
	}
}
