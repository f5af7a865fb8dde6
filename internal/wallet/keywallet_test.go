package wallet

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rovshanmuradov/launchpad/internal/chain"
	"github.com/rovshanmuradov/launchpad/internal/events"
)

const testKey = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

type nopBackend struct {
	url string
}

func (nopBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) { return 0, nil }
func (nopBackend) SuggestGasPrice(context.Context) (*big.Int, error)             { return big.NewInt(1), nil }
func (nopBackend) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) { return 21000, nil }
func (nopBackend) SendTransaction(context.Context, *types.Transaction) error     { return nil }
func (nopBackend) TransactionReceipt(context.Context, common.Hash) (*types.Receipt, error) {
	return nil, ethereum.NotFound
}
func (nopBackend) CallContract(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error) {
	return nil, nil
}

func newTestWallet(t *testing.T) (*KeyWallet, *[]string) {
	t.Helper()
	var dialed []string
	dial := func(_ context.Context, url string) (chain.Backend, error) {
		dialed = append(dialed, url)
		return nopBackend{url: url}, nil
	}

	bus := events.NewBus(zaptest.NewLogger(t), 8)
	t.Cleanup(func() { _ = bus.Shutdown(context.Background()) })

	w, err := NewKeyWallet("0x"+testKey, DefaultNetworks[0], dial, bus, zaptest.NewLogger(t))
	require.NoError(t, err)
	return w, &dialed
}

func TestKeyWalletConnect(t *testing.T) {
	w, _ := newTestWallet(t)
	ctx := context.Background()

	var seen [][]string
	unsubscribe := w.OnAccountsChanged(func(accounts []string) {
		seen = append(seen, accounts)
	})

	accounts, err := w.Accounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)

	_, err = w.Backend()
	assert.ErrorIs(t, err, ErrWalletNotConnected)

	accounts, err = w.RequestAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.True(t, common.IsHexAddress(accounts[0]))

	// A second request does not re-announce the same account.
	_, err = w.RequestAccounts(ctx)
	require.NoError(t, err)

	w.Disconnect(ctx)
	unsubscribe()
	_, _ = w.RequestAccounts(ctx)

	require.Len(t, seen, 2)
	assert.Equal(t, accounts, seen[0])
	assert.Empty(t, seen[1])
}

func TestKeyWalletSwitchChain(t *testing.T) {
	w, dialed := newTestWallet(t)
	ctx := context.Background()
	linea := DefaultNetworks[1]

	var chains []string
	defer w.OnChainChanged(func(id string) { chains = append(chains, id) })()

	err := w.SwitchChain(ctx, linea.ChainID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrChainUnrecognized))

	require.NoError(t, SwitchNetwork(ctx, w, linea, zaptest.NewLogger(t)))

	id, err := w.ChainID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0xe705", id)
	assert.Equal(t, int64(0xe705), w.ChainIDBig().Int64())
	assert.Equal(t, []string{"0xe705"}, chains)
	assert.Equal(t, []string{"https://rpc.sepolia.linea.build"}, *dialed)

	_, err = w.RequestAccounts(ctx)
	require.NoError(t, err)
	backend, err := w.Backend()
	require.NoError(t, err)
	assert.Equal(t, "https://rpc.sepolia.linea.build", backend.(nopBackend).url)
}

func TestKeyWalletSigns(t *testing.T) {
	w, _ := newTestWallet(t)

	tx := types.NewTransaction(1, common.HexToAddress("0x01"), big.NewInt(5), 21000, big.NewInt(1), nil)
	signed, err := w.SignTx(tx, w.ChainIDBig())
	require.NoError(t, err)

	sender, err := types.Sender(types.LatestSignerForChainID(w.ChainIDBig()), signed)
	require.NoError(t, err)
	assert.Equal(t, w.Address(), sender)

	key, err := crypto.HexToECDSA(testKey)
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), w.Address())
}

func TestNewKeyWalletRejectsBadKey(t *testing.T) {
	_, err := NewKeyWallet("not-a-key", DefaultNetworks[0], nil, nil, zaptest.NewLogger(t))
	assert.Error(t, err)
}
