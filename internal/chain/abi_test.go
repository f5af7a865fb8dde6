package chain

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTokenCreated(t *testing.T) {
	factory := MustContract(common.HexToAddress("0x3f2D1103Ff5c18bf4E153da811D3817F583c516E"), TokenFactoryABI)
	ev := factory.ABI.Events["TokenCreated"]

	tokenAddr := common.HexToAddress("0x00000000000000000000000000000000000000a1")
	creator := common.HexToAddress("0x00000000000000000000000000000000000000b2")

	data, err := ev.Inputs.NonIndexed().Pack("Launch Token", "LT", big.NewInt(1000))
	require.NoError(t, err)

	logs := []*types.Log{
		{Topics: nil},
		{Address: factory.Address, Topics: []common.Hash{common.HexToHash("0xdead")}},
		{
			Address: factory.Address,
			Topics:  []common.Hash{ev.ID, common.BytesToHash(tokenAddr.Bytes()), common.BytesToHash(creator.Bytes())},
			Data:    data,
		},
	}

	events := factory.DecodeLogs(logs)
	require.Len(t, events, 1)

	receipt := &Receipt{Events: events}
	got, ok := receipt.Event("TokenCreated")
	require.True(t, ok)
	assert.Equal(t, tokenAddr, got.Fields["tokenAddress"])
	assert.Equal(t, creator, got.Fields["creator"])
	assert.Equal(t, "LT", got.Fields["symbol"])

	_, ok = receipt.Event("Transfer")
	assert.False(t, ok)
}

func TestBaseUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals uint8
		want     string
		wantErr  bool
	}{
		{"whole ether", "1", 18, "1000000000000000000", false},
		{"fraction", "0.015", 18, "15000000000000000", false},
		{"six decimals", "12.5", 6, "12500000", false},
		{"too precise", "0.0000001", 6, "", true},
		{"garbage", "abc", 18, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToBaseUnits(tt.amount, tt.decimals)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, tt.amount, FromBaseUnits(got, tt.decimals))
		})
	}
}
