package chain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TokenFactoryABI deploys fixed-supply ERC-20 tokens owned by the caller.
const TokenFactoryABI = `[
	{
		"inputs": [
			{"internalType": "string", "name": "name", "type": "string"},
			{"internalType": "string", "name": "symbol", "type": "string"},
			{"internalType": "uint256", "name": "initialSupply", "type": "uint256"}
		],
		"name": "createToken",
		"outputs": [{"internalType": "address", "name": "", "type": "address"}],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "internalType": "address", "name": "tokenAddress", "type": "address"},
			{"indexed": true, "internalType": "address", "name": "creator", "type": "address"},
			{"indexed": false, "internalType": "string", "name": "name", "type": "string"},
			{"indexed": false, "internalType": "string", "name": "symbol", "type": "string"},
			{"indexed": false, "internalType": "uint256", "name": "initialSupply", "type": "uint256"}
		],
		"name": "TokenCreated",
		"type": "event"
	}
]`

// ERC20ABI covers the calls the launchpad makes against arbitrary tokens.
const ERC20ABI = `[
	{"constant": true, "inputs": [], "name": "decimals", "outputs": [{"name": "", "type": "uint8"}], "type": "function"},
	{"constant": true, "inputs": [], "name": "symbol", "outputs": [{"name": "", "type": "string"}], "type": "function"},
	{"constant": true, "inputs": [{"name": "_owner", "type": "address"}], "name": "balanceOf", "outputs": [{"name": "balance", "type": "uint256"}], "type": "function"},
	{"constant": true, "inputs": [{"name": "owner", "type": "address"}, {"name": "spender", "type": "address"}], "name": "allowance", "outputs": [{"name": "", "type": "uint256"}], "type": "function"},
	{"constant": false, "inputs": [{"name": "spender", "type": "address"}, {"name": "amount", "type": "uint256"}], "name": "approve", "outputs": [{"name": "", "type": "bool"}], "type": "function"},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "from", "type": "address"},
			{"indexed": true, "name": "to", "type": "address"},
			{"indexed": false, "name": "value", "type": "uint256"}
		],
		"name": "Transfer",
		"type": "event"
	}
]`

// BatchTransferABI sends one token to many recipients in a single transaction.
const BatchTransferABI = `[
	{
		"inputs": [
			{"internalType": "address", "name": "token", "type": "address"},
			{"internalType": "address[]", "name": "recipients", "type": "address[]"},
			{"internalType": "uint256[]", "name": "amounts", "type": "uint256[]"}
		],
		"name": "batchTransfer",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	}
]`

// Contract pairs a deployed address with its ABI.
type Contract struct {
	Address common.Address
	ABI     abi.ABI
}

// NewContract parses abiJSON for the contract at address.
func NewContract(address common.Address, abiJSON string) (*Contract, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}
	return &Contract{Address: address, ABI: parsed}, nil
}

// MustContract is NewContract for the ABIs compiled into this package.
func MustContract(address common.Address, abiJSON string) *Contract {
	c, err := NewContract(address, abiJSON)
	if err != nil {
		panic(err)
	}
	return c
}

// DecodedEvent is a log matched against a contract ABI.
type DecodedEvent struct {
	Name    string
	Address common.Address
	Fields  map[string]interface{}
}

// DecodeLogs decodes every log whose first topic matches an event in the ABI.
// Logs that do not match are skipped.
func (c *Contract) DecodeLogs(logs []*types.Log) []DecodedEvent {
	var out []DecodedEvent
	for _, lg := range logs {
		if lg == nil || len(lg.Topics) == 0 {
			continue
		}
		ev, err := c.ABI.EventByID(lg.Topics[0])
		if err != nil {
			continue
		}

		fields := make(map[string]interface{})
		if len(lg.Data) > 0 {
			if err := c.ABI.UnpackIntoMap(fields, ev.Name, lg.Data); err != nil {
				continue
			}
		}

		var indexed abi.Arguments
		for _, arg := range ev.Inputs {
			if arg.Indexed {
				indexed = append(indexed, arg)
			}
		}
		if err := abi.ParseTopicsIntoMap(fields, indexed, lg.Topics[1:]); err != nil {
			continue
		}

		out = append(out, DecodedEvent{Name: ev.Name, Address: lg.Address, Fields: fields})
	}
	return out
}
