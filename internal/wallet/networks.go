package wallet

import (
	"fmt"
	"math/big"
	"strings"
)

// TokenChainID is the only chain the token factory is deployed on.
const TokenChainID = "0xaa36a7"

// Currency is a chain's native currency.
type Currency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// Network is a chain the wallet can switch to, keyed by its display name.
type Network struct {
	Name         string   `json:"name"`
	ChainID      string   `json:"chainId"`
	ChainName    string   `json:"chainName"`
	Currency     Currency `json:"nativeCurrency"`
	RPCURLs      []string `json:"rpcUrls"`
	ExplorerURLs []string `json:"blockExplorerUrls"`
}

// ChainIDBig parses the hex chain id.
func (n Network) ChainIDBig() (*big.Int, error) {
	id, ok := new(big.Int).SetString(strings.TrimPrefix(strings.ToLower(n.ChainID), "0x"), 16)
	if !ok {
		return nil, fmt.Errorf("invalid chain id %q for %s", n.ChainID, n.Name)
	}
	return id, nil
}

// RPCURL returns the first configured RPC endpoint.
func (n Network) RPCURL() string {
	if len(n.RPCURLs) == 0 {
		return ""
	}
	return n.RPCURLs[0]
}

// DefaultNetworks are the chains the dashboard offers.
var DefaultNetworks = []Network{
	{
		Name:         "Ethereum Sepolia",
		ChainID:      "0xaa36a7",
		ChainName:    "Sepolia Testnet",
		Currency:     Currency{Name: "ETH", Symbol: "ETH", Decimals: 18},
		RPCURLs:      []string{"https://rpc.sepolia.org"},
		ExplorerURLs: []string{"https://sepolia.etherscan.io"},
	},
	{
		Name:         "Linea Sepolia",
		ChainID:      "0xe705",
		ChainName:    "Linea Sepolia Testnet",
		Currency:     Currency{Name: "ETH", Symbol: "ETH", Decimals: 18},
		RPCURLs:      []string{"https://rpc.sepolia.linea.build"},
		ExplorerURLs: []string{"https://sepolia.lineascan.build"},
	},
}

// PaymentCurrencies lists the currencies a presale can be priced in.
var PaymentCurrencies = []string{"Eth Sepolia", "Linea Sepolia"}

// DefaultPaymentCurrency is preselected in the presale wizard.
const DefaultPaymentCurrency = "Eth Sepolia"

// NetworkByName looks a network up by display name.
func NetworkByName(networks []Network, name string) (Network, bool) {
	for _, n := range networks {
		if n.Name == name {
			return n, true
		}
	}
	return Network{}, false
}

// NetworkByChainID looks a network up by hex chain id, ignoring case.
func NetworkByChainID(networks []Network, chainID string) (Network, bool) {
	for _, n := range networks {
		if strings.EqualFold(n.ChainID, chainID) {
			return n, true
		}
	}
	return Network{}, false
}
