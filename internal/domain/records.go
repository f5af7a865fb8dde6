package domain

// StatusPending is the only status a launch is ever written with.
const StatusPending = "pending"

// TokenRecord is a deployed ERC-20 token, stored under users/{wallet}/tokens/{tokenAddress}.
type TokenRecord struct {
	TokenName    string `json:"tokenName"`
	TokenSymbol  string `json:"tokenSymbol"`
	TotalSupply  Amount `json:"totalSupply"`
	TokenAddress string `json:"tokenAddress"`
	Network      string `json:"network"`
	Timestamp    int64  `json:"timestamp"`
}

// Whitelist holds the early-access terms of a launch.
type Whitelist struct {
	SaleLimit Amount   `json:"whitelistSaleLimit"`
	SalePrice Amount   `json:"whitelistSalePrice"`
	MinBuy    Amount   `json:"whitelistMinBuy"`
	MaxBuy    Amount   `json:"whitelistMaxBuy"`
	Addresses []string `json:"whitelistAddresses"`
}

// Launch is a configured presale, stored under sales/{wallet}/launches/{launchId}.
// The sale price and buy bounds are only written for public sales.
type Launch struct {
	TokenAddress    string     `json:"tokenAddress"`
	TokenName       string     `json:"tokenName"`
	TokenSymbol     string     `json:"tokenSymbol"`
	PaymentCurrency string     `json:"paymentCurrency"`
	SalePrice       Amount     `json:"salePrice,omitempty"`
	LPLaunchPrice   Amount     `json:"lpLaunchPrice"`
	MinBuy          Amount     `json:"minBuy,omitempty"`
	MaxBuy          Amount     `json:"maxBuy,omitempty"`
	Softcap         Amount     `json:"softcap"`
	Hardcap         Amount     `json:"hardcap"`
	PreSaleLimit    Amount     `json:"preSaleLimit"`
	PublicStartDate string     `json:"publicStartDate"`
	PublicEndDate   string     `json:"publicEndDate"`
	HasWhitelist    bool       `json:"hasWhitelist"`
	Whitelist       *Whitelist `json:"whitelist"`
	SaleName        string     `json:"saleName"`
	SaleDescription string     `json:"saleDescription"`
	TwitterID       string     `json:"twitterId"`
	TelegramID      string     `json:"telegramId"`
	Website         string     `json:"website"`
	CreatedAt       string     `json:"createdAt"`
	Status          string     `json:"status"`
}

// WhitelistAddresses returns the allow-list, or nil when the launch has none.
func (l *Launch) WhitelistAddresses() []string {
	if l.Whitelist == nil {
		return nil
	}
	return l.Whitelist.Addresses
}

// HistoryRecord is one completed purchase. It lives under the seller's
// namespace: sales/{creator}/history/{historyId}.
type HistoryRecord struct {
	BuyerAddress      string  `json:"buyerAddress"`
	TokenName         string  `json:"tokenName"`
	TokenSymbol       string  `json:"tokenSymbol"`
	TokenAddress      string  `json:"tokenAddress"`
	QuantityPurchased Amount  `json:"quantityPurchased"`
	AmountPaid        Amount  `json:"amountPaid"`
	PaymentToken      string  `json:"paymentToken"`
	SaleID            string  `json:"saleId"`
	WhitelistEnabled  bool    `json:"whitelistEnabled"`
	Softcap           float64 `json:"softcap"`
	Hardcap           float64 `json:"hardcap"`
	Timestamp         int64   `json:"timestamp"`
	TransactionHash   string  `json:"transactionHash"`
}
