package docstore

import "strings"

// SalesRoot is the subtree holding every creator's launches and purchase history.
const SalesRoot = "sales"

// WalletKey normalises a wallet address into a path segment.
func WalletKey(wallet string) string {
	return strings.ToLower(strings.TrimSpace(wallet))
}

// UserTokensPath is users/{wallet}/tokens.
func UserTokensPath(wallet string) string {
	return "users/" + WalletKey(wallet) + "/tokens"
}

// UserTokenPath is users/{wallet}/tokens/{tokenAddress}.
func UserTokenPath(wallet, tokenAddress string) string {
	return UserTokensPath(wallet) + "/" + strings.TrimSpace(tokenAddress)
}

// LaunchesPath is sales/{wallet}/launches.
func LaunchesPath(wallet string) string {
	return SalesRoot + "/" + WalletKey(wallet) + "/launches"
}

// HistoryPath is sales/{wallet}/history.
func HistoryPath(wallet string) string {
	return SalesRoot + "/" + WalletKey(wallet) + "/history"
}
