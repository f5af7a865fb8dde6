// internal/events/types.go
package events

import (
	"time"
)

// EventType represents the type of event.
type EventType string

const (
	// Wallet events
	AccountsChanged EventType = "wallet.accounts_changed"
	ChainChanged    EventType = "wallet.chain_changed"

	// Launchpad events
	LaunchCreated     EventType = "launch.created"
	PurchaseCompleted EventType = "purchase.completed"
	TokenCreated      EventType = "token.created"
	TransferCompleted EventType = "transfer.completed"
)

// Event is the base interface for all events.
type Event interface {
	Type() EventType
	Timestamp() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	EventType EventType
	EventTime time.Time
}

// Type returns the event type.
func (e BaseEvent) Type() EventType {
	return e.EventType
}

// Timestamp returns when the event occurred.
func (e BaseEvent) Timestamp() time.Time {
	return e.EventTime
}

func newBase(t EventType) BaseEvent {
	return BaseEvent{EventType: t, EventTime: time.Now()}
}

// AccountsChangedEvent is emitted when the wallet's exposed accounts change.
// An empty slice means the wallet disconnected.
type AccountsChangedEvent struct {
	BaseEvent
	Accounts []string
}

// NewAccountsChanged builds an AccountsChangedEvent.
func NewAccountsChanged(accounts []string) AccountsChangedEvent {
	return AccountsChangedEvent{BaseEvent: newBase(AccountsChanged), Accounts: accounts}
}

// ChainChangedEvent is emitted after the wallet switches networks.
type ChainChangedEvent struct {
	BaseEvent
	ChainID string
}

// NewChainChanged builds a ChainChangedEvent.
func NewChainChanged(chainID string) ChainChangedEvent {
	return ChainChangedEvent{BaseEvent: newBase(ChainChanged), ChainID: chainID}
}

// LaunchCreatedEvent is emitted once a presale record is stored.
type LaunchCreatedEvent struct {
	BaseEvent
	LaunchID string
	Creator  string
	SaleName string
}

// NewLaunchCreated builds a LaunchCreatedEvent.
func NewLaunchCreated(id, creator, saleName string) LaunchCreatedEvent {
	return LaunchCreatedEvent{BaseEvent: newBase(LaunchCreated), LaunchID: id, Creator: creator, SaleName: saleName}
}

// PurchaseCompletedEvent is emitted after a purchase is paid and recorded.
type PurchaseCompletedEvent struct {
	BaseEvent
	SaleID   string
	Buyer    string
	Quantity string
	Amount   string
	TxHash   string
}

// TokenCreatedEvent is emitted after the factory deploys a token.
type TokenCreatedEvent struct {
	BaseEvent
	Owner        string
	TokenAddress string
	Symbol       string
	TxHash       string
}

// TransferCompletedEvent is emitted after a batch transfer confirms.
type TransferCompletedEvent struct {
	BaseEvent
	Token      string
	Recipients int
	TxHash     string
}

// Stamp sets the event type and time on an event literal.
func Stamp(t EventType) BaseEvent {
	return newBase(t)
}
