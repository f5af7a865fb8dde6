package ui

import (
	"context"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/launchpad/internal/events"
)

// UpdateSender provides non-blocking UI update sending with statistics
type UpdateSender struct {
	msgChan        chan tea.Msg
	droppedUpdates uint64
	sentUpdates    uint64
	logger         *zap.Logger
	statsInterval  time.Duration
	stopStats      chan struct{}
}

// NewUpdateSender creates a new non-blocking update sender
func NewUpdateSender(msgChan chan tea.Msg, logger *zap.Logger) *UpdateSender {
	us := &UpdateSender{
		msgChan:       msgChan,
		logger:        logger,
		statsInterval: 30 * time.Second,
		stopStats:     make(chan struct{}),
	}
	go us.logStats()
	return us
}

// SendUpdate sends a message to the UI, dropping it when the channel is full.
func (us *UpdateSender) SendUpdate(msg tea.Msg) {
	select {
	case us.msgChan <- msg:
		atomic.AddUint64(&us.sentUpdates, 1)
	default:
		atomic.AddUint64(&us.droppedUpdates, 1)
	}
}

// GetStats returns current statistics
func (us *UpdateSender) GetStats() (sent, dropped uint64) {
	sent = atomic.LoadUint64(&us.sentUpdates)
	dropped = atomic.LoadUint64(&us.droppedUpdates)
	return sent, dropped
}

func (us *UpdateSender) logStats() {
	ticker := time.NewTicker(us.statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sent, dropped := us.GetStats()
			if dropped > 0 {
				us.logger.Warn("UI update statistics",
					zap.Uint64("sent", sent),
					zap.Uint64("dropped", dropped),
					zap.Float64("drop_rate", float64(dropped)/float64(sent+dropped)*100))
			}
		case <-us.stopStats:
			return
		}
	}
}

// Close stops the update sender
func (us *UpdateSender) Close() {
	close(us.stopStats)
}

// Bridge relays events.Bus events into the tea program as DomainEventMsg.
type Bridge struct {
	msgs   chan tea.Msg
	sender *UpdateSender
	subs   events.Group
}

// NewBridge subscribes to every launchpad event type on bus.
func NewBridge(bus *events.Bus, buffer int, logger *zap.Logger) *Bridge {
	msgs := make(chan tea.Msg, buffer)
	b := &Bridge{
		msgs:   msgs,
		sender: NewUpdateSender(msgs, logger.Named("ui_bridge")),
	}
	if bus == nil {
		return b
	}

	forward := func(_ context.Context, ev events.Event) error {
		b.sender.SendUpdate(DomainEventMsg{Event: ev})
		return nil
	}
	for _, t := range []events.EventType{
		events.AccountsChanged,
		events.ChainChanged,
		events.LaunchCreated,
		events.PurchaseCompleted,
		events.TokenCreated,
		events.TransferCompleted,
	} {
		b.subs.Add(bus.SubscribeFunc(t, forward))
	}
	return b
}

// Send queues msg for the program without blocking.
func (b *Bridge) Send(msg tea.Msg) {
	b.sender.SendUpdate(msg)
}

// Listen waits for the next relayed message. Models re-issue it after each
// message they receive from it.
func (b *Bridge) Listen() tea.Cmd {
	return func() tea.Msg {
		return <-b.msgs
	}
}

// GetStats returns relay statistics
func (b *Bridge) GetStats() (sent, dropped uint64) {
	return b.sender.GetStats()
}

// Close unsubscribes from the bus.
func (b *Bridge) Close() {
	b.subs.UnsubscribeAll()
	b.sender.Close()
}
