package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keyboard shortcuts for the application
type KeyMap struct {
	// Global navigation
	Quit key.Binding
	Back key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Tab      key.Binding
	ShiftTab key.Binding

	// Forms and wizards
	Submit     key.Binding
	PrevStep   key.Binding
	AddSlot    key.Binding
	RemoveSlot key.Binding
	Toggle     key.Binding

	// Lists
	Refresh    key.Binding
	ShowAll    key.Binding
	Approve    key.Binding
	Execute    key.Binding
	Connect    key.Binding
	Disconnect key.Binding
	Export     key.Binding

	// Logs
	FilterInfo  key.Binding
	FilterWarn  key.Binding
	FilterError key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),

		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),

		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "continue"),
		),
		PrevStep: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "previous step"),
		),
		AddSlot: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "add row"),
		),
		RemoveSlot: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "remove row"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),

		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r", "f5"),
			key.WithHelp("ctrl+r", "refresh"),
		),
		ShowAll: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "active/all"),
		),
		Approve: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "approve"),
		),
		Execute: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "send"),
		),
		Connect: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "connect"),
		),
		Disconnect: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "disconnect"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "export csv"),
		),

		FilterInfo: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "info"),
		),
		FilterWarn: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "warn"),
		),
		FilterError: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("F3", "error"),
		),
	}
}

// ContextualHelp returns the bindings shown in the help bar of route.
func (k KeyMap) ContextualHelp(route Route) []key.Binding {
	switch route {
	case RouteMainMenu:
		return []key.Binding{k.Up, k.Down, k.Enter, k.Quit}
	case RoutePresale:
		return []key.Binding{k.Tab, k.Submit, k.PrevStep, k.Toggle, k.AddSlot, k.RemoveSlot, k.Back}
	case RouteCreateToken:
		return []key.Binding{k.Tab, k.Submit, k.Back}
	case RouteSales:
		return []key.Binding{k.Up, k.Down, k.Enter, k.ShowAll, k.Refresh, k.Back}
	case RouteSaleDetail:
		return []key.Binding{k.Submit, k.Refresh, k.Back}
	case RouteHistory:
		return []key.Binding{k.Up, k.Down, k.Refresh, k.Export, k.Back}
	case RouteTokens:
		return []key.Binding{k.Up, k.Down, k.Refresh, k.Back}
	case RouteTransfer:
		return []key.Binding{k.Tab, k.AddSlot, k.RemoveSlot, k.Approve, k.Execute, k.Back}
	case RouteNetwork:
		return []key.Binding{k.Up, k.Down, k.Enter, k.Connect, k.Disconnect, k.Back}
	case RouteLogs:
		return []key.Binding{k.FilterInfo, k.FilterWarn, k.FilterError, k.Up, k.Down, k.Back}
	default:
		return []key.Binding{k.Back, k.Quit}
	}
}
