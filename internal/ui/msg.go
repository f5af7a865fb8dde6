package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rovshanmuradov/launchpad/internal/events"
)

// Tea message types for UI communication

// RouterMsg asks the app to open a screen. Param carries a route argument
// such as the sale id for RouteSaleDetail.
type RouterMsg struct {
	To    Route
	Param string
}

// DomainEventMsg wraps an events.Bus event for the UI.
type DomainEventMsg struct {
	Event events.Event
}

// ErrorMsg is the result of a failed command.
type ErrorMsg struct {
	Error error
	Title string
}

// SuccessMsg is the result of a command that has nothing else to report.
type SuccessMsg struct {
	Message string
	Title   string
}

// Navigate returns a command that opens route.
func Navigate(route Route, param string) tea.Cmd {
	return func() tea.Msg {
		return RouterMsg{To: route, Param: param}
	}
}

// Route represents different screens in the application
type Route int

const (
	RouteMainMenu Route = iota
	RouteCreateToken
	RoutePresale
	RouteSales
	RouteSaleDetail
	RouteHistory
	RouteTokens
	RouteTransfer
	RouteNetwork
	RouteLogs
)

func (r Route) String() string {
	switch r {
	case RouteMainMenu:
		return "main_menu"
	case RouteCreateToken:
		return "create_token"
	case RoutePresale:
		return "presale"
	case RouteSales:
		return "sales"
	case RouteSaleDetail:
		return "sale_detail"
	case RouteHistory:
		return "history"
	case RouteTokens:
		return "tokens"
	case RouteTransfer:
		return "transfer"
	case RouteNetwork:
		return "network"
	case RouteLogs:
		return "logs"
	default:
		return "unknown"
	}
}
