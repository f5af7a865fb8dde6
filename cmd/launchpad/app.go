package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/launchpad/internal/ui"
	"github.com/rovshanmuradov/launchpad/internal/ui/router"
	"github.com/rovshanmuradov/launchpad/internal/ui/screen"
)

// AppModel represents the main TUI application model
type AppModel struct {
	svc    *ui.Services
	router *router.Router
	width  int
	height int
}

// NewAppModel creates the application model with the main menu on top.
func NewAppModel(svc *ui.Services) *AppModel {
	return &AppModel{
		svc:    svc,
		router: router.New(screen.NewMainMenuScreen(svc)),
	}
}

// Init initializes the application
func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Init(), m.svc.Listen())
}

// Update handles application-level updates
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		var cmd tea.Cmd
		m.router, cmd = m.router.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case ui.RouterMsg:
		return m, m.navigate(msg)

	case ui.DomainEventMsg:
		// the bridge delivers one message per Listen, so re-arm it here
		var cmd tea.Cmd
		m.router, cmd = m.router.Update(msg)
		return m, tea.Batch(cmd, m.svc.Listen())
	}

	var cmd tea.Cmd
	m.router, cmd = m.router.Update(msg)
	return m, cmd
}

// navigate opens the screen for msg. The main menu replaces the stack;
// every other route is pushed so esc returns to it.
func (m *AppModel) navigate(msg ui.RouterMsg) tea.Cmd {
	next := m.screenFor(msg)
	if next == nil {
		m.svc.Logger.Warn("Unknown route", zap.String("route", msg.To.String()))
		return nil
	}
	if msg.To == ui.RouteMainMenu {
		return m.router.Replace(next)
	}
	return m.router.Push(next)
}

func (m *AppModel) screenFor(msg ui.RouterMsg) router.Screen {
	switch msg.To {
	case ui.RouteMainMenu:
		return screen.NewMainMenuScreen(m.svc)
	case ui.RouteCreateToken:
		return screen.NewCreateTokenScreen(m.svc)
	case ui.RoutePresale:
		return screen.NewPresaleScreen(m.svc)
	case ui.RouteSales:
		return screen.NewSalesScreen(m.svc)
	case ui.RouteSaleDetail:
		return screen.NewSaleDetailScreen(m.svc, msg.Param)
	case ui.RouteHistory:
		return screen.NewHistoryScreen(m.svc)
	case ui.RouteTokens:
		return screen.NewTokensScreen(m.svc)
	case ui.RouteTransfer:
		return screen.NewTransferScreen(m.svc)
	case ui.RouteNetwork:
		return screen.NewNetworkScreen(m.svc)
	case ui.RouteLogs:
		return screen.NewLogsScreen(m.svc)
	default:
		return nil
	}
}

// View renders the application
func (m *AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	return m.router.View()
}
