package screen

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/launchpad/internal/events"
	"github.com/rovshanmuradov/launchpad/internal/ui"
	"github.com/rovshanmuradov/launchpad/internal/ui/component"
	"github.com/rovshanmuradov/launchpad/internal/ui/router"
	"github.com/rovshanmuradov/launchpad/internal/ui/style"
	"github.com/rovshanmuradov/launchpad/internal/wallet"
)

// MenuItem represents a menu item
type MenuItem struct {
	Label       string
	Description string
	Route       ui.Route
}

// MainMenuItems is the launchpad menu in display order.
var MainMenuItems = []MenuItem{
	{"Create Token", "Deploy a new ERC-20 token through the factory", ui.RouteCreateToken},
	{"Presale Wizard", "Configure and launch a presale for one of your tokens", ui.RoutePresale},
	{"Active Sales", "Browse presales you can take part in", ui.RouteSales},
	{"Sale History", "Purchases made in your presales", ui.RouteHistory},
	{"Your Tokens", "Tokens deployed by the connected wallet", ui.RouteTokens},
	{"Multi Transfer", "Send one token to many recipients in one transaction", ui.RouteTransfer},
	{"Network", "Connect the wallet and switch networks", ui.RouteNetwork},
	{"Logs", "View application logs and activity", ui.RouteLogs},
}

type walletStatusMsg struct {
	account string
	network string
}

// MainMenuScreen represents the main menu screen
type MainMenuScreen struct {
	svc    *ui.Services
	width  int
	height int
	keyMap ui.KeyMap

	header  *component.StatusHeader
	helpBar *component.HelpBar

	selectedIndex int
	menuItems     []MenuItem
	notice        notice

	menuItemStyle    lipgloss.Style
	selectedStyle    lipgloss.Style
	descriptionStyle lipgloss.Style
}

// NewMainMenuScreen creates a new main menu screen
func NewMainMenuScreen(svc *ui.Services) *MainMenuScreen {
	palette := style.DefaultPalette()
	keyMap := ui.DefaultKeyMap()

	return &MainMenuScreen{
		svc:       svc,
		keyMap:    keyMap,
		menuItems: MainMenuItems,
		header:    component.NewStatusHeader(),
		helpBar:   component.NewHelpBar(keyMap.ContextualHelp(ui.RouteMainMenu)...),

		menuItemStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 2),

		selectedStyle: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Primary).
			Padding(0, 2).
			Bold(true),

		descriptionStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Padding(0, 4).
			Italic(true),
	}
}

// Init loads the wallet status shown in the header.
func (m *MainMenuScreen) Init() tea.Cmd {
	return m.loadStatus()
}

func (m *MainMenuScreen) loadStatus() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := svc.Context()
		defer cancel()
		return walletStatus(ctx, svc)
	}
}

func walletStatus(ctx context.Context, svc *ui.Services) walletStatusMsg {
	status := walletStatusMsg{}
	if svc.Wallet == nil {
		return status
	}
	status.account, _ = wallet.CurrentAccount(ctx, svc.Wallet)
	status.network = svc.Wallet.ActiveNetwork().Name
	return status
}

// Update handles screen updates
func (m *MainMenuScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Up):
			m.selectedIndex = (m.selectedIndex - 1 + len(m.menuItems)) % len(m.menuItems)
		case key.Matches(msg, m.keyMap.Down):
			m.selectedIndex = (m.selectedIndex + 1) % len(m.menuItems)
		case key.Matches(msg, m.keyMap.Enter):
			m.notice.clear()
			return m, ui.Navigate(m.SelectedRoute(), "")
		}

	case walletStatusMsg:
		m.header.SetAccount(msg.account)
		m.header.SetNetwork(msg.network)

	case ui.DomainEventMsg:
		switch ev := msg.Event.(type) {
		case events.AccountsChangedEvent, events.ChainChangedEvent:
			return m, m.loadStatus()
		case events.LaunchCreatedEvent:
			m.notice.success("Presale launched: " + ev.SaleName)
		case events.PurchaseCompletedEvent:
			m.notice.success("Purchase confirmed: " + ev.Quantity + " tokens")
		}

	case ui.ErrorMsg:
		m.notice.error(msg.Error)
	}
	return m, nil
}

// View renders the main menu screen
func (m *MainMenuScreen) View() string {
	var items []string
	for i, item := range m.menuItems {
		if i == m.selectedIndex {
			items = append(items, m.selectedStyle.Render("▶ "+item.Label))
			items = append(items, m.descriptionStyle.Render(item.Description))
		} else {
			items = append(items, m.menuItemStyle.Render("  "+item.Label))
		}
	}

	menu := style.ActivePanelStyle.Render(strings.Join(items, "\n"))
	body := lipgloss.JoinVertical(lipgloss.Left, m.header.View(), menu)
	return frame(m.width, "ERC-20 Launchpad", body, m.helpBar, m.notice.View())
}

// SetSize sets the screen dimensions
func (m *MainMenuScreen) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.header.SetWidth(width)
}

// SelectedRoute returns the currently selected route
func (m *MainMenuScreen) SelectedRoute() ui.Route {
	return m.menuItems[m.selectedIndex].Route
}
