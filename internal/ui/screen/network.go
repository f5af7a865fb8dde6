package screen

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/launchpad/internal/ui"
	"github.com/rovshanmuradov/launchpad/internal/ui/component"
	"github.com/rovshanmuradov/launchpad/internal/ui/router"
	"github.com/rovshanmuradov/launchpad/internal/ui/style"
	"github.com/rovshanmuradov/launchpad/internal/wallet"
)

type networkSwitchedMsg struct {
	network wallet.Network
}

// NetworkScreen connects the wallet and switches between configured networks.
type NetworkScreen struct {
	svc    *ui.Services
	width  int
	height int
	keyMap ui.KeyMap

	header  *component.StatusHeader
	table   *component.Table
	helpBar *component.HelpBar

	account string
	chainID string
	notice  notice
	busy    busy
}

func NewNetworkScreen(svc *ui.Services) *NetworkScreen {
	keyMap := ui.DefaultKeyMap()
	s := &NetworkScreen{
		svc:    svc,
		keyMap: keyMap,
		header: component.NewStatusHeader(),
		table: component.NewTable().
			AddColumn("", 2, lipgloss.Center).
			AddColumn("Network", 0, lipgloss.Left).
			AddColumn("Chain ID", 12, lipgloss.Left).
			AddColumn("Currency", 9, lipgloss.Left),
		helpBar: component.NewHelpBar(keyMap.ContextualHelp(ui.RouteNetwork)...),
		busy:    newBusy(),
	}
	s.fillTable()
	return s
}

func (s *NetworkScreen) Init() tea.Cmd {
	return s.loadStatus()
}

func (s *NetworkScreen) loadStatus() tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		ctx, cancel := svc.Context()
		defer cancel()
		return walletStatus(ctx, svc)
	}
}

func (s *NetworkScreen) fillTable() {
	rows := make([][]string, len(s.svc.Networks))
	for i, n := range s.svc.Networks {
		marker := ""
		if strings.EqualFold(n.ChainID, s.chainID) {
			marker = "●"
		}
		rows[i] = []string{marker, n.Name, n.ChainID, n.Currency.Symbol}
	}
	s.table.SetRows(rows)
}

func (s *NetworkScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case walletStatusMsg:
		s.busy.stop()
		s.account = msg.account
		s.header.SetAccount(msg.account)
		s.header.SetNetwork(msg.network)
		if s.svc.Wallet != nil {
			s.chainID = s.svc.Wallet.ActiveNetwork().ChainID
		}
		s.fillTable()
		return s, nil

	case networkSwitchedMsg:
		s.busy.stop()
		s.notice.success("Switched to " + msg.network.Name)
		return s, s.loadStatus()

	case ui.ErrorMsg:
		s.busy.stop()
		s.notice.error(msg.Error)
		return s, nil

	case ui.DomainEventMsg:
		return s, s.loadStatus()

	case tea.KeyMsg:
		if s.busy.active {
			return s, nil
		}
		switch {
		case key.Matches(msg, s.keyMap.Up):
			s.table.MoveUp()
		case key.Matches(msg, s.keyMap.Down):
			s.table.MoveDown()
		case key.Matches(msg, s.keyMap.Connect):
			return s, s.connect()
		case key.Matches(msg, s.keyMap.Disconnect):
			return s, s.disconnect()
		case key.Matches(msg, s.keyMap.Enter):
			return s, s.switchTo(s.table.GetSelectedRow())
		}
		return s, nil
	}
	return s, s.busy.update(msg)
}

func (s *NetworkScreen) connect() tea.Cmd {
	svc := s.svc
	cmd := run(svc, "Connect wallet", func(ctx context.Context) (tea.Msg, error) {
		if _, err := svc.Wallet.RequestAccounts(ctx); err != nil {
			return nil, err
		}
		return walletStatus(ctx, svc), nil
	})
	return tea.Batch(cmd, s.busy.start("Connecting..."))
}

func (s *NetworkScreen) disconnect() tea.Cmd {
	svc := s.svc
	return run(svc, "Disconnect wallet", func(ctx context.Context) (tea.Msg, error) {
		svc.Wallet.Disconnect(ctx)
		return walletStatus(ctx, svc), nil
	})
}

func (s *NetworkScreen) switchTo(i int) tea.Cmd {
	if i < 0 || i >= len(s.svc.Networks) {
		return nil
	}
	svc, network := s.svc, s.svc.Networks[i]
	cmd := run(svc, "Switch network", func(ctx context.Context) (tea.Msg, error) {
		if err := wallet.SwitchNetwork(ctx, svc.Wallet, network, svc.Logger); err != nil {
			return nil, err
		}
		return networkSwitchedMsg{network: network}, nil
	})
	return tea.Batch(cmd, s.busy.start(fmt.Sprintf("Switching to %s...", network.Name)))
}

func (s *NetworkScreen) View() string {
	account := s.account
	if account == "" {
		account = "not connected"
	}
	info := style.MutedStyle.Render("Account: ") + account
	body := lipgloss.JoinVertical(lipgloss.Left, s.header.View(), info, "", s.table.View())
	return frame(s.width, "Network", body, s.helpBar, s.busy.View(), s.notice.View())
}

func (s *NetworkScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.header.SetWidth(width)
	s.table.SetSize(width-4, height-14)
}
