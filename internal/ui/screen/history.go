package screen

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/launchpad/internal/domain"
	"github.com/rovshanmuradov/launchpad/internal/events"
	"github.com/rovshanmuradov/launchpad/internal/export"
	"github.com/rovshanmuradov/launchpad/internal/purchase"
	"github.com/rovshanmuradov/launchpad/internal/ui"
	"github.com/rovshanmuradov/launchpad/internal/ui/component"
	"github.com/rovshanmuradov/launchpad/internal/ui/router"
	"github.com/rovshanmuradov/launchpad/internal/ui/style"
)

type historyLoadedMsg struct {
	sales []purchase.Sale
}

type historyExportedMsg struct {
	path string
}

// HistoryScreen lists purchases made in the connected wallet's sales.
type HistoryScreen struct {
	svc    *ui.Services
	width  int
	height int
	keyMap ui.KeyMap

	table   *component.Table
	helpBar *component.HelpBar
	sales   []purchase.Sale
	loaded  bool
	notice  notice
	busy    busy
}

func NewHistoryScreen(svc *ui.Services) *HistoryScreen {
	keyMap := ui.DefaultKeyMap()
	return &HistoryScreen{
		svc:    svc,
		keyMap: keyMap,
		table: component.NewTable().
			AddColumn("Time", 16, lipgloss.Left).
			AddColumn("Buyer", 13, lipgloss.Left).
			AddColumn("Token", 10, lipgloss.Left).
			AddColumn("Quantity", 12, lipgloss.Right).
			AddColumn("Paid", 0, lipgloss.Right).
			AddColumn("Phase", 9, lipgloss.Center).
			AddColumn("Tx", 13, lipgloss.Left),
		helpBar: component.NewHelpBar(keyMap.ContextualHelp(ui.RouteHistory)...),
		busy:    newBusy(),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return tea.Batch(s.load(), s.busy.start("Loading history..."))
}

func (s *HistoryScreen) load() tea.Cmd {
	svc := s.svc
	return run(svc, "Load history", func(ctx context.Context) (tea.Msg, error) {
		owner, err := account(ctx, svc)
		if err != nil {
			return nil, err
		}
		sales, err := svc.Purchase.History(ctx, owner)
		if err != nil {
			return nil, err
		}
		return historyLoadedMsg{sales: sales}, nil
	})
}

func (s *HistoryScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.busy.stop()
		s.loaded = true
		s.sales = msg.sales
		s.table.SetRows(historyRows(msg.sales))
		return s, nil

	case historyExportedMsg:
		s.busy.stop()
		s.notice.success("Exported to " + msg.path)
		return s, nil

	case ui.ErrorMsg:
		s.busy.stop()
		s.notice.error(msg.Error)
		return s, nil

	case ui.DomainEventMsg:
		switch msg.Event.(type) {
		case events.PurchaseCompletedEvent, events.AccountsChangedEvent:
			return s, s.load()
		}
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Up):
			s.table.MoveUp()
		case key.Matches(msg, s.keyMap.Down):
			s.table.MoveDown()
		case key.Matches(msg, s.keyMap.Refresh):
			return s, tea.Batch(s.load(), s.busy.start("Refreshing..."))
		case key.Matches(msg, s.keyMap.Export):
			return s, s.export()
		}
		return s, nil
	}
	return s, s.busy.update(msg)
}

func (s *HistoryScreen) export() tea.Cmd {
	if s.svc.Exporter == nil {
		s.notice.error(errors.New("export is not configured"))
		return nil
	}
	if len(s.sales) == 0 {
		s.notice.error(export.ErrNothingToExport)
		return nil
	}
	svc, sales := s.svc, s.sales
	return tea.Batch(
		run(svc, "Export history", func(context.Context) (tea.Msg, error) {
			path, err := svc.Exporter.Export(sales, export.Options{Format: export.FormatCSV})
			if err != nil {
				return nil, err
			}
			return historyExportedMsg{path: path}, nil
		}),
		s.busy.start("Exporting..."),
	)
}

func historyRows(sales []purchase.Sale) [][]string {
	rows := make([][]string, len(sales))
	for i, sale := range sales {
		phase := "public"
		if sale.WhitelistEnabled {
			phase = "whitelist"
		}
		rows[i] = []string{
			time.UnixMilli(sale.Timestamp).Format(windowLayout),
			domain.ShortAddress(sale.BuyerAddress),
			sale.TokenSymbol,
			sale.QuantityPurchased.String(),
			sale.AmountPaid.String() + " " + sale.PaymentToken,
			phase,
			domain.ShortAddress(sale.TransactionHash),
		}
	}
	return rows
}

func (s *HistoryScreen) View() string {
	body := s.table.View()
	if s.loaded && len(s.sales) == 0 {
		body = style.MutedStyle.Render("No purchases yet.")
	}
	return frame(s.width, "Sale History", body, s.helpBar, s.busy.View(), s.notice.View())
}

func (s *HistoryScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.table.SetSize(width-4, height-10)
}
