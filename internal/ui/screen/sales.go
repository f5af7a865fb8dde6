package screen

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/launchpad/internal/discovery"
	"github.com/rovshanmuradov/launchpad/internal/events"
	"github.com/rovshanmuradov/launchpad/internal/ui"
	"github.com/rovshanmuradov/launchpad/internal/ui/component"
	"github.com/rovshanmuradov/launchpad/internal/ui/router"
	"github.com/rovshanmuradov/launchpad/internal/ui/style"
	"github.com/rovshanmuradov/launchpad/internal/wallet"
)

const windowLayout = "2006-01-02 15:04"

type listingsLoadedMsg struct {
	listings []discovery.Listing
	all      bool
}

// SalesScreen lists the presales the connected wallet may see.
type SalesScreen struct {
	svc    *ui.Services
	width  int
	height int
	keyMap ui.KeyMap

	table   *component.Table
	helpBar *component.HelpBar

	listings []discovery.Listing
	showAll  bool
	notice   notice
	busy     busy
}

func NewSalesScreen(svc *ui.Services) *SalesScreen {
	keyMap := ui.DefaultKeyMap()
	return &SalesScreen{
		svc:    svc,
		keyMap: keyMap,
		table: component.NewTable().
			AddColumn("Sale", 0, lipgloss.Left).
			AddColumn("Token", 10, lipgloss.Left).
			AddColumn("Price", 12, lipgloss.Right).
			AddColumn("Start", 16, lipgloss.Left).
			AddColumn("End", 16, lipgloss.Left).
			AddColumn("Status", 9, lipgloss.Center),
		helpBar: component.NewHelpBar(keyMap.ContextualHelp(ui.RouteSales)...),
		busy:    newBusy(),
	}
}

func (s *SalesScreen) Init() tea.Cmd {
	return tea.Batch(s.load(), s.busy.start("Loading sales..."))
}

func (s *SalesScreen) load() tea.Cmd {
	svc, all := s.svc, s.showAll
	return run(svc, "Load sales", func(ctx context.Context) (tea.Msg, error) {
		// Anonymous visitors still see public sales.
		viewer, _ := wallet.CurrentAccount(ctx, svc.Wallet)
		var (
			listings []discovery.Listing
			err      error
		)
		if all {
			listings, err = svc.Discovery.All(ctx, viewer)
		} else {
			listings, err = svc.Discovery.Active(ctx, viewer)
		}
		if err != nil {
			return nil, err
		}
		return listingsLoadedMsg{listings: listings, all: all}, nil
	})
}

// Listings returns the rows currently shown.
func (s *SalesScreen) Listings() []discovery.Listing {
	return s.listings
}

func (s *SalesScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case listingsLoadedMsg:
		s.busy.stop()
		if msg.all != s.showAll {
			return s, nil
		}
		s.listings = msg.listings
		s.table.SetRows(listingRows(msg.listings))
		s.notice.clear()
		return s, nil

	case ui.ErrorMsg:
		s.busy.stop()
		s.notice.error(msg.Error)
		return s, nil

	case ui.DomainEventMsg:
		switch msg.Event.(type) {
		case events.LaunchCreatedEvent, events.AccountsChangedEvent:
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
		case key.Matches(msg, s.keyMap.ShowAll):
			s.showAll = !s.showAll
			return s, tea.Batch(s.load(), s.busy.start("Loading sales..."))
		case key.Matches(msg, s.keyMap.Enter):
			if i := s.table.GetSelectedRow(); i < len(s.listings) {
				return s, ui.Navigate(ui.RouteSaleDetail, s.listings[i].ID)
			}
		}
		return s, nil
	}
	return s, s.busy.update(msg)
}

func listingRows(listings []discovery.Listing) [][]string {
	rows := make([][]string, len(listings))
	for i, l := range listings {
		price := l.Launch.SalePrice.String()
		if l.Launch.HasWhitelist && l.Launch.Whitelist != nil {
			price = l.Launch.Whitelist.SalePrice.String()
		}
		if price != "" {
			price += " " + l.Launch.PaymentCurrency
		}
		rows[i] = []string{
			l.Launch.SaleName,
			l.Launch.TokenSymbol,
			price,
			windowEdge(l, true),
			windowEdge(l, false),
			l.Status.String(),
		}
	}
	return rows
}

func windowEdge(l discovery.Listing, start bool) string {
	t := l.End
	if start {
		t = l.Start
	}
	if t.IsZero() {
		return "-"
	}
	return t.Format(windowLayout)
}

func (s *SalesScreen) View() string {
	title := "Active Sales"
	if s.showAll {
		title = "All Sales"
	}

	body := s.table.View()
	if len(s.listings) == 0 && !s.busy.active {
		body = style.MutedStyle.Render("No sales to show.")
	}
	return frame(s.width, title, body, s.helpBar, s.busy.View(), s.notice.View())
}

func (s *SalesScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.table.SetSize(width-4, height-10)
}
