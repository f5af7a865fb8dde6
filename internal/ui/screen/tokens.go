package screen

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/launchpad/internal/domain"
	"github.com/rovshanmuradov/launchpad/internal/events"
	"github.com/rovshanmuradov/launchpad/internal/ui"
	"github.com/rovshanmuradov/launchpad/internal/ui/component"
	"github.com/rovshanmuradov/launchpad/internal/ui/router"
	"github.com/rovshanmuradov/launchpad/internal/ui/style"
)

// TokensScreen lists the tokens deployed by the connected wallet.
type TokensScreen struct {
	svc    *ui.Services
	width  int
	height int
	keyMap ui.KeyMap

	table   *component.Table
	helpBar *component.HelpBar
	tokens  []domain.TokenRecord
	loaded  bool
	notice  notice
	busy    busy
}

func NewTokensScreen(svc *ui.Services) *TokensScreen {
	keyMap := ui.DefaultKeyMap()
	return &TokensScreen{
		svc:    svc,
		keyMap: keyMap,
		table: component.NewTable().
			AddColumn("Name", 0, lipgloss.Left).
			AddColumn("Symbol", 8, lipgloss.Left).
			AddColumn("Supply", 18, lipgloss.Right).
			AddColumn("Address", 42, lipgloss.Left).
			AddColumn("Network", 16, lipgloss.Left).
			AddColumn("Created", 16, lipgloss.Left),
		helpBar: component.NewHelpBar(keyMap.ContextualHelp(ui.RouteTokens)...),
		busy:    newBusy(),
	}
}

func (s *TokensScreen) Init() tea.Cmd {
	return tea.Batch(s.load(), s.busy.start("Loading tokens..."))
}

func (s *TokensScreen) load() tea.Cmd {
	svc := s.svc
	return run(svc, "Load tokens", func(ctx context.Context) (tea.Msg, error) {
		owner, err := account(ctx, svc)
		if err != nil {
			return nil, err
		}
		tokens, err := svc.Tokens.List(ctx, owner)
		if err != nil {
			return nil, err
		}
		return tokensLoadedMsg{tokens: tokens}, nil
	})
}

func (s *TokensScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tokensLoadedMsg:
		s.busy.stop()
		s.loaded = true
		s.tokens = msg.tokens
		rows := make([][]string, len(msg.tokens))
		for i, t := range msg.tokens {
			rows[i] = []string{
				t.TokenName,
				t.TokenSymbol,
				t.TotalSupply.String(),
				t.TokenAddress,
				t.Network,
				time.UnixMilli(t.Timestamp).Format(windowLayout),
			}
		}
		s.table.SetRows(rows)
		return s, nil

	case ui.ErrorMsg:
		s.busy.stop()
		s.notice.error(msg.Error)
		return s, nil

	case ui.DomainEventMsg:
		switch msg.Event.(type) {
		case events.TokenCreatedEvent, events.AccountsChangedEvent:
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
		}
		return s, nil
	}
	return s, s.busy.update(msg)
}

func (s *TokensScreen) View() string {
	body := s.table.View()
	if s.loaded && len(s.tokens) == 0 {
		body = style.MutedStyle.Render("No tokens yet. Create one from the main menu.")
	}
	return frame(s.width, "Your Tokens", body, s.helpBar, s.busy.View(), s.notice.View())
}

func (s *TokensScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.table.SetSize(width-4, height-10)
}
