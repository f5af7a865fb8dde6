package screen

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rovshanmuradov/launchpad/internal/domain"
	"github.com/rovshanmuradov/launchpad/internal/token"
	"github.com/rovshanmuradov/launchpad/internal/ui"
	"github.com/rovshanmuradov/launchpad/internal/ui/component"
	"github.com/rovshanmuradov/launchpad/internal/ui/router"
	"github.com/rovshanmuradov/launchpad/internal/ui/style"
)

type tokenCreatedMsg struct {
	record *domain.TokenRecord
}

// CreateTokenScreen deploys a token through the factory.
type CreateTokenScreen struct {
	svc    *ui.Services
	width  int
	height int
	keyMap ui.KeyMap

	form    *component.Form
	helpBar *component.HelpBar
	notice  notice
	busy    busy
}

func NewCreateTokenScreen(svc *ui.Services) *CreateTokenScreen {
	keyMap := ui.DefaultKeyMap()
	return &CreateTokenScreen{
		svc:    svc,
		keyMap: keyMap,
		form: component.NewForm().
			AddField("name", component.FieldTypeText, "Token Name", true, "My Token").
			AddField("symbol", component.FieldTypeText, "Token Symbol", true, "MTK").
			AddField("supply", component.FieldTypeNumber, "Total Supply", true, "1000000"),
		helpBar: component.NewHelpBar(keyMap.ContextualHelp(ui.RouteCreateToken)...),
		busy:    newBusy(),
	}
}

func (s *CreateTokenScreen) Init() tea.Cmd {
	return nil
}

func (s *CreateTokenScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tokenCreatedMsg:
		s.busy.stop()
		s.form.Reset()
		s.notice.success(fmt.Sprintf("%s deployed at %s", msg.record.TokenSymbol, msg.record.TokenAddress))
		return s, nil

	case ui.ErrorMsg:
		s.busy.stop()
		s.notice.error(msg.Error)
		return s, nil

	case tea.KeyMsg:
		if s.busy.active {
			return s, nil
		}
		if key.Matches(msg, s.keyMap.Submit) {
			return s, s.submit()
		}
		_, cmd := s.form.Update(msg)
		return s, cmd
	}
	return s, s.busy.update(msg)
}

func (s *CreateTokenScreen) submit() tea.Cmd {
	if !s.form.Validate() {
		return nil
	}
	if _, err := token.ParseSupply(s.form.GetValue("supply")); err != nil {
		s.form.SetError("supply", err.Error())
		return nil
	}

	svc := s.svc
	values := s.form.GetValues()
	cmd := run(svc, "Create token", func(ctx context.Context) (tea.Msg, error) {
		owner, err := account(ctx, svc)
		if err != nil {
			return nil, err
		}
		record, err := svc.Tokens.Create(ctx, owner, values["name"], values["symbol"], values["supply"])
		if err != nil {
			return nil, err
		}
		return tokenCreatedMsg{record: record}, nil
	})
	s.notice.clear()
	return tea.Batch(cmd, s.busy.start("Deploying token..."))
}

func (s *CreateTokenScreen) View() string {
	body := s.form.View() + "\n" + style.MutedStyle.Render("Tokens are deployed on Ethereum Sepolia with 18 decimals.")
	return frame(s.width, "Create Token", body, s.helpBar, s.busy.View(), s.notice.View())
}

func (s *CreateTokenScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.form.SetSize(width, height)
}
