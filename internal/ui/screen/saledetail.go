package screen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/launchpad/internal/discovery"
	"github.com/rovshanmuradov/launchpad/internal/domain"
	"github.com/rovshanmuradov/launchpad/internal/purchase"
	"github.com/rovshanmuradov/launchpad/internal/ui"
	"github.com/rovshanmuradov/launchpad/internal/ui/component"
	"github.com/rovshanmuradov/launchpad/internal/ui/router"
	"github.com/rovshanmuradov/launchpad/internal/ui/style"
	"github.com/rovshanmuradov/launchpad/internal/wallet"
)

const quantityField = "quantity"

type quoteLoadedMsg struct {
	listing discovery.Listing
	terms   purchase.Terms
	err     error
}

type purchaseDoneMsg struct {
	record *domain.HistoryRecord
}

// SaleDetailScreen shows one sale and buys from it.
type SaleDetailScreen struct {
	svc    *ui.Services
	id     string
	width  int
	height int
	keyMap ui.KeyMap

	form    *component.Form
	helpBar *component.HelpBar

	listing *discovery.Listing
	terms   purchase.Terms
	// buyErr is set when the sale cannot be bought from at all.
	buyErr error

	notice notice
	busy   busy
}

func NewSaleDetailScreen(svc *ui.Services, id string) *SaleDetailScreen {
	keyMap := ui.DefaultKeyMap()
	return &SaleDetailScreen{
		svc:     svc,
		id:      id,
		keyMap:  keyMap,
		form:    component.NewForm().AddField(quantityField, component.FieldTypeNumber, "Quantity", true, "0"),
		helpBar: component.NewHelpBar(keyMap.ContextualHelp(ui.RouteSaleDetail)...),
		busy:    newBusy(),
	}
}

func (s *SaleDetailScreen) Init() tea.Cmd {
	return tea.Batch(s.load(), s.busy.start("Loading sale..."))
}

func (s *SaleDetailScreen) load() tea.Cmd {
	svc, id := s.svc, s.id
	return run(svc, "Load sale", func(ctx context.Context) (tea.Msg, error) {
		viewer, _ := wallet.CurrentAccount(ctx, svc.Wallet)
		l, terms, err := svc.Purchase.Quote(ctx, id, viewer)
		if err != nil && !errors.Is(err, purchase.ErrNoPrice) {
			return nil, err
		}
		return quoteLoadedMsg{listing: l, terms: terms, err: err}, nil
	})
}

func (s *SaleDetailScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quoteLoadedMsg:
		s.busy.stop()
		s.listing = &msg.listing
		s.terms = msg.terms
		s.buyErr = msg.err
		if msg.err != nil {
			s.notice.error(msg.err)
		}
		return s, nil

	case purchaseDoneMsg:
		s.busy.stop()
		s.form.Reset()
		s.notice.success(fmt.Sprintf("Bought %s %s for %s %s (tx %s)",
			msg.record.QuantityPurchased, msg.record.TokenSymbol,
			msg.record.AmountPaid, msg.record.PaymentToken,
			domain.ShortAddress(msg.record.TransactionHash)))
		return s, nil

	case ui.ErrorMsg:
		s.busy.stop()
		if errors.Is(msg.Error, discovery.ErrNotWhitelisted) {
			s.buyErr = msg.Error
		}
		s.notice.error(msg.Error)
		return s, nil

	case tea.KeyMsg:
		if s.busy.active {
			return s, nil
		}
		switch {
		case key.Matches(msg, s.keyMap.Refresh):
			return s, tea.Batch(s.load(), s.busy.start("Refreshing..."))
		case key.Matches(msg, s.keyMap.Submit):
			return s, s.buy()
		}
		_, cmd := s.form.Update(msg)
		return s, cmd
	}
	return s, s.busy.update(msg)
}

func (s *SaleDetailScreen) buy() tea.Cmd {
	if s.listing == nil || s.buyErr != nil {
		return nil
	}
	qty := strings.TrimSpace(s.form.GetValue(quantityField))
	if err := s.terms.Check(qty); err != nil {
		s.form.SetError(quantityField, err.Error())
		return nil
	}

	svc, id := s.svc, s.id
	cmd := run(svc, "Purchase", func(ctx context.Context) (tea.Msg, error) {
		buyer, err := account(ctx, svc)
		if err != nil {
			return nil, err
		}
		record, err := svc.Purchase.Buy(ctx, id, buyer, qty)
		if err != nil {
			return nil, err
		}
		return purchaseDoneMsg{record: record}, nil
	})
	s.notice.clear()
	return tea.Batch(cmd, s.busy.start("Waiting for payment confirmation..."))
}

// CostPreview renders the cost of the typed quantity.
func (s *SaleDetailScreen) CostPreview() string {
	qty := strings.TrimSpace(s.form.GetValue(quantityField))
	if qty == "" || s.buyErr != nil {
		return ""
	}
	cost, err := s.terms.Cost(qty)
	if err != nil {
		return style.ErrorStyle.Render(err.Error())
	}
	preview := fmt.Sprintf("Cost: %s %s", cost.String(), s.terms.PaymentToken)
	if err := s.terms.Check(qty); err != nil {
		return preview + "  " + style.WarningStyle.Render(err.Error())
	}
	return style.InfoStyle.Render(preview)
}

func (s *SaleDetailScreen) View() string {
	if s.listing == nil {
		return frame(s.width, "Sale", "", s.helpBar, s.busy.View(), s.notice.View())
	}

	l := s.listing
	launch := l.Launch
	rows := [][2]string{
		{"Token", fmt.Sprintf("%s (%s)", launch.TokenName, launch.TokenSymbol)},
		{"Token Address", launch.TokenAddress},
		{"Creator", l.CreatedBy},
		{"Status", style.StatusBadge(l.Status.String())},
		{"Window", windowEdge(*l, true) + " → " + windowEdge(*l, false)},
		{"Softcap / Hardcap", launch.Softcap.String() + " / " + launch.Hardcap.String()},
		{"LP Launch Price", launch.LPLaunchPrice.String()},
	}
	if s.buyErr == nil {
		phase := "Public sale"
		if s.terms.Whitelisted {
			phase = "Whitelist sale"
		}
		rows = append(rows,
			[2]string{"Phase", phase},
			[2]string{"Price", s.terms.Price.String() + " " + s.terms.PaymentToken},
			[2]string{"Limits", s.terms.Min.String() + " - " + s.terms.MaxLabel()},
		)
	}

	var info strings.Builder
	for _, r := range rows {
		info.WriteString(style.FormLabelStyle.Width(20).Render(r[0]))
		info.WriteString(r[1])
		info.WriteString("\n")
	}
	if launch.SaleDescription != "" {
		info.WriteString("\n" + style.MutedStyle.Render(launch.SaleDescription) + "\n")
	}

	body := style.PanelStyle.Width(style.AdaptiveWidth(s.width, 60)).Render(strings.TrimRight(info.String(), "\n"))
	if s.buyErr == nil {
		buy := lipgloss.JoinVertical(lipgloss.Left, s.form.View(), s.CostPreview())
		body = style.AdaptiveJoinHorizontal(s.width, body, buy)
	}
	return frame(s.width, launch.SaleName, body, s.helpBar, s.busy.View(), s.notice.View())
}

func (s *SaleDetailScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.form.SetSize(width, height)
}
