package screen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"

	"github.com/rovshanmuradov/launchpad/internal/chain"
	"github.com/rovshanmuradov/launchpad/internal/domain"
	"github.com/rovshanmuradov/launchpad/internal/transfer"
	"github.com/rovshanmuradov/launchpad/internal/ui"
	"github.com/rovshanmuradov/launchpad/internal/ui/component"
	"github.com/rovshanmuradov/launchpad/internal/ui/router"
	"github.com/rovshanmuradov/launchpad/internal/ui/style"
)

const (
	tokenField    = "token"
	addressPrefix = "addr."
	amountPrefix  = "amt."
)

var errApprovalRequired = errors.New("allowance is below the total, approve first (ctrl+p)")

type tokenInspectedMsg struct {
	details  transfer.TokenDetails
	approved bool
}

type transferSentMsg struct {
	hash common.Hash
}

// TransferScreen edits a batch of recipients and sends it in one transaction.
type TransferScreen struct {
	svc    *ui.Services
	width  int
	height int
	keyMap ui.KeyMap

	batch   *transfer.Batch
	form    *component.Form
	helpBar *component.HelpBar

	details *transfer.TokenDetails
	notice  notice
	busy    busy
}

func NewTransferScreen(svc *ui.Services) *TransferScreen {
	keyMap := ui.DefaultKeyMap()
	s := &TransferScreen{
		svc:     svc,
		keyMap:  keyMap,
		batch:   transfer.NewBatch(),
		helpBar: component.NewHelpBar(keyMap.ContextualHelp(ui.RouteTransfer)...),
		busy:    newBusy(),
	}
	s.rebuild(tokenField)
	return s
}

// Batch exposes the recipients being edited.
func (s *TransferScreen) Batch() *transfer.Batch {
	return s.batch
}

func (s *TransferScreen) rebuild(focus string) {
	token := ""
	if s.form != nil {
		token = s.form.GetValue(tokenField)
	}

	form := component.NewForm().
		AddField(tokenField, component.FieldTypeText, "Token Address", true, "0x...")
	form.SetFieldValue(tokenField, token)
	for i, r := range s.batch.Recipients() {
		form.AddField(addressPrefix+r.ID, component.FieldTypeText, fmt.Sprintf("Recipient %d", i+1), true, "0x...")
		form.AddField(amountPrefix+r.ID, component.FieldTypeNumber, "Amount", true, "0")
		form.SetFieldValue(addressPrefix+r.ID, r.Address)
		form.SetFieldValue(amountPrefix+r.ID, r.Amount)
	}
	form.Focus(focus)
	form.SetSize(s.width, s.height)
	s.form = form
}

// sync copies the recipient inputs into the batch.
func (s *TransferScreen) sync() {
	for _, r := range s.batch.Recipients() {
		_ = s.batch.Update(r.ID, s.form.GetValue(addressPrefix+r.ID), s.form.GetValue(amountPrefix+r.ID))
	}
}

func (s *TransferScreen) focusedRecipient() string {
	name := s.form.Focused()
	for _, prefix := range []string{addressPrefix, amountPrefix} {
		if strings.HasPrefix(name, prefix) {
			return strings.TrimPrefix(name, prefix)
		}
	}
	recipients := s.batch.Recipients()
	return recipients[len(recipients)-1].ID
}

func (s *TransferScreen) Init() tea.Cmd {
	return nil
}

func (s *TransferScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tokenInspectedMsg:
		s.busy.stop()
		s.details = &msg.details
		if msg.approved {
			s.notice.success("Allowance covers the total, ready to send")
		}
		return s, nil

	case transferSentMsg:
		s.busy.stop()
		s.notice.success("Batch transfer confirmed: " + msg.hash.Hex())
		s.batch = transfer.NewBatch()
		s.details = nil
		s.rebuild(tokenField)
		return s, nil

	case ui.ErrorMsg:
		s.busy.stop()
		s.notice.error(msg.Error)
		return s, nil

	case tea.KeyMsg:
		if s.busy.active {
			return s, nil
		}
		return s, s.handleKey(msg)
	}
	return s, s.busy.update(msg)
}

func (s *TransferScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keyMap.AddSlot):
		s.sync()
		r := s.batch.Add()
		s.rebuild(addressPrefix + r.ID)
		return nil

	case key.Matches(msg, s.keyMap.RemoveSlot):
		s.sync()
		if err := s.batch.Remove(s.focusedRecipient()); err != nil {
			s.notice.error(err)
			return nil
		}
		s.rebuild(tokenField)
		return nil

	case key.Matches(msg, s.keyMap.Approve):
		s.sync()
		return s.approve()

	case key.Matches(msg, s.keyMap.Execute):
		s.sync()
		return s.execute()
	}

	before := s.form.GetValue(tokenField)
	_, cmd := s.form.Update(msg)
	if s.form.GetValue(tokenField) != before {
		s.details = nil
	}
	s.sync()
	return cmd
}

func (s *TransferScreen) tokenAddress() (string, bool) {
	token := strings.TrimSpace(s.form.GetValue(tokenField))
	if !domain.IsValidAddress(token) {
		s.form.SetError(tokenField, transfer.ErrInvalidToken.Error())
		return "", false
	}
	return token, true
}

func (s *TransferScreen) approve() tea.Cmd {
	token, ok := s.tokenAddress()
	if !ok {
		return nil
	}
	svc, batch := s.svc, s.batch
	cmd := run(svc, "Approve", func(ctx context.Context) (tea.Msg, error) {
		owner, err := account(ctx, svc)
		if err != nil {
			return nil, err
		}
		details, err := svc.Transfer.Inspect(ctx, token, owner)
		if err != nil {
			return nil, err
		}
		if svc.Transfer.NeedsApproval(details, batch) {
			details, err = svc.Transfer.Approve(ctx, details, batch.Total(details.Decimals))
			if err != nil {
				return nil, err
			}
		}
		return tokenInspectedMsg{details: details, approved: true}, nil
	})
	s.notice.clear()
	return tea.Batch(cmd, s.busy.start("Approving..."))
}

func (s *TransferScreen) execute() tea.Cmd {
	token, ok := s.tokenAddress()
	if !ok {
		return nil
	}
	svc, batch := s.svc, s.batch
	cmd := run(svc, "Batch transfer", func(ctx context.Context) (tea.Msg, error) {
		owner, err := account(ctx, svc)
		if err != nil {
			return nil, err
		}
		details, err := svc.Transfer.Inspect(ctx, token, owner)
		if err != nil {
			return nil, err
		}
		if _, _, err := batch.Validate(details.Decimals); err != nil {
			return nil, err
		}
		if svc.Transfer.NeedsApproval(details, batch) {
			return nil, errApprovalRequired
		}
		hash, err := svc.Transfer.Execute(ctx, details, batch)
		if err != nil {
			return nil, err
		}
		return transferSentMsg{hash: hash}, nil
	})
	s.notice.clear()
	return tea.Batch(cmd, s.busy.start("Sending batch transfer..."))
}

func (s *TransferScreen) summary() string {
	if s.details == nil {
		return style.MutedStyle.Render(fmt.Sprintf("%d recipient(s)", s.batch.Len()))
	}
	d := s.details
	total := s.batch.Total(d.Decimals)
	return style.InfoStyle.Render(fmt.Sprintf("%d recipient(s) • Total %s • Allowance %s",
		s.batch.Len(), chain.FromBaseUnits(total, d.Decimals), chain.FromBaseUnits(d.Allowance, d.Decimals)))
}

func (s *TransferScreen) View() string {
	body := s.form.View() + "\n" + s.summary()
	return frame(s.width, "Multi Transfer", body, s.helpBar, s.busy.View(), s.notice.View())
}

func (s *TransferScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.form.SetSize(width, height)
}
