package screen

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/launchpad/internal/domain"
	"github.com/rovshanmuradov/launchpad/internal/events"
	"github.com/rovshanmuradov/launchpad/internal/presale"
	"github.com/rovshanmuradov/launchpad/internal/ui"
	"github.com/rovshanmuradov/launchpad/internal/ui/component"
	"github.com/rovshanmuradov/launchpad/internal/ui/router"
	"github.com/rovshanmuradov/launchpad/internal/ui/style"
	"github.com/rovshanmuradov/launchpad/internal/wallet"
)

const (
	whitelistToggle = "hasWhitelist"
	slotPrefix      = "whitelist."
)

type tokensLoadedMsg struct {
	tokens []domain.TokenRecord
}

type presaleLaunchedMsg struct {
	id string
}

// PresaleScreen drives a presale.Wizard through its four stages.
type PresaleScreen struct {
	svc    *ui.Services
	width  int
	height int
	keyMap ui.KeyMap

	wizard  *presale.Wizard
	steps   *component.Steps
	forms   map[presale.Stage]*component.Form
	review  *component.Table
	helpBar *component.HelpBar

	tokens      []domain.TokenRecord
	tokenLabels map[string]string // select label -> token address

	notice notice
	busy   busy
}

// NewPresaleScreen creates the wizard screen with an empty form.
func NewPresaleScreen(svc *ui.Services) *PresaleScreen {
	keyMap := ui.DefaultKeyMap()

	labels := make([]string, len(presale.Stages))
	for i, s := range presale.Stages {
		labels[i] = s.String()
	}

	s := &PresaleScreen{
		svc:         svc,
		keyMap:      keyMap,
		wizard:      presale.NewWizard(),
		steps:       component.NewSteps(labels...),
		forms:       make(map[presale.Stage]*component.Form),
		helpBar:     component.NewHelpBar(keyMap.ContextualHelp(ui.RoutePresale)...),
		tokenLabels: make(map[string]string),
		busy:        newBusy(),
	}
	s.review = component.NewTable().
		AddColumn("Field", 24, lipgloss.Left).
		AddColumn("Value", 0, lipgloss.Left).
		SetSelectable(false)
	s.rebuildAll()
	return s
}

// Wizard exposes the underlying state machine.
func (s *PresaleScreen) Wizard() *presale.Wizard {
	return s.wizard
}

func (s *PresaleScreen) Init() tea.Cmd {
	return tea.Batch(s.loadTokens(), s.busy.start("Loading your tokens..."))
}

func (s *PresaleScreen) loadTokens() tea.Cmd {
	svc := s.svc
	return run(svc, "Load tokens", func(ctx context.Context) (tea.Msg, error) {
		owner, err := account(ctx, svc)
		if err != nil {
			return nil, err
		}
		tokens, err := svc.Presale.LoadTokens(ctx, owner)
		if err != nil {
			return nil, err
		}
		return tokensLoadedMsg{tokens: tokens}, nil
	})
}

func (s *PresaleScreen) rebuildAll() {
	s.forms[presale.StageParameters] = s.buildParameters()
	s.forms[presale.StageScheduleWhitelist] = s.buildSchedule()
	s.forms[presale.StageInformation] = s.buildInformation()
	s.resize()
}

func (s *PresaleScreen) tokenOptions() []string {
	s.tokenLabels = make(map[string]string, len(s.tokens))
	options := make([]string, 0, len(s.tokens))
	for _, t := range s.tokens {
		label := fmt.Sprintf("%s (%s) %s", t.TokenName, t.TokenSymbol, domain.ShortAddress(t.TokenAddress))
		s.tokenLabels[label] = t.TokenAddress
		options = append(options, label)
	}
	return options
}

func (s *PresaleScreen) tokenLabel(address string) string {
	for label, addr := range s.tokenLabels {
		if domain.SameAddress(addr, address) {
			return label
		}
	}
	return ""
}

func (s *PresaleScreen) buildParameters() *component.Form {
	f := s.wizard.Form()
	form := component.NewForm().
		AddSelect(string(presale.FieldToken), presale.FieldToken.Label(), s.tokenOptions()).
		AddSelect(string(presale.FieldPaymentCurrency), presale.FieldPaymentCurrency.Label(), wallet.PaymentCurrencies)

	for _, field := range []presale.Field{
		presale.FieldSalePrice, presale.FieldLPLaunchPrice, presale.FieldMinBuy, presale.FieldMaxBuy,
		presale.FieldSoftcap, presale.FieldHardcap, presale.FieldPreSaleLimit,
	} {
		form.AddField(string(field), component.FieldTypeNumber, field.Label(), true, "")
		form.SetFieldValue(string(field), f.Get(field))
	}

	if label := s.tokenLabel(f.TokenAddress); label != "" {
		form.SetFieldValue(string(presale.FieldToken), label)
	}
	if f.PaymentCurrency != "" {
		form.SetFieldValue(string(presale.FieldPaymentCurrency), f.PaymentCurrency)
	}
	return form
}

func (s *PresaleScreen) buildSchedule() *component.Form {
	f := s.wizard.Form()
	meridiem := []string{"AM", "PM"}
	form := component.NewForm().
		AddField(string(presale.FieldStartDate), component.FieldTypeText, presale.FieldStartDate.Label(), true, "YYYY-MM-DD").
		AddField(string(presale.FieldStartTime), component.FieldTypeText, presale.FieldStartTime.Label(), true, "HH:mm").
		AddSelect(string(presale.FieldStartMeridiem), presale.FieldStartMeridiem.Label(), meridiem).
		AddField(string(presale.FieldEndDate), component.FieldTypeText, presale.FieldEndDate.Label(), true, "YYYY-MM-DD").
		AddField(string(presale.FieldEndTime), component.FieldTypeText, presale.FieldEndTime.Label(), true, "HH:mm").
		AddSelect(string(presale.FieldEndMeridiem), presale.FieldEndMeridiem.Label(), meridiem).
		AddCheckbox(whitelistToggle, "Enable whitelist sale", f.HasWhitelist)

	for _, field := range []presale.Field{
		presale.FieldStartDate, presale.FieldStartTime, presale.FieldStartMeridiem,
		presale.FieldEndDate, presale.FieldEndTime, presale.FieldEndMeridiem,
	} {
		form.SetFieldValue(string(field), f.Get(field))
	}

	if !f.HasWhitelist {
		return form
	}
	for _, field := range []presale.Field{
		presale.FieldWhitelistSaleLimit, presale.FieldWhitelistSalePrice,
		presale.FieldWhitelistMinBuy, presale.FieldWhitelistMaxBuy,
	} {
		form.AddField(string(field), component.FieldTypeNumber, field.Label(), true, "")
		form.SetFieldValue(string(field), f.Get(field))
	}
	slotErrors := s.wizard.SlotErrors()
	for i, addr := range f.WhitelistAddresses {
		name := slotPrefix + strconv.Itoa(i)
		form.AddField(name, component.FieldTypeText, fmt.Sprintf("Whitelist Address %d", i+1), true, "0x...")
		form.SetFieldValue(name, addr)
		if i < len(slotErrors) && slotErrors[i] {
			form.SetError(name, "Invalid address")
		}
	}
	return form
}

func (s *PresaleScreen) buildInformation() *component.Form {
	f := s.wizard.Form()
	form := component.NewForm().
		AddField(string(presale.FieldSaleName), component.FieldTypeText, presale.FieldSaleName.Label(), true, "").
		AddField(string(presale.FieldSaleDescription), component.FieldTypeText, presale.FieldSaleDescription.Label(), true, "").
		AddField(string(presale.FieldTwitter), component.FieldTypeText, presale.FieldTwitter.Label(), true, presale.TwitterPrefix).
		AddField(string(presale.FieldTelegram), component.FieldTypeText, presale.FieldTelegram.Label(), true, presale.TelegramPrefix).
		AddField(string(presale.FieldWebsite), component.FieldTypeText, presale.FieldWebsite.Label(), false, presale.WebsitePrefix)

	for _, field := range []presale.Field{
		presale.FieldSaleName, presale.FieldSaleDescription, presale.FieldTwitter, presale.FieldTelegram, presale.FieldWebsite,
	} {
		form.SetFieldValue(string(field), f.Get(field))
	}
	return form
}

func (s *PresaleScreen) current() *component.Form {
	return s.forms[s.wizard.Stage()]
}

// sync copies the current form into the wizard. It reports whether the
// whitelist toggle changed, which changes the stage 2 layout.
func (s *PresaleScreen) sync() bool {
	form := s.current()
	if form == nil {
		return false
	}

	toggled := false
	for name, value := range form.GetValues() {
		switch {
		case name == whitelistToggle:
			enabled := value == "true"
			if enabled != s.wizard.Form().HasWhitelist {
				s.wizard.SetWhitelistEnabled(enabled)
				toggled = true
			}
		case strings.HasPrefix(name, slotPrefix):
			i, err := strconv.Atoi(strings.TrimPrefix(name, slotPrefix))
			if err != nil {
				continue
			}
			addresses := s.wizard.Form().WhitelistAddresses
			if i >= len(addresses) {
				continue
			}
			// only the edited slot is re-validated
			if value != addresses[i] {
				s.wizard.SetWhitelistAddress(i, value)
			}
			if s.wizard.SlotErrors()[i] {
				form.SetError(name, "Invalid address")
			} else {
				form.SetError(name, "")
			}
		case name == string(presale.FieldToken):
			_ = s.wizard.Set(presale.FieldToken, s.tokenLabels[value])
		default:
			_ = s.wizard.Set(presale.Field(name), value)
		}
	}
	return toggled
}

// focusedSlot returns the slot index of the focused field, or the last slot.
func (s *PresaleScreen) focusedSlot() int {
	name := s.current().Focused()
	if i, err := strconv.Atoi(strings.TrimPrefix(name, slotPrefix)); err == nil && strings.HasPrefix(name, slotPrefix) {
		return i
	}
	return len(s.wizard.Form().WhitelistAddresses) - 1
}

func (s *PresaleScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tokensLoadedMsg:
		s.busy.stop()
		s.tokens = msg.tokens
		s.sync()
		s.forms[presale.StageParameters] = s.buildParameters()
		s.resize()
		if s.wizard.Stage() == presale.StageParameters {
			s.sync()
		}
		if len(s.tokens) == 0 {
			s.notice.error(errors.New("no tokens found for this wallet, create one first"))
		}
		return s, nil

	case presaleLaunchedMsg:
		s.busy.stop()
		s.wizard.Reset()
		s.rebuildAll()
		s.steps.SetCurrent(0)
		s.notice.success("Presale launched with ID " + msg.id)
		return s, nil

	case ui.ErrorMsg:
		s.busy.stop()
		s.showError(msg.Error)
		return s, nil

	case ui.DomainEventMsg:
		switch msg.Event.(type) {
		case events.TokenCreatedEvent, events.AccountsChangedEvent:
			return s, s.loadTokens()
		}
		return s, nil

	case tea.KeyMsg:
		if s.busy.active {
			return s, nil
		}
		return s, s.handleKey(msg)
	}

	return s, s.busy.update(msg)
}

func (s *PresaleScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	stage := s.wizard.Stage()
	switch {
	case key.Matches(msg, s.keyMap.Submit):
		s.sync()
		if stage == presale.StageReviewSubmit {
			return s.launch()
		}
		s.apply(presale.ActionContinue)
		return nil

	case key.Matches(msg, s.keyMap.PrevStep):
		s.sync()
		s.apply(presale.ActionBack)
		return nil

	case key.Matches(msg, s.keyMap.AddSlot) && stage == presale.StageScheduleWhitelist && s.wizard.Form().HasWhitelist:
		s.sync()
		i := s.wizard.AddWhitelistSlot()
		s.rebuildSchedule(slotPrefix + strconv.Itoa(i))
		return nil

	case key.Matches(msg, s.keyMap.RemoveSlot) && stage == presale.StageScheduleWhitelist && s.wizard.Form().HasWhitelist:
		s.sync()
		i := s.focusedSlot()
		if err := s.wizard.RemoveWhitelistSlot(i); err != nil {
			s.notice.error(err)
			return nil
		}
		s.rebuildSchedule(slotPrefix + strconv.Itoa(max(i-1, 0)))
		return nil
	}

	form := s.current()
	if form == nil {
		return nil
	}
	_, cmd := form.Update(msg)
	if s.sync() {
		s.rebuildSchedule(whitelistToggle)
	}
	return cmd
}

func (s *PresaleScreen) rebuildSchedule(focus string) {
	s.forms[presale.StageScheduleWhitelist] = s.buildSchedule()
	s.forms[presale.StageScheduleWhitelist].Focus(focus)
	s.resize()
}

func (s *PresaleScreen) apply(action presale.Action) {
	tr, err := s.wizard.Apply(action)
	if err != nil {
		s.showError(err)
		return
	}
	s.notice.clear()
	if form := s.current(); form != nil {
		form.ClearErrors()
	}
	s.steps.SetCurrent(int(tr.To) - 1)
	if tr.To == presale.StageReviewSubmit {
		s.fillReview()
	}
}

func (s *PresaleScreen) fillReview() {
	rows := s.wizard.Summary()
	data := make([][]string, len(rows))
	for i, r := range rows {
		value := r.Value
		if r.Label == presale.FieldToken.Label() {
			if label := s.tokenLabel(value); label != "" {
				value = label
			}
		}
		data[i] = []string{r.Label, value}
	}
	s.review.SetRows(data)
}

func (s *PresaleScreen) launch() tea.Cmd {
	// Launch resets the wizard it is given; the screen resets its own
	// once the result arrives.
	svc, snapshot := s.svc, s.wizard.Clone()
	launch := run(svc, "Launch presale", func(ctx context.Context) (tea.Msg, error) {
		owner, err := wallet.CurrentAccount(ctx, svc.Wallet)
		if err != nil {
			return nil, err
		}
		id, err := svc.Presale.Launch(ctx, snapshot, owner)
		if err != nil {
			return nil, err
		}
		return presaleLaunchedMsg{id: id}, nil
	})
	return tea.Batch(launch, s.busy.start("Launching presale..."))
}

// showError reports err and marks the offending field when it lives on
// the stage being shown.
func (s *PresaleScreen) showError(err error) {
	s.notice.error(err)
	var ve *presale.ValidationError
	if !errors.As(err, &ve) || ve.Stage != s.wizard.Stage() {
		return
	}
	if form := s.current(); form != nil {
		form.SetError(string(ve.Field), ve.Message)
		form.Focus(string(ve.Field))
	}
}

func (s *PresaleScreen) View() string {
	stage := s.wizard.Stage()
	var body string
	if stage == presale.StageReviewSubmit {
		body = s.review.View() + "\n" + style.MutedStyle.Render("ctrl+s to launch, ctrl+b to edit")
	} else {
		body = s.current().View()
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		s.steps.View(),
		style.SubHeaderStyle.Render(fmt.Sprintf("Stage %d: %s", int(stage), stage)),
	)
	return frame(s.width, "Presale Wizard", header+"\n"+body, s.helpBar, s.busy.View(), s.notice.View())
}

func (s *PresaleScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.resize()
}

func (s *PresaleScreen) resize() {
	for _, form := range s.forms {
		form.SetSize(s.width, s.height)
	}
	s.review.SetSize(s.width-4, s.height-8)
}
