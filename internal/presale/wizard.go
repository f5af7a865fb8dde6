package presale

import (
	"errors"
	"fmt"

	"github.com/rovshanmuradov/launchpad/internal/domain"
)

var (
	ErrLastSlot    = errors.New("at least one whitelist address is required")
	ErrSlotIndex   = errors.New("whitelist slot out of range")
	ErrNotEditable = errors.New("field is not editable as text")
)

// Wizard is the four-stage presale form. It is not safe for concurrent use.
type Wizard struct {
	stage      Stage
	form       Form
	slotErrors []bool
}

// NewWizard returns a wizard at stage 1 with every field empty.
func NewWizard() *Wizard {
	w := &Wizard{}
	w.Reset()
	return w
}

// Reset clears every field and returns to stage 1.
func (w *Wizard) Reset() {
	w.stage = StageParameters
	w.form = Form{StartMeridiem: "AM", EndMeridiem: "AM"}
	w.slotErrors = nil
}

func (w *Wizard) Stage() Stage {
	return w.stage
}

// Form returns a copy of the current inputs.
func (w *Wizard) Form() Form {
	return w.form.clone()
}

// Set assigns a text field.
func (w *Wizard) Set(field Field, value string) error {
	p, err := w.form.ref(field)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotEditable, err)
	}
	*p = value
	return nil
}

// SetWhitelistEnabled toggles the whitelist phase. Enabling it with no
// address slots seeds one empty slot.
func (w *Wizard) SetWhitelistEnabled(enabled bool) {
	w.form.HasWhitelist = enabled
	if enabled && len(w.form.WhitelistAddresses) == 0 {
		w.form.WhitelistAddresses = []string{""}
		w.slotErrors = []bool{false}
	}
}

// AddWhitelistSlot appends an empty address slot and returns its index.
func (w *Wizard) AddWhitelistSlot() int {
	w.form.WhitelistAddresses = append(w.form.WhitelistAddresses, "")
	w.slotErrors = append(w.slotErrors, false)
	return len(w.form.WhitelistAddresses) - 1
}

// RemoveWhitelistSlot deletes slot i. The last remaining slot cannot be removed.
func (w *Wizard) RemoveWhitelistSlot(i int) error {
	if i < 0 || i >= len(w.form.WhitelistAddresses) {
		return ErrSlotIndex
	}
	if len(w.form.WhitelistAddresses) <= 1 {
		return ErrLastSlot
	}
	w.form.WhitelistAddresses = append(w.form.WhitelistAddresses[:i], w.form.WhitelistAddresses[i+1:]...)
	w.slotErrors = append(w.slotErrors[:i], w.slotErrors[i+1:]...)
	return nil
}

// SetWhitelistAddress updates slot i and re-validates it, reporting whether
// the new value is a well-formed address. Other slots are untouched.
func (w *Wizard) SetWhitelistAddress(i int, value string) bool {
	if i < 0 || i >= len(w.form.WhitelistAddresses) {
		return false
	}
	valid := domain.IsValidAddress(value)
	w.form.WhitelistAddresses[i] = value
	w.slotErrors[i] = !valid
	return valid
}

// Clone returns an independent copy of the wizard, inputs and slot flags included.
func (w *Wizard) Clone() *Wizard {
	return &Wizard{
		stage:      w.stage,
		form:       w.form.clone(),
		slotErrors: append([]bool(nil), w.slotErrors...),
	}
}

// SlotErrors reports, per slot, whether the address failed validation.
func (w *Wizard) SlotErrors() []bool {
	return append([]bool(nil), w.slotErrors...)
}

// Apply is the wizard's transition function. Continue is gated by the
// current stage's validator; Back is unconditional from stages 2-4.
// Launch needs a store and is handled by Service.Launch, so Apply always
// rejects it.
func (w *Wizard) Apply(action Action) (Transition, error) {
	from := w.stage
	reject := func() (Transition, error) {
		return Transition{}, &TransitionError{From: from, Action: action}
	}

	switch action {
	case ActionContinue:
		if from >= StageReviewSubmit {
			return reject()
		}
		if err := ValidateStage(from, w.form); err != nil {
			return Transition{}, err
		}
		w.stage++
	case ActionBack:
		if from <= StageParameters {
			return reject()
		}
		w.stage--
	default:
		return reject()
	}

	return Transition{Action: action, From: from, To: w.stage}, nil
}

// SummaryRow is one line of the review table.
type SummaryRow struct {
	Label string
	Value string
}

// Summary assembles the read-only review shown at stage 4.
func (w *Wizard) Summary() []SummaryRow {
	f := w.form
	rows := []SummaryRow{
		{"Token", f.TokenAddress},
		{"Payment Currency", f.PaymentCurrency},
		{"LP Launch Price", f.LPLaunchPrice},
		{"Softcap", f.Softcap},
		{"Hardcap", f.Hardcap},
		{"Pre-Sale Limit", f.PreSaleLimit},
	}
	if f.HasWhitelist {
		rows = append(rows,
			SummaryRow{"Whitelist Sale Limit", f.WhitelistSaleLimit},
			SummaryRow{"Whitelist Sale Price", f.WhitelistSalePrice},
			SummaryRow{"Whitelist Min Buy", f.WhitelistMinBuy},
			SummaryRow{"Whitelist Max Buy", f.WhitelistMaxBuy},
			SummaryRow{"Whitelist Addresses", fmt.Sprintf("%d", len(f.WhitelistAddresses))},
		)
	} else {
		rows = append(rows,
			SummaryRow{"Sale Price", f.SalePrice},
			SummaryRow{"Minimum Buy", f.MinBuy},
			SummaryRow{"Maximum Buy", f.MaxBuy},
		)
	}

	website := f.Website
	if website == "" {
		website = "-"
	}
	return append(rows,
		SummaryRow{"Public Start", FormatDateTime(f.StartDate, f.StartTime, f.StartMeridiem)},
		SummaryRow{"Public End", FormatDateTime(f.EndDate, f.EndTime, f.EndMeridiem)},
		SummaryRow{"Sale Name", f.SaleName},
		SummaryRow{"Description", f.SaleDescription},
		SummaryRow{"Twitter", f.TwitterID},
		SummaryRow{"Telegram", f.TelegramID},
		SummaryRow{"Website", website},
	)
}

// BuildLaunch assembles the record written on launch. Sale price and buy
// bounds are only stored for public sales.
func BuildLaunch(f Form, token domain.TokenRecord, createdAt string) domain.Launch {
	launch := domain.Launch{
		TokenAddress:    f.TokenAddress,
		TokenName:       token.TokenName,
		TokenSymbol:     token.TokenSymbol,
		PaymentCurrency: f.PaymentCurrency,
		LPLaunchPrice:   domain.Amount(f.LPLaunchPrice),
		Softcap:         domain.Amount(f.Softcap),
		Hardcap:         domain.Amount(f.Hardcap),
		PreSaleLimit:    domain.Amount(f.PreSaleLimit),
		PublicStartDate: FormatDateTime(f.StartDate, f.StartTime, f.StartMeridiem),
		PublicEndDate:   FormatDateTime(f.EndDate, f.EndTime, f.EndMeridiem),
		HasWhitelist:    f.HasWhitelist,
		SaleName:        f.SaleName,
		SaleDescription: f.SaleDescription,
		TwitterID:       f.TwitterID,
		TelegramID:      f.TelegramID,
		Website:         f.Website,
		CreatedAt:       createdAt,
		Status:          domain.StatusPending,
	}

	if f.HasWhitelist {
		launch.Whitelist = &domain.Whitelist{
			SaleLimit: domain.Amount(f.WhitelistSaleLimit),
			SalePrice: domain.Amount(f.WhitelistSalePrice),
			MinBuy:    domain.Amount(f.WhitelistMinBuy),
			MaxBuy:    domain.Amount(f.WhitelistMaxBuy),
			Addresses: append([]string(nil), f.WhitelistAddresses...),
		}
	} else {
		launch.SalePrice = domain.Amount(f.SalePrice)
		launch.MinBuy = domain.Amount(f.MinBuy)
		launch.MaxBuy = domain.Amount(f.MaxBuy)
	}
	return launch
}
