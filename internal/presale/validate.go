package presale

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rovshanmuradov/launchpad/internal/domain"
)

// Social link prefixes enforced at launch.
const (
	TwitterPrefix  = "https://x.com/"
	TelegramPrefix = "https://t.me/"
	WebsitePrefix  = "https://"
)

func missing(stage Stage, field Field, message string) *ValidationError {
	return &ValidationError{Stage: stage, Field: field, Message: message}
}

func firstEmpty(f Form, fields ...Field) (Field, bool) {
	for _, field := range fields {
		if f.Get(field) == "" {
			return field, true
		}
	}
	return "", false
}

// ValidateParameters gates stage 1. Only presence is checked; numeric
// relations between the fields are left to CheckInvariants.
func ValidateParameters(f Form) error {
	if field, ok := firstEmpty(f,
		FieldToken, FieldPaymentCurrency, FieldSalePrice, FieldLPLaunchPrice,
		FieldMinBuy, FieldMaxBuy, FieldSoftcap, FieldHardcap, FieldPreSaleLimit,
	); ok {
		return missing(StageParameters, field, "Please fill all fields in Stage 1")
	}
	return nil
}

// ValidateScheduleWhitelist gates stage 2.
func ValidateScheduleWhitelist(f Form) error {
	const msg = "Please fill all required fields in Stage 2"

	if field, ok := firstEmpty(f, FieldStartDate, FieldStartTime, FieldEndDate, FieldEndTime); ok {
		return missing(StageScheduleWhitelist, field, msg)
	}
	if !f.HasWhitelist {
		return nil
	}

	if field, ok := firstEmpty(f,
		FieldWhitelistSaleLimit, FieldWhitelistSalePrice, FieldWhitelistMinBuy, FieldWhitelistMaxBuy,
	); ok {
		return missing(StageScheduleWhitelist, field, msg)
	}
	for _, addr := range f.WhitelistAddresses {
		if strings.TrimSpace(addr) == "" || !domain.IsValidAddress(addr) {
			return missing(StageScheduleWhitelist, FieldWhitelistAddresses, msg)
		}
	}
	return nil
}

// ValidateInformation gates stage 3. Link prefixes are checked at launch.
func ValidateInformation(f Form) error {
	if field, ok := firstEmpty(f, FieldSaleName, FieldSaleDescription, FieldTwitter, FieldTelegram); ok {
		return missing(StageInformation, field, "Please fill all required fields in Stage 3")
	}
	return nil
}

// ValidateStage runs the gate of one input stage. The review stage has no inputs.
func ValidateStage(stage Stage, f Form) error {
	switch stage {
	case StageParameters:
		return ValidateParameters(f)
	case StageScheduleWhitelist:
		return ValidateScheduleWhitelist(f)
	case StageInformation:
		return ValidateInformation(f)
	}
	return nil
}

// ValidateAll re-runs every stage gate before launch.
func ValidateAll(f Form) error {
	for _, stage := range []Stage{StageParameters, StageScheduleWhitelist, StageInformation} {
		if err := ValidateStage(stage, f); err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				return missing(ve.Stage, ve.Field, "Please complete all required fields")
			}
			return err
		}
	}
	return nil
}

func number(stage Stage, field Field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, missing(stage, field, field.Label()+" must be a number")
	}
	return d, nil
}

// greater checks a > b for two numeric fields.
func greater(stage Stage, a, b Field, f Form, message string) error {
	av, err := number(stage, a, f.Get(a))
	if err != nil {
		return err
	}
	bv, err := number(stage, b, f.Get(b))
	if err != nil {
		return err
	}
	if !av.GreaterThan(bv) {
		return missing(stage, a, message)
	}
	return nil
}

// CheckInvariants applies the launch-time business rules in order and
// returns the first violation.
func CheckInvariants(f Form, wallet string, now time.Time, loc *time.Location) error {
	if !f.HasWhitelist {
		if err := greater(StageParameters, FieldMaxBuy, FieldMinBuy, f,
			"Maximum Buy must be greater than Minimum Buy in Sale Parameters."); err != nil {
			return err
		}
		if err := greater(StageParameters, FieldPreSaleLimit, FieldMaxBuy, f,
			"Pre-Sale Limit must be greater than Maximum Buy."); err != nil {
			return err
		}
	} else {
		if err := greater(StageScheduleWhitelist, FieldWhitelistMaxBuy, FieldWhitelistMinBuy, f,
			"Whitelist Maximum Buy must be greater than Whitelist Minimum Buy."); err != nil {
			return err
		}
		if err := greater(StageScheduleWhitelist, FieldWhitelistSaleLimit, FieldWhitelistMaxBuy, f,
			"Whitelist Sale Limit must be greater than Whitelist Maximum Buy."); err != nil {
			return err
		}
	}

	if !strings.HasPrefix(f.TwitterID, TwitterPrefix) {
		return missing(StageInformation, FieldTwitter, `Twitter handle must start with "`+TwitterPrefix+`"`)
	}
	if !strings.HasPrefix(f.TelegramID, TelegramPrefix) {
		return missing(StageInformation, FieldTelegram, `Telegram handle must start with "`+TelegramPrefix+`"`)
	}
	if f.Website != "" && !strings.HasPrefix(f.Website, WebsitePrefix) {
		return missing(StageInformation, FieldWebsite, `Website must start with "`+WebsitePrefix+`"`)
	}

	if wallet == "" {
		return missing(StageReviewSubmit, FieldWallet, "Wallet not connected")
	}

	start, err := AssembleInstant(f.StartDate, f.StartTime, f.StartMeridiem, loc)
	if err != nil {
		return missing(StageScheduleWhitelist, FieldStartDate, "Invalid start date/time")
	}
	end, err := AssembleInstant(f.EndDate, f.EndTime, f.EndMeridiem, loc)
	if err != nil {
		return missing(StageScheduleWhitelist, FieldEndDate, "Invalid end date/time")
	}
	if start.Before(now) {
		return missing(StageScheduleWhitelist, FieldStartDate, "Public Start Date & Time cannot be in the past.")
	}
	if !end.After(start) {
		return missing(StageScheduleWhitelist, FieldEndDate,
			"Public End Date & Time must be after the Public Start Date & Time.")
	}

	return greater(StageParameters, FieldHardcap, FieldSoftcap, f, "Hardcap must be greater than Softcap.")
}
