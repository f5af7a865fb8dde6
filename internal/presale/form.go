package presale

import "fmt"

// Field names a wizard input. Values match the stored JSON keys where one exists.
type Field string

const (
	FieldToken              Field = "tokenAddress"
	FieldPaymentCurrency    Field = "paymentCurrency"
	FieldSalePrice          Field = "salePrice"
	FieldLPLaunchPrice      Field = "lpLaunchPrice"
	FieldMinBuy             Field = "minBuy"
	FieldMaxBuy             Field = "maxBuy"
	FieldSoftcap            Field = "softcap"
	FieldHardcap            Field = "hardcap"
	FieldPreSaleLimit       Field = "preSaleLimit"
	FieldStartDate          Field = "publicStartDate"
	FieldStartTime          Field = "publicStartTime"
	FieldStartMeridiem      Field = "publicStartAMPM"
	FieldEndDate            Field = "publicEndDate"
	FieldEndTime            Field = "publicEndTime"
	FieldEndMeridiem        Field = "publicEndAMPM"
	FieldWhitelistSaleLimit Field = "whitelistSaleLimit"
	FieldWhitelistSalePrice Field = "whitelistSalePrice"
	FieldWhitelistMinBuy    Field = "whitelistMinBuy"
	FieldWhitelistMaxBuy    Field = "whitelistMaxBuy"
	FieldWhitelistAddresses Field = "whitelistAddresses"
	FieldSaleName           Field = "saleName"
	FieldSaleDescription    Field = "saleDescription"
	FieldTwitter            Field = "twitterId"
	FieldTelegram           Field = "telegramId"
	FieldWebsite            Field = "website"
	FieldWallet             Field = "wallet"
)

var fieldLabels = map[Field]string{
	FieldToken:              "Token",
	FieldPaymentCurrency:    "Payment Currency",
	FieldSalePrice:          "Sale Price",
	FieldLPLaunchPrice:      "LP Launch Price",
	FieldMinBuy:             "Minimum Buy",
	FieldMaxBuy:             "Maximum Buy",
	FieldSoftcap:            "Softcap",
	FieldHardcap:            "Hardcap",
	FieldPreSaleLimit:       "Pre-Sale Limit",
	FieldStartDate:          "Public Start Date",
	FieldStartTime:          "Public Start Time",
	FieldStartMeridiem:      "Public Start AM/PM",
	FieldEndDate:            "Public End Date",
	FieldEndTime:            "Public End Time",
	FieldEndMeridiem:        "Public End AM/PM",
	FieldWhitelistSaleLimit: "Whitelist Sale Limit",
	FieldWhitelistSalePrice: "Whitelist Sale Price",
	FieldWhitelistMinBuy:    "Whitelist Minimum Buy",
	FieldWhitelistMaxBuy:    "Whitelist Maximum Buy",
	FieldWhitelistAddresses: "Whitelist Addresses",
	FieldSaleName:           "Sale Name",
	FieldSaleDescription:    "Sale Description",
	FieldTwitter:            "Twitter",
	FieldTelegram:           "Telegram",
	FieldWebsite:            "Website",
	FieldWallet:             "Wallet",
}

// Label is the human readable name of f.
func (f Field) Label() string {
	if l, ok := fieldLabels[f]; ok {
		return l
	}
	return string(f)
}

// Form holds the raw wizard inputs exactly as typed.
type Form struct {
	TokenAddress    string
	PaymentCurrency string
	SalePrice       string
	LPLaunchPrice   string
	MinBuy          string
	MaxBuy          string
	Softcap         string
	Hardcap         string
	PreSaleLimit    string

	StartDate     string // YYYY-MM-DD
	StartTime     string // HH:mm
	StartMeridiem string // AM or PM
	EndDate       string
	EndTime       string
	EndMeridiem   string

	HasWhitelist       bool
	WhitelistSaleLimit string
	WhitelistSalePrice string
	WhitelistMinBuy    string
	WhitelistMaxBuy    string
	WhitelistAddresses []string

	SaleName        string
	SaleDescription string
	TwitterID       string
	TelegramID      string
	Website         string
}

func (f *Form) ref(field Field) (*string, error) {
	switch field {
	case FieldToken:
		return &f.TokenAddress, nil
	case FieldPaymentCurrency:
		return &f.PaymentCurrency, nil
	case FieldSalePrice:
		return &f.SalePrice, nil
	case FieldLPLaunchPrice:
		return &f.LPLaunchPrice, nil
	case FieldMinBuy:
		return &f.MinBuy, nil
	case FieldMaxBuy:
		return &f.MaxBuy, nil
	case FieldSoftcap:
		return &f.Softcap, nil
	case FieldHardcap:
		return &f.Hardcap, nil
	case FieldPreSaleLimit:
		return &f.PreSaleLimit, nil
	case FieldStartDate:
		return &f.StartDate, nil
	case FieldStartTime:
		return &f.StartTime, nil
	case FieldStartMeridiem:
		return &f.StartMeridiem, nil
	case FieldEndDate:
		return &f.EndDate, nil
	case FieldEndTime:
		return &f.EndTime, nil
	case FieldEndMeridiem:
		return &f.EndMeridiem, nil
	case FieldWhitelistSaleLimit:
		return &f.WhitelistSaleLimit, nil
	case FieldWhitelistSalePrice:
		return &f.WhitelistSalePrice, nil
	case FieldWhitelistMinBuy:
		return &f.WhitelistMinBuy, nil
	case FieldWhitelistMaxBuy:
		return &f.WhitelistMaxBuy, nil
	case FieldSaleName:
		return &f.SaleName, nil
	case FieldSaleDescription:
		return &f.SaleDescription, nil
	case FieldTwitter:
		return &f.TwitterID, nil
	case FieldTelegram:
		return &f.TelegramID, nil
	case FieldWebsite:
		return &f.Website, nil
	}
	return nil, fmt.Errorf("unknown field %q", field)
}

// Get returns the value of a text field.
func (f Form) Get(field Field) string {
	p, err := f.ref(field)
	if err != nil {
		return ""
	}
	return *p
}

func (f Form) clone() Form {
	out := f
	out.WhitelistAddresses = append([]string(nil), f.WhitelistAddresses...)
	return out
}
