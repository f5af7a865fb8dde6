package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/launchpad/internal/discovery"
)

const reportLayout = "2006-01-02 15:04"

var csvHeader = []string{"id", "sale_name", "token", "creator", "status", "start", "end", "sale_price", "currency"}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(reportLayout)
}

func saleName(l discovery.Listing) string {
	if l.Launch.SaleName != "" {
		return l.Launch.SaleName
	}
	return l.ID
}

// listingFields are the fields the pretty logger renders for a "Sale listed" line.
func listingFields(l discovery.Listing) []zap.Field {
	return []zap.Field{
		zap.String("status", l.Status.String()),
		zap.String("sale_name", saleName(l)),
		zap.String("creator", l.CreatedBy),
		zap.String("start", formatTime(l.Start)),
		zap.String("end", formatTime(l.End)),
		zap.String("id", l.ID),
	}
}

// listingRecord is one csv row, in csvHeader order.
func listingRecord(l discovery.Listing) []string {
	return []string{
		l.ID,
		saleName(l),
		l.Launch.TokenAddress,
		l.CreatedBy,
		l.Status.String(),
		formatTime(l.Start),
		formatTime(l.End),
		l.Launch.SalePrice.String(),
		l.Launch.PaymentCurrency,
	}
}
