package discovery

import (
	"errors"
	"fmt"
	"time"

	"github.com/rovshanmuradov/launchpad/internal/domain"
)

// CanView reports whether wallet may see the listing. Public sales are
// visible to everyone. A whitelisted sale is visible to its creator and to
// the listed addresses; with no addresses it is visible to the creator only.
func CanView(l Listing, wallet string) bool {
	if !l.Launch.HasWhitelist {
		return true
	}
	if wallet == "" {
		return false
	}
	if domain.SameAddress(l.CreatedBy, wallet) {
		return true
	}
	for _, addr := range l.Launch.WhitelistAddresses() {
		if domain.SameAddress(addr, wallet) {
			return true
		}
	}
	return false
}

// Window parses the listing's start and end.
func (p DateParser) Window(l Listing) (start, end time.Time, err error) {
	s, err := p.Parse(l.RawStart)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start: %w", err)
	}
	e, err := p.Parse(l.RawEnd)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end: %w", err)
	}
	return s.Time, e.Time, nil
}

// Classify places now relative to [start, end]; both bounds are inclusive.
func Classify(start, end, now time.Time) Status {
	switch {
	case now.Before(start):
		return StatusUpcoming
	case now.After(end):
		return StatusEnded
	default:
		return StatusActive
	}
}

// classifyListing fills in Start, End and Status. A window that does not
// parse yields StatusInvalid and the exclusion reason.
func (p DateParser) classifyListing(l *Listing, now time.Time) (string, error) {
	start, end, err := p.Window(*l)
	if err != nil {
		l.Status = StatusInvalid
		if errors.Is(err, ErrYearOutOfRange) {
			return ReasonYearOutOfRange, err
		}
		return ReasonUnparseableDate, err
	}
	l.Start, l.End = start, end
	l.Status = Classify(start, end, now)
	return "", nil
}
