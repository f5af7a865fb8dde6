package discovery

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/rovshanmuradov/launchpad/internal/presale"
)

var (
	ErrEmptyValue     = errors.New("empty date value")
	ErrUnparseable    = errors.New("unparseable date value")
	ErrYearOutOfRange = errors.New("date year out of range")
)

// Outcome names the parser branch that produced a time.
type Outcome int

const (
	OutcomeWizardFormat Outcome = iota + 1
	OutcomeLocaleFormat
	OutcomeGeneric
	OutcomeUnixSeconds
	OutcomeUnixMillis
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWizardFormat:
		return "wizard"
	case OutcomeLocaleFormat:
		return "locale"
	case OutcomeGeneric:
		return "generic"
	case OutcomeUnixSeconds:
		return "unix_seconds"
	case OutcomeUnixMillis:
		return "unix_millis"
	default:
		return "none"
	}
}

// millisThreshold separates second and millisecond timestamps.
const millisThreshold = 1_000_000_000_000

var (
	wizardPattern = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4}) (\d{2}):(\d{2}) (AM|PM)$`)
	localePattern = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}, \d{1,2}:\d{2}:\d{2} (AM|PM)$`)
)

const localeLayout = "1/2/2006, 3:04:05 PM"

// ParsedTime is a successfully parsed date and the branch that read it.
type ParsedTime struct {
	Time    time.Time
	Outcome Outcome
}

// DateParser reads launch schedule values written by any client version.
// Results outside [MinYear, MaxYear] are rejected.
type DateParser struct {
	Location *time.Location
	MinYear  int
	MaxYear  int
}

// NewDateParser returns a parser with the 2020-2030 sanity bound.
func NewDateParser(loc *time.Location) DateParser {
	if loc == nil {
		loc = presale.IST
	}
	return DateParser{Location: loc, MinYear: 2020, MaxYear: 2030}
}

// Parse tries, in order: the wizard's "DD/MM/YYYY HH:mm AM|PM" format, the
// "M/D/YYYY, H:MM:SS AM|PM" locale format, generic date strings, and finally
// unix timestamps in seconds or milliseconds.
func (p DateParser) Parse(v interface{}) (ParsedTime, error) {
	var (
		pt  ParsedTime
		err error
	)

	switch val := v.(type) {
	case nil:
		return ParsedTime{}, ErrEmptyValue
	case string:
		pt, err = p.parseString(val)
	case json.Number:
		pt, err = p.parseString(val.String())
	case float64:
		pt = p.fromUnix(val)
	case int64:
		pt = p.fromUnix(float64(val))
	case int:
		pt = p.fromUnix(float64(val))
	default:
		return ParsedTime{}, fmt.Errorf("%w: unsupported type %T", ErrUnparseable, v)
	}
	if err != nil {
		return ParsedTime{}, err
	}

	if y := pt.Time.Year(); y < p.MinYear || y > p.MaxYear {
		return ParsedTime{}, fmt.Errorf("%w: %d", ErrYearOutOfRange, y)
	}
	return pt, nil
}

func (p DateParser) parseString(raw string) (ParsedTime, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ParsedTime{}, ErrEmptyValue
	}

	if m := wizardPattern.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		hour, _ := strconv.Atoi(m[4])
		minute, _ := strconv.Atoi(m[5])
		t := time.Date(year, time.Month(month), day, presale.To24Hour(hour, m[6]), minute, 0, 0, p.Location)
		return ParsedTime{Time: t, Outcome: OutcomeWizardFormat}, nil
	}

	if localePattern.MatchString(s) {
		if t, err := time.ParseInLocation(localeLayout, s, p.Location); err == nil {
			return ParsedTime{Time: t, Outcome: OutcomeLocaleFormat}, nil
		}
	}

	if n, ok := parseNumber(s); ok {
		return p.fromUnix(n), nil
	}

	t, err := dateparse.ParseIn(s, p.Location)
	if err != nil {
		return ParsedTime{}, fmt.Errorf("%w: %q", ErrUnparseable, raw)
	}
	return ParsedTime{Time: t, Outcome: OutcomeGeneric}, nil
}

// parseNumber accepts any finite decimal number, exponent form included.
func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func (p DateParser) fromUnix(n float64) ParsedTime {
	if n < millisThreshold {
		return ParsedTime{Time: time.UnixMilli(int64(n * 1000)).In(p.Location), Outcome: OutcomeUnixSeconds}
	}
	return ParsedTime{Time: time.UnixMilli(int64(n)).In(p.Location), Outcome: OutcomeUnixMillis}
}
