package discovery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/launchpad/internal/docstore"
	"github.com/rovshanmuradov/launchpad/internal/metrics"
)

var (
	ErrNotFound       = errors.New("sale not found")
	ErrNotWhitelisted = errors.New("you are not whitelisted for this sale")
)

// Service scans every creator's launches and filters them for a wallet.
type Service struct {
	store  docstore.Store
	parser DateParser
	now    func() time.Time
	logger *zap.Logger
}

// NewService creates a discovery service. Sale windows are read in loc.
func NewService(store docstore.Store, loc *time.Location, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		parser: NewDateParser(loc),
		now:    time.Now,
		logger: logger.Named("discovery"),
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Parser exposes the date parser used for sale windows.
func (s *Service) Parser() DateParser {
	return s.parser
}

func (s *Service) scan(ctx context.Context) ([]Listing, error) {
	raw, ok, err := s.store.Read(ctx, docstore.SalesRoot)
	if err != nil {
		s.logger.Error("Failed to fetch sales", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch sales: %w", err)
	}
	if !ok {
		return nil, nil
	}

	listings, exclusions, err := Flatten(raw)
	if err != nil {
		s.logger.Error("Failed to decode sales", zap.Error(err))
		return nil, err
	}
	for _, ex := range exclusions {
		s.exclude(ex)
	}
	return listings, nil
}

func (s *Service) exclude(ex Exclusion) {
	metrics.RecordExcluded(ex.Reason)
	fields := []zap.Field{
		zap.String("launch_id", ex.ID),
		zap.String("creator", ex.CreatedBy),
		zap.String("reason", ex.Reason),
	}
	if ex.Err != nil {
		fields = append(fields, zap.Error(ex.Err))
	}
	s.logger.Debug("Record excluded", fields...)
}

// eligible returns the listings wallet may see, classified against now.
// Listings whose window does not parse are kept with StatusInvalid.
func (s *Service) eligible(ctx context.Context, wallet string) ([]Listing, error) {
	start := time.Now()
	defer metrics.ObserveScan(start)

	listings, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if !CanView(l, wallet) {
			s.exclude(Exclusion{ID: l.ID, CreatedBy: l.CreatedBy, Reason: ReasonNotWhitelisted})
			continue
		}
		if reason, err := s.parser.classifyListing(&l, now); err != nil {
			s.logger.Warn("Record excluded",
				zap.String("launch_id", l.ID),
				zap.String("creator", l.CreatedBy),
				zap.String("reason", reason),
				zap.Any("start", l.RawStart),
				zap.Any("end", l.RawEnd),
				zap.Error(err))
			metrics.RecordExcluded(reason)
		}
		out = append(out, l)
	}
	return out, nil
}

// Active returns the launches wallet may see whose window contains now.
// An empty wallet sees public sales only.
func (s *Service) Active(ctx context.Context, wallet string) ([]Listing, error) {
	all, err := s.eligible(ctx, wallet)
	if err != nil {
		return nil, err
	}

	active := make([]Listing, 0, len(all))
	for _, l := range all {
		switch l.Status {
		case StatusActive:
			active = append(active, l)
		case StatusInvalid:
			// already counted when classified
		default:
			s.exclude(Exclusion{ID: l.ID, CreatedBy: l.CreatedBy, Reason: ReasonInactive})
		}
	}

	s.logger.Debug("Discovery scan complete",
		zap.Int("eligible", len(all)),
		zap.Int("active", len(active)))
	return active, nil
}

// All returns every launch wallet may see, whatever its status.
func (s *Service) All(ctx context.Context, wallet string) ([]Listing, error) {
	return s.eligible(ctx, wallet)
}

// Find locates a launch by id across all creators, without eligibility checks.
func (s *Service) Find(ctx context.Context, id string) (Listing, error) {
	listings, err := s.scan(ctx)
	if err != nil {
		return Listing{}, err
	}
	for _, l := range listings {
		if l.ID == id {
			if _, err := s.parser.classifyListing(&l, s.now()); err != nil {
				s.logger.Debug("Sale window unreadable", zap.String("launch_id", id), zap.Error(err))
			}
			return l, nil
		}
	}
	return Listing{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Detail is Find restricted to launches wallet may see.
func (s *Service) Detail(ctx context.Context, id, wallet string) (Listing, error) {
	l, err := s.Find(ctx, id)
	if err != nil {
		return Listing{}, err
	}
	if !CanView(l, wallet) {
		return Listing{}, ErrNotWhitelisted
	}
	return l, nil
}
