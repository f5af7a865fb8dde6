package presale

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/launchpad/internal/docstore"
	"github.com/rovshanmuradov/launchpad/internal/domain"
	"github.com/rovshanmuradov/launchpad/internal/events"
	"github.com/rovshanmuradov/launchpad/internal/metrics"
)

var ErrTokenNotFound = errors.New("selected token is not in the wallet's token list")

// TokenSource lists the tokens a wallet has deployed.
type TokenSource interface {
	List(ctx context.Context, wallet string) ([]domain.TokenRecord, error)
}

// Service commits finished wizards to the document store.
type Service struct {
	store  docstore.Store
	tokens TokenSource
	bus    *events.Bus
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewService creates a presale service. Sale windows are interpreted in loc.
func NewService(store docstore.Store, tokens TokenSource, bus *events.Bus, loc *time.Location, logger *zap.Logger) *Service {
	if loc == nil {
		loc = IST
	}
	return &Service{
		store:  store,
		tokens: tokens,
		bus:    bus,
		loc:    loc,
		now:    time.Now,
		logger: logger.Named("presale"),
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Location is the zone sale windows are assembled in.
func (s *Service) Location() *time.Location {
	return s.loc
}

// LoadTokens returns the tokens offered in the wizard's token selector.
func (s *Service) LoadTokens(ctx context.Context, wallet string) ([]domain.TokenRecord, error) {
	if wallet == "" {
		return nil, nil
	}
	return s.tokens.List(ctx, wallet)
}

// Launch validates the wizard once more and writes the launch record under
// the wallet's namespace. It returns the generated launch id and resets the
// wizard. On any failure the wizard is left unchanged at the review stage.
func (s *Service) Launch(ctx context.Context, w *Wizard, wallet string) (string, error) {
	if w.Stage() != StageReviewSubmit {
		return "", &TransitionError{From: w.Stage(), Action: ActionLaunch}
	}

	f := w.Form()
	if err := ValidateAll(f); err != nil {
		return "", err
	}
	if err := CheckInvariants(f, wallet, s.now(), s.loc); err != nil {
		return "", err
	}

	token, err := s.findToken(ctx, wallet, f.TokenAddress)
	if err != nil {
		return "", err
	}

	launch := BuildLaunch(f, token, s.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"))
	id, err := s.store.Push(ctx, docstore.LaunchesPath(wallet), launch)
	if err != nil {
		s.logger.Error("Failed to launch presale",
			zap.String("wallet", wallet),
			zap.String("sale_name", f.SaleName),
			zap.Error(err))
		return "", fmt.Errorf("failed to launch presale: %w", err)
	}

	s.logger.Info("Launch created",
		zap.String("launch_id", id),
		zap.String("wallet", wallet),
		zap.String("sale_name", launch.SaleName),
		zap.String("start", launch.PublicStartDate),
		zap.String("end", launch.PublicEndDate),
		zap.Bool("whitelist", launch.HasWhitelist))
	metrics.LaunchCreated(launch.HasWhitelist)

	if s.bus != nil {
		if err := s.bus.Publish(events.NewLaunchCreated(id, wallet, launch.SaleName)); err != nil {
			s.logger.Warn("Failed to publish launch event", zap.Error(err))
		}
	}

	w.Reset()
	return id, nil
}

func (s *Service) findToken(ctx context.Context, wallet, address string) (domain.TokenRecord, error) {
	tokens, err := s.LoadTokens(ctx, wallet)
	if err != nil {
		return domain.TokenRecord{}, fmt.Errorf("failed to load tokens: %w", err)
	}
	for _, t := range tokens {
		if domain.SameAddress(t.TokenAddress, address) {
			return t, nil
		}
	}
	return domain.TokenRecord{}, fmt.Errorf("%w: %s", ErrTokenNotFound, address)
}
