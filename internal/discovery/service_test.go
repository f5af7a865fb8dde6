package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rovshanmuradov/launchpad/internal/docstore"
	"github.com/rovshanmuradov/launchpad/internal/presale"
)

var scanNow = time.Date(2025, 3, 8, 12, 0, 0, 0, presale.IST)

type brokenStore struct {
	docstore.Store
}

func (brokenStore) Read(context.Context, string) (json.RawMessage, bool, error) {
	return nil, false, errors.New("connection refused")
}

func seed(t *testing.T) docstore.Store {
	t.Helper()
	store := docstore.NewMemory()
	ctx := context.Background()

	write := func(wallet, id string, v map[string]interface{}) {
		require.NoError(t, store.Write(ctx, docstore.LaunchesPath(wallet)+"/"+id, v))
	}

	write(creator, "public-active", map[string]interface{}{
		"saleName":        "Public",
		"hasWhitelist":    false,
		"publicStartDate": "08/03/2025 11:59 AM",
		"publicEndDate":   "08/03/2025 01:00 PM",
	})
	write(creator, "wl-active", map[string]interface{}{
		"saleName":        "Private",
		"hasWhitelist":    true,
		"whitelist":       map[string]interface{}{"whitelistAddresses": []string{member}},
		"publicStartDate": "07/03/2025 10:00 AM",
		"publicEndDate":   "09/03/2025 10:00 AM",
	})
	write(creator, "ended", map[string]interface{}{
		"saleName":  "Old",
		"startTime": "01/03/2025 10:00 AM",
		"endTime":   "08/03/2025 11:59 AM",
	})
	write(outsider, "upcoming", map[string]interface{}{
		"saleName":        "Soon",
		"publicStartDate": "10/03/2025 10:00 AM",
		"publicEndDate":   "11/03/2025 10:00 AM",
	})
	write(outsider, "broken-date", map[string]interface{}{
		"saleName":        "Broken",
		"publicStartDate": "sometime",
		"publicEndDate":   "11/03/2025 10:00 AM",
	})
	return store
}

func ids(listings []Listing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}

func newService(t *testing.T, store docstore.Store) *Service {
	return NewService(store, presale.IST, zaptest.NewLogger(t)).
		WithClock(func() time.Time { return scanNow })
}

func TestActive(t *testing.T) {
	svc := newService(t, seed(t))
	ctx := context.Background()

	got, err := svc.Active(ctx, member)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"public-active", "wl-active"}, ids(got))

	got, err = svc.Active(ctx, outsider)
	require.NoError(t, err)
	assert.Equal(t, []string{"public-active"}, ids(got))

	got, err = svc.Active(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"public-active"}, ids(got))
}

func TestAllCarriesStatus(t *testing.T) {
	svc := newService(t, seed(t))

	got, err := svc.All(context.Background(), creator)
	require.NoError(t, err)

	status := make(map[string]Status)
	for _, l := range got {
		status[l.ID] = l.Status
	}
	assert.Equal(t, map[string]Status{
		"public-active": StatusActive,
		"wl-active":     StatusActive,
		"ended":         StatusEnded,
		"upcoming":      StatusUpcoming,
		"broken-date":   StatusInvalid,
	}, status)
}

func TestFindAndDetail(t *testing.T) {
	svc := newService(t, seed(t))
	ctx := context.Background()

	l, err := svc.Find(ctx, "wl-active")
	require.NoError(t, err)
	assert.Equal(t, docstore.WalletKey(creator), l.CreatedBy)
	assert.Equal(t, StatusActive, l.Status)

	_, err = svc.Find(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Detail(ctx, "wl-active", outsider)
	assert.ErrorIs(t, err, ErrNotWhitelisted)

	l, err = svc.Detail(ctx, "wl-active", member)
	require.NoError(t, err)
	assert.Equal(t, "Private", l.Launch.SaleName)
}

func TestFetchFailureIsClosed(t *testing.T) {
	svc := newService(t, brokenStore{})
	got, err := svc.Active(context.Background(), member)
	require.Error(t, err)
	assert.Nil(t, got)
}

func TestEmptyStore(t *testing.T) {
	svc := newService(t, docstore.NewMemory())
	got, err := svc.Active(context.Background(), member)
	require.NoError(t, err)
	assert.Empty(t, got)
}
