package main

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rovshanmuradov/launchpad/internal/discovery"
	"github.com/rovshanmuradov/launchpad/internal/docstore"
	"github.com/rovshanmuradov/launchpad/internal/presale"
)

const seller = "0x00000000000000000000000000000000000000b2"

func newScanService(t *testing.T) *discovery.Service {
	t.Helper()
	store := docstore.NewMemory()
	ctx := context.Background()

	write := func(id string, v map[string]interface{}) {
		require.NoError(t, store.Write(ctx, docstore.LaunchesPath(seller)+"/"+id, v))
	}
	write("live", map[string]interface{}{
		"saleName":        "Live Sale",
		"tokenAddress":    "0x00000000000000000000000000000000000000a1",
		"salePrice":       "0.0025",
		"paymentCurrency": "Eth Sepolia",
		"publicStartDate": "07/03/2025 10:00 AM",
		"publicEndDate":   "09/03/2025 10:00 AM",
	})
	write("old", map[string]interface{}{
		"saleName":        "Old Sale",
		"publicStartDate": "01/03/2025 10:00 AM",
		"publicEndDate":   "02/03/2025 10:00 AM",
	})

	now := time.Date(2025, 3, 8, 12, 0, 0, 0, presale.IST)
	return discovery.NewService(store, presale.IST, zap.NewNop()).
		WithClock(func() time.Time { return now })
}

func TestScanLogsActiveSales(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	err := scan(context.Background(), newScanService(t), options{}, zap.New(core))
	require.NoError(t, err)

	listed := logs.FilterMessage("Sale listed").All()
	require.Len(t, listed, 1)
	fields := listed[0].ContextMap()
	assert.Equal(t, "Live Sale", fields["sale_name"])
	assert.Equal(t, "active", fields["status"])
	assert.Equal(t, "2025-03-07 10:00", fields["start"])
	assert.Equal(t, "2025-03-09 10:00", fields["end"])
}

func TestScanWritesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")

	err := scan(context.Background(), newScanService(t), options{all: true, csvPath: path}, zap.NewNop())
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, csvHeader, records[0])

	byID := map[string][]string{}
	for _, r := range records[1:] {
		byID[r[0]] = r
	}
	assert.Equal(t, []string{
		"live", "Live Sale", "0x00000000000000000000000000000000000000a1", seller,
		"active", "2025-03-07 10:00", "2025-03-09 10:00", "0.0025", "Eth Sepolia",
	}, byID["live"])
	assert.Equal(t, "ended", byID["old"][4])
}

func TestListingFallsBackToID(t *testing.T) {
	l := discovery.Listing{ID: "abc", Status: discovery.StatusInvalid}
	record := listingRecord(l)
	assert.Equal(t, "abc", record[1])
	assert.Equal(t, "invalid", record[4])
	assert.Equal(t, "-", record[5])
}
