package discovery

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/launchpad/internal/domain"
	"github.com/rovshanmuradov/launchpad/internal/presale"
)

const (
	member   = "0xAAA0000000000000000000000000000000000111"
	creator  = "0xBBB0000000000000000000000000000000000222"
	outsider = "0xCCC0000000000000000000000000000000000333"
)

func whitelisted(addrs ...string) Listing {
	return Listing{
		ID:        "l1",
		CreatedBy: creator,
		Launch: domain.Launch{
			HasWhitelist: true,
			Whitelist:    &domain.Whitelist{Addresses: addrs},
		},
	}
}

func TestCanView(t *testing.T) {
	tests := []struct {
		name    string
		listing Listing
		wallet  string
		want    bool
	}{
		{"public sale without wallet", Listing{CreatedBy: creator}, "", true},
		{"public sale", Listing{CreatedBy: creator}, outsider, true},
		{"creator bypass", whitelisted(member), "0xbbb0000000000000000000000000000000000222", true},
		{"member", whitelisted(member), "0xaaa0000000000000000000000000000000000111", true},
		{"non member", whitelisted(member), outsider, false},
		{"no wallet", whitelisted(member), "", false},
		{"no addresses, creator", Listing{CreatedBy: creator, Launch: domain.Launch{HasWhitelist: true}}, creator, true},
		{"no addresses, other", Listing{CreatedBy: creator, Launch: domain.Launch{HasWhitelist: true}}, member, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanView(tt.listing, tt.wallet))
		})
	}
}

func TestClassifyBoundaries(t *testing.T) {
	now := time.Date(2025, 3, 7, 12, 0, 0, 0, presale.IST)

	assert.Equal(t, StatusActive, Classify(now.Add(-time.Second), now.Add(time.Hour), now))
	assert.Equal(t, StatusActive, Classify(now, now, now))
	assert.Equal(t, StatusEnded, Classify(now.Add(-time.Hour), now.Add(-time.Second), now))
	assert.Equal(t, StatusUpcoming, Classify(now.Add(time.Second), now.Add(time.Hour), now))
}

func TestUnparseableWindowIsInvalid(t *testing.T) {
	p := NewDateParser(presale.IST)
	l := Listing{RawStart: "someday", RawEnd: "07/03/2025 02:30 PM"}

	reason, err := p.classifyListing(&l, time.Now())
	require.Error(t, err)
	assert.Equal(t, ReasonUnparseableDate, reason)
	assert.Equal(t, StatusInvalid, l.Status)

	l = Listing{RawStart: "01/01/2019 10:00 AM", RawEnd: "07/03/2025 02:30 PM"}
	reason, err = p.classifyListing(&l, time.Now())
	require.Error(t, err)
	assert.Equal(t, ReasonYearOutOfRange, reason)
}

func TestNormalizeAliases(t *testing.T) {
	raw := map[string]json.RawMessage{
		"saleName":        json.RawMessage(`"Legacy"`),
		"startTime":       json.RawMessage(`1700000000`),
		"publicStartDate": json.RawMessage(`"07/03/2025 02:30 PM"`),
		"endTime":         json.RawMessage(`""`),
		"publicEndDate":   json.RawMessage(`"10/03/2025 11:00 AM"`),
		"softcap":         json.RawMessage(`5`),
		"hasWhitelist":    json.RawMessage(`false`),
		"whitelist":       json.RawMessage(`null`),
	}

	l, err := Normalize(creator, "id1", raw)
	require.NoError(t, err)
	assert.Equal(t, json.Number("1700000000"), l.RawStart)
	assert.Equal(t, "10/03/2025 11:00 AM", l.RawEnd)
	assert.Equal(t, "1700000000", l.Launch.PublicStartDate)
	assert.Equal(t, "Legacy", l.Launch.SaleName)
	assert.Equal(t, domain.Amount("5"), l.Launch.Softcap)
	assert.Nil(t, l.Launch.Whitelist)
}

func TestFlatten(t *testing.T) {
	sales := json.RawMessage(`{
		"0xbbb": {
			"launches": {
				"b2": {"saleName": "second", "publicStartDate": "07/03/2025 02:30 PM"},
				"b1": {"saleName": "first"},
				"bad": {"hasWhitelist": "yes"}
			},
			"history": {"h1": {"buyerAddress": "0x1"}}
		},
		"0xaaa": {"history": {}},
		"0xccc": "garbage"
	}`)

	listings, exclusions, err := Flatten(sales)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "b1", listings[0].ID)
	assert.Equal(t, "b2", listings[1].ID)
	assert.Equal(t, "0xbbb", listings[1].CreatedBy)

	require.Len(t, exclusions, 2)
	assert.Equal(t, ReasonDecode, exclusions[0].Reason)
	assert.Equal(t, "bad", exclusions[0].ID)
	assert.Equal(t, "0xccc", exclusions[1].CreatedBy)

	listings, _, err = Flatten(nil)
	require.NoError(t, err)
	assert.Empty(t, listings)
}
