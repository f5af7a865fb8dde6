package discovery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/rovshanmuradov/launchpad/internal/domain"
)

// fieldAliases maps each canonical schedule field to the stored names it
// may appear under, in priority order. Older records use startTime and
// endTime, the wizard writes publicStartDate and publicEndDate.
var fieldAliases = []struct {
	canonical string
	names     []string
}{
	{canonical: "startTime", names: []string{"startTime", "publicStartDate"}},
	{canonical: "endTime", names: []string{"endTime", "publicEndDate"}},
}

// Status is a listing's position relative to its sale window.
type Status int

const (
	StatusInvalid Status = iota
	StatusUpcoming
	StatusActive
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusUpcoming:
		return "upcoming"
	case StatusActive:
		return "active"
	case StatusEnded:
		return "ended"
	default:
		return "invalid"
	}
}

// Listing is one launch record in canonical shape.
type Listing struct {
	ID        string
	CreatedBy string
	Launch    domain.Launch

	// RawStart and RawEnd are the schedule values as stored.
	RawStart interface{}
	RawEnd   interface{}

	// Populated by the service once the window is parsed.
	Start  time.Time
	End    time.Time
	Status Status
}

// Normalize resolves the schedule aliases of a stored launch and decodes
// the rest of the record.
func Normalize(createdBy, id string, raw map[string]json.RawMessage) (Listing, error) {
	l := Listing{ID: id, CreatedBy: createdBy}

	rest := make(map[string]json.RawMessage, len(raw))
	for k, v := range raw {
		rest[k] = v
	}

	resolved := make(map[string]interface{}, len(fieldAliases))
	for _, alias := range fieldAliases {
		for _, name := range alias.names {
			v, ok := raw[name]
			delete(rest, name)
			if !ok || resolved[alias.canonical] != nil {
				continue
			}
			if val := decodeValue(v); truthy(val) {
				resolved[alias.canonical] = val
			}
		}
	}
	l.RawStart = resolved["startTime"]
	l.RawEnd = resolved["endTime"]

	body, err := json.Marshal(rest)
	if err != nil {
		return l, err
	}
	if err := json.Unmarshal(body, &l.Launch); err != nil {
		return l, fmt.Errorf("decode launch %s/%s: %w", createdBy, id, err)
	}
	l.Launch.PublicStartDate = displayValue(l.RawStart)
	l.Launch.PublicEndDate = displayValue(l.RawEnd)
	return l, nil
}

func decodeValue(raw json.RawMessage) interface{} {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

// truthy skips null, empty strings and zero, the way a stored field that
// was never filled in looks.
func truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case json.Number:
		f, err := val.Float64()
		return err != nil || f != 0
	case bool:
		return val
	}
	return true
}

func displayValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// Exclusion records why a stored launch was dropped.
type Exclusion struct {
	ID        string
	CreatedBy string
	Reason    string
	Err       error
}

// Exclusion reasons.
const (
	ReasonDecode          = "decode"
	ReasonNotWhitelisted  = "not_whitelisted"
	ReasonUnparseableDate = "unparseable_date"
	ReasonYearOutOfRange  = "year_out_of_range"
	ReasonInactive        = "inactive"
)

type creatorNode struct {
	Launches map[string]json.RawMessage `json:"launches"`
}

// Flatten turns the whole sales subtree into listings, sorted by creator
// and id. Records that cannot be decoded are returned as exclusions.
func Flatten(sales json.RawMessage) ([]Listing, []Exclusion, error) {
	if len(sales) == 0 || string(sales) == "null" {
		return nil, nil, nil
	}

	var creators map[string]json.RawMessage
	if err := json.Unmarshal(sales, &creators); err != nil {
		return nil, nil, fmt.Errorf("decode sales: %w", err)
	}

	names := make([]string, 0, len(creators))
	for name := range creators {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		listings   []Listing
		exclusions []Exclusion
	)
	for _, creator := range names {
		var node creatorNode
		if err := json.Unmarshal(creators[creator], &node); err != nil {
			exclusions = append(exclusions, Exclusion{CreatedBy: creator, Reason: ReasonDecode, Err: err})
			continue
		}

		ids := make([]string, 0, len(node.Launches))
		for id := range node.Launches {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			var raw map[string]json.RawMessage
			if err := json.Unmarshal(node.Launches[id], &raw); err != nil {
				exclusions = append(exclusions, Exclusion{ID: id, CreatedBy: creator, Reason: ReasonDecode, Err: err})
				continue
			}
			l, err := Normalize(creator, id, raw)
			if err != nil {
				exclusions = append(exclusions, Exclusion{ID: id, CreatedBy: creator, Reason: ReasonDecode, Err: err})
				continue
			}
			listings = append(listings, l)
		}
	}
	return listings, exclusions, nil
}
