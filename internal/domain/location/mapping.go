package location

import (
	"encoding/json"
	"errors"
)

var (
	// ErrConfigUnparsable reports serialized mapping configuration that is
	// not valid JSON. This is a normal, expected case for a new or
	// incomplete tenant and degrades to a not-found resolution.
	ErrConfigUnparsable = errors.New("location: mapping configuration unparsable")
)

const (
	// DefaultConnectionID is the reserved connection id used as a fallback
	// when no warehouse matches a query.
	DefaultConnectionID = "default"
	// ShippingMethodNA is emitted when a connection declares no default
	// 3PL shipping method. The field is a string contract, never omitted.
	ShippingMethodNA = "N/A"
)

// Warehouse pairs one source-system warehouse with its target-system
// location.
type Warehouse struct {
	SourceWarehouseID   string `json:"sourceWarehouseId"`
	SourceWarehouseName string `json:"sourceWarehouseName"`
	TargetLocationID    string `json:"targetLocationId"`
}

// SubstitutionList is a tenant-authored value-substitution table keyed by a
// list name, e.g. country name to country code.
type SubstitutionList struct {
	ListName string            `json:"listName"`
	Mapping  map[string]string `json:"mapping"`
}

// Mapping describes one target-system connection: its warehouse pairings,
// optional substitution tables, and optional default shipping method.
// Within a connection, sourceWarehouseName values are effectively unique
// under normalization; when duplicated, the first match wins.
type Mapping struct {
	ConnectionID             string             `json:"connectionId"`
	Warehouses               []Warehouse        `json:"warehouses"`
	SubstitutionLists        []SubstitutionList `json:"substitutionList,omitempty"`
	Default3PLShippingMethod string             `json:"default3PLShippingMethod,omitempty"`
}

// ConfigSource is the union of the two shapes mapping configuration arrives
// in: an already-parsed structure or a JSON string. It is resolved exactly
// once at the boundary instead of ad-hoc re-parsing.
type ConfigSource struct {
	parsed     []Mapping
	serialized string
	raw        bool
}

// RawSource wraps already-parsed mapping configuration.
func RawSource(mappings []Mapping) ConfigSource {
	return ConfigSource{parsed: mappings, raw: true}
}

// SerializedSource wraps mapping configuration still serialized as JSON.
func SerializedSource(s string) ConfigSource {
	return ConfigSource{serialized: s}
}

// Mappings resolves the union. A serialized source that fails to parse
// returns ErrConfigUnparsable; callers treat that as not-found, never as a
// fault.
func (s ConfigSource) Mappings() ([]Mapping, error) {
	if s.raw {
		return s.parsed, nil
	}
	if s.serialized == "" {
		return nil, nil
	}
	var out []Mapping
	if err := json.Unmarshal([]byte(s.serialized), &out); err != nil {
		return nil, ErrConfigUnparsable
	}
	return out, nil
}
