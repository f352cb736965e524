package location

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Query selects a warehouse either by source-side name, by target-side
// location id (reverse lookup), or — when neither is set — by preferred
// connection (used when a tenant has exactly one configured connection).
type Query struct {
	ByName                string
	ByTargetID            string
	PreferredConnectionID string
}

// Resolution is the resolver output. Field names are a bit-for-bit contract
// with the orchestrator: Default3PLShippingMethod is the literal "N/A" when
// the connection declares none, never empty or omitted.
type Resolution struct {
	ConnectionID             string `json:"connectionId"`
	MappedWarehouse          string `json:"mappedWarehouse"`
	MappingKey               string `json:"mappingKey"`
	Default3PLShippingMethod string `json:"default3PLShippingMethod"`
}

// Resolve scans connections in array order and, within a connection,
// warehouses in array order; the first match wins. The linear scan is
// deliberate: tenant configuration legitimately contains duplicate and
// overlapping names, and array order is the documented tie-break.
//
// A name matches on exact string equality or case-insensitive normalized
// equality (trimmed, internal whitespace collapsed, NFC). A target-id
// matches on the trimmed id. When no match is found and a connection with
// id "default" exists, its first warehouse is the fallback.
func Resolve(mappings []Mapping, q Query) (Resolution, bool) {
	name := Normalize(q.ByName)
	targetID := strings.TrimSpace(q.ByTargetID)

	if name == "" && targetID == "" {
		if q.PreferredConnectionID != "" {
			for _, m := range mappings {
				if m.ConnectionID == q.PreferredConnectionID && len(m.Warehouses) > 0 {
					return resolution(m, m.Warehouses[0]), true
				}
			}
		}
		return fallback(mappings)
	}

	for _, m := range mappings {
		for _, w := range m.Warehouses {
			if targetID != "" {
				if strings.TrimSpace(w.TargetLocationID) == targetID {
					return resolution(m, w), true
				}
				continue
			}
			if w.SourceWarehouseName == q.ByName || strings.EqualFold(Normalize(w.SourceWarehouseName), name) {
				return resolution(m, w), true
			}
		}
	}
	return fallback(mappings)
}

// ResolveSource resolves mapping configuration that may still be
// serialized. Parse failure degrades to not-found; a new tenant without
// configuration is not an error.
func ResolveSource(src ConfigSource, q Query) (Resolution, bool) {
	mappings, err := src.Mappings()
	if err != nil {
		return Resolution{}, false
	}
	return Resolve(mappings, q)
}

// Normalize trims, collapses internal whitespace, and NFC-normalizes a
// location name for comparison.
func Normalize(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

func resolution(m Mapping, w Warehouse) Resolution {
	method := m.Default3PLShippingMethod
	if method == "" {
		method = ShippingMethodNA
	}
	return Resolution{
		ConnectionID:             m.ConnectionID,
		MappedWarehouse:          w.TargetLocationID,
		MappingKey:               w.SourceWarehouseName,
		Default3PLShippingMethod: method,
	}
}

func fallback(mappings []Mapping) (Resolution, bool) {
	for _, m := range mappings {
		if m.ConnectionID == DefaultConnectionID && len(m.Warehouses) > 0 {
			return resolution(m, m.Warehouses[0]), true
		}
	}
	return Resolution{}, false
}
