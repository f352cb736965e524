package sync

import (
	"context"

	"github.com/stocklink/connector/internal/domain/inventory"
)

// CatalogLookup supplies product records by exact SKU. The data is already
// fetched by the orchestrator's collaborators; implementations here only
// read.
type CatalogLookup interface {
	Product(ctx context.Context, sku string) (inventory.Product, bool, error)
}

// AvailabilityProvider supplies the target system's on-hand rows for a SKU.
// Both providers are optional; a request carrying the data inline takes
// precedence, and a nil provider simply means no fallback lookup.
type AvailabilityProvider interface {
	Availability(ctx context.Context, sku string) ([]inventory.AvailabilityRow, error)
}
