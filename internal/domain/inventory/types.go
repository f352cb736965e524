package inventory

import "strings"

// CostingMethod is the inventory valuation method of the matched product.
// It determines whether batch-level detail is representable downstream.
type CostingMethod string

const (
	CostingFIFO            CostingMethod = "FIFO"
	CostingFIFOBatch       CostingMethod = "FIFO - Batch"
	CostingSpecial         CostingMethod = "Special - Batch"
	CostingFEFO            CostingMethod = "FEFO - Batch"
	CostingMovingAverage   CostingMethod = "Moving Average"
	CostingDefaultUnmapped CostingMethod = ""
)

// ConsolidatesLots reports whether lots must be consolidated for the target
// system. Plain FIFO costing carries no batch meaning downstream, so lots
// are summed; batch-tracked methods keep per-lot detail.
func (m CostingMethod) ConsolidatesLots() bool {
	s := strings.TrimSpace(string(m))
	return strings.EqualFold(s, "FIFO")
}

// QuantityType selects which source-side quantity figure drives
// reconciliation.
type QuantityType string

const (
	QuantitySellable  QuantityType = "sellable"
	QuantityOnHand    QuantityType = "onhand"
	QuantityAvailable QuantityType = "available"
)

// DefaultQuantityType is used when a tenant's inventory sync config leaves
// the quantity type unset.
const DefaultQuantityType = QuantitySellable

// LocationScope selects whether reconciliation runs against the tenant's
// single warehouse or per mapped warehouse.
type LocationScope string

const (
	ScopeAll    LocationScope = "all"
	ScopeMapped LocationScope = "mapped"
)

// Lot is one tracked sub-quantity of a SKU with its own identifier and
// expiration date.
type Lot struct {
	LotID          string  `json:"lot_id"`
	WarehouseID    string  `json:"warehouse_id"`
	OnHand         float64 `json:"onhand"`
	ExpirationDate string  `json:"expiration_date,omitempty"`
}

// Snapshot is the source-side stock picture for one SKU: either a flat
// per-warehouse quantity map or a list of lot records.
type Snapshot struct {
	SKU         string                        `json:"sku"`
	Totals      map[string]float64            `json:"totals,omitempty"`
	ByWarehouse map[string]map[string]float64 `json:"byWarehouse,omitempty"`
	Lots        []Lot                         `json:"lots,omitempty"`
}

// HasLots reports whether the snapshot carries lot/batch records.
func (s Snapshot) HasLots() bool {
	return len(s.Lots) > 0
}

// Total returns the top-level aggregate quantity for a quantity type,
// defaulting to 0 when absent.
func (s Snapshot) Total(qt QuantityType) float64 {
	return s.Totals[string(qt)]
}

// WarehouseQuantity returns the per-location breakdown figure for a
// warehouse and quantity type, defaulting to 0 when absent.
func (s Snapshot) WarehouseQuantity(warehouseID string, qt QuantityType) float64 {
	return s.ByWarehouse[warehouseID][string(qt)]
}

// Product is the catalog record matched by exact SKU. Dimension fields of 0
// are unknown and normalized to 1 on adjustment lines.
type Product struct {
	SKU           string        `json:"SKU"`
	CostingMethod CostingMethod `json:"costingMethod"`
	UnitCost      float64       `json:"unitCost"`
	Length        float64       `json:"length"`
	Width         float64       `json:"width"`
	Height        float64       `json:"height"`
	Weight        float64       `json:"weight"`
}

// AvailabilityRow is one target-side on-hand figure, matched by exact
// SKU+location.
type AvailabilityRow struct {
	SKU      string  `json:"SKU"`
	Location string  `json:"Location"`
	OnHand   float64 `json:"OnHand"`
}

// AdjustmentLine is one line of an adjustment document. The four dimension
// fields default to 1 when unknown — never 0, which would divide-by-zero in
// downstream freight calculations.
type AdjustmentLine struct {
	SKU      string  `json:"SKU"`
	Quantity float64 `json:"Quantity"`
	UnitCost float64 `json:"UnitCost"`
	Length   float64 `json:"Length"`
	Width    float64 `json:"Width"`
	Height   float64 `json:"Height"`
	Weight   float64 `json:"Weight"`
}

// Adjustment is the unit of reconciliation output: one per-location
// adjustment document for the target system.
type Adjustment struct {
	LocationName   string           `json:"locationName"`
	WarehouseID    string           `json:"warehouseId,omitempty"`
	LotID          string           `json:"lot_id,omitempty"`
	ExpirationDate string           `json:"expiration_date,omitempty"`
	Lines          []AdjustmentLine `json:"Lines"`
}
