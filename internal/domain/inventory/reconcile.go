package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/stocklink/connector/internal/domain/location"
)

// Settings carries the tenant's inventory sync configuration plus the
// mapped warehouses of the resolved connection.
type Settings struct {
	QuantityType        QuantityType
	LocationScope       LocationScope
	AutoAcceptThreshold float64
	Warehouses          []location.Warehouse
}

// Result is the reconciliation outcome the orchestrator acts on. A missing
// mapping or missing availability data is reported here, never raised.
type Result struct {
	Adjustments       []Adjustment `json:"adjustments"`
	ShouldAutoApprove bool         `json:"shouldAutoApprove"`
	AdjustmentNeeded  bool         `json:"adjustmentNeeded"`
	Message           string       `json:"message"`
}

// Reconcile consolidates a source inventory snapshot into per-location
// adjustment documents and computes the auto-approval verdict against the
// target system's availability.
//
// Case split, in priority order:
//  1. Lots + FIFO costing: the target cannot represent batches; lots are
//     consolidated — summed into one adjustment ("all" scope) or one per
//     mapped warehouse ("mapped" scope). Unmapped lots are dropped.
//  2. Lots + batch-tracked costing: one adjustment per lot, carrying lot id
//     and expiration date. Unmapped lots are dropped.
//  3. No lots, "all" scope: one adjustment for the sole mapped warehouse
//     from the top-level aggregate for the configured quantity type.
//  4. No lots, "mapped" scope: one adjustment per configured warehouse from
//     its per-location breakdown, defaulting to 0.
//
// finalShouldAutoApprove composes multiple orchestrator passes: the verdict
// can demote it to false but never promote a false baseline to true.
func Reconcile(cfg Settings, snap Snapshot, product Product, availability []AvailabilityRow, finalShouldAutoApprove bool) Result {
	if cfg.QuantityType == "" {
		cfg.QuantityType = DefaultQuantityType
	}
	if cfg.LocationScope == "" {
		cfg.LocationScope = ScopeAll
	}

	if len(cfg.Warehouses) == 0 {
		return Result{
			Adjustments:       []Adjustment{},
			ShouldAutoApprove: false,
			AdjustmentNeeded:  false,
			Message:           "no warehouse mapping configured for connection",
		}
	}

	var adjustments []Adjustment
	switch {
	case snap.HasLots() && product.CostingMethod.ConsolidatesLots():
		adjustments = consolidateLots(cfg, snap, product)
	case snap.HasLots():
		adjustments = perLotAdjustments(cfg, snap, product)
	case cfg.LocationScope == ScopeMapped:
		adjustments = perWarehouseAdjustments(cfg, snap, product)
	default:
		adjustments = []Adjustment{
			singleAdjustment(cfg.Warehouses[0], product, decimal.NewFromFloat(snap.Total(cfg.QuantityType))),
		}
	}

	return verdict(cfg, adjustments, availability, finalShouldAutoApprove)
}

// consolidateLots handles lots under plain FIFO costing.
func consolidateLots(cfg Settings, snap Snapshot, product Product) []Adjustment {
	if cfg.LocationScope == ScopeMapped {
		sums := make(map[string]decimal.Decimal)
		for _, lot := range snap.Lots {
			sums[lot.WarehouseID] = sums[lot.WarehouseID].Add(decimal.NewFromFloat(lot.OnHand))
		}
		var out []Adjustment
		for _, wh := range cfg.Warehouses {
			sum, ok := sums[wh.SourceWarehouseID]
			if !ok {
				continue
			}
			out = append(out, singleAdjustment(wh, product, sum))
		}
		return out
	}

	total := decimal.Zero
	for _, lot := range snap.Lots {
		total = total.Add(decimal.NewFromFloat(lot.OnHand))
	}
	return []Adjustment{singleAdjustment(cfg.Warehouses[0], product, total)}
}

// perLotAdjustments keeps batch detail for batch-tracked costing methods.
// Lots whose warehouse has no mapping are silently dropped.
func perLotAdjustments(cfg Settings, snap Snapshot, product Product) []Adjustment {
	var out []Adjustment
	for _, lot := range snap.Lots {
		wh, ok := warehouseByID(cfg.Warehouses, lot.WarehouseID)
		if !ok {
			continue
		}
		adj := singleAdjustment(wh, product, decimal.NewFromFloat(lot.OnHand))
		adj.LotID = lot.LotID
		adj.ExpirationDate = lot.ExpirationDate
		out = append(out, adj)
	}
	return out
}

func perWarehouseAdjustments(cfg Settings, snap Snapshot, product Product) []Adjustment {
	out := make([]Adjustment, 0, len(cfg.Warehouses))
	for _, wh := range cfg.Warehouses {
		qty := snap.WarehouseQuantity(wh.SourceWarehouseID, cfg.QuantityType)
		out = append(out, singleAdjustment(wh, product, decimal.NewFromFloat(qty)))
	}
	return out
}

func singleAdjustment(wh location.Warehouse, product Product, qty decimal.Decimal) Adjustment {
	return Adjustment{
		LocationName: wh.TargetLocationID,
		WarehouseID:  wh.SourceWarehouseID,
		Lines:        []AdjustmentLine{newLine(product, qty)},
	}
}

func newLine(product Product, qty decimal.Decimal) AdjustmentLine {
	return AdjustmentLine{
		SKU:      product.SKU,
		Quantity: qty.InexactFloat64(),
		UnitCost: product.UnitCost,
		Length:   dimension(product.Length),
		Width:    dimension(product.Width),
		Height:   dimension(product.Height),
		Weight:   dimension(product.Weight),
	}
}

// dimension normalizes an unknown dimension to 1.
func dimension(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}

// verdict computes shouldAutoApprove and adjustmentNeeded per line against
// availability rows matched by exact SKU+location.
func verdict(cfg Settings, adjustments []Adjustment, availability []AvailabilityRow, finalShouldAutoApprove bool) Result {
	if adjustments == nil {
		adjustments = []Adjustment{}
	}

	threshold := decimal.NewFromFloat(cfg.AutoAcceptThreshold)

	if len(availability) == 0 {
		// Without availability data there is nothing to compare against:
		// approve only when there is something to push at all.
		nonZero := false
		for _, adj := range adjustments {
			for _, line := range adj.Lines {
				if line.Quantity != 0 {
					nonZero = true
				}
			}
		}
		msg := "no availability data; adjustment applied without comparison"
		if !nonZero {
			msg = "no availability data and all quantities are zero; nothing to reconcile"
		}
		return Result{
			Adjustments:       adjustments,
			ShouldAutoApprove: finalShouldAutoApprove && nonZero,
			AdjustmentNeeded:  nonZero,
			Message:           msg,
		}
	}

	allPass := true
	needed := false
	for _, adj := range adjustments {
		for _, line := range adj.Lines {
			row, ok := availabilityFor(availability, line.SKU, adj.LocationName)
			if !ok {
				// A missing row for one SKU+location does not block
				// approval of the whole reconciliation.
				if line.Quantity != 0 {
					needed = true
				}
				continue
			}
			diff := decimal.NewFromFloat(line.Quantity).Sub(decimal.NewFromFloat(row.OnHand))
			if !diff.IsZero() {
				needed = true
			}
			if threshold.IsZero() {
				continue
			}
			if diff.Abs().Cmp(threshold) > 0 {
				allPass = false
			}
		}
	}

	msg := "quantities match target availability"
	if needed {
		msg = "adjustment required against target availability"
	}
	return Result{
		Adjustments:       adjustments,
		ShouldAutoApprove: finalShouldAutoApprove && allPass,
		AdjustmentNeeded:  needed,
		Message:           msg,
	}
}

func availabilityFor(rows []AvailabilityRow, sku, locationName string) (AvailabilityRow, bool) {
	for _, r := range rows {
		if r.SKU == sku && r.Location == locationName {
			return r, true
		}
	}
	return AvailabilityRow{}, false
}

func warehouseByID(warehouses []location.Warehouse, id string) (location.Warehouse, bool) {
	for _, wh := range warehouses {
		if wh.SourceWarehouseID == id {
			return wh, true
		}
	}
	return location.Warehouse{}, false
}
