package fulfillment

import (
	"fmt"

	"github.com/stocklink/connector/internal/domain/location"
)

// Sub-operation endpoints, literal contracts with the orchestrator.
const (
	EndpointSalePick = "POST /salepick"
	EndpointSalePack = "POST /salepack"
	EndpointSaleShip = "POST /saleship"
)

// DefaultWarehouseName is the literal fallback when neither the shipment's
// location nor the order names a warehouse.
const DefaultWarehouseName = "Main Warehouse"

// SubOperation is one pick, pack, or ship call for the orchestrator to
// execute against the target system.
type SubOperation struct {
	Endpoint string `json:"endpoint"`
	Body     any    `json:"body"`
}

// Operation is the ordered set of sub-operations for one shipment. Pick,
// pack, and ship are emitted in that fixed order; each represents a state
// transition on the same fulfillment record and must be executed serially.
type Operation struct {
	TrackstarID  string        `json:"trackstarId"`
	TrackstarKey string        `json:"trackstarKey"`
	SalePick     *SubOperation `json:"salePick,omitempty"`
	SalePack     *SubOperation `json:"salePack,omitempty"`
	SaleShip     *SubOperation `json:"saleShip,omitempty"`
}

// PickLine is one pick body line.
type PickLine struct {
	SKU      string  `json:"SKU"`
	Location string  `json:"Location"`
	Quantity float64 `json:"Quantity"`
}

// PackLine is one pack body line; Box identifies the physical package and
// batch fields carry lot detail when available.
type PackLine struct {
	SKU        string  `json:"SKU"`
	Location   string  `json:"Location"`
	Quantity   float64 `json:"Quantity"`
	Box        string  `json:"Box"`
	BatchSN    string  `json:"BatchSN,omitempty"`
	ExpiryDate string  `json:"ExpiryDate,omitempty"`
}

// ShipLine is one ship body line, one per package.
type ShipLine struct {
	Box            string `json:"Box"`
	Carrier        string `json:"Carrier,omitempty"`
	TrackingNumber string `json:"TrackingNumber,omitempty"`
	TrackingURL    string `json:"TrackingURL,omitempty"`
	ShipDate       string `json:"ShipDate,omitempty"`
}

// PickBody is the salePick request body.
type PickBody struct {
	TaskID string     `json:"TaskID,omitempty"`
	Lines  []PickLine `json:"Lines"`
}

// PackBody is the salePack request body.
type PackBody struct {
	TaskID string     `json:"TaskID,omitempty"`
	Lines  []PackLine `json:"Lines"`
}

// ShipBody is the saleShip request body.
type ShipBody struct {
	TaskID string     `json:"TaskID,omitempty"`
	Lines  []ShipLine `json:"Lines"`
}

// TargetPick is existing target-side pick data for a SKU, consulted first
// when sourcing lot detail for pack lines.
type TargetPick struct {
	SKU            string `json:"SKU"`
	LotID          string `json:"lot_id,omitempty"`
	ExpirationDate string `json:"expiration_date,omitempty"`
}

// BuildOperations derives the ordered Pick → Pack → Ship sub-operation
// payloads for each shipment of an order.
//
// Per shipment the composite identifier is "{orderId}:{shipmentId}" and the
// composite human key "{orderNumber}:{last 6 of shipmentId}". The warehouse
// name comes from the reverse location lookup, then the order's warehouse,
// then DefaultWarehouseName. TaskID is attached only for Simple sales:
// attaching the order-level task id to the operations of a multi-fulfillment
// order would conflate independent fulfillments. Sub-operations that would
// carry zero lines are omitted entirely.
func BuildOperations(order Order, shipments []Shipment, class Classification, mappings []location.Mapping, targetPicks []TargetPick) []Operation {
	ops := make([]Operation, 0, len(shipments))
	for _, sh := range shipments {
		ops = append(ops, buildOperation(order, sh, class, mappings, targetPicks))
	}
	return ops
}

func buildOperation(order Order, sh Shipment, class Classification, mappings []location.Mapping, targetPicks []TargetPick) Operation {
	op := Operation{
		TrackstarID:  order.ID + ":" + sh.ID,
		TrackstarKey: order.Number + ":" + lastN(sh.ID, 6),
	}

	warehouse := order.WarehouseName
	defaultCarrier := ""
	// A shipment without a location must not hit the resolver: its
	// "default" connection fallback would override the order's own
	// warehouse in the fallback chain.
	if sh.LocationID != "" {
		if res, ok := location.Resolve(mappings, location.Query{ByTargetID: sh.LocationID}); ok {
			warehouse = res.MappingKey
			if res.Default3PLShippingMethod != location.ShippingMethodNA {
				defaultCarrier = res.Default3PLShippingMethod
			}
		}
	}
	if warehouse == "" {
		warehouse = DefaultWarehouseName
	}

	taskID := ""
	if class == ClassificationSimple {
		taskID = order.TaskID
	}

	var picks []PickLine
	var packs []PackLine
	var ships []ShipLine
	for i, pkg := range sh.Packages {
		box := pkg.Name
		if box == "" {
			box = pkg.TrackingNumber
		}
		if box == "" {
			box = fmt.Sprintf("Box %d", i+1)
		}

		for _, line := range pkg.Lines {
			picks = append(picks, PickLine{SKU: line.SKU, Location: warehouse, Quantity: line.Quantity})

			pack := PackLine{SKU: line.SKU, Location: warehouse, Quantity: line.Quantity, Box: box}
			pack.BatchSN, pack.ExpiryDate = lotFor(line, targetPicks)
			packs = append(packs, pack)
		}

		carrier := pkg.Carrier
		if carrier == "" {
			carrier = defaultCarrier
		}
		ships = append(ships, ShipLine{
			Box:            box,
			Carrier:        carrier,
			TrackingNumber: pkg.TrackingNumber,
			TrackingURL:    pkg.TrackingURL,
			ShipDate:       sh.ShippedAt,
		})
	}

	if len(picks) > 0 {
		op.SalePick = &SubOperation{Endpoint: EndpointSalePick, Body: PickBody{TaskID: taskID, Lines: picks}}
	}
	if len(packs) > 0 {
		op.SalePack = &SubOperation{Endpoint: EndpointSalePack, Body: PackBody{TaskID: taskID, Lines: packs}}
	}
	if len(ships) > 0 {
		op.SaleShip = &SubOperation{Endpoint: EndpointSaleShip, Body: ShipBody{TaskID: taskID, Lines: ships}}
	}
	return op
}

// lotFor sources lot detail for a pack line: existing target-side pick data
// for the SKU wins over the shipment's own lot data; otherwise omitted.
func lotFor(line PackageLine, targetPicks []TargetPick) (batchSN, expiry string) {
	for _, tp := range targetPicks {
		if tp.SKU == line.SKU && tp.LotID != "" {
			return tp.LotID, tp.ExpirationDate
		}
	}
	if line.LotID != "" {
		return line.LotID, line.ExpirationDate
	}
	return "", ""
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
