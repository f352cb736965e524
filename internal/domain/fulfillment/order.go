package fulfillment

// Classification of how an order fulfills: in one shipment or across
// multiple partial fulfillments.
type Classification string

const (
	// ClassificationSimple is a single-shipment, fully-shipped order.
	ClassificationSimple Classification = "Simple"
	// ClassificationAdvanced is a multi-shipment or partially-fulfilled
	// order; more shipments are expected later.
	ClassificationAdvanced Classification = "Advanced"
)

// String returns the string representation of Classification
func (c Classification) String() string {
	return string(c)
}

// OrderLine is one ordered SKU quantity.
type OrderLine struct {
	SKU      string  `json:"sku"`
	Quantity float64 `json:"quantity"`
}

// Order is the source-side sale document a fulfillment event belongs to.
type Order struct {
	ID            string      `json:"id"`
	Number        string      `json:"number"`
	TaskID        string      `json:"taskId,omitempty"`
	WarehouseName string      `json:"warehouseName,omitempty"`
	Lines         []OrderLine `json:"line_items"`
}

// PackageLine is one SKU quantity inside a package, optionally with lot
// detail.
type PackageLine struct {
	SKU            string  `json:"sku"`
	Quantity       float64 `json:"quantity"`
	LotID          string  `json:"lot_id,omitempty"`
	ExpirationDate string  `json:"expiration_date,omitempty"`
}

// Package is one physical box of a shipment.
type Package struct {
	Name           string        `json:"name,omitempty"`
	Carrier        string        `json:"carrier,omitempty"`
	TrackingNumber string        `json:"tracking_number,omitempty"`
	TrackingURL    string        `json:"tracking_url,omitempty"`
	Lines          []PackageLine `json:"line_items"`
}

// Shipment is one target-side fulfillment record for an order.
type Shipment struct {
	ID         string    `json:"id"`
	LocationID string    `json:"locationId,omitempty"`
	ShippedAt  string    `json:"shippedAt,omitempty"`
	Packages   []Package `json:"packages"`
}

// Classify determines whether an order is a Simple or Advanced sale.
// Advanced when more than one shipment exists, or when any SKU's total
// shipped quantity across all packages falls short of its ordered quantity.
func Classify(order Order, shipments []Shipment) Classification {
	if len(shipments) > 1 {
		return ClassificationAdvanced
	}

	shipped := make(map[string]float64)
	for _, sh := range shipments {
		for _, pkg := range sh.Packages {
			for _, line := range pkg.Lines {
				shipped[line.SKU] += line.Quantity
			}
		}
	}

	ordered := make(map[string]float64)
	for _, line := range order.Lines {
		ordered[line.SKU] += line.Quantity
	}
	for sku, qty := range ordered {
		if shipped[sku] < qty {
			return ClassificationAdvanced
		}
	}
	return ClassificationSimple
}
