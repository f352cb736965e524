package fulfillment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	order := Order{
		ID:     "SO-1001",
		Number: "1001",
		Lines: []OrderLine{
			{SKU: "A-1", Quantity: 2},
			{SKU: "B-2", Quantity: 1},
		},
	}

	t.Run("Single fully-shipped shipment is Simple", func(t *testing.T) {
		shipments := []Shipment{{
			ID: "ship-1",
			Packages: []Package{{
				Lines: []PackageLine{
					{SKU: "A-1", Quantity: 2},
					{SKU: "B-2", Quantity: 1},
				},
			}},
		}}
		assert.Equal(t, ClassificationSimple, Classify(order, shipments))
	})

	t.Run("Under-shipped SKU is Advanced", func(t *testing.T) {
		shipments := []Shipment{{
			ID: "ship-1",
			Packages: []Package{{
				Lines: []PackageLine{
					{SKU: "A-1", Quantity: 1},
					{SKU: "B-2", Quantity: 1},
				},
			}},
		}}
		assert.Equal(t, ClassificationAdvanced, Classify(order, shipments))
	})

	t.Run("More than one shipment is Advanced", func(t *testing.T) {
		shipments := []Shipment{
			{ID: "ship-1", Packages: []Package{{Lines: []PackageLine{{SKU: "A-1", Quantity: 2}}}}},
			{ID: "ship-2", Packages: []Package{{Lines: []PackageLine{{SKU: "B-2", Quantity: 1}}}}},
		}
		assert.Equal(t, ClassificationAdvanced, Classify(order, shipments))
	})

	t.Run("No shipments yet is Advanced", func(t *testing.T) {
		assert.Equal(t, ClassificationAdvanced, Classify(order, nil))
	})

	t.Run("Quantities summed across packages", func(t *testing.T) {
		shipments := []Shipment{{
			ID: "ship-1",
			Packages: []Package{
				{Lines: []PackageLine{{SKU: "A-1", Quantity: 1}, {SKU: "B-2", Quantity: 1}}},
				{Lines: []PackageLine{{SKU: "A-1", Quantity: 1}}},
			},
		}}
		assert.Equal(t, ClassificationSimple, Classify(order, shipments))
	})
}
