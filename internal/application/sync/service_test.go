package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocklink/connector/internal/domain/fulfillment"
	"github.com/stocklink/connector/internal/domain/inventory"
	"github.com/stocklink/connector/internal/domain/location"
	"github.com/stocklink/connector/internal/domain/schema"
	"github.com/stocklink/connector/internal/domain/tenant"
)

// ---------------------------------------------------------------------------
// Stub collaborators
// ---------------------------------------------------------------------------

type stubCatalog struct {
	products map[string]inventory.Product
	err      error
}

func (s *stubCatalog) Product(_ context.Context, sku string) (inventory.Product, bool, error) {
	if s.err != nil {
		return inventory.Product{}, false, s.err
	}
	p, ok := s.products[sku]
	return p, ok, nil
}

type stubAvailability struct {
	rows []inventory.AvailabilityRow
	err  error
}

func (s *stubAvailability) Availability(_ context.Context, _ string) ([]inventory.AvailabilityRow, error) {
	return s.rows, s.err
}

func testTenantConfig() tenant.Config {
	return tenant.Config{
		SyncConfigs: []tenant.SyncConfig{
			{Entity: tenant.EntityInventory, QuantityType: "onhand", LocationScope: "all", AutoAcceptThreshold: 2},
		},
		LocationMappings: []location.Mapping{{
			ConnectionID: "conn-1",
			Warehouses: []location.Warehouse{
				{SourceWarehouseID: "W1", SourceWarehouseName: "Main", TargetLocationID: "loc-100"},
			},
			SubstitutionLists: []location.SubstitutionList{
				{ListName: "countries", Mapping: map[string]string{"United States": "US"}},
			},
		}},
	}
}

func newTestService(catalog *stubCatalog, availability *stubAvailability) *Service {
	if catalog == nil {
		catalog = &stubCatalog{}
	}
	if availability == nil {
		availability = &stubAvailability{}
	}
	return NewService(nil, catalog, availability)
}

// ---------------------------------------------------------------------------
// BuildOutbound
// ---------------------------------------------------------------------------

func TestService_BuildOutbound(t *testing.T) {
	svc := newTestService(nil, nil)
	ctx := context.Background()

	t.Run("Full pipeline: resolve, substitute, override, project", func(t *testing.T) {
		req := OutboundRequest{
			Entity:       "sale",
			LocationName: "Main",
			Schema: map[string]any{
				"customer":        "string",
				"address.country": "string",
				"channel":         "string",
			},
			Source: map[string]any{
				"customer": "ACME",
				"address":  map[string]any{"country": "United States"},
			},
			Upstream:      map[string]any{"Order": map[string]any{"Channel": "WEB"}},
			Overrides:     schema.EntityOverrides{Entity: "sale", Rules: []schema.OverrideRule{{SourcePath: "Order.Channel", TargetKey: "channel", Transform: schema.TransformLowercase}}},
			Substitutions: []FieldSubstitution{{Field: "address.country", ListName: "countries"}},
		}

		out := svc.BuildOutbound(ctx, testTenantConfig(), req)
		require.Empty(t, out.Error)
		require.NotNil(t, out.Resolution)
		assert.Equal(t, "conn-1", out.Resolution.ConnectionID)
		assert.Equal(t, "loc-100", out.Resolution.MappedWarehouse)

		assert.Equal(t, "ACME", out.Payload["customer"])
		assert.Equal(t, "web", out.Payload["channel"])
		addr := out.Payload["address"].(map[string]any)
		assert.Equal(t, "US", addr["country"])
	})

	t.Run("Missing mapping degrades, projection still runs", func(t *testing.T) {
		req := OutboundRequest{
			Entity:       "sale",
			LocationName: "Nowhere",
			Schema:       map[string]any{"customer": "string"},
			Source:       map[string]any{"customer": "ACME"},
		}
		out := svc.BuildOutbound(ctx, testTenantConfig(), req)
		assert.Nil(t, out.Resolution)
		assert.Equal(t, "ACME", out.Payload["customer"])
	})

	t.Run("Unchanged record is skipped", func(t *testing.T) {
		source := map[string]any{"customer": "ACME"}
		req := OutboundRequest{
			Entity:   "sale",
			Schema:   map[string]any{"customer": "string"},
			Source:   source,
			Previous: map[string]any{"customer": "ACME"},
		}
		out := svc.BuildOutbound(ctx, testTenantConfig(), req)
		assert.True(t, out.Skipped)
		assert.Nil(t, out.Payload)
	})
}

// ---------------------------------------------------------------------------
// ReconcileInventory
// ---------------------------------------------------------------------------

func TestService_ReconcileInventory(t *testing.T) {
	ctx := context.Background()
	catalog := &stubCatalog{products: map[string]inventory.Product{
		"WIDGET-1": {SKU: "WIDGET-1", CostingMethod: inventory.CostingFIFO, UnitCost: 3},
	}}

	t.Run("Happy path", func(t *testing.T) {
		availability := &stubAvailability{rows: []inventory.AvailabilityRow{
			{SKU: "WIDGET-1", Location: "loc-100", OnHand: 9},
		}}
		svc := newTestService(catalog, availability)

		res := svc.ReconcileInventory(ctx, testTenantConfig(), ReconcileRequest{
			SKU:      "WIDGET-1",
			Snapshot: inventory.Snapshot{SKU: "WIDGET-1", Totals: map[string]float64{"onhand": 10}},
		})
		require.Empty(t, res.Error)
		require.Len(t, res.Adjustments, 1)
		assert.Equal(t, "loc-100", res.Adjustments[0].LocationName)
		assert.True(t, res.ShouldAutoApprove) // diff 1 within threshold 2
		assert.True(t, res.AdjustmentNeeded)
	})

	t.Run("Inline product and availability bypass the providers", func(t *testing.T) {
		svc := NewService(nil, nil, nil)
		res := svc.ReconcileInventory(ctx, testTenantConfig(), ReconcileRequest{
			SKU:      "WIDGET-1",
			Snapshot: inventory.Snapshot{SKU: "WIDGET-1", Totals: map[string]float64{"onhand": 10}},
			Product:  &inventory.Product{SKU: "WIDGET-1", CostingMethod: inventory.CostingFIFO, UnitCost: 3},
			Availability: []inventory.AvailabilityRow{
				{SKU: "WIDGET-1", Location: "loc-100", OnHand: 9},
			},
		})
		require.Empty(t, res.Error)
		require.Len(t, res.Adjustments, 1)
		assert.True(t, res.AdjustmentNeeded)
	})

	t.Run("Unknown SKU surfaces an error result, not a fault", func(t *testing.T) {
		svc := newTestService(catalog, nil)
		res := svc.ReconcileInventory(ctx, testTenantConfig(), ReconcileRequest{SKU: "GONE-1"})
		assert.Contains(t, res.Error, "SKU not found in catalog: GONE-1")
	})

	t.Run("Availability failure reconciles without comparison", func(t *testing.T) {
		svc := newTestService(catalog, &stubAvailability{err: errors.New("target unreachable")})
		res := svc.ReconcileInventory(ctx, testTenantConfig(), ReconcileRequest{
			SKU:      "WIDGET-1",
			Snapshot: inventory.Snapshot{SKU: "WIDGET-1", Totals: map[string]float64{"onhand": 5}},
		})
		require.Empty(t, res.Error)
		assert.True(t, res.AdjustmentNeeded)
	})

	t.Run("False baseline is never promoted", func(t *testing.T) {
		availability := &stubAvailability{rows: []inventory.AvailabilityRow{
			{SKU: "WIDGET-1", Location: "loc-100", OnHand: 10},
		}}
		svc := newTestService(catalog, availability)
		falseBaseline := false
		res := svc.ReconcileInventory(ctx, testTenantConfig(), ReconcileRequest{
			SKU:                    "WIDGET-1",
			Snapshot:               inventory.Snapshot{SKU: "WIDGET-1", Totals: map[string]float64{"onhand": 10}},
			FinalShouldAutoApprove: &falseBaseline,
		})
		assert.False(t, res.ShouldAutoApprove)
	})
}

// ---------------------------------------------------------------------------
// PlanFulfillment & AggregateResults
// ---------------------------------------------------------------------------

func TestService_PlanFulfillment(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(nil, nil)

	t.Run("Simple order with one full shipment", func(t *testing.T) {
		req := PlanRequest{
			Order: fulfillment.Order{
				ID: "SO-1", Number: "1", TaskID: "task-1",
				Lines: []fulfillment.OrderLine{{SKU: "A-1", Quantity: 1}},
			},
			Shipments: []fulfillment.Shipment{{
				ID:       "ship-1",
				Packages: []fulfillment.Package{{Lines: []fulfillment.PackageLine{{SKU: "A-1", Quantity: 1}}}},
			}},
		}
		res := svc.PlanFulfillment(ctx, testTenantConfig(), req)
		require.Empty(t, res.Error)
		assert.Equal(t, fulfillment.ClassificationSimple, res.Classification)
		require.Len(t, res.Operations, 1)
		assert.Equal(t, "task-1", res.Operations[0].SalePick.Body.(fulfillment.PickBody).TaskID)
	})

	t.Run("Order without line items is an error result", func(t *testing.T) {
		res := svc.PlanFulfillment(ctx, testTenantConfig(), PlanRequest{Order: fulfillment.Order{ID: "SO-2"}})
		assert.Equal(t, "order has no line items", res.Error)
		assert.Empty(t, res.Operations)
	})
}

func TestService_AggregateResults(t *testing.T) {
	svc := newTestService(nil, nil)
	out := svc.AggregateResults(AggregateRequest{
		Pick:    &fulfillment.StepResult{StatusCode: 200},
		Cin7ID:  "SO-1",
		Cin7Key: "key-1",
	})
	assert.Equal(t, "Success", out.SyncStatus)
	assert.Equal(t, "SO-1", out.Cin7ID)
}
