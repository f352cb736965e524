package sync

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/stocklink/connector/internal/domain/fulfillment"
	"github.com/stocklink/connector/internal/domain/inventory"
	"github.com/stocklink/connector/internal/domain/location"
	"github.com/stocklink/connector/internal/domain/schema"
	"github.com/stocklink/connector/internal/domain/shared"
	"github.com/stocklink/connector/internal/domain/tenant"
)

// Service sequences the engine's pure transformations for the
// orchestrator: resolve location → substitutions → overrides → projection
// for outbound payloads, plus the reconciliation and fulfillment entry
// points. The service holds no state across calls; re-invoking any method
// with identical inputs produces identical output.
type Service struct {
	log          *zap.Logger
	catalog      CatalogLookup
	availability AvailabilityProvider
}

// NewService creates a sync Service.
func NewService(log *zap.Logger, catalog CatalogLookup, availability AvailabilityProvider) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		log:          log,
		catalog:      catalog,
		availability: availability,
	}
}

// BuildOutbound produces the outbound payload for one entity record.
func (s *Service) BuildOutbound(ctx context.Context, cfg tenant.Config, req OutboundRequest) OutboundResult {
	if req.Previous != nil {
		if changed := shared.ChangedPaths(req.Previous, req.Source); len(changed) == 0 {
			return OutboundResult{Skipped: true, Message: "no changed fields; nothing to sync"}
		}
	}

	working := req.Source
	if working == nil {
		working = make(map[string]any)
	}

	var resolution *location.Resolution
	res, found := location.Resolve(cfg.LocationMappings, location.Query{
		ByName:                req.LocationName,
		PreferredConnectionID: req.ConnectionID,
	})
	if found {
		resolution = &res
		working = s.applySubstitutions(cfg, res.ConnectionID, req.Substitutions, working)
	} else {
		s.log.Debug("no warehouse mapping matched",
			zap.String("entity", req.Entity),
			zap.String("location", req.LocationName),
		)
	}

	working = schema.ApplyOverrides(working, req.Overrides, req.Entity, req.Upstream)

	tree := schema.NewBuilder().Build(req.Schema)
	payload := schema.Project(tree, working)

	return OutboundResult{Payload: payload, Resolution: resolution}
}

func (s *Service) applySubstitutions(cfg tenant.Config, connectionID string, subs []FieldSubstitution, working map[string]any) map[string]any {
	if len(subs) == 0 {
		return working
	}
	var lists []location.SubstitutionList
	for _, m := range cfg.LocationMappings {
		if m.ConnectionID == connectionID {
			lists = m.SubstitutionLists
			break
		}
	}
	for _, sub := range subs {
		v, ok := schema.Lookup(working, sub.Field)
		if !ok {
			continue
		}
		str, isString := v.(string)
		if !isString {
			continue
		}
		schema.Set(working, sub.Field, location.Substitute(lists, sub.ListName, str))
	}
	return working
}

// ReconcileInventory runs one reconciliation pass for a SKU against the
// tenant's inventory sync configuration.
func (s *Service) ReconcileInventory(ctx context.Context, cfg tenant.Config, req ReconcileRequest) ReconcileResult {
	sc, _ := cfg.SyncConfigFor(tenant.EntityInventory)

	warehouses := s.connectionWarehouses(cfg, req.ConnectionID)
	settings := inventory.Settings{
		QuantityType:        inventory.QuantityType(sc.QuantityType),
		LocationScope:       inventory.LocationScope(sc.LocationScope),
		AutoAcceptThreshold: sc.AutoAcceptThreshold,
		Warehouses:          warehouses,
	}

	var product inventory.Product
	ok := false
	if req.Product != nil {
		product, ok = *req.Product, true
	} else if s.catalog != nil {
		var err error
		product, ok, err = s.catalog.Product(ctx, req.SKU)
		if err != nil {
			return ReconcileResult{Error: fmt.Sprintf("catalog lookup failed: %v", err)}
		}
	}
	if !ok {
		return ReconcileResult{Error: fmt.Sprintf("%s: %s", shared.ErrProductNotFound.Message, req.SKU)}
	}

	rows := req.Availability
	if rows == nil && s.availability != nil {
		var err error
		rows, err = s.availability.Availability(ctx, req.SKU)
		if err != nil {
			// Availability is advisory; absence of data is a documented,
			// non-exceptional case.
			s.log.Warn("availability lookup failed; reconciling without comparison",
				zap.String("sku", req.SKU), zap.Error(err))
			rows = nil
		}
	}

	finalApprove := true
	if req.FinalShouldAutoApprove != nil {
		finalApprove = *req.FinalShouldAutoApprove
	}

	result := inventory.Reconcile(settings, req.Snapshot, product, rows, finalApprove)
	s.log.Info("inventory reconciled",
		zap.String("sku", req.SKU),
		zap.Int("adjustments", len(result.Adjustments)),
		zap.Bool("autoApprove", result.ShouldAutoApprove),
		zap.Bool("adjustmentNeeded", result.AdjustmentNeeded),
	)
	return ReconcileResult{Result: result}
}

// connectionWarehouses returns the warehouses of the requested connection,
// defaulting to the first configured connection.
func (s *Service) connectionWarehouses(cfg tenant.Config, connectionID string) []location.Warehouse {
	for _, m := range cfg.LocationMappings {
		if connectionID == "" || m.ConnectionID == connectionID {
			return m.Warehouses
		}
	}
	return nil
}

// PlanFulfillment classifies an order and derives its ordered pick → pack →
// ship operations. The engine only fixes the order; executing the steps
// serially is the orchestrator's obligation.
func (s *Service) PlanFulfillment(ctx context.Context, cfg tenant.Config, req PlanRequest) PlanResult {
	if len(req.Order.Lines) == 0 {
		return PlanResult{Operations: []fulfillment.Operation{}, Error: shared.ErrNoLineItems.Message}
	}

	class := fulfillment.Classify(req.Order, req.Shipments)
	ops := fulfillment.BuildOperations(req.Order, req.Shipments, class, cfg.LocationMappings, req.TargetPicks)

	s.log.Info("fulfillment planned",
		zap.String("order", req.Order.ID),
		zap.String("classification", class.String()),
		zap.Int("operations", len(ops)),
	)
	return PlanResult{Classification: class, Operations: ops}
}

// AggregateResults combines executed sub-operation results into one
// SyncOutcome.
func (s *Service) AggregateResults(req AggregateRequest) fulfillment.SyncOutcome {
	return fulfillment.Aggregate(req.Pick, req.Pack, req.Ship, req.Cin7ID, req.Cin7Key, req.ParentReferenceKey)
}
