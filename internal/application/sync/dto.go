package sync

import (
	"github.com/stocklink/connector/internal/domain/fulfillment"
	"github.com/stocklink/connector/internal/domain/inventory"
	"github.com/stocklink/connector/internal/domain/location"
	"github.com/stocklink/connector/internal/domain/schema"
)

// FieldSubstitution requests a substitution-list lookup for one field of
// the working source object.
type FieldSubstitution struct {
	Field    string `json:"field"`
	ListName string `json:"listName"`
}

// OutboundRequest is the envelope for building one outbound payload.
type OutboundRequest struct {
	Entity        string                 `json:"entity" binding:"required"`
	LocationName  string                 `json:"locationName,omitempty"`
	ConnectionID  string                 `json:"connectionId,omitempty"`
	Schema        map[string]any         `json:"schema" binding:"required"`
	Source        map[string]any         `json:"source"`
	Upstream      map[string]any         `json:"upstream,omitempty"`
	Previous      map[string]any         `json:"previous,omitempty"`
	Overrides     schema.EntityOverrides `json:"overrides,omitempty"`
	Substitutions []FieldSubstitution    `json:"substitutions,omitempty"`
}

// OutboundResult carries the projected payload or an explanatory error.
// Data-integrity gaps are result fields, not raised faults: the
// orchestration layer does not reliably propagate exceptions across step
// boundaries.
type OutboundResult struct {
	Payload    map[string]any       `json:"payload,omitempty"`
	Resolution *location.Resolution `json:"resolution,omitempty"`
	Skipped    bool                 `json:"skipped,omitempty"`
	Message    string               `json:"message,omitempty"`
	Error      string               `json:"error,omitempty"`
}

// ReconcileRequest is the envelope for one inventory reconciliation pass.
// Product and Availability may be supplied inline by the orchestrator;
// when absent the service falls back to its configured lookup providers.
type ReconcileRequest struct {
	SKU                    string                      `json:"sku" binding:"required"`
	ConnectionID           string                      `json:"connectionId,omitempty"`
	Snapshot               inventory.Snapshot          `json:"snapshot"`
	Product                *inventory.Product          `json:"product,omitempty"`
	Availability           []inventory.AvailabilityRow `json:"availability,omitempty"`
	FinalShouldAutoApprove *bool                       `json:"finalShouldAutoApprove,omitempty"`
}

// ReconcileResult wraps the engine result with the explicit error field.
type ReconcileResult struct {
	inventory.Result
	Error string `json:"error,omitempty"`
}

// PlanRequest is the envelope for fulfillment planning.
type PlanRequest struct {
	Order       fulfillment.Order        `json:"order"`
	Shipments   []fulfillment.Shipment   `json:"shipments"`
	TargetPicks []fulfillment.TargetPick `json:"targetPicks,omitempty"`
}

// PlanResult is the classification plus the ordered operations for the
// orchestrator to execute serially.
type PlanResult struct {
	Classification fulfillment.Classification `json:"classification"`
	Operations     []fulfillment.Operation    `json:"operations"`
	Error          string                     `json:"error,omitempty"`
}

// AggregateRequest is the envelope for combining executed sub-operation
// results.
type AggregateRequest struct {
	Pick               *fulfillment.StepResult `json:"pick,omitempty"`
	Pack               *fulfillment.StepResult `json:"pack,omitempty"`
	Ship               *fulfillment.StepResult `json:"ship,omitempty"`
	Cin7ID             string                  `json:"cin7Id,omitempty"`
	Cin7Key            string                  `json:"cin7Key,omitempty"`
	ParentReferenceKey string                  `json:"parentReferenceKey,omitempty"`
}
