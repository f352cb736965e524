package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stocklink/connector/internal/application/sync"
	"github.com/stocklink/connector/internal/domain/location"
	"github.com/stocklink/connector/internal/domain/shared"
	"github.com/stocklink/connector/internal/domain/tenant"
	"github.com/stocklink/connector/internal/infrastructure/logger"
)

// SyncHandler exposes the mapping and reconciliation engine as
// step-level HTTP operations. Each request is self-contained: it
// carries the tenant configuration alongside the step payload so the
// orchestrator can call any step without server-side session state.
type SyncHandler struct {
	BaseHandler
	service *sync.Service
	log     *zap.Logger
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(service *sync.Service, log *zap.Logger) *SyncHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &SyncHandler{service: service, log: log}
}

// RegisterRoutes registers the sync step routes
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/transform/outbound", h.TransformOutbound)
	rg.POST("/inventory/reconcile", h.ReconcileInventory)
	rg.POST("/fulfillment/plan", h.PlanFulfillment)
	rg.POST("/fulfillment/aggregate", h.AggregateFulfillment)
	rg.POST("/locations/resolve", h.ResolveLocation)
}

type transformOutboundRequest struct {
	Config tenant.Config        `json:"config"`
	Step   sync.OutboundRequest `json:"step" binding:"required"`
}

// TransformOutbound builds one outbound payload from a flat schema and
// a source object
func (h *SyncHandler) TransformOutbound(c *gin.Context) {
	var req transformOutboundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ctx := logger.WithEntity(c.Request.Context(), req.Step.Entity)
	result := h.service.BuildOutbound(ctx, req.Config, req.Step)
	h.Success(c, result)
}

type reconcileRequest struct {
	Config tenant.Config         `json:"config"`
	Step   sync.ReconcileRequest `json:"step" binding:"required"`
}

// ReconcileInventory compares a source inventory snapshot against
// target availability and returns the adjustments to apply
func (h *SyncHandler) ReconcileInventory(c *gin.Context) {
	var req reconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ctx := logger.WithEntity(c.Request.Context(), string(tenant.EntityInventory))
	result := h.service.ReconcileInventory(ctx, req.Config, req.Step)
	h.Success(c, result)
}

type planRequest struct {
	Config tenant.Config    `json:"config"`
	Step   sync.PlanRequest `json:"step" binding:"required"`
}

// PlanFulfillment classifies a shipped order and returns the ordered
// pick/pack/ship operations for the orchestrator to execute
func (h *SyncHandler) PlanFulfillment(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ctx := logger.WithEntity(c.Request.Context(), string(tenant.EntitySale))
	result := h.service.PlanFulfillment(ctx, req.Config, req.Step)
	h.Success(c, result)
}

// AggregateFulfillment combines executed sub-operation results into a
// single sync outcome
func (h *SyncHandler) AggregateFulfillment(c *gin.Context) {
	var req sync.AggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	h.Success(c, h.service.AggregateResults(req))
}

type resolveLocationRequest struct {
	Mappings              []location.Mapping `json:"mappings"`
	Serialized            string             `json:"serialized,omitempty"`
	ByName                string             `json:"byName,omitempty"`
	ByTargetID            string             `json:"byTargetId,omitempty"`
	PreferredConnectionID string             `json:"preferredConnectionId,omitempty"`
}

// ResolveLocation resolves a warehouse name or target location ID
// against the configured location mappings
func (h *SyncHandler) ResolveLocation(c *gin.Context) {
	var req resolveLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	mappings := req.Mappings
	if req.Serialized != "" {
		parsed, err := location.SerializedSource(req.Serialized).Mappings()
		if err != nil {
			h.HandleError(c, shared.ErrConfigUnparsable)
			return
		}
		mappings = parsed
	}

	resolution, ok := location.Resolve(mappings, location.Query{
		ByName:                req.ByName,
		ByTargetID:            req.ByTargetID,
		PreferredConnectionID: req.PreferredConnectionID,
	})
	if !ok {
		h.HandleError(c, shared.ErrMappingNotFound)
		return
	}
	h.Success(c, resolution)
}
