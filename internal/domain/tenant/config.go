package tenant

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/stocklink/connector/internal/domain/location"
)

var (
	ErrDuplicateEntityConfig = errors.New("tenant: more than one sync config for an entity")
	ErrInvalidEntity         = errors.New("tenant: invalid entity type")
)

// validate is shared; validator instances cache struct metadata.
var validate = validator.New()

// EntityType identifies which source-system document type a sync config
// governs.
type EntityType string

const (
	EntitySale      EntityType = "sale"
	EntityPurchase  EntityType = "purchase"
	EntityInventory EntityType = "inventory"
	EntityTransfer  EntityType = "transfer"
	EntityProduct   EntityType = "product"
)

// IsValid returns true if the entity type is one of the supported types
func (e EntityType) IsValid() bool {
	switch e {
	case EntitySale, EntityPurchase, EntityInventory, EntityTransfer, EntityProduct:
		return true
	default:
		return false
	}
}

// String returns the string representation of EntityType
func (e EntityType) String() string {
	return string(e)
}

// defaultWebhookTopics names the source-system webhook topics each entity
// subscribes to. Registration itself is the orchestrator's concern; the
// engine only derives the topic names.
var defaultWebhookTopics = map[EntityType][]string{
	EntitySale:      {"sale/authorised", "sale/shipped"},
	EntityPurchase:  {"purchase/authorised", "purchase/received"},
	EntityInventory: {"stock/updated"},
	EntityTransfer:  {"transfer/completed"},
	EntityProduct:   {"product/updated"},
}

// Webhook is one webhook subscription carried by a sync config.
type Webhook struct {
	Topic   string `json:"topic"`
	Address string `json:"address,omitempty"`
}

// SyncConfig is the per-entity sync configuration. QuantityType,
// LocationScope and AutoAcceptThreshold are only meaningful for the
// inventory entity.
type SyncConfig struct {
	Entity              EntityType `json:"entity" validate:"required"`
	Status              string     `json:"status" validate:"omitempty,oneof=enabled disabled"`
	Webhooks            []Webhook  `json:"webhook,omitempty"`
	QuantityType        string     `json:"quantityType,omitempty" validate:"omitempty,oneof=sellable onhand available"`
	LocationScope       string     `json:"locationScope,omitempty" validate:"omitempty,oneof=all mapped"`
	AutoAcceptThreshold float64    `json:"autoAcceptThreshold" validate:"gte=0"`
}

// Enabled reports whether syncing is switched on for this entity. An empty
// status counts as enabled; configs are created enabled by the dashboard.
func (c SyncConfig) Enabled() bool {
	return c.Status == "" || c.Status == "enabled"
}

// Config is the full per-tenant configuration record. It is created and
// edited exclusively by the external configuration UI/API and is a
// read-only input to the engine.
type Config struct {
	TenantID               string             `json:"tenantId,omitempty"`
	SyncConfigs            []SyncConfig       `json:"syncConfig" validate:"dive"`
	LocationMappings       []location.Mapping `json:"locationMapping"`
	NotificationRecipients []string           `json:"notificationRecipient,omitempty" validate:"dive,email"`
	APIKey                 string             `json:"apiKey,omitempty"`
}

// Validate checks field constraints plus the at-most-one-sync-config-per-
// entity invariant.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	seen := make(map[EntityType]struct{}, len(c.SyncConfigs))
	for _, sc := range c.SyncConfigs {
		if !sc.Entity.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidEntity, sc.Entity)
		}
		if _, dup := seen[sc.Entity]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateEntityConfig, sc.Entity)
		}
		seen[sc.Entity] = struct{}{}
	}
	return nil
}

// SyncConfigFor returns the sync config for an entity, if configured.
func (c *Config) SyncConfigFor(entity EntityType) (SyncConfig, bool) {
	for _, sc := range c.SyncConfigs {
		if sc.Entity == entity {
			return sc, true
		}
	}
	return SyncConfig{}, false
}

// WebhookTopics returns the topics an entity's sync config subscribes to,
// falling back to the default topic set when none are declared.
func (c *Config) WebhookTopics(entity EntityType) []string {
	sc, ok := c.SyncConfigFor(entity)
	if ok && len(sc.Webhooks) > 0 {
		topics := make([]string, 0, len(sc.Webhooks))
		for _, w := range sc.Webhooks {
			topics = append(topics, w.Topic)
		}
		return topics
	}
	return defaultWebhookTopics[entity]
}
