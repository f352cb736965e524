package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrMappingNotFound  = NewDomainError("MAPPING_NOT_FOUND", "No warehouse mapping configured")
	ErrProductNotFound  = NewDomainError("PRODUCT_NOT_FOUND", "SKU not found in catalog")
	ErrNoLineItems      = NewDomainError("NO_LINE_ITEMS", "order has no line items")
	ErrConfigUnparsable = NewDomainError("CONFIG_UNPARSABLE", "Tenant configuration could not be parsed")
)
