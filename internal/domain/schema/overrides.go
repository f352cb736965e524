package schema

import "strings"

// Transform names the value transforms an override rule may request.
// Unknown transform names pass the value through unchanged.
type Transform string

const (
	// TransformIdentity leaves the value untouched.
	TransformIdentity Transform = ""
	// TransformUppercase upper-cases string values.
	TransformUppercase Transform = "uppercase"
	// TransformLowercase lower-cases string values.
	TransformLowercase Transform = "lowercase"
)

// OverrideRule maps one upstream source path onto a target key of the
// working source-data object.
type OverrideRule struct {
	SourcePath string    `json:"sourcePath"`
	TargetKey  string    `json:"targetKey"`
	Transform  Transform `json:"transform,omitempty"`
}

// EntityOverrides is a tenant-supplied override set scoped to one declared
// entity type.
type EntityOverrides struct {
	Entity string         `json:"entity"`
	Rules  []OverrideRule `json:"mapping"`
}

// ApplyOverrides applies the override rules on top of default field
// derivation and returns the augmented working object. Overrides only apply
// when the declared entity matches the entity being processed; each rule
// reads the raw upstream record at its source path, applies its transform,
// and — only when the value exists upstream — writes it at the target key,
// overwriting any default derivation. Last write wins.
func ApplyOverrides(working map[string]any, cfg EntityOverrides, entity string, upstream map[string]any) map[string]any {
	if working == nil {
		working = make(map[string]any)
	}
	if cfg.Entity == "" || cfg.Entity != entity {
		return working
	}

	for _, rule := range cfg.Rules {
		if rule.SourcePath == "" || rule.TargetKey == "" {
			continue
		}
		v, ok := Lookup(upstream, rule.SourcePath)
		if !ok {
			continue
		}
		Set(working, rule.TargetKey, applyTransform(rule.Transform, v))
	}
	return working
}

func applyTransform(t Transform, v any) any {
	s, isString := v.(string)
	if !isString {
		return v
	}
	switch t {
	case TransformUppercase:
		return strings.ToUpper(s)
	case TransformLowercase:
		return strings.ToLower(s)
	default:
		return v
	}
}
