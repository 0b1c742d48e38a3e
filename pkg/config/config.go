package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is a validated pipeline configuration.
type Config struct {
	// Module is the plugin module named by the document. Optional; module
	// resolution falls back to the environment and DefaultModule (see
	// ResolveModule).
	Module string

	// Steps holds the plugin names to apply, in application order. Never
	// empty after validation; every element is a non-empty string.
	Steps []string
}

// Parse decodes a configuration document and validates it. The document must
// be a YAML or JSON mapping; see Validate for the exact rules.
func Parse(data []byte) (*Config, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Reason: "malformed document", Err: err}
	}

	return Validate(doc)
}

// Validate checks an already-decoded document. The document must be a mapping
// with a "steps" field holding a non-empty sequence of non-empty strings, and
// an optional "module" string. Any violation returns an *Error identifying
// the offending field, index and value. Validate reads no external state.
func Validate(doc any) (*Config, error) {
	mapping, ok := doc.(map[string]any)
	if !ok {
		return nil, &Error{Reason: fmt.Sprintf("document must be a mapping, got %T", doc)}
	}

	cfg := &Config{}

	if raw, ok := mapping["module"]; ok && raw != nil {
		name, ok := raw.(string)
		if !ok {
			return nil, &Error{Reason: fmt.Sprintf(`"module" must be a string, got %T`, raw)}
		}
		cfg.Module = name
	}

	raw, ok := mapping["steps"]
	if !ok {
		return nil, &Error{Reason: `missing "steps" field`}
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, &Error{Reason: fmt.Sprintf(`"steps" must be a sequence, got %T`, raw)}
	}
	if len(list) == 0 {
		return nil, &Error{Reason: `"steps" must not be empty`}
	}

	steps := make([]string, len(list))
	for i, elem := range list {
		name, ok := elem.(string)
		if !ok || name == "" {
			return nil, &Error{Reason: fmt.Sprintf("steps[%d]: must be a non-empty string, got %#v", i, elem)}
		}
		steps[i] = name
	}
	cfg.Steps = steps

	return cfg, nil
}
