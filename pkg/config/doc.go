// Package config parses and validates pipeline configuration documents and
// resolves which plugin module a configuration refers to.
//
// A configuration document is a small mapping with two relevant fields:
//
//	module: plugins            # optional, name of the plugin module to load
//	steps: [strip, upper]      # required, ordered plugin names to apply
//
// Documents are parsed as YAML, which also accepts JSON objects. Validation
// narrows the document down to a Config with a non-empty list of non-empty
// step names; anything else is rejected with an *Error that names the
// offending field, index and value.
package config
