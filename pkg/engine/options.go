package engine

import "github.com/plugrig/plugrig/pkg/plugin"

// Option configures an Engine.
type Option func(*Engine)

// WithLoader sets the module loader. Defaults to plugin.DefaultTable.
func WithLoader(loader plugin.Loader) Option {
	return func(e *Engine) {
		if loader != nil {
			e.loader = loader
		}
	}
}

// WithSource sets the document source. Defaults to reading from the file
// system.
func WithSource(source Source) Option {
	return func(e *Engine) {
		if source != nil {
			e.source = source
		}
	}
}

// WithEnvVar sets the environment variable consulted for the module override.
// Defaults to config.EnvModule.
func WithEnvVar(name string) Option {
	return func(e *Engine) {
		e.envVar = name
	}
}

// WithDefaultModule sets the module used when neither the environment nor the
// configuration names one. Defaults to config.DefaultModule.
func WithDefaultModule(name string) Option {
	return func(e *Engine) {
		e.defaultModule = name
	}
}

// WithRegistryCacheSize bounds the registry cache. Defaults to
// DefaultRegistryCacheSize.
func WithRegistryCacheSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.cacheSize = size
		}
	}
}
