package config

import "os"

const (
	// EnvModule is the environment variable that overrides the configured
	// module name.
	EnvModule = "PLUGRIG_MODULE"

	// DefaultModule is used when neither the environment nor the
	// configuration names a module.
	DefaultModule = "plugins"
)

// ResolveModule returns the plugin module name for cfg. Precedence, highest
// first: the EnvModule environment variable if set and non-empty, then the
// configuration's module field if non-empty, then DefaultModule. The
// environment always wins outright; values are never merged.
func ResolveModule(cfg *Config) string {
	return ResolveModuleVar(cfg, EnvModule, DefaultModule)
}

// ResolveModuleVar is ResolveModule with the environment variable and the
// fallback module name chosen by the caller.
func ResolveModuleVar(cfg *Config, envVar, fallback string) string {
	if name := os.Getenv(envVar); name != "" {
		return name
	}
	if cfg != nil && cfg.Module != "" {
		return cfg.Module
	}

	return fallback
}
