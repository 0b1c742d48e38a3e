package plugin

import "sync"

// Module is a loaded code unit. Lookup mirrors the standard library
// plugin.Plugin contract: it resolves an exported symbol by name.
type Module interface {
	Lookup(symbol string) (any, bool)
}

// Loader resolves a module name to a loaded code unit. Loading may run
// arbitrary initialisation logic belonging to the module; that is expected
// and outside this package's control.
type Loader interface {
	Load(name string) (Module, error)
}

// SymbolMap is a Module backed by a plain symbol table.
type SymbolMap map[string]any

// Lookup implements Module.
func (m SymbolMap) Lookup(symbol string) (any, bool) {
	v, ok := m[symbol]

	return v, ok
}

// Table is a Loader backed by explicit registration. It is the portable
// default for targets without runtime code loading: modules register
// themselves (typically from init) and are then resolvable by name. Safe for
// concurrent use.
type Table struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// NewTable returns an empty module table.
func NewTable() *Table {
	return &Table{modules: make(map[string]Module)}
}

// Register adds a module under the given name. Overwrites any existing
// registration.
func (t *Table) Register(name string, mod Module) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.modules == nil {
		t.modules = make(map[string]Module)
	}
	t.modules[name] = mod
}

// RegisterSymbols registers a module built from a symbol table.
func (t *Table) RegisterSymbols(name string, symbols map[string]any) {
	t.Register(name, SymbolMap(symbols))
}

// Load implements Loader.
func (t *Table) Load(name string) (Module, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	mod, ok := t.modules[name]
	if !ok {
		return nil, &Error{Module: name, Reason: "module not found"}
	}

	return mod, nil
}

// DefaultTable is the process-wide module table used when no Loader is
// supplied.
var DefaultTable = NewTable()

// Register adds a module to DefaultTable.
func Register(name string, mod Module) { DefaultTable.Register(name, mod) }

// RegisterSymbols adds a symbol-table module to DefaultTable.
func RegisterSymbols(name string, symbols map[string]any) { DefaultTable.RegisterSymbols(name, symbols) }
