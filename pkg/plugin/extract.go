package plugin

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Symbols recognised on a loaded module, tried in this order.
const (
	// SymbolRegistry holds the registry mapping directly, or a
	// zero-argument factory producing it.
	SymbolRegistry = "Registry"

	// SymbolGetRegistry is a zero-argument accessor returning the registry
	// mapping.
	SymbolGetRegistry = "GetRegistry"
)

// LoadRegistry loads the named module through loader (DefaultTable when nil),
// discovers its registry and validates it. Every failure returns an *Error
// naming the module; entry-level violations also name the offending key.
// LoadRegistry performs no caching of its own.
func LoadRegistry(loader Loader, module string) (*Registry, error) {
	if loader == nil {
		loader = DefaultTable
	}

	mod, err := loader.Load(module)
	if err != nil {
		var perr *Error
		if errors.As(err, &perr) {
			return nil, err
		}

		return nil, &Error{Module: module, Reason: "cannot load module", Err: err}
	}

	raw, err := discover(mod, module)
	if err != nil {
		return nil, err
	}

	return newRegistry(module, raw)
}

// discover extracts the raw registry mapping from a loaded module using the
// two supported shapes.
func discover(mod Module, module string) (any, error) {
	if sym, ok := mod.Lookup(SymbolRegistry); ok {
		if reflect.ValueOf(sym).Kind() == reflect.Func {
			return invoke(sym, module, SymbolRegistry)
		}

		return sym, nil
	}

	if sym, ok := mod.Lookup(SymbolGetRegistry); ok {
		if reflect.ValueOf(sym).Kind() != reflect.Func {
			return nil, &Error{Module: module, Reason: SymbolGetRegistry + " must be a zero-argument function"}
		}

		return invoke(sym, module, SymbolGetRegistry)
	}

	return nil, &Error{Module: module, Reason: "no " + SymbolRegistry + " mapping or " + SymbolGetRegistry + " accessor"}
}

// invoke calls a zero-argument factory or accessor, turning errors and panics
// into *Error with the original cause preserved.
func invoke(sym any, module, symbol string) (out any, err error) {
	fv := reflect.ValueOf(sym)
	if fv.IsNil() {
		return nil, &Error{Module: module, Reason: symbol + " is a nil function"}
	}

	ft := fv.Type()
	if ft.NumIn() != 0 || ft.IsVariadic() {
		return nil, &Error{Module: module, Reason: symbol + " must take no arguments"}
	}
	if ft.NumOut() == 0 || ft.NumOut() > 2 || (ft.NumOut() == 2 && !ft.Out(1).Implements(errorType)) {
		return nil, &Error{Module: module, Reason: symbol + " must return the registry and an optional error"}
	}

	defer func() {
		if r := recover(); r != nil {
			err = &Error{Module: module, Reason: symbol + " panicked", Err: errors.Errorf("%v", r)}
		}
	}()

	results := fv.Call(nil)
	if ft.NumOut() == 2 && !results[1].IsNil() {
		return nil, &Error{Module: module, Reason: symbol + " failed", Err: results[1].Interface().(error)}
	}

	return results[0].Interface(), nil
}

// newRegistry validates a raw registry value: a string-keyed mapping with
// non-empty keys and adaptable callables for values.
func newRegistry(module string, raw any) (*Registry, error) {
	rv := reflect.ValueOf(raw)
	if raw == nil || rv.Kind() != reflect.Map {
		return nil, &Error{Module: module, Reason: fmt.Sprintf("registry must be a mapping, got %T", raw)}
	}
	if rv.Type().Key().Kind() != reflect.String {
		return nil, &Error{Module: module, Reason: fmt.Sprintf("registry keys must be strings, got %s", rv.Type().Key())}
	}

	funcs := make(map[string]Func, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		name := iter.Key().String()
		if name == "" {
			return nil, &Error{Module: module, Reason: "registry contains an empty plugin name"}
		}

		fn, err := adapt(iter.Value().Interface())
		if err != nil {
			return nil, &Error{Module: module, Key: name, Reason: "value is not invocable", Err: err}
		}
		funcs[name] = fn
	}

	return &Registry{funcs: funcs}, nil
}

// NewRegistry builds a Registry directly from a map of Funcs, for hosts that
// assemble registries in code rather than loading them from a module. Empty
// names are rejected the same way module-sourced registries are.
func NewRegistry(funcs map[string]Func) (*Registry, error) {
	reg := &Registry{funcs: make(map[string]Func, len(funcs))}
	for name, fn := range funcs {
		if name == "" {
			return nil, &Error{Reason: "registry contains an empty plugin name"}
		}
		if fn == nil {
			return nil, &Error{Key: name, Reason: "value is not invocable"}
		}
		reg.funcs[name] = fn
	}

	return reg, nil
}
