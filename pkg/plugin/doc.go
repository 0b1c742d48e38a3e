// Package plugin resolves named plugin modules into validated registries of
// single-argument callables.
//
// A plugin module is an independently loadable code unit exposing either a
// symbol named Registry (a string-keyed mapping of callables, or a
// zero-argument factory producing one) or a symbol named GetRegistry (a
// zero-argument accessor returning such a mapping). LoadRegistry performs the
// discovery and validates the result into a Registry; every failure is an
// *Error naming the module and, where relevant, the offending key.
//
// Loading is abstracted behind the Loader interface. The default Loader is a
// process-wide Table populated by explicit Register calls, typically from a
// module's init function; hosts on platforms with runtime code loading can
// back Loader with the standard library plugin package or an embedded
// interpreter instead.
package plugin
