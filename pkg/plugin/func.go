package plugin

import (
	"context"
	"reflect"

	"github.com/pkg/errors"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// adapt narrows an arbitrary registry value to a Func. Common shapes are
// matched directly; anything else must be a non-variadic function of one
// argument (optionally preceded by a context.Context) returning one value and
// an optional error, adapted through reflection.
func adapt(v any) (Func, error) {
	fv := reflect.ValueOf(v)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return nil, errors.Errorf("not a function: %T", v)
	}
	if fv.IsNil() {
		return nil, errors.Errorf("nil function of type %T", v)
	}

	switch fn := v.(type) {
	case Func:
		return fn, nil
	case func(context.Context, any) (any, error):
		return fn, nil
	case func(any) (any, error):
		return func(_ context.Context, in any) (any, error) { return fn(in) }, nil
	case func(any) any:
		return func(_ context.Context, in any) (any, error) { return fn(in), nil }, nil
	}

	ft := fv.Type()
	if ft.IsVariadic() {
		return nil, errors.Errorf("variadic function %s is not a valid plugin", ft)
	}

	wantsContext := ft.NumIn() == 2 && ft.In(0) == contextType
	if ft.NumIn() != 1 && !wantsContext {
		return nil, errors.Errorf("function %s must take exactly one argument", ft)
	}
	if ft.NumOut() == 0 || ft.NumOut() > 2 || (ft.NumOut() == 2 && !ft.Out(1).Implements(errorType)) {
		return nil, errors.Errorf("function %s must return one value and an optional error", ft)
	}

	argType := ft.In(ft.NumIn() - 1)

	return func(ctx context.Context, in any) (any, error) {
		av := reflect.ValueOf(in)
		switch {
		case !av.IsValid():
			if argType.Kind() != reflect.Interface && argType.Kind() != reflect.Ptr &&
				argType.Kind() != reflect.Map && argType.Kind() != reflect.Slice {
				return nil, errors.Errorf("expected %s, got nil", argType)
			}
			av = reflect.Zero(argType)
		case !av.Type().AssignableTo(argType):
			return nil, errors.Errorf("expected %s, got %T", argType, in)
		}

		args := []reflect.Value{av}
		if wantsContext {
			args = []reflect.Value{reflect.ValueOf(ctx), av}
		}

		results := fv.Call(args)
		if ft.NumOut() == 2 && !results[1].IsNil() {
			return nil, results[1].Interface().(error)
		}

		return results[0].Interface(), nil
	}, nil
}
