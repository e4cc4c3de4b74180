package binder

import (
	"fmt"
	"reflect"

	"github.com/wippyai/bbgo/errors"
)

// Value returns output i of values as T. Generated result converters use it.
func Value[T any](values []any, i int) (T, error) {
	var zero T
	if i >= len(values) {
		return zero, errors.New(errors.PhaseDecode, errors.KindOutputSizeMismatch).
			Detail("output %d requested, call returned %d", i, len(values)).
			Build()
	}
	v, ok := values[i].(T)
	if !ok {
		return zero, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path(fmt.Sprintf("out[%d]", i)).
			GoType(reflect.TypeFor[T]().String()).
			Detail("decoded value has type %T", values[i]).
			Build()
	}
	return v, nil
}
