package ethereum

import (
	"fmt"

	"github.com/feral-file/airdrop-monitor/internal/domain"
)

// outputs holds the unpacked return values of a call or the non-indexed arguments of an event.
// The first type mismatch is kept in err and later reads return zero values.
type outputs struct {
	name   string
	values []interface{}
	err    error
}

// value returns the i-th value asserted to T
func value[T any](o *outputs, i int) T {
	var zero T
	if o.err != nil {
		return zero
	}
	if i >= len(o.values) {
		o.err = fmt.Errorf("%w: %s returned %d values, expected at least %d", domain.ErrDataShape, o.name, len(o.values), i+1)
		return zero
	}
	v, ok := o.values[i].(T)
	if !ok {
		o.err = fmt.Errorf("%w: %s value %d has type %T, expected %T", domain.ErrDataShape, o.name, i, o.values[i], zero)
		return zero
	}
	return v
}
