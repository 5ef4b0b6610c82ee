package resource

import (
	"context"
	"fmt"
	"reflect"

	"github.com/xy-planning-network/switchback"
)

// A DataMap stores scoped values keyed by their types, the store behind
// [Resource.Data] and the application-level data middleware. Handlers
// read it back with [Data].
//
// Write before serving traffic, read freely after.
type DataMap map[reflect.Type]any

// Insert stores v keyed by its dynamic type. The last value inserted
// for a type wins. A nil v is ignored.
func (dm DataMap) Insert(v any) {
	if v == nil {
		return
	}

	dm[reflect.TypeOf(v)] = v
}

type dataCtxKey struct{}

// A dataNode links one scope's DataMap with the enclosing scope's,
// innermost first.
type dataNode struct {
	dm   DataMap
	next *dataNode
}

// Link makes dm the innermost data scope of ctx. Lookups through [Data]
// consult dm first and fall through to whatever scopes ctx already had.
func (dm DataMap) Link(ctx context.Context) context.Context {
	outer, _ := ctx.Value(dataCtxKey{}).(*dataNode)
	return context.WithValue(ctx, dataCtxKey{}, &dataNode{dm: dm, next: outer})
}

// Data retrieves the innermost value of type T in scope for ctx.
//
// T must be the concrete type the value was stored with; Data does not
// search for implementations of interface types. When no scope holds a
// T, Data returns an error wrapping [switchback.ErrMissingData].
func Data[T any](ctx context.Context) (T, error) {
	want := reflect.TypeOf((*T)(nil)).Elem()
	node, _ := ctx.Value(dataCtxKey{}).(*dataNode)
	for ; node != nil; node = node.next {
		if v, ok := node.dm[want]; ok {
			return v.(T), nil
		}
	}

	var zero T
	return zero, fmt.Errorf("%w: no %s in scope", switchback.ErrMissingData, want)
}
