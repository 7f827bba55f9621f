package jsonbuild

import (
	"fmt"
	"reflect"
	"sync"
)

// cache memoizes one value per type.
//
// Values are derived outside of any lock, so concurrent misses on the
// same type may derive it more than once. The first value stored
// wins, and derivation must be deterministic for that to be
// harmless.
type cache[V any] struct {
	m sync.Map
}

func (c *cache[V]) Get(t reflect.Type, derive func(reflect.Type) V) V {
	if ent, ok := c.m.Load(t); ok {
		return c.cast(t, ent)
	}
	ent, _ := c.m.LoadOrStore(t, derive(t))
	return c.cast(t, ent)
}

func (c *cache[V]) cast(t reflect.Type, ent any) V {
	if val, ok := ent.(V); ok {
		return val
	}
	panic(fmt.Sprintf("mystery value %v (%T) in cache for %s", ent, ent, t))
}
