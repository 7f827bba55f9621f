package wire

import (
	"errors"
	"fmt"
	"reflect"
)

// A ConvertFunc converts val to a Node.
type ConvertFunc func(enc *Encoder, val reflect.Value) (Node, error)

// An Encoder provides utilities to build a Node out of Go values.
type Encoder struct {
	// Mapper provides [ConvertFunc]s for types given to
	// [Encoder.Value]. If Mapper is nil, the Encoder functions
	// normally except that [Encoder.Value] always returns an error.
	Mapper func(reflect.Type) ConvertFunc
}

// Value converts v to a Node, using the [ConvertFunc] provided by
// [Encoder.Mapper]. A nil v converts to null.
func (e *Encoder) Value(v any) (Node, error) {
	if e.Mapper == nil {
		return Node{}, errors.New("Mapper not provided to Encoder")
	}
	if v == nil {
		return Null(), nil
	}
	fn := e.Mapper(reflect.TypeOf(v))
	return fn(e, reflect.ValueOf(v))
}

// Array builds an array node of n elements. The elem function is
// called for each index in order. If elem returns an error, Array
// stops and returns the error with no node.
func (e *Encoder) Array(n int, elem func(i int) (Node, error)) (Node, error) {
	ret := make([]Node, 0, n)
	for i := range n {
		v, err := elem(i)
		if err != nil {
			return Node{}, fmt.Errorf("index %d: %w", i, err)
		}
		ret = append(ret, v)
	}
	return Array(ret...), nil
}

// Object builds an object node.
//
// Object fields must be added within the provided fields function,
// in the order they should appear. If fields returns an error,
// Object returns it with no node.
func (e *Encoder) Object(fields func(o *ObjectEncoder) error) (Node, error) {
	o := ObjectEncoder{enc: e}
	if err := fields(&o); err != nil {
		return Node{}, err
	}
	return Object(o.fields...), nil
}

// An ObjectEncoder accumulates the fields of an object node. See
// [Encoder.Object].
type ObjectEncoder struct {
	enc    *Encoder
	fields []Field
}

// Put adds a field with an already built value.
func (o *ObjectEncoder) Put(key string, v Node) {
	o.fields = append(o.fields, Field{Key: key, Value: v})
}

// Value adds a field whose value is v converted with
// [Encoder.Value].
func (o *ObjectEncoder) Value(key string, v any) error {
	n, err := o.enc.Value(v)
	if err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}
	o.Put(key, n)
	return nil
}
