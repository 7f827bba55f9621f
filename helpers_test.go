package jsonbuild

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danderson/jsonbuild/wire"
)

// Simple is a struct with no conversion of its own.
type Simple struct {
	A int16
	B bool
}

// Celsius is a named float with a String method. It still converts
// as a number.
type Celsius float64

func (c Celsius) String() string { return "warm" }

// Reading is a Marshaler with a value receiver.
type Reading struct {
	Sensor string
	Value  Celsius
}

func (r Reading) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	return e.Object(func(o *wire.ObjectEncoder) error {
		o.Put("sensor", wire.OptString(r.Sensor))
		return o.Value("value", r.Value)
	})
}

// Counter is a Marshaler with a pointer receiver.
type Counter struct {
	N int
}

func (c *Counter) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	return wire.Object(wire.Field{Key: "n", Value: wire.Int(int64(c.N))}), nil
}

var errBroken = errors.New("broken")

// Broken is a Marshaler that always fails.
type Broken struct{}

func (Broken) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	return wire.Node{}, errBroken
}

// Upper is a map key type that implements encoding.TextMarshaler.
type Upper string

func (u Upper) MarshalText() ([]byte, error) {
	return []byte(strings.ToUpper(string(u))), nil
}

// Tag is a struct TextMarshaler.
type Tag struct {
	Name string
}

func (t Tag) MarshalText() ([]byte, error) {
	if t.Name == "" {
		return nil, errors.New("empty tag")
	}
	return []byte("#" + t.Name), nil
}

// Tree is a recursive type.
type Tree []Tree

// Kelvin is a scalar type that tests register a rule for.
type Kelvin float64

// Opaque is a struct with unexported fields.
type Opaque struct {
	a int
	b string
}

// Level is a named integer with its own conversion.
type Level int

func (l Level) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	if l < 0 {
		return wire.Null(), nil
	}
	return wire.String(fmt.Sprintf("L%d", int(l))), nil
}

// Gadget has a String method on its pointer receiver only.
type Gadget struct {
	N int
}

func (g *Gadget) String() string { return fmt.Sprintf("gadget-%d", g.N) }

// Marker is a named empty struct, distinct from struct{}.
type Marker struct{}
