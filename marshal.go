package jsonbuild

import (
	"cmp"
	"encoding"
	"encoding/base64"
	"fmt"
	"log"
	"reflect"
	"slices"
	"strconv"

	"github.com/danderson/jsonbuild/wire"
)

// Marshal converts v to a wire document node, using the built-in
// rules and the rules added with [Register].
//
// See the package documentation for the conversion applied to each
// type.
func Marshal(v any) (wire.Node, error) {
	return defaultRegistry.Marshal(v)
}

// Marshaler is the interface implemented by types that can convert
// themselves to a wire node.
//
// Implementations that produce objects should emit the same set of
// keys regardless of the receiver's contents, using null for absent
// values, so that consumers see a stable shape.
//
// MarshalWire may use e to convert nested values, which applies the
// same rules as the enclosing [Marshal] call.
type Marshaler interface {
	MarshalWire(e *wire.Encoder) (wire.Node, error)
}

const debugConverters = false

func debugConverter(msg string, args ...any) {
	if !debugConverters {
		return
	}
	log.Printf(msg, args...)
}

// A converter is the derived conversion for one type.
type converter struct {
	fn wire.ConvertFunc
	// fallback is set when fn is the text fallback.
	fallback bool
}

func (r *Registry) converterFor(t reflect.Type) wire.ConvertFunc {
	return r.lookup(t).fn
}

func (r *Registry) lookup(t reflect.Type) converter {
	return r.converters.Load().Get(t, r.deriveConverter)
}

// convert converts v using the converter for its static type.
func convert(e *wire.Encoder, v reflect.Value) (wire.Node, error) {
	return e.Mapper(v.Type())(e, v)
}

func (r *Registry) deriveConverter(t reflect.Type) converter {
	debugConverter("deriveConverter(%s)", t)
	defer debugConverter("end deriveConverter(%s)", t)

	conv, fallback := r.deriveNonNilConverter(t)
	if !canNil(t) {
		return converter{conv, fallback}
	}
	return converter{
		fn: func(e *wire.Encoder, v reflect.Value) (wire.Node, error) {
			if v.IsNil() {
				return wire.Null(), nil
			}
			return conv(e, v)
		},
		fallback: fallback,
	}
}

// deriveNonNilConverter returns the converter for t, and whether it
// is the text fallback.
func (r *Registry) deriveNonNilConverter(t reflect.Type) (wire.ConvertFunc, bool) {
	switch {
	case t.Kind() == reflect.Pointer, t.Kind() == reflect.Interface:
		return r.newIndirectConverter(t), false
	case t == nodeType:
		return newNodeConverter(), false
	case t.Implements(marshalerType):
		return newMarshalConverter(t), false
	case reflect.PointerTo(t).Implements(marshalerType):
		return newAddrConverter(t, newMarshalConverter(reflect.PointerTo(t))), false
	case scalarKinds.Has(t.Kind()):
		return newScalarConverter(t), false
	case isSet(t):
		return newSetConverter(t), false
	case isSeq(t):
		return newSeqConverter(t), false
	case t.Kind() == reflect.Map:
		return newMapConverter(t), false
	}

	if rule, ok := r.ruleFor(t); ok {
		return newRuleConverter(t, rule), false
	}

	switch {
	case t.Implements(textMarshalerType):
		return newTextConverter(t), false
	case reflect.PointerTo(t).Implements(textMarshalerType):
		return newAddrConverter(t, newTextConverter(reflect.PointerTo(t))), false
	case identifierTypes.Has(t) && t.Implements(stringerType):
		return newStringerConverter(t), false
	case isBytes(t):
		return newBytesConverter(t), false
	case t.Kind() == reflect.Array:
		return newArrayConverter(t), false
	}
	return newFallbackConverter(t), true
}

func newErrConverter(err error) wire.ConvertFunc {
	return func(e *wire.Encoder, v reflect.Value) (wire.Node, error) {
		return wire.Node{}, err
	}
}

// newIndirectConverter returns a converter for pointers and
// interfaces, which converts the value pointed to or held.
//
// Values that end up in the text fallback are formatted through the
// pointer or interface itself, so that pointer receiver String and
// Error methods apply.
func (r *Registry) newIndirectConverter(t reflect.Type) wire.ConvertFunc {
	debugConverter("%s{} (indirect)", t)
	return func(e *wire.Encoder, v reflect.Value) (wire.Node, error) {
		elem := v.Elem()
		if r.lookup(elem.Type()).fallback {
			return formatText(v), nil
		}
		return convert(e, elem)
	}
}

func newNodeConverter() wire.ConvertFunc {
	debugConverter("wire.Node{}")
	return func(e *wire.Encoder, v reflect.Value) (wire.Node, error) {
		return v.Interface().(wire.Node), nil
	}
}

func newScalarConverter(t reflect.Type) wire.ConvertFunc {
	debugConverter("%s{} (scalar)", t)
	switch t.Kind() {
	case reflect.Bool:
		return func(e *wire.Encoder, v reflect.Value) (wire.Node, error) {
			return wire.Bool(v.Bool()), nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(e *wire.Encoder, v reflect.Value) (wire.Node, error) {
			return wire.Int(v.Int()), nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(e *wire.Encoder, v reflect.Value) (wire.Node, error) {
			return wire.Uint(v.Uint()), nil
		}
	case reflect.Float32:
		return func(e *wire.Encoder, v reflect.Value) (wire.Node, error) {
			return wire.Float32(float32(v.Float())), nil
		}
	case reflect.Float64:
		return func(e *wire.Encoder, v reflect.Value) (wire.Node, error) {
			return wire.Float(v.Float()), nil
		}
	case reflect.String:
		return func(e *wire.Encoder, v reflect.Value) (wire.Node, error) {
			return wire.String(v.String()), nil
		}
	default:
		panic("invalid newScalarConverter type")
	}
}

func newSetConverter(t reflect.Type) wire.ConvertFunc {
	debugConverter("set{%s}", t.Key())
	kCmp := valueCmp(t.Key())
	return func(e *wire.Encoder, v reflect.Value) (wire.Node, error) {
		ks := v.MapKeys()
		if kCmp != nil {
			slices.SortFunc(ks, kCmp)
		}
		return e.Array(len(ks), func(i int) (wire.Node, error) {
			return convert(e, ks[i])
		})
	}
}

func newSeqConverter(t reflect.Type) wire.ConvertFunc {
	if t.Kind() == reflect.Func {
		debugConverter("%s{} (range func)", t)
		return func(e *wire.Encoder, v reflect.Value) (wire.Node, error) {
			var elems []wire.Node
			for elem := range v.Seq() {
				n, err := convert(e, elem)
				if err != nil {
					return wire.Node{}, fmt.Errorf("index %d: %w", len(elems), err)
				}
				elems = append(elems, n)
			}
			return wire.Array(elems...), nil
		}
	}

	debugConverter("seq{%s}", t.Elem())
	return func(e *wire.Encoder, v reflect.Value) (wire.Node, error) {
		return e.Array(v.Len(), func(i int) (wire.Node, error) {
			return convert(e, v.Index(i))
		})
	}
}

func newMapConverter(t reflect.Type) wire.ConvertFunc {
	debugConverter("map{%s: %s}", t.Key(), t.Elem())
	keyStr, err := mapKeyFunc(t.Key())
	if err != nil {
		return newErrConverter(wrapConvErr(t, err))
	}

	type entry struct {
		key string
		val reflect.Value
	}
	return func(e *wire.Encoder, v reflect.Value) (wire.Node, error) {
		ents := make([]entry, 0, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			k, err := keyStr(iter.Key())
			if err != nil {
				return wire.Node{}, wrapConvErr(t, err)
			}
			ents = append(ents, entry{k, iter.Value()})
		}
		slices.SortFunc(ents, func(a, b entry) int {
			return cmp.Compare(a.key, b.key)
		})
		for i := 1; i < len(ents); i++ {
			if ents[i].key == ents[i-1].key {
				return wire.Node{}, wrapConvErr(t, fmt.Errorf("distinct keys render to the same object key %q", ents[i].key))
			}
		}
		return e.Object(func(o *wire.ObjectEncoder) error {
			for _, ent := range ents {
				n, err := convert(e, ent.val)
				if err != nil {
					return fmt.Errorf("key %q: %w", ent.key, err)
				}
				o.Put(ent.key, n)
			}
			return nil
		})
	}
}

// mapKeyFunc returns a function that renders map keys of type kt as
// object keys.
func mapKeyFunc(kt reflect.Type) (func(reflect.Value) (string, error), error) {
	switch {
	case kt.Kind() == reflect.Interface:
		return func(k reflect.Value) (string, error) {
			if k.IsNil() {
				return "", fmt.Errorf("nil map key")
			}
			inner, err := mapKeyFunc(k.Elem().Type())
			if err != nil {
				return "", err
			}
			return inner(k.Elem())
		}, nil
	case kt.Implements(textMarshalerType):
		return func(k reflect.Value) (string, error) {
			if kt.Kind() == reflect.Pointer && k.IsNil() {
				return "", fmt.Errorf("nil map key")
			}
			bs, err := k.Interface().(encoding.TextMarshaler).MarshalText()
			if err != nil {
				return "", fmt.Errorf("map key: %w", err)
			}
			return string(bs), nil
		}, nil
	case kt.Kind() == reflect.String:
		return func(k reflect.Value) (string, error) {
			return k.String(), nil
		}, nil
	case intKeyKinds.Has(kt.Kind()):
		switch kt.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return func(k reflect.Value) (string, error) {
				return strconv.FormatInt(k.Int(), 10), nil
			}, nil
		default:
			return func(k reflect.Value) (string, error) {
				return strconv.FormatUint(k.Uint(), 10), nil
			}, nil
		}
	}
	return nil, fmt.Errorf("unsupported map key type %s", kt)
}

func newMarshalConverter(t reflect.Type) wire.ConvertFunc {
	debugConverter("%s{} (Marshaler)", t)
	return func(e *wire.Encoder, v reflect.Value) (wire.Node, error) {
		m := v.Interface().(Marshaler)
		n, err := m.MarshalWire(e)
		if err != nil {
			return wire.Node{}, wrapConvErr(t, err)
		}
		return n, nil
	}
}

// newAddrConverter returns a converter that applies ptrConv to the
// address of values of type t. Unaddressable values are copied to
// obtain an address.
func newAddrConverter(t reflect.Type, ptrConv wire.ConvertFunc) wire.ConvertFunc {
	return func(e *wire.Encoder, v reflect.Value) (wire.Node, error) {
		if v.CanAddr() {
			return ptrConv(e, v.Addr())
		}
		p := reflect.New(t)
		p.Elem().Set(v)
		return ptrConv(e, p)
	}
}

func newRuleConverter(t reflect.Type, rule Rule) wire.ConvertFunc {
	debugConverter("%s{} (rule %q)", t, rule.Name)
	return func(e *wire.Encoder, v reflect.Value) (wire.Node, error) {
		n, err := rule.Convert(e, v)
		if err != nil {
			return wire.Node{}, wrapConvErr(t, fmt.Errorf("rule %q: %w", rule.Name, err))
		}
		return n, nil
	}
}

func newTextConverter(t reflect.Type) wire.ConvertFunc {
	debugConverter("%s{} (identifier)", t)
	return func(e *wire.Encoder, v reflect.Value) (wire.Node, error) {
		bs, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return wire.Node{}, wrapConvErr(t, err)
		}
		return wire.String(string(bs)), nil
	}
}

func newStringerConverter(t reflect.Type) wire.ConvertFunc {
	debugConverter("%s{} (identifier)", t)
	return func(e *wire.Encoder, v reflect.Value) (wire.Node, error) {
		return wire.String(v.Interface().(fmt.Stringer).String()), nil
	}
}

func newBytesConverter(t reflect.Type) wire.ConvertFunc {
	debugConverter("%s{} (bytes)", t)
	return func(e *wire.Encoder, v reflect.Value) (wire.Node, error) {
		return wire.String(base64.StdEncoding.EncodeToString(bytesOf(v))), nil
	}
}

func newArrayConverter(t reflect.Type) wire.ConvertFunc {
	debugConverter("array{%s}", t.Elem())
	return func(e *wire.Encoder, v reflect.Value) (wire.Node, error) {
		return e.Array(v.Len(), func(i int) (wire.Node, error) {
			return convert(e, v.Index(i))
		})
	}
}

func newFallbackConverter(t reflect.Type) wire.ConvertFunc {
	debugConverter("%s{} (fallback)", t)
	return func(e *wire.Encoder, v reflect.Value) (wire.Node, error) {
		return formatText(v), nil
	}
}

// formatText returns v's default text form.
func formatText(v reflect.Value) wire.Node {
	if !v.CanInterface() {
		return wire.String(fmt.Sprint(v))
	}
	return wire.String(fmt.Sprint(v.Interface()))
}
