package jsonbuild

import (
	"encoding"
	"net"
	"reflect"

	"github.com/creachadair/mds/mapset"
	"github.com/danderson/jsonbuild/wire"
)

var (
	nodeType          = reflect.TypeFor[wire.Node]()
	marshalerType     = reflect.TypeFor[Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	stringerType      = reflect.TypeFor[interface{ String() string }]()
	emptyStructType   = reflect.TypeFor[struct{}]()

	// scalarKinds is the set of reflect.Kinds that convert directly
	// to a scalar node.
	scalarKinds = mapset.New(
		reflect.Bool,
		reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64,
		reflect.Uint,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32,
		reflect.Uint64,
		reflect.Uintptr,
		reflect.Float32,
		reflect.Float64,
		reflect.String,
	)

	// intKeyKinds is the set of reflect.Kinds of map keys that
	// convert to their decimal form.
	intKeyKinds = mapset.New(
		reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64,
		reflect.Uint,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32,
		reflect.Uint64,
		reflect.Uintptr,
	)

	// identifierTypes are types whose String method produces their
	// canonical text form, but which do not implement
	// encoding.TextMarshaler.
	identifierTypes = mapset.New(
		reflect.TypeFor[net.HardwareAddr](),
	)
)
