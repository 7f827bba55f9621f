// Package jsonbuild converts arbitrary Go values into wire document
// nodes, for transmission as the result of an RPC.
//
// [Marshal] traverses a value recursively and returns a [wire.Node].
// The conversion applied to a value is decided by its dynamic type,
// checking the following categories in order. The first match wins.
//
// Untyped nil, and nil pointers, interfaces, maps, slices and
// functions convert to null. Other pointers convert as the value
// pointed to, and interfaces as the value they hold. A nil slice or
// map is absent rather than empty: only a non-nil empty slice
// converts to an empty array, and only a non-nil empty map to an
// empty object.
//
// [wire.Node] values are returned unchanged.
//
// Values implementing [Marshaler] call MarshalWire to produce their
// node, whatever their kind. All the domain records in package record
// are Marshalers.
//
// bool, integer, float and string values convert to the
// corresponding scalar node, keeping their numeric kind.
//
// Sets, that is maps of the form map[T]struct{} such as
// [mapset.Set], convert to an array of their members.
//
// Slices, and range functions of the form func(yield func(T) bool),
// convert to an array of their elements, in order. Byte slices are
// excluded, see below.
//
// Other maps convert to an object. Keys implementing
// [encoding.TextMarshaler] are converted to their text form, keys of
// string kind are used as-is, and integer keys are converted to their
// decimal form. Maps with any other key type, or with two keys that
// render to the same text, cannot be converted. Object keys are
// sorted.
//
// Values matching a registered [Rule] convert using that rule. Rules
// are consulted in registration order, after the built-in rules for
// [image.Point] and socket addresses.
//
// Identifiers with a canonical text form, that is values implementing
// [encoding.TextMarshaler] (such as [uuid.UUID] and [netip.Addr]) and
// [net.HardwareAddr], convert to a string of that form.
//
// Byte slices and byte arrays convert to a string holding their
// standard base64 encoding.
//
// Other arrays convert to an array of their elements.
//
// Anything else converts to a string holding its default text form,
// as produced by [fmt.Sprint]. When such a value is reached through a
// pointer or interface, it is formatted as that pointer or interface,
// so an error converts to its Error text. Unknown types are therefore
// never an error, only a loss of fidelity.
//
// Marshal does not detect cycles. Converting a cyclic value graph
// recurses until the stack is exhausted.
package jsonbuild
