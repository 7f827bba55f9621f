// Package wire provides the wire document node produced by the
// jsonbuild marshaller, and the low-level helpers used to build one.
//
// A [Node] is a tagged value: null, boolean, number, string, array or
// object. It is the only shape that crosses the RPC boundary. Nodes
// know how to encode themselves as JSON, YAML and CBOR, but choosing
// an encoding is up to the RPC layer.
//
// You should not need the [Encoder] at all, unless you are writing
// your own jsonbuild.Marshaler implementations, in which case your
// code will be handed an [Encoder] and expected to produce a Node
// with it.
package wire
