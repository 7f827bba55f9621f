// Package record defines the structured values that platform facades
// hand to the RPC layer, and their wire representation.
//
// Every record implements jsonbuild.Marshaler. The keys of the object
// a record converts to are part of the wire contract with remote
// clients: they are case-sensitive, and always present. A record
// field with no value converts to null rather than being omitted.
//
// Text fields that the platform may leave unset (names, address
// lines, provider tags and so on) treat the empty string as unset.
package record
