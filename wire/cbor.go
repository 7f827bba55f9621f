package wire

import (
	"github.com/fxamacker/cbor/v2"
)

var cborEncMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// MarshalCBOR implements [cbor.Marshaler], using the core
// deterministic encoding. Object keys are sorted as CBOR requires,
// rather than kept in node order.
func (n Node) MarshalCBOR() ([]byte, error) {
	return cborEncMode.Marshal(n.Interface())
}
