// Package wiretest provides helpers for testing code that produces
// wire nodes, and a catalogue of sample records.
package wiretest

import (
	"encoding/json"
	"testing"

	"github.com/danderson/jsonbuild/wire"
	"github.com/google/go-cmp/cmp"
)

// Comparer is a [cmp.Option] that compares wire nodes with
// [wire.Node.Equal].
var Comparer = cmp.Comparer(func(a, b wire.Node) bool {
	return a.Equal(b)
})

// Diff returns a human-readable report of the differences between
// got and want, or the empty string if they are equal. got and want
// may be wire nodes, or values containing wire nodes.
func Diff(got, want any) string {
	return cmp.Diff(got, want, Comparer)
}

// JSON returns the JSON encoding of n, failing t if n cannot be
// encoded.
func JSON(t testing.TB, n wire.Node) string {
	t.Helper()
	bs, err := n.MarshalJSON()
	if err != nil {
		t.Fatalf("encoding %v as JSON: %v", n, err)
	}
	return string(bs)
}

// ParseJSON decodes s into a generic JSON value, for comparison with
// [wire.Node.Interface] after a round trip. Numbers decode as
// float64.
func ParseJSON(t testing.TB, s string) any {
	t.Helper()
	var ret any
	if err := json.Unmarshal([]byte(s), &ret); err != nil {
		t.Fatalf("decoding JSON %q: %v", s, err)
	}
	return ret
}
