package jsonbuild

import (
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"iter"
	"math"
	"net"
	"net/netip"
	"reflect"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/creachadair/mds/mapset"
	"github.com/danderson/jsonbuild/wire"
	"github.com/danderson/jsonbuild/wiretest"
	"github.com/google/uuid"
	"github.com/kr/pretty"
)

func ptr[T any](v T) *T { return &v }

func obj(kvs ...any) wire.Node {
	var fs []wire.Field
	for i := 0; i < len(kvs); i += 2 {
		fs = append(fs, wire.Field{Key: kvs[i].(string), Value: kvs[i+1].(wire.Node)})
	}
	return wire.Object(fs...)
}

func arr(elems ...wire.Node) wire.Node { return wire.Array(elems...) }

func strs(ss ...string) wire.Node {
	var ret []wire.Node
	for _, s := range ss {
		ret = append(ret, wire.String(s))
	}
	return wire.Array(ret...)
}

func ints(is ...int64) wire.Node {
	var ret []wire.Node
	for _, i := range is {
		ret = append(ret, wire.Int(i))
	}
	return wire.Array(ret...)
}

func TestMarshal(t *testing.T) {
	type testCase struct {
		name string
		in   any
		want wire.Node
	}
	ok := func(name string, in any, want wire.Node) testCase {
		return testCase{name, in, want}
	}

	var (
		nilMap   map[string]int
		nilSlice []int
		nilPtr   *int
		nilIface error
		nilFunc  func()
		nilChan  chan int
	)

	tests := []testCase{
		ok("untyped nil", nil, wire.Null()),
		ok("nil map", nilMap, wire.Null()),
		ok("nil slice", nilSlice, wire.Null()),
		ok("nil pointer", nilPtr, wire.Null()),
		ok("nil interface pointer", &nilIface, wire.Null()),
		ok("nil func", nilFunc, wire.Null()),
		ok("nil chan", nilChan, wire.Null()),
		ok("nil set", mapset.Set[int](nil), wire.Null()),

		ok("true", true, wire.Bool(true)),
		ok("false", false, wire.Bool(false)),
		ok("int", 42, wire.Int(42)),
		ok("int8", int8(-8), wire.Int(-8)),
		ok("int32", int32(math.MinInt32), wire.Int(math.MinInt32)),
		ok("int64", int64(math.MaxInt64), wire.Int(math.MaxInt64)),
		ok("uint8", uint8(200), wire.Uint(200)),
		ok("uint64", uint64(math.MaxUint64), wire.Uint(math.MaxUint64)),
		ok("float32", float32(0.25), wire.Float32(0.25)),
		ok("float64", 37.4, wire.Float(37.4)),
		ok("named float", Celsius(21.5), wire.Float(21.5)),
		ok("string", "foo", wire.String("foo")),
		ok("empty string", "", wire.String("")),

		ok("pointer", ptr(42), wire.Int(42)),
		ok("pointer pointer", ptr(ptr("x")), wire.String("x")),
		ok("interface", []any{1, "a", nil, 2.5}, arr(wire.Int(1), wire.String("a"), wire.Null(), wire.Float(2.5))),

		ok("node", wire.String("built"), wire.String("built")),
		ok("node in map", map[string]any{"n": wire.Array(wire.Null())}, obj("n", arr(wire.Null()))),

		ok("empty slice", []int{}, arr()),
		ok("slice", []string{"b", "a"}, strs("b", "a")),
		ok("nested slice", [][]int{{1}, {}, nil}, arr(ints(1), arr(), wire.Null())),
		ok("recursive type", Tree{Tree{}, nil, Tree{Tree{}}}, arr(arr(), wire.Null(), arr(arr()))),
		ok("range func", slices.Values([]int{3, 1, 2}), ints(3, 1, 2)),
		ok("empty range func", iter.Seq[string](func(yield func(string) bool) {}), arr()),

		ok("empty map", map[string]int{}, obj()),
		ok("map", map[string]int{"b": 2, "a": 1}, obj("a", wire.Int(1), "b", wire.Int(2))),
		ok("map of any", map[string]any{"x": []int{1}, "y": nil}, obj("x", ints(1), "y", wire.Null())),
		ok("int keys", map[int]string{2: "b", 10: "a", -1: "z"}, obj("-1", wire.String("z"), "10", wire.String("a"), "2", wire.String("b"))),
		ok("uint keys", map[uint16]bool{7: true}, obj("7", wire.Bool(true))),
		ok("text keys", map[Upper]int{"abc": 1}, obj("ABC", wire.Int(1))),
		ok("addr keys", map[netip.Addr]int{netip.MustParseAddr("10.0.0.1"): 1}, obj("10.0.0.1", wire.Int(1))),
		ok("interface keys", map[any]int{"a": 1, 2: 2}, obj("2", wire.Int(2), "a", wire.Int(1))),

		ok("empty set", mapset.New[string](), arr()),
		ok("set", mapset.New(3, 1, 2), ints(1, 2, 3)),
		ok("plain set", map[string]struct{}{"b": {}, "a": {}}, strs("a", "b")),
		ok("map of named empty struct", map[string]Marker{"b": {}, "a": {}}, obj("a", wire.String("{}"), "b", wire.String("{}"))),

		ok("marshaler", Reading{"kitchen", 21.5}, obj("sensor", wire.String("kitchen"), "value", wire.Float(21.5))),
		ok("marshaler pointer", &Reading{Value: 1}, obj("sensor", wire.Null(), "value", wire.Float(1))),
		ok("pointer marshaler", &Counter{3}, obj("n", wire.Int(3))),
		ok("pointer marshaler by value", Counter{4}, obj("n", wire.Int(4))),
		ok("pointer marshaler in slice", []Counter{{5}}, arr(obj("n", wire.Int(5)))),
		ok("pointer marshaler in map", map[string]Counter{"c": {6}}, obj("c", obj("n", wire.Int(6)))),
		ok("nil marshaler", (*Counter)(nil), wire.Null()),
		ok("integer marshaler", Level(3), wire.String("L3")),
		ok("integer marshaler null", Level(-1), wire.Null()),
		ok("integer marshaler in slice", []Level{1, 2}, strs("L1", "L2")),
		ok("integer marshaler in map", map[string]Level{"lvl": 0}, obj("lvl", wire.String("L0"))),

		ok("point", image.Pt(3, -4), obj("x", wire.Int(3), "y", wire.Int(-4))),
		ok("tcp address", &net.TCPAddr{IP: net.ParseIP("10.0.0.1"), Port: 80}, arr(wire.String("10.0.0.1"), wire.Int(80))),
		ok("udp address", net.UDPAddr{IP: net.ParseIP("fe80::1"), Port: 53, Zone: "eth0"}, arr(wire.String("fe80::1%eth0"), wire.Int(53))),
		ok("unspecified address", net.TCPAddr{Port: 8080}, arr(wire.Null(), wire.Int(8080))),
		ok("addrport", netip.MustParseAddrPort("[::1]:443"), arr(wire.String("::1"), wire.Int(443))),

		ok("uuid", uuid.MustParse("0000180d-0000-1000-8000-00805f9b34fb"), wire.String("0000180d-0000-1000-8000-00805f9b34fb")),
		ok("addr", netip.MustParseAddr("192.168.1.1"), wire.String("192.168.1.1")),
		ok("ip", net.ParseIP("192.168.1.1"), wire.String("192.168.1.1")),
		ok("hardware address", net.HardwareAddr{0x02, 0, 0x5e, 0x10, 0, 1}, wire.String("02:00:5e:10:00:01")),
		ok("time", time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), wire.String("2024-06-01T12:00:00Z")),
		ok("struct text marshaler", Tag{"go"}, wire.String("#go")),

		ok("bytes", []byte("hello"), wire.String("aGVsbG8=")),
		ok("empty bytes", []byte{}, wire.String("")),
		ok("byte array", [3]byte{1, 2, 3}, wire.String("AQID")),

		ok("array", [3]int{1, 2, 3}, ints(1, 2, 3)),
		ok("empty array", [0]string{}, arr()),

		ok("struct", Simple{1, true}, wire.String("{1 true}")),
		ok("unexported fields", Opaque{1, "x"}, wire.String("{1 x}")),
		ok("complex", complex(1, 2), wire.String("(1+2i)")),
		ok("struct in slice", []Simple{{2, false}}, arr(wire.String("{2 false}"))),
		ok("error", errors.New("boom"), wire.String("boom")),
		ok("wrapped error", fmt.Errorf("wrapped: %w", errBroken), wire.String("wrapped: broken")),
		ok("errors in slice", []error{errors.New("a"), nil}, arr(wire.String("a"), wire.Null())),
		ok("pointer stringer", &Gadget{7}, wire.String("gadget-7")),
		ok("pointer stringer in map", map[string]*Gadget{"g": {8}}, obj("g", wire.String("gadget-8"))),
		ok("pointer to struct", &Simple{1, true}, wire.String("&{1 true}")),
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Marshal(tc.in)
			if err != nil {
				t.Fatalf("Marshal(%# v) got err: %v", pretty.Formatter(tc.in), err)
			}
			if diff := wiretest.Diff(got, tc.want); diff != "" {
				t.Errorf("Marshal(%# v) wrong (-got+want):\n%s", pretty.Formatter(tc.in), diff)
			}
			if got.Kind() == wire.ObjectKind {
				if gk, wk := got.Keys(), tc.want.Keys(); !slices.Equal(gk, wk) {
					t.Errorf("Marshal(%# v) key order = %v, want %v", pretty.Formatter(tc.in), gk, wk)
				}
			}
		})
	}
}

func TestMarshalErrors(t *testing.T) {
	tests := []struct {
		name      string
		in        any
		wantIs    error
		wantTypes []string
	}{
		{"marshaler", Broken{}, errBroken, []string{"jsonbuild.Broken"}},
		{"marshaler in slice", []any{1, Broken{}}, errBroken, []string{"jsonbuild.Broken"}},
		{"marshaler in map", map[string]Broken{"k": {}}, errBroken, []string{"jsonbuild.Broken"}},
		{"text marshaler", Tag{}, nil, []string{"jsonbuild.Tag"}},
		{"text map key", map[Tag]int{{}: 1}, nil, []string{"map[jsonbuild.Tag]int"}},
		{"unsupported map key", map[[2]int]string{{1, 2}: "x"}, nil, []string{"map[[2]int]string"}},
		{"unsupported dynamic map key", map[any]int{1.5: 1}, nil, []string{"map[interface {}]int"}},
		{"empty unsupported map", map[Simple]int{}, nil, []string{"map[jsonbuild.Simple]int"}},
		{"colliding map keys", map[any]int{1: 1, "1": 2}, nil, []string{"map[interface {}]int"}},
		{"colliding text keys", map[Upper]int{"a": 1, "A": 2}, nil, []string{"map[jsonbuild.Upper]int"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Marshal(tc.in)
			if err == nil {
				t.Fatalf("Marshal(%# v) = %v, want error", pretty.Formatter(tc.in), got)
			}
			if !got.IsNull() {
				t.Errorf("Marshal(%# v) returned partial node %v alongside error", pretty.Formatter(tc.in), got)
			}
			if tc.wantIs != nil && !errors.Is(err, tc.wantIs) {
				t.Errorf("Marshal(%# v) err %v does not wrap %v", pretty.Formatter(tc.in), err, tc.wantIs)
			}
			var cerr ConversionError
			if !errors.As(err, &cerr) {
				t.Fatalf("Marshal(%# v) err %v is not a ConversionError", pretty.Formatter(tc.in), err)
			}
			if !slices.Contains(tc.wantTypes, cerr.Type) {
				t.Errorf("Marshal(%# v) ConversionError.Type = %q, want one of %v", pretty.Formatter(tc.in), cerr.Type, tc.wantTypes)
			}
		})
	}
}

func TestBytesRoundTrip(t *testing.T) {
	inputs := [][]byte{
		{},
		{0},
		[]byte("hello, world"),
		{0xff, 0xfe, 0x00, 0x80, 0x7f},
	}
	for _, in := range inputs {
		n, err := Marshal(in)
		if err != nil {
			t.Fatalf("Marshal(%v) got err: %v", in, err)
		}
		if n.Kind() != wire.StringKind {
			t.Fatalf("Marshal(%v) = %v, want string node", in, n)
		}
		got, err := base64.StdEncoding.DecodeString(n.AsString())
		if err != nil {
			t.Fatalf("decoding Marshal(%v) = %q: %v", in, n.AsString(), err)
		}
		if !slices.Equal(got, in) {
			t.Errorf("base64 round trip of %v = %v", in, got)
		}
	}
}

func TestIdempotent(t *testing.T) {
	inputs := []any{
		nil,
		true,
		int64(-5),
		uint64(5),
		2.5,
		float32(1.5),
		"s",
		[]any{1, "two", []int{3}},
		map[string]any{"a": map[string]int{"b": 1}},
	}
	for _, in := range inputs {
		once, err := Marshal(in)
		if err != nil {
			t.Fatalf("Marshal(%v) got err: %v", in, err)
		}
		twice, err := Marshal(once)
		if err != nil {
			t.Fatalf("Marshal(Marshal(%v)) got err: %v", in, err)
		}
		if diff := wiretest.Diff(twice, once); diff != "" {
			t.Errorf("Marshal(Marshal(%v)) != Marshal(%v) (-got+want):\n%s", in, in, diff)
		}
		if once.NumberForm() != twice.NumberForm() {
			t.Errorf("Marshal(Marshal(%v)) changed number form from %v to %v", in, once.NumberForm(), twice.NumberForm())
		}
	}
}

func TestNumberKinds(t *testing.T) {
	tests := []struct {
		in   any
		want wire.NumberForm
	}{
		{int(1), wire.IntForm},
		{int64(1), wire.IntForm},
		{uint32(1), wire.UintForm},
		{float32(1), wire.Float32Form},
		{float64(1), wire.Float64Form},
		{"1", wire.NotNumber},
	}
	for _, tc := range tests {
		n, err := Marshal(tc.in)
		if err != nil {
			t.Fatalf("Marshal(%T) got err: %v", tc.in, err)
		}
		if got := n.NumberForm(); got != tc.want {
			t.Errorf("Marshal(%T).NumberForm() = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	before, err := r.Marshal(Simple{1, true})
	if err != nil {
		t.Fatalf("Marshal(Simple) got err: %v", err)
	}
	if diff := wiretest.Diff(before, wire.String("{1 true}")); diff != "" {
		t.Errorf("Marshal(Simple) before rule wrong (-got+want):\n%s", diff)
	}

	r.Register(
		RuleFor("simple", func(e *wire.Encoder, s Simple) (wire.Node, error) {
			return e.Object(func(o *wire.ObjectEncoder) error {
				o.Put("a", wire.Int(int64(s.A)))
				return o.Value("b", s.B)
			})
		}),
		RuleFor("kelvin", func(e *wire.Encoder, k Kelvin) (wire.Node, error) {
			return wire.String("shadowed"), nil
		}),
		RuleFor("second simple", func(e *wire.Encoder, s Simple) (wire.Node, error) {
			return wire.String("shadowed"), nil
		}),
	)

	tests := []struct {
		in   any
		want wire.Node
	}{
		{Simple{1, true}, obj("a", wire.Int(1), "b", wire.Bool(true))},
		{&Simple{2, false}, obj("a", wire.Int(2), "b", wire.Bool(false))},
		{[]Simple{{3, true}}, arr(obj("a", wire.Int(3), "b", wire.Bool(true)))},
		// Scalars are converted before rules are consulted.
		{Kelvin(300), wire.Float(300)},
	}
	for _, tc := range tests {
		got, err := r.Marshal(tc.in)
		if err != nil {
			t.Fatalf("Marshal(%# v) got err: %v", pretty.Formatter(tc.in), err)
		}
		if diff := wiretest.Diff(got, tc.want); diff != "" {
			t.Errorf("Marshal(%# v) wrong (-got+want):\n%s", pretty.Formatter(tc.in), diff)
		}
	}

	// Rules on one registry don't leak into others.
	other, err := Marshal(Simple{1, true})
	if err != nil {
		t.Fatalf("Marshal(Simple) got err: %v", err)
	}
	if diff := wiretest.Diff(other, wire.String("{1 true}")); diff != "" {
		t.Errorf("default Marshal(Simple) wrong (-got+want):\n%s", diff)
	}

	rules := r.Rules()
	for _, want := range []string{"null", "simple", "kelvin", "second simple", "fallback"} {
		if !slices.Contains(rules, want) {
			t.Errorf("Rules() = %v, missing %q", rules, want)
		}
	}
	if rules[0] != "null" || rules[len(rules)-1] != "fallback" {
		t.Errorf("Rules() = %v, want null first and fallback last", rules)
	}
	if a, b := slices.Index(rules, "marshaler"), slices.Index(rules, "point"); a < 0 || b < 0 || a > b {
		t.Errorf("Rules() = %v, want marshaler before built-in rules", rules)
	}
	if a, b := slices.Index(rules, "marshaler"), slices.Index(rules, "scalar"); a < 0 || b < 0 || a > b {
		t.Errorf("Rules() = %v, want marshaler before scalar", rules)
	}
	if a, b := slices.Index(rules, "second simple"), slices.Index(rules, "identifier"); a > b {
		t.Errorf("Rules() = %v, want registered rules before identifier", rules)
	}
}

func TestRuleError(t *testing.T) {
	errRule := errors.New("rule failed")
	r := NewRegistry()
	r.Register(RuleFor("simple", func(e *wire.Encoder, s Simple) (wire.Node, error) {
		return wire.Node{}, errRule
	}))
	_, err := r.Marshal(map[string]Simple{"k": {}})
	if !errors.Is(err, errRule) {
		t.Fatalf("Marshal got err %v, want errRule", err)
	}
	var cerr ConversionError
	if !errors.As(err, &cerr) || cerr.Type != "jsonbuild.Simple" {
		t.Errorf("Marshal got err %v, want ConversionError for jsonbuild.Simple", err)
	}
}

func TestRuleForPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"pointer", func() {
			RuleFor("p", func(*wire.Encoder, *Simple) (wire.Node, error) { return wire.Null(), nil })
		}},
		{"interface", func() {
			RuleFor("i", func(*wire.Encoder, error) (wire.Node, error) { return wire.Null(), nil })
		}},
		{"unnamed rule", func() {
			NewRegistry().Register(Rule{Match: func(reflect.Type) bool { return true }})
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("%s did not panic", tc.name)
				}
			}()
			tc.fn()
		})
	}
}

func TestMarshalConcurrent(t *testing.T) {
	r := NewRegistry()
	want := obj("xs", arr(obj("n", wire.Int(1))), "y", wire.Float(2))
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%8 == 0 {
				r.Register(RuleFor("noop", func(*wire.Encoder, image.Rectangle) (wire.Node, error) {
					return wire.Null(), nil
				}))
			}
			got, err := r.Marshal(map[string]any{"xs": []Counter{{1}}, "y": 2.0})
			if err != nil {
				t.Errorf("Marshal got err: %v", err)
				return
			}
			if diff := wiretest.Diff(got, want); diff != "" {
				t.Errorf("Marshal wrong (-got+want):\n%s", diff)
			}
		}()
	}
	wg.Wait()
}
