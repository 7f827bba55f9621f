package jsonbuild

import (
	"cmp"
	"reflect"
)

// isSet reports whether t is a set, i.e. a map whose values are the
// unnamed empty struct (map[T]struct{}). Maps of named empty structs
// are ordinary maps, since the named type may have a conversion of
// its own.
func isSet(t reflect.Type) bool {
	return t.Kind() == reflect.Map && t.Elem() == emptyStructType
}

// isSeq reports whether t is a sequence: a non-byte slice, or a range
// function.
func isSeq(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Slice:
		return t.Elem().Kind() != reflect.Uint8
	case reflect.Func:
		return isRangeFunc(t)
	}
	return false
}

// isRangeFunc reports whether t has the shape of an iter.Seq,
// func(yield func(T) bool).
func isRangeFunc(t reflect.Type) bool {
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 0 || t.IsVariadic() {
		return false
	}
	y := t.In(0)
	return y.Kind() == reflect.Func && y.NumIn() == 1 && y.NumOut() == 1 && y.Out(0).Kind() == reflect.Bool && !y.IsVariadic()
}

// isBytes reports whether t is a byte slice or byte array.
func isBytes(t reflect.Type) bool {
	k := t.Kind()
	return (k == reflect.Slice || k == reflect.Array) && t.Elem().Kind() == reflect.Uint8
}

// canNil reports whether values of type t can be nil.
func canNil(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

// bytesOf returns the contents of a byte slice or byte array. Arrays
// are copied, since unaddressable arrays cannot be sliced.
func bytesOf(v reflect.Value) []byte {
	if v.Kind() == reflect.Slice {
		return v.Bytes()
	}
	ret := make([]byte, v.Len())
	for i := range ret {
		ret[i] = byte(v.Index(i).Uint())
	}
	return ret
}

// valueCmp returns a comparison function for values of type t, or
// nil if t has no natural order.
func valueCmp(t reflect.Type) func(a, b reflect.Value) int {
	switch t.Kind() {
	case reflect.Bool:
		return func(a, b reflect.Value) int {
			if a.Bool() == b.Bool() {
				return 0
			}
			if !a.Bool() {
				return -1
			}
			return 1
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(a, b reflect.Value) int {
			return cmp.Compare(a.Int(), b.Int())
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(a, b reflect.Value) int {
			return cmp.Compare(a.Uint(), b.Uint())
		}
	case reflect.Float32, reflect.Float64:
		return func(a, b reflect.Value) int {
			return cmp.Compare(a.Float(), b.Float())
		}
	case reflect.String:
		return func(a, b reflect.Value) int {
			return cmp.Compare(a.String(), b.String())
		}
	}
	return nil
}
