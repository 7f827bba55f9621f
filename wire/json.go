package wire

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrNonFinite is returned when encoding a NaN or infinite number to
// a format that cannot represent it.
var ErrNonFinite = errors.New("non-finite number")

// MarshalJSON implements [json.Marshaler].
func (n Node) MarshalJSON() ([]byte, error) {
	return n.AppendJSON(nil)
}

// AppendJSON appends the JSON text of n to bs. Object fields are
// written in order.
func (n Node) AppendJSON(bs []byte) ([]byte, error) {
	switch n.kind {
	case NullKind:
		return append(bs, "null"...), nil
	case BoolKind:
		return strconv.AppendBool(bs, n.b), nil
	case NumberKind:
		return n.appendNumber(bs)
	case StringKind:
		return appendString(bs, n.s)
	case ArrayKind:
		bs = append(bs, '[')
		for i, e := range n.elems {
			if i > 0 {
				bs = append(bs, ',')
			}
			var err error
			if bs, err = e.AppendJSON(bs); err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
		}
		return append(bs, ']'), nil
	case ObjectKind:
		bs = append(bs, '{')
		for i, f := range n.fields {
			if i > 0 {
				bs = append(bs, ',')
			}
			var err error
			if bs, err = appendString(bs, f.Key); err != nil {
				return nil, err
			}
			bs = append(bs, ':')
			if bs, err = f.Value.AppendJSON(bs); err != nil {
				return nil, fmt.Errorf("key %q: %w", f.Key, err)
			}
		}
		return append(bs, '}'), nil
	}
	return nil, fmt.Errorf("unknown node kind %s", n.kind)
}

func (n Node) appendNumber(bs []byte) ([]byte, error) {
	switch n.form {
	case IntForm:
		return strconv.AppendInt(bs, n.i, 10), nil
	case UintForm:
		return strconv.AppendUint(bs, n.u, 10), nil
	}

	if math.IsNaN(n.f) || math.IsInf(n.f, 0) {
		return nil, fmt.Errorf("%w %v", ErrNonFinite, n.f)
	}
	bits := 64
	if n.form == Float32Form {
		bits = 32
	}
	// Same formatting rules as encoding/json: plain notation for
	// moderate magnitudes, exponent notation otherwise.
	abs := math.Abs(n.f)
	format := byte('f')
	if abs != 0 {
		if bits == 64 && (abs < 1e-6 || abs >= 1e21) || bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			format = 'e'
		}
	}
	bs = strconv.AppendFloat(bs, n.f, format, -1, bits)
	if format == 'e' {
		// clean up e-09 to e-9
		l := len(bs)
		if l >= 4 && bs[l-4] == 'e' && bs[l-3] == '-' && bs[l-2] == '0' {
			bs[l-2] = bs[l-1]
			bs = bs[:l-1]
		}
	}
	return bs, nil
}

func appendString(bs []byte, s string) ([]byte, error) {
	q, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return append(bs, q...), nil
}
