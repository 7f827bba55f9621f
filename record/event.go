package record

import (
	"time"

	"github.com/creachadair/mds/mapset"
	"github.com/danderson/jsonbuild/wire"
)

// Bundle is a bag of named values attached to events and intents.
//
// Bundle converts as a plain map: an object with one key per entry.
type Bundle map[string]any

// Event is a named occurrence posted by a facade, with an arbitrary
// payload.
type Event struct {
	Name string
	// Data is the event payload. It can be any value that
	// jsonbuild.Marshal accepts, including other records.
	Data any
	// Time is when the event was created. The zero Time converts to
	// null.
	Time time.Time
}

func (ev Event) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	return e.Object(func(o *wire.ObjectEncoder) error {
		o.Put("name", wire.OptString(ev.Name))
		if err := o.Value("data", ev.Data); err != nil {
			return err
		}
		if ev.Time.IsZero() {
			o.Put("time", wire.Null())
		} else {
			o.Put("time", wire.Int(ev.Time.UnixMilli()))
		}
		return nil
	})
}

// ComponentName identifies an application component.
type ComponentName struct {
	Package string
	Class   string
}

// Intent is a description of an operation to perform, or of a
// broadcast that was received.
type Intent struct {
	Action     string
	Data       string
	Type       string
	Categories mapset.Set[string]
	Extras     Bundle
	// Component is the explicit target of the intent, if any.
	Component *ComponentName
	Flags     int32
}

func (in Intent) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	return e.Object(func(o *wire.ObjectEncoder) error {
		o.Put("data", wire.OptString(in.Data))
		o.Put("type", wire.OptString(in.Type))
		if err := o.Value("extras", in.Extras); err != nil {
			return err
		}
		if err := o.Value("categories", in.Categories); err != nil {
			return err
		}
		o.Put("action", wire.OptString(in.Action))
		if in.Component != nil {
			o.Put("packagename", wire.OptString(in.Component.Package))
			o.Put("classname", wire.OptString(in.Component.Class))
		} else {
			o.Put("packagename", wire.Null())
			o.Put("classname", wire.Null())
		}
		o.Put("flags", wire.Int(int64(in.Flags)))
		return nil
	})
}
