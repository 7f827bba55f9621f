package record

import "github.com/danderson/jsonbuild/wire"

// MediaSessionInfo describes an active media session.
type MediaSessionInfo struct {
	PackageName string
	PID         int32
	ID          string
}

func (m MediaSessionInfo) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	return e.Object(func(o *wire.ObjectEncoder) error {
		o.Put("PackageName", wire.OptString(m.PackageName))
		o.Put("Pid", wire.Int(int64(m.PID)))
		o.Put("Id", wire.OptString(m.ID))
		return nil
	})
}

// DisplayMetrics is the size of a display, in pixels. The noncompat
// sizes are the real display size, unscaled by any compatibility
// mode.
type DisplayMetrics struct {
	WidthPixels           int32
	HeightPixels          int32
	NoncompatWidthPixels  int32
	NoncompatHeightPixels int32
}

func (d DisplayMetrics) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	return e.Object(func(o *wire.ObjectEncoder) error {
		o.Put("widthPixels", wire.Int(int64(d.WidthPixels)))
		o.Put("heightPixels", wire.Int(int64(d.HeightPixels)))
		o.Put("noncompatHeightPixels", wire.Int(int64(d.NoncompatHeightPixels)))
		o.Put("noncompatWidthPixels", wire.Int(int64(d.NoncompatWidthPixels)))
		return nil
	})
}
