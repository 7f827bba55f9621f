package record

import "github.com/danderson/jsonbuild/wire"

// Location is a positional fix.
type Location struct {
	// Latitude and Longitude are in degrees.
	Latitude  float64
	Longitude float64
	// Altitude is in meters above the WGS84 ellipsoid.
	Altitude float64
	// Time is the fix time, in milliseconds since the Unix epoch.
	Time int64
	// Accuracy is the estimated horizontal accuracy radius, in
	// meters.
	Accuracy float32
	// Speed is the ground speed in meters per second.
	Speed float32
	// Bearing is the horizontal direction of travel, in degrees.
	Bearing float32
	// Provider names the location provider that produced the fix,
	// e.g. "gps" or "network".
	Provider string
}

func (l Location) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	return e.Object(func(o *wire.ObjectEncoder) error {
		o.Put("altitude", wire.Float(l.Altitude))
		o.Put("latitude", wire.Float(l.Latitude))
		o.Put("longitude", wire.Float(l.Longitude))
		o.Put("time", wire.Int(l.Time))
		o.Put("accuracy", wire.Float32(l.Accuracy))
		o.Put("speed", wire.Float32(l.Speed))
		o.Put("provider", wire.OptString(l.Provider))
		o.Put("bearing", wire.Float32(l.Bearing))
		return nil
	})
}

// Address is a geocoded street address.
type Address struct {
	FeatureName  string
	Thoroughfare string
	Locality     string
	SubAdminArea string
	AdminArea    string
	PostalCode   string
	CountryCode  string
	CountryName  string
	Phone        string
	URL          string
}

func (a Address) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	return e.Object(func(o *wire.ObjectEncoder) error {
		o.Put("admin_area", wire.OptString(a.AdminArea))
		o.Put("country_code", wire.OptString(a.CountryCode))
		o.Put("country_name", wire.OptString(a.CountryName))
		o.Put("feature_name", wire.OptString(a.FeatureName))
		o.Put("phone", wire.OptString(a.Phone))
		o.Put("locality", wire.OptString(a.Locality))
		o.Put("postal_code", wire.OptString(a.PostalCode))
		o.Put("sub_admin_area", wire.OptString(a.SubAdminArea))
		o.Put("thoroughfare", wire.OptString(a.Thoroughfare))
		o.Put("url", wire.OptString(a.URL))
		return nil
	})
}
