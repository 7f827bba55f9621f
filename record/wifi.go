package record

import "github.com/danderson/jsonbuild/wire"

// WifiScanResult is an access point found during a Wi-Fi scan.
type WifiScanResult struct {
	BSSID        string
	SSID         string
	Capabilities string
	// Frequency is the primary channel frequency, in MHz.
	Frequency int32
	// Level is the received signal strength, in dBm.
	Level int32
	// Timestamp is when the result was last seen, in microseconds
	// since boot.
	Timestamp int64
}

func (r WifiScanResult) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	return e.Object(func(o *wire.ObjectEncoder) error {
		o.Put("bssid", wire.OptString(r.BSSID))
		o.Put("ssid", wire.OptString(r.SSID))
		o.Put("frequency", wire.Int(int64(r.Frequency)))
		o.Put("level", wire.Int(int64(r.Level)))
		o.Put("capabilities", wire.OptString(r.Capabilities))
		o.Put("timestamp", wire.Int(r.Timestamp))
		return nil
	})
}

// SupplicantState is the state of the Wi-Fi supplicant's association
// with an access point.
type SupplicantState int

const (
	SupplicantDisconnected SupplicantState = iota
	SupplicantInterfaceDisabled
	SupplicantInactive
	SupplicantScanning
	SupplicantAuthenticating
	SupplicantAssociating
	SupplicantAssociated
	SupplicantFourWayHandshake
	SupplicantGroupHandshake
	SupplicantCompleted
	SupplicantDormant
	SupplicantUninitialized
	SupplicantInvalid
)

// supplicantTokens are the wire names of supplicant states. States
// missing from this table have no wire name and convert to null.
var supplicantTokens = map[SupplicantState]string{
	SupplicantAssociated:       "associated",
	SupplicantAssociating:      "associating",
	SupplicantCompleted:        "completed",
	SupplicantDisconnected:     "disconnected",
	SupplicantDormant:          "dormant",
	SupplicantFourWayHandshake: "four_way_handshake",
	SupplicantGroupHandshake:   "group_handshake",
	SupplicantInactive:         "inactive",
	SupplicantInvalid:          "invalid",
	SupplicantScanning:         "scanning",
	SupplicantUninitialized:    "uninitialized",
}

// Token returns the wire name of s, if it has one.
func (s SupplicantState) Token() (string, bool) {
	tok, ok := supplicantTokens[s]
	return tok, ok
}

func (s SupplicantState) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	if tok, ok := s.Token(); ok {
		return wire.String(tok), nil
	}
	return wire.Null(), nil
}

// WifiInfo describes the current Wi-Fi connection.
type WifiInfo struct {
	SSID       string
	BSSID      string
	MACAddress string
	HiddenSSID bool
	// IPAddress is the IPv4 address of the interface, packed into an
	// integer in network byte order read as little-endian.
	IPAddress int32
	// LinkSpeed is in Mbps.
	LinkSpeed       int32
	NetworkID       int32
	RSSI            int32
	SupplicantState SupplicantState
}

func (w WifiInfo) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	return e.Object(func(o *wire.ObjectEncoder) error {
		o.Put("hidden_ssid", wire.Bool(w.HiddenSSID))
		o.Put("ip_address", wire.Int(int64(w.IPAddress)))
		o.Put("link_speed", wire.Int(int64(w.LinkSpeed)))
		o.Put("network_id", wire.Int(int64(w.NetworkID)))
		o.Put("rssi", wire.Int(int64(w.RSSI)))
		o.Put("bssid", wire.OptString(w.BSSID))
		o.Put("mac_address", wire.OptString(w.MACAddress))
		o.Put("ssid", wire.OptString(w.SSID))
		return o.Value("supplicant_state", w.SupplicantState)
	})
}
