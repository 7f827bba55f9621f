package record

import (
	"strconv"
	"strings"

	"github.com/danderson/jsonbuild/wire"
)

// BondState is the pairing state of a remote Bluetooth device.
type BondState int32

const (
	BondNone    BondState = 10
	BondBonding BondState = 11
	BondBonded  BondState = 12
)

// DeviceType is the transport family of a remote Bluetooth device.
type DeviceType int32

const (
	DeviceUnknown DeviceType = 0
	DeviceClassic DeviceType = 1
	DeviceLE      DeviceType = 2
	DeviceDual    DeviceType = 3
)

// BluetoothDevice is a remote Bluetooth device.
type BluetoothDevice struct {
	// Address is the hardware address, in the form
	// "AA:BB:CC:DD:EE:FF".
	Address string
	// Name is the name the device advertises.
	Name string
	// Alias is the name a user assigned to the device, if any. It
	// is used for device lookups but is not part of the wire form.
	Alias string
	State BondState
	Type  DeviceType
}

func (d BluetoothDevice) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	return e.Object(func(o *wire.ObjectEncoder) error {
		o.Put("address", wire.String(d.Address))
		o.Put("state", wire.Int(int64(d.State)))
		o.Put("name", wire.OptString(d.Name))
		o.Put("type", wire.Int(int64(d.Type)))
		return nil
	})
}

// BLEScanResult is a single advertisement received during a
// Bluetooth LE scan.
type BLEScanResult struct {
	Device *BluetoothDevice
	RSSI   int32
	// TimestampNanos is when the advertisement was received, in
	// nanoseconds since boot.
	TimestampNanos int64
	// ScanRecord is the raw advertisement payload.
	ScanRecord []byte
}

// MarshalWire converts r to an object. The receive timestamp is
// emitted under "timestampSeconds" but holds nanoseconds, and the
// scan record is a comma-separated list of signed byte values. Both
// quirks are relied upon by existing clients.
func (r BLEScanResult) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	return e.Object(func(o *wire.ObjectEncoder) error {
		o.Put("rssi", wire.Int(int64(r.RSSI)))
		o.Put("timestampSeconds", wire.Int(r.TimestampNanos))
		if r.ScanRecord == nil {
			o.Put("scanRecord", wire.Null())
		} else {
			o.Put("scanRecord", wire.String(signedBytes(r.ScanRecord)))
		}
		return o.Value("deviceInfo", r.Device)
	})
}

// signedBytes formats bs as comma-separated decimal values, each byte
// read as a signed 8-bit integer.
func signedBytes(bs []byte) string {
	var sb strings.Builder
	for i, b := range bs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(int8(b))))
	}
	return sb.String()
}

// Advertising modes.
const (
	AdvertiseLowPower   = 0
	AdvertiseBalanced   = 1
	AdvertiseLowLatency = 2
)

// Advertising transmit power levels.
const (
	TxPowerUltraLow = 0
	TxPowerLow      = 1
	TxPowerMedium   = 2
	TxPowerHigh     = 3
)

// AdvertiseSettings are the parameters of a Bluetooth LE
// advertisement.
type AdvertiseSettings struct {
	Mode         int32
	TxPowerLevel int32
	Connectable  bool
}

func (s AdvertiseSettings) MarshalWire(e *wire.Encoder) (wire.Node, error) {
	return e.Object(func(o *wire.ObjectEncoder) error {
		o.Put("mode", wire.Int(int64(s.Mode)))
		o.Put("txPowerLevel", wire.Int(int64(s.TxPowerLevel)))
		o.Put("isConnectable", wire.Bool(s.Connectable))
		return nil
	})
}
