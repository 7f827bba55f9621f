package wiretest

import (
	"cmp"
	"image"
	"net"
	"net/netip"
	"slices"
	"time"

	"github.com/creachadair/mds/mapset"
	"github.com/danderson/jsonbuild/record"
	"github.com/google/uuid"
)

// A Sample is a named example value, as a platform facade might
// produce it.
type Sample struct {
	Name  string
	Value any
}

// Values used by the samples.
var (
	HeartRateService      = uuid.MustParse("0000180d-0000-1000-8000-00805f9b34fb")
	HeartRateMeasurement  = uuid.MustParse("00002a37-0000-1000-8000-00805f9b34fb")
	ClientCharConfig      = uuid.MustParse("00002902-0000-1000-8000-00805f9b34fb")
	BatteryService        = uuid.MustParse("0000180f-0000-1000-8000-00805f9b34fb")
	SampleTime            = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	sampleDeviceAddress   = "AA:BB:CC:DD:EE:FF"
	sampleDeviceName      = "Pixel"
	sampleHardwareAddress = net.HardwareAddr{0x02, 0x00, 0x5e, 0x10, 0x00, 0x01}
)

// Device returns the sample Bluetooth device.
func Device() *record.BluetoothDevice {
	return &record.BluetoothDevice{
		Address: sampleDeviceAddress,
		Name:    sampleDeviceName,
		Alias:   sampleDeviceName,
		State:   record.BondBonded,
		Type:    record.DeviceClassic,
	}
}

// Location returns the sample positional fix.
func Location() record.Location {
	return record.Location{
		Latitude:  37.4,
		Longitude: -122.1,
		Accuracy:  5,
		Provider:  "gps",
	}
}

// GattService returns a sample GATT service tree: a heart rate
// service with one characteristic and descriptor, including a
// battery service.
func GattService() *record.GattService {
	measurement := &record.GattCharacteristic{
		UUID:        HeartRateMeasurement,
		InstanceID:  42,
		Permissions: record.PermRead,
		Properties:  record.PropNotify,
		WriteType:   record.WriteDefault,
		Value:       []byte{0x06, 0x48},
	}
	measurement.AddDescriptor(&record.GattDescriptor{
		UUID:        ClientCharConfig,
		InstanceID:  43,
		Permissions: record.PermRead | record.PermWrite,
		Value:       []byte{0x01, 0x00},
	})
	return &record.GattService{
		UUID:            HeartRateService,
		InstanceID:      40,
		Type:            record.ServicePrimary,
		Characteristics: []*record.GattCharacteristic{measurement},
		IncludedServices: []*record.GattService{
			{UUID: BatteryService, InstanceID: 50, Type: record.ServiceSecondary},
		},
	}
}

// Samples returns the sample catalogue, sorted by name.
func Samples() []Sample {
	ret := []Sample{
		{"location", Location()},
		{"address", record.Address{
			FeatureName:  "1600",
			Thoroughfare: "Amphitheatre Parkway",
			Locality:     "Mountain View",
			SubAdminArea: "Santa Clara County",
			AdminArea:    "California",
			PostalCode:   "94043",
			CountryCode:  "US",
			CountryName:  "United States",
		}},
		{"event", record.Event{
			Name: "sample",
			Data: record.Bundle{"count": 3, "ok": true},
			Time: SampleTime,
		}},
		{"intent", record.Intent{
			Action:     "android.intent.action.VIEW",
			Data:       "https://example.com/",
			Categories: mapset.New("android.intent.category.BROWSABLE", "android.intent.category.DEFAULT"),
			Extras:     record.Bundle{"from": "sample"},
			Component:  &record.ComponentName{Package: "com.example.browser", Class: "com.example.browser.Main"},
			Flags:      0x10000000,
		}},
		{"bluetooth-device", Device()},
		{"ble-scan-result", record.BLEScanResult{
			Device:         Device(),
			RSSI:           -60,
			TimestampNanos: 123456789000,
			ScanRecord:     []byte{0x02, 0x01, 0x06, 0xff},
		}},
		{"advertise-settings", record.AdvertiseSettings{
			Mode:         record.AdvertiseBalanced,
			TxPowerLevel: record.TxPowerMedium,
			Connectable:  true,
		}},
		{"gatt-service", GattService()},
		{"gsm-cell-location", record.GsmCellLocation{LAC: 1234, CID: 56789}},
		{"cdma-cell-location", record.CdmaCellLocation{
			BaseStationID:        7,
			BaseStationLatitude:  539316,
			BaseStationLongitude: -1758096,
			SystemID:             4,
			NetworkID:            1,
		}},
		{"neighboring-cell", record.NeighboringCellInfo{CID: 56790, RSSI: 12}},
		{"wifi-info", record.WifiInfo{
			SSID:            `"example"`,
			BSSID:           "02:00:5e:10:00:01",
			MACAddress:      "02:00:00:00:00:00",
			IPAddress:       0x0101a8c0,
			LinkSpeed:       433,
			NetworkID:       1,
			RSSI:            -55,
			SupplicantState: record.SupplicantCompleted,
		}},
		{"wifi-scan-result", record.WifiScanResult{
			BSSID:        "02:00:5e:10:00:01",
			SSID:         "example",
			Capabilities: "[WPA2-PSK-CCMP][ESS]",
			Frequency:    5180,
			Level:        -55,
			Timestamp:    123456789,
		}},
		{"sms-message", record.SmsMessage{OriginatingAddress: "+15555550100", MessageBody: "hello"}},
		{"phone-account", record.PhoneAccountHandle{ID: "sim1"}},
		{"media-session", record.MediaSessionInfo{PackageName: "com.example.player", PID: 4242, ID: "session-1"}},
		{"display-metrics", record.DisplayMetrics{
			WidthPixels:           1080,
			HeightPixels:          2340,
			NoncompatWidthPixels:  1080,
			NoncompatHeightPixels: 2400,
		}},
		{"socket-address", netip.MustParseAddrPort("192.168.1.10:8080")},
		{"point", image.Pt(3, 4)},
		{"uuid", HeartRateService},
		{"hardware-address", sampleHardwareAddress},
		{"bytes", []byte("hello")},
	}
	slices.SortFunc(ret, func(a, b Sample) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return ret
}

// Lookup returns the sample with the given name.
func Lookup(name string) (Sample, bool) {
	for _, s := range Samples() {
		if s.Name == name {
			return s, true
		}
	}
	return Sample{}, false
}
